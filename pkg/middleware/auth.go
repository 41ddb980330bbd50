package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"bookameal/pkg/errors"
)

const (
	// UserIDKey is the context key for the authenticated user's id
	UserIDKey = "user_id"
	// UserRoleKey is the context key for the authenticated user's role
	UserRoleKey = "user_role"

	// RoleCustomer can place and edit their own orders
	RoleCustomer = "customer"
	// RoleCaterer can manage menus and view sales totals
	RoleCaterer = "caterer"
)

// Claims are the JWT claims carried by an access token
type Claims struct {
	UserID uint   `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate verifies the bearer token and stores the caller's
// identity and role on the request context.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, errors.NewUnauthorized("No token provided", "token"))
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortWithError(c, errors.NewUnauthorized("Failed to authenticate token", "token"))
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose role does not match
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserRoleKey) != role {
			abortWithError(c, errors.NewForbidden(
				"Forbidden, you don't have the priviledge to perform this operation"))
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated caller's id and role
func Identity(c *gin.Context) (uint, string) {
	id, _ := c.Get(UserIDKey)
	userID, _ := id.(uint)
	return userID, c.GetString(UserRoleKey)
}

// IssueToken signs an access token for the given identity. Login and
// signup live in a separate auth service; this is here for tooling
// and tests.
func IssueToken(secret string, userID uint, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
	})
	return token.SignedString([]byte(secret))
}

func abortWithError(c *gin.Context, err *errors.AppError) {
	status, body := errors.ToJSON(err)
	c.Header(TraceIDHeader, c.GetString(TraceIDKey))
	c.Abort()
	c.Data(status, "application/json", body)
}
