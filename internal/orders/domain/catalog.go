package domain

// User is the owning-customer view the order service needs: enough to
// verify the account exists and denormalize the customer name.
type User struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

// Meal is the menu-item view the order service needs
type Meal struct {
	ID    uint
	Name  string
	Price int64
}
