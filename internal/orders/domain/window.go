package domain

import "time"

// EditPolicy decides whether an order is still inside its edit window.
// The window length is injected from configuration; the policy itself
// is a pure function of the order snapshot and the current time.
type EditPolicy struct {
	Window time.Duration
}

// NewEditPolicy creates a policy with the given window duration
func NewEditPolicy(window time.Duration) EditPolicy {
	return EditPolicy{Window: window}
}

// IsEditable reports whether the order may still be modified at now.
// The boundary instant now == createdAt + window is not editable.
func (p EditPolicy) IsEditable(o *Order, now time.Time) bool {
	if o.Expired {
		return false
	}
	return now.Sub(o.CreatedAt) < p.Window
}

// ShouldExpire reports whether the order must transition to expired
// at now. An already-expired order never needs the transition again.
func (p EditPolicy) ShouldExpire(o *Order, now time.Time) bool {
	if o.Expired {
		return false
	}
	return now.Sub(o.CreatedAt) >= p.Window
}
