// Package entitlement resolves a user's subscription into the concrete
// feature bundle the rest of the app consults. Resolution is pure: callers
// load the subscription and plan, the resolver only computes.
package entitlement

// Limit is a usage cap. Negative values mean unlimited; the catalog stores
// -1 by convention.
type Limit int

// Unlimited is the catalog sentinel for caps that do not apply.
const Unlimited Limit = -1

// IsUnlimited reports whether the cap never blocks.
func (l Limit) IsUnlimited() bool {
	return l < 0
}

// Allows reports whether one more unit fits under the cap given current use.
func (l Limit) Allows(used int) bool {
	if l.IsUnlimited() {
		return true
	}
	return used < int(l)
}

// Remaining returns how many units are left, floored at zero so overshoot
// (e.g. after a downgrade) never renders as a negative quota.
func (l Limit) Remaining(used int) int {
	if l.IsUnlimited() {
		return -1
	}
	left := int(l) - used
	if left < 0 {
		return 0
	}
	return left
}

// Int returns the raw catalog value, -1 for unlimited.
func (l Limit) Int() int {
	if l.IsUnlimited() {
		return -1
	}
	return int(l)
}
