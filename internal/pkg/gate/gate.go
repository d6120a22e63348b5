// Package gate decides whether a session may perform privileged actions.
//
// The application has a single privileged identity (the site owner). The
// check is a pure function of the session claims: no database lookup, no
// panic recovery. An anonymous session is an ordinary Forbidden outcome.
package gate

import "github.com/codewithraj/blog/internal/pkg/jwt"

// Decision is the outcome of an access check.
type Decision int

const (
	// Forbidden denies the action.
	Forbidden Decision = iota
	// Allow permits the action.
	Allow
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	if d == Allow {
		return "ALLOW"
	}
	return "FORBIDDEN"
}

// Gate checks privileged access against a configured identity.
type Gate struct {
	privilegedID int64
}

// New returns a Gate allowing only the given user ID. A non-positive id
// falls back to 1, the first registered account.
func New(privilegedID int64) *Gate {
	if privilegedID <= 0 {
		privilegedID = 1
	}
	return &Gate{privilegedID: privilegedID}
}

// Check returns Allow only when claims belong to the privileged identity.
// A nil claims value means an anonymous session and is Forbidden.
func (g *Gate) Check(claims *jwt.Claims) Decision {
	if claims == nil {
		return Forbidden
	}
	if claims.UserID != g.privilegedID {
		return Forbidden
	}
	return Allow
}
