package gate

import (
	"testing"

	"github.com/codewithraj/blog/internal/pkg/jwt"
)

func TestCheckAnonymous(t *testing.T) {
	g := New(1)

	if got := g.Check(nil); got != Forbidden {
		t.Fatalf("Check(nil) = %v, want Forbidden", got)
	}
}

func TestCheckPrivileged(t *testing.T) {
	g := New(1)

	if got := g.Check(&jwt.Claims{UserID: 1}); got != Allow {
		t.Fatalf("Check(owner) = %v, want Allow", got)
	}
}

func TestCheckOtherUser(t *testing.T) {
	g := New(1)

	if got := g.Check(&jwt.Claims{UserID: 2}); got != Forbidden {
		t.Fatalf("Check(other) = %v, want Forbidden", got)
	}
}

func TestCheckCustomPrivilegedID(t *testing.T) {
	g := New(42)

	if got := g.Check(&jwt.Claims{UserID: 42}); got != Allow {
		t.Fatalf("Check(42) = %v, want Allow", got)
	}
	if got := g.Check(&jwt.Claims{UserID: 1}); got != Forbidden {
		t.Fatalf("Check(1) = %v, want Forbidden", got)
	}
}

func TestNewFallsBackToFirstAccount(t *testing.T) {
	g := New(0)

	if got := g.Check(&jwt.Claims{UserID: 1}); got != Allow {
		t.Fatalf("Check(1) with zero config = %v, want Allow", got)
	}
}
