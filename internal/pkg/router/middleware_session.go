package router

import (
	"net/http"

	"github.com/codewithraj/blog/internal/pkg/jwt"
)

// middlewareSession reads the session cookie and, when valid, attaches the
// claims to the request context. It never rejects a request: authorization is
// enforced in the use-case layer, and an invalid cookie just means anonymous.
func middlewareSession(verifier jwt.JWT) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				http.SetCookie(w, ExpiredSessionCookie())
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
