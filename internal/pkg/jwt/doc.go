// Package jwt issues and verifies the session tokens carried in the browser
// cookie.
//
// It provides a Claims type (registered claims plus the signed-in user's
// identity), an HS512 signer/verifier, and context helpers the session
// middleware uses to expose optional claims to handlers.
package jwt
