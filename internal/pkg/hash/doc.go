// Package hash hashes and verifies secrets behind a single interface.
//
// Two implementations cover the application's needs: bcrypt for stored
// passwords, and HMAC-SHA256 for one-time codes and reset tokens where a
// deterministic hash is wanted so the store never holds the plaintext.
package hash
