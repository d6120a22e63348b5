// Package mail sends email messages behind a provider-agnostic interface.
//
// Callers build a Message and hand it to Mail; the SMTP implementation in
// this package does the delivery. Keeping the interface small lets tests
// swap in a recording fake.
package mail
