// Package otp generates short numeric one-time codes meant to be delivered
// out of band (email) and verified once.
package otp
