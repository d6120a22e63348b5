package entity

// ChallengePurpose identifies what a stored challenge can be used for.
type ChallengePurpose int16

const (
	ChallengePurposeUnknown ChallengePurpose = iota
	// ChallengePurposeRegistration guards a pending registration.
	ChallengePurposeRegistration
	// ChallengePurposePasswordReset guards a password reset request.
	ChallengePurposePasswordReset
	// ChallengePurposePasswordResetGrant authorizes setting a new password
	// after the reset code has been validated.
	ChallengePurposePasswordResetGrant
)

// String returns the purpose name used in store keys and logs.
func (p ChallengePurpose) String() string {
	switch p {
	case ChallengePurposeRegistration:
		return "registration"
	case ChallengePurposePasswordReset:
		return "password_reset"
	case ChallengePurposePasswordResetGrant:
		return "password_reset_grant"
	default:
		return "unknown"
	}
}
