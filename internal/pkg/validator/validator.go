package validator

// Validator validates a struct using its validate tags.
type Validator interface {
	// Validate returns nil when data passes, or a field-to-message error.
	Validate(data any) error
}
