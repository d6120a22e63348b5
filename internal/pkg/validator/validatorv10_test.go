package validator

import (
	"errors"
	"strings"
	"testing"
)

type sampleForm struct {
	FullName string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

func TestValidatePasses(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	err = v.Validate(sampleForm{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Password: "longenoughpassword",
	})
	if err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidateFieldKeysAreSnakeCase(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	err = v.Validate(sampleForm{Email: "not-an-email", Password: "short"})
	if err == nil {
		t.Fatal("Validate() should fail")
	}

	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error should be V10ValidationError, got %T", err)
	}

	for _, key := range []string{"full_name", "email", "password"} {
		if _, ok := verr[key]; !ok {
			t.Errorf("missing field key %q in %v", key, verr)
		}
	}
}

func TestValidatePasswordRule(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	tests := []struct {
		password string
		wantErr  bool
	}{
		{"1234567", true},
		{"12345678", false},
		{strings.Repeat("a", 72), false},
		{strings.Repeat("a", 73), true},
	}

	for _, tt := range tests {
		err := v.Validate(sampleForm{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
			Password: tt.password,
		})
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(password len %d) error = %v, wantErr %v", len(tt.password), err, tt.wantErr)
		}
	}
}
