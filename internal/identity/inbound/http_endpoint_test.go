package inbound

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/codewithraj/blog/internal/identity/usecase"
	"github.com/codewithraj/blog/internal/pkg/router"
)

type fakeUC struct {
	forgotVerifyOut *usecase.PasswordForgotVerifyOutput
	forgotVerifyErr error
}

func (f *fakeUC) Register(context.Context, usecase.RegisterInput) error { return nil }

func (f *fakeUC) RegisterVerify(context.Context, usecase.RegisterVerifyInput) (*usecase.AuthOutput, error) {
	return nil, nil
}

func (f *fakeUC) Login(context.Context, usecase.LoginInput) (*usecase.AuthOutput, error) {
	return nil, nil
}

func (f *fakeUC) PasswordForgot(context.Context, usecase.PasswordForgotInput) error { return nil }

func (f *fakeUC) PasswordForgotVerify(context.Context, usecase.PasswordForgotVerifyInput) (*usecase.PasswordForgotVerifyOutput, error) {
	return f.forgotVerifyOut, f.forgotVerifyErr
}

func (f *fakeUC) PasswordReset(context.Context, usecase.PasswordResetInput) error { return nil }

func postForm(target string, form url.Values) *router.Request {
	re := httptest.NewRequest("POST", target, strings.NewReader(form.Encode()))
	re.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return &router.Request{Request: re}
}

func TestVerifyOTPResetKeepsGrantOutOfQueryString(t *testing.T) {
	end := &HTTPEndpoint{uc: &fakeUC{
		forgotVerifyOut: &usecase.PasswordForgotVerifyOutput{ResetToken: "grant-abc123"},
	}}

	resp, err := end.VerifyOTP(postForm("/verify-otp", url.Values{
		"flow":  {flowReset},
		"email": {"jane@example.com"},
		"otp":   {"123456"},
	}))
	if err != nil {
		t.Fatalf("VerifyOTP() error = %v", err)
	}

	// The grant token authorizes one password change, so it must travel in
	// the rendered form rather than a redirect URL.
	if resp.RedirectTo != "" {
		t.Errorf("VerifyOTP() RedirectTo = %q, want rendered page", resp.RedirectTo)
	}
	if resp.Page != "reset-password.html" {
		t.Errorf("VerifyOTP() Page = %q, want reset-password.html", resp.Page)
	}

	content, ok := resp.Content.(resetPageContent)
	if !ok {
		t.Fatalf("VerifyOTP() Content = %T, want resetPageContent", resp.Content)
	}
	if content.Email != "jane@example.com" || content.Token != "grant-abc123" {
		t.Errorf("VerifyOTP() Content = %+v, want email and grant token", content)
	}
}

func TestResetPasswordPageIgnoresTokenQuery(t *testing.T) {
	end := &HTTPEndpoint{uc: &fakeUC{}}

	re := httptest.NewRequest("GET", "/reset-password?email=jane%40example.com&token=stale", nil)
	resp, err := end.ResetPasswordPage(&router.Request{Request: re})
	if err != nil {
		t.Fatalf("ResetPasswordPage() error = %v", err)
	}

	content, ok := resp.Content.(resetPageContent)
	if !ok {
		t.Fatalf("ResetPasswordPage() Content = %T, want resetPageContent", resp.Content)
	}
	if content.Email != "jane@example.com" {
		t.Errorf("ResetPasswordPage() Email = %q, want jane@example.com", content.Email)
	}
	if content.Token != "" {
		t.Errorf("ResetPasswordPage() Token = %q, want empty", content.Token)
	}
}
