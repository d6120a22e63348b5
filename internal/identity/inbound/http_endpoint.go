package inbound

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/codewithraj/blog/internal/identity/usecase"
	"github.com/codewithraj/blog/internal/pkg/goerror"
	"github.com/codewithraj/blog/internal/pkg/router"
	"github.com/codewithraj/blog/internal/pkg/view"
)

const (
	flowRegister = "register"
	flowReset    = "reset"
)

// HTTPEndpoint serves the registration, login and password reset pages.
type HTTPEndpoint struct {
	uc uc
}

func flashDanger(msg string) []view.Flash {
	return []view.Flash{{Category: "danger", Message: msg}}
}

func flashSuccess(msg string) []view.Flash {
	return []view.Flash{{Category: "success", Message: msg}}
}

// businessError unwraps a structured business error, or returns nil so the
// caller can fall through to the generic error page.
func businessError(err error) *goerror.Error {
	var gerr *goerror.Error
	if errors.As(err, &gerr) && gerr.Type() != goerror.TypeServer {
		return gerr
	}
	return nil
}

func verifyOTPPath(flow, email string) string {
	return "/verify-otp?flow=" + url.QueryEscape(flow) + "&email=" + url.QueryEscape(email)
}

type otpPageContent struct {
	Flow  string
	Email string
}

type resetPageContent struct {
	Email string
	Token string
}

func (h *HTTPEndpoint) RegisterPage(r *router.Request) (*router.Response, error) {
	return &router.Response{Page: "register.html", Title: "Register"}, nil
}

func (h *HTTPEndpoint) Register(r *router.Request) (*router.Response, error) {
	name := r.GetForm("name")
	email := r.GetForm("email")

	err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FullName: name,
		Email:    email,
		Password: r.GetForm("password"),
	})
	if err == nil {
		return &router.Response{
			RedirectTo: verifyOTPPath(flowRegister, email),
			Flashes:    flashSuccess("An OTP has been sent to your email address."),
		}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	switch gerr.Code() {
	case goerror.CodeInvalidInput:
		return &router.Response{
			Status: http.StatusUnprocessableEntity,
			Page:   "register.html",
			Title:  "Register",
			Errors: formErrors(gerr),
			Form:   map[string]string{"name": name, "email": email},
		}, nil
	case goerror.CodeConflict:
		return &router.Response{RedirectTo: "/login", Flashes: flashDanger(gerr.Msg())}, nil
	default:
		return &router.Response{
			Page:    "register.html",
			Title:   "Register",
			Flashes: flashDanger(gerr.Msg()),
			Form:    map[string]string{"name": name, "email": email},
		}, nil
	}
}

func (h *HTTPEndpoint) VerifyOTPPage(r *router.Request) (*router.Response, error) {
	flow := r.GetQuery("flow")
	if flow != flowReset {
		flow = flowRegister
	}

	return &router.Response{
		Page:    "verify-otp.html",
		Title:   "Verify OTP",
		Content: otpPageContent{Flow: flow, Email: r.GetQuery("email")},
	}, nil
}

func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (*router.Response, error) {
	flow := r.GetForm("flow")
	email := r.GetForm("email")
	code := r.GetForm("otp")

	if flow == flowReset {
		return h.verifyResetOTP(r, email, code)
	}
	return h.verifyRegisterOTP(r, email, code)
}

func (h *HTTPEndpoint) verifyRegisterOTP(r *router.Request, email, code string) (*router.Response, error) {
	out, err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{Email: email, Code: code})
	if err == nil {
		return &router.Response{
			RedirectTo: "/",
			Flashes:    flashSuccess("Welcome, your account has been created."),
			Cookies:    []*http.Cookie{router.NewSessionCookie(out.Token, time.Until(out.ExpiresAt))},
		}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	switch gerr.Code() {
	case goerror.CodeMismatch:
		return &router.Response{
			RedirectTo: verifyOTPPath(flowRegister, email),
			Flashes:    flashDanger(gerr.Msg()),
		}, nil
	default:
		return &router.Response{RedirectTo: "/register", Flashes: flashDanger(gerr.Msg())}, nil
	}
}

func (h *HTTPEndpoint) verifyResetOTP(r *router.Request, email, code string) (*router.Response, error) {
	out, err := h.uc.PasswordForgotVerify(r.Context(), usecase.PasswordForgotVerifyInput{Email: email, Code: code})
	if err == nil {
		// The grant token is consumable once, so it travels in a hidden form
		// field on the rendered page rather than a redirect query string that
		// would end up in access logs and browser history.
		return &router.Response{
			Page:    "reset-password.html",
			Title:   "Reset Password",
			Content: resetPageContent{Email: email, Token: out.ResetToken},
		}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	switch gerr.Code() {
	case goerror.CodeMismatch:
		return &router.Response{
			RedirectTo: verifyOTPPath(flowReset, email),
			Flashes:    flashDanger(gerr.Msg()),
		}, nil
	default:
		return &router.Response{RedirectTo: "/forgot-password", Flashes: flashDanger(gerr.Msg())}, nil
	}
}

func (h *HTTPEndpoint) LoginPage(r *router.Request) (*router.Response, error) {
	return &router.Response{Page: "login.html", Title: "Log In"}, nil
}

func (h *HTTPEndpoint) Login(r *router.Request) (*router.Response, error) {
	email := r.GetForm("email")

	out, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    email,
		Password: r.GetForm("password"),
	})
	if err == nil {
		return &router.Response{
			RedirectTo: "/",
			Cookies:    []*http.Cookie{router.NewSessionCookie(out.Token, time.Until(out.ExpiresAt))},
		}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	if gerr.Code() == goerror.CodeInvalidInput {
		return &router.Response{
			Status: http.StatusUnprocessableEntity,
			Page:   "login.html",
			Title:  "Log In",
			Errors: formErrors(gerr),
			Form:   map[string]string{"email": email},
		}, nil
	}

	return &router.Response{
		Page:    "login.html",
		Title:   "Log In",
		Flashes: flashDanger(gerr.Msg()),
		Form:    map[string]string{"email": email},
	}, nil
}

func (h *HTTPEndpoint) Logout(r *router.Request) (*router.Response, error) {
	return &router.Response{
		RedirectTo: "/",
		Cookies:    []*http.Cookie{router.ExpiredSessionCookie()},
	}, nil
}

func (h *HTTPEndpoint) ForgotPasswordPage(r *router.Request) (*router.Response, error) {
	return &router.Response{Page: "forgot-password.html", Title: "Forgot Password"}, nil
}

func (h *HTTPEndpoint) ForgotPassword(r *router.Request) (*router.Response, error) {
	email := r.GetForm("email")

	err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: email})
	if err == nil {
		return &router.Response{
			RedirectTo: verifyOTPPath(flowReset, email),
			Flashes:    flashSuccess("An OTP has been sent to your email address."),
		}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	if gerr.Code() == goerror.CodeInvalidInput {
		return &router.Response{
			Status: http.StatusUnprocessableEntity,
			Page:   "forgot-password.html",
			Title:  "Forgot Password",
			Errors: formErrors(gerr),
			Form:   map[string]string{"email": email},
		}, nil
	}

	return &router.Response{
		Page:    "forgot-password.html",
		Title:   "Forgot Password",
		Flashes: flashDanger(gerr.Msg()),
		Form:    map[string]string{"email": email},
	}, nil
}

func (h *HTTPEndpoint) ResetPasswordPage(r *router.Request) (*router.Response, error) {
	return &router.Response{
		Page:    "reset-password.html",
		Title:   "Reset Password",
		Content: resetPageContent{Email: r.GetQuery("email")},
	}, nil
}

func (h *HTTPEndpoint) ResetPassword(r *router.Request) (*router.Response, error) {
	email := r.GetForm("email")
	token := r.GetForm("token")

	err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		Email:      email,
		ResetToken: token,
		Password:   r.GetForm("password"),
	})
	if err == nil {
		return &router.Response{
			RedirectTo: "/login",
			Flashes:    flashSuccess("Your password has been updated, please log in."),
		}, nil
	}

	gerr := businessError(err)
	if gerr == nil {
		return nil, err
	}

	if gerr.Code() == goerror.CodeInvalidInput {
		return &router.Response{
			Status:  http.StatusUnprocessableEntity,
			Page:    "reset-password.html",
			Title:   "Reset Password",
			Errors:  formErrors(gerr),
			Content: resetPageContent{Email: email, Token: token},
		}, nil
	}

	return &router.Response{RedirectTo: "/forgot-password", Flashes: flashDanger(gerr.Msg())}, nil
}

// formErrors maps validation failures onto the form field names used by the
// templates.
func formErrors(gerr *goerror.Error) map[string]string {
	fields := gerr.Fields()
	if fields == nil {
		return nil
	}

	out := make(map[string]string, len(fields))
	for field, msg := range fields {
		if field == "full_name" {
			field = "name"
		}
		if field == "reset_token" {
			field = "token"
		}
		out[field] = msg
	}

	return out
}
