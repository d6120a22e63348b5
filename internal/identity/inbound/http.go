package inbound

import (
	"context"

	"github.com/codewithraj/blog/internal/identity/usecase"
	"github.com/codewithraj/blog/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) (*usecase.AuthOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.AuthOutput, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error
	PasswordForgotVerify(ctx context.Context, in usecase.PasswordForgotVerifyInput) (*usecase.PasswordForgotVerifyOutput, error)
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/register", end.RegisterPage)
	r.POST("/register", end.Register)

	r.GET("/verify-otp", end.VerifyOTPPage)
	r.POST("/verify-otp", end.VerifyOTP)

	r.GET("/login", end.LoginPage)
	r.POST("/login", end.Login)
	r.GET("/logout", end.Logout)

	r.GET("/forgot-password", end.ForgotPasswordPage)
	r.POST("/forgot-password", end.ForgotPassword)

	r.GET("/reset-password", end.ResetPasswordPage)
	r.POST("/reset-password", end.ResetPassword)
}
