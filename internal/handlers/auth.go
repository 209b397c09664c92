package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/handlers/authctx"
	"github.com/eniolaomotee/Bookly/internal/handlers/render"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/service/auth"
)

type authService interface {
	// Create unverified user and mail a verification link
	// Has to return apperrors.ErrUserAlreadyExists if the email is taken
	Signup(ctx context.Context, arg auth.SignupParams) (models.User, error)

	// Mark the account from the url token as verified
	VerifyEmail(ctx context.Context, token string) error

	// Check credentials and issue access/refresh pair
	// Unknown email or wrong password: apperrors.ErrInvalidCredentials
	Login(ctx context.Context, email string, password string) (models.TokenPair, models.User, error)

	// Issue a new access token from validated refresh claims
	Refresh(ctx context.Context, claims *auth.SessionClaims) (models.IssuedToken, error)

	// Revoke the token id
	Logout(ctx context.Context, jti string) error

	// Password reset flows
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token string, newPassword string, confirmPassword string) error

	// Mail a greeting to the addresses
	SendWelcome(ctx context.Context, addresses []string) error
}

type userBooksLister interface {
	ListUserBooks(ctx context.Context, userID uuid.UUID) ([]models.Book, error)
}

type AuthHandler struct {
	auth  authService
	books userBooksLister
}

func NewAuth(auth authService, books userBooksLister) *AuthHandler {
	return &AuthHandler{auth: auth, books: books}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	type SignupRequest struct {
		Username  string `json:"username" validate:"required,max=50"`
		Email     string `json:"email" validate:"required,email"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Password  string `json:"password" validate:"required,min=6"`
	}
	type SignupResponse struct {
		Message string   `json:"message"`
		User    userView `json:"user"`
	}

	data, err := render.BindAndValidate[SignupRequest](w, r)
	if err != nil {
		return
	}

	user, err := h.auth.Signup(r.Context(), auth.SignupParams{
		Username:  data.Username,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Password:  data.Password,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSONWithStatus(w, SignupResponse{
		Message: "Account Created! Check email to verify your account",
		User:    newUserView(user),
	}, http.StatusCreated)
}

func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	type VerifyResponse struct {
		Message string `json:"message"`
	}

	if err := h.auth.VerifyEmail(r.Context(), r.PathValue("token")); err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, VerifyResponse{Message: "Account verified successfully"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	type LoginUser struct {
		Email string `json:"email"`
		UID   string `json:"uid"`
	}
	type LoginResponse struct {
		Message      string    `json:"message"`
		AccessToken  string    `json:"access_token"`
		RefreshToken string    `json:"refresh_token"`
		User         LoginUser `json:"user"`
	}

	data, err := render.BindAndValidate[LoginRequest](w, r)
	if err != nil {
		return
	}

	pair, user, err := h.auth.Login(r.Context(), data.Email, data.Password)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, LoginResponse{
		Message:      "Login successful",
		AccessToken:  pair.Access.Value,
		RefreshToken: pair.Refresh.Value,
		User:         LoginUser{Email: user.Email, UID: user.ID.String()},
	})
}

// Refresh expects validated refresh token claims in the context,
// so it must be mounted behind the refresh token guard
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	type RefreshResponse struct {
		AccessToken string `json:"access_token"`
	}

	claims, ok := authctx.ClaimsFromContext(r.Context())
	if !ok {
		render.Error(w, apperrors.ErrRefreshTokenRequired)
		return
	}

	access, err := h.auth.Refresh(r.Context(), claims)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, RefreshResponse{AccessToken: access.Value})
}

// Me returns the current user with the books they submitted.
// The role guard resolves the user and puts it into the context.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	type MeResponse struct {
		userView
		Books []bookView `json:"books"`
	}

	user, ok := authctx.UserFromContext(r.Context())
	if !ok {
		render.Error(w, apperrors.ErrAccessTokenRequired)
		return
	}

	books, err := h.books.ListUserBooks(r.Context(), user.ID)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, MeResponse{userView: newUserView(user), Books: newBookViews(books)})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	type LogoutResponse struct {
		Message string `json:"message"`
	}

	claims, ok := authctx.ClaimsFromContext(r.Context())
	if !ok {
		render.Error(w, apperrors.ErrAccessTokenRequired)
		return
	}

	if err := h.auth.Logout(r.Context(), claims.ID); err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, LogoutResponse{Message: "Logged Out Successfully"})
}

func (h *AuthHandler) PasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	type ResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}
	type ResetResponse struct {
		Message string `json:"message"`
	}

	data, err := render.BindAndValidate[ResetRequest](w, r)
	if err != nil {
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), data.Email); err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, ResetResponse{Message: "Please check your email for instructions to reset your password"})
}

func (h *AuthHandler) PasswordResetConfirm(w http.ResponseWriter, r *http.Request) {
	type ConfirmRequest struct {
		NewPassword        string `json:"new_password" validate:"required,min=6"`
		ConfirmNewPassword string `json:"confirm_new_password" validate:"required"`
	}
	type ConfirmResponse struct {
		Message string `json:"message"`
	}

	data, err := render.BindAndValidate[ConfirmRequest](w, r)
	if err != nil {
		return
	}

	err = h.auth.ConfirmPasswordReset(r.Context(), r.PathValue("token"), data.NewPassword, data.ConfirmNewPassword)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, ConfirmResponse{Message: "Password reset Successfully"})
}

func (h *AuthHandler) SendMail(w http.ResponseWriter, r *http.Request) {
	type SendMailRequest struct {
		Addresses []string `json:"addresses" validate:"required,min=1,dive,email"`
	}
	type SendMailResponse struct {
		Message string `json:"message"`
	}

	data, err := render.BindAndValidate[SendMailRequest](w, r)
	if err != nil {
		return
	}

	if err := h.auth.SendWelcome(r.Context(), data.Addresses); err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, SendMailResponse{Message: "Email sent successfully"})
}
