package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/logger"
	"github.com/eniolaomotee/Bookly/internal/mail"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/repository"
)

const (
	// Validity windows for one-shot links
	verifyTokenMaxAge = 24 * time.Hour
	resetTokenMaxAge  = time.Hour

	// Deadline for background mail dispatch
	mailSendTimeout = 15 * time.Second
)

// Blocklist is the revocation store for session token ids
type Blocklist interface {
	Revoke(ctx context.Context, jti string) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Config struct {
	// Secret key to sign session and url token payloads
	SecretKey string

	// JWT MAC algorithm, HS256 if empty
	Alg string

	// Access and refresh token lifetimes
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Domain used in generated verification and reset links
	Domain string

	// Hasher to use during registration or login, bcrypt if nil
	Hasher PasswordHasher
}

// Auth service: signup, email verification, login, token refresh,
// logout and password reset flows
type AuthService struct {
	tokens    *TokenManager
	urltokens *URLTokenCodec
	hasher    PasswordHasher
	users     repository.UserRepo
	blocklist Blocklist
	mailer    mail.Mailer
	logger    logger.Logger
	domain    string
}

func NewService(cfg Config, users repository.UserRepo, blocklist Blocklist, mailer mail.Mailer, l logger.Logger) (*AuthService, error) {
	if users == nil || blocklist == nil || mailer == nil {
		return nil, errors.New("users repo, blocklist and mailer must not be nil")
	}

	tokens, err := NewTokenManager(TokenManagerConfig{
		SecretKey:  cfg.SecretKey,
		Alg:        cfg.Alg,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	if err != nil {
		return nil, err
	}

	urltokens, err := NewURLTokenCodec(cfg.SecretKey)
	if err != nil {
		return nil, err
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	if l == nil {
		l = logger.NewNoOpLogger()
	}

	return &AuthService{
		tokens:    tokens,
		urltokens: urltokens,
		hasher:    hasher,
		users:     users,
		blocklist: blocklist,
		mailer:    mailer,
		logger:    l,
		domain:    cfg.Domain,
	}, nil
}

type SignupParams struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Signup creates an unverified user with the default role and mails a
// verification link. Returns apperrors.ErrUserAlreadyExists if the email
// is taken.
func (s *AuthService) Signup(ctx context.Context, arg SignupParams) (models.User, error) {
	hash, err := s.hasher.Hash(arg.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("can't use this as password, error=%w", err)
	}

	user, err := s.users.CreateUser(ctx, repository.CreateUserParams{
		Username:     arg.Username,
		Email:        arg.Email,
		FirstName:    arg.FirstName,
		LastName:     arg.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, err
	}

	token, err := s.urltokens.Issue(map[string]string{"email": user.Email})
	if err != nil {
		return models.User{}, fmt.Errorf("error while issuing verification token. Err: %w", err)
	}

	link := fmt.Sprintf("http://%s/api/v1/auth/verify/%s", s.domain, token)
	body := fmt.Sprintf(`<h1>Verify your Email</h1>
<p>Please click this <a href="%s">link</a> to verify your email</p>`, link)

	s.sendMailAsync(ctx, []string{user.Email}, "Verify your Email", body)

	return user, nil
}

// VerifyEmail marks the account from the token payload as verified
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	payload, err := s.urltokens.Decode(token, verifyTokenMaxAge)
	if err != nil {
		return err
	}

	email := payload["email"]
	if email == "" {
		return fmt.Errorf("verification token has no email: %w", apperrors.ErrInvalidToken)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	verified := true
	if _, err := s.users.UpdateUser(ctx, user.ID, repository.UserPatch{IsVerified: &verified}); err != nil {
		return fmt.Errorf("error while marking user verified. Err: %w", err)
	}

	return nil
}

// Login checks the credentials and issues an access/refresh token pair.
// Unknown email and wrong password collapse into the same
// apperrors.ErrInvalidCredentials so callers can't probe for accounts.
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.TokenPair, models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.TokenPair{}, models.User{}, apperrors.ErrInvalidCredentials
		}
		return models.TokenPair{}, models.User{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return models.TokenPair{}, models.User{}, apperrors.ErrInvalidCredentials
	}

	claims := UserClaims{Email: user.Email, UserID: user.ID.String(), Role: user.Role}

	access, err := s.tokens.Issue(claims, false)
	if err != nil {
		return models.TokenPair{}, models.User{}, err
	}

	refresh, err := s.tokens.Issue(claims, true)
	if err != nil {
		return models.TokenPair{}, models.User{}, err
	}

	return models.TokenPair{Access: access, Refresh: refresh}, user, nil
}

// Refresh issues a fresh access token from validated refresh token claims.
// The role is taken from the embedded claims, not re-read from the store,
// so a role change shows up only after the next login.
func (s *AuthService) Refresh(ctx context.Context, claims *SessionClaims) (models.IssuedToken, error) {
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return models.IssuedToken{}, apperrors.ErrInvalidToken
	}

	return s.tokens.Issue(claims.User, false)
}

// Logout revokes the token id unconditionally
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	return s.blocklist.Revoke(ctx, jti)
}

// ParseToken validates a raw session token string
func (s *AuthService) ParseToken(token string) (*SessionClaims, error) {
	return s.tokens.Parse(token)
}

// IsRevoked reports whether the token id has been revoked
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.blocklist.IsRevoked(ctx, jti)
}

// RequestPasswordReset mails a reset link to any submitted address,
// registered or not, so the endpoint can't be used to enumerate accounts
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	token, err := s.urltokens.Issue(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("error while issuing reset token. Err: %w", err)
	}

	link := fmt.Sprintf("http://%s/api/v1/auth/password-reset-confirm/%s", s.domain, token)
	body := fmt.Sprintf(`<h1>Reset Your Password</h1>
<p>Please click this <a href="%s">link</a> to reset your password</p>`, link)

	s.sendMailAsync(ctx, []string{email}, "Password Reset", body)

	return nil
}

// ConfirmPasswordReset validates the confirmation pair and the reset token,
// then stores the new password hash
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token string, newPassword string, confirmPassword string) error {
	// Mismatch fails before the token is even decoded
	if newPassword != confirmPassword {
		return apperrors.ErrInvalidPassword
	}

	payload, err := s.urltokens.Decode(token, resetTokenMaxAge)
	if err != nil {
		return err
	}

	email := payload["email"]
	if email == "" {
		return fmt.Errorf("reset token has no email: %w", apperrors.ErrInvalidToken)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("can't use this as password, error=%w", err)
	}

	if _, err := s.users.UpdateUser(ctx, user.ID, repository.UserPatch{PasswordHash: &hash}); err != nil {
		return fmt.Errorf("error while storing new password. Err: %w", err)
	}

	return nil
}

// SendWelcome mails a greeting to the addresses
func (s *AuthService) SendWelcome(ctx context.Context, addresses []string) error {
	return s.mailer.Send(ctx, addresses, "Welcome to Bookly", "<h1>Welcome to the App</h1>")
}

// sendMailAsync dispatches mail in the background: delivery failures are
// logged and never surfaced to the HTTP caller
func (s *AuthService) sendMailAsync(ctx context.Context, recipients []string, subject string, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailSendTimeout)
		defer cancel()

		if err := s.mailer.Send(ctx, recipients, subject, body); err != nil {
			s.logger.Error("mail dispatch failed", "subject", subject, "error", err.Error())
		}
	}()
}
