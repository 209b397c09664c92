package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/models"
)

const (
	defaultAccessTokenTTL  = time.Hour
	defaultRefreshTokenTTL = 48 * time.Hour
	defaultSigningMethod   = "HS256"
)

// User payload embedded in every session token.
// Role is set on access tokens only.
type UserClaims struct {
	Email  string `json:"email"`
	UserID string `json:"user_uid"`
	Role   string `json:"role,omitempty"`
}

type SessionClaims struct {
	jwt.RegisteredClaims
	User    UserClaims `json:"user"`
	Refresh bool       `json:"refresh"`
}

// Token manager config with sensible defaults
type TokenManagerConfig struct {
	// Secret key to sign session token payloads
	// Required to be set
	SecretKey string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set then default is used
	Alg string

	// Access and refresh token lifetimes
	// If not set then default is used
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenManager issues and validates signed session tokens.
// Every token carries a unique id (jti) used as the revocation key.
type TokenManager struct {
	key        string
	alg        jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(cfg TokenManagerConfig) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}
	alg := jwt.GetSigningMethod(cfg.Alg)
	if alg == nil {
		return nil, fmt.Errorf("unknown signing method: %q", cfg.Alg)
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, defaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, defaultRefreshTokenTTL)

	return &TokenManager{
		key:        cfg.SecretKey,
		alg:        alg,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// Issue signs a session token for the user claims.
// refresh=false: access token, role included, short lifetime.
// refresh=true: refresh token, no role, long lifetime.
func (m *TokenManager) Issue(user UserClaims, refresh bool) (models.IssuedToken, error) {
	now := time.Now().Truncate(time.Second)

	ttl := m.accessTTL
	if refresh {
		ttl = m.refreshTTL
		user.Role = ""
	}
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(
		m.alg,
		SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(expiresAt),
			},
			User:    user,
			Refresh: refresh,
		},
	)

	signed, err := token.SignedString([]byte(m.key))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing session token. Err: %w", err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Parse validates signature, expiry and signing method.
// Any failure collapses to apperrors.ErrInvalidToken: a token that
// does not fully verify must never be partially decoded.
func (m *TokenManager) Parse(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(m.key), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("session token rejected: %w", apperrors.ErrInvalidToken)
	}

	return claims, nil
}
