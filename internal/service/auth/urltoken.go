package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
)

// Salt namespaces url tokens away from session tokens: a signature made
// with this codec can never validate as a session token and vice versa.
const urlTokenSalt = "email-verification"

// URLTokenCodec signs small payloads into opaque url-safe strings for
// one-shot links (email verification, password reset). The payload has no
// embedded expiry; the decode side enforces a max age instead.
type URLTokenCodec struct {
	key []byte

	// Overridable in tests
	now func() time.Time
}

func NewURLTokenCodec(secret string) (*URLTokenCodec, error) {
	if secret == "" {
		return nil, errors.New("secret key must not be empty")
	}

	// Derive a dedicated key so the shared secret is never used raw
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(urlTokenSalt))

	return &URLTokenCodec{
		key: mac.Sum(nil),
		now: time.Now,
	}, nil
}

// Issue serializes payload as payload.timestamp.signature,
// each part base64url encoded.
func (c *URLTokenCodec) Issue(payload map[string]string) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error while encoding url token payload. Err: %w", err)
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(c.now().Unix()))

	enc := base64.RawURLEncoding
	body := enc.EncodeToString(data) + "." + enc.EncodeToString(ts)

	return body + "." + enc.EncodeToString(c.sign(body)), nil
}

// Decode verifies the signature and that the token is not older than
// maxAge. Tampered, malformed or stale tokens all fail the same way.
func (c *URLTokenCodec) Decode(token string, maxAge time.Duration) (map[string]string, error) {
	fail := func() (map[string]string, error) {
		return nil, fmt.Errorf("url token rejected: %w", apperrors.ErrInvalidToken)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fail()
	}
	body := parts[0] + "." + parts[1]

	enc := base64.RawURLEncoding
	sig, err := enc.DecodeString(parts[2])
	if err != nil || !hmac.Equal(sig, c.sign(body)) {
		return fail()
	}

	tsBytes, err := enc.DecodeString(parts[1])
	if err != nil || len(tsBytes) != 8 {
		return fail()
	}

	issuedAt := time.Unix(int64(binary.BigEndian.Uint64(tsBytes)), 0)
	if c.now().Sub(issuedAt) > maxAge {
		return fail()
	}

	data, err := enc.DecodeString(parts[0])
	if err != nil {
		return fail()
	}

	var payload map[string]string
	if err := json.Unmarshal(data, &payload); err != nil {
		return fail()
	}

	return payload, nil
}

func (c *URLTokenCodec) sign(body string) []byte {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(body))
	return mac.Sum(nil)
}
