package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/eniolaomotee/Bookly/internal/service/auth"
	"github.com/eniolaomotee/Bookly/internal/testutil"
	"github.com/eniolaomotee/Bookly/tests/e2e"
)

const (
	LoginURL   = "/api/v1/auth/login"
	RefreshURL = "/api/v1/auth/refresh-token"
	MeURL      = "/api/v1/auth/me"
	LogoutURL  = "/api/v1/auth/logout"
)

func signupUser(t *testing.T, s e2e.Services, email string, password string) {
	t.Helper()

	_, err := s.Auth.Signup(t.Context(), auth.SignupParams{
		Username:  "reader",
		Email:     email,
		FirstName: "Avid",
		LastName:  "Reader",
		Password:  password,
	})
	require.NoError(t, err)
}

func login(t *testing.T, srvURL string, email string, password string) (access string, refresh string) {
	t.Helper()

	data := `{"email": "` + email + `", "password": "` + password + `"}`
	resp, err := http.Post(srvURL+LoginURL, "application/json", strings.NewReader(data))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equalf(t, http.StatusOK, resp.StatusCode, "login failed. Body: %s", string(body))

	var parsed struct {
		Message      string `json:"message"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			Email string `json:"email"`
			UID   string `json:"uid"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, "Login successful", parsed.Message)
	require.Equal(t, email, parsed.User.Email)
	require.NotEmpty(t, parsed.AccessToken)
	require.NotEmpty(t, parsed.RefreshToken)

	return parsed.AccessToken, parsed.RefreshToken
}

func doGet(t *testing.T, url string, bearer string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, string(body)
}

func Test_AuthSession(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	e2e.ServeWithTx(pg.Pool, t, func(tx pgx.Tx, srvURL string, s e2e.Services) {
		t.Run("login with wrong password fails", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				signupUser(t, s, "reader@example.com", "StrongEnoughPassword")

				data := `{"email": "reader@example.com", "password": "WrongPassword"}`
				resp, err := http.Post(srvURL+LoginURL, "application/json", strings.NewReader(data))
				require.NoError(t, err)
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				defer func() { _ = resp.Body.Close() }()

				require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "not expected code. Body: %s", string(body))
				require.JSONEq(t, `
					{
						"message": "Invalid Email Or Password",
						"error_code": "invalid_email_or_password"
					}`, string(body))
			})
		})

		t.Run("me with access token", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				signupUser(t, s, "reader@example.com", "StrongEnoughPassword")
				access, _ := login(t, srvURL, "reader@example.com", "StrongEnoughPassword")

				code, body := doGet(t, srvURL+MeURL, access)
				require.Equalf(t, http.StatusOK, code, "not expected code. Body: %s", body)
				require.Contains(t, body, `"email":"reader@example.com"`)
				require.Contains(t, body, `"books":[]`)
			})
		})

		t.Run("me without token fails", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				code, body := doGet(t, srvURL+MeURL, "")
				require.Equalf(t, http.StatusUnauthorized, code, "not expected code. Body: %s", body)
				require.Contains(t, body, "access_token_required")
			})
		})

		t.Run("refresh token issues new access token", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				signupUser(t, s, "reader@example.com", "StrongEnoughPassword")
				_, refresh := login(t, srvURL, "reader@example.com", "StrongEnoughPassword")

				code, body := doGet(t, srvURL+RefreshURL, refresh)
				require.Equalf(t, http.StatusOK, code, "not expected code. Body: %s", body)

				var parsed struct {
					AccessToken string `json:"access_token"`
				}
				require.NoError(t, json.Unmarshal([]byte(body), &parsed))
				require.NotEmpty(t, parsed.AccessToken)

				// The issued token must pass the access guard
				code, body = doGet(t, srvURL+MeURL, parsed.AccessToken)
				require.Equalf(t, http.StatusOK, code, "not expected code. Body: %s", body)
			})
		})

		t.Run("access token on refresh guard fails", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				signupUser(t, s, "reader@example.com", "StrongEnoughPassword")
				access, _ := login(t, srvURL, "reader@example.com", "StrongEnoughPassword")

				code, body := doGet(t, srvURL+RefreshURL, access)
				require.Equalf(t, http.StatusForbidden, code, "not expected code. Body: %s", body)
				require.Contains(t, body, "refresh_token_required")
			})
		})

		t.Run("logout revokes access token", func(t *testing.T) {
			testutil.WithTx(tx, t, func(_ pgx.Tx) {
				signupUser(t, s, "reader@example.com", "StrongEnoughPassword")
				access, _ := login(t, srvURL, "reader@example.com", "StrongEnoughPassword")

				code, body := doGet(t, srvURL+LogoutURL, access)
				require.Equalf(t, http.StatusOK, code, "not expected code. Body: %s", body)
				require.Contains(t, body, "Logged Out Successfully")

				code, body = doGet(t, srvURL+MeURL, access)
				require.Equalf(t, http.StatusUnauthorized, code, "not expected code. Body: %s", body)
				require.Contains(t, body, "token_revoked")
			})
		})
	})
}
