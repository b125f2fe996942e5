package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkravets/video2mp3/internal/auth"
	"github.com/dkravets/video2mp3/internal/auth/token"
	"github.com/dkravets/video2mp3/internal/logging"
	"github.com/dkravets/video2mp3/internal/shared"
	"github.com/dkravets/video2mp3/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubUsers struct {
	user *users.User
}

func (s *stubUsers) Create(_ context.Context, u *users.User) (*users.User, error) {
	return u, nil
}

func (s *stubUsers) FindByUsername(_ context.Context, username string) (*users.User, error) {
	if s.user != nil && s.user.Email == username {
		c := *s.user
		return &c, nil
	}
	return nil, shared.ErrorNotFound
}

func newTestHandler() *Handler {
	repo := &stubUsers{user: &users.User{ID: "1", Email: "a@x.com", Password: "p1"}}
	verifier := auth.NewVerifier(repo, auth.PlaintextMatcher{}, auth.EveryoneAdmin{})
	service := auth.NewService(verifier, []byte(testSecret), 24*time.Hour)
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return NewHandler(service, logger)
}

func doRequest(t *testing.T, h *Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestLogin_MissingCredentials(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := doRequest(t, h, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing credentials", strings.TrimSpace(rec.Body.String()))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	h := newTestHandler()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "a@x.com", "wrong"},
		{"unknown user", "nobody@x.com", "p1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			req.SetBasicAuth(tc.username, tc.password)
			rec := doRequest(t, h, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "invalid credentials", strings.TrimSpace(rec.Body.String()))
		})
	}
}

func TestLogin_Success(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.SetBasicAuth("a@x.com", "p1")
	rec := doRequest(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	claims, err := token.Decode(string(body), []byte(testSecret))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Username)
	assert.True(t, claims.Admin)
}

func TestValidate_MissingHeader(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/validate", nil)
	rec := doRequest(t, h, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing credentials", strings.TrimSpace(rec.Body.String()))
}

func TestValidate_Expired(t *testing.T) {
	h := newTestHandler()

	expired := token.NewClaims("a@x.com", true, time.Now().Add(-48*time.Hour), 24*time.Hour)
	tok, err := token.Encode(expired, []byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/validate", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := doRequest(t, h, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token expired", strings.TrimSpace(rec.Body.String()))
}

func TestValidate_Malformed(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/validate", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := doRequest(t, h, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Decode error:"), "body: %s", rec.Body.String())
}

func TestValidate_WrongSignature(t *testing.T) {
	h := newTestHandler()

	claims := token.NewClaims("a@x.com", true, time.Now(), time.Hour)
	tok, err := token.Encode(claims, []byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/validate", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := doRequest(t, h, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Invalid token:"), "body: %s", rec.Body.String())
}

func TestValidate_BadHeaderFormat(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/validate", nil)
	req.Header.Set("Authorization", "token-without-scheme")
	rec := doRequest(t, h, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestValidate_SuccessReturnsClaimsJSON(t *testing.T) {
	h := newTestHandler()

	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	loginReq.SetBasicAuth("a@x.com", "p1")
	loginRec := doRequest(t, h, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)

	req := httptest.NewRequest(http.MethodPost, "/validate", nil)
	req.Header.Set("Authorization", "Bearer "+loginRec.Body.String())
	rec := doRequest(t, h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got struct {
		Username string `json:"username"`
		Admin    bool   `json:"admin"`
		Exp      int64  `json:"exp"`
		Iat      int64  `json:"iat"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "a@x.com", got.Username)
	assert.True(t, got.Admin)
	assert.Equal(t, int64(86400), got.Exp-got.Iat)
}
