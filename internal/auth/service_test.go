package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dkravets/video2mp3/internal/auth/token"
	"github.com/dkravets/video2mp3/internal/shared"
	"github.com/dkravets/video2mp3/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byEmail map[string]*users.User
	findErr error
}

var _ users.Repository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *users.User) (*users.User, error) {
	if f.byEmail == nil {
		f.byEmail = map[string]*users.User{}
	}
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return u, nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*users.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[username]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func newTestService(repo users.Repository, ttl time.Duration) *Service {
	v := NewVerifier(repo, PlaintextMatcher{}, EveryoneAdmin{})
	return NewService(v, []byte("test-secret"), ttl)
}

func TestVerifier_UnknownUserAndWrongPasswordIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := &fakeUsers{byEmail: map[string]*users.User{
		"a@x.com": {ID: "1", Email: "a@x.com", Password: "p1"},
	}}
	v := NewVerifier(repo, PlaintextMatcher{}, EveryoneAdmin{})

	_, errUnknown := v.Verify(context.Background(), "nobody@x.com", "p1")
	_, errWrongPw := v.Verify(context.Background(), "a@x.com", "wrong")

	require.ErrorIs(t, errUnknown, shared.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, shared.ErrInvalidCredentials)
}

func TestVerifier_StoreErrorSurfaces(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	v := NewVerifier(&fakeUsers{findErr: storeErr}, PlaintextMatcher{}, EveryoneAdmin{})

	_, err := v.Verify(context.Background(), "a@x.com", "p1")
	require.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestVerifier_SuccessAssignsRole(t *testing.T) {
	t.Parallel()

	repo := &fakeUsers{byEmail: map[string]*users.User{
		"a@x.com": {ID: "1", Email: "a@x.com", Password: "p1"},
	}}
	v := NewVerifier(repo, PlaintextMatcher{}, EveryoneAdmin{})

	id, err := v.Verify(context.Background(), "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", id.Username)
	assert.True(t, id.Admin, "EveryoneAdmin must mark every identity as admin")
}

func TestService_LoginIssuesDecodableToken(t *testing.T) {
	t.Parallel()

	repo := &fakeUsers{byEmail: map[string]*users.User{
		"a@x.com": {ID: "1", Email: "a@x.com", Password: "p1"},
	}}
	s := newTestService(repo, 24*time.Hour)

	tok, err := s.Login(context.Background(), "a@x.com", "p1")
	require.NoError(t, err)

	claims, err := s.Validate(context.Background(), tok)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", claims.Username)
	assert.True(t, claims.Admin)
	assert.Equal(t, int64(86400), claims.ExpiresAt.Unix()-claims.IssuedAt.Unix())
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	s := newTestService(&fakeUsers{}, time.Hour)

	_, err := s.Login(context.Background(), "nobody@x.com", "p1")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestService_ValidateRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	claims := token.NewClaims("a@x.com", true, time.Now(), time.Hour)
	foreign, err := token.Encode(claims, []byte("some-other-secret"))
	require.NoError(t, err)

	s := newTestService(&fakeUsers{}, time.Hour)
	_, err = s.Validate(context.Background(), foreign)
	require.ErrorIs(t, err, shared.ErrSignatureInvalid)
}

func TestPasswordMatchers(t *testing.T) {
	t.Parallel()

	assert.True(t, PlaintextMatcher{}.Match("p1", "p1"))
	assert.False(t, PlaintextMatcher{}.Match("p1", "p2"))

	hash, err := bcrypt.GenerateFromPassword([]byte("p1"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, BcryptMatcher{}.Match(string(hash), "p1"))
	assert.False(t, BcryptMatcher{}.Match(string(hash), "p2"))

	assert.IsType(t, PlaintextMatcher{}, NewPasswordMatcher(MatcherPlaintext))
	assert.IsType(t, BcryptMatcher{}, NewPasswordMatcher(MatcherBcrypt))
	assert.IsType(t, BcryptMatcher{}, NewPasswordMatcher("unknown"))
}
