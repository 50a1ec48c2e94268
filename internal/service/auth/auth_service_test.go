package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRevocations struct {
	mock.Mock
}

func (m *MockRevocations) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockRevocations) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func newTestService(revocations Revocations, now func() time.Time) *AuthService {
	return NewAuthService("test-secret", time.Hour, revocations,
		WithSignInDelay(0),
		WithClock(now),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestAuthService_SignIn(t *testing.T) {
	s := newTestService(nil, time.Now)

	result, err := s.SignIn(context.Background(), "jane@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.User{Email: "jane@x.com", Name: "jane"}, result.User)
	assert.NotEmpty(t, result.Token)

	session, err := s.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated())
	assert.Equal(t, "jane", session.User.Name)
	assert.NotEmpty(t, session.TokenID)
}

func TestAuthService_SignInRejects(t *testing.T) {
	s := newTestService(nil, time.Now)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "short password", email: "jane@x.com", password: "12345"},
		{name: "empty email", email: " ", password: "secret1"},
		{name: "empty password", email: "jane@x.com", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.SignIn(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
			assert.EqualError(t, err, "invalid credentials")
		})
	}
}

func TestAuthService_SignInHonoursCancellation(t *testing.T) {
	s := NewAuthService("test-secret", time.Hour, nil, WithSignInDelay(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SignIn(ctx, "jane@x.com", "secret1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthService_AuthenticateRejects(t *testing.T) {
	now := time.Now()
	s := newTestService(nil, func() time.Time { return now })
	result, err := s.SignIn(context.Background(), "jane@x.com", "secret1")
	require.NoError(t, err)

	_, err = s.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = s.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	other := NewAuthService("other-secret", time.Hour, nil)
	_, err = other.Authenticate(context.Background(), result.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	later := newTestService(nil, func() time.Time { return now.Add(2 * time.Hour) })
	_, err = later.Authenticate(context.Background(), result.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_SignOut(t *testing.T) {
	revocations := &MockRevocations{}
	now := time.Now()
	s := newTestService(revocations, func() time.Time { return now })

	result, err := s.SignIn(context.Background(), "jane@x.com", "secret1")
	require.NoError(t, err)

	revocations.On("IsTokenRevoked", mock.Anything, mock.Anything).Return(false, nil).Once()
	revocations.On("RevokeToken", mock.Anything, mock.Anything, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= time.Hour
	})).Return(nil)

	session, err := s.SignOut(context.Background(), result.Token)
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.TokenID)

	revocations.On("IsTokenRevoked", mock.Anything, mock.Anything).Return(true, nil)
	_, err = s.Authenticate(context.Background(), result.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	revocations.AssertExpectations(t)
}

func TestAuthService_Profile(t *testing.T) {
	s := newTestService(nil, time.Now)
	session := domain.Session{User: &domain.User{Email: "jane@x.com", Name: "jane"}, TokenID: "id"}

	profile, err := s.Profile(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, &domain.Profile{Name: "jane", Email: "jane@x.com"}, profile)

	_, err = s.Profile(context.Background(), domain.AnonymousSession())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	s := newTestService(nil, time.Now)
	session := domain.Session{User: &domain.User{Email: "jane@x.com", Name: "jane"}}

	updated, err := s.UpdateProfile(context.Background(), session, domain.Profile{
		Name: " Jane Doe ", Email: "jane@x.com", Phone: "+1 555", Location: "Lisbon",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.Name)
	assert.Equal(t, "Lisbon", updated.Location)

	_, err = s.UpdateProfile(context.Background(), session, domain.Profile{Name: "Jane"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.UpdateProfile(context.Background(), domain.AnonymousSession(), domain.Profile{Name: "Jane", Email: "jane@x.com"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
