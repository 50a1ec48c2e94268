package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const MinPasswordLength = 6

type AuthUseCase interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
	Authenticate(ctx context.Context, token string) (domain.Session, error)
	SignOut(ctx context.Context, token string) (domain.Session, error)
	Profile(ctx context.Context, session domain.Session) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, session domain.Session, profile domain.Profile) (*domain.Profile, error)
}

// Revocations remembers signed-out token IDs until the tokens expire.
type Revocations interface {
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

type SignInResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      domain.User `json:"user"`
}

type AuthService struct {
	secret      []byte
	tokenTTL    time.Duration
	delay       time.Duration
	revocations Revocations
	log         *slog.Logger
	now         func() time.Time
}

type AuthServiceOption func(*AuthService)

func WithSignInDelay(d time.Duration) AuthServiceOption {
	return func(s *AuthService) {
		s.delay = d
	}
}

func WithLogger(log *slog.Logger) AuthServiceOption {
	return func(s *AuthService) {
		s.log = log
	}
}

func WithClock(now func() time.Time) AuthServiceOption {
	return func(s *AuthService) {
		s.now = now
	}
}

func NewAuthService(secret string, tokenTTL time.Duration, revocations Revocations, opts ...AuthServiceOption) *AuthService {
	s := &AuthService{
		secret:      []byte(secret),
		tokenTTL:    tokenTTL,
		delay:       time.Second,
		revocations: revocations,
		log:         slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignIn is the mock identity provider: any address with a password of at
// least six characters signs in, named after the address's local part.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	email = strings.TrimSpace(email)
	if email == "" || len(password) < MinPasswordLength {
		return nil, domain.ErrInvalidCredentials
	}
	user := domain.User{Email: email, Name: localPart(email)}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := Claims{
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("user signed in", slog.String("email", user.Email))
	return &SignInResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		return domain.AnonymousSession(), err
	}
	if s.revocations != nil {
		revoked, err := s.revocations.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			return domain.AnonymousSession(), fmt.Errorf("check token: %w", err)
		}
		if revoked {
			return domain.AnonymousSession(), fmt.Errorf("%w: token signed out", domain.ErrUnauthenticated)
		}
	}
	return domain.Session{
		User:    &domain.User{Email: claims.Subject, Name: claims.Name},
		TokenID: claims.ID,
	}, nil
}

// SignOut revokes the token and hands back the cleared session.
func (s *AuthService) SignOut(ctx context.Context, token string) (domain.Session, error) {
	session, err := s.Authenticate(ctx, token)
	if err != nil {
		return session, err
	}
	claims, err := s.parse(token)
	if err != nil {
		return domain.AnonymousSession(), err
	}
	if s.revocations != nil {
		ttl := claims.ExpiresAt.Time.Sub(s.now())
		if err := s.revocations.RevokeToken(ctx, claims.ID, ttl); err != nil {
			return session, fmt.Errorf("revoke token: %w", err)
		}
	}
	s.log.Info("user signed out", slog.String("email", session.User.Email))
	session.Clear()
	return session, nil
}

func (s *AuthService) Profile(ctx context.Context, session domain.Session) (*domain.Profile, error) {
	if !session.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Profile{Name: session.User.Name, Email: session.User.Email}, nil
}

// UpdateProfile checks the edited profile and echoes it; nothing is stored.
func (s *AuthService) UpdateProfile(ctx context.Context, session domain.Session, profile domain.Profile) (*domain.Profile, error) {
	if !session.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.TrimSpace(profile.Email)
	if profile.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !strings.Contains(profile.Email, "@") {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	return &profile, nil
}

func (s *AuthService) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return claims, nil
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

var _ AuthUseCase = (*AuthService)(nil)
