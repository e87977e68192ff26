package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/kwekamelia/web-grp-lab/internal/auth/domain"
	"github.com/kwekamelia/web-grp-lab/internal/auth/repository"
	"github.com/kwekamelia/web-grp-lab/internal/logging"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

const DefaultSessionTTL = 24 * time.Hour

type AuthService struct {
	users    *repository.UserRepository
	sessions repository.SessionStore
	ttl      time.Duration
	now      func() time.Time

	// dummyHash is verified against when the user does not exist so that
	// unknown and known usernames take the same time.
	dummyHash string
}

func NewAuthService(users *repository.UserRepository, sessions repository.SessionStore, ttl time.Duration) (*AuthService, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	dummy, err := HashPassword("not-a-real-password")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		ttl:       ttl,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// CreateUser stores a new user with a freshly salted hash.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	return s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    storage.Timestamp(s.now()),
	})
}

// EnsureUser creates the user unless it already exists. Used to seed the
// configured admin account at startup.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string) error {
	err := s.CreateUser(ctx, username, password)
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	if err == nil {
		logging.FromContext(ctx, "auth.seed").Info("user created", "username", username)
	}
	return err
}

// SetPassword rehashes a user's password and revokes their sessions.
func (s *AuthService) SetPassword(ctx context.Context, username, password string) error {
	if password == "" {
		return domain.ErrInvalidCredentials
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, username, hash); err != nil {
		return err
	}
	return s.sessions.DeleteByUsername(ctx, username)
}

// Login verifies the credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	log := logging.FromContext(ctx, "auth.login")

	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		_, _ = VerifyPassword(s.dummyHash, password)
		log.Warn("login rejected", "username", username)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warn("login rejected", "username", username)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	now := s.now()
	sess := &domain.Session{
		Token:     token,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	log.Info("login succeeded", "username", user.Username)
	return sess, nil
}

// Resolve returns the live session for token.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.sessions.Get(ctx, token)
}

// Logout ends the session for token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrSessionNotFound
	}
	return s.sessions.Delete(ctx, token)
}
