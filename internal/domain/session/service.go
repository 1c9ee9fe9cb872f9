package session

import (
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service handles admin login and token validation against an injected store.
type Service struct {
	store    Store
	username string
	password string
	ttl      time.Duration
	logger   *slog.Logger
}

// NewService creates a session service for the configured admin account.
func NewService(store Store, username, password string, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, username: username, password: password, ttl: ttl, logger: logger}
}

// Login checks credentials and creates a session. Comparison is constant
// time so timing doesn't leak which half matched.
func (s *Service) Login(username, password string) (Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if s.username == "" || !userOK || !passOK {
		return Session{}, ErrInvalidCredentials
	}

	sess := Session{
		Token:    uuid.NewString(),
		Username: username,
		Expiry:   timeNow().Add(s.ttl),
	}
	s.store.Put(sess)
	s.logger.Info("admin logged in", "username", username)
	return sess, nil
}

// Authenticate resolves a token. Expired entries are deleted on the spot.
func (s *Service) Authenticate(token string) (Session, error) {
	sess, ok := s.store.Get(token)
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	if sess.Expired(timeNow()) {
		s.store.Delete(token)
		return Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Logout discards the session server side.
func (s *Service) Logout(token string) {
	s.store.Delete(token)
}
