// Package session holds the authenticated identity shared by every view.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/energypulse/internal/model"
	"go.uber.org/zap"
)

// Fixed storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Store publishes the current session as an immutable snapshot. Readers never lock;
// writers replace the whole snapshot and keep storage in sync.
type Store struct {
	storage Storage
	logger  *zap.Logger
	current atomic.Pointer[model.Session]
	writeMu sync.Mutex
}

// NewStore returns an empty Store persisting to storage.
func NewStore(storage Storage, logger *zap.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger.Named("session"),
	}
}

// Load reads the persisted session. Incomplete or corrupt entries are discarded.
func (s *Store) Load() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	token, hasToken, err := s.storage.Get(KeyToken)
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}
	rawUser, hasUser, err := s.storage.Get(KeyUser)
	if err != nil {
		return fmt.Errorf("load session user: %w", err)
	}
	if !hasToken || !hasUser || token == "" {
		s.current.Store(nil)
		return nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn("discarding corrupt persisted session", zap.Error(err))
		s.current.Store(nil)
		return s.storage.Delete(KeyToken, KeyUser)
	}

	sess := model.Session{User: user, Token: token}
	if exp, ok := TokenExpiry(token); ok {
		sess.ExpiresAt = exp
	}
	s.current.Store(&sess)
	s.logger.Debug("session restored", zap.Uint("user_id", user.ID))
	return nil
}

// Current returns the active session.
func (s *Store) Current() (model.Session, bool) {
	p := s.current.Load()
	if p == nil {
		return model.Session{}, false
	}
	return *p, true
}

// Replace persists sess and makes it the current snapshot.
func (s *Store) Replace(sess model.Session) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.replaceLocked(sess)
}

// UpdateUser replaces the identity of the current session, keeping its credential.
func (s *Store) UpdateUser(user model.User) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	p := s.current.Load()
	if p == nil {
		return errors.New("no active session")
	}
	return s.replaceLocked(p.WithUser(user))
}

func (s *Store) replaceLocked(sess model.Session) error {
	if sess.Token == "" {
		return errors.New("session token is required")
	}
	if sess.ExpiresAt.IsZero() {
		if exp, ok := TokenExpiry(sess.Token); ok {
			sess.ExpiresAt = exp
		}
	}
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	if err := s.storage.Set(map[string]string{KeyToken: sess.Token, KeyUser: string(rawUser)}); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.current.Store(&sess)
	return nil
}

// Clear removes the session from memory and storage.
func (s *Store) Clear() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.current.Store(nil)
	if err := s.storage.Delete(KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Expired reports whether the current session is known to have expired at now.
func (s *Store) Expired(now time.Time) bool {
	sess, ok := s.Current()
	return ok && sess.Expired(now)
}
