// internal/domain/session/manager.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
)

// Authenticator verifies credentials with the back office
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*gateway.LoginResponse, error)
	SetToken(token string)
}

// Manager owns the current session and its durable storage.
// State machine: LoggedOut --login success--> LoggedIn(role) --logout--> LoggedOut.
type Manager struct {
	db     *gorm.DB
	auth   Authenticator
	logger *logrus.Logger
}

// NewManager creates a new session manager
func NewManager(db *gorm.DB, auth Authenticator, logger *logrus.Logger) *Manager {
	return &Manager{
		db:     db,
		auth:   auth,
		logger: logger,
	}
}

// Restore loads the persisted session on process start. It fails soft: a
// missing, malformed, or expired record yields (nil, nil), never an error,
// and the bad record is cleared so the next restore starts clean.
func (m *Manager) Restore() (*Session, error) {
	var persisted Session
	err := m.db.Order("id DESC").First(&persisted).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			m.logger.WithError(err).Warn("Could not read persisted session, treating as logged out")
		}
		return nil, nil
	}

	if reason := m.malformed(&persisted); reason != "" {
		m.logger.WithField("reason", reason).Warn("Discarding persisted session")
		m.clear()
		return nil, nil
	}

	m.auth.SetToken(persisted.Token)

	m.logger.WithFields(logrus.Fields{
		"username": persisted.Username,
		"role":     persisted.Role,
	}).Info("Session restored")

	return &persisted, nil
}

// malformed returns a non-empty reason when a persisted record must not be
// trusted: unknown role, missing identity, or an expired token.
func (m *Manager) malformed(s *Session) string {
	if s.Username == "" || s.UserID == 0 {
		return "missing identity"
	}
	if _, err := ParseRole(string(s.Role)); err != nil {
		return fmt.Sprintf("unknown role %q", s.Role)
	}
	if tokenExpired(s.Token, time.Now()) {
		return "token expired"
	}
	return ""
}

// Login delegates credential verification to the back office. The session is
// persisted only on success; an auth failure leaves stored state untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	role, err := ParseRole(resp.User.Role)
	if err != nil {
		// The back office handed out a role the terminal does not know.
		// Refusing the session is safer than guessing a screen set.
		return nil, err
	}

	sess := &Session{
		UserID:   resp.User.ID,
		Username: resp.User.Username,
		Role:     role,
		Token:    resp.Access,
	}

	if err := m.persist(sess); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	m.auth.SetToken(resp.Access)

	m.logger.WithFields(logrus.Fields{
		"username": sess.Username,
		"role":     sess.Role,
	}).Info("Login successful")

	return sess, nil
}

// Logout clears the persisted session unconditionally. Safe to call with no
// active session.
func (m *Manager) Logout() {
	m.clear()
	m.auth.SetToken("")
	m.logger.Info("Logged out")
}

// persist replaces whatever session row exists with the given one
func (m *Manager) persist(s *Session) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&Session{}).Error; err != nil {
			return err
		}
		return tx.Create(s).Error
	})
}

// clear removes all session rows, ignoring failures
func (m *Manager) clear() {
	if err := m.db.Where("1 = 1").Delete(&Session{}).Error; err != nil {
		m.logger.WithError(err).Warn("Failed to clear persisted session")
	}
}
