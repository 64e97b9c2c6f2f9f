package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/gateway"
	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/pkg/apperrors"
)

type stubAuth struct {
	resp     *gateway.LoginResponse
	err      error
	tokens   []string
	lastUser string
}

func (s *stubAuth) Login(_ context.Context, username, _ string) (*gateway.LoginResponse, error) {
	s.lastUser = username
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubAuth) SetToken(token string) {
	s.tokens = append(s.tokens, token)
}

func openTestStore(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pos-test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Session{}))
	return db
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestRestoreWithEmptyStoreIsLoggedOut(t *testing.T) {
	m := NewManager(openTestStore(t), &stubAuth{}, quietLogger())

	sess, err := m.Restore()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLoginPersistsSessionAcrossRestart(t *testing.T) {
	db := openTestStore(t)
	auth := &stubAuth{resp: &gateway.LoginResponse{
		User:   gateway.AuthUser{ID: 5, Username: "barista", Role: "STAFF"},
		Access: signedToken(t, time.Now().Add(time.Hour)),
	}}

	m := NewManager(db, auth, quietLogger())
	sess, err := m.Login(context.Background(), "barista", "secret")
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, sess.Role)
	require.NotEmpty(t, auth.tokens)

	// A fresh manager over the same store simulates a process restart
	restartAuth := &stubAuth{}
	restored, err := NewManager(db, restartAuth, quietLogger()).Restore()
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "barista", restored.Username)
	assert.Equal(t, RoleStaff, restored.Role)
	// The restored token is re-armed on the gateway
	require.Len(t, restartAuth.tokens, 1)
	assert.Equal(t, sess.Token, restartAuth.tokens[0])
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	db := openTestStore(t)
	okAuth := &stubAuth{resp: &gateway.LoginResponse{
		User: gateway.AuthUser{ID: 5, Username: "barista", Role: "STAFF"},
	}}
	m := NewManager(db, okAuth, quietLogger())
	_, err := m.Login(context.Background(), "barista", "secret")
	require.NoError(t, err)

	badAuth := &stubAuth{err: apperrors.New(apperrors.CodeAuth, "Invalid username or password")}
	_, err = NewManager(db, badAuth, quietLogger()).Login(context.Background(), "barista", "wrong")
	require.Error(t, err)

	restored, err := NewManager(db, &stubAuth{}, quietLogger()).Restore()
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "barista", restored.Username)
}

func TestLoginWithUnknownRoleRefused(t *testing.T) {
	auth := &stubAuth{resp: &gateway.LoginResponse{
		User: gateway.AuthUser{ID: 5, Username: "ghost", Role: "MANAGER"},
	}}
	m := NewManager(openTestStore(t), auth, quietLogger())

	_, err := m.Login(context.Background(), "ghost", "secret")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnknownRole))
}

func TestRestoreDiscardsUnknownRole(t *testing.T) {
	db := openTestStore(t)
	require.NoError(t, db.Create(&Session{
		UserID: 5, Username: "ghost", Role: "MANAGER",
	}).Error)

	m := NewManager(db, &stubAuth{}, quietLogger())
	sess, err := m.Restore()
	require.NoError(t, err)
	assert.Nil(t, sess)

	// The malformed row is cleared, not left for the next boot
	var count int64
	require.NoError(t, db.Model(&Session{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRestoreDiscardsExpiredToken(t *testing.T) {
	db := openTestStore(t)
	require.NoError(t, db.Create(&Session{
		UserID: 5, Username: "barista", Role: RoleStaff,
		Token: signedToken(t, time.Now().Add(-time.Hour)),
	}).Error)

	sess, err := NewManager(db, &stubAuth{}, quietLogger()).Restore()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRestoreDiscardsMissingIdentity(t *testing.T) {
	db := openTestStore(t)
	require.NoError(t, db.Exec(
		"INSERT INTO sessions (user_id, username, role, token) VALUES (0, '', 'STAFF', '')",
	).Error)

	sess, err := NewManager(db, &stubAuth{}, quietLogger()).Restore()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRestoreAcceptsCookieSessionWithoutToken(t *testing.T) {
	db := openTestStore(t)
	require.NoError(t, db.Create(&Session{
		UserID: 5, Username: "barista", Role: RoleStaff, Token: "",
	}).Error)

	sess, err := NewManager(db, &stubAuth{}, quietLogger()).Restore()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "barista", sess.Username)
}

func TestLogoutIsIdempotent(t *testing.T) {
	db := openTestStore(t)
	auth := &stubAuth{resp: &gateway.LoginResponse{
		User: gateway.AuthUser{ID: 5, Username: "barista", Role: "STAFF"},
	}}
	m := NewManager(db, auth, quietLogger())
	_, err := m.Login(context.Background(), "barista", "secret")
	require.NoError(t, err)

	m.Logout()
	m.Logout()

	sess, err := m.Restore()
	require.NoError(t, err)
	assert.Nil(t, sess)
	// Logout clears the armed token
	assert.Equal(t, "", auth.tokens[len(auth.tokens)-1])
}

func TestOnlyOneSessionRowEverExists(t *testing.T) {
	db := openTestStore(t)
	auth := &stubAuth{resp: &gateway.LoginResponse{
		User: gateway.AuthUser{ID: 5, Username: "barista", Role: "STAFF"},
	}}
	m := NewManager(db, auth, quietLogger())

	_, err := m.Login(context.Background(), "barista", "secret")
	require.NoError(t, err)

	auth.resp = &gateway.LoginResponse{
		User: gateway.AuthUser{ID: 9, Username: "owner", Role: "ADMIN"},
	}
	_, err = m.Login(context.Background(), "owner", "secret")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&Session{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	restored, err := m.Restore()
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "owner", restored.Username)
}
