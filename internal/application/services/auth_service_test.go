package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/settings"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateSchema())

	repo := settings.NewRepository(db)
	return NewAuthService(repo, "test-secret", time.Hour, logging.NewSilentLogger())
}

func TestAuthService_FirstLoginSetsPassword(t *testing.T) {
	svc := newAuthService(t)

	token, err := svc.Login("initial-password")
	require.NoError(t, err)
	assert.True(t, svc.ValidateToken(token))

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword, "first login must have pinned the password")

	_, err = svc.Login("initial-password")
	assert.NoError(t, err)
}

func TestAuthService_RejectsBadToken(t *testing.T) {
	svc := newAuthService(t)

	assert.False(t, svc.ValidateToken(""))
	assert.False(t, svc.ValidateToken("not-a-jwt"))

	other := newAuthService(t)
	_, err := other.Login("pw")
	require.NoError(t, err)
}

func TestAuthService_TokenFromOtherSecretRejected(t *testing.T) {
	svc := newAuthService(t)
	token, err := svc.Login("pw")
	require.NoError(t, err)

	db, err := database.NewConnection(filepath.Join(t.TempDir(), "other.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateSchema())
	other := NewAuthService(settings.NewRepository(db), "different-secret", time.Hour, logging.NewSilentLogger())

	assert.False(t, other.ValidateToken(token))
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login("old-password")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword("new-password"))

	_, err = svc.Login("old-password")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	token, err := svc.Login("new-password")
	require.NoError(t, err)
	assert.True(t, svc.ValidateToken(token))
}
