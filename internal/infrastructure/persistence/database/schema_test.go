package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateSchema_Idempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.CreateSchema())
	require.NoError(t, db.CreateSchema())
}

func TestSeedIfEmpty_SeedsOnce(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.CreateSchema())

	require.NoError(t, db.SeedIfEmpty("admin123"))
	require.NoError(t, db.SeedIfEmpty("admin123"))

	var newsCount, eventCount, contactCount int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM news`).Scan(&newsCount))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&eventCount))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM contact_info`).Scan(&contactCount))
	assert.Equal(t, 3, newsCount)
	assert.Equal(t, 3, eventCount)
	assert.Equal(t, 4, contactCount)
}

func TestSeedIfEmpty_SetsDefaultAdminPassword(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.CreateSchema())
	require.NoError(t, db.SeedIfEmpty("admin123"))

	var hash string
	require.NoError(t, db.QueryRow(
		`SELECT value FROM admin_settings WHERE key = ?`, "admin_password_hash").Scan(&hash))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin123")))
}

func TestSeedIfEmpty_KeepsExistingPassword(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.CreateSchema())

	_, err := db.Exec(`INSERT INTO admin_settings (key, value) VALUES (?, ?)`,
		"admin_password_hash", "existing-hash")
	require.NoError(t, err)

	require.NoError(t, db.SeedIfEmpty("admin123"))

	var hash string
	require.NoError(t, db.QueryRow(
		`SELECT value FROM admin_settings WHERE key = ?`, "admin_password_hash").Scan(&hash))
	assert.Equal(t, "existing-hash", hash)
}
