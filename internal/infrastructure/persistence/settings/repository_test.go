package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewConnection(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.CreateSchema())
	return NewRepository(db)
}

func TestRepository_GetMissingKey(t *testing.T) {
	repo := newTestRepository(t)

	_, ok, err := repo.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_SetOverwrites(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Set("hero_video_url", "/uploads/a.mp4"))
	require.NoError(t, repo.Set("hero_video_url", "/uploads/b.mp4"))

	value, ok, err := repo.Get("hero_video_url")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/uploads/b.mp4", value)
}

func TestRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Set("verse_override", "{}"))
	require.NoError(t, repo.Delete("verse_override"))
	require.NoError(t, repo.Delete("verse_override"), "deleting a missing key is not an error")

	_, ok, err := repo.Get("verse_override")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_GetAllByPrefix(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Set("site_text_hero_title", "Witamy"))
	require.NoError(t, repo.Set("site_text_about", "O parafii"))
	require.NoError(t, repo.Set("admin_password_hash", "x"))

	texts, err := repo.GetAllByPrefix("site_text_")
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "site_text_about", texts[0].Key)
	assert.Equal(t, "site_text_hero_title", texts[1].Key)
}
