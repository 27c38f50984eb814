// Package settings implements the admin_settings key-value repository.
// It backs the admin password hash, the manual verse override, and the
// editable site texts.
package settings

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
)

// Repository provides access to the admin_settings table
type Repository struct {
	db *database.DB
}

// NewRepository creates a settings repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the value for a key, or ok=false when the key is absent
func (r *Repository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM admin_settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a value for a key, replacing any existing value
func (r *Repository) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO admin_settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (r *Repository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM admin_settings WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// GetAllByPrefix returns all settings whose key starts with the prefix,
// ordered by key
func (r *Repository) GetAllByPrefix(prefix string) ([]content.Setting, error) {
	rows, err := r.db.Query(
		`SELECT key, value FROM admin_settings WHERE key LIKE ? || '%' ORDER BY key ASC`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings with prefix %s: %w", prefix, err)
	}
	defer rows.Close()

	settings := []content.Setting{}
	for rows.Next() {
		var s content.Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}
