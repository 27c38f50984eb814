package content

import (
	"fmt"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
)

// ContactRepository handles the keyed contact_info table. Writes upsert
// by key rather than by ID.
type ContactRepository struct {
	db *database.DB
}

// NewContactRepository creates a contact repository
func NewContactRepository(db *database.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns all contact fields ordered by key
func (r *ContactRepository) List() ([]content.ContactInfo, error) {
	rows, err := r.db.Query(`SELECT id, key, value FROM contact_info ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact info: %w", err)
	}
	defer rows.Close()

	items := []content.ContactInfo{}
	for rows.Next() {
		var c content.ContactInfo
		if err := rows.Scan(&c.ID, &c.Key, &c.Value); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Upsert inserts or replaces a contact field by key and returns the
// stored row
func (r *ContactRepository) Upsert(item content.ContactInfo) (content.ContactInfo, error) {
	_, err := r.db.Exec(`
		INSERT INTO contact_info (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		item.Key, item.Value)
	if err != nil {
		return content.ContactInfo{}, fmt.Errorf("failed to upsert contact %s: %w", item.Key, err)
	}

	var stored content.ContactInfo
	err = r.db.QueryRow(`SELECT id, key, value FROM contact_info WHERE key = ?`, item.Key).
		Scan(&stored.ID, &stored.Key, &stored.Value)
	if err != nil {
		return content.ContactInfo{}, fmt.Errorf("failed to read back contact %s: %w", item.Key, err)
	}
	return stored, nil
}

// Delete removes a contact field by ID
func (r *ContactRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM contact_info WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}
