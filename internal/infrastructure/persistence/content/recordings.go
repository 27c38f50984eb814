package content

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
)

// RecordingRepository handles CRUD for the recordings table
type RecordingRepository struct {
	db *database.DB
}

// NewRecordingRepository creates a recording repository
func NewRecordingRepository(db *database.DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

// List returns all recordings, newest first
func (r *RecordingRepository) List() ([]content.Recording, error) {
	rows, err := r.db.Query(`SELECT id, title, date, href FROM recordings ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	defer rows.Close()

	items := []content.Recording{}
	for rows.Next() {
		var rec content.Recording
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Date, &rec.Href); err != nil {
			return nil, fmt.Errorf("failed to scan recording row: %w", err)
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}

// Get returns a recording by ID. Returns ok=false when no row matched.
func (r *RecordingRepository) Get(id int64) (content.Recording, bool, error) {
	var rec content.Recording
	err := r.db.QueryRow(`SELECT id, title, date, href FROM recordings WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Title, &rec.Date, &rec.Href)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Recording{}, false, nil
	}
	if err != nil {
		return content.Recording{}, false, fmt.Errorf("failed to get recording %d: %w", id, err)
	}
	return rec, true, nil
}

// Create inserts a recording and returns it with its assigned ID
func (r *RecordingRepository) Create(item content.Recording) (content.Recording, error) {
	result, err := r.db.Exec(
		`INSERT INTO recordings (title, date, href) VALUES (?, ?, ?)`,
		item.Title, item.Date, item.Href)
	if err != nil {
		return content.Recording{}, fmt.Errorf("failed to create recording: %w", err)
	}
	item.ID, _ = result.LastInsertId()
	return item, nil
}

// Update replaces a recording by ID. Returns ok=false when no row matched.
func (r *RecordingRepository) Update(id int64, item content.Recording) (content.Recording, bool, error) {
	result, err := r.db.Exec(
		`UPDATE recordings SET title = ?, date = ?, href = ? WHERE id = ?`,
		item.Title, item.Date, item.Href, id)
	if err != nil {
		return content.Recording{}, false, fmt.Errorf("failed to update recording %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return content.Recording{}, false, nil
	}
	item.ID = id
	return item, true, nil
}

// Delete removes a recording by ID
func (r *RecordingRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete recording %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}
