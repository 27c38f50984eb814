package content

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
)

// FAQRepository handles CRUD for the faq table
type FAQRepository struct {
	db *database.DB
}

// NewFAQRepository creates a FAQ repository
func NewFAQRepository(db *database.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

// List returns all FAQ entries ordered by sort_order
func (r *FAQRepository) List() ([]content.FAQ, error) {
	rows, err := r.db.Query(`SELECT id, question, answer, sort_order FROM faq ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list faq: %w", err)
	}
	defer rows.Close()

	items := []content.FAQ{}
	for rows.Next() {
		var f content.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan faq row: %w", err)
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

// Get returns a FAQ entry by ID. Returns ok=false when no row matched.
func (r *FAQRepository) Get(id int64) (content.FAQ, bool, error) {
	var f content.FAQ
	err := r.db.QueryRow(`SELECT id, question, answer, sort_order FROM faq WHERE id = ?`, id).
		Scan(&f.ID, &f.Question, &f.Answer, &f.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return content.FAQ{}, false, nil
	}
	if err != nil {
		return content.FAQ{}, false, fmt.Errorf("failed to get faq %d: %w", id, err)
	}
	return f, true, nil
}

// Create inserts a FAQ entry and returns it with its assigned ID
func (r *FAQRepository) Create(item content.FAQ) (content.FAQ, error) {
	result, err := r.db.Exec(
		`INSERT INTO faq (question, answer, sort_order) VALUES (?, ?, ?)`,
		item.Question, item.Answer, item.SortOrder)
	if err != nil {
		return content.FAQ{}, fmt.Errorf("failed to create faq: %w", err)
	}
	item.ID, _ = result.LastInsertId()
	return item, nil
}

// Update replaces a FAQ entry by ID. Returns ok=false when no row matched.
func (r *FAQRepository) Update(id int64, item content.FAQ) (content.FAQ, bool, error) {
	result, err := r.db.Exec(
		`UPDATE faq SET question = ?, answer = ?, sort_order = ? WHERE id = ?`,
		item.Question, item.Answer, item.SortOrder, id)
	if err != nil {
		return content.FAQ{}, false, fmt.Errorf("failed to update faq %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return content.FAQ{}, false, nil
	}
	item.ID = id
	return item, true, nil
}

// Delete removes a FAQ entry by ID
func (r *FAQRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM faq WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete faq %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}
