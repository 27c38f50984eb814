// Package content implements repositories for the admin-editable
// content tables.
package content

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
)

// NewsRepository handles CRUD for the news table
type NewsRepository struct {
	db *database.DB
}

// NewNewsRepository creates a news repository
func NewNewsRepository(db *database.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

// List returns all news items, newest first
func (r *NewsRepository) List() ([]content.News, error) {
	rows, err := r.db.Query(`SELECT id, date, title, excerpt, COALESCE(href, '') FROM news ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	items := []content.News{}
	for rows.Next() {
		var n content.News
		if err := rows.Scan(&n.ID, &n.Date, &n.Title, &n.Excerpt, &n.Href); err != nil {
			return nil, fmt.Errorf("failed to scan news row: %w", err)
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// Get returns a news item by ID. Returns ok=false when no row matched.
func (r *NewsRepository) Get(id int64) (content.News, bool, error) {
	var n content.News
	err := r.db.QueryRow(
		`SELECT id, date, title, excerpt, COALESCE(href, '') FROM news WHERE id = ?`, id).
		Scan(&n.ID, &n.Date, &n.Title, &n.Excerpt, &n.Href)
	if errors.Is(err, sql.ErrNoRows) {
		return content.News{}, false, nil
	}
	if err != nil {
		return content.News{}, false, fmt.Errorf("failed to get news %d: %w", id, err)
	}
	return n, true, nil
}

// Create inserts a news item and returns it with its assigned ID
func (r *NewsRepository) Create(item content.News) (content.News, error) {
	result, err := r.db.Exec(
		`INSERT INTO news (date, title, excerpt, href) VALUES (?, ?, ?, ?)`,
		item.Date, item.Title, item.Excerpt, nullable(item.Href))
	if err != nil {
		return content.News{}, fmt.Errorf("failed to create news: %w", err)
	}
	item.ID, _ = result.LastInsertId()
	return item, nil
}

// Update replaces a news item by ID. Returns ok=false when no row matched.
func (r *NewsRepository) Update(id int64, item content.News) (content.News, bool, error) {
	result, err := r.db.Exec(
		`UPDATE news SET date = ?, title = ?, excerpt = ?, href = ? WHERE id = ?`,
		item.Date, item.Title, item.Excerpt, nullable(item.Href), id)
	if err != nil {
		return content.News{}, false, fmt.Errorf("failed to update news %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return content.News{}, false, nil
	}
	item.ID = id
	return item, true, nil
}

// Delete removes a news item by ID. Returns ok=false when no row matched.
func (r *NewsRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM news WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete news %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// nullable maps an empty string to SQL NULL for optional text columns
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
