package content

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
)

// GalleryRepository handles CRUD for the galleries table
type GalleryRepository struct {
	db *database.DB
}

// NewGalleryRepository creates a gallery repository
func NewGalleryRepository(db *database.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// List returns all gallery items ordered by sort_order
func (r *GalleryRepository) List() ([]content.GalleryItem, error) {
	rows, err := r.db.Query(
		`SELECT id, title, COALESCE(description, ''), image_url, sort_order FROM galleries ORDER BY sort_order ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list galleries: %w", err)
	}
	defer rows.Close()

	items := []content.GalleryItem{}
	for rows.Next() {
		var g content.GalleryItem
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.ImageURL, &g.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan gallery row: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// Get returns a gallery item by ID. Returns ok=false when no row matched.
func (r *GalleryRepository) Get(id int64) (content.GalleryItem, bool, error) {
	var g content.GalleryItem
	err := r.db.QueryRow(
		`SELECT id, title, COALESCE(description, ''), image_url, sort_order FROM galleries WHERE id = ?`, id).
		Scan(&g.ID, &g.Title, &g.Description, &g.ImageURL, &g.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return content.GalleryItem{}, false, nil
	}
	if err != nil {
		return content.GalleryItem{}, false, fmt.Errorf("failed to get gallery item %d: %w", id, err)
	}
	return g, true, nil
}

// Create inserts a gallery item and returns it with its assigned ID
func (r *GalleryRepository) Create(item content.GalleryItem) (content.GalleryItem, error) {
	result, err := r.db.Exec(
		`INSERT INTO galleries (title, description, image_url, sort_order) VALUES (?, ?, ?, ?)`,
		item.Title, nullable(item.Description), item.ImageURL, item.SortOrder)
	if err != nil {
		return content.GalleryItem{}, fmt.Errorf("failed to create gallery item: %w", err)
	}
	item.ID, _ = result.LastInsertId()
	return item, nil
}

// Update replaces a gallery item by ID. Returns ok=false when no row matched.
func (r *GalleryRepository) Update(id int64, item content.GalleryItem) (content.GalleryItem, bool, error) {
	result, err := r.db.Exec(
		`UPDATE galleries SET title = ?, description = ?, image_url = ?, sort_order = ? WHERE id = ?`,
		item.Title, nullable(item.Description), item.ImageURL, item.SortOrder, id)
	if err != nil {
		return content.GalleryItem{}, false, fmt.Errorf("failed to update gallery item %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return content.GalleryItem{}, false, nil
	}
	item.ID = id
	return item, true, nil
}

// Delete removes a gallery item by ID
func (r *GalleryRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM galleries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete gallery item %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}
