package content

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
)

// GroupRepository handles CRUD for the parish groups table
type GroupRepository struct {
	db *database.DB
}

// NewGroupRepository creates a group repository
func NewGroupRepository(db *database.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// List returns all groups ordered by name
func (r *GroupRepository) List() ([]content.Group, error) {
	rows, err := r.db.Query(
		`SELECT id, name, lead, when_text, description, COALESCE(image_url, '') FROM groups ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	items := []content.Group{}
	for rows.Next() {
		var g content.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Lead, &g.WhenText, &g.Description, &g.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

// Get returns a group by ID. Returns ok=false when no row matched.
func (r *GroupRepository) Get(id int64) (content.Group, bool, error) {
	var g content.Group
	err := r.db.QueryRow(
		`SELECT id, name, lead, when_text, description, COALESCE(image_url, '') FROM groups WHERE id = ?`, id).
		Scan(&g.ID, &g.Name, &g.Lead, &g.WhenText, &g.Description, &g.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Group{}, false, nil
	}
	if err != nil {
		return content.Group{}, false, fmt.Errorf("failed to get group %d: %w", id, err)
	}
	return g, true, nil
}

// Create inserts a group and returns it with its assigned ID
func (r *GroupRepository) Create(item content.Group) (content.Group, error) {
	result, err := r.db.Exec(
		`INSERT INTO groups (name, lead, when_text, description, image_url) VALUES (?, ?, ?, ?, ?)`,
		item.Name, item.Lead, item.WhenText, item.Description, nullable(item.ImageURL))
	if err != nil {
		return content.Group{}, fmt.Errorf("failed to create group: %w", err)
	}
	item.ID, _ = result.LastInsertId()
	return item, nil
}

// Update replaces a group by ID. Returns ok=false when no row matched.
func (r *GroupRepository) Update(id int64, item content.Group) (content.Group, bool, error) {
	result, err := r.db.Exec(
		`UPDATE groups SET name = ?, lead = ?, when_text = ?, description = ?, image_url = ? WHERE id = ?`,
		item.Name, item.Lead, item.WhenText, item.Description, nullable(item.ImageURL), id)
	if err != nil {
		return content.Group{}, false, fmt.Errorf("failed to update group %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return content.Group{}, false, nil
	}
	item.ID = id
	return item, true, nil
}

// Delete removes a group by ID
func (r *GroupRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete group %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}
