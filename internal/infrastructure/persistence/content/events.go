package content

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/content"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/persistence/database"
)

// EventRepository handles CRUD for the admin-entered events table
type EventRepository struct {
	db *database.DB
}

// NewEventRepository creates an event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns all events ordered by date then time
func (r *EventRepository) List() ([]content.Event, error) {
	rows, err := r.db.Query(
		`SELECT id, date, time, type, title, place, description FROM events ORDER BY date ASC, time ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	items := []content.Event{}
	for rows.Next() {
		var e content.Event
		if err := rows.Scan(&e.ID, &e.Date, &e.Time, &e.Type, &e.Title, &e.Place, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// Get returns an event by ID. Returns ok=false when no row matched.
func (r *EventRepository) Get(id int64) (content.Event, bool, error) {
	var e content.Event
	err := r.db.QueryRow(
		`SELECT id, date, time, type, title, place, description FROM events WHERE id = ?`, id).
		Scan(&e.ID, &e.Date, &e.Time, &e.Type, &e.Title, &e.Place, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Event{}, false, nil
	}
	if err != nil {
		return content.Event{}, false, fmt.Errorf("failed to get event %d: %w", id, err)
	}
	return e, true, nil
}

// Create inserts an event and returns it with its assigned ID
func (r *EventRepository) Create(item content.Event) (content.Event, error) {
	result, err := r.db.Exec(
		`INSERT INTO events (date, time, type, title, place, description) VALUES (?, ?, ?, ?, ?, ?)`,
		item.Date, item.Time, item.Type, item.Title, item.Place, item.Description)
	if err != nil {
		return content.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	item.ID, _ = result.LastInsertId()
	return item, nil
}

// Update replaces an event by ID. Returns ok=false when no row matched.
func (r *EventRepository) Update(id int64, item content.Event) (content.Event, bool, error) {
	result, err := r.db.Exec(
		`UPDATE events SET date = ?, time = ?, type = ?, title = ?, place = ?, description = ? WHERE id = ?`,
		item.Date, item.Time, item.Type, item.Title, item.Place, item.Description, id)
	if err != nil {
		return content.Event{}, false, fmt.Errorf("failed to update event %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return content.Event{}, false, nil
	}
	item.ID = id
	return item, true, nil
}

// Delete removes an event by ID
func (r *EventRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete event %d: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	return affected > 0, nil
}
