// Package content provides domain entities for the admin-editable store.
package content

// News is a short announcement shown on the home page.
type News struct {
	ID      int64  `json:"id"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Href    string `json:"href,omitempty"`
}

// Event is an admin-entered parish event (distinct from the Google Calendar
// feed, which is aggregated separately).
type Event struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Place       string `json:"place"`
	Description string `json:"description"`
}

// Group is a parish group (choir, youth, ...).
type Group struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Lead        string `json:"lead"`
	WhenText    string `json:"when_text"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Recording is a link to a published recording.
type Recording struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Date  string `json:"date"`
	Href  string `json:"href"`
}

// FAQ is a question/answer pair ordered by SortOrder.
type FAQ struct {
	ID        int64  `json:"id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	SortOrder int    `json:"sort_order"`
}

// ContactInfo is one keyed contact field (address, phone, email, hours).
// Keys are unique; writes upsert by key.
type ContactInfo struct {
	ID    int64  `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// GalleryItem is one image in the parish gallery.
type GalleryItem struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
}

// Setting is a row of the admin key/value settings store.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
