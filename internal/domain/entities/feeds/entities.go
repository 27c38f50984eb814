// Package feeds provides domain entities for content aggregated from
// third-party services (Facebook Graph API, YouTube RSS, Google Calendar
// iCal, verse-of-the-week API).
package feeds

// PageCredential is the resolved Facebook page identity: a concrete page id,
// a page-scoped access token and the public page slug. Resolved once per
// process and treated as valid for the process lifetime.
type PageCredential struct {
	PageID      string
	AccessToken string
	Slug        string
}

// Post is a normalized Facebook page post. Images holds every attachment
// image in traversal order and may be empty.
type Post struct {
	ID             string   `json:"id"`
	Message        string   `json:"message"`
	Images         []string `json:"images"`
	CreatedTime    string   `json:"created_time"`
	PermalinkURL   string   `json:"permalink_url"`
	ReactionsCount int      `json:"reactions_count"`
	SharesCount    int      `json:"shares_count"`
	CommentsCount  int      `json:"comments_count"`
}

// Video is a normalized entry from the channel's public RSS feed.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
}

// CalendarEvent is one occurrence of a calendar entry. A recurring source
// event yields one CalendarEvent per expanded occurrence.
type CalendarEvent struct {
	Title    string `json:"title"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM wall clock
	Type     string `json:"type"`
	Location string `json:"location"`
}

// Verse is the verse-of-the-week payload. Each period pair is nil when the
// provider did not populate that period. Manual is true for admin overrides.
type Verse struct {
	WeekText     *string `json:"week_text"`
	WeekSource   *string `json:"week_source"`
	MonthText    *string `json:"month_text"`
	MonthSource  *string `json:"month_source"`
	YearText     *string `json:"year_text"`
	YearSource   *string `json:"year_source"`
	FirstText    *string `json:"first_text"`
	FirstSource  *string `json:"first_source"`
	SecondText   *string `json:"second_text"`
	SecondSource *string `json:"second_source"`
	Name         string  `json:"name"`
	Date         string  `json:"date"`
	Manual       bool    `json:"manual"`
}
