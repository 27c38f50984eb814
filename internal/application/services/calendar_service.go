package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/feeds"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/caching"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/pkg/config"
)

// CalendarService fetches the parish Google Calendar through its public
// iCal feed, expands recurrence rules over a forward horizon and classifies
// each occurrence by title keywords.
type CalendarService struct {
	icalURL    string
	client     *http.Client
	cache      *caching.Cell[[]feeds.CalendarEvent]
	classifier *EventClassifier
	now        func() time.Time
	logger     *logging.ChanneledLogger
}

// NewCalendarService creates a calendar service
func NewCalendarService(icalURL string, timeout, cacheTTL time.Duration, classifier *EventClassifier, logger *logging.ChanneledLogger) *CalendarService {
	return &CalendarService{
		icalURL:    icalURL,
		client:     &http.Client{Timeout: timeout},
		cache:      caching.NewCell[[]feeds.CalendarEvent](cacheTTL),
		classifier: classifier,
		now:        time.Now,
		logger:     logger,
	}
}

// GetEvents returns the cached events when fresh, otherwise fetches and
// expands the iCal feed. Upstream failures degrade to the last known list,
// then to an empty slice.
func (s *CalendarService) GetEvents(ctx context.Context) []feeds.CalendarEvent {
	start := time.Now()
	if events, ok := s.cache.Get(); ok {
		s.logger.LogCacheOperation("serve", "calendar_events", true, time.Since(start))
		return events
	}

	events, err := s.fetch(ctx)
	if err != nil {
		s.logger.Feeds().Error("Calendar fetch failed", "error", err)
		if last, ok := s.cache.Last(); ok {
			return last
		}
		return []feeds.CalendarEvent{}
	}

	s.cache.Set(events)
	s.logger.LogCacheOperation("refresh", "calendar_events", false, time.Since(start))
	return events
}

// CacheFresh reports whether the next GetEvents will be served from cache
func (s *CalendarService) CacheFresh() bool {
	_, ok := s.cache.Get()
	return ok
}

func (s *CalendarService) fetch(ctx context.Context) ([]feeds.CalendarEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.icalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build iCal request: %w", err)
	}
	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("iCal request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("iCal fetch returned status %d", res.StatusCode)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	horizon := today.AddDate(0, 0, config.CalendarHorizonDays)

	upcoming := []feeds.CalendarEvent{}
	decoder := ical.NewDecoder(res.Body)
	for {
		cal, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse iCal feed: %w", err)
		}
		upcoming = append(upcoming, s.expandCalendar(cal, today, horizon)...)
	}

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].Time < upcoming[j].Time
	})

	total := len(upcoming)
	if len(upcoming) > config.CalendarEventLimit {
		upcoming = upcoming[:config.CalendarEventLimit]
	}

	s.logger.Feeds().Info("Fetched calendar events", "upcoming", total, "returned", len(upcoming))
	return upcoming, nil
}

// expandCalendar walks every VEVENT and emits one occurrence per instance
// inside [today, horizon]. A malformed recurrence rule skips only its own
// component.
func (s *CalendarService) expandCalendar(cal *ical.Calendar, today, horizon time.Time) []feeds.CalendarEvent {
	events := []feeds.CalendarEvent{}

	for _, component := range cal.Events() {
		start, err := component.DateTimeStart(time.Local)
		if err != nil {
			continue
		}

		title := "Wydarzenie"
		if summary, err := component.Props.Text(ical.PropSummary); err == nil && summary != "" {
			title = summary
		}
		location, _ := component.Props.Text(ical.PropLocation)

		occurrences, err := s.expandOccurrences(component, start, today, horizon)
		if err != nil {
			s.logger.Feeds().Warn("Skipping event with broken recurrence rule",
				"title", title, "error", err)
			continue
		}

		for _, occ := range occurrences {
			local := occ.In(time.Local)
			events = append(events, feeds.CalendarEvent{
				Title:    title,
				Date:     local.Format("2006-01-02"),
				Time:     local.Format("15:04"),
				Type:     s.classifier.Classify(title),
				Location: location,
			})
		}
	}
	return events
}

// expandOccurrences returns the instances of one component that fall inside
// [today, horizon]: every expanded recurrence for recurring events, the
// single start time for plain ones.
func (s *CalendarService) expandOccurrences(component ical.Event, start, today, horizon time.Time) ([]time.Time, error) {
	prop := component.Props.Get(ical.PropRecurrenceRule)
	if prop == nil {
		if start.Before(today) || start.After(horizon) {
			return nil, nil
		}
		return []time.Time{start}, nil
	}

	option, err := rrule.StrToROption(prop.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule: %w", err)
	}
	option.Dtstart = start

	rule, err := rrule.NewRRule(*option)
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	occurrences := []time.Time{}
	for _, occ := range rule.Between(today, horizon, true) {
		if !occ.Before(today) {
			occurrences = append(occurrences, occ)
		}
	}
	return occurrences, nil
}
