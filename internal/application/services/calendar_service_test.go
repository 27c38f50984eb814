package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
)

var testICS = strings.Join([]string{
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//Test//PL",
	"BEGIN:VEVENT",
	"UID:weekly@test",
	"DTSTAMP:20260101T000000Z",
	"DTSTART:20260301T100000",
	"SUMMARY:Nabożeństwo niedzielne",
	"LOCATION:Kościół",
	"RRULE:FREQ=WEEKLY",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:past@test",
	"DTSTAMP:20260101T000000Z",
	"DTSTART:20260210T180000",
	"SUMMARY:Stare spotkanie",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:single@test",
	"DTSTAMP:20260101T000000Z",
	"DTSTART:20260305T180000",
	"SUMMARY:Koncert wiosenny",
	"LOCATION:Sala",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:far@test",
	"DTSTAMP:20260101T000000Z",
	"DTSTART:20261201T180000",
	"SUMMARY:Odległe wydarzenie",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:broken@test",
	"DTSTAMP:20260101T000000Z",
	"DTSTART:20260304T100000",
	"SUMMARY:Zepsuty cykl",
	"RRULE:FREQ=BOGUS",
	"END:VEVENT",
	"END:VCALENDAR",
	"",
}, "\r\n")

func newCalendarService(t *testing.T, url string, cacheTTL time.Duration) *CalendarService {
	t.Helper()
	svc := NewCalendarService(url, time.Second, cacheTTL, DefaultEventClassifier(), logging.NewSilentLogger())
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 2, 9, 30, 0, 0, time.Local)
	}
	return svc
}

func TestCalendarService_ExpandsSortsAndCaps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testICS)
	}))
	defer server.Close()

	svc := newCalendarService(t, server.URL, time.Minute)
	events := svc.GetEvents(context.Background())

	require.Len(t, events, 6, "more than six qualifying occurrences must be capped")

	assert.Equal(t, "Koncert wiosenny", events[0].Title)
	assert.Equal(t, "2026-03-05", events[0].Date)
	assert.Equal(t, "18:00", events[0].Time)
	assert.Equal(t, "Koncert", events[0].Type)
	assert.Equal(t, "Sala", events[0].Location)

	assert.Equal(t, "Nabożeństwo niedzielne", events[1].Title)
	assert.Equal(t, "2026-03-08", events[1].Date, "the occurrence before today must be dropped")
	assert.Equal(t, "10:00", events[1].Time)
	assert.Equal(t, "Nabożeństwo", events[1].Type)
	assert.Equal(t, "Kościół", events[1].Location)

	assert.Equal(t, "2026-03-15", events[2].Date)
	assert.Equal(t, "2026-04-05", events[5].Date)

	for _, e := range events {
		assert.NotEqual(t, "Stare spotkanie", e.Title)
		assert.NotEqual(t, "Odległe wydarzenie", e.Title, "events past the horizon must be dropped")
		assert.NotEqual(t, "Zepsuty cykl", e.Title, "a broken rule skips only its own component")
	}
}

func TestCalendarService_CachesWithinTTL(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, testICS)
	}))
	defer server.Close()

	svc := newCalendarService(t, server.URL, time.Minute)
	svc.GetEvents(context.Background())
	svc.GetEvents(context.Background())
	assert.Equal(t, int32(1), calls.Load())
}

func TestCalendarService_DegradesToLastKnown(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, testICS)
	}))
	defer server.Close()

	svc := newCalendarService(t, server.URL, 0)

	first := svc.GetEvents(context.Background())
	require.Len(t, first, 6)

	fail.Store(true)
	degraded := svc.GetEvents(context.Background())
	assert.Equal(t, first, degraded, "feed failure should serve the last known list")
}

func TestCalendarService_EmptyOnColdFailure(t *testing.T) {
	svc := newCalendarService(t, "http://127.0.0.1:0/basic.ics", time.Minute)
	assert.Empty(t, svc.GetEvents(context.Background()))
}

func TestEventClassifier_Default(t *testing.T) {
	c := DefaultEventClassifier()

	assert.Equal(t, "Nabożeństwo", c.Classify("Nabożeństwo niedzielne"))
	assert.Equal(t, "Nabożeństwo", c.Classify("MSZA poranna"))
	assert.Equal(t, "Spotkanie", c.Classify("Studium biblijne"))
	assert.Equal(t, "Spotkanie", c.Classify("Wieczór kolęd... spotkanie"))
	assert.Equal(t, "Koncert", c.Classify("Koncert chóru"))
	assert.Equal(t, "Konferencja", c.Classify("Zjazd młodzieży"))
	assert.Equal(t, "Wydarzenie", c.Classify("Piknik parafialny"))
}

func TestEventClassifier_CustomRules(t *testing.T) {
	c := NewEventClassifier([]ClassifierRule{
		{Label: "A", Keywords: []string{"alpha"}},
		{Label: "B", Keywords: []string{"alpha", "beta"}},
	}, "Z")

	assert.Equal(t, "A", c.Classify("Alpha event"), "rule order decides ties")
	assert.Equal(t, "B", c.Classify("beta event"))
	assert.Equal(t, "Z", c.Classify("gamma"))
}
