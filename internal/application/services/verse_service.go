// Package services implements the application service layer: external feed
// fetchers with TTL caching and the admin auth workflow.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/feeds"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/caching"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
)

// VerseService fetches the verse of the week from the BNCD provider,
// caching the result for the configured TTL and degrading to the last
// known value when the upstream fails.
type VerseService struct {
	apiKey string
	apiURL string
	client *http.Client
	cache  *caching.Cell[*feeds.Verse]
	logger *logging.ChanneledLogger
}

// NewVerseService creates a verse service
func NewVerseService(apiKey, apiURL string, timeout, cacheTTL time.Duration, logger *logging.ChanneledLogger) *VerseService {
	return &VerseService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: timeout},
		cache:  caching.NewCell[*feeds.Verse](cacheTTL),
		logger: logger,
	}
}

// bncdResponse mirrors the provider payload. Each period carries a text,
// a source reference and an is_* validity flag.
type bncdResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`

	Week     string `json:"week"`
	WeekS    string `json:"week_s"`
	IsWeek   bool   `json:"is_week"`
	Month    string `json:"month"`
	MonthS   string `json:"month_s"`
	IsMonth  bool   `json:"is_month"`
	Year     string `json:"year"`
	YearS    string `json:"year_s"`
	IsYear   bool   `json:"is_year"`
	First    string `json:"first"`
	FirstS   string `json:"first_s"`
	IsFirst  bool   `json:"is_first"`
	Second   string `json:"second"`
	SecondS  string `json:"second_s"`
	IsSecond bool   `json:"is_second"`

	Name string `json:"name"`
	Date string `json:"date"`
}

// GetVerse returns the cached verse when fresh, otherwise fetches from the
// provider. Returns nil without error when no API key is configured and
// nothing was ever cached; upstream failures degrade to the last known
// verse the same way.
func (s *VerseService) GetVerse(ctx context.Context) *feeds.Verse {
	start := time.Now()
	if verse, ok := s.cache.Get(); ok {
		s.logger.LogCacheOperation("serve", "weekly_verse", true, time.Since(start))
		return verse
	}

	if s.apiKey == "" {
		verse, _ := s.cache.Last()
		return verse
	}

	verse, err := s.fetch(ctx)
	if err != nil {
		s.logger.Feeds().Error("Verse fetch failed", "error", err)
		last, _ := s.cache.Last()
		return last
	}

	s.cache.Set(verse)
	s.logger.LogCacheOperation("refresh", "weekly_verse", false, time.Since(start))
	return verse
}

// CacheFresh reports whether the next GetVerse will be served from cache
func (s *VerseService) CacheFresh() bool {
	_, ok := s.cache.Get()
	return ok
}

func (s *VerseService) fetch(ctx context.Context) (*feeds.Verse, error) {
	body, err := json.Marshal(map[string]string{"key": s.apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to encode verse request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build verse request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verse request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verse provider returned status %d", res.StatusCode)
	}

	var payload bncdResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode verse response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("verse provider status %q: %s", payload.Status, payload.Error)
	}

	verse := &feeds.Verse{
		Name: payload.Name,
		Date: payload.Date,
	}
	verse.WeekText, verse.WeekSource = periodPair(payload.IsWeek, payload.Week, payload.WeekS)
	verse.MonthText, verse.MonthSource = periodPair(payload.IsMonth, payload.Month, payload.MonthS)
	verse.YearText, verse.YearSource = periodPair(payload.IsYear, payload.Year, payload.YearS)
	verse.FirstText, verse.FirstSource = periodPair(payload.IsFirst, payload.First, payload.FirstS)
	verse.SecondText, verse.SecondSource = periodPair(payload.IsSecond, payload.Second, payload.SecondS)

	s.logger.Feeds().Info("Fetched weekly verse", "name", verse.Name, "date", verse.Date)
	return verse, nil
}

// periodPair nulls both the text and the source when the validity flag is
// unset, regardless of what the provider put in those fields
func periodPair(valid bool, text, source string) (*string, *string) {
	if !valid {
		return nil, nil
	}
	return &text, &source
}

// ManualVerse builds the override payload served in place of provider data
// when an admin has entered a verse by hand
func ManualVerse(text, source string) *feeds.Verse {
	return &feeds.Verse{
		WeekText:   &text,
		WeekSource: &source,
		Name:       "Ręczny wpis",
		Date:       "",
		Manual:     true,
	}
}
