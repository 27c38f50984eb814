package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/parafia-jawornik/parafia-go/internal/domain/entities/feeds"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/caching"
	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/pkg/config"
)

// FacebookService fetches page posts through the Graph API. The configured
// token may be a user token or a page token; the service resolves it to a
// concrete page credential once and reuses it for the process lifetime.
// Failed resolutions are retried on the next request.
type FacebookService struct {
	userToken  string
	configSlug string
	baseURL    string
	client     *http.Client
	cache      *caching.Cell[[]feeds.Post]
	logger     *logging.ChanneledLogger

	mu            sync.Mutex
	credential    *feeds.PageCredential
	lastKnownSlug string
}

// NewFacebookService creates a Facebook service
func NewFacebookService(userToken, pageSlug, baseURL string, timeout, cacheTTL time.Duration, logger *logging.ChanneledLogger) *FacebookService {
	return &FacebookService{
		userToken:     userToken,
		configSlug:    pageSlug,
		baseURL:       strings.TrimRight(baseURL, "/"),
		client:        &http.Client{Timeout: timeout},
		cache:         caching.NewCell[[]feeds.Post](cacheTTL),
		logger:        logger,
		lastKnownSlug: pageSlug,
	}
}

// HasToken reports whether a token was configured at all
func (s *FacebookService) HasToken() bool {
	return s.userToken != ""
}

// PageSlug returns the resolved page slug, falling back to the last known
// slug before resolution succeeds
func (s *FacebookService) PageSlug() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.credential != nil {
		return s.credential.Slug
	}
	return s.lastKnownSlug
}

type graphMedia struct {
	Image *struct {
		Src string `json:"src"`
	} `json:"image"`
}

type graphAttachment struct {
	Media          *graphMedia `json:"media"`
	Subattachments *struct {
		Data []graphAttachment `json:"data"`
	} `json:"subattachments"`
}

type graphPost struct {
	ID           string `json:"id"`
	Message      string `json:"message"`
	FullPicture  string `json:"full_picture"`
	CreatedTime  string `json:"created_time"`
	PermalinkURL string `json:"permalink_url"`
	Attachments  *struct {
		Data []graphAttachment `json:"data"`
	} `json:"attachments"`
	Reactions *struct {
		Summary *struct {
			TotalCount int `json:"total_count"`
		} `json:"summary"`
	} `json:"reactions"`
	Shares *struct {
		Count int `json:"count"`
	} `json:"shares"`
	Comments *struct {
		Summary *struct {
			TotalCount int `json:"total_count"`
		} `json:"summary"`
	} `json:"comments"`
}

type graphPage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
	Link        string `json:"link"`
}

// GetPosts returns the cached posts when fresh, otherwise fetches from the
// Graph API. Returns an empty slice when no credential can be resolved and
// degrades to the last known posts when the posts request itself fails.
func (s *FacebookService) GetPosts(ctx context.Context) []feeds.Post {
	start := time.Now()
	if posts, ok := s.cache.Get(); ok {
		s.logger.LogCacheOperation("serve", "facebook_posts", true, time.Since(start))
		return posts
	}

	credential := s.resolveCredential(ctx)
	if credential == nil {
		return []feeds.Post{}
	}

	posts, err := s.fetchPosts(ctx, credential)
	if err != nil {
		s.logger.Feeds().Error("Facebook posts fetch failed", "error", err)
		if last, ok := s.cache.Last(); ok {
			return last
		}
		return []feeds.Post{}
	}

	s.cache.Set(posts)
	s.logger.LogCacheOperation("refresh", "facebook_posts", false, time.Since(start))
	return posts
}

// CacheFresh reports whether the next GetPosts will be served from cache
func (s *FacebookService) CacheFresh() bool {
	_, ok := s.cache.Get()
	return ok
}

// resolveCredential resolves the configured token to a page credential.
// A user token lists its pages via /me/accounts; a page token identifies
// itself via /me. Success is memoized, failure is not.
func (s *FacebookService) resolveCredential(ctx context.Context) *feeds.PageCredential {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.credential != nil {
		return s.credential
	}
	if s.userToken == "" {
		return nil
	}

	if credential := s.resolveViaAccounts(ctx); credential != nil {
		s.credential = credential
		s.lastKnownSlug = credential.Slug
		return credential
	}

	s.logger.Feeds().Debug("Accounts listing failed or empty, trying token as page token")
	credential := s.resolveViaIdentity(ctx)
	if credential != nil {
		s.credential = credential
		s.lastKnownSlug = credential.Slug
	}
	return credential
}

func (s *FacebookService) resolveViaAccounts(ctx context.Context) *feeds.PageCredential {
	accountsURL := fmt.Sprintf("%s/me/accounts?fields=id,name,access_token,link&access_token=%s",
		s.baseURL, url.QueryEscape(s.userToken))

	var payload struct {
		Data []graphPage `json:"data"`
	}
	if err := s.getJSON(ctx, accountsURL, &payload); err != nil {
		s.logger.Feeds().Debug("Accounts listing request failed", "error", err)
		return nil
	}
	if len(payload.Data) == 0 {
		return nil
	}

	page := s.pickPage(payload.Data)
	slug := slugFromLink(page.Link, s.configSlug)
	s.logger.Feeds().Info("Resolved Facebook page from user token",
		"page", page.Name, "pageId", page.ID, "slug", slug)

	return &feeds.PageCredential{PageID: page.ID, AccessToken: page.AccessToken, Slug: slug}
}

func (s *FacebookService) resolveViaIdentity(ctx context.Context) *feeds.PageCredential {
	meURL := fmt.Sprintf("%s/me?fields=id,name,link&access_token=%s",
		s.baseURL, url.QueryEscape(s.userToken))

	var me graphPage
	if err := s.getJSON(ctx, meURL, &me); err != nil {
		s.logger.Feeds().Error("Facebook identity request failed", "error", err)
		return nil
	}

	slug := slugFromLink(me.Link, s.configSlug)
	s.logger.Feeds().Info("Resolved Facebook page from page token",
		"page", me.Name, "pageId", me.ID, "slug", slug)

	return &feeds.PageCredential{PageID: me.ID, AccessToken: s.userToken, Slug: slug}
}

// pickPage selects among the pages the user token manages: an exact or
// partial match on the configured slug wins, otherwise the first page
func (s *FacebookService) pickPage(pages []graphPage) graphPage {
	if len(pages) == 1 {
		return pages[0]
	}
	needle := strings.ToLower(s.configSlug)
	for _, p := range pages {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(p.Link, s.configSlug) ||
			p.ID == s.configSlug {
			return p
		}
	}
	return pages[0]
}

func (s *FacebookService) fetchPosts(ctx context.Context, credential *feeds.PageCredential) ([]feeds.Post, error) {
	fields := "message,full_picture,created_time,permalink_url," +
		"attachments{media,subattachments,media_type,url,title}," +
		"reactions.summary(true).limit(0),shares,comments.summary(true).limit(0)"
	postsURL := fmt.Sprintf("%s/%s/posts?fields=%s&limit=%d&access_token=%s",
		s.baseURL, credential.PageID, url.QueryEscape(fields),
		config.FacebookPostLimit, url.QueryEscape(credential.AccessToken))

	var payload struct {
		Data []graphPost `json:"data"`
	}
	if err := s.getJSON(ctx, postsURL, &payload); err != nil {
		return nil, err
	}

	posts := make([]feeds.Post, 0, len(payload.Data))
	for _, p := range payload.Data {
		posts = append(posts, normalizePost(p))
	}
	s.logger.Feeds().Info("Fetched Facebook posts", "count", len(posts))
	return posts, nil
}

func (s *FacebookService) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("graph API returned status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// normalizePost flattens a Graph API post into the wire shape the frontend
// consumes. Album posts contribute every subattachment image; single-image
// posts contribute the attachment image; full_picture is the fallback when
// no attachment carried an image.
func normalizePost(p graphPost) feeds.Post {
	images := []string{}
	if p.Attachments != nil {
		for _, att := range p.Attachments.Data {
			if att.Subattachments != nil {
				for _, sub := range att.Subattachments.Data {
					if sub.Media != nil && sub.Media.Image != nil && sub.Media.Image.Src != "" {
						images = append(images, sub.Media.Image.Src)
					}
				}
			} else if att.Media != nil && att.Media.Image != nil && att.Media.Image.Src != "" {
				images = append(images, att.Media.Image.Src)
			}
		}
	}
	if len(images) == 0 && p.FullPicture != "" {
		images = append(images, p.FullPicture)
	}

	post := feeds.Post{
		ID:           p.ID,
		Message:      p.Message,
		Images:       images,
		CreatedTime:  p.CreatedTime,
		PermalinkURL: p.PermalinkURL,
	}
	if p.Reactions != nil && p.Reactions.Summary != nil {
		post.ReactionsCount = p.Reactions.Summary.TotalCount
	}
	if p.Shares != nil {
		post.SharesCount = p.Shares.Count
	}
	if p.Comments != nil && p.Comments.Summary != nil {
		post.CommentsCount = p.Comments.Summary.TotalCount
	}
	return post
}

// slugFromLink derives the public page slug from the page's canonical link,
// falling back to the configured slug when the link is absent or unparsable
func slugFromLink(link, fallback string) string {
	if link == "" {
		return fallback
	}
	u, err := url.Parse(link)
	if err != nil {
		return fallback
	}
	slug := strings.ReplaceAll(u.Path, "/", "")
	if slug == "" {
		return fallback
	}
	return slug
}
