package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

const (
	DefaultURL = "https://isthereaseattlehomegametoday.com/todays_events.json"
	UserAgent  = "seattle-home-game/1.0 (github.com/pfrederiksen/seattle-home-game)"
	Timeout    = 30 * time.Second

	// maxBodySize bounds the feed document; a day's feed is a few KB.
	maxBodySize = 1 << 20
)

// ErrFetch is wrapped by every error returned from Client.Fetch.
var ErrFetch = errors.New("fetching home game feed")

// Client handles fetching and decoding the home game feed
type Client struct {
	client *http.Client
	url    string
}

// New creates a new Client. An empty url selects DefaultURL and a
// non-positive timeout selects Timeout.
func New(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// URL returns the feed address this client polls.
func (c *Client) URL() string {
	return c.url
}

// Fetch downloads and decodes today's feed.
func (c *Client) Fetch(ctx context.Context) (*event.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrFetch, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrFetch, resp.StatusCode)
	}

	feed, err := parseFeed(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return feed, nil
}

// parseFeed decodes the feed document as received
func parseFeed(r io.Reader) (*event.Feed, error) {
	var feed event.Feed
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("invalid response format: %w", err)
	}
	return &feed, nil
}

// cleanFeed returns a copy of feed with plain-text names and descriptions.
// feed itself is left untouched.
func cleanFeed(feed *event.Feed) *event.Feed {
	cleaned := *feed
	cleaned.Events = make([]event.RawEvent, len(feed.Events))
	for i, raw := range feed.Events {
		raw.Description = cleanText(raw.Description)
		raw.Name = cleanText(raw.Name)
		cleaned.Events[i] = raw
	}
	return &cleaned
}

// cleanText reduces HTML markup and entities to plain text. Text without
// markup is only trimmed.
func cleanText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Source produces a fresh snapshot from the feed on every call.
type Source struct {
	client *Client
	now    func() time.Time
}

// NewSource creates a Source backed by client.
func NewSource(client *Client) *Source {
	return &Source{client: client, now: time.Now}
}

// Fetch downloads the feed and builds a snapshot from it. Events are
// enriched from cleaned text; RawEvents keeps the records as received.
func (s *Source) Fetch(ctx context.Context) (*event.Snapshot, error) {
	feed, err := s.client.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	snap := event.NewSnapshot(cleanFeed(feed), s.now())
	snap.RawEvents = make([]event.RawEvent, len(feed.Events))
	copy(snap.RawEvents, feed.Events)
	return snap, nil
}
