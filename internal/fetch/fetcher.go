// Package fetch provides the deck's data source.
//
// FetchBatch asks the remote cat API for a batch of records and turns them
// into model.Items. It never fails: any problem with the remote call is
// logged and a locally synthesized fallback batch is returned instead.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/abelbrown/kittyswipe/internal/logging"
	"github.com/abelbrown/kittyswipe/internal/model"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps the batch response we are willing to read.
const maxBodyBytes = 4 << 20

// errEmptyBatch marks a well-formed but empty response.
var errEmptyBatch = errors.New("remote returned no items")

// Source describes the remote endpoint and how image URLs are built.
type Source struct {
	Endpoint    string // batch endpoint, receives ?limit=N
	ImageURL    string // fmt template: id, width, height, token
	FallbackURL string // fmt template: width, height, token
	Width       int
	Height      int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRand injects the random source used for vibes, tags and cache-busting
// tokens. A fixed seed gives reproducible batches.
func WithRand(r *rand.Rand) Option {
	return func(f *Fetcher) { f.rng = r }
}

// WithMinInterval paces consecutive batch requests.
func WithMinInterval(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// Fetcher retrieves card batches.
type Fetcher struct {
	client  *http.Client
	source  Source
	limiter *rate.Limiter

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewFetcher creates a Fetcher with the given HTTP client timeout.
func NewFetcher(timeout time.Duration, src Source, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{Timeout: timeout},
		source:  src,
		limiter: rate.NewLimiter(rate.Inf, 1),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// remoteCat is one record of the batch response. Only the id is used; the
// rest of the payload is ignored.
type remoteCat struct {
	ID string `json:"_id"`
}

// FetchBatch returns exactly n items. Remote failures are logged and
// replaced by a fallback batch; a short remote batch is topped up with
// fallback items.
func (f *Fetcher) FetchBatch(ctx context.Context, n int) []model.Item {
	if n <= 0 {
		return nil
	}
	log := logging.WithPrefix("fetch")

	cats, err := f.fetchRemote(ctx, n)
	if err != nil {
		log.Warn("remote batch failed, using fallback", "err", err, "count", n)
		return f.Fallback(n)
	}

	if len(cats) > n {
		cats = cats[:n]
	}

	items := make([]model.Item, 0, n)
	for i, c := range cats {
		items = append(items, f.remoteItem(i, c))
	}
	if len(items) < n {
		log.Warn("remote batch short, topping up", "got", len(items), "want", n)
		for i := len(items); i < n; i++ {
			items = append(items, f.fallbackItem(i))
		}
	}

	log.Info("batch fetched", "count", len(items), "remote", len(cats))
	return items
}

// fetchRemote performs the batch request and decodes the payload.
func (f *Fetcher) fetchRemote(ctx context.Context, n int) ([]remoteCat, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u, err := url.Parse(f.source.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(n))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "kittyswipe/0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var cats []remoteCat
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&cats); err != nil {
		return nil, fmt.Errorf("failed to parse batch: %w", err)
	}
	if len(cats) == 0 {
		return nil, errEmptyBatch
	}
	return cats, nil
}

// Fallback synthesizes n items with generic image URLs.
func (f *Fetcher) Fallback(n int) []model.Item {
	items := make([]model.Item, n)
	for i := range items {
		items[i] = f.fallbackItem(i)
	}
	return items
}

func (f *Fetcher) remoteItem(i int, c remoteCat) model.Item {
	if c.ID == "" {
		it := f.fallbackItem(i)
		it.ID = fmt.Sprintf("remote-%d", i)
		return it
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return model.Item{
		ID:       c.ID,
		ImageURL: fmt.Sprintf(f.source.ImageURL, url.PathEscape(c.ID), f.source.Width, f.source.Height, f.token()),
		Name:     displayName(i),
		Vibe:     randomVibe(f.rng),
		Tags:     randomTags(f.rng, TagsPerItem),
	}
}

func (f *Fetcher) fallbackItem(i int) model.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return model.Item{
		ID:       fmt.Sprintf("fallback-%d", i),
		ImageURL: fmt.Sprintf(f.source.FallbackURL, f.source.Width, f.source.Height, f.token()),
		Name:     displayName(i),
		Vibe:     randomVibe(f.rng),
		Tags:     randomTags(f.rng, TagsPerItem),
	}
}

// token returns a cache-busting value drawn from rng. Caller holds mu.
func (f *Fetcher) token() string {
	id, err := uuid.NewRandomFromReader(f.rng)
	if err != nil {
		// math/rand never fails to read; keep a unique value regardless
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return id.String()
}

func displayName(i int) string {
	return fmt.Sprintf("Kitty #%d", i+1)
}
