// Package preload downloads card images in the background and tracks when
// each one is ready to show.
//
// An image is settled once it has either rendered or failed; waiters never
// distinguish the two, so a broken image cannot block the UI. Images are
// keyed by URL, which is unique within a session.
//
// Goroutine safety: all methods may be called concurrently. Each batch of
// work lives in a generation (context + errgroup); Reset and Close cancel
// the current generation and wait for its goroutines before returning.
package preload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/abelbrown/kittyswipe/internal/art"
	"github.com/abelbrown/kittyswipe/internal/logging"
	"github.com/abelbrown/kittyswipe/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ErrClosed is returned by waits on a closed or reset loader.
var ErrClosed = errors.New("preload: loader closed")

// State is the readiness of one image.
type State int

const (
	StatePending State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Options configures a Loader.
type Options struct {
	Workers     int           // concurrent downloads
	MinInterval time.Duration // pacing between downloads; 0 disables
	ArtWidth    int           // rendered width in cells
	ArtHeight   int           // rendered height in cells
	Timeout     time.Duration // per-request timeout
	Client      *http.Client  // optional; a private client is created if nil
}

type entry struct {
	done  chan struct{}
	state State
	art   string
	err   error
}

type generation struct {
	ctx     context.Context
	cancel  context.CancelFunc
	group   *errgroup.Group
	wg      sync.WaitGroup // dispatchers
	entries map[string]*entry
}

// Loader preloads images and renders them to ANSI art.
type Loader struct {
	opts    Options
	client  *http.Client
	limiter *rate.Limiter

	mu     sync.Mutex
	gen    *generation
	closed bool
}

// NewLoader creates a Loader. Call Close when done.
func NewLoader(opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout:   opts.Timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}

	l := &Loader{
		opts:    opts,
		client:  client,
		limiter: rate.NewLimiter(limit, opts.Workers),
	}
	l.gen = l.newGeneration()
	return l
}

func (l *Loader) newGeneration() *generation {
	ctx, cancel := context.WithCancel(context.Background())
	g := &errgroup.Group{}
	g.SetLimit(l.opts.Workers)
	return &generation{
		ctx:     ctx,
		cancel:  cancel,
		group:   g,
		entries: make(map[string]*entry),
	}
}

// Start begins loading every image not already known. It does not block.
func (l *Loader) Start(items []model.Item) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	gen := l.gen
	var fresh []string
	for _, it := range items {
		if _, ok := gen.entries[it.ImageURL]; ok {
			continue
		}
		gen.entries[it.ImageURL] = &entry{done: make(chan struct{})}
		fresh = append(fresh, it.ImageURL)
	}
	if len(fresh) > 0 {
		gen.wg.Add(1)
	}
	l.mu.Unlock()

	if len(fresh) == 0 {
		return
	}

	// Dispatch in deck order so the first card is requested first.
	go func() {
		defer gen.wg.Done()
		for _, url := range fresh {
			url := url
			e := l.lookup(gen, url)
			if gen.ctx.Err() != nil {
				l.finish(e, "", gen.ctx.Err())
				continue
			}
			gen.group.Go(func() error {
				a, err := l.load(gen.ctx, url)
				if err != nil {
					logging.Debug("image load failed", "url", url, "err", err)
				}
				l.finish(e, a, err)
				return nil
			})
		}
	}()
}

// Preload starts loading items and returns once the first image has
// settled. The rest continue in the background. Only ctx ending (or the
// loader closing) produces an error.
func (l *Loader) Preload(ctx context.Context, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}
	l.Start(items)
	return l.wait(ctx, items[0].ImageURL)
}

// WaitAll blocks until every item's image has settled, in parallel. Bound it
// with a context deadline; with no deadline it waits as long as it takes.
func (l *Loader) WaitAll(ctx context.Context, items []model.Item) error {
	l.Start(items)

	g, gctx := errgroup.WithContext(ctx)
	for _, it := range items {
		url := it.ImageURL
		g.Go(func() error { return l.wait(gctx, url) })
	}
	return g.Wait()
}

// Art returns the rendered image for url and its state. The string is only
// meaningful when the state is StateReady.
func (l *Loader) Art(url string) (string, State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.gen.entries[url]
	if !ok {
		return "", StatePending
	}
	return e.art, e.state
}

// Reset cancels in-flight loads and forgets every image.
func (l *Loader) Reset() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	old := l.gen
	l.gen = l.newGeneration()
	l.mu.Unlock()

	stop(old)
}

// Close cancels in-flight loads and waits for all goroutines to exit.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	gen := l.gen
	l.mu.Unlock()

	stop(gen)
	l.client.CloseIdleConnections()
}

func stop(gen *generation) {
	gen.cancel()
	gen.wg.Wait()
	_ = gen.group.Wait()
}

func (l *Loader) wait(ctx context.Context, url string) error {
	l.mu.Lock()
	gen := l.gen
	e, ok := gen.entries[url]
	l.mu.Unlock()
	if !ok {
		return ErrClosed
	}

	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-gen.ctx.Done():
		// cancelled entries are finished by the dispatcher, prefer that
		select {
		case <-e.done:
			return nil
		default:
			return ErrClosed
		}
	}
}

func (l *Loader) lookup(gen *generation, url string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return gen.entries[url]
}

func (l *Loader) finish(e *entry, a string, err error) {
	l.mu.Lock()
	if err != nil {
		e.state = StateFailed
		e.err = err
	} else {
		e.state = StateReady
		e.art = a
	}
	l.mu.Unlock()
	close(e.done)
}

// load downloads, decodes and renders one image.
func (l *Loader) load(ctx context.Context, url string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "kittyswipe/0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	img, err := art.Decode(resp.Body)
	if err != nil {
		return "", err
	}
	return art.Render(img, l.opts.ArtWidth, l.opts.ArtHeight), nil
}
