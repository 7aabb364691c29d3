package fetch

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/kittyswipe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource(endpoint string) Source {
	return Source{
		Endpoint:    endpoint,
		ImageURL:    "https://img.test/cat/%s?width=%d&height=%d&random=%s",
		FallbackURL: "https://img.test/cat?width=%d&height=%d&random=%s",
		Width:       600,
		Height:      600,
	}
}

func newTestFetcher(endpoint string, seed int64) *Fetcher {
	return NewFetcher(2*time.Second, testSource(endpoint), WithRand(rand.New(rand.NewSource(seed))))
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func assertWellFormed(t *testing.T, items []model.Item, n int) {
	t.Helper()
	require.Len(t, items, n)
	seen := make(map[string]bool, n)
	for i, it := range items {
		assert.NotEmpty(t, it.ImageURL, "item %d image", i)
		assert.NotEmpty(t, it.Vibe, "item %d vibe", i)
		assert.Contains(t, Vibes, it.Vibe)
		assert.Len(t, it.Tags, TagsPerItem, "item %d tags", i)
		assert.False(t, seen[it.ImageURL], "duplicate image url %s", it.ImageURL)
		seen[it.ImageURL] = true
	}
}

func TestFetchBatchRemote(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`[{"_id":"abc","tags":["orange"]},{"_id":"def"},{"_id":"ghi"}]`))
	}))
	defer srv.Close()

	items := newTestFetcher(srv.URL, 1).FetchBatch(context.Background(), 3)

	assert.Equal(t, "3", gotLimit)
	assertWellFormed(t, items, 3)
	assert.Equal(t, "abc", items[0].ID)
	assert.True(t, strings.HasPrefix(items[0].ImageURL, "https://img.test/cat/abc?width=600&height=600&random="))
	assert.Equal(t, "Kitty #1", items[0].Name)
	assert.Equal(t, "Kitty #3", items[2].Name)
}

func TestFetchBatchTruncatesLongResponse(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"_id":"a"},{"_id":"b"},{"_id":"c"},{"_id":"d"}]`)
	items := newTestFetcher(srv.URL, 1).FetchBatch(context.Background(), 2)
	assertWellFormed(t, items, 2)
	assert.Equal(t, "b", items[1].ID)
}

func TestFetchBatchMissingIDUsesGenericURL(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"_id":"a"},{}]`)
	items := newTestFetcher(srv.URL, 1).FetchBatch(context.Background(), 2)
	assertWellFormed(t, items, 2)
	assert.True(t, strings.HasPrefix(items[1].ImageURL, "https://img.test/cat?width=600"))
}

func TestFetchBatchShortResponseIsToppedUp(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"_id":"only"}]`)
	items := newTestFetcher(srv.URL, 1).FetchBatch(context.Background(), 12)
	assertWellFormed(t, items, 12)
	assert.Equal(t, "only", items[0].ID)
	assert.Equal(t, "fallback-1", items[1].ID)
	assert.Equal(t, "Kitty #12", items[11].Name)
}

func TestFetchBatchFallback(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"not found", http.StatusNotFound, ``},
		{"malformed", http.StatusOK, `{not json`},
		{"object not array", http.StatusOK, `{"_id":"a"}`},
		{"empty array", http.StatusOK, `[]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := serve(t, tc.status, tc.body)
			items := newTestFetcher(srv.URL, 7).FetchBatch(context.Background(), 12)
			assertWellFormed(t, items, 12)
			for i, it := range items {
				assert.True(t, strings.HasPrefix(it.ImageURL, "https://img.test/cat?"), "item %d", i)
			}
		})
	}
}

func TestFetchBatchUnreachable(t *testing.T) {
	srv := serve(t, http.StatusOK, `[]`)
	endpoint := srv.URL
	srv.Close()

	items := newTestFetcher(endpoint, 3).FetchBatch(context.Background(), 5)
	assertWellFormed(t, items, 5)
}

func TestFetchBatchCancelledContext(t *testing.T) {
	srv := serve(t, http.StatusOK, `[{"_id":"a"}]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := newTestFetcher(srv.URL, 3).FetchBatch(ctx, 4)
	assertWellFormed(t, items, 4)
	assert.Equal(t, "fallback-0", items[0].ID)
}

func TestFetchBatchZero(t *testing.T) {
	assert.Empty(t, newTestFetcher("http://unused.invalid", 1).FetchBatch(context.Background(), 0))
}

func TestFallbackDeterministicWithSeed(t *testing.T) {
	a := newTestFetcher("http://unused.invalid", 42).Fallback(6)
	b := newTestFetcher("http://unused.invalid", 42).Fallback(6)
	assert.Equal(t, a, b)

	c := newTestFetcher("http://unused.invalid", 43).Fallback(6)
	assert.NotEqual(t, a, c)
}

func TestRandomTagsDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		tags := randomTags(rng, 4)
		require.Len(t, tags, 4)
		seen := map[string]bool{}
		for _, tag := range tags {
			assert.False(t, seen[tag], "duplicate tag %q", tag)
			seen[tag] = true
		}
	}
	assert.Len(t, randomTags(rng, 100), len(TagPool))
}
