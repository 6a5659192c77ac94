// Package carousel builds and rotates the poster slideshow behind pages.
package carousel

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/domain/models"
	"fym/proj/internal/metrics"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMaxImages    = 20
	DefaultPlaceholder  = "/fym_logo.png"
	DefaultPreloadCount = 3
)

type Query struct {
	Term string `json:"term" validate:"required"`
	Type string `json:"type,omitempty" validate:"omitempty,oneof=movie series"`
}

// CacheKey serialises an ordered query set, e.g. "Matrix:movie|Friends:all".
func CacheKey(queries []Query) string {
	parts := make([]string, len(queries))
	for i, q := range queries {
		typ := q.Type
		if typ == "" {
			typ = "all"
		}
		parts[i] = q.Term + ":" + typ
	}
	return strings.Join(parts, "|")
}

type Searcher interface {
	Search(ctx context.Context, params omdb.SearchParams) (*models.SearchEnvelope, error)
}

type TaskExecutor interface {
	TryAdd(task func()) bool
}

type Options struct {
	MaxImages    int
	Placeholder  string
	PreloadCount int
}

// Collector resolves query sets into poster lists and keeps every non-empty
// list in a process-wide map, so the same query set never hits the network
// twice.
type Collector struct {
	log      *slog.Logger
	searcher Searcher
	tasks    TaskExecutor
	opts     Options
	warm     func(url string)

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string][]string
}

func NewCollector(log *slog.Logger, searcher Searcher, tasks TaskExecutor, httpClient *http.Client, opts Options) *Collector {
	if opts.MaxImages <= 0 {
		opts.MaxImages = DefaultMaxImages
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.PreloadCount < 0 {
		opts.PreloadCount = 0
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Collector{
		log:      log,
		searcher: searcher,
		tasks:    tasks,
		opts:     opts,
		cache:    make(map[string][]string),
	}
	c.warm = func(url string) { warmImage(httpClient, url) }
	return c
}

// Collect returns the poster list for queries. Per-query failures are
// skipped; when nothing is left the list is just the placeholder, which is
// not cached so a later call can try again. The shared fetch outlives ctx: a
// caller that goes away gets the placeholder while the fetch still fills the
// cache for everyone else.
func (c *Collector) Collect(ctx context.Context, queries []Query) []string {
	const op = "carousel.Collector.Collect"
	key := CacheKey(queries)

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		metrics.CarouselCollections.WithLabelValues("cache").Inc()
		return append([]string(nil), cached...)
	}

	ch := c.group.DoChan(key, func() (any, error) {
		images := c.fetch(context.WithoutCancel(ctx), queries)
		if len(images) > 0 {
			c.mu.Lock()
			c.cache[key] = images
			c.mu.Unlock()
			metrics.CarouselCollections.WithLabelValues("network").Inc()
			c.preload(images)
		}
		return images, nil
	})

	var images []string
	select {
	case <-ctx.Done():
		return []string{c.opts.Placeholder}
	case res := <-ch:
		images = res.Val.([]string)
	}
	if len(images) == 0 {
		c.log.Info("no posters found, using placeholder", "op", op, "key", key)
		metrics.CarouselCollections.WithLabelValues("placeholder").Inc()
		return []string{c.opts.Placeholder}
	}
	return append([]string(nil), images...)
}

func (c *Collector) fetch(ctx context.Context, queries []Query) []string {
	const op = "carousel.Collector.fetch"
	perQuery := make([][]string, len(queries))
	var g errgroup.Group
	for i, q := range queries {
		g.Go(func() error {
			env, err := c.searcher.Search(ctx, omdb.SearchParams{Query: q.Term, Type: q.Type})
			if err != nil {
				c.log.Debug("carousel query failed", "op", op, "term", q.Term, "error", err)
				return nil
			}
			for _, item := range env.Search {
				if item.Poster != "" && item.Poster != models.NotAvailable {
					perQuery[i] = append(perQuery[i], item.Poster)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{})
	images := []string{}
	for _, posters := range perQuery {
		for _, p := range posters {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			images = append(images, p)
			if len(images) == c.opts.MaxImages {
				return images
			}
		}
	}
	return images
}

// preload warms the first images of a freshly resolved list in the
// background. Cached lists are never preloaded again. It is best effort: a
// full queue or a failed fetch is ignored.
func (c *Collector) preload(images []string) {
	if c.tasks == nil {
		return
	}
	n := min(c.opts.PreloadCount, len(images))
	for _, url := range images[:n] {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			continue
		}
		c.tasks.TryAdd(func() { c.warm(url) })
	}
}

func warmImage(client *http.Client, url string) {
	resp, err := client.Get(url)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 10<<20))
}
