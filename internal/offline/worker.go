package offline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/polarity-mcp/internal/logging"
)

var (
	// ErrFetch is returned by Install when an asset cannot be retrieved or
	// answers with a non-2xx status.
	ErrFetch = errors.New("asset fetch failed")

	// ErrCacheTooSmall is returned by Install when the asset list does not
	// fit in a single cache.
	ErrCacheTooSmall = errors.New("asset list exceeds cache size")
)

// maxInstallFetches bounds concurrent downloads during Install.
const maxInstallFetches = 4

// Worker installs, activates and serves one versioned asset cache.
type Worker struct {
	// Name is the current cache version.
	Name string
	// URLs are the assets to install. Relative entries resolve against Base.
	URLs []string
	// Base resolves relative URLs.
	Base *url.URL
	// Storage holds the caches.
	Storage *Storage
	// Network performs real requests. Nil means http.DefaultTransport.
	Network http.RoundTripper
	// Log receives progress messages. Nil discards them.
	Log *logrus.Entry
}

// NewWorker returns a worker for the named cache over storage.
func NewWorker(name, base string, urls []string, storage *Storage, log *logrus.Entry) (*Worker, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	return &Worker{
		Name:    name,
		URLs:    urls,
		Base:    u,
		Storage: storage,
		Log:     log,
	}, nil
}

func (w *Worker) network() http.RoundTripper {
	if w.Network != nil {
		return w.Network
	}
	return http.DefaultTransport
}

func (w *Worker) log() *logrus.Entry {
	if w.Log != nil {
		return w.Log
	}
	return logging.Discard()
}

// Resolve returns the absolute, de-duplicated asset URLs.
func (w *Worker) Resolve() ([]string, error) {
	resolved := make([]string, 0, len(w.URLs))
	for _, raw := range w.URLs {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse asset url %q: %w", raw, err)
		}
		if w.Base != nil {
			u = w.Base.ResolveReference(u)
		}
		if !u.IsAbs() {
			return nil, fmt.Errorf("asset url %q is not absolute", u)
		}
		resolved = append(resolved, u.String())
	}
	return lo.Uniq(resolved), nil
}

// Install fetches every asset and stores them in the current cache.
//
// Nothing is stored unless every fetch succeeds with a 2xx status.
func (w *Worker) Install(ctx context.Context) error {
	urls, err := w.Resolve()
	if err != nil {
		return err
	}
	if len(urls) > w.Storage.Size() {
		return fmt.Errorf("%w: %d assets, cache holds %d", ErrCacheTooSmall, len(urls), w.Storage.Size())
	}

	entries := make([]*Entry, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInstallFetches)
	for i, u := range urls {
		g.Go(func() error {
			e, err := w.fetch(gctx, u)
			if err != nil {
				return err
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		w.log().WithError(err).Warn("Install failed, cache left untouched")
		return err
	}

	cache, err := w.Storage.Open(w.Name)
	if err != nil {
		return err
	}
	batch := make(map[string]*Entry, len(urls))
	for i, u := range urls {
		batch[u] = entries[i]
	}
	cache.AddAll(batch)

	w.log().WithFields(logrus.Fields{
		"cache":  w.Name,
		"assets": len(batch),
	}).Info("Opened cache")
	return nil
}

func (w *Worker) fetch(ctx context.Context, u string) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, u, err)
	}
	resp, err := w.network().RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, u, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: failed to read body: %w", ErrFetch, u, err)
	}
	return &Entry{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}

// Activate deletes every cache other than the current one and returns the
// deleted names.
func (w *Worker) Activate(ctx context.Context) ([]string, error) {
	stale := lo.Filter(w.Storage.Keys(), func(name string, _ int) bool {
		return name != w.Name
	})

	deleted := make([]string, 0, len(stale))
	for _, name := range stale {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if w.Storage.Delete(name) {
			deleted = append(deleted, name)
			w.log().WithField("cache", name).Info("Deleted stale cache")
		}
	}
	return deleted, nil
}

// Fetch answers req from any cache, or from the network on a miss.
// Only GET requests are served from the cache.
func (w *Worker) Fetch(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodGet || req.Method == "" {
		if e, ok := w.Storage.Match(req.URL.String()); ok {
			w.log().WithField("url", req.URL.String()).Debug("Served from cache")
			return e.response(req), nil
		}
	}
	return w.network().RoundTrip(req)
}

// RoundTrip implements http.RoundTripper.
func (w *Worker) RoundTrip(req *http.Request) (*http.Response, error) {
	return w.Fetch(req)
}

func (e *Entry) response(req *http.Request) *http.Response {
	return &http.Response{
		Status:        strconv.Itoa(e.Status) + " " + http.StatusText(e.Status),
		StatusCode:    e.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        e.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}
