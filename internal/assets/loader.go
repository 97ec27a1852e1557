package assets

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Status tags how a request settled.
type Status int

const (
	Pending Status = iota
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// Result is a settled request. Image is always usable: a failed request
// carries its placeholder and the error that caused the substitution.
type Result struct {
	Status Status
	Image  image.Image
	Err    error
}

// Future is a pending image request.
type Future struct {
	Key      string
	Ref      string
	Fallback Placeholder

	done   chan struct{}
	result Result
}

func newFuture(key, ref string, fallback Placeholder) *Future {
	return &Future{Key: key, Ref: ref, Fallback: fallback, done: make(chan struct{})}
}

func (f *Future) settle(r Result) {
	f.result = r
	close(f.done)
}

// Done is closed once the request has settled.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result returns the settled result, or a Pending result if the request
// is still running.
func (f *Future) Result() Result {
	select {
	case <-f.done:
		return f.result
	default:
		return Result{Status: Pending}
	}
}

// Wait blocks until the request settles or ctx is done.
func (f *Future) Wait(ctx context.Context) (Result, error) {
	select {
	case <-f.done:
		return f.result, nil
	case <-ctx.Done():
		return Result{Status: Pending}, ctx.Err()
	}
}

// DefaultConcurrency bounds parallel fetches during Settle.
const DefaultConcurrency = 4

// Loader collects image requests and settles them together.
type Loader struct {
	src    Source
	logger *log.Logger

	// Concurrency bounds parallel fetches. Zero means DefaultConcurrency.
	Concurrency int

	mu      sync.Mutex
	futures []*Future
	byKey   map[string]*Future
}

// NewLoader creates a loader reading from src. A nil logger discards.
func NewLoader(src Source, logger *log.Logger) *Loader {
	return &Loader{src: src, logger: logger, byKey: make(map[string]*Future)}
}

// Request registers an image under key. Requesting a key twice returns the
// first future.
func (l *Loader) Request(key, ref string, fallback Placeholder) *Future {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.byKey[key]; ok {
		return f
	}
	f := newFuture(key, ref, fallback)
	l.futures = append(l.futures, f)
	l.byKey[key] = f
	return f
}

// Settle fetches and decodes every pending request and returns once all
// have settled. Asset failures are logged and replaced with placeholders;
// only a cancelled ctx is reported as an error.
func (l *Loader) Settle(ctx context.Context) error {
	l.mu.Lock()
	pending := make([]*Future, 0, len(l.futures))
	for _, f := range l.futures {
		if f.Result().Status == Pending {
			pending = append(pending, f)
		}
	}
	l.mu.Unlock()

	limit := l.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, f := range pending {
		g.Go(func() error {
			f.settle(l.load(gctx, f))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (l *Loader) load(ctx context.Context, f *Future) Result {
	img, err := l.fetch(ctx, f.Ref)
	if err != nil {
		switch {
		case l.logger == nil:
		case errors.Is(err, ErrEmptyRef):
			l.logger.Debug("no image configured", "asset", f.Key)
		default:
			l.logger.Warn("using placeholder", "asset", f.Key, "ref", f.Ref, "error", err)
		}
		return Result{Status: Failed, Image: f.Fallback.Image(), Err: err}
	}
	return Result{Status: Loaded, Image: img}
}

func (l *Loader) fetch(ctx context.Context, ref string) (image.Image, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := l.src.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Images returns every settled image by key.
func (l *Loader) Images() map[string]image.Image {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]image.Image, len(l.futures))
	for _, f := range l.futures {
		if r := f.Result(); r.Status != Pending {
			out[f.Key] = r.Image
		}
	}
	return out
}

// Failures returns the keys that fell back to placeholders.
func (l *Loader) Failures() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var keys []string
	for _, f := range l.futures {
		if f.Result().Status == Failed {
			keys = append(keys, f.Key)
		}
	}
	return keys
}
