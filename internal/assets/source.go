// Package assets loads the game's images. Requests become futures that
// settle behind a single barrier; a failed image is replaced with a flat
// placeholder and never stops the game.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
)

// ErrEmptyRef is returned for a request with no reference.
var ErrEmptyRef = errors.New("assets: empty reference")

// Source fetches raw asset bytes.
type Source interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// FileSource reads from FS, falling back to the OS file system for paths
// FS does not hold.
type FileSource struct {
	FS fs.FS
}

// Fetch implements Source.
func (s FileSource) Fetch(_ context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}
	if s.FS != nil && fs.ValidPath(ref) {
		if data, err := fs.ReadFile(s.FS, ref); err == nil {
			return data, nil
		}
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", ref, err)
	}
	return data, nil
}

// HTTPSource downloads http(s) URLs.
type HTTPSource struct {
	Client *http.Client
}

// Fetch implements Source.
func (s HTTPSource) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if ref == "" {
		return nil, ErrEmptyRef
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: fetch %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assets: fetch %s: http status %d", ref, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("assets: read body %s: %w", ref, err)
	}
	return data, nil
}

// Router sends http(s) references to Remote and everything else to Local.
type Router struct {
	Local  Source
	Remote Source
}

// Fetch implements Source.
func (r Router) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if r.Remote == nil {
			return nil, fmt.Errorf("assets: no remote source for %s", ref)
		}
		return r.Remote.Fetch(ctx, ref)
	}
	if r.Local == nil {
		return nil, fmt.Errorf("assets: no local source for %s", ref)
	}
	return r.Local.Fetch(ctx, ref)
}
