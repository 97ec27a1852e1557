package world

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// Source says where a map comes from. Ref is an http(s) URL, a path inside
// FS, or an OS path when FS is nil or does not hold it.
type Source struct {
	Ref string
	FS  fs.FS
}

// Format is a map file format.
type Format int

const (
	FormatText Format = iota
	FormatTMX
)

// FormatOf picks the format from the file extension. Anything that is not
// .tmx is treated as text.
func FormatOf(ref string) Format {
	if i := strings.IndexAny(ref, "?#"); i >= 0 && isRemote(ref) {
		ref = ref[:i]
	}
	if strings.EqualFold(path.Ext(ref), ".tmx") {
		return FormatTMX
	}
	return FormatText
}

// Load fetches and parses a map. Failures are returned as errors; the
// caller treats them as fatal to startup.
func Load(ctx context.Context, src Source, dims Dims, client *http.Client) (*Level, error) {
	if src.Ref == "" {
		return nil, errors.New("world: empty map reference")
	}

	if FormatOf(src.Ref) == FormatTMX {
		if isRemote(src.Ref) {
			return nil, fmt.Errorf("world: tmx maps must be local: %s", src.Ref)
		}
		if src.FS != nil && exists(src.FS, src.Ref) {
			return ParseTMX(src.FS, src.Ref, dims)
		}
		return ParseTMX(nil, src.Ref, dims)
	}

	data, err := fetch(ctx, src, client)
	if err != nil {
		return nil, err
	}
	grid, warnings := ParseText(string(data), dims)
	return &Level{Grid: grid, Warnings: warnings}, nil
}

func fetch(ctx context.Context, src Source, client *http.Client) ([]byte, error) {
	if isRemote(src.Ref) {
		return fetchHTTP(ctx, src.Ref, client)
	}
	if src.FS != nil && exists(src.FS, src.Ref) {
		data, err := fs.ReadFile(src.FS, src.Ref)
		if err != nil {
			return nil, fmt.Errorf("world: read %s: %w", src.Ref, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(src.Ref)
	if err != nil {
		return nil, fmt.Errorf("world: read %s: %w", src.Ref, err)
	}
	return data, nil
}

func fetchHTTP(ctx context.Context, url string, client *http.Client) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("world: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("world: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("world: fetch %s: http status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("world: read body %s: %w", url, err)
	}
	return data, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func exists(fsys fs.FS, name string) bool {
	if !fs.ValidPath(name) {
		return false
	}
	_, err := fs.Stat(fsys, name)
	return err == nil
}
