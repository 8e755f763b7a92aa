// Package fetch retrieves schema and data documents from files, fs.FS
// entries, or URLs, transparently unwrapping zip archives. It sits outside
// the pure parsing core: documents reach the engine fully materialized.
package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caprica-project/go-owlgen/pkg/schema"
)

var zipMagic = []byte("PK\x03\x04")

// Fetcher resolves Sources into document payloads.
type Fetcher struct {
	// Client performs URL retrievals. Defaults to http.DefaultClient.
	Client *http.Client
	// Timeout bounds a single URL retrieval when positive.
	Timeout time.Duration
	// FS backs fs.FS sources.
	FS fs.FS
}

// Fetch retrieves the document identified by src, decompressing zip payloads
// down to their first entry.
func (f *Fetcher) Fetch(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("fetch: source is required")
	}
	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = f.fetchFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = f.fetchFS(src.Location())
	case schema.SourceKindURL:
		data, err = f.fetchURL(ctx, src.Location())
	default:
		return schema.Document{}, fmt.Errorf("fetch: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, err
	}
	data, err = unwrapZip(src.Location(), data)
	if err != nil {
		return schema.Document{}, err
	}
	return schema.NewDocument(src, data)
}

func (f *Fetcher) fetchFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("fetch: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (f *Fetcher) fetchFS(name string) ([]byte, error) {
	if f.FS == nil {
		return nil, errors.New("fetch: fs source without a configured fs.FS")
	}
	return fs.ReadFile(f.FS, name)
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	reqCtx := ctx
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("fetch: unexpected status " + resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// unwrapZip returns the first entry of a zip payload, identified either by
// the source suffix or by the archive magic.
func unwrapZip(location string, data []byte) ([]byte, error) {
	if !strings.HasSuffix(location, ".zip") && !bytes.HasPrefix(data, zipMagic) {
		return data, nil
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("fetch: open archive %s: %w", location, err)
	}
	if len(r.File) == 0 {
		return nil, fmt.Errorf("fetch: archive %s is empty", location)
	}
	entry, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = entry.Close()
	}()
	return io.ReadAll(entry)
}
