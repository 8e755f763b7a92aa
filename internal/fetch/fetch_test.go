package fetch_test

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/caprica-project/go-owlgen/internal/fetch"
	"github.com/caprica-project/go-owlgen/pkg/schema"
)

func zipPayload(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create(name)
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFetchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	if err := os.WriteFile(path, []byte("<doc/>"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	f := &fetch.Fetcher{}
	doc, err := f.Fetch(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := doc.Raw(); string(got) != "<doc/>" {
		t.Fatalf("payload = %q", got)
	}
	if doc.Location() != path {
		t.Fatalf("Location = %q, want %q", doc.Location(), path)
	}
	if doc.Source().Kind() != schema.SourceKindFile {
		t.Fatalf("Kind = %q", doc.Source().Kind())
	}
}

func TestFetchFS(t *testing.T) {
	f := &fetch.Fetcher{FS: fstest.MapFS{
		"doc.xml": &fstest.MapFile{Data: []byte("<doc/>")},
	}}
	doc, err := f.Fetch(context.Background(), schema.SourceFromFS("doc.xml"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := doc.Raw(); string(got) != "<doc/>" {
		t.Fatalf("payload = %q", got)
	}
}

func TestFetchFSWithoutFilesystem(t *testing.T) {
	f := &fetch.Fetcher{}
	if _, err := f.Fetch(context.Background(), schema.SourceFromFS("doc.xml")); err == nil {
		t.Fatal("expected error for fs source without a filesystem")
	}
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<doc/>"))
	}))
	defer srv.Close()

	f := &fetch.Fetcher{Client: srv.Client()}
	doc, err := f.Fetch(context.Background(), schema.SourceFromURL(srv.URL+"/doc.xml"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := doc.Raw(); string(got) != "<doc/>" {
		t.Fatalf("payload = %q", got)
	}
}

func TestFetchURLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := &fetch.Fetcher{Client: srv.Client()}
	if _, err := f.Fetch(context.Background(), schema.SourceFromURL(srv.URL)); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestFetchUnwrapsZipBySuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml.zip")
	if err := os.WriteFile(path, zipPayload(t, "doc.xml", "<doc/>"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	f := &fetch.Fetcher{}
	doc, err := f.Fetch(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := doc.Raw(); string(got) != "<doc/>" {
		t.Fatalf("payload = %q", got)
	}
}

func TestFetchUnwrapsZipByMagic(t *testing.T) {
	// the URL carries no .zip suffix; only the payload magic identifies it
	payload := zipPayload(t, "inner.xml", "<doc/>")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	f := &fetch.Fetcher{Client: srv.Client()}
	doc, err := f.Fetch(context.Background(), schema.SourceFromURL(srv.URL+"/latest"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := doc.Raw(); string(got) != "<doc/>" {
		t.Fatalf("payload = %q", got)
	}
}

func TestFetchNilSource(t *testing.T) {
	f := &fetch.Fetcher{}
	if _, err := f.Fetch(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil source")
	}
}
