package workspace_test

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-invoicegen/internal/workspace"
	"github.com/goliatone/go-invoicegen/pkg/testsupport"
)

const fontBytes = "not a real ttf, close enough for transport tests"

func TestFontFetcherReusesExistingFile(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFixture(t, dir, workspace.FontFileName, fontBytes)

	fetcher := workspace.NewFontFetcher(nil)
	fetcher.URL = "http://127.0.0.1:1/unreachable"
	fetcher.ZipURL = fetcher.URL

	path, err := fetcher.Ensure(testsupport.Context(), dir)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if filepath.Base(path) != workspace.FontFileName {
		t.Fatalf("path = %q, want %s", path, workspace.FontFileName)
	}
}

func TestFontFetcherDirectDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(fontBytes))
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := workspace.NewFontFetcher(server.Client())
	fetcher.URL = server.URL
	fetcher.ZipURL = "http://127.0.0.1:1/unreachable"

	path, err := fetcher.Ensure(testsupport.Context(), dir)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read font: %v", err)
	}
	if string(data) != fontBytes {
		t.Fatalf("font content mismatch: %q", data)
	}
}

func TestFontFetcherZipFallback(t *testing.T) {
	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	member, err := zw.Create("dejavu-fonts-ttf-2.37/ttf/" + workspace.FontFileName)
	if err != nil {
		t.Fatalf("create zip member: %v", err)
	}
	if _, err := member.Write([]byte(fontBytes)); err != nil {
		t.Fatalf("write zip member: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/direct" {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		_, _ = w.Write(archive.Bytes())
	}))
	defer server.Close()

	dir := t.TempDir()
	fetcher := workspace.NewFontFetcher(server.Client())
	fetcher.URL = server.URL + "/direct"
	fetcher.ZipURL = server.URL + "/zip"

	path, err := fetcher.Ensure(testsupport.Context(), dir)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read font: %v", err)
	}
	if string(data) != fontBytes {
		t.Fatalf("font content mismatch: %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "dejavu.zip")); !os.IsNotExist(err) {
		t.Fatal("temp zip was not cleaned up")
	}
}

func TestFontFetcherBothSourcesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := workspace.NewFontFetcher(server.Client())
	fetcher.URL = server.URL
	fetcher.ZipURL = server.URL

	if _, err := fetcher.Ensure(testsupport.Context(), t.TempDir()); err == nil {
		t.Fatal("expected an error when both sources fail")
	}
}
