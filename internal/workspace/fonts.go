package workspace

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FontFileName is the TTF the stylesheet embeds for Cyrillic coverage.
const FontFileName = "DejaVuSans.ttf"

const (
	fontURL    = "https://raw.githubusercontent.com/dejavu-fonts/dejavu-fonts/version_2_37/ttf/DejaVuSans.ttf"
	fontZipURL = "https://sourceforge.net/projects/dejavu/files/dejavu/2.37/dejavu-fonts-ttf-2.37.zip/download"
)

// FontFetcher downloads the embedded font when it is not already present.
// Both the direct TTF URL and the zip fallback are overridable for tests.
type FontFetcher struct {
	Client *http.Client
	URL    string
	ZipURL string
}

// NewFontFetcher returns a fetcher with the release URLs configured.
func NewFontFetcher(client *http.Client) *FontFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &FontFetcher{Client: client, URL: fontURL, ZipURL: fontZipURL}
}

// Ensure returns the path to the font inside dir, downloading it when
// missing: first the direct TTF, then the release zip as a fallback. A run
// can proceed without the font; callers log the error and continue with the
// fallback family chain.
func (f *FontFetcher) Ensure(ctx context.Context, dir string) (string, error) {
	target := filepath.Join(dir, FontFileName)
	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	directErr := f.fetchDirect(ctx, target)
	if directErr == nil {
		return target, nil
	}

	if zipErr := f.fetchFromZip(ctx, dir, target); zipErr != nil {
		return "", fmt.Errorf("workspace: font download failed: %w (zip fallback: %v)", directErr, zipErr)
	}
	return target, nil
}

func (f *FontFetcher) fetchDirect(ctx context.Context, target string) error {
	body, err := f.get(ctx, f.URL)
	if err != nil {
		return err
	}
	defer body.Close()

	return writeStream(target, body)
}

func (f *FontFetcher) fetchFromZip(ctx context.Context, dir, target string) error {
	body, err := f.get(ctx, f.ZipURL)
	if err != nil {
		return err
	}
	defer body.Close()

	zipPath := filepath.Join(dir, "dejavu.zip")
	if err := writeStream(zipPath, body); err != nil {
		return err
	}
	defer os.Remove(zipPath)

	archive, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archive.Close()

	for _, member := range archive.File {
		if !strings.HasSuffix(member.Name, FontFileName) {
			continue
		}
		src, err := member.Open()
		if err != nil {
			return fmt.Errorf("open archive member: %w", err)
		}
		defer src.Close()
		return writeStream(target, src)
	}
	return errors.New("font not found in archive")
}

func (f *FontFetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
	return resp.Body, nil
}

func writeStream(path string, src io.Reader) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(file, src)
	closeErr := file.Close()
	if copyErr != nil {
		os.Remove(path)
		return copyErr
	}
	if closeErr != nil {
		os.Remove(path)
		return closeErr
	}
	return nil
}
