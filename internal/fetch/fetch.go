// Package fetch downloads, verifies and unpacks recipe sources.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/goplus/recipes/internal/lockedfile"
	"github.com/goplus/recipes/pkgs/mod/versions"
	"github.com/qiniu/x/log"
	"github.com/schollz/progressbar/v3"
)

// Fetcher downloads source archives into a cache directory and extracts
// them.
type Fetcher struct {
	// Client is the HTTP client. Nil uses a client with a long timeout.
	Client *http.Client

	// CacheDir keeps downloaded archives, named by URL.
	CacheDir string

	// Progress receives a progress bar per download. Nil disables it.
	Progress io.Writer
}

// New returns a Fetcher caching archives in cacheDir.
func New(cacheDir string) *Fetcher {
	return &Fetcher{CacheDir: cacheDir}
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSHandshakeTimeout = 30 * time.Second
	return &http.Client{
		Transport: transport,
		Timeout:   300 * time.Second,
	}
}

// Fetch downloads src trying its mirrors in order, verifies it and unpacks
// it into dir. A cached archive that still verifies is reused.
func (f *Fetcher) Fetch(ctx context.Context, src versions.Source, dir string) error {
	if len(src.URL) == 0 {
		return errors.New("fetch: source has no url")
	}
	var errs []error
	for _, u := range src.URL {
		archive, err := f.download(ctx, u, src)
		if err != nil {
			log.Warn("fetch", u, "failed:", err)
			errs = append(errs, err)
			continue
		}
		return Extract(archive, dir)
	}
	return fmt.Errorf("fetch: all mirrors failed: %w", errors.Join(errs...))
}

// CachePath returns where the archive of rawURL is cached.
func (f *Fetcher) CachePath(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		name = u.Path
	}
	return filepath.Join(f.CacheDir, hashString(rawURL)+"-"+path.Base(name))
}

func (f *Fetcher) download(ctx context.Context, rawURL string, src versions.Source) (string, error) {
	dst := f.CachePath(rawURL)
	unlock, err := lockedfile.MutexAt(dst + ".lock").Lock()
	if err != nil {
		return "", err
	}
	defer unlock()

	if _, err := os.Stat(dst); err == nil {
		if err := Verify(dst, src); err == nil {
			log.Debug("fetch: cached", dst)
			return dst, nil
		}
		log.Warn("fetch: cached", dst, "does not verify, downloading again")
		os.Remove(dst)
	}

	if err := f.Download(ctx, rawURL, dst); err != nil {
		return "", err
	}
	if err := Verify(dst, src); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}

// Download writes the body of rawURL to dst through a temporary file.
func (f *Fetcher) Download(ctx context.Context, rawURL, dst string) error {
	log.Info("download", rawURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %s", rawURL, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".*.part")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	var w io.Writer = tmp
	if f.Progress != nil {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetWriter(f.Progress),
			progressbar.OptionSetDescription(path.Base(req.URL.Path)),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
		w = io.MultiWriter(tmp, bar)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("download %s: %w", rawURL, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
