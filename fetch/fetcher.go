// Copyright 2026 Constellar Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/constellar/paperflow/core"
)

const defaultTimeout = 60 * time.Second

// Fetcher retrieves the raw PDF bytes for a paper.
type Fetcher interface {
	// Fetch returns the PDF bytes for the given identifier and source URL.
	Fetch(ctx context.Context, arxivID, paperURL string) ([]byte, error)
}

// HTTPFetcher downloads PDFs over HTTP and caches them on disk by identifier.
type HTTPFetcher struct {
	client   *http.Client
	cacheDir string
	baseURL  string
	logger   *slog.Logger
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *HTTPFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithBaseURL overrides the PDF host, e.g. to point at a mirror.
// The PDF is fetched from baseURL/<arxiv id>.pdf.
func WithBaseURL(baseURL string) Option {
	return func(f *HTTPFetcher) {
		f.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewHTTPFetcher creates a fetcher caching downloads under cacheDir.
// An empty cacheDir disables caching.
func NewHTTPFetcher(cacheDir string, opts ...Option) (Fetcher, error) {
	if cacheDir != "" {
		if err := os.MkdirAll(cacheDir, 0755); err != nil {
			return nil, err
		}
	}

	f := &HTTPFetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		cacheDir: cacheDir,
		logger:   slog.Default().With("component", "fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch downloads the canonical PDF for the paper, using the cache when the
// identifier was downloaded before.
func (f *HTTPFetcher) Fetch(ctx context.Context, arxivID, paperURL string) ([]byte, error) {
	var pdfURL string
	if f.baseURL != "" {
		pdfURL = f.baseURL + "/" + arxivID + ".pdf"
	} else {
		var ok bool
		pdfURL, ok = core.CanonicalPDFURL(paperURL)
		if !ok {
			// The raw identifier also canonicalizes; other URLs don't.
			pdfURL, ok = core.CanonicalPDFURL(arxivID)
			if !ok {
				return nil, fmt.Errorf("%w from %q", ErrNoPDFURL, paperURL)
			}
		}
	}

	cachePath := f.cachePath(arxivID)
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil {
			f.logger.Info("using cached pdf", "arxiv_id", arxivID, "path", cachePath, "bytes", len(data))
			return data, nil
		}
	}

	f.logger.Info("downloading pdf", "arxiv_id", arxivID, "url", pdfURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", pdfURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s: %w: %s", pdfURL, ErrBadStatus, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", pdfURL, err)
	}

	if cachePath != "" {
		if err := os.WriteFile(cachePath, data, 0644); err != nil {
			f.logger.Warn("failed to cache pdf", "arxiv_id", arxivID, "err", err)
		}
	}

	f.logger.Info("downloaded pdf", "arxiv_id", arxivID, "bytes", len(data))
	return data, nil
}

func (f *HTTPFetcher) cachePath(arxivID string) string {
	if f.cacheDir == "" {
		return ""
	}
	// Old-style identifiers contain a slash.
	name := strings.ReplaceAll(arxivID, "/", "_") + ".pdf"
	return filepath.Join(f.cacheDir, name)
}
