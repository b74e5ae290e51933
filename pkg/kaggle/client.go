// Package kaggle provides a client for downloading datasets from the Kaggle hub
// into a local versioned cache.
package kaggle

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/report-data/internal/fetcher"
)

// DefaultBaseURL is the public hub API root.
const DefaultBaseURL = "https://www.kaggle.com/api/v1"

// completeSuffix marks a fully extracted version directory.
const completeSuffix = ".complete"

// Client defines the dataset hub operations.
type Client interface {
	// DatasetMetadata fetches the hub's description of a dataset.
	DatasetMetadata(ctx context.Context, handle string) (*Dataset, error)
	// DatasetDownload makes the dataset available in the local cache and
	// returns the directory holding its files.
	DatasetDownload(ctx context.Context, handle string) (string, error)
}

// Dataset is the subset of the hub's dataset view we use.
type Dataset struct {
	Ref                  string `json:"ref"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	CurrentVersionNumber int    `json:"currentVersionNumber"`
	TotalBytes           int64  `json:"totalBytes"`
	LastUpdated          string `json:"lastUpdated"`
}

// Option configures the hub client.
type Option func(*httpClient)

// WithBaseURL sets a custom API base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithCacheDir sets the root of the local dataset cache.
func WithCacheDir(dir string) Option {
	return func(c *httpClient) {
		c.cacheDir = dir
	}
}

// WithHTTPOptions sets transport options. Credentials passed to NewClient
// override any basic auth fields set here.
func WithHTTPOptions(opts fetcher.HTTPOptions) Option {
	return func(c *httpClient) {
		c.httpOpts = opts
	}
}

// WithRateLimit caps requests per second against the API host.
func WithRateLimit(r rate.Limit) Option {
	return func(c *httpClient) {
		c.rateLimit = r
	}
}

// WithFetcher replaces the HTTP fetcher entirely.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *httpClient) {
		c.fetcher = f
	}
}

type httpClient struct {
	creds     Credentials
	baseURL   string
	cacheDir  string
	httpOpts  fetcher.HTTPOptions
	rateLimit rate.Limit
	fetcher   fetcher.Fetcher
	log       *zap.Logger
}

// DefaultCacheDir returns $KAGGLEHUB_CACHE, or ~/.cache/kagglehub.
func DefaultCacheDir() string {
	if dir := os.Getenv("KAGGLEHUB_CACHE"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cache", "kagglehub")
	}
	return filepath.Join(home, ".cache", "kagglehub")
}

// NewClient creates a hub client authenticating with creds.
func NewClient(creds Credentials, opts ...Option) Client {
	c := &httpClient{
		creds:   creds,
		baseURL: DefaultBaseURL,
		log:     zap.L().With(zap.String("component", "kaggle")),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheDir == "" {
		c.cacheDir = DefaultCacheDir()
	}
	if c.fetcher == nil {
		ho := c.httpOpts
		ho.Username = creds.Username
		ho.Password = creds.Key
		if c.rateLimit > 0 {
			if u, err := url.Parse(c.baseURL); err == nil && u.Host != "" {
				rates := make(map[string]rate.Limit, len(ho.AdaptiveRates)+1)
				for k, v := range ho.AdaptiveRates {
					rates[k] = v
				}
				rates[u.Host] = c.rateLimit
				ho.AdaptiveRates = rates
			}
		}
		c.fetcher = fetcher.NewHTTPFetcher(ho)
	}
	return c
}

func (c *httpClient) DatasetMetadata(ctx context.Context, handle string) (*Dataset, error) {
	h, err := ParseHandle(handle)
	if err != nil {
		return nil, err
	}
	return c.metadata(ctx, h)
}

func (c *httpClient) metadata(ctx context.Context, h Handle) (*Dataset, error) {
	reqURL := fmt.Sprintf("%s/datasets/view/%s/%s", c.baseURL, url.PathEscape(h.Owner), url.PathEscape(h.Slug))
	ds, err := fetcher.FetchJSON[Dataset](ctx, c.fetcher, reqURL)
	if err != nil {
		return nil, eris.Wrapf(err, "kaggle: metadata for %s", h)
	}
	return ds, nil
}

// versionDir is the cache directory for a resolved handle.
func (c *httpClient) versionDir(h Handle) string {
	return filepath.Join(c.cacheDir, "datasets", h.Owner, h.Slug, "versions", fmt.Sprintf("%d", h.Version))
}

func (c *httpClient) DatasetDownload(ctx context.Context, handle string) (string, error) {
	h, err := ParseHandle(handle)
	if err != nil {
		return "", err
	}

	if h.Version == 0 {
		ds, err := c.metadata(ctx, h)
		if err != nil {
			return "", err
		}
		if ds.CurrentVersionNumber <= 0 {
			return "", eris.Errorf("kaggle: no published version for %s", h)
		}
		h.Version = ds.CurrentVersionNumber
	}

	dir := c.versionDir(h)
	if cached(dir) {
		c.log.Debug("dataset cache hit", zap.String("handle", h.String()), zap.String("path", dir))
		return dir, nil
	}

	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", eris.Wrapf(err, "kaggle: create cache dir %s", parent)
	}

	archive := filepath.Join(parent, fmt.Sprintf(".%d.download", h.Version))
	defer os.Remove(archive) //nolint:errcheck

	reqURL := fmt.Sprintf("%s/datasets/download/%s/%s?datasetVersionNumber=%d",
		c.baseURL, url.PathEscape(h.Owner), url.PathEscape(h.Slug), h.Version)

	start := time.Now()
	n, err := c.fetcher.DownloadToFile(ctx, reqURL, archive)
	if err != nil {
		return "", eris.Wrapf(err, "kaggle: download %s", h)
	}
	c.log.Info("dataset downloaded",
		zap.String("handle", h.String()),
		zap.Int64("bytes", n),
		zap.Duration("elapsed", time.Since(start)),
	)

	staging, err := os.MkdirTemp(parent, fmt.Sprintf(".%d.staging-*", h.Version))
	if err != nil {
		return "", eris.Wrap(err, "kaggle: create staging dir")
	}
	defer os.RemoveAll(staging) //nolint:errcheck

	if err := c.unpack(archive, staging, h); err != nil {
		return "", err
	}
	if err := os.Chmod(staging, 0o755); err != nil {
		return "", eris.Wrap(err, "kaggle: chmod staging dir")
	}

	// A directory without a marker is a stale partial from an earlier run.
	if err := os.RemoveAll(dir); err != nil {
		return "", eris.Wrapf(err, "kaggle: clear stale %s", dir)
	}
	if err := os.Rename(staging, dir); err != nil {
		return "", eris.Wrapf(err, "kaggle: publish %s", dir)
	}

	stamp := []byte(time.Now().UTC().Format(time.RFC3339) + "\n")
	if err := os.WriteFile(dir+completeSuffix, stamp, 0o644); err != nil {
		return "", eris.Wrap(err, "kaggle: write completion marker")
	}
	return dir, nil
}

// unpack extracts a ZIP payload into dest, or stores any other payload as {slug}.csv.
func (c *httpClient) unpack(archive, dest string, h Handle) error {
	isZIP, err := fetcher.IsZIP(archive)
	if err != nil {
		return eris.Wrap(err, "kaggle: inspect payload")
	}
	if !isZIP {
		target := filepath.Join(dest, h.Slug+".csv")
		if err := os.Rename(archive, target); err != nil {
			return eris.Wrap(err, "kaggle: store single-file payload")
		}
		return nil
	}

	files, err := fetcher.ExtractZIP(archive, dest)
	if err != nil {
		return eris.Wrapf(err, "kaggle: extract %s", h)
	}
	c.log.Debug("dataset extracted", zap.String("handle", h.String()), zap.Int("files", len(files)))
	return nil
}

func cached(dir string) bool {
	if _, err := os.Stat(dir + completeSuffix); err != nil {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
