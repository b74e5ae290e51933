package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/report-data/internal/config"
	"github.com/sells-group/report-data/internal/fetcher"
	"github.com/sells-group/report-data/internal/report"
	"github.com/sells-group/report-data/internal/store"
	"github.com/sells-group/report-data/pkg/kaggle"
)

// initHub builds the Kaggle client. Explicit config credentials win over
// KAGGLE_* env vars and kaggle.json.
func initHub(c *config.Config) (kaggle.Client, error) {
	creds := kaggle.Credentials{Username: c.Hub.Username, Key: c.Hub.Key}
	if creds.Empty() {
		loaded, err := kaggle.LoadCredentials(c.Hub.CredentialsPath)
		if err != nil {
			return nil, err
		}
		creds = loaded
	}
	if creds.Empty() {
		zap.L().Warn("no kaggle credentials found, only public datasets can be downloaded",
			zap.String("credentials_path", kaggle.DefaultCredentialsPath()),
		)
	}

	opts := []kaggle.Option{
		kaggle.WithHTTPOptions(fetcher.HTTPOptions{
			UserAgent:  c.Hub.UserAgent,
			Timeout:    c.Hub.Timeout(),
			MaxRetries: c.Hub.MaxRetries,
		}),
		kaggle.WithRateLimit(rate.Limit(c.Hub.RateLimit)),
	}
	if c.Hub.BaseURL != "" {
		opts = append(opts, kaggle.WithBaseURL(c.Hub.BaseURL))
	}
	if c.Hub.CacheDir != "" {
		opts = append(opts, kaggle.WithCacheDir(c.Hub.CacheDir))
	}
	return kaggle.NewClient(creds, opts...), nil
}

// initStore opens and migrates the setup history database.
func initStore(ctx context.Context, c *config.Config) (*store.SQLiteStore, error) {
	path := c.StorePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, eris.Wrapf(err, "create store dir for %s", path)
	}
	st, err := store.NewSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// openStoreIfExists opens the history database read-side only when it already exists.
func openStoreIfExists(ctx context.Context, c *config.Config) (*store.SQLiteStore, error) {
	if !c.Store.Enabled {
		return nil, nil
	}
	if _, err := os.Stat(c.StorePath()); err != nil {
		return nil, nil //nolint:nilerr
	}
	return initStore(ctx, c)
}

func reportOptions(c *config.Config) report.Options {
	return report.Options{
		Root:             c.Data.Root,
		DemoSize:         c.Data.DemoSize,
		CancerSource:     c.Datasets.CancerSource,
		BankruptcySource: c.Datasets.BankruptcySource,
		Seed:             c.Data.Seed,
		Encoding:         c.Data.Encoding,
	}
}
