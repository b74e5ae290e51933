package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/report-data/internal/dataset"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Datasets DatasetsConfig `yaml:"datasets" mapstructure:"datasets"`
	Hub      HubConfig      `yaml:"hub" mapstructure:"hub"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig configures the local data tree and demo sampling.
type DataConfig struct {
	Root     string  `yaml:"root" mapstructure:"root"`
	DemoSize float64 `yaml:"demo_size" mapstructure:"demo_size"`
	Seed     *uint64 `yaml:"seed" mapstructure:"seed"` // nil = non-deterministic sampling
	Encoding string  `yaml:"encoding" mapstructure:"encoding"`
}

// DatasetsConfig holds the remote identifiers of the two datasets.
type DatasetsConfig struct {
	CancerSource     string `yaml:"cancer_source" mapstructure:"cancer_source"`
	BankruptcySource string `yaml:"bankruptcy_source" mapstructure:"bankruptcy_source"`
}

// HubConfig configures the Kaggle dataset hub client.
type HubConfig struct {
	BaseURL         string  `yaml:"base_url" mapstructure:"base_url"`
	CacheDir        string  `yaml:"cache_dir" mapstructure:"cache_dir"`
	CredentialsPath string  `yaml:"credentials_path" mapstructure:"credentials_path"`
	Username        string  `yaml:"username" mapstructure:"username"`
	Key             string  `yaml:"key" mapstructure:"key"`
	UserAgent       string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs     int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries      int     `yaml:"max_retries" mapstructure:"max_retries"`
	RateLimit       float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// Timeout returns the per-request timeout as a duration.
func (h HubConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSecs) * time.Second
}

// StoreConfig configures the setup history database.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// StorePath returns the history database path, defaulting to logs/setup.db under the data root.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(dataset.LogsRoot(c.Data.Root), "setup.db")
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("REPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.root", ".")
	v.SetDefault("data.demo_size", 0.1)
	v.SetDefault("data.encoding", "utf-8")
	v.SetDefault("datasets.cancer_source", dataset.DefaultCancerSource)
	v.SetDefault("datasets.bankruptcy_source", dataset.DefaultBankruptcySource)
	v.SetDefault("hub.base_url", "https://www.kaggle.com/api/v1")
	v.SetDefault("hub.user_agent", "report-data/1.0")
	v.SetDefault("hub.timeout_secs", 300)
	v.SetDefault("hub.max_retries", 3)
	v.SetDefault("hub.rate_limit", 5.0)
	v.SetDefault("store.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Bind keys without defaults so env-only values still unmarshal.
	for _, key := range []string{
		"data.seed",
		"hub.cache_dir",
		"hub.credentials_path",
		"hub.username",
		"hub.key",
		"store.path",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", key)
		}
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
