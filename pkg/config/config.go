// Package config loads the settings shared by the collection commands from the
// environment, optionally layered over a YAML or .env file.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"

	"github.com/hashgraph-online/collection-kit-go/pkg/shared"
)

const (
	StoreInscriber = "inscriber"
	StoreS3        = "s3"

	CollectionImageName = "collection.png"
	AssetImagesDirName  = "nfts"
	ManifestName        = "collection.yaml"
)

type Config struct {
	Network     string `yaml:"network" env:"COLLECTION_NETWORK" env-default:"testnet"`
	LedgerNodes string `yaml:"ledger_nodes" env:"COLLECTION_LEDGER_NODES"`
	MirrorURL   string `yaml:"mirror_url" env:"COLLECTION_MIRROR_URL"`
	MirrorKey   string `yaml:"mirror_api_key" env:"COLLECTION_MIRROR_API_KEY"`

	Store StoreConfig `yaml:"store"`
	S3    S3Config    `yaml:"s3"`

	WalletPath string `yaml:"wallet" env:"COLLECTION_WALLET" env-default:"./wallet.json"`
	AccountID  string `yaml:"account_id" env:"COLLECTION_ACCOUNT_ID"`
	MinBalance string `yaml:"min_balance" env:"COLLECTION_MIN_BALANCE" env-default:"0.2"`
	AssetsDir  string `yaml:"assets_dir" env:"COLLECTION_ASSETS_DIR" env-default:"./assets"`
	Journal    string `yaml:"journal" env:"COLLECTION_JOURNAL"`
	LogLevel   string `yaml:"log_level" env:"COLLECTION_LOG_LEVEL" env-default:"info"`
}

type StoreConfig struct {
	Kind           string `yaml:"kind" env:"COLLECTION_STORE" env-default:"inscriber"`
	URL            string `yaml:"url" env:"COLLECTION_STORE_URL"`
	AuthURL        string `yaml:"auth_url" env:"COLLECTION_STORE_AUTH_URL"`
	APIKey         string `yaml:"api_key" env:"COLLECTION_STORE_API_KEY"`
	ConnectionMode string `yaml:"connection_mode" env:"COLLECTION_STORE_CONNECTION" env-default:"websocket"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket" env:"COLLECTION_S3_BUCKET"`
	Region          string `yaml:"region" env:"COLLECTION_S3_REGION" env-default:"us-east-1"`
	Endpoint        string `yaml:"endpoint" env:"COLLECTION_S3_ENDPOINT"`
	PublicURL       string `yaml:"public_url" env:"COLLECTION_S3_PUBLIC_URL"`
	PathStyle       bool   `yaml:"path_style" env:"COLLECTION_S3_PATH_STYLE" env-default:"false"`
	AccessKeyID     string `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
}

// Load reads the configuration from path, when given, and the environment.
// Environment variables take precedence over file values.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read configuration: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate normalizes the network and store kind and rejects unusable values.
func (c *Config) Validate() error {
	network, err := shared.NormalizeNetwork(c.Network)
	if err != nil {
		return err
	}
	c.Network = network

	if strings.TrimSpace(c.LedgerNodes) != "" {
		if _, err := shared.ParseNodeList(c.LedgerNodes); err != nil {
			return fmt.Errorf("invalid ledger node list: %w", err)
		}
	}
	if err := validateURL("mirror URL", c.MirrorURL); err != nil {
		return err
	}
	if err := validateURL("store URL", c.Store.URL); err != nil {
		return err
	}
	if err := validateURL("store auth URL", c.Store.AuthURL); err != nil {
		return err
	}
	if err := validateURL("s3 endpoint", c.S3.Endpoint); err != nil {
		return err
	}

	if _, err := c.MinimumBalance(); err != nil {
		return err
	}

	c.Store.Kind = strings.ToLower(strings.TrimSpace(c.Store.Kind))
	switch c.Store.Kind {
	case "", StoreInscriber:
		c.Store.Kind = StoreInscriber
	case StoreS3:
		if strings.TrimSpace(c.S3.Bucket) == "" {
			return fmt.Errorf("s3 store requires COLLECTION_S3_BUCKET")
		}
	default:
		return fmt.Errorf("unknown asset store %q", c.Store.Kind)
	}

	c.Store.ConnectionMode = strings.ToLower(strings.TrimSpace(c.Store.ConnectionMode))
	switch c.Store.ConnectionMode {
	case "", "websocket", "http":
	default:
		return fmt.Errorf("unknown store connection mode %q", c.Store.ConnectionMode)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// MinimumBalance is the HBAR balance required before creating a collection.
func (c Config) MinimumBalance() (decimal.Decimal, error) {
	value := strings.TrimSpace(c.MinBalance)
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid minimum balance %q: %w", value, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("minimum balance cannot be negative")
	}
	return amount, nil
}

func (c Config) CollectionImagePath() string {
	return filepath.Join(c.AssetsDir, CollectionImageName)
}

func (c Config) AssetImagesDir() string {
	return filepath.Join(c.AssetsDir, AssetImagesDirName)
}

func (c Config) ManifestPath() string {
	return filepath.Join(c.AssetsDir, ManifestName)
}

// Level returns the configured slog level.
func (c Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}

func validateURL(label string, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", label, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid %s %q: scheme and host are required", label, trimmed)
	}
	return nil
}
