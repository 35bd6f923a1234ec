// Package config loads the nametag configuration file.
//
// The file is TOML and every key is optional; missing keys keep the values
// from [Default]. A missing file is not an error. The NAMETAG_FONT_DIR
// environment variable overrides fonts.dir.
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	backend = "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[qr]
//	provider = "fallback"
//	timeout = "3s"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mwarrick/digital-business-card-sub004/pkg/audit"
	"github.com/mwarrick/digital-business-card-sub004/pkg/cache"
	"github.com/mwarrick/digital-business-card-sub004/pkg/card"
	errs "github.com/mwarrick/digital-business-card-sub004/pkg/errors"
	"github.com/mwarrick/digital-business-card-sub004/pkg/fonts"
	"github.com/mwarrick/digital-business-card-sub004/pkg/qr"
)

// AppName names the configuration and cache directories.
const AppName = "nametag"

// FileName is the default configuration file name.
const FileName = "nametag.toml"

// QR providers.
const (
	ProviderLocal    = "local"
	ProviderRemote   = "remote"
	ProviderFallback = "fallback"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Audit backends.
const (
	AuditLog   = "log"
	AuditMongo = "mongo"
	AuditNone  = "none"
)

// Config is the complete configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	QR     QRConfig     `toml:"qr"`
	Fonts  FontsConfig  `toml:"fonts"`
	Cache  CacheConfig  `toml:"cache"`
	Media  MediaConfig  `toml:"media"`
	Audit  AuditConfig  `toml:"audit"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// StoreConfig selects the card store.
type StoreConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`

	// Seed adds the sample card to a memory store.
	Seed bool `toml:"seed"`
}

// QRConfig configures QR code generation.
type QRConfig struct {
	// Host is the public host encoded in QR target URLs.
	Host     string        `toml:"host"`
	Provider string        `toml:"provider"`
	Endpoint string        `toml:"endpoint"`
	Timeout  time.Duration `toml:"timeout"`
}

// FontsConfig configures TrueType lookup for the raster backend.
type FontsConfig struct {
	Dir    string `toml:"dir"`
	System bool   `toml:"system"`
}

// CacheConfig configures the asset cache.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// MediaConfig locates signature images.
type MediaConfig struct {
	Dir string `toml:"dir"`
}

// AuditConfig selects where produced artifacts are recorded.
type AuditConfig struct {
	Backend         string `toml:"backend"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Default returns the built-in configuration: a seeded memory store, the
// local QR encoder, a file cache and log auditing.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Store: StoreConfig{
			Backend:         string(card.BackendMemory),
			RedisAddr:       "localhost:6379",
			RedisPrefix:     card.DefaultRedisPrefix,
			MongoDatabase:   "sharemycard",
			MongoCollection: "business_cards",
			Seed:            true,
		},
		QR: QRConfig{
			Host:     qr.DefaultHost,
			Provider: ProviderLocal,
			Endpoint: qr.DefaultEndpoint,
			Timeout:  qr.DefaultTimeout,
		},
		Fonts: FontsConfig{System: true},
		Cache: CacheConfig{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
			Prefix:    "nametag:cache:",
		},
		Audit: AuditConfig{
			Backend:         AuditLog,
			MongoDatabase:   "sharemycard",
			MongoCollection: audit.DefaultCollection,
		},
	}
}

// Path returns the default configuration file path,
// $XDG_CONFIG_HOME/nametag/nametag.toml or ~/.config/nametag/nametag.toml.
func Path() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, FileName), nil
}

// CacheDir returns the default cache directory,
// $XDG_CACHE_HOME/nametag or ~/.cache/nametag.
func CacheDir() (string, error) {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads path over the defaults. An empty path uses [Path]. A missing
// file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := Path()
		if err != nil {
			cfg.ApplyEnv()
			return cfg, cfg.Validate()
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	cfg.ApplyEnv()
	return cfg, cfg.Validate()
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if dir := os.Getenv(fonts.EnvFontDir); dir != "" {
		c.Fonts.Dir = dir
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch card.Backend(c.Store.Backend) {
	case card.BackendMemory, card.BackendRedis, card.BackendMongo:
	case card.BackendFile:
		if c.Store.Dir == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "store.dir is required for the file backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown store.backend %q (valid: memory, file, redis, mongo)", c.Store.Backend)
	}
	switch c.QR.Provider {
	case ProviderLocal, ProviderRemote, ProviderFallback:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown qr.provider %q (valid: local, remote, fallback)", c.QR.Provider)
	}
	if c.QR.Timeout <= 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "qr.timeout must be positive")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache.backend %q (valid: file, redis, none)", c.Cache.Backend)
	}
	switch c.Audit.Backend {
	case AuditLog, AuditMongo, AuditNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown audit.backend %q (valid: log, mongo, none)", c.Audit.Backend)
	}
	return nil
}

// StoreOptions converts the store section for card.Open.
func (c *Config) StoreOptions() card.OpenOptions {
	s := c.Store
	return card.OpenOptions{
		Backend: card.Backend(s.Backend),
		Dir:     s.Dir,
		Redis: cache.RedisOptions{
			Addr:     s.RedisAddr,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		},
		Prefix: s.RedisPrefix,
		Mongo: card.MongoOptions{
			URI:        s.MongoURI,
			Database:   s.MongoDatabase,
			Collection: s.MongoCollection,
		},
		Seed: s.Seed,
	}
}

// CacheRedisOptions returns the cache Redis connection settings.
func (c *Config) CacheRedisOptions() cache.RedisOptions {
	return cache.RedisOptions{
		Addr:     c.Cache.RedisAddr,
		Password: c.Cache.RedisPassword,
		DB:       c.Cache.RedisDB,
	}
}
