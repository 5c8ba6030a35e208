package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/cl1024ex/Software-Engineering-1-Assignment/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	ImagesLocal = "local"
	ImagesR2    = "r2"

	devSecretKey = "development-secret-key"
)

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN prefers DATABASE_URL and falls back to the individual DB_* settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.User, d.Password, d.Name, d.Port)
}

type Config struct {
	Env          string
	LogLevel     string
	Port         string
	SecretKey    string
	SessionTTL   time.Duration
	Store        string
	Database     DatabaseConfig
	StaticDir    string
	ImageStorage string
	R2           storage.R2Config
	RedisURL     string
	MaxUploadMB  int64
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// MaxUploadBytes is the largest accepted image upload.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("STORE", StorePostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "attractions")
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("IMAGE_STORAGE", ImagesLocal)
	v.SetDefault("CLOUDFLARE_ACCOUNT_ID", "")
	v.SetDefault("CLOUDFLARE_ACCESS_KEY_ID", "")
	v.SetDefault("CLOUDFLARE_SECRET_ACCESS_KEY", "")
	v.SetDefault("CLOUDFLARE_BUCKET_NAME", "")
	v.SetDefault("CLOUDFLARE_PUBLIC_URL", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("MAX_UPLOAD_MB", 10)
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return FromViper(v)
}

// FromViper builds and validates a Config from already populated settings.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:        v.GetString("APP_ENV"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		Port:       v.GetString("PORT"),
		SecretKey:  v.GetString("SECRET_KEY"),
		SessionTTL: v.GetDuration("SESSION_TTL"),
		Store:      v.GetString("STORE"),
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		StaticDir:    v.GetString("STATIC_DIR"),
		ImageStorage: v.GetString("IMAGE_STORAGE"),
		R2: storage.R2Config{
			AccountID:       v.GetString("CLOUDFLARE_ACCOUNT_ID"),
			AccessKeyID:     v.GetString("CLOUDFLARE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("CLOUDFLARE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("CLOUDFLARE_BUCKET_NAME"),
			PublicURL:       v.GetString("CLOUDFLARE_PUBLIC_URL"),
			Region:          "auto",
		},
		RedisURL:    v.GetString("REDIS_URL"),
		MaxUploadMB: v.GetInt64("MAX_UPLOAD_MB"),
	}

	if cfg.SecretKey == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("SECRET_KEY must be set outside development")
		}
		cfg.SecretKey = devSecretKey
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL %q", v.GetString("SESSION_TTL"))
	}
	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}
	switch cfg.ImageStorage {
	case ImagesLocal:
	case ImagesR2:
		if cfg.R2.AccountID == "" || cfg.R2.BucketName == "" || cfg.R2.PublicURL == "" {
			return nil, errors.New("IMAGE_STORAGE=r2 needs CLOUDFLARE_ACCOUNT_ID, CLOUDFLARE_BUCKET_NAME and CLOUDFLARE_PUBLIC_URL")
		}
	default:
		return nil, fmt.Errorf("unknown IMAGE_STORAGE %q", cfg.ImageStorage)
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB %d", cfg.MaxUploadMB)
	}
	return cfg, nil
}
