package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth (optional; empty disables API auth)
	APIKey string `yaml:"api_key"`

	// Paths
	CacheDir string `yaml:"cache_dir"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Planning
	MaxBulletsPerSlide int  `yaml:"max_bullets_per_slide"`
	MaxBulletLength    int  `yaml:"max_bullet_length"`
	UseSummarization   bool `yaml:"use_summarization"`
	SummarizeThreshold int  `yaml:"summarize_threshold"`
	MinSentenceLength  int  `yaml:"min_sentence_length"`

	// Parallel allocation (1 = sequential)
	Workers int `yaml:"workers"`
}

// Load builds the configuration from an optional YAML file, then environment
// overrides, then defaults for anything unset or out of range. A missing file
// is not an error; an unreadable or malformed one is.
func Load(path string) (Config, error) {
	cfg := Config{UseSummarization: true}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Port = envOr("DECKPLAN_PORT", cfg.Port)
	cfg.APIKey = envOr("DECKPLAN_API_KEY", cfg.APIKey)
	cfg.CacheDir = envOr("DECKPLAN_CACHE_DIR", cfg.CacheDir)
	cfg.MaxUploadBytes = envInt64("DECKPLAN_MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.MaxBulletsPerSlide = envInt("DECKPLAN_MAX_BULLETS_PER_SLIDE", cfg.MaxBulletsPerSlide)
	cfg.MaxBulletLength = envInt("DECKPLAN_MAX_BULLET_LENGTH", cfg.MaxBulletLength)
	cfg.UseSummarization = envBool("DECKPLAN_USE_SUMMARIZATION", cfg.UseSummarization)
	cfg.SummarizeThreshold = envInt("DECKPLAN_SUMMARIZE_THRESHOLD", cfg.SummarizeThreshold)
	cfg.MinSentenceLength = envInt("DECKPLAN_MIN_SENTENCE_LENGTH", cfg.MinSentenceLength)
	cfg.Workers = envInt("DECKPLAN_WORKERS", cfg.Workers)

	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the built-in configuration with no file or env input.
func Default() Config {
	cfg := Config{UseSummarization: true}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8095"
	}
	if c.CacheDir == "" {
		c.CacheDir = "cache"
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 52428800 // 50MB
	}
	if c.MaxBulletsPerSlide <= 0 {
		c.MaxBulletsPerSlide = 6
	}
	if c.MaxBulletLength <= 0 {
		c.MaxBulletLength = 200
	}
	if c.SummarizeThreshold <= 0 {
		c.SummarizeThreshold = 300
	}
	if c.MinSentenceLength <= 0 {
		c.MinSentenceLength = 20
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
