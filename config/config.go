package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/bnema/batchenc/internal/adapter/converter/ffmpeg"
	"github.com/bnema/batchenc/internal/domain"
)

var ErrAuthSecretRequired = errors.New("AUTH_SECRET is required")

type Config struct {
	Port          int
	DataDir       string
	AuthSecret    string
	FFmpegPath    string
	FFprobePath   string
	Concurrency   int
	Hardware      domain.Hardware
	Format        domain.Format
	Debug         bool
	SecureCookies bool
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "7890"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	concurrency, err := strconv.Atoi(getEnv("CONCURRENCY", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONCURRENCY: %w", err)
	}
	if concurrency < 1 || concurrency > domain.MaxConcurrency {
		return nil, fmt.Errorf("invalid CONCURRENCY: %d not in 1..%d", concurrency, domain.MaxConcurrency)
	}

	hardware, err := domain.ParseHardware(getEnv("HARDWARE", "cpu"))
	if err != nil {
		return nil, fmt.Errorf("invalid HARDWARE: %w", err)
	}

	format, err := domain.ParseFormat(getEnv("FORMAT", "mp4"))
	if err != nil {
		return nil, fmt.Errorf("invalid FORMAT: %w", err)
	}

	debug, err := getBool("DEBUG")
	if err != nil {
		return nil, err
	}

	secureCookies, err := getBool("SECURE_COOKIES")
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:          port,
		DataDir:       getEnv("DATA_DIR", "./data"),
		AuthSecret:    os.Getenv("AUTH_SECRET"),
		FFmpegPath:    ffmpeg.LocateTool("ffmpeg", "FFMPEG_PATH"),
		FFprobePath:   ffmpeg.LocateTool("ffprobe", "FFPROBE_PATH"),
		Concurrency:   concurrency,
		Hardware:      hardware,
		Format:        format,
		Debug:         debug,
		SecureCookies: secureCookies,
	}, nil
}

// RequireAuthSecret fails when the HTTP surface would start unprotected.
func (c *Config) RequireAuthSecret() error {
	if c.AuthSecret == "" {
		return ErrAuthSecretRequired
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
