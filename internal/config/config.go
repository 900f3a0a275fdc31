package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds all server settings in correct types
type Config struct {
	Port              string
	DataDir           string
	MaxConcurrentJobs int
	CleanupInterval   time.Duration
	MaxUploadMB       int64
	APISecret         string
	AllowedOrigins    string
	YtDlpPath         string
	FFmpegPath        string
	LogLevel          string
}

// Load: The only way to get config in the app
func Load() *Config {
	cfg := &Config{
		Port:              getEnv("PORT", ":8080"),
		DataDir:           getEnv("DATA_DIR", "data"),
		MaxConcurrentJobs: getEnvAsInt("MAX_CONCURRENT_JOBS", 3),
		CleanupInterval:   time.Duration(getEnvAsInt("CLEANUP_INTERVAL_MINUTES", 15)) * time.Minute,
		MaxUploadMB:       int64(getEnvAsInt("MAX_UPLOAD_MB", 50)),
		APISecret:         getEnv("API_SECRET", ""),
		AllowedOrigins:    getEnv("ALLOWED_ORIGINS", ""),
		YtDlpPath:         getEnv("YTDLP_PATH", "yt-dlp"),
		FFmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	validate(cfg)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	str := getEnv(key, "")
	if val, err := strconv.Atoi(str); err == nil {
		return val
	}
	return fallback
}

// validate repairs values the server cannot run with instead of crashing.
func validate(cfg *Config) {
	if cfg.MaxConcurrentJobs < 1 {
		log.Warn().Int("value", cfg.MaxConcurrentJobs).
			Msg("MAX_CONCURRENT_JOBS must be at least 1, resetting to 3")
		cfg.MaxConcurrentJobs = 3
	}
	if cfg.CleanupInterval < time.Minute {
		log.Warn().Dur("value", cfg.CleanupInterval).
			Msg("CLEANUP_INTERVAL_MINUTES below 1 minute, resetting to 15")
		cfg.CleanupInterval = 15 * time.Minute
	}
	if cfg.MaxUploadMB < 1 {
		cfg.MaxUploadMB = 50
	}
	if cfg.APISecret == "" {
		log.Warn().Msg("API_SECRET not set, authentication disabled")
	}
}
