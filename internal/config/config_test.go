package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, ":8080", cfg.Port)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, 3, cfg.MaxConcurrentJobs)
	require.Equal(t, 15*time.Minute, cfg.CleanupInterval)
	require.Equal(t, int64(50), cfg.MaxUploadMB)
	require.Equal(t, "yt-dlp", cfg.YtDlpPath)
	require.Equal(t, "ffmpeg", cfg.FFmpegPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", ":9999")
	t.Setenv("MAX_CONCURRENT_JOBS", "7")
	t.Setenv("CLEANUP_INTERVAL_MINUTES", "5")
	t.Setenv("API_SECRET", "hunter2")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg := Load()
	require.Equal(t, ":9999", cfg.Port)
	require.Equal(t, 7, cfg.MaxConcurrentJobs)
	require.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	require.Equal(t, "hunter2", cfg.APISecret)
	require.Equal(t, "https://a.example.com,https://b.example.com", cfg.AllowedOrigins)
}

func TestLoad_RepairsInvalidValues(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_JOBS", "0")
	t.Setenv("CLEANUP_INTERVAL_MINUTES", "0")
	t.Setenv("MAX_UPLOAD_MB", "-1")

	cfg := Load()
	require.Equal(t, 3, cfg.MaxConcurrentJobs)
	require.Equal(t, 15*time.Minute, cfg.CleanupInterval)
	require.Equal(t, int64(50), cfg.MaxUploadMB)
}
