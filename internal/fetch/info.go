package fetch

import (
	"context"
	"fmt"

	"github.com/kkdai/youtube/v2"

	"mediaforge/internal/models"
)

// Info resolves title, duration and thumbnail for a video URL without
// starting a job.
func (e *Engine) Info(ctx context.Context, url string) (*models.VideoInfo, error) {
	client := youtube.Client{}
	video, err := client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("video info error: %w", err)
	}

	info := &models.VideoInfo{
		Title:    video.Title,
		Duration: int(video.Duration.Seconds()),
	}

	// Thumbnails arrive smallest-first; pick the largest.
	best := 0
	for _, t := range video.Thumbnails {
		if int(t.Width) >= best {
			best = int(t.Width)
			info.Thumbnail = t.URL
		}
	}

	return info, nil
}
