package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Media strategies shell out to ffmpeg. Each invocation captures stderr; on
// failure the first non-empty diagnostic line becomes the job error cause.

func (c *Converter) mp4ToMP3(ctx context.Context, req Request) (Result, error) {
	out := c.store.Allocate(".mp3")
	args := []string{"-y", "-hide_banner", "-loglevel", "error",
		"-i", req.InputPath, "-vn", "-acodec", "libmp3lame", "-q:a", "2", out}
	if err := c.runFFmpeg(ctx, out, args); err != nil {
		return Result{}, fmt.Errorf("audio extraction failed: %w", err)
	}
	return Result{OutputPath: out, OutputName: filepath.Base(out)}, nil
}

func (c *Converter) wavToMP3(ctx context.Context, req Request) (Result, error) {
	out := c.store.Allocate(".mp3")
	args := []string{"-y", "-hide_banner", "-loglevel", "error",
		"-i", req.InputPath, "-acodec", "libmp3lame", "-q:a", "2", out}
	if err := c.runFFmpeg(ctx, out, args); err != nil {
		return Result{}, fmt.Errorf("audio transcode failed: %w", err)
	}
	return Result{OutputPath: out, OutputName: filepath.Base(out)}, nil
}

func (c *Converter) mp3ToWAV(ctx context.Context, req Request) (Result, error) {
	out := c.store.Allocate(".wav")
	args := []string{"-y", "-hide_banner", "-loglevel", "error",
		"-i", req.InputPath, out}
	if err := c.runFFmpeg(ctx, out, args); err != nil {
		return Result{}, fmt.Errorf("audio transcode failed: %w", err)
	}
	return Result{OutputPath: out, OutputName: filepath.Base(out)}, nil
}

func (c *Converter) movToMP4(ctx context.Context, req Request) (Result, error) {
	return c.remuxToMP4(ctx, req)
}

func (c *Converter) mkvToMP4(ctx context.Context, req Request) (Result, error) {
	return c.remuxToMP4(ctx, req)
}

// remuxToMP4 copies streams into an mp4 container without re-encoding.
func (c *Converter) remuxToMP4(ctx context.Context, req Request) (Result, error) {
	out := c.store.Allocate(".mp4")
	args := []string{"-y", "-hide_banner", "-loglevel", "error",
		"-i", req.InputPath, "-c", "copy", "-movflags", "+faststart", out}
	if err := c.runFFmpeg(ctx, out, args); err != nil {
		return Result{}, fmt.Errorf("video remux failed: %w", err)
	}
	return Result{OutputPath: out, OutputName: filepath.Base(out)}, nil
}

func (c *Converter) mp4ToGIF(ctx context.Context, req Request) (Result, error) {
	out := c.store.Allocate(".gif")
	args := []string{"-y", "-hide_banner", "-loglevel", "error",
		"-i", req.InputPath, "-vf", "fps=12,scale=480:-1:flags=lanczos", out}
	if err := c.runFFmpeg(ctx, out, args); err != nil {
		return Result{}, fmt.Errorf("gif render failed: %w", err)
	}
	return Result{OutputPath: out, OutputName: filepath.Base(out)}, nil
}

// runFFmpeg executes one ffmpeg call and, on failure, removes the partial
// output and surfaces the first stderr line as the cause.
func (c *Converter) runFFmpeg(ctx context.Context, out string, args []string) error {
	res, err := c.runner.Run(ctx, c.ffmpegPath, args...)
	if err != nil {
		c.store.Delete(out)
		if line := firstLine(res.Stderr); line != "" {
			return fmt.Errorf("%s", line)
		}
		return err
	}
	return nil
}

// firstLine returns the first non-empty line of tool diagnostics.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
