package fetch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"mediaforge/internal/convert"
	"mediaforge/internal/models"
	"mediaforge/internal/store"
)

// Engine runs the download-family strategies by invoking the yt-dlp binary
// and capturing its exit code and stderr for classification.
type Engine struct {
	store      *store.Store
	ytdlpPath  string
	ffmpegPath string
	runner     convert.Runner
}

// New creates an engine writing outputs through st.
func New(st *store.Store, ytdlpPath, ffmpegPath string) *Engine {
	return &Engine{store: st, ytdlpPath: ytdlpPath, ffmpegPath: ffmpegPath, runner: &convert.ExecRunner{}}
}

// NewWithRunner is like New but with an injected process runner, for tests.
func NewWithRunner(st *store.Store, ytdlpPath, ffmpegPath string, r convert.Runner) *Engine {
	return &Engine{store: st, ytdlpPath: ytdlpPath, ffmpegPath: ffmpegPath, runner: r}
}

// Table returns the dispatch entries for the fetch kinds.
func (e *Engine) Table() map[models.JobKind]convert.Strategy {
	return map[models.JobKind]convert.Strategy{
		models.KindFetchAudio:      e.audio,
		models.KindFetchVideoOnly:  e.videoOnly,
		models.KindFetchVideoAudio: e.videoAudio,
		models.KindFetchSeparate:   e.separate,
	}
}

func (e *Engine) audio(ctx context.Context, req convert.Request) (convert.Result, error) {
	out := e.store.Allocate(".mp3")
	args := []string{"-x", "--audio-format", "mp3",
		"--no-playlist", "--no-warnings",
		"--ffmpeg-location", e.ffmpegPath,
		"-o", out, req.SourceURL}
	if err := e.run(ctx, out, args); err != nil {
		return convert.Result{}, err
	}
	return convert.Result{OutputPath: out, OutputName: filepath.Base(out)}, nil
}

func (e *Engine) videoOnly(ctx context.Context, req convert.Request) (convert.Result, error) {
	out := e.store.Allocate(".mp4")
	args := []string{"-f", videoSelector(req.Quality),
		"--no-playlist", "--no-warnings",
		"--ffmpeg-location", e.ffmpegPath,
		"-o", out, req.SourceURL}
	if err := e.run(ctx, out, args); err != nil {
		return convert.Result{}, err
	}
	return convert.Result{OutputPath: out, OutputName: filepath.Base(out)}, nil
}

func (e *Engine) videoAudio(ctx context.Context, req convert.Request) (convert.Result, error) {
	out := e.store.Allocate(".mp4")
	args := []string{"-f", mergedSelector(req.Quality),
		"--merge-output-format", "mp4",
		"--no-playlist", "--no-warnings",
		"--ffmpeg-location", e.ffmpegPath,
		"-o", out, req.SourceURL}
	if err := e.run(ctx, out, args); err != nil {
		return convert.Result{}, err
	}
	return convert.Result{OutputPath: out, OutputName: filepath.Base(out)}, nil
}

// separate downloads the video-only and audio tracks as two sequential
// invocations. If the audio stage fails the video artifact is deleted before
// returning failure, so a half result never looks complete.
func (e *Engine) separate(ctx context.Context, req convert.Request) (convert.Result, error) {
	video, err := e.videoOnly(ctx, req)
	if err != nil {
		return convert.Result{}, err
	}

	audio, err := e.audio(ctx, req)
	if err != nil {
		e.store.Delete(video.OutputPath)
		return convert.Result{}, fmt.Errorf("audio track failed: %w", err)
	}

	return convert.Result{
		OutputPath: video.OutputPath,
		OutputName: video.OutputName,
		AudioPath:  audio.OutputPath,
		AudioName:  audio.OutputName,
	}, nil
}

// run executes one yt-dlp call; on failure it removes any partial output and
// returns the classified cause.
func (e *Engine) run(ctx context.Context, out string, args []string) error {
	res, err := e.runner.Run(ctx, e.ytdlpPath, args...)
	if err != nil {
		e.store.Delete(out)
		diag := res.Stderr
		if diag == "" {
			diag = err.Error()
		}
		cerr := Classify(diag)
		log.Warn().Int("exit", res.ExitCode).Str("category", string(cerr.Category)).
			Msg("yt-dlp invocation failed")
		return cerr
	}
	return nil
}

// videoSelector maps a quality tier like "720p" onto a yt-dlp format filter.
func videoSelector(quality string) string {
	if h := parseHeight(quality); h > 0 {
		return fmt.Sprintf("bestvideo[height<=%d][ext=mp4]/bestvideo[height<=%d]", h, h)
	}
	return "bestvideo[ext=mp4]/bestvideo"
}

func mergedSelector(quality string) string {
	if h := parseHeight(quality); h > 0 {
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", h, h)
	}
	return "bestvideo+bestaudio/best"
}

func parseHeight(quality string) int {
	if quality == "4k" {
		return 2160
	}
	h := 0
	for _, c := range quality {
		if c >= '0' && c <= '9' {
			h = h*10 + int(c-'0')
		} else if h > 0 {
			break
		}
	}
	return h
}
