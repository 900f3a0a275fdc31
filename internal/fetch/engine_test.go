package fetch

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mediaforge/internal/convert"
	"mediaforge/internal/store"
)

// stubRunner plays back canned results per invocation and records calls.
type stubRunner struct {
	calls   [][]string
	results []convert.CommandResult
	errs    []error
	onCall  func(call int, args []string)
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) (convert.CommandResult, error) {
	call := len(r.calls)
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.onCall != nil {
		r.onCall(call, args)
	}
	var res convert.CommandResult
	var err error
	if call < len(r.results) {
		res = r.results[call]
	}
	if call < len(r.errs) {
		err = r.errs[call]
	}
	return res, err
}

func outputArg(t *testing.T, args []string) string {
	t.Helper()
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatal("no -o argument in yt-dlp invocation")
	return ""
}

func newTestEngine(t *testing.T, r convert.Runner) (*Engine, *store.Store) {
	t.Helper()
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	return NewWithRunner(st, "yt-dlp", "ffmpeg", r), st
}

func TestAudio_InvokesYtDlp(t *testing.T) {
	runner := &stubRunner{results: []convert.CommandResult{{}}, errs: []error{nil}}
	e, _ := newTestEngine(t, runner)

	result, err := e.audio(context.Background(), convert.Request{SourceURL: "https://example.com/v"})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(result.OutputName, ".mp3"))
	require.Empty(t, result.AudioName)

	require.Len(t, runner.calls, 1)
	require.Equal(t, "yt-dlp", runner.calls[0][0])
	require.Contains(t, runner.calls[0], "--audio-format")
	require.Contains(t, runner.calls[0], "https://example.com/v")
}

func TestVideoOnly_QualityMapsToFormatSelector(t *testing.T) {
	runner := &stubRunner{results: []convert.CommandResult{{}}, errs: []error{nil}}
	e, _ := newTestEngine(t, runner)

	_, err := e.videoOnly(context.Background(), convert.Request{SourceURL: "https://example.com/v", Quality: "720p"})
	require.NoError(t, err)

	joined := strings.Join(runner.calls[0], " ")
	require.Contains(t, joined, "height<=720")
}

func TestRun_FailureIsClassifiedAndPartialRemoved(t *testing.T) {
	var partial string
	runner := &stubRunner{
		results: []convert.CommandResult{{Stderr: "ERROR: [youtube] abc: Private video", ExitCode: 1}},
		errs:    []error{errors.New("exit status 1")},
		onCall: func(_ int, args []string) {
			partial = outputArg(t, args)
			_ = os.WriteFile(partial, []byte("partial"), 0644)
		},
	}
	e, _ := newTestEngine(t, runner)

	_, err := e.audio(context.Background(), convert.Request{SourceURL: "https://example.com/v"})
	require.Error(t, err)

	var cerr *ClassifiedError
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, CategoryUnavailable, cerr.Category)

	_, statErr := os.Stat(partial)
	require.True(t, os.IsNotExist(statErr), "partial download must be removed on failure")
}

func TestSeparate_SecondStageFailureRemovesFirstOutput(t *testing.T) {
	var videoOut string
	runner := &stubRunner{
		results: []convert.CommandResult{
			{},
			{Stderr: "ERROR: [youtube] abc: Video unavailable", ExitCode: 1},
		},
		errs: []error{nil, errors.New("exit status 1")},
		onCall: func(call int, args []string) {
			if call == 0 {
				for i, a := range args {
					if a == "-o" {
						videoOut = args[i+1]
					}
				}
				_ = os.WriteFile(videoOut, []byte("video"), 0644)
			}
		},
	}
	e, _ := newTestEngine(t, runner)

	_, err := e.separate(context.Background(), convert.Request{SourceURL: "https://example.com/v"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "audio track failed")
	require.Len(t, runner.calls, 2)

	_, statErr := os.Stat(videoOut)
	require.True(t, os.IsNotExist(statErr), "video artifact must not outlive the failed pair")
}

func TestSeparate_SuccessReturnsBothArtifacts(t *testing.T) {
	runner := &stubRunner{
		results: []convert.CommandResult{{}, {}},
		errs:    []error{nil, nil},
		onCall: func(_ int, args []string) {
			for i, a := range args {
				if a == "-o" {
					_ = os.WriteFile(args[i+1], []byte("data"), 0644)
				}
			}
		},
	}
	e, _ := newTestEngine(t, runner)

	result, err := e.separate(context.Background(), convert.Request{SourceURL: "https://example.com/v"})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(result.OutputName, ".mp4"))
	require.True(t, strings.HasSuffix(result.AudioName, ".mp3"))
	require.NotEqual(t, result.OutputName, result.AudioName)
}

func TestSelectors(t *testing.T) {
	require.Equal(t, "bestvideo[ext=mp4]/bestvideo", videoSelector(""))
	require.Contains(t, videoSelector("1080p"), "height<=1080")
	require.Contains(t, videoSelector("4k"), "height<=2160")
	require.Equal(t, "bestvideo+bestaudio/best", mergedSelector(""))
	require.Contains(t, mergedSelector("480p"), "height<=480")
}
