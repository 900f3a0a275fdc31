package convert

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mediaforge/internal/store"
)

// stubRunner records invocations and plays back canned results.
type stubRunner struct {
	calls   [][]string
	results []CommandResult
	errs    []error
	onCall  func(call int, args []string)
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) (CommandResult, error) {
	call := len(r.calls)
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.onCall != nil {
		r.onCall(call, args)
	}
	var res CommandResult
	var err error
	if call < len(r.results) {
		res = r.results[call]
	}
	if call < len(r.errs) {
		err = r.errs[call]
	}
	return res, err
}

func outputArg(args []string) string {
	// ffmpeg invocations place the output last; yt-dlp uses -o.
	for i, a := range args {
		if a == "-o" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return args[len(args)-1]
}

func TestMP4ToMP3_Success(t *testing.T) {
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	runner := &stubRunner{results: []CommandResult{{}}, errs: []error{nil}}
	c := NewWithRunner(st, "ffmpeg", runner)

	result, err := c.mp4ToMP3(context.Background(), Request{InputPath: "/in/clip.mp4"})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(result.OutputName, ".mp3"))

	require.Len(t, runner.calls, 1)
	require.Equal(t, "ffmpeg", runner.calls[0][0])
	require.Contains(t, runner.calls[0], "/in/clip.mp4")
	require.Contains(t, runner.calls[0], "libmp3lame")
}

func TestMP4ToMP3_FailureSurfacesStderrAndCleansUp(t *testing.T) {
	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	var partial string
	runner := &stubRunner{
		results: []CommandResult{{Stderr: "Invalid data found when processing input\nsecond line", ExitCode: 1}},
		errs:    []error{errors.New("exit status 1")},
		onCall: func(_ int, args []string) {
			// Simulate ffmpeg leaving a partial output behind.
			partial = outputArg(args)
			_ = os.WriteFile(partial, []byte("partial"), 0644)
		},
	}
	c := NewWithRunner(st, "ffmpeg", runner)

	_, err = c.mp4ToMP3(context.Background(), Request{InputPath: "/in/corrupt.bin"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "audio extraction failed")
	require.Contains(t, err.Error(), "Invalid data found")
	require.NotContains(t, err.Error(), "second line")

	_, statErr := os.Stat(partial)
	require.True(t, os.IsNotExist(statErr), "partial output must be removed on failure")
}

func TestRemux_UsesStreamCopy(t *testing.T) {
	st, err := store.New(t.TempDir())
	require.NoError(t, err)
	runner := &stubRunner{results: []CommandResult{{}}, errs: []error{nil}}
	c := NewWithRunner(st, "ffmpeg", runner)

	result, err := c.movToMP4(context.Background(), Request{InputPath: "/in/clip.mov"})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(result.OutputName, ".mp4"))
	require.Contains(t, runner.calls[0], "copy")
}

func TestFirstLine(t *testing.T) {
	require.Equal(t, "boom", firstLine("\n\n  boom  \nrest"))
	require.Equal(t, "", firstLine("\n \n"))
}
