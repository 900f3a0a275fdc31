package convert

import (
	"context"
)

// Request is the validated input to a strategy: a staged file path or a
// remote source URL, plus kind-specific options. Owned by the dispatcher for
// the duration of the call.
type Request struct {
	InputPath string
	SourceURL string
	Quality   string
}

// Result carries the output artifact(s) of a successful strategy run. The
// audio pair is set only by the separate-tracks download kind.
type Result struct {
	OutputPath string
	OutputName string
	AudioPath  string
	AudioName  string
}

// Strategy is one concrete conversion or download. It blocks until the
// external work settles and reports failure with a human-readable cause.
type Strategy func(ctx context.Context, req Request) (Result, error)
