package sox

import (
	"log/slog"
	"time"
)

// RunOptions configures how a Runner launches the external tools.
type RunOptions struct {
	// SoxPath specifies the path to the sox binary (defaults to "sox").
	// The first element of every argument list is still normalized to
	// the canonical name "sox"; SoxPath only changes what is executed.
	SoxPath string

	// PlayPath specifies the path to the play binary (defaults to "play").
	PlayPath string

	// Timeout bounds a single invocation. Zero means no deadline: the
	// call blocks until the process exits.
	Timeout time.Duration

	// Logger receives command lines, timings and warnings.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultRunOptions returns RunOptions with sensible defaults
func DefaultRunOptions() RunOptions {
	return RunOptions{
		SoxPath:  soxName,
		PlayPath: playName,
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Options.Logger != nil {
		return r.Options.Logger
	}
	return slog.Default()
}

func (r *Runner) soxPath() string {
	if r.Options.SoxPath != "" {
		return r.Options.SoxPath
	}
	return soxName
}

func (r *Runner) playPath() string {
	if r.Options.PlayPath != "" {
		return r.Options.PlayPath
	}
	return playName
}
