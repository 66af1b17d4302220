package sox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/go-audio/audio"
)

const (
	soxName  = "sox"
	playName = "play"
)

// statusLaunchFailed is the sentinel status reported when the process
// could not be started at all, as opposed to a non-zero exit reported by
// the tool itself. Callers can treat every outcome uniformly through
// Result.Status.
const statusLaunchFailed = 1

// Result holds the outcome of one sox invocation.
// Out and Raw are mutually exclusive: Out carries stdout decoded as UTF-8
// when decoding was requested, Raw carries the untouched bytes otherwise.
// Both are absent when the process could not be launched.
type Result struct {
	Status int
	Out    string
	Raw    []byte
	Stderr string
}

// Runner executes sox and play as blocking subprocesses. A Runner holds
// no cross-call mutable state, so one instance may be shared by any
// number of goroutines.
type Runner struct {
	Options RunOptions
}

// NewRunner creates a Runner with default options
func NewRunner() *Runner {
	return &Runner{Options: DefaultRunOptions()}
}

// DefaultRunner backs the package-level helpers, in the spirit of
// http.DefaultClient.
var DefaultRunner = NewRunner()

// Run invokes sox through the DefaultRunner. See Runner.Run.
func Run(args []string, src *audio.IntBuffer, decodeOut bool) Result {
	return DefaultRunner.Run(args, src, decodeOut)
}

// Play invokes play through the DefaultRunner. See Runner.Play.
func Play(args []string) bool {
	return DefaultRunner.Play(args)
}

// normalizeArgs ensures the canonical tool name is the first argument,
// matching case-insensitively and inserting it when absent.
func normalizeArgs(name string, args []string) []string {
	if len(args) > 0 && strings.EqualFold(args[0], name) {
		args = args[1:]
	}
	out := make([]string, 0, len(args)+1)
	out = append(out, name)
	return append(out, args...)
}

// Run passes an argument list to sox. The first item of args can, but
// does not need to, be "sox".
//
// When src is nil the process runs with no stdin attached and stdout is
// decoded as UTF-8 if decodeOut is true, otherwise returned as raw bytes.
//
// When src is non-nil its samples are serialized channel-contiguous
// (column-major) and written to the process's stdin; stdout comes back in
// Result.Raw and can be reshaped with DecodeSamples using the channel
// count the caller asked sox to produce. The Runner itself never learns
// the channel count of the output.
//
// Stderr is always decoded as UTF-8. A process that cannot be launched
// yields Result{Status: 1} with no output and no error text.
func (r *Runner) Run(args []string, src *audio.IntBuffer, decodeOut bool) Result {
	args = normalizeArgs(soxName, args)
	log := r.logger()

	cmd, cancel := r.command(r.soxPath(), args[1:])
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if src != nil {
		raw, err := EncodeSamples(src)
		if err != nil {
			log.Error("sox failed", "error", err)
			return Result{Status: statusLaunchFailed}
		}
		// os/exec pumps stdin on its own goroutine while we drain
		// stdout and stderr, so large payloads cannot deadlock on a
		// full pipe buffer.
		cmd.Stdin = bytes.NewReader(raw)
	}

	log.Info("executing sox", "cmd", strings.Join(args, " "))
	start := time.Now()

	if err := cmd.Start(); err != nil {
		log.Error("sox failed", "error", err)
		return Result{Status: statusLaunchFailed}
	}
	pid := cmd.Process.Pid
	GetMonitor().TrackProcess(pid)
	err := cmd.Wait()
	GetMonitor().UntrackProcess(pid)

	log.Info("sox finished", "elapsed", time.Since(start))

	status := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			GetMonitor().RecordFailure()
			log.Error("sox failed", "error", err)
			return Result{Status: statusLaunchFailed}
		}
		status = exitErr.ExitCode()
		GetMonitor().RecordFailure()
	}

	res := Result{Status: status, Stderr: stderr.String()}
	if decodeOut {
		res.Out = stdout.String()
	} else {
		res.Raw = stdout.Bytes()
	}
	return res
}

// Play passes an argument list to play. The first item of args can, but
// does not need to, be "play". It reports true iff the process exited
// with status zero; launch failures report false.
func (r *Runner) Play(args []string) bool {
	args = normalizeArgs(playName, args)
	log := r.logger()

	cmd, cancel := r.command(r.playPath(), args[1:])
	defer cancel()

	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	log.Info("executing play", "cmd", strings.Join(args, " "))
	start := time.Now()

	if err := cmd.Start(); err != nil {
		log.Error("play failed", "error", err)
		return false
	}
	pid := cmd.Process.Pid
	GetMonitor().TrackProcess(pid)
	err := cmd.Wait()
	GetMonitor().UntrackProcess(pid)

	log.Info("play finished", "elapsed", time.Since(start))

	if err != nil {
		GetMonitor().RecordFailure()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Info("play returned with error code",
				"status", exitErr.ExitCode(), "stderr", stderr.String())
		} else {
			log.Error("play failed", "error", err)
		}
		return false
	}
	return true
}

// command builds the exec.Cmd for one invocation, applying the optional
// deadline from RunOptions.
func (r *Runner) command(path string, args []string) (*exec.Cmd, context.CancelFunc) {
	if r.Options.Timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), r.Options.Timeout)
		return exec.CommandContext(ctx, path, args...), cancel
	}
	return exec.Command(path, args...), func() {}
}

// CheckSoxInstalled verifies that SoX is installed and accessible
func CheckSoxInstalled(soxPath string) error {
	if soxPath == "" {
		soxPath = soxName
	}

	cmd := exec.Command(soxPath, "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sox not found or not executable: %w", err)
	}

	return nil
}
