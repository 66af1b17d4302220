package sox

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"unicode"
)

// Soxi field codes, one per metadata attribute the introspection mode
// can report.
const (
	FieldBitrate    = "B"
	FieldBitDepth   = "b"
	FieldChannels   = "c"
	FieldComments   = "a"
	FieldDuration   = "D"
	FieldEncoding   = "e"
	FieldFileType   = "t"
	FieldNumSamples = "s"
	FieldSampleRate = "r"
)

var soxiFields = map[string]bool{
	FieldBitrate:    true,
	FieldBitDepth:   true,
	FieldChannels:   true,
	FieldComments:   true,
	FieldDuration:   true,
	FieldEncoding:   true,
	FieldFileType:   true,
	FieldNumSamples: true,
	FieldSampleRate: true,
}

// Soxi queries one metadata field through the DefaultRunner.
// See Runner.Soxi.
func Soxi(inputPath, field string) (string, error) {
	return DefaultRunner.Soxi(inputPath, field)
}

// Soxi invokes sox's introspection mode ("sox --i -<field> <path>") and
// returns the reply with trailing newline and carriage-return characters
// stripped. An unknown field code fails with ErrInvalidArgument before
// any process is launched; a non-zero exit fails with a *SoxiError
// carrying the tool's exit code.
func (r *Runner) Soxi(inputPath, field string) (string, error) {
	if !soxiFields[field] {
		return "", fmt.Errorf("%w: invalid soxi field %q", ErrInvalidArgument, field)
	}

	cmd, cancel := r.command(r.soxPath(), []string{"--i", "-" + field, inputPath})
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger().Info("soxi error message", "stderr", stderr.String())
			return "", &SoxiError{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return "", fmt.Errorf("soxi launch failed: %w", err)
	}

	return strings.TrimRight(stdout.String(), "\n\r"), nil
}

// BitDepth returns the number of bits per sample, or nil when the format
// has no fixed bit depth (soxi reports a literal 0).
func BitDepth(inputPath string) (*int, error) {
	if err := ValidateInput(inputPath); err != nil {
		return nil, err
	}
	out, err := Soxi(inputPath, FieldBitDepth)
	if err != nil {
		return nil, err
	}
	if out == "0" {
		DefaultRunner.logger().Warn("bit depth unavailable", "path", inputPath)
		return nil, nil
	}
	v, err := strconv.Atoi(out)
	if err != nil {
		return nil, fmt.Errorf("parsing bit depth %q: %w", out, err)
	}
	return &v, nil
}

// magnitude suffixes soxi appends to bit rates, in increasing powers
// of 1000.
const magnitudeSuffixes = "KMGTPEZY"

// Bitrate returns the bit rate averaged over the whole file, in bits per
// second, or nil when not applicable.
func Bitrate(inputPath string) (*float64, error) {
	if err := ValidateInput(inputPath); err != nil {
		return nil, err
	}
	out, err := Soxi(inputPath, FieldBitrate)
	if err != nil {
		return nil, err
	}
	if out == "0" {
		DefaultRunner.logger().Warn("bit rate unavailable", "path", inputPath)
		return nil, nil
	}
	v, err := parseBitrate(out)
	if err != nil {
		return nil, fmt.Errorf("parsing bit rate %q: %w", out, err)
	}
	return &v, nil
}

// parseBitrate decodes soxi's bit-rate reply, which may carry a single
// magnitude suffix ("128k", "1.5M") standing for a power of 1000.
func parseBitrate(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty bit rate")
	}
	suffix := unicode.ToUpper(rune(raw[len(raw)-1]))
	if i := strings.IndexRune(magnitudeSuffixes, suffix); i >= 0 {
		v, err := strconv.ParseFloat(raw[:len(raw)-1], 64)
		if err != nil {
			return 0, err
		}
		return v * math.Pow(1000, float64(i+1)), nil
	}
	return strconv.ParseFloat(raw, 64)
}

// Channels returns the number of channels. A zero reply is taken
// literally, not as an unavailable marker.
func Channels(inputPath string) (int, error) {
	if err := ValidateInput(inputPath); err != nil {
		return 0, err
	}
	out, err := Soxi(inputPath, FieldChannels)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("parsing channel count %q: %w", out, err)
	}
	return v, nil
}

// Comments returns the file comments (annotations) from the header, or
// an empty string when none are present.
func Comments(inputPath string) (string, error) {
	if err := ValidateInput(inputPath); err != nil {
		return "", err
	}
	return Soxi(inputPath, FieldComments)
}

// Duration returns the duration in seconds, or nil when unavailable
// (soxi reports exactly 0).
func Duration(inputPath string) (*float64, error) {
	if err := ValidateInput(inputPath); err != nil {
		return nil, err
	}
	out, err := Soxi(inputPath, FieldDuration)
	if err != nil {
		return nil, err
	}
	v, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing duration %q: %w", out, err)
	}
	if v == 0.0 {
		DefaultRunner.logger().Warn("duration unavailable", "path", inputPath)
		return nil, nil
	}
	return &v, nil
}

// Encoding returns the name of the audio encoding.
func Encoding(inputPath string) (string, error) {
	if err := ValidateInput(inputPath); err != nil {
		return "", err
	}
	return Soxi(inputPath, FieldEncoding)
}

// FileType returns the detected file type (e.g. "wav").
func FileType(inputPath string) (string, error) {
	if err := ValidateInput(inputPath); err != nil {
		return "", err
	}
	return Soxi(inputPath, FieldFileType)
}

// NumSamples returns the total number of samples, or nil when
// unavailable (soxi reports a literal 0).
func NumSamples(inputPath string) (*int, error) {
	if err := ValidateInput(inputPath); err != nil {
		return nil, err
	}
	out, err := Soxi(inputPath, FieldNumSamples)
	if err != nil {
		return nil, err
	}
	if out == "0" {
		DefaultRunner.logger().Warn("number of samples unavailable", "path", inputPath)
		return nil, nil
	}
	v, err := strconv.Atoi(out)
	if err != nil {
		return nil, fmt.Errorf("parsing sample count %q: %w", out, err)
	}
	return &v, nil
}

// SampleRate returns the sample rate in samples per second.
func SampleRate(inputPath string) (float64, error) {
	if err := ValidateInput(inputPath); err != nil {
		return 0, err
	}
	out, err := Soxi(inputPath, FieldSampleRate)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing sample rate %q: %w", out, err)
	}
	return v, nil
}

// DefaultSilenceThreshold is the mean-norm level below which IsSilent
// considers a file silent.
const DefaultSilenceThreshold = 0.001

// statMeanNorm is the stat report label consulted by IsSilent. The
// internal padding is part of the key.
const statMeanNorm = "Mean    norm"

// IsSilent reports whether the file's mean norm falls below threshold.
func IsSilent(inputPath string, threshold float64) (bool, error) {
	if err := ValidateInput(inputPath); err != nil {
		return false, err
	}
	stats, err := Stat(inputPath)
	if err != nil {
		return false, err
	}
	return silentFrom(stats, threshold, inputPath), nil
}

// silentFrom keeps the two historical edge-case policies separate: a
// missing or unparseable mean norm is not silence, a NaN mean norm is.
func silentFrom(stats map[string]*float64, threshold float64, inputPath string) bool {
	meanNorm, ok := stats[statMeanNorm]
	if !ok || meanNorm == nil {
		DefaultRunner.logger().Warn("mean norm unavailable", "path", inputPath)
		return false
	}
	if math.IsNaN(*meanNorm) {
		return true
	}
	return *meanNorm < threshold
}

// FileInfo aggregates the per-file metadata queries. Nil pointer fields
// mark values the tool reported as unavailable.
type FileInfo struct {
	Channels   int
	SampleRate float64
	BitDepth   *int
	Bitrate    *float64
	Duration   *float64
	NumSamples *int
	Encoding   string
	Silent     bool
}

// Info collects channels, sample rate, bit depth, bit rate, duration,
// sample count, encoding and silence for one file.
func Info(inputPath string) (FileInfo, error) {
	var (
		fi  FileInfo
		err error
	)
	if fi.Channels, err = Channels(inputPath); err != nil {
		return FileInfo{}, err
	}
	if fi.SampleRate, err = SampleRate(inputPath); err != nil {
		return FileInfo{}, err
	}
	if fi.BitDepth, err = BitDepth(inputPath); err != nil {
		return FileInfo{}, err
	}
	if fi.Bitrate, err = Bitrate(inputPath); err != nil {
		return FileInfo{}, err
	}
	if fi.Duration, err = Duration(inputPath); err != nil {
		return FileInfo{}, err
	}
	if fi.NumSamples, err = NumSamples(inputPath); err != nil {
		return FileInfo{}, err
	}
	if fi.Encoding, err = Encoding(inputPath); err != nil {
		return FileInfo{}, err
	}
	if fi.Silent, err = IsSilent(inputPath, DefaultSilenceThreshold); err != nil {
		return FileInfo{}, err
	}
	return fi, nil
}
