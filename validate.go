package sox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// nullOutput is sox's null output pseudo-file.
const nullOutput = "-n"

// ValidateInput checks that the file exists and that this install of SoX
// can likely process it. An unsupported extension only logs a warning:
// the probed format list mixes containers and encodings, so it is
// advisory rather than authoritative.
func ValidateInput(inputPath string) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("%w: input %s does not exist", ErrFileNotFound, inputPath)
	}
	if ext := fileExtension(inputPath); !supportedExtension(ext) {
		DefaultRunner.logger().Warn("this install of SoX cannot process these files",
			"extension", ext, "path", inputPath)
	}
	return nil
}

// ValidateInputList validates a list of input files. Operations that
// combine files need at least two of them.
func ValidateInputList(inputPaths []string) error {
	if len(inputPaths) < 2 {
		return fmt.Errorf("%w: input list must have at least 2 files", ErrInvalidArgument)
	}
	for _, p := range inputPaths {
		if err := ValidateInput(p); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOutput checks that the destination can be written. The null
// output "-n" always passes. An unsupported extension or an existing
// destination (which would be overwritten on build) only logs a warning.
func ValidateOutput(outputPath string) error {
	if outputPath == nullOutput {
		return nil
	}

	if !dirWritable(filepath.Dir(outputPath)) {
		return fmt.Errorf("%w: SoX cannot write to %s", ErrNotWritable, outputPath)
	}

	if ext := fileExtension(outputPath); !supportedExtension(ext) {
		DefaultRunner.logger().Warn("this install of SoX cannot process these files",
			"extension", ext, "path", outputPath)
	}

	if _, err := os.Stat(outputPath); err == nil {
		DefaultRunner.logger().Warn("output file already exists and will be overwritten",
			"path", outputPath)
	}
	return nil
}

// dirWritable reports whether a new file can be created in dir. The
// standard library has no portable access(2), so probe with a throwaway
// temp file.
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".soxcheck-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// fileExtension returns the lowercase extension of a path without the
// leading dot.
func fileExtension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
