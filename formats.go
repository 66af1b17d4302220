package sox

import (
	"os/exec"
	"sort"
	"strings"
	"sync"
)

// lookPath is a variable for testing.
var lookPath = exec.LookPath

const (
	formatsMarker = "AUDIO FILE FORMATS:"
	formatsOffset = 3
)

var (
	formatsOnce  sync.Once
	validFormats map[string]bool
)

// ValidFormats returns the sorted list of file extensions the installed
// SoX advertises support for. The list is probed from "sox -h" once per
// process and never changes afterwards; it is empty when the sox binary
// cannot be resolved on the PATH.
func ValidFormats() []string {
	formatsOnce.Do(initFormats)
	out := make([]string, 0, len(validFormats))
	for ext := range validFormats {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func supportedExtension(ext string) bool {
	formatsOnce.Do(initFormats)
	return validFormats[ext]
}

func initFormats() {
	validFormats = detectFormats()
}

func detectFormats() map[string]bool {
	if _, err := lookPath(soxName); err != nil {
		return map[string]bool{}
	}
	res := DefaultRunner.Run([]string{"-h"}, nil, true)
	return parseFormats(res.Out)
}

// parseFormats scans the help screen for the format list. The line reads
//
//	AUDIO FILE FORMATS: 8svx aif aifc aiff ... wav wv xa
//
// so everything past the third space-separated token is an extension.
func parseFormats(help string) map[string]bool {
	formats := make(map[string]bool)
	for _, line := range strings.Split(help, "\n") {
		if !strings.Contains(line, formatsMarker) {
			continue
		}
		fields := strings.Split(line, " ")
		if len(fields) <= formatsOffset {
			break
		}
		for _, ext := range fields[formatsOffset:] {
			if ext != "" {
				formats[strings.ToLower(ext)] = true
			}
		}
		break
	}
	return formats
}
