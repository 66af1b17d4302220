// Package sox provides a Go wrapper for SoX (Sound eXchange), the Swiss
// Army knife of audio manipulation.
//
// The package drives the sox and play command line tools as subprocesses:
// it marshals argument lists, optionally streams raw sample buffers to
// stdin, captures stdout/stderr, and parses SoX's textual reports into
// typed values. It does not reimplement any codec or signal processing;
// sample data only ever passes through as opaque byte buffers.
//
// # Running sox
//
// Run passes an argument list straight through:
//
//	res := sox.Run([]string{"input.wav", "output.flac"}, nil, true)
//	if res.Status != 0 {
//	    log.Fatal(res.Stderr)
//	}
//
// A *audio.IntBuffer payload is serialized channel-contiguous and fed to
// stdin; the raw stdout can be reshaped with DecodeSamples:
//
//	res := sox.Run(args, buf, false)
//	out, err := sox.DecodeSamples(res.Raw, 2, 16)
//
// Launch failures are reported through the sentinel status 1 with no
// output, so every outcome is inspected the same way.
//
// # File metadata
//
// The soxi introspection mode is exposed as typed queries:
//
//	channels, err := sox.Channels("input.wav")
//	dur, err := sox.Duration("input.wav") // nil when unavailable
//	info, err := sox.Info("input.wav")
//
// Statistics come from the stat pseudo-effect, parsed from stderr:
//
//	stats, err := sox.Stat("input.wav")
//	meanNorm := stats["Mean    norm"]
//
// # Requirements
//
// SoX must be installed and accessible in PATH:
//   - macOS: brew install sox
//   - Ubuntu/Debian: apt-get install sox
//   - RHEL/CentOS: yum install sox
//
// Verify installation:
//
//	err := sox.CheckSoxInstalled("")
package sox
