package sox

import "fmt"

// Encoding names accepted by sox's -e flag.
const (
	SIGNED_INTEGER   = "signed-integer"
	UNSIGNED_INTEGER = "unsigned-integer"
	FLOATING_POINT   = "floating-point"
	A_LAW            = "a-law"
	U_LAW            = "u-law"
	OKI_ADPCM        = "oki-adpcm"
	IMA_ADPCM        = "ima-adpcm"
	MS_ADPCM         = "ms-adpcm"
	GSM_FULL_RATE    = "gsm-full-rate"
)

var encodingVals = []string{
	SIGNED_INTEGER,
	UNSIGNED_INTEGER,
	FLOATING_POINT,
	A_LAW,
	U_LAW,
	OKI_ADPCM,
	IMA_ADPCM,
	MS_ADPCM,
	GSM_FULL_RATE,
}

// AudioFormat describes the format arguments for one input or output
// position in a sox argument list. It is the bridge used by effect-chain
// builders sitting on top of Run: BuildArgs produces the flags that go
// right before the file (or "-") they describe.
type AudioFormat struct {
	Type       string // "raw", "wav", "flac", ...
	Encoding   string // one of the -e encoding names above
	SampleRate int    // Sample rate in Hz
	Channels   int    // Number of channels: 1 = mono, 2 = stereo
	BitDepth   int    // Bits per sample: 8, 16, 24, 32

	Volume       float64 // -v FACTOR - input volume adjustment (input only)
	IgnoreLength bool    // --ignore-length (input only)
	Endian       string  // --endian little|big|swap
	Compression  float64 // -C FACTOR (output only)
	Comment      string  // --comment TEXT (output only)

	// CustomArgs allows passing any additional format arguments not
	// covered above.
	CustomArgs []string
}

// Common format presets

var (
	// PCM_RAW_8K_MONO - PCM raw 8kHz mono 16-bit (telephony)
	PCM_RAW_8K_MONO = AudioFormat{
		Type:       "raw",
		Encoding:   SIGNED_INTEGER,
		SampleRate: 8000,
		Channels:   1,
		BitDepth:   16,
	}

	// PCM_RAW_16K_MONO - PCM raw 16kHz mono 16-bit (speech recognition)
	PCM_RAW_16K_MONO = AudioFormat{
		Type:       "raw",
		Encoding:   SIGNED_INTEGER,
		SampleRate: 16000,
		Channels:   1,
		BitDepth:   16,
	}

	// WAV_16K_MONO - WAV 16kHz mono 16-bit
	WAV_16K_MONO = AudioFormat{
		Type:       "wav",
		Encoding:   SIGNED_INTEGER,
		SampleRate: 16000,
		Channels:   1,
		BitDepth:   16,
	}

	// ULAW_8K_MONO - G.711 u-law 8kHz mono (telephony standard)
	ULAW_8K_MONO = AudioFormat{
		Type:       "raw",
		Encoding:   U_LAW,
		SampleRate: 8000,
		Channels:   1,
		BitDepth:   8,
	}
)

// BuildArgs converts the AudioFormat to sox command-line arguments.
// isInput: true for input position, false for output position.
func (f *AudioFormat) BuildArgs(isInput bool) []string {
	var args []string

	if isInput && f.Volume != 0 {
		args = append(args, "-v", fmt.Sprintf("%f", f.Volume))
	}

	if isInput && f.IgnoreLength {
		args = append(args, "--ignore-length")
	}

	if f.Type != "" {
		args = append(args, "-t", f.Type)
	}

	if f.Encoding != "" {
		args = append(args, "-e", f.Encoding)
	}

	if f.BitDepth > 0 {
		args = append(args, "-b", fmt.Sprintf("%d", f.BitDepth))
	}

	if f.Endian != "" {
		args = append(args, "--endian", f.Endian)
	}

	if f.Channels > 0 {
		args = append(args, "-c", fmt.Sprintf("%d", f.Channels))
	}

	if f.SampleRate > 0 {
		args = append(args, "-r", fmt.Sprintf("%d", f.SampleRate))
	}

	if !isInput && f.Compression != 0 {
		args = append(args, "-C", fmt.Sprintf("%f", f.Compression))
	}

	if !isInput && f.Comment != "" {
		args = append(args, "--comment", f.Comment)
	}

	if len(f.CustomArgs) > 0 {
		args = append(args, f.CustomArgs...)
	}

	return args
}

// Validate checks if the AudioFormat has valid parameters
func (f *AudioFormat) Validate() error {
	if f.Encoding != "" {
		valid := false
		for _, e := range encodingVals {
			if f.Encoding == e {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown encoding %q", f.Encoding)
		}
	}

	// Raw streams carry no header, so the layout must be spelled out.
	if f.Type == "raw" {
		if f.Encoding == "" && len(f.CustomArgs) == 0 {
			return fmt.Errorf("encoding is required for raw format (or use CustomArgs)")
		}
		if f.SampleRate <= 0 && len(f.CustomArgs) == 0 {
			return fmt.Errorf("sample rate is required for raw format (or use CustomArgs)")
		}
	}

	if f.Endian != "" {
		if f.Endian != "little" && f.Endian != "big" && f.Endian != "swap" {
			return fmt.Errorf("endian must be 'little', 'big', or 'swap'")
		}
	}

	return nil
}
