package sox

import (
	"fmt"

	"github.com/go-audio/audio"
)

// EncodeSamples serializes an interleaved sample buffer to the raw byte
// layout sox expects on stdin: column-major, i.e. every channel's samples
// laid out contiguously, as little-endian signed integers of the buffer's
// source bit depth (16 when unset).
func EncodeSamples(buf *audio.IntBuffer) ([]byte, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: sample buffer must carry a format", ErrInvalidArgument)
	}
	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("%w: sample buffer must declare at least one channel", ErrInvalidArgument)
	}
	if len(buf.Data)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels",
			ErrInvalidArgument, len(buf.Data), channels)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	width, err := sampleWidth(depth)
	if err != nil {
		return nil, err
	}

	frames := len(buf.Data) / channels
	out := make([]byte, 0, len(buf.Data)*width)
	for ch := 0; ch < channels; ch++ {
		for i := 0; i < frames; i++ {
			out = appendSample(out, buf.Data[i*channels+ch], width)
		}
	}
	return out, nil
}

// DecodeSamples reshapes raw sox output back into an interleaved buffer.
// The Runner never learns the channel count of what sox produced, so the
// caller passes the layout it asked for.
func DecodeSamples(raw []byte, channels, bitDepth int) (*audio.IntBuffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channel count must be positive", ErrInvalidArgument)
	}
	width, err := sampleWidth(bitDepth)
	if err != nil {
		return nil, err
	}
	if len(raw)%(width*channels) != 0 {
		return nil, fmt.Errorf("%w: %d bytes do not divide into %d-channel frames of %d-bit samples",
			ErrInvalidArgument, len(raw), channels, bitDepth)
	}

	total := len(raw) / width
	frames := total / channels
	data := make([]int, total)
	for ch := 0; ch < channels; ch++ {
		for i := 0; i < frames; i++ {
			off := (ch*frames + i) * width
			data[i*channels+ch] = decodeSample(raw[off:off+width], width)
		}
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels},
		Data:           data,
		SourceBitDepth: bitDepth,
	}, nil
}

func sampleWidth(bitDepth int) (int, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return bitDepth / 8, nil
	default:
		return 0, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidArgument, bitDepth)
	}
}

func appendSample(dst []byte, v, width int) []byte {
	for i := 0; i < width; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst
}

func decodeSample(b []byte, width int) int {
	var v uint32
	for i := width - 1; i >= 0; i-- {
		v = v<<8 | uint32(b[i])
	}
	// sign-extend from the sample width
	shift := uint(32 - 8*width)
	return int(int32(v<<shift) >> shift)
}
