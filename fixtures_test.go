package sox

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// writeWavFixture writes a one-second 8kHz mono 16-bit PCM wav holding a
// 440Hz tone. A zero amplitude produces a silent file.
func writeWavFixture(t *testing.T, dir, name string, amplitude float64) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	const sampleRate = 8000
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, sampleRate),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = int(amplitude * 32767 * math.Sin(2*math.Pi*440*float64(i)/sampleRate))
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}
