package sox

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TestNormalizeArgs verifies canonical tool-name normalization
func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "inserted when absent",
			args: []string{"input.wav", "output.flac"},
			want: []string{"sox", "input.wav", "output.flac"},
		},
		{
			name: "case-insensitive match is canonicalized",
			args: []string{"SoX", "--version"},
			want: []string{"sox", "--version"},
		},
		{
			name: "already canonical",
			args: []string{"sox", "-h"},
			want: []string{"sox", "-h"},
		},
		{
			name: "empty argument list",
			args: nil,
			want: []string{"sox"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArgs("sox", tt.args))
		})
	}
}

// TestRun_LaunchFailure verifies the sentinel status when the binary
// cannot be started: no output, no error text, status 1.
func TestRun_LaunchFailure(t *testing.T) {
	r := NewRunner()
	r.Options.SoxPath = filepath.Join(t.TempDir(), "missing-sox")

	res := r.Run([]string{"--version"}, nil, true)

	assert.Equal(t, 1, res.Status)
	assert.Empty(t, res.Out)
	assert.Nil(t, res.Raw)
	assert.Empty(t, res.Stderr)
}

// TestRun_RejectsBadPayload verifies that an unserializable payload is
// reported through the same sentinel, before any process is launched
func TestRun_RejectsBadPayload(t *testing.T) {
	r := NewRunner()
	r.Options.SoxPath = filepath.Join(t.TempDir(), "missing-sox")

	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 0},
		Data:   []int{1, 2, 3},
	}
	res := r.Run([]string{"-"}, buf, false)

	assert.Equal(t, 1, res.Status)
	assert.Nil(t, res.Raw)
}

func TestPlay_LaunchFailure(t *testing.T) {
	r := NewRunner()
	r.Options.PlayPath = filepath.Join(t.TempDir(), "missing-play")

	assert.False(t, r.Play([]string{"input.wav"}))
}

func TestCheckSoxInstalled_NotFound(t *testing.T) {
	err := CheckSoxInstalled(filepath.Join(t.TempDir(), "missing-sox"))
	assert.Error(t, err)
}

// RunnerSuite exercises the full invocation paths against a real SoX
// install.
type RunnerSuite struct {
	suite.Suite
	tmpDir string
}

// SetupSuite runs once before all tests
func (s *RunnerSuite) SetupSuite() {
	if err := CheckSoxInstalled(""); err != nil {
		s.T().Skipf("SoX not installed, skipping tests: %v", err)
	}
}

// SetupTest runs before each test
func (s *RunnerSuite) SetupTest() {
	s.tmpDir = s.T().TempDir()
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

func (s *RunnerSuite) TestVersion() {
	before := GetMonitor().TotalInvocations()

	res := Run([]string{"--version"}, nil, true)
	require.Equal(s.T(), 0, res.Status)
	assert.NotEmpty(s.T(), res.Out)

	assert.Greater(s.T(), GetMonitor().TotalInvocations(), before)
}

// TestPayloadRoundTrip feeds a stereo buffer through a raw-to-raw copy
// and reshapes stdout back into samples.
func (s *RunnerSuite) TestPayloadRoundTrip() {
	const channels = 2
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: 8000},
		Data:           make([]int, 8000*channels),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = int(10000 * math.Sin(float64(i)/17))
	}

	format := AudioFormat{
		Type:       "raw",
		Encoding:   SIGNED_INTEGER,
		SampleRate: 8000,
		Channels:   channels,
		BitDepth:   16,
	}
	require.NoError(s.T(), format.Validate())

	args := append(format.BuildArgs(true), "-")
	args = append(args, format.BuildArgs(false)...)
	args = append(args, "-")

	res := Run(args, buf, false)
	require.Equal(s.T(), 0, res.Status, "stderr: %s", res.Stderr)

	out, err := DecodeSamples(res.Raw, channels, 16)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), buf.Data, out.Data)
}

func (s *RunnerSuite) TestInfo() {
	path := writeWavFixture(s.T(), s.tmpDir, "tone.wav", 0.6)

	info, err := Info(path)
	require.NoError(s.T(), err)

	assert.Equal(s.T(), 1, info.Channels)
	assert.Equal(s.T(), 8000.0, info.SampleRate)
	require.NotNil(s.T(), info.BitDepth)
	assert.Equal(s.T(), 16, *info.BitDepth)
	require.NotNil(s.T(), info.Duration)
	assert.InDelta(s.T(), 1.0, *info.Duration, 0.01)
	require.NotNil(s.T(), info.NumSamples)
	assert.Equal(s.T(), 8000, *info.NumSamples)
	require.NotNil(s.T(), info.Bitrate)
	assert.Greater(s.T(), *info.Bitrate, 0.0)
	assert.Contains(s.T(), info.Encoding, "PCM")
	assert.False(s.T(), info.Silent)
}

func (s *RunnerSuite) TestFileType() {
	path := writeWavFixture(s.T(), s.tmpDir, "tone.wav", 0.6)

	ft, err := FileType(path)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "wav", ft)
}

func (s *RunnerSuite) TestStat() {
	path := writeWavFixture(s.T(), s.tmpDir, "tone.wav", 0.6)

	stats, err := Stat(path)
	require.NoError(s.T(), err)

	mean, ok := stats["Mean    norm"]
	require.True(s.T(), ok, "stat report should include the padded mean norm label")
	require.NotNil(s.T(), mean)
	assert.Greater(s.T(), *mean, 0.0)

	samples, ok := stats["Samples read"]
	require.True(s.T(), ok)
	require.NotNil(s.T(), samples)
	assert.Equal(s.T(), 8000.0, *samples)
}

func (s *RunnerSuite) TestIsSilent() {
	silence := writeWavFixture(s.T(), s.tmpDir, "silence.wav", 0)
	tone := writeWavFixture(s.T(), s.tmpDir, "tone.wav", 0.6)

	got, err := IsSilent(silence, DefaultSilenceThreshold)
	require.NoError(s.T(), err)
	assert.True(s.T(), got)

	got, err = IsSilent(tone, DefaultSilenceThreshold)
	require.NoError(s.T(), err)
	assert.False(s.T(), got)
}

// TestSoxiFailure verifies the introspection path raises a typed error
// carrying the tool's exit code, unlike the general status-based path.
func (s *RunnerSuite) TestSoxiFailure() {
	bogus := filepath.Join(s.tmpDir, "bogus.wav")
	require.NoError(s.T(), os.WriteFile(bogus, []byte("not audio"), 0o644))

	_, err := Soxi(bogus, FieldChannels)

	var soxiErr *SoxiError
	require.ErrorAs(s.T(), err, &soxiErr)
	assert.NotZero(s.T(), soxiErr.ExitCode)
}

func (s *RunnerSuite) TestValidFormats() {
	assert.Contains(s.T(), ValidFormats(), "wav")
}
