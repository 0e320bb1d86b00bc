package render

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/dudk/soundgraph/signal"
	"github.com/dudk/soundgraph/stream"
)

func source(s signal.Float64, sampleRate int) stream.Descriptor {
	return stream.New(stream.OpFile,
		clip{floats: s, sampleRate: sampleRate},
		stream.Arg{Name: "path", Value: "memory"},
	)
}

func assertSignal(t *testing.T, expected, actual signal.Float64) {
	t.Helper()
	require.Equal(t, expected.NumChannels(), actual.NumChannels())
	for c := range expected {
		require.Equal(t, len(expected[c]), len(actual[c]), "channel %d: %v", c, actual[c])
		assert.InDeltaSlice(t, expected[c], actual[c], 1e-9, "channel %d", c)
	}
}

func TestRenderOps(t *testing.T) {
	ramp := source(signal.Float64{{1, 2, 3, 4}}, 4)
	ones := source(signal.Float64{{1, 1, 1, 1}}, 4)
	steps := source(signal.Float64{{1, 0, 2, 1}}, 4)
	tests := []struct {
		desc     stream.Descriptor
		expected signal.Float64
	}{
		{
			desc:     ramp,
			expected: signal.Float64{{1, 2, 3, 4}},
		},
		{
			desc:     ramp.Volume(0.5),
			expected: signal.Float64{{0.5, 1, 1.5, 2}},
		},
		{
			desc:     ramp.Delay(0.5),
			expected: signal.Float64{{0, 0, 1, 2, 3, 4}},
		},
		{
			desc:     ramp.Reverse(),
			expected: signal.Float64{{4, 3, 2, 1}},
		},
		{
			desc:     ramp.PingPong(),
			expected: signal.Float64{{1, 2, 3, 4, 4, 3, 2, 1}},
		},
		{
			desc:     ramp.Limit(0.25, 0.75),
			expected: signal.Float64{{2, 3}},
		},
		{
			desc:     ramp.Limit(1, 0.5),
			expected: signal.Float64{{}},
		},
		{
			desc:     ramp.Loop(0),
			expected: signal.Float64{{1, 2, 3, 4}},
		},
		{
			desc:     ramp.Loop(1),
			expected: signal.Float64{{1, 2, 3, 4, 1, 2, 3, 4}},
		},
		{
			desc:     ramp.Pitch(2),
			expected: signal.Float64{{1, 3}},
		},
		{
			desc:     ramp.Join(source(signal.Float64{{5}}, 4)),
			expected: signal.Float64{{1, 2, 3, 4, 5}},
		},
		{
			desc:     ramp.Mix(source(signal.Float64{{1}, {2}}, 4)),
			expected: signal.Float64{{2, 2, 3, 4}, {3, 2, 3, 4}},
		},
		{
			desc:     source(signal.Float64{{-1, -0.2, 0.2, 1}}, 4).Square(0.5),
			expected: signal.Float64{{-1, 0, 0, 1}},
		},
		{
			desc:     steps.Accumulate(false),
			expected: signal.Float64{{1, 1, 3, 3}},
		},
		{
			desc:     steps.Accumulate(true),
			expected: signal.Float64{{2, 1, 5, 4}},
		},
		{
			desc:     ones.FadeIn(0.25, 0.5),
			expected: signal.Float64{{0, 0, 0.5, 1}},
		},
		{
			desc:     ones.FadeOut(0.25, 0.5),
			expected: signal.Float64{{1, 1, 0.5, 0}},
		},
		{
			desc:     source(signal.Float64{{-1, 0.2, 0.6}}, 4).Envelope(0, 0, 0.5, 0.1),
			expected: signal.Float64{{1, 0, 0.6}},
		},
		{
			desc:     source(signal.Float64{{1, 3}}, 2),
			expected: signal.Float64{{1, 2, 3, 3}},
		},
	}

	r := &Renderer{SampleRate: 4, MaxDuration: 10 * time.Second}
	for _, test := range tests {
		result, err := r.Render(test.desc)
		require.NoError(t, err, test.desc.String())
		assertSignal(t, test.expected, result)
	}
}

func TestRenderTruncated(t *testing.T) {
	r := &Renderer{SampleRate: 100, MaxDuration: time.Second}
	endless := source(signal.Float64{{1, 2, 3}}, 100).Loop(-1)
	result, err := r.Render(endless)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Size())

	// endless signal never reaches the joined one
	result, err = r.Render(endless.Join(source(signal.Float64{{9}}, 100)))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Size())
	assert.Equal(t, 1.0, result[0][99])
}

func TestRenderSine(t *testing.T) {
	r := &Renderer{SampleRate: 100, MaxDuration: time.Second}
	result, err := r.Render(stream.New(stream.OpSine, nil,
		stream.Arg{Name: "frequency", Value: 25.0},
		stream.Arg{Name: "rate", Value: 100.0},
	))
	require.NoError(t, err)
	require.Equal(t, 1, result.NumChannels())
	require.Equal(t, 100, result.Size())
	assert.InDelta(t, 0, result[0][0], 1e-9)
	assert.InDelta(t, 1, result[0][1], 1e-9)
	assert.InDelta(t, 0, result[0][2], 1e-9)
	assert.InDelta(t, -1, result[0][3], 1e-9)

	// sine at lower rate is converted to output rate
	result, err = r.Render(stream.New(stream.OpSine, nil,
		stream.Arg{Name: "frequency", Value: 5.0},
		stream.Arg{Name: "rate", Value: 50.0},
	))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Size())
}

func TestRenderHugeArgs(t *testing.T) {
	r := &Renderer{SampleRate: 44100, MaxDuration: time.Second}
	tone := stream.New(stream.OpSine, nil,
		stream.Arg{Name: "frequency", Value: 440.0},
		stream.Arg{Name: "rate", Value: 44100.0},
	)
	tests := []stream.Descriptor{
		tone.Delay(1e12),
		tone.Delay(math.Inf(1)),
		tone.Pitch(1e-15),
		tone.Limit(0, 1e300),
		source(signal.Float64{{1, 2}}, 1).Pitch(1e-15),
		stream.New(stream.OpSine, nil,
			stream.Arg{Name: "frequency", Value: 440.0},
			stream.Arg{Name: "rate", Value: 1e15},
		),
	}
	for _, d := range tests {
		result, err := r.Render(d)
		require.NoError(t, err, d.String())
		assert.Equal(t, 44100, result.Size(), d.String())
	}

	result, err := r.Render(tone.Delay(1e12))
	require.NoError(t, err)
	assert.Zero(t, floats.Norm(result[0], 2))
}

func TestRenderSilentSine(t *testing.T) {
	r := &Renderer{SampleRate: 100, MaxDuration: time.Second}
	result, err := r.Render(stream.New(stream.OpSine, nil,
		stream.Arg{Name: "frequency", Value: 0.0},
		stream.Arg{Name: "rate", Value: 100.0},
	))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Size())
	assert.Zero(t, floats.Norm(result[0], 2))
}

func TestRenderFilterClamped(t *testing.T) {
	ramp := source(signal.Float64{{1, 2, 3, 4}}, 4)
	r := &Renderer{SampleRate: 4}
	for _, d := range []stream.Descriptor{
		ramp.Lowpass(1, 0),
		ramp.Lowpass(1, -1),
		ramp.Highpass(0, 0.707),
		ramp.Highpass(100, 0.707),
	} {
		result, err := r.Render(d)
		require.NoError(t, err, d.String())
		require.Equal(t, 4, result.Size())
		for _, v := range result[0] {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%v: %v", d, result[0])
		}
	}
}

func rms(s []float64) float64 {
	return floats.Norm(s, 2) / math.Sqrt(float64(len(s)))
}

func TestRenderFilters(t *testing.T) {
	r := &Renderer{SampleRate: 44100, MaxDuration: 100 * time.Millisecond}
	sine := func(frequency float64) stream.Descriptor {
		return stream.New(stream.OpSine, nil,
			stream.Arg{Name: "frequency", Value: frequency},
			stream.Arg{Name: "rate", Value: 44100.0},
		)
	}
	tests := []struct {
		raw      stream.Descriptor
		filtered stream.Descriptor
	}{
		{
			raw:      sine(5000),
			filtered: sine(5000).Lowpass(200, 0.707),
		},
		{
			raw:      sine(100),
			filtered: sine(100).Highpass(5000, 0.707),
		},
	}
	for _, test := range tests {
		raw, err := r.Render(test.raw)
		require.NoError(t, err)
		filtered, err := r.Render(test.filtered)
		require.NoError(t, err)
		assert.Equal(t, raw.Size(), filtered.Size())
		assert.Less(t, rms(filtered[0]), rms(raw[0])/10, test.filtered.String())
	}

	// pass band is kept
	raw, err := r.Render(sine(100))
	require.NoError(t, err)
	filtered, err := r.Render(sine(100).Lowpass(5000, 0.707))
	require.NoError(t, err)
	assert.InDelta(t, rms(raw[0]), rms(filtered[0]), 0.05)
}

func TestRenderErrors(t *testing.T) {
	ramp := source(signal.Float64{{1, 2, 3, 4}}, 4)
	tests := []struct {
		desc     stream.Descriptor
		expected error
	}{
		{
			desc:     stream.Descriptor{},
			expected: ErrEmpty,
		},
		{
			desc:     stream.New(stream.OpFile, nil),
			expected: ErrNoSource,
		},
		{
			desc:     stream.New("noise", nil),
			expected: ErrUnknownOp,
		},
		{
			desc:     ramp.Pitch(0),
			expected: ErrInvalidArg,
		},
		{
			desc:     ramp.Pitch(math.NaN()),
			expected: ErrInvalidArg,
		},
		{
			desc:     ramp.Lowpass(math.NaN(), 0.707),
			expected: ErrInvalidArg,
		},
		{
			desc:     stream.New(stream.OpSine, nil).Reverse(),
			expected: ErrInvalidArg,
		},
	}
	r := &Renderer{SampleRate: 4}
	for _, test := range tests {
		_, err := r.Render(test.desc)
		assert.True(t, errors.Is(err, test.expected), "%v: %v", test.desc, err)
	}
}
