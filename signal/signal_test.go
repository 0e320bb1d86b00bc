package signal_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/soundgraph/signal"
)

func TestInterIntsAsFloat64(t *testing.T) {
	tests := []struct {
		ints        []int
		numChannels int
		bitDepth    signal.BitDepth
		expected    signal.Float64
	}{
		{
			ints:        []int{1, 2, 1, 2, 1, 2, 1, 2},
			numChannels: 2,
			expected: signal.Float64{
				{1, 1, 1, 1},
				{2, 2, 2, 2},
			},
		},
		{
			ints:        []int{1, 2, 1, 2, 1},
			numChannels: 2,
			expected: signal.Float64{
				{1, 1, 1},
				{2, 2, 0},
			},
		},
		{
			ints:        []int{math.MaxInt16, -math.MaxInt16},
			numChannels: 2,
			expected: signal.Float64{
				{1},
				{-1},
			},
			bitDepth: signal.BitDepth16,
		},
		{
			ints:     nil,
			expected: nil,
		},
		{
			ints:     []int{1, 2, 3},
			expected: nil,
		},
	}

	for _, test := range tests {
		ints := signal.InterInt{
			Data:        test.ints,
			NumChannels: test.numChannels,
			BitDepth:    test.bitDepth,
		}
		assert.Equal(t, test.expected, ints.AsFloat64())
	}
}

func TestFloat64AsInterInt(t *testing.T) {
	tests := []struct {
		floats   signal.Float64
		bitDepth signal.BitDepth
		expected []int
	}{
		{
			floats: signal.Float64{
				{1, 0.5},
				{-1, 0},
			},
			bitDepth: signal.BitDepth16,
			expected: []int{math.MaxInt16, -math.MaxInt16, math.MaxInt16 / 2, 0},
		},
		{
			floats:   signal.Float64{{2, -2}},
			bitDepth: signal.BitDepth8,
			expected: []int{math.MaxInt8, -math.MaxInt8},
		},
		{
			floats:   nil,
			expected: nil,
		},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, test.floats.AsInterInt(test.bitDepth))
	}
}

func TestAsInterFloat32(t *testing.T) {
	floats := signal.Float64{{1, 2}, {3, 4}}
	assert.Equal(t, []float32{1, 3, 2, 4}, floats.AsInterFloat32(nil))

	buf := make([]float32, 0, 8)
	out := floats.AsInterFloat32(buf)
	assert.Equal(t, 4, len(out))
	assert.Equal(t, 8, cap(out))
}

func TestAppend(t *testing.T) {
	var s signal.Float64
	assert.Equal(t, 0, s.NumChannels())
	assert.Equal(t, 0, s.Size())

	s = s.Append(signal.Float64{{1, 2}})
	assert.Equal(t, signal.Float64{{1, 2}}, s)

	s = s.Append(signal.Float64{{3}, {4}})
	assert.Equal(t, signal.Float64{{1, 2, 3}, {1, 2, 4}}, s)
}

func TestSlice(t *testing.T) {
	var tests = []struct {
		in       signal.Float64
		start    int
		len      int
		expected signal.Float64
	}{
		{
			in:       signal.Float64{{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, {0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
			start:    1,
			len:      2,
			expected: signal.Float64{{1, 2}, {1, 2}},
		},
		{
			in:       signal.Float64{{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
			start:    7,
			len:      4,
			expected: signal.Float64{{7, 8, 9}},
		},
		{
			in:       signal.Float64{{0, 1, 2, 3}},
			start:    -1,
			len:      2,
			expected: signal.Float64{{0}},
		},
		{
			in:       signal.Float64{{0, 1, 2, 3}},
			start:    10,
			len:      2,
			expected: signal.Float64{{}},
		},
		{
			in:       nil,
			start:    1,
			len:      2,
			expected: nil,
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.in.Slice(test.start, test.len))
	}
}

func TestReverse(t *testing.T) {
	in := signal.Float64{{1, 2, 3}, {4, 5, 6}}
	assert.Equal(t, signal.Float64{{3, 2, 1}, {6, 5, 4}}, in.Reverse())
	assert.Equal(t, signal.Float64{{1, 2, 3}, {4, 5, 6}}, in)
}

func TestUpmix(t *testing.T) {
	assert.Equal(t, signal.Float64{{1, 2}, {1, 2}}, signal.Float64{{1, 2}}.Upmix(2))
	assert.Equal(t, signal.Float64{{1}, {2}, {0}}, signal.Float64{{1}, {2}}.Upmix(3))
	assert.Equal(t, signal.Float64{{1}, {2}}, signal.Float64{{1}, {2}}.Upmix(1))
}

func TestResample(t *testing.T) {
	in := signal.Float64{{0, 1, 2, 3}}
	assert.Equal(t, signal.Float64{{0, 0.5, 1, 1.5, 2, 2.5, 3, 3}}, in.Resample(1, 2))
	assert.Equal(t, signal.Float64{{0, 2}}, in.Resample(2, 1))
	assert.Equal(t, in, in.Resample(44100, 44100))
	assert.Equal(t, signal.Float64{{}}, in.Stretch(0))
	assert.Equal(t, signal.Float64{{}}, in.Stretch(math.NaN()))

	assert.Equal(t, signal.Float64{{0, 0.5, 1}}, in.StretchLimit(0.5, 3))
	assert.Equal(t, signal.Float64{{0, 2}}, in.StretchLimit(2, 100))
	stretched := in.StretchLimit(1e-15, 10)
	assert.Equal(t, 10, stretched.Size())
	assert.Equal(t, signal.Float64{{}}, in.StretchLimit(1, 0))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, time.Second, signal.DurationOf(44100, 44100))
	assert.Equal(t, 22050, signal.SamplesOf(44100, 0.5))
	assert.Equal(t, 0, signal.SamplesOf(44100, -1))
	assert.Equal(t, 0, signal.SamplesOf(44100, math.NaN()))
	assert.Equal(t, math.MaxInt, signal.SamplesOf(44100, 1e300))
	assert.Equal(t, math.MaxInt, signal.SamplesOf(44100, math.Inf(1)))
}
