// Package signal provides an API to manipulate digital signals. It allows to:
// 	- convert interleaved int data to non-interleaved floats and back
// 	- cut, join, reverse and resample non-interleaved signals
//	- match channel counts of signals
package signal

import (
	"math"
	"time"
)

// Float64 is a non-interleaved float64 signal.
type Float64 [][]float64

const (
	// BitDepth8 is 8 bit depth.
	BitDepth8 = BitDepth(8)
	// BitDepth16 is 16 bit depth.
	BitDepth16 = BitDepth(16)
	// BitDepth24 is 24 bit depth.
	BitDepth24 = BitDepth(24)
	// BitDepth32 is 32 bit depth.
	BitDepth32 = BitDepth(32)
)

// InterInt is an interleaved int signal.
type InterInt struct {
	Data        []int
	NumChannels int
	BitDepth
}

// BitDepth contains values required for int-to-float and backward conversion.
type BitDepth int

// scale returns max absolute int value for bit depth.
func (bitDepth BitDepth) scale() float64 {
	switch bitDepth {
	case BitDepth8:
		return math.MaxInt8
	case BitDepth16:
		return math.MaxInt16
	case BitDepth24:
		return 1<<23 - 1
	case BitDepth32:
		return math.MaxInt32
	default:
		return 1
	}
}

// DurationOf returns time duration of samples for this sample rate.
func DurationOf(sampleRate int, samples int) time.Duration {
	return time.Duration(float64(samples) / float64(sampleRate) * float64(time.Second))
}

// SamplesOf returns number of samples that last for seconds at this
// sample rate. Negative and NaN durations give zero, durations too long to
// count give math.MaxInt.
func SamplesOf(sampleRate int, seconds float64) int {
	if !(seconds > 0) {
		return 0
	}
	n := math.Round(seconds * float64(sampleRate))
	if n >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(n)
}

// AsFloat64 converts interleaved int signal to float64.
func (ints InterInt) AsFloat64() Float64 {
	if ints.Data == nil || ints.NumChannels == 0 {
		return nil
	}
	size := int(math.Ceil(float64(len(ints.Data)) / float64(ints.NumChannels)))
	floats := EmptyFloat64(ints.NumChannels, size)
	scale := ints.BitDepth.scale()
	for i, v := range ints.Data {
		floats[i%ints.NumChannels][i/ints.NumChannels] = float64(v) / scale
	}
	return floats
}

// AsInterInt converts float64 signal to interleaved int. Values are
// clipped to [-1, 1] before conversion.
func (floats Float64) AsInterInt(bitDepth BitDepth) []int {
	numChannels := floats.NumChannels()
	if numChannels == 0 {
		return nil
	}
	scale := bitDepth.scale()
	ints := make([]int, floats.Size()*numChannels)
	for c := range floats {
		for i, v := range floats[c] {
			ints[i*numChannels+c] = int(math.Max(-1, math.Min(1, v)) * scale)
		}
	}
	return ints
}

// AsInterFloat32 converts float64 signal to interleaved float32 as used by
// audio devices.
func (floats Float64) AsInterFloat32(out []float32) []float32 {
	numChannels := floats.NumChannels()
	size := floats.Size() * numChannels
	if cap(out) < size {
		out = make([]float32, size)
	}
	out = out[:size]
	for c := range floats {
		for i, v := range floats[c] {
			out[i*numChannels+c] = float32(v)
		}
	}
	return out
}

// EmptyFloat64 returns a silent signal of specified dimensions.
func EmptyFloat64(numChannels int, size int) Float64 {
	result := make([][]float64, numChannels)
	for i := range result {
		result[i] = make([]float64, size)
	}
	return result
}

// NumChannels returns number of channels in this signal.
func (floats Float64) NumChannels() int {
	return len(floats)
}

// Size returns number of samples per channel.
func (floats Float64) Size() int {
	if floats.NumChannels() == 0 {
		return 0
	}
	return len(floats[0])
}

// Copy returns a deep copy of signal.
func (floats Float64) Copy() Float64 {
	if floats == nil {
		return nil
	}
	result := make([][]float64, len(floats))
	for i := range floats {
		result[i] = append(make([]float64, 0, len(floats[i])), floats[i]...)
	}
	return result
}

// Append returns a new signal with source appended to this one. Channels
// are matched before appending.
func (floats Float64) Append(source Float64) Float64 {
	numChannels := max(floats.NumChannels(), source.NumChannels())
	a, b := floats.Upmix(numChannels), source.Upmix(numChannels)
	result := make([][]float64, numChannels)
	for i := range result {
		result[i] = make([]float64, 0, a.Size()+b.Size())
		result[i] = append(result[i], a[i]...)
		result[i] = append(result[i], b[i]...)
	}
	return result
}

// Slice creates a new copy of signal from start position with defined
// length. If signal doesn't have enough samples, shorter signal is
// returned.
//
// if start >= signal size, empty signal is returned
// if start < 0, it's treated as 0
func (floats Float64) Slice(start int, length int) Float64 {
	if floats == nil {
		return nil
	}
	if start < 0 {
		length += start
		start = 0
	}
	start = min(start, floats.Size())
	end := min(start+max(length, 0), floats.Size())
	result := make([][]float64, floats.NumChannels())
	for i := range floats {
		result[i] = append(make([]float64, 0, end-start), floats[i][start:end]...)
	}
	return result
}

// Reverse returns a new signal with samples in backward order.
func (floats Float64) Reverse() Float64 {
	result := floats.Copy()
	for c := range result {
		for i, j := 0, len(result[c])-1; i < j; i, j = i+1, j-1 {
			result[c][i], result[c][j] = result[c][j], result[c][i]
		}
	}
	return result
}

// Upmix returns a signal with numChannels channels. Mono signal is copied
// to every channel, missing channels of other signals are silent. Signal
// with more channels is returned as is.
func (floats Float64) Upmix(numChannels int) Float64 {
	if floats.NumChannels() >= numChannels {
		return floats
	}
	result := make([][]float64, numChannels)
	copy(result, floats)
	for c := floats.NumChannels(); c < numChannels; c++ {
		if floats.NumChannels() == 1 {
			result[c] = append([]float64(nil), floats[0]...)
		} else {
			result[c] = make([]float64, floats.Size())
		}
	}
	return result
}

// Resample returns signal converted from one sample rate to another with
// linear interpolation.
func (floats Float64) Resample(from, to int) Float64 {
	if from == to || from <= 0 || to <= 0 {
		return floats
	}
	return floats.Stretch(float64(from) / float64(to))
}

// Stretch reads the signal with step samples per output sample, using
// linear interpolation. Step above one shortens the signal.
func (floats Float64) Stretch(step float64) Float64 {
	return floats.StretchLimit(step, math.MaxInt)
}

// StretchLimit works like Stretch, but result has at most limit samples.
func (floats Float64) StretchLimit(step float64, limit int) Float64 {
	if !(step > 0) || floats.Size() == 0 || limit <= 0 {
		return EmptyFloat64(floats.NumChannels(), 0)
	}
	size := limit
	if n := float64(floats.Size()) / step; n < float64(limit) {
		size = int(n)
	}
	result := EmptyFloat64(floats.NumChannels(), size)
	last := floats.Size() - 1
	for c := range floats {
		for i := range result[c] {
			pos := float64(i) * step
			j := int(pos)
			if j >= last {
				result[c][i] = floats[c][last]
				continue
			}
			frac := pos - float64(j)
			result[c][i] = floats[c][j]*(1-frac) + floats[c][j+1]*frac
		}
	}
	return result
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
