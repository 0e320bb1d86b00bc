// Package render turns stream descriptors into sound.
//
// Backend creates generator descriptors, Renderer interprets a complete
// recipe into a signal and Device writes rendered signals to an Output,
// e.g. a file or a sound card.
package render

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/dudk/soundgraph/signal"
	"github.com/dudk/soundgraph/stream"
)

var (
	// ErrInvalidArg is returned when operation argument is out of range.
	ErrInvalidArg = errors.New("invalid argument")
	// ErrUnsupportedFile is returned when file format is not supported.
	ErrUnsupportedFile = errors.New("unsupported file format")
	// ErrUnknownOp is returned when descriptor has unknown operation.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrNoSource is returned when file descriptor has no decoded data.
	ErrNoSource = errors.New("file descriptor has no source")
	// ErrEmpty is returned when zero descriptor is rendered.
	ErrEmpty = errors.New("empty descriptor")
)

const (
	// DefaultSampleRate is used when Renderer has no sample rate set.
	DefaultSampleRate = 44100
	// DefaultMaxDuration is used when Renderer has no max duration set.
	DefaultMaxDuration = 10 * time.Second

	// minQ is the lowest filter quality factor.
	minQ = 1e-3
	// minCutoff is the lowest filter cutoff relative to Nyquist frequency.
	minCutoff = 1e-4
)

// Renderer interprets descriptors offline. Endless signals, like sine or
// endless loops, are truncated at MaxDuration.
type Renderer struct {
	SampleRate  int
	MaxDuration time.Duration
}

// Render returns the signal described by d at renderer sample rate.
func (r *Renderer) Render(d stream.Descriptor) (signal.Float64, error) {
	if d.IsZero() {
		return nil, ErrEmpty
	}
	return r.render(d)
}

func (r *Renderer) sampleRate() int {
	if r.SampleRate <= 0 {
		return DefaultSampleRate
	}
	return r.SampleRate
}

func (r *Renderer) maxDuration() time.Duration {
	if r.MaxDuration <= 0 {
		return DefaultMaxDuration
	}
	return r.MaxDuration
}

func (r *Renderer) maxSamples() int {
	return signal.SamplesOf(r.sampleRate(), r.maxDuration().Seconds())
}

func (r *Renderer) render(d stream.Descriptor) (signal.Float64, error) {
	inputs := make([]signal.Float64, 0, len(d.Inputs()))
	for _, in := range d.Inputs() {
		s, err := r.render(in)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, s)
	}
	s, err := r.apply(d, inputs)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", d.Op(), err)
	}
	return s.Slice(0, r.maxSamples()), nil
}

func (r *Renderer) apply(d stream.Descriptor, in []signal.Float64) (signal.Float64, error) {
	rate, limit := r.sampleRate(), r.maxSamples()
	switch d.Op() {
	case stream.OpSine:
		return r.sine(d.Float("frequency"), d.Float("rate"))
	case stream.OpFile:
		c, ok := d.Source().(clip)
		if !ok {
			return nil, ErrNoSource
		}
		if c.sampleRate == rate || c.sampleRate <= 0 {
			return c.floats, nil
		}
		return c.floats.StretchLimit(float64(c.sampleRate)/float64(rate), limit), nil
	case stream.OpAccumulate:
		return accumulate(in[0], d.Bool("additive")), nil
	case stream.OpDelay:
		silence := signal.EmptyFloat64(in[0].NumChannels(), min(signal.SamplesOf(rate, d.Float("time")), limit))
		return silence.Append(in[0]), nil
	case stream.OpEnvelope:
		return envelope(in[0], rate,
			d.Float("attack"),
			d.Float("release"),
			d.Float("threshold"),
			d.Float("arthreshold"),
		), nil
	case stream.OpFadeIn:
		return fade(in[0], rate, d.Float("start"), d.Float("length"), false), nil
	case stream.OpFadeOut:
		return fade(in[0], rate, d.Float("start"), d.Float("length"), true), nil
	case stream.OpHighpass:
		return biquad(in[0], rate, d.Float("frequency"), d.Float("q"), true)
	case stream.OpLowpass:
		return biquad(in[0], rate, d.Float("frequency"), d.Float("q"), false)
	case stream.OpLimit:
		start := signal.SamplesOf(rate, d.Float("start"))
		end := signal.SamplesOf(rate, d.Float("end"))
		return in[0].Slice(start, end-start), nil
	case stream.OpLoop:
		return loop(in[0], d.Int("count"), limit), nil
	case stream.OpPitch:
		factor := d.Float("factor")
		if !(factor > 0) {
			return nil, fmt.Errorf("%w: factor %v", ErrInvalidArg, factor)
		}
		return in[0].StretchLimit(factor, limit), nil
	case stream.OpPingPong:
		return in[0].Append(in[0].Reverse()), nil
	case stream.OpReverse:
		return in[0].Reverse(), nil
	case stream.OpSquare:
		return square(in[0], d.Float("threshold")), nil
	case stream.OpVolume:
		result := in[0].Copy()
		for c := range result {
			floats.Scale(d.Float("level"), result[c])
		}
		return result, nil
	case stream.OpJoin:
		return in[0].Append(in[1]), nil
	case stream.OpMix:
		return mix(in[0], in[1]), nil
	}
	return nil, ErrUnknownOp
}

// sine generates mono sine sampled at its own rate, linearly interpolated
// to output rate. Zero frequency gives silence.
func (r *Renderer) sine(frequency, sampleRate float64) (signal.Float64, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("%w: sine(%v,%v)", ErrInvalidArg, frequency, sampleRate)
	}
	result := signal.EmptyFloat64(1, r.maxSamples())
	phase := 2 * math.Pi * frequency / sampleRate
	step := sampleRate / float64(r.sampleRate())
	for i := range result[0] {
		pos := float64(i) * step
		j := math.Floor(pos)
		frac := pos - j
		result[0][i] = math.Sin(phase*j)*(1-frac) + math.Sin(phase*(j+1))*frac
	}
	return result, nil
}

func accumulate(in signal.Float64, additive bool) signal.Float64 {
	result := signal.EmptyFloat64(in.NumChannels(), in.Size())
	for c := range in {
		var lastIn, out float64
		for i, v := range in[c] {
			diff := v - lastIn
			if additive {
				out += diff
			}
			if diff > 0 {
				out += diff
			}
			result[c][i] = out
			lastIn = v
		}
	}
	return result
}

// coefficient returns the decay factor which reaches threshold after
// seconds.
func coefficient(seconds float64, sampleRate int, threshold float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return math.Pow(threshold, 1/(seconds*float64(sampleRate)))
}

func envelope(in signal.Float64, sampleRate int, attack, release, threshold, arthreshold float64) signal.Float64 {
	a := coefficient(attack, sampleRate, arthreshold)
	r := coefficient(release, sampleRate, arthreshold)
	result := signal.EmptyFloat64(in.NumChannels(), in.Size())
	for c := range in {
		var out float64
		for i, v := range in[c] {
			v = math.Abs(v)
			if v < threshold {
				v = 0
			}
			k := r
			if v > out {
				k = a
			}
			out = k*(out-v) + v
			result[c][i] = out
		}
	}
	return result
}

func fade(in signal.Float64, sampleRate int, start, length float64, out bool) signal.Float64 {
	result := in.Copy()
	for c := range result {
		for i := range result[c] {
			t := float64(i) / float64(sampleRate)
			var gain float64
			switch {
			case t < start:
				gain = 0
			case t >= start+length:
				gain = 1
			default:
				gain = (t - start) / length
			}
			if out {
				gain = 1 - gain
			}
			result[c][i] *= gain
		}
	}
	return result
}

// biquad applies second order filter with coefficients from the audio EQ
// cookbook. Cutoff is clamped into the open band between zero and Nyquist, q is kept
// above minQ.
func biquad(in signal.Float64, sampleRate int, frequency, q float64, highpass bool) (signal.Float64, error) {
	if math.IsNaN(frequency) || math.IsNaN(q) {
		return nil, fmt.Errorf("%w: biquad(%v,%v)", ErrInvalidArg, frequency, q)
	}
	nyquist := float64(sampleRate) / 2
	frequency = math.Min(math.Max(frequency, minCutoff*nyquist), (1-minCutoff)*nyquist)
	q = math.Max(q, minQ)
	w0 := 2 * math.Pi * frequency / float64(sampleRate)
	cos := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	var b0, b1, b2 float64
	if highpass {
		b0, b1, b2 = (1+cos)/2, -(1 + cos), (1+cos)/2
	} else {
		b0, b1, b2 = (1-cos)/2, 1-cos, (1-cos)/2
	}
	a0, a1, a2 := 1+alpha, -2*cos, 1-alpha

	result := signal.EmptyFloat64(in.NumChannels(), in.Size())
	for c := range in {
		var x1, x2, y1, y2 float64
		for i, x := range in[c] {
			y := (b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2) / a0
			x2, x1 = x1, x
			y2, y1 = y1, y
			result[c][i] = y
		}
	}
	return result, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// loop plays signal count more times. Negative count repeats it until
// limit is reached.
func loop(in signal.Float64, count, limit int) signal.Float64 {
	if in.Size() == 0 {
		return in
	}
	times := count + 1
	if count < 0 {
		times = int(math.Ceil(float64(limit) / float64(in.Size())))
	}
	result := in
	for i := 1; i < times && result.Size() < limit; i++ {
		result = result.Append(in)
	}
	return result
}

func square(in signal.Float64, threshold float64) signal.Float64 {
	result := signal.EmptyFloat64(in.NumChannels(), in.Size())
	for c := range in {
		for i, v := range in[c] {
			switch {
			case v >= threshold:
				result[c][i] = 1
			case v <= -threshold:
				result[c][i] = -1
			}
		}
	}
	return result
}

// mix superposes signals. Result has length of the longest one.
func mix(a, b signal.Float64) signal.Float64 {
	numChannels := a.NumChannels()
	if b.NumChannels() > numChannels {
		numChannels = b.NumChannels()
	}
	size := a.Size()
	if b.Size() > size {
		size = b.Size()
	}
	result := signal.EmptyFloat64(numChannels, size)
	for _, s := range []signal.Float64{a.Upmix(numChannels), b.Upmix(numChannels)} {
		for c := range s {
			floats.Add(result[c][:len(s[c])], s[c])
		}
	}
	return result
}
