// Package stream describes composed audio signals as immutable recipes.
//
// A Descriptor does not hold samples. It records which generator produced
// the signal and which transforms were applied on top of it. Every
// transform returns a new Descriptor and leaves the receiver untouched, so
// one descriptor can feed any number of downstream transforms.
package stream

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Op identifies the operation that produced a descriptor.
type Op string

// Generator operations.
const (
	OpSine Op = "sine"
	OpFile Op = "file"
)

// Transform operations.
const (
	OpAccumulate Op = "accumulate"
	OpDelay      Op = "delay"
	OpEnvelope   Op = "envelope"
	OpFadeIn     Op = "fadein"
	OpFadeOut    Op = "fadeout"
	OpHighpass   Op = "highpass"
	OpLimit      Op = "limit"
	OpLoop       Op = "loop"
	OpLowpass    Op = "lowpass"
	OpPitch      Op = "pitch"
	OpPingPong   Op = "pingpong"
	OpReverse    Op = "reverse"
	OpSquare     Op = "square"
	OpVolume     Op = "volume"
	OpJoin       Op = "join"
	OpMix        Op = "mix"
)

// Backend provides the generators every recipe starts from. Implementations
// may touch external resources, e.g. File reads and validates the file.
type Backend interface {
	Sine(frequency, sampleRate float64) (Descriptor, error)
	File(path string) (Descriptor, error)
}

// Arg is a named argument of an operation. Value is one of float64, int,
// bool or string.
type Arg struct {
	Name  string
	Value interface{}
}

// Descriptor is an immutable recipe of an audio signal.
// The zero value describes nothing and is only useful as a placeholder.
type Descriptor struct {
	r *recipe
}

type recipe struct {
	op     Op
	args   []Arg
	inputs []Descriptor
	source interface{}
}

// New returns a descriptor without inputs. Backends use it to create
// generator descriptors; source is an opaque payload for the renderer, e.g.
// decoded file data, and never takes part in comparison.
func New(op Op, source interface{}, args ...Arg) Descriptor {
	return Descriptor{r: &recipe{
		op:     op,
		args:   append([]Arg(nil), args...),
		source: source,
	}}
}

func (d Descriptor) derive(op Op, inputs []Descriptor, args ...Arg) Descriptor {
	return Descriptor{r: &recipe{
		op:     op,
		args:   args,
		inputs: inputs,
	}}
}

func (d Descriptor) unary(op Op, args ...Arg) Descriptor {
	return d.derive(op, []Descriptor{d}, args...)
}

// IsZero reports if descriptor is the zero value.
func (d Descriptor) IsZero() bool {
	return d.r == nil
}

// Op returns operation that produced this descriptor.
func (d Descriptor) Op() Op {
	if d.r == nil {
		return ""
	}
	return d.r.op
}

// Args returns a copy of operation arguments.
func (d Descriptor) Args() []Arg {
	if d.r == nil {
		return nil
	}
	return append([]Arg(nil), d.r.args...)
}

// Arg returns the value of named argument.
func (d Descriptor) Arg(name string) (interface{}, bool) {
	if d.r == nil {
		return nil, false
	}
	for _, a := range d.r.args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// Float returns float64 argument or 0 if it's not defined.
func (d Descriptor) Float(name string) float64 {
	v, _ := d.Arg(name)
	f, _ := v.(float64)
	return f
}

// Int returns int argument or 0 if it's not defined.
func (d Descriptor) Int(name string) int {
	v, _ := d.Arg(name)
	i, _ := v.(int)
	return i
}

// Bool returns bool argument or false if it's not defined.
func (d Descriptor) Bool(name string) bool {
	v, _ := d.Arg(name)
	b, _ := v.(bool)
	return b
}

// Inputs returns a copy of descriptors this one was derived from.
func (d Descriptor) Inputs() []Descriptor {
	if d.r == nil {
		return nil
	}
	return append([]Descriptor(nil), d.r.inputs...)
}

// Source returns the payload attached by the backend.
func (d Descriptor) Source() interface{} {
	if d.r == nil {
		return nil
	}
	return d.r.source
}

// Accumulate sums positive input differences. If additive, negative
// differences are added too and positive ones are doubled.
func (d Descriptor) Accumulate(additive bool) Descriptor {
	return d.unary(OpAccumulate, Arg{"additive", additive})
}

// Delay prepends time seconds of silence.
func (d Descriptor) Delay(time float64) Descriptor {
	return d.unary(OpDelay, Arg{"time", time})
}

// Envelope follows the signal envelope.
func (d Descriptor) Envelope(attack, release, threshold, arthreshold float64) Descriptor {
	return d.unary(OpEnvelope,
		Arg{"attack", attack},
		Arg{"release", release},
		Arg{"threshold", threshold},
		Arg{"arthreshold", arthreshold},
	)
}

// FadeIn fades the signal in from start over length seconds.
func (d Descriptor) FadeIn(start, length float64) Descriptor {
	return d.unary(OpFadeIn, Arg{"start", start}, Arg{"length", length})
}

// FadeOut fades the signal out from start over length seconds.
func (d Descriptor) FadeOut(start, length float64) Descriptor {
	return d.unary(OpFadeOut, Arg{"start", start}, Arg{"length", length})
}

// Highpass filters out frequencies below frequency.
func (d Descriptor) Highpass(frequency, q float64) Descriptor {
	return d.unary(OpHighpass, Arg{"frequency", frequency}, Arg{"q", q})
}

// Limit keeps the signal between start and end seconds.
func (d Descriptor) Limit(start, end float64) Descriptor {
	return d.unary(OpLimit, Arg{"start", start}, Arg{"end", end})
}

// Loop repeats the signal count more times. Negative count loops endlessly.
func (d Descriptor) Loop(count int) Descriptor {
	return d.unary(OpLoop, Arg{"count", count})
}

// Lowpass filters out frequencies above frequency.
func (d Descriptor) Lowpass(frequency, q float64) Descriptor {
	return d.unary(OpLowpass, Arg{"frequency", frequency}, Arg{"q", q})
}

// Pitch changes playback speed by factor.
func (d Descriptor) Pitch(factor float64) Descriptor {
	return d.unary(OpPitch, Arg{"factor", factor})
}

// PingPong plays the signal forward and then backward.
func (d Descriptor) PingPong() Descriptor {
	return d.unary(OpPingPong)
}

// Reverse plays the signal backward.
func (d Descriptor) Reverse() Descriptor {
	return d.unary(OpReverse)
}

// Square turns the signal into a square wave around threshold.
func (d Descriptor) Square(threshold float64) Descriptor {
	return d.unary(OpSquare, Arg{"threshold", threshold})
}

// Volume scales the signal by level.
func (d Descriptor) Volume(level float64) Descriptor {
	return d.unary(OpVolume, Arg{"level", level})
}

// Join plays next after this signal.
func (d Descriptor) Join(next Descriptor) Descriptor {
	return d.derive(OpJoin, []Descriptor{d, next})
}

// Mix superposes both signals.
func (d Descriptor) Mix(other Descriptor) Descriptor {
	return d.derive(OpMix, []Descriptor{d, other})
}

// String renders the recipe, e.g. volume(sine(440,44100),0.5).
func (d Descriptor) String() string {
	var b strings.Builder
	d.write(&b, false)
	return b.String()
}

// Equal reports if both descriptors have the same recipe.
func (d Descriptor) Equal(other Descriptor) bool {
	if d.r == other.r {
		return true
	}
	if d.r == nil || other.r == nil {
		return false
	}
	if d.r.op != other.r.op || len(d.r.args) != len(other.r.args) || len(d.r.inputs) != len(other.r.inputs) {
		return false
	}
	for i := range d.r.args {
		if !d.r.args[i].equal(other.r.args[i]) {
			return false
		}
	}
	for i := range d.r.inputs {
		if !d.r.inputs[i].Equal(other.r.inputs[i]) {
			return false
		}
	}
	return true
}

// Equivalent reports if both descriptors produce the same signal. Unlike
// Equal, operands of mix are compared regardless of their order.
func (d Descriptor) Equivalent(other Descriptor) bool {
	return d.canonical() == other.canonical()
}

// Diff returns unified diff of both recipes printed as trees. Empty string
// means recipes are the same.
func (d Descriptor) Diff(other Descriptor) string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(d.Tree()),
		B:        difflib.SplitLines(other.Tree()),
		FromFile: "a",
		ToFile:   "b",
		Context:  2,
	})
	return diff
}

// Tree renders the recipe one operation per line, inputs indented.
func (d Descriptor) Tree() string {
	var b strings.Builder
	d.tree(&b, 0)
	return b.String()
}

func (d Descriptor) tree(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if d.r == nil {
		b.WriteString("<nil>\n")
		return
	}
	b.WriteString(string(d.r.op))
	for _, a := range d.r.args {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString("=")
		b.WriteString(formatValue(a.Value))
	}
	b.WriteString("\n")
	for _, in := range d.r.inputs {
		in.tree(b, depth+1)
	}
}

func (d Descriptor) canonical() string {
	var b strings.Builder
	d.write(&b, true)
	return b.String()
}

func (d Descriptor) write(b *strings.Builder, canonical bool) {
	if d.r == nil {
		b.WriteString("<nil>")
		return
	}
	parts := make([]string, 0, len(d.r.inputs)+len(d.r.args))
	for _, in := range d.r.inputs {
		var ib strings.Builder
		in.write(&ib, canonical)
		parts = append(parts, ib.String())
	}
	if canonical && d.r.op == OpMix {
		sort.Strings(parts)
	}
	for _, a := range d.r.args {
		parts = append(parts, formatValue(a.Value))
	}
	b.WriteString(string(d.r.op))
	b.WriteString("(")
	b.WriteString(strings.Join(parts, ","))
	b.WriteString(")")
}

// equal compares floats bitwise, so NaN arguments are equal to
// themselves.
func (a Arg) equal(other Arg) bool {
	if a.Name != other.Name {
		return false
	}
	if f, ok := a.Value.(float64); ok {
		g, ok := other.Value.(float64)
		return ok && math.Float64bits(f) == math.Float64bits(g)
	}
	return a.Value == other.Value
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	}
	return "?"
}
