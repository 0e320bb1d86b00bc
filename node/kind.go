package node

import (
	"fmt"
	"strings"
)

// Kind is a closed set of node variants.
type Kind int

// Node kinds.
const (
	Sine Kind = iota
	File
	Output
	Accumulator
	Delay
	Envelope
	Fader
	Highpass
	Limit
	Loop
	Lowpass
	Pitch
	Square
	Volume
	PingPong
	Reverse
	Join
	Mix

	numKinds
)

// Class groups kinds by their sockets.
type Class int

const (
	// Generator has no inputs and one output.
	Generator Class = iota
	// Filter has one input and one output.
	Filter
	// Combinator has two ordered inputs and one output.
	Combinator
	// Sink has one input and no outputs.
	Sink
)

// Category is a menu section the kind belongs to.
type Category string

// Node categories.
const (
	CategoryIO       Category = "Input/Output"
	CategoryFilter   Category = "Filter"
	CategorySequence Category = "Sequence"
)

// Spec describes a kind: its sockets and parameters.
type Spec struct {
	Name     string
	Label    string
	Class    Class
	Category Category
	Inputs   []string
	Outputs  []string
	Params   []ParamDef
}

var (
	audio    = []string{"Audio"}
	twoAudio = []string{"in1", "in2"}

	frequencyDef = ParamDef{Name: "frequency", Label: "Frequency", Type: Float, Default: FloatValue(440), SoftMin: bound(20), SoftMax: bound(20000)}
	qDef         = ParamDef{Name: "q", Label: "Q Factor", Type: Float, Default: FloatValue(0.5), SoftMin: bound(0), SoftMax: bound(1)}
)

var specs = [numKinds]Spec{
	Sine: {
		Name: "sine", Label: "Sine", Class: Generator, Category: CategoryIO,
		Outputs: audio,
		Params: []ParamDef{
			frequencyDef,
			{Name: "sample_rate", Label: "Sample Rate", Type: Float, Default: FloatValue(44100), SoftMin: bound(11050), SoftMax: bound(192000)},
		},
	},
	File: {
		Name: "file", Label: "Sound File", Class: Generator, Category: CategoryIO,
		Outputs: audio,
		Params: []ParamDef{
			{Name: "path", Label: "File", Type: Path, Default: PathValue("//")},
		},
	},
	Output: {
		Name: "output", Label: "Speaker", Class: Sink, Category: CategoryIO,
		Inputs: audio,
	},
	Accumulator: {
		Name: "accumulator", Label: "Accumulator", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{
			{Name: "additive", Label: "Additive", Type: Bool, Default: BoolValue(false)},
		},
	},
	Delay: {
		Name: "delay", Label: "Delay", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{
			{Name: "time", Label: "Time", Type: Float, Default: FloatValue(0), Min: bound(0), SoftMax: bound(10)},
		},
	},
	Envelope: {
		Name: "envelope", Label: "Envelope", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{
			{Name: "attack", Label: "Attack", Type: Float, Default: FloatValue(0.005), Min: bound(0), SoftMax: bound(2)},
			{Name: "release", Label: "Release", Type: Float, Default: FloatValue(0.2), Min: bound(0), SoftMax: bound(5)},
			{Name: "threshold", Label: "Threshold", Type: Float, Default: FloatValue(0), Min: bound(0), SoftMax: bound(1)},
			{Name: "ar_threshold", Label: "A/R Threshold", Type: Float, Default: FloatValue(0.1), Min: bound(0), SoftMax: bound(1)},
		},
	},
	Fader: {
		Name: "fader", Label: "Fader", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{
			{Name: "start", Label: "Start", Type: Float, Default: FloatValue(0), SoftMin: bound(0)},
			{Name: "length", Label: "Length", Type: Float, Default: FloatValue(1), SoftMin: bound(0)},
			{Name: "invert", Label: "Invert", Type: Bool, Default: BoolValue(false)},
		},
	},
	Highpass: {
		Name: "highpass", Label: "Highpass", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{frequencyDef, qDef},
	},
	Limit: {
		Name: "limit", Label: "Limit", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{
			{Name: "start", Label: "Start", Type: Float, Default: FloatValue(0), SoftMin: bound(0)},
			{Name: "end", Label: "End", Type: Float, Default: FloatValue(1), SoftMin: bound(0)},
		},
	},
	Loop: {
		Name: "loop", Label: "Loop", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{
			{Name: "count", Label: "Loop", Type: Int, Default: IntValue(1), SoftMin: bound(0)},
		},
	},
	Lowpass: {
		Name: "lowpass", Label: "Lowpass", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{frequencyDef, qDef},
	},
	Pitch: {
		Name: "pitch", Label: "Pitch", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{
			{Name: "factor", Label: "Pitch", Type: Float, Default: FloatValue(1), SoftMin: bound(0.1), SoftMax: bound(4)},
		},
	},
	Square: {
		Name: "square", Label: "Square", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{
			{Name: "threshold", Label: "Threshold", Type: Float, Default: FloatValue(0), SoftMin: bound(0), SoftMax: bound(1)},
		},
	},
	Volume: {
		Name: "volume", Label: "Volume", Class: Filter, Category: CategoryFilter,
		Inputs: audio, Outputs: audio,
		Params: []ParamDef{
			{Name: "level", Label: "Volume", Type: Float, Default: FloatValue(1), SoftMin: bound(0), SoftMax: bound(1)},
		},
	},
	PingPong: {
		Name: "pingpong", Label: "PingPong", Class: Filter, Category: CategorySequence,
		Inputs: audio, Outputs: audio,
	},
	Reverse: {
		Name: "reverse", Label: "Reverse", Class: Filter, Category: CategorySequence,
		Inputs: audio, Outputs: audio,
	},
	Join: {
		Name: "join", Label: "Join", Class: Combinator, Category: CategorySequence,
		Inputs: twoAudio, Outputs: audio,
	},
	Mix: {
		Name: "mix", Label: "Mix", Class: Combinator, Category: CategorySequence,
		Inputs: twoAudio, Outputs: audio,
	},
}

// Kinds returns all kinds in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind returns kind by its name. Case is ignored.
func ParseKind(name string) (Kind, error) {
	for k := Kind(0); k < numKinds; k++ {
		if strings.EqualFold(specs[k].Name, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Valid reports if kind belongs to the known set.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Spec returns a copy of kind description.
func (k Kind) Spec() Spec {
	if !k.Valid() {
		return Spec{}
	}
	s := specs[k]
	s.Inputs = append([]string(nil), s.Inputs...)
	s.Outputs = append([]string(nil), s.Outputs...)
	s.Params = append([]ParamDef(nil), s.Params...)
	return s
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return specs[k].Name
}

func (c Class) String() string {
	switch c {
	case Generator:
		return "generator"
	case Filter:
		return "filter"
	case Combinator:
		return "combinator"
	case Sink:
		return "sink"
	}
	return "unknown"
}
