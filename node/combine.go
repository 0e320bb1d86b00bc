package node

import (
	"errors"
	"fmt"

	"github.com/dudk/soundgraph/stream"
)

// ErrUpstreamCount is returned when number of upstream results doesn't
// match number of node inputs.
var ErrUpstreamCount = errors.New("upstream count mismatch")

// Combine composes the node's descriptor from resolved upstream results,
// one per input socket in socket order. If any upstream is absent, the
// result is absent and backend is not called. Generators ignore upstream.
func Combine(b stream.Backend, n *Node, upstream ...stream.Maybe) (stream.Maybe, error) {
	spec := specs[n.kind]
	if len(upstream) != len(spec.Inputs) {
		return stream.None(), fmt.Errorf("%w: %v expects %d, got %d", ErrUpstreamCount, n.kind, len(spec.Inputs), len(upstream))
	}
	in := make([]stream.Descriptor, len(upstream))
	for i := range upstream {
		d, ok := upstream[i].Get()
		if !ok {
			return stream.None(), nil
		}
		in[i] = d
	}

	var (
		d   stream.Descriptor
		err error
	)
	switch n.kind {
	case Sine:
		d, err = b.Sine(n.float("frequency"), n.float("sample_rate"))
	case File:
		d, err = b.File(n.path("path"))
	case Output:
		d = in[0]
	case Accumulator:
		d = in[0].Accumulate(n.boolean("additive"))
	case Delay:
		d = in[0].Delay(n.float("time"))
	case Envelope:
		d = in[0].Envelope(n.float("attack"), n.float("release"), n.float("threshold"), n.float("ar_threshold"))
	case Fader:
		if n.boolean("invert") {
			d = in[0].FadeOut(n.float("start"), n.float("length"))
		} else {
			d = in[0].FadeIn(n.float("start"), n.float("length"))
		}
	case Highpass:
		d = in[0].Highpass(n.float("frequency"), n.float("q"))
	case Limit:
		d = in[0].Limit(n.float("start"), n.float("end"))
	case Loop:
		d = in[0].Loop(n.integer("count"))
	case Lowpass:
		d = in[0].Lowpass(n.float("frequency"), n.float("q"))
	case Pitch:
		d = in[0].Pitch(n.float("factor"))
	case Square:
		d = in[0].Square(n.float("threshold"))
	case Volume:
		d = in[0].Volume(n.float("level"))
	case PingPong:
		d = in[0].PingPong()
	case Reverse:
		d = in[0].Reverse()
	case Join:
		d = in[0].Join(in[1])
	case Mix:
		d = in[0].Mix(in[1])
	default:
		return stream.None(), fmt.Errorf("%w: %v", ErrUnknownKind, n.kind)
	}
	if err != nil {
		return stream.None(), err
	}
	return stream.Some(d), nil
}
