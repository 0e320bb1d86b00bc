package soundgraph

import (
	"fmt"

	"github.com/dudk/soundgraph/node"
	"github.com/dudk/soundgraph/stream"
)

// Device plays composed signals.
type Device interface {
	Play(stream.Descriptor) error
}

// Trigger resolves sink nodes and sends the result to device.
type Trigger struct {
	graph  *Graph
	device Device
	log    Logger
}

// NewTrigger returns a trigger for graph sinks. It uses the graph logger.
func NewTrigger(g *Graph, d Device) *Trigger {
	return &Trigger{
		graph:  g,
		device: d,
		log:    g.log,
	}
}

// Play resolves sink and plays the result. If there is nothing to play,
// it returns false and no error.
func (t *Trigger) Play(sink node.ID) (bool, error) {
	n, err := t.graph.Node(sink)
	if err != nil {
		return false, err
	}
	if n.Kind().Spec().Class != node.Sink {
		return false, fmt.Errorf("%w: %v", ErrNotSink, n)
	}
	result, err := t.graph.Resolve(sink)
	if err != nil {
		return false, err
	}
	d, ok := result.Get()
	if !ok {
		t.log.Info(fmt.Sprintf("%v: nothing to play", n))
		return false, nil
	}
	t.log.Info(fmt.Sprintf("%v: playing %v", n, d))
	if err := t.device.Play(d); err != nil {
		return false, fmt.Errorf("play %v: %w", n, err)
	}
	return true, nil
}

// PlayAll plays every sink, failed sinks don't stop the rest. It returns
// the number of sinks that had something to play.
func (t *Trigger) PlayAll(sinks ...node.ID) (int, error) {
	var (
		played int
		errs   playErrors
	)
	for _, sink := range sinks {
		ok, err := t.Play(sink)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			played++
		}
	}
	return played, errs.ret()
}
