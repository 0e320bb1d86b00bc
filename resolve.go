package soundgraph

import (
	"fmt"

	"github.com/dudk/soundgraph/metric"
	"github.com/dudk/soundgraph/node"
	"github.com/dudk/soundgraph/stream"
)

// Resolve walks upstream links from node and composes its descriptor.
// Result is None if any required input along the way is not connected.
// Nothing is cached: every call walks the whole reachable subgraph, so
// parameter changes between calls are always picked up.
func (g *Graph) Resolve(id node.ID) (stream.Maybe, error) {
	n, err := g.Node(id)
	if err != nil {
		return stream.None(), err
	}
	return g.resolve(n, nil)
}

// resolve keeps the current path to detect cycles. Nodes shared by
// several downstream nodes are not cycles and are resolved each time.
func (g *Graph) resolve(n *node.Node, path []node.ID) (result stream.Maybe, err error) {
	for _, id := range path {
		if id == n.ID() {
			cycle := append(append([]node.ID(nil), path...), n.ID())
			return stream.None(), &CycleError{Path: cycle}
		}
	}
	path = append(path, n.ID())

	if g.metrics {
		measure := metric.Measure(n.Kind().String())
		defer func() {
			switch {
			case err != nil:
				measure(metric.Failed)
			case result.IsNone():
				measure(metric.Absent)
			default:
				measure(metric.Resolved)
			}
		}()
	}

	inputs := n.Inputs()
	upstream := make([]stream.Maybe, len(inputs))
	for i := range inputs {
		up, ok := g.FindUpstream(n.ID(), i)
		if !ok {
			upstream[i] = stream.None()
			continue
		}
		if upstream[i], err = g.resolve(up, path); err != nil {
			return stream.None(), err
		}
	}

	result, err = node.Combine(g.backend, n, upstream...)
	if err != nil {
		return stream.None(), &ResolveError{Node: n.ID(), Kind: n.Kind(), Err: err}
	}
	g.log.Debug(fmt.Sprintf("%v resolved %v: %v", g, n, result))
	return result, nil
}
