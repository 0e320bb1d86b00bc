package soundgraph

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/dudk/soundgraph/node"
)

// LinkID is an opaque link identifier.
type LinkID string

// Endpoint is a socket of a node.
type Endpoint struct {
	Node   node.ID
	Socket int
}

// Link connects an output socket of one node to an input socket of
// another.
type Link struct {
	ID   LinkID
	From Endpoint
	To   Endpoint
}

// Connect links output socket of from node to input socket of to node. An
// input has at most one producer, so existing link into the same input is
// replaced.
func (g *Graph) Connect(from node.ID, output int, to node.ID, input int) (Link, error) {
	src, err := g.Node(from)
	if err != nil {
		return Link{}, err
	}
	dst, err := g.Node(to)
	if err != nil {
		return Link{}, err
	}
	if output < 0 || output >= len(src.Outputs()) {
		return Link{}, fmt.Errorf("%w: %v has no output %d", ErrSocketNotFound, src, output)
	}
	if input < 0 || input >= len(dst.Inputs()) {
		return Link{}, fmt.Errorf("%w: %v has no input %d", ErrSocketNotFound, dst, input)
	}

	l := Link{
		ID:   LinkID(xid.New().String()),
		From: Endpoint{Node: from, Socket: output},
		To:   Endpoint{Node: to, Socket: input},
	}
	if i, ok := g.linkInto(to, input); ok {
		g.log.Debug(fmt.Sprintf("%v replaced link %v", g, g.links[i].ID))
		g.links[i] = l
	} else {
		g.links = append(g.links, l)
	}
	g.log.Debug(fmt.Sprintf("%v connected %v.%d -> %v.%d", g, from, output, to, input))
	return l, nil
}

// Disconnect removes the link into input socket of node. It returns false
// if input wasn't connected.
func (g *Graph) Disconnect(to node.ID, input int) bool {
	i, ok := g.linkInto(to, input)
	if !ok {
		return false
	}
	g.links = append(g.links[:i], g.links[i+1:]...)
	return true
}

// RemoveLink removes link by id.
func (g *Graph) RemoveLink(id LinkID) error {
	for i := range g.links {
		if g.links[i].ID == id {
			g.links = append(g.links[:i], g.links[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrLinkNotFound, id)
}

// Links returns a copy of graph links.
func (g *Graph) Links() []Link {
	return append([]Link(nil), g.links...)
}

// FindUpstream returns the node producing signal for input socket. It
// returns false if input is not connected.
func (g *Graph) FindUpstream(id node.ID, input int) (*node.Node, bool) {
	i, ok := g.linkInto(id, input)
	if !ok {
		return nil, false
	}
	n, ok := g.nodes[g.links[i].From.Node]
	return n, ok
}

func (g *Graph) linkInto(id node.ID, input int) (int, bool) {
	for i := range g.links {
		if g.links[i].To.Node == id && g.links[i].To.Socket == input {
			return i, true
		}
	}
	return 0, false
}
