package soundgraph

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/xid"

	"github.com/dudk/soundgraph/node"
	"github.com/dudk/soundgraph/stream"
)

// Logger is a global interface for graph loggers.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
}

// Graph owns nodes and links between them. It's not safe for concurrent
// use: editing and resolution are expected to happen in the same goroutine.
type Graph struct {
	uid      string
	name     string
	backend  stream.Backend
	registry *node.Registry
	metrics  bool

	nodes map[node.ID]*node.Node
	order []node.ID
	links []Link

	log Logger
}

// Option provides a way to set functional parameters to graph.
type Option func(g *Graph)

// New creates a new empty graph. Generators are built with provided backend.
func New(backend stream.Backend, options ...Option) *Graph {
	g := &Graph{
		uid:     xid.New().String(),
		backend: backend,
		nodes:   make(map[node.ID]*node.Node),
		log:     defaultLogger,
	}
	for _, option := range options {
		option(g)
	}
	if g.registry == nil {
		g.registry = node.Standard()
	}
	return g
}

// WithLogger sets logger to Graph. If this option is not provided, silent
// logger is used.
func WithLogger(logger Logger) Option {
	return func(g *Graph) {
		g.log = logger
	}
}

// WithName sets name to Graph.
func WithName(n string) Option {
	return func(g *Graph) {
		g.name = n
	}
}

// WithRegistry limits node kinds accepted by graph. If this option is not
// provided, all kinds are accepted.
func WithRegistry(r *node.Registry) Option {
	return func(g *Graph) {
		g.registry = r
	}
}

// WithMetrics enables resolution metrics.
func WithMetrics() Option {
	return func(g *Graph) {
		g.metrics = true
	}
}

// Add creates a node of registered kind and adds it to graph.
func (g *Graph) Add(kind string) (*node.Node, error) {
	n, err := g.registry.New(kind)
	if err != nil {
		return nil, err
	}
	g.insert(n)
	return n, nil
}

// AddNode adds existing node to graph.
func (g *Graph) AddNode(n *node.Node) error {
	if !g.registry.Has(n.Kind()) {
		return fmt.Errorf("%w: %v", node.ErrUnknownKind, n.Kind())
	}
	if _, ok := g.nodes[n.ID()]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateNode, n)
	}
	g.insert(n)
	return nil
}

func (g *Graph) insert(n *node.Node) {
	g.nodes[n.ID()] = n
	g.order = append(g.order, n.ID())
	g.log.Debug(fmt.Sprintf("%v added %v", g, n))
}

// Node returns node by id.
func (g *Graph) Node(id node.ID) (*node.Node, error) {
	if n, ok := g.nodes[id]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrNodeNotFound, id)
}

// Nodes returns nodes in order they were added.
func (g *Graph) Nodes() []*node.Node {
	nodes := make([]*node.Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Remove deletes node and all links connected to it.
func (g *Graph) Remove(id node.ID) error {
	if _, err := g.Node(id); err != nil {
		return err
	}
	delete(g.nodes, id)
	for i := range g.order {
		if g.order[i] == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	links := g.links[:0]
	for _, l := range g.links {
		if l.From.Node != id && l.To.Node != id {
			links = append(links, l)
		}
	}
	g.links = links
	g.log.Debug(fmt.Sprintf("%v removed %v", g, id))
	return nil
}

// SetParam assigns a node parameter value.
func (g *Graph) SetParam(id node.ID, name string, v interface{}) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	return n.Set(name, v)
}

// Dump returns human-readable state of graph.
func (g *Graph) Dump() string {
	type dumpNode struct {
		ID     node.ID
		Kind   string
		Params map[string]string
	}
	state := struct {
		Name  string
		Nodes []dumpNode
		Links []Link
	}{
		Name:  g.String(),
		Links: g.Links(),
	}
	for _, n := range g.Nodes() {
		params := make(map[string]string)
		for _, def := range n.Params() {
			v, _ := n.Param(def.Name)
			params[def.Name] = v.String()
		}
		state.Nodes = append(state.Nodes, dumpNode{ID: n.ID(), Kind: n.Kind().String(), Params: params})
	}
	return spew.Sdump(state)
}

// Convert graph to string. Name is included if has value.
func (g *Graph) String() string {
	if g.name == "" {
		return g.uid
	}
	return fmt.Sprintf("%v %v", g.name, g.uid)
}

type silentLogger struct{}

func (silentLogger) Debug(args ...interface{}) {}

func (silentLogger) Info(args ...interface{}) {}

var defaultLogger silentLogger
