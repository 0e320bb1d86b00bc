// Package node defines audio graph nodes: their kinds, sockets and
// parameters, and how each kind composes upstream stream descriptors.
package node

import (
	"errors"
	"fmt"

	"github.com/rs/xid"
)

var (
	// ErrUnknownKind is returned when kind name is not known or registered.
	ErrUnknownKind = errors.New("unknown node kind")
	// ErrUnknownParam is returned when node has no parameter with such name.
	ErrUnknownParam = errors.New("unknown parameter")
	// ErrParamType is returned when value doesn't fit parameter type.
	ErrParamType = errors.New("invalid parameter type")
)

// ID is an opaque node identifier.
type ID string

// NewID returns a new unique id.
func NewID() ID {
	return ID(xid.New().String())
}

// Socket is a connection point of node.
type Socket struct {
	Name  string
	Index int
}

// Node is a single-purpose unit of audio graph.
type Node struct {
	id     ID
	kind   Kind
	values []Value
}

// New returns a node of provided kind with default parameter values.
func New(kind Kind) (*Node, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	defs := specs[kind].Params
	n := &Node{
		id:     NewID(),
		kind:   kind,
		values: make([]Value, len(defs)),
	}
	for i := range defs {
		n.values[i] = defs[i].Default
	}
	return n, nil
}

// ID returns node id.
func (n *Node) ID() ID {
	return n.id
}

// Kind returns node kind.
func (n *Node) Kind() Kind {
	return n.kind
}

// Inputs returns ordered input sockets.
func (n *Node) Inputs() []Socket {
	return sockets(specs[n.kind].Inputs)
}

// Outputs returns ordered output sockets.
func (n *Node) Outputs() []Socket {
	return sockets(specs[n.kind].Outputs)
}

// Params returns parameter definitions.
func (n *Node) Params() []ParamDef {
	return append([]ParamDef(nil), specs[n.kind].Params...)
}

// Param returns current parameter value.
func (n *Node) Param(name string) (Value, error) {
	i, err := n.param(name)
	if err != nil {
		return Value{}, err
	}
	return n.values[i], nil
}

// Set assigns parameter value. Value is not clamped to bounds.
func (n *Node) Set(name string, v interface{}) error {
	i, err := n.param(name)
	if err != nil {
		return err
	}
	value, err := specs[n.kind].Params[i].Convert(v)
	if err != nil {
		return err
	}
	n.values[i] = value
	return nil
}

// Reset restores default parameter values.
func (n *Node) Reset() {
	for i, def := range specs[n.kind].Params {
		n.values[i] = def.Default
	}
}

func (n *Node) String() string {
	return fmt.Sprintf("%v %v", n.kind, n.id)
}

func (n *Node) param(name string) (int, error) {
	for i, def := range specs[n.kind].Params {
		if def.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %v has no %q", ErrUnknownParam, n.kind, name)
}

// float, integer, boolean and path read known parameters of the node's own
// kind, so lookup can't fail.
func (n *Node) float(name string) float64 {
	i, _ := n.param(name)
	return n.values[i].Float()
}

func (n *Node) integer(name string) int {
	i, _ := n.param(name)
	return n.values[i].Int()
}

func (n *Node) boolean(name string) bool {
	i, _ := n.param(name)
	return n.values[i].Bool()
}

func (n *Node) path(name string) string {
	i, _ := n.param(name)
	return n.values[i].Path()
}

func sockets(names []string) []Socket {
	result := make([]Socket, len(names))
	for i, name := range names {
		result[i] = Socket{Name: name, Index: i}
	}
	return result
}
