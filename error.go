package soundgraph

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dudk/soundgraph/node"
)

var (
	// ErrNodeNotFound is returned when graph has no node with such id.
	ErrNodeNotFound = errors.New("node not found")
	// ErrDuplicateNode is returned when node is added to graph twice.
	ErrDuplicateNode = errors.New("node already in graph")
	// ErrSocketNotFound is returned when node has no socket with such index.
	ErrSocketNotFound = errors.New("socket not found")
	// ErrLinkNotFound is returned when graph has no link with such id.
	ErrLinkNotFound = errors.New("link not found")
	// ErrCycle is returned when resolution meets a node it's already
	// resolving.
	ErrCycle = errors.New("cycle detected")
	// ErrNotSink is returned when playback is triggered on a node that is
	// not an output.
	ErrNotSink = errors.New("node is not a sink")
)

// ResolveError is returned when backend fails to build a node's descriptor.
type ResolveError struct {
	Node node.ID
	Kind node.Kind
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %v %v: %v", e.Kind, e.Node, e.Err)
}

// Unwrap returns backend error.
func (e *ResolveError) Unwrap() error {
	return e.Err
}

// CycleError is returned when links form a cycle. Path starts and ends with
// the same node.
type CycleError struct {
	Path []node.ID
}

func (e *CycleError) Error() string {
	s := make([]string, 0, len(e.Path))
	for _, id := range e.Path {
		s = append(s, string(id))
	}
	return fmt.Sprintf("%v: %s", ErrCycle, strings.Join(s, " <- "))
}

// Is checks if target is ErrCycle.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}
