// Package mock provides mocks for graph collaborators and allows to execute
// resolution tests without touching files or audio devices.
package mock

import (
	"fmt"
	"os"

	"github.com/dudk/soundgraph/stream"
)

// Backend mocks a stream.Backend. Generators return plain recipes and
// every call is recorded.
type Backend struct {
	counter
	// Missing lists file paths that fail with os.ErrNotExist.
	Missing []string
	// ErrorOnCall is returned by every call if set.
	ErrorOnCall error
}

// Sine returns sine recipe.
func (m *Backend) Sine(frequency, sampleRate float64) (stream.Descriptor, error) {
	m.advance(fmt.Sprintf("sine(%v,%v)", frequency, sampleRate))
	if m.ErrorOnCall != nil {
		return stream.Descriptor{}, m.ErrorOnCall
	}
	return stream.New(stream.OpSine, nil,
		stream.Arg{Name: "frequency", Value: frequency},
		stream.Arg{Name: "rate", Value: sampleRate},
	), nil
}

// File returns file recipe unless path is listed as missing.
func (m *Backend) File(path string) (stream.Descriptor, error) {
	m.advance(fmt.Sprintf("file(%q)", path))
	if m.ErrorOnCall != nil {
		return stream.Descriptor{}, m.ErrorOnCall
	}
	for _, missing := range m.Missing {
		if missing == path {
			return stream.Descriptor{}, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
		}
	}
	return stream.New(stream.OpFile, nil, stream.Arg{Name: "path", Value: path}), nil
}

// Device mocks a device and records played descriptors.
type Device struct {
	Played      []stream.Descriptor
	ErrorOnCall error
}

// Play records descriptor.
func (m *Device) Play(d stream.Descriptor) error {
	if m.ErrorOnCall != nil {
		return m.ErrorOnCall
	}
	m.Played = append(m.Played, d)
	return nil
}

type counter struct {
	calls []string
}

func (c *counter) advance(call string) {
	c.calls = append(c.calls, call)
}

// Calls returns recorded calls in order.
func (c *counter) Calls() []string {
	return append([]string(nil), c.calls...)
}

// Count returns number of recorded calls.
func (c *counter) Count() int {
	return len(c.calls)
}

// Reset forgets recorded calls.
func (c *counter) Reset() {
	c.calls = nil
}
