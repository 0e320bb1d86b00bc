package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dudk/soundgraph/mp3"
	"github.com/dudk/soundgraph/signal"
	"github.com/dudk/soundgraph/stream"
	"github.com/dudk/soundgraph/wav"
)

// relativePrefix marks paths relative to the base directory.
const relativePrefix = "//"

// clip is decoded file content attached to file descriptors.
type clip struct {
	floats     signal.Float64
	sampleRate int
}

// Backend creates generator descriptors which can be rendered by Renderer.
// Files are decoded when the descriptor is created, so missing or invalid
// files fail resolution.
type Backend struct {
	// BaseDir is used to resolve paths starting with "//".
	BaseDir string
}

// Sine returns an endless sine descriptor. Zero frequency is rendered as
// silence.
func (b *Backend) Sine(frequency, sampleRate float64) (stream.Descriptor, error) {
	if !(sampleRate > 0) {
		return stream.Descriptor{}, fmt.Errorf("%w: sample rate %v", ErrInvalidArg, sampleRate)
	}
	return stream.New(stream.OpSine, nil,
		stream.Arg{Name: "frequency", Value: frequency},
		stream.Arg{Name: "rate", Value: sampleRate},
	), nil
}

// File decodes the file and returns its descriptor. Format is defined by
// the file extension.
func (b *Backend) File(path string) (stream.Descriptor, error) {
	var (
		floats     signal.Float64
		sampleRate int
		err        error
	)
	fullPath := b.Path(path)
	switch ext := strings.ToLower(filepath.Ext(fullPath)); ext {
	case ".wav":
		floats, sampleRate, err = wav.Load(fullPath)
	case ".mp3":
		floats, sampleRate, err = mp3.Load(fullPath)
	default:
		return stream.Descriptor{}, fmt.Errorf("%w: %q", ErrUnsupportedFile, path)
	}
	if err != nil {
		return stream.Descriptor{}, err
	}
	return stream.New(stream.OpFile,
		clip{floats: floats, sampleRate: sampleRate},
		stream.Arg{Name: "path", Value: path},
	), nil
}

// Path returns the file system path. Paths starting with "//" are joined
// with base directory.
func (b *Backend) Path(path string) string {
	if strings.HasPrefix(path, relativePrefix) {
		return filepath.Join(b.BaseDir, strings.TrimPrefix(path, relativePrefix))
	}
	return path
}
