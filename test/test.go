// Package test contains helper functions useful for testing soundgraph
// packages. Audio assets are generated on the fly, so tests don't depend on
// binary files.
package test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/dudk/soundgraph/signal"
	"github.com/dudk/soundgraph/wav"
)

// Sine returns a mono sine signal.
func Sine(frequency float64, sampleRate, samples int) signal.Float64 {
	floats := signal.EmptyFloat64(1, samples)
	for i := range floats[0] {
		floats[0][i] = math.Sin(2 * math.Pi * frequency * float64(i) / float64(sampleRate))
	}
	return floats
}

// WriteWav saves signal to a 16 bit wav file in a temporary directory and
// returns its path.
func WriteWav(t testing.TB, name string, floats signal.Float64, sampleRate int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	sink := &wav.Sink{Path: path, BitDepth: signal.BitDepth16}
	if err := sink.Write(floats, sampleRate); err != nil {
		t.Fatalf("failed to write %v: %v", path, err)
	}
	return path
}
