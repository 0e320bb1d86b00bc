// Package mp3 loads and saves mp3 files.
package mp3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/viert/lame"

	"github.com/dudk/soundgraph/signal"
)

// decoded mp3 is always 16 bit stereo.
const numChannels = 2

// Load decodes the whole mp3 file.
func Load(path string) (signal.Float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("%v: %w", path, err)
	}
	data, err := ioutil.ReadAll(d)
	if err != nil {
		return nil, 0, fmt.Errorf("%v: %w", path, err)
	}
	ints := make([]int, len(data)/2)
	for i := range ints {
		ints[i] = int(int16(binary.LittleEndian.Uint16(data[i*2:])))
	}
	floats := signal.InterInt{
		Data:        ints,
		NumChannels: numChannels,
		BitDepth:    signal.BitDepth16,
	}.AsFloat64()
	return floats, d.SampleRate(), nil
}

// Sink encodes signals to mp3 file.
type Sink struct {
	Path    string
	BitRate int
	Quality int
}

// Write encodes signal to file, previous content is overwritten.
func (s *Sink) Write(floats signal.Float64, sampleRate int) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}

	// joint stereo encoding expects two channels
	floats = floats.Upmix(numChannels)
	wr := lame.NewWriter(f)
	wr.Encoder.SetBitrate(s.BitRate)
	wr.Encoder.SetQuality(s.Quality)
	wr.Encoder.SetNumChannels(numChannels)
	wr.Encoder.SetInSamplerate(sampleRate)
	wr.Encoder.SetMode(lame.JOINT_STEREO)
	wr.Encoder.SetVBR(lame.VBR_RH)
	wr.Encoder.InitParams()

	buf := new(bytes.Buffer)
	for _, v := range floats.AsInterInt(signal.BitDepth16) {
		if err := binary.Write(buf, binary.LittleEndian, int16(v)); err != nil {
			f.Close()
			return err
		}
	}
	if _, err := wr.Write(buf.Bytes()); err != nil {
		f.Close()
		return err
	}
	if err := wr.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
