package mock_test

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dudk/soundgraph/mock"
)

func TestBackend(t *testing.T) {
	b := &mock.Backend{Missing: []string{"missing.wav"}}

	d, err := b.Sine(440, 44100)
	assert.Nil(t, err)
	assert.Equal(t, "sine(440,44100)", d.String())

	d, err = b.File("found.wav")
	assert.Nil(t, err)
	assert.Equal(t, `file("found.wav")`, d.String())

	_, err = b.File("missing.wav")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.Equal(t, 3, b.Count())
	assert.Equal(t, []string{"sine(440,44100)", `file("found.wav")`, `file("missing.wav")`}, b.Calls())
	b.Reset()
	assert.Equal(t, 0, b.Count())

	failure := errors.New("backend failure")
	b.ErrorOnCall = failure
	_, err = b.Sine(1, 1)
	assert.Equal(t, failure, err)
}

func TestDevice(t *testing.T) {
	b := &mock.Backend{}
	d, _ := b.Sine(220, 44100)

	dev := &mock.Device{}
	assert.Nil(t, dev.Play(d))
	assert.Len(t, dev.Played, 1)

	dev.ErrorOnCall = errors.New("device failure")
	assert.NotNil(t, dev.Play(d))
	assert.Len(t, dev.Played, 1)
}
