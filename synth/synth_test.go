package synth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"

	"github.com/HisarCS/MusicCo/constants"
	"github.com/HisarCS/MusicCo/model"
)

func TestPianoWaveLengthAndEnvelope(t *testing.T) {
	wave := PianoWave(440, 0.5)

	assert := assert.New(t)
	assert.Equal(len(wave), constants.SampleRate/2)
	// envelope starts and ends at silence
	assert.Equal(wave[0], 0.0)
	assert.InDelta(wave[len(wave)-1], 0, 0.01)
}

func TestElectroGuitarWaveStaysInRange(t *testing.T) {
	wave := ElectroGuitarWave(220, 0.3)

	assert := assert.New(t)
	for _, s := range wave {
		// tanh clip bounds the wave, tremolo adds at most 10%
		assert.Less(s, 1.2)
		assert.Greater(s, -1.2)
	}
}

func TestErrorBuzzFadesOut(t *testing.T) {
	wave := ErrorBuzz(0.3)

	assert := assert.New(t)
	assert.Equal(len(wave), int(0.3*constants.SampleRate))
	assert.InDelta(wave[len(wave)-1], 0, 0.01)
}

func TestRenderTrackBufferShape(t *testing.T) {
	records := []model.NoteRecord{
		{Note: "Do", Octave: 4, Start: 0, Duration: 0.5, Volume: 100},
		{Note: "Sol", Octave: 4, Start: 0.5, Duration: 0.5, Volume: 100},
	}
	buf := RenderTrack(records)

	assert := assert.New(t)
	assert.Equal(buf.Format.SampleRate, constants.SampleRate)
	assert.Equal(buf.Format.NumChannels, 2)
	assert.Equal(buf.SourceBitDepth, 16)
	assert.Equal(len(buf.Data), constants.SampleRate*2)
}

func TestRenderTrackSkipsUnknownNotes(t *testing.T) {
	records := []model.NoteRecord{
		{Note: "Xy", Octave: 4, Start: 0, Duration: 0.5, Volume: 100},
	}
	buf := RenderTrack(records)

	assert := assert.New(t)
	for _, s := range buf.Data {
		assert.Equal(s, 0)
	}
}

func TestRenderTrackEmptyInput(t *testing.T) {
	buf := RenderTrack(nil)

	assert := assert.New(t)
	assert.Equal(len(buf.Data), 0)
}

func TestPanSpreadsByOctave(t *testing.T) {
	assert := assert.New(t)

	low := Pan(model.NoteRecord{Note: "Do", Octave: 2}, 2, 6)
	high := Pan(model.NoteRecord{Note: "Do", Octave: 6}, 2, 6)
	assert.InDelta(low, 0.1, 1e-9)
	assert.InDelta(high, 0.9, 1e-9)
}

func TestPanFallsBackToDegreeWhenOctaveRangeIsFlat(t *testing.T) {
	assert := assert.New(t)

	first := Pan(model.NoteRecord{Note: "Do", Octave: 4}, 4, 4)
	last := Pan(model.NoteRecord{Note: "Si", Octave: 4}, 4, 4)
	assert.InDelta(first, 0.1, 1e-9)
	assert.InDelta(last, 0.9, 1e-9)
}

func TestWriteWAVProducesValidFile(t *testing.T) {
	buf := RenderTrack([]model.NoteRecord{
		{Note: "La", Octave: 4, Start: 0, Duration: 0.1, Volume: 100},
	})

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	assert := assert.New(t)
	assert.Nil(WriteWAV(f, buf))
	assert.Nil(f.Close())

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	d := wav.NewDecoder(in)
	assert.True(d.IsValidFile())
}
