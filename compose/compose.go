package compose

import (
	"math"
	"sort"

	"github.com/HisarCS/MusicCo/model"
	"github.com/HisarCS/MusicCo/trackfile"
)

// NoteLengths are the selectable note durations, in seconds.
var NoteLengths = []float64{0.5, 1, 2, 4}

const PositionIncrement = 0.5
const DefaultOctave = 4
const DefaultVolume = 100
const MinOctave = 1
const MaxOctave = 7

// collisionWindow is how close two same-named notes may start before the new
// one gets nudged to the next position.
const collisionWindow = 0.1

// Builder accumulates notes for a new track.
type Builder struct {
	notes []model.NoteRecord
}

// NewBuilder seeds a builder with an existing composition.
func NewBuilder(records []model.NoteRecord) *Builder {
	b := &Builder{notes: make([]model.NoteRecord, len(records))}
	copy(b.notes, records)
	return b
}

func (b *Builder) Notes() []model.NoteRecord {
	res := make([]model.NoteRecord, len(b.notes))
	copy(res, b.notes)
	return res
}

func clampOctave(octave int) int {
	if octave < MinOctave {
		return MinOctave
	}
	if octave > MaxOctave {
		return MaxOctave
	}
	return octave
}

// AddNote places a note at the requested position, sliding it forward by the
// position increment while an identical note already sits within the
// collision window. Returns the position the note actually landed on.
func (b *Builder) AddNote(note string, octave int, duration float64, position float64, instrument model.Instrument) float64 {
	for b.collides(note, position) {
		position += PositionIncrement
	}
	b.notes = append(b.notes, model.NoteRecord{
		Note:       note,
		Octave:     clampOctave(octave),
		Start:      position,
		Duration:   duration,
		Volume:     DefaultVolume,
		Instrument: instrument,
	})
	return position
}

func (b *Builder) collides(note string, position float64) bool {
	for _, n := range b.notes {
		if n.Note == note && math.Abs(n.Start-position) < collisionWindow {
			return true
		}
	}
	return false
}

// RemoveLast drops the most recently added note, if any.
func (b *Builder) RemoveLast() bool {
	if len(b.notes) == 0 {
		return false
	}
	b.notes = b.notes[:len(b.notes)-1]
	return true
}

// Save writes the composition sorted by start time.
func (b *Builder) Save(path string) error {
	sorted := b.Notes()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return trackfile.Write(path, sorted)
}
