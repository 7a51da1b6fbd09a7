package pitch

import "math"

// Base frequencies at octave 4, solfege names.
var freqs = map[string]float64{
	"Do": 261.63, "Re": 293.66, "Mi": 329.63, "Fa": 349.23,
	"Sol": 392.00, "La": 440.00, "Si": 493.88,
}

var names = []string{"Do", "Re", "Mi", "Fa", "Sol", "La", "Si"}

// Semitone offsets of the solfege degrees within an octave (major scale).
var semitones = map[string]int{
	"Do": 0, "Re": 2, "Mi": 4, "Fa": 5, "Sol": 7, "La": 9, "Si": 11,
}

// degreeForSemitone maps every chromatic semitone to the closest solfege
// degree the format can express. Importing MIDI is lossy for the 5
// accidentals; each one rounds down to its neighbor.
var degreeForSemitone = [12]string{
	"Do", "Do", "Re", "Re", "Mi", "Fa", "Fa", "Sol", "Sol", "La", "La", "Si",
}

// Names returns the solfege vocabulary in degree order.
func Names() []string {
	res := make([]string, len(names))
	copy(res, names)
	return res
}

// Index returns the position of a note name within the degree order, or -1.
func Index(note string) int {
	for i, name := range names {
		if name == note {
			return i
		}
	}
	return -1
}

// Frequency returns the pitch of a note in Hz, doubling per octave above 4.
// Unknown note names report !ok.
func Frequency(note string, octave int) (float64, bool) {
	base, ok := freqs[note]
	if !ok {
		return 0, false
	}
	return base * math.Pow(2, float64(octave-4)), true
}

// MidiKey converts a note to its MIDI key number (Do4 = C4 = 60). Keys
// outside 0..127 and unknown names report !ok.
func MidiKey(note string, octave int) (uint8, bool) {
	semitone, ok := semitones[note]
	if !ok {
		return 0, false
	}
	key := 12*(octave+1) + semitone
	if key < 0 || key > 127 {
		return 0, false
	}
	return uint8(key), true
}

// FromMidiKey converts a MIDI key back to the nearest solfege note.
func FromMidiKey(key uint8) (string, int) {
	return degreeForSemitone[key%12], int(key)/12 - 1
}
