package model

type Instrument int

const (
	Piano Instrument = iota
	ElectroGuitar
)

func (i Instrument) String() string {
	switch i {
	case Piano:
		return "Piano"
	case ElectroGuitar:
		return "Electro Guitar"
	}
	return "Unknown"
}

// NoteRecord is one parsed token of a track file. Records are never
// mutated after parsing.
type NoteRecord struct {
	Note       string
	Octave     int
	Start      float64
	Duration   float64
	Volume     int
	Instrument Instrument
}

func (n NoteRecord) End() float64 {
	return n.Start + n.Duration
}
