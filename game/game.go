package game

import (
	"math"
	"sort"
	"sync"

	"github.com/HisarCS/MusicCo/constants"
	"github.com/HisarCS/MusicCo/model"
	"github.com/HisarCS/MusicCo/synth"
	"github.com/HisarCS/MusicCo/util"
)

// travelTime is how long a note takes to slide from the right edge to the
// threshold line.
const travelTime = float64(constants.Width-constants.ThresholdX) / constants.NoteSpeed

// TimedNote is one note of the practice timeline with its precomputed appear
// time and play state.
type TimedNote struct {
	model.NoteRecord
	AppearTime float64
	Played     bool
	Missed     bool
	Wrong      bool
}

// x returns the left edge of the note in pixels at a given time.
func (n *TimedNote) x(now float64) float64 {
	return constants.Width - (now-n.AppearTime)*constants.NoteSpeed
}

func (n *TimedNote) width() float64 {
	return n.Duration * constants.NoteSpeed
}

// Timeline holds a track prepared for practice play.
type Timeline struct {
	Notes []*TimedNote

	minOctave int
	maxOctave int
}

func NewTimeline(records []model.NoteRecord) *Timeline {
	t := &Timeline{minOctave: math.MaxInt, maxOctave: math.MinInt}
	for _, rec := range records {
		t.Notes = append(t.Notes, &TimedNote{
			NoteRecord: rec,
			AppearTime: rec.Start - travelTime,
		})
		t.minOctave = util.Min(t.minOctave, rec.Octave)
		t.maxOctave = util.Max(t.maxOctave, rec.Octave)
	}
	return t
}

// Visible returns the notes that have appeared by now, in input order.
func (t *Timeline) Visible(now float64) []*TimedNote {
	var res []*TimedNote
	for _, n := range t.Notes {
		if now >= n.AppearTime {
			res = append(res, n)
		}
	}
	return res
}

// Active returns the unplayed notes within the hit window of the threshold
// line, with their pixel distance from it.
func (t *Timeline) Active(now float64) []*TimedNote {
	var res []*TimedNote
	for _, n := range t.Visible(now) {
		if n.Played || n.Missed || n.Wrong {
			continue
		}
		if math.Abs(n.x(now)-constants.ThresholdX) <= constants.HitWindowPx {
			res = append(res, n)
		}
	}
	return res
}

// MarkMissed flags notes whose right edge slid past the threshold unplayed
// and returns how many were newly missed.
func (t *Timeline) MarkMissed(now float64) int {
	var missed int
	for _, n := range t.Visible(now) {
		if n.Played || n.Missed || n.Wrong {
			continue
		}
		if n.x(now)+n.width() < constants.ThresholdX-constants.HitWindowPx {
			n.Missed = true
			missed++
		}
	}
	return missed
}

// End returns when the last note stops sounding.
func (t *Timeline) End() float64 {
	var end float64
	for _, n := range t.Notes {
		end = math.Max(end, n.NoteRecord.End())
	}
	return end
}

// Pan returns the stereo position for a note of this timeline.
func (t *Timeline) Pan(rec model.NoteRecord) float64 {
	return synth.Pan(rec, t.minOctave, t.maxOctave)
}

// Tally is the running score of a practice session.
type Tally struct {
	Score    int
	MaxScore int
	Hits     int
	Missed   int
	Wrong    int
}

// Accuracy is the share of attempted and missed notes that were hit.
func (t Tally) Accuracy() float64 {
	total := t.Hits + t.Wrong + t.Missed
	if total == 0 {
		return 0
	}
	return float64(t.Hits) / float64(total)
}

func (t Tally) Grade() string {
	if t.MaxScore == 0 {
		return "F"
	}
	percent := 100 * float64(t.Score) / float64(t.MaxScore)
	switch {
	case percent >= 95:
		return "A+"
	case percent >= 90:
		return "A"
	case percent >= 80:
		return "B"
	case percent >= 70:
		return "C"
	case percent >= 60:
		return "D"
	}
	return "F"
}

// Hit resolves a played note name against the timeline: the nearest active
// note wins if its name matches. Octave is ignored on match for now.
// Reports the note that was judged, or nil when nothing was near the
// threshold.
func (t *Timeline) Hit(noteName string, now float64, tally *Tally) (*TimedNote, bool) {
	active := t.Active(now)
	if len(active) == 0 {
		tally.Wrong++
		return nil, false
	}

	closest := active[0]
	closestDist := math.Abs(closest.x(now) - constants.ThresholdX)
	for _, n := range active[1:] {
		if d := math.Abs(n.x(now) - constants.ThresholdX); d < closestDist {
			closest = n
			closestDist = d
		}
	}

	if closest.Note == noteName {
		closest.Played = true
		tally.Score++
		tally.Hits++
		return closest, true
	}
	closest.Wrong = true
	tally.Wrong++
	return closest, false
}

// Session scores a live practice run. Judgments arrive on listener
// goroutines while a clock loop marks misses, so every timeline and tally
// access goes through one lock.
type Session struct {
	mu       sync.Mutex
	timeline *Timeline
	tally    Tally
}

func NewSession(records []model.NoteRecord) *Session {
	return &Session{
		timeline: NewTimeline(records),
		tally:    Tally{MaxScore: len(records)},
	}
}

// Hit judges a played note name against the timeline.
func (s *Session) Hit(noteName string, now float64) (*TimedNote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.Hit(noteName, now, &s.tally)
}

// MarkMissed flags passed notes and folds them into the tally.
func (s *Session) MarkMissed(now float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	missed := s.timeline.MarkMissed(now)
	s.tally.Missed += missed
	return missed
}

func (s *Session) End() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.End()
}

func (s *Session) Tally() Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally
}

// PlayEvent is one scheduled note of a playback run.
type PlayEvent struct {
	model.NoteRecord
	Pan float64
}

// Schedule orders a track for playback by start time and assigns pans.
func Schedule(records []model.NoteRecord) []PlayEvent {
	minOctave, maxOctave := math.MaxInt, math.MinInt
	for _, rec := range records {
		minOctave = util.Min(minOctave, rec.Octave)
		maxOctave = util.Max(maxOctave, rec.Octave)
	}

	events := make([]PlayEvent, 0, len(records))
	for _, rec := range records {
		events = append(events, PlayEvent{
			NoteRecord: rec,
			Pan:        synth.Pan(rec, minOctave, maxOctave),
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
	return events
}
