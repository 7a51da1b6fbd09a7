package midifile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/HisarCS/MusicCo/constants"
	"github.com/HisarCS/MusicCo/model"
	"github.com/HisarCS/MusicCo/pitch"
)

const tempoBPM = 120

var clock = smf.MetricTicks(960)

func velocityFor(volume int) uint8 {
	vel := volume * 127 / 100
	if vel < 0 {
		vel = 0
	}
	if vel > 127 {
		vel = 127
	}
	return uint8(vel)
}

func ticksAt(seconds float64) uint32 {
	return clock.Ticks(tempoBPM, time.Duration(seconds*float64(time.Second)))
}

type timedMessage struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// Export builds a single-track SMF from records. The instrument code becomes
// the MIDI channel. Notes whose names fall outside the solfege vocabulary
// have no key number and are skipped.
func Export(records []model.NoteRecord) *smf.SMF {
	var events []timedMessage
	for _, rec := range records {
		key, ok := pitch.MidiKey(rec.Note, rec.Octave)
		if !ok {
			logrus.Warnf("skipping unexportable note %v%v", rec.Note, rec.Octave)
			continue
		}
		ch := uint8(rec.Instrument)
		events = append(events, timedMessage{
			tick: ticksAt(rec.Start),
			msg:  midi.NoteOn(ch, key, velocityFor(rec.Volume)),
		})
		events = append(events, timedMessage{
			tick: ticksAt(rec.End()),
			off:  true,
			msg:  midi.NoteOff(ch, key),
		})
	}

	// note offs first on ties so re-struck notes don't cancel themselves
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(tempoBPM))
	var prev uint32
	for _, evt := range events {
		tr.Add(evt.tick-prev, evt.msg)
		prev = evt.tick
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	s.Add(tr)
	return s
}

func WriteFile(path string, records []model.NoteRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create midi file... %s", err.Error())
	}
	defer f.Close()
	_, err = Export(records).WriteTo(f)
	return err
}

func ReadFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// the upstream reader panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		errText := fmt.Sprintf("Error reading midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		errText := fmt.Sprintf("Error parsing midi file... %s", err.Error())
		return &blank, errors.New(errText)
	}

	return res, nil
}

type openNote struct {
	start    float64
	velocity uint8
}

// Records walks all tracks and pairs note on/off events into records, mapping
// chromatic keys to the closest solfege degree. Unpaired note ons are closed
// with the minimum duration the format deals in.
func Records(s *smf.SMF) []model.NoteRecord {
	var records []model.NoteRecord
	open := make(map[[2]uint8]openNote)

	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			seconds := float64(s.TimeAt(absTicks)) / 1e6
			var channel uint8
			var key uint8
			var velocity uint8
			isOn := event.Message.GetNoteOn(&channel, &key, &velocity)
			isOff := event.Message.GetNoteOff(&channel, &key, &velocity)
			if isOn && velocity == 0 {
				// note on with zero velocity means note off
				isOn, isOff = false, true
			}
			id := [2]uint8{channel, key}
			switch {
			case isOn:
				if _, ok := open[id]; ok {
					logrus.Warnf("note double pressed: key=%v ch=%v", key, channel)
					continue
				}
				open[id] = openNote{start: seconds, velocity: velocity}
			case isOff:
				on, ok := open[id]
				if !ok {
					logrus.Warnf("note off for unpressed note: key=%v ch=%v", key, channel)
					continue
				}
				delete(open, id)
				records = append(records, recordFor(key, channel, on, seconds-on.start))
			}
		}

		for id, on := range open {
			logrus.Warnf("missing note off for note: key=%v ch=%v", id[1], id[0])
			records = append(records, recordFor(id[1], id[0], on, constants.DurationBuffer))
		}
		open = make(map[[2]uint8]openNote)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Start < records[j].Start
	})
	return records
}

func recordFor(key, channel uint8, on openNote, duration float64) model.NoteRecord {
	note, octave := pitch.FromMidiKey(key)
	instrument := model.Piano
	if channel == uint8(model.ElectroGuitar) {
		instrument = model.ElectroGuitar
	}
	return model.NoteRecord{
		Note:       note,
		Octave:     octave,
		Start:      on.start,
		Duration:   duration,
		Volume:     int(on.velocity) * 100 / 127,
		Instrument: instrument,
	}
}
