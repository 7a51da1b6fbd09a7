package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/HisarCS/MusicCo/constants"
	"github.com/HisarCS/MusicCo/game"
	"github.com/HisarCS/MusicCo/model"
	"github.com/HisarCS/MusicCo/pitch"
	"github.com/HisarCS/MusicCo/trackfile"
)

var playPort int
var playSequential bool

func init() {
	playCmd.Flags().IntVar(&playPort, "port", 0, "MIDI out port number")
	playCmd.Flags().BoolVar(&playSequential, "sequential", false, "wait for each note to finish before the next")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Plays a track on a MIDI out port",
	Long:  `Plays a track on a MIDI out port`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := trackfile.LoadEnsemble(trackArg(args))
		if err != nil {
			logrus.Fatal(err)
		}
		defer midi.CloseDriver()
		if err := playRecords(records, playPort, playSequential, time.Now()); err != nil {
			logrus.Fatal(err)
		}
	},
}

func velocity(volume int) uint8 {
	vel := volume * 127 / 100
	if vel < 0 {
		vel = 0
	}
	if vel > 127 {
		vel = 127
	}
	return uint8(vel)
}

// playRecords walks the schedule against the wall clock from startAt and
// emits note on/off pairs. Sequential mode holds each note for its duration
// plus a small buffer before moving on, as the original player did.
func playRecords(records []model.NoteRecord, port int, sequential bool, startAt time.Time) error {
	out, err := midi.OutPort(port)
	if err != nil {
		return err
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return err
	}

	var lastEnd time.Duration
	for _, evt := range game.Schedule(records) {
		key, ok := pitch.MidiKey(evt.Note, evt.Octave)
		if !ok {
			logrus.Warnf("skipping unplayable note %v%v", evt.Note, evt.Octave)
			continue
		}
		ch := uint8(evt.Instrument)
		noteStart := time.Duration(evt.Start * float64(time.Second))
		noteLength := time.Duration(evt.Duration * float64(time.Second))

		if wait := time.Until(startAt.Add(noteStart)); wait > 0 {
			time.Sleep(wait)
		}
		if err := send(midi.NoteOn(ch, key, velocity(evt.Volume))); err != nil {
			return err
		}

		if sequential {
			time.Sleep(noteLength + time.Duration(constants.DurationBuffer*float64(time.Second)))
			if err := send(midi.NoteOff(ch, key)); err != nil {
				return err
			}
		} else {
			key := key
			time.AfterFunc(noteLength, func() {
				send(midi.NoteOff(ch, key))
			})
			if noteStart+noteLength > lastEnd {
				lastEnd = noteStart + noteLength
			}
		}
	}

	// let concurrent note offs drain
	if !sequential {
		if wait := time.Until(startAt.Add(lastEnd)); wait > 0 {
			time.Sleep(wait)
		}
		time.Sleep(time.Duration(constants.DurationBuffer * float64(time.Second)))
	}
	return nil
}
