package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/HisarCS/MusicCo/game"
	"github.com/HisarCS/MusicCo/model"
	"github.com/HisarCS/MusicCo/pitch"
	"github.com/HisarCS/MusicCo/trackfile"
)

var listenPort int

func init() {
	listenCmd.Flags().IntVar(&listenPort, "port", 0, "MIDI in port number")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen [file]",
	Short: "Scores live MIDI input against a track",
	Long:  `Scores live MIDI input against a track. Notes slide toward a threshold; hit the right name while a note is in the window.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := trackfile.Load(trackArg(args))
		if err != nil {
			logrus.Fatal(err)
		}
		if err := listenAndScore(records, listenPort); err != nil {
			logrus.Fatal(err)
		}
	},
}

func listenAndScore(records []model.NoteRecord, port int) error {
	defer midi.CloseDriver()
	in, err := midi.InPort(port)
	if err != nil {
		return err
	}

	session := game.NewSession(records)
	start := time.Now()

	// a chord burst arrives as several note starts within a few ms; judge
	// the burst as one attempt per distinct name
	var mu sync.Mutex
	pending := make(map[string]bool)
	debounced := debounce.New(50 * time.Millisecond)

	judge := func() {
		mu.Lock()
		names := make([]string, 0, len(pending))
		for name := range pending {
			names = append(names, name)
		}
		pending = make(map[string]bool)
		mu.Unlock()

		now := time.Since(start).Seconds()
		for _, name := range names {
			if hit, ok := session.Hit(name, now); ok {
				logrus.Infof("hit %v%v", hit.Note, hit.Octave)
			} else {
				logrus.Infof("wrong: %v", name)
			}
		}
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			name, _ := pitch.FromMidiKey(key)
			mu.Lock()
			pending[name] = true
			mu.Unlock()
			debounced(judge)
		default:
			// ignore
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	end := session.End()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Since(start).Seconds()
		if missed := session.MarkMissed(now); missed > 0 {
			logrus.Infof("missed %v note(s)", missed)
		}
		if now > end+1 {
			break
		}
	}

	tally := session.Tally()
	fmt.Printf("score: %v/%v\n", tally.Score, tally.MaxScore)
	fmt.Printf("hits: %v  missed: %v  wrong: %v\n", tally.Hits, tally.Missed, tally.Wrong)
	fmt.Printf("accuracy: %.0f%%\n", tally.Accuracy()*100)
	fmt.Printf("grade: %v\n", tally.Grade())
	return nil
}
