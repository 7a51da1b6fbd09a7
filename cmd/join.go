package cmd

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"

	"github.com/HisarCS/MusicCo/ensemble"
	"github.com/HisarCS/MusicCo/model"
)

var joinName string
var joinPort int
var joinSequential bool

func init() {
	joinCmd.Flags().StringVar(&joinName, "name", "", "player name to join as")
	joinCmd.Flags().IntVar(&joinPort, "port", 0, "MIDI out port number")
	joinCmd.Flags().BoolVar(&joinSequential, "sequential", false, "wait for each note to finish before the next")
	rootCmd.AddCommand(joinCmd)
}

var joinCmd = &cobra.Command{
	Use:   "join <url>",
	Short: "Joins an ensemble session and plays your part",
	Long:  `Joins an ensemble session, waits for the host to start, then plays only the part you were dealt.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := ensemble.NewClient(args[0])

		joined, err := client.Join(joinName)
		if err != nil {
			logrus.Fatal(err)
		}
		logrus.Infof("joined as session %v, playing %v", joined.SessionId, model.Instrument(joined.Instrument))

		track, err := client.Track(joined.SessionId)
		if err != nil {
			logrus.Fatal(err)
		}
		part := ensemble.OwnPart(track)
		logrus.Infof("our part has %v note(s), waiting for the host to start", len(part))

		startAt, err := client.WaitForStart(context.Background(), time.Second)
		if err != nil {
			logrus.Fatal(err)
		}

		defer midi.CloseDriver()
		if err := playRecords(part, joinPort, joinSequential, startAt); err != nil {
			logrus.Fatal(err)
		}
	},
}
