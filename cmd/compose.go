package cmd

import (
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HisarCS/MusicCo/compose"
	"github.com/HisarCS/MusicCo/constants"
	"github.com/HisarCS/MusicCo/model"
	"github.com/HisarCS/MusicCo/trackfile"
)

var composeFile string
var composeNote string
var composeOctave int
var composeLength int
var composePosition float64
var composeInstrument int
var composeRemoveLast bool

func init() {
	composeCmd.Flags().StringVarP(&composeFile, "file", "f", constants.DefaultComposeFile, "composition file to append to")
	composeCmd.Flags().StringVar(&composeNote, "note", "", "note name to add (Do..Si)")
	composeCmd.Flags().IntVar(&composeOctave, "octave", compose.DefaultOctave, "octave (clamped to 1..7)")
	composeCmd.Flags().IntVar(&composeLength, "length", 0, "length index into 0.5/1/2/4 seconds")
	composeCmd.Flags().Float64Var(&composePosition, "position", 0, "start position in seconds")
	composeCmd.Flags().IntVar(&composeInstrument, "instrument", 0, "instrument code (0 piano, 1 electro guitar)")
	composeCmd.Flags().BoolVar(&composeRemoveLast, "remove-last", false, "drop the last note instead of adding one")
	rootCmd.AddCommand(composeCmd)
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Adds a note to a composition file",
	Long:  `Adds a note to a composition file, nudging past collisions the way creation mode did.`,
	Run: func(cmd *cobra.Command, args []string) {
		existing, err := trackfile.Load(composeFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			logrus.Fatal(err)
		}
		builder := compose.NewBuilder(existing)

		if composeRemoveLast {
			if !builder.RemoveLast() {
				logrus.Fatal("nothing to remove")
			}
		} else {
			if composeNote == "" {
				logrus.Fatal("--note is required")
			}
			if composeLength < 0 || composeLength >= len(compose.NoteLengths) {
				logrus.Fatalf("--length must be 0..%v", len(compose.NoteLengths)-1)
			}
			pos := builder.AddNote(
				composeNote,
				composeOctave,
				compose.NoteLengths[composeLength],
				composePosition,
				model.Instrument(composeInstrument),
			)
			logrus.Infof("added %v%v at %vs", composeNote, composeOctave, pos)
		}

		if err := builder.Save(composeFile); err != nil {
			logrus.Fatal(err)
		}
	},
}
