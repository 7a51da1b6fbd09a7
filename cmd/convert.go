package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HisarCS/MusicCo/midifile"
	"github.com/HisarCS/MusicCo/notation"
)

var convertOut string

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output track path (default: stdout)")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.mid>",
	Short: "Converts a MIDI file to the track format",
	Long:  `Converts a MIDI file to the track format. Chromatic notes are rounded to the nearest solfege degree.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := midifile.ReadFile(args[0])
		if err != nil {
			logrus.Fatal(err)
		}

		text := notation.FormatAuto(midifile.Records(s))
		if convertOut == "" {
			fmt.Println(text)
			return
		}
		if err := os.WriteFile(convertOut, []byte(text), 0644); err != nil {
			logrus.Fatal(err)
		}
		logrus.Infof("wrote %v", convertOut)
	},
}
