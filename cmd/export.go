package cmd

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HisarCS/MusicCo/midifile"
	"github.com/HisarCS/MusicCo/trackfile"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output MIDI path (default: track name with .mid)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Exports a track as a standard MIDI file",
	Long:  `Exports a track as a standard MIDI file`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := trackArg(args)
		records, err := trackfile.LoadEnsemble(path)
		if err != nil {
			logrus.Fatal(err)
		}

		out := exportOut
		if out == "" {
			out = strings.TrimSuffix(path, ".txt") + ".mid"
		}
		if err := midifile.WriteFile(out, records); err != nil {
			logrus.Fatal(err)
		}
		logrus.Infof("wrote %v", out)
	},
}
