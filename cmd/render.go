package cmd

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HisarCS/MusicCo/synth"
	"github.com/HisarCS/MusicCo/trackfile"
)

var renderOut string

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output WAV path (default: track name with .wav)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Renders a track to a WAV file",
	Long:  `Renders a track to a WAV file`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := trackArg(args)
		records, err := trackfile.LoadEnsemble(path)
		if err != nil {
			logrus.Fatal(err)
		}

		out := renderOut
		if out == "" {
			out = strings.TrimSuffix(path, ".txt") + ".wav"
		}
		f, err := os.Create(out)
		if err != nil {
			logrus.Fatal(err)
		}
		defer f.Close()

		if err := synth.WriteWAV(f, synth.RenderTrack(records)); err != nil {
			logrus.Fatal(err)
		}
		logrus.Infof("wrote %v", out)
	},
}
