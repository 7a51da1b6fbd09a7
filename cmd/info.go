package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HisarCS/MusicCo/db"
	"github.com/HisarCS/MusicCo/trackfile"
	"github.com/HisarCS/MusicCo/util"
)

var infoMetadata bool

func init() {
	infoCmd.Flags().BoolVar(&infoMetadata, "metadata", false, "look up catalog metadata for the track")
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Summarizes a track",
	Long:  `Summarizes a track`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := trackArg(args)
		records, err := trackfile.Load(path)
		if err != nil {
			logrus.Fatal(err)
		}

		counts := make(map[string]int)
		var totalDuration float64
		var end float64
		minOctave, maxOctave := 0, 0
		durations := make([]float64, 0, len(records))
		for i, rec := range records {
			counts[rec.Note]++
			durations = append(durations, rec.Duration)
			if rec.End() > end {
				end = rec.End()
			}
			if i == 0 {
				minOctave, maxOctave = rec.Octave, rec.Octave
			}
			minOctave = util.Min(minOctave, rec.Octave)
			maxOctave = util.Max(maxOctave, rec.Octave)
		}
		totalDuration = util.Sum(durations)

		fmt.Printf("notes: %v\n", len(records))
		fmt.Printf("length: %vs\n", end)
		fmt.Printf("total note time: %vs\n", totalDuration)
		if len(records) > 0 {
			fmt.Printf("octaves: %v-%v\n", minOctave, maxOctave)
		}
		for _, name := range util.GetKeys(counts) {
			fmt.Printf("  %v: %v\n", name, counts[name])
		}

		if infoMetadata {
			filename := filepath.Base(path)
			for name, meta := range db.GetTrackMetadatas([]string{filename}) {
				fmt.Printf("metadata for %v: %q by %v (%v, %v)\n",
					name, meta.Title, meta.Author, meta.Release, meta.Year)
			}
		}
	},
}
