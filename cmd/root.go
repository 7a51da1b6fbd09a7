package cmd

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HisarCS/MusicCo/constants"
	"github.com/HisarCS/MusicCo/table"
	"github.com/HisarCS/MusicCo/trackfile"
)

var rootCmd = &cobra.Command{
	Use:   "slideplay",
	Short: "SlidePlay track toolkit",
	Long:  `Parses SlidePlay note tracks and displays, renders, converts or shares them.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := trackArg(args)
		records, err := trackfile.Load(path)
		if err != nil {
			logrus.Fatal(err)
		}
		table.New(filepath.Base(path), records).Render(os.Stdout)
	},
}

// trackArg resolves the optional positional track path, defaulting to
// music.txt in the working directory.
func trackArg(args []string) string {
	if len(args) >= 1 {
		return args[0]
	}
	return constants.DefaultTrackFile
}

func Execute() {
	godotenv.Load()
	cobra.CheckErr(rootCmd.Execute())
}
