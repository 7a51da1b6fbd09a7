package cmd

import (
	"net/http"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HisarCS/MusicCo/constants"
	"github.com/HisarCS/MusicCo/db"
	"github.com/HisarCS/MusicCo/ensemble"
	"github.com/HisarCS/MusicCo/trackfile"
)

var serveAddr string
var serveMetadata bool

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from SLIDEPLAY_ADDR or :8080)")
	serveCmd.Flags().BoolVar(&serveMetadata, "metadata", false, "look up catalog metadata and include it in track responses")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Hosts a track for ensemble play",
	Long:  `Hosts a track for ensemble play. Joiners are dealt alternating parts and schedule against a shared start time.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := trackfile.LoadEnsemble(trackArg(args))
		if err != nil {
			logrus.Fatal(err)
		}

		addr := serveAddr
		if addr == "" {
			addr = constants.GetListenAddr()
		}
		server := ensemble.NewServer(records)
		if serveMetadata {
			filename := filepath.Base(trackArg(args))
			if meta, ok := db.GetTrackMetadatas([]string{filename})[filename]; ok {
				server.SetMetadata(meta)
			}
		}
		logrus.Infof("serving %v note(s) on %v", len(records), addr)
		logrus.Fatal(http.ListenAndServe(addr, server.Router()))
	},
}
