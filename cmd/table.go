package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HisarCS/MusicCo/model"
	"github.com/HisarCS/MusicCo/table"
	"github.com/HisarCS/MusicCo/trackfile"
)

var tableCsvOut string
var tableWatch bool

func init() {
	tableCmd.Flags().StringVar(&tableCsvOut, "csv", "", "export the table as CSV to this path")
	tableCmd.Flags().BoolVar(&tableWatch, "watch", false, "re-render whenever the track file changes")
	rootCmd.AddCommand(tableCmd)
}

var tableCmd = &cobra.Command{
	Use:   "table [file]",
	Short: "Displays a track as a table",
	Long:  `Displays a track as a table`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := trackArg(args)
		records, err := trackfile.Load(path)
		if err != nil {
			logrus.Fatal(err)
		}
		showTable(path, records)

		if !tableWatch {
			return
		}
		err = trackfile.Watch(context.Background(), path, func(records []model.NoteRecord) {
			showTable(path, records)
		})
		if err != nil {
			logrus.Fatal(err)
		}
	},
}

func showTable(path string, records []model.NoteRecord) {
	tbl := table.New(filepath.Base(path), records)
	if tableCsvOut == "" {
		tbl.Render(os.Stdout)
		return
	}
	f, err := os.Create(tableCsvOut)
	if err != nil {
		logrus.Fatal(err)
	}
	defer f.Close()
	if err := tbl.WriteCSV(f); err != nil {
		logrus.Fatal(err)
	}
}
