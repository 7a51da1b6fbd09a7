package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/HisarCS/MusicCo/model"
)

var columns = []string{"Note", "Octave", "Start Time", "Duration", "Volume"}

// Table is the in-memory tabular view of a parsed track: a fixed column set
// and one row per record, in parse order. It is display-only and never
// persisted.
type Table struct {
	Name    string
	Records []model.NoteRecord
}

func New(name string, records []model.NoteRecord) *Table {
	return &Table{Name: name, Records: records}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (t *Table) rows() [][]string {
	res := make([][]string, 0, len(t.Records))
	for _, rec := range t.Records {
		res = append(res, []string{
			rec.Note,
			strconv.Itoa(rec.Octave),
			formatFloat(rec.Start),
			formatFloat(rec.Duration),
			strconv.Itoa(rec.Volume),
		})
	}
	return res
}

// Render writes an aligned text rendering with a title line.
func (t *Table) Render(w io.Writer) {
	fmt.Fprintf(w, "Parsed Musical Notes from %v\n", t.Name)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, col := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
	for _, row := range t.rows() {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// WriteCSV exports the table with a header row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, row := range t.rows() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
