package notation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/HisarCS/MusicCo/model"
)

// Token grammar: <NoteName><Octave>-<StartTime>-<Duration>-<Volume>, with an
// optional trailing -<Instrument> in the ensemble dialect. The note name is a
// run of non-digit characters and the octave a run of digits, glued together
// in the first field.
//
// NOTE: a negative start time or duration would collide with the field
// delimiter. The format assumes non-negative numbers and we deliberately
// don't guard against it.
var noteOctaveRe = regexp.MustCompile(`^([^0-9]+)([0-9]+)$`)

// TokenError reports the first malformed token of a parse. The whole parse
// fails, nothing is skipped.
type TokenError struct {
	Token  string
	Pos    int
	Reason string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("malformed token %q at position %v: %v", e.Token, e.Pos, e.Reason)
}

func parseToken(token string, pos int, ensemble bool) (model.NoteRecord, error) {
	var rec model.NoteRecord

	fields := strings.Split(token, "-")
	switch {
	case len(fields) == 4:
	case len(fields) == 5 && ensemble:
	default:
		return rec, &TokenError{Token: token, Pos: pos, Reason: "expected 4 '-'-delimited fields"}
	}

	m := noteOctaveRe.FindStringSubmatch(fields[0])
	if m == nil {
		return rec, &TokenError{Token: token, Pos: pos, Reason: "note+octave field must be a non-digit run followed by digits"}
	}
	rec.Note = m[1]
	octave, err := strconv.Atoi(m[2])
	if err != nil {
		return rec, &TokenError{Token: token, Pos: pos, Reason: "bad octave: " + err.Error()}
	}
	rec.Octave = octave

	rec.Start, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return rec, &TokenError{Token: token, Pos: pos, Reason: "bad start time: " + err.Error()}
	}
	rec.Duration, err = strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return rec, &TokenError{Token: token, Pos: pos, Reason: "bad duration: " + err.Error()}
	}
	rec.Volume, err = strconv.Atoi(fields[3])
	if err != nil {
		return rec, &TokenError{Token: token, Pos: pos, Reason: "bad volume: " + err.Error()}
	}

	if len(fields) == 5 {
		instrument, err := strconv.Atoi(fields[4])
		if err != nil {
			return rec, &TokenError{Token: token, Pos: pos, Reason: "bad instrument: " + err.Error()}
		}
		rec.Instrument = model.Instrument(instrument)
	}

	return rec, nil
}

func parse(text string, ensemble bool) ([]model.NoteRecord, error) {
	tokens := strings.Fields(text)
	records := make([]model.NoteRecord, 0, len(tokens))
	for i, token := range tokens {
		rec, err := parseToken(token, i, ensemble)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Parse reads whitespace-separated 4-field tokens into records, preserving
// input order. Note names are not checked against the solfege vocabulary.
// Empty or whitespace-only input yields an empty slice.
func Parse(text string) ([]model.NoteRecord, error) {
	return parse(text, false)
}

// ParseEnsemble is Parse plus the optional fifth instrument field. Tokens
// without one default to piano.
func ParseEnsemble(text string) ([]model.NoteRecord, error) {
	return parse(text, true)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatToken(rec model.NoteRecord, ensemble bool) string {
	token := rec.Note + strconv.Itoa(rec.Octave) +
		"-" + formatFloat(rec.Start) +
		"-" + formatFloat(rec.Duration) +
		"-" + strconv.Itoa(rec.Volume)
	if ensemble {
		token += "-" + strconv.Itoa(int(rec.Instrument))
	}
	return token
}

// Format renders records back to the wire format, space-joined, in the order
// given. Format(Parse(x)) == x for canonically formatted input.
func Format(records []model.NoteRecord) string {
	tokens := make([]string, 0, len(records))
	for _, rec := range records {
		tokens = append(tokens, formatToken(rec, false))
	}
	return strings.Join(tokens, " ")
}

// FormatEnsemble renders 5-field tokens including the instrument code.
func FormatEnsemble(records []model.NoteRecord) string {
	tokens := make([]string, 0, len(records))
	for _, rec := range records {
		tokens = append(tokens, formatToken(rec, true))
	}
	return strings.Join(tokens, " ")
}

// FormatAuto picks the narrowest dialect for the records: core tokens when
// every note is piano, ensemble tokens otherwise. Core output stays loadable
// by verbs that reject the fifth field.
func FormatAuto(records []model.NoteRecord) string {
	for _, rec := range records {
		if rec.Instrument != model.Piano {
			return FormatEnsemble(records)
		}
	}
	return Format(records)
}
