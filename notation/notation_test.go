package notation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/HisarCS/MusicCo/model"
	"github.com/stretchr/testify/assert"
)

func TestParsesSingleToken(t *testing.T) {
	records, err := Parse("Do4-0.0-0.5-100")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(records, []model.NoteRecord{
		{Note: "Do", Octave: 4, Start: 0.0, Duration: 0.5, Volume: 100},
	})
}

func TestParsePreservesTokenOrder(t *testing.T) {
	records, err := Parse("Do4-0.0-0.5-100 Re4-0.5-0.5-100")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(len(records), 2)
	assert.Equal(records[0].Note, "Do")
	assert.Equal(records[1], model.NoteRecord{Note: "Re", Octave: 4, Start: 0.5, Duration: 0.5, Volume: 100})
}

func TestParseDoesNotValidateOctaveRange(t *testing.T) {
	records, err := Parse("Fa6-1.5-0.5-100")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(records[0].Note, "Fa")
	assert.Equal(records[0].Octave, 6)
}

func TestParseDoesNotValidateNoteNames(t *testing.T) {
	records, err := Parse("Xy3-0.0-1-50")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(records[0].Note, "Xy")
	assert.Equal(records[0].Octave, 3)
}

func TestEmptyInputYieldsEmptySequence(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t  \n"} {
		t.Run(fmt.Sprintf("input %q", input), func(t *testing.T) {
			records, err := Parse(input)
			assert := assert.New(t)
			assert.Nil(err)
			assert.Equal(len(records), 0)
		})
	}
}

func TestMalformedTokensFailTheWholeParse(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"no digit suffix", "DoX-0.0-0.5-100"},
		{"missing volume field", "Do4-0.0-0.5"},
		{"too many fields", "Do4-0.0-0.5-100-0"},
		{"digits only prefix", "44-0.0-0.5-100"},
		{"bad start time", "Do4-zero-0.5-100"},
		{"bad duration", "Do4-0.0-half-100"},
		{"bad volume", "Do4-0.0-0.5-loud"},
		{"good token then bad token", "Do4-0.0-0.5-100 DoX-0.5-0.5-100"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			records, err := Parse(c.input)

			assert := assert.New(t)
			assert.Nil(records)
			var tokenErr *TokenError
			assert.True(errors.As(err, &tokenErr))
		})
	}
}

func TestTokenErrorReportsPosition(t *testing.T) {
	_, err := Parse("Do4-0.0-0.5-100 DoX-0.5-0.5-100")

	assert := assert.New(t)
	var tokenErr *TokenError
	assert.True(errors.As(err, &tokenErr))
	assert.Equal(tokenErr.Pos, 1)
	assert.Equal(tokenErr.Token, "DoX-0.5-0.5-100")
}

func TestFormatParseRoundTrip(t *testing.T) {
	records := []model.NoteRecord{
		{Note: "Do", Octave: 4, Start: 0, Duration: 0.5, Volume: 100},
		{Note: "Sol", Octave: 5, Start: 1.5, Duration: 2, Volume: 80},
	}
	text := Format(records)

	parsed, err := Parse(text)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(parsed, records)
	assert.Equal(Format(parsed), text)
}

func TestEnsembleDialectParsesInstrument(t *testing.T) {
	records, err := ParseEnsemble("Do4-0.0-0.5-100-1")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(records[0].Instrument, model.ElectroGuitar)
}

func TestEnsembleDialectDefaultsToPiano(t *testing.T) {
	records, err := ParseEnsemble("Do4-0.0-0.5-100")

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(records[0].Instrument, model.Piano)
}

func TestEnsembleDialectFailsFastOnMalformedToken(t *testing.T) {
	_, err := ParseEnsemble("Do4-0.0-0.5-100-x")

	assert := assert.New(t)
	var tokenErr *TokenError
	assert.True(errors.As(err, &tokenErr))
}

func TestCoreParseRejectsEnsembleTokens(t *testing.T) {
	_, err := Parse("Do4-0.0-0.5-100-0")

	assert := assert.New(t)
	var tokenErr *TokenError
	assert.True(errors.As(err, &tokenErr))
}

func TestFormatEnsembleRoundTrip(t *testing.T) {
	records := []model.NoteRecord{
		{Note: "Do", Octave: 4, Start: 0, Duration: 0.5, Volume: 100, Instrument: model.Piano},
		{Note: "Fa", Octave: 4, Start: 4, Duration: 0.5, Volume: 100, Instrument: model.ElectroGuitar},
	}
	text := FormatEnsemble(records)

	parsed, err := ParseEnsemble(text)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(parsed, records)
}

func TestFormatAutoStaysCoreForAllPianoTracks(t *testing.T) {
	records := []model.NoteRecord{
		{Note: "Do", Octave: 4, Start: 0, Duration: 0.5, Volume: 100, Instrument: model.Piano},
		{Note: "Re", Octave: 4, Start: 0.5, Duration: 0.5, Volume: 100, Instrument: model.Piano},
	}
	text := FormatAuto(records)

	// the core dialect must accept the output
	parsed, err := Parse(text)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(parsed, records)
}

func TestFormatAutoWidensForMixedInstruments(t *testing.T) {
	records := []model.NoteRecord{
		{Note: "Do", Octave: 4, Start: 0, Duration: 0.5, Volume: 100, Instrument: model.Piano},
		{Note: "Fa", Octave: 4, Start: 4, Duration: 0.5, Volume: 100, Instrument: model.ElectroGuitar},
	}
	text := FormatAuto(records)

	assert := assert.New(t)
	assert.Equal(text, FormatEnsemble(records))
	parsed, err := ParseEnsemble(text)
	assert.Nil(err)
	assert.Equal(parsed, records)
}
