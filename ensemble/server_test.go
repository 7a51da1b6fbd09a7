package ensemble

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HisarCS/MusicCo/model"
)

var testTrack = []model.NoteRecord{
	{Note: "Do", Octave: 4, Start: 0, Duration: 0.5, Volume: 100, Instrument: model.Piano},
	{Note: "Fa", Octave: 4, Start: 4, Duration: 0.5, Volume: 100, Instrument: model.ElectroGuitar},
}

func join(t *testing.T, s *Server, req model.JoinRequest) model.JoinResponse {
	t.Helper()
	body, _ := json.Marshal(req)
	r := httptest.NewRequest(http.MethodPost, "/join", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.HandleJoin(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("join failed with status %v", w.Code)
	}
	var res model.JoinResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	return res
}

func TestJoinAlternatesInstruments(t *testing.T) {
	s := NewServer(testTrack)

	first := join(t, s, model.JoinRequest{Name: "a"})
	second := join(t, s, model.JoinRequest{Name: "b"})
	third := join(t, s, model.JoinRequest{Name: "c"})

	assert := assert.New(t)
	assert.Equal(first.Instrument, int(model.ElectroGuitar))
	assert.Equal(second.Instrument, int(model.Piano))
	assert.Equal(third.Instrument, int(model.ElectroGuitar))
	assert.NotEqual(first.SessionId, second.SessionId)
}

func TestJoinHonorsRequestedInstrument(t *testing.T) {
	s := NewServer(testTrack)
	piano := int(model.Piano)

	res := join(t, s, model.JoinRequest{Name: "a", Instrument: &piano})

	assert := assert.New(t)
	assert.Equal(res.Instrument, piano)
}

func TestTrackReturnsNotesAndAssignment(t *testing.T) {
	s := NewServer(testTrack)
	joined := join(t, s, model.JoinRequest{Name: "a"})

	r := httptest.NewRequest(http.MethodGet, "/track?session="+joined.SessionId, nil)
	w := httptest.NewRecorder()
	s.HandleTrack(w, r)

	assert := assert.New(t)
	assert.Equal(w.Code, http.StatusOK)
	var res model.TrackResponse
	assert.Nil(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(len(res.Notes), 2)
	assert.Equal(res.Instrument, joined.Instrument)
}

func TestTrackCarriesCatalogMetadataWhenSet(t *testing.T) {
	s := NewServer(testTrack)
	s.SetMetadata(model.TrackMetadata{Title: "Twinkle", Author: "Trad.", Year: 1761})
	joined := join(t, s, model.JoinRequest{Name: "a"})

	r := httptest.NewRequest(http.MethodGet, "/track?session="+joined.SessionId, nil)
	w := httptest.NewRecorder()
	s.HandleTrack(w, r)

	assert := assert.New(t)
	var res model.TrackResponse
	assert.Nil(json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotNil(res.Metadata)
	assert.Equal(res.Metadata.Title, "Twinkle")
	assert.Equal(res.Metadata.Year, uint(1761))
}

func TestTrackOmitsMetadataWhenAbsent(t *testing.T) {
	s := NewServer(testTrack)
	joined := join(t, s, model.JoinRequest{Name: "a"})

	r := httptest.NewRequest(http.MethodGet, "/track?session="+joined.SessionId, nil)
	w := httptest.NewRecorder()
	s.HandleTrack(w, r)

	assert := assert.New(t)
	assert.NotContains(w.Body.String(), "metadata")
}

func TestTrackRejectsUnknownSession(t *testing.T) {
	s := NewServer(testTrack)

	r := httptest.NewRequest(http.MethodGet, "/track?session=nope", nil)
	w := httptest.NewRecorder()
	s.HandleTrack(w, r)

	assert := assert.New(t)
	assert.Equal(w.Code, http.StatusNotFound)
	var res model.ErrorResponse
	assert.Nil(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(res.Error, "Unknown session")
}

func TestStartIsOnlyAcceptedOnce(t *testing.T) {
	s := NewServer(testTrack)
	body, _ := json.Marshal(model.StartRequest{LeadIn: 1})

	r := httptest.NewRequest(http.MethodPost, "/start", bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.HandleStart(w, r)

	assert := assert.New(t)
	assert.Equal(w.Code, http.StatusOK)

	r = httptest.NewRequest(http.MethodPost, "/start", bytes.NewReader(body))
	w = httptest.NewRecorder()
	s.HandleStart(w, r)
	assert.Equal(w.Code, http.StatusConflict)
}

func TestStatusReflectsStart(t *testing.T) {
	s := NewServer(testTrack)
	join(t, s, model.JoinRequest{Name: "a"})

	r := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	s.HandleStatus(w, r)

	assert := assert.New(t)
	var status model.StatusResponse
	assert.Nil(json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(status.Started)
	assert.Equal(status.Sessions, 1)

	body, _ := json.Marshal(model.StartRequest{LeadIn: 2})
	r = httptest.NewRequest(http.MethodPost, "/start", bytes.NewReader(body))
	s.HandleStart(httptest.NewRecorder(), r)

	r = httptest.NewRequest(http.MethodGet, "/status", nil)
	w = httptest.NewRecorder()
	s.HandleStatus(w, r)
	assert.Nil(json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(status.Started)
	assert.Greater(status.StartAt, 0.0)
}

func TestOwnPartFiltersByInstrument(t *testing.T) {
	part := OwnPart(model.TrackResponse{
		Notes:      testTrack,
		Instrument: int(model.ElectroGuitar),
	})

	assert := assert.New(t)
	assert.Equal(len(part), 1)
	assert.Equal(part[0].Note, "Fa")
}
