package ensemble

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/HisarCS/MusicCo/model"
)

// Server shares one ensemble-dialect track with remote players. The host
// plays piano; joiners get the guitar part first and then alternate. Clients
// poll /status and schedule playback against the shared start time.
type Server struct {
	mu       sync.Mutex
	records  []model.NoteRecord
	metadata *model.TrackMetadata
	sessions map[string]int
	joined   int
	started  bool
	startAt  time.Time
}

func NewServer(records []model.NoteRecord) *Server {
	return &Server{
		records:  records,
		sessions: make(map[string]int),
	}
}

// SetMetadata attaches catalog metadata to the hosted track. Track responses
// carry it when present.
func (s *Server) SetMetadata(meta model.TrackMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metadata = &meta
}

// Router wires the handlers behind CORS so browser clients can join too.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/join", s.HandleJoin).Methods("POST")
	router.HandleFunc("/track", s.HandleTrack).Methods("GET")
	router.HandleFunc("/start", s.HandleStart).Methods("POST")
	router.HandleFunc("/status", s.HandleStatus).Methods("GET")
	return cors.Default().Handler(router)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func (s *Server) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var input model.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode join request: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var instrument int
	if input.Instrument != nil {
		instrument = *input.Instrument
	} else if s.joined%2 == 0 {
		instrument = int(model.ElectroGuitar)
	} else {
		instrument = int(model.Piano)
	}
	s.joined++

	id := uuid.New().String()
	s.sessions[id] = instrument

	json.NewEncoder(w).Encode(model.JoinResponse{
		SessionId:  id,
		Instrument: instrument,
	})
}

func (s *Server) HandleTrack(w http.ResponseWriter, r *http.Request) {
	session := r.URL.Query().Get("session")

	s.mu.Lock()
	defer s.mu.Unlock()

	instrument, ok := s.sessions[session]
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown session: "+session)
		return
	}

	json.NewEncoder(w).Encode(model.TrackResponse{
		Notes:      s.records,
		Instrument: instrument,
		Metadata:   s.metadata,
	})
}

func (s *Server) HandleStart(w http.ResponseWriter, r *http.Request) {
	var input model.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode start request: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		writeError(w, http.StatusConflict, "Playback already started")
		return
	}
	s.started = true
	s.startAt = time.Now().Add(time.Duration(input.LeadIn * float64(time.Second)))

	json.NewEncoder(w).Encode(s.status())
}

func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	json.NewEncoder(w).Encode(s.status())
}

func (s *Server) status() model.StatusResponse {
	res := model.StatusResponse{
		Started:  s.started,
		Sessions: len(s.sessions),
	}
	if s.started {
		res.StartAt = float64(s.startAt.UnixMicro()) / 1e6
	}
	return res
}
