package model

type JoinRequest struct {
	Name       string `json:"name"`
	Instrument *int   `json:"instrument,omitempty"`
}

type JoinResponse struct {
	SessionId  string `json:"session_id"`
	Instrument int    `json:"instrument"`
}

type TrackResponse struct {
	Notes      []NoteRecord   `json:"notes"`
	Instrument int            `json:"instrument"`
	Metadata   *TrackMetadata `json:"metadata,omitempty"`
}

type StartRequest struct {
	LeadIn float64 `json:"lead_in"`
}

type StatusResponse struct {
	Started  bool    `json:"started"`
	StartAt  float64 `json:"start_at"`
	Sessions int     `json:"sessions"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
