package ensemble

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/HisarCS/MusicCo/model"
)

// Client talks to a running ensemble server.
type Client struct {
	BaseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func decodeOrError(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var apiErr model.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server said: %v", apiErr.Error)
		}
		return fmt.Errorf("unexpected status %v", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Join(name string) (model.JoinResponse, error) {
	var res model.JoinResponse
	body, err := json.Marshal(model.JoinRequest{Name: name})
	if err != nil {
		return res, err
	}
	resp, err := c.http.Post(c.BaseURL+"/join", "application/json", bytes.NewReader(body))
	if err != nil {
		return res, errors.Wrap(err, "could not join ensemble")
	}
	return res, decodeOrError(resp, &res)
}

func (c *Client) Track(sessionId string) (model.TrackResponse, error) {
	var res model.TrackResponse
	resp, err := c.http.Get(c.BaseURL + "/track?session=" + sessionId)
	if err != nil {
		return res, errors.Wrap(err, "could not fetch track")
	}
	return res, decodeOrError(resp, &res)
}

func (c *Client) Start(leadIn float64) (model.StatusResponse, error) {
	var res model.StatusResponse
	body, err := json.Marshal(model.StartRequest{LeadIn: leadIn})
	if err != nil {
		return res, err
	}
	resp, err := c.http.Post(c.BaseURL+"/start", "application/json", bytes.NewReader(body))
	if err != nil {
		return res, errors.Wrap(err, "could not start playback")
	}
	return res, decodeOrError(resp, &res)
}

func (c *Client) Status() (model.StatusResponse, error) {
	var res model.StatusResponse
	resp, err := c.http.Get(c.BaseURL + "/status")
	if err != nil {
		return res, errors.Wrap(err, "could not fetch status")
	}
	return res, decodeOrError(resp, &res)
}

// WaitForStart polls /status until the host schedules playback, then returns
// the shared start time.
func (c *Client) WaitForStart(ctx context.Context, poll time.Duration) (time.Time, error) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		status, err := c.Status()
		if err != nil {
			return time.Time{}, err
		}
		if status.Started {
			sec := int64(status.StartAt)
			nsec := int64((status.StartAt - float64(sec)) * 1e9)
			return time.Unix(sec, nsec), nil
		}
		select {
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

// OwnPart filters a fetched track down to the caller's instrument.
func OwnPart(track model.TrackResponse) []model.NoteRecord {
	var res []model.NoteRecord
	for _, n := range track.Notes {
		if int(n.Instrument) == track.Instrument {
			res = append(res, n)
		}
	}
	return res
}
