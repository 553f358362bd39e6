package meetings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const googleEventsURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"

// GoogleMeetClient provisions meetings by creating a calendar event with an
// attached Meet conference. Join and start links are the same URL.
type GoogleMeetClient struct {
	APIKey     string
	EventsURL  string
	HTTPClient *http.Client
}

func NewGoogleMeetClient(apiKey string) *GoogleMeetClient {
	return &GoogleMeetClient{
		APIKey:     apiKey,
		EventsURL:  googleEventsURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type googleEventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

type googleConferenceRequest struct {
	RequestID             string `json:"requestId"`
	ConferenceSolutionKey struct {
		Type string `json:"type"`
	} `json:"conferenceSolutionKey"`
}

type googleEventRequest struct {
	Summary        string          `json:"summary"`
	Description    string          `json:"description"`
	Start          googleEventTime `json:"start"`
	End            googleEventTime `json:"end"`
	ConferenceData struct {
		CreateRequest googleConferenceRequest `json:"createRequest"`
	} `json:"conferenceData"`
}

type googleEventResponse struct {
	ID             string `json:"id"`
	HangoutLink    string `json:"hangoutLink"`
	ConferenceData struct {
		EntryPoints []struct {
			EntryPointType string `json:"entryPointType"`
			URI            string `json:"uri"`
		} `json:"entryPoints"`
	} `json:"conferenceData"`
}

func (c *GoogleMeetClient) CreateMeeting(ctx context.Context, req MeetingRequest) (*Meeting, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("google api key not configured")
	}

	topic := req.Topic
	if topic == "" {
		topic = "Mentorship Session"
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 60
	}
	start := req.StartTime.UTC()
	end := start.Add(time.Duration(duration) * time.Minute)

	payload := googleEventRequest{
		Summary:     topic,
		Description: "Mentorship session",
		Start:       googleEventTime{DateTime: start.Format(time.RFC3339), TimeZone: "UTC"},
		End:         googleEventTime{DateTime: end.Format(time.RFC3339), TimeZone: "UTC"},
	}
	payload.ConferenceData.CreateRequest.RequestID = "mentorhub-" + uuid.NewString()
	payload.ConferenceData.CreateRequest.ConferenceSolutionKey.Type = "hangoutsMeet"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.EventsURL+"?conferenceDataVersion=1&key="+c.APIKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create google meet: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("create google meet: status %d", resp.StatusCode)
	}
	var event googleEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		return nil, fmt.Errorf("decode google event response: %w", err)
	}

	link := event.HangoutLink
	for _, entry := range event.ConferenceData.EntryPoints {
		if entry.EntryPointType == "video" && entry.URI != "" {
			link = entry.URI
			break
		}
	}
	if link == "" {
		return nil, fmt.Errorf("google event has no meet link")
	}
	return &Meeting{
		MeetingID: event.ID,
		JoinURL:   link,
		StartURL:  link,
	}, nil
}
