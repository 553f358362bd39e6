package meetings

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	zoomTokenURL   = "https://zoom.us/oauth/token"
	zoomMeetingURL = "https://api.zoom.us/v2/users/me/meetings"

	// Zoom meeting type 2 = scheduled meeting.
	zoomTypeScheduled = 2
)

// ZoomClient provisions scheduled Zoom meetings via the
// account-credentials OAuth grant.
type ZoomClient struct {
	AccountID    string
	ClientID     string
	ClientSecret string
	TokenURL     string
	MeetingURL   string
	HTTPClient   *http.Client
}

func NewZoomClient(accountID, clientID, clientSecret string) *ZoomClient {
	return &ZoomClient{
		AccountID:    accountID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     zoomTokenURL,
		MeetingURL:   zoomMeetingURL,
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

type zoomMeetingSettings struct {
	HostVideo        bool   `json:"host_video"`
	ParticipantVideo bool   `json:"participant_video"`
	JoinBeforeHost   bool   `json:"join_before_host"`
	MuteUponEntry    bool   `json:"mute_upon_entry"`
	WaitingRoom      bool   `json:"waiting_room"`
	Audio            string `json:"audio"`
}

type zoomMeetingRequest struct {
	Topic     string              `json:"topic"`
	Type      int                 `json:"type"`
	StartTime string              `json:"start_time"`
	Duration  int                 `json:"duration"`
	Settings  zoomMeetingSettings `json:"settings"`
}

type zoomMeetingResponse struct {
	ID       json.Number `json:"id"`
	JoinURL  string      `json:"join_url"`
	StartURL string      `json:"start_url"`
}

func (c *ZoomClient) CreateMeeting(ctx context.Context, req MeetingRequest) (*Meeting, error) {
	if c.AccountID == "" || c.ClientID == "" || c.ClientSecret == "" {
		return nil, fmt.Errorf("zoom credentials not configured")
	}
	token, err := c.fetchToken(ctx)
	if err != nil {
		return nil, err
	}

	topic := req.Topic
	if topic == "" {
		topic = "Mentorship Session"
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 60
	}
	payload := zoomMeetingRequest{
		Topic:     topic,
		Type:      zoomTypeScheduled,
		StartTime: req.StartTime.UTC().Format(time.RFC3339),
		Duration:  duration,
		Settings: zoomMeetingSettings{
			HostVideo:        true,
			ParticipantVideo: true,
			WaitingRoom:      true,
			Audio:            "voip",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.MeetingURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create zoom meeting: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("create zoom meeting: status %d", resp.StatusCode)
	}
	var meeting zoomMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		return nil, fmt.Errorf("decode zoom meeting response: %w", err)
	}
	return &Meeting{
		MeetingID: meeting.ID.String(),
		JoinURL:   meeting.JoinURL,
		StartURL:  meeting.StartURL,
	}, nil
}

func (c *ZoomClient) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "account_credentials")
	form.Set("account_id", c.AccountID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.ClientID + ":" + c.ClientSecret))
	httpReq.Header.Set("Authorization", "Basic "+basic)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("zoom oauth: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zoom oauth: status %d", resp.StatusCode)
	}
	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("decode zoom token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("zoom oauth: empty access token")
	}
	return tokenResp.AccessToken, nil
}
