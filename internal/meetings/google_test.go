package meetings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGoogleClient(serverURL string) *GoogleMeetClient {
	client := NewGoogleMeetClient("test-key")
	client.EventsURL = serverURL + "/calendar/v3/calendars/primary/events"
	return client
}

func TestGoogleCreateMeeting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("conferenceDataVersion"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var payload googleEventRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Mentorship Session", payload.Summary)
		assert.Equal(t, "UTC", payload.Start.TimeZone)
		assert.Equal(t, "hangoutsMeet", payload.ConferenceData.CreateRequest.ConferenceSolutionKey.Type)
		assert.True(t, strings.HasPrefix(payload.ConferenceData.CreateRequest.RequestID, "mentorhub-"))

		startAt, err := time.Parse(time.RFC3339, payload.Start.DateTime)
		require.NoError(t, err)
		endAt, err := time.Parse(time.RFC3339, payload.End.DateTime)
		require.NoError(t, err)
		assert.Equal(t, 45*time.Minute, endAt.Sub(startAt))

		_, _ = w.Write([]byte(`{
			"id": "evt-123",
			"hangoutLink": "https://meet.google.com/fallback",
			"conferenceData": {
				"entryPoints": [
					{"entryPointType": "phone", "uri": "tel:+1-555-0100"},
					{"entryPointType": "video", "uri": "https://meet.google.com/abc-defg-hij"}
				]
			}
		}`))
	}))
	defer server.Close()

	meeting, err := testGoogleClient(server.URL).CreateMeeting(context.Background(), MeetingRequest{
		Topic:           "Mentorship Session",
		StartTime:       time.Now().Add(time.Hour),
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-123", meeting.MeetingID)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", meeting.JoinURL)
	assert.Equal(t, meeting.JoinURL, meeting.StartURL)
}

func TestGoogleCreateMeetingHangoutLinkFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "evt-9", "hangoutLink": "https://meet.google.com/xyz"}`))
	}))
	defer server.Close()

	meeting, err := testGoogleClient(server.URL).CreateMeeting(context.Background(), MeetingRequest{
		StartTime: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://meet.google.com/xyz", meeting.JoinURL)
}

func TestGoogleCreateMeetingNoLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "evt-9"}`))
	}))
	defer server.Close()

	_, err := testGoogleClient(server.URL).CreateMeeting(context.Background(), MeetingRequest{
		StartTime: time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestGoogleCreateMeetingUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := testGoogleClient(server.URL).CreateMeeting(context.Background(), MeetingRequest{
		StartTime: time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestGoogleCreateMeetingMissingKey(t *testing.T) {
	client := NewGoogleMeetClient("")
	_, err := client.CreateMeeting(context.Background(), MeetingRequest{StartTime: time.Now()})
	assert.Error(t, err)
}
