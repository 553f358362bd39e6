// Package meetings talks to the video-conferencing provider that backs
// approved sessions.
package meetings

import (
	"context"
	"time"
)

type MeetingRequest struct {
	Topic           string
	StartTime       time.Time
	DurationMinutes int
}

type Meeting struct {
	MeetingID string
	JoinURL   string
	StartURL  string
}

// Provisioner allocates a joinable meeting room. Implementations give no
// idempotency guarantee; callers must not retry blindly.
type Provisioner interface {
	CreateMeeting(ctx context.Context, req MeetingRequest) (*Meeting, error)
}
