// Package store is the typed persistence boundary. Services depend on these
// interfaces; the Postgres implementation lives alongside in this package.
package store

import (
	"context"
	"errors"
	"time"

	"mentorhub-backend-go/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a conditional write matched no row
	// (state-machine guard) or a uniqueness constraint fired.
	ErrConflict = errors.New("conflict")
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SetLastLogin(ctx context.Context, id string) error
}

type ProfileStore interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
	ListMentorsForRepository(ctx context.Context, repositoryID string) ([]models.Profile, error)
}

type RepositoryStore interface {
	CreateRepository(ctx context.Context, r *models.Repository) error
	GetRepository(ctx context.Context, id string) (*models.Repository, error)
	ListRepositories(ctx context.Context) ([]models.Repository, error)
	UpdateRepository(ctx context.Context, r *models.Repository) error
	DeleteRepository(ctx context.Context, id string) error
	AttachMentor(ctx context.Context, mentorID, repositoryID string) error
	DetachMentor(ctx context.Context, mentorID, repositoryID string) error
	ListRepositoriesForMentor(ctx context.Context, mentorID string) ([]models.Repository, error)
}

// MentorshipRequestDetail is a request row joined with the display names the
// dashboards need.
type MentorshipRequestDetail struct {
	models.MentorshipRequest
	StudentName    string `db:"student_name"`
	MentorName     string `db:"mentor_name"`
	RepositoryName string `db:"repository_name"`
}

type MentorshipStore interface {
	// CreateRequest inserts a pending request. ErrConflict when an active
	// (pending or accepted) request already exists for the same tuple.
	CreateRequest(ctx context.Context, req *models.MentorshipRequest) error
	GetRequest(ctx context.Context, id string) (*models.MentorshipRequest, error)
	// SetRequestStatus transitions from -> to; ErrConflict when the request
	// is not currently in the from status.
	SetRequestStatus(ctx context.Context, id, from, to string) error
	ListRequestsByStudent(ctx context.Context, studentID string) ([]MentorshipRequestDetail, error)
	ListRequestsByMentor(ctx context.Context, mentorID string) ([]MentorshipRequestDetail, error)
}

type SessionDetail struct {
	models.Session
	StudentName    string `db:"student_name"`
	MentorName     string `db:"mentor_name"`
	RepositoryName string `db:"repository_name"`
}

type SessionStore interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	// SetSessionStatus transitions from -> to; ErrConflict when the session
	// is not currently in the from status.
	SetSessionStatus(ctx context.Context, id, from, to string) error
	// MarkSessionApproved finalizes an approving claim with the meeting
	// details. ErrConflict when the session is not in the approving status.
	MarkSessionApproved(ctx context.Context, id, meetingID, joinURL, startURL string) error
	ListSessionsByStudent(ctx context.Context, studentID string) ([]SessionDetail, error)
	ListSessionsByMentor(ctx context.Context, mentorID string) ([]SessionDetail, error)
}

type MentorshipFeedbackDetail struct {
	models.MentorshipFeedback
	StudentName    string `db:"student_name"`
	RepositoryName string `db:"repository_name"`
}

type SessionFeedbackDetail struct {
	models.SessionFeedback
	StudentName    string `db:"student_name"`
	RepositoryName string `db:"repository_name"`
}

type FeedbackStore interface {
	// SubmitMentorshipFeedback inserts the feedback row and transitions the
	// parent request accepted -> completed in a single transaction.
	// ErrConflict when the request is not in the accepted status.
	SubmitMentorshipFeedback(ctx context.Context, fb *models.MentorshipFeedback) error
	// SubmitSessionFeedback inserts the feedback row and transitions the
	// parent session approved -> completed in a single transaction.
	// ErrConflict when the session is not in the approved status.
	SubmitSessionFeedback(ctx context.Context, fb *models.SessionFeedback) error
	ListMentorshipFeedbackForMentor(ctx context.Context, mentorID string) ([]MentorshipFeedbackDetail, error)
	ListSessionFeedbackForMentor(ctx context.Context, mentorID string) ([]SessionFeedbackDetail, error)
}

// ConversationSummary describes one chat peer with the latest message and the
// number of unread messages from that peer.
type ConversationSummary struct {
	PeerID        string    `db:"peer_id"`
	PeerName      string    `db:"peer_name"`
	PeerRole      string    `db:"peer_role"`
	LastKind      string    `db:"last_kind"`
	LastContent   string    `db:"last_content"`
	LastCreatedAt time.Time `db:"last_created_at"`
	UnreadCount   int       `db:"unread_count"`
}

type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	ListConversation(ctx context.Context, userID, peerID string) ([]models.Message, error)
	ListConversations(ctx context.Context, userID string) ([]ConversationSummary, error)
	// MarkRead flags every unread message from senderID to receiverID.
	// Idempotent.
	MarkRead(ctx context.Context, receiverID, senderID string) error
}

type MetricStore interface {
	InsertMetricSample(ctx context.Context, s *models.ServerMetricSample) error
	ListMetricSamples(ctx context.Context, limit int) ([]models.ServerMetricSample, error)
}
