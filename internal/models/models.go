package models

import "time"

const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
)

// Mentorship request lifecycle: pending -> accepted | rejected, accepted -> completed.
const (
	RequestPending   = "pending"
	RequestAccepted  = "accepted"
	RequestRejected  = "rejected"
	RequestCompleted = "completed"
)

// Session lifecycle: pending -> approved | rejected, approved -> completed.
// "approving" is a transient claim held while the meeting provisioner runs.
const (
	SessionPending   = "pending"
	SessionApproving = "approving"
	SessionApproved  = "approved"
	SessionRejected  = "rejected"
	SessionCompleted = "completed"
)

const (
	MessageText  = "text"
	MessageVoice = "voice"
)

type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}

type Profile struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Role       string    `db:"role"`
	Bio        *string   `db:"bio"`
	ProfilePic *string   `db:"profile_pic"`
	Skills     []byte    `db:"skills"`
	Interests  []byte    `db:"interests"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type Repository struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	GithubURL   *string   `db:"github_url"`
	Language    *string   `db:"language"`
	Stars       int       `db:"stars"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type MentorRepository struct {
	MentorID     string    `db:"mentor_id"`
	RepositoryID string    `db:"repository_id"`
	CreatedAt    time.Time `db:"created_at"`
}

type MentorshipRequest struct {
	ID           string    `db:"id"`
	StudentID    string    `db:"student_id"`
	MentorID     string    `db:"mentor_id"`
	RepositoryID string    `db:"repository_id"`
	Status       string    `db:"status"`
	Message      *string   `db:"message"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Session struct {
	ID              string    `db:"id"`
	StudentID       string    `db:"student_id"`
	MentorID        string    `db:"mentor_id"`
	RepositoryID    string    `db:"repository_id"`
	ScheduledAt     time.Time `db:"scheduled_at"`
	DurationMinutes int       `db:"duration_minutes"`
	Notes           *string   `db:"notes"`
	Status          string    `db:"status"`
	MeetingID       *string   `db:"meeting_id"`
	JoinURL         *string   `db:"join_url"`
	StartURL        *string   `db:"start_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type MentorshipFeedback struct {
	ID                  string    `db:"id"`
	MentorshipRequestID string    `db:"mentorship_request_id"`
	StudentID           string    `db:"student_id"`
	MentorID            string    `db:"mentor_id"`
	Rating              int       `db:"rating"`
	FeedbackText        *string   `db:"feedback_text"`
	CreatedAt           time.Time `db:"created_at"`
}

type SessionFeedback struct {
	ID           string    `db:"id"`
	SessionID    string    `db:"session_id"`
	StudentID    string    `db:"student_id"`
	MentorID     string    `db:"mentor_id"`
	Rating       int       `db:"rating"`
	FeedbackText *string   `db:"feedback_text"`
	CreatedAt    time.Time `db:"created_at"`
}

type Message struct {
	ID         string    `db:"id"`
	SenderID   string    `db:"sender_id"`
	ReceiverID string    `db:"receiver_id"`
	Kind       string    `db:"kind"`
	Content    string    `db:"content"`
	Read       bool      `db:"read"`
	CreatedAt  time.Time `db:"created_at"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	HeapUsedBytes     int64     `db:"heap_used_bytes"`
	HeapMaxBytes      int64     `db:"heap_max_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
