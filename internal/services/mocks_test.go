package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"mentorhub-backend-go/internal/meetings"
	"mentorhub-backend-go/internal/models"
	"mentorhub-backend-go/internal/store"
)

// memStore is an in-memory stand-in for the Postgres store. Conditional
// transitions and active-duplicate checks mirror the SQL guards.
type memStore struct {
	mu                 sync.Mutex
	profiles           map[string]*models.Profile
	repos              map[string]*models.Repository
	requests           map[string]*models.MentorshipRequest
	sessions           map[string]*models.Session
	mentorshipFeedback []*models.MentorshipFeedback
	sessionFeedback    []*models.SessionFeedback
	messages           []*models.Message
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[string]*models.Profile{},
		repos:    map[string]*models.Repository{},
		requests: map[string]*models.MentorshipRequest{},
		sessions: map[string]*models.Session{},
	}
}

func (m *memStore) addProfile(name, role string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.profiles[id] = &models.Profile{ID: id, Name: name, Email: name + "@example.com", Role: role}
	return id
}

func (m *memStore) addRepository(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.repos[id] = &models.Repository{ID: id, Name: name}
	return id
}

func (m *memStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	return nil
}

func (m *memStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memStore) UpdateProfile(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.ID]; !ok {
		return store.ErrNotFound
	}
	m.profiles[p.ID] = p
	return nil
}

func (m *memStore) ListMentorsForRepository(ctx context.Context, repositoryID string) ([]models.Profile, error) {
	return nil, nil
}

func (m *memStore) CreateRepository(ctx context.Context, r *models.Repository) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repos[r.ID] = r
	return nil
}

func (m *memStore) GetRepository(ctx context.Context, id string) (*models.Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.repos[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *memStore) ListRepositories(ctx context.Context) ([]models.Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Repository, 0, len(m.repos))
	for _, r := range m.repos {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memStore) UpdateRepository(ctx context.Context, r *models.Repository) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.repos[r.ID]; !ok {
		return store.ErrNotFound
	}
	m.repos[r.ID] = r
	return nil
}

func (m *memStore) DeleteRepository(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.repos[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.repos, id)
	return nil
}

func (m *memStore) AttachMentor(ctx context.Context, mentorID, repositoryID string) error {
	return nil
}

func (m *memStore) DetachMentor(ctx context.Context, mentorID, repositoryID string) error {
	return nil
}

func (m *memStore) ListRepositoriesForMentor(ctx context.Context, mentorID string) ([]models.Repository, error) {
	return nil, nil
}

func (m *memStore) CreateRequest(ctx context.Context, req *models.MentorshipRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.requests {
		if existing.StudentID == req.StudentID &&
			existing.MentorID == req.MentorID &&
			existing.RepositoryID == req.RepositoryID &&
			(existing.Status == models.RequestPending || existing.Status == models.RequestAccepted) {
			return store.ErrConflict
		}
	}
	req.Status = models.RequestPending
	req.CreatedAt = time.Now().UTC()
	req.UpdatedAt = req.CreatedAt
	stored := *req
	m.requests[req.ID] = &stored
	return nil
}

func (m *memStore) GetRequest(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (m *memStore) SetRequestStatus(ctx context.Context, id, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[id]
	if !ok || req.Status != from {
		return store.ErrConflict
	}
	req.Status = to
	req.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memStore) ListRequestsByStudent(ctx context.Context, studentID string) ([]store.MentorshipRequestDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.MentorshipRequestDetail
	for _, req := range m.requests {
		if req.StudentID == studentID {
			out = append(out, m.requestDetail(req))
		}
	}
	return out, nil
}

func (m *memStore) ListRequestsByMentor(ctx context.Context, mentorID string) ([]store.MentorshipRequestDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.MentorshipRequestDetail
	for _, req := range m.requests {
		if req.MentorID == mentorID {
			out = append(out, m.requestDetail(req))
		}
	}
	return out, nil
}

func (m *memStore) requestDetail(req *models.MentorshipRequest) store.MentorshipRequestDetail {
	detail := store.MentorshipRequestDetail{MentorshipRequest: *req}
	if p := m.profiles[req.StudentID]; p != nil {
		detail.StudentName = p.Name
	}
	if p := m.profiles[req.MentorID]; p != nil {
		detail.MentorName = p.Name
	}
	if r := m.repos[req.RepositoryID]; r != nil {
		detail.RepositoryName = r.Name
	}
	return detail
}

func (m *memStore) CreateSession(ctx context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Status = models.SessionPending
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	stored := *s
	m.sessions[s.ID] = &stored
	return nil
}

func (m *memStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memStore) SetSessionStatus(ctx context.Context, id, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Status != from {
		return store.ErrConflict
	}
	s.Status = to
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memStore) MarkSessionApproved(ctx context.Context, id, meetingID, joinURL, startURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Status != models.SessionApproving {
		return store.ErrConflict
	}
	s.Status = models.SessionApproved
	s.MeetingID = &meetingID
	s.JoinURL = &joinURL
	s.StartURL = &startURL
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *memStore) ListSessionsByStudent(ctx context.Context, studentID string) ([]store.SessionDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.SessionDetail
	for _, s := range m.sessions {
		if s.StudentID == studentID {
			out = append(out, store.SessionDetail{Session: *s})
		}
	}
	return out, nil
}

func (m *memStore) ListSessionsByMentor(ctx context.Context, mentorID string) ([]store.SessionDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.SessionDetail
	for _, s := range m.sessions {
		if s.MentorID == mentorID {
			out = append(out, store.SessionDetail{Session: *s})
		}
	}
	return out, nil
}

func (m *memStore) SubmitMentorshipFeedback(ctx context.Context, fb *models.MentorshipFeedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req, ok := m.requests[fb.MentorshipRequestID]
	if !ok || req.Status != models.RequestAccepted {
		return store.ErrConflict
	}
	req.Status = models.RequestCompleted
	fb.CreatedAt = time.Now().UTC()
	stored := *fb
	m.mentorshipFeedback = append(m.mentorshipFeedback, &stored)
	return nil
}

func (m *memStore) SubmitSessionFeedback(ctx context.Context, fb *models.SessionFeedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[fb.SessionID]
	if !ok || s.Status != models.SessionApproved {
		return store.ErrConflict
	}
	s.Status = models.SessionCompleted
	fb.CreatedAt = time.Now().UTC()
	stored := *fb
	m.sessionFeedback = append(m.sessionFeedback, &stored)
	return nil
}

func (m *memStore) ListMentorshipFeedbackForMentor(ctx context.Context, mentorID string) ([]store.MentorshipFeedbackDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.MentorshipFeedbackDetail
	for _, fb := range m.mentorshipFeedback {
		if fb.MentorID == mentorID {
			out = append(out, store.MentorshipFeedbackDetail{MentorshipFeedback: *fb})
		}
	}
	return out, nil
}

func (m *memStore) ListSessionFeedbackForMentor(ctx context.Context, mentorID string) ([]store.SessionFeedbackDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.SessionFeedbackDetail
	for _, fb := range m.sessionFeedback {
		if fb.MentorID == mentorID {
			out = append(out, store.SessionFeedbackDetail{SessionFeedback: *fb})
		}
	}
	return out, nil
}

func (m *memStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.CreatedAt = time.Now().UTC()
	stored := *msg
	m.messages = append(m.messages, &stored)
	return nil
}

func (m *memStore) ListConversation(ctx context.Context, userID, peerID string) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Message
	for _, msg := range m.messages {
		if (msg.SenderID == userID && msg.ReceiverID == peerID) ||
			(msg.SenderID == peerID && msg.ReceiverID == userID) {
			out = append(out, *msg)
		}
	}
	return out, nil
}

func (m *memStore) ListConversations(ctx context.Context, userID string) ([]store.ConversationSummary, error) {
	return nil, nil
}

func (m *memStore) MarkRead(ctx context.Context, receiverID, senderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.SenderID == senderID && msg.ReceiverID == receiverID {
			msg.Read = true
		}
	}
	return nil
}

// fakeProvisioner records calls and returns a canned meeting or error.
type fakeProvisioner struct {
	meeting *meetings.Meeting
	err     error
	calls   int
}

func (f *fakeProvisioner) CreateMeeting(ctx context.Context, req meetings.MeetingRequest) (*meetings.Meeting, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.meeting, nil
}
