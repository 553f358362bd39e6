package store

import (
	"context"

	"mentorhub-backend-go/internal/models"
)

const sessionDetailColumns = `
SELECT s.id, s.student_id, s.mentor_id, s.repository_id, s.scheduled_at, s.duration_minutes, s.notes,
       s.status, s.meeting_id, s.join_url, s.start_url, s.created_at, s.updated_at,
       st.name AS student_name,
       me.name AS mentor_name,
       r.name AS repository_name
FROM sessions s
JOIN profiles st ON st.id = s.student_id
JOIN profiles me ON me.id = s.mentor_id
JOIN repositories r ON r.id = s.repository_id
`

func (p *Postgres) CreateSession(ctx context.Context, s *models.Session) error {
	ts := now()
	s.Status = models.SessionPending
	s.CreatedAt = ts
	s.UpdatedAt = ts
	_, err := p.db.ExecContext(ctx, `
INSERT INTO sessions (id, student_id, mentor_id, repository_id, scheduled_at, duration_minutes, notes, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
`, s.ID, s.StudentID, s.MentorID, s.RepositoryID, s.ScheduledAt, s.DurationMinutes, s.Notes, s.Status, ts)
	return translate(err)
}

func (p *Postgres) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := p.db.GetContext(ctx, &s, `
SELECT id, student_id, mentor_id, repository_id, scheduled_at, duration_minutes, notes,
       status, meeting_id, join_url, start_url, created_at, updated_at
FROM sessions
WHERE id = $1
`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (p *Postgres) SetSessionStatus(ctx context.Context, id, from, to string) error {
	res, err := p.db.ExecContext(ctx, `
UPDATE sessions
SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2
`, id, from, to, now())
	if err != nil {
		return translate(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrConflict
	}
	return nil
}

func (p *Postgres) MarkSessionApproved(ctx context.Context, id, meetingID, joinURL, startURL string) error {
	res, err := p.db.ExecContext(ctx, `
UPDATE sessions
SET status = $2, meeting_id = $3, join_url = $4, start_url = $5, updated_at = $6
WHERE id = $1 AND status = $7
`, id, models.SessionApproved, meetingID, joinURL, startURL, now(), models.SessionApproving)
	if err != nil {
		return translate(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrConflict
	}
	return nil
}

func (p *Postgres) ListSessionsByStudent(ctx context.Context, studentID string) ([]SessionDetail, error) {
	items := []SessionDetail{}
	err := p.db.SelectContext(ctx, &items, sessionDetailColumns+`
WHERE s.student_id = $1
ORDER BY s.scheduled_at
`, studentID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (p *Postgres) ListSessionsByMentor(ctx context.Context, mentorID string) ([]SessionDetail, error) {
	items := []SessionDetail{}
	err := p.db.SelectContext(ctx, &items, sessionDetailColumns+`
WHERE s.mentor_id = $1
ORDER BY s.scheduled_at
`, mentorID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}
