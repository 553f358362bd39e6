package store

import (
	"context"

	"mentorhub-backend-go/internal/models"
)

const mentorshipDetailColumns = `
SELECT mr.id, mr.student_id, mr.mentor_id, mr.repository_id, mr.status, mr.message, mr.created_at, mr.updated_at,
       st.name AS student_name,
       me.name AS mentor_name,
       r.name AS repository_name
FROM mentorship_requests mr
JOIN profiles st ON st.id = mr.student_id
JOIN profiles me ON me.id = mr.mentor_id
JOIN repositories r ON r.id = mr.repository_id
`

func (p *Postgres) CreateRequest(ctx context.Context, req *models.MentorshipRequest) error {
	ts := now()
	req.Status = models.RequestPending
	req.CreatedAt = ts
	req.UpdatedAt = ts
	// The partial unique index on active requests turns the concurrent
	// duplicate-create race into a constraint violation here.
	_, err := p.db.ExecContext(ctx, `
INSERT INTO mentorship_requests (id, student_id, mentor_id, repository_id, status, message, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
`, req.ID, req.StudentID, req.MentorID, req.RepositoryID, req.Status, req.Message, ts)
	return translate(err)
}

func (p *Postgres) GetRequest(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	var req models.MentorshipRequest
	err := p.db.GetContext(ctx, &req, `
SELECT id, student_id, mentor_id, repository_id, status, message, created_at, updated_at
FROM mentorship_requests
WHERE id = $1
`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &req, nil
}

func (p *Postgres) SetRequestStatus(ctx context.Context, id, from, to string) error {
	res, err := p.db.ExecContext(ctx, `
UPDATE mentorship_requests
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

func (p *Postgres) ListRequestsByStudent(ctx context.Context, studentID string) ([]MentorshipRequestDetail, error) {
	items := []MentorshipRequestDetail{}
	err := p.db.SelectContext(ctx, &items, mentorshipDetailColumns+`
WHERE mr.student_id = $1
ORDER BY mr.created_at DESC
`, studentID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (p *Postgres) ListRequestsByMentor(ctx context.Context, mentorID string) ([]MentorshipRequestDetail, error) {
	items := []MentorshipRequestDetail{}
	err := p.db.SelectContext(ctx, &items, mentorshipDetailColumns+`
WHERE mr.mentor_id = $1
ORDER BY mr.created_at DESC
`, mentorID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}
