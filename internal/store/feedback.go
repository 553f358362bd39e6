package store

import (
	"context"

	"mentorhub-backend-go/internal/models"
)

func (p *Postgres) SubmitMentorshipFeedback(ctx context.Context, fb *models.MentorshipFeedback) error {
	fb.CreatedAt = now()
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return translate(err)
	}
	defer tx.Rollback()

	// Completing the request and recording the feedback must land together;
	// the closed-over guard keeps feedback off non-accepted requests.
	res, err := tx.ExecContext(ctx, `
UPDATE mentorship_requests
SET status = $2, updated_at = $3
WHERE id = $1 AND status = $4
`, fb.MentorshipRequestID, models.RequestCompleted, fb.CreatedAt, models.RequestAccepted)
	if err != nil {
		return translate(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrConflict
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO mentorship_feedback (id, mentorship_request_id, student_id, mentor_id, rating, feedback_text, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, fb.ID, fb.MentorshipRequestID, fb.StudentID, fb.MentorID, fb.Rating, fb.FeedbackText, fb.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return translate(tx.Commit())
}

func (p *Postgres) SubmitSessionFeedback(ctx context.Context, fb *models.SessionFeedback) error {
	fb.CreatedAt = now()
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return translate(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE sessions
SET status = $2, updated_at = $3
WHERE id = $1 AND status = $4
`, fb.SessionID, models.SessionCompleted, fb.CreatedAt, models.SessionApproved)
	if err != nil {
		return translate(err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrConflict
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO session_feedback (id, session_id, student_id, mentor_id, rating, feedback_text, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, fb.ID, fb.SessionID, fb.StudentID, fb.MentorID, fb.Rating, fb.FeedbackText, fb.CreatedAt)
	if err != nil {
		return translate(err)
	}
	return translate(tx.Commit())
}

func (p *Postgres) ListMentorshipFeedbackForMentor(ctx context.Context, mentorID string) ([]MentorshipFeedbackDetail, error) {
	items := []MentorshipFeedbackDetail{}
	err := p.db.SelectContext(ctx, &items, `
SELECT f.id, f.mentorship_request_id, f.student_id, f.mentor_id, f.rating, f.feedback_text, f.created_at,
       st.name AS student_name,
       r.name AS repository_name
FROM mentorship_feedback f
JOIN profiles st ON st.id = f.student_id
JOIN mentorship_requests mr ON mr.id = f.mentorship_request_id
JOIN repositories r ON r.id = mr.repository_id
WHERE f.mentor_id = $1
ORDER BY f.created_at DESC
`, mentorID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (p *Postgres) ListSessionFeedbackForMentor(ctx context.Context, mentorID string) ([]SessionFeedbackDetail, error) {
	items := []SessionFeedbackDetail{}
	err := p.db.SelectContext(ctx, &items, `
SELECT f.id, f.session_id, f.student_id, f.mentor_id, f.rating, f.feedback_text, f.created_at,
       st.name AS student_name,
       r.name AS repository_name
FROM session_feedback f
JOIN profiles st ON st.id = f.student_id
JOIN sessions s ON s.id = f.session_id
JOIN repositories r ON r.id = s.repository_id
WHERE f.mentor_id = $1
ORDER BY f.created_at DESC
`, mentorID)
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}
