package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub-backend-go/internal/meetings"
	"mentorhub-backend-go/internal/models"
)

func TestMentorshipFeedbackCompletesRequest(t *testing.T) {
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	repoID := st.addRepository("kubernetes")
	mentorships := NewMentorshipService(st, st, st)
	svc := NewFeedbackService(st, st, st)

	req, err := mentorships.CreateRequest(context.Background(), studentID, mentorID, repoID, "")
	require.NoError(t, err)
	require.NoError(t, mentorships.Respond(context.Background(), mentorID, req.ID, models.RequestAccepted))

	fb, err := svc.SubmitMentorshipFeedback(context.Background(), studentID, req.ID, 5, "great mentor")
	require.NoError(t, err)
	assert.Equal(t, mentorID, fb.MentorID)

	stored, err := st.GetRequest(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestCompleted, stored.Status)
}

func TestMentorshipFeedbackRejectsWhenNotAccepted(t *testing.T) {
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	repoID := st.addRepository("kubernetes")
	mentorships := NewMentorshipService(st, st, st)
	svc := NewFeedbackService(st, st, st)

	req, err := mentorships.CreateRequest(context.Background(), studentID, mentorID, repoID, "")
	require.NoError(t, err)

	_, err = svc.SubmitMentorshipFeedback(context.Background(), studentID, req.ID, 4, "")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)
	assert.Empty(t, st.mentorshipFeedback)
}

func TestFeedbackRatingBounds(t *testing.T) {
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	svc := NewFeedbackService(st, st, st)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.SubmitMentorshipFeedback(context.Background(), studentID, "some-id", rating, "")
		var svcErr ServiceError
		require.ErrorAs(t, err, &svcErr, "rating %d", rating)
		assert.Equal(t, 400, svcErr.Status)

		_, err = svc.SubmitSessionFeedback(context.Background(), studentID, "some-id", rating, "")
		require.ErrorAs(t, err, &svcErr, "rating %d", rating)
		assert.Equal(t, 400, svcErr.Status)
	}
}

func TestFeedbackOnlyOwningStudent(t *testing.T) {
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	otherStudent := st.addProfile("Dan", models.RoleStudent)
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	repoID := st.addRepository("kubernetes")
	mentorships := NewMentorshipService(st, st, st)
	svc := NewFeedbackService(st, st, st)

	req, err := mentorships.CreateRequest(context.Background(), studentID, mentorID, repoID, "")
	require.NoError(t, err)
	require.NoError(t, mentorships.Respond(context.Background(), mentorID, req.ID, models.RequestAccepted))

	_, err = svc.SubmitMentorshipFeedback(context.Background(), otherStudent, req.ID, 3, "")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 403, svcErr.Status)
}

func TestSessionFeedbackCompletesSession(t *testing.T) {
	provisioner := &fakeProvisioner{meeting: &meetings.Meeting{MeetingID: "1", JoinURL: "https://meet.example/a", StartURL: "https://meet.example/a/s"}}
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	repoID := st.addRepository("kubernetes")
	sessions := NewSessionService(st, st, st, provisioner)
	svc := NewFeedbackService(st, st, st)

	session, err := sessions.RequestSession(context.Background(), studentID, mentorID, repoID,
		time.Now().Add(time.Hour), 30, "")
	require.NoError(t, err)
	_, err = sessions.Approve(context.Background(), mentorID, session.ID)
	require.NoError(t, err)

	_, err = svc.SubmitSessionFeedback(context.Background(), studentID, session.ID, 4, "useful session")
	require.NoError(t, err)

	stored, err := st.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, stored.Status)

	// A second submission finds the session already completed.
	_, err = svc.SubmitSessionFeedback(context.Background(), studentID, session.ID, 4, "")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)
}

func TestSessionFeedbackRejectsPendingSession(t *testing.T) {
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	repoID := st.addRepository("kubernetes")
	sessions := NewSessionService(st, st, st, &fakeProvisioner{})
	svc := NewFeedbackService(st, st, st)

	session, err := sessions.RequestSession(context.Background(), studentID, mentorID, repoID,
		time.Now().Add(time.Hour), 30, "")
	require.NoError(t, err)

	_, err = svc.SubmitSessionFeedback(context.Background(), studentID, session.ID, 5, "")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)
}

func TestListForMentorAverages(t *testing.T) {
	st := newMemStore()
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	svc := NewFeedbackService(st, st, st)

	st.mentorshipFeedback = append(st.mentorshipFeedback,
		&models.MentorshipFeedback{ID: "f1", MentorID: mentorID, Rating: 5},
		&models.MentorshipFeedback{ID: "f2", MentorID: mentorID, Rating: 3},
	)
	st.sessionFeedback = append(st.sessionFeedback,
		&models.SessionFeedback{ID: "f3", MentorID: mentorID, Rating: 4},
	)

	summary, err := svc.ListForMentor(context.Background(), mentorID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalCount)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.001)
}

func TestListForMentorEmpty(t *testing.T) {
	st := newMemStore()
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	svc := NewFeedbackService(st, st, st)

	summary, err := svc.ListForMentor(context.Background(), mentorID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalCount)
	assert.Zero(t, summary.AverageRating)
}
