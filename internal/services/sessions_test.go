package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub-backend-go/internal/meetings"
	"mentorhub-backend-go/internal/models"
)

func newSessionFixture(t *testing.T, provisioner meetings.Provisioner) (*memStore, *SessionService, string, string) {
	t.Helper()
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	st.addRepository("kubernetes")
	svc := NewSessionService(st, st, st, provisioner)
	return st, svc, studentID, mentorID
}

func TestRequestSession(t *testing.T) {
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	repoID := st.addRepository("kubernetes")
	svc := NewSessionService(st, st, st, &fakeProvisioner{})

	session, err := svc.RequestSession(context.Background(), studentID, mentorID, repoID,
		time.Now().Add(24*time.Hour), 60, "intro call")
	require.NoError(t, err)
	assert.Equal(t, models.SessionPending, session.Status)
	assert.Nil(t, session.JoinURL)
}

func TestRequestSessionMustBeFuture(t *testing.T) {
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	repoID := st.addRepository("kubernetes")
	svc := NewSessionService(st, st, st, &fakeProvisioner{})

	_, err := svc.RequestSession(context.Background(), studentID, mentorID, repoID,
		time.Now().Add(-time.Hour), 60, "")
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 400, svcErr.Status)
}

func TestRequestSessionDurationBounds(t *testing.T) {
	st := newMemStore()
	studentID := st.addProfile("Ana", models.RoleStudent)
	mentorID := st.addProfile("Mihai", models.RoleMentor)
	repoID := st.addRepository("kubernetes")
	svc := NewSessionService(st, st, st, &fakeProvisioner{})

	for _, minutes := range []int{0, 14, 241} {
		_, err := svc.RequestSession(context.Background(), studentID, mentorID, repoID,
			time.Now().Add(time.Hour), minutes, "")
		var svcErr ServiceError
		require.ErrorAs(t, err, &svcErr, "duration %d", minutes)
		assert.Equal(t, 400, svcErr.Status)
	}
}

func TestApproveProvisionsMeeting(t *testing.T) {
	provisioner := &fakeProvisioner{meeting: &meetings.Meeting{
		MeetingID: "98765",
		JoinURL:   "https://meet.example/abc",
		StartURL:  "https://meet.example/abc/start",
	}}
	st, svc, studentID, mentorID := newSessionFixture(t, provisioner)
	repoID := st.addRepository("terraform")

	session, err := svc.RequestSession(context.Background(), studentID, mentorID, repoID,
		time.Now().Add(time.Hour), 45, "")
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), mentorID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionApproved, approved.Status)
	require.NotNil(t, approved.JoinURL)
	assert.Equal(t, "https://meet.example/abc", *approved.JoinURL)
	require.NotNil(t, approved.MeetingID)
	assert.Equal(t, "98765", *approved.MeetingID)
	assert.Equal(t, 1, provisioner.calls)
}

func TestApproveProvisionerFailureLeavesPending(t *testing.T) {
	provisioner := &fakeProvisioner{err: errors.New("zoom oauth: status 500")}
	st, svc, studentID, mentorID := newSessionFixture(t, provisioner)
	repoID := st.addRepository("terraform")

	session, err := svc.RequestSession(context.Background(), studentID, mentorID, repoID,
		time.Now().Add(time.Hour), 45, "")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), mentorID, session.ID)
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 502, svcErr.Status)

	// The claim is released so approval stays retryable.
	stored, err := st.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionPending, stored.Status)

	provisioner.err = nil
	provisioner.meeting = &meetings.Meeting{MeetingID: "1", JoinURL: "https://meet.example/retry", StartURL: "https://meet.example/retry/start"}
	approved, err := svc.Approve(context.Background(), mentorID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionApproved, approved.Status)
}

func TestApproveTwiceConflicts(t *testing.T) {
	provisioner := &fakeProvisioner{meeting: &meetings.Meeting{MeetingID: "1", JoinURL: "https://meet.example/a", StartURL: "https://meet.example/a/s"}}
	st, svc, studentID, mentorID := newSessionFixture(t, provisioner)
	repoID := st.addRepository("terraform")

	session, err := svc.RequestSession(context.Background(), studentID, mentorID, repoID,
		time.Now().Add(time.Hour), 30, "")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), mentorID, session.ID)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), mentorID, session.ID)
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)
	assert.Equal(t, 1, provisioner.calls)
}

func TestApproveOnlyOwningMentor(t *testing.T) {
	st, svc, studentID, mentorID := newSessionFixture(t, &fakeProvisioner{})
	otherMentor := st.addProfile("Radu", models.RoleMentor)
	repoID := st.addRepository("terraform")

	session, err := svc.RequestSession(context.Background(), studentID, mentorID, repoID,
		time.Now().Add(time.Hour), 30, "")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), otherMentor, session.ID)
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 403, svcErr.Status)
}

func TestRejectThenApproveConflicts(t *testing.T) {
	provisioner := &fakeProvisioner{meeting: &meetings.Meeting{MeetingID: "1", JoinURL: "https://meet.example/a", StartURL: "https://meet.example/a/s"}}
	st, svc, studentID, mentorID := newSessionFixture(t, provisioner)
	repoID := st.addRepository("terraform")

	session, err := svc.RequestSession(context.Background(), studentID, mentorID, repoID,
		time.Now().Add(time.Hour), 30, "")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(context.Background(), mentorID, session.ID))

	_, err = svc.Approve(context.Background(), mentorID, session.ID)
	var svcErr ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, 409, svcErr.Status)
	assert.Equal(t, 0, provisioner.calls)

	stored, err := st.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionRejected, stored.Status)
}
