package store_test

import (
	"testing"
	"time"

	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(s store.State, actions ...store.Action) store.State {
	for _, a := range actions {
		s = store.Reduce(s, a)
	}
	return s
}

func jobs(ids ...string) []*domain.Job {
	out := make([]*domain.Job, len(ids))
	for i, id := range ids {
		out[i] = &domain.Job{ID: id, Title: "Job " + id, Status: domain.JobStatusDraft}
	}
	return out
}

func TestJobUpdateReplacesOnlyMatchingID(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.Job.Jobs = jobs("J1", "J2", "J3")
	before := s.Job.Jobs

	updated := &domain.Job{ID: "J2", Title: "Renamed", Status: domain.JobStatusDraft}
	s = run(s, store.Fulfilled{Op: store.OpUpdateJob, Payload: updated})

	require.Len(t, s.Job.Jobs, 3)
	assert.Same(t, before[0], s.Job.Jobs[0])
	assert.Same(t, updated, s.Job.Jobs[1])
	assert.Same(t, before[2], s.Job.Jobs[2])
	assert.Equal(t, "Job J2", before[1].Title, "previous snapshot must not be mutated")
	assert.Equal(t, "Job updated successfully", s.Job.Success)
}

func TestJobUpdateReplacesCurrentOnlyWhenIDsMatch(t *testing.T) {
	s := store.InitialState("", time.Now())
	current := &domain.Job{ID: "J9"}
	s.Job.CurrentJob = current

	s = run(s, store.Fulfilled{Op: store.OpPublishJob, Payload: &domain.Job{ID: "J1", Status: domain.JobStatusActive}})
	assert.Same(t, current, s.Job.CurrentJob)

	published := &domain.Job{ID: "J9", Status: domain.JobStatusActive}
	s = run(s, store.Fulfilled{Op: store.OpPublishJob, Payload: published})
	assert.Same(t, published, s.Job.CurrentJob)
}

func TestRemoveByID(t *testing.T) {
	t.Run("removes exactly the matching element", func(t *testing.T) {
		s := store.InitialState("", time.Now())
		s.Job.Jobs = jobs("J1", "J2", "J3")
		s.Job.CurrentJob = s.Job.Jobs[1]

		s = run(s, store.Fulfilled{Op: store.OpDeleteJob, Payload: "J2"})

		require.Len(t, s.Job.Jobs, 2)
		for _, j := range s.Job.Jobs {
			assert.NotEqual(t, "J2", j.ID)
		}
		assert.Nil(t, s.Job.CurrentJob)
		assert.Equal(t, "Job deleted successfully", s.Job.Success)
	})

	t.Run("absent id is a no-op on the list", func(t *testing.T) {
		s := store.InitialState("", time.Now())
		s.Job.Jobs = jobs("J1", "J2")
		before := s.Job.Jobs

		s = run(s, store.Fulfilled{Op: store.OpDeleteJob, Payload: "missing"})

		assert.Len(t, s.Job.Jobs, 2)
		assert.Same(t, before[0], s.Job.Jobs[0])
		assert.Same(t, before[1], s.Job.Jobs[1])
	})

	t.Run("company delete clears every list", func(t *testing.T) {
		s := store.InitialState("", time.Now())
		c := &domain.Company{ID: "C1"}
		s.Company.Companies = []*domain.Company{c, {ID: "C2"}}
		s.Company.MyCompanies = []*domain.Company{c}
		s.Company.CurrentCompany = c

		s = run(s, store.Fulfilled{Op: store.OpDeleteCompany, Payload: "C1"})

		assert.Len(t, s.Company.Companies, 1)
		assert.Empty(t, s.Company.MyCompanies)
		assert.Nil(t, s.Company.CurrentCompany)
	})
}

func TestSetDefaultResumeLeavesExactlyOneDefault(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.User.Resumes = []*domain.Resume{
		{ID: "R1", IsDefault: true},
		{ID: "R2"},
		{ID: "R3"},
	}
	untouched := s.User.Resumes[2]

	for i := 0; i < 2; i++ {
		s = run(s, store.Fulfilled{Op: store.OpSetDefaultResume, Payload: &domain.Resume{ID: "R2", IsDefault: true}})
	}

	defaults := 0
	for _, r := range s.User.Resumes {
		if r.IsDefault {
			defaults++
			assert.Equal(t, "R2", r.ID)
		}
	}
	assert.Equal(t, 1, defaults)
	assert.Same(t, untouched, s.User.Resumes[2])
	assert.Equal(t, "Default resume updated!", s.User.Success)
	assert.Equal(t, "R2", store.DefaultResume(s.User.Resumes).ID)
}

func TestFailedFetchLeavesListUntouched(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.Job.Jobs = jobs("J1", "J2")
	s.Job.Pagination = domain.Pagination{CurrentPage: 2, TotalPages: 4, Total: 40, PerPage: 10}
	list := s.Job.Jobs
	pagination := s.Job.Pagination

	s = run(s,
		store.Pending{Op: store.OpGetAllJobs},
		store.Rejected{Op: store.OpGetAllJobs, Error: "Failed to fetch jobs"},
	)

	assert.Same(t, &list[0], &s.Job.Jobs[0])
	assert.Len(t, s.Job.Jobs, 2)
	assert.Equal(t, pagination, s.Job.Pagination)
	assert.Equal(t, "Failed to fetch jobs", s.Job.Error)
	assert.False(t, s.Job.Loading)
	assert.Empty(t, s.Job.Success)
}

func TestPendingClearsErrorAndSetsLoading(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.Application.Error = "old"

	s = run(s, store.Pending{Op: store.OpGetMyApplications})
	assert.True(t, s.Application.Loading)
	assert.Empty(t, s.Application.Error)

	s = run(s, store.Pending{Op: store.OpSendMessage})
	assert.True(t, s.Application.MessageLoading)
}

func TestApplyPrependsToMyApplications(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.Application.MyApplications = []*domain.Application{{ID: "A0"}}

	job := &domain.Job{ID: "J1", Title: "Go Engineer"}
	app := &domain.Application{
		ID:       "A1",
		Job:      domain.RefTo("J1", job),
		ResumeID: "R1",
		Status:   domain.AppStatusApplied,
	}
	s = run(s, store.Pending{Op: store.OpApplyForJob}, store.Fulfilled{Op: store.OpApplyForJob, Payload: app})

	require.Len(t, s.Application.MyApplications, 2)
	first := s.Application.MyApplications[0]
	assert.Equal(t, "A1", first.ID)
	assert.Equal(t, "Go Engineer", first.Job.Value.Title)
	assert.Equal(t, domain.AppStatusApplied, first.Status)
	assert.Equal(t, "Application submitted successfully", s.Application.Success)
	assert.False(t, s.Application.AppLoading)
}

func TestPublishMarksJobActive(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.Job.Jobs = jobs("J1", "J2")

	s = run(s, store.Fulfilled{Op: store.OpPublishJob, Payload: &domain.Job{ID: "J2", Status: domain.JobStatusActive}})

	assert.Equal(t, domain.JobStatusActive, s.Job.Jobs[1].Status)
	assert.Equal(t, domain.JobStatusDraft, s.Job.Jobs[0].Status)
	assert.Equal(t, "Job published successfully", s.Job.Success)
}

func TestWithdrawRemovesFromMyApplications(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.Application.MyApplications = []*domain.Application{{ID: "A1"}, {ID: "A3"}}
	s.Application.ReceivedApplications = []*domain.Application{{ID: "A3"}}

	s = run(s, store.Fulfilled{Op: store.OpWithdrawApplication, Payload: "A3"})

	require.Len(t, s.Application.MyApplications, 1)
	assert.Equal(t, "A1", s.Application.MyApplications[0].ID)
	assert.Len(t, s.Application.ReceivedApplications, 1)
	assert.Equal(t, "Application withdrawn successfully", s.Application.Success)
}

func TestSendMessageAppendsOnlyToMatchingConversation(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.Application.CurrentConversation = &domain.Conversation{
		ApplicationID: "A1",
		Messages:      []domain.Message{{ID: "M1", Content: "hi"}},
	}
	before := s.Application.CurrentConversation

	t.Run("other application leaves the thread alone", func(t *testing.T) {
		next := run(s, store.Fulfilled{Op: store.OpSendMessage, Payload: &domain.SentMessage{
			ApplicationID: "A2",
			Message:       domain.Message{ID: "M2"},
		}})
		assert.Same(t, before, next.Application.CurrentConversation)
		assert.Equal(t, "Message sent successfully", next.Application.Success)
	})

	t.Run("same application appends exactly one message", func(t *testing.T) {
		next := run(s, store.Fulfilled{Op: store.OpSendMessage, Payload: &domain.SentMessage{
			ApplicationID: "A1",
			Message:       domain.Message{ID: "M2", Content: "hello"},
		}})
		msgs := next.Application.CurrentConversation.Messages
		require.Len(t, msgs, 2)
		assert.Equal(t, "M2", msgs[1].ID)
		assert.Len(t, before.Messages, 1)
	})
}

func TestLocalActions(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.Job.Error = "boom"
	s.Job.Success = "ok"
	s.Job.SearchResults = jobs("J1")
	s.Job.CurrentJob = &domain.Job{ID: "J1"}
	s.Application.CurrentConversation = &domain.Conversation{ApplicationID: "A1"}

	s = run(s,
		store.ClearError{Target: store.SliceJob},
		store.ClearSuccess{Target: store.SliceJob},
		store.ClearSearchResults{Target: store.SliceJob},
		store.ResetCurrent{Target: store.SliceJob},
		store.AddMessageLocally{Message: domain.Message{ID: "local"}},
	)
	assert.Empty(t, s.Job.Error)
	assert.Empty(t, s.Job.Success)
	assert.Empty(t, s.Job.SearchResults)
	assert.Equal(t, 1, s.Job.SearchPagination.CurrentPage)
	assert.Nil(t, s.Job.CurrentJob)
	require.Len(t, s.Application.CurrentConversation.Messages, 1)

	s = run(s, store.ClearConversation{})
	assert.Nil(t, s.Application.CurrentConversation)
}

func TestAuthLifecycle(t *testing.T) {
	s := store.InitialState("", time.Now())
	assert.False(t, s.User.IsAuthenticated)

	user := &domain.User{ID: "U1", FullName: "Ada"}
	s = run(s, store.Fulfilled{Op: store.OpLogin, Payload: &domain.AuthResult{User: user, Token: "tok"}})
	assert.True(t, s.User.IsAuthenticated)
	assert.Equal(t, "tok", s.User.Token)
	assert.Same(t, user, s.User.User)
	assert.Equal(t, "Login successful!", s.User.Success)

	s.User.Resumes = []*domain.Resume{{ID: "R1"}}
	s = run(s, store.Fulfilled{Op: store.OpLogout})
	assert.False(t, s.User.IsAuthenticated)
	assert.Nil(t, s.User.User)
	assert.Empty(t, s.User.Resumes)
	assert.Empty(t, s.User.Token)

	s = run(s, store.SetToken{Token: "again"})
	assert.True(t, s.User.IsAuthenticated)
	s = run(s, store.ClearUserData{})
	assert.False(t, s.User.IsAuthenticated)
}

func TestToggleVisibilityMessage(t *testing.T) {
	s := store.InitialState("", time.Now())
	s = run(s, store.Fulfilled{Op: store.OpToggleVisibility, Payload: &domain.User{ID: "U1", IsProfilePublic: true}})
	assert.Equal(t, "Profile is now public", s.User.Success)
	s = run(s, store.Fulfilled{Op: store.OpToggleVisibility, Payload: &domain.User{ID: "U1"}})
	assert.Equal(t, "Profile is now private", s.User.Success)
}

func TestStatusAndBulkMessages(t *testing.T) {
	s := store.InitialState("", time.Now())
	s.Application.ReceivedApplications = []*domain.Application{{ID: "A1", Status: domain.AppStatusApplied}}

	s = run(s, store.Fulfilled{Op: store.OpUpdateApplicationStatus, Payload: &domain.Application{ID: "A1", Status: domain.AppStatusShortlisted}})
	assert.Equal(t, "Application status updated to SHORTLISTED", s.Application.Success)
	assert.Equal(t, domain.AppStatusShortlisted, s.Application.ReceivedApplications[0].Status)

	s = run(s, store.Fulfilled{Op: store.OpBulkUpdateApplications, Payload: &domain.BulkUpdateResult{TotalUpdated: 3}})
	assert.Equal(t, "Updated 3 applications", s.Application.Success)
}

func TestInitialStateDropsExpiredToken(t *testing.T) {
	now := time.Now()
	sign := func(exp time.Time) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		}).SignedString([]byte("secret"))
		require.NoError(t, err)
		return tok
	}

	assert.True(t, store.InitialState("opaque-token", now).User.IsAuthenticated)
	assert.False(t, store.InitialState("", now).User.IsAuthenticated)
	assert.True(t, store.InitialState(sign(now.Add(time.Hour)), now).User.IsAuthenticated)

	expired := store.InitialState(sign(now.Add(-time.Hour)), now)
	assert.False(t, expired.User.IsAuthenticated)
	assert.Empty(t, expired.User.Token)
}
