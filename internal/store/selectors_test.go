package store_test

import (
	"testing"
	"time"

	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthSelectorMemoizes(t *testing.T) {
	var sel store.AuthSelector
	s := store.InitialState("", time.Now())
	s.User.User = &domain.User{ID: "U1"}

	first := sel.Select(s)
	assert.Same(t, first, sel.Select(s))

	s.User.Success = "Login successful!"
	changed := sel.Select(s)
	assert.NotSame(t, first, changed)
	assert.Equal(t, "Login successful!", changed.Success)

	// an equal but distinct user is a change
	s.User.User = &domain.User{ID: "U1"}
	assert.NotSame(t, changed, sel.Select(s))
}

func TestResumesSelectorMemoizes(t *testing.T) {
	var sel store.ResumesSelector
	s := store.InitialState("", time.Now())
	s.User.Resumes = []*domain.Resume{{ID: "R1"}}

	first := sel.Select(s)
	assert.Same(t, first, sel.Select(s))

	s = store.Reduce(s, store.Fulfilled{Op: store.OpUploadResume, Payload: &domain.Resume{ID: "R2"}})
	next := sel.Select(s)
	assert.NotSame(t, first, next)
	assert.Len(t, next.Resumes, 2)
}

func application(id, status, title, city, employer string, created time.Time, maxSalary float64) *domain.Application {
	job := &domain.Job{ID: "J-" + id, Title: title, Locations: &domain.Location{City: city}, Salary: &domain.Salary{Max: maxSalary}}
	emp := &domain.User{ID: "E-" + id, FullName: employer}
	return &domain.Application{
		ID:        id,
		Status:    status,
		Job:       domain.RefTo(job.ID, job),
		Employer:  domain.RefTo(emp.ID, emp),
		CreatedAt: created,
	}
}

func TestApplicationViews(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	apps := []*domain.Application{
		application("A1", domain.AppStatusApplied, "Backend Engineer", "São Paulo", "Acme", base, 90000),
		application("A2", domain.AppStatusShortlisted, "Designer", "Berlin", "Zoë Studio", base.Add(48*time.Hour), 70000),
		application("A3", domain.AppStatusApplied, "Data Engineer", "Austin", "Globex", base.Add(24*time.Hour), 120000),
	}

	t.Run("counts include every status", func(t *testing.T) {
		counts := store.ApplicationCounts(apps)
		assert.Equal(t, 3, counts.Total)
		assert.Equal(t, 2, counts.ByStatus[domain.AppStatusApplied])
		assert.Equal(t, 0, counts.ByStatus[domain.AppStatusRejected])
	})

	t.Run("search ignores case and accents", func(t *testing.T) {
		got := store.FilterApplications(apps, "ALL", "sao paulo")
		require.Len(t, got, 1)
		assert.Equal(t, "A1", got[0].ID)

		got = store.FilterApplications(apps, "", "zoe")
		require.Len(t, got, 1)
		assert.Equal(t, "A2", got[0].ID)
	})

	t.Run("status and search combine", func(t *testing.T) {
		got := store.FilterApplications(apps, domain.AppStatusApplied, "engineer")
		assert.Len(t, got, 2)
		assert.Empty(t, store.FilterApplicantsByStatus(apps, domain.AppStatusRejected))
	})

	t.Run("sort orders", func(t *testing.T) {
		ids := func(list []*domain.Application) []string {
			out := make([]string, len(list))
			for i, a := range list {
				out[i] = a.ID
			}
			return out
		}
		assert.Equal(t, []string{"A2", "A3", "A1"}, ids(store.SortApplications(apps, store.SortRecent)))
		assert.Equal(t, []string{"A1", "A3", "A2"}, ids(store.SortApplications(apps, store.SortOldest)))
		assert.Equal(t, []string{"A3", "A1", "A2"}, ids(store.SortApplications(apps, store.SortSalaryHigh)))
		assert.Equal(t, []string{"A1", "A2", "A3"}, ids(apps), "input must not be reordered")
	})
}

func TestJobCountsByStatus(t *testing.T) {
	counts := store.JobCountsByStatus([]*domain.Job{
		{ID: "1", Status: domain.JobStatusDraft},
		{ID: "2", Status: domain.JobStatusActive},
		{ID: "3", Status: domain.JobStatusActive},
	})
	assert.Equal(t, 1, counts[domain.JobStatusDraft])
	assert.Equal(t, 2, counts[domain.JobStatusActive])
	assert.Equal(t, 0, counts[domain.JobStatusClosed])
}
