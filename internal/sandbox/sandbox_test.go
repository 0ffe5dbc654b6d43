package sandbox

import (
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// tickingClock advances one second per call so creation order is stable.
func tickingClock() func() time.Time {
	t := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func seeded(t *testing.T) *Backend {
	t.Helper()
	b := New(WithClock(tickingClock()), WithHashCost(bcrypt.MinCost))
	require.NoError(t, b.Seed())
	return b
}

func login(t *testing.T, b *Backend, email string) Caller {
	t.Helper()
	u, err := b.Login(&domain.LoginInput{Email: email, Password: SeedPassword})
	require.NoError(t, err)
	return Caller{ID: u.ID, Role: u.Role}
}

func status(err error) int {
	return apperror.StatusCode(err)
}

func TestRegisterAndLogin(t *testing.T) {
	b := New(WithClock(tickingClock()), WithHashCost(bcrypt.MinCost))

	u, err := b.Register(&domain.RegisterInput{
		FullName: "Jo Doe", Email: "Jo@Example.com", Password: "Secret123", Role: domain.RoleJobSeeker,
	})
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", u.Email)
	assert.NotNil(t, u.SeekerProfile)

	_, err = b.Register(&domain.RegisterInput{FullName: "Jo", Email: "jo@example.com", Password: "Secret123"})
	assert.Equal(t, http.StatusConflict, status(err))

	_, err = b.Login(&domain.LoginInput{Email: "jo@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status(err))

	got, err := b.Login(&domain.LoginInput{Email: " JO@example.com ", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestChangePassword(t *testing.T) {
	b := seeded(t)
	seeker := login(t, b, SeedSeekerEmail)

	err := b.ChangePassword(seeker, &domain.ChangePasswordInput{CurrentPassword: "nope", NewPassword: "Changed123"})
	assert.Equal(t, http.StatusBadRequest, status(err))

	require.NoError(t, b.ChangePassword(seeker, &domain.ChangePasswordInput{CurrentPassword: SeedPassword, NewPassword: "Changed123"}))
	_, err = b.Login(&domain.LoginInput{Email: SeedSeekerEmail, Password: "Changed123"})
	assert.NoError(t, err)
}

func TestJobLifecycle(t *testing.T) {
	b := seeded(t)
	employer := login(t, b, SeedEmployerEmail)

	mine := b.MyJobs(employer, domain.ListParams{})
	require.Len(t, mine.Items, 3)
	assert.Equal(t, 3, mine.Pagination["totalJobs"])
	assert.Equal(t, 10, mine.Pagination["jobsPerPage"])

	public := b.ListJobs(domain.JobSearch{})
	assert.Len(t, public.Items, 2, "drafts are not listed")

	var draft *domain.Job
	for _, j := range mine.Items {
		if j.Status == domain.JobStatusDraft {
			draft = j
		}
	}
	require.NotNil(t, draft)
	assert.True(t, draft.Company.Populated())

	published, err := b.PublishJob(employer, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusActive, published.Status)

	_, err = b.PublishJob(employer, draft.ID)
	assert.Equal(t, http.StatusBadRequest, status(err))

	closed, err := b.CloseJob(employer, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusClosed, closed.Status)

	_, err = b.PublishJob(employer, draft.ID)
	assert.Equal(t, http.StatusBadRequest, status(err))
	assert.Equal(t, "Only draft jobs can be published", apperror.MessageOr(err, ""))
	jobs := b.ListJobs(domain.JobSearch{})
	assert.Len(t, jobs.Items, 2, "a closed job stays closed")

	seeker := login(t, b, SeedSeekerEmail)
	_, err = b.PublishJob(seeker, draft.ID)
	assert.Equal(t, http.StatusForbidden, status(err))
}

func TestSearchAndSimilar(t *testing.T) {
	b := seeded(t)

	res := b.ListJobs(domain.JobSearch{Keyword: "redis"})
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Backend Engineer (Go)", res.Items[0].Title)

	res = b.ListJobs(domain.JobSearch{Location: "austin"})
	assert.Len(t, res.Items, 1)

	res = b.ListJobs(domain.JobSearch{MinSalary: 120000})
	assert.Len(t, res.Items, 1)

	similar, err := b.SimilarJobs(res.Items[0].ID, 0)
	require.NoError(t, err)
	require.Len(t, similar, 1)
	assert.Equal(t, "Frontend Developer", similar[0].Title)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := paginate(items, domain.ListParams{Page: 2, Limit: 2}, "Things")
	assert.Equal(t, []int{3, 4}, page.Items)
	assert.Equal(t, 3, page.Pagination["totalPages"])
	assert.Equal(t, 5, page.Pagination["totalThings"])
	assert.Equal(t, true, page.Pagination["hasNextPage"])
	assert.Equal(t, true, page.Pagination["hasPrevPage"])

	page = paginate(items, domain.ListParams{Page: 9, Limit: 2}, "Things")
	assert.Empty(t, page.Items)
}

func TestSetDefaultResumeKeepsOneDefault(t *testing.T) {
	b := seeded(t)
	seeker := login(t, b, SeedSeekerEmail)

	second, err := b.UploadResume(seeker, "", "second.pdf", minimalPDF)
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
	assert.Equal(t, "second", second.Title)

	_, err = b.SetDefaultResume(seeker, second.ID)
	require.NoError(t, err)
	_, err = b.SetDefaultResume(seeker, second.ID)
	require.NoError(t, err)

	defaults := 0
	for _, r := range b.ListResumes(seeker, domain.ListParams{}).Items {
		if r.IsDefault {
			defaults++
			assert.Equal(t, second.ID, r.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	_, err = b.UploadResume(seeker, "bad", "notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, status(err))
}

func TestResumeItems(t *testing.T) {
	b := seeded(t)
	seeker := login(t, b, SeedSeekerEmail)
	resume := b.ListResumes(seeker, domain.ListParams{}).Items[0]

	r, err := b.UpdateResumeData(seeker, resume.ID, &domain.ResumeDataInput{
		DataType: domain.ResumeExperience,
		Data:     []byte(`{"title":"Engineer","organization":"Acme"}`),
	})
	require.NoError(t, err)
	require.Len(t, r.Experience, 1)
	itemID := r.Experience[0].ID
	assert.NotEmpty(t, itemID)

	ref := domain.ResumeItemRef{ResumeID: resume.ID, ItemType: domain.ResumeExperience, ItemID: itemID}
	r, err = b.UpdateResumeItem(seeker, ref, &domain.ResumeEntry{Title: "Senior Engineer"})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", r.Experience[0].Title)
	assert.Equal(t, itemID, r.Experience[0].ID)

	require.NoError(t, b.DeleteResumeItem(seeker, ref))
	err = b.DeleteResumeItem(seeker, ref)
	assert.Equal(t, http.StatusNotFound, status(err))
}

func TestApplyWithdrawAndMessages(t *testing.T) {
	b := seeded(t)
	seeker := login(t, b, SeedSeekerEmail)
	employer := login(t, b, SeedEmployerEmail)

	mine := b.MyApplications(seeker, domain.ApplicationFilter{})
	require.Len(t, mine.Items, 1)
	app := mine.Items[0]
	assert.True(t, app.Job.Populated())
	assert.Equal(t, "Backend Engineer (Go)", app.Job.Value.Title)

	_, err := b.Apply(seeker, &domain.ApplyInput{JobID: app.Job.ID, ResumeID: app.ResumeID})
	assert.Equal(t, http.StatusConflict, status(err))

	conv, err := b.Conversation(seeker, app.ID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, app.ID, conv.ApplicationID)

	msg, err := b.SendMessage(seeker, app.ID, &domain.MessageInput{Message: " Yes, Thursday works. "})
	require.NoError(t, err)
	assert.Equal(t, "Yes, Thursday works.", msg.Content)
	assert.Equal(t, seeker.ID, msg.Sender.ID)

	updated, err := b.UpdateApplicationStatus(employer, app.ID, &domain.StatusUpdate{Status: domain.AppStatusShortlisted})
	require.NoError(t, err)
	assert.Equal(t, domain.AppStatusShortlisted, updated.Status)

	stats, err := b.ApplicationStats(employer, "")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[domain.AppStatusShortlisted])

	require.NoError(t, b.Withdraw(seeker, app.ID))
	assert.Empty(t, b.MyApplications(seeker, domain.ApplicationFilter{}).Items)
	job, err := b.Job(app.Job.ID)
	require.NoError(t, err)
	assert.NotContains(t, job.Applications, app.ID)
}

func TestBulkUpdateSkipsForeignApplications(t *testing.T) {
	b := seeded(t)
	employer := login(t, b, SeedEmployerEmail)
	received, err := b.ReceivedApplications(employer, domain.ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, received.Items, 1)

	res, err := b.BulkUpdate(employer, &domain.BulkStatusUpdate{
		ApplicationIDs: []string{received.Items[0].ID, "missing"},
		Status:         domain.AppStatusReviewing,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalUpdated)
}

func TestCompanyReviewsAndVerify(t *testing.T) {
	b := seeded(t)
	employer := login(t, b, SeedEmployerEmail)
	seeker := login(t, b, SeedSeekerEmail)
	admin := login(t, b, SeedAdminEmail)
	company := b.MyCompanies(employer, domain.ListParams{}).Items[0]
	assert.Equal(t, 3, company.JobsPosted)

	err := b.AddReview(employer, company.ID, &domain.Review{Rating: 5})
	assert.Equal(t, http.StatusBadRequest, status(err))

	require.NoError(t, b.AddReview(seeker, company.ID, &domain.Review{Rating: 4}))
	err = b.AddReview(seeker, company.ID, &domain.Review{Rating: 1})
	assert.Equal(t, http.StatusConflict, status(err))

	top := b.TopCompanies(0)
	require.Len(t, top, 1)
	assert.InDelta(t, 4.0, top[0].AverageRating, 0.001)

	_, err = b.VerifyCompany(employer, company.ID)
	assert.Equal(t, http.StatusForbidden, status(err))
	verified, err := b.VerifyCompany(admin, company.ID)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	err = b.DeleteCompany(employer, company.ID)
	assert.Equal(t, http.StatusBadRequest, status(err), "company still has active jobs")
}

func TestSavedJobs(t *testing.T) {
	b := seeded(t)
	seeker := login(t, b, SeedSeekerEmail)
	job := b.ListJobs(domain.JobSearch{}).Items[0]

	require.NoError(t, b.SaveJob(seeker, job.ID))
	assert.Equal(t, http.StatusConflict, status(b.SaveJob(seeker, job.ID)))
	assert.Len(t, b.SavedJobs(seeker, domain.ListParams{}).Items, 1)

	require.NoError(t, b.UnsaveJob(seeker, job.ID))
	assert.Equal(t, http.StatusNotFound, status(b.UnsaveJob(seeker, job.ID)))
}
