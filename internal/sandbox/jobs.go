package sandbox

import (
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"slices"
	"sort"
	"strings"
)

const defaultSimilarJobs = 5

func (b *Backend) CreateJob(caller Caller, in *domain.JobInput) (*domain.Job, error) {
	if !caller.is(domain.RoleEmployer) {
		return nil, apperror.Forbidden("Only employers can post jobs")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkCompanyOwner(caller, in.CompanyID); err != nil {
		return nil, err
	}

	now := b.now()
	j := &domain.Job{
		ID:        b.newID(),
		Status:    domain.JobStatusDraft,
		PostedBy:  domain.Ref[domain.User]{ID: caller.ID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyJobInput(j, in)
	b.jobs[j.ID] = j
	return b.jobView(j), nil
}

func (b *Backend) checkCompanyOwner(caller Caller, companyID string) error {
	c, ok := b.companies[companyID]
	if !ok {
		return notFound("Company")
	}
	if c.Owner.ID != caller.ID && caller.Role != domain.RoleAdmin {
		return apperror.Forbidden("You can only post jobs for your own companies")
	}
	return nil
}

func applyJobInput(j *domain.Job, in *domain.JobInput) {
	j.Title = in.Title
	j.Description = in.Description
	j.Company = domain.Ref[domain.Company]{ID: in.CompanyID}
	j.ExperienceLevel = in.ExperienceLevel
	j.JobType = in.JobType
	j.SkillsRequired = slices.Clone(in.SkillsRequired)
	j.Salary, j.Locations = nil, nil
	if in.Salary != nil {
		s := *in.Salary
		j.Salary = &s
	}
	if in.Locations != nil {
		l := *in.Locations
		j.Locations = &l
	}
	closing := in.ClosingDate
	j.ClosingDate = &closing
}

// jobView copies j with its company populated.
func (b *Backend) jobView(j *domain.Job) *domain.Job {
	out := *j
	if c, ok := b.companies[j.Company.ID]; ok {
		out.Company = domain.RefTo(c.ID, b.companyView(c))
	}
	return &out
}

func (b *Backend) ListJobs(q domain.JobSearch) ListResult[*domain.Job] {
	status := q.Status
	if status == "" {
		status = domain.JobStatusActive
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return paginate(b.filterJobs(func(j *domain.Job) bool {
		return j.Status == status && matchesSearch(j, q)
	}), q.ListParams, "Jobs")
}

func matchesSearch(j *domain.Job, q domain.JobSearch) bool {
	if q.Keyword != "" && !contains(j.Title, q.Keyword) && !contains(j.Description, q.Keyword) &&
		!slices.ContainsFunc(j.SkillsRequired, func(s string) bool { return contains(s, q.Keyword) }) {
		return false
	}
	if q.Location != "" {
		l := j.Locations
		if l == nil || !(contains(l.City, q.Location) || contains(l.State, q.Location) || contains(l.Country, q.Location)) {
			return false
		}
	}
	if q.JobType != "" && j.JobType != q.JobType {
		return false
	}
	if q.ExperienceLevel != "" && j.ExperienceLevel != q.ExperienceLevel {
		return false
	}
	if q.MinSalary > 0 && (j.Salary == nil || j.Salary.Max < float64(q.MinSalary)) {
		return false
	}
	return true
}

// filterJobs returns views of the matching jobs, newest first.
func (b *Backend) filterJobs(keep func(*domain.Job) bool) []*domain.Job {
	var out []*domain.Job
	for _, j := range b.jobs {
		if keep(j) {
			out = append(out, b.jobView(j))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

func (b *Backend) Job(id string) (*domain.Job, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	j, ok := b.jobs[id]
	if !ok {
		return nil, notFound("Job")
	}
	out := b.jobView(j)
	out.PostedBy = b.publicUser(j.PostedBy.ID)
	return out, nil
}

func (b *Backend) MyJobs(caller Caller, p domain.ListParams) ListResult[*domain.Job] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return paginate(b.filterJobs(func(j *domain.Job) bool {
		return j.PostedBy.ID == caller.ID
	}), p, "Jobs")
}

func (b *Backend) UpdateJob(caller Caller, id string, in *domain.JobInput) (*domain.Job, error) {
	return b.mutateJob(caller, id, func(j *domain.Job) error {
		if in.CompanyID != j.Company.ID {
			if err := b.checkCompanyOwner(caller, in.CompanyID); err != nil {
				return err
			}
		}
		applyJobInput(j, in)
		return nil
	})
}

// DeleteJob drops the job together with its applications and threads.
func (b *Backend) DeleteJob(caller Caller, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	j, ok := b.jobs[id]
	if !ok {
		return notFound("Job")
	}
	if j.PostedBy.ID != caller.ID && caller.Role != domain.RoleAdmin {
		return apperror.Forbidden("Not authorized to delete this job")
	}
	delete(b.jobs, id)
	for appID, a := range b.applications {
		if a.Job.ID == id {
			delete(b.applications, appID)
			delete(b.threads, appID)
		}
	}
	for user, ids := range b.saved {
		b.saved[user] = slices.DeleteFunc(slices.Clone(ids), func(s string) bool { return s == id })
	}
	return nil
}

func (b *Backend) PublishJob(caller Caller, id string) (*domain.Job, error) {
	return b.mutateJob(caller, id, func(j *domain.Job) error {
		switch j.Status {
		case domain.JobStatusDraft:
		case domain.JobStatusActive:
			return apperror.BadRequest("Job is already published")
		default:
			return apperror.BadRequest("Only draft jobs can be published")
		}
		j.Status = domain.JobStatusActive
		return nil
	})
}

func (b *Backend) CloseJob(caller Caller, id string) (*domain.Job, error) {
	return b.mutateJob(caller, id, func(j *domain.Job) error {
		if j.Status != domain.JobStatusActive {
			return apperror.BadRequest("Only active jobs can be closed")
		}
		j.Status = domain.JobStatusClosed
		return nil
	})
}

func (b *Backend) TrackView(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	j, ok := b.jobs[id]
	if !ok {
		return notFound("Job")
	}
	next := *j
	next.Views++
	b.jobs[id] = &next
	return nil
}

// SimilarJobs ranks active jobs by shared skills, same experience level and
// same company.
func (b *Backend) SimilarJobs(id string, limit int) ([]*domain.Job, error) {
	if limit <= 0 {
		limit = defaultSimilarJobs
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	ref, ok := b.jobs[id]
	if !ok {
		return nil, notFound("Job")
	}

	type scored struct {
		job   *domain.Job
		score int
	}
	var ranked []scored
	for _, j := range b.jobs {
		if j.ID == id || j.Status != domain.JobStatusActive {
			continue
		}
		score := 0
		for _, s := range j.SkillsRequired {
			if slices.ContainsFunc(ref.SkillsRequired, func(r string) bool { return strings.EqualFold(r, s) }) {
				score += 2
			}
		}
		if j.ExperienceLevel == ref.ExperienceLevel {
			score++
		}
		if j.Company.ID == ref.Company.ID {
			score++
		}
		if score > 0 {
			ranked = append(ranked, scored{job: j, score: score})
		}
	}
	sort.Slice(ranked, func(i, k int) bool {
		if ranked[i].score != ranked[k].score {
			return ranked[i].score > ranked[k].score
		}
		return ranked[i].job.CreatedAt.After(ranked[k].job.CreatedAt)
	})

	out := make([]*domain.Job, 0, min(limit, len(ranked)))
	for _, s := range ranked[:min(limit, len(ranked))] {
		out = append(out, b.jobView(s.job))
	}
	return out, nil
}

func (b *Backend) SaveJob(caller Caller, id string) error {
	if !caller.is(domain.RoleJobSeeker) {
		return apperror.Forbidden("Only job seekers can save jobs")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.jobs[id]; !ok {
		return notFound("Job")
	}
	if slices.Contains(b.saved[caller.ID], id) {
		return apperror.Conflict("Job already saved")
	}
	b.saved[caller.ID] = append(slices.Clone(b.saved[caller.ID]), id)
	return nil
}

func (b *Backend) UnsaveJob(caller Caller, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := b.saved[caller.ID]
	i := slices.Index(ids, id)
	if i < 0 {
		return notFound("Saved job")
	}
	b.saved[caller.ID] = slices.Delete(slices.Clone(ids), i, i+1)
	return nil
}

// SavedJobs lists the caller's saved jobs, most recently saved first.
func (b *Backend) SavedJobs(caller Caller, p domain.ListParams) ListResult[*domain.Job] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := b.saved[caller.ID]
	out := make([]*domain.Job, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if j, ok := b.jobs[ids[i]]; ok {
			out = append(out, b.jobView(j))
		}
	}
	return paginate(out, p, "Jobs")
}

func (b *Backend) JobStats(caller Caller) (*domain.JobStats, error) {
	if !caller.is(domain.RoleEmployer) {
		return nil, apperror.Forbidden("Only employers can view job statistics")
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	stats := &domain.JobStats{}
	for _, j := range b.jobs {
		if j.PostedBy.ID != caller.ID {
			continue
		}
		stats.TotalJobs++
		switch j.Status {
		case domain.JobStatusActive:
			stats.ActiveJobs++
		case domain.JobStatusDraft:
			stats.DraftJobs++
		case domain.JobStatusClosed:
			stats.ClosedJobs++
		}
		stats.TotalViews += j.Views
		stats.TotalApplications += len(j.Applications)
	}
	return stats, nil
}

func (b *Backend) mutateJob(caller Caller, id string, mutate func(*domain.Job) error) (*domain.Job, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	j, ok := b.jobs[id]
	if !ok {
		return nil, notFound("Job")
	}
	if j.PostedBy.ID != caller.ID && caller.Role != domain.RoleAdmin {
		return nil, apperror.Forbidden("Not authorized to modify this job")
	}
	next := *j
	if err := mutate(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = b.now()
	b.jobs[id] = &next
	return b.jobView(&next), nil
}
