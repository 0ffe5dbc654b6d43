package sandbox

import (
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"slices"
	"sort"
	"strings"
)

func (b *Backend) Apply(caller Caller, in *domain.ApplyInput) (*domain.Application, error) {
	if caller.Role != domain.RoleJobSeeker {
		return nil, apperror.Forbidden("Only job seekers can apply for jobs")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	j, ok := b.jobs[in.JobID]
	if !ok {
		return nil, notFound("Job")
	}
	if j.Status != domain.JobStatusActive {
		return nil, apperror.BadRequest("This job is not accepting applications")
	}
	if _, ok := b.resumes[in.ResumeID]; !ok || b.resumeOwner[in.ResumeID] != caller.ID {
		return nil, notFound("Resume")
	}
	for _, a := range b.applications {
		if a.Job.ID == in.JobID && a.Seeker.ID == caller.ID {
			return nil, apperror.Conflict("You have already applied for this job")
		}
	}

	now := b.now()
	available := in.AvailableFrom
	a := &domain.Application{
		ID:            b.newID(),
		Job:           domain.Ref[domain.Job]{ID: j.ID},
		Employer:      domain.Ref[domain.User]{ID: j.PostedBy.ID},
		Seeker:        domain.Ref[domain.User]{ID: caller.ID},
		ResumeID:      in.ResumeID,
		Status:        domain.AppStatusApplied,
		CoverLetter:   in.CoverLetter,
		Phone:         in.Phone,
		Portfolio:     in.Portfolio,
		AvailableFrom: &available,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	b.applications[a.ID] = a

	nextJob := *j
	nextJob.Applications = append(slices.Clone(j.Applications), a.ID)
	b.jobs[j.ID] = &nextJob

	return b.applicationView(a), nil
}

// applicationView copies a with job, employer and seeker populated.
func (b *Backend) applicationView(a *domain.Application) *domain.Application {
	out := *a
	if j, ok := b.jobs[a.Job.ID]; ok {
		out.Job = domain.RefTo(j.ID, b.jobView(j))
	}
	out.Employer = b.publicUser(a.Employer.ID)
	out.Seeker = b.publicUser(a.Seeker.ID)
	return &out
}

func (b *Backend) MyApplications(caller Caller, q domain.ApplicationFilter) ListResult[*domain.Application] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return paginate(b.filterApplications(q, func(a *domain.Application) bool {
		return a.Seeker.ID == caller.ID
	}), q.ListParams, "Applications")
}

func (b *Backend) ReceivedApplications(caller Caller, q domain.ApplicationFilter) (ListResult[*domain.Application], error) {
	if !caller.is(domain.RoleEmployer) {
		return ListResult[*domain.Application]{}, apperror.Forbidden("Only employers can view received applications")
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return paginate(b.filterApplications(q, func(a *domain.Application) bool {
		return a.Employer.ID == caller.ID
	}), q.ListParams, "Applications"), nil
}

func (b *Backend) AllApplications(caller Caller, q domain.ApplicationFilter) (ListResult[*domain.Application], error) {
	if caller.Role != domain.RoleAdmin {
		return ListResult[*domain.Application]{}, apperror.Forbidden("Only admins can list all applications")
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return paginate(b.filterApplications(q, func(*domain.Application) bool { return true }), q.ListParams, "Applications"), nil
}

func (b *Backend) filterApplications(q domain.ApplicationFilter, keep func(*domain.Application) bool) []*domain.Application {
	var out []*domain.Application
	for _, a := range b.applications {
		if !keep(a) ||
			(q.Status != "" && !strings.EqualFold(q.Status, "ALL") && a.Status != q.Status) ||
			(q.JobID != "" && a.Job.ID != q.JobID) {
			continue
		}
		out = append(out, b.applicationView(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (b *Backend) Application(caller Caller, id string) (*domain.Application, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	a, err := b.participant(caller, id)
	if err != nil {
		return nil, err
	}
	return b.applicationView(a), nil
}

// participant returns the application when caller is its seeker, its
// employer or an admin.
func (b *Backend) participant(caller Caller, id string) (*domain.Application, error) {
	a, ok := b.applications[id]
	if !ok {
		return nil, notFound("Application")
	}
	if a.Seeker.ID != caller.ID && a.Employer.ID != caller.ID && caller.Role != domain.RoleAdmin {
		return nil, apperror.Forbidden("Not authorized to access this application")
	}
	return a, nil
}

func (b *Backend) UpdateApplicationStatus(caller Caller, id string, in *domain.StatusUpdate) (*domain.Application, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := b.employerOf(caller, id)
	if err != nil {
		return nil, err
	}
	if a.Status == domain.AppStatusWithdrawn {
		return nil, apperror.BadRequest("Application has been withdrawn")
	}
	next := *a
	next.Status = in.Status
	next.UpdatedAt = b.now()
	b.applications[id] = &next
	return b.applicationView(&next), nil
}

func (b *Backend) employerOf(caller Caller, id string) (*domain.Application, error) {
	a, ok := b.applications[id]
	if !ok {
		return nil, notFound("Application")
	}
	if a.Employer.ID != caller.ID && caller.Role != domain.RoleAdmin {
		return nil, apperror.Forbidden("Not authorized to manage this application")
	}
	return a, nil
}

// Withdraw deletes the seeker's application and its thread.
func (b *Backend) Withdraw(caller Caller, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.applications[id]
	if !ok {
		return notFound("Application")
	}
	if a.Seeker.ID != caller.ID {
		return apperror.Forbidden("Not authorized to withdraw this application")
	}
	if a.Status == domain.AppStatusAccepted {
		return apperror.BadRequest("Accepted applications cannot be withdrawn")
	}
	delete(b.applications, id)
	delete(b.threads, id)
	if j, ok := b.jobs[a.Job.ID]; ok {
		next := *j
		next.Applications = slices.DeleteFunc(slices.Clone(j.Applications), func(s string) bool { return s == id })
		b.jobs[j.ID] = &next
	}
	return nil
}

func (b *Backend) SendMessage(caller Caller, id string, in *domain.MessageInput) (*domain.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.participant(caller, id); err != nil {
		return nil, err
	}
	msg := domain.Message{
		ID:        b.newID(),
		Sender:    b.publicUser(caller.ID),
		Content:   strings.TrimSpace(in.Message),
		CreatedAt: b.now(),
	}
	thread := b.thread(id)
	next := *thread
	next.Messages = append(slices.Clone(thread.Messages), msg)
	b.threads[id] = &next
	return &msg, nil
}

func (b *Backend) thread(applicationID string) *domain.Conversation {
	if t, ok := b.threads[applicationID]; ok {
		return t
	}
	t := &domain.Conversation{ID: b.newID(), ApplicationID: applicationID, Messages: []domain.Message{}}
	b.threads[applicationID] = t
	return t
}

func (b *Backend) Conversation(caller Caller, id string) (*domain.Conversation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.participant(caller, id); err != nil {
		return nil, err
	}
	out := *b.thread(id)
	return &out, nil
}

func (b *Backend) RateApplication(caller Caller, id string, in *domain.RatingInput) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := b.employerOf(caller, id)
	if err != nil {
		return err
	}
	next := *a
	next.Rating = in.Rating
	next.UpdatedAt = b.now()
	b.applications[id] = &next
	return nil
}

// ApplicationStats counts the employer's received applications, optionally
// for one job.
func (b *Backend) ApplicationStats(caller Caller, jobID string) (*domain.ApplicationStats, error) {
	if !caller.is(domain.RoleEmployer) {
		return nil, apperror.Forbidden("Only employers can view application statistics")
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	stats := &domain.ApplicationStats{ByStatus: make(map[string]int, len(domain.ApplicationStatuses))}
	for _, s := range domain.ApplicationStatuses {
		stats.ByStatus[s] = 0
	}
	for _, a := range b.applications {
		if (a.Employer.ID != caller.ID && caller.Role != domain.RoleAdmin) || (jobID != "" && a.Job.ID != jobID) {
			continue
		}
		stats.Total++
		stats.ByStatus[a.Status]++
	}
	return stats, nil
}

// BulkUpdate changes the status of every listed application the caller
// manages. Unknown or foreign ids are skipped.
func (b *Backend) BulkUpdate(caller Caller, in *domain.BulkStatusUpdate) (*domain.BulkUpdateResult, error) {
	if !caller.is(domain.RoleEmployer) {
		return nil, apperror.Forbidden("Only employers can update applications")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	res := &domain.BulkUpdateResult{}
	for _, id := range in.ApplicationIDs {
		a, err := b.employerOf(caller, id)
		if err != nil || a.Status == domain.AppStatusWithdrawn {
			continue
		}
		next := *a
		next.Status = in.Status
		next.UpdatedAt = now
		b.applications[id] = &next
		res.TotalUpdated++
	}
	return res, nil
}
