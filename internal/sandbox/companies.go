package sandbox

import (
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/security"
	"sort"
	"strings"
)

const defaultTopCompanies = 10

func (b *Backend) CreateCompany(caller Caller, in *domain.CompanyInput) (*domain.Company, error) {
	if !caller.is(domain.RoleEmployer) {
		return nil, apperror.Forbidden("Only employers can create companies")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.companies {
		if c.Owner.ID == caller.ID && strings.EqualFold(c.Name, in.Name) {
			return nil, apperror.Conflict("You already have a company with this name")
		}
	}

	now := b.now()
	c := &domain.Company{
		ID:        b.newID(),
		Owner:     domain.Ref[domain.User]{ID: caller.ID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCompanyInput(c, in)
	b.companies[c.ID] = c
	return b.companyView(c), nil
}

func applyCompanyInput(c *domain.Company, in *domain.CompanyInput) {
	c.Name = in.Name
	c.Description = in.Description
	c.Location = in.Location
	c.Industry = in.Industry
	c.Website = in.Website
	c.CompanySize = in.CompanySize
}

// companyView copies c and fills the derived counters.
func (b *Backend) companyView(c *domain.Company) *domain.Company {
	out := *c
	out.JobsPosted = 0
	for _, j := range b.jobs {
		if j.Company.ID == c.ID {
			out.JobsPosted++
		}
	}
	return &out
}

func (b *Backend) ListCompanies(q domain.CompanySearch) ListResult[*domain.Company] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return paginate(b.filterCompanies(func(c *domain.Company) bool {
		return (q.Keyword == "" || contains(c.Name, q.Keyword) || contains(c.Description, q.Keyword)) &&
			(q.Industry == "" || contains(c.Industry, q.Industry)) &&
			(q.Location == "" || contains(c.Location, q.Location))
	}), q.ListParams, "Companies")
}

func (b *Backend) MyCompanies(caller Caller, p domain.ListParams) ListResult[*domain.Company] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return paginate(b.filterCompanies(func(c *domain.Company) bool {
		return c.Owner.ID == caller.ID
	}), p, "Companies")
}

// filterCompanies returns views of the matching companies, newest first.
func (b *Backend) filterCompanies(keep func(*domain.Company) bool) []*domain.Company {
	var out []*domain.Company
	for _, c := range b.companies {
		if keep(c) {
			out = append(out, b.companyView(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (b *Backend) Company(id string) (*domain.Company, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.companies[id]
	if !ok {
		return nil, notFound("Company")
	}
	out := b.companyView(c)
	out.Owner = b.publicUser(c.Owner.ID)
	return out, nil
}

func (b *Backend) UpdateCompany(caller Caller, id string, in *domain.CompanyInput) (*domain.Company, error) {
	return b.mutateCompany(caller, id, func(c *domain.Company) error {
		applyCompanyInput(c, in)
		return nil
	})
}

func (b *Backend) DeleteCompany(caller Caller, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.companies[id]
	if !ok {
		return notFound("Company")
	}
	if c.Owner.ID != caller.ID && caller.Role != domain.RoleAdmin {
		return apperror.Forbidden("Not authorized to delete this company")
	}
	for _, j := range b.jobs {
		if j.Company.ID == id && j.Status == domain.JobStatusActive {
			return apperror.BadRequest("Cannot delete a company with active jobs")
		}
	}
	delete(b.companies, id)
	delete(b.reviews, id)
	return nil
}

func (b *Backend) UploadLogo(caller Caller, id, fileName string, content []byte) (*domain.Company, error) {
	res := security.ValidateUpload(security.UploadLogo, fileName, content)
	if !res.Valid {
		return nil, apperror.BadRequest(res.Error)
	}
	return b.mutateCompany(caller, id, func(c *domain.Company) error {
		c.LogoURL = "/uploads/logos/" + c.ID + res.Extension
		return nil
	})
}

func (b *Backend) CompanyStats(caller Caller, id string) (*domain.CompanyStats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.companies[id]
	if !ok {
		return nil, notFound("Company")
	}
	if c.Owner.ID != caller.ID && caller.Role != domain.RoleAdmin {
		return nil, apperror.Forbidden("Not authorized to view these statistics")
	}

	stats := &domain.CompanyStats{
		TotalReviews:  len(b.reviews[id]),
		AverageRating: c.AverageRating,
	}
	for _, j := range b.jobs {
		if j.Company.ID != id {
			continue
		}
		stats.TotalJobs++
		if j.Status == domain.JobStatusActive {
			stats.ActiveJobs++
		}
		stats.TotalApplications += len(j.Applications)
	}
	return stats, nil
}

func (b *Backend) AddReview(caller Caller, id string, in *domain.Review) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.companies[id]
	if !ok {
		return notFound("Company")
	}
	if c.Owner.ID == caller.ID {
		return apperror.BadRequest("You cannot review your own company")
	}
	for _, r := range b.reviews[id] {
		if r.userID == caller.ID {
			return apperror.Conflict("You have already reviewed this company")
		}
	}
	b.reviews[id] = append(b.reviews[id], review{userID: caller.ID, Review: *in})

	sum := 0
	for _, r := range b.reviews[id] {
		sum += r.Rating
	}
	next := *c
	next.AverageRating = float64(sum) / float64(len(b.reviews[id]))
	next.UpdatedAt = b.now()
	b.companies[id] = &next
	return nil
}

// TopCompanies ranks by average rating, then by number of jobs posted.
func (b *Backend) TopCompanies(limit int) []*domain.Company {
	if limit <= 0 {
		limit = defaultTopCompanies
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	all := b.filterCompanies(func(*domain.Company) bool { return true })
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].AverageRating != all[j].AverageRating {
			return all[i].AverageRating > all[j].AverageRating
		}
		return all[i].JobsPosted > all[j].JobsPosted
	})
	return all[:min(limit, len(all))]
}

func (b *Backend) VerifyCompany(caller Caller, id string) (*domain.Company, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, apperror.Forbidden("Only admins can verify companies")
	}
	return b.mutateCompany(caller, id, func(c *domain.Company) error {
		c.IsVerified = true
		return nil
	})
}

func (b *Backend) mutateCompany(caller Caller, id string, mutate func(*domain.Company) error) (*domain.Company, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.companies[id]
	if !ok {
		return nil, notFound("Company")
	}
	if c.Owner.ID != caller.ID && caller.Role != domain.RoleAdmin {
		return nil, apperror.Forbidden("Not authorized to modify this company")
	}
	next := *c
	if err := mutate(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = b.now()
	b.companies[id] = &next
	return b.companyView(&next), nil
}
