package store

import (
	"cmp"
	"go-careerbridge/internal/domain"
	"slices"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AuthView bundles the auth fields the session screens read together.
type AuthView struct {
	IsAuthenticated bool
	User            *domain.User
	Loading         bool
	Error           string
	Success         string
	Token           string
}

// AuthSelector memoizes AuthView: Select returns the previous pointer while
// every field is unchanged (the user compared by pointer).
type AuthSelector struct {
	mu   sync.Mutex
	last *AuthView
}

func (sel *AuthSelector) Select(st State) *AuthView {
	v := AuthView{
		IsAuthenticated: st.User.IsAuthenticated,
		User:            st.User.User,
		Loading:         st.User.Loading,
		Error:           st.User.Error,
		Success:         st.User.Success,
		Token:           st.User.Token,
	}
	sel.mu.Lock()
	defer sel.mu.Unlock()
	if sel.last != nil && *sel.last == v {
		return sel.last
	}
	sel.last = &v
	return sel.last
}

type ResumesView struct {
	Resumes       []*domain.Resume
	CurrentResume *domain.Resume
	Loading       bool
	Pagination    domain.Pagination
}

// ResumesSelector memoizes ResumesView. The list is compared by identity:
// same backing array and length.
type ResumesSelector struct {
	mu   sync.Mutex
	last *ResumesView
}

func (sel *ResumesSelector) Select(st State) *ResumesView {
	u := st.User
	sel.mu.Lock()
	defer sel.mu.Unlock()
	if l := sel.last; l != nil &&
		sameSlice(l.Resumes, u.Resumes) &&
		l.CurrentResume == u.CurrentResume &&
		l.Loading == u.ResumeLoading &&
		l.Pagination == u.Pagination {
		return l
	}
	sel.last = &ResumesView{
		Resumes:       u.Resumes,
		CurrentResume: u.CurrentResume,
		Loading:       u.ResumeLoading,
		Pagination:    u.Pagination,
	}
	return sel.last
}

func sameSlice[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// DefaultResume returns the resume flagged as default, or nil.
func DefaultResume(resumes []*domain.Resume) *domain.Resume {
	for _, r := range resumes {
		if r.IsDefault {
			return r
		}
	}
	return nil
}

type StatusCounts struct {
	Total    int
	ByStatus map[string]int
}

// ApplicationCounts tallies apps per status. Every known status is present
// in ByStatus, zero or not.
func ApplicationCounts(apps []*domain.Application) StatusCounts {
	counts := StatusCounts{Total: len(apps), ByStatus: make(map[string]int, len(domain.ApplicationStatuses))}
	for _, s := range domain.ApplicationStatuses {
		counts.ByStatus[s] = 0
	}
	for _, a := range apps {
		counts.ByStatus[a.Status]++
	}
	return counts
}

// FilterApplications keeps apps matching status ("" or "ALL" for any) whose
// job title, job city or state, or employer name contains query. Matching
// ignores case and accents.
func FilterApplications(apps []*domain.Application, status, query string) []*domain.Application {
	status = strings.ToUpper(strings.TrimSpace(status))
	needle := normalizeText(strings.TrimSpace(query))
	out := make([]*domain.Application, 0, len(apps))
	for _, a := range apps {
		if status != "" && status != "ALL" && a.Status != status {
			continue
		}
		if needle != "" && !matchesApplication(a, needle) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesApplication(a *domain.Application, needle string) bool {
	var fields []string
	if job := a.Job.Value; job != nil {
		fields = append(fields, job.Title)
		if job.Locations != nil {
			fields = append(fields, job.Locations.City, job.Locations.State)
		}
	}
	if emp := a.Employer.Value; emp != nil {
		fields = append(fields, emp.FullName)
	}
	for _, f := range fields {
		if f != "" && strings.Contains(normalizeText(f), needle) {
			return true
		}
	}
	return false
}

const (
	SortRecent     = "recent"
	SortOldest     = "oldest"
	SortSalaryHigh = "salary-high"
)

// SortApplications returns a sorted copy of apps. Unknown orders keep the
// input order.
func SortApplications(apps []*domain.Application, order string) []*domain.Application {
	out := slices.Clone(apps)
	switch order {
	case SortRecent:
		slices.SortStableFunc(out, func(a, b *domain.Application) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortOldest:
		slices.SortStableFunc(out, func(a, b *domain.Application) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortSalaryHigh:
		slices.SortStableFunc(out, func(a, b *domain.Application) int {
			return cmp.Compare(maxSalary(b), maxSalary(a))
		})
	}
	return out
}

func maxSalary(a *domain.Application) float64 {
	if a.Job.Value == nil || a.Job.Value.Salary == nil {
		return 0
	}
	return a.Job.Value.Salary.Max
}

// JobCountsByStatus counts jobs per status.
func JobCountsByStatus(jobs []*domain.Job) map[string]int {
	counts := map[string]int{
		domain.JobStatusDraft:  0,
		domain.JobStatusActive: 0,
		domain.JobStatusClosed: 0,
	}
	for _, j := range jobs {
		counts[j.Status]++
	}
	return counts
}

// FilterApplicantsByStatus keeps received applications with the given
// status; "" or "ALL" keeps everything.
func FilterApplicantsByStatus(apps []*domain.Application, status string) []*domain.Application {
	return FilterApplications(apps, status, "")
}

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, str)
	if err != nil {
		result = str
	}
	return strings.ToLower(result)
}
