// Package sandbox is an in-memory CareerBridge backend. It implements the
// same resources the REST API exposes so the client can be developed and
// contract-tested without the real service.
package sandbox

import (
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Caller is the authenticated user a request runs as.
type Caller struct {
	ID   string
	Role string
}

func (c Caller) is(roles ...string) bool {
	if c.Role == domain.RoleAdmin {
		return true
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

type userRecord struct {
	user domain.User
	hash []byte
}

type review struct {
	userID string
	domain.Review
}

// Backend holds every collection behind one lock. Returned documents are
// copies; callers may encode them after the lock is released.
type Backend struct {
	mu sync.RWMutex

	users        map[string]*userRecord
	byEmail      map[string]string
	revoked      map[string]time.Time
	resumes      map[string]*domain.Resume
	resumeOwner  map[string]string
	jobs         map[string]*domain.Job
	companies    map[string]*domain.Company
	reviews      map[string][]review
	applications map[string]*domain.Application
	threads      map[string]*domain.Conversation
	saved        map[string][]string

	now   func() time.Time
	newID func() string
	cost  int
}

// Option tweaks a Backend at construction.
type Option func(*Backend)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(b *Backend) { b.cost = cost }
}

func New(opts ...Option) *Backend {
	b := &Backend{
		users:        make(map[string]*userRecord),
		byEmail:      make(map[string]string),
		revoked:      make(map[string]time.Time),
		resumes:      make(map[string]*domain.Resume),
		resumeOwner:  make(map[string]string),
		jobs:         make(map[string]*domain.Job),
		companies:    make(map[string]*domain.Company),
		reviews:      make(map[string][]review),
		applications: make(map[string]*domain.Application),
		threads:      make(map[string]*domain.Conversation),
		saved:        make(map[string][]string),
		now:          time.Now,
		newID:        newObjectID,
		cost:         10,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// newObjectID yields a 24-hex-digit id shaped like the production ids.
func newObjectID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

// ListResult is one page plus the pagination block, keyed the way the
// production API names it (totalJobs, jobsPerPage, ...).
type ListResult[T any] struct {
	Items      []T
	Pagination map[string]any
}

func paginate[T any](items []T, p domain.ListParams, noun string) ListResult[T] {
	p = p.OrDefault()
	total := len(items)
	pages := (total + p.Limit - 1) / p.Limit
	start := min((p.Page-1)*p.Limit, total)
	end := min(start+p.Limit, total)

	out := make([]T, end-start)
	copy(out, items[start:end])
	return ListResult[T]{
		Items: out,
		Pagination: map[string]any{
			"currentPage":                p.Page,
			"totalPages":                 pages,
			"total" + noun:               total,
			lowerFirst(noun) + "PerPage": p.Limit,
			"hasNextPage":                p.Page < pages,
			"hasPrevPage":                p.Page > 1,
		},
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func notFound(what string) error {
	return apperror.NotFound(what + " not found")
}

// contains reports whether needle occurs in haystack, case-insensitively.
func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
