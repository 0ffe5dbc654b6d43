package domain

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

const (
	JobStatusDraft  = "DRAFT"
	JobStatusActive = "ACTIVE"
	JobStatusClosed = "CLOSED"
)

type Job struct {
	ID              string       `json:"_id"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	Status          string       `json:"status"`
	Salary          *Salary      `json:"salary,omitempty"`
	Locations       *Location    `json:"locations,omitempty"`
	SkillsRequired  []string     `json:"skillsRequired,omitempty"`
	ExperienceLevel string       `json:"experienceLevel,omitempty"`
	JobType         string       `json:"jobType,omitempty"`
	Company         Ref[Company] `json:"companyId"`
	PostedBy        Ref[User]    `json:"postedBy"`
	Applications    []string     `json:"applications,omitempty"`
	Views           int          `json:"views"`
	ClosingDate     *time.Time   `json:"closingDate,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

type Salary struct {
	Min      float64 `json:"min" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gtefield=Min"`
	Currency string  `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	Remote  bool   `json:"remote,omitempty"`
}

// JobInput is the body of create and update. Status is not part of it:
// new jobs start as DRAFT and move through publish/close.
type JobInput struct {
	Title           string    `json:"title" validate:"required,max=120,no_emoji"`
	Description     string    `json:"description" validate:"required,min=100"`
	CompanyID       string    `json:"companyId" validate:"required"`
	ExperienceLevel string    `json:"experienceLevel" validate:"required,oneof=ENTRY MID SENIOR LEAD EXECUTIVE"`
	JobType         string    `json:"jobType,omitempty" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP REMOTE"`
	Salary          *Salary   `json:"salary,omitempty"`
	Locations       *Location `json:"locations,omitempty"`
	SkillsRequired  []string  `json:"skillsRequired,omitempty" validate:"max=30"`
	ClosingDate     time.Time `json:"closingDate" validate:"required,future_date"`
}

type JobSearch struct {
	ListParams
	Keyword         string
	Location        string
	JobType         string
	ExperienceLevel string
	MinSalary       int
	Status          string
}

func (q JobSearch) Values() url.Values {
	v := q.ListParams.Values()
	setIf(v, "keyword", q.Keyword)
	setIf(v, "location", q.Location)
	setIf(v, "jobType", q.JobType)
	setIf(v, "experienceLevel", q.ExperienceLevel)
	setIf(v, "status", q.Status)
	if q.MinSalary > 0 {
		v.Set("minSalary", strconv.Itoa(q.MinSalary))
	}
	return v
}

type SimilarParams struct {
	JobID string
	Limit int
}

func (q SimilarParams) Values() url.Values {
	v := url.Values{}
	setIf(v, "jobId", q.JobID)
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

type JobStats struct {
	TotalJobs         int `json:"totalJobs"`
	ActiveJobs        int `json:"activeJobs"`
	DraftJobs         int `json:"draftJobs"`
	ClosedJobs        int `json:"closedJobs"`
	TotalViews        int `json:"totalViews"`
	TotalApplications int `json:"totalApplications"`
}

type JobRepository interface {
	Create(ctx context.Context, in *JobInput) (*Job, error)
	List(ctx context.Context, q JobSearch) (*Page[*Job], error)
	GetByID(ctx context.Context, id string) (*Job, error)
	ListMine(ctx context.Context, p ListParams) (*Page[*Job], error)
	Update(ctx context.Context, id string, in *JobInput) (*Job, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (*Job, error)
	Close(ctx context.Context, id string) (*Job, error)
	TrackView(ctx context.Context, id string) error
	Search(ctx context.Context, q JobSearch) (*Page[*Job], error)
	Similar(ctx context.Context, q SimilarParams) ([]*Job, error)
	Save(ctx context.Context, id string) error
	Unsave(ctx context.Context, id string) error
	ListSaved(ctx context.Context, p ListParams) (*Page[*Job], error)
	Stats(ctx context.Context) (*JobStats, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in *JobInput) (*Job, error)
	GetAllJobs(ctx context.Context, q JobSearch) (*Page[*Job], error)
	GetJobByID(ctx context.Context, id string) (*Job, error)
	GetMyJobs(ctx context.Context, p ListParams) (*Page[*Job], error)
	UpdateJob(ctx context.Context, id string, in *JobInput) (*Job, error)
	DeleteJob(ctx context.Context, id string) error
	PublishJob(ctx context.Context, id string) (*Job, error)
	CloseJob(ctx context.Context, id string) (*Job, error)
	TrackJobView(ctx context.Context, id string) error
	SearchJobs(ctx context.Context, q JobSearch) (*Page[*Job], error)
	GetSimilarJobs(ctx context.Context, q SimilarParams) ([]*Job, error)
	SaveJob(ctx context.Context, id string) error
	UnsaveJob(ctx context.Context, id string) error
	GetSavedJobs(ctx context.Context, p ListParams) (*Page[*Job], error)
	GetJobStats(ctx context.Context) (*JobStats, error)
}

func (j *Job) GetID() string {
	if j == nil {
		return ""
	}
	return j.ID
}
