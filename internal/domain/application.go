package domain

import (
	"context"
	"net/url"
	"time"
)

const (
	AppStatusApplied     = "APPLIED"
	AppStatusShortlisted = "SHORTLISTED"
	AppStatusReviewing   = "REVIEWING"
	AppStatusAccepted    = "ACCEPTED"
	AppStatusRejected    = "REJECTED"
	AppStatusWithdrawn   = "WITHDRAWN"
)

// ApplicationStatuses lists every status in pipeline order.
var ApplicationStatuses = []string{
	AppStatusApplied,
	AppStatusShortlisted,
	AppStatusReviewing,
	AppStatusAccepted,
	AppStatusRejected,
	AppStatusWithdrawn,
}

type Application struct {
	ID            string     `json:"_id"`
	Job           Ref[Job]   `json:"jobId"`
	Employer      Ref[User]  `json:"employerId"`
	Seeker        Ref[User]  `json:"seekerId"`
	ResumeID      string     `json:"resumeId,omitempty"`
	Status        string     `json:"status"`
	CoverLetter   string     `json:"coverLetter,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	Portfolio     string     `json:"portfolio,omitempty"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	Rating        int        `json:"rating,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type ApplyInput struct {
	JobID         string    `json:"jobId" validate:"required"`
	ResumeID      string    `json:"resumeId" validate:"required"`
	CoverLetter   string    `json:"coverLetter,omitempty" validate:"max=1000"`
	Phone         string    `json:"phone" validate:"required,valid_phone"`
	Portfolio     string    `json:"portfolio,omitempty" validate:"omitempty,url"`
	AvailableFrom time.Time `json:"availableFrom" validate:"required,future_date"`
	AgreeToTerms  bool      `json:"agreeToTerms" validate:"eq=true"`
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=APPLIED SHORTLISTED REVIEWING ACCEPTED REJECTED"`
	Note   string `json:"note,omitempty" validate:"max=1000"`
}

type BulkStatusUpdate struct {
	ApplicationIDs []string `json:"applicationIds" validate:"required,min=1,dive,required"`
	Status         string   `json:"status" validate:"required,oneof=APPLIED SHORTLISTED REVIEWING ACCEPTED REJECTED"`
}

type BulkUpdateResult struct {
	TotalUpdated int `json:"totalUpdated"`
}

type MessageInput struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type RatingInput struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type ApplicationFilter struct {
	ListParams
	Status string
	JobID  string
}

func (q ApplicationFilter) Values() url.Values {
	v := q.ListParams.Values()
	setIf(v, "status", q.Status)
	setIf(v, "jobId", q.JobID)
	return v
}

type StatsParams struct {
	JobID string
}

func (q StatsParams) Values() url.Values {
	v := url.Values{}
	setIf(v, "jobId", q.JobID)
	return v
}

type ApplicationStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

type ApplicationRepository interface {
	Apply(ctx context.Context, in *ApplyInput) (*Application, error)
	ListMine(ctx context.Context, q ApplicationFilter) (*Page[*Application], error)
	ListReceived(ctx context.Context, q ApplicationFilter) (*Page[*Application], error)
	GetByID(ctx context.Context, id string) (*Application, error)
	UpdateStatus(ctx context.Context, id string, in *StatusUpdate) (*Application, error)
	Withdraw(ctx context.Context, id string) error
	ListAll(ctx context.Context, q ApplicationFilter) (*Page[*Application], error)
	SendMessage(ctx context.Context, id string, in *MessageInput) (*Message, error)
	Rate(ctx context.Context, id string, in *RatingInput) error
	Stats(ctx context.Context, q StatsParams) (*ApplicationStats, error)
	BulkUpdate(ctx context.Context, in *BulkStatusUpdate) (*BulkUpdateResult, error)
	Conversation(ctx context.Context, id string) (*Conversation, error)
}

type ApplicationUsecase interface {
	ApplyForJob(ctx context.Context, in *ApplyInput) (*Application, error)
	GetMyApplications(ctx context.Context, q ApplicationFilter) (*Page[*Application], error)
	GetReceivedApplications(ctx context.Context, q ApplicationFilter) (*Page[*Application], error)
	GetApplicationByID(ctx context.Context, id string) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, in *StatusUpdate) (*Application, error)
	WithdrawApplication(ctx context.Context, id string) error
	GetAllApplications(ctx context.Context, q ApplicationFilter) (*Page[*Application], error)
	SendMessage(ctx context.Context, id string, in *MessageInput) (*Message, error)
	RateApplication(ctx context.Context, id string, in *RatingInput) error
	GetApplicationStats(ctx context.Context, q StatsParams) (*ApplicationStats, error)
	BulkUpdateApplications(ctx context.Context, in *BulkStatusUpdate) (*BulkUpdateResult, error)
	GetConversation(ctx context.Context, id string) (*Conversation, error)
}

func (a *Application) GetID() string {
	if a == nil {
		return ""
	}
	return a.ID
}
