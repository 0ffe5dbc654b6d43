package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Resume section names used by the item endpoints.
const (
	ResumeEducation      = "education"
	ResumeExperience     = "experience"
	ResumeProjects       = "projects"
	ResumeCertifications = "certifications"
	ResumeSkills         = "skills"
)

type Resume struct {
	ID             string        `json:"_id"`
	Title          string        `json:"title"`
	FileURL        string        `json:"fileUrl,omitempty"`
	FileName       string        `json:"fileName,omitempty"`
	IsDefault      bool          `json:"isDefault"`
	Views          int           `json:"views"`
	Downloads      int           `json:"downloads"`
	Skills         []string      `json:"skills,omitempty"`
	Education      []ResumeEntry `json:"education,omitempty"`
	Experience     []ResumeEntry `json:"experience,omitempty"`
	Projects       []ResumeEntry `json:"projects,omitempty"`
	Certifications []ResumeEntry `json:"certifications,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ResumeEntry is one item of a structured resume section.
type ResumeEntry struct {
	ID           string `json:"_id,omitempty"`
	Title        string `json:"title,omitempty"`
	Organization string `json:"organization,omitempty"`
	Location     string `json:"location,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	Current      bool   `json:"current,omitempty"`
	Description  string `json:"description,omitempty"`
	URL          string `json:"url,omitempty"`
}

type ResumeUpload struct {
	Title    string `validate:"required,max=100"`
	FileName string `validate:"required"`
	Content  []byte `validate:"required"`
}

type ResumeDataInput struct {
	DataType string          `json:"dataType" validate:"required,oneof=education experience projects certifications skills"`
	Data     json.RawMessage `json:"data" validate:"required"`
}

type ResumeItemRef struct {
	ResumeID string `validate:"required"`
	ItemType string `validate:"required,oneof=education experience projects certifications"`
	ItemID   string `validate:"required"`
}

type ResumeBulkUpdate struct {
	Title          string        `json:"title,omitempty" validate:"max=100"`
	Skills         []string      `json:"skills,omitempty"`
	Education      []ResumeEntry `json:"education,omitempty"`
	Experience     []ResumeEntry `json:"experience,omitempty"`
	Projects       []ResumeEntry `json:"projects,omitempty"`
	Certifications []ResumeEntry `json:"certifications,omitempty"`
}

type ResumeRepository interface {
	Upload(ctx context.Context, in *ResumeUpload) (*Resume, error)
	ListMine(ctx context.Context, p ListParams) (*Page[*Resume], error)
	GetByID(ctx context.Context, id string) (*Resume, error)
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) (*Resume, error)
	UpdateData(ctx context.Context, id string, in *ResumeDataInput) (*Resume, error)
	UpdateItem(ctx context.Context, ref ResumeItemRef, entry *ResumeEntry) (*Resume, error)
	DeleteItem(ctx context.Context, ref ResumeItemRef) error
	BulkUpdate(ctx context.Context, id string, in *ResumeBulkUpdate) (*Resume, error)
}

type ResumeUsecase interface {
	UploadResume(ctx context.Context, in *ResumeUpload) (*Resume, error)
	GetMyResumes(ctx context.Context, p ListParams) (*Page[*Resume], error)
	GetResumeByID(ctx context.Context, id string) (*Resume, error)
	DeleteResume(ctx context.Context, id string) error
	SetDefaultResume(ctx context.Context, id string) (*Resume, error)
	UpdateResumeData(ctx context.Context, id string, in *ResumeDataInput) (*Resume, error)
	UpdateResumeItem(ctx context.Context, ref ResumeItemRef, entry *ResumeEntry) (*Resume, error)
	DeleteResumeItem(ctx context.Context, ref ResumeItemRef) error
	BulkUpdateResume(ctx context.Context, id string, in *ResumeBulkUpdate) (*Resume, error)
}

func (r *Resume) GetID() string {
	if r == nil {
		return ""
	}
	return r.ID
}
