package domain

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

type Company struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Location      string    `json:"location,omitempty"`
	Industry      string    `json:"industry,omitempty"`
	Website       string    `json:"website,omitempty"`
	LogoURL       string    `json:"logo,omitempty"`
	CompanySize   string    `json:"companySize,omitempty"`
	IsVerified    bool      `json:"isVerified"`
	JobsPosted    int       `json:"jobsPosted"`
	AverageRating float64   `json:"averageRating"`
	Owner         Ref[User] `json:"owner"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CompanyInput struct {
	Name        string `json:"name" validate:"required,max=120,valid_name"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Location    string `json:"location" validate:"required"`
	Industry    string `json:"industry" validate:"required"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
	CompanySize string `json:"companySize,omitempty" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
}

type LogoUpload struct {
	FileName string `validate:"required"`
	Content  []byte `validate:"required"`
}

type Review struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=1000"`
}

type CompanySearch struct {
	ListParams
	Keyword  string
	Industry string
	Location string
}

func (q CompanySearch) Values() url.Values {
	v := q.ListParams.Values()
	setIf(v, "keyword", q.Keyword)
	setIf(v, "industry", q.Industry)
	setIf(v, "location", q.Location)
	return v
}

// TopParams limits the top-companies list.
type TopParams struct {
	Limit int
}

func (q TopParams) Values() url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

type CompanyStats struct {
	TotalJobs         int     `json:"totalJobs"`
	ActiveJobs        int     `json:"activeJobs"`
	TotalApplications int     `json:"totalApplications"`
	TotalReviews      int     `json:"totalReviews"`
	AverageRating     float64 `json:"averageRating"`
}

type CompanyRepository interface {
	Create(ctx context.Context, in *CompanyInput) (*Company, error)
	List(ctx context.Context, q CompanySearch) (*Page[*Company], error)
	GetByID(ctx context.Context, id string) (*Company, error)
	ListMine(ctx context.Context, p ListParams) (*Page[*Company], error)
	Update(ctx context.Context, id string, in *CompanyInput) (*Company, error)
	Delete(ctx context.Context, id string) error
	UploadLogo(ctx context.Context, id string, in *LogoUpload) (*Company, error)
	Search(ctx context.Context, q CompanySearch) (*Page[*Company], error)
	Stats(ctx context.Context, id string) (*CompanyStats, error)
	AddReview(ctx context.Context, id string, in *Review) error
	Top(ctx context.Context, q TopParams) ([]*Company, error)
	Verify(ctx context.Context, id string) (*Company, error)
}

type CompanyUsecase interface {
	CreateCompany(ctx context.Context, in *CompanyInput) (*Company, error)
	GetAllCompanies(ctx context.Context, q CompanySearch) (*Page[*Company], error)
	GetCompanyByID(ctx context.Context, id string) (*Company, error)
	GetMyCompanies(ctx context.Context, p ListParams) (*Page[*Company], error)
	UpdateCompany(ctx context.Context, id string, in *CompanyInput) (*Company, error)
	DeleteCompany(ctx context.Context, id string) error
	UploadCompanyLogo(ctx context.Context, id string, in *LogoUpload) (*Company, error)
	SearchCompanies(ctx context.Context, q CompanySearch) (*Page[*Company], error)
	GetCompanyStats(ctx context.Context, id string) (*CompanyStats, error)
	AddCompanyReview(ctx context.Context, id string, in *Review) error
	GetTopCompanies(ctx context.Context, q TopParams) ([]*Company, error)
	VerifyCompany(ctx context.Context, id string) (*Company, error)
}

func (c *Company) GetID() string {
	if c == nil {
		return ""
	}
	return c.ID
}
