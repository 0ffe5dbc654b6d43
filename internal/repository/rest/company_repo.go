package rest

import (
	"context"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/httpclient"
	"net/url"
)

type companyRepository struct {
	client *httpclient.Client
}

func NewCompanyRepository(client *httpclient.Client) domain.CompanyRepository {
	return &companyRepository{client: client}
}

func (r *companyRepository) Create(ctx context.Context, in *domain.CompanyInput) (*domain.Company, error) {
	env, err := r.client.Post(ctx, "/company", in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Company](env, "company")
}

func (r *companyRepository) List(ctx context.Context, q domain.CompanySearch) (*domain.Page[*domain.Company], error) {
	return r.page(ctx, "/company", q.Values())
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	env, err := r.client.Get(ctx, "/company/"+id, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Company](env, "company")
}

func (r *companyRepository) ListMine(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Company], error) {
	return r.page(ctx, "/company/employer/my-companies", p.Values())
}

func (r *companyRepository) Update(ctx context.Context, id string, in *domain.CompanyInput) (*domain.Company, error) {
	env, err := r.client.Put(ctx, "/company/"+id, in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Company](env, "company")
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Delete(ctx, "/company/"+id)
	return err
}

func (r *companyRepository) UploadLogo(ctx context.Context, id string, in *domain.LogoUpload) (*domain.Company, error) {
	env, err := r.client.Upload(ctx, "/company/"+id+"/upload-logo",
		[]httpclient.FilePart{{Field: "logo", FileName: in.FileName, Content: in.Content}}, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Company](env, "company")
}

func (r *companyRepository) Search(ctx context.Context, q domain.CompanySearch) (*domain.Page[*domain.Company], error) {
	return r.page(ctx, "/company/search", q.Values())
}

func (r *companyRepository) Stats(ctx context.Context, id string) (*domain.CompanyStats, error) {
	env, err := r.client.Get(ctx, "/company/"+id+"/stats", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.CompanyStats](env, "stats")
}

func (r *companyRepository) AddReview(ctx context.Context, id string, in *domain.Review) error {
	_, err := r.client.Post(ctx, "/company/"+id+"/review", in)
	return err
}

func (r *companyRepository) Top(ctx context.Context, q domain.TopParams) ([]*domain.Company, error) {
	env, err := r.client.Get(ctx, "/company/top", q.Values())
	if err != nil {
		return nil, err
	}
	return httpclient.Decode[[]*domain.Company](env)
}

func (r *companyRepository) Verify(ctx context.Context, id string) (*domain.Company, error) {
	env, err := r.client.Put(ctx, "/company/"+id+"/verify", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Company](env, "company")
}

func (r *companyRepository) page(ctx context.Context, path string, query url.Values) (*domain.Page[*domain.Company], error) {
	env, err := r.client.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return decodePage[*domain.Company](env)
}
