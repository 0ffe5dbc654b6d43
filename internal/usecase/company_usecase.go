package usecase

import (
	"context"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/security"

	"github.com/go-playground/validator/v10"
)

type companyUsecase struct {
	companyRepo domain.CompanyRepository
	store       *store.Store
	validate    *validator.Validate
}

func NewCompanyUsecase(companyRepo domain.CompanyRepository, st *store.Store, validate *validator.Validate) domain.CompanyUsecase {
	return &companyUsecase{
		companyRepo: companyRepo,
		store:       st,
		validate:    validate,
	}
}

func (u *companyUsecase) CreateCompany(ctx context.Context, in *domain.CompanyInput) (*domain.Company, error) {
	if err := check(u.store, u.validate, store.OpCreateCompany, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpCreateCompany, "", "Failed to create company",
		func(ctx context.Context) (*domain.Company, error) {
			return u.companyRepo.Create(ctx, in)
		})
}

func (u *companyUsecase) GetAllCompanies(ctx context.Context, q domain.CompanySearch) (*domain.Page[*domain.Company], error) {
	q.ListParams = q.ListParams.OrDefault()
	return run(ctx, u.store, store.OpGetAllCompanies, laneCompanyList, "Failed to fetch companies",
		func(ctx context.Context) (*domain.Page[*domain.Company], error) {
			return u.companyRepo.List(ctx, q)
		})
}

func (u *companyUsecase) GetCompanyByID(ctx context.Context, id string) (*domain.Company, error) {
	return run(ctx, u.store, store.OpGetCompanyByID, laneCompanyCurrent, "Failed to fetch company",
		func(ctx context.Context) (*domain.Company, error) {
			return u.companyRepo.GetByID(ctx, id)
		})
}

func (u *companyUsecase) GetMyCompanies(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Company], error) {
	p = p.OrDefault()
	return run(ctx, u.store, store.OpGetMyCompanies, laneCompanyMine, "Failed to fetch your companies",
		func(ctx context.Context) (*domain.Page[*domain.Company], error) {
			return u.companyRepo.ListMine(ctx, p)
		})
}

func (u *companyUsecase) UpdateCompany(ctx context.Context, id string, in *domain.CompanyInput) (*domain.Company, error) {
	if err := check(u.store, u.validate, store.OpUpdateCompany, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpUpdateCompany, recordLane("company", id), "Failed to update company",
		func(ctx context.Context) (*domain.Company, error) {
			return u.companyRepo.Update(ctx, id, in)
		})
}

func (u *companyUsecase) DeleteCompany(ctx context.Context, id string) error {
	return runErr(ctx, u.store, store.OpDeleteCompany, recordLane("company", id), "Failed to delete company", id,
		func(ctx context.Context) error {
			return u.companyRepo.Delete(ctx, id)
		})
}

func (u *companyUsecase) UploadCompanyLogo(ctx context.Context, id string, in *domain.LogoUpload) (*domain.Company, error) {
	if err := check(u.store, u.validate, store.OpUploadCompanyLogo, in); err != nil {
		return nil, err
	}
	if res := security.ValidateUpload(security.UploadLogo, in.FileName, in.Content); !res.Valid {
		err := apperror.Validation("Invalid logo: " + res.Error)
		rejectLocal(u.store, store.OpUploadCompanyLogo, err)
		return nil, err
	}
	return run(ctx, u.store, store.OpUploadCompanyLogo, recordLane("company/logo", id), "Failed to upload logo",
		func(ctx context.Context) (*domain.Company, error) {
			return u.companyRepo.UploadLogo(ctx, id, in)
		})
}

func (u *companyUsecase) SearchCompanies(ctx context.Context, q domain.CompanySearch) (*domain.Page[*domain.Company], error) {
	q.ListParams = q.ListParams.OrDefault()
	return run(ctx, u.store, store.OpSearchCompanies, laneCompanySearch, "Search failed",
		func(ctx context.Context) (*domain.Page[*domain.Company], error) {
			return u.companyRepo.Search(ctx, q)
		})
}

func (u *companyUsecase) GetCompanyStats(ctx context.Context, id string) (*domain.CompanyStats, error) {
	return run(ctx, u.store, store.OpGetCompanyStats, laneCompanyStats, "Failed to fetch statistics",
		func(ctx context.Context) (*domain.CompanyStats, error) {
			return u.companyRepo.Stats(ctx, id)
		})
}

func (u *companyUsecase) AddCompanyReview(ctx context.Context, id string, in *domain.Review) error {
	if err := check(u.store, u.validate, store.OpAddCompanyReview, in); err != nil {
		return err
	}
	return runErr(ctx, u.store, store.OpAddCompanyReview, "", "Failed to add review", id,
		func(ctx context.Context) error {
			return u.companyRepo.AddReview(ctx, id, in)
		})
}

func (u *companyUsecase) GetTopCompanies(ctx context.Context, q domain.TopParams) ([]*domain.Company, error) {
	if q.Limit <= 0 {
		q.Limit = domain.DefaultPageSize
	}
	return run(ctx, u.store, store.OpGetTopCompanies, laneCompanyTop, "Failed to fetch top companies",
		func(ctx context.Context) ([]*domain.Company, error) {
			return u.companyRepo.Top(ctx, q)
		})
}

func (u *companyUsecase) VerifyCompany(ctx context.Context, id string) (*domain.Company, error) {
	return run(ctx, u.store, store.OpVerifyCompany, recordLane("company", id), "Failed to verify company",
		func(ctx context.Context) (*domain.Company, error) {
			return u.companyRepo.Verify(ctx, id)
		})
}
