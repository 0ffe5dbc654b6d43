package usecase

import (
	"context"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/security"

	"github.com/go-playground/validator/v10"
)

type resumeUsecase struct {
	resumeRepo domain.ResumeRepository
	store      *store.Store
	validate   *validator.Validate
}

func NewResumeUsecase(resumeRepo domain.ResumeRepository, st *store.Store, validate *validator.Validate) domain.ResumeUsecase {
	return &resumeUsecase{
		resumeRepo: resumeRepo,
		store:      st,
		validate:   validate,
	}
}

func (u *resumeUsecase) UploadResume(ctx context.Context, in *domain.ResumeUpload) (*domain.Resume, error) {
	if err := check(u.store, u.validate, store.OpUploadResume, in); err != nil {
		return nil, err
	}
	if res := security.ValidateUpload(security.UploadResume, in.FileName, in.Content); !res.Valid {
		err := apperror.Validation("Invalid resume file: " + res.Error)
		rejectLocal(u.store, store.OpUploadResume, err)
		return nil, err
	}
	return run(ctx, u.store, store.OpUploadResume, "", "Resume upload failed",
		func(ctx context.Context) (*domain.Resume, error) {
			return u.resumeRepo.Upload(ctx, in)
		})
}

func (u *resumeUsecase) GetMyResumes(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Resume], error) {
	p = p.OrDefault()
	return run(ctx, u.store, store.OpGetMyResumes, laneResumeList, "Failed to fetch resumes",
		func(ctx context.Context) (*domain.Page[*domain.Resume], error) {
			return u.resumeRepo.ListMine(ctx, p)
		})
}

func (u *resumeUsecase) GetResumeByID(ctx context.Context, id string) (*domain.Resume, error) {
	return run(ctx, u.store, store.OpGetResumeByID, laneResumeDetail, "Failed to fetch resume",
		func(ctx context.Context) (*domain.Resume, error) {
			return u.resumeRepo.GetByID(ctx, id)
		})
}

func (u *resumeUsecase) DeleteResume(ctx context.Context, id string) error {
	return runErr(ctx, u.store, store.OpDeleteResume, recordLane("resume", id), "Failed to delete resume", id,
		func(ctx context.Context) error {
			return u.resumeRepo.Delete(ctx, id)
		})
}

func (u *resumeUsecase) SetDefaultResume(ctx context.Context, id string) (*domain.Resume, error) {
	return runWith(ctx, u.store, store.OpSetDefaultResume, laneResumeFlag, "Failed to set default resume",
		func(ctx context.Context) (*domain.Resume, error) {
			return u.resumeRepo.SetDefault(ctx, id)
		},
		func(r *domain.Resume) any {
			// some backends answer with the id only
			if r == nil || r.ID == "" {
				return &domain.Resume{ID: id, IsDefault: true}
			}
			return r
		})
}

func (u *resumeUsecase) UpdateResumeData(ctx context.Context, id string, in *domain.ResumeDataInput) (*domain.Resume, error) {
	if err := check(u.store, u.validate, store.OpUpdateResumeData, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpUpdateResumeData, recordLane("resume", id), "Failed to update resume data",
		func(ctx context.Context) (*domain.Resume, error) {
			return u.resumeRepo.UpdateData(ctx, id, in)
		})
}

func (u *resumeUsecase) UpdateResumeItem(ctx context.Context, ref domain.ResumeItemRef, entry *domain.ResumeEntry) (*domain.Resume, error) {
	if err := check(u.store, u.validate, store.OpUpdateResumeItem, &ref); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpUpdateResumeItem, recordLane("resume", ref.ResumeID), "Failed to update resume item",
		func(ctx context.Context) (*domain.Resume, error) {
			return u.resumeRepo.UpdateItem(ctx, ref, entry)
		})
}

func (u *resumeUsecase) DeleteResumeItem(ctx context.Context, ref domain.ResumeItemRef) error {
	if err := check(u.store, u.validate, store.OpDeleteResumeItem, &ref); err != nil {
		return err
	}
	return runErr(ctx, u.store, store.OpDeleteResumeItem, recordLane("resume", ref.ResumeID), "Failed to delete resume item", ref,
		func(ctx context.Context) error {
			return u.resumeRepo.DeleteItem(ctx, ref)
		})
}

func (u *resumeUsecase) BulkUpdateResume(ctx context.Context, id string, in *domain.ResumeBulkUpdate) (*domain.Resume, error) {
	if err := check(u.store, u.validate, store.OpBulkUpdateResume, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpBulkUpdateResume, recordLane("resume", id), "Failed to update resume",
		func(ctx context.Context) (*domain.Resume, error) {
			return u.resumeRepo.BulkUpdate(ctx, id, in)
		})
}
