package usecase

import (
	"context"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	store    *store.Store
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, st *store.Store, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		store:    st,
		validate: validate,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, in *domain.JobInput) (*domain.Job, error) {
	if err := check(u.store, u.validate, store.OpCreateJob, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpCreateJob, "", "Failed to create job",
		func(ctx context.Context) (*domain.Job, error) {
			return u.jobRepo.Create(ctx, in)
		})
}

func (u *jobUsecase) GetAllJobs(ctx context.Context, q domain.JobSearch) (*domain.Page[*domain.Job], error) {
	q.ListParams = q.ListParams.OrDefault()
	return run(ctx, u.store, store.OpGetAllJobs, laneJobList, "Failed to fetch jobs",
		func(ctx context.Context) (*domain.Page[*domain.Job], error) {
			return u.jobRepo.List(ctx, q)
		})
}

func (u *jobUsecase) GetJobByID(ctx context.Context, id string) (*domain.Job, error) {
	return run(ctx, u.store, store.OpGetJobByID, laneJobCurrent, "Failed to fetch job",
		func(ctx context.Context) (*domain.Job, error) {
			return u.jobRepo.GetByID(ctx, id)
		})
}

func (u *jobUsecase) GetMyJobs(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Job], error) {
	p = p.OrDefault()
	return run(ctx, u.store, store.OpGetMyJobs, laneJobList, "Failed to fetch your jobs",
		func(ctx context.Context) (*domain.Page[*domain.Job], error) {
			return u.jobRepo.ListMine(ctx, p)
		})
}

func (u *jobUsecase) UpdateJob(ctx context.Context, id string, in *domain.JobInput) (*domain.Job, error) {
	if err := check(u.store, u.validate, store.OpUpdateJob, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpUpdateJob, recordLane("job", id), "Failed to update job",
		func(ctx context.Context) (*domain.Job, error) {
			return u.jobRepo.Update(ctx, id, in)
		})
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id string) error {
	return runErr(ctx, u.store, store.OpDeleteJob, recordLane("job", id), "Failed to delete job", id,
		func(ctx context.Context) error {
			return u.jobRepo.Delete(ctx, id)
		})
}

func (u *jobUsecase) PublishJob(ctx context.Context, id string) (*domain.Job, error) {
	return run(ctx, u.store, store.OpPublishJob, recordLane("job", id), "Failed to publish job",
		func(ctx context.Context) (*domain.Job, error) {
			return u.jobRepo.Publish(ctx, id)
		})
}

func (u *jobUsecase) CloseJob(ctx context.Context, id string) (*domain.Job, error) {
	return run(ctx, u.store, store.OpCloseJob, recordLane("job", id), "Failed to close job",
		func(ctx context.Context) (*domain.Job, error) {
			return u.jobRepo.Close(ctx, id)
		})
}

func (u *jobUsecase) TrackJobView(ctx context.Context, id string) error {
	return runErr(ctx, u.store, store.OpTrackJobView, "", "Failed to track view", id,
		func(ctx context.Context) error {
			return u.jobRepo.TrackView(ctx, id)
		})
}

func (u *jobUsecase) SearchJobs(ctx context.Context, q domain.JobSearch) (*domain.Page[*domain.Job], error) {
	q.ListParams = q.ListParams.OrDefault()
	return run(ctx, u.store, store.OpSearchJobs, laneJobSearch, "Search failed",
		func(ctx context.Context) (*domain.Page[*domain.Job], error) {
			return u.jobRepo.Search(ctx, q)
		})
}

func (u *jobUsecase) GetSimilarJobs(ctx context.Context, q domain.SimilarParams) ([]*domain.Job, error) {
	if q.Limit <= 0 {
		q.Limit = 5
	}
	return run(ctx, u.store, store.OpGetSimilarJobs, laneJobSimilar, "Failed to fetch similar jobs",
		func(ctx context.Context) ([]*domain.Job, error) {
			return u.jobRepo.Similar(ctx, q)
		})
}

func (u *jobUsecase) SaveJob(ctx context.Context, id string) error {
	return runErr(ctx, u.store, store.OpSaveJob, recordLane("job/saved", id), "Failed to save job", id,
		func(ctx context.Context) error {
			return u.jobRepo.Save(ctx, id)
		})
}

func (u *jobUsecase) UnsaveJob(ctx context.Context, id string) error {
	return runErr(ctx, u.store, store.OpUnsaveJob, recordLane("job/saved", id), "Failed to unsave job", id,
		func(ctx context.Context) error {
			return u.jobRepo.Unsave(ctx, id)
		})
}

func (u *jobUsecase) GetSavedJobs(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Job], error) {
	p = p.OrDefault()
	return run(ctx, u.store, store.OpGetSavedJobs, laneJobSaved, "Failed to fetch saved jobs",
		func(ctx context.Context) (*domain.Page[*domain.Job], error) {
			return u.jobRepo.ListSaved(ctx, p)
		})
}

func (u *jobUsecase) GetJobStats(ctx context.Context) (*domain.JobStats, error) {
	return run(ctx, u.store, store.OpGetJobStats, laneJobStats, "Failed to fetch statistics", u.jobRepo.Stats)
}
