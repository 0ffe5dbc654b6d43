package usecase

import (
	"context"
	"errors"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"
	"go-careerbridge/pkg/apperror"
	"net/http"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	appRepo  domain.ApplicationRepository
	store    *store.Store
	validate *validator.Validate
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository, st *store.Store, validate *validator.Validate) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:  appRepo,
		store:    st,
		validate: validate,
	}
}

func (u *applicationUsecase) ApplyForJob(ctx context.Context, in *domain.ApplyInput) (*domain.Application, error) {
	if err := check(u.store, u.validate, store.OpApplyForJob, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpApplyForJob, "", "Failed to apply for job",
		func(ctx context.Context) (*domain.Application, error) {
			return u.appRepo.Apply(ctx, in)
		})
}

func (u *applicationUsecase) GetMyApplications(ctx context.Context, q domain.ApplicationFilter) (*domain.Page[*domain.Application], error) {
	q.ListParams = q.ListParams.OrDefault()
	return run(ctx, u.store, store.OpGetMyApplications, laneAppMine, "Failed to fetch applications",
		func(ctx context.Context) (*domain.Page[*domain.Application], error) {
			return u.appRepo.ListMine(ctx, q)
		})
}

func (u *applicationUsecase) GetReceivedApplications(ctx context.Context, q domain.ApplicationFilter) (*domain.Page[*domain.Application], error) {
	q.ListParams = q.ListParams.OrDefault()
	return run(ctx, u.store, store.OpGetReceivedApplications, laneAppReceived, "Failed to fetch received applications",
		func(ctx context.Context) (*domain.Page[*domain.Application], error) {
			return u.appRepo.ListReceived(ctx, q)
		})
}

func (u *applicationUsecase) GetApplicationByID(ctx context.Context, id string) (*domain.Application, error) {
	return run(ctx, u.store, store.OpGetApplicationByID, laneAppCurrent, "Failed to fetch application",
		func(ctx context.Context) (*domain.Application, error) {
			return u.appRepo.GetByID(ctx, id)
		})
}

func (u *applicationUsecase) UpdateApplicationStatus(ctx context.Context, id string, in *domain.StatusUpdate) (*domain.Application, error) {
	if err := check(u.store, u.validate, store.OpUpdateApplicationStatus, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpUpdateApplicationStatus, recordLane("application", id), "Failed to update application status",
		func(ctx context.Context) (*domain.Application, error) {
			return u.appRepo.UpdateStatus(ctx, id, in)
		})
}

func (u *applicationUsecase) WithdrawApplication(ctx context.Context, id string) error {
	return runErr(ctx, u.store, store.OpWithdrawApplication, recordLane("application", id), "Failed to withdraw application", id,
		func(ctx context.Context) error {
			return u.appRepo.Withdraw(ctx, id)
		})
}

func (u *applicationUsecase) GetAllApplications(ctx context.Context, q domain.ApplicationFilter) (*domain.Page[*domain.Application], error) {
	q.ListParams = q.ListParams.OrDefault()
	return run(ctx, u.store, store.OpGetAllApplications, laneAppAll, "Failed to fetch applications",
		func(ctx context.Context) (*domain.Page[*domain.Application], error) {
			return u.appRepo.ListAll(ctx, q)
		})
}

// SendMessage posts text on the application thread. The returned message
// is appended to the current conversation only if that conversation still
// belongs to id.
func (u *applicationUsecase) SendMessage(ctx context.Context, id string, in *domain.MessageInput) (*domain.Message, error) {
	if err := check(u.store, u.validate, store.OpSendMessage, in); err != nil {
		return nil, err
	}
	return runWith(ctx, u.store, store.OpSendMessage, "", "Failed to send message",
		func(ctx context.Context) (*domain.Message, error) {
			m, err := u.appRepo.SendMessage(ctx, id, in)
			if err == nil && m == nil {
				err = apperror.New(http.StatusOK, "", errors.New("usecase: backend returned no message"))
			}
			return m, err
		},
		func(m *domain.Message) any {
			return &domain.SentMessage{ApplicationID: id, Message: *m}
		})
}

func (u *applicationUsecase) RateApplication(ctx context.Context, id string, in *domain.RatingInput) error {
	if err := check(u.store, u.validate, store.OpRateApplication, in); err != nil {
		return err
	}
	return runErr(ctx, u.store, store.OpRateApplication, recordLane("application/rating", id), "Failed to submit rating", id,
		func(ctx context.Context) error {
			return u.appRepo.Rate(ctx, id, in)
		})
}

func (u *applicationUsecase) GetApplicationStats(ctx context.Context, q domain.StatsParams) (*domain.ApplicationStats, error) {
	return run(ctx, u.store, store.OpGetApplicationStats, laneAppStats, "Failed to fetch statistics",
		func(ctx context.Context) (*domain.ApplicationStats, error) {
			return u.appRepo.Stats(ctx, q)
		})
}

func (u *applicationUsecase) BulkUpdateApplications(ctx context.Context, in *domain.BulkStatusUpdate) (*domain.BulkUpdateResult, error) {
	if err := check(u.store, u.validate, store.OpBulkUpdateApplications, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpBulkUpdateApplications, "", "Failed to bulk update applications",
		func(ctx context.Context) (*domain.BulkUpdateResult, error) {
			return u.appRepo.BulkUpdate(ctx, in)
		})
}

func (u *applicationUsecase) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	return run(ctx, u.store, store.OpGetConversation, laneAppConversation, "Failed to fetch conversation",
		func(ctx context.Context) (*domain.Conversation, error) {
			conv, err := u.appRepo.Conversation(ctx, id)
			if err != nil {
				return nil, err
			}
			if conv == nil {
				conv = &domain.Conversation{}
			}
			if conv.ApplicationID == "" {
				conv.ApplicationID = id
			}
			return conv, nil
		})
}
