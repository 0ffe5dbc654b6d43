package rest

import (
	"context"
	"errors"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/httpclient"
	"net/http"
	"net/url"
)

type applicationRepository struct {
	client *httpclient.Client
}

func NewApplicationRepository(client *httpclient.Client) domain.ApplicationRepository {
	return &applicationRepository{client: client}
}

func (r *applicationRepository) Apply(ctx context.Context, in *domain.ApplyInput) (*domain.Application, error) {
	env, err := r.client.Post(ctx, "/application", in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Application](env, "application")
}

func (r *applicationRepository) ListMine(ctx context.Context, q domain.ApplicationFilter) (*domain.Page[*domain.Application], error) {
	return r.page(ctx, "/application/seeker/my-applications", q.Values())
}

func (r *applicationRepository) ListReceived(ctx context.Context, q domain.ApplicationFilter) (*domain.Page[*domain.Application], error) {
	return r.page(ctx, "/application/employer/received", q.Values())
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	env, err := r.client.Get(ctx, "/application/"+id, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Application](env, "application")
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, in *domain.StatusUpdate) (*domain.Application, error) {
	env, err := r.client.Put(ctx, "/application/"+id+"/status", in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Application](env, "application")
}

func (r *applicationRepository) Withdraw(ctx context.Context, id string) error {
	_, err := r.client.Delete(ctx, "/application/"+id)
	return err
}

func (r *applicationRepository) ListAll(ctx context.Context, q domain.ApplicationFilter) (*domain.Page[*domain.Application], error) {
	return r.page(ctx, "/application", q.Values())
}

func (r *applicationRepository) SendMessage(ctx context.Context, id string, in *domain.MessageInput) (*domain.Message, error) {
	env, err := r.client.Post(ctx, "/application/"+id+"/message", in)
	if err != nil {
		return nil, err
	}
	sent, err := httpclient.Decode[struct {
		Message *domain.Message `json:"message"`
	}](env)
	if err != nil {
		return nil, err
	}
	if sent.Message == nil {
		return nil, apperror.New(http.StatusOK, "", errors.New("rest: response carried no message"))
	}
	return sent.Message, nil
}

func (r *applicationRepository) Rate(ctx context.Context, id string, in *domain.RatingInput) error {
	_, err := r.client.Post(ctx, "/application/"+id+"/rate", in)
	return err
}

func (r *applicationRepository) Stats(ctx context.Context, q domain.StatsParams) (*domain.ApplicationStats, error) {
	env, err := r.client.Get(ctx, "/application/employer/stats", q.Values())
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.ApplicationStats](env, "stats")
}

func (r *applicationRepository) BulkUpdate(ctx context.Context, in *domain.BulkStatusUpdate) (*domain.BulkUpdateResult, error) {
	env, err := r.client.Put(ctx, "/application/bulk/update", in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.BulkUpdateResult](env, "result")
}

func (r *applicationRepository) Conversation(ctx context.Context, id string) (*domain.Conversation, error) {
	env, err := r.client.Get(ctx, "/application/"+id+"/conversation", nil)
	if err != nil {
		return nil, err
	}
	conv, err := httpclient.Decode[*domain.Conversation](env)
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
}

func (r *applicationRepository) page(ctx context.Context, path string, query url.Values) (*domain.Page[*domain.Application], error) {
	env, err := r.client.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return decodePage[*domain.Application](env)
}
