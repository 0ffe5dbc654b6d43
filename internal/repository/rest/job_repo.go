package rest

import (
	"context"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/httpclient"
	"net/url"
)

type jobRepository struct {
	client *httpclient.Client
}

func NewJobRepository(client *httpclient.Client) domain.JobRepository {
	return &jobRepository{client: client}
}

func (r *jobRepository) Create(ctx context.Context, in *domain.JobInput) (*domain.Job, error) {
	env, err := r.client.Post(ctx, "/job", in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Job](env, "job")
}

func (r *jobRepository) List(ctx context.Context, q domain.JobSearch) (*domain.Page[*domain.Job], error) {
	return r.page(ctx, "/job", q.Values())
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	env, err := r.client.Get(ctx, "/job/"+id, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Job](env, "job")
}

func (r *jobRepository) ListMine(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Job], error) {
	return r.page(ctx, "/job/employer/my-jobs", p.Values())
}

func (r *jobRepository) Update(ctx context.Context, id string, in *domain.JobInput) (*domain.Job, error) {
	return r.put(ctx, "/job/"+id, in)
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Delete(ctx, "/job/"+id)
	return err
}

func (r *jobRepository) Publish(ctx context.Context, id string) (*domain.Job, error) {
	return r.put(ctx, "/job/"+id+"/publish", nil)
}

func (r *jobRepository) Close(ctx context.Context, id string) (*domain.Job, error) {
	return r.put(ctx, "/job/"+id+"/close", nil)
}

func (r *jobRepository) TrackView(ctx context.Context, id string) error {
	_, err := r.client.Post(ctx, "/job/"+id+"/view", nil)
	return err
}

func (r *jobRepository) Search(ctx context.Context, q domain.JobSearch) (*domain.Page[*domain.Job], error) {
	return r.page(ctx, "/job/search", q.Values())
}

func (r *jobRepository) Similar(ctx context.Context, q domain.SimilarParams) ([]*domain.Job, error) {
	env, err := r.client.Get(ctx, "/job/similar", q.Values())
	if err != nil {
		return nil, err
	}
	return httpclient.Decode[[]*domain.Job](env)
}

func (r *jobRepository) Save(ctx context.Context, id string) error {
	_, err := r.client.Post(ctx, "/job/"+id+"/save", nil)
	return err
}

func (r *jobRepository) Unsave(ctx context.Context, id string) error {
	_, err := r.client.Delete(ctx, "/job/"+id+"/unsave")
	return err
}

func (r *jobRepository) ListSaved(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Job], error) {
	return r.page(ctx, "/job/seeker/saved", p.Values())
}

func (r *jobRepository) Stats(ctx context.Context) (*domain.JobStats, error) {
	env, err := r.client.Get(ctx, "/job/employer/stats", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.JobStats](env, "stats")
}

func (r *jobRepository) page(ctx context.Context, path string, query url.Values) (*domain.Page[*domain.Job], error) {
	env, err := r.client.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	return decodePage[*domain.Job](env)
}

func (r *jobRepository) put(ctx context.Context, path string, body any) (*domain.Job, error) {
	env, err := r.client.Put(ctx, path, body)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Job](env, "job")
}
