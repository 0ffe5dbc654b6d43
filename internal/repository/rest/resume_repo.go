package rest

import (
	"context"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/httpclient"
)

type resumeRepository struct {
	client *httpclient.Client
}

func NewResumeRepository(client *httpclient.Client) domain.ResumeRepository {
	return &resumeRepository{client: client}
}

func resumePath(id string, rest ...string) string {
	p := "/user/resume/" + id
	for _, seg := range rest {
		p += "/" + seg
	}
	return p
}

func (r *resumeRepository) Upload(ctx context.Context, in *domain.ResumeUpload) (*domain.Resume, error) {
	env, err := r.client.Upload(ctx, "/user/resume/upload",
		[]httpclient.FilePart{{Field: "resume", FileName: in.FileName, Content: in.Content}},
		map[string]string{"title": in.Title})
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Resume](env, "resume")
}

func (r *resumeRepository) ListMine(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Resume], error) {
	env, err := r.client.Get(ctx, "/user/resume/", p.Values())
	if err != nil {
		return nil, err
	}
	return decodePage[*domain.Resume](env)
}

func (r *resumeRepository) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	env, err := r.client.Get(ctx, resumePath(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Resume](env, "resume")
}

func (r *resumeRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Delete(ctx, resumePath(id))
	return err
}

func (r *resumeRepository) SetDefault(ctx context.Context, id string) (*domain.Resume, error) {
	env, err := r.client.Put(ctx, resumePath(id, "set-default"), nil)
	if err != nil {
		return nil, err
	}
	return httpclient.Decode[*domain.Resume](env)
}

func (r *resumeRepository) UpdateData(ctx context.Context, id string, in *domain.ResumeDataInput) (*domain.Resume, error) {
	env, err := r.client.Post(ctx, resumePath(id, "update-data"), in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Resume](env, "resume")
}

func (r *resumeRepository) UpdateItem(ctx context.Context, ref domain.ResumeItemRef, entry *domain.ResumeEntry) (*domain.Resume, error) {
	env, err := r.client.Put(ctx, resumePath(ref.ResumeID, ref.ItemType, ref.ItemID), entry)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Resume](env, "resume")
}

func (r *resumeRepository) DeleteItem(ctx context.Context, ref domain.ResumeItemRef) error {
	_, err := r.client.Delete(ctx, resumePath(ref.ResumeID, ref.ItemType, ref.ItemID))
	return err
}

func (r *resumeRepository) BulkUpdate(ctx context.Context, id string, in *domain.ResumeBulkUpdate) (*domain.Resume, error) {
	env, err := r.client.Put(ctx, resumePath(id, "bulk-update"), in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Resume](env, "resume")
}
