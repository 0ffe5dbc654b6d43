package usecase_test

import (
	"context"

	"go-careerbridge/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Register(ctx context.Context, in *domain.RegisterInput) (*domain.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockUserRepo) Login(ctx context.Context, in *domain.LoginInput) (*domain.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockUserRepo) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUserRepo) GetProfile(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, in *domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) ChangePassword(ctx context.Context, in *domain.ChangePasswordInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockUserRepo) UpdateSocialLinks(ctx context.Context, links *domain.SocialLinks) (*domain.User, error) {
	args := m.Called(ctx, links)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) ToggleVisibility(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) resume(args mock.Arguments) (*domain.Resume, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeRepo) Upload(ctx context.Context, in *domain.ResumeUpload) (*domain.Resume, error) {
	return m.resume(m.Called(ctx, in))
}

func (m *MockResumeRepo) ListMine(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Resume], error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[*domain.Resume]), args.Error(1)
}

func (m *MockResumeRepo) GetByID(ctx context.Context, id string) (*domain.Resume, error) {
	return m.resume(m.Called(ctx, id))
}

func (m *MockResumeRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResumeRepo) SetDefault(ctx context.Context, id string) (*domain.Resume, error) {
	return m.resume(m.Called(ctx, id))
}

func (m *MockResumeRepo) UpdateData(ctx context.Context, id string, in *domain.ResumeDataInput) (*domain.Resume, error) {
	return m.resume(m.Called(ctx, id, in))
}

func (m *MockResumeRepo) UpdateItem(ctx context.Context, ref domain.ResumeItemRef, entry *domain.ResumeEntry) (*domain.Resume, error) {
	return m.resume(m.Called(ctx, ref, entry))
}

func (m *MockResumeRepo) DeleteItem(ctx context.Context, ref domain.ResumeItemRef) error {
	return m.Called(ctx, ref).Error(0)
}

func (m *MockResumeRepo) BulkUpdate(ctx context.Context, id string, in *domain.ResumeBulkUpdate) (*domain.Resume, error) {
	return m.resume(m.Called(ctx, id, in))
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) job(args mock.Arguments) (*domain.Job, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) page(args mock.Arguments) (*domain.Page[*domain.Job], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[*domain.Job]), args.Error(1)
}

func (m *MockJobRepo) Create(ctx context.Context, in *domain.JobInput) (*domain.Job, error) {
	return m.job(m.Called(ctx, in))
}

func (m *MockJobRepo) List(ctx context.Context, q domain.JobSearch) (*domain.Page[*domain.Job], error) {
	return m.page(m.Called(ctx, q))
}

func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	return m.job(m.Called(ctx, id))
}

func (m *MockJobRepo) ListMine(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Job], error) {
	return m.page(m.Called(ctx, p))
}

func (m *MockJobRepo) Update(ctx context.Context, id string, in *domain.JobInput) (*domain.Job, error) {
	return m.job(m.Called(ctx, id, in))
}

func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) Publish(ctx context.Context, id string) (*domain.Job, error) {
	return m.job(m.Called(ctx, id))
}

func (m *MockJobRepo) Close(ctx context.Context, id string) (*domain.Job, error) {
	return m.job(m.Called(ctx, id))
}

func (m *MockJobRepo) TrackView(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) Search(ctx context.Context, q domain.JobSearch) (*domain.Page[*domain.Job], error) {
	return m.page(m.Called(ctx, q))
}

func (m *MockJobRepo) Similar(ctx context.Context, q domain.SimilarParams) ([]*domain.Job, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Save(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) Unsave(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) ListSaved(ctx context.Context, p domain.ListParams) (*domain.Page[*domain.Job], error) {
	return m.page(m.Called(ctx, p))
}

func (m *MockJobRepo) Stats(ctx context.Context) (*domain.JobStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobStats), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) app(args mock.Arguments) (*domain.Application, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) page(args mock.Arguments) (*domain.Page[*domain.Application], error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[*domain.Application]), args.Error(1)
}

func (m *MockApplicationRepo) Apply(ctx context.Context, in *domain.ApplyInput) (*domain.Application, error) {
	return m.app(m.Called(ctx, in))
}

func (m *MockApplicationRepo) ListMine(ctx context.Context, q domain.ApplicationFilter) (*domain.Page[*domain.Application], error) {
	return m.page(m.Called(ctx, q))
}

func (m *MockApplicationRepo) ListReceived(ctx context.Context, q domain.ApplicationFilter) (*domain.Page[*domain.Application], error) {
	return m.page(m.Called(ctx, q))
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	return m.app(m.Called(ctx, id))
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id string, in *domain.StatusUpdate) (*domain.Application, error) {
	return m.app(m.Called(ctx, id, in))
}

func (m *MockApplicationRepo) Withdraw(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockApplicationRepo) ListAll(ctx context.Context, q domain.ApplicationFilter) (*domain.Page[*domain.Application], error) {
	return m.page(m.Called(ctx, q))
}

func (m *MockApplicationRepo) SendMessage(ctx context.Context, id string, in *domain.MessageInput) (*domain.Message, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

func (m *MockApplicationRepo) Rate(ctx context.Context, id string, in *domain.RatingInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockApplicationRepo) Stats(ctx context.Context, q domain.StatsParams) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}

func (m *MockApplicationRepo) BulkUpdate(ctx context.Context, in *domain.BulkStatusUpdate) (*domain.BulkUpdateResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkUpdateResult), args.Error(1)
}

func (m *MockApplicationRepo) Conversation(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}
