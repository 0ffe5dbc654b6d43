package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"
	"go-careerbridge/internal/usecase"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/tokenstore"
	"go-careerbridge/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStore() *store.Store {
	return store.New(store.InitialState("", time.Now()))
}

func TestApplyForJob(t *testing.T) {
	st := newStore()
	repo := new(MockApplicationRepo)
	uc := usecase.NewApplicationUsecase(repo, st, validation.New())

	in := &domain.ApplyInput{
		JobID:         "J1",
		ResumeID:      "R1",
		Phone:         "+1 555 010 2030",
		AvailableFrom: time.Now().Add(72 * time.Hour),
		AgreeToTerms:  true,
	}
	job := &domain.Job{ID: "J1", Title: "Platform Engineer"}
	created := &domain.Application{ID: "A1", Job: domain.RefTo("J1", job), ResumeID: "R1", Status: domain.AppStatusApplied}
	repo.On("Apply", mock.Anything, in).Return(created, nil).Once()

	t.Run("Should prepend the created application", func(t *testing.T) {
		got, err := uc.ApplyForJob(context.Background(), in)
		require.NoError(t, err)
		assert.Same(t, created, got)

		s := st.State().Application
		require.NotEmpty(t, s.MyApplications)
		assert.Equal(t, "Platform Engineer", s.MyApplications[0].Job.Value.Title)
		assert.Equal(t, domain.AppStatusApplied, s.MyApplications[0].Status)
		assert.Equal(t, "Application submitted successfully", s.Success)
		assert.False(t, s.AppLoading)
	})

	t.Run("Should reject locally without terms and never call the backend", func(t *testing.T) {
		bad := *in
		bad.AgreeToTerms = false
		bad.Phone = "12"
		_, err := uc.ApplyForJob(context.Background(), &bad)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, apperror.StatusCode(err))

		msg := st.State().Application.Error
		assert.Contains(t, msg, "You must agree to the terms and conditions")
		assert.Contains(t, msg, "Please enter a valid phone number")
		repo.AssertNumberOfCalls(t, "Apply", 1)
	})
}

func TestPublishAndWithdraw(t *testing.T) {
	st := newStore()
	jobRepo := new(MockJobRepo)
	appRepo := new(MockApplicationRepo)
	jobs := usecase.NewJobUsecase(jobRepo, st, validation.New())
	apps := usecase.NewApplicationUsecase(appRepo, st, validation.New())

	jobRepo.On("ListMine", mock.Anything, domain.ListParams{Page: 1, Limit: 10}).Return(&domain.Page[*domain.Job]{
		Items: []*domain.Job{{ID: "J1", Status: domain.JobStatusActive}, {ID: "J2", Status: domain.JobStatusDraft}},
	}, nil)
	jobRepo.On("Publish", mock.Anything, "J2").Return(&domain.Job{ID: "J2", Status: domain.JobStatusActive}, nil)

	_, err := jobs.GetMyJobs(context.Background(), domain.ListParams{})
	require.NoError(t, err)
	_, err = jobs.PublishJob(context.Background(), "J2")
	require.NoError(t, err)

	js := st.State().Job
	assert.Equal(t, domain.JobStatusActive, js.Jobs[1].Status)
	assert.Equal(t, "Job published successfully", js.Success)

	appRepo.On("ListMine", mock.Anything, mock.Anything).Return(&domain.Page[*domain.Application]{
		Items: []*domain.Application{{ID: "A1"}, {ID: "A3"}},
	}, nil)
	appRepo.On("Withdraw", mock.Anything, "A3").Return(nil)

	_, err = apps.GetMyApplications(context.Background(), domain.ApplicationFilter{})
	require.NoError(t, err)
	require.NoError(t, apps.WithdrawApplication(context.Background(), "A3"))

	as := st.State().Application
	require.Len(t, as.MyApplications, 1)
	assert.Equal(t, "A1", as.MyApplications[0].ID)
	assert.Equal(t, "Application withdrawn successfully", as.Success)
}

func TestFailedFetch(t *testing.T) {
	st := newStore()
	repo := new(MockJobRepo)
	uc := usecase.NewJobUsecase(repo, st, validation.New())

	existing := &domain.Page[*domain.Job]{
		Items:      []*domain.Job{{ID: "J1"}},
		Pagination: domain.Pagination{CurrentPage: 1, TotalPages: 3, Total: 25, PerPage: 10},
	}
	repo.On("List", mock.Anything, mock.Anything).Return(existing, nil).Once()
	_, err := uc.GetAllJobs(context.Background(), domain.JobSearch{})
	require.NoError(t, err)

	t.Run("Should keep the list and store the backend message", func(t *testing.T) {
		repo.On("List", mock.Anything, mock.Anything).Return(nil, apperror.New(http.StatusServiceUnavailable, "Service down", nil)).Once()
		_, err := uc.GetAllJobs(context.Background(), domain.JobSearch{})
		require.Error(t, err)

		s := st.State().Job
		assert.Equal(t, "Service down", s.Error)
		assert.Same(t, existing.Items[0], s.Jobs[0])
		assert.Equal(t, existing.Pagination, s.Pagination)
		assert.False(t, s.Loading)
	})

	t.Run("Should fall back when the backend sent no message", func(t *testing.T) {
		repo.On("List", mock.Anything, mock.Anything).Return(nil, apperror.Transport(errors.New("connection refused"))).Once()
		_, err := uc.GetAllJobs(context.Background(), domain.JobSearch{})
		require.Error(t, err)
		assert.Equal(t, "Failed to fetch jobs", st.State().Job.Error)
	})

	t.Run("Should apply default paging", func(t *testing.T) {
		repo.On("List", mock.Anything, domain.JobSearch{ListParams: domain.ListParams{Page: 1, Limit: 10}, Keyword: "go"}).
			Return(&domain.Page[*domain.Job]{}, nil).Once()
		_, err := uc.GetAllJobs(context.Background(), domain.JobSearch{Keyword: "go"})
		require.NoError(t, err)
	})
}

func TestCreateJobValidation(t *testing.T) {
	st := newStore()
	repo := new(MockJobRepo)
	uc := usecase.NewJobUsecase(repo, st, validation.New())

	in := &domain.JobInput{
		Title:           "Backend Engineer",
		Description:     "too short",
		CompanyID:       "C1",
		ExperienceLevel: "MID",
		Salary:          &domain.Salary{Min: 5000, Max: 1000},
		ClosingDate:     time.Now().Add(-time.Hour),
	}
	_, err := uc.CreateJob(context.Background(), in)
	require.Error(t, err)

	msg := st.State().Job.Error
	assert.Contains(t, msg, "Description must be at least 100 characters")
	assert.Contains(t, msg, "Closing date must be in the future")
	assert.Contains(t, msg, "Maximum salary must be greater than or equal to Minimum salary")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	in.Description = strings.Repeat("a", 120)
	in.Salary.Max = 9000
	in.ClosingDate = time.Now().Add(24 * time.Hour)
	repo.On("Create", mock.Anything, in).Return(&domain.Job{ID: "J9", Status: domain.JobStatusDraft}, nil)

	_, err = uc.CreateJob(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Job created successfully (Status: DRAFT)", st.State().Job.Success)
	assert.Equal(t, "J9", st.State().Job.Jobs[0].ID)
}

func TestLoginPersistsSession(t *testing.T) {
	st := newStore()
	repo := new(MockUserRepo)
	tokens := tokenstore.NewMemoryStore()
	uc := usecase.NewAuthUsecase(repo, tokens, st, validation.New())

	in := &domain.LoginInput{Email: "ada@example.com", Password: "Secret123", RememberMe: true}
	user := &domain.User{ID: "U1", Email: in.Email}
	repo.On("Login", mock.Anything, in).Return(&domain.AuthResult{User: user, Token: "jwt-token"}, nil)
	repo.On("Logout", mock.Anything).Return(nil)

	got, err := uc.Login(context.Background(), in)
	require.NoError(t, err)
	assert.Same(t, user, got)

	s := st.State().User
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "jwt-token", s.Token)
	assert.Equal(t, "Login successful!", s.Success)

	stored, _ := tokens.Token(context.Background())
	assert.Equal(t, "jwt-token", stored)
	email, _ := tokens.RememberedEmail(context.Background())
	assert.Equal(t, "ada@example.com", email)

	require.NoError(t, uc.Logout(context.Background()))
	stored, _ = tokens.Token(context.Background())
	assert.Empty(t, stored)
	assert.False(t, st.State().User.IsAuthenticated)
	assert.Equal(t, "Logged out successfully!", st.State().User.Success)
}

func TestRegisterValidation(t *testing.T) {
	st := newStore()
	repo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(repo, tokenstore.NewMemoryStore(), st, validation.New())

	_, err := uc.Register(context.Background(), &domain.RegisterInput{
		FullName:        "Grace Hopper",
		Email:           "grace@example.com",
		Password:        "Password1",
		ConfirmPassword: "Password2",
		Role:            domain.RoleEmployer,
		AgreeToTerms:    true,
	})
	require.Error(t, err)

	msg := st.State().User.Error
	assert.Contains(t, msg, "Passwords do not match")
	assert.Contains(t, msg, "Company name is required for this role")
	repo.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestSendMessage(t *testing.T) {
	st := newStore()
	repo := new(MockApplicationRepo)
	uc := usecase.NewApplicationUsecase(repo, st, validation.New())

	repo.On("Conversation", mock.Anything, "A1").Return(&domain.Conversation{
		Messages: []domain.Message{{ID: "M1", Content: "Hi"}},
	}, nil)
	repo.On("SendMessage", mock.Anything, "A1", &domain.MessageInput{Message: "Thanks"}).
		Return(&domain.Message{ID: "M2", Content: "Thanks"}, nil)
	repo.On("SendMessage", mock.Anything, "A2", &domain.MessageInput{Message: "Elsewhere"}).
		Return(&domain.Message{ID: "M3", Content: "Elsewhere"}, nil)

	conv, err := uc.GetConversation(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", conv.ApplicationID)

	_, err = uc.SendMessage(context.Background(), "A1", &domain.MessageInput{Message: "Thanks"})
	require.NoError(t, err)
	_, err = uc.SendMessage(context.Background(), "A2", &domain.MessageInput{Message: "Elsewhere"})
	require.NoError(t, err)

	msgs := st.State().Application.CurrentConversation.Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, "M2", msgs[1].ID)

	t.Run("Should leave the thread alone when the backend echoes nothing", func(t *testing.T) {
		silent := &domain.MessageInput{Message: "Anyone there?"}
		repo.On("SendMessage", mock.Anything, "A1", silent).Return(nil, nil).Once()

		got, err := uc.SendMessage(context.Background(), "A1", silent)
		require.Error(t, err)
		assert.Nil(t, got)

		s := st.State().Application
		assert.Len(t, s.CurrentConversation.Messages, 2)
		assert.Equal(t, "Failed to send message", s.Error)
	})

	t.Run("Should refuse an empty message", func(t *testing.T) {
		_, err := uc.SendMessage(context.Background(), "A1", &domain.MessageInput{})
		require.Error(t, err)
		assert.Equal(t, "Message is required", st.State().Application.Error)
	})
}

func TestUploadResumeChecksFileBeforeSending(t *testing.T) {
	st := newStore()
	repo := new(MockResumeRepo)
	uc := usecase.NewResumeUsecase(repo, st, validation.New())

	_, err := uc.UploadResume(context.Background(), &domain.ResumeUpload{
		Title:    "CV",
		FileName: "cv.pdf",
		Content:  []byte("not really a pdf"),
	})
	require.Error(t, err)
	assert.Contains(t, st.State().User.Error, "Invalid resume file")
	repo.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)

	pdf := append([]byte("%PDF-1.7\n"), []byte(strings.Repeat("x", 64))...)
	in := &domain.ResumeUpload{Title: "CV", FileName: "cv.pdf", Content: pdf}
	repo.On("Upload", mock.Anything, in).Return(&domain.Resume{ID: "R1", Title: "CV"}, nil)

	_, err = uc.UploadResume(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Resume uploaded successfully!", st.State().User.Success)
	assert.Equal(t, "R1", st.State().User.Resumes[0].ID)
}

func TestSetDefaultResume(t *testing.T) {
	st := store.New(store.InitialState("", time.Now()))
	repo := new(MockResumeRepo)
	uc := usecase.NewResumeUsecase(repo, st, validation.New())

	repo.On("ListMine", mock.Anything, domain.ListParams{Page: 1, Limit: domain.DefaultPageSize}).Return(&domain.Page[*domain.Resume]{
		Items: []*domain.Resume{{ID: "R1", IsDefault: true}, {ID: "R2"}},
	}, nil)
	repo.On("SetDefault", mock.Anything, "R2").Return(nil, nil)

	_, err := uc.GetMyResumes(context.Background(), domain.ListParams{})
	require.NoError(t, err)
	_, err = uc.SetDefaultResume(context.Background(), "R2")
	require.NoError(t, err)

	resumes := st.State().User.Resumes
	assert.False(t, resumes[0].IsDefault)
	assert.True(t, resumes[1].IsDefault)
}
