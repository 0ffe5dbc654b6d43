package rest

import (
	"context"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/httpclient"
)

type userRepository struct {
	client *httpclient.Client
}

func NewUserRepository(client *httpclient.Client) domain.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Register(ctx context.Context, in *domain.RegisterInput) (*domain.AuthResult, error) {
	return r.authenticate(ctx, "/user/register", in)
}

func (r *userRepository) Login(ctx context.Context, in *domain.LoginInput) (*domain.AuthResult, error) {
	return r.authenticate(ctx, "/user/login", in)
}

func (r *userRepository) authenticate(ctx context.Context, path string, body any) (*domain.AuthResult, error) {
	env, err := r.client.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	user, err := decodeOne[domain.User](env, "user")
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user, Token: env.Token}, nil
}

func (r *userRepository) Logout(ctx context.Context) error {
	_, err := r.client.Get(ctx, "/user/logout", nil)
	return err
}

func (r *userRepository) GetProfile(ctx context.Context) (*domain.User, error) {
	env, err := r.client.Get(ctx, "/user/profile", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.User](env, "user")
}

func (r *userRepository) UpdateProfile(ctx context.Context, in *domain.ProfileUpdate) (*domain.User, error) {
	return r.putUser(ctx, "/user/update-profile", in)
}

func (r *userRepository) ChangePassword(ctx context.Context, in *domain.ChangePasswordInput) error {
	_, err := r.client.Post(ctx, "/user/change-password", in)
	return err
}

func (r *userRepository) UpdateSocialLinks(ctx context.Context, links *domain.SocialLinks) (*domain.User, error) {
	return r.putUser(ctx, "/user/social-links", links)
}

func (r *userRepository) ToggleVisibility(ctx context.Context) (*domain.User, error) {
	return r.putUser(ctx, "/user/toggle-visibility", nil)
}

func (r *userRepository) putUser(ctx context.Context, path string, body any) (*domain.User, error) {
	env, err := r.client.Put(ctx, path, body)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.User](env, "user")
}
