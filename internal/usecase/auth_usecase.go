package usecase

import (
	"context"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"
	"go-careerbridge/pkg/logger"
	"go-careerbridge/pkg/tokenstore"

	"github.com/go-playground/validator/v10"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   tokenstore.Store
	store    *store.Store
	validate *validator.Validate
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens tokenstore.Store, st *store.Store, validate *validator.Validate) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		store:    st,
		validate: validate,
	}
}

func (u *authUsecase) Register(ctx context.Context, in *domain.RegisterInput) (*domain.User, error) {
	if err := check(u.store, u.validate, store.OpRegister, in); err != nil {
		return nil, err
	}
	res, err := run(ctx, u.store, store.OpRegister, laneUserSession, "Registration failed",
		func(ctx context.Context) (*domain.AuthResult, error) {
			res, err := u.userRepo.Register(ctx, in)
			if err != nil {
				return nil, err
			}
			u.persistToken(ctx, res.Token)
			return res, nil
		})
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

func (u *authUsecase) Login(ctx context.Context, in *domain.LoginInput) (*domain.User, error) {
	if err := check(u.store, u.validate, store.OpLogin, in); err != nil {
		return nil, err
	}
	res, err := run(ctx, u.store, store.OpLogin, laneUserSession, "Login failed",
		func(ctx context.Context) (*domain.AuthResult, error) {
			res, err := u.userRepo.Login(ctx, in)
			if err != nil {
				return nil, err
			}
			u.persistToken(ctx, res.Token)
			remembered := ""
			if in.RememberMe {
				remembered = in.Email
			}
			if err := u.tokens.SetRememberedEmail(ctx, remembered); err != nil {
				logger.Log.Warn("failed to persist remembered email", "error", err)
			}
			return res, nil
		})
	if err != nil {
		return nil, err
	}
	return res.User, nil
}

func (u *authUsecase) Logout(ctx context.Context) error {
	return runErr(ctx, u.store, store.OpLogout, laneUserSession, "Logout failed", nil,
		func(ctx context.Context) error {
			if err := u.userRepo.Logout(ctx); err != nil {
				return err
			}
			if err := u.tokens.ClearToken(ctx); err != nil {
				logger.Log.Warn("failed to clear stored token", "error", err)
			}
			return nil
		})
}

func (u *authUsecase) GetProfile(ctx context.Context) (*domain.User, error) {
	return run(ctx, u.store, store.OpGetProfile, laneUserProfile, "Failed to fetch profile", u.userRepo.GetProfile)
}

func (u *authUsecase) UpdateProfile(ctx context.Context, in *domain.ProfileUpdate) (*domain.User, error) {
	if err := check(u.store, u.validate, store.OpUpdateProfile, in); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpUpdateProfile, laneUserProfile, "Failed to update profile",
		func(ctx context.Context) (*domain.User, error) {
			return u.userRepo.UpdateProfile(ctx, in)
		})
}

func (u *authUsecase) ChangePassword(ctx context.Context, in *domain.ChangePasswordInput) error {
	if err := check(u.store, u.validate, store.OpChangePassword, in); err != nil {
		return err
	}
	return runErr(ctx, u.store, store.OpChangePassword, "", "Failed to change password", nil,
		func(ctx context.Context) error {
			return u.userRepo.ChangePassword(ctx, in)
		})
}

func (u *authUsecase) UpdateSocialLinks(ctx context.Context, links *domain.SocialLinks) (*domain.User, error) {
	if err := check(u.store, u.validate, store.OpUpdateSocialLinks, links); err != nil {
		return nil, err
	}
	return run(ctx, u.store, store.OpUpdateSocialLinks, laneUserProfile, "Failed to update social links",
		func(ctx context.Context) (*domain.User, error) {
			return u.userRepo.UpdateSocialLinks(ctx, links)
		})
}

func (u *authUsecase) ToggleProfileVisibility(ctx context.Context) (*domain.User, error) {
	return run(ctx, u.store, store.OpToggleVisibility, laneUserProfile, "Failed to toggle visibility", u.userRepo.ToggleVisibility)
}

// persistToken stores the session token. A storage failure does not fail
// the login: the in-memory session still works for this run.
func (u *authUsecase) persistToken(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := u.tokens.SetToken(ctx, token); err != nil {
		logger.Log.Warn("failed to persist token", "error", err)
	}
}
