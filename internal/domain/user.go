package domain

import (
	"context"
	"time"
)

const (
	RoleJobSeeker = "JOB_SEEKER"
	RoleEmployer  = "EMPLOYER"
	RoleAdmin     = "ADMIN"
)

type User struct {
	ID              string           `json:"_id"`
	FullName        string           `json:"fullName"`
	Email           string           `json:"email"`
	Phone           string           `json:"phone,omitempty"`
	Role            string           `json:"role"`
	SeekerProfile   *SeekerProfile   `json:"seekerProfile,omitempty"`
	EmployerProfile *EmployerProfile `json:"employerProfile,omitempty"`
	SocialLinks     *SocialLinks     `json:"socialLinks,omitempty"`
	IsProfilePublic bool             `json:"isProfilePublic"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type SeekerProfile struct {
	Headline        string   `json:"headline,omitempty"`
	Bio             string   `json:"bio,omitempty" validate:"max=1000"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears int      `json:"experienceYears,omitempty" validate:"gte=0,lte=60"`
	Location        string   `json:"location,omitempty"`
}

type EmployerProfile struct {
	CompanyName string `json:"companyName,omitempty"`
	Designation string `json:"designation,omitempty"`
}

type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
	GitHub    string `json:"github,omitempty" validate:"omitempty,url"`
	Portfolio string `json:"portfolio,omitempty" validate:"omitempty,url"`
	Twitter   string `json:"twitter,omitempty" validate:"omitempty,url"`
}

// AuthResult is what register and login hand back: the user document and
// the bearer token sent alongside it in the envelope.
type AuthResult struct {
	User  *User
	Token string
}

type RegisterInput struct {
	FullName        string `json:"fullName" validate:"required,min=2,max=100,valid_name,no_emoji"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone,omitempty" validate:"valid_phone"`
	Password        string `json:"password" validate:"required,min=8,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,oneof=JOB_SEEKER EMPLOYER"`
	CompanyName     string `json:"companyName,omitempty" validate:"required_if=Role EMPLOYER"`
	AgreeToTerms    bool   `json:"agreeToTerms" validate:"eq=true"`
}

type LoginInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"-"`
}

type ProfileUpdate struct {
	FullName        string           `json:"fullName,omitempty" validate:"omitempty,min=2,max=100,valid_name,no_emoji"`
	Phone           string           `json:"phone,omitempty" validate:"valid_phone"`
	SeekerProfile   *SeekerProfile   `json:"seekerProfile,omitempty"`
	EmployerProfile *EmployerProfile `json:"employerProfile,omitempty"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type UserRepository interface {
	Register(ctx context.Context, in *RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in *LoginInput) (*AuthResult, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, in *ProfileUpdate) (*User, error)
	ChangePassword(ctx context.Context, in *ChangePasswordInput) error
	UpdateSocialLinks(ctx context.Context, links *SocialLinks) (*User, error)
	ToggleVisibility(ctx context.Context) (*User, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, in *RegisterInput) (*User, error)
	Login(ctx context.Context, in *LoginInput) (*User, error)
	Logout(ctx context.Context) error
	GetProfile(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, in *ProfileUpdate) (*User, error)
	ChangePassword(ctx context.Context, in *ChangePasswordInput) error
	UpdateSocialLinks(ctx context.Context, links *SocialLinks) (*User, error)
	ToggleProfileVisibility(ctx context.Context) (*User, error)
}

func (u *User) GetID() string {
	if u == nil {
		return ""
	}
	return u.ID
}
