package sandbox

import (
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func (b *Backend) Register(in *domain.RegisterInput) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), b.cost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, taken := b.byEmail[email]; taken {
		return nil, apperror.Conflict("User already exists with this email")
	}

	now := b.now()
	rec := &userRecord{
		user: domain.User{
			ID:              b.newID(),
			FullName:        strings.TrimSpace(in.FullName),
			Email:           email,
			Phone:           in.Phone,
			Role:            in.Role,
			IsProfilePublic: true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		hash: hash,
	}
	switch in.Role {
	case domain.RoleEmployer:
		rec.user.EmployerProfile = &domain.EmployerProfile{CompanyName: in.CompanyName}
	default:
		rec.user.SeekerProfile = &domain.SeekerProfile{}
	}
	b.users[rec.user.ID] = rec
	b.byEmail[email] = rec.user.ID

	u := rec.user
	return &u, nil
}

// Login checks the credentials. The same message covers an unknown email
// and a wrong password.
func (b *Backend) Login(in *domain.LoginInput) (*domain.User, error) {
	b.mu.RLock()
	var (
		user domain.User
		hash []byte
	)
	if rec, ok := b.users[b.byEmail[strings.ToLower(strings.TrimSpace(in.Email))]]; ok {
		user, hash = rec.user, rec.hash
	}
	b.mu.RUnlock()

	if hash == nil || bcrypt.CompareHashAndPassword(hash, []byte(in.Password)) != nil {
		return nil, apperror.Unauthorized("Invalid email or password")
	}
	return &user, nil
}

// Revoke invalidates token until its own expiry.
func (b *Backend) Revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[token] = b.now()
}

func (b *Backend) Revoked(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.revoked[token]
	return ok
}

// User returns the current document of id.
func (b *Backend) User(id string) (*domain.User, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, ok := b.users[id]
	if !ok {
		return nil, notFound("User")
	}
	u := rec.user
	return &u, nil
}

func (b *Backend) UpdateProfile(caller Caller, in *domain.ProfileUpdate) (*domain.User, error) {
	return b.mutateUser(caller.ID, func(u *domain.User) {
		if in.FullName != "" {
			u.FullName = strings.TrimSpace(in.FullName)
		}
		if in.Phone != "" {
			u.Phone = in.Phone
		}
		if in.SeekerProfile != nil && u.Role != domain.RoleEmployer {
			p := *in.SeekerProfile
			u.SeekerProfile = &p
		}
		if in.EmployerProfile != nil && u.Role == domain.RoleEmployer {
			p := *in.EmployerProfile
			u.EmployerProfile = &p
		}
	})
}

func (b *Backend) ChangePassword(caller Caller, in *domain.ChangePasswordInput) error {
	b.mu.RLock()
	var current []byte
	if rec, ok := b.users[caller.ID]; ok {
		current = rec.hash
	}
	b.mu.RUnlock()
	if current == nil {
		return notFound("User")
	}
	if bcrypt.CompareHashAndPassword(current, []byte(in.CurrentPassword)) != nil {
		return apperror.BadRequest("Current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), b.cost)
	if err != nil {
		return apperror.Internal(err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.users[caller.ID]
	if !ok {
		return notFound("User")
	}
	rec.hash = hash
	rec.user.UpdatedAt = b.now()
	return nil
}

func (b *Backend) UpdateSocialLinks(caller Caller, links *domain.SocialLinks) (*domain.User, error) {
	return b.mutateUser(caller.ID, func(u *domain.User) {
		l := *links
		u.SocialLinks = &l
	})
}

func (b *Backend) ToggleVisibility(caller Caller) (*domain.User, error) {
	return b.mutateUser(caller.ID, func(u *domain.User) {
		u.IsProfilePublic = !u.IsProfilePublic
	})
}

func (b *Backend) mutateUser(id string, mutate func(*domain.User)) (*domain.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.users[id]
	if !ok {
		return nil, notFound("User")
	}
	next := rec.user
	mutate(&next)
	next.UpdatedAt = b.now()
	rec.user = next
	return &next, nil
}

// publicUser is the copy embedded in populated references.
func (b *Backend) publicUser(id string) domain.Ref[domain.User] {
	rec, ok := b.users[id]
	if !ok {
		return domain.Ref[domain.User]{ID: id}
	}
	u := domain.User{
		ID:       rec.user.ID,
		FullName: rec.user.FullName,
		Email:    rec.user.Email,
		Role:     rec.user.Role,
	}
	return domain.RefTo(id, &u)
}
