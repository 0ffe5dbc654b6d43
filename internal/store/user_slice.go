package store

import (
	"go-careerbridge/internal/domain"
)

type UserState struct {
	User            *domain.User
	Resumes         []*domain.Resume
	CurrentResume   *domain.Resume
	Token           string
	IsAuthenticated bool

	Loading        bool
	ProfileLoading bool
	ResumeLoading  bool

	Error   string
	Success string

	Pagination domain.Pagination
}

func (s *UserState) loadingFlag(op Op) *bool {
	switch op {
	case OpRegister, OpLogin, OpLogout, OpChangePassword:
		return &s.Loading
	case OpGetProfile, OpUpdateProfile, OpUpdateSocialLinks, OpToggleVisibility:
		return &s.ProfileLoading
	case OpUploadResume, OpGetMyResumes, OpGetResumeByID, OpDeleteResume, OpSetDefaultResume,
		OpUpdateResumeData, OpUpdateResumeItem, OpDeleteResumeItem, OpBulkUpdateResume:
		return &s.ResumeLoading
	}
	return nil
}

func reduceUser(s UserState, a Action) UserState {
	switch a := a.(type) {
	case Pending:
		setFlag(s.loadingFlag(a.Op), true)
		s.Error = ""
	case Rejected:
		setFlag(s.loadingFlag(a.Op), false)
		s.Error = a.Error
	case Fulfilled:
		setFlag(s.loadingFlag(a.Op), false)
		s = s.fulfill(a)
	case ClearError:
		s.Error = ""
	case ClearSuccess:
		s.Success = ""
	case SetToken:
		s.Token = a.Token
		s.IsAuthenticated = a.Token != ""
	case ClearUserData:
		s = s.cleared()
	}
	return s
}

func (s UserState) cleared() UserState {
	s.User = nil
	s.Resumes = nil
	s.CurrentResume = nil
	s.Token = ""
	s.IsAuthenticated = false
	return s
}

func (s UserState) fulfill(a Fulfilled) UserState {
	switch a.Op {
	case OpRegister, OpLogin:
		if res, ok := a.Payload.(*domain.AuthResult); ok {
			s.User = res.User
			if res.Token != "" {
				s.Token = res.Token
			}
			s.IsAuthenticated = true
		}
		if a.Op == OpRegister {
			s.Success = "Registration successful!"
		} else {
			s.Success = "Login successful!"
		}

	case OpLogout:
		s = s.cleared()
		s.Success = "Logged out successfully!"

	case OpGetProfile:
		if u, ok := a.Payload.(*domain.User); ok {
			s.User = u
		}

	case OpUpdateProfile, OpUpdateSocialLinks, OpToggleVisibility:
		u, ok := a.Payload.(*domain.User)
		if !ok {
			break
		}
		s.User = u
		switch a.Op {
		case OpUpdateProfile:
			s.Success = "Profile updated successfully!"
		case OpUpdateSocialLinks:
			s.Success = "Social links updated!"
		default:
			if u.IsProfilePublic {
				s.Success = "Profile is now public"
			} else {
				s.Success = "Profile is now private"
			}
		}

	case OpChangePassword:
		s.Success = "Password changed successfully!"

	case OpUploadResume:
		if r, ok := a.Payload.(*domain.Resume); ok {
			s.Resumes = prepend(s.Resumes, r)
			s.Success = "Resume uploaded successfully!"
		}

	case OpGetMyResumes:
		if page, ok := a.Payload.(*domain.Page[*domain.Resume]); ok {
			s.Resumes = page.Items
			s.Pagination = page.Pagination
		}

	case OpGetResumeByID:
		if r, ok := a.Payload.(*domain.Resume); ok {
			s.CurrentResume = r
		}

	case OpDeleteResume:
		if id, ok := a.Payload.(string); ok {
			s.Resumes = removeByID(s.Resumes, id)
			s.CurrentResume = clearCurrent(s.CurrentResume, id)
			s.Success = "Resume deleted successfully!"
		}

	case OpSetDefaultResume:
		if r, ok := a.Payload.(*domain.Resume); ok {
			s.Resumes = markDefault(s.Resumes, r.ID)
			if s.CurrentResume != nil && s.CurrentResume.IsDefault != (s.CurrentResume.ID == r.ID) {
				cur := *s.CurrentResume
				cur.IsDefault = cur.ID == r.ID
				s.CurrentResume = &cur
			}
			s.Success = "Default resume updated!"
		}

	case OpUpdateResumeData, OpUpdateResumeItem, OpBulkUpdateResume:
		r, ok := a.Payload.(*domain.Resume)
		if !ok {
			break
		}
		s.CurrentResume = r
		s.Resumes = replaceByID(s.Resumes, r)
		switch a.Op {
		case OpUpdateResumeData:
			s.Success = "Resume data updated!"
		case OpUpdateResumeItem:
			s.Success = "Item updated successfully!"
		default:
			s.Success = "Resume updated successfully!"
		}

	case OpDeleteResumeItem:
		s.Success = "Item deleted successfully!"
	}
	return s
}

// markDefault rewrites every resume's flag so that only id is the default.
// Resumes whose flag is already right keep their pointer.
func markDefault(list []*domain.Resume, id string) []*domain.Resume {
	out := make([]*domain.Resume, len(list))
	for i, r := range list {
		want := r.ID == id
		if r.IsDefault == want {
			out[i] = r
			continue
		}
		cp := *r
		cp.IsDefault = want
		out[i] = &cp
	}
	return out
}

func setFlag(flag *bool, v bool) {
	if flag != nil {
		*flag = v
	}
}
