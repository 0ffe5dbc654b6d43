package sandbox

import (
	"encoding/json"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/security"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

func (b *Backend) UploadResume(caller Caller, title, fileName string, content []byte) (*domain.Resume, error) {
	if !caller.is(domain.RoleJobSeeker) {
		return nil, apperror.Forbidden("Only job seekers can upload resumes")
	}
	if res := security.ValidateUpload(security.UploadResume, fileName, content); !res.Valid {
		return nil, apperror.BadRequest(res.Error)
	}
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(fileName, filepath.Ext(fileName))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	r := &domain.Resume{
		ID:        b.newID(),
		Title:     title,
		FileName:  fileName,
		IsDefault: len(b.resumesOf(caller.ID)) == 0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.FileURL = "/uploads/resumes/" + r.ID + extOf(fileName)
	b.resumes[r.ID] = r
	b.resumeOwner[r.ID] = caller.ID

	out := *r
	return &out, nil
}

// extOf returns the lower-cased extension of name, dot included.
func extOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return strings.ToLower(name[i:])
	}
	return ""
}

func (b *Backend) ListResumes(caller Caller, p domain.ListParams) ListResult[*domain.Resume] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return paginate(b.resumesOf(caller.ID), p, "Resumes")
}

// resumesOf returns copies of the owner's resumes, newest first.
func (b *Backend) resumesOf(owner string) []*domain.Resume {
	var out []*domain.Resume
	for id, r := range b.resumes {
		if b.resumeOwner[id] == owner {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (b *Backend) Resume(caller Caller, id string) (*domain.Resume, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.ownedResume(caller, id)
	if err != nil {
		return nil, err
	}
	if b.resumeOwner[id] != caller.ID {
		next := *r
		next.Views++
		b.resumes[id] = &next
		r = &next
	}
	out := *r
	return &out, nil
}

// ownedResume lets the owner and admins through. Employers may read a
// resume attached to an application they received.
func (b *Backend) ownedResume(caller Caller, id string) (*domain.Resume, error) {
	r, ok := b.resumes[id]
	if !ok {
		return nil, notFound("Resume")
	}
	if b.resumeOwner[id] == caller.ID || caller.Role == domain.RoleAdmin {
		return r, nil
	}
	for _, app := range b.applications {
		if app.ResumeID == id && app.Employer.ID == caller.ID {
			return r, nil
		}
	}
	return nil, apperror.Forbidden("Not authorized to access this resume")
}

func (b *Backend) DeleteResume(caller Caller, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.resumes[id]
	if !ok {
		return notFound("Resume")
	}
	if b.resumeOwner[id] != caller.ID {
		return apperror.Forbidden("Not authorized to delete this resume")
	}
	delete(b.resumes, id)
	delete(b.resumeOwner, id)

	if r.IsDefault {
		if rest := b.resumesOf(caller.ID); len(rest) > 0 {
			next := *b.resumes[rest[0].ID]
			next.IsDefault = true
			b.resumes[next.ID] = &next
		}
	}
	return nil
}

func (b *Backend) SetDefaultResume(caller Caller, id string) (*domain.Resume, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.resumes[id]; !ok {
		return nil, notFound("Resume")
	}
	if b.resumeOwner[id] != caller.ID {
		return nil, apperror.Forbidden("Not authorized to modify this resume")
	}
	for rid, r := range b.resumes {
		if b.resumeOwner[rid] != caller.ID || r.IsDefault == (rid == id) {
			continue
		}
		next := *r
		next.IsDefault = rid == id
		b.resumes[rid] = &next
	}
	out := *b.resumes[id]
	return &out, nil
}

func (b *Backend) UpdateResumeData(caller Caller, id string, in *domain.ResumeDataInput) (*domain.Resume, error) {
	if in.DataType == domain.ResumeSkills {
		var skills []string
		if err := json.Unmarshal(in.Data, &skills); err != nil {
			return nil, apperror.BadRequest("skills must be a list of strings")
		}
		return b.mutateResume(caller, id, func(r *domain.Resume) error {
			r.Skills = skills
			return nil
		})
	}

	var entries []domain.ResumeEntry
	if err := json.Unmarshal(in.Data, &entries); err != nil {
		var one domain.ResumeEntry
		if json.Unmarshal(in.Data, &one) != nil {
			return nil, apperror.BadRequest("data must be an entry or a list of entries")
		}
		entries = []domain.ResumeEntry{one}
	}
	return b.mutateResume(caller, id, func(r *domain.Resume) error {
		sec := section(r, in.DataType)
		if sec == nil {
			return apperror.BadRequest("Unknown resume section: " + in.DataType)
		}
		next := slices.Clone(*sec)
		for _, e := range entries {
			if e.ID == "" {
				e.ID = b.newID()
			}
			next = append(next, e)
		}
		*sec = next
		return nil
	})
}

func (b *Backend) UpdateResumeItem(caller Caller, ref domain.ResumeItemRef, entry *domain.ResumeEntry) (*domain.Resume, error) {
	return b.mutateResume(caller, ref.ResumeID, func(r *domain.Resume) error {
		sec := section(r, ref.ItemType)
		if sec == nil {
			return apperror.BadRequest("Unknown resume section: " + ref.ItemType)
		}
		i := slices.IndexFunc(*sec, func(e domain.ResumeEntry) bool { return e.ID == ref.ItemID })
		if i < 0 {
			return notFound("Item")
		}
		next := slices.Clone(*sec)
		next[i] = *entry
		next[i].ID = ref.ItemID
		*sec = next
		return nil
	})
}

func (b *Backend) DeleteResumeItem(caller Caller, ref domain.ResumeItemRef) error {
	_, err := b.mutateResume(caller, ref.ResumeID, func(r *domain.Resume) error {
		sec := section(r, ref.ItemType)
		if sec == nil {
			return apperror.BadRequest("Unknown resume section: " + ref.ItemType)
		}
		i := slices.IndexFunc(*sec, func(e domain.ResumeEntry) bool { return e.ID == ref.ItemID })
		if i < 0 {
			return notFound("Item")
		}
		*sec = slices.Delete(slices.Clone(*sec), i, i+1)
		return nil
	})
	return err
}

func (b *Backend) BulkUpdateResume(caller Caller, id string, in *domain.ResumeBulkUpdate) (*domain.Resume, error) {
	return b.mutateResume(caller, id, func(r *domain.Resume) error {
		if in.Title != "" {
			r.Title = in.Title
		}
		if in.Skills != nil {
			r.Skills = slices.Clone(in.Skills)
		}
		for name, entries := range map[string][]domain.ResumeEntry{
			domain.ResumeEducation:      in.Education,
			domain.ResumeExperience:     in.Experience,
			domain.ResumeProjects:       in.Projects,
			domain.ResumeCertifications: in.Certifications,
		} {
			if entries == nil {
				continue
			}
			next := slices.Clone(entries)
			for i := range next {
				if next[i].ID == "" {
					next[i].ID = b.newID()
				}
			}
			*section(r, name) = next
		}
		return nil
	})
}

// mutateResume applies mutate to a copy of the caller's resume and stores
// the copy. Section slices must be replaced, never written in place.
func (b *Backend) mutateResume(caller Caller, id string, mutate func(*domain.Resume) error) (*domain.Resume, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.resumes[id]
	if !ok {
		return nil, notFound("Resume")
	}
	if b.resumeOwner[id] != caller.ID {
		return nil, apperror.Forbidden("Not authorized to modify this resume")
	}
	next := *r
	if err := mutate(&next); err != nil {
		return nil, err
	}
	next.UpdatedAt = b.now()
	b.resumes[id] = &next
	out := next
	return &out, nil
}

func section(r *domain.Resume, name string) *[]domain.ResumeEntry {
	switch name {
	case domain.ResumeEducation:
		return &r.Education
	case domain.ResumeExperience:
		return &r.Experience
	case domain.ResumeProjects:
		return &r.Projects
	case domain.ResumeCertifications:
		return &r.Certifications
	}
	return nil
}
