package sandbox

import (
	"encoding/json"
	"fmt"
	"go-careerbridge/internal/domain"
	"time"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "Sandbox123"

// Seeded accounts, one per role.
const (
	SeedAdminEmail    = "admin@careerbridge.test"
	SeedEmployerEmail = "employer@careerbridge.test"
	SeedSeekerEmail   = "seeker@careerbridge.test"
)

// minimalPDF is enough for the resume upload checks.
var minimalPDF = []byte("%PDF-1.4\n1 0 obj<</Type/Catalog>>endobj\ntrailer<</Root 1 0 R>>\n%%EOF\n")

// Seed fills an empty backend with one account per role, a company, three
// jobs (two active, one draft), a resume and an application with a short
// conversation.
func (b *Backend) Seed() error {
	register := func(name, email, role, company string) (Caller, error) {
		u, err := b.Register(&domain.RegisterInput{
			FullName: name, Email: email, Password: SeedPassword, ConfirmPassword: SeedPassword,
			Role: role, CompanyName: company, AgreeToTerms: true,
		})
		if err != nil {
			return Caller{}, fmt.Errorf("seed %s: %w", email, err)
		}
		return Caller{ID: u.ID, Role: u.Role}, nil
	}

	if _, err := register("Ada Admin", SeedAdminEmail, domain.RoleAdmin, ""); err != nil {
		return err
	}
	employer, err := register("Erin Employer", SeedEmployerEmail, domain.RoleEmployer, "Northwind Labs")
	if err != nil {
		return err
	}
	seeker, err := register("Sam Seeker", SeedSeekerEmail, domain.RoleJobSeeker, "")
	if err != nil {
		return err
	}

	company, err := b.CreateCompany(employer, &domain.CompanyInput{
		Name:        "Northwind Labs",
		Description: "Logistics software for mid-sized carriers.",
		Location:    "Austin, TX",
		Industry:    "Software",
		Website:     "https://northwind.example.com",
		CompanySize: "51-200",
	})
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}

	closing := b.now().Add(30 * 24 * time.Hour)
	jobs := []struct {
		input   domain.JobInput
		publish bool
	}{
		{domain.JobInput{
			Title:           "Backend Engineer (Go)",
			Description:     "Design and run the services that route thousands of shipments a day. You will own APIs, queues and the storage layer behind them.",
			ExperienceLevel: "MID",
			JobType:         "FULL_TIME",
			Salary:          &domain.Salary{Min: 90000, Max: 130000, Currency: "USD"},
			Locations:       &domain.Location{City: "Austin", State: "TX", Country: "USA"},
			SkillsRequired:  []string{"Go", "PostgreSQL", "Redis"},
		}, true},
		{domain.JobInput{
			Title:           "Frontend Developer",
			Description:     "Build the dispatcher console used by carrier operations teams. React, TypeScript and a strong eye for dense, fast interfaces.",
			ExperienceLevel: "MID",
			JobType:         "FULL_TIME",
			Salary:          &domain.Salary{Min: 80000, Max: 115000, Currency: "USD"},
			Locations:       &domain.Location{City: "Remote", Country: "USA", Remote: true},
			SkillsRequired:  []string{"React", "TypeScript"},
		}, true},
		{domain.JobInput{
			Title:           "Site Reliability Engineer",
			Description:     "Keep the routing platform fast and available. Kubernetes, observability and incident response across three regions and two clouds.",
			ExperienceLevel: "SENIOR",
			JobType:         "FULL_TIME",
			Locations:       &domain.Location{City: "Austin", State: "TX", Country: "USA"},
			SkillsRequired:  []string{"Kubernetes", "Go"},
		}, false},
	}
	var first *domain.Job
	for _, sj := range jobs {
		in := sj.input
		in.CompanyID = company.ID
		in.ClosingDate = closing
		j, err := b.CreateJob(employer, &in)
		if err != nil {
			return fmt.Errorf("seed job %q: %w", in.Title, err)
		}
		if sj.publish {
			if j, err = b.PublishJob(employer, j.ID); err != nil {
				return fmt.Errorf("seed publish %q: %w", in.Title, err)
			}
		}
		if first == nil {
			first = j
		}
	}

	resume, err := b.UploadResume(seeker, "Sam Seeker - Backend", "sam-seeker.pdf", minimalPDF)
	if err != nil {
		return fmt.Errorf("seed resume: %w", err)
	}
	skills, _ := json.Marshal([]string{"Go", "Redis", "Docker"})
	if _, err := b.UpdateResumeData(seeker, resume.ID, &domain.ResumeDataInput{DataType: domain.ResumeSkills, Data: skills}); err != nil {
		return fmt.Errorf("seed resume skills: %w", err)
	}

	app, err := b.Apply(seeker, &domain.ApplyInput{
		JobID:         first.ID,
		ResumeID:      resume.ID,
		CoverLetter:   "I have run Go services in production for four years.",
		Phone:         "+1 512 555 0100",
		AvailableFrom: b.now().Add(14 * 24 * time.Hour),
		AgreeToTerms:  true,
	})
	if err != nil {
		return fmt.Errorf("seed application: %w", err)
	}
	if _, err := b.SendMessage(employer, app.ID, &domain.MessageInput{Message: "Thanks for applying! Are you free for a call this week?"}); err != nil {
		return fmt.Errorf("seed message: %w", err)
	}
	return nil
}
