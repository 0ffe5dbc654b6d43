package main

import (
	"encoding/json"
	"fmt"
	"go-careerbridge/internal/domain"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// emit prints v as indented JSON in -json mode, otherwise runs table.
func (a *app) emit(v any, table func(w io.Writer)) error {
	if a.asJSON || table == nil {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	table(a.out)
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printUser(w io.Writer, u *domain.User) {
	if u == nil {
		return
	}
	fmt.Fprintf(w, "%s <%s>\n", u.FullName, u.Email)
	fmt.Fprintf(w, "Role: %s  ID: %s\n", u.Role, u.ID)
	if u.EmployerProfile != nil && u.EmployerProfile.CompanyName != "" {
		fmt.Fprintf(w, "Company: %s\n", u.EmployerProfile.CompanyName)
	}
	if p := u.SeekerProfile; p != nil {
		if p.Headline != "" {
			fmt.Fprintf(w, "Headline: %s\n", p.Headline)
		}
		if len(p.Skills) > 0 {
			fmt.Fprintf(w, "Skills: %s\n", strings.Join(p.Skills, ", "))
		}
	}
}

func printPagination(w io.Writer, p domain.Pagination, noun string) {
	fmt.Fprintf(w, "\nPage %d of %d (%d %s)\n", p.CurrentPage, max(p.TotalPages, 1), p.Total, noun)
}

func companyName(c domain.Ref[domain.Company]) string {
	if c.Value != nil {
		return c.Value.Name
	}
	return c.ID
}

func userName(u domain.Ref[domain.User]) string {
	if u.Value != nil {
		return u.Value.FullName
	}
	return u.ID
}

func location(l *domain.Location) string {
	if l == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{l.City, l.State, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	s := strings.Join(parts, ", ")
	if l.Remote && !strings.EqualFold(l.City, "remote") {
		s = strings.TrimPrefix(s+" (remote)", " ")
	}
	return s
}

func salary(s *domain.Salary) string {
	if s == nil || (s.Min == 0 && s.Max == 0) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%s %.0f-%.0f", s.Currency, s.Min, s.Max))
}

func printJobs(w io.Writer, jobs []*domain.Job) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tSALARY\tSTATUS")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Title, companyName(j.Company), location(j.Locations), salary(j.Salary), j.Status)
	}
	tw.Flush()
}

func printJob(w io.Writer, j *domain.Job) {
	fmt.Fprintf(w, "%s\n%s\n\n", j.Title, strings.Repeat("=", len(j.Title)))
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", j.ID)
	fmt.Fprintf(tw, "Company:\t%s\n", companyName(j.Company))
	fmt.Fprintf(tw, "Status:\t%s\n", j.Status)
	fmt.Fprintf(tw, "Level:\t%s\n", j.ExperienceLevel)
	if j.JobType != "" {
		fmt.Fprintf(tw, "Type:\t%s\n", j.JobType)
	}
	if loc := location(j.Locations); loc != "" {
		fmt.Fprintf(tw, "Location:\t%s\n", loc)
	}
	if s := salary(j.Salary); s != "" {
		fmt.Fprintf(tw, "Salary:\t%s\n", s)
	}
	if len(j.SkillsRequired) > 0 {
		fmt.Fprintf(tw, "Skills:\t%s\n", strings.Join(j.SkillsRequired, ", "))
	}
	if j.ClosingDate != nil {
		fmt.Fprintf(tw, "Closes:\t%s\n", j.ClosingDate.Format(time.DateOnly))
	}
	fmt.Fprintf(tw, "Views:\t%d\n", j.Views)
	tw.Flush()
	if j.Description != "" {
		fmt.Fprintf(w, "\n%s\n", plainText(j.Description))
	}
}

// plainText renders an HTML fragment (job descriptions come from a rich
// text editor) as plain text with one line per block.
func plainText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find("p, li, div, h1, h2, h3, h4, h5, h6, tr").AppendHtml("\n")

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" && (len(lines) == 0 || lines[len(lines)-1] == "") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func printApplications(w io.Writer, apps []*domain.Application, received bool) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications found.")
		return
	}
	tw := newTable(w)
	who := "EMPLOYER"
	if received {
		who = "CANDIDATE"
	}
	fmt.Fprintf(tw, "ID\tJOB\t%s\tSTATUS\tAPPLIED\n", who)
	for _, a := range apps {
		title := a.Job.ID
		if a.Job.Value != nil {
			title = a.Job.Value.Title
		}
		person := userName(a.Employer)
		if received {
			person = userName(a.Seeker)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, title, person, a.Status, a.CreatedAt.Format(time.DateOnly))
	}
	tw.Flush()
}

func printConversation(w io.Writer, c *domain.Conversation) {
	if c == nil || len(c.Messages) == 0 {
		fmt.Fprintln(w, "No messages yet.")
		return
	}
	for _, m := range c.Messages {
		fmt.Fprintf(w, "[%s] %s:\n  %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), userName(m.Sender), m.Content)
	}
}

func printResumes(w io.Writer, resumes []*domain.Resume) {
	if len(resumes) == 0 {
		fmt.Fprintln(w, "No resumes uploaded.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tFILE\tDEFAULT\tVIEWS")
	for _, r := range resumes {
		def := ""
		if r.IsDefault {
			def = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", r.ID, r.Title, r.FileName, def, r.Views)
	}
	tw.Flush()
}

func printCompanies(w io.Writer, companies []*domain.Company) {
	if len(companies) == 0 {
		fmt.Fprintln(w, "No companies found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tINDUSTRY\tLOCATION\tRATING\tJOBS\tVERIFIED")
	for _, c := range companies {
		verified := ""
		if c.IsVerified {
			verified = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%d\t%s\n",
			c.ID, c.Name, c.Industry, c.Location, c.AverageRating, c.JobsPosted, verified)
	}
	tw.Flush()
}

func printCompany(w io.Writer, c *domain.Company, stats *domain.CompanyStats) {
	fmt.Fprintf(w, "%s\n%s\n\n", c.Name, strings.Repeat("=", len(c.Name)))
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", c.ID)
	fmt.Fprintf(tw, "Industry:\t%s\n", c.Industry)
	fmt.Fprintf(tw, "Location:\t%s\n", c.Location)
	if c.Website != "" {
		fmt.Fprintf(tw, "Website:\t%s\n", c.Website)
	}
	if c.CompanySize != "" {
		fmt.Fprintf(tw, "Size:\t%s\n", c.CompanySize)
	}
	fmt.Fprintf(tw, "Rating:\t%.1f\n", c.AverageRating)
	fmt.Fprintf(tw, "Verified:\t%t\n", c.IsVerified)
	if c.Owner.Value != nil {
		fmt.Fprintf(tw, "Owner:\t%s\n", c.Owner.Value.FullName)
	}
	tw.Flush()
	if c.Description != "" {
		fmt.Fprintf(w, "\n%s\n", plainText(c.Description))
	}
	if stats != nil {
		fmt.Fprintf(w, "\nJobs: %d (%d active)  Applications: %d  Reviews: %d\n",
			stats.TotalJobs, stats.ActiveJobs, stats.TotalApplications, stats.TotalReviews)
	}
}

func printJobStats(w io.Writer, s *domain.JobStats) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Jobs:\t%d\n", s.TotalJobs)
	fmt.Fprintf(tw, "  active\t%d\n", s.ActiveJobs)
	fmt.Fprintf(tw, "  draft\t%d\n", s.DraftJobs)
	fmt.Fprintf(tw, "  closed\t%d\n", s.ClosedJobs)
	fmt.Fprintf(tw, "Views:\t%d\n", s.TotalViews)
	fmt.Fprintf(tw, "Applications:\t%d\n", s.TotalApplications)
	tw.Flush()
}

func printStatusCounts(w io.Writer, total int, byStatus map[string]int) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Applications:\t%d\n", total)
	for _, s := range domain.ApplicationStatuses {
		fmt.Fprintf(tw, "  %s\t%d\n", strings.ToLower(s), byStatus[s])
	}
	tw.Flush()
}
