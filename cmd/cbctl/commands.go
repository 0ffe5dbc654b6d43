package main

import (
	"context"
	"flag"
	"fmt"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/store"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/logger"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type command struct {
	usage   string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

// commandOrder is the order commands are listed in the help text.
var commandOrder = []string{
	"register", "login", "logout", "whoami",
	"jobs", "job", "search", "create-job", "publish", "close", "my-jobs", "save", "unsave", "saved",
	"apply", "withdraw", "applications", "received", "status", "conversation", "send",
	"resumes", "upload-resume", "default-resume",
	"companies", "company", "upload-logo", "verify-company",
	"stats",
}

var commands = map[string]command{
	"register":       {"-name NAME -email EMAIL -password PASS [-role JOB_SEEKER|EMPLOYER] [-company NAME] -agree", "create an account and start a session", cmdRegister},
	"login":          {"-email EMAIL -password PASS [-remember] | -token TOKEN", "start a session", cmdLogin},
	"logout":         {"", "end the session", cmdLogout},
	"whoami":         {"", "show the signed-in user", cmdWhoami},
	"jobs":           {"[-keyword K] [-location L] [-type T] [-level L] [-min-salary N] [-page N] [-limit N]", "list open jobs", cmdJobs},
	"job":            {"[-similar] JOB_ID", "show one job", cmdJob},
	"search":         {"[-location L] [-type T] [-level L] KEYWORD...", "search jobs", cmdSearch},
	"create-job":     {"-title T -description D -company ID -level L [-type T] [-skills a,b] [-salary-min N -salary-max N] [-closing YYYY-MM-DD]", "post a draft job", cmdCreateJob},
	"publish":        {"JOB_ID", "publish a draft job", cmdPublish},
	"close":          {"JOB_ID", "close an active job", cmdClose},
	"my-jobs":        {"[-page N] [-limit N]", "list jobs you posted", cmdMyJobs},
	"save":           {"JOB_ID", "bookmark a job", cmdSave},
	"unsave":         {"JOB_ID", "remove a bookmark", cmdUnsave},
	"saved":          {"[-page N] [-limit N]", "list bookmarked jobs", cmdSaved},
	"apply":          {"-job JOB_ID -phone PHONE [-resume ID] [-cover TEXT] [-portfolio URL] [-available YYYY-MM-DD] -agree", "apply for a job", cmdApply},
	"withdraw":       {"APPLICATION_ID", "withdraw an application", cmdWithdraw},
	"applications":   {"[-status S] [-q TEXT] [-sort recent|oldest|salary-high] [-page N] [-limit N]", "list your applications", cmdApplications},
	"received":       {"[-status S] [-job JOB_ID] [-page N] [-limit N]", "list applications to your jobs", cmdReceived},
	"status":         {"[-note TEXT] APPLICATION_ID STATUS", "move an application through the pipeline", cmdStatus},
	"conversation":   {"APPLICATION_ID", "show the message thread of an application", cmdConversation},
	"send":           {"APPLICATION_ID MESSAGE...", "post a message on an application", cmdSend},
	"resumes":        {"[-page N] [-limit N]", "list your resumes", cmdResumes},
	"upload-resume":  {"[-title T] FILE", "upload a PDF, DOC or DOCX resume", cmdUploadResume},
	"default-resume": {"RESUME_ID", "make a resume the default", cmdDefaultResume},
	"companies":      {"[-keyword K] [-industry I] [-location L] [-top N] [-page N] [-limit N]", "list companies", cmdCompanies},
	"company":        {"[-stats] COMPANY_ID", "show one company", cmdCompany},
	"upload-logo":    {"COMPANY_ID FILE", "upload a company logo", cmdUploadLogo},
	"verify-company": {"COMPANY_ID", "mark a company verified (admin)", cmdVerifyCompany},
	"stats":          {"", "summary for the signed-in role", cmdStats},
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: cbctl [flags] <command> [args]")
	fmt.Fprintln(w, "\ncommands:")
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-16s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w, "\nflags:")
	fs.PrintDefaults()
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string, positional int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, usagef("%v", err)
	}
	if fs.NArg() < positional {
		return nil, usagef("expected %d argument(s), got %d", positional, fs.NArg())
	}
	return fs.Args(), nil
}

func pageFlags(fs *flag.FlagSet) *domain.ListParams {
	p := &domain.ListParams{}
	fs.IntVar(&p.Page, "page", 1, "page number")
	fs.IntVar(&p.Limit, "limit", domain.DefaultPageSize, "page size")
	return p
}

// oneID parses a command whose only argument is a record id.
func oneID(name string, args []string) (string, error) {
	rest, err := parse(newFlags(name), args, 1)
	if err != nil {
		return "", err
	}
	return rest[0], nil
}

func requireFlag(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return usagef("-%s is required", name)
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, usagef("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func cmdRegister(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register")
	in := domain.RegisterInput{}
	fs.StringVar(&in.FullName, "name", "", "full name")
	fs.StringVar(&in.Email, "email", "", "email")
	fs.StringVar(&in.Password, "password", "", "password")
	fs.StringVar(&in.Phone, "phone", "", "phone")
	fs.StringVar(&in.Role, "role", domain.RoleJobSeeker, "JOB_SEEKER or EMPLOYER")
	fs.StringVar(&in.CompanyName, "company", "", "company name (employers)")
	fs.BoolVar(&in.AgreeToTerms, "agree", false, "agree to the terms")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	in.ConfirmPassword = in.Password
	in.Role = strings.ToUpper(in.Role)

	user, err := a.auth.Register(ctx, &in)
	if err != nil {
		return err
	}
	return a.emit(user, func(w io.Writer) {
		fmt.Fprintln(w, a.store.State().User.Success)
		printUser(w, user)
	})
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	in := domain.LoginInput{}
	fs.StringVar(&in.Email, "email", "", "email (defaults to the remembered one)")
	fs.StringVar(&in.Password, "password", "", "password")
	fs.BoolVar(&in.RememberMe, "remember", false, "remember the email for next time")
	token := fs.String("token", "", "adopt an existing bearer token instead of a password")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if *token != "" {
		return a.adoptToken(ctx, *token)
	}
	if in.Email == "" {
		remembered, err := a.tokens.RememberedEmail(ctx)
		if err != nil {
			logger.Log.Warn("failed to read remembered email", "error", err)
		}
		in.Email = remembered
		in.RememberMe = in.RememberMe || remembered != ""
	}

	user, err := a.auth.Login(ctx, &in)
	if err != nil {
		return err
	}
	return a.emit(user, func(w io.Writer) {
		fmt.Fprintln(w, a.store.State().User.Success)
		printUser(w, user)
	})
}

func cmdLogout(ctx context.Context, a *app, args []string) error {
	if _, err := parse(newFlags("logout"), args, 0); err != nil {
		return err
	}
	if !a.store.State().User.IsAuthenticated {
		return fmt.Errorf("not logged in")
	}
	if err := a.auth.Logout(ctx); err != nil {
		if apperror.StatusCode(err) != http.StatusUnauthorized {
			return err
		}
		a.dropSession(ctx)
		fmt.Fprintln(a.out, "Session had already expired; local session cleared")
		return nil
	}
	fmt.Fprintln(a.out, a.store.State().User.Success)
	return nil
}

func cmdWhoami(ctx context.Context, a *app, args []string) error {
	if _, err := parse(newFlags("whoami"), args, 0); err != nil {
		return err
	}
	if _, err := a.profile(ctx); err != nil {
		return err
	}
	view := a.authView.Select(a.store.State())
	return a.emit(view.User, func(w io.Writer) { printUser(w, view.User) })
}

// profile fetches the signed-in user, failing early without a session. A
// token the backend rejects is dropped.
func (a *app) profile(ctx context.Context) (*domain.User, error) {
	if !a.authView.Select(a.store.State()).IsAuthenticated {
		return nil, fmt.Errorf("not logged in; run cbctl login")
	}
	user, err := a.auth.GetProfile(ctx)
	if apperror.StatusCode(err) == http.StatusUnauthorized {
		a.dropSession(ctx)
	}
	return user, err
}

// adoptToken stores a bearer token obtained elsewhere and checks it
// against the profile endpoint.
func (a *app) adoptToken(ctx context.Context, token string) error {
	if err := a.tokens.SetToken(ctx, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	a.store.Dispatch(store.SetToken{Token: token})
	user, err := a.profile(ctx)
	if err != nil {
		return err
	}
	return a.emit(user, func(w io.Writer) {
		fmt.Fprintln(w, "Token accepted")
		printUser(w, user)
	})
}

func jobSearchFlags(fs *flag.FlagSet) *domain.JobSearch {
	q := &domain.JobSearch{}
	fs.StringVar(&q.Location, "location", "", "location")
	fs.StringVar(&q.JobType, "type", "", "FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP or REMOTE")
	fs.StringVar(&q.ExperienceLevel, "level", "", "ENTRY, MID, SENIOR, LEAD or EXECUTIVE")
	fs.IntVar(&q.MinSalary, "min-salary", 0, "minimum salary")
	fs.IntVar(&q.Page, "page", 1, "page number")
	fs.IntVar(&q.Limit, "limit", domain.DefaultPageSize, "page size")
	return q
}

func cmdJobs(ctx context.Context, a *app, args []string) error {
	fs := newFlags("jobs")
	q := jobSearchFlags(fs)
	fs.StringVar(&q.Keyword, "keyword", "", "keyword")
	fs.StringVar(&q.Status, "status", "", "status filter")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if _, err := a.jobs.GetAllJobs(ctx, *q); err != nil {
		return err
	}
	js := a.store.State().Job
	return a.emit(js.Jobs, func(w io.Writer) {
		printJobs(w, js.Jobs)
		printPagination(w, js.Pagination, "jobs")
	})
}

func cmdSearch(ctx context.Context, a *app, args []string) error {
	fs := newFlags("search")
	q := jobSearchFlags(fs)
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	q.Keyword = strings.Join(rest, " ")
	if _, err := a.jobs.SearchJobs(ctx, *q); err != nil {
		return err
	}
	js := a.store.State().Job
	return a.emit(js.SearchResults, func(w io.Writer) {
		printJobs(w, js.SearchResults)
		printPagination(w, js.SearchPagination, "jobs")
	})
}

func cmdJob(ctx context.Context, a *app, args []string) error {
	fs := newFlags("job")
	similar := fs.Bool("similar", false, "also list similar jobs")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	id := rest[0]

	job, err := a.jobs.GetJobByID(ctx, id)
	if err != nil {
		return err
	}
	if err := a.jobs.TrackJobView(ctx, id); err != nil {
		logger.Log.Debug("view not tracked", "job", id, "error", err)
	}
	if *similar {
		if _, err := a.jobs.GetSimilarJobs(ctx, domain.SimilarParams{JobID: id}); err != nil {
			return err
		}
	}
	js := a.store.State().Job
	if a.asJSON {
		return a.emit(map[string]any{"job": job, "similar": js.SimilarJobs}, nil)
	}
	printJob(a.out, job)
	if *similar {
		fmt.Fprintln(a.out, "\nSimilar jobs:")
		printJobs(a.out, js.SimilarJobs)
	}
	return nil
}

func cmdCreateJob(ctx context.Context, a *app, args []string) error {
	fs := newFlags("create-job")
	var (
		in                   domain.JobInput
		skills, closing      string
		salaryMin, salaryMax float64
		city                 string
		remote               bool
	)
	fs.StringVar(&in.Title, "title", "", "title")
	fs.StringVar(&in.Description, "description", "", "description (HTML allowed)")
	fs.StringVar(&in.CompanyID, "company", "", "company id")
	fs.StringVar(&in.ExperienceLevel, "level", "", "ENTRY, MID, SENIOR, LEAD or EXECUTIVE")
	fs.StringVar(&in.JobType, "type", "", "job type")
	fs.StringVar(&skills, "skills", "", "comma separated skills")
	fs.Float64Var(&salaryMin, "salary-min", 0, "minimum salary")
	fs.Float64Var(&salaryMax, "salary-max", 0, "maximum salary")
	fs.StringVar(&city, "city", "", "city")
	fs.BoolVar(&remote, "remote", false, "remote position")
	fs.StringVar(&closing, "closing", "", "closing date, default 30 days from now")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	in.ClosingDate = time.Now().Add(30 * 24 * time.Hour)
	if closing != "" {
		t, err := parseDate(closing)
		if err != nil {
			return err
		}
		in.ClosingDate = t
	}
	in.SkillsRequired = splitList(skills)
	if salaryMin > 0 || salaryMax > 0 {
		in.Salary = &domain.Salary{Min: salaryMin, Max: salaryMax}
	}
	if city != "" || remote {
		in.Locations = &domain.Location{City: city, Remote: remote}
	}

	job, err := a.jobs.CreateJob(ctx, &in)
	if err != nil {
		return err
	}
	return a.emit(job, func(w io.Writer) {
		fmt.Fprintln(w, a.store.State().Job.Success)
		fmt.Fprintf(w, "ID: %s\n", job.ID)
	})
}

func jobTransition(name string, call func(domain.JobUsecase) func(context.Context, string) (*domain.Job, error)) func(context.Context, *app, []string) error {
	return func(ctx context.Context, a *app, args []string) error {
		id, err := oneID(name, args)
		if err != nil {
			return err
		}
		job, err := call(a.jobs)(ctx, id)
		if err != nil {
			return err
		}
		return a.emit(job, func(w io.Writer) {
			fmt.Fprintln(w, a.store.State().Job.Success)
			fmt.Fprintf(w, "%s: %s\n", job.ID, job.Status)
		})
	}
}

var (
	cmdPublish = jobTransition("publish", func(u domain.JobUsecase) func(context.Context, string) (*domain.Job, error) { return u.PublishJob })
	cmdClose   = jobTransition("close", func(u domain.JobUsecase) func(context.Context, string) (*domain.Job, error) { return u.CloseJob })
)

func cmdMyJobs(ctx context.Context, a *app, args []string) error {
	fs := newFlags("my-jobs")
	p := pageFlags(fs)
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if _, err := a.jobs.GetMyJobs(ctx, *p); err != nil {
		return err
	}
	js := a.store.State().Job
	return a.emit(js.Jobs, func(w io.Writer) {
		printJobs(w, js.Jobs)
		counts := store.JobCountsByStatus(js.Jobs)
		fmt.Fprintf(w, "\n%d active, %d draft, %d closed on this page\n",
			counts[domain.JobStatusActive], counts[domain.JobStatusDraft], counts[domain.JobStatusClosed])
		printPagination(w, js.Pagination, "jobs")
	})
}

func cmdSave(ctx context.Context, a *app, args []string) error {
	id, err := oneID("save", args)
	if err != nil {
		return err
	}
	if err := a.jobs.SaveJob(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.store.State().Job.Success)
	return nil
}

func cmdUnsave(ctx context.Context, a *app, args []string) error {
	id, err := oneID("unsave", args)
	if err != nil {
		return err
	}
	if err := a.jobs.UnsaveJob(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.store.State().Job.Success)
	return nil
}

func cmdSaved(ctx context.Context, a *app, args []string) error {
	fs := newFlags("saved")
	p := pageFlags(fs)
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if _, err := a.jobs.GetSavedJobs(ctx, *p); err != nil {
		return err
	}
	saved := a.store.State().Job.SavedJobs
	return a.emit(saved, func(w io.Writer) { printJobs(w, saved) })
}

func cmdApply(ctx context.Context, a *app, args []string) error {
	fs := newFlags("apply")
	var in domain.ApplyInput
	var available string
	fs.StringVar(&in.JobID, "job", "", "job id")
	fs.StringVar(&in.ResumeID, "resume", "", "resume id, default resume when omitted")
	fs.StringVar(&in.Phone, "phone", "", "contact phone")
	fs.StringVar(&in.CoverLetter, "cover", "", "cover letter")
	fs.StringVar(&in.Portfolio, "portfolio", "", "portfolio URL")
	fs.StringVar(&available, "available", "", "available from, default one week from now")
	fs.BoolVar(&in.AgreeToTerms, "agree", false, "agree to the terms")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if err := requireFlag(in.JobID, "job"); err != nil {
		return err
	}

	in.AvailableFrom = time.Now().Add(7 * 24 * time.Hour)
	if available != "" {
		t, err := parseDate(available)
		if err != nil {
			return err
		}
		in.AvailableFrom = t
	}
	if in.ResumeID == "" {
		if _, err := a.resumes.GetMyResumes(ctx, domain.ListParams{Limit: 100}); err != nil {
			return err
		}
		def := store.DefaultResume(a.store.State().User.Resumes)
		if def == nil {
			return usagef("no default resume; pass -resume or upload one first")
		}
		in.ResumeID = def.ID
	}

	applied, err := a.apps.ApplyForJob(ctx, &in)
	if err != nil {
		return err
	}
	return a.emit(applied, func(w io.Writer) {
		fmt.Fprintln(w, a.store.State().Application.Success)
		fmt.Fprintf(w, "ID: %s  Status: %s\n", applied.ID, applied.Status)
	})
}

func cmdWithdraw(ctx context.Context, a *app, args []string) error {
	id, err := oneID("withdraw", args)
	if err != nil {
		return err
	}
	if err := a.apps.WithdrawApplication(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.store.State().Application.Success)
	return nil
}

func cmdApplications(ctx context.Context, a *app, args []string) error {
	fs := newFlags("applications")
	p := pageFlags(fs)
	status := fs.String("status", "", "status filter, applied locally")
	query := fs.String("q", "", "match job title, city or employer")
	order := fs.String("sort", store.SortRecent, "recent, oldest or salary-high")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if _, err := a.apps.GetMyApplications(ctx, domain.ApplicationFilter{ListParams: *p}); err != nil {
		return err
	}
	as := a.store.State().Application
	shown := store.SortApplications(store.FilterApplications(as.MyApplications, *status, *query), *order)
	return a.emit(shown, func(w io.Writer) {
		printApplications(w, shown, false)
		printPagination(w, as.Pagination, "applications")
	})
}

func cmdReceived(ctx context.Context, a *app, args []string) error {
	fs := newFlags("received")
	q := domain.ApplicationFilter{}
	fs.IntVar(&q.Page, "page", 1, "page number")
	fs.IntVar(&q.Limit, "limit", domain.DefaultPageSize, "page size")
	fs.StringVar(&q.Status, "status", "", "status filter")
	fs.StringVar(&q.JobID, "job", "", "job id")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if _, err := a.apps.GetReceivedApplications(ctx, q); err != nil {
		return err
	}
	as := a.store.State().Application
	return a.emit(as.ReceivedApplications, func(w io.Writer) {
		printApplications(w, as.ReceivedApplications, true)
		printPagination(w, as.ReceivedPagination, "applications")
	})
}

func cmdStatus(ctx context.Context, a *app, args []string) error {
	fs := newFlags("status")
	note := fs.String("note", "", "note for the candidate")
	rest, err := parse(fs, args, 2)
	if err != nil {
		return err
	}
	updated, err := a.apps.UpdateApplicationStatus(ctx, rest[0], &domain.StatusUpdate{
		Status: strings.ToUpper(rest[1]),
		Note:   *note,
	})
	if err != nil {
		return err
	}
	return a.emit(updated, func(w io.Writer) {
		fmt.Fprintln(w, a.store.State().Application.Success)
		fmt.Fprintf(w, "%s: %s\n", updated.ID, updated.Status)
	})
}

func cmdConversation(ctx context.Context, a *app, args []string) error {
	id, err := oneID("conversation", args)
	if err != nil {
		return err
	}
	conv, err := a.apps.GetConversation(ctx, id)
	if err != nil {
		return err
	}
	return a.emit(conv, func(w io.Writer) { printConversation(w, conv) })
}

func cmdSend(ctx context.Context, a *app, args []string) error {
	rest, err := parse(newFlags("send"), args, 2)
	if err != nil {
		return err
	}
	msg, err := a.apps.SendMessage(ctx, rest[0], &domain.MessageInput{Message: strings.Join(rest[1:], " ")})
	if err != nil {
		return err
	}
	return a.emit(msg, func(w io.Writer) {
		fmt.Fprintln(w, a.store.State().Application.Success)
	})
}

func cmdResumes(ctx context.Context, a *app, args []string) error {
	fs := newFlags("resumes")
	p := pageFlags(fs)
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}
	if _, err := a.resumes.GetMyResumes(ctx, *p); err != nil {
		return err
	}
	view := a.resumesView.Select(a.store.State())
	return a.emit(view.Resumes, func(w io.Writer) {
		printResumes(w, view.Resumes)
		printPagination(w, view.Pagination, "resumes")
	})
}

func cmdUploadResume(ctx context.Context, a *app, args []string) error {
	fs := newFlags("upload-resume")
	title := fs.String("title", "", "title, defaults to the file name")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(rest[0])
	if err != nil {
		return err
	}
	name := filepath.Base(rest[0])
	if *title == "" {
		*title = strings.TrimSuffix(name, filepath.Ext(name))
	}

	resume, err := a.resumes.UploadResume(ctx, &domain.ResumeUpload{Title: *title, FileName: name, Content: content})
	if err != nil {
		return err
	}
	return a.emit(resume, func(w io.Writer) {
		fmt.Fprintln(w, a.store.State().User.Success)
		fmt.Fprintf(w, "ID: %s\n", resume.ID)
	})
}

func cmdDefaultResume(ctx context.Context, a *app, args []string) error {
	id, err := oneID("default-resume", args)
	if err != nil {
		return err
	}
	if _, err := a.resumes.SetDefaultResume(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.store.State().User.Success)
	return nil
}

func cmdCompanies(ctx context.Context, a *app, args []string) error {
	fs := newFlags("companies")
	q := domain.CompanySearch{}
	fs.StringVar(&q.Keyword, "keyword", "", "keyword")
	fs.StringVar(&q.Industry, "industry", "", "industry")
	fs.StringVar(&q.Location, "location", "", "location")
	fs.IntVar(&q.Page, "page", 1, "page number")
	fs.IntVar(&q.Limit, "limit", domain.DefaultPageSize, "page size")
	top := fs.Int("top", 0, "list the N best rated companies instead")
	if _, err := parse(fs, args, 0); err != nil {
		return err
	}

	switch {
	case *top > 0:
		if _, err := a.companies.GetTopCompanies(ctx, domain.TopParams{Limit: *top}); err != nil {
			return err
		}
		list := a.store.State().Company.TopCompanies
		return a.emit(list, func(w io.Writer) { printCompanies(w, list) })
	case q.Keyword != "" || q.Industry != "" || q.Location != "":
		if _, err := a.companies.SearchCompanies(ctx, q); err != nil {
			return err
		}
		cs := a.store.State().Company
		return a.emit(cs.SearchResults, func(w io.Writer) {
			printCompanies(w, cs.SearchResults)
			printPagination(w, cs.SearchPagination, "companies")
		})
	default:
		if _, err := a.companies.GetAllCompanies(ctx, q); err != nil {
			return err
		}
		cs := a.store.State().Company
		return a.emit(cs.Companies, func(w io.Writer) {
			printCompanies(w, cs.Companies)
			printPagination(w, cs.Pagination, "companies")
		})
	}
}

func cmdCompany(ctx context.Context, a *app, args []string) error {
	fs := newFlags("company")
	withStats := fs.Bool("stats", false, "include owner statistics")
	rest, err := parse(fs, args, 1)
	if err != nil {
		return err
	}
	company, err := a.companies.GetCompanyByID(ctx, rest[0])
	if err != nil {
		return err
	}
	var stats *domain.CompanyStats
	if *withStats {
		if stats, err = a.companies.GetCompanyStats(ctx, rest[0]); err != nil {
			return err
		}
	}
	if a.asJSON {
		return a.emit(map[string]any{"company": company, "stats": stats}, nil)
	}
	printCompany(a.out, company, stats)
	return nil
}

func cmdUploadLogo(ctx context.Context, a *app, args []string) error {
	rest, err := parse(newFlags("upload-logo"), args, 2)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(rest[1])
	if err != nil {
		return err
	}
	company, err := a.companies.UploadCompanyLogo(ctx, rest[0], &domain.LogoUpload{
		FileName: filepath.Base(rest[1]),
		Content:  content,
	})
	if err != nil {
		return err
	}
	return a.emit(company, func(w io.Writer) {
		fmt.Fprintln(w, a.store.State().Company.Success)
		fmt.Fprintf(w, "Logo: %s\n", company.LogoURL)
	})
}

func cmdVerifyCompany(ctx context.Context, a *app, args []string) error {
	id, err := oneID("verify-company", args)
	if err != nil {
		return err
	}
	company, err := a.companies.VerifyCompany(ctx, id)
	if err != nil {
		return err
	}
	return a.emit(company, func(w io.Writer) {
		fmt.Fprintln(w, a.store.State().Company.Success)
	})
}

// cmdStats prints the dashboard numbers of the signed-in role.
func cmdStats(ctx context.Context, a *app, args []string) error {
	if _, err := parse(newFlags("stats"), args, 0); err != nil {
		return err
	}
	user, err := a.profile(ctx)
	if err != nil {
		return err
	}

	switch user.Role {
	case domain.RoleEmployer:
		jobStats, err := a.jobs.GetJobStats(ctx)
		if err != nil {
			return err
		}
		appStats, err := a.apps.GetApplicationStats(ctx, domain.StatsParams{})
		if err != nil {
			return err
		}
		if a.asJSON {
			return a.emit(map[string]any{"jobs": jobStats, "applications": appStats}, nil)
		}
		printJobStats(a.out, jobStats)
		printStatusCounts(a.out, appStats.Total, appStats.ByStatus)
	case domain.RoleAdmin:
		if _, err := a.apps.GetAllApplications(ctx, domain.ApplicationFilter{ListParams: domain.ListParams{Limit: 100}}); err != nil {
			return err
		}
		counts := store.ApplicationCounts(a.store.State().Application.Applications)
		return a.emit(counts, func(w io.Writer) { printStatusCounts(w, counts.Total, counts.ByStatus) })
	default:
		if _, err := a.apps.GetMyApplications(ctx, domain.ApplicationFilter{ListParams: domain.ListParams{Limit: 100}}); err != nil {
			return err
		}
		counts := store.ApplicationCounts(a.store.State().Application.MyApplications)
		return a.emit(counts, func(w io.Writer) { printStatusCounts(w, counts.Total, counts.ByStatus) })
	}
	return nil
}
