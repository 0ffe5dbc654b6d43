// Command cbctl drives the CareerBridge client state from the command line.
// Every command dispatches one or more store actions and prints the slice
// they settle into.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"go-careerbridge/config"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/repository/rest"
	"go-careerbridge/internal/store"
	"go-careerbridge/internal/usecase"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/httpclient"
	"go-careerbridge/pkg/logger"
	"go-careerbridge/pkg/tokenstore"
	"go-careerbridge/pkg/validation"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "cbctl: load config: %v\n", err)
		return exitUsage
	}

	fs := flag.NewFlagSet("cbctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.TokenStore, "token-store", cfg.TokenStore, "session store: file, redis or memory")
	fs.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "session file used by the file store")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "session profile name")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout (0 = none)")
	asJSON := fs.Bool("json", false, "print results as JSON")
	verbose := fs.Bool("v", false, "log requests and store actions to stderr")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "cbctl: unknown command %q\n\n", name)
		fs.Usage()
		return exitUsage
	}

	level := "error"
	if *verbose {
		level = "debug"
	}
	logger.Init(level)

	a, err := newApp(ctx, cfg, stdout, *asJSON)
	if err != nil {
		fmt.Fprintf(stderr, "cbctl: %v\n", err)
		return exitRejected
	}
	defer a.close()

	if err := cmd.run(ctx, a, fs.Args()[1:]); err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "cbctl %s: %s\nusage: cbctl %s %s\n", name, ue.msg, name, cmd.usage)
			return exitUsage
		}
		fmt.Fprintf(stderr, "cbctl %s: %s\n", name, a.failure(err))
		return exitRejected
	}
	return exitOK
}

// app is one wired client: session store, state container and the usecases
// that drive it.
type app struct {
	store     *store.Store
	tokens    tokenstore.Store
	auth      domain.AuthUsecase
	jobs      domain.JobUsecase
	companies domain.CompanyUsecase
	apps      domain.ApplicationUsecase
	resumes   domain.ResumeUsecase

	authView    store.AuthSelector
	resumesView store.ResumesSelector

	// lastError is the most recent slice Error a dispatch set.
	lastError   string
	unsubscribe func()

	out    io.Writer
	asJSON bool
}

func newApp(ctx context.Context, cfg *config.Config, out io.Writer, asJSON bool) (*app, error) {
	tokens, err := tokenstore.Open(ctx, tokenstore.Options{
		Backend:       cfg.TokenStore,
		FilePath:      cfg.TokenFile,
		Profile:       cfg.Profile,
		RedisURL:      cfg.RedisURL,
		RedisPassword: cfg.RedisPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	token, err := tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	client, err := httpclient.New(cfg.APIBaseURL, tokens, httpclient.Options{
		Timeout:   cfg.RequestTimeout,
		UserAgent: "cbctl",
	})
	if err != nil {
		return nil, err
	}

	st := store.New(store.InitialState(token, time.Now()))
	validate := validation.New()

	a := &app{
		store:     st,
		tokens:    tokens,
		auth:      usecase.NewAuthUsecase(rest.NewUserRepository(client), tokens, st, validate),
		jobs:      usecase.NewJobUsecase(rest.NewJobRepository(client), st, validate),
		companies: usecase.NewCompanyUsecase(rest.NewCompanyRepository(client), st, validate),
		apps:      usecase.NewApplicationUsecase(rest.NewApplicationRepository(client), st, validate),
		resumes:   usecase.NewResumeUsecase(rest.NewResumeRepository(client), st, validate),
		out:       out,
		asJSON:    asJSON,
	}
	prev := sliceErrors(st.State())
	a.unsubscribe = st.Subscribe(func(s store.State) {
		next := sliceErrors(s)
		for i, msg := range next {
			if msg != "" && msg != prev[i] {
				a.lastError = msg
			}
		}
		prev = next
	})
	return a, nil
}

func sliceErrors(s store.State) [4]string {
	return [4]string{s.User.Error, s.Job.Error, s.Company.Error, s.Application.Error}
}

func (a *app) close() {
	a.unsubscribe()
	if c, ok := a.tokens.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Log.Warn("failed to close session store", "error", err)
		}
	}
}

// failure is the message a rejected command reports: the last Error an
// action left in the store, else whatever err carries.
func (a *app) failure(err error) string {
	if a.lastError != "" {
		return a.lastError
	}
	return apperror.MessageOr(err, err.Error())
}

// dropSession forgets a token the backend no longer accepts.
func (a *app) dropSession(ctx context.Context) {
	if err := a.tokens.ClearToken(ctx); err != nil {
		logger.Log.Warn("failed to clear stored token", "error", err)
	}
	a.store.Dispatch(store.ClearUserData{})
}
