package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	v1 "go-careerbridge/internal/delivery/http/v1"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/sandbox"
	"go-careerbridge/pkg/auth"
	"go-careerbridge/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func newCLI(t *testing.T) func(args ...string) result {
	cli, _ := newCLIWithSession(t)
	return cli
}

// newCLIWithSession also returns the session file the file store writes.
func newCLIWithSession(t *testing.T) (func(args ...string) result, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := sandbox.New(sandbox.WithHashCost(bcrypt.MinCost))
	require.NoError(t, backend.Seed())
	srv := httptest.NewServer(v1.NewRouter(v1.RouterDeps{
		Backend:  backend,
		Issuer:   auth.NewIssuer("cli-secret", time.Hour),
		Validate: validation.New(),
	}))
	t.Cleanup(srv.Close)

	session := filepath.Join(t.TempDir(), "session.json")
	return func(args ...string) result {
		var out, errOut bytes.Buffer
		global := []string{"-api", srv.URL + "/api/v1", "-token-store", "file", "-token-file", session}
		code := run(context.Background(), append(global, args...), &out, &errOut)
		return result{code: code, stdout: out.String(), stderr: errOut.String()}
	}, session
}

func TestUsageErrors(t *testing.T) {
	cli := newCLI(t)

	assert.Equal(t, exitUsage, cli().code)

	res := cli("frobnicate")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, `unknown command "frobnicate"`)

	res = cli("publish")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "usage: cbctl publish JOB_ID")

	res = cli("jobs", "-bogus")
	assert.Equal(t, exitUsage, res.code)
}

func TestSeekerSession(t *testing.T) {
	cli := newCLI(t)

	res := cli("whoami")
	assert.Equal(t, exitRejected, res.code)
	assert.Contains(t, res.stderr, "not logged in")

	res = cli("login", "-email", sandbox.SeedSeekerEmail, "-password", "nope")
	assert.Equal(t, exitRejected, res.code)
	assert.Contains(t, res.stderr, "Invalid email or password")

	res = cli("login", "-email", sandbox.SeedSeekerEmail, "-password", sandbox.SeedPassword)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Login successful!")
	assert.Contains(t, res.stdout, "Sam Seeker")

	res = cli("whoami")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, sandbox.SeedSeekerEmail)

	res = cli("jobs")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Backend Engineer (Go)")
	assert.Contains(t, res.stdout, "Northwind Labs")
	assert.Contains(t, res.stdout, "Page 1 of 1 (2 jobs)")

	res = cli("-json", "search", "react")
	require.Equal(t, exitOK, res.code, res.stderr)
	var found []domain.Job
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &found))
	require.Len(t, found, 1)
	jobID := found[0].ID

	res = cli("job", jobID)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Frontend Developer")
	assert.Contains(t, res.stdout, "React, TypeScript")

	res = cli("apply", "-job", jobID, "-phone", "+1 512 555 0100")
	assert.Equal(t, exitRejected, res.code)
	assert.Contains(t, res.stderr, "You must agree to the terms and conditions")

	res = cli("apply", "-job", jobID, "-phone", "+1 512 555 0100", "-agree")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Application submitted successfully")

	res = cli("applications", "-q", "frontend")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Frontend Developer")
	assert.NotContains(t, res.stdout, "Backend Engineer")

	res = cli("stats")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Regexp(t, `Applications:\s+2\n`, res.stdout)

	res = cli("publish", jobID)
	assert.Equal(t, exitRejected, res.code)

	res = cli("logout")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Logged out successfully!")
	assert.Equal(t, exitRejected, cli("whoami").code)
}

func TestEmployerSession(t *testing.T) {
	cli := newCLI(t)

	res := cli("login", "-email", sandbox.SeedEmployerEmail, "-password", sandbox.SeedPassword)
	require.Equal(t, exitOK, res.code, res.stderr)

	res = cli("received", "-status", domain.AppStatusApplied)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Sam Seeker")

	res = cli("-json", "my-jobs")
	require.Equal(t, exitOK, res.code, res.stderr)
	var jobs []domain.Job
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &jobs))
	require.Len(t, jobs, 3)

	var draft string
	for _, j := range jobs {
		if j.Status == domain.JobStatusDraft {
			draft = j.ID
		}
	}
	require.NotEmpty(t, draft)

	res = cli("publish", draft)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Job published successfully")

	res = cli("publish", draft)
	assert.Equal(t, exitRejected, res.code)
	assert.Contains(t, res.stderr, "Job is already published")

	res = cli("stats")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Regexp(t, `active\s+3\n`, res.stdout)
}

func TestLoginWithToken(t *testing.T) {
	cli, session := newCLIWithSession(t)
	imported := filepath.Join(t.TempDir(), "imported.json")
	other := func(args ...string) result {
		return cli(append([]string{"-token-file", imported}, args...)...)
	}

	res := other("login", "-token", "not-a-jwt")
	assert.Equal(t, exitRejected, res.code)
	assert.Contains(t, res.stderr, "Not authorized")

	res = other("whoami")
	assert.Equal(t, exitRejected, res.code)
	assert.Contains(t, res.stderr, "not logged in", "a rejected token is dropped")

	res = cli("login", "-email", sandbox.SeedSeekerEmail, "-password", sandbox.SeedPassword)
	require.Equal(t, exitOK, res.code, res.stderr)
	raw, err := os.ReadFile(session)
	require.NoError(t, err)
	var stored struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.NotEmpty(t, stored.Token)

	res = other("login", "-token", stored.Token)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Token accepted")
	assert.Contains(t, res.stdout, "Sam Seeker")

	res = other("resumes")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Sam Seeker - Backend")

	res = cli("logout")
	require.Equal(t, exitOK, res.code, res.stderr)

	res = other("logout")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "local session cleared")
	assert.Contains(t, other("whoami").stderr, "not logged in")
}
