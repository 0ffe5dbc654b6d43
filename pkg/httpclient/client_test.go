package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go-careerbridge/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

type failingToken struct{}

func (failingToken) Token(context.Context) (string, error) { return "", fmt.Errorf("keychain locked") }

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api/v1/", tokens, opts)
	require.NoError(t, err)
	return c
}

func TestGetSendsHeadersAndDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/jobs", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "careerbridge-go", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"message":"ok","data":[{"_id":"J1"}],"pagination":{"currentPage":2}}`)
	}, staticToken("tok-123"), Options{})

	env, err := c.Get(context.Background(), "/jobs", url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"currentPage":2}`, string(env.Pagination))

	items, err := Decode[[]map[string]string](env)
	require.NoError(t, err)
	assert.Equal(t, "J1", items[0]["_id"])
}

func TestAnonymousRequestHasNoAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"success":true}`)
	}, staticToken(""), Options{})

	_, err := c.Get(context.Background(), "jobs", nil)
	require.NoError(t, err)
}

func TestErrorStatusCarriesBackendMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusNotFound, `{"success":false,"message":"Job not found"}`, "Job not found"},
		{"nested error", http.StatusBadRequest, `{"error":{"message":"bad input"}}`, "bad input"},
		{"error string", http.StatusConflict, `{"error":"duplicate"}`, "duplicate"},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
		{"empty body", http.StatusInternalServerError, ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}, nil, Options{})

			_, err := c.Get(context.Background(), "/jobs/x", nil)
			require.Error(t, err)
			assert.Equal(t, tt.status, apperror.StatusCode(err))
			assert.Equal(t, tt.message, apperror.MessageOr(err, ""))
		})
	}
}

func TestSuccessFalseOn200IsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":false,"message":"Nope"}`)
	}, nil, Options{})

	_, err := c.Post(context.Background(), "/user/login", map[string]string{"email": "a@b.c"})
	require.Error(t, err)
	assert.Equal(t, "Nope", apperror.MessageOr(err, ""))
}

func TestPostEncodesJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"ACCEPTED"}`, string(body))
		w.WriteHeader(http.StatusNoContent)
	}, nil, Options{})

	env, err := c.Put(context.Background(), "/applications/A1/status", map[string]string{"status": "ACCEPTED"})
	require.NoError(t, err)
	assert.True(t, env.Success)
}

func TestUploadSendsMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "My CV", r.FormValue("title"))
		f, hdr, err := r.FormFile("resume")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "cv.pdf", hdr.Filename)
		assert.Equal(t, "%PDF-1.4", string(data))
		fmt.Fprint(w, `{"success":true,"data":{"_id":"R1"}}`)
	}, nil, Options{})

	env, err := c.Upload(context.Background(), "/user/resume/upload",
		[]FilePart{{Field: "resume", FileName: "cv.pdf", Content: []byte("%PDF-1.4")}},
		map[string]string{"title": "My CV"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"R1"}`, string(env.Data))
}

func TestTransportFailuresHaveZeroStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base, nil, Options{})
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "/jobs", nil)
	require.Error(t, err)
	assert.Equal(t, 0, apperror.StatusCode(err))

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent without a token")
	}, failingToken{}, Options{})
	_, err = c.Get(context.Background(), "/user/profile", nil)
	require.Error(t, err)
	assert.Equal(t, 0, apperror.StatusCode(err))
}

func TestTimeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, nil, Options{Timeout: 50 * time.Millisecond})

	_, err := c.Get(context.Background(), "/slow", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New("ftp://example.com", nil, Options{})
	assert.Error(t, err)
	_, err = New("://", nil, Options{})
	assert.Error(t, err)
}

func TestDecodeMissingData(t *testing.T) {
	v, err := Decode[*struct{ ID string }](&Envelope{Data: []byte("null")})
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = Decode[int](&Envelope{Data: []byte(`"x"`)})
	assert.Error(t, err)
}
