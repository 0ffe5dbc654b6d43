package middleware

import (
	"encoding/json"
	"errors"
	"go-careerbridge/internal/domain"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/auth"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(string(domain.KeyRequestID))) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
	assert.Equal(t, w.Body.String(), w.Header().Get("X-Request-ID"))

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())

	req.Header.Set("X-Request-ID", "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Body.String())
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/missing", func(c *gin.Context) { c.Error(apperror.NotFound("Job not found")) })
	r.GET("/boom", func(c *gin.Context) { c.Error(errors.New("pq: connection refused")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Job not found", env.Message)
	assert.NotEmpty(t, env.RequestID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

type fakeUsers struct {
	users   map[string]*domain.User
	revoked map[string]bool
}

func (f fakeUsers) User(id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("User not found")
}

func (f fakeUsers) Revoked(token string) bool { return f.revoked[token] }

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	users := fakeUsers{
		users:   map[string]*domain.User{"u1": {ID: "u1", Email: "e@x.io", Role: domain.RoleEmployer}},
		revoked: map[string]bool{},
	}
	r := gin.New()
	r.Use(AuthMiddleware(issuer, users))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyUserRole)))
	})

	call := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusUnauthorized, call("not-a-jwt").Code)

	// role comes from the account even when the token says otherwise
	token, err := issuer.Issue("u1", "e@x.io", domain.RoleAdmin)
	require.NoError(t, err)
	w := call(token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.RoleEmployer, w.Body.String())

	users.revoked[token] = true
	assert.Equal(t, http.StatusUnauthorized, call(token).Code)

	ghost, err := issuer.Issue("u2", "g@x.io", domain.RoleJobSeeker)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, call(ghost).Code)
}

func noRedis() *goredis.Client { return nil }

func TestRateLimitInMemory(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	counter := newMemoryCounter(func() time.Time { return now })
	limit := Limit{Bucket: "test", Max: 2, Window: time.Minute, Key: ClientIP}

	r := gin.New()
	r.Use(rateLimit(limit, noRedis, counter))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w
	}

	assert.Equal(t, http.StatusNoContent, call().Code)
	w := call()
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = call()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "Too many requests. Please try again later.", decode(t, w).Message)

	t.Run("Should open a fresh window and sweep the old one", func(t *testing.T) {
		now = now.Add(time.Minute + time.Second)
		assert.Equal(t, http.StatusNoContent, call().Code)
		assert.Equal(t, 1, counter.size())
	})
}

func TestUploadLimitCountsPerCaller(t *testing.T) {
	limit := UploadLimit()
	limit.Max = 1

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set(string(domain.KeyUserID), id)
		}
	})
	r.Use(rateLimit(limit, noRedis, newMemoryCounter(time.Now)))
	r.POST("/upload", func(c *gin.Context) { c.Status(http.StatusCreated) })

	upload := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		req.Header.Set("X-Test-User", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, upload("u1"))
	assert.Equal(t, http.StatusTooManyRequests, upload("u1"))
	assert.Equal(t, http.StatusCreated, upload("u2"), "same IP, different account")

	anon := func() *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/upload", nil)
		return c
	}()
	assert.Equal(t, ClientIP(anon), CallerID(anon))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
