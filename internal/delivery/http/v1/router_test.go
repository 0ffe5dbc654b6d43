package v1

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	_ "go-careerbridge/docs"
	"go-careerbridge/internal/sandbox"
	"go-careerbridge/pkg/auth"
	"go-careerbridge/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var pathParam = regexp.MustCompile(`:(\w+)`)

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{
		Backend:  sandbox.New(),
		Issuer:   auth.NewIssuer("router-secret", time.Hour),
		Validate: validation.New(),
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/swagger/doc.json", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	doc := gjson.Parse(w.Body.String())
	assert.Equal(t, "/api/v1", doc.Get("basePath").String())
	assert.Equal(t, "CareerBridge Sandbox API", doc.Get("info.title").String())

	documented := map[string]bool{}
	doc.Get("paths").ForEach(func(path, ops gjson.Result) bool {
		ops.ForEach(func(method, _ gjson.Result) bool {
			documented[strings.ToUpper(method.String())+" "+path.String()] = true
			return true
		})
		return true
	})

	served := 0
	for _, rt := range r.Routes() {
		path := strings.TrimPrefix(rt.Path, "/api/v1")
		if path == "/health" || strings.HasPrefix(path, "/swagger/") {
			continue
		}
		served++
		key := rt.Method + " " + pathParam.ReplaceAllString(path, "{$1}")
		assert.True(t, documented[key], "undocumented route %s", key)
	}
	assert.Equal(t, served, len(documented))
}
