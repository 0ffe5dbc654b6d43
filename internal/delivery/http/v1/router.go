package v1

import (
	"go-careerbridge/internal/delivery/http/middleware"
	"go-careerbridge/internal/delivery/http/response"
	"go-careerbridge/internal/sandbox"
	"go-careerbridge/pkg/auth"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Backend        *sandbox.Backend
	Issuer         *auth.Issuer
	Validate       *validator.Validate
	AllowedOrigins []string
	// RateLimit turns on the request, login and upload limits. Off in tests.
	RateLimit bool
	// AccessLog writes gin's request log.
	AccessLog bool
}

// Limits are the extra middlewares put in front of sensitive routes.
type Limits struct {
	Login  []gin.HandlerFunc
	Upload []gin.HandlerFunc
}

func chain(mw []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	return append(slices.Clone(mw), h)
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	if deps.AccessLog {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	var limits Limits
	if deps.RateLimit {
		r.Use(middleware.RateLimit(middleware.APILimit()))
		limits.Login = []gin.HandlerFunc{middleware.RateLimit(middleware.LoginLimit())}
		limits.Upload = []gin.HandlerFunc{middleware.RateLimit(middleware.UploadLimit())}
	}

	api := r.Group("/api/v1")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Issuer, deps.Backend))
	{
		NewUserHandler(api, protected, deps.Backend, deps.Issuer, deps.Validate, limits)
		NewJobHandler(api, protected, deps.Backend, deps.Validate)
		NewCompanyHandler(api, protected, deps.Backend, deps.Validate, limits)
		NewApplicationHandler(protected, deps.Backend, deps.Validate)
	}

	return r
}
