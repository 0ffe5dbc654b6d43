package response

import (
	"go-careerbridge/internal/domain"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON envelope
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
	Token      string      `json:"token,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	return c.GetString(string(domain.KeyRequestID))
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Page sends one page of a list together with its pagination block
func Page(c *gin.Context, message string, data interface{}, pagination interface{}) {
	c.JSON(http.StatusOK, Response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
		RequestID:  requestID(c),
	})
}

// Auth sends the user document with a freshly issued bearer token
func Auth(c *gin.Context, code int, message string, user interface{}, token string) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      user,
		Token:     token,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		RequestID: requestID(c),
	})
}
