package v1

import (
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/sandbox"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/validation"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const maxUploadBytes = 6 << 20

func caller(c *gin.Context) sandbox.Caller {
	return sandbox.Caller{
		ID:   c.GetString(string(domain.KeyUserID)),
		Role: c.GetString(string(domain.KeyUserRole)),
	}
}

func listParams(c *gin.Context) domain.ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(domain.DefaultPageSize)))
	if limit > 100 {
		limit = 100
	}
	return domain.ListParams{Page: page, Limit: limit}.OrDefault()
}

// bindJSON decodes the body into dst and runs the struct validators. On
// failure the error is pushed to the context and false is returned.
func bindJSON(c *gin.Context, v *validator.Validate, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return false
	}
	if err := validation.Struct(v, dst); err != nil {
		c.Error(err)
		return false
	}
	return true
}

// formFile reads one uploaded file from a multipart request.
func formFile(c *gin.Context, field string) (string, []byte, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		c.Error(apperror.BadRequest("Please upload a file in field '" + field + "'"))
		return "", nil, false
	}
	data, err := readPart(header)
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return "", nil, false
	}
	return header.Filename, data, true
}

func readPart(header *multipart.FileHeader) ([]byte, error) {
	if header.Size > maxUploadBytes {
		return nil, apperror.BadRequest("File is too large")
	}
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}
