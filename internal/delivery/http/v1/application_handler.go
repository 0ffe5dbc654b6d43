package v1

import (
	"go-careerbridge/internal/delivery/http/response"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/sandbox"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ApplicationHandler struct {
	backend  *sandbox.Backend
	validate *validator.Validate
}

// NewApplicationHandler registers the application routes. All of them
// require authentication.
func NewApplicationHandler(protected *gin.RouterGroup, backend *sandbox.Backend, validate *validator.Validate) {
	handler := &ApplicationHandler{backend: backend, validate: validate}

	apps := protected.Group("/application")
	{
		apps.POST("", handler.Apply)
		apps.GET("", handler.ListAll)
		apps.GET("/seeker/my-applications", handler.ListMine)
		apps.GET("/employer/received", handler.ListReceived)
		apps.GET("/employer/stats", handler.Stats)
		apps.PUT("/bulk/update", handler.BulkUpdate)
		apps.GET("/:id", handler.GetDetails)
		apps.PUT("/:id/status", handler.UpdateStatus)
		apps.DELETE("/:id", handler.Withdraw)
		apps.POST("/:id/message", handler.SendMessage)
		apps.GET("/:id/conversation", handler.Conversation)
		apps.POST("/:id/rate", handler.Rate)
	}
}

func applicationFilter(c *gin.Context) domain.ApplicationFilter {
	return domain.ApplicationFilter{
		ListParams: listParams(c),
		Status:     c.Query("status"),
		JobID:      c.Query("jobId"),
	}
}

// Apply godoc
// @Summary      Apply for a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      domain.ApplyInput  true  "Application form"
// @Success      201          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Failure      403          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Failure      422          {object}  response.Response
// @Router       /application [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req domain.ApplyInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	app, err := h.backend.Apply(caller(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// ListMine godoc
// @Summary      List own applications
// @Tags         applications
// @Produce      json
// @Param        status  query     string  false  "Application status"
// @Param        jobId   query     string  false  "Job ID"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /application/seeker/my-applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	page := h.backend.MyApplications(caller(c), applicationFilter(c))
	response.Page(c, "Applications fetched", page.Items, page.Pagination)
}

// ListReceived godoc
// @Summary      List received applications
// @Tags         employers
// @Produce      json
// @Param        status  query     string  false  "Application status"
// @Param        jobId   query     string  false  "Job ID"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /application/employer/received [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListReceived(c *gin.Context) {
	page, err := h.backend.ReceivedApplications(caller(c), applicationFilter(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Page(c, "Applications fetched", page.Items, page.Pagination)
}

// ListAll godoc
// @Summary      List all applications
// @Description  Admin only
// @Tags         admin
// @Produce      json
// @Param        status  query     string  false  "Application status"
// @Param        jobId   query     string  false  "Job ID"
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /application [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListAll(c *gin.Context) {
	page, err := h.backend.AllApplications(caller(c), applicationFilter(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Page(c, "Applications fetched", page.Items, page.Pagination)
}

// GetDetails godoc
// @Summary      Get application details
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /application/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	app, err := h.backend.Application(caller(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application fetched", app)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Application ID"
// @Param        status  body      domain.StatusUpdate  true  "New status"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      422     {object}  response.Response
// @Router       /application/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req domain.StatusUpdate
	if !bindJSON(c, h.validate, &req) {
		return
	}
	app, err := h.backend.UpdateApplicationStatus(caller(c), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /application/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	if err := h.backend.Withdraw(caller(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn successfully", nil)
}

// SendMessage answers with {"message": {...}}, the shape the web client reads.
// @Summary      Send a message
// @Description  Post a message on the application thread; data.message echoes it
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Application ID"
// @Param        message  body      domain.MessageInput  true  "Message"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /application/{id}/message [post]
// @Security     BearerAuth
func (h *ApplicationHandler) SendMessage(c *gin.Context) {
	var req domain.MessageInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	msg, err := h.backend.SendMessage(caller(c), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Message sent successfully", gin.H{"message": msg})
}

// Conversation godoc
// @Summary      Get the conversation
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /application/{id}/conversation [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Conversation(c *gin.Context) {
	conv, err := h.backend.Conversation(caller(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Conversation fetched", conv)
}

// Rate godoc
// @Summary      Rate an application
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        id      path      string              true  "Application ID"
// @Param        rating  body      domain.RatingInput  true  "Rating 1-5"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      422     {object}  response.Response
// @Router       /application/{id}/rate [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Rate(c *gin.Context) {
	var req domain.RatingInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	if err := h.backend.RateApplication(caller(c), c.Param("id"), &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rating submitted successfully", nil)
}

// Stats godoc
// @Summary      Application statistics
// @Tags         employers
// @Produce      json
// @Param        jobId  query     string  false  "Restrict to one job"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /application/employer/stats [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.backend.ApplicationStats(caller(c), c.Query("jobId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application statistics fetched", stats)
}

// BulkUpdate godoc
// @Summary      Bulk status update
// @Tags         employers
// @Accept       json
// @Produce      json
// @Param        update  body      domain.BulkStatusUpdate  true  "Application IDs and status"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      422     {object}  response.Response
// @Router       /application/bulk/update [put]
// @Security     BearerAuth
func (h *ApplicationHandler) BulkUpdate(c *gin.Context) {
	var req domain.BulkStatusUpdate
	if !bindJSON(c, h.validate, &req) {
		return
	}
	res, err := h.backend.BulkUpdate(caller(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications updated", res)
}
