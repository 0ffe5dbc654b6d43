package v1

import (
	"go-careerbridge/internal/delivery/http/response"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/sandbox"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type JobHandler struct {
	backend  *sandbox.Backend
	validate *validator.Validate
}

func NewJobHandler(public, protected *gin.RouterGroup, backend *sandbox.Backend, validate *validator.Validate) {
	handler := &JobHandler{backend: backend, validate: validate}

	// PUBLIC routes - browsing needs no account
	publicJobs := public.Group("/job")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/search", handler.Search)
		publicJobs.GET("/similar", handler.Similar)
		publicJobs.GET("/:id", handler.GetDetails)
		publicJobs.POST("/:id/view", handler.TrackView)
	}

	jobs := protected.Group("/job")
	{
		jobs.POST("", handler.Create)
		jobs.GET("/employer/my-jobs", handler.ListMine)
		jobs.GET("/employer/stats", handler.Stats)
		jobs.GET("/seeker/saved", handler.ListSaved)
		jobs.PUT("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
		jobs.PUT("/:id/publish", handler.Publish)
		jobs.PUT("/:id/close", handler.Close)
		jobs.POST("/:id/save", handler.Save)
		jobs.DELETE("/:id/unsave", handler.Unsave)
	}
}

func jobSearch(c *gin.Context) domain.JobSearch {
	minSalary, _ := strconv.Atoi(c.Query("minSalary"))
	return domain.JobSearch{
		ListParams:      listParams(c),
		Keyword:         c.Query("keyword"),
		Location:        c.Query("location"),
		JobType:         c.Query("jobType"),
		ExperienceLevel: c.Query("experienceLevel"),
		MinSalary:       minSalary,
		Status:          c.Query("status"),
	}
}

// Create godoc
// @Summary      Create a job
// @Description  Create a DRAFT job posting (employer only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobInput  true  "Job posting"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /job [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.JobInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	job, err := h.backend.CreateJob(caller(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// List godoc
// @Summary      List active jobs
// @Tags         jobs
// @Produce      json
// @Param        keyword          query     string  false  "Keyword in title, description or skills"
// @Param        location         query     string  false  "City, state or country"
// @Param        jobType          query     string  false  "FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP or REMOTE"
// @Param        experienceLevel  query     string  false  "ENTRY, MID, SENIOR, LEAD or EXECUTIVE"
// @Param        minSalary        query     int     false  "Minimum salary"
// @Param        page             query     int     false  "Page number"
// @Param        limit            query     int     false  "Page size (max 100)"
// @Success      200              {object}  response.Response
// @Router       /job [get]
func (h *JobHandler) List(c *gin.Context) {
	page := h.backend.ListJobs(jobSearch(c))
	response.Page(c, "Jobs fetched", page.Items, page.Pagination)
}

// Search godoc
// @Summary      Search active jobs
// @Tags         jobs
// @Produce      json
// @Param        keyword          query     string  false  "Keyword in title, description or skills"
// @Param        location         query     string  false  "City, state or country"
// @Param        jobType          query     string  false  "FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP or REMOTE"
// @Param        experienceLevel  query     string  false  "ENTRY, MID, SENIOR, LEAD or EXECUTIVE"
// @Param        minSalary        query     int     false  "Minimum salary"
// @Param        page             query     int     false  "Page number"
// @Param        limit            query     int     false  "Page size (max 100)"
// @Success      200              {object}  response.Response
// @Router       /job/search [get]
func (h *JobHandler) Search(c *gin.Context) {
	page := h.backend.ListJobs(jobSearch(c))
	response.Page(c, "Search results", page.Items, page.Pagination)
}

// Similar godoc
// @Summary      List similar jobs
// @Description  Active jobs sharing skills or industry with the given job
// @Tags         jobs
// @Produce      json
// @Param        jobId  query     string  true   "Reference job ID"
// @Param        limit  query     int     false  "Maximum results"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /job/similar [get]
func (h *JobHandler) Similar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	jobs, err := h.backend.SimilarJobs(c.Query("jobId"), limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Similar jobs fetched", jobs)
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.backend.Job(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job fetched", job)
}

// TrackView godoc
// @Summary      Record a job view
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/{id}/view [post]
func (h *JobHandler) TrackView(c *gin.Context) {
	if err := h.backend.TrackView(c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "View recorded", nil)
}

// ListMine godoc
// @Summary      List own jobs
// @Description  Every job of the calling employer, drafts included
// @Tags         employers
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /job/employer/my-jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	page := h.backend.MyJobs(caller(c), listParams(c))
	response.Page(c, "Jobs fetched", page.Items, page.Pagination)
}

// Stats godoc
// @Summary      Job statistics
// @Description  Counts per status for the calling employer
// @Tags         employers
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /job/employer/stats [get]
// @Security     BearerAuth
func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.backend.JobStats(caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job statistics fetched", stats)
}

// ListSaved godoc
// @Summary      List saved jobs
// @Tags         jobs
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /job/seeker/saved [get]
// @Security     BearerAuth
func (h *JobHandler) ListSaved(c *gin.Context) {
	page := h.backend.SavedJobs(caller(c), listParams(c))
	response.Page(c, "Saved jobs fetched", page.Items, page.Pagination)
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string           true  "Job ID"
// @Param        job  body      domain.JobInput  true  "Job posting"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /job/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req domain.JobInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	job, err := h.backend.UpdateJob(caller(c), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// Delete godoc
// @Summary      Delete a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.backend.DeleteJob(caller(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

// Publish godoc
// @Summary      Publish a draft job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/{id}/publish [put]
// @Security     BearerAuth
func (h *JobHandler) Publish(c *gin.Context) {
	job, err := h.backend.PublishJob(caller(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job published successfully", job)
}

// Close godoc
// @Summary      Close an active job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/{id}/close [put]
// @Security     BearerAuth
func (h *JobHandler) Close(c *gin.Context) {
	job, err := h.backend.CloseJob(caller(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job closed successfully", job)
}

// Save godoc
// @Summary      Save a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /job/{id}/save [post]
// @Security     BearerAuth
func (h *JobHandler) Save(c *gin.Context) {
	if err := h.backend.SaveJob(caller(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job saved successfully", nil)
}

// Unsave godoc
// @Summary      Remove a saved job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job/{id}/unsave [delete]
// @Security     BearerAuth
func (h *JobHandler) Unsave(c *gin.Context) {
	if err := h.backend.UnsaveJob(caller(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job removed from saved jobs", nil)
}
