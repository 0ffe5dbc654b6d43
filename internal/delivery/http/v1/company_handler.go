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

type CompanyHandler struct {
	backend  *sandbox.Backend
	validate *validator.Validate
}

func NewCompanyHandler(public, protected *gin.RouterGroup, backend *sandbox.Backend, validate *validator.Validate, limits Limits) {
	handler := &CompanyHandler{backend: backend, validate: validate}

	publicCompanies := public.Group("/company")
	{
		publicCompanies.GET("", handler.List)
		publicCompanies.GET("/search", handler.Search)
		publicCompanies.GET("/top", handler.Top)
		publicCompanies.GET("/:id", handler.GetDetails)
	}

	companies := protected.Group("/company")
	{
		companies.POST("", handler.Create)
		companies.GET("/employer/my-companies", handler.ListMine)
		companies.PUT("/:id", handler.Update)
		companies.DELETE("/:id", handler.Delete)
		companies.POST("/:id/upload-logo", chain(limits.Upload, handler.UploadLogo)...)
		companies.GET("/:id/stats", handler.Stats)
		companies.POST("/:id/review", handler.AddReview)
		companies.PUT("/:id/verify", handler.Verify)
	}
}

func companySearch(c *gin.Context) domain.CompanySearch {
	return domain.CompanySearch{
		ListParams: listParams(c),
		Keyword:    c.Query("keyword"),
		Industry:   c.Query("industry"),
		Location:   c.Query("location"),
	}
}

// Create godoc
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        company  body      domain.CompanyInput  true  "Company"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /company [post]
// @Security     BearerAuth
func (h *CompanyHandler) Create(c *gin.Context) {
	var req domain.CompanyInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	company, err := h.backend.CreateCompany(caller(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Company created successfully", company)
}

// List godoc
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        keyword   query     string  false  "Name or description keyword"
// @Param        industry  query     string  false  "Industry"
// @Param        location  query     string  false  "Location"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  response.Response
// @Router       /company [get]
func (h *CompanyHandler) List(c *gin.Context) {
	page := h.backend.ListCompanies(companySearch(c))
	response.Page(c, "Companies fetched", page.Items, page.Pagination)
}

// Search godoc
// @Summary      Search companies
// @Tags         companies
// @Produce      json
// @Param        keyword   query     string  false  "Name or description keyword"
// @Param        industry  query     string  false  "Industry"
// @Param        location  query     string  false  "Location"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  response.Response
// @Router       /company/search [get]
func (h *CompanyHandler) Search(c *gin.Context) {
	page := h.backend.ListCompanies(companySearch(c))
	response.Page(c, "Search results", page.Items, page.Pagination)
}

// Top godoc
// @Summary      Top rated companies
// @Tags         companies
// @Produce      json
// @Param        limit  query     int  false  "Maximum results"
// @Success      200    {object}  response.Response
// @Router       /company/top [get]
func (h *CompanyHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	response.Success(c, http.StatusOK, "Top companies fetched", h.backend.TopCompanies(limit))
}

// GetDetails godoc
// @Summary      Get company details
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /company/{id} [get]
func (h *CompanyHandler) GetDetails(c *gin.Context) {
	company, err := h.backend.Company(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company fetched", company)
}

// ListMine godoc
// @Summary      List own companies
// @Tags         employers
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /company/employer/my-companies [get]
// @Security     BearerAuth
func (h *CompanyHandler) ListMine(c *gin.Context) {
	page := h.backend.MyCompanies(caller(c), listParams(c))
	response.Page(c, "Companies fetched", page.Items, page.Pagination)
}

// Update godoc
// @Summary      Update a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Company ID"
// @Param        company  body      domain.CompanyInput  true  "Company"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /company/{id} [put]
// @Security     BearerAuth
func (h *CompanyHandler) Update(c *gin.Context) {
	var req domain.CompanyInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	company, err := h.backend.UpdateCompany(caller(c), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company updated successfully", company)
}

// Delete godoc
// @Summary      Delete a company
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /company/{id} [delete]
// @Security     BearerAuth
func (h *CompanyHandler) Delete(c *gin.Context) {
	if err := h.backend.DeleteCompany(caller(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company deleted successfully", nil)
}

// UploadLogo godoc
// @Summary      Upload a company logo
// @Description  Multipart upload of a PNG, JPEG, GIF or WEBP logo
// @Tags         companies
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Company ID"
// @Param        logo  formData  file    true  "Logo image"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /company/{id}/upload-logo [post]
// @Security     BearerAuth
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	name, data, ok := formFile(c, "logo")
	if !ok {
		return
	}
	company, err := h.backend.UploadLogo(caller(c), c.Param("id"), name, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Logo uploaded successfully", company)
}

// Stats godoc
// @Summary      Company statistics
// @Tags         companies
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /company/{id}/stats [get]
// @Security     BearerAuth
func (h *CompanyHandler) Stats(c *gin.Context) {
	stats, err := h.backend.CompanyStats(caller(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company statistics fetched", stats)
}

// AddReview godoc
// @Summary      Review a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id      path      string         true  "Company ID"
// @Param        review  body      domain.Review  true  "Rating and comment"
// @Success      201     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Failure      422     {object}  response.Response
// @Router       /company/{id}/review [post]
// @Security     BearerAuth
func (h *CompanyHandler) AddReview(c *gin.Context) {
	var req domain.Review
	if !bindJSON(c, h.validate, &req) {
		return
	}
	if err := h.backend.AddReview(caller(c), c.Param("id"), &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Review added successfully", nil)
}

// Verify godoc
// @Summary      Verify a company
// @Description  Mark a company as verified (admin only)
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Company ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /company/{id}/verify [put]
// @Security     BearerAuth
func (h *CompanyHandler) Verify(c *gin.Context) {
	company, err := h.backend.VerifyCompany(caller(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company verified successfully", company)
}
