package v1

import (
	"go-careerbridge/internal/delivery/http/middleware"
	"go-careerbridge/internal/delivery/http/response"
	"go-careerbridge/internal/domain"
	"go-careerbridge/internal/sandbox"
	"go-careerbridge/pkg/apperror"
	"go-careerbridge/pkg/auth"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	backend  *sandbox.Backend
	issuer   *auth.Issuer
	validate *validator.Validate
}

func NewUserHandler(public, protected *gin.RouterGroup, backend *sandbox.Backend, issuer *auth.Issuer, validate *validator.Validate, limits Limits) {
	handler := &UserHandler{backend: backend, issuer: issuer, validate: validate}

	publicUsers := public.Group("/user")
	publicUsers.Use(limits.Login...)
	{
		publicUsers.POST("/register", handler.Register)
		publicUsers.POST("/login", handler.Login)
	}

	users := protected.Group("/user")
	{
		users.GET("/logout", handler.Logout)
		users.GET("/profile", handler.Profile)
		users.PUT("/update-profile", handler.UpdateProfile)
		users.POST("/change-password", handler.ChangePassword)
		users.PUT("/social-links", handler.UpdateSocialLinks)
		users.PUT("/toggle-visibility", handler.ToggleVisibility)
	}

	resumes := protected.Group("/user/resume")
	{
		resumes.POST("/upload", chain(limits.Upload, handler.UploadResume)...)
		resumes.GET("/", handler.ListResumes)
		resumes.GET("/:id", handler.GetResume)
		resumes.DELETE("/:id", handler.DeleteResume)
		resumes.PUT("/:id/set-default", handler.SetDefaultResume)
		resumes.POST("/:id/update-data", handler.UpdateResumeData)
		resumes.PUT("/:id/bulk-update", handler.BulkUpdateResume)
		resumes.PUT("/:id/:itemType/:itemId", handler.UpdateResumeItem)
		resumes.DELETE("/:id/:itemType/:itemId", handler.DeleteResumeItem)
	}
}

// Register godoc
// @Summary      Register an account
// @Description  Create a job seeker or employer account and return a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      domain.RegisterInput  true  "Registration form"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req domain.RegisterInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	user, err := h.backend.Register(&req)
	if err != nil {
		c.Error(err)
		return
	}
	h.issue(c, http.StatusCreated, "User registered successfully", user)
}

// Login godoc
// @Summary      Log in
// @Description  Exchange email and password for a bearer token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        credentials  body      domain.LoginInput  true  "Credentials"
// @Success      200          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Router       /user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	user, err := h.backend.Login(&req)
	if err != nil {
		c.Error(err)
		return
	}
	h.issue(c, http.StatusOK, "Login successful", user)
}

func (h *UserHandler) issue(c *gin.Context, code int, message string, user *domain.User) {
	token, err := h.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	response.Auth(c, code, message, user, token)
}

// Logout godoc
// @Summary      Log out
// @Description  Revoke the bearer token used for this request
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /user/logout [get]
// @Security     BearerAuth
func (h *UserHandler) Logout(c *gin.Context) {
	h.backend.Revoke(c.GetString(middleware.KeyToken))
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// Profile godoc
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /user/profile [get]
// @Security     BearerAuth
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.backend.User(caller(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile fetched", user)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        profile  body      domain.ProfileUpdate  true  "Profile fields"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      422      {object}  response.Response
// @Router       /user/update-profile [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if !bindJSON(c, h.validate, &req) {
		return
	}
	user, err := h.backend.UpdateProfile(caller(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", user)
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        passwords  body      domain.ChangePasswordInput  true  "Current and new password"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      401        {object}  response.Response
// @Failure      422        {object}  response.Response
// @Router       /user/change-password [post]
// @Security     BearerAuth
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req domain.ChangePasswordInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	if err := h.backend.ChangePassword(caller(c), &req); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// UpdateSocialLinks godoc
// @Summary      Update social links
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        links  body      domain.SocialLinks  true  "Social links"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      422    {object}  response.Response
// @Router       /user/social-links [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateSocialLinks(c *gin.Context) {
	var req domain.SocialLinks
	if !bindJSON(c, h.validate, &req) {
		return
	}
	user, err := h.backend.UpdateSocialLinks(caller(c), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Social links updated", user)
}

// ToggleVisibility godoc
// @Summary      Toggle profile visibility
// @Description  Flip the public flag of the caller's profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /user/toggle-visibility [put]
// @Security     BearerAuth
func (h *UserHandler) ToggleVisibility(c *gin.Context) {
	user, err := h.backend.ToggleVisibility(caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile visibility updated", user)
}

// UploadResume godoc
// @Summary      Upload a resume
// @Description  Multipart upload of a PDF, DOC or DOCX resume
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file    true   "Resume file"
// @Param        title   formData  string  false  "Resume title"
// @Success      201     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      429     {object}  response.Response
// @Router       /user/resume/upload [post]
// @Security     BearerAuth
func (h *UserHandler) UploadResume(c *gin.Context) {
	name, data, ok := formFile(c, "resume")
	if !ok {
		return
	}
	resume, err := h.backend.UploadResume(caller(c), c.PostForm("title"), name, data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume uploaded successfully", resume)
}

// ListResumes godoc
// @Summary      List own resumes
// @Tags         resumes
// @Produce      json
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /user/resume/ [get]
// @Security     BearerAuth
func (h *UserHandler) ListResumes(c *gin.Context) {
	page := h.backend.ListResumes(caller(c), listParams(c))
	response.Page(c, "Resumes fetched", page.Items, page.Pagination)
}

// GetResume godoc
// @Summary      Get a resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /user/resume/{id} [get]
// @Security     BearerAuth
func (h *UserHandler) GetResume(c *gin.Context) {
	resume, err := h.backend.Resume(caller(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume fetched", resume)
}

// DeleteResume godoc
// @Summary      Delete a resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /user/resume/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) DeleteResume(c *gin.Context) {
	if err := h.backend.DeleteResume(caller(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume deleted successfully", nil)
}

// SetDefaultResume godoc
// @Summary      Set the default resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /user/resume/{id}/set-default [put]
// @Security     BearerAuth
func (h *UserHandler) SetDefaultResume(c *gin.Context) {
	resume, err := h.backend.SetDefaultResume(caller(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Default resume updated", resume)
}

// UpdateResumeData godoc
// @Summary      Replace parsed resume data
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Resume ID"
// @Param        data  body      domain.ResumeDataInput  true  "Resume data"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /user/resume/{id}/update-data [post]
// @Security     BearerAuth
func (h *UserHandler) UpdateResumeData(c *gin.Context) {
	var req domain.ResumeDataInput
	if !bindJSON(c, h.validate, &req) {
		return
	}
	resume, err := h.backend.UpdateResumeData(caller(c), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume data updated", resume)
}

// BulkUpdateResume godoc
// @Summary      Bulk update resume sections
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id        path      string                   true  "Resume ID"
// @Param        sections  body      domain.ResumeBulkUpdate  true  "Sections to replace"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /user/resume/{id}/bulk-update [put]
// @Security     BearerAuth
func (h *UserHandler) BulkUpdateResume(c *gin.Context) {
	var req domain.ResumeBulkUpdate
	if !bindJSON(c, h.validate, &req) {
		return
	}
	resume, err := h.backend.BulkUpdateResume(caller(c), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume updated successfully", resume)
}

func (h *UserHandler) itemRef(c *gin.Context) (domain.ResumeItemRef, bool) {
	ref := domain.ResumeItemRef{ResumeID: c.Param("id"), ItemType: c.Param("itemType"), ItemID: c.Param("itemId")}
	if err := h.validate.Struct(ref); err != nil {
		c.Error(apperror.BadRequest("Unknown resume section: " + ref.ItemType))
		return ref, false
	}
	return ref, true
}

// UpdateResumeItem godoc
// @Summary      Update one resume item
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id        path      string              true  "Resume ID"
// @Param        itemType  path      string              true  "education, experience, projects or certifications"
// @Param        itemId    path      string              true  "Item ID"
// @Param        item      body      domain.ResumeEntry  true  "Item fields"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /user/resume/{id}/{itemType}/{itemId} [put]
// @Security     BearerAuth
func (h *UserHandler) UpdateResumeItem(c *gin.Context) {
	ref, ok := h.itemRef(c)
	if !ok {
		return
	}
	var req domain.ResumeEntry
	if !bindJSON(c, h.validate, &req) {
		return
	}
	resume, err := h.backend.UpdateResumeItem(caller(c), ref, &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Item updated successfully", resume)
}

// DeleteResumeItem godoc
// @Summary      Delete one resume item
// @Tags         resumes
// @Produce      json
// @Param        id        path      string  true  "Resume ID"
// @Param        itemType  path      string  true  "education, experience, projects or certifications"
// @Param        itemId    path      string  true  "Item ID"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      401       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /user/resume/{id}/{itemType}/{itemId} [delete]
// @Security     BearerAuth
func (h *UserHandler) DeleteResumeItem(c *gin.Context) {
	ref, ok := h.itemRef(c)
	if !ok {
		return
	}
	if err := h.backend.DeleteResumeItem(caller(c), ref); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Item deleted successfully", nil)
}
