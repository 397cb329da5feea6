package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"trainingscheduler/internal/delivery/http/helpers"
	"trainingscheduler/internal/domain"
)

// ProjectRequest is the request body for POST /projects and PUT /projects/{projectID}.
type ProjectRequest struct {
	Name     string `json:"name"`
	Year     int    `json:"year"`
	Type     string `json:"type"`
	SchoolID string `json:"school_id"`
}

// Validate implements Validator.
func (p ProjectRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	if p.Year < 0 {
		errs = append(errs, "year must not be negative")
	}
	return errs
}

func (p ProjectRequest) toDomain() *domain.Project {
	return &domain.Project{
		Name:     strings.TrimSpace(p.Name),
		Year:     p.Year,
		Type:     p.Type,
		SchoolID: p.SchoolID,
	}
}

type ProjectController struct {
	Logger  *slog.Logger
	Service domain.ProjectService
}

func NewProjectController(logger *slog.Logger, svc domain.ProjectService) *ProjectController {
	return &ProjectController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *ProjectController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// CreateProject godoc
// @Summary Create a project
// @Description Create a funding project, optionally tied to a school.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ProjectRequest true "Project data"
// @Success 201 {object} helpers.APIResponse "data contains the created project"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown school)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [post]
func (c *ProjectController) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	project := req.toDomain()
	if err := c.Service.CreateProject(r.Context(), project); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, project)
}

// GetProject godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the project"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{projectID} [get]
func (c *ProjectController) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if projectID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing projectID")
		return
	}
	project, err := c.Service.GetProject(r.Context(), projectID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, project)
}

// ListProjects godoc
// @Summary List projects
// @Description Returns all projects, or the projects of one school when school_id is given.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param school_id query string false "Filter by school ID"
// @Success 200 {object} helpers.APIResponse "data contains the projects"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [get]
func (c *ProjectController) ListProjects(w http.ResponseWriter, r *http.Request) {
	var (
		projects []*domain.Project
		err      error
	)
	if schoolID := r.URL.Query().Get("school_id"); schoolID != "" {
		projects, err = c.Service.ListSchoolProjects(r.Context(), schoolID)
	} else {
		projects, err = c.Service.ListProjects(r.Context())
	}
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, projects)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID (UUID)"
// @Param body body ProjectRequest true "Project data"
// @Success 200 {object} helpers.APIResponse "data contains the updated project"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{projectID} [put]
func (c *ProjectController) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if projectID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing projectID")
		return
	}
	var req ProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	project := req.toDomain()
	project.ID = projectID
	updated, err := c.Service.UpdateProject(r.Context(), project)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param projectID path string true "Project ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{projectID} [delete]
func (c *ProjectController) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectID")
	if projectID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing projectID")
		return
	}
	if err := c.Service.DeleteProject(r.Context(), projectID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "project deleted"})
}
