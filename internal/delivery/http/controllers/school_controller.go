package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"trainingscheduler/internal/delivery/http/helpers"
	"trainingscheduler/internal/domain"
)

// SchoolLocationInput is a secondary location in a school request body.
type SchoolLocationInput struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ManagerName  string `json:"manager_name"`
	ManagerPhone string `json:"manager_phone"`
	MapLink      string `json:"map_link"`
}

// SchoolRequest is the request body for POST /schools and PUT /schools/{schoolID}.
type SchoolRequest struct {
	Name               string                `json:"name"`
	Address            string                `json:"address"`
	PrincipalName      string                `json:"principal_name"`
	PrincipalPhone     string                `json:"principal_phone"`
	ManagerName        string                `json:"manager_name"`
	ManagerPhone       string                `json:"manager_phone"`
	MapLink            string                `json:"map_link"`
	SecondaryLocations []SchoolLocationInput `json:"secondary_locations"`
}

// Validate implements Validator.
func (s SchoolRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	for _, loc := range s.SecondaryLocations {
		if strings.TrimSpace(loc.Name) == "" {
			errs = append(errs, "secondary location name is required")
		}
	}
	return errs
}

func (s SchoolRequest) toDomain() *domain.School {
	locations := make([]domain.SchoolLocation, 0, len(s.SecondaryLocations))
	for _, loc := range s.SecondaryLocations {
		locations = append(locations, domain.SchoolLocation{
			Name:         strings.TrimSpace(loc.Name),
			Address:      loc.Address,
			ManagerName:  loc.ManagerName,
			ManagerPhone: loc.ManagerPhone,
			MapLink:      loc.MapLink,
		})
	}
	return &domain.School{
		Name:               strings.TrimSpace(s.Name),
		Address:            s.Address,
		PrincipalName:      s.PrincipalName,
		PrincipalPhone:     s.PrincipalPhone,
		ManagerName:        s.ManagerName,
		ManagerPhone:       s.ManagerPhone,
		MapLink:            s.MapLink,
		SecondaryLocations: locations,
	}
}

type SchoolController struct {
	Logger  *slog.Logger
	Service domain.SchoolService
}

func NewSchoolController(logger *slog.Logger, svc domain.SchoolService) *SchoolController {
	return &SchoolController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *SchoolController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
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

// CreateSchool godoc
// @Summary Create a school
// @Description Register a school with its contacts and optional secondary locations.
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SchoolRequest true "School data"
// @Success 201 {object} helpers.APIResponse "data contains the created school"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schools [post]
func (c *SchoolController) CreateSchool(w http.ResponseWriter, r *http.Request) {
	var req SchoolRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	school := req.toDomain()
	if err := c.Service.CreateSchool(r.Context(), school); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, school)
}

// GetSchool godoc
// @Summary Get a school by ID
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param schoolID path string true "School ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the school with its secondary locations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schools/{schoolID} [get]
func (c *SchoolController) GetSchool(w http.ResponseWriter, r *http.Request) {
	schoolID := r.PathValue("schoolID")
	if schoolID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing schoolID")
		return
	}
	school, err := c.Service.GetSchool(r.Context(), schoolID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, school)
}

// ListSchools godoc
// @Summary List schools
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the schools"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schools [get]
func (c *SchoolController) ListSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := c.Service.ListSchools(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if schools == nil {
		schools = []*domain.School{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, schools)
}

// UpdateSchool godoc
// @Summary Update a school
// @Description Replace the school's fields. Secondary locations are replaced wholesale; locations without an id get a new one.
// @Tags schools
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schoolID path string true "School ID (UUID)"
// @Param body body SchoolRequest true "School data"
// @Success 200 {object} helpers.APIResponse "data contains the updated school"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schools/{schoolID} [put]
func (c *SchoolController) UpdateSchool(w http.ResponseWriter, r *http.Request) {
	schoolID := r.PathValue("schoolID")
	if schoolID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing schoolID")
		return
	}
	var req SchoolRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	school := req.toDomain()
	school.ID = schoolID
	updated, err := c.Service.UpdateSchool(r.Context(), school)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteSchool godoc
// @Summary Delete a school
// @Tags schools
// @Produce json
// @Security BearerAuth
// @Param schoolID path string true "School ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /schools/{schoolID} [delete]
func (c *SchoolController) DeleteSchool(w http.ResponseWriter, r *http.Request) {
	schoolID := r.PathValue("schoolID")
	if schoolID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing schoolID")
		return
	}
	if err := c.Service.DeleteSchool(r.Context(), schoolID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "school deleted"})
}
