package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"trainingscheduler/internal/delivery/http/helpers"
	"trainingscheduler/internal/domain"
)

// CourseExpertInput is an expert assignment in a course request body. The
// expert's name is resolved server-side from the id.
type CourseExpertInput struct {
	ID         string  `json:"id"`
	HourlyRate float64 `json:"hourly_rate"`
}

// CourseRequest is the request body for POST /courses and PUT /courses/{courseID}.
type CourseRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	ProjectID   string              `json:"project_id"`
	SchoolID    string              `json:"school_id"`
	Location    string              `json:"location"`
	TotalHours  float64             `json:"total_hours"`
	HourlyRate  float64             `json:"hourly_rate"`
	TutorName   string              `json:"tutor_name"`
	TutorPhone  string              `json:"tutor_phone"`
	Experts     []CourseExpertInput `json:"experts"`
}

// Validate implements Validator.
func (c CourseRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.TotalHours < 0 {
		errs = append(errs, "total_hours must not be negative")
	}
	if c.HourlyRate < 0 {
		errs = append(errs, "hourly_rate must not be negative")
	}
	for _, e := range c.Experts {
		if e.ID == "" {
			errs = append(errs, "expert id is required")
		}
		if e.HourlyRate < 0 {
			errs = append(errs, "expert hourly_rate must not be negative")
		}
	}
	return errs
}

func (c CourseRequest) toDomain() *domain.Course {
	experts := make([]domain.CourseExpert, 0, len(c.Experts))
	for _, e := range c.Experts {
		experts = append(experts, domain.CourseExpert{ID: e.ID, HourlyRate: e.HourlyRate})
	}
	return &domain.Course{
		Title:       strings.TrimSpace(c.Title),
		Description: c.Description,
		ProjectID:   c.ProjectID,
		SchoolID:    c.SchoolID,
		Location:    c.Location,
		TotalHours:  c.TotalHours,
		HourlyRate:  c.HourlyRate,
		TutorName:   c.TutorName,
		TutorPhone:  c.TutorPhone,
		Experts:     experts,
	}
}

// SessionRequest is the request body for the session endpoints. Hours are
// derived server-side from start_time and end_time.
type SessionRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Validate implements Validator.
func (s SessionRequest) Validate() []string {
	var errs []string
	if s.Date == "" {
		errs = append(errs, "date is required")
	}
	if s.StartTime == "" {
		errs = append(errs, "start_time is required")
	}
	if s.EndTime == "" {
		errs = append(errs, "end_time is required")
	}
	return errs
}

// ListCoursesResponse is the response body for GET /courses.
type ListCoursesResponse struct {
	Courses  []*domain.Course `json:"courses"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type CourseController struct {
	Logger  *slog.Logger
	Service domain.CourseService
}

func NewCourseController(logger *slog.Logger, svc domain.CourseService) *CourseController {
	return &CourseController{
		Logger:  logger,
		Service: svc,
	}
}

// writeServiceError maps domain sentinels to HTTP status codes. Scheduling
// violations surface as 409 so the client can show the wrapped detail message.
func (c *CourseController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrSessionConflict), errors.Is(err, domain.ErrHoursExceeded):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Create a course with its hour budget and assigned experts. Project, school, and expert names are resolved from their ids; the session calendar starts empty.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CourseRequest true "Course data"
// @Success 201 {object} helpers.APIResponse "data contains the created course"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown project, school, or expert)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req CourseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	course := req.toDomain()
	if err := c.Service.CreateCourse(r.Context(), course); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, course)
}

// GetCourse godoc
// @Summary Get a course by ID
// @Description Returns the course with its experts, sessions, and remaining hours.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the course"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses/{courseID} [get]
func (c *CourseController) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("courseID")
	if courseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing courseID")
		return
	}
	course, err := c.Service.GetCourse(r.Context(), courseID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, course)
}

// ListCourses godoc
// @Summary List courses
// @Description Returns a page of courses, each hydrated with experts and sessions. Supports page and page_size query parameters.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains courses and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses [get]
func (c *CourseController) ListCourses(w http.ResponseWriter, r *http.Request) {
	p := helpers.ParsePagination(r)
	courses, err := c.Service.ListCourses(r.Context(), p)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if courses == nil {
		courses = []*domain.Course{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListCoursesResponse{Courses: courses, Page: p.Page, PageSize: p.PageSize})
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Replace the course's descriptive fields, budget, and expert assignments. The session calendar is kept; remaining hours are rebalanced against it.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course ID (UUID)"
// @Param body body CourseRequest true "Course data"
// @Success 200 {object} helpers.APIResponse "data contains the updated course"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses/{courseID} [put]
func (c *CourseController) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("courseID")
	if courseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing courseID")
		return
	}
	var req CourseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	course := req.toDomain()
	course.ID = courseID
	updated, err := c.Service.UpdateCourse(r.Context(), course)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Delete the course and its sessions.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses/{courseID} [delete]
func (c *CourseController) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("courseID")
	if courseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing courseID")
		return
	}
	if err := c.Service.DeleteCourse(r.Context(), courseID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "course deleted"})
}

// AddSession godoc
// @Summary Add a session to a course
// @Description Schedule a new session. Hours are derived from the times, the hour budget is enforced, and every assigned expert is checked for double-booking across all their courses.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course ID (UUID)"
// @Param body body SessionRequest true "Session slot (date, start_time, end_time)"
// @Success 201 {object} helpers.APIResponse "data contains the created session with derived hours"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed date or times)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (expert double-booked or budget exceeded)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses/{courseID}/sessions [post]
func (c *CourseController) AddSession(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("courseID")
	if courseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing courseID")
		return
	}
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	session, err := c.Service.AddSession(r.Context(), courseID, domain.SessionInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, session)
}

// UpdateSession godoc
// @Summary Reschedule a session
// @Description Move a session to a new slot. The session's own hours are released before the budget check, so a course with a fully assigned budget can still be rescheduled.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course ID (UUID)"
// @Param sessionID path string true "Session ID (UUID)"
// @Param body body SessionRequest true "New session slot"
// @Success 200 {object} helpers.APIResponse "data contains the updated session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (expert double-booked or budget exceeded)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses/{courseID}/sessions/{sessionID} [put]
func (c *CourseController) UpdateSession(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("courseID")
	sessionID := r.PathValue("sessionID")
	if courseID == "" || sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing courseID or sessionID")
		return
	}
	var req SessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	session, err := c.Service.UpdateSession(r.Context(), courseID, sessionID, domain.SessionInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Delete a session
// @Description Remove a session from the course calendar. Its hours return to the remaining budget.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course ID (UUID)"
// @Param sessionID path string true "Session ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /courses/{courseID}/sessions/{sessionID} [delete]
func (c *CourseController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("courseID")
	sessionID := r.PathValue("sessionID")
	if courseID == "" || sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing courseID or sessionID")
		return
	}
	if err := c.Service.DeleteSession(r.Context(), courseID, sessionID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "session deleted"})
}
