package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/xuri/excelize/v2"

	"trainingscheduler/internal/delivery/http/helpers"
	"trainingscheduler/internal/domain"
)

// ExpertRequest is the request body for POST /experts and PUT /experts/{expertID}.
type ExpertRequest struct {
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	FiscalCode string   `json:"fiscal_code"`
	VATNumber  string   `json:"vat_number"`
	Subjects   []string `json:"subjects"`
}

// Validate implements Validator.
func (e ExpertRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.FirstName) == "" && strings.TrimSpace(e.LastName) == "" {
		errs = append(errs, "first_name or last_name is required")
	}
	if e.Email != "" && !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(e.Email))) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

func (e ExpertRequest) toDomain() *domain.Expert {
	return &domain.Expert{
		FirstName:  strings.TrimSpace(e.FirstName),
		LastName:   strings.TrimSpace(e.LastName),
		Phone:      e.Phone,
		Email:      strings.TrimSpace(strings.ToLower(e.Email)),
		FiscalCode: e.FiscalCode,
		VATNumber:  e.VATNumber,
		Subjects:   e.Subjects,
	}
}

type ExpertController struct {
	Logger  *slog.Logger
	Service domain.ExpertService
}

func NewExpertController(logger *slog.Logger, svc domain.ExpertService) *ExpertController {
	return &ExpertController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *ExpertController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
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

// CreateExpert godoc
// @Summary Create an expert
// @Description Register an external expert with contact and billing details.
// @Tags experts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ExpertRequest true "Expert data"
// @Success 201 {object} helpers.APIResponse "data contains the created expert"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /experts [post]
func (c *ExpertController) CreateExpert(w http.ResponseWriter, r *http.Request) {
	var req ExpertRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	expert := req.toDomain()
	if err := c.Service.CreateExpert(r.Context(), expert); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, expert)
}

// GetExpert godoc
// @Summary Get an expert by ID
// @Tags experts
// @Produce json
// @Security BearerAuth
// @Param expertID path string true "Expert ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the expert"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /experts/{expertID} [get]
func (c *ExpertController) GetExpert(w http.ResponseWriter, r *http.Request) {
	expertID := r.PathValue("expertID")
	if expertID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing expertID")
		return
	}
	expert, err := c.Service.GetExpert(r.Context(), expertID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, expert)
}

// ListExperts godoc
// @Summary List experts
// @Tags experts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the experts"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /experts [get]
func (c *ExpertController) ListExperts(w http.ResponseWriter, r *http.Request) {
	experts, err := c.Service.ListExperts(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if experts == nil {
		experts = []*domain.Expert{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, experts)
}

// UpdateExpert godoc
// @Summary Update an expert
// @Tags experts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expertID path string true "Expert ID (UUID)"
// @Param body body ExpertRequest true "Expert data"
// @Success 200 {object} helpers.APIResponse "data contains the updated expert"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /experts/{expertID} [put]
func (c *ExpertController) UpdateExpert(w http.ResponseWriter, r *http.Request) {
	expertID := r.PathValue("expertID")
	if expertID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing expertID")
		return
	}
	var req ExpertRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	expert := req.toDomain()
	expert.ID = expertID
	updated, err := c.Service.UpdateExpert(r.Context(), expert)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteExpert godoc
// @Summary Delete an expert
// @Tags experts
// @Produce json
// @Security BearerAuth
// @Param expertID path string true "Expert ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /experts/{expertID} [delete]
func (c *ExpertController) DeleteExpert(w http.ResponseWriter, r *http.Request) {
	expertID := r.PathValue("expertID")
	if expertID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing expertID")
		return
	}
	if err := c.Service.DeleteExpert(r.Context(), expertID); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "expert deleted"})
}

// Schedule godoc
// @Summary Get an expert's schedule
// @Description Returns every session of every course the expert is assigned to, sorted by date then start time.
// @Tags experts
// @Produce json
// @Security BearerAuth
// @Param expertID path string true "Expert ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the expert's sessions"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /experts/{expertID}/schedule [get]
func (c *ExpertController) Schedule(w http.ResponseWriter, r *http.Request) {
	expertID := r.PathValue("expertID")
	if expertID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing expertID")
		return
	}
	sessions, err := c.Service.Schedule(r.Context(), expertID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// ExportSchedule godoc
// @Summary Export an expert's schedule as a spreadsheet
// @Description Returns the expert's full schedule as an .xlsx attachment, one row per session with a total-hours footer.
// @Tags experts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param expertID path string true "Expert ID (UUID)"
// @Success 200 {file} file "xlsx workbook"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /experts/{expertID}/schedule/export [get]
func (c *ExpertController) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	expertID := r.PathValue("expertID")
	if expertID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing expertID")
		return
	}
	expert, err := c.Service.GetExpert(r.Context(), expertID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	sessions, err := c.Service.Schedule(r.Context(), expertID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Schedule"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "Start")
	f.SetCellValue(sheet, "C1", "End")
	f.SetCellValue(sheet, "D1", "Hours")
	f.SetCellValue(sheet, "E1", "Course")
	f.SetCellValue(sheet, "F1", "School")
	f.SetCellValue(sheet, "G1", "Location")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	f.SetCellStyle(sheet, "A1", "G1", headerStyle)

	var totalHours float64
	row := 2
	for _, s := range sessions {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), s.StartTime)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), s.EndTime)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), s.Hours)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), s.CourseTitle)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), s.SchoolName)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), s.Location)
		totalHours += s.Hours
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), totalHours)

	filename := strings.ReplaceAll(strings.ToLower(expert.FullName()), " ", "_")
	if filename == "" {
		filename = expertID
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "schedule_"+filename+".xlsx"))
	if err := f.Write(w); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}
