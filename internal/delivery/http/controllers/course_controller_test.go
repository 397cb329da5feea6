package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainingscheduler/internal/delivery/http/helpers"
	"trainingscheduler/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeCourseService implements domain.CourseService for handler tests.
type fakeCourseService struct {
	createCourseErr     error
	getCourseErr        error
	getCourseResult     *domain.Course
	listCoursesErr      error
	listCoursesResult   []*domain.Course
	updateCourseErr     error
	updateCourseResult  *domain.Course
	deleteCourseErr     error
	addSessionErr       error
	addSessionResult    *domain.CourseSession
	updateSessionErr    error
	updateSessionResult *domain.CourseSession
	deleteSessionErr    error

	lastCreateCourse       *domain.Course
	lastAddSessionCourseID string
	lastAddSessionInput    domain.SessionInput
	lastUpdateSessionID    string
	lastDeleteSessionID    string
	lastListParams         domain.PaginationParams
}

func (f *fakeCourseService) CreateCourse(ctx context.Context, course *domain.Course) error {
	f.lastCreateCourse = course
	if f.createCourseErr != nil {
		return f.createCourseErr
	}
	course.ID = "c-created"
	course.RemainingHours = course.TotalHours
	return nil
}

func (f *fakeCourseService) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	if f.getCourseErr != nil {
		return nil, f.getCourseErr
	}
	return f.getCourseResult, nil
}

func (f *fakeCourseService) ListCourses(ctx context.Context, p domain.PaginationParams) ([]*domain.Course, error) {
	f.lastListParams = p
	if f.listCoursesErr != nil {
		return nil, f.listCoursesErr
	}
	return f.listCoursesResult, nil
}

func (f *fakeCourseService) UpdateCourse(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	if f.updateCourseErr != nil {
		return nil, f.updateCourseErr
	}
	return f.updateCourseResult, nil
}

func (f *fakeCourseService) DeleteCourse(ctx context.Context, courseID string) error {
	return f.deleteCourseErr
}

func (f *fakeCourseService) AddSession(ctx context.Context, courseID string, in domain.SessionInput) (*domain.CourseSession, error) {
	f.lastAddSessionCourseID = courseID
	f.lastAddSessionInput = in
	if f.addSessionErr != nil {
		return nil, f.addSessionErr
	}
	return f.addSessionResult, nil
}

func (f *fakeCourseService) UpdateSession(ctx context.Context, courseID, sessionID string, in domain.SessionInput) (*domain.CourseSession, error) {
	f.lastUpdateSessionID = sessionID
	if f.updateSessionErr != nil {
		return nil, f.updateSessionErr
	}
	return f.updateSessionResult, nil
}

func (f *fakeCourseService) DeleteSession(ctx context.Context, courseID, sessionID string) error {
	f.lastDeleteSessionID = sessionID
	return f.deleteSessionErr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	return envelope
}

func TestCourseController_CreateCourse(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantErrCode    string
		wantBodySubstr string
	}{
		{
			name:       "success",
			body:       `{"title":"Robotics Lab","total_hours":30,"experts":[{"id":"exp-1","hourly_rate":45}]}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:           "missing title",
			body:           `{"total_hours":30}`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "title is required",
		},
		{
			name:           "negative total hours",
			body:           `{"title":"Robotics Lab","total_hours":-5}`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "total_hours",
		},
		{
			name:           "invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "unknown field rejected",
			body:           `{"title":"Robotics Lab","remaining_hours":99}`,
			wantStatus:     http.StatusBadRequest,
			wantErrCode:    helpers.ErrCodeBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "unknown expert",
			body:           `{"title":"Robotics Lab","experts":[{"id":"ghost"}]}`,
			fakeErr:        fmt.Errorf("expert ghost: %w", domain.ErrNotFound),
			wantStatus:     http.StatusNotFound,
			wantErrCode:    helpers.ErrCodeNotFound,
			wantBodySubstr: "ghost",
		},
		{
			name:           "service error",
			body:           `{"title":"Robotics Lab"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantErrCode:    helpers.ErrCodeInternalError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCourseService{createCourseErr: tt.fakeErr}
			ctrl := NewCourseController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/courses", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateCourse(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var course domain.Course
				require.NoError(t, json.Unmarshal(dataBytes, &course))
				assert.Equal(t, "c-created", course.ID)
				assert.Equal(t, "Robotics Lab", course.Title)
				require.Len(t, fake.lastCreateCourse.Experts, 1)
				assert.Equal(t, "exp-1", fake.lastCreateCourse.Experts[0].ID)
				assert.Equal(t, 45.0, fake.lastCreateCourse.Experts[0].HourlyRate)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestCourseController_AddSession(t *testing.T) {
	created := &domain.CourseSession{
		ID:        "s-1",
		CourseID:  "c-1",
		Date:      "2026-03-10",
		StartTime: "14:30",
		EndTime:   "17:30",
		Hours:     3,
	}

	tests := []struct {
		name        string
		body        string
		fakeErr     error
		wantStatus  int
		wantErrCode string
	}{
		{
			name:       "success",
			body:       `{"date":"2026-03-10","start_time":"14:30","end_time":"17:30"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:        "missing times",
			body:        `{"date":"2026-03-10"}`,
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "malformed time",
			body:        `{"date":"2026-03-10","start_time":"25:99","end_time":"17:30"}`,
			fakeErr:     fmt.Errorf("malformed time %q: %w", "25:99", domain.ErrInvalidInput),
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "course not found",
			body:        `{"date":"2026-03-10","start_time":"14:30","end_time":"17:30"}`,
			fakeErr:     domain.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantErrCode: helpers.ErrCodeNotFound,
		},
		{
			name:        "expert double booked",
			body:        `{"date":"2026-03-10","start_time":"14:30","end_time":"17:30"}`,
			fakeErr:     fmt.Errorf("expert exp-1 is already booked on 2026-03-10 from 15:00 to 18:00 for course %q: %w", "Other", domain.ErrSessionConflict),
			wantStatus:  http.StatusConflict,
			wantErrCode: helpers.ErrCodeConflict,
		},
		{
			name:        "budget exceeded",
			body:        `{"date":"2026-03-10","start_time":"14:30","end_time":"17:30"}`,
			fakeErr:     fmt.Errorf("session of 3 hours exceeds the 1.5 remaining: %w", domain.ErrHoursExceeded),
			wantStatus:  http.StatusConflict,
			wantErrCode: helpers.ErrCodeConflict,
		},
		{
			name:        "service error",
			body:        `{"date":"2026-03-10","start_time":"14:30","end_time":"17:30"}`,
			fakeErr:     errors.New("db error"),
			wantStatus:  http.StatusInternalServerError,
			wantErrCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCourseService{addSessionErr: tt.fakeErr, addSessionResult: created}
			ctrl := NewCourseController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/courses/c-1/sessions", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("courseID", "c-1")
			rr := httptest.NewRecorder()

			ctrl.AddSession(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "c-1", fake.lastAddSessionCourseID)
				assert.Equal(t, "14:30", fake.lastAddSessionInput.StartTime)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var session domain.CourseSession
				require.NoError(t, json.Unmarshal(dataBytes, &session))
				assert.Equal(t, 3.0, session.Hours)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
			}
		})
	}
}

func TestCourseController_UpdateSession(t *testing.T) {
	moved := &domain.CourseSession{ID: "s-1", CourseID: "c-1", Date: "2026-03-11", StartTime: "09:00", EndTime: "12:00", Hours: 3}

	tests := []struct {
		name        string
		fakeErr     error
		wantStatus  int
		wantErrCode string
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "session not found", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantErrCode: helpers.ErrCodeNotFound},
		{name: "conflict on new slot", fakeErr: fmt.Errorf("expert busy: %w", domain.ErrSessionConflict), wantStatus: http.StatusConflict, wantErrCode: helpers.ErrCodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCourseService{updateSessionErr: tt.fakeErr, updateSessionResult: moved}
			ctrl := NewCourseController(testLogger, fake)
			body := `{"date":"2026-03-11","start_time":"09:00","end_time":"12:00"}`
			req := httptest.NewRequest(http.MethodPut, "http://test/courses/c-1/sessions/s-1", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("courseID", "c-1")
			req.SetPathValue("sessionID", "s-1")
			rr := httptest.NewRecorder()

			ctrl.UpdateSession(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusOK {
				require.Nil(t, envelope.Error)
				assert.Equal(t, "s-1", fake.lastUpdateSessionID)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
			}
		})
	}
}

func TestCourseController_DeleteSession(t *testing.T) {
	tests := []struct {
		name        string
		fakeErr     error
		wantStatus  int
		wantErrCode string
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "not found", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantErrCode: helpers.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCourseService{deleteSessionErr: tt.fakeErr}
			ctrl := NewCourseController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "http://test/courses/c-1/sessions/s-1", nil)
			req.SetPathValue("courseID", "c-1")
			req.SetPathValue("sessionID", "s-1")
			rr := httptest.NewRecorder()

			ctrl.DeleteSession(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "s-1", fake.lastDeleteSessionID)
			} else {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
			}
		})
	}
}

func TestCourseController_ListCourses(t *testing.T) {
	t.Run("passes pagination and wraps empty list", func(t *testing.T) {
		fake := &fakeCourseService{}
		ctrl := NewCourseController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "/courses?page=3&page_size=10", nil)
		rr := httptest.NewRecorder()

		ctrl.ListCourses(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 3, fake.lastListParams.Page)
		assert.Equal(t, 10, fake.lastListParams.PageSize)
		envelope := decodeEnvelope(t, rr)
		require.Nil(t, envelope.Error)
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var resp ListCoursesResponse
		require.NoError(t, json.Unmarshal(dataBytes, &resp))
		assert.NotNil(t, resp.Courses)
		assert.Empty(t, resp.Courses)
		assert.Equal(t, 3, resp.Page)
	})
}

func TestCourseController_GetCourse(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		fake := &fakeCourseService{getCourseErr: domain.ErrNotFound}
		ctrl := NewCourseController(testLogger, fake)
		req := httptest.NewRequest(http.MethodGet, "http://test/courses/ghost", nil)
		req.SetPathValue("courseID", "ghost")
		rr := httptest.NewRecorder()

		ctrl.GetCourse(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
	})
}
