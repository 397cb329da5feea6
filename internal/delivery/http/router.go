package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"trainingscheduler/internal/delivery/http/controllers"
	"trainingscheduler/internal/delivery/http/middleware"
	"trainingscheduler/internal/domain"
)

// Controllers groups the controllers the router wires up.
type Controllers struct {
	Auth    *controllers.AuthController
	School  *controllers.SchoolController
	Project *controllers.ProjectController
	Expert  *controllers.ExpertController
	Course  *controllers.CourseController
}

// NewRouter initializes the HTTP router with all application routes. Auth
// routes are open; everything else requires a valid bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("GET /auth/me", auth(c.Auth.Me))

	// Schools
	mux.HandleFunc("POST /schools", auth(c.School.CreateSchool))
	mux.HandleFunc("GET /schools", auth(c.School.ListSchools))
	mux.HandleFunc("GET /schools/{schoolID}", auth(c.School.GetSchool))
	mux.HandleFunc("PUT /schools/{schoolID}", auth(c.School.UpdateSchool))
	mux.HandleFunc("DELETE /schools/{schoolID}", auth(c.School.DeleteSchool))

	// Projects
	mux.HandleFunc("POST /projects", auth(c.Project.CreateProject))
	mux.HandleFunc("GET /projects", auth(c.Project.ListProjects))
	mux.HandleFunc("GET /projects/{projectID}", auth(c.Project.GetProject))
	mux.HandleFunc("PUT /projects/{projectID}", auth(c.Project.UpdateProject))
	mux.HandleFunc("DELETE /projects/{projectID}", auth(c.Project.DeleteProject))

	// Experts
	mux.HandleFunc("POST /experts", auth(c.Expert.CreateExpert))
	mux.HandleFunc("GET /experts", auth(c.Expert.ListExperts))
	mux.HandleFunc("GET /experts/{expertID}", auth(c.Expert.GetExpert))
	mux.HandleFunc("PUT /experts/{expertID}", auth(c.Expert.UpdateExpert))
	mux.HandleFunc("DELETE /experts/{expertID}", auth(c.Expert.DeleteExpert))
	mux.HandleFunc("GET /experts/{expertID}/schedule", auth(c.Expert.Schedule))
	mux.HandleFunc("GET /experts/{expertID}/schedule/export", auth(c.Expert.ExportSchedule))

	// Courses and their session calendars
	mux.HandleFunc("POST /courses", auth(c.Course.CreateCourse))
	mux.HandleFunc("GET /courses", auth(c.Course.ListCourses))
	mux.HandleFunc("GET /courses/{courseID}", auth(c.Course.GetCourse))
	mux.HandleFunc("PUT /courses/{courseID}", auth(c.Course.UpdateCourse))
	mux.HandleFunc("DELETE /courses/{courseID}", auth(c.Course.DeleteCourse))
	mux.HandleFunc("POST /courses/{courseID}/sessions", auth(c.Course.AddSession))
	mux.HandleFunc("PUT /courses/{courseID}/sessions/{sessionID}", auth(c.Course.UpdateSession))
	mux.HandleFunc("DELETE /courses/{courseID}/sessions/{sessionID}", auth(c.Course.DeleteSession))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
