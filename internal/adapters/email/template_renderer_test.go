package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainingscheduler/internal/domain"
)

func TestTemplateRenderer_SessionBooked(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.SessionBookedEmailData{
		Email:       "anna@example.com",
		ExpertName:  "Anna Rossi",
		CourseTitle: "Robotics Lab",
		SchoolName:  "Liceo Galilei",
		Date:        "2025-05-15",
		StartTime:   "14:00",
		EndTime:     "16:00",
		Hours:       2,
	}

	subject, html, text, err := r.Render("session_booked", data)
	require.NoError(t, err)
	assert.Equal(t, "Session scheduled: Robotics Lab on 2025-05-15", subject)
	assert.Contains(t, html, "Anna Rossi")
	assert.Contains(t, html, "14:00")
	assert.Contains(t, text, "Liceo Galilei")
}

func TestTemplateRenderer_Welcome(t *testing.T) {
	r := NewTemplateRenderer()

	subject, html, text, err := r.Render("welcome", &domain.WelcomeMessageEmailData{
		Email:     "anna@example.com",
		FirstName: "Anna",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Contains(t, html, "Anna")
	assert.Contains(t, text, "Anna")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()

	_, _, _, err := r.Render("missing", nil)
	assert.Error(t, err)
}
