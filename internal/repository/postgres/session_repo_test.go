package postgres

import (
	"context"
	"database/sql"
	"testing"

	"trainingscheduler/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		session *domain.CourseSession
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			session: &domain.CourseSession{
				ID:        "sess-1",
				CourseID:  "course-1",
				Date:      "2025-05-15",
				StartTime: "14:00",
				EndTime:   "16:00",
				Hours:     2,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO course_sessions`).
					WithArgs("sess-1", "course-1", "2025-05-15", "14:00", "16:00", 2.0).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: false,
		},
		{
			name: "db error",
			session: &domain.CourseSession{
				ID:       "sess-2",
				CourseID: "course-1",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO course_sessions`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSessionRepository(db)
			err = repo.Create(ctx, tt.session)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, course_id, date, start_time, end_time, hours`).
			WithArgs("sess-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "date", "start_time", "end_time", "hours"}).
				AddRow("sess-1", "course-1", "2025-05-15", "14:00", "16:00", 2.0))

		repo := NewSessionRepository(db)
		got, err := repo.GetByID(ctx, "sess-1")
		require.NoError(t, err)
		require.Equal(t, "course-1", got.CourseID)
		require.Equal(t, 2.0, got.Hours)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, course_id, date, start_time, end_time, hours`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewSessionRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSessionRepository_Update(t *testing.T) {
	ctx := context.Background()
	session := &domain.CourseSession{
		ID: "sess-1", CourseID: "course-1",
		Date: "2025-05-16", StartTime: "09:00", EndTime: "11:00", Hours: 2,
	}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE course_sessions`).
			WithArgs("sess-1", "2025-05-16", "09:00", "11:00", 2.0).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSessionRepository(db)
		require.NoError(t, repo.Update(ctx, session))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE course_sessions`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSessionRepository(db)
		require.ErrorIs(t, repo.Update(ctx, session), domain.ErrNotFound)
	})
}

func TestSessionRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM course_sessions`).
			WithArgs("sess-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSessionRepository(db)
		require.NoError(t, repo.Delete(ctx, "sess-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM course_sessions`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSessionRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
	})
}

func TestSessionRepository_ListByExpertID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INNER JOIN course_experts`).
		WithArgs("exp-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "course_id", "title", "school_name", "location", "date", "start_time", "end_time", "hours"}).
			AddRow("sess-1", "course-1", "Robotics Lab", "Liceo Galilei", "Aula 3", "2025-05-15", "14:00", "16:00", 2.0).
			AddRow("sess-2", "course-2", "Chemistry Lab", "Liceo Galilei", "Lab 1", "2025-05-16", "09:00", "11:00", 2.0))

	repo := NewSessionRepository(db)
	got, err := repo.ListByExpertID(ctx, "exp-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Robotics Lab", got[0].CourseTitle)
	require.Equal(t, "2025-05-16", got[1].Date)
	require.NoError(t, mock.ExpectationsWereMet())
}
