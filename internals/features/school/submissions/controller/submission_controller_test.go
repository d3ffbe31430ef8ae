package controller

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func submissionApp(db *gorm.DB, uid uuid.UUID, role string) *fiber.App {
	ctrl := NewSubmissionController(db)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uid)
		c.Locals("user_role", role)
		return c.Next()
	})
	app.Post("/submissions", ctrl.Create)
	app.Patch("/submissions/:id", ctrl.Patch)
	app.Patch("/submissions/:id/grade", ctrl.Grade)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func assignmentRow(assignmentID, classID uuid.UUID, totalPoints int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"assignment_id", "assignment_class_id", "assignment_title", "assignment_total_points"}).
		AddRow(assignmentID.String(), classID.String(), "Essay", totalPoints)
}

// A second insert for the same (assignment, student) pair must hit the
// unique constraint and surface as 409.
func TestCreateSecondSubmissionConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	studentID := uuid.New()
	assignmentID := uuid.New()
	classID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "assignments"`).
		WillReturnRows(assignmentRow(assignmentID, classID, 100))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "submissions"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uq_submission_assignment_student" (SQLSTATE 23505)`))

	status := doJSON(t, submissionApp(db, studentID, "student"), "POST", "/submissions",
		fmt.Sprintf(`{"submission_assignment_id":%q,"submission_content":"my answer"}`, assignmentID))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequiresEnrollment(t *testing.T) {
	db, mock := newMockDB(t)
	assignmentID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "assignments"`).
		WillReturnRows(assignmentRow(assignmentID, uuid.New(), 100))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	status := doJSON(t, submissionApp(db, uuid.New(), "student"), "POST", "/submissions",
		fmt.Sprintf(`{"submission_assignment_id":%q}`, assignmentID))
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A student never sees another student's row; the ownership predicate
// is part of the lookup, so the response is 404, not 403.
func TestPatchOtherStudentsSubmissionIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"submission_id"}))

	status := doJSON(t, submissionApp(db, uuid.New(), "student"), "PATCH",
		"/submissions/"+uuid.NewString(),
		`{"submission_content":"tampered"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Teacher grades are bounded by the assignment's total points.
func TestGradeAboveTotalPointsRejected(t *testing.T) {
	db, mock := newMockDB(t)
	teacherID := uuid.New()
	submissionID := uuid.New()
	assignmentID := uuid.New()
	classID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "submissions"`).
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "submission_assignment_id", "submission_student_id", "submission_status"}).
			AddRow(submissionID.String(), assignmentID.String(), uuid.New().String(), "submitted"))
	mock.ExpectQuery(`SELECT \* FROM "assignments"`).
		WillReturnRows(assignmentRow(assignmentID, classID, 50))
	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "class_teacher_id"}).
			AddRow(classID.String(), teacherID.String()))

	status := doJSON(t, submissionApp(db, teacherID, "teacher"), "PATCH",
		"/submissions/"+submissionID.String()+"/grade",
		`{"submission_grade":80}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	// no UPDATE was issued
	assert.NoError(t, mock.ExpectationsWereMet())
}
