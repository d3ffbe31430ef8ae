package controller

import (
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

func markApp(db *gorm.DB, uid uuid.UUID, role string) *fiber.App {
	ctrl := NewAttendanceController(db)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uid)
		c.Locals("user_role", role)
		return c.Next()
	})
	app.Post("/attendance", ctrl.Mark)
	return app
}

func markBody(classID uuid.UUID, students ...uuid.UUID) string {
	entries := make([]string, 0, len(students))
	for _, s := range students {
		entries = append(entries, fmt.Sprintf(`{"student_id":%q,"status":"present"}`, s))
	}
	return fmt.Sprintf(`{"class_id":%q,"date":"2026-03-09","records":[%s]}`,
		classID, strings.Join(entries, ","))
}

// Marking a day must replace it wholesale: the old rows for the
// (class, date) pair are deleted and the posted set inserted, inside
// one transaction.
func TestMarkReplacesDayInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	teacherID := uuid.New()
	classID := uuid.New()
	s1, s2 := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "class_teacher_id"}).
			AddRow(classID.String(), teacherID.String()))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "attendance_records"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(`INSERT INTO "attendance_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"attendance_id"}).
			AddRow(uuid.New().String()).
			AddRow(uuid.New().String()))
	mock.ExpectCommit()

	app := markApp(db, teacherID, "teacher")
	req := httptest.NewRequest("POST", "/attendance", strings.NewReader(markBody(classID, s1, s2)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRejectsNonEnrolledStudents(t *testing.T) {
	db, mock := newMockDB(t)
	teacherID := uuid.New()
	classID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "class_teacher_id"}).
			AddRow(classID.String(), teacherID.String()))
	// one of the two students is unknown to the class
	mock.ExpectQuery(`SELECT count\(\*\) FROM "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	app := markApp(db, teacherID, "teacher")
	req := httptest.NewRequest("POST", "/attendance", strings.NewReader(markBody(classID, uuid.New(), uuid.New())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	// nothing was deleted or inserted
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkForbiddenForOtherTeachersClass(t *testing.T) {
	db, mock := newMockDB(t)
	classID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_id", "class_teacher_id"}).
			AddRow(classID.String(), uuid.New().String()))

	app := markApp(db, uuid.New(), "teacher")
	req := httptest.NewRequest("POST", "/attendance", strings.NewReader(markBody(classID, uuid.New())))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
