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

func enrollApp(db *gorm.DB, studentID uuid.UUID) *fiber.App {
	ctrl := NewEnrollmentController(db)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", studentID)
		c.Locals("user_role", "student")
		return c.Next()
	})
	app.Post("/enroll", ctrl.Enroll)
	return app
}

func postEnroll(t *testing.T, app *fiber.App, code string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/enroll", strings.NewReader(fmt.Sprintf(`{"class_code":%q}`, code)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func classRow(classID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"class_id", "class_name", "class_teacher_id", "class_code"}).
		AddRow(classID.String(), "Biology", uuid.New().String(), "ABC234")
}

func TestEnrollCreatesEnrollment(t *testing.T) {
	db, mock := newMockDB(t)
	classID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(classRow(classID))
	mock.ExpectQuery(`INSERT INTO "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"enrollment_id"}).AddRow(uuid.New().String()))

	status := postEnroll(t, enrollApp(db, uuid.New()), "abc234")
	assert.Equal(t, fiber.StatusCreated, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Enrolling twice is idempotent at the constraint level: the unique
// (class, student) pair turns the second insert into a 409.
func TestEnrollTwiceConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	classID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(classRow(classID))
	mock.ExpectQuery(`INSERT INTO "enrollments"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uq_enrollment_class_student" (SQLSTATE 23505)`))

	status := postEnroll(t, enrollApp(db, uuid.New()), "ABC234")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollUnknownCode(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "classes"`).
		WillReturnRows(sqlmock.NewRows([]string{"class_id"}))

	status := postEnroll(t, enrollApp(db, uuid.New()), "ZZZZZZ")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
