package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classService "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/service"
	dto "github.com/mohitmore9417-afk/edua-ai/internals/features/school/attendance/dto"
	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/attendance/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
)

type AttendanceController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =========================
   Handlers
========================= */

// POST / (TEACHER)
// Marking a day is a full replace: old rows for (class, date) go away,
// the posted set takes their place, in one transaction.
func (ctrl *AttendanceController) Mark(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.MarkAttendanceRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	date, err := body.ParseDate()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Date must be YYYY-MM-DD")
	}

	if _, err := classService.EnsureClassTeacher(
		ctrl.DB.WithContext(c.Context()), body.ClassID, uid, helper.IsAdmin(c),
	); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class access")
	}

	// Every marked student must actually be enrolled.
	studentIDs := make([]uuid.UUID, 0, len(body.Records))
	seen := make(map[uuid.UUID]struct{}, len(body.Records))
	for _, rec := range body.Records {
		if _, dup := seen[rec.StudentID]; dup {
			return helper.JsonError(c, fiber.StatusBadRequest, "Duplicate student in records")
		}
		seen[rec.StudentID] = struct{}{}
		studentIDs = append(studentIDs, rec.StudentID)
	}
	var enrolled int64
	if err := ctrl.DB.WithContext(c.Context()).
		Table("enrollments").
		Where("enrollment_class_id = ? AND enrollment_student_id IN ?", body.ClassID, studentIDs).
		Count(&enrolled).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check enrollments")
	}
	if enrolled != int64(len(studentIDs)) {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Some students are not enrolled in this class")
	}

	rows := body.ToModels(date)
	err = ctrl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("attendance_class_id = ? AND attendance_date = ?", body.ClassID, date).
			Delete(&model.AttendanceModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save attendance")
	}

	return helper.JsonOK(c, "Attendance saved", dto.FromModels(rows))
}

// GET /?class_id=&date=
// Teachers see the whole class; students only their own rows.
func (ctrl *AttendanceController) List(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var q dto.ListAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if q.ClassID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id is required")
	}
	classID, err := uuid.Parse(q.ClassID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
	}

	if _, err := classService.EnsureClassAccess(
		ctrl.DB.WithContext(c.Context()), classID, uid, role,
	); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class access")
	}

	tx := ctrl.DB.WithContext(c.Context()).
		Model(&model.AttendanceModel{}).
		Where("attendance_class_id = ?", classID)
	if role == constants.RoleStudent {
		tx = tx.Where("attendance_student_id = ?", uid)
	}
	if q.Date != "" {
		date, err := time.Parse(dto.DateLayout, q.Date)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Date must be YYYY-MM-DD")
		}
		tx = tx.Where("attendance_date = ?", date)
	}

	var rows []model.AttendanceModel
	if err := tx.Order("attendance_date DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}

// GET /stats?class_id= (TEACHER) — per-student present/total counts.
func (ctrl *AttendanceController) Stats(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(c.Query("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id is required")
	}
	if _, err := classService.EnsureClassTeacher(
		ctrl.DB.WithContext(c.Context()), classID, uid, helper.IsAdmin(c),
	); err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class access")
	}

	type studentStat struct {
		StudentID uuid.UUID `json:"student_id"`
		Present   int64     `json:"present"`
		Total     int64     `json:"total"`
		Percent   float64   `json:"percent"`
	}
	var rows []studentStat
	if err := ctrl.DB.WithContext(c.Context()).
		Table("attendance_records").
		Select(`attendance_student_id AS student_id,
			COUNT(*) FILTER (WHERE attendance_status = 'present') AS present,
			COUNT(*) AS total`).
		Where("attendance_class_id = ?", classID).
		Group("attendance_student_id").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute stats")
	}
	for i := range rows {
		if rows[i].Total > 0 {
			rows[i].Percent = float64(rows[i].Present*1000/rows[i].Total) / 10
		}
	}
	return helper.JsonOK(c, "OK", rows)
}

// GET /me — a student's own attendance across every enrolled class.
func (ctrl *AttendanceController) MyAttendance(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []model.AttendanceModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("attendance_student_id = ?", uid).
		Order("attendance_date DESC").
		Limit(200).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	return helper.JsonOK(c, "OK", dto.FromModels(rows))
}
