package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/dto"
	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/model"
	service "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/service"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

type EnrollmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /enroll (STUDENT) — redeem a class code.
// Idempotency is constraint-level: the unique (class, student) pair
// turns a second attempt into a 409, never a duplicate.
func (ctrl *EnrollmentController) Enroll(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.EnrollRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	code := strings.ToUpper(strings.TrimSpace(body.ClassCode))

	var cls model.ClassModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&cls, "class_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No class with that code")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	enr := model.EnrollmentModel{
		EnrollmentClassID:   cls.ClassID,
		EnrollmentStudentID: uid,
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&enr).Error; err != nil {
		if helper.IsDuplicateKeyError(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Already enrolled in this class")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.FromModel(&cls)
	resp.ClassCode = ""
	return helper.JsonCreated(c, "Enrolled", resp)
}

// GET /my-classes (STUDENT)
func (ctrl *EnrollmentController) MyClasses(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var rows []model.ClassModel
	if err := ctrl.DB.WithContext(c.Context()).
		Joins("JOIN enrollments ON enrollment_class_id = class_id").
		Where("enrollment_student_id = ?", uid).
		Order("class_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := dto.FromModels(rows)
	for i := range out {
		out[i].ClassCode = ""
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /:id/roster (owning TEACHER / ADMIN)
func (ctrl *EnrollmentController) Roster(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	if _, err := service.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), id, uid, helper.IsAdmin(c)); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var roster []dto.RosterEntry
	if err := ctrl.DB.WithContext(c.Context()).
		Table("enrollments").
		Select(`enrollment_id,
			enrollment_student_id AS student_id,
			profile_full_name     AS student_full_name,
			profile_email         AS student_email,
			enrollment_created_at`).
		Joins("JOIN profiles ON profile_id = enrollment_student_id").
		Where("enrollment_class_id = ?", id).
		Order("profile_full_name ASC").
		Scan(&roster).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "OK", roster)
}

// DELETE /:id/students/:studentId (owning TEACHER / ADMIN)
func (ctrl *EnrollmentController) RemoveStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class ID")
	}
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("studentId")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	if _, err := service.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), id, uid, helper.IsAdmin(c)); err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	res := ctrl.DB.WithContext(c.Context()).
		Where("enrollment_class_id = ? AND enrollment_student_id = ?", id, studentID).
		Delete(&model.EnrollmentModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	}

	return helper.JsonDeleted(c, "Student removed", fiber.Map{
		"class_id":   id,
		"student_id": studentID,
	})
}
