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

type ClassController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =========================
   Handlers
========================= */

// POST / (TEACHER)
func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.CreateClassRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Retry on the (rare) code collision instead of failing the create.
	var cls model.ClassModel
	for attempt := 0; attempt < 3; attempt++ {
		code, err := service.GenerateClassCode()
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate class code")
		}
		cls = body.ToModel(uid, code)
		err = ctrl.DB.WithContext(c.Context()).Create(&cls).Error
		if err == nil {
			break
		}
		if helper.IsDuplicateKeyError(err) && attempt < 2 {
			continue
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Class created", dto.FromModel(&cls))
}

// GET / (TEACHER: own classes; ADMIN: all)
func (ctrl *ClassController) List(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctrl.DB.WithContext(c.Context()).Model(&model.ClassModel{})
	if !helper.IsAdmin(c) {
		tx = tx.Where("class_teacher_id = ?", uid)
	}
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(class_name) LIKE ? OR LOWER(class_subject) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.ClassModel
	if err := tx.Order("class_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /:id (class members + owner + admin)
func (ctrl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, _ := helper.GetRoleFromToken(c)

	cls, err := service.EnsureClassAccess(ctrl.DB.WithContext(c.Context()), id, uid, role)
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := dto.FromModel(cls)
	// The join code is the teacher's to share, not the roster's.
	if role == "student" {
		resp.ClassCode = ""
	}

	var count int64
	if err := ctrl.DB.WithContext(c.Context()).
		Model(&model.EnrollmentModel{}).
		Where("enrollment_class_id = ?", id).
		Count(&count).Error; err == nil {
		resp.StudentCount = count
	}

	return helper.JsonOK(c, "OK", resp)
}

// PATCH /:id (owning TEACHER / ADMIN)
func (ctrl *ClassController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	cls, err := service.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), id, uid, helper.IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var body dto.PatchClassRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	// NOT NULL columns must not go null
	if (body.ClassName != nil && body.ClassName.IsNull()) ||
		(body.ClassSubject != nil && body.ClassSubject.IsNull()) {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_name and class_subject cannot be null")
	}

	updates := body.ToUpdates()
	if len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.Context()).
			Model(cls).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	if err := ctrl.DB.WithContext(c.Context()).
		First(cls, "class_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Class updated", dto.FromModel(cls))
}

// DELETE /:id (owning TEACHER / ADMIN) — cascades children via FK.
func (ctrl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	cls, err := service.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), id, uid, helper.IsAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrClassNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(cls).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Class deleted", fiber.Map{
		"class_id": id,
	})
}
