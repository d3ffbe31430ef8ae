package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	dto "github.com/mohitmore9417-afk/edua-ai/internals/features/school/announcements/dto"
	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/announcements/model"
	classService "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/service"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

type AnnouncementController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAnnouncementController(db *gorm.DB) *AnnouncementController {
	return &AnnouncementController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctrl *AnnouncementController) find(c *fiber.Ctx) (*model.AnnouncementModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid announcement id")
	}
	var ann model.AnnouncementModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&ann, "announcement_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Announcement not found")
		}
		return nil, err
	}
	return &ann, nil
}

/* =========================
   Handlers
========================= */

// POST / (TEACHER for own class, ADMIN for any or school-wide)
func (ctrl *AnnouncementController) Create(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.CreateAnnouncementRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if body.ClassID == nil {
		if !helper.IsAdmin(c) {
			return helper.JsonError(c, fiber.StatusForbidden, "School-wide announcements are admin only")
		}
	} else {
		if _, err := classService.EnsureClassTeacher(
			ctrl.DB.WithContext(c.Context()), *body.ClassID, uid, helper.IsAdmin(c),
		); err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class access")
		}
	}

	ann := body.ToModel(uid)
	if err := ctrl.DB.WithContext(c.Context()).Create(&ann).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create announcement")
	}
	return helper.JsonCreated(c, "Announcement created", ann)
}

// GET / — school-wide rows plus the caller's classes.
func (ctrl *AnnouncementController) List(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	var q dto.ListAnnouncementsQuery
	_ = c.QueryParser(&q)

	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctrl.DB.WithContext(c.Context()).Model(&model.AnnouncementModel{})

	switch role {
	case constants.RoleAdmin:
		// no scoping
	case constants.RoleTeacher:
		tx = tx.Where(
			"announcement_class_id IS NULL OR announcement_class_id IN (?)",
			ctrl.DB.Table("classes").Select("class_id").Where("class_teacher_id = ?", uid),
		)
	default:
		tx = tx.Where(
			"announcement_class_id IS NULL OR announcement_class_id IN (?)",
			ctrl.DB.Table("enrollments").Select("enrollment_class_id").Where("enrollment_student_id = ?", uid),
		)
	}

	if q.ClassID != "" {
		classID, err := uuid.Parse(q.ClassID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		tx = tx.Where("announcement_class_id = ?", classID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count announcements")
	}

	var rows []model.AnnouncementModel
	if err := tx.
		Order("announcement_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcements")
	}

	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /:id (author or ADMIN)
func (ctrl *AnnouncementController) Patch(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	ann, err := ctrl.find(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcement")
	}
	if ann.AnnouncementAuthorID != uid && !helper.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the author can edit this announcement")
	}

	var body dto.PatchAnnouncementRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if body.Title.IsNull() || body.Body.IsNull() || body.Priority.IsNull() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fields cannot be null")
	}

	upd := body.ToUpdates()
	if len(upd) == 0 {
		return helper.JsonUpdated(c, "No changes", ann)
	}
	if err := ctrl.DB.WithContext(c.Context()).
		Model(ann).Updates(upd).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update announcement")
	}
	return helper.JsonUpdated(c, "Announcement updated", ann)
}

// DELETE /:id (author or ADMIN)
func (ctrl *AnnouncementController) Delete(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	ann, err := ctrl.find(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcement")
	}
	if ann.AnnouncementAuthorID != uid && !helper.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the author can delete this announcement")
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(ann).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete announcement")
	}
	return helper.JsonDeleted(c, "Announcement deleted", fiber.Map{"announcement_id": ann.AnnouncementID})
}
