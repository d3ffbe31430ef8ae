package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/mohitmore9417-afk/edua-ai/internals/features/school/assignments/dto"
	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/assignments/model"
	classService "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/service"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
	"github.com/mohitmore9417-afk/edua-ai/internals/helpers/storage"
)

type AssignmentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAssignmentController(db *gorm.DB) *AssignmentController {
	return &AssignmentController{
		DB:        db,
		Validator: validator.New(),
	}
}

func applySort(q *gorm.DB, sort string) *gorm.DB {
	switch strings.TrimSpace(sort) {
	case "due_date":
		return q.Order("assignment_due_date ASC")
	case "desc_due_date":
		return q.Order("assignment_due_date DESC")
	case "created_at":
		return q.Order("assignment_created_at ASC")
	default:
		return q.Order("assignment_created_at DESC")
	}
}

func (ctrl *AssignmentController) classErr(c *fiber.Ctx, err error) error {
	if errors.Is(err, classService.ErrClassNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
	}
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
}

/* =========================
   Handlers
========================= */

// POST / (owning TEACHER)
func (ctrl *AssignmentController) Create(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.CreateAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if _, err := classService.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), body.AssignmentClassID, uid, helper.IsAdmin(c)); err != nil {
		return ctrl.classErr(c, err)
	}

	asg := body.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(&asg).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "Assignment created", dto.FromModel(&asg))
}

// POST /:id/file (owning TEACHER) — attach a file from multipart form.
func (ctrl *AssignmentController) AttachFile(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var asg model.AssignmentModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&asg, "assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if _, err := classService.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), asg.AssignmentClassID, uid, helper.IsAdmin(c)); err != nil {
		return ctrl.classErr(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Missing file")
	}

	key, err := storage.UploadFile(storage.BucketResources, uid, fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Upload failed: "+err.Error())
	}

	if err := ctrl.DB.WithContext(c.Context()).
		Model(&asg).Update("assignment_file_key", key).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	asg.AssignmentFileKey = &key
	return helper.JsonUpdated(c, "File attached", dto.FromModel(&asg))
}

// GET /?class_id= (class members + owner + admin)
func (ctrl *AssignmentController) List(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, _ := helper.GetRoleFromToken(c)

	var q dto.ListAssignmentsQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := ctrl.Validator.Struct(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctrl.DB.WithContext(c.Context()).Model(&model.AssignmentModel{})

	if q.ClassID != nil {
		if _, err := classService.EnsureClassAccess(ctrl.DB.WithContext(c.Context()), *q.ClassID, uid, role); err != nil {
			return ctrl.classErr(c, err)
		}
		tx = tx.Where("assignment_class_id = ?", *q.ClassID)
	} else if role == "student" {
		ids, err := classService.EnrolledClassIDs(ctrl.DB.WithContext(c.Context()), uid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if len(ids) == 0 {
			return helper.JsonList(c, "OK", []dto.AssignmentResponse{}, helper.BuildPaginationFromPage(0, paging.Page, paging.PerPage))
		}
		tx = tx.Where("assignment_class_id IN ?", ids)
	} else if role == "teacher" {
		tx = tx.Where("assignment_class_id IN (SELECT class_id FROM classes WHERE class_teacher_id = ?)", uid)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.AssignmentModel
	if err := applySort(tx, q.Sort).
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "OK", dto.FromModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// GET /:id (class members + owner + admin)
func (ctrl *AssignmentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, _ := helper.GetRoleFromToken(c)

	var asg model.AssignmentModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&asg, "assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if _, err := classService.EnsureClassAccess(ctrl.DB.WithContext(c.Context()), asg.AssignmentClassID, uid, role); err != nil {
		return ctrl.classErr(c, err)
	}

	return helper.JsonOK(c, "OK", dto.FromModel(&asg))
}

// PATCH /:id (owning TEACHER)
func (ctrl *AssignmentController) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var asg model.AssignmentModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&asg, "assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if _, err := classService.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), asg.AssignmentClassID, uid, helper.IsAdmin(c)); err != nil {
		return ctrl.classErr(c, err)
	}

	var body dto.PatchAssignmentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if (body.AssignmentTitle != nil && body.AssignmentTitle.IsNull()) ||
		(body.AssignmentDueDate != nil && body.AssignmentDueDate.IsNull()) ||
		(body.AssignmentTotalPoints != nil && body.AssignmentTotalPoints.IsNull()) {
		return helper.JsonError(c, fiber.StatusBadRequest, "title, due_date and total_points cannot be null")
	}
	if body.AssignmentTotalPoints != nil && body.AssignmentTotalPoints.ShouldUpdate() && !body.AssignmentTotalPoints.IsNull() {
		if *body.AssignmentTotalPoints.Value < 1 || *body.AssignmentTotalPoints.Value > 1000 {
			return helper.JsonError(c, fiber.StatusBadRequest, "assignment_total_points must be 1..1000")
		}
	}

	updates := body.ToUpdates()
	if len(updates) > 0 {
		if err := ctrl.DB.WithContext(c.Context()).
			Model(&asg).Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	if err := ctrl.DB.WithContext(c.Context()).
		First(&asg, "assignment_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Assignment updated", dto.FromModel(&asg))
}

// DELETE /:id (owning TEACHER)
func (ctrl *AssignmentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var asg model.AssignmentModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&asg, "assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if _, err := classService.EnsureClassTeacher(ctrl.DB.WithContext(c.Context()), asg.AssignmentClassID, uid, helper.IsAdmin(c)); err != nil {
		return ctrl.classErr(c, err)
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(&asg).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{
		"assignment_id": id,
	})
}
