package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classService "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/service"
	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/resources/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
	"github.com/mohitmore9417-afk/edua-ai/internals/helpers/storage"
)

const maxResourceSize = 20 << 20 // 20 MB

type ResourceController struct {
	DB *gorm.DB
}

func NewResourceController(db *gorm.DB) *ResourceController {
	return &ResourceController{DB: db}
}

func (ctrl *ResourceController) find(c *fiber.Ctx) (*model.ResourceModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid resource id")
	}
	var res model.ResourceModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&res, "resource_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Resource not found")
		}
		return nil, err
	}
	return &res, nil
}

func jsonErrFrom(c *fiber.Ctx, err error, fallback string) error {
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, fallback)
}

/* =========================
   Handlers
========================= */

// POST / (TEACHER) — multipart: class_id, title, file
func (ctrl *ResourceController) Upload(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(c.FormValue("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
	}
	title := c.FormValue("title")
	if title == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Title is required")
	}

	if _, err := classService.EnsureClassTeacher(
		ctrl.DB.WithContext(c.Context()), classID, uid, helper.IsAdmin(c),
	); err != nil {
		return jsonErrFrom(c, err, "Failed to check class access")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File is required")
	}
	if fh.Size > maxResourceSize {
		return helper.JsonError(c, fiber.StatusRequestEntityTooLarge, "File exceeds 20 MB")
	}

	key, err := storage.UploadFile(storage.BucketResources, classID, fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Upload failed")
	}

	res := model.ResourceModel{
		ResourceClassID:    classID,
		ResourceUploaderID: uid,
		ResourceTitle:      title,
		ResourceFileKey:    key,
		ResourceSize:       fh.Size,
		ResourceMime:       fh.Header.Get("Content-Type"),
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&res).Error; err != nil {
		_ = storage.DeleteFile(storage.BucketResources, key)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save resource")
	}
	return helper.JsonCreated(c, "Resource uploaded", res)
}

// GET /?class_id= — any class member.
func (ctrl *ResourceController) List(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(c.Query("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id is required")
	}
	if _, err := classService.EnsureClassAccess(
		ctrl.DB.WithContext(c.Context()), classID, uid, role,
	); err != nil {
		return jsonErrFrom(c, err, "Failed to check class access")
	}

	var rows []model.ResourceModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("resource_class_id = ?", classID).
		Order("resource_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch resources")
	}
	return helper.JsonOK(c, "OK", rows)
}

// GET /:id/file-url — presigned download, any class member.
func (ctrl *ResourceController) FileURL(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	res, err := ctrl.find(c)
	if err != nil {
		return jsonErrFrom(c, err, "Failed to fetch resource")
	}
	if _, err := classService.EnsureClassAccess(
		ctrl.DB.WithContext(c.Context()), res.ResourceClassID, uid, role,
	); err != nil {
		return jsonErrFrom(c, err, "Failed to check class access")
	}

	url, err := storage.SignedURL(storage.BucketResources, res.ResourceFileKey, 15*time.Minute)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign URL")
	}
	return helper.JsonOK(c, "OK", fiber.Map{"url": url, "expires_in": 900})
}

// DELETE /:id (uploader or ADMIN)
func (ctrl *ResourceController) Delete(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	res, err := ctrl.find(c)
	if err != nil {
		return jsonErrFrom(c, err, "Failed to fetch resource")
	}
	if res.ResourceUploaderID != uid && !helper.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Only the uploader can delete this resource")
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(res).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete resource")
	}
	// Object removal is best effort; the row is the source of truth.
	_ = storage.DeleteFile(storage.BucketResources, res.ResourceFileKey)

	return helper.JsonDeleted(c, "Resource deleted", fiber.Map{"resource_id": res.ResourceID})
}
