package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dto "github.com/mohitmore9417-afk/edua-ai/internals/features/home/notifications/dto"
	model "github.com/mohitmore9417-afk/edua-ai/internals/features/home/notifications/model"
	"github.com/mohitmore9417-afk/edua-ai/internals/features/home/notifications/service"
	userModel "github.com/mohitmore9417-afk/edua-ai/internals/features/users/profile/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

type NotificationController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Email     service.EmailSender
}

func NewNotificationController(db *gorm.DB, email service.EmailSender) *NotificationController {
	return &NotificationController{
		DB:        db,
		Validator: validator.New(),
		Email:     email,
	}
}

/* =========================
   Handlers
========================= */

// GET / — the caller's notifications, newest first.
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var q dto.ListNotificationsQuery
	_ = c.QueryParser(&q)

	paging := helper.ResolvePaging(c, 20, 100)
	tx := ctrl.DB.WithContext(c.Context()).
		Model(&model.NotificationModel{}).
		Where("notification_user_id = ?", uid)
	if q.Unread {
		tx = tx.Where("notification_read = FALSE")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var rows []model.NotificationModel
	if err := tx.
		Order("notification_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	return helper.JsonList(c, "OK", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /:id/read — only the owner's rows are visible.
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	res := ctrl.DB.WithContext(c.Context()).
		Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", id, uid).
		Update("notification_read", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notification")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
	}
	return helper.JsonUpdated(c, "Notification marked read", fiber.Map{"notification_id": id})
}

// PATCH /read-all
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	res := ctrl.DB.WithContext(c.Context()).
		Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_read = FALSE", uid).
		Update("notification_read", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notifications")
	}
	return helper.JsonUpdated(c, "All notifications marked read", fiber.Map{"updated": res.RowsAffected})
}

// POST /notify (TEACHER) — persist a row for the target user and send
// the email without waiting for delivery.
func (ctrl *NotificationController) Notify(c *fiber.Ctx) error {
	var body dto.NotifyRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("LOWER(email) = ?", strings.ToLower(body.To)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No user with that email")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up user")
	}

	ntype := model.NotificationGeneral
	if body.Type != "" {
		ntype = model.NotificationType(body.Type)
	}
	row := model.NotificationModel{
		NotificationUserID:  user.ID,
		NotificationTitle:   body.Title,
		NotificationMessage: body.Message,
		NotificationType:    ntype,
	}
	if len(body.Data) > 0 {
		raw, err := json.Marshal(body.Data)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid data payload")
		}
		row.NotificationData = datatypes.JSON(raw)
	}
	if err := ctrl.DB.WithContext(c.Context()).Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save notification")
	}

	name := body.StudentName
	if name == "" {
		name = user.UserName
	}
	service.SendAsync(ctrl.Email, user.Email, name, body.Title, body.Message)

	return helper.JsonCreated(c, "Notification queued", row)
}
