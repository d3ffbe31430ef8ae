package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/configs"
	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/home/notifications/controller"
	"github.com/mohitmore9417-afk/edua-ai/internals/features/home/notifications/service"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

func NotificationRoutes(r fiber.Router, db *gorm.DB) {
	sender := service.NewSendgridSender(configs.SendgridAPIKey, configs.EmailFrom)
	ctrl := controller.NewNotificationController(db, sender)

	notifications := r.Group("/notifications")
	notifications.Get("/", ctrl.List)
	notifications.Patch("/read-all", ctrl.MarkAllRead)
	notifications.Patch("/:id/read", ctrl.MarkRead)

	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("notifications"), constants.TeacherAndAbove...)
	r.Post("/notify", teacherOnly, ctrl.Notify)
}
