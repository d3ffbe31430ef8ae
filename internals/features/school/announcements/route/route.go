package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/school/announcements/controller"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

func AnnouncementRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAnnouncementController(db)

	announcements := r.Group("/announcements")

	announcements.Get("/", ctrl.List)

	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("announcements"), constants.TeacherAndAbove...)
	announcements.Post("/", teacherOnly, ctrl.Create)
	announcements.Patch("/:id", teacherOnly, ctrl.Patch)
	announcements.Delete("/:id", teacherOnly, ctrl.Delete)
}
