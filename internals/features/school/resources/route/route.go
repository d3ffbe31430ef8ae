package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/school/resources/controller"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

func ResourceRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewResourceController(db)

	resources := r.Group("/resources")

	resources.Get("/", ctrl.List)
	resources.Get("/:id/file-url", ctrl.FileURL)

	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("resources"), constants.TeacherAndAbove...)
	resources.Post("/", teacherOnly, ctrl.Upload)
	resources.Delete("/:id", teacherOnly, ctrl.Delete)
}
