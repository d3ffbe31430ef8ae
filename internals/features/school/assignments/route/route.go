package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/school/assignments/controller"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

// AssignmentRoutes mounts assignment CRUD.
// Base: authenticated /api group.
func AssignmentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAssignmentController(db)

	assignments := r.Group("/assignments")

	assignments.Get("/", ctrl.List)
	assignments.Get("/:id", ctrl.GetByID)

	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("assignments"), constants.TeacherAndAbove...)
	assignments.Post("/", teacherOnly, ctrl.Create)
	assignments.Post("/:id/file", teacherOnly, ctrl.AttachFile)
	assignments.Patch("/:id", teacherOnly, ctrl.Patch)
	assignments.Delete("/:id", teacherOnly, ctrl.Delete)
}
