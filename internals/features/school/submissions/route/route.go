package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/school/submissions/controller"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

// SubmissionRoutes mounts submission CRUD + grading.
// Base: authenticated /api group.
func SubmissionRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSubmissionController(db)

	submissions := r.Group("/submissions")

	submissions.Get("/", ctrl.List)
	submissions.Get("/:id", ctrl.GetByID)
	submissions.Get("/:id/file-url", ctrl.FileURL)

	studentOnly := authMw.OnlyRoles(constants.RoleErrorStudent("submissions"), constants.StudentOnly...)
	submissions.Post("/", studentOnly, ctrl.Create)
	submissions.Post("/:id/file", studentOnly, ctrl.AttachFile)
	submissions.Patch("/:id", studentOnly, ctrl.Patch)

	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("grading"), constants.TeacherAndAbove...)
	submissions.Patch("/:id/grade", teacherOnly, ctrl.Grade)
}
