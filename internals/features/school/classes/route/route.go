package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/controller"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

// ClassRoutes mounts class CRUD + enrollment endpoints.
// Base: authenticated /api group.
func ClassRoutes(r fiber.Router, db *gorm.DB) {
	classCtrl := controller.NewClassController(db)
	enrollCtrl := controller.NewEnrollmentController(db)

	classes := r.Group("/classes")

	// Any member may read a single class
	classes.Get("/:id", classCtrl.GetByID)
	classes.Get("/:id/roster", authMw.OnlyRoles(constants.RoleErrorTeacher("class roster"), constants.TeacherAndAbove...), enrollCtrl.Roster)

	// Teacher-owned writes
	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("class management"), constants.TeacherAndAbove...)
	classes.Get("/", teacherOnly, classCtrl.List)
	classes.Post("/", teacherOnly, classCtrl.Create)
	classes.Patch("/:id", teacherOnly, classCtrl.Patch)
	classes.Delete("/:id", teacherOnly, classCtrl.Delete)
	classes.Delete("/:id/students/:studentId", teacherOnly, enrollCtrl.RemoveStudent)

	// Student enrollment
	studentOnly := authMw.OnlyRoles(constants.RoleErrorStudent("enrollment"), constants.StudentOnly...)
	r.Post("/enroll", studentOnly, enrollCtrl.Enroll)
	r.Get("/my-classes", studentOnly, enrollCtrl.MyClasses)
}
