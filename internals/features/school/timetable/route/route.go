package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/school/timetable/controller"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

func TimetableRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTimetableController(db)

	timetable := r.Group("/timetable")

	timetable.Get("/", ctrl.ListByClass)
	timetable.Get("/my-week", ctrl.MyWeek)

	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("timetable"), constants.TeacherAndAbove...)
	timetable.Post("/", teacherOnly, ctrl.Create)
	timetable.Patch("/:id", teacherOnly, ctrl.Patch)
	timetable.Delete("/:id", teacherOnly, ctrl.Delete)
}
