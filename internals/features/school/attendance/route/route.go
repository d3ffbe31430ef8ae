package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/school/attendance/controller"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAttendanceController(db)

	attendance := r.Group("/attendance")

	attendance.Get("/", ctrl.List)
	attendance.Get("/me", authMw.OnlyRoles(constants.RoleErrorStudent("attendance"), constants.StudentOnly...), ctrl.MyAttendance)

	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("attendance"), constants.TeacherAndAbove...)
	attendance.Get("/stats", teacherOnly, ctrl.Stats)
	attendance.Post("/", teacherOnly, ctrl.Mark)
}
