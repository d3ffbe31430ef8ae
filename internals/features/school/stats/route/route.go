package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/school/stats/controller"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

func StatsRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStatsController(db)

	stats := r.Group("/stats")
	stats.Get("/admin", authMw.OnlyRoles(constants.RoleErrorAdmin("dashboard"), constants.AdminOnly...), ctrl.AdminDashboard)
	stats.Get("/teacher", authMw.OnlyRoles(constants.RoleErrorTeacher("dashboard"), constants.TeacherAndAbove...), ctrl.TeacherDashboard)
}
