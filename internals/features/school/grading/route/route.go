package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/configs"
	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	controller "github.com/mohitmore9417-afk/edua-ai/internals/features/school/grading/controller"
	"github.com/mohitmore9417-afk/edua-ai/internals/features/school/grading/service"
	"github.com/mohitmore9417-afk/edua-ai/internals/middlewares"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

// AIGradeRoutes mounts the AI grading proxy behind its own rate limiter.
func AIGradeRoutes(r fiber.Router, db *gorm.DB) {
	grader := service.NewGrader(configs.AIGatewayURL, configs.AIGatewayKey, configs.AIGatewayModel)
	ctrl := controller.NewAIGradeController(db, grader)

	teacherOnly := authMw.OnlyRoles(constants.RoleErrorTeacher("AI grading"), constants.TeacherAndAbove...)
	r.Post("/submissions/:id/ai-grade", middlewares.AIGradeRateLimiter(), teacherOnly, ctrl.Grade)
}
