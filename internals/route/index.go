package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notificationRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/home/notifications/route"
	announcementRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/school/announcements/route"
	assignmentRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/school/assignments/route"
	attendanceRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/school/attendance/route"
	classRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/route"
	gradingRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/school/grading/route"
	resourceRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/school/resources/route"
	statsRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/school/stats/route"
	submissionRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/school/submissions/route"
	timetableRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/school/timetable/route"
	authRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/users/auth/route"
	profileRoute "github.com/mohitmore9417-afk/edua-ai/internals/features/users/profile/route"
	authMw "github.com/mohitmore9417-afk/edua-ai/internals/middlewares/auth"
)

// SetupRoutes mounts every feature. /api/auth handles its own guards;
// everything else sits behind the auth middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	authRoute.AuthRoutes(app, db)

	api := app.Group("/api", authMw.AuthMiddleware(db))

	profileRoute.ProfileRoutes(api, db)
	classRoute.ClassRoutes(api, db)
	assignmentRoute.AssignmentRoutes(api, db)
	submissionRoute.SubmissionRoutes(api, db)
	gradingRoute.AIGradeRoutes(api, db)
	attendanceRoute.AttendanceRoutes(api, db)
	announcementRoute.AnnouncementRoutes(api, db)
	resourceRoute.ResourceRoutes(api, db)
	timetableRoute.TimetableRoutes(api, db)
	notificationRoute.NotificationRoutes(api, db)
	statsRoute.StatsRoutes(api, db)
}
