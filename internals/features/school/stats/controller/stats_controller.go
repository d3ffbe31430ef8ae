package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/model"
	profileModel "github.com/mohitmore9417-afk/edua-ai/internals/features/users/profile/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// AttendancePercent is present rows over all rows, one decimal place.
// Zero rows means 0, not NaN.
func AttendancePercent(present, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(present*1000/total) / 10
}

type classStats struct {
	ClassID           uuid.UUID `json:"class_id"`
	ClassName         string    `json:"class_name"`
	StudentCount      int64     `json:"student_count"`
	AverageGrade      *float64  `json:"average_grade"`
	AttendancePercent float64   `json:"attendance_percent"`
	UngradedCount     int64     `json:"ungraded_count"`
}

/* =========================
   Handlers
========================= */

// GET /admin (ADMIN)
func (ctrl *StatsController) AdminDashboard(c *fiber.Ctx) error {
	db := ctrl.DB.WithContext(c.Context())

	type roleCount struct {
		Role  string `json:"role"`
		Count int64  `json:"count"`
	}
	var roles []roleCount
	if err := db.Table("profiles").
		Select("profile_role AS role, COUNT(*) AS count").
		Group("profile_role").
		Scan(&roles).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var classes, assignments, submissions int64
	if err := db.Table("classes").Count(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count classes")
	}
	if err := db.Table("assignments").Count(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count assignments")
	}
	if err := db.Table("submissions").Count(&submissions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count submissions")
	}

	var recent []profileModel.ProfileModel
	if err := db.Order("profile_created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch recent signups")
	}

	return helper.JsonOK(c, "OK", fiber.Map{
		"users_by_role":  roles,
		"classes":        classes,
		"assignments":    assignments,
		"submissions":    submissions,
		"recent_signups": recent,
	})
}

// GET /teacher (TEACHER) — one block per owned class.
func (ctrl *StatsController) TeacherDashboard(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.Context())

	var classes []classModel.ClassModel
	if err := db.Where("class_teacher_id = ?", uid).
		Order("class_created_at DESC").
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	out := make([]classStats, 0, len(classes))
	for _, cls := range classes {
		st := classStats{ClassID: cls.ClassID, ClassName: cls.ClassName}

		if err := db.Table("enrollments").
			Where("enrollment_class_id = ?", cls.ClassID).
			Count(&st.StudentCount).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
		}

		assignmentIDs := db.Table("assignments").
			Select("assignment_id").
			Where("assignment_class_id = ?", cls.ClassID)

		var avg *float64
		if err := db.Table("submissions").
			Select("AVG(submission_grade)").
			Where("submission_assignment_id IN (?) AND submission_grade IS NOT NULL", assignmentIDs).
			Scan(&avg).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to average grades")
		}
		st.AverageGrade = avg

		if err := db.Table("submissions").
			Where("submission_assignment_id IN (?) AND submission_status = 'submitted'", assignmentIDs).
			Count(&st.UngradedCount).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count ungraded")
		}

		var present, total int64
		if err := db.Table("attendance_records").
			Where("attendance_class_id = ?", cls.ClassID).
			Count(&total).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count attendance")
		}
		if err := db.Table("attendance_records").
			Where("attendance_class_id = ? AND attendance_status = 'present'", cls.ClassID).
			Count(&present).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count attendance")
		}
		st.AttendancePercent = AttendancePercent(present, total)

		out = append(out, st)
	}

	return helper.JsonOK(c, "OK", fiber.Map{"classes": out})
}
