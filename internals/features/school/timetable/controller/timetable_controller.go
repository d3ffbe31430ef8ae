package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mohitmore9417-afk/edua-ai/internals/constants"
	classService "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/service"
	dto "github.com/mohitmore9417-afk/edua-ai/internals/features/school/timetable/dto"
	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/timetable/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

type TimetableController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTimetableController(db *gorm.DB) *TimetableController {
	return &TimetableController{
		DB:        db,
		Validator: validator.New(),
	}
}

func validTimeRange(start, end string) bool {
	s, err1 := time.Parse("15:04", start)
	e, err2 := time.Parse("15:04", end)
	return err1 == nil && err2 == nil && s.Before(e)
}

func (ctrl *TimetableController) find(c *fiber.Ctx) (*model.TimetableModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid slot id")
	}
	var slot model.TimetableModel
	if err := ctrl.DB.WithContext(c.Context()).
		First(&slot, "timetable_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Timetable slot not found")
		}
		return nil, err
	}
	return &slot, nil
}

func jsonErrFrom(c *fiber.Ctx, err error, fallback string) error {
	if fe, ok := err.(*fiber.Error); ok {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, fallback)
}

/* =========================
   Handlers
========================= */

// POST / (TEACHER)
func (ctrl *TimetableController) Create(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var body dto.CreateSlotRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !validTimeRange(body.StartTime, body.EndTime) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Times must be HH:MM with start before end")
	}

	if _, err := classService.EnsureClassTeacher(
		ctrl.DB.WithContext(c.Context()), body.ClassID, uid, helper.IsAdmin(c),
	); err != nil {
		return jsonErrFrom(c, err, "Failed to check class access")
	}

	slot := body.ToModel()
	if err := ctrl.DB.WithContext(c.Context()).Create(&slot).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create slot")
	}
	return helper.JsonCreated(c, "Timetable slot created", slot)
}

// GET /?class_id= — any class member.
func (ctrl *TimetableController) ListByClass(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	classID, err := uuid.Parse(c.Query("class_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id is required")
	}
	if _, err := classService.EnsureClassAccess(
		ctrl.DB.WithContext(c.Context()), classID, uid, role,
	); err != nil {
		return jsonErrFrom(c, err, "Failed to check class access")
	}

	var rows []model.TimetableModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("timetable_class_id = ?", classID).
		Order("timetable_day_of_week ASC, timetable_start_time ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}
	return helper.JsonOK(c, "OK", rows)
}

// GET /my-week — merged weekly view across the caller's classes.
func (ctrl *TimetableController) MyWeek(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	role, err := helper.GetRoleFromToken(c)
	if err != nil {
		return err
	}

	tx := ctrl.DB.WithContext(c.Context()).
		Table("timetable_slots").
		Select(`timetable_slots.timetable_id,
			classes.class_id,
			classes.class_name,
			classes.class_subject AS subject,
			timetable_slots.timetable_day_of_week AS day_of_week,
			timetable_slots.timetable_start_time AS start_time,
			timetable_slots.timetable_end_time AS end_time,
			timetable_slots.timetable_room AS room`).
		Joins("JOIN classes ON classes.class_id = timetable_slots.timetable_class_id")

	switch role {
	case constants.RoleTeacher:
		tx = tx.Where("classes.class_teacher_id = ?", uid)
	case constants.RoleAdmin:
		// full schedule
	default:
		tx = tx.Joins(
			"JOIN enrollments ON enrollments.enrollment_class_id = classes.class_id AND enrollments.enrollment_student_id = ?",
			uid,
		)
	}

	var rows []dto.WeekSlot
	if err := tx.
		Order("timetable_day_of_week ASC, timetable_start_time ASC").
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch weekly view")
	}
	return helper.JsonOK(c, "OK", rows)
}

// PATCH /:id (TEACHER of the class)
func (ctrl *TimetableController) Patch(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	slot, err := ctrl.find(c)
	if err != nil {
		return jsonErrFrom(c, err, "Failed to fetch slot")
	}
	if _, err := classService.EnsureClassTeacher(
		ctrl.DB.WithContext(c.Context()), slot.TimetableClassID, uid, helper.IsAdmin(c),
	); err != nil {
		return jsonErrFrom(c, err, "Failed to check class access")
	}

	var body dto.PatchSlotRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if body.DayOfWeek.IsNull() || body.StartTime.IsNull() || body.EndTime.IsNull() {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fields cannot be null")
	}
	if body.DayOfWeek.ShouldUpdate() && body.DayOfWeek.Value != nil &&
		(*body.DayOfWeek.Value < 0 || *body.DayOfWeek.Value > 6) {
		return helper.JsonError(c, fiber.StatusBadRequest, "day_of_week must be 0..6")
	}

	start := slot.TimetableStartTime
	end := slot.TimetableEndTime
	if body.StartTime.ShouldUpdate() && body.StartTime.Value != nil {
		start = *body.StartTime.Value
	}
	if body.EndTime.ShouldUpdate() && body.EndTime.Value != nil {
		end = *body.EndTime.Value
	}
	if !validTimeRange(start, end) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Times must be HH:MM with start before end")
	}

	upd := body.ToUpdates()
	if len(upd) == 0 {
		return helper.JsonUpdated(c, "No changes", slot)
	}
	if err := ctrl.DB.WithContext(c.Context()).
		Model(slot).Updates(upd).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update slot")
	}
	return helper.JsonUpdated(c, "Timetable slot updated", slot)
}

// DELETE /:id (TEACHER of the class)
func (ctrl *TimetableController) Delete(c *fiber.Ctx) error {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	slot, err := ctrl.find(c)
	if err != nil {
		return jsonErrFrom(c, err, "Failed to fetch slot")
	}
	if _, err := classService.EnsureClassTeacher(
		ctrl.DB.WithContext(c.Context()), slot.TimetableClassID, uid, helper.IsAdmin(c),
	); err != nil {
		return jsonErrFrom(c, err, "Failed to check class access")
	}

	if err := ctrl.DB.WithContext(c.Context()).Delete(slot).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete slot")
	}
	return helper.JsonDeleted(c, "Timetable slot deleted", fiber.Map{"timetable_id": slot.TimetableID})
}
