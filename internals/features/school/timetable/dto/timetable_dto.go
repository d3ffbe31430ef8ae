package dto

import (
	"github.com/google/uuid"

	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/timetable/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

type CreateSlotRequest struct {
	ClassID   uuid.UUID `json:"class_id" validate:"required"`
	DayOfWeek int       `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string    `json:"start_time" validate:"required,len=5"`
	EndTime   string    `json:"end_time" validate:"required,len=5"`
	Room      *string   `json:"room" validate:"omitempty,max=64"`
}

func (r CreateSlotRequest) ToModel() model.TimetableModel {
	return model.TimetableModel{
		TimetableClassID:   r.ClassID,
		TimetableDayOfWeek: r.DayOfWeek,
		TimetableStartTime: r.StartTime,
		TimetableEndTime:   r.EndTime,
		TimetableRoom:      r.Room,
	}
}

type PatchSlotRequest struct {
	DayOfWeek helper.PatchField[int]    `json:"day_of_week"`
	StartTime helper.PatchField[string] `json:"start_time"`
	EndTime   helper.PatchField[string] `json:"end_time"`
	Room      helper.PatchField[string] `json:"room"`
}

func (r PatchSlotRequest) ToUpdates() map[string]any {
	upd := make(map[string]any)
	helper.PutPatch(upd, "timetable_day_of_week", &r.DayOfWeek)
	helper.PutPatch(upd, "timetable_start_time", &r.StartTime)
	helper.PutPatch(upd, "timetable_end_time", &r.EndTime)
	helper.PutPatch(upd, "timetable_room", &r.Room)
	return upd
}

// WeekSlot is a timetable row joined with its class, shaped for
// the weekly view.
type WeekSlot struct {
	TimetableID uuid.UUID `json:"timetable_id"`
	ClassID     uuid.UUID `json:"class_id"`
	ClassName   string    `json:"class_name"`
	Subject     string    `json:"subject"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Room        *string   `json:"room,omitempty"`
}
