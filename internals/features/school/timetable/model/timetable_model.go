package model

import (
	"time"

	"github.com/google/uuid"
)

// TimetableModel: one weekly slot for a class. Day 0 is Sunday, times
// are "HH:MM" local.
type TimetableModel struct {
	TimetableID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:timetable_id" json:"timetable_id"`
	TimetableClassID uuid.UUID `gorm:"type:uuid;not null;index;column:timetable_class_id" json:"timetable_class_id"`

	TimetableDayOfWeek int     `gorm:"not null;column:timetable_day_of_week" json:"timetable_day_of_week"`
	TimetableStartTime string  `gorm:"size:5;not null;column:timetable_start_time" json:"timetable_start_time"`
	TimetableEndTime   string  `gorm:"size:5;not null;column:timetable_end_time" json:"timetable_end_time"`
	TimetableRoom      *string `gorm:"size:64;column:timetable_room" json:"timetable_room,omitempty"`

	TimetableCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:timetable_created_at" json:"timetable_created_at"`
	TimetableUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:timetable_updated_at" json:"timetable_updated_at"`
}

func (TimetableModel) TableName() string { return "timetable_slots" }
