package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// AttendanceModel: one row per (class, student, date). Marking a day
// again replaces the whole set for that class and date.
type AttendanceModel struct {
	AttendanceID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_id" json:"attendance_id"`
	AttendanceClassID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_class_student_date;column:attendance_class_id" json:"attendance_class_id"`
	AttendanceStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_class_student_date;column:attendance_student_id" json:"attendance_student_id"`
	AttendanceDate      time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_class_student_date;column:attendance_date" json:"attendance_date"`

	AttendanceStatus AttendanceStatus `gorm:"type:varchar(16);not null;column:attendance_status" json:"attendance_status"`

	AttendanceCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:attendance_created_at" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:attendance_updated_at" json:"attendance_updated_at"`
}

func (AttendanceModel) TableName() string { return "attendance_records" }

func IsValidAttendanceStatus(s string) bool {
	switch AttendanceStatus(s) {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}
