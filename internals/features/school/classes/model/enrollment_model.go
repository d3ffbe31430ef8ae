package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentModel: unique per (class, student); created when a student
// redeems a class code.
type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:enrollment_id" json:"enrollment_id"`
	EnrollmentClassID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment_class_student;column:enrollment_class_id" json:"enrollment_class_id"`
	EnrollmentStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_enrollment_class_student;column:enrollment_student_id" json:"enrollment_student_id"`

	EnrollmentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:enrollment_created_at" json:"enrollment_created_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
