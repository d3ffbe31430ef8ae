package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassModel: owned by a teacher; class_code is the join token students
// redeem to enroll. Deleting a class cascades enrollments, assignments,
// attendance, announcements, resources and timetable rows (FK ON DELETE
// CASCADE in the schema).
type ClassModel struct {
	ClassID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`
	ClassName      string    `gorm:"size:120;not null;column:class_name" json:"class_name"`
	ClassSubject   string    `gorm:"size:80;not null;column:class_subject" json:"class_subject"`
	ClassTeacherID uuid.UUID `gorm:"type:uuid;not null;column:class_teacher_id" json:"class_teacher_id"`
	ClassCode      string    `gorm:"size:10;not null;uniqueIndex;column:class_code" json:"class_code"`
	ClassRoom      *string   `gorm:"size:50;column:class_room" json:"class_room,omitempty"`

	ClassCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:class_updated_at" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }
