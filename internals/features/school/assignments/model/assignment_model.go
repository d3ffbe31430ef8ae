package model

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentModel belongs to a class; FK ON DELETE CASCADE.
type AssignmentModel struct {
	AssignmentID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:assignment_id" json:"assignment_id"`
	AssignmentClassID     uuid.UUID `gorm:"type:uuid;not null;index;column:assignment_class_id" json:"assignment_class_id"`
	AssignmentTitle       string    `gorm:"size:200;not null;column:assignment_title" json:"assignment_title"`
	AssignmentDescription *string   `gorm:"type:text;column:assignment_description" json:"assignment_description,omitempty"`
	AssignmentDueDate     time.Time `gorm:"type:timestamptz;not null;column:assignment_due_date" json:"assignment_due_date"`
	AssignmentTotalPoints int       `gorm:"not null;default:100;column:assignment_total_points" json:"assignment_total_points"`
	AssignmentFileKey     *string   `gorm:"size:255;column:assignment_file_key" json:"assignment_file_key,omitempty"`

	AssignmentCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:assignment_created_at" json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:assignment_updated_at" json:"assignment_updated_at"`
}

func (AssignmentModel) TableName() string { return "assignments" }
