package model

import (
	"time"

	"github.com/google/uuid"
)

type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusGraded    SubmissionStatus = "graded"
)

// SubmissionModel: one attempt per (assignment, student), enforced by a
// unique index. Holds both AI feedback and teacher feedback.
type SubmissionModel struct {
	SubmissionID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:submission_id" json:"submission_id"`
	SubmissionAssignmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_submission_assignment_student;column:submission_assignment_id" json:"submission_assignment_id"`
	SubmissionStudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_submission_assignment_student;column:submission_student_id" json:"submission_student_id"`

	SubmissionContent *string          `gorm:"type:text;column:submission_content" json:"submission_content,omitempty"`
	SubmissionFileKey *string          `gorm:"size:255;column:submission_file_key" json:"submission_file_key,omitempty"`
	SubmissionStatus  SubmissionStatus `gorm:"type:varchar(24);not null;default:'submitted';column:submission_status" json:"submission_status"`

	SubmissionGrade           *float64 `gorm:"type:numeric(5,2);column:submission_grade" json:"submission_grade,omitempty"`
	SubmissionAIFeedback      *string  `gorm:"type:text;column:submission_ai_feedback" json:"submission_ai_feedback,omitempty"`
	SubmissionTeacherFeedback *string  `gorm:"type:text;column:submission_teacher_feedback" json:"submission_teacher_feedback,omitempty"`

	SubmissionGradedBy *uuid.UUID `gorm:"type:uuid;column:submission_graded_by" json:"submission_graded_by,omitempty"`
	SubmissionGradedAt *time.Time `gorm:"type:timestamptz;column:submission_graded_at" json:"submission_graded_at,omitempty"`

	SubmissionCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:submission_created_at" json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:submission_updated_at" json:"submission_updated_at"`
}

func (SubmissionModel) TableName() string { return "submissions" }
