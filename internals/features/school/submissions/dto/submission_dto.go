package dto

import (
	"time"

	"github.com/google/uuid"

	subModel "github.com/mohitmore9417-afk/edua-ai/internals/features/school/submissions/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

// =========================================================
// CREATE DTO
// =========================================================

type CreateSubmissionRequest struct {
	SubmissionAssignmentID uuid.UUID `json:"submission_assignment_id" validate:"required"`
	SubmissionContent      *string   `json:"submission_content,omitempty"`
}

func (r CreateSubmissionRequest) ToModel(studentID uuid.UUID) subModel.SubmissionModel {
	return subModel.SubmissionModel{
		SubmissionAssignmentID: r.SubmissionAssignmentID,
		SubmissionStudentID:    studentID,
		SubmissionContent:      r.SubmissionContent,
		SubmissionStatus:       subModel.SubmissionStatusSubmitted,
	}
}

// =========================================================
// PATCH DTO (student updating an ungraded submission)
// =========================================================

type PatchSubmissionRequest struct {
	SubmissionContent *helper.PatchField[string] `json:"submission_content,omitempty"`
}

func (p *PatchSubmissionRequest) ToUpdates() map[string]any {
	upd := map[string]any{}
	helper.PutPatch(upd, "submission_content", p.SubmissionContent)
	return upd
}

// =========================================================
// GRADE DTO (teacher)
// =========================================================

// The upper bound is the assignment's total points, checked in the
// controller against the loaded assignment.
type GradeSubmissionRequest struct {
	SubmissionGrade           *float64 `json:"submission_grade,omitempty" validate:"omitempty,min=0"`
	SubmissionTeacherFeedback *string  `json:"submission_teacher_feedback,omitempty"`
}

// =========================================================
// QUERY DTO
// =========================================================

type ListSubmissionsQuery struct {
	AssignmentID *uuid.UUID                 `query:"assignment_id"`
	StudentID    *uuid.UUID                 `query:"student_id"`
	Status       *subModel.SubmissionStatus `query:"status" validate:"omitempty,oneof=submitted graded"`
	Sort         string                     `query:"sort" validate:"omitempty,oneof=created_at desc_created_at grade desc_grade"`
}

// =========================================================
// RESPONSE DTO
// =========================================================

type SubmissionResponse struct {
	SubmissionID           uuid.UUID `json:"submission_id"`
	SubmissionAssignmentID uuid.UUID `json:"submission_assignment_id"`
	SubmissionStudentID    uuid.UUID `json:"submission_student_id"`

	SubmissionContent *string                   `json:"submission_content,omitempty"`
	SubmissionFileKey *string                   `json:"submission_file_key,omitempty"`
	SubmissionStatus  subModel.SubmissionStatus `json:"submission_status"`

	SubmissionGrade           *float64 `json:"submission_grade,omitempty"`
	SubmissionAIFeedback      *string  `json:"submission_ai_feedback,omitempty"`
	SubmissionTeacherFeedback *string  `json:"submission_teacher_feedback,omitempty"`

	SubmissionGradedBy *uuid.UUID `json:"submission_graded_by,omitempty"`
	SubmissionGradedAt *time.Time `json:"submission_graded_at,omitempty"`

	SubmissionCreatedAt time.Time `json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `json:"submission_updated_at"`
}

func FromModel(m *subModel.SubmissionModel) SubmissionResponse {
	return SubmissionResponse{
		SubmissionID:           m.SubmissionID,
		SubmissionAssignmentID: m.SubmissionAssignmentID,
		SubmissionStudentID:    m.SubmissionStudentID,

		SubmissionContent: m.SubmissionContent,
		SubmissionFileKey: m.SubmissionFileKey,
		SubmissionStatus:  m.SubmissionStatus,

		SubmissionGrade:           m.SubmissionGrade,
		SubmissionAIFeedback:      m.SubmissionAIFeedback,
		SubmissionTeacherFeedback: m.SubmissionTeacherFeedback,

		SubmissionGradedBy: m.SubmissionGradedBy,
		SubmissionGradedAt: m.SubmissionGradedAt,

		SubmissionCreatedAt: m.SubmissionCreatedAt,
		SubmissionUpdatedAt: m.SubmissionUpdatedAt,
	}
}

func FromModels(list []subModel.SubmissionModel) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
