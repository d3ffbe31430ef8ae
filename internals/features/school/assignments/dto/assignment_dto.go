package dto

import (
	"time"

	"github.com/google/uuid"

	asgModel "github.com/mohitmore9417-afk/edua-ai/internals/features/school/assignments/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

// =========================================================
// CREATE DTO
// =========================================================

type CreateAssignmentRequest struct {
	AssignmentClassID     uuid.UUID `json:"assignment_class_id" validate:"required"`
	AssignmentTitle       string    `json:"assignment_title" validate:"required,min=2,max=200"`
	AssignmentDescription *string   `json:"assignment_description,omitempty"`
	AssignmentDueDate     time.Time `json:"assignment_due_date" validate:"required"`
	AssignmentTotalPoints int       `json:"assignment_total_points" validate:"omitempty,min=1,max=1000"`
}

func (r CreateAssignmentRequest) ToModel() asgModel.AssignmentModel {
	points := r.AssignmentTotalPoints
	if points == 0 {
		points = 100
	}
	return asgModel.AssignmentModel{
		AssignmentClassID:     r.AssignmentClassID,
		AssignmentTitle:       r.AssignmentTitle,
		AssignmentDescription: r.AssignmentDescription,
		AssignmentDueDate:     r.AssignmentDueDate,
		AssignmentTotalPoints: points,
	}
}

// =========================================================
// PATCH DTO (Partial Update)
// =========================================================

type PatchAssignmentRequest struct {
	AssignmentTitle       *helper.PatchField[string]    `json:"assignment_title,omitempty"`
	AssignmentDescription *helper.PatchField[string]    `json:"assignment_description,omitempty"`
	AssignmentDueDate     *helper.PatchField[time.Time] `json:"assignment_due_date,omitempty"`
	AssignmentTotalPoints *helper.PatchField[int]       `json:"assignment_total_points,omitempty"`
}

func (p *PatchAssignmentRequest) ToUpdates() map[string]any {
	upd := map[string]any{}
	helper.PutPatch(upd, "assignment_title", p.AssignmentTitle)
	helper.PutPatch(upd, "assignment_description", p.AssignmentDescription)
	helper.PutPatch(upd, "assignment_due_date", p.AssignmentDueDate)
	helper.PutPatch(upd, "assignment_total_points", p.AssignmentTotalPoints)
	return upd
}

// =========================================================
// QUERY DTO
// =========================================================

type ListAssignmentsQuery struct {
	ClassID *uuid.UUID `query:"class_id"`
	Sort    string     `query:"sort" validate:"omitempty,oneof=due_date desc_due_date created_at desc_created_at"`
}

// =========================================================
// RESPONSE DTO
// =========================================================

type AssignmentResponse struct {
	AssignmentID          uuid.UUID `json:"assignment_id"`
	AssignmentClassID     uuid.UUID `json:"assignment_class_id"`
	AssignmentTitle       string    `json:"assignment_title"`
	AssignmentDescription *string   `json:"assignment_description,omitempty"`
	AssignmentDueDate     time.Time `json:"assignment_due_date"`
	AssignmentTotalPoints int       `json:"assignment_total_points"`
	AssignmentFileKey     *string   `json:"assignment_file_key,omitempty"`
	AssignmentCreatedAt   time.Time `json:"assignment_created_at"`
	AssignmentUpdatedAt   time.Time `json:"assignment_updated_at"`
}

func FromModel(m *asgModel.AssignmentModel) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID:          m.AssignmentID,
		AssignmentClassID:     m.AssignmentClassID,
		AssignmentTitle:       m.AssignmentTitle,
		AssignmentDescription: m.AssignmentDescription,
		AssignmentDueDate:     m.AssignmentDueDate,
		AssignmentTotalPoints: m.AssignmentTotalPoints,
		AssignmentFileKey:     m.AssignmentFileKey,
		AssignmentCreatedAt:   m.AssignmentCreatedAt,
		AssignmentUpdatedAt:   m.AssignmentUpdatedAt,
	}
}

func FromModels(list []asgModel.AssignmentModel) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
