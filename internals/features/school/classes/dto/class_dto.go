package dto

import (
	"time"

	"github.com/google/uuid"

	classModel "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

// =========================================================
// CREATE DTO
// =========================================================

type CreateClassRequest struct {
	ClassName    string  `json:"class_name" validate:"required,min=2,max=120"`
	ClassSubject string  `json:"class_subject" validate:"required,min=2,max=80"`
	ClassRoom    *string `json:"class_room,omitempty" validate:"omitempty,max=50"`
}

func (r CreateClassRequest) ToModel(teacherID uuid.UUID, code string) classModel.ClassModel {
	return classModel.ClassModel{
		ClassName:      r.ClassName,
		ClassSubject:   r.ClassSubject,
		ClassTeacherID: teacherID,
		ClassCode:      code,
		ClassRoom:      r.ClassRoom,
	}
}

// =========================================================
// PATCH DTO (Partial Update)
// =========================================================

type PatchClassRequest struct {
	ClassName    *helper.PatchField[string] `json:"class_name,omitempty"`
	ClassSubject *helper.PatchField[string] `json:"class_subject,omitempty"`
	ClassRoom    *helper.PatchField[string] `json:"class_room,omitempty"`
}

func (p *PatchClassRequest) ToUpdates() map[string]any {
	upd := map[string]any{}
	helper.PutPatch(upd, "class_name", p.ClassName)
	helper.PutPatch(upd, "class_subject", p.ClassSubject)
	helper.PutPatch(upd, "class_room", p.ClassRoom)
	return upd
}

// =========================================================
// ENROLLMENT DTO
// =========================================================

type EnrollRequest struct {
	ClassCode string `json:"class_code" validate:"required,min=4,max=10"`
}

type RosterEntry struct {
	EnrollmentID        uuid.UUID `json:"enrollment_id"`
	StudentID           uuid.UUID `json:"student_id"`
	StudentFullName     string    `json:"student_full_name"`
	StudentEmail        string    `json:"student_email"`
	EnrollmentCreatedAt time.Time `json:"enrollment_created_at"`
}

// =========================================================
// RESPONSE DTO
// =========================================================

type ClassResponse struct {
	ClassID        uuid.UUID `json:"class_id"`
	ClassName      string    `json:"class_name"`
	ClassSubject   string    `json:"class_subject"`
	ClassTeacherID uuid.UUID `json:"class_teacher_id"`
	ClassCode      string    `json:"class_code"`
	ClassRoom      *string   `json:"class_room,omitempty"`
	StudentCount   int64     `json:"student_count,omitempty"`
	ClassCreatedAt time.Time `json:"class_created_at"`
	ClassUpdatedAt time.Time `json:"class_updated_at"`
}

func FromModel(m *classModel.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:        m.ClassID,
		ClassName:      m.ClassName,
		ClassSubject:   m.ClassSubject,
		ClassTeacherID: m.ClassTeacherID,
		ClassCode:      m.ClassCode,
		ClassRoom:      m.ClassRoom,
		ClassCreatedAt: m.ClassCreatedAt,
		ClassUpdatedAt: m.ClassUpdatedAt,
	}
}

func FromModels(list []classModel.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
