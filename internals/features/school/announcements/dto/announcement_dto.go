package dto

import (
	"github.com/google/uuid"

	model "github.com/mohitmore9417-afk/edua-ai/internals/features/school/announcements/model"
	helper "github.com/mohitmore9417-afk/edua-ai/internals/helpers"
)

type CreateAnnouncementRequest struct {
	ClassID  *uuid.UUID `json:"class_id"`
	Title    string     `json:"title" validate:"required,max=200"`
	Body     string     `json:"body" validate:"required"`
	Priority string     `json:"priority" validate:"omitempty,oneof=normal high urgent"`
}

func (r CreateAnnouncementRequest) ToModel(authorID uuid.UUID) model.AnnouncementModel {
	prio := model.PriorityNormal
	if r.Priority != "" {
		prio = model.AnnouncementPriority(r.Priority)
	}
	return model.AnnouncementModel{
		AnnouncementClassID:  r.ClassID,
		AnnouncementAuthorID: authorID,
		AnnouncementTitle:    r.Title,
		AnnouncementBody:     r.Body,
		AnnouncementPriority: prio,
	}
}

type PatchAnnouncementRequest struct {
	Title    helper.PatchField[string] `json:"title"`
	Body     helper.PatchField[string] `json:"body"`
	Priority helper.PatchField[string] `json:"priority"`
}

func (r PatchAnnouncementRequest) ToUpdates() map[string]any {
	upd := make(map[string]any)
	helper.PutPatch(upd, "announcement_title", &r.Title)
	helper.PutPatch(upd, "announcement_body", &r.Body)
	helper.PutPatch(upd, "announcement_priority", &r.Priority)
	return upd
}

type ListAnnouncementsQuery struct {
	ClassID string `query:"class_id"`
}
