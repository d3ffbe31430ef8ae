package dto

import (
	"time"

	"github.com/google/uuid"

	profileModel "github.com/mohitmore9417-afk/edua-ai/internals/features/users/profile/model"
)

// =========================================================
// REQUEST DTO
// =========================================================

type UpdateMeRequest struct {
	ProfileFullName *string `json:"profile_full_name,omitempty" validate:"omitempty,min=2,max=120"`
	UserName        *string `json:"user_name,omitempty" validate:"omitempty,min=3,max=50"`
}

type PatchRoleRequest struct {
	ProfileRole string `json:"profile_role" validate:"required,oneof=admin teacher student"`
}

type ListProfilesQuery struct {
	Role   *string `query:"role" validate:"omitempty,oneof=admin teacher student"`
	Search string  `query:"search"`
}

// =========================================================
// RESPONSE DTO
// =========================================================

type ProfileResponse struct {
	ProfileID        uuid.UUID               `json:"profile_id"`
	ProfileEmail     string                  `json:"profile_email"`
	ProfileFullName  string                  `json:"profile_full_name"`
	ProfileRole      profileModel.ProfileRole `json:"profile_role"`
	ProfileCreatedAt time.Time               `json:"profile_created_at"`
	ProfileUpdatedAt time.Time               `json:"profile_updated_at"`
}

func FromModel(m *profileModel.ProfileModel) ProfileResponse {
	return ProfileResponse{
		ProfileID:        m.ProfileID,
		ProfileEmail:     m.ProfileEmail,
		ProfileFullName:  m.ProfileFullName,
		ProfileRole:      m.ProfileRole,
		ProfileCreatedAt: m.ProfileCreatedAt,
		ProfileUpdatedAt: m.ProfileUpdatedAt,
	}
}

func FromModels(list []profileModel.ProfileModel) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
