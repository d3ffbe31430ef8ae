package model

import (
	"time"

	"github.com/google/uuid"
)

type ProfileRole string

const (
	ProfileRoleAdmin   ProfileRole = "admin"
	ProfileRoleTeacher ProfileRole = "teacher"
	ProfileRoleStudent ProfileRole = "student"
)

// ProfileModel: one row per authenticated identity, created on signup.
// profile_id == users.id (FK ON DELETE CASCADE).
type ProfileModel struct {
	ProfileID       uuid.UUID   `gorm:"type:uuid;primaryKey;column:profile_id" json:"profile_id"`
	ProfileEmail    string      `gorm:"size:255;not null;column:profile_email" json:"profile_email"`
	ProfileFullName string      `gorm:"size:120;not null;column:profile_full_name" json:"profile_full_name"`
	ProfileRole     ProfileRole `gorm:"type:varchar(20);not null;default:'student';column:profile_role" json:"profile_role"`

	ProfileCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:profile_created_at" json:"profile_created_at"`
	ProfileUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:profile_updated_at" json:"profile_updated_at"`
}

func (ProfileModel) TableName() string { return "profiles" }
