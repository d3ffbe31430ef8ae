package model

import (
	"time"

	"github.com/google/uuid"
)

type AnnouncementPriority string

const (
	PriorityNormal AnnouncementPriority = "normal"
	PriorityHigh   AnnouncementPriority = "high"
	PriorityUrgent AnnouncementPriority = "urgent"
)

// AnnouncementModel: class_id NULL means school-wide.
type AnnouncementModel struct {
	AnnouncementID       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:announcement_id" json:"announcement_id"`
	AnnouncementClassID  *uuid.UUID `gorm:"type:uuid;index;column:announcement_class_id" json:"announcement_class_id,omitempty"`
	AnnouncementAuthorID uuid.UUID  `gorm:"type:uuid;not null;column:announcement_author_id" json:"announcement_author_id"`

	AnnouncementTitle    string               `gorm:"size:200;not null;column:announcement_title" json:"announcement_title"`
	AnnouncementBody     string               `gorm:"type:text;not null;column:announcement_body" json:"announcement_body"`
	AnnouncementPriority AnnouncementPriority `gorm:"type:varchar(16);not null;default:'normal';column:announcement_priority" json:"announcement_priority"`

	AnnouncementCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:announcement_created_at" json:"announcement_created_at"`
	AnnouncementUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:announcement_updated_at" json:"announcement_updated_at"`
}

func (AnnouncementModel) TableName() string { return "announcements" }
