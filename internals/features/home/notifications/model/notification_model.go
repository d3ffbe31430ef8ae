package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationGrade        NotificationType = "grade"
	NotificationAnnouncement NotificationType = "announcement"
	NotificationAssignment   NotificationType = "assignment"
	NotificationGeneral      NotificationType = "general"
)

type NotificationModel struct {
	NotificationID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:notification_id" json:"notification_id"`
	NotificationUserID uuid.UUID `gorm:"type:uuid;not null;index;column:notification_user_id" json:"notification_user_id"`

	NotificationTitle   string           `gorm:"size:200;not null;column:notification_title" json:"notification_title"`
	NotificationMessage string           `gorm:"type:text;not null;column:notification_message" json:"notification_message"`
	NotificationType    NotificationType `gorm:"type:varchar(24);not null;default:'general';column:notification_type" json:"notification_type"`
	NotificationRead    bool             `gorm:"not null;default:false;column:notification_read" json:"notification_read"`

	// Free-form payload for the client (deep link, grade value, ...).
	NotificationData datatypes.JSON `gorm:"type:jsonb;column:notification_data" json:"notification_data,omitempty"`

	NotificationCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:notification_created_at" json:"notification_created_at"`
	NotificationUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:notification_updated_at" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string { return "notifications" }
