package model

import (
	"time"

	"github.com/google/uuid"
)

// ResourceModel: class study material stored in the private resources
// bucket, downloads go through presigned URLs.
type ResourceModel struct {
	ResourceID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:resource_id" json:"resource_id"`
	ResourceClassID    uuid.UUID `gorm:"type:uuid;not null;index;column:resource_class_id" json:"resource_class_id"`
	ResourceUploaderID uuid.UUID `gorm:"type:uuid;not null;column:resource_uploader_id" json:"resource_uploader_id"`

	ResourceTitle   string `gorm:"size:200;not null;column:resource_title" json:"resource_title"`
	ResourceFileKey string `gorm:"size:255;not null;column:resource_file_key" json:"resource_file_key"`
	ResourceSize    int64  `gorm:"not null;default:0;column:resource_size" json:"resource_size"`
	ResourceMime    string `gorm:"size:128;column:resource_mime" json:"resource_mime"`

	ResourceCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:resource_created_at" json:"resource_created_at"`
	ResourceUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:resource_updated_at" json:"resource_updated_at"`
}

func (ResourceModel) TableName() string { return "resources" }
