package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UploadJob records the outcome of one CSV bulk upload: how many rows were
// inserted, how many failed, and the per-row error report as JSONB.
type UploadJob struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FileName string    `gorm:"type:text" json:"file_name"`

	TotalRows int `gorm:"not null;default:0" json:"total_rows"`
	Inserted  int `gorm:"not null;default:0" json:"inserted"`
	Failed    int `gorm:"not null;default:0" json:"failed"`

	Errors datatypes.JSON `gorm:"type:jsonb" json:"errors,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (UploadJob) TableName() string {
	return "upload_jobs"
}

func (j *UploadJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// RowError is one failed CSV row in an upload report.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}
