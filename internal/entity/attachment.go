package entity

import (
	"time"
)

// ProjectAttachment 工单附件（图纸、现场照片等），文件本体存对象存储
type ProjectAttachment struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ProjectID   string    `json:"project_id" gorm:"size:36;not null;index"`
	Filename    string    `json:"filename" gorm:"size:255;not null"`
	ObjectPath  string    `json:"object_path" gorm:"size:512;not null"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type" gorm:"size:100"`
	UploadedBy  string    `json:"uploaded_by" gorm:"size:36"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ProjectAttachment) TableName() string {
	return "project_attachments"
}
