package repository

import (
	"context"

	"github.com/bitfantasy/weldshop/internal/entity"
	"gorm.io/gorm"
)

// AttachmentRepository 工单附件仓库
type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

func (r *AttachmentRepository) Create(ctx context.Context, attachment *entity.ProjectAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *AttachmentRepository) ListByProject(ctx context.Context, projectID string) ([]entity.ProjectAttachment, error) {
	var attachments []entity.ProjectAttachment
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&attachments).Error
	return attachments, err
}

func (r *AttachmentRepository) FindByID(ctx context.Context, id string) (*entity.ProjectAttachment, error) {
	var attachment entity.ProjectAttachment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&attachment).Error
	if err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.ProjectAttachment{}).Error
}
