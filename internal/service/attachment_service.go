package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// AttachmentService 工单附件服务，文件本体存MinIO，未配置时仅保留元数据
type AttachmentService struct {
	repo        *repository.AttachmentRepository
	minioClient *minio.Client
	bucketName  string
}

// NewAttachmentService 创建附件服务
func NewAttachmentService(repo *repository.AttachmentRepository, minioClient *minio.Client, bucketName string) *AttachmentService {
	return &AttachmentService{
		repo:        repo,
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

// Upload 上传工单附件
func (s *AttachmentService) Upload(ctx context.Context, projectID, userID, filename, contentType string, reader io.Reader, size int64) (*entity.ProjectAttachment, error) {
	id := uuid.New().String()
	objectPath := fmt.Sprintf("projects/%s/%s%s", projectID, id, path.Ext(filename))

	// 上传到MinIO
	if s.minioClient != nil {
		_, err := s.minioClient.PutObject(ctx, s.bucketName, objectPath, reader, size, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("upload file: %w", err)
		}
	}

	attachment := &entity.ProjectAttachment{
		ID:          id,
		ProjectID:   projectID,
		Filename:    filename,
		ObjectPath:  objectPath,
		Size:        size,
		ContentType: contentType,
		UploadedBy:  userID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, attachment); err != nil {
		return nil, fmt.Errorf("create attachment: %w", err)
	}
	return attachment, nil
}

// ListByProject 工单附件列表
func (s *AttachmentService) ListByProject(ctx context.Context, projectID string) ([]entity.ProjectAttachment, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// Download 下载附件
func (s *AttachmentService) Download(ctx context.Context, id string) (io.ReadCloser, *entity.ProjectAttachment, error) {
	attachment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if s.minioClient == nil {
		return nil, attachment, fmt.Errorf("storage not configured")
	}

	object, err := s.minioClient.GetObject(ctx, s.bucketName, attachment.ObjectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("get object: %w", err)
	}
	return object, attachment, nil
}

// Delete 删除附件，对象存储清理失败不阻塞元数据删除
func (s *AttachmentService) Delete(ctx context.Context, id string) error {
	attachment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if s.minioClient != nil {
		_ = s.minioClient.RemoveObject(ctx, s.bucketName, attachment.ObjectPath, minio.RemoveObjectOptions{})
	}
	return s.repo.Delete(ctx, id)
}
