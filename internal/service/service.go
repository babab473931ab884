package service

import (
	"github.com/bitfantasy/weldshop/internal/config"
	"github.com/bitfantasy/weldshop/internal/events"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// Services 服务集合
type Services struct {
	Auth       *AuthService
	Customer   *CustomerService
	Project    *ProjectService
	Inventory  *InventoryService
	Quote      *QuoteService
	Invoice    *InvoiceService
	Timesheet  *TimesheetService
	Dashboard  *DashboardService
	Attachment *AttachmentService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, hub *events.Hub, cfg *config.Config) *Services {
	// 初始化MinIO客户端，未配置或失败时附件功能降级
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			minioClient = nil
		}
	}

	inventorySvc := NewInventoryService(repos.Inventory, hub)

	return &Services{
		Auth:       NewAuthService(repos.User, rdb, cfg),
		Customer:   NewCustomerService(repos.Customer),
		Project:    NewProjectService(repos.Project, repos.Customer),
		Inventory:  inventorySvc,
		Quote:      NewQuoteService(repos.Quote),
		Invoice:    NewInvoiceService(repos.Invoice),
		Timesheet:  NewTimesheetService(repos.Timesheet, repos.Project, repos.Customer, inventorySvc),
		Dashboard:  NewDashboardService(repos.Project, inventorySvc, repos.Customer, rdb),
		Attachment: NewAttachmentService(repos.Attachment, minioClient, cfg.MinIO.Bucket),
	}
}
