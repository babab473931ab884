package repository

import (
	"context"

	"github.com/bitfantasy/weldshop/internal/entity"
	"gorm.io/gorm"
)

// ProjectRepository 工单仓库
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ProjectListParams 工单查询条件
type ProjectListParams struct {
	Search string
	Status string
}

// List 按创建时间倒序查询工单（带客户），search 同时匹配标题和客户名
func (r *ProjectRepository) List(ctx context.Context, params ProjectListParams) ([]entity.Project, error) {
	var projects []entity.Project
	query := r.db.WithContext(ctx).Model(&entity.Project{}).Preload("Customer")

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.
			Joins("LEFT JOIN customers ON customers.id = projects.customer_id").
			Where("LOWER(projects.title) LIKE LOWER(?) OR LOWER(customers.name) LIKE LOWER(?)",
				pattern, pattern)
	}
	if params.Status != "" {
		query = query.Where("projects.status = ?", params.Status)
	}

	err := query.Order("projects.created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).Preload("Customer").Where("id = ?", id).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Project{}).Error
}

// CountActive 进行中工单数（pending/planning/in_progress）
func (r *ProjectRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Project{}).
		Where("status IN ?", entity.ActiveProjectStatuses).
		Count(&count).Error
	return count, err
}
