package repository

import (
	"context"

	"github.com/bitfantasy/weldshop/internal/entity"
	"gorm.io/gorm"
)

// CustomerRepository 客户仓库
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Probe 最小读操作，原样返回驱动错误，供连通性探测分类
func (r *CustomerRepository) Probe(ctx context.Context) error {
	var count int64
	return r.db.WithContext(ctx).Model(&entity.Customer{}).Limit(1).Count(&count).Error
}

// FindAll 按名称排序查询客户，search 对 name/email/phone 做不区分大小写子串匹配
func (r *CustomerRepository) FindAll(ctx context.Context, search string) ([]entity.Customer, error) {
	var customers []entity.Customer
	query := r.db.WithContext(ctx).Model(&entity.Customer{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR phone LIKE ?",
			pattern, pattern, pattern,
		)
	}

	err := query.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByExactName 按名称精确匹配（工时视图建单时复用已有客户）
func (r *CustomerRepository) FindByExactName(ctx context.Context, name string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *CustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete 删除客户并置空工单/报价/发票上的客户引用，同一事务内完成
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Project{}).Where("customer_id = ?", id).
			Update("customer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Quote{}).Where("customer_id = ?", id).
			Update("customer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Invoice{}).Where("customer_id = ?", id).
			Update("customer_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Customer{}).Error
	})
}
