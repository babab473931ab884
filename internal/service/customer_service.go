package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/weldshop/internal/entity"
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/google/uuid"
)

// CustomerService 客户服务
type CustomerService struct {
	repo *repository.CustomerRepository
}

// NewCustomerService 创建客户服务
func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// List 客户列表，search 可选
func (s *CustomerService) List(ctx context.Context, search string) ([]entity.Customer, error) {
	return s.repo.FindAll(ctx, search)
}

func (s *CustomerService) Get(ctx context.Context, id string) (*entity.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// CustomerRequest 客户创建/更新请求，只有名称必填
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (s *CustomerService) Create(ctx context.Context, req CustomerRequest) (*entity.Customer, error) {
	customer := &entity.Customer{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("创建客户失败: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, req CustomerRequest) (*entity.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.Notes = req.Notes

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("更新客户失败: %w", err)
	}
	return customer, nil
}

// Delete 删除客户，工单/报价/发票上的引用被置空而不是级联删除
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
