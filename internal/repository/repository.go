package repository

import (
	"gorm.io/gorm"
)

// Repositories 仓库集合
type Repositories struct {
	User       *UserRepository
	Customer   *CustomerRepository
	Inventory  *InventoryRepository
	Project    *ProjectRepository
	Quote      *QuoteRepository
	Invoice    *InvoiceRepository
	Timesheet  *TimesheetRepository
	Attachment *AttachmentRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Customer:   NewCustomerRepository(db),
		Inventory:  NewInventoryRepository(db),
		Project:    NewProjectRepository(db),
		Quote:      NewQuoteRepository(db),
		Invoice:    NewInvoiceRepository(db),
		Timesheet:  NewTimesheetRepository(db),
		Attachment: NewAttachmentRepository(db),
	}
}
