package entity

import (
	"time"
)

// Customer 客户实体
type Customer struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Email     string    `json:"email" gorm:"size:255;index"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Address   string    `json:"address" gorm:"type:text"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}
