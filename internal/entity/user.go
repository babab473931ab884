package entity

import (
	"time"
)

// Role 用户角色：manager 看全部管理界面，employee 只有工时视图
const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// UserStatus 用户状态
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User 登录用户
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	Name         string    `json:"name" gorm:"size:100;not null"`
	Role         string    `json:"role" gorm:"size:20;not null;default:employee"`
	Status       string    `json:"status" gorm:"size:20;not null;default:active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
