package entity

import "time"

// RolePermission toggles whether a managed role may use the system. A missing row means enabled.
type RolePermission struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Role      Role      `gorm:"type:varchar(20);uniqueIndex;not null" json:"role"`
	IsEnabled bool      `gorm:"not null;default:true" json:"is_enabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
