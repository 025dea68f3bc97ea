package models

import (
	"time"

	"gorm.io/datatypes"
)

type Admin struct {
	ID               int       `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	Name             string    `gorm:"not null" json:"name"`
	Role             AdminRole `gorm:"type:varchar(20);default:'ADMIN'" json:"role"`
	IsActive         bool      `gorm:"default:true" json:"isActive"`
	TelegramID       *int64    `gorm:"uniqueIndex" json:"telegramId,omitempty"`
	TelegramUsername *string   `json:"telegramUsername,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	ResetTokens []PasswordResetToken `gorm:"foreignKey:AdminID" json:"-"`
}

type PasswordResetToken struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	AdminID   int       `gorm:"not null;index" json:"adminId"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"createdAt"`

	Admin *Admin `gorm:"foreignKey:AdminID" json:"-"`
}

// ActivityLog - append-only журнал действий администраторов
type ActivityLog struct {
	ID         int            `gorm:"primaryKey" json:"id"`
	AdminID    int            `gorm:"not null;index" json:"adminId"`
	Action     string         `gorm:"not null" json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   *int           `json:"entityId,omitempty"`
	Details    datatypes.JSON `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`

	Admin *Admin `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}
