package dto

import (
	"time"

	"casting_backend/internal/models"

	"gorm.io/datatypes"
)

// CreateAdminRequest - создание администратора
type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2"`
	Role     string `json:"role" validate:"omitempty,is-admin-role"`
}

// UpdateAdminRequest - редактирование администратора
type UpdateAdminRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=2"`
	Role     *string `json:"role" validate:"omitempty,is-admin-role"`
	IsActive *bool   `json:"isActive"`
}

// ChangePasswordRequest - смена пароля администратора
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// PagedAdminsResponse - страница списка администраторов
type PagedAdminsResponse struct {
	Data       []AdminDTO `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"totalPages"`
}

// ActivityLogDTO - запись журнала действий
type ActivityLogDTO struct {
	ID         int            `json:"id"`
	AdminID    int            `json:"adminId"`
	AdminName  string         `json:"adminName,omitempty"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   *int           `json:"entityId,omitempty"`
	Details    datatypes.JSON `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// PagedActivityLogsResponse - страница журнала действий
type PagedActivityLogsResponse struct {
	Data       []ActivityLogDTO `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

// AdminStatsResponse - сводная статистика для дашборда
type AdminStatsResponse struct {
	TotalAdmins    int64 `json:"totalAdmins"`
	ActiveAdmins   int64 `json:"activeAdmins"`
	TotalUsers     int64 `json:"totalUsers"`
	ActiveUsers    int64 `json:"activeUsers"`
	UsersLast7Days int64 `json:"usersLast7Days"`
}

func ToActivityLogDTO(entry *models.ActivityLog) ActivityLogDTO {
	d := ActivityLogDTO{
		ID:         entry.ID,
		AdminID:    entry.AdminID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    entry.Details,
		CreatedAt:  entry.CreatedAt,
	}
	if entry.Admin != nil {
		d.AdminName = entry.Admin.Name
	}
	return d
}
