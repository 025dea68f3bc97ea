package dto

import (
	"time"

	"casting_backend/internal/models"
)

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - ответ с токеном
type LoginResponse struct {
	AccessToken string   `json:"accessToken"`
	Admin       AdminDTO `json:"admin"`
}

// AdminDTO - базовая информация об администраторе
type AdminDTO struct {
	ID               int              `json:"id"`
	Email            string           `json:"email"`
	Name             string           `json:"name"`
	Role             models.AdminRole `json:"role"`
	IsActive         bool             `json:"isActive"`
	TelegramID       *int64           `json:"telegramId,omitempty"`
	TelegramUsername *string          `json:"telegramUsername,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// VerificationCodeResponse - сгенерированный код привязки Telegram
type VerificationCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LinkTelegramRequest - привязка Telegram по коду (вызывается ботом)
type LinkTelegramRequest struct {
	Code             string `json:"code" validate:"required"`
	TelegramID       int64  `json:"telegramId" validate:"required"`
	TelegramUsername string `json:"telegramUsername"`
}

// RequestResetRequest - запрос на выпуск токена сброса (вызывается ботом)
type RequestResetRequest struct {
	Email      string `json:"email" validate:"required,email"`
	TelegramID int64  `json:"telegramId" validate:"required"`
}

// ResetPasswordRequest - установка нового пароля по токену
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func ToAdminDTO(admin *models.Admin) AdminDTO {
	return AdminDTO{
		ID:               admin.ID,
		Email:            admin.Email,
		Name:             admin.Name,
		Role:             admin.Role,
		IsActive:         admin.IsActive,
		TelegramID:       admin.TelegramID,
		TelegramUsername: admin.TelegramUsername,
		CreatedAt:        admin.CreatedAt,
	}
}
