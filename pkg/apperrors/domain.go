package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок
платформы (админы, анкеты, города, токены, бот).
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error, domain string) *AppError {
	return Wrap(err, CodeNotFound, domain, "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusConflict)
}

// --- Auth / admin accounts ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrAdminNotFound = New(
	CodeNotFound,
	"admin",
	"Admin not found",
	http.StatusNotFound,
)

var ErrAdminInactive = New(
	CodeForbidden,
	"admin",
	"Admin account is deactivated",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"admin",
	"Admin with this email already exists",
	http.StatusConflict,
)

// --- Telegram linking ---

var ErrInvalidVerificationCode = New(
	CodeInvalidToken,
	"telegram_link",
	"Invalid or expired verification code",
	http.StatusBadRequest,
)

var ErrTelegramAlreadyLinked = New(
	CodeConflict,
	"telegram_link",
	"This Telegram account is already linked to another admin",
	http.StatusBadRequest,
)

// --- Password reset ---

var ErrResetNotEligible = New(
	CodeNotFound,
	"password_reset",
	"No active admin found with this email and Telegram account",
	http.StatusNotFound,
)

var ErrTooManyResetRequests = New(
	CodeRateLimited,
	"password_reset",
	"Too many reset requests. Please try again later.",
	http.StatusBadRequest,
)

var ErrInvalidResetToken = New(
	CodeInvalidToken,
	"password_reset",
	"Invalid reset token",
	http.StatusBadRequest,
)

var ErrResetTokenUsed = New(
	CodeTokenUsed,
	"password_reset",
	"This reset token has already been used",
	http.StatusBadRequest,
)

var ErrResetTokenExpired = New(
	CodeTokenExpired,
	"password_reset",
	"Reset token has expired",
	http.StatusBadRequest,
)

// --- Applicants / cities ---

var ErrApplicantNotFound = New(
	CodeNotFound,
	"applicant",
	"User not found",
	http.StatusNotFound,
)

var ErrCityNotFound = New(
	CodeNotFound,
	"city",
	"City not found",
	http.StatusNotFound,
)

// --- Bot transport ---

// ErrBotUnavailable - токен не задан или невалиден, исходящие операции невозможны
var ErrBotUnavailable = New(
	CodeExternalServiceError,
	"bot",
	"Bot is not initialized. Set a valid token first.",
	http.StatusServiceUnavailable,
)

func ErrBotAPI(err error, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, "bot", message, http.StatusBadGateway)
}
