package services

import (
	"encoding/json"
	"fmt"
	"time"

	"casting_backend/internal/auth"
	"casting_backend/internal/config"
	"casting_backend/internal/logger"
	"casting_backend/internal/models"
	"casting_backend/internal/repositories"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

const (
	resetTokenTTL   = 15 * time.Minute
	resetRateWindow = time.Hour
	resetRateLimit  = 3
)

type AuthService interface {
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(adminID int) (*dto.AdminDTO, error)
	GenerateVerificationCode(adminID int) (*dto.VerificationCodeResponse, error)
	LinkTelegram(req *dto.LinkTelegramRequest) (*dto.AdminDTO, error)
	UnlinkTelegram(adminID int) error
	// RequestPasswordReset выпускает токен сброса и возвращает ссылку
	// для фронтенда. Вызывается ботом из чата привязанного админа.
	RequestPasswordReset(email string, telegramID int64) (string, error)
	VerifyResetToken(token string) error
	ResetPassword(token, newPassword string) error
}

type AuthServiceImpl struct {
	adminRepo repositories.AdminRepository
	tokenRepo repositories.ResetTokenRepository
	codes     *auth.CodeStore
}

func NewAuthService(
	adminRepo repositories.AdminRepository,
	tokenRepo repositories.ResetTokenRepository,
	codes *auth.CodeStore,
) AuthService {
	return &AuthServiceImpl{
		adminRepo: adminRepo,
		tokenRepo: tokenRepo,
		codes:     codes,
	}
}

// Login - аутентификация администратора
func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.adminRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, admin.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !admin.IsActive {
		return nil, apperrors.ErrAdminInactive
	}

	token, err := auth.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		Admin:       dto.ToAdminDTO(admin),
	}, nil
}

func (s *AuthServiceImpl) Me(adminID int) (*dto.AdminDTO, error) {
	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	d := dto.ToAdminDTO(admin)
	return &d, nil
}

// GenerateVerificationCode выдает короткий код привязки Telegram.
// Код живет в памяти процесса и заменяет предыдущий код этого админа.
func (s *AuthServiceImpl) GenerateVerificationCode(adminID int) (*dto.VerificationCodeResponse, error) {
	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	code, err := s.codes.Generate(admin.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.VerificationCodeResponse{
		Code:      code,
		ExpiresAt: time.Now().Add(auth.CodeTTL),
	}, nil
}

// LinkTelegram обменивает код на привязку Telegram-аккаунта.
// Вызывается ботом, когда пользователь присылает код в чат.
func (s *AuthServiceImpl) LinkTelegram(req *dto.LinkTelegramRequest) (*dto.AdminDTO, error) {
	adminID, ok := s.codes.Claim(req.Code)
	if !ok {
		return nil, apperrors.ErrInvalidVerificationCode
	}

	// Один Telegram-аккаунт - максимум один админ
	if existing, err := s.adminRepo.FindByTelegramID(req.TelegramID); err == nil && existing.ID != adminID {
		return nil, apperrors.ErrTelegramAlreadyLinked
	}

	if err := s.adminRepo.LinkTelegram(adminID, req.TelegramID, req.TelegramUsername); err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	d := dto.ToAdminDTO(admin)
	return &d, nil
}

func (s *AuthServiceImpl) UnlinkTelegram(adminID int) error {
	if err := s.adminRepo.UnlinkTelegram(adminID); err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return apperrors.ErrAdminNotFound
		}
		return apperrors.InternalError(err)
	}

	s.codes.Revoke(adminID)
	return nil
}

// RequestPasswordReset выпускает токен сброса. Заявка принимается только
// из чата Telegram-аккаунта, привязанного к активному админу с этим email,
// и не чаще resetRateLimit раз в час.
func (s *AuthServiceImpl) RequestPasswordReset(email string, telegramID int64) (string, error) {
	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return "", apperrors.ErrResetNotEligible
		}
		return "", apperrors.InternalError(err)
	}

	if !admin.IsActive || admin.TelegramID == nil || *admin.TelegramID != telegramID {
		return "", apperrors.ErrResetNotEligible
	}

	issued, err := s.tokenRepo.CountIssuedSince(admin.ID, time.Now().Add(-resetRateWindow))
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if issued >= resetRateLimit {
		return "", apperrors.ErrTooManyResetRequests
	}

	tokenStr, err := auth.RandomToken(32)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	token := &models.PasswordResetToken{
		AdminID:   admin.ID,
		Token:     tokenStr,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		return "", apperrors.InternalError(err)
	}

	logger.Info("password reset token issued", "admin_id", admin.ID)

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", config.GetConfig().FrontendURL, tokenStr)
	return resetURL, nil
}

func (s *AuthServiceImpl) VerifyResetToken(token string) error {
	reset, err := s.tokenRepo.FindByToken(token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	if reset.Used {
		return apperrors.ErrResetTokenUsed
	}
	if time.Now().After(reset.ExpiresAt) {
		return apperrors.ErrResetTokenExpired
	}

	return nil
}

// ResetPassword меняет пароль по токену. Пометка токена использованным,
// смена хеша и запись в журнал выполняются одной транзакцией.
func (s *AuthServiceImpl) ResetPassword(token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	reset, err := s.tokenRepo.FindByToken(token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}

	if reset.Used {
		return apperrors.ErrResetTokenUsed
	}
	if time.Now().After(reset.ExpiresAt) {
		return apperrors.ErrResetTokenExpired
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	details, _ := json.Marshal(map[string]interface{}{"method": "reset_token"})
	logEntry := &models.ActivityLog{
		AdminID:    reset.AdminID,
		Action:     "password_reset",
		EntityType: "admin",
		EntityID:   &reset.AdminID,
		Details:    datatypes.JSON(details),
	}

	if err := s.tokenRepo.Consume(reset.ID, reset.AdminID, hash, logEntry); err != nil {
		if apperrors.Is(err, repositories.ErrResetTokenNotFound) {
			// Токен перехватили между проверкой и транзакцией
			return apperrors.ErrResetTokenUsed
		}
		return apperrors.InternalError(err)
	}

	return nil
}
