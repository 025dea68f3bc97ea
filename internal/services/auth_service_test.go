package services

import (
	"testing"
	"time"

	"casting_backend/internal/auth"
	"casting_backend/internal/config"
	"casting_backend/internal/models"
	"casting_backend/internal/repositories"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdminRepo struct {
	repositories.AdminRepository
	admins map[string]*models.Admin // по email
	byTgID map[int64]*models.Admin

	linkedAdminID int
	linkedTgID    int64
}

func (s *stubAdminRepo) FindByEmail(email string) (*models.Admin, error) {
	if admin, ok := s.admins[email]; ok {
		return admin, nil
	}
	return nil, repositories.ErrAdminNotFound
}

func (s *stubAdminRepo) FindByID(id int) (*models.Admin, error) {
	for _, admin := range s.admins {
		if admin.ID == id {
			return admin, nil
		}
	}
	return nil, repositories.ErrAdminNotFound
}

func (s *stubAdminRepo) FindByTelegramID(telegramID int64) (*models.Admin, error) {
	if admin, ok := s.byTgID[telegramID]; ok {
		return admin, nil
	}
	return nil, repositories.ErrAdminNotFound
}

func (s *stubAdminRepo) LinkTelegram(adminID int, telegramID int64, username string) error {
	s.linkedAdminID = adminID
	s.linkedTgID = telegramID
	return nil
}

type stubTokenRepo struct {
	repositories.ResetTokenRepository
	created     []models.PasswordResetToken
	issuedCount int64
	byToken     map[string]*models.PasswordResetToken
	consumed    []int
}

func (s *stubTokenRepo) Create(token *models.PasswordResetToken) error {
	token.ID = len(s.created) + 1
	s.created = append(s.created, *token)
	return nil
}

func (s *stubTokenRepo) CountIssuedSince(adminID int, since time.Time) (int64, error) {
	return s.issuedCount, nil
}

func (s *stubTokenRepo) FindByToken(token string) (*models.PasswordResetToken, error) {
	if reset, ok := s.byToken[token]; ok {
		return reset, nil
	}
	return nil, repositories.ErrResetTokenNotFound
}

func (s *stubTokenRepo) Consume(tokenID, adminID int, passwordHash string, logEntry *models.ActivityLog) error {
	s.consumed = append(s.consumed, tokenID)
	return nil
}

func linkedAdmin(tgID int64) *models.Admin {
	return &models.Admin{
		ID:         3,
		Email:      "admin@casting.uz",
		Name:       "Admin",
		IsActive:   true,
		TelegramID: &tgID,
	}
}

func newResetFixture(admin *models.Admin) (*AuthServiceImpl, *stubTokenRepo) {
	config.AppConfig = &config.Config{FrontendURL: "https://panel.casting.uz"}

	adminRepo := &stubAdminRepo{admins: map[string]*models.Admin{}}
	if admin != nil {
		adminRepo.admins[admin.Email] = admin
	}
	tokenRepo := &stubTokenRepo{byToken: map[string]*models.PasswordResetToken{}}

	svc := NewAuthService(adminRepo, tokenRepo, auth.NewCodeStore()).(*AuthServiceImpl)
	return svc, tokenRepo
}

func TestRequestPasswordReset_Success(t *testing.T) {
	admin := linkedAdmin(500)
	svc, tokenRepo := newResetFixture(admin)

	url, err := svc.RequestPasswordReset(admin.Email, 500)
	require.NoError(t, err)

	require.Len(t, tokenRepo.created, 1)
	token := tokenRepo.created[0]
	assert.Equal(t, admin.ID, token.AdminID)
	assert.Len(t, token.Token, 64, "32 байта в hex")
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), token.ExpiresAt, 5*time.Second)

	assert.Equal(t, "https://panel.casting.uz/reset-password?token="+token.Token, url)
}

func TestRequestPasswordReset_WrongChat(t *testing.T) {
	admin := linkedAdmin(500)
	svc, tokenRepo := newResetFixture(admin)

	// Заявка из чужого чата отклоняется
	_, err := svc.RequestPasswordReset(admin.Email, 999)
	assert.ErrorIs(t, err, apperrors.ErrResetNotEligible)
	assert.Empty(t, tokenRepo.created)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	svc, _ := newResetFixture(nil)

	_, err := svc.RequestPasswordReset("nobody@casting.uz", 500)
	assert.ErrorIs(t, err, apperrors.ErrResetNotEligible)
}

func TestRequestPasswordReset_InactiveAdmin(t *testing.T) {
	admin := linkedAdmin(500)
	admin.IsActive = false
	svc, _ := newResetFixture(admin)

	_, err := svc.RequestPasswordReset(admin.Email, 500)
	assert.ErrorIs(t, err, apperrors.ErrResetNotEligible)
}

func TestRequestPasswordReset_NotLinked(t *testing.T) {
	admin := linkedAdmin(500)
	admin.TelegramID = nil
	svc, _ := newResetFixture(admin)

	_, err := svc.RequestPasswordReset(admin.Email, 500)
	assert.ErrorIs(t, err, apperrors.ErrResetNotEligible)
}

func TestRequestPasswordReset_RateLimited(t *testing.T) {
	admin := linkedAdmin(500)
	svc, tokenRepo := newResetFixture(admin)
	tokenRepo.issuedCount = 3

	_, err := svc.RequestPasswordReset(admin.Email, 500)
	assert.ErrorIs(t, err, apperrors.ErrTooManyResetRequests)
}

func TestVerifyResetToken(t *testing.T) {
	svc, tokenRepo := newResetFixture(nil)

	tokenRepo.byToken["valid"] = &models.PasswordResetToken{
		ID: 1, AdminID: 3, Token: "valid", ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	tokenRepo.byToken["used"] = &models.PasswordResetToken{
		ID: 2, AdminID: 3, Token: "used", Used: true, ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	tokenRepo.byToken["expired"] = &models.PasswordResetToken{
		ID: 3, AdminID: 3, Token: "expired", ExpiresAt: time.Now().Add(-time.Minute),
	}

	assert.NoError(t, svc.VerifyResetToken("valid"))
	assert.ErrorIs(t, svc.VerifyResetToken("used"), apperrors.ErrResetTokenUsed)
	assert.ErrorIs(t, svc.VerifyResetToken("expired"), apperrors.ErrResetTokenExpired)
	assert.ErrorIs(t, svc.VerifyResetToken("missing"), apperrors.ErrInvalidResetToken)
}

func TestResetPassword_Success(t *testing.T) {
	svc, tokenRepo := newResetFixture(nil)

	tokenRepo.byToken["valid"] = &models.PasswordResetToken{
		ID: 1, AdminID: 3, Token: "valid", ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	err := svc.ResetPassword("valid", "new_password_123")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, tokenRepo.consumed)
}

func TestResetPassword_ShortPassword(t *testing.T) {
	svc, tokenRepo := newResetFixture(nil)

	err := svc.ResetPassword("anything", "123")
	assert.Error(t, err)
	assert.Empty(t, tokenRepo.consumed)
}

func TestLinkTelegram(t *testing.T) {
	admin := linkedAdmin(0)
	admin.TelegramID = nil
	svc, _ := newResetFixture(admin)

	adminRepo := svc.adminRepo.(*stubAdminRepo)
	adminRepo.byTgID = map[int64]*models.Admin{}

	code, err := svc.codes.Generate(admin.ID)
	require.NoError(t, err)

	got, err := svc.LinkTelegram(&dto.LinkTelegramRequest{
		Code:       code,
		TelegramID: 777,
	})
	require.NoError(t, err)
	assert.Equal(t, admin.Email, got.Email)
	assert.Equal(t, admin.ID, adminRepo.linkedAdminID)
	assert.Equal(t, int64(777), adminRepo.linkedTgID)

	// Код одноразовый
	_, err = svc.LinkTelegram(&dto.LinkTelegramRequest{Code: code, TelegramID: 777})
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationCode)
}

func TestLinkTelegram_ChatTakenByAnotherAdmin(t *testing.T) {
	admin := linkedAdmin(0)
	admin.TelegramID = nil
	svc, _ := newResetFixture(admin)

	other := int64(777)
	adminRepo := svc.adminRepo.(*stubAdminRepo)
	adminRepo.byTgID = map[int64]*models.Admin{
		777: {ID: 99, Email: "other@casting.uz", TelegramID: &other},
	}

	code, err := svc.codes.Generate(admin.ID)
	require.NoError(t, err)

	_, err = svc.LinkTelegram(&dto.LinkTelegramRequest{Code: code, TelegramID: 777})
	assert.ErrorIs(t, err, apperrors.ErrTelegramAlreadyLinked)
}
