package repositories

import (
	"errors"
	"time"

	"casting_backend/internal/models"

	"gorm.io/gorm"
)

var ErrResetTokenNotFound = errors.New("reset token not found")

type ResetTokenRepository interface {
	Create(token *models.PasswordResetToken) error
	FindByToken(token string) (*models.PasswordResetToken, error)
	CountIssuedSince(adminID int, since time.Time) (int64, error)
	// Consume помечает токен использованным и меняет пароль админа
	// в одной транзакции
	Consume(tokenID int, adminID int, passwordHash string, logEntry *models.ActivityLog) error
	DeleteExpired() (int64, error)
}

type ResetTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewResetTokenRepository(db *gorm.DB) ResetTokenRepository {
	return &ResetTokenRepositoryImpl{db: db}
}

func (r *ResetTokenRepositoryImpl) Create(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

func (r *ResetTokenRepositoryImpl) FindByToken(token string) (*models.PasswordResetToken, error) {
	var resetToken models.PasswordResetToken
	err := r.db.Preload("Admin").First(&resetToken, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenNotFound
		}
		return nil, err
	}
	return &resetToken, nil
}

func (r *ResetTokenRepositoryImpl) CountIssuedSince(adminID int, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.PasswordResetToken{}).
		Where("admin_id = ? AND created_at >= ?", adminID, since).
		Count(&count).Error
	return count, err
}

func (r *ResetTokenRepositoryImpl) Consume(tokenID int, adminID int, passwordHash string, logEntry *models.ActivityLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// used = false в условии защищает от двойного использования
		result := tx.Model(&models.PasswordResetToken{}).
			Where("id = ? AND used = ?", tokenID, false).
			Update("used", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrResetTokenNotFound
		}

		if err := tx.Model(&models.Admin{}).Where("id = ?", adminID).Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error; err != nil {
			return err
		}

		if logEntry != nil {
			if err := tx.Create(logEntry).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *ResetTokenRepositoryImpl) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now()).Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}
