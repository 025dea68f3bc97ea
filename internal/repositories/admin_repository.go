package repositories

import (
	"errors"
	"time"

	"casting_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyExists = errors.New("admin already exists")
)

type AdminRepository interface {
	FindByID(id int) (*models.Admin, error)
	FindByEmail(email string) (*models.Admin, error)
	FindByTelegramID(telegramID int64) (*models.Admin, error)
	FindAll(limit, offset int) ([]models.Admin, int64, error)
	Create(admin *models.Admin) error
	Update(admin *models.Admin) error
	UpdatePassword(adminID int, passwordHash string) error
	SetActive(adminID int, active bool) error
	LinkTelegram(adminID int, telegramID int64, username string) error
	UnlinkTelegram(adminID int) error
	Delete(adminID int) error
	CountAll() (int64, error)
	CountActive() (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
}

type AdminRepositoryImpl struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

func (r *AdminRepositoryImpl) FindByID(id int) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) FindByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) FindByTelegramID(telegramID int64) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.First(&admin, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) FindAll(limit, offset int) ([]models.Admin, int64, error) {
	var admins []models.Admin

	var total int64
	if err := r.db.Model(&models.Admin{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&admins).Error
	return admins, total, err
}

func (r *AdminRepositoryImpl) Create(admin *models.Admin) error {
	// Check if admin already exists
	var existing models.Admin
	if err := r.db.Where("email = ?", admin.Email).First(&existing).Error; err == nil {
		return ErrAdminAlreadyExists
	}

	return r.db.Create(admin).Error
}

func (r *AdminRepositoryImpl) Update(admin *models.Admin) error {
	result := r.db.Model(admin).Updates(map[string]interface{}{
		"email":      admin.Email,
		"name":       admin.Name,
		"role":       admin.Role,
		"is_active":  admin.IsActive,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepositoryImpl) UpdatePassword(adminID int, passwordHash string) error {
	result := r.db.Model(&models.Admin{}).Where("id = ?", adminID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepositoryImpl) SetActive(adminID int, active bool) error {
	result := r.db.Model(&models.Admin{}).Where("id = ?", adminID).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepositoryImpl) LinkTelegram(adminID int, telegramID int64, username string) error {
	result := r.db.Model(&models.Admin{}).Where("id = ?", adminID).Updates(map[string]interface{}{
		"telegram_id":       telegramID,
		"telegram_username": username,
		"updated_at":        time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepositoryImpl) UnlinkTelegram(adminID int) error {
	result := r.db.Model(&models.Admin{}).Where("id = ?", adminID).Updates(map[string]interface{}{
		"telegram_id":       nil,
		"telegram_username": nil,
		"updated_at":        time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepositoryImpl) Delete(adminID int) error {
	// Удаляем вместе с токенами сброса в одной транзакции
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("admin_id = ?", adminID).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", adminID).Delete(&models.Admin{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAdminNotFound
		}
		return nil
	})
}

func (r *AdminRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Count(&count).Error
	return count, err
}

func (r *AdminRepositoryImpl) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *AdminRepositoryImpl) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
