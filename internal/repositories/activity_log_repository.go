package repositories

import (
	"casting_backend/internal/models"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Create(entry *models.ActivityLog) error
	FindRecent(limit, offset int) ([]models.ActivityLog, int64, error)
	FindByAdmin(adminID int, limit, offset int) ([]models.ActivityLog, int64, error)
}

type ActivityLogRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &ActivityLogRepositoryImpl{db: db}
}

func (r *ActivityLogRepositoryImpl) Create(entry *models.ActivityLog) error {
	return r.db.Create(entry).Error
}

func (r *ActivityLogRepositoryImpl) FindRecent(limit, offset int) ([]models.ActivityLog, int64, error) {
	var logs []models.ActivityLog

	var total int64
	if err := r.db.Model(&models.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Admin").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}

func (r *ActivityLogRepositoryImpl) FindByAdmin(adminID int, limit, offset int) ([]models.ActivityLog, int64, error) {
	var logs []models.ActivityLog

	var total int64
	if err := r.db.Model(&models.ActivityLog{}).Where("admin_id = ?", adminID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("admin_id = ?", adminID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}
