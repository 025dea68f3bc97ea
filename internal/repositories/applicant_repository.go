package repositories

import (
	"errors"
	"time"

	"casting_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicantNotFound = errors.New("applicant not found")

type ApplicantRepository interface {
	FindByID(id int) (*models.Applicant, error)
	FindByTelegramID(telegramID int64) (*models.Applicant, error)
	FindWithFilter(criteria ApplicantFilter) ([]models.Applicant, int64, error)
	FindAllFiltered(criteria ApplicantFilter) ([]models.Applicant, error)
	Create(applicant *models.Applicant) error
	Update(applicant *models.Applicant) error
	UpdateStatus(id int, status models.ApplicantStatus) error
	Delete(id int) error
	UpsertByTelegramID(applicant *models.Applicant, photoPaths []string) (*models.Applicant, error)
	SavePhoto(photo *models.Photo) error
	DeletePhotos(applicantID int) error

	CountAll() (int64, error)
	CountByStatus(status models.ApplicantStatus) (int64, error)
	CountByGender() (map[string]int64, error)
	CountByExperience() (map[string]int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	TopCities(limit int) ([]CityCount, error)
	CountByAgeRange(min, max int) (int64, error)
	CountByPriceRange(min, max float64) (int64, error)
	Averages() (avgAge float64, avgPrice float64, err error)
	RegistrationsByDay(days int) ([]DayCount, error)
}

type ApplicantRepositoryImpl struct {
	db *gorm.DB
}

type ApplicantFilter struct {
	Gender     models.Gender
	AgeMin     *int
	AgeMax     *int
	City       string
	PriceMin   *float64
	PriceMax   *float64
	Experience models.ExperienceLevel
	Status     models.ApplicantStatus
	Search     string
	Page       int
	PageSize   int
}

type CityCount struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &ApplicantRepositoryImpl{db: db}
}

func (r *ApplicantRepositoryImpl) FindByID(id int) (*models.Applicant, error) {
	var applicant models.Applicant
	err := r.db.Preload("Photos").Preload("CityModel").First(&applicant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return &applicant, nil
}

func (r *ApplicantRepositoryImpl) FindByTelegramID(telegramID int64) (*models.Applicant, error) {
	var applicant models.Applicant
	err := r.db.Preload("Photos").First(&applicant, "telegram_id = ?", telegramID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return &applicant, nil
}

func (r *ApplicantRepositoryImpl) filteredQuery(criteria ApplicantFilter) *gorm.DB {
	query := r.db.Model(&models.Applicant{})

	if criteria.Gender != "" {
		query = query.Where("gender = ?", criteria.Gender)
	}
	if criteria.AgeMin != nil {
		query = query.Where("age >= ?", *criteria.AgeMin)
	}
	if criteria.AgeMax != nil {
		query = query.Where("age <= ?", *criteria.AgeMax)
	}
	if criteria.City != "" {
		query = query.Where("city ILIKE ?", "%"+criteria.City+"%")
	}
	if criteria.PriceMin != nil {
		query = query.Where("price >= ?", *criteria.PriceMin)
	}
	if criteria.PriceMax != nil {
		query = query.Where("price <= ?", *criteria.PriceMax)
	}
	if criteria.Experience != "" {
		query = query.Where("experience = ?", criteria.Experience)
	}
	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Search != "" {
		search := "%" + criteria.Search + "%"
		query = query.Where("full_name ILIKE ? OR username ILIKE ? OR phone ILIKE ?", search, search, search)
	}

	return query
}

func (r *ApplicantRepositoryImpl) FindWithFilter(criteria ApplicantFilter) ([]models.Applicant, int64, error) {
	var applicants []models.Applicant
	query := r.filteredQuery(criteria)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := criteria.PageSize
	offset := (criteria.Page - 1) * criteria.PageSize

	err := query.Preload("Photos").Preload("CityModel").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&applicants).Error

	return applicants, total, err
}

// FindAllFiltered возвращает все подходящие анкеты без пагинации (для экспорта)
func (r *ApplicantRepositoryImpl) FindAllFiltered(criteria ApplicantFilter) ([]models.Applicant, error) {
	var applicants []models.Applicant
	err := r.filteredQuery(criteria).Preload("Photos").
		Order("created_at DESC").Find(&applicants).Error
	return applicants, err
}

func (r *ApplicantRepositoryImpl) Create(applicant *models.Applicant) error {
	return r.db.Create(applicant).Error
}

func (r *ApplicantRepositoryImpl) Update(applicant *models.Applicant) error {
	result := r.db.Model(applicant).Updates(map[string]interface{}{
		"full_name":    applicant.FullName,
		"age":          applicant.Age,
		"gender":       applicant.Gender,
		"city":         applicant.City,
		"city_id":      applicant.CityID,
		"phone":        applicant.Phone,
		"price":        applicant.Price,
		"experience":   applicant.Experience,
		"social_links": applicant.SocialLinks,
		"status":       applicant.Status,
		"updated_at":   time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicantNotFound
	}
	return nil
}

func (r *ApplicantRepositoryImpl) UpdateStatus(id int, status models.ApplicantStatus) error {
	result := r.db.Model(&models.Applicant{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicantNotFound
	}
	return nil
}

func (r *ApplicantRepositoryImpl) Delete(id int) error {
	// Фото удаляем явно, не полагаясь только на каскад в схеме
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("applicant_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Applicant{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrApplicantNotFound
		}
		return nil
	})
}

// UpsertByTelegramID создает анкету или перезаписывает существующую с тем же
// telegram_id. Старые фото заменяются новыми, первое фото помечается главным.
func (r *ApplicantRepositoryImpl) UpsertByTelegramID(applicant *models.Applicant, photoPaths []string) (*models.Applicant, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Applicant
		findErr := tx.Where("telegram_id = ?", applicant.TelegramID).First(&existing).Error

		switch {
		case findErr == nil:
			applicant.ID = existing.ID
			applicant.CreatedAt = existing.CreatedAt
			if err := tx.Model(&existing).Updates(map[string]interface{}{
				"username":     applicant.Username,
				"full_name":    applicant.FullName,
				"age":          applicant.Age,
				"gender":       applicant.Gender,
				"city":         applicant.City,
				"city_id":      applicant.CityID,
				"phone":        applicant.Phone,
				"price":        applicant.Price,
				"experience":   applicant.Experience,
				"social_links": applicant.SocialLinks,
				"status":       applicant.Status,
				"created_by":   applicant.CreatedBy,
				"updated_at":   time.Now(),
			}).Error; err != nil {
				return err
			}
			if err := tx.Where("applicant_id = ?", existing.ID).Delete(&models.Photo{}).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(applicant).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		for i, path := range photoPaths {
			photo := models.Photo{
				ApplicantID: applicant.ID,
				FilePath:    path,
				IsMain:      i == 0,
			}
			if err := tx.Create(&photo).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(applicant.ID)
}

func (r *ApplicantRepositoryImpl) SavePhoto(photo *models.Photo) error {
	return r.db.Create(photo).Error
}

func (r *ApplicantRepositoryImpl) DeletePhotos(applicantID int) error {
	return r.db.Where("applicant_id = ?", applicantID).Delete(&models.Photo{}).Error
}

// Statistics

func (r *ApplicantRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Applicant{}).Count(&count).Error
	return count, err
}

func (r *ApplicantRepositoryImpl) CountByStatus(status models.ApplicantStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Applicant{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ApplicantRepositoryImpl) CountByGender() (map[string]int64, error) {
	type row struct {
		Gender string
		Count  int64
	}

	var rows []row
	err := r.db.Model(&models.Applicant{}).
		Select("gender, COUNT(*) as count").
		Group("gender").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64)
	for _, rw := range rows {
		result[rw.Gender] = rw.Count
	}
	return result, nil
}

func (r *ApplicantRepositoryImpl) CountByExperience() (map[string]int64, error) {
	type row struct {
		Experience string
		Count      int64
	}

	var rows []row
	err := r.db.Model(&models.Applicant{}).
		Select("experience, COUNT(*) as count").
		Group("experience").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64)
	for _, rw := range rows {
		result[rw.Experience] = rw.Count
	}
	return result, nil
}

func (r *ApplicantRepositoryImpl) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Applicant{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *ApplicantRepositoryImpl) TopCities(limit int) ([]CityCount, error) {
	var rows []CityCount
	err := r.db.Model(&models.Applicant{}).
		Select("city, COUNT(*) as count").
		Where("city != ''").
		Group("city").
		Order("count DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *ApplicantRepositoryImpl) CountByAgeRange(min, max int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Applicant{}).
		Where("age BETWEEN ? AND ?", min, max).
		Count(&count).Error
	return count, err
}

func (r *ApplicantRepositoryImpl) CountByPriceRange(min, max float64) (int64, error) {
	var count int64
	query := r.db.Model(&models.Applicant{}).Where("price >= ?", min)
	if max > 0 {
		query = query.Where("price < ?", max)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *ApplicantRepositoryImpl) Averages() (float64, float64, error) {
	type row struct {
		AvgAge   float64
		AvgPrice float64
	}

	var rw row
	err := r.db.Model(&models.Applicant{}).
		Select("COALESCE(AVG(age), 0) as avg_age, COALESCE(AVG(price), 0) as avg_price").
		Scan(&rw).Error
	return rw.AvgAge, rw.AvgPrice, err
}

func (r *ApplicantRepositoryImpl) RegistrationsByDay(days int) ([]DayCount, error) {
	var rows []DayCount
	since := time.Now().AddDate(0, 0, -days)

	err := r.db.Model(&models.Applicant{}).
		Select("DATE_TRUNC('day', created_at) as day, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Find(&rows).Error
	return rows, err
}
