package repositories

import (
	"errors"

	"casting_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCityNotFound = errors.New("city not found")

type CityRepository interface {
	FindByID(id int) (*models.City, error)
	FindActive() ([]models.City, error)
	FindAll() ([]models.City, error)
	Search(query string) ([]models.City, error)
	WithApplicantCounts() ([]CityStat, error)
	Create(city *models.City) error
	Update(city *models.City) error
	SetActive(id int, active bool) error
}

type CityRepositoryImpl struct {
	db *gorm.DB
}

type CityStat struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ApplicantCount int64  `json:"userCount"`
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &CityRepositoryImpl{db: db}
}

func (r *CityRepositoryImpl) FindByID(id int) (*models.City, error) {
	var city models.City
	err := r.db.First(&city, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, err
	}
	return &city, nil
}

func (r *CityRepositoryImpl) FindActive() ([]models.City, error) {
	var cities []models.City
	err := r.db.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").Find(&cities).Error
	return cities, err
}

func (r *CityRepositoryImpl) FindAll() ([]models.City, error) {
	var cities []models.City
	err := r.db.Order("sort_order ASC, name ASC").Find(&cities).Error
	return cities, err
}

func (r *CityRepositoryImpl) Search(query string) ([]models.City, error) {
	var cities []models.City
	search := "%" + query + "%"
	err := r.db.Where("name ILIKE ? OR name_en ILIKE ? OR name_ru ILIKE ?", search, search, search).
		Order("sort_order ASC, name ASC").Find(&cities).Error
	return cities, err
}

// WithApplicantCounts возвращает города с числом привязанных анкет
func (r *CityRepositoryImpl) WithApplicantCounts() ([]CityStat, error) {
	var stats []CityStat
	err := r.db.Model(&models.City{}).
		Select("cities.id, cities.name, COUNT(applicants.id) as applicant_count").
		Joins("LEFT JOIN applicants ON applicants.city_id = cities.id").
		Group("cities.id, cities.name").
		Order("applicant_count DESC").
		Find(&stats).Error
	return stats, err
}

func (r *CityRepositoryImpl) Create(city *models.City) error {
	return r.db.Create(city).Error
}

func (r *CityRepositoryImpl) Update(city *models.City) error {
	result := r.db.Model(city).Updates(map[string]interface{}{
		"name":       city.Name,
		"name_en":    city.NameEn,
		"name_ru":    city.NameRu,
		"region":     city.Region,
		"country":    city.Country,
		"is_active":  city.IsActive,
		"sort_order": city.SortOrder,
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCityNotFound
	}
	return nil
}

func (r *CityRepositoryImpl) SetActive(id int, active bool) error {
	result := r.db.Model(&models.City{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCityNotFound
	}
	return nil
}
