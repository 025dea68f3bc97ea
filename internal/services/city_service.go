package services

import (
	"casting_backend/internal/models"
	"casting_backend/internal/repositories"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"
)

type CityService interface {
	List(includeInactive bool) ([]models.City, error)
	Get(id int) (*models.City, error)
	Search(query string) ([]models.City, error)
	Stats() ([]repositories.CityStat, error)
	Create(req *dto.CreateCityRequest) (*models.City, error)
	Update(id int, req *dto.UpdateCityRequest) (*models.City, error)
	Deactivate(id int) error
}

type CityServiceImpl struct {
	cityRepo repositories.CityRepository
}

func NewCityService(cityRepo repositories.CityRepository) CityService {
	return &CityServiceImpl{cityRepo: cityRepo}
}

func (s *CityServiceImpl) List(includeInactive bool) ([]models.City, error) {
	var (
		cities []models.City
		err    error
	)
	if includeInactive {
		cities, err = s.cityRepo.FindAll()
	} else {
		cities, err = s.cityRepo.FindActive()
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return cities, nil
}

func (s *CityServiceImpl) Get(id int) (*models.City, error) {
	city, err := s.cityRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCityNotFound) {
			return nil, apperrors.ErrCityNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return city, nil
}

func (s *CityServiceImpl) Search(query string) ([]models.City, error) {
	// Слишком короткий запрос вернул бы весь справочник
	if len([]rune(query)) < 2 {
		return []models.City{}, nil
	}

	cities, err := s.cityRepo.Search(query)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return cities, nil
}

func (s *CityServiceImpl) Stats() ([]repositories.CityStat, error) {
	stats, err := s.cityRepo.WithApplicantCounts()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *CityServiceImpl) Create(req *dto.CreateCityRequest) (*models.City, error) {
	city := &models.City{
		Name:      req.Name,
		NameEn:    req.NameEn,
		NameRu:    req.NameRu,
		Region:    req.Region,
		Country:   req.Country,
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	if city.Country == "" {
		city.Country = "Uzbekistan"
	}

	if err := s.cityRepo.Create(city); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return city, nil
}

func (s *CityServiceImpl) Update(id int, req *dto.UpdateCityRequest) (*models.City, error) {
	city, err := s.cityRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCityNotFound) {
			return nil, apperrors.ErrCityNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		city.Name = *req.Name
	}
	if req.NameEn != nil {
		city.NameEn = *req.NameEn
	}
	if req.NameRu != nil {
		city.NameRu = *req.NameRu
	}
	if req.Region != nil {
		city.Region = *req.Region
	}
	if req.Country != nil {
		city.Country = *req.Country
	}
	if req.IsActive != nil {
		city.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		city.SortOrder = *req.SortOrder
	}

	if err := s.cityRepo.Update(city); err != nil {
		if apperrors.Is(err, repositories.ErrCityNotFound) {
			return nil, apperrors.ErrCityNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return city, nil
}

func (s *CityServiceImpl) Deactivate(id int) error {
	if err := s.cityRepo.SetActive(id, false); err != nil {
		if apperrors.Is(err, repositories.ErrCityNotFound) {
			return apperrors.ErrCityNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
