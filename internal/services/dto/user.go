package dto

import (
	"time"

	"casting_backend/internal/models"
)

// UserFilterQuery - параметры фильтрации списка анкет
type UserFilterQuery struct {
	Gender     string   `form:"gender" validate:"omitempty,is-gender"`
	AgeMin     *int     `form:"ageMin" validate:"omitempty,min=0"`
	AgeMax     *int     `form:"ageMax" validate:"omitempty,min=0"`
	City       string   `form:"city"`
	PriceMin   *float64 `form:"priceMin" validate:"omitempty,min=0"`
	PriceMax   *float64 `form:"priceMax" validate:"omitempty,min=0"`
	Experience string   `form:"experience" validate:"omitempty,is-experience"`
	Status     string   `form:"status" validate:"omitempty,is-applicant-status"`
	Search     string   `form:"search"`
	Page       int      `form:"page" validate:"omitempty,min=1"`
	Limit      int      `form:"limit" validate:"omitempty,min=1,max=100"`
}

// CreateUserRequest - создание анкеты из админки.
// Принимается и как JSON, и как multipart-форма с фото.
type CreateUserRequest struct {
	FullName    string  `json:"fullName" form:"fullName" validate:"required,min=2"`
	Age         int     `json:"age" form:"age" validate:"required,gt=16"`
	Gender      string  `json:"gender" form:"gender" validate:"required,is-gender"`
	City        string  `json:"city" form:"city"`
	CityID      *int    `json:"cityId" form:"cityId"`
	Phone       string  `json:"phone" form:"phone" validate:"required"`
	Price       float64 `json:"price" form:"price" validate:"omitempty,min=0"`
	Experience  string  `json:"experience" form:"experience" validate:"omitempty,is-experience"`
	SocialLinks string  `json:"socialLinks" form:"socialLinks"`
	Status      string  `json:"status" form:"status" validate:"omitempty,is-applicant-status"`
}

// UpdateUserRequest - редактирование анкеты
type UpdateUserRequest struct {
	FullName    *string  `json:"fullName" validate:"omitempty,min=2"`
	Age         *int     `json:"age" validate:"omitempty,gt=16"`
	Gender      *string  `json:"gender" validate:"omitempty,is-gender"`
	City        *string  `json:"city"`
	CityID      *int     `json:"cityId"`
	Phone       *string  `json:"phone"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	Experience  *string  `json:"experience" validate:"omitempty,is-experience"`
	SocialLinks *string  `json:"socialLinks"`
	Status      *string  `json:"status" validate:"omitempty,is-applicant-status"`
}

// UpdateStatusRequest - смена видимости анкеты
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,is-applicant-status"`
}

// PhotoDTO - фото анкеты
type PhotoDTO struct {
	ID       int    `json:"id"`
	URL      string `json:"url"`
	IsMain   bool   `json:"isMain"`
	FilePath string `json:"-"`
}

// UserDTO - анкета в ответах API
type UserDTO struct {
	ID          int                    `json:"id"`
	TelegramID  *int64                 `json:"telegramId,omitempty"`
	Username    string                 `json:"username,omitempty"`
	FullName    string                 `json:"fullName"`
	Age         int                    `json:"age"`
	Gender      models.Gender          `json:"gender"`
	City        string                 `json:"city"`
	CityID      *int                   `json:"cityId,omitempty"`
	Phone       string                 `json:"phone"`
	Price       float64                `json:"price"`
	Experience  models.ExperienceLevel `json:"experience"`
	SocialLinks string                 `json:"socialLinks,omitempty"`
	Status      models.ApplicantStatus `json:"status"`
	CreatedBy   string                 `json:"createdBy"`
	Photos      []PhotoDTO             `json:"photos"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// PagedUsersResponse - страница списка анкет
type PagedUsersResponse struct {
	Data       []UserDTO `json:"data"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

// UserStatsResponse - агрегированная статистика по анкетам
type UserStatsResponse struct {
	Total              int64            `json:"total"`
	Active             int64            `json:"active"`
	Hidden             int64            `json:"hidden"`
	NewThisWeek        int64            `json:"newThisWeek"`
	NewThisMonth       int64            `json:"newThisMonth"`
	ByGender           map[string]int64 `json:"byGender"`
	ByExperience       map[string]int64 `json:"byExperience"`
	TopCities          []CityCountDTO   `json:"topCities"`
	AgeRanges          map[string]int64 `json:"ageRanges"`
	PriceRanges        map[string]int64 `json:"priceRanges"`
	AverageAge         float64          `json:"averageAge"`
	AveragePrice       float64          `json:"averagePrice"`
	RegistrationsByDay []DayCountDTO    `json:"registrationsByDay"`
}

type CityCountDTO struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

type DayCountDTO struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
