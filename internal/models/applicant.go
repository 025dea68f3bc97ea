package models

import "time"

// Applicant - анкета кандидата на кастинг. Создается либо ботом
// (TelegramID уникален), либо вручную из панели администратора.
type Applicant struct {
	ID          int             `gorm:"primaryKey" json:"id"`
	TelegramID  *int64          `gorm:"uniqueIndex" json:"telegramId,omitempty"`
	Username    string          `json:"username"`
	FullName    string          `gorm:"not null" json:"fullName"`
	Age         int             `gorm:"not null" json:"age"`
	Gender      Gender          `gorm:"type:varchar(10);not null" json:"gender"`
	City        string          `json:"city"`
	CityID      *int            `gorm:"index" json:"cityId,omitempty"`
	Phone       string          `json:"phone"`
	Price       float64         `json:"price"`
	Experience  ExperienceLevel `gorm:"type:varchar(10);default:'NO_EXP'" json:"experience"`
	SocialLinks string          `json:"socialLinks"`
	Status      ApplicantStatus `gorm:"type:varchar(10);default:'ACTIVE'" json:"status"`
	CreatedBy   string          `gorm:"default:'telegram'" json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Photos    []Photo `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"photos"`
	CityModel *City   `gorm:"foreignKey:CityID" json:"cityModel,omitempty"`
}

type Photo struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	ApplicantID int       `gorm:"not null;index" json:"applicantId"`
	FilePath    string    `gorm:"not null" json:"filePath"`
	IsMain      bool      `gorm:"default:false" json:"isMain"`
	CreatedAt   time.Time `json:"createdAt"`
}
