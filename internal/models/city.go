package models

import "time"

// City - справочник городов, используется ботом (inline-выбор)
// и фильтрами панели администратора.
type City struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	NameEn    string    `json:"nameEn,omitempty"`
	NameRu    string    `json:"nameRu,omitempty"`
	Region    string    `json:"region,omitempty"`
	Country   string    `gorm:"default:'Uzbekistan'" json:"country"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	SortOrder int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Applicants []Applicant `gorm:"foreignKey:CityID" json:"-"`
}

// DisplayName возвращает русское имя, если оно задано (так города
// показываются в боте).
func (c *City) DisplayName() string {
	if c.NameRu != "" {
		return c.NameRu
	}
	return c.Name
}
