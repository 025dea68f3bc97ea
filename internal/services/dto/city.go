package dto

// CreateCityRequest - добавление города в справочник
type CreateCityRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	NameEn    string `json:"nameEn"`
	NameRu    string `json:"nameRu"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	SortOrder int    `json:"sortOrder"`
}

// UpdateCityRequest - редактирование города
type UpdateCityRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2"`
	NameEn    *string `json:"nameEn"`
	NameRu    *string `json:"nameRu"`
	Region    *string `json:"region"`
	Country   *string `json:"country"`
	IsActive  *bool   `json:"isActive"`
	SortOrder *int    `json:"sortOrder"`
}
