package models

type AdminRole string
type ApplicantStatus string
type Gender string
type ExperienceLevel string

const (
	RoleAdmin      AdminRole = "ADMIN"
	RoleSuperAdmin AdminRole = "SUPER_ADMIN"

	ApplicantStatusActive ApplicantStatus = "ACTIVE"
	ApplicantStatusHidden ApplicantStatus = "HIDDEN"

	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"

	ExperienceNone ExperienceLevel = "NO_EXP"
	ExperienceHas  ExperienceLevel = "HAS_EXP"

	// Кто создал анкету
	CreatedByTelegram = "telegram"
	CreatedByAdmin    = "admin"
)
