package validator

import (
	"log"

	"casting_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - ошибка времени запуска,
			// приложение не должно стартовать.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-gender': Проверяет пол анкеты
	mustRegister("is-gender", validateGender)

	// 'is-applicant-status': Проверяет статус анкеты
	mustRegister("is-applicant-status", validateApplicantStatus)

	// 'is-experience': Проверяет уровень опыта
	mustRegister("is-experience", validateExperience)

	// 'is-admin-role': Проверяет роль администратора
	mustRegister("is-admin-role", validateAdminRole)
}

// --- Функции валидации ---

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}
	switch models.Gender(value) {
	case models.GenderMale, models.GenderFemale:
		return true
	default:
		return false
	}
}

func validateApplicantStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.ApplicantStatus(value) {
	case models.ApplicantStatusActive, models.ApplicantStatusHidden:
		return true
	default:
		return false
	}
}

func validateExperience(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ExperienceLevel(value) {
	case models.ExperienceNone, models.ExperienceHas:
		return true
	default:
		return false
	}
}

func validateAdminRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AdminRole(value) {
	case models.RoleAdmin, models.RoleSuperAdmin:
		return true
	default:
		return false
	}
}
