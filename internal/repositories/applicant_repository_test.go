package repositories

import (
	"os"
	"testing"

	"casting_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testDB подключается к тестовой базе. Без TEST_DATABASE_URL
// тесты репозитория пропускаются.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set, skipping repository tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.PasswordResetToken{},
		&models.ActivityLog{},
		&models.City{},
		&models.Applicant{},
		&models.Photo{},
	))

	// Каждый тест работает в транзакции и откатывается
	tx := db.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })

	return tx
}

func int64Ptr(v int64) *int64 { return &v }

func TestApplicantRepository_UpsertByTelegramID(t *testing.T) {
	db := testDB(t)
	repo := NewApplicantRepository(db)

	first := &models.Applicant{
		TelegramID: int64Ptr(1001),
		Username:   "anna_k",
		FullName:   "Anna Karimova",
		Age:        25,
		Gender:     models.GenderFemale,
		City:       "Samarqand",
		Phone:      "+998901234567",
		Price:      50,
		Experience: models.ExperienceHas,
		Status:     models.ApplicantStatusActive,
		CreatedBy:  "telegram",
	}

	saved, err := repo.UpsertByTelegramID(first, []string{"a.jpg", "b.jpg"})
	require.NoError(t, err)
	require.Len(t, saved.Photos, 2)
	assert.True(t, saved.Photos[0].IsMain)
	assert.False(t, saved.Photos[1].IsMain)

	// Повторная регистрация из того же чата перезаписывает анкету и фото
	second := &models.Applicant{
		TelegramID: int64Ptr(1001),
		Username:   "anna_k",
		FullName:   "Anna K.",
		Age:        26,
		Gender:     models.GenderFemale,
		City:       "Toshkent",
		Phone:      "+998901234567",
		Price:      75,
		Experience: models.ExperienceHas,
		Status:     models.ApplicantStatusActive,
		CreatedBy:  "telegram",
	}

	updated, err := repo.UpsertByTelegramID(second, []string{"c.jpg", "d.jpg", "e.jpg"})
	require.NoError(t, err)

	assert.Equal(t, saved.ID, updated.ID, "анкета должна обновиться, а не дублироваться")
	assert.Equal(t, "Anna K.", updated.FullName)
	assert.Equal(t, 26, updated.Age)
	require.Len(t, updated.Photos, 3)
	assert.Equal(t, "c.jpg", updated.Photos[0].FilePath)
	assert.True(t, updated.Photos[0].IsMain)
}

func TestApplicantRepository_FindWithFilter(t *testing.T) {
	db := testDB(t)
	repo := NewApplicantRepository(db)

	seed := []models.Applicant{
		{TelegramID: int64Ptr(1), FullName: "Anna Karimova", Age: 25, Gender: models.GenderFemale, City: "Toshkent", Price: 50, Status: models.ApplicantStatusActive},
		{TelegramID: int64Ptr(2), FullName: "Bob Lee", Age: 40, Gender: models.GenderMale, City: "Toshkent", Price: 200, Status: models.ApplicantStatusActive},
		{TelegramID: int64Ptr(3), FullName: "Clara Kim", Age: 30, Gender: models.GenderFemale, City: "Samarqand", Price: 100, Status: models.ApplicantStatusHidden},
	}
	for i := range seed {
		require.NoError(t, repo.Create(&seed[i]))
	}

	ageMax := 35
	got, total, err := repo.FindWithFilter(ApplicantFilter{
		Gender:   models.GenderFemale,
		AgeMax:   &ageMax,
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, got, 2)
	for _, a := range got {
		assert.Equal(t, models.GenderFemale, a.Gender)
		assert.LessOrEqual(t, a.Age, 35)
	}

	// Поиск по подстроке имени, без учета регистра
	got, total, err = repo.FindWithFilter(ApplicantFilter{Search: "kari", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, "Anna Karimova", got[0].FullName)
}

func TestApplicantRepository_Delete(t *testing.T) {
	db := testDB(t)
	repo := NewApplicantRepository(db)

	applicant := &models.Applicant{
		TelegramID: int64Ptr(77), FullName: "To Delete", Age: 20,
		Gender: models.GenderMale, Status: models.ApplicantStatusActive,
	}
	require.NoError(t, repo.Create(applicant))
	require.NoError(t, repo.SavePhoto(&models.Photo{ApplicantID: applicant.ID, FilePath: "x.jpg"}))

	require.NoError(t, repo.Delete(applicant.ID))

	_, err := repo.FindByID(applicant.ID)
	assert.ErrorIs(t, err, ErrApplicantNotFound)

	assert.ErrorIs(t, repo.Delete(applicant.ID), ErrApplicantNotFound)
}
