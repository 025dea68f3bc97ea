package services

import (
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"casting_backend/internal/models"
	"casting_backend/internal/repositories"
	"casting_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApplicantRepo struct {
	repositories.ApplicantRepository
	applicants []models.Applicant
	lastFilter repositories.ApplicantFilter
	err        error
}

func (s *stubApplicantRepo) FindAllFiltered(filter repositories.ApplicantFilter) ([]models.Applicant, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.applicants, nil
}

type stubLogRepo struct {
	repositories.ActivityLogRepository
	entries []models.ActivityLog
}

func (s *stubLogRepo) Create(entry *models.ActivityLog) error {
	s.entries = append(s.entries, *entry)
	return nil
}

func TestExportCSV_Empty(t *testing.T) {
	repo := &stubApplicantRepo{}
	svc := NewUserService(repo, &stubLogRepo{}, nil)

	data, filename, err := svc.ExportCSV(dto.UserFilterQuery{})
	require.NoError(t, err)

	assert.Equal(t, "No data available", string(data))
	assert.Equal(t, fmt.Sprintf("actors-%s.csv", time.Now().Format("2006-01-02")), filename)
}

func TestExportCSV_HeaderAndRows(t *testing.T) {
	created := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	repo := &stubApplicantRepo{
		applicants: []models.Applicant{
			{
				ID:          7,
				FullName:    "Anna Karimova",
				Age:         25,
				Gender:      models.GenderFemale,
				City:        "Samarqand",
				Phone:       "+998901234567",
				Price:       50,
				Experience:  models.ExperienceHas,
				Username:    "anna_k",
				SocialLinks: "@anna",
				Status:      models.ApplicantStatusActive,
				CreatedBy:   "telegram",
				CreatedAt:   created,
				Photos:      []models.Photo{{ID: 1}, {ID: 2}, {ID: 3}},
			},
		},
	}
	svc := NewUserService(repo, &stubLogRepo{}, nil)

	data, _, err := svc.ExportCSV(dto.UserFilterQuery{})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"ID", "Full Name", "Age", "Gender", "City", "Phone", "Price",
		"Experience", "Username", "Social Links", "Status", "Created By",
		"Created At", "Photo Count",
	}, records[0])

	assert.Equal(t, []string{
		"7", "Anna Karimova", "25", "FEMALE", "Samarqand", "+998901234567",
		"50", "HAS_EXP", "anna_k", "@anna", "ACTIVE", "telegram",
		"2026-03-15 10:30:00", "3",
	}, records[1])
}

func TestExportCSV_PassesFilter(t *testing.T) {
	repo := &stubApplicantRepo{}
	svc := NewUserService(repo, &stubLogRepo{}, nil)

	ageMin := 20
	_, _, err := svc.ExportCSV(dto.UserFilterQuery{
		Gender: "FEMALE",
		AgeMin: &ageMin,
		City:   "Toshkent",
	})
	require.NoError(t, err)

	assert.Equal(t, models.GenderFemale, repo.lastFilter.Gender)
	require.NotNil(t, repo.lastFilter.AgeMin)
	assert.Equal(t, 20, *repo.lastFilter.AgeMin)
	assert.Equal(t, "Toshkent", repo.lastFilter.City)
}
