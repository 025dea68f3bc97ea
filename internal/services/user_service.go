package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"casting_backend/internal/logger"
	"casting_backend/internal/models"
	"casting_backend/internal/repositories"
	"casting_backend/internal/services/dto"
	"casting_backend/internal/storage"
	"casting_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

// BotProfile - заполненная ботом анкета, готовая к сохранению
type BotProfile struct {
	TelegramID  int64
	Username    string
	FullName    string
	Age         int
	Gender      models.Gender
	City        string
	CityID      *int
	Phone       string
	Price       float64
	SocialLinks string
	PhotoPaths  []string
}

type UserService interface {
	List(query dto.UserFilterQuery) (*dto.PagedUsersResponse, error)
	Get(id int) (*dto.UserDTO, error)
	Create(req *dto.CreateUserRequest, photoPaths []string, adminID int) (*dto.UserDTO, error)
	Update(id int, req *dto.UpdateUserRequest, adminID int) (*dto.UserDTO, error)
	UpdateStatus(id int, status models.ApplicantStatus, adminID int) (*dto.UserDTO, error)
	Delete(id int, adminID int) error
	AddPhotos(id int, paths []string) error
	CreateOrUpdateFromBot(profile *BotProfile) (*models.Applicant, error)
	ExportCSV(query dto.UserFilterQuery) ([]byte, string, error)
	Stats() (*dto.UserStatsResponse, error)
}

type UserServiceImpl struct {
	applicantRepo repositories.ApplicantRepository
	logRepo       repositories.ActivityLogRepository
	store         storage.Storage
}

func NewUserService(
	applicantRepo repositories.ApplicantRepository,
	logRepo repositories.ActivityLogRepository,
	store storage.Storage,
) UserService {
	return &UserServiceImpl{
		applicantRepo: applicantRepo,
		logRepo:       logRepo,
		store:         store,
	}
}

func (s *UserServiceImpl) toFilter(query dto.UserFilterQuery) repositories.ApplicantFilter {
	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	return repositories.ApplicantFilter{
		Gender:     models.Gender(query.Gender),
		AgeMin:     query.AgeMin,
		AgeMax:     query.AgeMax,
		City:       query.City,
		PriceMin:   query.PriceMin,
		PriceMax:   query.PriceMax,
		Experience: models.ExperienceLevel(query.Experience),
		Status:     models.ApplicantStatus(query.Status),
		Search:     query.Search,
		Page:       page,
		PageSize:   limit,
	}
}

func (s *UserServiceImpl) toUserDTO(a *models.Applicant) dto.UserDTO {
	photos := make([]dto.PhotoDTO, 0, len(a.Photos))
	for _, p := range a.Photos {
		url, err := s.store.GetURL(context.Background(), p.FilePath)
		if err != nil {
			url = p.FilePath
		}
		photos = append(photos, dto.PhotoDTO{
			ID:       p.ID,
			URL:      url,
			IsMain:   p.IsMain,
			FilePath: p.FilePath,
		})
	}

	return dto.UserDTO{
		ID:          a.ID,
		TelegramID:  a.TelegramID,
		Username:    a.Username,
		FullName:    a.FullName,
		Age:         a.Age,
		Gender:      a.Gender,
		City:        a.City,
		CityID:      a.CityID,
		Phone:       a.Phone,
		Price:       a.Price,
		Experience:  a.Experience,
		SocialLinks: a.SocialLinks,
		Status:      a.Status,
		CreatedBy:   a.CreatedBy,
		Photos:      photos,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (s *UserServiceImpl) List(query dto.UserFilterQuery) (*dto.PagedUsersResponse, error) {
	criteria := s.toFilter(query)

	applicants, total, err := s.applicantRepo.FindWithFilter(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	data := make([]dto.UserDTO, 0, len(applicants))
	for i := range applicants {
		data = append(data, s.toUserDTO(&applicants[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(criteria.PageSize)))

	return &dto.PagedUsersResponse{
		Data:       data,
		Total:      total,
		Page:       criteria.Page,
		Limit:      criteria.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *UserServiceImpl) Get(id int) (*dto.UserDTO, error) {
	applicant, err := s.applicantRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicantNotFound) {
			return nil, apperrors.ErrApplicantNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	d := s.toUserDTO(applicant)
	return &d, nil
}

func (s *UserServiceImpl) Create(req *dto.CreateUserRequest, photoPaths []string, adminID int) (*dto.UserDTO, error) {
	status := models.ApplicantStatus(req.Status)
	if status == "" {
		status = models.ApplicantStatusActive
	}
	experience := models.ExperienceLevel(req.Experience)
	if experience == "" {
		experience = models.ExperienceNone
	}

	applicant := &models.Applicant{
		FullName:    req.FullName,
		Age:         req.Age,
		Gender:      models.Gender(req.Gender),
		City:        req.City,
		CityID:      req.CityID,
		Phone:       req.Phone,
		Price:       req.Price,
		Experience:  experience,
		SocialLinks: req.SocialLinks,
		Status:      status,
		CreatedBy:   models.CreatedByAdmin,
	}

	if err := s.applicantRepo.Create(applicant); err != nil {
		return nil, apperrors.InternalError(err)
	}

	for i, path := range photoPaths {
		photo := &models.Photo{
			ApplicantID: applicant.ID,
			FilePath:    path,
			IsMain:      i == 0,
		}
		if err := s.applicantRepo.SavePhoto(photo); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	s.logActivity(adminID, "user_created", applicant.ID, map[string]interface{}{"fullName": applicant.FullName})

	return s.Get(applicant.ID)
}

func (s *UserServiceImpl) Update(id int, req *dto.UpdateUserRequest, adminID int) (*dto.UserDTO, error) {
	applicant, err := s.applicantRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicantNotFound) {
			return nil, apperrors.ErrApplicantNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		applicant.FullName = *req.FullName
	}
	if req.Age != nil {
		applicant.Age = *req.Age
	}
	if req.Gender != nil {
		applicant.Gender = models.Gender(*req.Gender)
	}
	if req.City != nil {
		applicant.City = *req.City
	}
	if req.CityID != nil {
		applicant.CityID = req.CityID
	}
	if req.Phone != nil {
		applicant.Phone = *req.Phone
	}
	if req.Price != nil {
		applicant.Price = *req.Price
	}
	if req.Experience != nil {
		applicant.Experience = models.ExperienceLevel(*req.Experience)
	}
	if req.SocialLinks != nil {
		applicant.SocialLinks = *req.SocialLinks
	}
	if req.Status != nil {
		applicant.Status = models.ApplicantStatus(*req.Status)
	}

	if err := s.applicantRepo.Update(applicant); err != nil {
		if apperrors.Is(err, repositories.ErrApplicantNotFound) {
			return nil, apperrors.ErrApplicantNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	s.logActivity(adminID, "user_updated", id, nil)

	return s.Get(id)
}

func (s *UserServiceImpl) UpdateStatus(id int, status models.ApplicantStatus, adminID int) (*dto.UserDTO, error) {
	if err := s.applicantRepo.UpdateStatus(id, status); err != nil {
		if apperrors.Is(err, repositories.ErrApplicantNotFound) {
			return nil, apperrors.ErrApplicantNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	s.logActivity(adminID, "user_status_changed", id, map[string]interface{}{"status": status})

	return s.Get(id)
}

func (s *UserServiceImpl) Delete(id int, adminID int) error {
	applicant, err := s.applicantRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicantNotFound) {
			return apperrors.ErrApplicantNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.applicantRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrApplicantNotFound) {
			return apperrors.ErrApplicantNotFound
		}
		return apperrors.InternalError(err)
	}

	// Файлы чистим после удаления записей; ошибка не фатальна
	for _, photo := range applicant.Photos {
		if err := s.store.Delete(context.Background(), photo.FilePath); err != nil {
			logger.WithError(err).Warn("failed to delete photo file", "path", photo.FilePath)
		}
	}

	s.logActivity(adminID, "user_deleted", id, map[string]interface{}{"fullName": applicant.FullName})

	return nil
}

func (s *UserServiceImpl) AddPhotos(id int, paths []string) error {
	applicant, err := s.applicantRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicantNotFound) {
			return apperrors.ErrApplicantNotFound
		}
		return apperrors.InternalError(err)
	}

	hasMain := false
	for _, p := range applicant.Photos {
		if p.IsMain {
			hasMain = true
			break
		}
	}

	for i, path := range paths {
		photo := &models.Photo{
			ApplicantID: id,
			FilePath:    path,
			IsMain:      !hasMain && i == 0,
		}
		if err := s.applicantRepo.SavePhoto(photo); err != nil {
			return apperrors.InternalError(err)
		}
	}

	return nil
}

// CreateOrUpdateFromBot сохраняет анкету, собранную ботом. Повторная
// регистрация того же Telegram-аккаунта перезаписывает анкету и фото.
func (s *UserServiceImpl) CreateOrUpdateFromBot(profile *BotProfile) (*models.Applicant, error) {
	telegramID := profile.TelegramID
	applicant := &models.Applicant{
		TelegramID:  &telegramID,
		Username:    profile.Username,
		FullName:    profile.FullName,
		Age:         profile.Age,
		Gender:      profile.Gender,
		City:        profile.City,
		CityID:      profile.CityID,
		Phone:       profile.Phone,
		Price:       profile.Price,
		Experience:  models.ExperienceHas,
		SocialLinks: profile.SocialLinks,
		Status:      models.ApplicantStatusActive,
		CreatedBy:   models.CreatedByTelegram,
	}

	saved, err := s.applicantRepo.UpsertByTelegramID(applicant, profile.PhotoPaths)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("applicant saved from bot",
		"applicant_id", saved.ID,
		"telegram_id", telegramID,
		"photos", len(profile.PhotoPaths),
	)

	return saved, nil
}

// csvHeader - фиксированный порядок колонок экспорта
var csvHeader = []string{
	"ID", "Full Name", "Age", "Gender", "City", "Phone", "Price",
	"Experience", "Username", "Social Links", "Status", "Created By",
	"Created At", "Photo Count",
}

// ExportCSV выгружает все подходящие анкеты. Возвращает содержимое
// файла и имя вида actors-YYYY-MM-DD.csv.
func (s *UserServiceImpl) ExportCSV(query dto.UserFilterQuery) ([]byte, string, error) {
	criteria := s.toFilter(query)

	applicants, err := s.applicantRepo.FindAllFiltered(criteria)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	filename := fmt.Sprintf("actors-%s.csv", time.Now().Format("2006-01-02"))

	if len(applicants) == 0 {
		return []byte("No data available"), filename, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	for i := range applicants {
		a := &applicants[i]
		record := []string{
			strconv.Itoa(a.ID),
			a.FullName,
			strconv.Itoa(a.Age),
			string(a.Gender),
			a.City,
			a.Phone,
			strconv.FormatFloat(a.Price, 'f', -1, 64),
			string(a.Experience),
			a.Username,
			a.SocialLinks,
			string(a.Status),
			a.CreatedBy,
			a.CreatedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(len(a.Photos)),
		}
		if err := w.Write(record); err != nil {
			return nil, "", apperrors.InternalError(err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	return buf.Bytes(), filename, nil
}

func (s *UserServiceImpl) Stats() (*dto.UserStatsResponse, error) {
	stats := &dto.UserStatsResponse{}

	var err error
	if stats.Total, err = s.applicantRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Active, err = s.applicantRepo.CountByStatus(models.ApplicantStatusActive); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Hidden, err = s.applicantRepo.CountByStatus(models.ApplicantStatusHidden); err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	if stats.NewThisWeek, err = s.applicantRepo.CountCreatedSince(now.AddDate(0, 0, -7)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.NewThisMonth, err = s.applicantRepo.CountCreatedSince(now.AddDate(0, -1, 0)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if stats.ByGender, err = s.applicantRepo.CountByGender(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ByExperience, err = s.applicantRepo.CountByExperience(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	cities, err := s.applicantRepo.TopCities(10)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stats.TopCities = make([]dto.CityCountDTO, 0, len(cities))
	for _, c := range cities {
		stats.TopCities = append(stats.TopCities, dto.CityCountDTO{City: c.City, Count: c.Count})
	}

	ageRanges := [][2]int{{18, 25}, {26, 35}, {36, 45}, {46, 55}, {56, 200}}
	ageLabels := []string{"18-25", "26-35", "36-45", "46-55", "56+"}
	stats.AgeRanges = make(map[string]int64, len(ageRanges))
	for i, r := range ageRanges {
		count, err := s.applicantRepo.CountByAgeRange(r[0], r[1])
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		stats.AgeRanges[ageLabels[i]] = count
	}

	priceRanges := [][2]float64{{0, 500000}, {500000, 1000000}, {1000000, 2000000}, {2000000, 5000000}, {5000000, 0}}
	priceLabels := []string{"0-500k", "500k-1M", "1M-2M", "2M-5M", "5M+"}
	stats.PriceRanges = make(map[string]int64, len(priceRanges))
	for i, r := range priceRanges {
		count, err := s.applicantRepo.CountByPriceRange(r[0], r[1])
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		stats.PriceRanges[priceLabels[i]] = count
	}

	avgAge, avgPrice, err := s.applicantRepo.Averages()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stats.AverageAge = math.Round(avgAge*10) / 10
	stats.AveragePrice = math.Round(avgPrice)

	days, err := s.applicantRepo.RegistrationsByDay(30)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stats.RegistrationsByDay = make([]dto.DayCountDTO, 0, len(days))
	for _, d := range days {
		stats.RegistrationsByDay = append(stats.RegistrationsByDay, dto.DayCountDTO{
			Date:  d.Day.Format("2006-01-02"),
			Count: d.Count,
		})
	}

	return stats, nil
}

func (s *UserServiceImpl) logActivity(adminID int, action string, entityID int, details map[string]interface{}) {
	if adminID == 0 {
		return
	}

	entry := &models.ActivityLog{
		AdminID:    adminID,
		Action:     action,
		EntityType: "user",
		EntityID:   &entityID,
	}
	if details != nil {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(raw)
		}
	}

	if err := s.logRepo.Create(entry); err != nil {
		logger.WithError(err).Warn("failed to write activity log", "action", action)
	}
}
