package services

import (
	"encoding/json"
	"math"
	"time"

	"casting_backend/internal/auth"
	"casting_backend/internal/logger"
	"casting_backend/internal/models"
	"casting_backend/internal/repositories"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type AdminService interface {
	List(page, limit int) (*dto.PagedAdminsResponse, error)
	Get(id int) (*dto.AdminDTO, error)
	Create(req *dto.CreateAdminRequest, actorID int) (*dto.AdminDTO, error)
	Update(id int, req *dto.UpdateAdminRequest, actorID int) (*dto.AdminDTO, error)
	ChangePassword(id int, newPassword string, actorID int) error
	SetActive(id int, active bool, actorID int) (*dto.AdminDTO, error)
	Delete(id, actorID int) error
	ActivityLogs(adminID *int, page, limit int) (*dto.PagedActivityLogsResponse, error)
	Statistics() (*dto.AdminStatsResponse, error)
}

type AdminServiceImpl struct {
	adminRepo     repositories.AdminRepository
	applicantRepo repositories.ApplicantRepository
	logRepo       repositories.ActivityLogRepository
}

func NewAdminService(
	adminRepo repositories.AdminRepository,
	applicantRepo repositories.ApplicantRepository,
	logRepo repositories.ActivityLogRepository,
) AdminService {
	return &AdminServiceImpl{
		adminRepo:     adminRepo,
		applicantRepo: applicantRepo,
		logRepo:       logRepo,
	}
}

func (s *AdminServiceImpl) List(page, limit int) (*dto.PagedAdminsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	admins, total, err := s.adminRepo.FindAll(limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	data := make([]dto.AdminDTO, 0, len(admins))
	for i := range admins {
		data = append(data, dto.ToAdminDTO(&admins[i]))
	}

	return &dto.PagedAdminsResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *AdminServiceImpl) Get(id int) (*dto.AdminDTO, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	d := dto.ToAdminDTO(admin)
	return &d, nil
}

func (s *AdminServiceImpl) Create(req *dto.CreateAdminRequest, actorID int) (*dto.AdminDTO, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	role := models.AdminRole(req.Role)
	if role == "" {
		role = models.RoleAdmin
	}

	admin := &models.Admin{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
		IsActive:     true,
	}

	if err := s.adminRepo.Create(admin); err != nil {
		if apperrors.Is(err, repositories.ErrAdminAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	s.logActivity(actorID, "admin_created", admin.ID, map[string]interface{}{"email": admin.Email})

	d := dto.ToAdminDTO(admin)
	return &d, nil
}

func (s *AdminServiceImpl) Update(id int, req *dto.UpdateAdminRequest, actorID int) (*dto.AdminDTO, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Email != nil {
		admin.Email = *req.Email
	}
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Role != nil {
		admin.Role = models.AdminRole(*req.Role)
	}
	if req.IsActive != nil {
		admin.IsActive = *req.IsActive
	}

	if err := s.adminRepo.Update(admin); err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	s.logActivity(actorID, "admin_updated", id, nil)

	d := dto.ToAdminDTO(admin)
	return &d, nil
}

func (s *AdminServiceImpl) ChangePassword(id int, newPassword string, actorID int) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.adminRepo.UpdatePassword(id, hash); err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return apperrors.ErrAdminNotFound
		}
		return apperrors.InternalError(err)
	}

	s.logActivity(actorID, "admin_password_changed", id, nil)
	return nil
}

func (s *AdminServiceImpl) SetActive(id int, active bool, actorID int) (*dto.AdminDTO, error) {
	if err := s.adminRepo.SetActive(id, active); err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	action := "admin_deactivated"
	if active {
		action = "admin_activated"
	}
	s.logActivity(actorID, action, id, nil)

	return s.Get(id)
}

func (s *AdminServiceImpl) Delete(id, actorID int) error {
	if id == actorID {
		return apperrors.NewBadRequestError("You cannot delete your own account")
	}

	if err := s.adminRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrAdminNotFound) {
			return apperrors.ErrAdminNotFound
		}
		return apperrors.InternalError(err)
	}

	s.logActivity(actorID, "admin_deleted", id, nil)
	return nil
}

func (s *AdminServiceImpl) ActivityLogs(adminID *int, page, limit int) (*dto.PagedActivityLogsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	offset := (page - 1) * limit

	var (
		logs  []models.ActivityLog
		total int64
		err   error
	)
	if adminID != nil {
		logs, total, err = s.logRepo.FindByAdmin(*adminID, limit, offset)
	} else {
		logs, total, err = s.logRepo.FindRecent(limit, offset)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	data := make([]dto.ActivityLogDTO, 0, len(logs))
	for i := range logs {
		data = append(data, dto.ToActivityLogDTO(&logs[i]))
	}

	return &dto.PagedActivityLogsResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *AdminServiceImpl) Statistics() (*dto.AdminStatsResponse, error) {
	stats := &dto.AdminStatsResponse{}

	var err error
	if stats.TotalAdmins, err = s.adminRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ActiveAdmins, err = s.adminRepo.CountActive(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.TotalUsers, err = s.applicantRepo.CountAll(); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.ActiveUsers, err = s.applicantRepo.CountByStatus(models.ApplicantStatusActive); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.UsersLast7Days, err = s.applicantRepo.CountCreatedSince(time.Now().AddDate(0, 0, -7)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return stats, nil
}

func (s *AdminServiceImpl) logActivity(actorID int, action string, entityID int, details map[string]interface{}) {
	if actorID == 0 {
		return
	}

	entry := &models.ActivityLog{
		AdminID:    actorID,
		Action:     action,
		EntityType: "admin",
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
