package handlers

import (
	"net/http"

	"casting_backend/internal/middleware"
	"casting_backend/internal/models"
	"casting_backend/internal/services"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		adminService: adminService,
	}
}

// RegisterRoutes регистрирует маршруты управления администраторами.
// Все операции доступны только SUPER_ADMIN.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(models.RoleSuperAdmin))
	{
		admin.GET("", h.List)
		admin.GET("/activity-logs", h.ActivityLogs)
		admin.GET("/statistics", h.Statistics)
		admin.GET("/:id", h.Get)
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.PATCH("/:id/password", h.ChangePassword)
		admin.PATCH("/:id/toggle-active", h.ToggleActive)
		admin.DELETE("/:id", h.Delete)
	}
}

func (h *AdminHandler) List(c *gin.Context) {
	page, limit := ParsePagination(c)

	resp, err := h.adminService.List(page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) Get(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	admin, err := h.adminService.Get(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) Create(c *gin.Context) {
	var req dto.CreateAdminRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	admin, err := h.adminService.Create(&req, middleware.GetAdminID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, admin)
}

func (h *AdminHandler) Update(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.UpdateAdminRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	admin, err := h.adminService.Update(id, &req, middleware.GetAdminID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) ChangePassword(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.adminService.ChangePassword(id, req.NewPassword, middleware.GetAdminID(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

func (h *AdminHandler) ToggleActive(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	current, err := h.adminService.Get(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	admin, err := h.adminService.SetActive(id, !current.IsActive, middleware.GetAdminID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.adminService.Delete(id, middleware.GetAdminID(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted"})
}

func (h *AdminHandler) ActivityLogs(c *gin.Context) {
	page, limit := ParsePagination(c)

	var adminID *int
	if v := ParseQueryInt(c, "adminId", 0); v > 0 {
		adminID = &v
	}

	resp, err := h.adminService.ActivityLogs(adminID, page, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) Statistics(c *gin.Context) {
	stats, err := h.adminService.Statistics()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
