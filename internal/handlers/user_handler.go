package handlers

import (
	"fmt"
	"net/http"

	"casting_backend/internal/middleware"
	"casting_backend/internal/models"
	"casting_backend/internal/services"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	fileService services.FileService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, fileService services.FileService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		fileService: fileService,
	}
}

// RegisterRoutes регистрирует маршруты анкет
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("", h.List)
		users.GET("/export", h.Export)
		users.GET("/stats", h.Stats)
		users.GET("/:id", h.Get)
		users.POST("", h.Create)
		users.PUT("/:id", h.Update)
		users.PATCH("/:id/status", h.UpdateStatus)
		users.POST("/:id/photos", h.UploadPhotos)
		users.DELETE("/:id", h.Delete)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	var query dto.UserFilterQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	resp, err := h.userService.List(query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// Фото из multipart-формы (опционально)
	var photoPaths []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, file := range form.File["photos"] {
			path, err := h.fileService.SaveUpload(c.Request.Context(), file)
			if err != nil {
				h.HandleServiceError(c, err)
				return
			}
			photoPaths = append(photoPaths, path)
		}
	}

	user, err := h.userService.Create(&req, photoPaths, middleware.GetAdminID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.Update(id, &req, middleware.GetAdminID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.UpdateStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateStatus(id, models.ApplicantStatus(req.Status), middleware.GetAdminID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UploadPhotos(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Expected multipart form with photos"))
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No photos provided"))
		return
	}

	var paths []string
	for _, file := range files {
		path, err := h.fileService.SaveUpload(c.Request.Context(), file)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		paths = append(paths, path)
	}

	if err := h.userService.AddPhotos(id, paths); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"uploaded": len(paths)})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.userService.Delete(id, middleware.GetAdminID(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *UserHandler) Export(c *gin.Context) {
	var query dto.UserFilterQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	content, filename, err := h.userService.ExportCSV(query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", content)
}

func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
