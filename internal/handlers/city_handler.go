package handlers

import (
	"net/http"

	"casting_backend/internal/middleware"
	"casting_backend/internal/services"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type CityHandler struct {
	*BaseHandler
	cityService services.CityService
}

func NewCityHandler(base *BaseHandler, cityService services.CityService) *CityHandler {
	return &CityHandler{
		BaseHandler: base,
		cityService: cityService,
	}
}

// RegisterRoutes регистрирует маршруты справочника городов
func (h *CityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cities := rg.Group("/cities")
	cities.Use(middleware.AuthMiddleware())
	{
		cities.GET("", h.List)
		cities.GET("/search", h.Search)
		cities.GET("/stats", h.Stats)
		cities.GET("/:id", h.Get)
		cities.POST("", h.Create)
		cities.PUT("/:id", h.Update)
		cities.DELETE("/:id", h.Deactivate)
	}
}

func (h *CityHandler) List(c *gin.Context) {
	includeInactive := c.Query("all") == "true"

	cities, err := h.cityService.List(includeInactive)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cities)
}

func (h *CityHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing q query parameter"))
		return
	}

	cities, err := h.cityService.Search(query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, cities)
}

func (h *CityHandler) Stats(c *gin.Context) {
	stats, err := h.cityService.Stats()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *CityHandler) Get(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	city, err := h.cityService.Get(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, city)
}

func (h *CityHandler) Create(c *gin.Context) {
	var req dto.CreateCityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	city, err := h.cityService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, city)
}

func (h *CityHandler) Update(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	var req dto.UpdateCityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	city, err := h.cityService.Update(id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, city)
}

func (h *CityHandler) Deactivate(c *gin.Context) {
	id, err := ParseParamInt(c, "id")
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	if err := h.cityService.Deactivate(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "City deactivated"})
}
