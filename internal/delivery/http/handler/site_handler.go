package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/pkg/errors"
	"github.com/heritage-catalog/internal/pkg/utils"
	"github.com/heritage-catalog/internal/usecase"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// SiteHandler - обработчик для исторических мест и поиска по ним
type SiteHandler struct {
	siteUC   *usecase.SiteUseCase
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewSiteHandler - создание нового SiteHandler
func NewSiteHandler(siteUC *usecase.SiteUseCase, searchUC *usecase.SearchUseCase, logger *zap.Logger) *SiteHandler {
	return &SiteHandler{
		siteUC:   siteUC,
		searchUC: searchUC,
		logger:   logger,
	}
}

// Create godoc
// @Summary Создание исторического места
// @Description Создаёт место. Имя уникально, координаты в градусах WGS84.
// @Tags Sites
// @Accept json
// @Produce json
// @Param request body dto.CreateSiteRequest true "Историческое место"
// @Success 201 {object} utils.SuccessResponse{data=domain.Site}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sites [post]
func (h *SiteHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSiteRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	site, err := h.siteUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, site)
}

// Get godoc
// @Summary Получение места по ID
// @Tags Sites
// @Produce json
// @Param id path int true "ID места"
// @Success 200 {object} utils.SuccessResponse{data=domain.Site}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sites/{id} [get]
func (h *SiteHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	site, err := h.siteUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, site, nil)
}

// List godoc
// @Summary Все исторические места
// @Tags Sites
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Site}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sites [get]
func (h *SiteHandler) List(c *fiber.Ctx) error {
	sites, err := h.siteUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, sites, &utils.Meta{Total: len(sites)})
}

// Update godoc
// @Summary Частичное обновление места
// @Description Меняются только переданные поля; неизвестные поля отклоняются.
// @Tags Sites
// @Accept json
// @Produce json
// @Param id path int true "ID места"
// @Param request body dto.UpdateSiteRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.Site}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sites/{id} [put]
func (h *SiteHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateSiteRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	site, err := h.siteUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, site, nil)
}

// Delete godoc
// @Summary Удаление места
// @Description Вклады, события и комментарии места удаляются вместе с ним.
// @Tags Sites
// @Param id path int true "ID места"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sites/{id} [delete]
func (h *SiteHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.siteUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}

// Search godoc
// @Summary Поиск мест по тексту и тегам
// @Description Подстрока в имени или описании без учёта регистра; теги - совпадение любого.
// @Tags Search
// @Produce json
// @Param query query string false "Подстрока"
// @Param tags query string false "Теги через запятую или повтором параметра"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Site}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sites/search [get]
func (h *SiteHandler) Search(c *fiber.Ctx) error {
	start := time.Now()

	req := dto.SearchSitesRequest{
		Query: c.Query("query"),
		Tags:  queryList(c, "tags"),
	}

	sites, err := h.searchUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, sites, &utils.Meta{
		Total:    len(sites),
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// Nearby godoc
// @Summary Места в радиусе
// @Description Расстояние по формуле гаверсинуса, граница включительно. Каждый результат содержит distance_km.
// @Tags Search
// @Produce json
// @Param latitude query number true "Широта"
// @Param longitude query number true "Долгота"
// @Param max_distance query number true "Радиус, км"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.SiteWithDistance}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sites/nearby [get]
func (h *SiteHandler) Nearby(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.NearbySitesRequest
	var err error
	if req.Latitude, err = queryFloat(c, "latitude", errors.ErrInvalidCoordinates); err != nil {
		return utils.SendError(c, err)
	}
	if req.Longitude, err = queryFloat(c, "longitude", errors.ErrInvalidCoordinates); err != nil {
		return utils.SendError(c, err)
	}
	if req.MaxDistance, err = queryFloat(c, "max_distance", errors.ErrInvalidRadius); err != nil {
		return utils.SendError(c, err)
	}

	sites, err := h.searchUC.Nearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, sites, &utils.Meta{
		Total:    len(sites),
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}

// ByDateRange godoc
// @Summary Места по дате основания
// @Description Обе границы необязательные и включительные; голая дата end_date покрывает весь день.
// @Tags Search
// @Produce json
// @Param start_date query string false "RFC 3339 или YYYY-MM-DD"
// @Param end_date query string false "RFC 3339 или YYYY-MM-DD"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Site}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sites/dates [get]
func (h *SiteHandler) ByDateRange(c *fiber.Ctx) error {
	req := dto.DateRangeRequest{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	sites, err := h.searchUC.ByDateRange(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, sites, &utils.Meta{Total: len(sites)})
}
