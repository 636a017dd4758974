package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/pkg/utils"
	"github.com/heritage-catalog/internal/usecase"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// EventHandler - обработчик исторических событий
type EventHandler struct {
	eventUC *usecase.EventUseCase
	logger  *zap.Logger
}

func NewEventHandler(eventUC *usecase.EventUseCase, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventUC: eventUC,
		logger:  logger,
	}
}

// Create godoc
// @Summary Новое историческое событие
// @Tags Events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Событие"
// @Success 201 {object} utils.SuccessResponse{data=domain.Event}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	event, err := h.eventUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, event)
}

// List godoc
// @Summary События, все или одного места
// @Tags Events
// @Produce json
// @Param site_id query int false "ID места"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Event}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	siteID, err := queryInt64(c, "site_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	events, err := h.eventUC.List(c.Context(), siteID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, events, &utils.Meta{Total: len(events)})
}

// @Summary Событие по ID
// @Tags Events
// @Produce json
// @Param id path int true "ID события"
// @Success 200 {object} utils.SuccessResponse{data=domain.Event}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	event, err := h.eventUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, event, nil)
}

// @Summary Частичное обновление события
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "ID события"
// @Param request body dto.UpdateEventRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.Event}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateEventRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	event, err := h.eventUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, event, nil)
}

// @Summary Удаление события
// @Tags Events
// @Param id path int true "ID события"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.eventUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}
