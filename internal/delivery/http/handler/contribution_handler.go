package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/pkg/utils"
	"github.com/heritage-catalog/internal/usecase"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// ContributionHandler - обработчик пользовательских вкладов и их модерации
type ContributionHandler struct {
	contributionUC *usecase.ContributionUseCase
	moderationUC   *usecase.ModerationUseCase
	logger         *zap.Logger
}

// NewContributionHandler - создание нового ContributionHandler
func NewContributionHandler(
	contributionUC *usecase.ContributionUseCase,
	moderationUC *usecase.ModerationUseCase,
	logger *zap.Logger,
) *ContributionHandler {
	return &ContributionHandler{
		contributionUC: contributionUC,
		moderationUC:   moderationUC,
		logger:         logger,
	}
}

// Create godoc
// @Summary Новый вклад
// @Description Вклад создаётся в статусе pending. Место должно существовать.
// @Tags Contributions
// @Accept json
// @Produce json
// @Param request body dto.CreateContributionRequest true "Вклад"
// @Success 201 {object} utils.SuccessResponse{data=domain.Contribution}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/contributions [post]
func (h *ContributionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContributionRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	contribution, err := h.contributionUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, contribution)
}

// List godoc
// @Summary Все вклады
// @Tags Contributions
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Contribution}
// @Router /api/v1/contributions/all [get]
func (h *ContributionHandler) List(c *fiber.Ctx) error {
	contributions, err := h.contributionUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, contributions, &utils.Meta{Total: len(contributions)})
}

// ListByStatus godoc
// @Summary Вклады по статусу
// @Tags Contributions
// @Produce json
// @Param status query string false "pending, approved или rejected" default(pending)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Contribution}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/contributions/by-status [get]
func (h *ContributionHandler) ListByStatus(c *fiber.Ctx) error {
	contributions, err := h.contributionUC.ListByStatus(c.Context(), c.Query("status"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, contributions, &utils.Meta{Total: len(contributions)})
}

// Get godoc
// @Summary Вклад по ID
// @Tags Contributions
// @Produce json
// @Param id path int true "ID вклада"
// @Success 200 {object} utils.SuccessResponse{data=domain.Contribution}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/contributions/{id} [get]
func (h *ContributionHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	contribution, err := h.contributionUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, contribution, nil)
}

// Update godoc
// @Summary Частичное обновление вклада
// @Description Статус так не меняется, только через approve/reject.
// @Tags Contributions
// @Accept json
// @Produce json
// @Param id path int true "ID вклада"
// @Param request body dto.UpdateContributionRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.Contribution}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/contributions/{id} [put]
func (h *ContributionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateContributionRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	contribution, err := h.contributionUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, contribution, nil)
}

// Delete godoc
// @Summary Удаление вклада
// @Tags Contributions
// @Param id path int true "ID вклада"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/contributions/{id} [delete]
func (h *ContributionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.contributionUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}

// Approve godoc
// @Summary Одобрение вклада
// @Description pending -> approved. Повторная модерация - 409.
// @Tags Moderation
// @Produce json
// @Param id path int true "ID вклада"
// @Success 200 {object} utils.SuccessResponse{data=domain.Contribution}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/contributions/{id}/approve [patch]
func (h *ContributionHandler) Approve(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	contribution, err := h.contributionUC.Approve(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, contribution, nil)
}

// Reject godoc
// @Summary Отклонение вклада
// @Description pending -> rejected. Повторная модерация - 409.
// @Tags Moderation
// @Produce json
// @Param id path int true "ID вклада"
// @Success 200 {object} utils.SuccessResponse{data=domain.Contribution}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/contributions/{id}/reject [patch]
func (h *ContributionHandler) Reject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	contribution, err := h.contributionUC.Reject(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, contribution, nil)
}

// History godoc
// @Summary Журнал модерации вклада
// @Description Записи пишет воркер аудита; журнал сохраняется и после удаления вклада.
// @Tags Moderation
// @Produce json
// @Param id path int true "ID вклада"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.ModerationRecord}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/contributions/{id}/history [get]
func (h *ContributionHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	records, err := h.moderationUC.History(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, records, &utils.Meta{Total: len(records)})
}
