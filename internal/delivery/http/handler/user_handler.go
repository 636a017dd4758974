package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/pkg/utils"
	"github.com/heritage-catalog/internal/usecase"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// UserHandler - обработчик пользователей; хеш пароля наружу не отдаётся
type UserHandler struct {
	userUC *usecase.UserUseCase
	logger *zap.Logger
}

func NewUserHandler(userUC *usecase.UserUseCase, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userUC: userUC,
		logger: logger,
	}
}

// Create godoc
// @Summary Регистрация пользователя
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Пользователь"
// @Success 201 {object} utils.SuccessResponse{data=domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.userUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, user)
}

// @Summary Все пользователи
// @Tags Users
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.User}
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, users, &utils.Meta{Total: len(users)})
}

// @Summary Пользователь по ID
// @Tags Users
// @Produce json
// @Param id path int true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.userUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, user, nil)
}

// @Summary Изменение email и прав администратора
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "ID пользователя"
// @Param request body dto.UpdateUserRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.userUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, user, nil)
}

// @Summary Удаление пользователя
// @Description Комментарии пользователя удаляются, вклады остаются без user_id.
// @Tags Users
// @Param id path int true "ID пользователя"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.userUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}
