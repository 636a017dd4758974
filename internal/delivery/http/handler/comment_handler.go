package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/pkg/utils"
	"github.com/heritage-catalog/internal/usecase"
	"github.com/heritage-catalog/internal/usecase/dto"
)

// CommentHandler - обработчик комментариев к местам и событиям
type CommentHandler struct {
	commentUC *usecase.CommentUseCase
	logger    *zap.Logger
}

func NewCommentHandler(commentUC *usecase.CommentUseCase, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentUC: commentUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Новый комментарий
// @Description target_type - site или event; родитель должен существовать.
// @Tags Comments
// @Accept json
// @Produce json
// @Param request body dto.CreateCommentRequest true "Комментарий"
// @Success 201 {object} utils.SuccessResponse{data=domain.Comment}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	comment, err := h.commentUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, comment)
}

// List godoc
// @Summary Комментарии места или события
// @Description Нужен ровно один из параметров site_id и event_id.
// @Tags Comments
// @Produce json
// @Param site_id query int false "ID места"
// @Param event_id query int false "ID события"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Comment}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	var req dto.ListCommentsRequest
	var err error
	if req.SiteID, err = queryInt64(c, "site_id"); err != nil {
		return utils.SendError(c, err)
	}
	if req.EventID, err = queryInt64(c, "event_id"); err != nil {
		return utils.SendError(c, err)
	}

	comments, err := h.commentUC.List(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, comments, &utils.Meta{Total: len(comments)})
}

// @Summary Комментарий по ID
// @Tags Comments
// @Produce json
// @Param id path int true "ID комментария"
// @Success 200 {object} utils.SuccessResponse{data=domain.Comment}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/comments/{id} [get]
func (h *CommentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	comment, err := h.commentUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, comment, nil)
}

// @Summary Изменение текста комментария
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "ID комментария"
// @Param request body dto.UpdateCommentRequest true "Новый текст"
// @Success 200 {object} utils.SuccessResponse{data=domain.Comment}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/comments/{id} [put]
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateCommentRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	comment, err := h.commentUC.UpdateContent(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, comment, nil)
}

// @Summary Удаление комментария
// @Tags Comments
// @Param id path int true "ID комментария"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.commentUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendNoContent(c)
}
