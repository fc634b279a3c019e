package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/pkg/utils"
	"github.com/restaurant-resolver/internal/pkg/validator"
	"github.com/restaurant-resolver/internal/usecase"
	"github.com/restaurant-resolver/internal/usecase/dto"
)

// ResolveHandler - обработчик разрешения ресторана по точке и подсказке
type ResolveHandler struct {
	resolveUC *usecase.ResolveUseCase
	logger    *zap.Logger
}

// NewResolveHandler - создание нового ResolveHandler
func NewResolveHandler(resolveUC *usecase.ResolveUseCase, logger *zap.Logger) *ResolveHandler {
	return &ResolveHandler{
		resolveUC: resolveUC,
		logger:    logger,
	}
}

// Resolve godoc
// @Summary Разрешение ресторана по координатам
// @Description Собирает кандидатов из датасета, гео-индекса и внешнего Places API и ранжирует их по похожести названия к текстовой подсказке. Отказавшие источники пропускаются, ответ остаётся частичным.
// @Tags Resolve
// @Accept json
// @Produce json
// @Param request body dto.ResolveRequest true "Координаты точки и текстовая подсказка"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResolveResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/resolve [post]
func (h *ResolveHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.resolveUC.Resolve(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
