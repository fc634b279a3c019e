package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/pkg/utils"
	"github.com/restaurant-resolver/internal/pkg/validator"
	"github.com/restaurant-resolver/internal/usecase"
	"github.com/restaurant-resolver/internal/usecase/dto"
)

// ViewportHandler - обработчик запросов видимой области карты
type ViewportHandler struct {
	viewportUC *usecase.ViewportUseCase
	logger     *zap.Logger
}

// NewViewportHandler - создание нового ViewportHandler
func NewViewportHandler(viewportUC *usecase.ViewportUseCase, logger *zap.Logger) *ViewportHandler {
	return &ViewportHandler{
		viewportUC: viewportUC,
		logger:     logger,
	}
}

// Query godoc
// @Summary Рестораны в видимой области карты
// @Description Возвращает рестораны, попадающие в viewport камеры, отранжированные по расстоянию до центра или по приоритету наград. Не больше 500 точек за запрос.
// @Tags Viewport
// @Accept json
// @Produce json
// @Param lat query number true "Широта центра камеры"
// @Param lon query number true "Долгота центра камеры"
// @Param zoom query number true "Zoom level (0-22)"
// @Param width query number true "Ширина viewport в пикселях"
// @Param height query number true "Высота viewport в пикселях"
// @Param rank query string false "Политика ранжирования: nearest или priority" default(priority)
// @Success 200 {object} utils.SuccessResponse{data=dto.ViewportQueryResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/viewport/query [get]
func (h *ViewportHandler) Query(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.ViewportQueryRequest
	req.Lat = c.QueryFloat("lat")
	req.Lon = c.QueryFloat("lon")
	req.Zoom = c.QueryFloat("zoom")
	req.Width = c.QueryFloat("width")
	req.Height = c.QueryFloat("height")
	req.Rank = c.Query("rank", "priority")

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.viewportUC.Query(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Total,
		Shown:    len(result.Points),
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000.0,
	})
}
