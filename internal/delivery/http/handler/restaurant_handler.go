package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/restaurant-resolver/internal/domain"
	"github.com/restaurant-resolver/internal/domain/repository"
	"github.com/restaurant-resolver/internal/pkg/utils"
)

// RestaurantHandler - обработчик для работы с отдельными ресторанами
type RestaurantHandler struct {
	restaurantRepo repository.RestaurantRepository
	visitRepo      repository.VisitRepository
	logger         *zap.Logger
}

// NewRestaurantHandler - создание нового RestaurantHandler
func NewRestaurantHandler(
	restaurantRepo repository.RestaurantRepository,
	visitRepo repository.VisitRepository,
	logger *zap.Logger,
) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantRepo: restaurantRepo,
		visitRepo:      visitRepo,
		logger:         logger,
	}
}

// GetByID godoc
// @Summary Получение ресторана по ID
// @Tags Restaurants
// @Produce json
// @Param id path string true "ID ресторана"
// @Success 200 {object} utils.SuccessResponse{data=domain.RestaurantPoint}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/restaurants/{id} [get]
func (h *RestaurantHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	restaurant, err := h.restaurantRepo.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	visited, err := h.visitRepo.GetVisitedIDs(c.Context())
	if err != nil {
		h.logger.Warn("Failed to load visited ids", zap.Error(err))
	} else if _, ok := visited[restaurant.ID]; ok {
		restaurant.Visited = true
	}

	// Награда отдаётся и в разобранном виде
	var distinction domain.Distinction
	if restaurant.Award != nil {
		distinction = domain.ParseDistinction(*restaurant.Award)
	}

	return utils.SendSuccess(c, fiber.Map{
		"restaurant":     restaurant,
		"award_tier":     distinction.Tier.String(),
		"green_star":     distinction.GreenStar,
		"award_priority": distinction.Priority(),
	}, nil)
}

// MarkVisited godoc
// @Summary Отметка ресторана как посещённого
// @Tags Restaurants
// @Produce json
// @Param id path string true "ID ресторана"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/restaurants/{id}/visit [post]
func (h *RestaurantHandler) MarkVisited(c *fiber.Ctx) error {
	id := c.Params("id")

	// Проверяем, что ресторан есть в датасете
	if _, err := h.restaurantRepo.GetByID(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.visitRepo.MarkVisited(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "visited": true}, nil)
}
