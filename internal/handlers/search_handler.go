package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/candidate-intake/internal/logger"
	"alfredoptarigan/candidate-intake/internal/models"
	"alfredoptarigan/candidate-intake/internal/services"
)

type SearchHandler struct {
	intakeService services.IntakeService
	log           *zap.Logger
}

func NewSearchHandler(intakeService services.IntakeService, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		intakeService: intakeService,
		log:           logger.WithFields(log),
	}
}

// HandleSearch handles GET /api/candidates/search?q=...&limit=...
func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", services.DefaultSearchLimit)

	results, err := h.intakeService.Search(c.UserContext(), query, limit)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrBadRequest) {
			status = fiber.StatusBadRequest
		}

		h.log.Error("candidate search failed",
			logger.String(logger.FieldRequestID, requestID(c)),
			zap.Error(err),
		)
		return c.Status(status).JSON(models.ErrorResponse{
			Error: services.UserMessage(err),
		})
	}

	return c.JSON(models.SearchResponse{
		Query:   query,
		Results: results,
	})
}
