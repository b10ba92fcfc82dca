package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
)

type ResultHandler struct {
	screeningRepo repositories.ScreeningRepository
}

func NewResultHandler(screeningRepo repositories.ScreeningRepository) *ResultHandler {
	return &ResultHandler{
		screeningRepo: screeningRepo,
	}
}

// HandleGetResult handles GET /result/:id.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	resultID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid result ID format",
		})
	}

	result, err := h.screeningRepo.FindByID(resultID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Screening result not found",
		})
	}

	return c.JSON(models.ResultResponse{
		ID:               result.ID.String(),
		FileName:         result.FileName,
		JDText:           result.JDText,
		Score:            result.ScoreRecord(),
		ManuallySelected: result.ManuallySelected,
		ManualReason:     result.ManualReason,
		CreatedAt:        result.CreatedAt.Format(time.RFC3339),
	})
}
