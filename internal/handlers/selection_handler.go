package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-screener/internal/models"
	"resume-screener/internal/repositories"
)

type SelectionHandler struct {
	screeningRepo repositories.ScreeningRepository
}

func NewSelectionHandler(screeningRepo repositories.ScreeningRepository) *SelectionHandler {
	return &SelectionHandler{
		screeningRepo: screeningRepo,
	}
}

// HandleSelection handles POST /selection. The body is a list of manual
// pick updates; each is applied independently and reported back, so one
// unknown id does not roll back the rest.
func (h *SelectionHandler) HandleSelection(c *fiber.Ctx) error {
	var updates []models.SelectionRequest

	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if len(updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one selection update is required",
		})
	}

	responses := make([]models.SelectionResponse, 0, len(updates))
	var failed []string

	for _, update := range updates {
		resultID, err := uuid.Parse(update.ResultID)
		if err != nil {
			failed = append(failed, update.ResultID)
			continue
		}

		if err := h.screeningRepo.UpdateSelection(resultID, update.ManuallySelected, update.ManualReason); err != nil {
			failed = append(failed, update.ResultID)
			continue
		}

		responses = append(responses, models.SelectionResponse{
			ID:               update.ResultID,
			ManuallySelected: update.ManuallySelected,
			ManualReason:     update.ManualReason,
		})
	}

	if len(responses) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":  "no selection updates could be applied",
			"failed": failed,
		})
	}

	return c.JSON(fiber.Map{
		"updated": responses,
		"failed":  failed,
	})
}
