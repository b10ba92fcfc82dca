package handlers

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-screener/internal/extractor"
	"resume-screener/internal/services"
)

type ScreenHandler struct {
	screener       services.ScreenerService
	storageService services.StorageService
	maxFileSize    int64
}

func NewScreenHandler(
	screener services.ScreenerService,
	storageService services.StorageService,
	maxFileSize int64,
) *ScreenHandler {
	return &ScreenHandler{
		screener:       screener,
		storageService: storageService,
		maxFileSize:    maxFileSize,
	}
}

// HandleScreen handles POST /screen. The multipart form carries the
// resumes under "files" plus "jd_text" and optional "preferred_skills"
// fields.
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	jdText := strings.TrimSpace(c.FormValue("jd_text"))
	if jdText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jd_text is required",
		})
	}
	preferredSkills := c.FormValue("preferred_skills")

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one resume file is required",
		})
	}

	var files []services.ResumeFile
	var rejected []string

	for _, header := range fileHeaders {
		if !extractor.SupportedFile(header.Filename) {
			rejected = append(rejected, header.Filename)
			continue
		}
		if h.maxFileSize > 0 && header.Size > h.maxFileSize {
			rejected = append(rejected, header.Filename)
			continue
		}

		src, err := header.Open()
		if err != nil {
			rejected = append(rejected, header.Filename)
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			rejected = append(rejected, header.Filename)
			continue
		}

		if h.storageService != nil {
			if _, _, err := h.storageService.ArchiveResume(header.Filename, data); err != nil {
				log.Printf("⚠️  Failed to archive %s: %v", header.Filename, err)
			}
		}

		files = append(files, services.ResumeFile{Name: header.Filename, Data: data})
	}

	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "no supported resume files in request",
			"rejected": rejected,
		})
	}

	response, err := h.screener.ScreenBatch(c.Context(), jdText, preferredSkills, files)
	if err != nil {
		if errors.Is(err, services.ErrNoValidResumes) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "no text could be extracted from the uploaded resumes",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "screening failed",
		})
	}

	response.Skipped = append(response.Skipped, rejected...)

	return c.JSON(response)
}
