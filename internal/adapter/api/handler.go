package api

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"dermascan-core/internal/domain/entity"
	"dermascan-core/internal/usecase"
)

type PredictHandler struct {
	orchestrator *usecase.Orchestrator
	maxUploadMB  int
}

func NewPredictHandler(orch *usecase.Orchestrator, maxUploadMB int) *PredictHandler {
	return &PredictHandler{orchestrator: orch, maxUploadMB: maxUploadMB}
}

// HandlePredict accepts a multipart upload in the "image" field and answers
// with the ranked, annotated predictions. Error bodies carry only
// caller-safe reasons.
func (h *PredictHandler) HandlePredict(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No image file provided."})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read the uploaded file."})
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Could not read the uploaded file."})
	}

	req := entity.InferenceRequest{
		ClientKey: c.IP(),
		Filename:  fileHeader.Filename,
		MIMEType:  fileHeader.Header.Get("Content-Type"),
		Data:      data,
	}

	set, err := h.orchestrator.Execute(c.Context(), req)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":            true,
		"predictions":        set.Predictions,
		"requires_attention": set.RequiresAttention,
	})
}

// The delivery layer maps business errors to HTTP status codes.
func (h *PredictHandler) respondError(c *fiber.Ctx, err error) error {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Reason})
	case errors.Is(err, entity.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many requests. Please wait a minute and try again."})
	case errors.Is(err, entity.ErrPayloadTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": payloadTooLargeMessage(h.maxUploadMB)})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "An error occurred while processing the image. Please try again."})
	}
}
