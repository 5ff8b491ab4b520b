package api

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler builds the app-level error handler. It owns the
// rejections raised outside the handler: bodies over the transport limit,
// unmatched routes and recovered panics. The hardening headers are
// re-applied here because these paths bypass the middleware chain.
func NewErrorHandler(maxUploadMB int) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		applySecurityHeaders(c)

		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusRequestEntityTooLarge:
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
				"error": payloadTooLargeMessage(maxUploadMB)})
		case errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError:
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		default:
			log.Printf("[HTTP] unhandled error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "An error occurred while processing the image. Please try again."})
		}
	}
}

func payloadTooLargeMessage(maxUploadMB int) string {
	return fmt.Sprintf("File too large. Maximum size is %d MB.", maxUploadMB)
}
