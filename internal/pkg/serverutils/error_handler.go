package serverutils

import (
	"errors"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/logger"
	"rag-chat-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

// StatusAndMessage maps an error to the response status and client-facing message.
func StatusAndMessage(err error) (int, string) {
	var serviceErr *dto.ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code, serviceErr.Message
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var validationErr *rag.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest, validationErr.Error()
	}

	return fiber.StatusInternalServerError, constant.ErrProcessingRequest
}

// ErrorHandlerMiddleware converts errors returned by handlers into {error} bodies.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := StatusAndMessage(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
