package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/spcflow/spcflow/internal/logging"
	"github.com/spcflow/spcflow/internal/models"
)

// ErrorHandler returns a custom error handler middleware. Structured engine
// errors that escape a handler keep their semantics: validation failures map
// to 400 and unknown selectors to 422 instead of a blanket 500.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "ERROR"
		message := "Internal Server Error"

		switch e := err.(type) {
		case *fiber.Error:
			code = e.Code
			message = e.Message
		case *models.ValidationError:
			code = fiber.StatusBadRequest
			errCode = "VALIDATION_FAILED"
			message = e.Error()
		case *models.DomainError:
			code = fiber.StatusUnprocessableEntity
			errCode = "UNKNOWN_SELECTOR"
			message = e.Error()
		}

		logger.Error("Request error",
			"path", c.Path(),
			"method", c.Method(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    errCode,
				Message: message,
			},
		})
	}
}
