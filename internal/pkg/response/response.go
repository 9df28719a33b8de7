package response

import "github.com/gofiber/fiber/v2"

// ErrorBody is the JSON payload for validation and server errors.
// Authorization and not-found replies deliberately carry no body: the
// wire contract leaks nothing about why a request was rejected.
type ErrorBody struct {
	Error string `json:"error"`
}

// Error sends an error response with a JSON body
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// Unauthorized sends an empty-body 401
func Unauthorized(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusUnauthorized)
}

// NotFound sends an empty-body 404
func NotFound(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNotFound)
}
