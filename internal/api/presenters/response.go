package presenters

import "github.com/gofiber/fiber/v2"

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// SuccessResponse writes data as the bare JSON body; clients of the recipe
// API read resources, not envelopes.
func SuccessResponse(c *fiber.Ctx, data any, code int) error {
	return c.Status(code).JSON(data)
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(code).JSON(res)
}
