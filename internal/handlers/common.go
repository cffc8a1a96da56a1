package handlers

import "github.com/gofiber/fiber/v2"

// fail writes the uniform error envelope used by every endpoint.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func failErr(c *fiber.Ctx, status int, err error) error {
	return fail(c, status, err.Error())
}
