package validate

import (
	"fmt"
	"travel_booking/model"

	"github.com/gofiber/fiber/v2"
)

func CreatePlace() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePlaceInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputCreatePlace", input)
		return c.Next()
	}
}

func EditPlace() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditPlaceInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("inputEditPlace", input)
		return c.Next()
	}
}
