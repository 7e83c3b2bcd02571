package validate

import (
	"fmt"
	"travel_booking/model"

	"github.com/gofiber/fiber/v2"
)

func CreateRoute() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateRouteInput

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

		c.Locals("inputCreateRoute", input)
		return c.Next()
	}
}

func CreateSchedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateScheduleInput

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

		c.Locals("inputCreateSchedule", input)
		return c.Next()
	}
}

func CreateScheduleBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateScheduleBatchInput

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

		c.Locals("inputCreateScheduleBatch", input)
		return c.Next()
	}
}

func UpdateSchedule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateScheduleInput

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

		c.Locals("inputUpdateSchedule", input)
		return c.Next()
	}
}
