package validate

import (
	"fmt"
	"travel_booking/model"

	"github.com/gofiber/fiber/v2"
)

func HoldSeats() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.HoldSeatsInput

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

		c.Locals("inputHoldSeats", input)
		return c.Next()
	}
}

func ReleaseSeats() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ReleaseSeatsInput

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

		c.Locals("inputReleaseSeats", input)
		return c.Next()
	}
}

func PurchaseSeats() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.PurchaseSeatsInput

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

		c.Locals("inputPurchaseSeats", input)
		return c.Next()
	}
}

func BookRoom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.BookRoomInput

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

		c.Locals("inputBookRoom", input)
		return c.Next()
	}
}
