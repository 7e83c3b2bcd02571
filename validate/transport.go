package validate

import (
	"fmt"
	"travel_booking/model"

	"github.com/gofiber/fiber/v2"
)

func CreateTransportation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateTransportationInput

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

		c.Locals("inputCreateTransportation", input)
		return c.Next()
	}
}

func EditTransportation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditTransportationInput

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

		c.Locals("inputEditTransportation", input)
		return c.Next()
	}
}

func CreateBusProperty() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBusPropertyInput

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

		c.Locals("inputCreateBusProperty", input)
		return c.Next()
	}
}

func EditBusProperty() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditBusPropertyInput

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

		c.Locals("inputEditBusProperty", input)
		return c.Next()
	}
}

func CreateBus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateBusInput

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

		c.Locals("inputCreateBus", input)
		return c.Next()
	}
}

func EditBus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditBusInput

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

		c.Locals("inputEditBus", input)
		return c.Next()
	}
}
