package validate

import (
	"fmt"
	"travel_booking/model"

	"github.com/gofiber/fiber/v2"
)

func SetBudget() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.SetBudgetInput

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

		c.Locals("inputSetBudget", input)
		return c.Next()
	}
}

func AddExpense() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AddExpenseInput

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

		c.Locals("inputAddExpense", input)
		return c.Next()
	}
}

func EditExpense() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditExpenseInput

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

		c.Locals("inputEditExpense", input)
		return c.Next()
	}
}
