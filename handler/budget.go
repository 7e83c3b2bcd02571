package handler

import (
	"errors"
	"time"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func budgetForTrip(tripId uint) (*model.Budget, error) {
	budget := model.Budget{TripID: tripId}
	err := database.DB.Where("trip_id = ?", tripId).FirstOrCreate(&budget).Error
	return &budget, err
}

// SetBudget sets the planned total of a trip's budget, creating the budget
// row on first use.
func SetBudget(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputSetBudget").(model.SetBudgetInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	budget, err := budgetForTrip(trip.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	budget.Total = input.Total
	if err := database.DB.Save(budget).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, budget)
}

func GetBudget(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	budget, err := budgetForTrip(trip.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	database.DB.Preload("Expenses").First(budget, budget.ID)

	var spent float64
	for _, e := range budget.Expenses {
		spent += e.Amount
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"budget":    budget,
		"spent":     spent,
		"remaining": budget.Total - spent,
	})
}

func AddExpense(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputAddExpense").(model.AddExpenseInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	budget, err := budgetForTrip(trip.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	spentAt := time.Now()
	if input.SpentAt != "" {
		spentAt, err = utils.ParseDate(input.SpentAt)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid date", err, "spentAt")
		}
	}

	expense := model.Expense{
		BudgetID: budget.ID,
		Category: input.Category,
		Amount:   input.Amount,
		Note:     input.Note,
		SpentAt:  spentAt,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, expense)
}

func EditExpense(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	expenseId, err := c.ParamsInt("expenseId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}
	input, ok := c.Locals("inputEditExpense").(model.EditExpenseInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	db := database.DB

	var expense model.Expense
	if err := db.Joins("JOIN budgets ON budgets.id = expenses.budget_id").
		Where("expenses.id = ? AND budgets.trip_id = ?", expenseId, trip.ID).
		First(&expense).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Note != nil {
		expense.Note = *input.Note
	}

	if err := db.Save(&expense).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, expense)
}

func DeleteExpense(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	expenseId, err := c.ParamsInt("expenseId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	db := database.DB

	var expense model.Expense
	if err := db.Joins("JOIN budgets ON budgets.id = expenses.budget_id").
		Where("expenses.id = ? AND budgets.trip_id = ?", expenseId, trip.ID).
		First(&expense).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if err := db.Delete(&expense).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Deleted")
}

// GetExpenseSummary groups the trip's spending by category.
func GetExpenseSummary(c *fiber.Ctx) error {
	tripId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	trip, _, err := tripOwnedBy(c, tripId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, err)
	}

	budget, err := budgetForTrip(trip.ID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var summary []model.ExpenseSummary
	if err := database.DB.Model(&model.Expense{}).
		Select("category, COUNT(*) as count, SUM(amount) as amount").
		Where("budget_id = ?", budget.ID).
		Group("category").
		Order("amount DESC").
		Scan(&summary).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var spent float64
	for _, s := range summary {
		spent += s.Amount
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"total":      budget.Total,
		"spent":      spent,
		"remaining":  budget.Total - spent,
		"categories": summary,
	})
}
