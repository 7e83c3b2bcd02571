package model

import "time"

// Budget is one per Trip, enforced with FirstOrCreate at the handler level.
type Budget struct {
	DTO
	TripID uint    `gorm:"not null;index" json:"tripId"`
	Total  float64 `gorm:"type:decimal(10,2);default:0" json:"total"`

	Trip     Trip      `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
	Expenses []Expense `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"expenses"`
}

type Expense struct {
	DTO
	BudgetID uint      `gorm:"not null;index" json:"budgetId"`
	Category string    `gorm:"not null" validate:"required,oneof=food transport lodging activity other" json:"category"`
	Amount   float64   `gorm:"type:decimal(10,2);not null" validate:"required,gt=0" json:"amount"`
	Note     string    `json:"note"`
	SpentAt  time.Time `json:"spentAt"`

	Budget Budget `gorm:"foreignKey:BudgetID;constraint:OnDelete:CASCADE" json:"-"`
}

type SetBudgetInput struct {
	Total float64 `json:"total" validate:"required,gte=0"`
}

type AddExpenseInput struct {
	Category string  `json:"category" validate:"required,oneof=food transport lodging activity other"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Note     string  `json:"note"`
	SpentAt  string  `json:"spentAt"` // YYYY-MM-DD, defaults to today
}

type EditExpenseInput struct {
	Category *string  `json:"category" validate:"omitempty,oneof=food transport lodging activity other"`
	Amount   *float64 `json:"amount" validate:"omitempty,gt=0"`
	Note     *string  `json:"note"`
}

type ExpenseSummary struct {
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	Amount   float64 `json:"amount"`
}
