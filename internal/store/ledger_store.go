package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fintrack/internal/apperrors"
	"fintrack/internal/models"
)

// LedgerStore persists the append-only income and expense records. Records
// are never updated after creation, only deleted, and every query is scoped
// to the owning user.
type LedgerStore struct {
	DB *gorm.DB
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{DB: db}
}

func (s *LedgerStore) CreateIncome(inc *models.Income) error {
	if err := validateRecord(inc.Source, inc.Amount, inc.Date.IsZero(), "source"); err != nil {
		return err
	}
	if err := s.DB.Create(inc).Error; err != nil {
		return fmt.Errorf("create income: %w", err)
	}
	return nil
}

func (s *LedgerStore) CreateExpense(exp *models.Expense) error {
	if err := validateRecord(exp.Category, exp.Amount, exp.Date.IsZero(), "category"); err != nil {
		return err
	}
	if err := s.DB.Create(exp).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// IncomesByUser returns every income record of the user, newest date first.
func (s *LedgerStore) IncomesByUser(userID uint) ([]models.Income, error) {
	var incomes []models.Income
	if err := s.DB.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&incomes).Error; err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	return incomes, nil
}

// ExpensesByUser returns every expense record of the user, newest date first.
func (s *LedgerStore) ExpensesByUser(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.DB.Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// DeleteIncome removes the record only if it belongs to userID. Deleting a
// missing or foreign record reports not found; deletion is idempotent-safe
// in the sense that a repeat delete fails the same way without side effects.
func (s *LedgerStore) DeleteIncome(userID, id uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Income{})
	if res.Error != nil {
		return fmt.Errorf("delete income: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

func (s *LedgerStore) DeleteExpense(userID, id uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

// validateRecord enforces the mandatory fields: label, a positive amount and
// a date. A zero amount counts as absent.
func validateRecord(label string, amount float64, dateZero bool, labelName string) error {
	var missing []string
	if strings.TrimSpace(label) == "" {
		missing = append(missing, labelName)
	}
	if amount <= 0 {
		missing = append(missing, "amount")
	}
	if dateZero {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", apperrors.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
