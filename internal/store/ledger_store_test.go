package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintrack/internal/apperrors"
	"fintrack/internal/models"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestCreateIncomeValidation(t *testing.T) {
	ledger := NewLedgerStore(initTestDB(t))

	cases := []struct {
		name   string
		income models.Income
	}{
		{"missing source", models.Income{UserID: 1, Amount: 10, Date: day(0)}},
		{"missing amount", models.Income{UserID: 1, Source: "salary", Date: day(0)}},
		{"negative amount", models.Income{UserID: 1, Source: "salary", Amount: -5, Date: day(0)}},
		{"missing date", models.Income{UserID: 1, Source: "salary", Amount: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ledger.CreateIncome(&tc.income)
			require.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}

	ok := models.Income{UserID: 1, Source: "salary", Amount: 10, Date: day(0)}
	require.NoError(t, ledger.CreateIncome(&ok))
	require.NotZero(t, ok.ID)
}

func TestCreateExpenseValidation(t *testing.T) {
	ledger := NewLedgerStore(initTestDB(t))

	err := ledger.CreateExpense(&models.Expense{UserID: 1, Amount: 10, Date: day(0)})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	ok := models.Expense{UserID: 1, Category: "groceries", Amount: 10, Date: day(0)}
	require.NoError(t, ledger.CreateExpense(&ok))
}

func TestListOrder(t *testing.T) {
	ledger := NewLedgerStore(initTestDB(t))

	for _, n := range []int{3, 10, 7} {
		inc := models.Income{UserID: 1, Source: "salary", Amount: float64(n), Date: day(n)}
		require.NoError(t, ledger.CreateIncome(&inc))
	}
	// another user's record must not show up
	other := models.Income{UserID: 2, Source: "salary", Amount: 99, Date: day(20)}
	require.NoError(t, ledger.CreateIncome(&other))

	incomes, err := ledger.IncomesByUser(1)
	require.NoError(t, err)
	require.Len(t, incomes, 3)
	for i := 1; i < len(incomes); i++ {
		require.False(t, incomes[i-1].Date.Before(incomes[i].Date))
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	ledger := NewLedgerStore(initTestDB(t))

	mine := models.Expense{UserID: 1, Category: "rent", Amount: 500, Date: day(0)}
	require.NoError(t, ledger.CreateExpense(&mine))
	theirs := models.Expense{UserID: 2, Category: "rent", Amount: 700, Date: day(0)}
	require.NoError(t, ledger.CreateExpense(&theirs))

	// valid id, wrong owner: not deleted
	require.ErrorIs(t, ledger.DeleteExpense(1, theirs.ID), apperrors.ErrNotFound)
	remaining, err := ledger.ExpensesByUser(2)
	require.NoError(t, err)
	require.Len(t, remaining, 1)

	require.NoError(t, ledger.DeleteExpense(1, mine.ID))

	// repeat delete reports not found, no other side effects
	require.ErrorIs(t, ledger.DeleteExpense(1, mine.ID), apperrors.ErrNotFound)
}
