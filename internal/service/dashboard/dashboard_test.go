package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintrack/internal/apperrors"
	"fintrack/internal/models"
)

// fakeLedger returns canned, date-descending lists like the real store.
type fakeLedger struct {
	incomes  []models.Income
	expenses []models.Expense
	err      error
}

func (f *fakeLedger) IncomesByUser(userID uint) ([]models.Income, error) {
	return f.incomes, f.err
}

func (f *fakeLedger) ExpensesByUser(userID uint) ([]models.Expense, error) {
	return f.expenses, f.err
}

var base = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func onDay(n int) time.Time { return base.AddDate(0, 0, n) }

func TestComputeEmptyUser(t *testing.T) {
	engine := NewEngine(&fakeLedger{})

	snap, err := engine.Compute(1, onDay(0))
	require.NoError(t, err)

	require.Zero(t, snap.TotalIncome)
	require.Zero(t, snap.TotalExpense)
	require.Zero(t, snap.TotalBalance)
	require.Zero(t, snap.Last60DaysIncome.Total)
	require.Empty(t, snap.Last60DaysIncome.Transactions)
	require.Zero(t, snap.Last30DaysExpenses.Total)
	require.Empty(t, snap.Last30DaysExpenses.Transactions)
	require.Empty(t, snap.RecentTransactions)
}

func TestComputeScenario(t *testing.T) {
	// income 100 on day 0 and 50 on day 10, expense 30 on day 5,
	// evaluated on day 10 so both windows cover everything
	ledger := &fakeLedger{
		incomes: []models.Income{
			{ID: 2, UserID: 1, Source: "freelance", Amount: 50, Date: onDay(10)},
			{ID: 1, UserID: 1, Source: "salary", Amount: 100, Date: onDay(0)},
		},
		expenses: []models.Expense{
			{ID: 3, UserID: 1, Category: "groceries", Amount: 30, Date: onDay(5)},
		},
	}
	engine := NewEngine(ledger)

	snap, err := engine.Compute(1, onDay(10))
	require.NoError(t, err)

	require.Equal(t, 150.0, snap.TotalIncome)
	require.Equal(t, 30.0, snap.TotalExpense)
	require.Equal(t, 120.0, snap.TotalBalance)
	require.Equal(t, 150.0, snap.Last60DaysIncome.Total)
	require.Equal(t, 30.0, snap.Last30DaysExpenses.Total)

	require.Len(t, snap.RecentTransactions, 3)
	require.Equal(t, "income", snap.RecentTransactions[0].Kind)
	require.Equal(t, 50.0, snap.RecentTransactions[0].Amount)
	require.Equal(t, "expense", snap.RecentTransactions[1].Kind)
	require.Equal(t, 30.0, snap.RecentTransactions[1].Amount)
	require.Equal(t, "income", snap.RecentTransactions[2].Kind)
	require.Equal(t, 100.0, snap.RecentTransactions[2].Amount)
}

func TestComputeNegativeBalance(t *testing.T) {
	ledger := &fakeLedger{
		expenses: []models.Expense{
			{ID: 1, UserID: 1, Category: "rent", Amount: 900, Date: onDay(0)},
		},
	}
	engine := NewEngine(ledger)

	snap, err := engine.Compute(1, onDay(0))
	require.NoError(t, err)
	require.Equal(t, -900.0, snap.TotalBalance)
	require.Equal(t, snap.TotalIncome-snap.TotalExpense, snap.TotalBalance)
}

func TestComputeWindowCutoff(t *testing.T) {
	now := onDay(100)
	ledger := &fakeLedger{
		incomes: []models.Income{
			{ID: 3, Source: "in", Amount: 10, Date: now},
			{ID: 2, Source: "edge", Amount: 20, Date: now.AddDate(0, 0, -60)},
			{ID: 1, Source: "out", Amount: 40, Date: now.AddDate(0, 0, -61)},
		},
		expenses: []models.Expense{
			{ID: 6, Category: "in", Amount: 1, Date: now},
			{ID: 5, Category: "edge", Amount: 2, Date: now.AddDate(0, 0, -30)},
			{ID: 4, Category: "out", Amount: 4, Date: now.AddDate(0, 0, -31)},
		},
	}
	engine := NewEngine(ledger)

	snap, err := engine.Compute(1, now)
	require.NoError(t, err)

	// the boundary day is inside the window (date >= now - N days)
	require.Equal(t, 30.0, snap.Last60DaysIncome.Total)
	require.Len(t, snap.Last60DaysIncome.Transactions, 2)
	require.Equal(t, 3.0, snap.Last30DaysExpenses.Total)
	require.Len(t, snap.Last30DaysExpenses.Transactions, 2)

	// totals still cover everything
	require.Equal(t, 70.0, snap.TotalIncome)
	require.Equal(t, 7.0, snap.TotalExpense)
}

func TestWindowTotalMatchesTransactions(t *testing.T) {
	now := onDay(0)
	ledger := &fakeLedger{
		incomes: []models.Income{
			{ID: 4, Source: "a", Amount: 12.5, Date: now},
			{ID: 3, Source: "b", Amount: 7.25, Date: now.AddDate(0, 0, -10)},
			{ID: 2, Source: "c", Amount: 3, Date: now.AddDate(0, 0, -59)},
			{ID: 1, Source: "d", Amount: 99, Date: now.AddDate(0, 0, -90)},
		},
	}
	engine := NewEngine(ledger)

	snap, err := engine.Compute(1, now)
	require.NoError(t, err)

	var sum float64
	for _, tx := range snap.Last60DaysIncome.Transactions {
		sum += tx.Amount
	}
	require.Equal(t, sum, snap.Last60DaysIncome.Total)
}

func TestRecentTransactionsLimitAndOrder(t *testing.T) {
	now := onDay(40)
	var incomes []models.Income
	var expenses []models.Expense
	for i := 0; i < 6; i++ {
		incomes = append(incomes, models.Income{ID: uint(100 - i), Source: "s", Amount: 1, Date: now.AddDate(0, 0, -2*i)})
		expenses = append(expenses, models.Expense{ID: uint(200 - i), Category: "c", Amount: 1, Date: now.AddDate(0, 0, -2*i-1)})
	}
	engine := NewEngine(&fakeLedger{incomes: incomes, expenses: expenses})

	snap, err := engine.Compute(1, now)
	require.NoError(t, err)

	require.Len(t, snap.RecentTransactions, 5)
	for i := 1; i < len(snap.RecentTransactions); i++ {
		prev, cur := snap.RecentTransactions[i-1], snap.RecentTransactions[i]
		require.False(t, prev.Date.Before(cur.Date), "feed must be non-increasing by date")
	}
	// kinds interleave because the two lists alternate day by day
	require.Equal(t, "income", snap.RecentTransactions[0].Kind)
	require.Equal(t, "expense", snap.RecentTransactions[1].Kind)
}

func TestRecentTransactionsFewerRecords(t *testing.T) {
	engine := NewEngine(&fakeLedger{
		incomes: []models.Income{{ID: 1, Source: "s", Amount: 1, Date: onDay(0)}},
	})

	snap, err := engine.Compute(1, onDay(0))
	require.NoError(t, err)
	require.Len(t, snap.RecentTransactions, 1)
}

func TestComputeStorageErrorFailsWhole(t *testing.T) {
	engine := NewEngine(&fakeLedger{err: errors.New("connection reset")})

	snap, err := engine.Compute(1, onDay(0))
	require.ErrorIs(t, err, apperrors.ErrInternal)
	require.Nil(t, snap)
	require.Contains(t, err.Error(), "dashboard computation failed")
}
