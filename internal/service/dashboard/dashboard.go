package dashboard

import (
	"fmt"
	"time"

	"fintrack/internal/apperrors"
	"fintrack/internal/models"
)

const (
	incomeWindowDays  = 60
	expenseWindowDays = 30
	recentLimit       = 5
)

// Ledger is the read-only slice of the ledger store the engine consumes.
// Both lists come back newest date first.
type Ledger interface {
	IncomesByUser(userID uint) ([]models.Income, error)
	ExpensesByUser(userID uint) ([]models.Expense, error)
}

// Transaction is one entry of the merged recent-activity feed, tagged with
// its kind. Label carries the income source or the expense category.
type Transaction struct {
	ID     uint      `json:"id"`
	Kind   string    `json:"type"`
	Icon   string    `json:"icon"`
	Label  string    `json:"label"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

type IncomeWindow struct {
	Total        float64         `json:"total"`
	Transactions []models.Income `json:"transactions"`
}

type ExpenseWindow struct {
	Total        float64          `json:"total"`
	Transactions []models.Expense `json:"transactions"`
}

// Snapshot is the derived per-request dashboard view. Nothing in it is
// persisted or cached.
type Snapshot struct {
	TotalBalance       float64       `json:"total_balance"`
	TotalIncome        float64       `json:"total_income"`
	TotalExpense       float64       `json:"total_expense"`
	Last60DaysIncome   IncomeWindow  `json:"last_60_days_income"`
	Last30DaysExpenses ExpenseWindow `json:"last_30_days_expenses"`
	RecentTransactions []Transaction `json:"recent_transactions"`
}

type Engine struct {
	Ledger Ledger
}

func NewEngine(ledger Ledger) *Engine {
	return &Engine{Ledger: ledger}
}

// Compute builds the full snapshot for one user as of now. Either every
// sub-aggregate is computed or the whole call fails; no partial snapshots.
func (e *Engine) Compute(userID uint, now time.Time) (*Snapshot, error) {
	incomes, err := e.Ledger.IncomesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: dashboard computation failed: %v", apperrors.ErrInternal, err)
	}
	expenses, err := e.Ledger.ExpensesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: dashboard computation failed: %v", apperrors.ErrInternal, err)
	}

	snap := &Snapshot{
		Last60DaysIncome:   incomeWindow(incomes, now.AddDate(0, 0, -incomeWindowDays)),
		Last30DaysExpenses: expenseWindow(expenses, now.AddDate(0, 0, -expenseWindowDays)),
		RecentTransactions: mergeRecent(incomes, expenses, recentLimit),
	}
	for _, inc := range incomes {
		snap.TotalIncome += inc.Amount
	}
	for _, exp := range expenses {
		snap.TotalExpense += exp.Amount
	}
	snap.TotalBalance = snap.TotalIncome - snap.TotalExpense

	return snap, nil
}

func incomeWindow(incomes []models.Income, cutoff time.Time) IncomeWindow {
	w := IncomeWindow{Transactions: []models.Income{}}
	for _, inc := range incomes {
		if inc.Date.Before(cutoff) {
			continue
		}
		w.Transactions = append(w.Transactions, inc)
		w.Total += inc.Amount
	}
	return w
}

func expenseWindow(expenses []models.Expense, cutoff time.Time) ExpenseWindow {
	w := ExpenseWindow{Transactions: []models.Expense{}}
	for _, exp := range expenses {
		if exp.Date.Before(cutoff) {
			continue
		}
		w.Transactions = append(w.Transactions, exp)
		w.Total += exp.Amount
	}
	return w
}

// mergeRecent merges the heads of the two date-descending lists into the
// overall most recent entries. On an exact date tie the income entry is
// taken first; callers must not rely on tie order.
func mergeRecent(incomes []models.Income, expenses []models.Expense, limit int) []Transaction {
	out := make([]Transaction, 0, limit)
	i, j := 0, 0
	for len(out) < limit && (i < len(incomes) || j < len(expenses)) {
		takeIncome := j >= len(expenses) ||
			(i < len(incomes) && !incomes[i].Date.Before(expenses[j].Date))
		if takeIncome {
			inc := incomes[i]
			out = append(out, Transaction{
				ID:     inc.ID,
				Kind:   "income",
				Icon:   inc.Icon,
				Label:  inc.Source,
				Amount: inc.Amount,
				Date:   inc.Date,
			})
			i++
		} else {
			exp := expenses[j]
			out = append(out, Transaction{
				ID:     exp.ID,
				Kind:   "expense",
				Icon:   exp.Icon,
				Label:  exp.Category,
				Amount: exp.Amount,
				Date:   exp.Date,
			})
			j++
		}
	}
	return out
}
