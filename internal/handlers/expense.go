package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"fintrack/internal/apperrors"
	"fintrack/internal/models"
	"fintrack/internal/mykafka"
	"fintrack/internal/service/export"
	"fintrack/internal/service/search"
	"fintrack/internal/service/token"
	"fintrack/internal/store"
)

type ExpenseHandler struct {
	Ledger   *store.LedgerStore
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func (h *ExpenseHandler) Add(c echo.Context) error {
	var req struct {
		Icon     string  `json:"icon"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Date     string  `json:"date"`
	}
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", apperrors.ErrValidation)
	}
	if req.Category == "" || req.Amount == 0 || req.Date == "" {
		return fmt.Errorf("%w: category, amount and date are required", apperrors.ErrValidation)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	expense := models.Expense{
		UserID:   token.UserID(c),
		Icon:     req.Icon,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     date,
	}
	if err := h.Ledger.CreateExpense(&expense); err != nil {
		return err
	}

	publish(c, h.Producer, "transaction_events", fmt.Sprint(expense.UserID), map[string]interface{}{
		"type":    "expense_added",
		"id":      expense.ID,
		"user_id": expense.UserID,
		"amount":  expense.Amount,
	})
	indexTransaction(c, h.ES, h.ESIndex, search.Document{
		ID:     expense.ID,
		UserID: expense.UserID,
		Kind:   "expense",
		Icon:   expense.Icon,
		Label:  expense.Category,
		Amount: expense.Amount,
		Date:   expense.Date,
	})

	return respond(c, http.StatusCreated, expense, "expense added successfully")
}

func (h *ExpenseHandler) GetAll(c echo.Context) error {
	expenses, err := h.Ledger.ExpensesByUser(token.UserID(c))
	if err != nil {
		return err
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fmt.Errorf("%w: invalid expense id", apperrors.ErrValidation)
	}

	userID := token.UserID(c)
	if err := h.Ledger.DeleteExpense(userID, uint(id)); err != nil {
		return err
	}

	publish(c, h.Producer, "transaction_events", fmt.Sprint(userID), map[string]interface{}{
		"type":    "expense_deleted",
		"id":      id,
		"user_id": userID,
	})
	deleteTransaction(c, h.ES, h.ESIndex, "expense", uint(id))

	return respond(c, http.StatusOK, nil, "expense deleted successfully")
}

func (h *ExpenseHandler) DownloadExcel(c echo.Context) error {
	expenses, err := h.Ledger.ExpensesByUser(token.UserID(c))
	if err != nil {
		return err
	}

	buf, err := export.ExpenseWorkbook(expenses)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="expenses.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
