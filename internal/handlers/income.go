package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"fintrack/internal/apperrors"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/mykafka"
	"fintrack/internal/service/export"
	"fintrack/internal/service/search"
	"fintrack/internal/service/token"
	"fintrack/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type IncomeHandler struct {
	Ledger   *store.LedgerStore
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func (h *IncomeHandler) Add(c echo.Context) error {
	var req struct {
		Icon   string  `json:"icon"`
		Source string  `json:"source"`
		Amount float64 `json:"amount"`
		Date   string  `json:"date"`
	}
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", apperrors.ErrValidation)
	}
	if req.Source == "" || req.Amount == 0 || req.Date == "" {
		return fmt.Errorf("%w: source, amount and date are required", apperrors.ErrValidation)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	income := models.Income{
		UserID: token.UserID(c),
		Icon:   req.Icon,
		Source: req.Source,
		Amount: req.Amount,
		Date:   date,
	}
	if err := h.Ledger.CreateIncome(&income); err != nil {
		return err
	}

	publish(c, h.Producer, "transaction_events", fmt.Sprint(income.UserID), map[string]interface{}{
		"type":    "income_added",
		"id":      income.ID,
		"user_id": income.UserID,
		"amount":  income.Amount,
	})
	indexTransaction(c, h.ES, h.ESIndex, search.Document{
		ID:     income.ID,
		UserID: income.UserID,
		Kind:   "income",
		Icon:   income.Icon,
		Label:  income.Source,
		Amount: income.Amount,
		Date:   income.Date,
	})

	return respond(c, http.StatusCreated, income, "income added successfully")
}

func (h *IncomeHandler) GetAll(c echo.Context) error {
	incomes, err := h.Ledger.IncomesByUser(token.UserID(c))
	if err != nil {
		return err
	}
	if incomes == nil {
		incomes = []models.Income{}
	}
	return c.JSON(http.StatusOK, incomes)
}

func (h *IncomeHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fmt.Errorf("%w: invalid income id", apperrors.ErrValidation)
	}

	userID := token.UserID(c)
	if err := h.Ledger.DeleteIncome(userID, uint(id)); err != nil {
		return err
	}

	publish(c, h.Producer, "transaction_events", fmt.Sprint(userID), map[string]interface{}{
		"type":    "income_deleted",
		"id":      id,
		"user_id": userID,
	})
	deleteTransaction(c, h.ES, h.ESIndex, "income", uint(id))

	return respond(c, http.StatusOK, nil, "income deleted successfully")
}

func (h *IncomeHandler) DownloadExcel(c echo.Context) error {
	incomes, err := h.Ledger.IncomesByUser(token.UserID(c))
	if err != nil {
		return err
	}

	buf, err := export.IncomeWorkbook(incomes)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="incomes.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// indexTransaction mirrors a ledger record into the search index, best
// effort. Requests never fail because the index is down or unconfigured.
func indexTransaction(c echo.Context, es *elasticsearch.Client, index string, doc search.Document) {
	if es == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.Index(ctx, es, index, doc); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index failed", "error", err)
	}
}

func deleteTransaction(c echo.Context, es *elasticsearch.Client, index, kind string, id uint) {
	if es == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.Delete(ctx, es, index, kind, id); err != nil {
		logging.FromContext(c.Request().Context()).Error("es delete failed", "error", err)
	}
}
