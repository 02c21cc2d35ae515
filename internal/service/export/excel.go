package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/models"
)

const dateLayout = "02 Jan 2006"

// IncomeWorkbook renders the user's income records into a single-sheet xlsx
// workbook, one row per record.
func IncomeWorkbook(incomes []models.Income) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(incomes))
	for _, inc := range incomes {
		rows = append(rows, []interface{}{inc.Source, inc.Amount, inc.Date.Format(dateLayout)})
	}
	return workbook("Incomes", []string{"Source", "Amount", "Date"}, rows)
}

// ExpenseWorkbook renders the user's expense records the same way.
func ExpenseWorkbook(expenses []models.Expense) (*bytes.Buffer, error) {
	rows := make([][]interface{}, 0, len(expenses))
	for _, exp := range expenses {
		rows = append(rows, []interface{}{exp.Category, exp.Amount, exp.Date.Format(dateLayout)})
	}
	return workbook("Expenses", []string{"Category", "Amount", "Date"}, rows)
}

func workbook(sheet string, headers []string, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf, nil
}
