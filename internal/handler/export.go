package handler

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/thiagofalasca/finance-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves the caller's transactions as CSV or XLSX.
type ExportHandler struct {
	transactions *service.TransactionService
}

func NewExportHandler(transactions *service.TransactionService) *ExportHandler {
	return &ExportHandler{transactions: transactions}
}

var exportHeaders = []string{"Type", "Category", "Amount", "Description", "Date"}

func (h *ExportHandler) exportRows(c *gin.Context) ([][]string, error) {
	transactions, err := h.transactions.ListAllForOwner(caller(c).UserID)
	if err != nil {
		return nil, err
	}
	names, err := h.transactions.CategoryNames(transactions)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(transactions))
	for _, tx := range transactions {
		categoryName := ""
		if tx.CategoryID != nil {
			categoryName = names[*tx.CategoryID]
		}
		rows = append(rows, []string{
			tx.Type,
			categoryName,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Description,
			tx.Date.Format("2006-01-02"),
		})
	}
	return rows, nil
}

// CSV handles GET /transactions/export/csv.
func (h *ExportHandler) CSV() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.exportRows(c)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
			time.Now().Format("20060102")))

		writer := csv.NewWriter(c.Writer)
		defer writer.Flush()

		_ = writer.Write(exportHeaders)
		for _, row := range rows {
			_ = writer.Write(row)
		}
	}
}

// XLSX handles GET /transactions/export/xlsx.
func (h *ExportHandler) XLSX() gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.exportRows(c)
		if err != nil {
			_ = c.Error(err)
			return
		}

		f := excelize.NewFile()
		sheetName := "Transactions"
		index, err := f.NewSheet(sheetName)
		if err != nil {
			_ = c.Error(err)
			return
		}
		f.SetActiveSheet(index)

		for i, header := range exportHeaders {
			cell := fmt.Sprintf("%c1", 'A'+i)
			_ = f.SetCellValue(sheetName, cell, header)
		}
		for idx, row := range rows {
			for i, value := range row {
				cell := fmt.Sprintf("%c%d", 'A'+i, idx+2)
				_ = f.SetCellValue(sheetName, cell, value)
			}
		}

		_ = f.SetColWidth(sheetName, "A", "A", 10)
		_ = f.SetColWidth(sheetName, "B", "B", 15)
		_ = f.SetColWidth(sheetName, "C", "C", 12)
		_ = f.SetColWidth(sheetName, "D", "D", 30)
		_ = f.SetColWidth(sheetName, "E", "E", 12)

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
			time.Now().Format("20060102")))

		if err := f.Write(c.Writer); err != nil {
			_ = c.Error(err)
		}
	}
}
