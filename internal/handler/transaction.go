package handler

import (
	"net/http"

	"github.com/thiagofalasca/finance-api/internal/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler exposes the transaction service over HTTP.
type TransactionHandler struct {
	transactions *service.TransactionService
}

func NewTransactionHandler(transactions *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// List handles GET /transactions and GET /admins/transactions.
func (h *TransactionHandler) List(admin bool) gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.transactions.List(service.TransactionFilter{
			Page:         service.Page{Page: formInt(c, "page"), Limit: formInt(c, "limit")},
			ID:           formUint(c, "id"),
			Type:         formString(c, "type"),
			Amount:       optFloat(c, "amount"),
			Date:         optDate(c, "date"),
			Description:  formString(c, "description"),
			CategoryName: formString(c, "category_name"),
			OwnerID:      formUint(c, "user_id"),
		}, caller(c).UserID, admin)
	})
}

// Create handles POST /transactions and POST /admins/transactions.
func (h *TransactionHandler) Create(admin bool) gin.HandlerFunc {
	return Dispatch(http.StatusCreated, func(c *gin.Context) (interface{}, error) {
		return h.transactions.Create(service.CreateTransactionInput{
			Type:         formString(c, "type"),
			Amount:       formFloat(c, "amount"),
			Date:         formDate(c, "date"),
			Description:  formString(c, "description"),
			CategoryName: formString(c, "category_name"),
			OwnerID:      formUint(c, "user_id"),
		}, caller(c).UserID, admin)
	})
}

// Update handles PUT /transactions/:id and the admin variant.
func (h *TransactionHandler) Update(admin bool) gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.transactions.Update(formUint(c, "id"), service.UpdateTransactionInput{
			Type:         optString(c, "type"),
			Amount:       optFloat(c, "amount"),
			Date:         optDate(c, "date"),
			Description:  optString(c, "description"),
			CategoryName: optString(c, "category_name"),
		}, caller(c).UserID, admin)
	})
}

// Delete handles DELETE /transactions/:id and the admin variant.
func (h *TransactionHandler) Delete(admin bool) gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.transactions.Delete(formUint(c, "id"), caller(c).UserID, admin)
	})
}

// Report handles GET /transactions/report.
func (h *TransactionHandler) Report() gin.HandlerFunc {
	return Dispatch(http.StatusOK, func(c *gin.Context) (interface{}, error) {
		return h.transactions.MonthlyReport(
			formInt(c, "month"),
			formInt(c, "year"),
			caller(c).UserID,
		)
	})
}
