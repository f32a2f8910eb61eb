package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/thiagofalasca/finance-api/internal/apperr"
	"github.com/thiagofalasca/finance-api/internal/models"

	"gorm.io/gorm"
)

// AmountComparison selects how updates decide whether the amount changed.
type AmountComparison int

const (
	// CompareTruncated compares whole currency units only, so fractional
	// cent differences do not count as a change. This mirrors the
	// historically observed behavior and is the default.
	CompareTruncated AmountComparison = iota
	// CompareExact compares the full decimal value.
	CompareExact
)

// ParseAmountComparison maps the config literal to a policy.
func ParseAmountComparison(s string) AmountComparison {
	if s == "exact" {
		return CompareExact
	}
	return CompareTruncated
}

// TransactionService handles ownership-scoped transactions, including the
// monthly report and the per-user transaction counter.
type TransactionService struct {
	db         *gorm.DB
	users      *UserService
	categories *CategoryService
	amountCmp  AmountComparison
}

func NewTransactionService(db *gorm.DB, users *UserService, categories *CategoryService, amountCmp AmountComparison) *TransactionService {
	return &TransactionService{db: db, users: users, categories: categories, amountCmp: amountCmp}
}

// TransactionFilter drives List. OwnerID is only honored for admins.
type TransactionFilter struct {
	Page
	ID           uint
	Type         string
	Amount       *float64
	Date         *time.Time
	Description  string
	CategoryName string
	OwnerID      uint
}

// TransactionList is the paginated list response.
type TransactionList struct {
	TotalItems   int64                `json:"totalItems"`
	TotalPages   int                  `json:"totalPages"`
	CurrentPage  int                  `json:"currentPage"`
	Transactions []models.Transaction `json:"transactions"`
}

type CreateTransactionInput struct {
	Type         string
	Amount       float64
	Date         time.Time
	Description  string
	CategoryName string
	// OwnerID is the explicit target from the admin route body; zero
	// means "the caller".
	OwnerID uint
}

// UpdateTransactionInput carries a partial update; nil fields were not
// supplied.
type UpdateTransactionInput struct {
	Type         *string
	Amount       *float64
	Date         *time.Time
	Description  *string
	CategoryName *string
}

// TransactionUpdateResult is the {message, transaction} update response.
type TransactionUpdateResult struct {
	Message     string              `json:"message"`
	Transaction *models.Transaction `json:"transaction"`
}

// Report is the monthly summary. Amounts are summed as whole currency
// units, matching the comparison policy's truncating heritage.
type Report struct {
	Message      string `json:"message"`
	TotalIncome  int64  `json:"totalIncome"`
	TotalExpense int64  `json:"totalExpense"`
	Balance      int64  `json:"balance"`
}

// FindByID returns the transaction within the caller's scope.
func (s *TransactionService) FindByID(id, callerID uint, isAdmin bool) (*models.Transaction, error) {
	q := s.db.Where("id = ?", id)
	if !isAdmin {
		q = q.Where("user_id = ?", callerID)
	}

	var tx models.Transaction
	if err := q.First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Transaction not found.")
		}
		return nil, fmt.Errorf("find transaction %d: %w", id, err)
	}
	return &tx, nil
}

// resolveCategory requires the owner to have a category with that exact
// name.
func (s *TransactionService) resolveCategory(name string, ownerID uint) (*models.Category, error) {
	category, err := s.categories.FindByNameForOwner(name, ownerID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("Category not found.")
	}
	return category, nil
}

// List returns a page of transactions. The date filter matches the whole
// calendar day; the category filter resolves matching category names
// across owners into an id set first.
func (s *TransactionService) List(f TransactionFilter, callerID uint, isAdmin bool) (*TransactionList, error) {
	page, limit, offset := f.normalize()

	q := s.db.Model(&models.Transaction{})
	if f.ID != 0 {
		q = q.Where("id = ?", f.ID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Amount != nil {
		q = q.Where("amount = ?", *f.Amount)
	}
	if f.Date != nil {
		dayStart := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, f.Date.Location())
		q = q.Where("date >= ? AND date < ?", dayStart, dayStart.Add(24*time.Hour))
	}
	if f.Description != "" {
		q = q.Where("description LIKE ?", "%"+f.Description+"%")
	}
	if !isAdmin {
		q = q.Where("user_id = ?", callerID)
	} else if f.OwnerID != 0 {
		q = q.Where("user_id = ?", f.OwnerID)
	}
	if f.CategoryName != "" {
		categories, err := s.categories.FindAllByName(f.CategoryName)
		if err != nil {
			return nil, err
		}
		ids := make([]uint, 0, len(categories))
		for _, c := range categories {
			ids = append(ids, c.ID)
		}
		q = q.Where("category_id IN ?", ids)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count transactions: %w", err)
	}

	var transactions []models.Transaction
	if err := q.Offset(offset).Limit(limit).Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if len(transactions) == 0 {
		return nil, apperr.NotFound("No transactions found.")
	}

	return &TransactionList{
		TotalItems:   total,
		TotalPages:   totalPages(total, limit),
		CurrentPage:  page,
		Transactions: transactions,
	}, nil
}

// Create records a transaction for the effective owner, resolving the
// category by exact name within the owner's scope, and bumps the owner's
// transaction counter.
func (s *TransactionService) Create(in CreateTransactionInput, callerID uint, isAdmin bool) (*models.Transaction, error) {
	ownerID := callerID
	if isAdmin && in.OwnerID != 0 {
		ownerID = in.OwnerID
	}

	if _, err := s.users.FindByID(ownerID); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(in.CategoryName, ownerID)
	if err != nil {
		return nil, err
	}

	tx := models.Transaction{
		Type:        in.Type,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		CategoryID:  &category.ID,
		UserID:      ownerID,
	}
	if err := s.db.Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if err := s.users.AddTransactionCount(ownerID, 1); err != nil {
		return nil, err
	}
	return &tx, nil
}

// amountChanged applies the configured comparison policy.
func (s *TransactionService) amountChanged(stored, supplied float64) bool {
	if s.amountCmp == CompareExact {
		return stored != supplied
	}
	return int64(stored) != int64(supplied)
}

// Update applies a partial update within the caller's scope. Only fields
// that genuinely differ from the stored values are written; a supplied
// category name is re-resolved within the owner's scope first.
func (s *TransactionService) Update(id uint, in UpdateTransactionInput, callerID uint, isAdmin bool) (*TransactionUpdateResult, error) {
	tx, err := s.FindByID(id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.CategoryName != nil {
		category, err := s.resolveCategory(*in.CategoryName, tx.UserID)
		if err != nil {
			return nil, err
		}
		if tx.CategoryID == nil || *tx.CategoryID != category.ID {
			updates["category_id"] = category.ID
		}
	}
	if in.Type != nil && *in.Type != tx.Type {
		updates["type"] = *in.Type
	}
	if in.Amount != nil && s.amountChanged(tx.Amount, *in.Amount) {
		updates["amount"] = *in.Amount
	}
	if in.Date != nil && !in.Date.Equal(tx.Date) {
		updates["date"] = *in.Date
	}
	if in.Description != nil && *in.Description != tx.Description {
		updates["description"] = *in.Description
	}

	if len(updates) == 0 {
		return &TransactionUpdateResult{Message: "No data changed.", Transaction: tx}, nil
	}

	if err := s.db.Model(tx).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update transaction %d: %w", tx.ID, err)
	}
	return &TransactionUpdateResult{Message: "Data updated successfully!", Transaction: tx}, nil
}

// Delete removes the transaction within the caller's scope and decrements
// the owner's transaction counter.
func (s *TransactionService) Delete(id, callerID uint, isAdmin bool) (*Message, error) {
	tx, err := s.FindByID(id, callerID, isAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(tx).Error; err != nil {
		return nil, fmt.Errorf("delete transaction %d: %w", id, err)
	}
	if err := s.users.AddTransactionCount(tx.UserID, -1); err != nil {
		return nil, err
	}
	return &Message{Message: "Transaction deleted successfully."}, nil
}

// MonthlyReport sums the caller's transactions between the first and last
// day of the month, inclusive.
func (s *TransactionService) MonthlyReport(month, year int, callerID uint) (*Report, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var transactions []models.Transaction
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", callerID, start, end).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("report transactions: %w", err)
	}

	var totalIncome, totalExpense int64
	for _, tx := range transactions {
		switch tx.Type {
		case models.TypeIncome:
			totalIncome += int64(tx.Amount)
		case models.TypeExpense:
			totalExpense += int64(tx.Amount)
		}
	}

	return &Report{
		Message:      "Report generated successfully!",
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Balance:      totalIncome - totalExpense,
	}, nil
}

// ListAllForOwner returns every transaction of one owner, newest first.
// Used by the export endpoints.
func (s *TransactionService) ListAllForOwner(ownerID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.db.
		Where("user_id = ?", ownerID).
		Order("date DESC, id DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions for export: %w", err)
	}
	return transactions, nil
}

// CategoryNames resolves the category names for a set of transactions in
// one query. Transactions with a NULL category map to "".
func (s *TransactionService) CategoryNames(transactions []models.Transaction) (map[uint]string, error) {
	ids := make([]uint, 0, len(transactions))
	seen := map[uint]bool{}
	for _, tx := range transactions {
		if tx.CategoryID != nil && !seen[*tx.CategoryID] {
			seen[*tx.CategoryID] = true
			ids = append(ids, *tx.CategoryID)
		}
	}
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var categories []models.Category
	if err := s.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("resolve category names: %w", err)
	}
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
