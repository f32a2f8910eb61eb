package service

import (
	"testing"
	"time"

	"github.com/thiagofalasca/finance-api/internal/apperr"
	"github.com/thiagofalasca/finance-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("resolves category and bumps the counter", func(t *testing.T) {
		ts := newTestServices(t)
		alice := ts.mustRegister(t, "Alice", "alice@example.com", false)
		food := ts.mustCreateCategory(t, "Food", alice.ID)

		tx, err := ts.transactions.Create(CreateTransactionInput{
			Type:         models.TypeExpense,
			Amount:       42.50,
			Date:         day(2024, time.March, 10),
			Description:  "groceries",
			CategoryName: "Food",
		}, alice.ID, false)
		require.NoError(t, err)
		require.NotNil(t, tx.CategoryID)
		assert.Equal(t, food.ID, *tx.CategoryID)
		assert.Equal(t, alice.ID, tx.UserID)

		owner, err := ts.users.FindByID(alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, owner.NumTransactions)
	})

	t.Run("unknown category name", func(t *testing.T) {
		ts := newTestServices(t)
		alice := ts.mustRegister(t, "Alice", "alice@example.com", false)

		_, err := ts.transactions.Create(CreateTransactionInput{
			Type:         models.TypeExpense,
			Amount:       10,
			Date:         day(2024, time.March, 10),
			CategoryName: "Food",
		}, alice.ID, false)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindNotFound, appErr.Kind)
		assert.Equal(t, "Category not found.", appErr.Message)
	})

	t.Run("category resolved within the owner's scope", func(t *testing.T) {
		ts := newTestServices(t)
		admin := ts.mustRegister(t, "Admin", "admin@example.com", true)
		alice := ts.mustRegister(t, "Alice", "alice@example.com", false)
		ts.mustCreateCategory(t, "Food", admin.ID)

		// admin creates for alice, who has no "Food" category
		_, err := ts.transactions.Create(CreateTransactionInput{
			Type:         models.TypeExpense,
			Amount:       10,
			Date:         day(2024, time.March, 10),
			CategoryName: "Food",
			OwnerID:      alice.ID,
		}, admin.ID, true)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindNotFound, appErr.Kind)
	})
}

func TestTransactionOwnershipScope(t *testing.T) {
	ts := newTestServices(t)
	alice := ts.mustRegister(t, "Alice", "alice@example.com", false)
	bob := ts.mustRegister(t, "Bob", "bob@example.com", false)
	admin := ts.mustRegister(t, "Admin", "admin@example.com", true)
	ts.mustCreateCategory(t, "Food", alice.ID)
	tx := ts.mustCreateTransaction(t, alice.ID, models.TypeExpense, 20, day(2024, time.March, 10), "Food")

	_, err := ts.transactions.FindByID(tx.ID, bob.ID, false)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
	assert.Equal(t, "Transaction not found.", appErr.Message)

	got, err := ts.transactions.FindByID(tx.ID, admin.ID, true)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.UserID)
}

func TestListTransactions(t *testing.T) {
	ts := newTestServices(t)
	alice := ts.mustRegister(t, "Alice", "alice@example.com", false)
	bob := ts.mustRegister(t, "Bob", "bob@example.com", false)
	ts.mustCreateCategory(t, "Food", alice.ID)
	ts.mustCreateCategory(t, "Food", bob.ID)
	ts.mustCreateCategory(t, "Rent", alice.ID)

	ts.mustCreateTransaction(t, alice.ID, models.TypeExpense, 20, day(2024, time.March, 10).Add(9*time.Hour), "Food")
	ts.mustCreateTransaction(t, alice.ID, models.TypeExpense, 30, day(2024, time.March, 10).Add(18*time.Hour), "Rent")
	ts.mustCreateTransaction(t, alice.ID, models.TypeIncome, 100, day(2024, time.March, 11), "Food")
	ts.mustCreateTransaction(t, bob.ID, models.TypeExpense, 55, day(2024, time.March, 10), "Food")

	t.Run("scoped to the caller", func(t *testing.T) {
		list, err := ts.transactions.List(TransactionFilter{}, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, int64(3), list.TotalItems)
		assert.Equal(t, 1, list.TotalPages)
	})

	t.Run("date filter matches the whole day", func(t *testing.T) {
		d := day(2024, time.March, 10)
		list, err := ts.transactions.List(TransactionFilter{Date: &d}, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.TotalItems)
	})

	t.Run("category filter spans owners for admins", func(t *testing.T) {
		admin := ts.mustRegister(t, "Admin", "admin@example.com", true)
		list, err := ts.transactions.List(TransactionFilter{CategoryName: "Food"}, admin.ID, true)
		require.NoError(t, err)
		assert.Equal(t, int64(3), list.TotalItems)
	})

	t.Run("type filter", func(t *testing.T) {
		list, err := ts.transactions.List(TransactionFilter{Type: models.TypeIncome}, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), list.TotalItems)
	})

	t.Run("empty result page is a miss", func(t *testing.T) {
		_, err := ts.transactions.List(TransactionFilter{Page: Page{Page: 9, Limit: 5}}, alice.ID, false)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindNotFound, appErr.Kind)
		assert.Equal(t, "No transactions found.", appErr.Message)
	})
}

func TestUpdateTransaction(t *testing.T) {
	ts := newTestServices(t)
	alice := ts.mustRegister(t, "Alice", "alice@example.com", false)
	ts.mustCreateCategory(t, "Food", alice.ID)
	rent := ts.mustCreateCategory(t, "Rent", alice.ID)
	tx := ts.mustCreateTransaction(t, alice.ID, models.TypeExpense, 42.50, day(2024, time.March, 10), "Food")

	t.Run("identical values are a no-op", func(t *testing.T) {
		typ := models.TypeExpense
		amount := 42.50
		result, err := ts.transactions.Update(tx.ID, UpdateTransactionInput{
			Type:   &typ,
			Amount: &amount,
		}, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "No data changed.", result.Message)
	})

	t.Run("cent-level amount change is a no-op under truncated comparison", func(t *testing.T) {
		amount := 42.99
		result, err := ts.transactions.Update(tx.ID, UpdateTransactionInput{Amount: &amount}, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "No data changed.", result.Message)
	})

	t.Run("exact comparison counts cents", func(t *testing.T) {
		exact := NewTransactionService(ts.db, ts.users, ts.categories, CompareExact)
		amount := 42.99
		result, err := exact.Update(tx.ID, UpdateTransactionInput{Amount: &amount}, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "Data updated successfully!", result.Message)

		// restore for the following subtests
		amount = 42.50
		_, err = exact.Update(tx.ID, UpdateTransactionInput{Amount: &amount}, alice.ID, false)
		require.NoError(t, err)
	})

	t.Run("category change by name", func(t *testing.T) {
		name := "Rent"
		result, err := ts.transactions.Update(tx.ID, UpdateTransactionInput{CategoryName: &name}, alice.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "Data updated successfully!", result.Message)
		require.NotNil(t, result.Transaction.CategoryID)
		assert.Equal(t, rent.ID, *result.Transaction.CategoryID)
	})

	t.Run("unknown category name fails", func(t *testing.T) {
		name := "Travel"
		_, err := ts.transactions.Update(tx.ID, UpdateTransactionInput{CategoryName: &name}, alice.ID, false)
		var appErr *apperr.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperr.KindNotFound, appErr.Kind)
	})
}

func TestDeleteTransactionDecrementsOwner(t *testing.T) {
	ts := newTestServices(t)
	admin := ts.mustRegister(t, "Admin", "admin@example.com", true)
	alice := ts.mustRegister(t, "Alice", "alice@example.com", false)
	ts.mustCreateCategory(t, "Food", alice.ID)
	tx := ts.mustCreateTransaction(t, alice.ID, models.TypeExpense, 20, day(2024, time.March, 10), "Food")

	owner, err := ts.users.FindByID(alice.ID)
	require.NoError(t, err)
	require.Equal(t, 1, owner.NumTransactions)

	// admin deletes, the owner's counter goes down
	msg, err := ts.transactions.Delete(tx.ID, admin.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Transaction deleted successfully.", msg.Message)

	owner, err = ts.users.FindByID(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, owner.NumTransactions)

	_, err = ts.transactions.FindByID(tx.ID, alice.ID, false)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestMonthlyReport(t *testing.T) {
	ts := newTestServices(t)
	alice := ts.mustRegister(t, "Alice", "alice@example.com", false)
	bob := ts.mustRegister(t, "Bob", "bob@example.com", false)
	ts.mustCreateCategory(t, "Food", alice.ID)
	ts.mustCreateCategory(t, "Food", bob.ID)

	ts.mustCreateTransaction(t, alice.ID, models.TypeIncome, 100, day(2024, time.March, 1), "Food")
	ts.mustCreateTransaction(t, alice.ID, models.TypeExpense, 40, day(2024, time.March, 31), "Food")
	ts.mustCreateTransaction(t, alice.ID, models.TypeExpense, 75, day(2024, time.April, 1), "Food")
	ts.mustCreateTransaction(t, bob.ID, models.TypeIncome, 500, day(2024, time.March, 15), "Food")

	report, err := ts.transactions.MonthlyReport(3, 2024, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Report generated successfully!", report.Message)
	assert.Equal(t, int64(100), report.TotalIncome)
	assert.Equal(t, int64(40), report.TotalExpense)
	assert.Equal(t, int64(60), report.Balance)

	t.Run("empty month reports zeros", func(t *testing.T) {
		report, err := ts.transactions.MonthlyReport(1, 2024, alice.ID)
		require.NoError(t, err)
		assert.Zero(t, report.TotalIncome)
		assert.Zero(t, report.TotalExpense)
		assert.Zero(t, report.Balance)
	})
}

func TestCategoryNames(t *testing.T) {
	ts := newTestServices(t)
	alice := ts.mustRegister(t, "Alice", "alice@example.com", false)
	food := ts.mustCreateCategory(t, "Food", alice.ID)
	ts.mustCreateTransaction(t, alice.ID, models.TypeExpense, 20, day(2024, time.March, 10), "Food")

	transactions, err := ts.transactions.ListAllForOwner(alice.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	names, err := ts.transactions.CategoryNames(transactions)
	require.NoError(t, err)
	assert.Equal(t, "Food", names[food.ID])
}
