package service

import (
	"testing"
	"time"

	"github.com/thiagofalasca/finance-api/internal/models"
	"github.com/thiagofalasca/finance-api/internal/token"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database, capped to one connection
// so every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
	))
	return db
}

type testServices struct {
	db           *gorm.DB
	users        *UserService
	categories   *CategoryService
	transactions *TransactionService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := newTestDB(t)
	tokens := token.NewManager("test-secret", time.Hour)
	users := NewUserService(db, tokens, 4) // minimal cost, tests only
	categories := NewCategoryService(db, users)
	transactions := NewTransactionService(db, users, categories, CompareTruncated)
	return &testServices{db: db, users: users, categories: categories, transactions: transactions}
}

func (ts *testServices) mustRegister(t *testing.T, name, email string, isAdmin bool) *models.User {
	t.Helper()

	user, err := ts.users.Register(RegisterInput{
		Name:     name,
		Email:    email,
		Password: "longenough",
	}, isAdmin)
	require.NoError(t, err)
	return user
}

func (ts *testServices) mustCreateCategory(t *testing.T, name string, ownerID uint) *models.Category {
	t.Helper()

	category, err := ts.categories.Create(name, 0, ownerID, false)
	require.NoError(t, err)
	return category
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func (ts *testServices) mustCreateTransaction(t *testing.T, ownerID uint, typ string, amount float64, date time.Time, categoryName string) *models.Transaction {
	t.Helper()

	tx, err := ts.transactions.Create(CreateTransactionInput{
		Type:         typ,
		Amount:       amount,
		Date:         date,
		Description:  "test",
		CategoryName: categoryName,
	}, ownerID, false)
	require.NoError(t, err)
	return tx
}
