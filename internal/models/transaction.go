package models

import "time"

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single income or expense record.
// CategoryID is nullable: deleting a category sets it to NULL rather
// than dropping the transaction.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Date        time.Time `gorm:"index;not null" json:"date"`
	Description string    `gorm:"size:255" json:"description"`
	CategoryID  *uint     `gorm:"index" json:"category_id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`

	User     User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
