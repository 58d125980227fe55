package models

import "time"

// Recognized transaction kinds.
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// Transaction represents a single income or expense record.
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Kind        string    `gorm:"size:16;index;not null"` // income / expense
	Description string    `gorm:"size:255;not null"`
	AmountCents int64     `gorm:"not null"` // store in cents to avoid float
	Category    string    `gorm:"size:64;index;not null"`
	Date        time.Time `gorm:"index;not null"` // calendar date, midnight UTC
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
