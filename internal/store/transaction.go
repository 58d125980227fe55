package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/VictorRuuan/Finance-Control/internal/models"

	"gorm.io/gorm"
)

// TransactionFields are the mutable fields of a transaction. Update
// replaces all of them at once.
type TransactionFields struct {
	Kind        string
	Description string
	AmountCents int64
	Category    string
	Date        time.Time
}

// TransactionStore persists financial records. Every operation takes
// the acting user id and only ever touches that user's rows.
type TransactionStore struct {
	db *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// Add inserts a new transaction owned by userID.
func (s *TransactionStore) Add(userID uint, f TransactionFields) (*models.Transaction, error) {
	tx := models.Transaction{
		UserID:      userID,
		Kind:        f.Kind,
		Description: f.Description,
		AmountCents: f.AmountCents,
		Category:    f.Category,
		Date:        f.Date,
	}
	if err := s.db.Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return &tx, nil
}

// List returns all and only the transactions owned by userID,
// newest date first.
func (s *TransactionStore) List(userID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// ListPage returns one page of the transactions owned by userID,
// newest date first, plus the total row count for that user.
func (s *TransactionStore) ListPage(userID uint, page, pageSize int) ([]models.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	if err := s.db.
		Model(&models.Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	var txs []models.Transaction
	if err := s.db.
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&txs).Error; err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return txs, total, nil
}

// Get returns one transaction owned by userID. A foreign id yields
// ErrNotFound, never the record: the ownership check is a security
// boundary, not a filter.
func (s *TransactionStore) Get(userID, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &tx, nil
}

// Update replaces the mutable fields of an owned transaction.
func (s *TransactionStore) Update(userID, id uint, f TransactionFields) (*models.Transaction, error) {
	tx, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	tx.Kind = f.Kind
	tx.Description = f.Description
	tx.AmountCents = f.AmountCents
	tx.Category = f.Category
	tx.Date = f.Date

	if err := s.db.Save(tx).Error; err != nil {
		return nil, fmt.Errorf("save transaction: %w", err)
	}
	return tx, nil
}

// Delete removes an owned transaction. Deleting a missing or foreign
// id is a silent no-op.
func (s *TransactionStore) Delete(userID, id uint) error {
	if err := s.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
