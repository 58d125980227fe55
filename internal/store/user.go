package store

import (
	"errors"
	"fmt"

	"github.com/VictorRuuan/Finance-Control/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateEmail is returned on registration with a taken email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound is returned on a lookup miss. Ownership-checked
	// lookups return it for foreign rows too.
	ErrNotFound = errors.New("record not found")
)

// UserStore persists user identities.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. Email uniqueness is enforced by the
// unique index, so two concurrent registrations of the same address
// serialize on the constraint rather than an application pre-check.
func (s *UserStore) Create(name, email, passwordHash string) (*models.User, error) {
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// FindByEmail looks a user up by exact email (case-sensitive as stored).
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID looks a user up by primary key.
func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}
