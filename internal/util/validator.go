package util

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/VictorRuuan/Finance-Control/internal/models"
)

// ValidationError reports a rejected write field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// ParseAmountCents parses a decimal amount string into cents.
// The amount must be positive and below the 10 million cap.
func ParseAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: "amount", Reason: "is required"}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if f <= 0 {
		return 0, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if f >= 10_000_000 {
		return 0, &ValidationError{Field: "amount", Reason: "too large"}
	}
	cents := int64(math.Round(f * 100))
	if cents <= 0 {
		return 0, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return cents, nil
}

// FormatCents renders cents as a decimal string with two digits.
func FormatCents(cents int64) string {
	return strconv.FormatFloat(float64(cents)/100.0, 'f', 2, 64)
}

// ParseDate parses a calendar date (must be YYYY-MM-DD), midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ValidationError{Field: "date", Reason: "is required"}
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return t, nil
}

// ValidateKind checks the kind against the recognized set.
func ValidateKind(kind string) error {
	if kind != models.KindIncome && kind != models.KindExpense {
		return &ValidationError{Field: "kind", Reason: "must be income or expense"}
	}
	return nil
}

// ValidateCategory checks the category label (non-empty, reasonable length).
func ValidateCategory(category string) error {
	if category == "" {
		return &ValidationError{Field: "category", Reason: "is required"}
	}
	if len(category) > 64 {
		return &ValidationError{Field: "category", Reason: "too long, max 64 characters"}
	}
	return nil
}
