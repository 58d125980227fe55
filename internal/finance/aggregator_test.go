package finance

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/VictorRuuan/Finance-Control/internal/models"
)

type fakeLedger struct {
	txs map[uint][]models.Transaction
	err error
}

func (f *fakeLedger) List(userID uint) ([]models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.txs[userID], nil
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAggregator_EmptyLedger(t *testing.T) {
	a := NewAggregator(&fakeLedger{txs: map[uint][]models.Transaction{}})

	s, err := a.Summarize(1)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if s.TotalIncomeCents != 0 || s.TotalExpenseCents != 0 || s.BalanceCents != 0 {
		t.Errorf("totals = %d/%d/%d, want 0/0/0",
			s.TotalIncomeCents, s.TotalExpenseCents, s.BalanceCents)
	}
	if len(s.Categories) != 0 || len(s.IncomeByCategory) != 0 || len(s.ExpenseByCategory) != 0 {
		t.Errorf("breakdowns not empty: %v %v %v",
			s.Categories, s.IncomeByCategory, s.ExpenseByCategory)
	}
}

func TestAggregator_UnionAndZeroFill(t *testing.T) {
	ledger := &fakeLedger{txs: map[uint][]models.Transaction{
		1: {
			{UserID: 1, Kind: "income", Description: "Salary", AmountCents: 100000, Category: "Salary", Date: day("2024-01-01")},
			{UserID: 1, Kind: "expense", Description: "Food", AmountCents: 20000, Category: "Food", Date: day("2024-01-02")},
			{UserID: 1, Kind: "expense", Description: "Rent", AmountCents: 80000, Category: "Rent", Date: day("2024-01-03")},
		},
	}}
	a := NewAggregator(ledger)

	s, err := a.Summarize(1)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if s.TotalIncomeCents != 100000 {
		t.Errorf("TotalIncomeCents = %d, want 100000", s.TotalIncomeCents)
	}
	if s.TotalExpenseCents != 100000 {
		t.Errorf("TotalExpenseCents = %d, want 100000", s.TotalExpenseCents)
	}
	if s.BalanceCents != 0 {
		t.Errorf("BalanceCents = %d, want 0", s.BalanceCents)
	}

	// sorted union of categories from both kinds, zero-filled per kind
	wantCategories := []string{"Food", "Rent", "Salary"}
	if !reflect.DeepEqual(s.Categories, wantCategories) {
		t.Errorf("Categories = %v, want %v", s.Categories, wantCategories)
	}
	wantIncome := []int64{0, 0, 100000}
	if !reflect.DeepEqual(s.IncomeByCategory, wantIncome) {
		t.Errorf("IncomeByCategory = %v, want %v", s.IncomeByCategory, wantIncome)
	}
	wantExpense := []int64{20000, 80000, 0}
	if !reflect.DeepEqual(s.ExpenseByCategory, wantExpense) {
		t.Errorf("ExpenseByCategory = %v, want %v", s.ExpenseByCategory, wantExpense)
	}
}

func TestAggregator_SameCategoryBothKinds(t *testing.T) {
	ledger := &fakeLedger{txs: map[uint][]models.Transaction{
		1: {
			{UserID: 1, Kind: "income", AmountCents: 5000, Category: "Misc", Date: day("2024-01-01")},
			{UserID: 1, Kind: "expense", AmountCents: 3000, Category: "Misc", Date: day("2024-01-02")},
			{UserID: 1, Kind: "income", AmountCents: 2500, Category: "Misc", Date: day("2024-01-05")},
		},
	}}
	a := NewAggregator(ledger)

	s, err := a.Summarize(1)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if !reflect.DeepEqual(s.Categories, []string{"Misc"}) {
		t.Fatalf("Categories = %v, want [Misc]", s.Categories)
	}
	if s.IncomeByCategory[0] != 7500 || s.ExpenseByCategory[0] != 3000 {
		t.Errorf("Misc sums = %d/%d, want 7500/3000",
			s.IncomeByCategory[0], s.ExpenseByCategory[0])
	}
	if s.BalanceCents != 4500 {
		t.Errorf("BalanceCents = %d, want 4500", s.BalanceCents)
	}
}

func TestAggregator_PropagatesLedgerError(t *testing.T) {
	wantErr := errors.New("db down")
	a := NewAggregator(&fakeLedger{err: wantErr})

	if _, err := a.Summarize(1); !errors.Is(err, wantErr) {
		t.Errorf("Summarize() error = %v, want %v", err, wantErr)
	}
}
