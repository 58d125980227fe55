package finance

import (
	"sort"

	"github.com/VictorRuuan/Finance-Control/internal/models"
)

// Ledger is the slice of the transaction store the aggregator needs.
type Ledger interface {
	List(userID uint) ([]models.Transaction, error)
}

// Summary is the dashboard view of one user's ledger. Categories is
// the sorted union of categories seen in either kind; the two series
// are parallel to it, zero-filled where a kind has no records.
type Summary struct {
	TotalIncomeCents  int64
	TotalExpenseCents int64
	BalanceCents      int64
	Categories        []string
	IncomeByCategory  []int64
	ExpenseByCategory []int64
}

// Aggregator computes dashboard summaries, fresh on every call.
type Aggregator struct {
	ledger Ledger
}

func NewAggregator(ledger Ledger) *Aggregator {
	return &Aggregator{ledger: ledger}
}

type categorySums struct {
	income  int64
	expense int64
}

// Summarize folds the user's transactions into totals and
// per-category sums. A category with only expenses still appears in
// the income series as 0, so both chart series share one axis.
func (a *Aggregator) Summarize(userID uint) (*Summary, error) {
	txs, err := a.ledger.List(userID)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]*categorySums)
	summary := &Summary{
		Categories:        []string{},
		IncomeByCategory:  []int64{},
		ExpenseByCategory: []int64{},
	}

	for i := range txs {
		tx := &txs[i]

		cs, ok := sums[tx.Category]
		if !ok {
			cs = &categorySums{}
			sums[tx.Category] = cs
		}

		if tx.Kind == models.KindIncome {
			summary.TotalIncomeCents += tx.AmountCents
			cs.income += tx.AmountCents
		} else {
			summary.TotalExpenseCents += tx.AmountCents
			cs.expense += tx.AmountCents
		}
	}
	summary.BalanceCents = summary.TotalIncomeCents - summary.TotalExpenseCents

	for category := range sums {
		summary.Categories = append(summary.Categories, category)
	}
	sort.Strings(summary.Categories)

	for _, category := range summary.Categories {
		cs := sums[category]
		summary.IncomeByCategory = append(summary.IncomeByCategory, cs.income)
		summary.ExpenseByCategory = append(summary.ExpenseByCategory, cs.expense)
	}

	return summary, nil
}
