package handler

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/VictorRuuan/Finance-Control/internal/finance"
	"github.com/VictorRuuan/Finance-Control/internal/middleware"
	"github.com/VictorRuuan/Finance-Control/internal/util"

	"github.com/gin-gonic/gin"
)

// DashboardHandler renders and serves the aggregated ledger summary.
type DashboardHandler struct {
	Agg *finance.Aggregator
}

func NewDashboardHandler(agg *finance.Aggregator) *DashboardHandler {
	return &DashboardHandler{Agg: agg}
}

// Dashboard renders the summary page. Chart series go in as JSON
// literals for the inline chart script.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	summary, err := h.Agg.Summarize(user.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"Title": "Finance Control - Dashboard",
			"Error": "Failed to load summary",
		})
		return
	}

	labels, _ := json.Marshal(summary.Categories)
	income, _ := json.Marshal(centsToDecimals(summary.IncomeByCategory))
	expense, _ := json.Marshal(centsToDecimals(summary.ExpenseByCategory))

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title":        "Finance Control - Dashboard",
		"Name":         user.Name,
		"TotalIncome":  util.FormatCents(summary.TotalIncomeCents),
		"TotalExpense": util.FormatCents(summary.TotalExpenseCents),
		"Balance":      util.FormatCents(summary.BalanceCents),
		"ChartLabels":  template.JS(labels),
		"ChartIncome":  template.JS(income),
		"ChartExpense": template.JS(expense),
	})
}

// APISummary returns the summary as JSON for API clients.
func (h *DashboardHandler) APISummary(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	summary, err := h.Agg.Summarize(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "summary failed")
		return
	}

	util.Success(c, util.Response{
		"total_income_cents":  summary.TotalIncomeCents,
		"total_income":        util.FormatCents(summary.TotalIncomeCents),
		"total_expense_cents": summary.TotalExpenseCents,
		"total_expense":       util.FormatCents(summary.TotalExpenseCents),
		"balance_cents":       summary.BalanceCents,
		"balance":             util.FormatCents(summary.BalanceCents),
		"categories":          summary.Categories,
		"income_by_category":  summary.IncomeByCategory,
		"expense_by_category": summary.ExpenseByCategory,
	})
}

func centsToDecimals(cents []int64) []float64 {
	out := make([]float64, 0, len(cents))
	for _, c := range cents {
		out = append(out, float64(c)/100.0)
	}
	return out
}
