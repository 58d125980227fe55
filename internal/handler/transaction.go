package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/VictorRuuan/Finance-Control/internal/middleware"
	"github.com/VictorRuuan/Finance-Control/internal/models"
	"github.com/VictorRuuan/Finance-Control/internal/store"
	"github.com/VictorRuuan/Finance-Control/internal/util"

	"github.com/gin-gonic/gin"
)

// TransactionHandler owns the owner-scoped transaction CRUD, browser
// and JSON API surfaces alike.
type TransactionHandler struct {
	Ledger   *store.TransactionStore
	PageSize int
}

func NewTransactionHandler(ledger *store.TransactionStore, pageSize int) *TransactionHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &TransactionHandler{Ledger: ledger, PageSize: pageSize}
}

// ---------- request/response shapes ----------

type transactionReq struct {
	Kind        string `json:"kind" binding:"required,oneof=income expense"`
	Description string `json:"description" binding:"max=255"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required,max=64"`
	Date        string `json:"date" binding:"required"`
}

type transactionResp struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"` // decimal string for display
	Category    string    `json:"category"`
	Date        string    `json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionResp(tx *models.Transaction) transactionResp {
	return transactionResp{
		ID:          tx.ID,
		Kind:        tx.Kind,
		Description: tx.Description,
		AmountCents: tx.AmountCents,
		Amount:      util.FormatCents(tx.AmountCents),
		Category:    tx.Category,
		Date:        tx.Date.Format("2006-01-02"),
		CreatedAt:   tx.CreatedAt,
	}
}

// parseFields validates raw write input into ledger fields. The kind
// set is closed: anything but income/expense is rejected outright.
func parseFields(kind, description, amount, category, date string) (store.TransactionFields, error) {
	var f store.TransactionFields

	kind = strings.TrimSpace(kind)
	if err := util.ValidateKind(kind); err != nil {
		return f, err
	}

	category = strings.TrimSpace(category)
	if err := util.ValidateCategory(category); err != nil {
		return f, err
	}

	amountCents, err := util.ParseAmountCents(amount)
	if err != nil {
		return f, err
	}

	day, err := util.ParseDate(date)
	if err != nil {
		return f, err
	}

	f.Kind = kind
	f.Description = strings.TrimSpace(description)
	f.AmountCents = amountCents
	f.Category = category
	f.Date = day
	return f, nil
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// ---------- browser flows ----------

type transactionItem struct {
	ID          uint
	Kind        string
	Description string
	Amount      string
	Category    string
	Date        string
}

func toItems(txs []models.Transaction) []transactionItem {
	items := make([]transactionItem, 0, len(txs))
	for i := range txs {
		tx := &txs[i]
		items = append(items, transactionItem{
			ID:          tx.ID,
			Kind:        tx.Kind,
			Description: tx.Description,
			Amount:      util.FormatCents(tx.AmountCents),
			Category:    tx.Category,
			Date:        tx.Date.Format("2006-01-02"),
		})
	}
	return items
}

// List renders the transactions page.
func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	h.renderList(c, user.ID, http.StatusOK, c.Query("error"))
}

func (h *TransactionHandler) renderList(c *gin.Context, userID uint, status int, errMsg string) {
	txs, err := h.Ledger.List(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "transactions.html", gin.H{
			"Title": "Finance Control - Transactions",
			"Error": "Failed to load transactions",
		})
		return
	}

	c.HTML(status, "transactions.html", gin.H{
		"Title": "Finance Control - Transactions",
		"Items": toItems(txs),
		"Error": errMsg,
	})
}

// Add handles the new-transaction form post.
func (h *TransactionHandler) Add(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	f, err := parseFields(
		c.PostForm("kind"),
		c.PostForm("description"),
		c.PostForm("amount"),
		c.PostForm("category"),
		c.PostForm("date"),
	)
	if err != nil {
		h.renderList(c, user.ID, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Ledger.Add(user.ID, f); err != nil {
		h.renderList(c, user.ID, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	c.Redirect(http.StatusSeeOther, "/transactions")
}

// EditForm renders the edit page for an owned transaction.
func (h *TransactionHandler) EditForm(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/transactions")
		return
	}

	tx, err := h.Ledger.Get(user.ID, id)
	if err != nil {
		// foreign and missing ids look the same on purpose
		c.Redirect(http.StatusSeeOther, "/transactions")
		return
	}

	c.HTML(http.StatusOK, "transaction_edit.html", gin.H{
		"Title": "Finance Control - Edit Transaction",
		"Item": transactionItem{
			ID:          tx.ID,
			Kind:        tx.Kind,
			Description: tx.Description,
			Amount:      util.FormatCents(tx.AmountCents),
			Category:    tx.Category,
			Date:        tx.Date.Format("2006-01-02"),
		},
	})
}

// Edit handles the edit form post: full replace of the mutable fields.
func (h *TransactionHandler) Edit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/transactions")
		return
	}

	f, err := parseFields(
		c.PostForm("kind"),
		c.PostForm("description"),
		c.PostForm("amount"),
		c.PostForm("category"),
		c.PostForm("date"),
	)
	if err != nil {
		tx, getErr := h.Ledger.Get(user.ID, id)
		if getErr != nil {
			c.Redirect(http.StatusSeeOther, "/transactions")
			return
		}
		c.HTML(http.StatusBadRequest, "transaction_edit.html", gin.H{
			"Title": "Finance Control - Edit Transaction",
			"Error": err.Error(),
			"Item": transactionItem{
				ID:          tx.ID,
				Kind:        tx.Kind,
				Description: tx.Description,
				Amount:      util.FormatCents(tx.AmountCents),
				Category:    tx.Category,
				Date:        tx.Date.Format("2006-01-02"),
			},
		})
		return
	}

	if _, err := h.Ledger.Update(user.ID, id, f); err != nil {
		c.Redirect(http.StatusSeeOther, "/transactions")
		return
	}

	c.Redirect(http.StatusSeeOther, "/transactions")
}

// Delete removes an owned transaction; a miss is a silent no-op.
func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if id, ok := pathID(c); ok {
		_ = h.Ledger.Delete(user.ID, id)
	}

	c.Redirect(http.StatusSeeOther, "/transactions")
}

// ---------- JSON API ----------

func (h *TransactionHandler) APIList(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	txs, total, err := h.Ledger.ListPage(user.ID, page, h.PageSize)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list failed")
		return
	}

	items := make([]transactionResp, 0, len(txs))
	for i := range txs {
		items = append(items, toTransactionResp(&txs[i]))
	}

	util.Success(c, util.Response{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": h.PageSize,
	})
}

func (h *TransactionHandler) APICreate(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	f, err := parseFields(req.Kind, req.Description, req.Amount, req.Category, req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	tx, err := h.Ledger.Add(user.ID, f)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(tx),
	})
}

func (h *TransactionHandler) APIUpdate(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, ok := pathID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid parameters")
		return
	}

	f, err := parseFields(req.Kind, req.Description, req.Amount, req.Category, req.Date)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	tx, err := h.Ledger.Update(user.ID, id, f)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(tx),
	})
}

func (h *TransactionHandler) APIGet(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, ok := pathID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	tx, err := h.Ledger.Get(user.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "transaction not found")
			return
		}
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup failed")
		return
	}

	util.Success(c, util.Response{
		"transaction": toTransactionResp(tx),
	})
}

func (h *TransactionHandler) APIDelete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}

	id, ok := pathID(c)
	if !ok {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return
	}

	if err := h.Ledger.Delete(user.ID, id); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}
