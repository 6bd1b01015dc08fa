package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jask/fleetledger/internal/ledger"
)

type editRequest struct {
	Field string  `json:"field" binding:"required"`
	Value *string `json:"value" binding:"required"`
}

type filterRequest struct {
	Value *string `json:"value" binding:"required"`
}

type ledgerView struct {
	Rows    []ledger.Row      `json:"rows"`
	Totals  ledger.Totals     `json:"totals"`
	Filters ledger.Predicates `json:"filters"`
}

func (h *Handler) view() ledgerView {
	rows := h.Ledger.Rows()
	txns := make([]ledger.Transaction, len(rows))
	for i, r := range rows {
		txns[i] = r.Transaction
	}
	return ledgerView{Rows: rows, Totals: ledger.ComputeTotals(txns), Filters: h.Ledger.Predicates()}
}

// statusFor maps ledger errors onto HTTP codes. Anything else came from the
// database, which from a browser's point of view is an upstream.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput), errors.Is(err, ledger.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnknownRow):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.view())
}

func (h *Handler) addTransaction(c *gin.Context) {
	t, err := h.Ledger.Add(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) editTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var body editRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Ledger.Edit(c.Request.Context(), id, ledger.Field(body.Field), *body.Value); err != nil {
		respondError(c, err)
		return
	}
	row, _ := h.Ledger.Row(id)
	c.JSON(http.StatusOK, row)
}

func (h *Handler) deleteTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Ledger.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "transaction deleted"})
}

func (h *Handler) setFilter(c *gin.Context) {
	var body filterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Ledger.SetFilter(c.Request.Context(), ledger.Field(c.Param("field")), *body.Value); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view())
}

func (h *Handler) clearFilters(c *gin.Context) {
	if err := h.Ledger.ClearFilters(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view())
}

func (h *Handler) refresh(c *gin.Context) {
	if err := h.Ledger.Reload(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view())
}

func (h *Handler) reference(c *gin.Context) {
	c.JSON(http.StatusOK, h.Ledger.Reference())
}

func (h *Handler) exportCSV(c *gin.Context) {
	layout := h.Layout
	if q := c.Query("layout"); q != "" {
		l, err := ledger.ParseLayout(q)
		if err != nil {
			respondError(c, err)
			return
		}
		layout = l
	}
	var buf bytes.Buffer
	if err := ledger.WriteCSV(&buf, h.Ledger.Transactions(), layout); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+ledger.ExportFileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
