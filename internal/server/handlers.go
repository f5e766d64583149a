package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/txclean/internal/cleaner"
	"github.com/cleared-dev/txclean/internal/mappings"
	"github.com/cleared-dev/txclean/internal/model"
)

// RowInput is one statement row posted by the client.
type RowInput struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Memo        string `json:"memo"`
	ManualClean string `json:"manual_clean,omitempty"`
}

// CleanRequest is the body of POST /api/clean. A nil Mappings uses the
// server's stored list.
type CleanRequest struct {
	Rows     []RowInput       `json:"rows" binding:"required"`
	Mappings *[]model.Mapping `json:"mappings,omitempty"`
}

// RowOutput is one cleaned row.
type RowOutput struct {
	Line           int                 `json:"line"`
	Date           string              `json:"date"`
	AmountRaw      string              `json:"amount_raw"`
	Amount         decimal.NullDecimal `json:"amount"`
	AmountDisplay  string              `json:"amount_display"`
	Memo           string              `json:"memo"`
	AutoClean      string              `json:"auto_clean"`
	FinalClean     string              `json:"final_clean"`
	ManualOverride bool                `json:"manual_override"`
}

// ExplainRequest is the body of POST /api/explain.
type ExplainRequest struct {
	Memo     string           `json:"memo"`
	Mappings *[]model.Mapping `json:"mappings,omitempty"`
}

// MappingsBody is the body of GET and PUT /api/mappings.
type MappingsBody struct {
	Mappings []model.Mapping `json:"mappings" binding:"required"`
}

func (s *Server) mappingsOrStored(m *[]model.Mapping) []model.Mapping {
	if m == nil {
		return s.snapshot()
	}
	return mappings.Sanitize(*m)
}

func (s *Server) clean(c *gin.Context) {
	var req CleanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var txns []model.Transaction
	var manual []string
	for i, in := range req.Rows {
		txn := model.Transaction{
			Source:    "api",
			Line:      i + 1,
			Date:      cleaner.NormalizeSpaces(in.Date),
			AmountRaw: strings.TrimSpace(in.Amount),
			Memo:      cleaner.NormalizeSpaces(in.Memo),
		}
		if txn.IsBlank() {
			continue
		}
		txns = append(txns, txn)
		manual = append(manual, in.ManualClean)
	}

	rows, err := s.processor.Process(c.Request.Context(), txns, s.mappingsOrStored(req.Mappings))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	out := make([]RowOutput, len(rows))
	for i := range rows {
		if manual[i] != "" {
			rows[i].SetManualClean(manual[i])
		}
		r := rows[i]
		out[i] = RowOutput{
			Line:           r.Line,
			Date:           r.Date,
			AmountRaw:      r.AmountRaw,
			Amount:         r.Amount,
			AmountDisplay:  cleaner.FormatAmount(r.Amount, r.AmountRaw),
			Memo:           r.Memo,
			AutoClean:      r.AutoClean,
			FinalClean:     r.FinalClean(),
			ManualOverride: r.HasManualOverride,
		}
	}
	c.JSON(http.StatusOK, gin.H{"rows": out})
}

func (s *Server) explain(c *gin.Context) {
	var req ExplainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cleaner.Explain(req.Memo, s.mappingsOrStored(req.Mappings)))
}

func (s *Server) getMappings(c *gin.Context) {
	c.JSON(http.StatusOK, MappingsBody{Mappings: s.snapshot()})
}

func (s *Server) putMappings(c *gin.Context) {
	var body MappingsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list := mappings.Sanitize(body.Mappings)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := mappings.Save(s.mappingsPath, list); err != nil {
		s.logger.Error("saving mappings", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save mappings"})
		return
	}
	s.mappings = list
	s.logger.Info("mappings updated", "count", len(list))
	c.JSON(http.StatusOK, MappingsBody{Mappings: list})
}
