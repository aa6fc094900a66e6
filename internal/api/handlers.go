package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitsnap/splitsnap/internal/calculator"
	"github.com/splitsnap/splitsnap/internal/models"
	"github.com/splitsnap/splitsnap/internal/scan"
	"github.com/splitsnap/splitsnap/internal/share"
	"github.com/splitsnap/splitsnap/internal/state"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getReceipt(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":      s.store.State(),
		"historyLen": s.store.HistoryLen(),
	})
}

func (s *Server) getTotals(c *gin.Context) {
	c.JSON(http.StatusOK, calculator.ComputeTotals(s.store.Receipt()))
}

func (s *Server) getSettlements(c *gin.Context) {
	transfers := calculator.SettlementSuggestions(s.store.Receipt())
	if transfers == nil {
		transfers = []calculator.Transfer{}
	}
	c.JSON(http.StatusOK, gin.H{"settlements": transfers})
}

func (s *Server) getAuditTrail(c *gin.Context) {
	lines := calculator.AuditTrail(s.store.Receipt(), c.Param("personId"))
	if lines == nil {
		lines = []calculator.AuditLine{}
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines})
}

func (s *Server) setVenue(c *gin.Context) {
	var req struct {
		Venue string `json:"venue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.store.SetVenue(req.Venue)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) setCurrency(c *gin.Context) {
	var req struct {
		Currency models.Currency `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !validCurrency(req.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid currency"})
		return
	}
	s.store.SetCurrency(req.Currency)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) setRounding(c *gin.Context) {
	var req struct {
		RoundingMode models.RoundingMode `json:"roundingMode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !validRoundingMode(req.RoundingMode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rounding mode"})
		return
	}
	s.store.SetRoundingMode(req.RoundingMode)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) setExtras(c *gin.Context) {
	var req struct {
		Tax float64 `json:"tax"`
		Tip float64 `json:"tip"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.store.SetExtras(req.Tax, req.Tip)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) setPaidBy(c *gin.Context) {
	var req struct {
		PersonID string `json:"personId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.store.SetPaidBy(req.PersonID)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) addPerson(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	person := s.store.AddPerson(req.Name)
	c.JSON(http.StatusCreated, person)
}

func (s *Server) renamePerson(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.store.RenamePerson(c.Param("id"), req.Name)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) removePerson(c *gin.Context) {
	s.store.RemovePerson(c.Param("id"))
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) addItem(c *gin.Context) {
	var req struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	item := s.store.AddItem(req.Name, req.Price)
	c.JSON(http.StatusCreated, item)
}

func (s *Server) setItems(c *gin.Context) {
	var items []models.LineItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.store.SetItems(items)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) updateItem(c *gin.Context) {
	var patch state.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	s.store.UpdateItem(c.Param("id"), patch)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) removeItem(c *gin.Context) {
	s.store.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) importScan(c *gin.Context) {
	var req struct {
		RawText string `json:"rawText"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := scan.Parse(req.RawText)
	candidates := make([]state.ItemCandidate, len(result.Items))
	for i, item := range result.Items {
		candidates[i] = state.ItemCandidate{Name: item.Name, Price: item.Price}
	}
	s.store.ImportScannedItems(candidates, result.Currency)

	c.JSON(http.StatusOK, gin.H{
		"currency": result.Currency,
		"imported": len(candidates),
		"receipt":  s.store.Receipt(),
	})
}

func (s *Server) undo(c *gin.Context) {
	undone := s.store.Undo()
	c.JSON(http.StatusOK, gin.H{
		"undone":     undone,
		"historyLen": s.store.HistoryLen(),
		"receipt":    s.store.Receipt(),
	})
}

func (s *Server) reset(c *gin.Context) {
	s.store.Reset()
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) makeShareLink(c *gin.Context) {
	token, err := share.Encode(models.PartialFromReceipt(s.store.Receipt()))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode share token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"url":   share.URL(s.shareBaseURL, token),
	})
}

func (s *Server) importShareToken(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	decoded := share.Decode(req.Token)
	if decoded == nil {
		// Bad token: prior state stays untouched.
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid share token"})
		return
	}
	s.store.HydrateFromSharedState(*decoded)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func (s *Server) exportReceipt(c *gin.Context) {
	data, err := share.ExportJSON(s.store.Receipt())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export receipt"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="splitsnap.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) importReceipt(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	imported := share.Import(data)
	if imported == nil {
		// Not a receipt export: ignored, prior state stays untouched.
		c.JSON(http.StatusBadRequest, gin.H{"error": "not a receipt export"})
		return
	}
	s.store.HydrateFromSharedState(*imported)
	c.JSON(http.StatusOK, s.store.Receipt())
}

func validCurrency(c models.Currency) bool {
	switch c {
	case models.CurrencyCHF, models.CurrencyEUR, models.CurrencyUSD, models.CurrencyGBP, models.CurrencyUnknown:
		return true
	}
	return false
}

func validRoundingMode(m models.RoundingMode) bool {
	switch m {
	case models.RoundNearest05, models.RoundNearest10, models.RoundNone:
		return true
	}
	return false
}
