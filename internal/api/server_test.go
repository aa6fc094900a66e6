package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitsnap/splitsnap/internal/calculator"
	"github.com/splitsnap/splitsnap/internal/models"
	"github.com/splitsnap/splitsnap/internal/state"
)

func newTestRouter(t *testing.T) (*gin.Engine, *state.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := state.New()
	server := NewServer(store, "http://localhost:8080")
	return server.Router([]string{"http://localhost:4200"}), store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestPeopleLifecycle(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/people", gin.H{"name": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	alice := decode[models.Person](t, w)
	assert.Equal(t, "Alice", alice.Name)
	assert.NotEmpty(t, alice.ID)

	w = doJSON(t, router, http.MethodPatch, "/api/people/"+alice.ID, gin.H{"name": "Alicia"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alicia", store.Receipt().People[0].Name)

	w = doJSON(t, router, http.MethodDelete, "/api/people/"+alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.Receipt().People)
}

func TestTotalsEndToEnd(t *testing.T) {
	router, store := newTestRouter(t)

	alice := store.AddPerson("Alice")
	bob := store.AddPerson("Bob")
	roesti := store.AddItem("Roesti", 18.50)
	beer := store.AddItem("Beer", 6.00)
	store.UpdateItem(roesti.ID, state.ItemPatch{AssignedTo: &[]string{alice.ID}})
	store.UpdateItem(beer.ID, state.ItemPatch{AssignedTo: &[]string{alice.ID, bob.ID}})

	w := doJSON(t, router, http.MethodPost, "/api/receipt/rounding", gin.H{"roundingMode": "none"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/totals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	totals := decode[calculator.Totals](t, w)

	assert.InDelta(t, 24.50, totals.Subtotal, 0.001)
	assert.InDelta(t, 24.50, totals.Total, 0.001)
	require.Len(t, totals.PerPerson, 2)
	assert.InDelta(t, 21.50, totals.PerPerson[0].Rounded, 0.001)
	assert.InDelta(t, 3.00, totals.PerPerson[1].Rounded, 0.001)
}

func TestSettlementsEndpoint(t *testing.T) {
	router, store := newTestRouter(t)

	alice := store.AddPerson("Alice")
	bob := store.AddPerson("Bob")
	item := store.AddItem("Dinner", 24.50)
	store.UpdateItem(item.ID, state.ItemPatch{AssignedTo: &[]string{alice.ID, bob.ID}})
	store.SetRoundingMode(models.RoundNone)

	// No payer: no suggestions.
	w := doJSON(t, router, http.MethodGet, "/api/settlements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	empty := decode[struct {
		Settlements []calculator.Transfer `json:"settlements"`
	}](t, w)
	assert.Empty(t, empty.Settlements)

	w = doJSON(t, router, http.MethodPost, "/api/receipt/payer", gin.H{"personId": alice.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/settlements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Settlements []calculator.Transfer `json:"settlements"`
	}](t, w)
	require.Len(t, resp.Settlements, 1)
	assert.Equal(t, bob.ID, resp.Settlements[0].From.ID)
	assert.Equal(t, alice.ID, resp.Settlements[0].To.ID)
	assert.InDelta(t, 12.25, resp.Settlements[0].Amount, 0.001)
}

func TestAuditEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	alice := store.AddPerson("Alice")
	item := store.AddItem("Pizza", 18.00)
	store.UpdateItem(item.ID, state.ItemPatch{AssignedTo: &[]string{alice.ID}})

	w := doJSON(t, router, http.MethodGet, "/api/audit/"+alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Lines []calculator.AuditLine `json:"lines"`
	}](t, w)
	require.Len(t, resp.Lines, 1)
	assert.InDelta(t, 18.00, resp.Lines[0].Share, 0.001)
}

func TestExtrasAreClampedAtTheBoundary(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/receipt/extras", gin.H{"tax": -3, "tip": 2.5})
	require.Equal(t, http.StatusOK, w.Code)

	receipt := store.Receipt()
	assert.Equal(t, 0.0, receipt.Tax)
	assert.Equal(t, 2.5, receipt.Tip)
}

func TestInvalidCurrencyRejected(t *testing.T) {
	router, store := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/receipt/currency", gin.H{"currency": "JPY"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.CurrencyUnknown, store.Receipt().Currency)

	w = doJSON(t, router, http.MethodPost, "/api/receipt/currency", gin.H{"currency": "CHF"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.CurrencyCHF, store.Receipt().Currency)
}

func TestUndoAndReset(t *testing.T) {
	router, store := newTestRouter(t)

	doJSON(t, router, http.MethodPost, "/api/receipt/venue", gin.H{"venue": "Alpenblick"})
	require.Equal(t, "Alpenblick", store.Receipt().Venue)

	w := doJSON(t, router, http.MethodPost, "/api/undo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Undone     bool `json:"undone"`
		HistoryLen int  `json:"historyLen"`
	}](t, w)
	assert.True(t, resp.Undone)
	assert.Equal(t, "", store.Receipt().Venue)

	// Undo with empty history reports undone=false.
	w = doJSON(t, router, http.MethodPost, "/api/undo", nil)
	resp = decode[struct {
		Undone     bool `json:"undone"`
		HistoryLen int  `json:"historyLen"`
	}](t, w)
	assert.False(t, resp.Undone)

	doJSON(t, router, http.MethodPost, "/api/receipt/venue", gin.H{"venue": "Else"})
	w = doJSON(t, router, http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "", store.Receipt().Venue)
	assert.Equal(t, 0, store.HistoryLen())
}

func TestShareLinkRoundTrip(t *testing.T) {
	router, store := newTestRouter(t)
	store.AddPerson("Alice")
	store.AddItem("Pizza", 18.00)
	store.SetVenue("Alpenblick")

	w := doJSON(t, router, http.MethodGet, "/api/share", nil)
	require.Equal(t, http.StatusOK, w.Code)
	link := decode[struct {
		Token string `json:"token"`
		URL   string `json:"url"`
	}](t, w)
	require.NotEmpty(t, link.Token)
	assert.Contains(t, link.URL, "?s="+link.Token)
	assert.Contains(t, link.URL, "#/summary")

	// A fresh instance imports the token.
	otherRouter, otherStore := newTestRouter(t)
	w = doJSON(t, otherRouter, http.MethodPost, "/api/share", gin.H{"token": link.Token})
	require.Equal(t, http.StatusOK, w.Code)

	imported := otherStore.Receipt()
	assert.Equal(t, "Alpenblick", imported.Venue)
	require.Len(t, imported.People, 1)
	require.Len(t, imported.Items, 1)
}

func TestInvalidShareTokenLeavesStateAlone(t *testing.T) {
	router, store := newTestRouter(t)
	store.SetVenue("keep me")

	w := doJSON(t, router, http.MethodPost, "/api/share", gin.H{"token": "garbage!!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "keep me", store.Receipt().Venue)
}

func TestExportImportEndpoints(t *testing.T) {
	router, store := newTestRouter(t)
	store.AddPerson("Alice")
	store.AddItem("Pizza", 18.00)

	w := doJSON(t, router, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	otherRouter, otherStore := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader(w.Body.Bytes()))
	rec := httptest.NewRecorder()
	otherRouter.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	imported := otherStore.Receipt()
	require.Len(t, imported.People, 1)
	require.Len(t, imported.Items, 1)

	// Payloads without items/people are ignored.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/import", bytes.NewReader([]byte(`{"venue":"x"}`)))
	otherRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, otherStore.Receipt().People, 1)
}

func TestScanEndpoint(t *testing.T) {
	router, store := newTestRouter(t)

	raw := "Kaffeehaus CHF\nEspresso 3.50\nCroissant 2.20\nTOTAL 5.70"
	w := doJSON(t, router, http.MethodPost, "/api/scan", gin.H{"rawText": raw})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Currency models.Currency `json:"currency"`
		Imported int             `json:"imported"`
	}](t, w)
	assert.Equal(t, models.CurrencyCHF, resp.Currency)
	assert.Equal(t, 2, resp.Imported)

	receipt := store.Receipt()
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "Espresso", receipt.Items[0].Name)
	assert.Empty(t, receipt.Items[0].AssignedTo)
	assert.Equal(t, models.CurrencyCHF, receipt.Currency)
}

func TestUpdateItemAssignsPeople(t *testing.T) {
	router, store := newTestRouter(t)
	alice := store.AddPerson("Alice")
	item := store.AddItem("Pizza", 18.00)

	w := doJSON(t, router, http.MethodPatch, "/api/items/"+item.ID, gin.H{
		"assignedTo": []string{alice.ID, "ghost"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{alice.ID}, store.Receipt().Items[0].AssignedTo)
}
