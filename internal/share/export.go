package share

import (
	"encoding/json"
	"time"

	"github.com/splitsnap/splitsnap/internal/models"
)

// appName identifies export files written by this application.
const appName = "SplitSnap"

// ExportPayload is the JSON file format for downloading a receipt.
type ExportPayload struct {
	Receipt    models.Receipt `json:"receipt"`
	ExportedAt string         `json:"exportedAt"`
	App        string         `json:"app"`
}

// Export wraps the receipt in the download payload.
func Export(receipt models.Receipt) ExportPayload {
	return ExportPayload{
		Receipt:    receipt.Clone(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		App:        appName,
	}
}

// ExportJSON renders the payload the way the download file is written.
func ExportJSON(receipt models.Receipt) ([]byte, error) {
	return json.MarshalIndent(Export(receipt), "", "  ")
}

// Import parses an exported file. It accepts the wrapped payload or a bare
// receipt object, and only considers it valid when both the items and people
// keys are present (even as empty arrays). Anything else yields nil and is
// silently ignored by the caller.
func Import(data []byte) *models.PartialReceipt {
	var wrapped struct {
		Receipt *models.PartialReceipt `json:"receipt"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Receipt != nil {
		if valid(wrapped.Receipt) {
			return wrapped.Receipt
		}
		return nil
	}

	var bare models.PartialReceipt
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil
	}
	if !valid(&bare) {
		return nil
	}
	return &bare
}

// valid requires the items and people keys to have been present in the JSON.
func valid(r *models.PartialReceipt) bool {
	return r.Items != nil && r.People != nil
}
