// Package share implements the link-sharing token codec and the JSON
// export/import format.
//
// A share token is the receipt's shareable fields serialized to JSON,
// DEFLATE-compressed and URL-safe base64 encoded, so it can ride in a query
// parameter. The token is opaque to everything else; decode failures produce
// no result rather than an error, and never touch prior state.
package share

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"encoding/json"
	"io"

	"github.com/splitsnap/splitsnap/internal/models"
)

// summaryRoute is the in-app route a shared link lands on after import.
const summaryRoute = "#/summary"

// Encode packs a partial receipt into a URL-safe token.
func Encode(receipt models.PartialReceipt) (string, error) {
	payload, err := json.Marshal(receipt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(payload); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode unpacks a share token. It returns nil for anything that is not a
// valid token: bad base64, bad compression, bad JSON.
func Decode(token string) *models.PartialReceipt {
	compressed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil
	}

	var receipt models.PartialReceipt
	if err := json.Unmarshal(payload, &receipt); err != nil {
		return nil
	}
	return &receipt
}

// URL builds the shareable link: the token rides in the "s" query parameter
// and the fragment routes straight to the summary view.
func URL(base, token string) string {
	return base + "?s=" + token + summaryRoute
}
