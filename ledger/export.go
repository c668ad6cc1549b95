/*
export.go - Import/Export gateway

PURPOSE:
  Serializes the full record-book state into a versioned JSON envelope for
  external backup, and merges such documents back in. Import is a merge,
  never a replace: transactions and shifts are unioned by id (existing ids
  win, newcomers append), and fuel prices only change when the operator
  explicitly confirmed it.

ENVELOPE:
  {
    "version": "1.0",
    "exportDate": "...",
    "appName": "Fuel Record Book",
    "data": { "transactions": [...], "shiftInfo": {...},
              "shiftHistory": [...], "fuelPrices": {...} }
  }

  The shape matches the original record book's backup files, so backups
  taken with the old app import here unchanged.
*/
package ledger

import (
	"context"
	"encoding/json"
)

const (
	// ExportVersion is the format version written into every export.
	ExportVersion = "1.0"
	// ExportAppName identifies the producing application in the envelope.
	ExportAppName = "Fuel Record Book"
)

// ExportData is the payload section of an export document.
type ExportData struct {
	Transactions []Transaction  `json:"transactions"`
	ShiftInfo    ShiftInfo      `json:"shiftInfo"`
	ShiftHistory []ShiftSummary `json:"shiftHistory"`
	FuelPrices   *FuelPrices    `json:"fuelPrices,omitempty"`
}

// ExportDocument is the full backup envelope. Data is a pointer so a
// missing top-level data field is detectable on import.
type ExportDocument struct {
	Version    string      `json:"version"`
	ExportDate Timestamp   `json:"exportDate"`
	AppName    string      `json:"appName"`
	Data       *ExportData `json:"data"`
}

// ImportReport tells the caller what an import actually added.
type ImportReport struct {
	NewTransactions int  `json:"newTransactions"`
	NewShifts       int  `json:"newShifts"`
	PricesUpdated   bool `json:"pricesUpdated"`
}

// Export builds a backup document from the current state. Pure; no state
// mutation and no persistence.
func (b *Book) Export() ExportDocument {
	snap := b.Snapshot()
	prices := snap.FuelPrices
	return ExportDocument{
		Version:    ExportVersion,
		ExportDate: Now(),
		AppName:    ExportAppName,
		Data: &ExportData{
			Transactions: snap.Transactions,
			ShiftInfo:    snap.ShiftInfo,
			ShiftHistory: snap.ShiftHistory,
			FuelPrices:   &prices,
		},
	}
}

// ParseExportDocument decodes raw bytes into an ExportDocument, returning a
// FormatError for anything that is not a valid envelope.
func ParseExportDocument(raw []byte) (ExportDocument, error) {
	var doc ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ExportDocument{}, &FormatError{Message: "not a valid backup document: " + err.Error()}
	}
	if doc.Data == nil {
		return ExportDocument{}, &FormatError{Message: "backup document has no data section"}
	}
	return doc, nil
}

// Import merges doc into the live state. adoptPrices is the operator's
// answer to the "update fuel prices from this file?" confirmation; prices
// are untouched unless it is true and the document carries a price table.
// The merged state is persisted once on success.
func (b *Book) Import(ctx context.Context, doc ExportDocument, adoptPrices bool) (ImportReport, error) {
	if doc.Data == nil {
		return ImportReport{}, &FormatError{Message: "backup document has no data section"}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var report ImportReport

	// Union transactions by id; newcomers append after the live entries.
	existing := make(map[int64]bool, len(b.transactions))
	for _, tx := range b.transactions {
		existing[tx.ID] = true
	}
	for _, tx := range doc.Data.Transactions {
		if existing[tx.ID] {
			continue
		}
		existing[tx.ID] = true
		b.transactions = append(b.transactions, tx)
		if tx.ID > b.lastID {
			b.lastID = tx.ID
		}
		report.NewTransactions++
	}

	// Same rule for shift history.
	existingShifts := make(map[int64]bool, len(b.history))
	for _, shift := range b.history {
		existingShifts[shift.ID] = true
	}
	for _, shift := range doc.Data.ShiftHistory {
		if existingShifts[shift.ID] {
			continue
		}
		existingShifts[shift.ID] = true
		b.history = append(b.history, shift)
		if shift.ID > b.lastID {
			b.lastID = shift.ID
		}
		report.NewShifts++
	}

	if adoptPrices && doc.Data.FuelPrices != nil {
		if err := doc.Data.FuelPrices.Validate(); err != nil {
			return ImportReport{}, err
		}
		b.prices = *doc.Data.FuelPrices
		report.PricesUpdated = true
	}

	b.persist(ctx)
	return report, nil
}
