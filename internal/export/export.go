// Package export writes recorded transactions to an external destination.
// The shipped destination is a JSON-lines file; the worker feeds it from the
// event queue.
package export

import (
	"context"
	"time"

	"fintrack/internal/core"
)

// Record is the flattened row written per exported transaction.
type Record struct {
	Kind        core.Kind `json:"kind"`
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	RecordedAt  time.Time `json:"recordedAt"`
}

// Exporter appends a record to the destination.
type Exporter interface {
	Export(ctx context.Context, rec Record) error
}

// NewRecord flattens a transaction and its owner into an export row.
func NewRecord(kind core.Kind, t core.Transaction, username string) Record {
	return Record{
		Kind:        kind,
		ID:          t.ID,
		Username:    username,
		Name:        t.Name,
		Amount:      t.Amount,
		Description: t.Description,
		Location:    t.Location,
		RecordedAt:  t.Time(),
	}
}
