// Package journal persists ledger events as an append-only stream of
// records with optimistic concurrency, backed by memory or SQLite, and
// rebuilds ledger state by replaying a stream.
package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is a single journaled event.
type Record struct {
	// ID is a unique record identifier.
	ID string `json:"id"`

	// Stream groups records belonging to one ledger instance.
	Stream string `json:"stream"`

	// Type is the event kind (ledger.KindDeposit etc.).
	Type string `json:"type"`

	// Version is the record's position in its stream, starting at 0.
	// Assigned by the store on append.
	Version int `json:"version"`

	// Data is the JSON-encoded event payload.
	Data json.RawMessage `json:"data"`

	// Timestamp is when the record was created.
	Timestamp time.Time `json:"timestamp"`
}

// NewRecord creates a record for a stream with a JSON-encoded payload.
func NewRecord(stream, eventType string, payload any) (*Record, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:        uuid.New().String(),
		Stream:    stream,
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the record payload into v.
func (r *Record) Decode(v any) error {
	return json.Unmarshal(r.Data, v)
}
