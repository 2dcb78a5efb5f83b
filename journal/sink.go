package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/custodia-xyz/go-custodia/ledger"
)

// Payload shapes for journaled events. Amounts are decimal strings so
// 256-bit quantities survive JSON without precision loss.
type (
	// TransferPayload records a balance movement.
	TransferPayload struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Amount string `json:"amount"`
	}

	// ApprovalPayload records a delegation update.
	ApprovalPayload struct {
		Owner   string `json:"owner"`
		Spender string `json:"spender"`
		Amount  string `json:"amount"`
	}

	// DepositPayload records a mint against the custody pool.
	DepositPayload struct {
		Who       string    `json:"who"`
		Amount    string    `json:"amount"`
		Minted    string    `json:"minted"`
		Timestamp time.Time `json:"timestamp"`
	}

	// WithdrawalPayload records a burn against the custody pool.
	WithdrawalPayload struct {
		Who       string    `json:"who"`
		Burned    string    `json:"burned"`
		Returned  string    `json:"returned"`
		Timestamp time.Time `json:"timestamp"`
	}
)

// Encode converts a ledger event into a journal record for a stream.
func Encode(stream string, e ledger.Event) (*Record, error) {
	switch ev := e.(type) {
	case ledger.TransferEvent:
		return NewRecord(stream, ledger.KindTransfer, TransferPayload{
			From:   string(ev.From),
			To:     string(ev.To),
			Amount: ev.Amount.Dec(),
		})
	case ledger.ApprovalEvent:
		return NewRecord(stream, ledger.KindApproval, ApprovalPayload{
			Owner:   string(ev.Owner),
			Spender: string(ev.Spender),
			Amount:  ev.Amount.Dec(),
		})
	case ledger.DepositEvent:
		return NewRecord(stream, ledger.KindDeposit, DepositPayload{
			Who:       string(ev.Who),
			Amount:    ev.Amount.Dec(),
			Minted:    ev.Minted.Dec(),
			Timestamp: ev.Timestamp,
		})
	case ledger.WithdrawalEvent:
		return NewRecord(stream, ledger.KindWithdrawal, WithdrawalPayload{
			Who:       string(ev.Who),
			Burned:    ev.Burned.Dec(),
			Returned:  ev.Returned.Dec(),
			Timestamp: ev.Timestamp,
		})
	default:
		return nil, fmt.Errorf("journal: unknown event kind %q", e.Kind())
	}
}

// Sink appends every ledger event to a journal stream. The ledger has
// already committed by the time Record runs, so journal failures are
// logged rather than fed back into the mutation path.
type Sink struct {
	store  Store
	stream string
	log    zerolog.Logger
}

// NewSink creates a sink writing to one stream of a store.
func NewSink(store Store, stream string, log zerolog.Logger) *Sink {
	return &Sink{store: store, stream: stream, log: log}
}

// Record implements ledger.Sink.
func (s *Sink) Record(e ledger.Event) {
	rec, err := Encode(s.stream, e)
	if err != nil {
		s.log.Error().Err(err).Str("kind", e.Kind()).Msg("encode event")
		return
	}

	ctx := context.Background()
	version, err := s.store.StreamVersion(ctx, s.stream)
	if err != nil {
		s.log.Error().Err(err).Str("stream", s.stream).Msg("read stream version")
		return
	}
	if _, err := s.store.Append(ctx, s.stream, version, []*Record{rec}); err != nil {
		s.log.Error().Err(err).Str("stream", s.stream).Str("kind", e.Kind()).Msg("append event")
		return
	}
	s.log.Debug().Str("stream", s.stream).Str("kind", e.Kind()).Int("version", rec.Version).Msg("event journaled")
}

// Ensure Sink implements ledger.Sink.
var _ ledger.Sink = (*Sink)(nil)
