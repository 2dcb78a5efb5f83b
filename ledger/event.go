package ledger

import (
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// Kind identifiers for emitted events.
const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
	KindTransfer   = "transfer"
	KindApproval   = "approval"
)

// Event is a structured notification describing a completed mutation.
type Event interface {
	Kind() string
}

// DepositEvent is emitted when units are minted against the custody pool.
type DepositEvent struct {
	Who       Address
	Amount    *uint256.Int
	Minted    *uint256.Int
	Timestamp time.Time
}

func (DepositEvent) Kind() string { return KindDeposit }

// WithdrawalEvent is emitted when units are burned against the custody pool.
type WithdrawalEvent struct {
	Who       Address
	Burned    *uint256.Int
	Returned  *uint256.Int
	Timestamp time.Time
}

func (WithdrawalEvent) Kind() string { return KindWithdrawal }

// TransferEvent is emitted for balance movements: direct transfers,
// delegated transfers, and the pool leg of deposits and withdrawals.
type TransferEvent struct {
	From   Address
	To     Address
	Amount *uint256.Int
}

func (TransferEvent) Kind() string { return KindTransfer }

// ApprovalEvent is emitted when an owner sets a spending delegation.
type ApprovalEvent struct {
	Owner   Address
	Spender Address
	Amount  *uint256.Int
}

func (ApprovalEvent) Kind() string { return KindApproval }

// Sink receives events from the ledger. Record is called after the
// mutation has committed, while the ledger still holds its write lock,
// so implementations must not call back into the ledger.
type Sink interface {
	Record(Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Record(Event) {}

// MemorySink buffers events in memory. Useful for tests and inspection.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// Record appends the event to the buffer.
func (s *MemorySink) Record(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of the buffered events in emission order.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Len returns the number of buffered events.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// Reset discards all buffered events.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// Fanout delivers every event to each sink in order.
type Fanout []Sink

func (f Fanout) Record(e Event) {
	for _, s := range f {
		s.Record(e)
	}
}
