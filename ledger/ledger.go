// Package ledger implements a single-asset accounting ledger for a staked
// representation of a deposited resource. Units are minted on deposit and
// burned on withdrawal against a custody pool that backs them 1:1; between
// those, units move by direct or delegated transfer.
//
// Every mutating operation validates its inputs, reads current state,
// computes all new values with bounds-checked arithmetic, and commits them
// as one indivisible update under a single write lock. A failure at any
// checkpoint leaves the ledger untouched.
package ledger

import (
	"sync"
	"time"

	"github.com/holiman/uint256"
)

// Address identifies an account. The ledger treats addresses as opaque;
// the empty string is the only invalid shape.
type Address string

// DefaultPool is the custody pool identity used as the counterparty on
// mint and burn transfer events when none is configured.
const DefaultPool Address = "custody"

// Metadata is the immutable-after-init token description. Decimals is
// display scaling only; the ledger stores raw integer units.
type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// Config carries initialization parameters for a ledger.
type Config struct {
	Metadata Metadata
	Pool     Address
}

// Option configures a ledger at construction time.
type Option func(*Ledger)

// WithSink attaches an event sink. The default sink discards events.
func WithSink(s Sink) Option {
	return func(l *Ledger) {
		if s != nil {
			l.sink = s
		}
	}
}

// WithClock overrides the timestamp source for deposit and withdrawal
// events. The default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// Ledger is the owned aggregate holding all balances, allowances, and
// issuance state. A single mutex serializes mutations; reads may run
// concurrently and never observe a partial commit.
type Ledger struct {
	mu sync.RWMutex

	meta Metadata
	pool Address

	balances   map[Address]*uint256.Int
	allowances map[Address]map[Address]*uint256.Int

	totalIssued *uint256.Int
	custody     *uint256.Int

	sink Sink
	now  func() time.Time
}

// New creates an empty ledger: all balances zero, nothing issued, nothing
// in custody. Missing metadata fields and pool identity fall back to
// defaults.
func New(cfg Config, opts ...Option) *Ledger {
	meta := cfg.Metadata
	if meta.Name == "" {
		meta.Name = "Staked Units"
	}
	if meta.Symbol == "" {
		meta.Symbol = "sUNIT"
	}
	pool := cfg.Pool
	if pool == "" {
		pool = DefaultPool
	}

	l := &Ledger{
		meta:        meta,
		pool:        pool,
		balances:    make(map[Address]*uint256.Int),
		allowances:  make(map[Address]map[Address]*uint256.Int),
		totalIssued: uint256.NewInt(0),
		custody:     uint256.NewInt(0),
		sink:        NopSink{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetSink replaces the event sink. Intended for wiring a sink onto a
// ledger rebuilt from a journal; a nil sink disables emission.
func (l *Ledger) SetSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s == nil {
		s = NopSink{}
	}
	l.sink = s
}

// Name returns the token display name.
func (l *Ledger) Name() string { return l.meta.Name }

// Symbol returns the token symbol.
func (l *Ledger) Symbol() string { return l.meta.Symbol }

// Decimals returns the display precision.
func (l *Ledger) Decimals() uint8 { return l.meta.Decimals }

// Pool returns the custody pool identity.
func (l *Ledger) Pool() Address { return l.pool }

// BalanceOf returns the balance of an account, zero if the account has
// never been seen. The result is a copy.
func (l *Ledger) BalanceOf(account Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyOrZero(l.balances[account])
}

// Allowance returns the remaining amount spender may move out of owner's
// balance, zero if no approval exists. The result is a copy.
func (l *Ledger) Allowance(owner, spender Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyOrZero(l.allowances[owner][spender])
}

// TotalSupply returns the total issued units.
func (l *Ledger) TotalSupply() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(uint256.Int).Set(l.totalIssued)
}

// CustodyBalance returns the size of the custody pool.
func (l *Ledger) CustodyBalance() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(uint256.Int).Set(l.custody)
}

// IsConsistent reports whether total issued units equal the custody pool.
func (l *Ledger) IsConsistent() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalIssued.Eq(l.custody)
}

// checkConsistency asserts the 1:1 backing invariant. Callers hold l.mu.
func (l *Ledger) checkConsistency() error {
	if !l.totalIssued.Eq(l.custody) {
		return ErrInconsistentState
	}
	return nil
}

// emit delivers an event to the configured sink. Callers hold l.mu, so
// delivery order matches commit order.
func (l *Ledger) emit(e Event) {
	l.sink.Record(e)
}

// copyOrZero returns a copy of v, or a fresh zero when v is absent.
func copyOrZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(v)
}
