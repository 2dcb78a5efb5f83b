package ledger

import (
	"crypto/sha256"
	"sort"

	"github.com/holiman/uint256"
)

// Snapshot is a point-in-time deep copy of all observable ledger state.
type Snapshot struct {
	Balances    map[Address]*uint256.Int
	Allowances  map[Address]map[Address]*uint256.Int
	TotalIssued *uint256.Int
	Custody     *uint256.Int
}

// Snapshot captures every balance, allowance, and aggregate. The copy
// shares nothing with the live ledger.
func (l *Ledger) Snapshot() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := &Snapshot{
		Balances:    make(map[Address]*uint256.Int, len(l.balances)),
		Allowances:  make(map[Address]map[Address]*uint256.Int, len(l.allowances)),
		TotalIssued: new(uint256.Int).Set(l.totalIssued),
		Custody:     new(uint256.Int).Set(l.custody),
	}
	for addr, bal := range l.balances {
		snap.Balances[addr] = new(uint256.Int).Set(bal)
	}
	for owner, m := range l.allowances {
		inner := make(map[Address]*uint256.Int, len(m))
		for spender, amt := range m {
			inner[spender] = new(uint256.Int).Set(amt)
		}
		snap.Allowances[owner] = inner
	}
	return snap
}

// Hash returns a deterministic digest of the snapshot. Two snapshots hash
// equal iff every balance, allowance, and aggregate is identical, which
// makes the digest usable as a before/after atomicity witness.
func (s *Snapshot) Hash() [32]byte {
	h := sha256.New()

	// Sort keys for determinism
	accounts := make([]string, 0, len(s.Balances))
	for addr := range s.Balances {
		accounts = append(accounts, string(addr))
	}
	sort.Strings(accounts)
	for _, addr := range accounts {
		bal := s.Balances[Address(addr)].Bytes32()
		h.Write([]byte("B"))
		h.Write([]byte(addr))
		h.Write(bal[:])
	}

	owners := make([]string, 0, len(s.Allowances))
	for owner := range s.Allowances {
		owners = append(owners, string(owner))
	}
	sort.Strings(owners)
	for _, owner := range owners {
		inner := s.Allowances[Address(owner)]
		spenders := make([]string, 0, len(inner))
		for spender := range inner {
			spenders = append(spenders, string(spender))
		}
		sort.Strings(spenders)
		for _, spender := range spenders {
			amt := inner[Address(spender)].Bytes32()
			h.Write([]byte("A"))
			h.Write([]byte(owner))
			h.Write([]byte{0})
			h.Write([]byte(spender))
			h.Write(amt[:])
		}
	}

	issued := s.TotalIssued.Bytes32()
	custody := s.Custody.Bytes32()
	h.Write([]byte("T"))
	h.Write(issued[:])
	h.Write([]byte("C"))
	h.Write(custody[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Equal reports whether two snapshots describe identical state.
func (s *Snapshot) Equal(o *Snapshot) bool {
	return s.Hash() == o.Hash()
}
