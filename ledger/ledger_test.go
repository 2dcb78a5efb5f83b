package ledger

import (
	"testing"

	"github.com/holiman/uint256"
)

func amt(v uint64) *uint256.Int { return uint256.NewInt(v) }

func TestNewDefaults(t *testing.T) {
	l := New(Config{})

	if l.Name() != "Staked Units" {
		t.Errorf("Name = %q", l.Name())
	}
	if l.Symbol() != "sUNIT" {
		t.Errorf("Symbol = %q", l.Symbol())
	}
	if l.Decimals() != 0 {
		t.Errorf("Decimals = %d", l.Decimals())
	}
	if l.Pool() != DefaultPool {
		t.Errorf("Pool = %q", l.Pool())
	}
	if !l.TotalSupply().IsZero() {
		t.Errorf("TotalSupply = %s, expected 0", l.TotalSupply().Dec())
	}
	if !l.CustodyBalance().IsZero() {
		t.Errorf("CustodyBalance = %s, expected 0", l.CustodyBalance().Dec())
	}
	if !l.IsConsistent() {
		t.Error("fresh ledger should be consistent")
	}
}

func TestNewWithConfig(t *testing.T) {
	l := New(Config{
		Metadata: Metadata{Name: "Liquid Casper", Symbol: "stCSPR", Decimals: 9},
		Pool:     "vault",
	})

	if l.Name() != "Liquid Casper" || l.Symbol() != "stCSPR" || l.Decimals() != 9 {
		t.Errorf("metadata not applied: %s %s %d", l.Name(), l.Symbol(), l.Decimals())
	}
	if l.Pool() != "vault" {
		t.Errorf("Pool = %q", l.Pool())
	}
}

func TestBalanceOfUnknownAccount(t *testing.T) {
	l := New(Config{})
	if !l.BalanceOf("nobody").IsZero() {
		t.Error("unknown account should have zero balance")
	}
}

func TestAllowanceUnknownPair(t *testing.T) {
	l := New(Config{})
	if !l.Allowance("alice", "bob").IsZero() {
		t.Error("unknown pair should have zero allowance")
	}
}

func TestViewsReturnCopies(t *testing.T) {
	l := New(Config{})
	if err := l.Deposit("alice", amt(100)); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	bal := l.BalanceOf("alice")
	bal.AddUint64(bal, 1000)
	if !l.BalanceOf("alice").Eq(amt(100)) {
		t.Error("mutating a returned balance changed ledger state")
	}

	supply := l.TotalSupply()
	supply.Clear()
	if !l.TotalSupply().Eq(amt(100)) {
		t.Error("mutating returned supply changed ledger state")
	}
}

func TestMutationsDoNotRetainCallerAmounts(t *testing.T) {
	l := New(Config{})
	amount := amt(100)
	if err := l.Deposit("alice", amount); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	// Mutating the caller's value after the fact must not reach in.
	amount.AddUint64(amount, 900)
	if !l.BalanceOf("alice").Eq(amt(100)) {
		t.Error("ledger aliased a caller-owned amount")
	}
}

func TestSetSink(t *testing.T) {
	l := New(Config{})
	sink := &MemorySink{}
	l.SetSink(sink)

	if err := l.Deposit("alice", amt(5)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if sink.Len() != 2 {
		t.Errorf("expected 2 events, got %d", sink.Len())
	}

	// nil disables emission instead of panicking.
	l.SetSink(nil)
	if err := l.Deposit("alice", amt(5)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if sink.Len() != 2 {
		t.Errorf("events recorded after sink removed: %d", sink.Len())
	}
}

func TestFanoutSink(t *testing.T) {
	a := &MemorySink{}
	b := &MemorySink{}
	l := New(Config{}, WithSink(Fanout{a, b}))

	if err := l.Deposit("alice", amt(1)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if a.Len() != 2 || b.Len() != 2 {
		t.Errorf("fanout delivered %d/%d events, expected 2/2", a.Len(), b.Len())
	}
}
