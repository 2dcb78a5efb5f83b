package ledger

import (
	"testing"

	"github.com/holiman/uint256"
)

func fund(t *testing.T, l *Ledger, account Address, v uint64) {
	t.Helper()
	if err := l.Deposit(account, amt(v)); err != nil {
		t.Fatalf("fund %s: %v", account, err)
	}
}

func TestTransfer(t *testing.T) {
	l := New(Config{})
	fund(t, l, "alice", 100)

	if err := l.Transfer("alice", "bob", amt(30)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !l.BalanceOf("alice").Eq(amt(70)) {
		t.Errorf("alice = %s, expected 70", l.BalanceOf("alice").Dec())
	}
	if !l.BalanceOf("bob").Eq(amt(30)) {
		t.Errorf("bob = %s, expected 30", l.BalanceOf("bob").Dec())
	}
	if !l.TotalSupply().Eq(amt(100)) {
		t.Errorf("supply changed by transfer: %s", l.TotalSupply().Dec())
	}
}

func TestTransferEntireBalance(t *testing.T) {
	l := New(Config{})
	fund(t, l, "alice", 100)

	if err := l.Transfer("alice", "bob", amt(100)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !l.BalanceOf("alice").IsZero() {
		t.Errorf("alice = %s, expected 0", l.BalanceOf("alice").Dec())
	}
	if !l.BalanceOf("bob").Eq(amt(100)) {
		t.Errorf("bob = %s, expected 100", l.BalanceOf("bob").Dec())
	}
}

func TestTransferRejections(t *testing.T) {
	l := New(Config{})
	fund(t, l, "alice", 100)

	tests := []struct {
		name   string
		caller Address
		to     Address
		amount *uint256.Int
		want   error
	}{
		{"zero amount", "alice", "bob", amt(0), ErrInvalidAmount},
		{"nil amount", "alice", "bob", nil, ErrInvalidAmount},
		{"over ceiling", "alice", "bob", new(uint256.Int).AddUint64(MaxAmount, 1), ErrExceedsMaximum},
		{"empty caller", "", "bob", amt(10), ErrInvalidAddress},
		{"empty recipient", "alice", "", amt(10), ErrInvalidAddress},
		{"self transfer", "alice", "alice", amt(10), ErrSelfTransfer},
		{"insufficient balance", "alice", "bob", amt(101), ErrInsufficientBalance},
		{"sender never funded", "carol", "bob", amt(1), ErrInsufficientBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := l.Snapshot().Hash()
			if err := l.Transfer(tt.caller, tt.to, tt.amount); err != tt.want {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if l.Snapshot().Hash() != before {
				t.Error("failed transfer mutated state")
			}
		})
	}
}

func TestApprove(t *testing.T) {
	l := New(Config{})

	if err := l.Approve("alice", "bob", amt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if !l.Allowance("alice", "bob").Eq(amt(50)) {
		t.Errorf("allowance = %s, expected 50", l.Allowance("alice", "bob").Dec())
	}

	// Approval overwrites, it does not accumulate.
	if err := l.Approve("alice", "bob", amt(20)); err != nil {
		t.Fatalf("re-approve: %v", err)
	}
	if !l.Allowance("alice", "bob").Eq(amt(20)) {
		t.Errorf("allowance = %s, expected 20", l.Allowance("alice", "bob").Dec())
	}
}

func TestApproveZeroRevokes(t *testing.T) {
	l := New(Config{})
	if err := l.Approve("alice", "bob", amt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := l.Approve("alice", "bob", amt(0)); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if !l.Allowance("alice", "bob").IsZero() {
		t.Errorf("allowance = %s after revoke", l.Allowance("alice", "bob").Dec())
	}
}

func TestApproveNeedsNoBalance(t *testing.T) {
	l := New(Config{})
	// An allowance may exceed the owner's balance; the check happens at
	// spend time.
	if err := l.Approve("alice", "bob", amt(1_000_000)); err != nil {
		t.Fatalf("approve: %v", err)
	}
}

func TestApproveSelfRejected(t *testing.T) {
	l := New(Config{})
	if err := l.Approve("alice", "alice", amt(10)); err != ErrSelfTransfer {
		t.Errorf("got %v, want ErrSelfTransfer", err)
	}
	// Rejected even at zero.
	if err := l.Approve("alice", "alice", amt(0)); err != ErrSelfTransfer {
		t.Errorf("zero self-approval: got %v, want ErrSelfTransfer", err)
	}
}

func TestApproveEmptyAddresses(t *testing.T) {
	l := New(Config{})
	if err := l.Approve("", "bob", amt(10)); err != ErrInvalidAddress {
		t.Errorf("empty owner: got %v", err)
	}
	if err := l.Approve("alice", "", amt(10)); err != ErrInvalidAddress {
		t.Errorf("empty spender: got %v", err)
	}
}

func TestTransferFrom(t *testing.T) {
	l := New(Config{})
	fund(t, l, "alice", 100)
	if err := l.Approve("alice", "bob", amt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := l.TransferFrom("bob", "alice", "carol", amt(30)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if !l.BalanceOf("alice").Eq(amt(70)) {
		t.Errorf("alice = %s, expected 70", l.BalanceOf("alice").Dec())
	}
	if !l.BalanceOf("carol").Eq(amt(30)) {
		t.Errorf("carol = %s, expected 30", l.BalanceOf("carol").Dec())
	}
	if !l.Allowance("alice", "bob").Eq(amt(20)) {
		t.Errorf("allowance = %s, expected 20", l.Allowance("alice", "bob").Dec())
	}
}

func TestTransferFromExactAllowance(t *testing.T) {
	l := New(Config{})
	fund(t, l, "alice", 100)
	if err := l.Approve("alice", "bob", amt(40)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := l.TransferFrom("bob", "alice", "carol", amt(40)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if !l.Allowance("alice", "bob").IsZero() {
		t.Errorf("allowance = %s, expected 0", l.Allowance("alice", "bob").Dec())
	}

	// Spent allowance does not renew.
	if err := l.TransferFrom("bob", "alice", "carol", amt(1)); err != ErrInsufficientAllowance {
		t.Errorf("got %v, want ErrInsufficientAllowance", err)
	}
}

func TestTransferFromRejections(t *testing.T) {
	l := New(Config{})
	fund(t, l, "alice", 10)
	if err := l.Approve("alice", "bob", amt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	tests := []struct {
		name   string
		caller Address
		owner  Address
		to     Address
		amount *uint256.Int
		want   error
	}{
		{"no approval", "carol", "alice", "dave", amt(5), ErrInsufficientAllowance},
		{"exceeds allowance", "bob", "alice", "carol", amt(51), ErrInsufficientAllowance},
		{"exceeds balance", "bob", "alice", "carol", amt(11), ErrInsufficientBalance},
		{"owner to owner", "bob", "alice", "alice", amt(5), ErrSelfTransfer},
		{"zero amount", "bob", "alice", "carol", amt(0), ErrInvalidAmount},
		{"empty caller", "", "alice", "carol", amt(5), ErrInvalidAddress},
		{"empty owner", "bob", "", "carol", amt(5), ErrInvalidAddress},
		{"empty recipient", "bob", "alice", "", amt(5), ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := l.Snapshot().Hash()
			if err := l.TransferFrom(tt.caller, tt.owner, tt.to, tt.amount); err != tt.want {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if l.Snapshot().Hash() != before {
				t.Error("failed transferFrom mutated state")
			}
		})
	}
}

func TestTransferFromAllowanceIntactOnBalanceFailure(t *testing.T) {
	l := New(Config{})
	fund(t, l, "alice", 10)
	if err := l.Approve("alice", "bob", amt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := l.TransferFrom("bob", "alice", "carol", amt(20)); err != ErrInsufficientBalance {
		t.Fatalf("got %v, want ErrInsufficientBalance", err)
	}
	if !l.Allowance("alice", "bob").Eq(amt(50)) {
		t.Errorf("allowance = %s, expected 50 untouched", l.Allowance("alice", "bob").Dec())
	}
}

func TestTransferFromToSpender(t *testing.T) {
	// The spender may be the recipient; only owner == recipient is a
	// self transfer.
	l := New(Config{})
	fund(t, l, "alice", 100)
	if err := l.Approve("alice", "bob", amt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := l.TransferFrom("bob", "alice", "bob", amt(50)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if !l.BalanceOf("bob").Eq(amt(50)) {
		t.Errorf("bob = %s, expected 50", l.BalanceOf("bob").Dec())
	}
}

func TestTransferEvents(t *testing.T) {
	sink := &MemorySink{}
	l := New(Config{}, WithSink(sink))
	fund(t, l, "alice", 100)
	sink.Reset()

	if err := l.Transfer("alice", "bob", amt(30)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	events := sink.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev, ok := events[0].(TransferEvent)
	if !ok {
		t.Fatalf("expected TransferEvent, got %T", events[0])
	}
	if ev.From != "alice" || ev.To != "bob" || !ev.Amount.Eq(amt(30)) {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestApprovalEvent(t *testing.T) {
	sink := &MemorySink{}
	l := New(Config{}, WithSink(sink))

	if err := l.Approve("alice", "bob", amt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	events := sink.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev, ok := events[0].(ApprovalEvent)
	if !ok {
		t.Fatalf("expected ApprovalEvent, got %T", events[0])
	}
	if ev.Owner != "alice" || ev.Spender != "bob" || !ev.Amount.Eq(amt(50)) {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestTransferFromEmitsSingleTransfer(t *testing.T) {
	sink := &MemorySink{}
	l := New(Config{}, WithSink(sink))
	fund(t, l, "alice", 100)
	if err := l.Approve("alice", "bob", amt(50)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	sink.Reset()

	if err := l.TransferFrom("bob", "alice", "carol", amt(30)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	events := sink.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev, ok := events[0].(TransferEvent)
	if !ok {
		t.Fatalf("expected TransferEvent, got %T", events[0])
	}
	if ev.From != "alice" || ev.To != "carol" {
		t.Errorf("unexpected event: %+v", ev)
	}
}
