package journal

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/custodia-xyz/go-custodia/ledger"
)

func TestSinkJournalsEvents(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	sink := NewSink(store, "ledger.events", zerolog.Nop())
	l := ledger.New(ledger.Config{}, ledger.WithSink(sink))

	if err := l.Deposit("alice", amt(100)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := l.Transfer("alice", "bob", amt(30)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if err := l.Approve("alice", "bob", amt(10)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := l.Withdraw("bob", amt(30)); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	recs, err := store.Read(ctx, "ledger.events", 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// Deposit and withdrawal each emit the pool transfer leg too.
	want := []string{
		ledger.KindDeposit, ledger.KindTransfer,
		ledger.KindTransfer,
		ledger.KindApproval,
		ledger.KindWithdrawal, ledger.KindTransfer,
	}
	if len(recs) != len(want) {
		t.Fatalf("journaled %d events, expected %d", len(recs), len(want))
	}
	for i, r := range recs {
		if r.Type != want[i] {
			t.Errorf("event %d = %s, expected %s", i, r.Type, want[i])
		}
	}

	var p TransferPayload
	if err := recs[1].Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.From != string(ledger.DefaultPool) || p.To != "alice" || p.Amount != "100" {
		t.Errorf("mint transfer payload = %+v", p)
	}
}

func TestEncodeDepositPayload(t *testing.T) {
	rec, err := Encode("s", ledger.DepositEvent{
		Who:    "alice",
		Amount: amt(7),
		Minted: amt(7),
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if rec.Type != ledger.KindDeposit {
		t.Errorf("type = %s", rec.Type)
	}
	var p DepositPayload
	if err := rec.Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Who != "alice" || p.Amount != "7" || p.Minted != "7" {
		t.Errorf("payload = %+v", p)
	}
}
