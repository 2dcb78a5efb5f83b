package journal

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/custodia-xyz/go-custodia/ledger"
)

// Rebuild reconstructs a ledger by replaying an operation stream from the
// beginning. The journal only ever contains operations that passed
// validation, so replay applies them through the ordinary operations; an
// error means the journal is corrupt or was written under an incompatible
// ledger configuration.
//
// The rebuilt ledger has no sink attached, so replay emits nothing.
// Attach a sink with SetSink before applying new operations.
func Rebuild(ctx context.Context, store Store, stream string, cfg ledger.Config) (*ledger.Ledger, error) {
	recs, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, err
	}

	l := ledger.New(cfg)
	for _, rec := range recs {
		if err := apply(l, rec); err != nil {
			return nil, fmt.Errorf("journal: replay %s at version %d: %w", rec.Type, rec.Version, err)
		}
	}
	return l, nil
}

func apply(l *ledger.Ledger, rec *Record) error {
	switch rec.Type {
	case OpDeposit:
		var p DepositOp
		if err := rec.Decode(&p); err != nil {
			return err
		}
		amount, err := parseAmount(p.Amount)
		if err != nil {
			return err
		}
		return l.Deposit(ledger.Address(p.Who), amount)

	case OpWithdraw:
		var p WithdrawOp
		if err := rec.Decode(&p); err != nil {
			return err
		}
		amount, err := parseAmount(p.Amount)
		if err != nil {
			return err
		}
		return l.Withdraw(ledger.Address(p.Who), amount)

	case OpTransfer:
		var p TransferOp
		if err := rec.Decode(&p); err != nil {
			return err
		}
		amount, err := parseAmount(p.Amount)
		if err != nil {
			return err
		}
		return l.Transfer(ledger.Address(p.From), ledger.Address(p.To), amount)

	case OpTransferFrom:
		var p TransferFromOp
		if err := rec.Decode(&p); err != nil {
			return err
		}
		amount, err := parseAmount(p.Amount)
		if err != nil {
			return err
		}
		return l.TransferFrom(ledger.Address(p.Caller), ledger.Address(p.Owner), ledger.Address(p.To), amount)

	case OpApprove:
		var p ApproveOp
		if err := rec.Decode(&p); err != nil {
			return err
		}
		amount, err := parseAmount(p.Amount)
		if err != nil {
			return err
		}
		return l.Approve(ledger.Address(p.Owner), ledger.Address(p.Spender), amount)

	default:
		return fmt.Errorf("unknown operation type %q", rec.Type)
	}
}

func parseAmount(s string) (*uint256.Int, error) {
	amount := new(uint256.Int)
	if err := amount.SetFromDecimal(s); err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return amount, nil
}
