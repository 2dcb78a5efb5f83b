package journal

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/custodia-xyz/go-custodia/ledger"
)

// Operation record types. Operations are journaled separately from the
// notification events: a delegated transfer's notification carries only
// {from, to, amount}, which is not enough to replay the allowance
// decrement, so rebuilds work from the operation stream.
const (
	OpDeposit      = "op.deposit"
	OpWithdraw     = "op.withdraw"
	OpTransfer     = "op.transfer"
	OpTransferFrom = "op.transfer_from"
	OpApprove      = "op.approve"
)

// Operation payload shapes.
type (
	// DepositOp journals a Deposit call.
	DepositOp struct {
		Who    string `json:"who"`
		Amount string `json:"amount"`
	}

	// WithdrawOp journals a Withdraw call.
	WithdrawOp struct {
		Who    string `json:"who"`
		Amount string `json:"amount"`
	}

	// TransferOp journals a direct Transfer call.
	TransferOp struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Amount string `json:"amount"`
	}

	// TransferFromOp journals a delegated transfer, keeping the spender
	// so replay consumes the same allowance.
	TransferFromOp struct {
		Caller string `json:"caller"`
		Owner  string `json:"owner"`
		To     string `json:"to"`
		Amount string `json:"amount"`
	}

	// ApproveOp journals an Approve call.
	ApproveOp struct {
		Owner   string `json:"owner"`
		Spender string `json:"spender"`
		Amount  string `json:"amount"`
	}
)

// Recorder applies mutating operations to a ledger and journals each
// successful one to an operation stream. Rebuild replays that stream to
// reconstruct the exact ledger state, allowances included.
type Recorder struct {
	ledger *ledger.Ledger
	store  Store
	stream string
}

// NewRecorder wraps a ledger with operation journaling.
func NewRecorder(l *ledger.Ledger, store Store, stream string) *Recorder {
	return &Recorder{ledger: l, store: store, stream: stream}
}

// Ledger returns the wrapped ledger for read access.
func (r *Recorder) Ledger() *ledger.Ledger { return r.ledger }

// Deposit applies and journals a deposit.
func (r *Recorder) Deposit(ctx context.Context, caller ledger.Address, amount *uint256.Int) error {
	if err := r.ledger.Deposit(caller, amount); err != nil {
		return err
	}
	return r.append(ctx, OpDeposit, DepositOp{Who: string(caller), Amount: amount.Dec()})
}

// Withdraw applies and journals a withdrawal.
func (r *Recorder) Withdraw(ctx context.Context, caller ledger.Address, amount *uint256.Int) error {
	if err := r.ledger.Withdraw(caller, amount); err != nil {
		return err
	}
	return r.append(ctx, OpWithdraw, WithdrawOp{Who: string(caller), Amount: amount.Dec()})
}

// Transfer applies and journals a direct transfer.
func (r *Recorder) Transfer(ctx context.Context, caller, to ledger.Address, amount *uint256.Int) error {
	if err := r.ledger.Transfer(caller, to, amount); err != nil {
		return err
	}
	return r.append(ctx, OpTransfer, TransferOp{From: string(caller), To: string(to), Amount: amount.Dec()})
}

// TransferFrom applies and journals a delegated transfer.
func (r *Recorder) TransferFrom(ctx context.Context, caller, owner, to ledger.Address, amount *uint256.Int) error {
	if err := r.ledger.TransferFrom(caller, owner, to, amount); err != nil {
		return err
	}
	return r.append(ctx, OpTransferFrom, TransferFromOp{
		Caller: string(caller),
		Owner:  string(owner),
		To:     string(to),
		Amount: amount.Dec(),
	})
}

// Approve applies and journals an approval.
func (r *Recorder) Approve(ctx context.Context, caller, spender ledger.Address, amount *uint256.Int) error {
	if amount == nil {
		amount = uint256.NewInt(0)
	}
	if err := r.ledger.Approve(caller, spender, amount); err != nil {
		return err
	}
	return r.append(ctx, OpApprove, ApproveOp{
		Owner:   string(caller),
		Spender: string(spender),
		Amount:  amount.Dec(),
	})
}

// append journals one operation record. The ledger mutation has already
// committed; an error here reports lost durability, not a rolled-back
// operation.
func (r *Recorder) append(ctx context.Context, opType string, payload any) error {
	rec, err := NewRecord(r.stream, opType, payload)
	if err != nil {
		return fmt.Errorf("journal: encode %s: %w", opType, err)
	}
	version, err := r.store.StreamVersion(ctx, r.stream)
	if err != nil {
		return fmt.Errorf("journal: stream version: %w", err)
	}
	if _, err := r.store.Append(ctx, r.stream, version, []*Record{rec}); err != nil {
		return fmt.Errorf("journal: append %s: %w", opType, err)
	}
	return nil
}
