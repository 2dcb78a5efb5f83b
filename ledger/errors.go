package ledger

import "errors"

var (
	// Validation errors
	ErrInvalidAmount  = errors.New("ledger: amount must be non-zero")
	ErrExceedsMaximum = errors.New("ledger: amount exceeds maximum")
	ErrInvalidAddress = errors.New("ledger: invalid address")
	ErrSelfTransfer   = errors.New("ledger: source and destination are the same")

	// Precondition errors
	ErrInsufficientBalance   = errors.New("ledger: insufficient balance")
	ErrInsufficientAllowance = errors.New("ledger: insufficient allowance")

	// Arithmetic errors
	ErrArithmeticOverflow  = errors.New("ledger: arithmetic overflow")
	ErrArithmeticUnderflow = errors.New("ledger: arithmetic underflow")

	// ErrInconsistentState reports a violation of the 1:1 backing invariant
	// (total issued != custody pool). It signals a bug in the ledger itself,
	// never a caller mistake, and aborts the operation that detected it.
	ErrInconsistentState = errors.New("ledger: issued supply does not match custody pool")
)
