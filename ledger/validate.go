package ledger

import "github.com/holiman/uint256"

// MaxAmount is the ceiling for a single operation amount: 2^128 - 1.
// Quantities are stored in 256 bits, so the narrower ceiling leaves
// headroom for accumulated balances without a single addition wrapping.
var MaxAmount = func() *uint256.Int {
	max := new(uint256.Int).SetAllOne()
	return max.Rsh(max, 128)
}()

// validateAmount rejects nil or zero amounts and amounts above MaxAmount.
func validateAmount(amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return ErrInvalidAmount
	}
	if amount.Gt(MaxAmount) {
		return ErrExceedsMaximum
	}
	return nil
}

// validateAddress performs a structural check on an identifier. The
// identifier space has no reserved null value; the empty string is the
// only shape an address cannot have.
func validateAddress(addr Address) error {
	if addr == "" {
		return ErrInvalidAddress
	}
	return nil
}
