package ledger

import "github.com/holiman/uint256"

// safeAdd returns a+b, or ErrArithmeticOverflow if the sum does not fit
// in 256 bits. It never mutates its operands.
func safeAdd(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrArithmeticOverflow
	}
	return sum, nil
}

// safeSub returns a-b, or ErrArithmeticUnderflow if b > a. It never
// mutates its operands.
func safeSub(a, b *uint256.Int) (*uint256.Int, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, ErrArithmeticUnderflow
	}
	return diff, nil
}
