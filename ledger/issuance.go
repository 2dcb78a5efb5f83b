package ledger

import "github.com/holiman/uint256"

// Deposit mints amount units to the caller against the custody pool.
// Caller balance, total issued, and custody pool all increase by amount
// in one commit, with the 1:1 backing invariant asserted before and after.
func (l *Ledger) Deposit(caller Address, amount *uint256.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := validateAddress(caller); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkConsistency(); err != nil {
		return err
	}

	balance := l.balances[caller]
	if balance == nil {
		balance = uint256.NewInt(0)
	}

	// All new values are computed before any write; a failure here leaves
	// state untouched.
	newBalance, err := safeAdd(balance, amount)
	if err != nil {
		return err
	}
	newIssued, err := safeAdd(l.totalIssued, amount)
	if err != nil {
		return err
	}
	newCustody, err := safeAdd(l.custody, amount)
	if err != nil {
		return err
	}

	l.balances[caller] = newBalance
	l.totalIssued = newIssued
	l.custody = newCustody

	if err := l.checkConsistency(); err != nil {
		return err
	}

	ts := l.now()
	l.emit(DepositEvent{
		Who:       caller,
		Amount:    new(uint256.Int).Set(amount),
		Minted:    new(uint256.Int).Set(amount),
		Timestamp: ts,
	})
	l.emit(TransferEvent{
		From:   l.pool,
		To:     caller,
		Amount: new(uint256.Int).Set(amount),
	})
	return nil
}

// Withdraw burns amount units from the caller and releases the backing
// resource from the custody pool. Mirrors Deposit.
func (l *Ledger) Withdraw(caller Address, amount *uint256.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := validateAddress(caller); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkConsistency(); err != nil {
		return err
	}

	balance := l.balances[caller]
	if balance == nil || balance.Lt(amount) {
		return ErrInsufficientBalance
	}

	newBalance, err := safeSub(balance, amount)
	if err != nil {
		return err
	}
	newIssued, err := safeSub(l.totalIssued, amount)
	if err != nil {
		return err
	}
	newCustody, err := safeSub(l.custody, amount)
	if err != nil {
		return err
	}

	l.balances[caller] = newBalance
	l.totalIssued = newIssued
	l.custody = newCustody

	if err := l.checkConsistency(); err != nil {
		return err
	}

	ts := l.now()
	l.emit(WithdrawalEvent{
		Who:       caller,
		Burned:    new(uint256.Int).Set(amount),
		Returned:  new(uint256.Int).Set(amount),
		Timestamp: ts,
	})
	l.emit(TransferEvent{
		From:   caller,
		To:     l.pool,
		Amount: new(uint256.Int).Set(amount),
	})
	return nil
}
