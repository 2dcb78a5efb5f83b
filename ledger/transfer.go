package ledger

import "github.com/holiman/uint256"

// Transfer moves amount from the caller's balance to another account.
func (l *Ledger) Transfer(caller, to Address, amount *uint256.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := validateAddress(caller); err != nil {
		return err
	}
	if err := validateAddress(to); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ev, err := l.move(caller, to, amount)
	if err != nil {
		return err
	}
	l.emit(ev)
	return nil
}

// Approve sets the allowance for (caller, spender) to amount, overwriting
// any previous value. A zero amount revokes the delegation. Self-approval
// is rejected unconditionally, even for zero amounts.
func (l *Ledger) Approve(caller, spender Address, amount *uint256.Int) error {
	if err := validateAddress(caller); err != nil {
		return err
	}
	if err := validateAddress(spender); err != nil {
		return err
	}
	if caller == spender {
		return ErrSelfTransfer
	}
	if amount == nil {
		amount = uint256.NewInt(0)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.setAllowance(caller, spender, new(uint256.Int).Set(amount))
	l.emit(ApprovalEvent{
		Owner:   caller,
		Spender: spender,
		Amount:  new(uint256.Int).Set(amount),
	})
	return nil
}

// TransferFrom moves amount from owner's balance to another account,
// consuming the caller's allowance by exactly amount. The balance
// movement and the allowance decrement commit together; any failed
// precondition leaves both untouched.
func (l *Ledger) TransferFrom(caller, owner, to Address, amount *uint256.Int) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := validateAddress(caller); err != nil {
		return err
	}
	if err := validateAddress(owner); err != nil {
		return err
	}
	if err := validateAddress(to); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	granted := l.allowances[owner][caller]
	if granted == nil || granted.Lt(amount) {
		return ErrInsufficientAllowance
	}
	remaining, err := safeSub(granted, amount)
	if err != nil {
		return err
	}

	ev, err := l.move(owner, to, amount)
	if err != nil {
		return err
	}
	l.setAllowance(owner, caller, remaining)
	l.emit(ev)
	return nil
}

// move performs the balance-to-balance movement shared by direct and
// delegated transfers. Both new balances are computed before either is
// written, so a failure leaves state untouched. Callers hold l.mu; the
// returned event is emitted by the caller once all of its writes are done.
func (l *Ledger) move(from, to Address, amount *uint256.Int) (TransferEvent, error) {
	if from == to {
		return TransferEvent{}, ErrSelfTransfer
	}

	fromBalance := l.balances[from]
	if fromBalance == nil || fromBalance.Lt(amount) {
		return TransferEvent{}, ErrInsufficientBalance
	}

	newFrom, err := safeSub(fromBalance, amount)
	if err != nil {
		return TransferEvent{}, err
	}
	toBalance := l.balances[to]
	if toBalance == nil {
		toBalance = uint256.NewInt(0)
	}
	newTo, err := safeAdd(toBalance, amount)
	if err != nil {
		return TransferEvent{}, err
	}

	l.balances[from] = newFrom
	l.balances[to] = newTo

	return TransferEvent{
		From:   from,
		To:     to,
		Amount: new(uint256.Int).Set(amount),
	}, nil
}

// setAllowance writes an allowance entry, creating the owner's map lazily.
// Callers hold l.mu.
func (l *Ledger) setAllowance(owner, spender Address, amount *uint256.Int) {
	m := l.allowances[owner]
	if m == nil {
		m = make(map[Address]*uint256.Int)
		l.allowances[owner] = m
	}
	m[spender] = amount
}
