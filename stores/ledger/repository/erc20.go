package repository

import (
	"fmt"
	"math/big"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/ledger"
)

// Erc20Ledger books fungible balances and allowances of any number of tokens in memory
type Erc20Ledger struct {
	j          *journal.Journal
	balances   *amountTable
	allowances *amountTable
	hooks      map[domain.Address]ledger.Erc20Hook
}

func NewErc20Ledger(j *journal.Journal) *Erc20Ledger {
	return &Erc20Ledger{
		j:          j,
		balances:   newAmountTable(j),
		allowances: newAmountTable(j),
		hooks:      map[domain.Address]ledger.Erc20Hook{},
	}
}

func (l *Erc20Ledger) BalanceOf(ctx ctx.Ctx, token, owner domain.Address) (*big.Int, error) {
	return l.balances.get(tableKey(token, owner)), nil
}

func (l *Erc20Ledger) Allowance(ctx ctx.Ctx, token, owner, spender domain.Address) (*big.Int, error) {
	return l.allowances.get(tableKey(token, owner, spender)), nil
}

func (l *Erc20Ledger) TransferFrom(ctx ctx.Ctx, token, spender, from, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	return l.j.Atomic(func() error {
		if !spender.Equals(from) && !l.allowances.sub(tableKey(token, from, spender), amount) {
			return domain.ErrInsufficientAllowance
		}
		if !l.balances.sub(tableKey(token, from), amount) {
			return domain.ErrInsufficientBalance
		}
		l.balances.add(tableKey(token, to), amount)

		if hook, ok := l.hooks[token.ToLower()]; ok {
			if err := hook.OnErc20Transfer(ctx, token, from, to, amount); err != nil {
				ctx.WithFields(log.Fields{
					"err":   err,
					"token": token,
					"from":  from,
					"to":    to,
				}).Warn("hook.OnErc20Transfer failed")
				return fmt.Errorf("%w: %v", domain.ErrTransferRejected, err)
			}
		}
		return nil
	})
}

// Mint credits amount to owner
func (l *Erc20Ledger) Mint(ctx ctx.Ctx, token, owner domain.Address, amount *big.Int) {
	l.balances.add(tableKey(token, owner), amount)
}

func (l *Erc20Ledger) Approve(ctx ctx.Ctx, token, owner, spender domain.Address, amount *big.Int) {
	l.allowances.set(tableKey(token, owner, spender), amount)
}

// SetHook installs a callback run on every transfer of token
func (l *Erc20Ledger) SetHook(token domain.Address, hook ledger.Erc20Hook) {
	l.hooks[token.ToLower()] = hook
}
