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

// NativeLedger books native currency balances in memory
type NativeLedger struct {
	j         *journal.Journal
	balances  *amountTable
	receivers map[domain.Address]ledger.NativeReceiver
}

func NewNativeLedger(j *journal.Journal) *NativeLedger {
	return &NativeLedger{
		j:         j,
		balances:  newAmountTable(j),
		receivers: map[domain.Address]ledger.NativeReceiver{},
	}
}

func (l *NativeLedger) BalanceOf(ctx ctx.Ctx, owner domain.Address) (*big.Int, error) {
	return l.balances.get(tableKey(owner)), nil
}

func (l *NativeLedger) Transfer(ctx ctx.Ctx, from, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	return l.j.Atomic(func() error {
		if !l.balances.sub(tableKey(from), amount) {
			return domain.ErrInsufficientBalance
		}
		l.balances.add(tableKey(to), amount)

		if r, ok := l.receivers[to.ToLower()]; ok {
			if err := r.OnNativeReceived(ctx, from, amount); err != nil {
				ctx.WithFields(log.Fields{
					"err":  err,
					"from": from,
					"to":   to,
				}).Warn("receiver.OnNativeReceived failed")
				return fmt.Errorf("%w: %v", domain.ErrTransferRejected, err)
			}
		}
		return nil
	})
}

func (l *NativeLedger) Mint(ctx ctx.Ctx, owner domain.Address, amount *big.Int) {
	l.balances.add(tableKey(owner), amount)
}

// SetReceiver installs the hook called when address is paid
func (l *NativeLedger) SetReceiver(address domain.Address, r ledger.NativeReceiver) {
	l.receivers[address.ToLower()] = r
}
