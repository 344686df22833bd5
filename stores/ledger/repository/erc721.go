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

var approvedForAll = domain.Address("0x0000000000000000000000000000000000000001")

// Erc721Ledger books collectible ownership and operator approvals in memory
type Erc721Ledger struct {
	j         *journal.Journal
	owners    *addressTable
	approvals *addressTable
	receivers map[domain.Address]ledger.Erc721Receiver
}

func NewErc721Ledger(j *journal.Journal) *Erc721Ledger {
	return &Erc721Ledger{
		j:         j,
		owners:    newAddressTable(j),
		approvals: newAddressTable(j),
		receivers: map[domain.Address]ledger.Erc721Receiver{},
	}
}

func tokenKey(collection domain.Address, tokenId *big.Int) string {
	return tableKey(collection, domain.Address(tokenId.String()))
}

func (l *Erc721Ledger) OwnerOf(ctx ctx.Ctx, collection domain.Address, tokenId *big.Int) (domain.Address, error) {
	if tokenId == nil {
		return "", domain.ErrNotFound
	}
	owner := l.owners.get(tokenKey(collection, tokenId))
	if owner == "" {
		return "", domain.ErrNotFound
	}
	return owner, nil
}

func (l *Erc721Ledger) SafeTransferFrom(ctx ctx.Ctx, collection, operator, from, to domain.Address, tokenId *big.Int) error {
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	owner, err := l.OwnerOf(ctx, collection, tokenId)
	if err != nil {
		return err
	}
	if !owner.Equals(from) {
		return domain.ErrNotTokenOwner
	}
	if !l.canOperate(collection, operator, from, tokenId) {
		return domain.ErrNotTokenOwner
	}

	return l.j.Atomic(func() error {
		key := tokenKey(collection, tokenId)
		l.approvals.set(key, "")
		l.owners.set(key, to)

		if r, ok := l.receivers[to.ToLower()]; ok {
			if err := r.OnErc721Received(ctx, collection, operator, from, tokenId); err != nil {
				ctx.WithFields(log.Fields{
					"err":        err,
					"collection": collection,
					"tokenId":    tokenId,
					"to":         to,
				}).Warn("receiver.OnErc721Received failed")
				return fmt.Errorf("%w: %v", domain.ErrTransferRejected, err)
			}
		}
		return nil
	})
}

func (l *Erc721Ledger) canOperate(collection, operator, owner domain.Address, tokenId *big.Int) bool {
	if operator.Equals(owner) {
		return true
	}
	if l.approvals.get(tokenKey(collection, tokenId)).Equals(operator) {
		return true
	}
	return l.approvals.get(tableKey(collection, owner, operator)).Equals(approvedForAll)
}

// Mint assigns tokenId to owner, replacing any previous owner
func (l *Erc721Ledger) Mint(ctx ctx.Ctx, collection, owner domain.Address, tokenId *big.Int) {
	l.owners.set(tokenKey(collection, tokenId), owner)
}

func (l *Erc721Ledger) Approve(ctx ctx.Ctx, collection, operator domain.Address, tokenId *big.Int) {
	l.approvals.set(tokenKey(collection, tokenId), operator)
}

func (l *Erc721Ledger) SetApprovalForAll(ctx ctx.Ctx, collection, owner, operator domain.Address, approved bool) {
	v := domain.Address("")
	if approved {
		v = approvedForAll
	}
	l.approvals.set(tableKey(collection, owner, operator), v)
}

// SetReceiver installs the hook called when address receives a token
func (l *Erc721Ledger) SetReceiver(address domain.Address, r ledger.Erc721Receiver) {
	l.receivers[address.ToLower()] = r
}
