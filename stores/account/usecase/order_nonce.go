package usecase

import (
	"math/big"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/account"
)

type orderNonceUCImpl struct {
	repo account.OrderNonceRepo
}

func NewOrderNonceUseCase(repo account.OrderNonceRepo) account.OrderNonceUseCase {
	return &orderNonceUCImpl{repo}
}

func (im *orderNonceUCImpl) FindOne(ctx ctx.Ctx, address domain.Address) (*account.OrderNonce, error) {
	orderNonce, err := im.repo.FindOne(ctx, address)
	if err == domain.ErrNotFound {
		return &account.OrderNonce{
			Address:    address.ToLower(),
			MinNonce:   new(big.Int),
			UsedNonces: []*big.Int{},
		}, nil
	}
	return orderNonce, err
}

func (im *orderNonceUCImpl) CancelAllBelow(ctx ctx.Ctx, address domain.Address, minNonce *big.Int) error {
	if minNonce == nil || minNonce.Sign() < 0 {
		return domain.ErrInvalidNumberFormat
	}
	orderNonce, err := im.getOrCreate(ctx, address)
	if err != nil {
		return err
	}
	if minNonce.Cmp(orderNonce.MinNonce) <= 0 {
		return domain.ErrNonceLowerThanCurrent
	}
	if err := im.repo.SetMinNonce(ctx, address, minNonce); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"address":  address,
			"minNonce": minNonce,
		}).Error("repo.SetMinNonce failed")
		return err
	}
	return nil
}

func (im *orderNonceUCImpl) CancelSpecific(ctx ctx.Ctx, address domain.Address, nonces []*big.Int) error {
	if len(nonces) == 0 {
		return domain.ErrArrayEmpty
	}
	orderNonce, err := im.getOrCreate(ctx, address)
	if err != nil {
		return err
	}

	// check the whole batch before touching state
	seen := map[string]bool{}
	for _, nonce := range nonces {
		if nonce == nil || nonce.Sign() < 0 {
			return domain.ErrInvalidNumberFormat
		}
		if nonce.Cmp(orderNonce.MinNonce) <= 0 {
			return domain.ErrNonceLowerThanCurrent
		}
		used, err := im.repo.IsUsed(ctx, address, nonce)
		if err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"address": address,
				"nonce":   nonce,
			}).Error("repo.IsUsed failed")
			return err
		}
		if used || seen[nonce.String()] {
			return domain.ErrOrderAlreadyCancelled
		}
		seen[nonce.String()] = true
	}

	for _, nonce := range nonces {
		if err := im.repo.MarkUsed(ctx, address, nonce); err != nil {
			ctx.WithFields(log.Fields{
				"err":     err,
				"address": address,
				"nonce":   nonce,
			}).Error("repo.MarkUsed failed")
			return err
		}
	}
	return nil
}

func (im *orderNonceUCImpl) IsValid(ctx ctx.Ctx, address domain.Address, nonce *big.Int) (bool, error) {
	if nonce == nil {
		return false, nil
	}
	orderNonce, err := im.repo.FindOne(ctx, address)
	if err == domain.ErrNotFound {
		// a fresh signer has watermark 0 and nothing used
		return nonce.Sign() > 0, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.FindOne failed")
		return false, err
	}
	if nonce.Cmp(orderNonce.MinNonce) <= 0 {
		return false, nil
	}
	used, err := im.repo.IsUsed(ctx, address, nonce)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
			"nonce":   nonce,
		}).Error("repo.IsUsed failed")
		return false, err
	}
	return !used, nil
}

func (im *orderNonceUCImpl) MarkUsed(ctx ctx.Ctx, address domain.Address, nonce *big.Int) error {
	if _, err := im.getOrCreate(ctx, address); err != nil {
		return err
	}
	if err := im.repo.MarkUsed(ctx, address, nonce); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
			"nonce":   nonce,
		}).Error("repo.MarkUsed failed")
		return err
	}
	return nil
}

func (im *orderNonceUCImpl) getOrCreate(ctx ctx.Ctx, address domain.Address) (*account.OrderNonce, error) {
	orderNonce, err := im.repo.FindOne(ctx, address)
	if err == nil {
		return orderNonce, nil
	} else if err != domain.ErrNotFound {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.FindOne failed")
		return nil, err
	}

	if err := im.repo.Create(ctx, address); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("repo.Create failed")
		return nil, err
	}
	return im.repo.FindOne(ctx, address)
}
