package main

import (
	"math/big"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/base/sequencer"
	"github.com/x-xyz/goexchange/domain"
	ledger_repository "github.com/x-xyz/goexchange/stores/ledger/repository"
)

// ledgerSeed funds accounts of a devnet deployment. Amounts are decimal strings.
type ledgerSeed struct {
	Native []struct {
		Owner  domain.Address `mapstructure:"owner"`
		Amount string         `mapstructure:"amount"`
	} `mapstructure:"native"`
	Erc20 []struct {
		Token  domain.Address `mapstructure:"token"`
		Owner  domain.Address `mapstructure:"owner"`
		Amount string         `mapstructure:"amount"`
		// Allowance granted to the exchange
		Allowance string `mapstructure:"allowance"`
	} `mapstructure:"erc20"`
	Erc721 []struct {
		Collection domain.Address `mapstructure:"collection"`
		Owner      domain.Address `mapstructure:"owner"`
		TokenIds   []string       `mapstructure:"tokenIds"`
		// ApproveExchange lets the exchange move every token of owner in collection
		ApproveExchange bool `mapstructure:"approveExchange"`
	} `mapstructure:"erc721"`
}

func (s *ledgerSeed) apply(
	c ctx.Ctx,
	seq *sequencer.Sequencer,
	j *journal.Journal,
	exchangeAddr domain.Address,
	erc20 *ledger_repository.Erc20Ledger,
	erc721 *ledger_repository.Erc721Ledger,
	native *ledger_repository.NativeLedger,
) error {
	return seq.Do(c, func(c ctx.Ctx) error {
		return j.Atomic(func() error {
			for _, n := range s.Native {
				amount, err := seedAmount(n.Amount)
				if err != nil {
					return err
				}
				native.Mint(c, n.Owner.ToLower(), amount)
			}
			for _, t := range s.Erc20 {
				amount, err := seedAmount(t.Amount)
				if err != nil {
					return err
				}
				allowance, err := seedAmount(t.Allowance)
				if err != nil {
					return err
				}
				erc20.Mint(c, t.Token.ToLower(), t.Owner.ToLower(), amount)
				erc20.Approve(c, t.Token.ToLower(), t.Owner.ToLower(), exchangeAddr, allowance)
			}
			for _, n := range s.Erc721 {
				ids, err := domain.ToBigInt(n.TokenIds)
				if err != nil {
					return err
				}
				for _, id := range ids {
					erc721.Mint(c, n.Collection.ToLower(), n.Owner.ToLower(), id)
				}
				if n.ApproveExchange {
					erc721.SetApprovalForAll(c, n.Collection.ToLower(), n.Owner.ToLower(), exchangeAddr, true)
				}
			}
			c.WithFields(log.Fields{
				"native": len(s.Native),
				"erc20":  len(s.Erc20),
				"erc721": len(s.Erc721),
			}).Info("ledger seeded")
			return nil
		})
	})
}

func seedAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, domain.ErrInvalidNumberFormat
	}
	return n, nil
}
