package domain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)
)

// ChainId is an EIP-155 chain id
type ChainId int64

// Address is a lower-cased 0x-prefixed hex address
type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

// IsEmpty is true for both "" and the zero address
func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) ToCommon() common.Address {
	return common.HexToAddress(string(a))
}

func AddressFromCommon(a common.Address) Address {
	return Address(a.Hex()).ToLower()
}

type OrderHash string

func (h OrderHash) ToLower() OrderHash {
	return OrderHash(strings.ToLower(string(h)))
}

type Table string

const (
	TableExchangeEvents Table = "exchange_events"
)

func ToBigInt(nums []string) ([]*big.Int, error) {
	var bns []*big.Int
	for _, n := range nums {
		bn, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, ErrInvalidNumberFormat
		}
		bns = append(bns, bn)
	}
	return bns, nil
}

// BigString renders nil as "0"
func BigString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}

var ChainIdWrappedNativeMap map[ChainId]Address = map[ChainId]Address{
	// eth
	1: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
	// goerli
	5: "0xb4fbf271143f4fbf7b91a5ded31805e42b2208d6",
	// bsc
	56: "0xbb4cdb9cbd36b01bd1cbaebf2de08d9173bc095c",
	// polygon
	137: "0x0d500b1d8e8ef31e21c99d1db9a6444d3adf1270",
}
