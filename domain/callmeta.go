package domain

import (
	"math/big"
	"time"
)

// CallMeta carries who is calling the exchange, the native value attached to the call and
// the time the call is evaluated at
type CallMeta struct {
	Caller Address
	Value  *big.Int
	Time   time.Time
}

func (m CallMeta) AttachedValue() *big.Int {
	if m.Value == nil {
		return Big0
	}
	return m.Value
}

// WithCaller returns a copy of m for a nested call made by caller
func (m CallMeta) WithCaller(caller Address, value *big.Int) CallMeta {
	return CallMeta{Caller: caller, Value: value, Time: m.Time}
}
