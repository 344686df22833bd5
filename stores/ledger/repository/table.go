package repository

import (
	"math/big"

	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/keys"
)

func tableKey(parts ...domain.Address) string {
	strs := make([]string, 0, len(parts))
	for _, p := range parts {
		strs = append(strs, p.ToLowerStr())
	}
	return keys.CustomKey("|", strs...)
}

// amountTable is a journaled map of non-negative amounts, missing keys read as zero
type amountTable struct {
	j    *journal.Journal
	rows map[string]*big.Int
}

func newAmountTable(j *journal.Journal) *amountTable {
	return &amountTable{j: j, rows: map[string]*big.Int{}}
}

func (t *amountTable) get(key string) *big.Int {
	if v, ok := t.rows[key]; ok {
		return new(big.Int).Set(v)
	}
	return new(big.Int)
}

func (t *amountTable) set(key string, v *big.Int) {
	prev, ok := t.rows[key]
	t.rows[key] = new(big.Int).Set(v)
	t.j.Append(func() {
		if ok {
			t.rows[key] = prev
		} else {
			delete(t.rows, key)
		}
	})
}

// sub fails without writing if the row holds less than v
func (t *amountTable) sub(key string, v *big.Int) bool {
	cur := t.get(key)
	if cur.Cmp(v) < 0 {
		return false
	}
	t.set(key, cur.Sub(cur, v))
	return true
}

func (t *amountTable) add(key string, v *big.Int) {
	cur := t.get(key)
	t.set(key, cur.Add(cur, v))
}

// addressTable is a journaled map of addresses, missing keys read as the empty address
type addressTable struct {
	j    *journal.Journal
	rows map[string]domain.Address
}

func newAddressTable(j *journal.Journal) *addressTable {
	return &addressTable{j: j, rows: map[string]domain.Address{}}
}

func (t *addressTable) get(key string) domain.Address {
	return t.rows[key]
}

func (t *addressTable) set(key string, v domain.Address) {
	prev, ok := t.rows[key]
	if v == "" {
		delete(t.rows, key)
	} else {
		t.rows[key] = v.ToLower()
	}
	t.j.Append(func() {
		if ok {
			t.rows[key] = prev
		} else {
			delete(t.rows, key)
		}
	})
}
