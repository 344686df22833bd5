package usecase

import (
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/domain"
)

// Set is an unordered address set with O(1) add, remove and membership. Removal swaps the
// last element into the freed slot, so list order is not stable.
type Set struct {
	j     *journal.Journal
	index map[domain.Address]int
	list  []domain.Address
}

func NewSet(j *journal.Journal) *Set {
	return &Set{
		j:     j,
		index: map[domain.Address]int{},
	}
}

func (s *Set) Contains(a domain.Address) bool {
	_, ok := s.index[a.ToLower()]
	return ok
}

// Add returns false if a is already present
func (s *Set) Add(a domain.Address) bool {
	a = a.ToLower()
	if _, ok := s.index[a]; ok {
		return false
	}
	s.index[a] = len(s.list)
	s.list = append(s.list, a)
	s.j.Append(func() { s.remove(a) })
	return true
}

// Remove returns false if a is absent
func (s *Set) Remove(a domain.Address) bool {
	a = a.ToLower()
	idx, ok := s.index[a]
	if !ok {
		return false
	}
	s.remove(a)
	s.j.Append(func() { s.insertAt(a, idx) })
	return true
}

func (s *Set) remove(a domain.Address) {
	idx := s.index[a]
	last := len(s.list) - 1
	if idx != last {
		moved := s.list[last]
		s.list[idx] = moved
		s.index[moved] = idx
	}
	s.list = s.list[:last]
	delete(s.index, a)
}

// insertAt undoes remove: whatever sits at idx goes back to the tail
func (s *Set) insertAt(a domain.Address, idx int) {
	if idx == len(s.list) {
		s.list = append(s.list, a)
	} else {
		moved := s.list[idx]
		s.list = append(s.list, moved)
		s.index[moved] = len(s.list) - 1
		s.list[idx] = a
	}
	s.index[a] = idx
}

func (s *Set) Len() int {
	return len(s.list)
}

func (s *Set) List() []domain.Address {
	res := make([]domain.Address, len(s.list))
	copy(res, s.list)
	return res
}
