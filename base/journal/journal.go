// Package journal keeps an undo log of in-memory state writes so a group of writes made by
// several stores can be reverted as a whole. It follows the journal used by go-ethereum's
// state.StateDB: every mutation records a closure that restores the previous value.
package journal

import (
	"github.com/x-xyz/goexchange/base/log"
)

// Entry undoes a single write
type Entry func()

// Journal is not safe for concurrent use. Callers are expected to serialize access,
// see base/sequencer.
type Journal struct {
	entries  []Entry
	depth    int
	onCommit []func()
}

func New() *Journal {
	return &Journal{}
}

// Append records how to undo a write that just happened
func (j *Journal) Append(undo Entry) {
	if j.depth == 0 {
		// nothing to revert to outside of Atomic
		return
	}
	j.entries = append(j.entries, undo)
}

// Snapshot returns an id that can be passed to RevertToSnapshot
func (j *Journal) Snapshot() int {
	return len(j.entries)
}

// RevertToSnapshot undoes every write made after the snapshot, newest first
func (j *Journal) RevertToSnapshot(id int) {
	if id < 0 || id > len(j.entries) {
		log.Log().WithFields(log.Fields{
			"id":      id,
			"entries": len(j.entries),
		}).Panic("journal: invalid snapshot")
	}
	for i := len(j.entries) - 1; i >= id; i-- {
		j.entries[i]()
	}
	j.entries = j.entries[:id]
}

// Depth is the number of Atomic calls currently on the stack
func (j *Journal) Depth() int {
	return j.depth
}

// Len is the number of pending undo entries
func (j *Journal) Len() int {
	return len(j.entries)
}

// OnCommit registers fn to run once the outermost Atomic call returns without error.
// Outside of Atomic, fn runs immediately.
func (j *Journal) OnCommit(fn func()) {
	if j.depth == 0 {
		fn()
		return
	}
	j.onCommit = append(j.onCommit, fn)
	n := len(j.onCommit) - 1
	j.Append(func() {
		j.onCommit = j.onCommit[:n]
	})
}

// Atomic runs fn and reverts all writes fn made if it returns an error or panics.
// Nested calls revert only their own writes; commit hooks run after the outermost call.
func (j *Journal) Atomic(fn func() error) (err error) {
	snap := j.Snapshot()
	j.depth++
	defer func() {
		j.depth--
		if r := recover(); r != nil {
			j.RevertToSnapshot(snap)
			if j.depth == 0 {
				j.reset()
			}
			panic(r)
		}
		if err != nil {
			j.RevertToSnapshot(snap)
		}
		if j.depth == 0 {
			hooks := j.onCommit
			j.reset()
			for _, h := range hooks {
				h()
			}
		}
	}()
	return fn()
}

func (j *Journal) reset() {
	j.entries = j.entries[:0]
	j.onCommit = nil
}
