package state

import (
	"github.com/permadex/godexd/internal/storage/keyValueDb"
)

// action classifies how a tracked key has been touched.
type action int

const (
	actionCache action = iota
	actionInsert
	actionModify
	actionErase
)

type trackedEntry struct {
	action   action
	original []byte
	current  []byte
}

// StateTable is a write-tracking overlay on a Store. Reads fall through to the
// base and are cached; writes stay in the table until Commit flushes them as a
// single batch. Discarding the table instead of committing leaves the base
// untouched, which is what makes each operation all-or-nothing.
type StateTable struct {
	base  *Store
	items map[string]*trackedEntry
}

// NewStateTable opens an overlay on base.
func NewStateTable(base *Store) *StateTable {
	return &StateTable{
		base:  base,
		items: make(map[string]*trackedEntry),
	}
}

func (t *StateTable) Get(key []byte) ([]byte, error) {
	if e, ok := t.items[string(key)]; ok {
		if e.action == actionErase {
			return nil, nil
		}
		return e.current, nil
	}
	data, err := t.base.Get(key)
	if err != nil {
		return nil, err
	}
	if data != nil {
		t.items[string(key)] = &trackedEntry{action: actionCache, original: data, current: data}
	}
	return data, nil
}

func (t *StateTable) Has(key []byte) (bool, error) {
	if e, ok := t.items[string(key)]; ok {
		return e.action != actionErase, nil
	}
	return t.base.Has(key)
}

func (t *StateTable) Put(key, value []byte) error {
	if e, ok := t.items[string(key)]; ok {
		switch e.action {
		case actionErase:
			if e.original != nil {
				e.action = actionModify
			} else {
				e.action = actionInsert
			}
		case actionCache:
			e.action = actionModify
		}
		e.current = value
		return nil
	}
	original, err := t.base.Get(key)
	if err != nil {
		return err
	}
	e := &trackedEntry{current: value, original: original}
	if original != nil {
		e.action = actionModify
	} else {
		e.action = actionInsert
	}
	t.items[string(key)] = e
	return nil
}

func (t *StateTable) Delete(key []byte) error {
	if e, ok := t.items[string(key)]; ok {
		if e.action == actionInsert {
			// Never reached the base; forget it entirely.
			delete(t.items, string(key))
			return nil
		}
		e.action = actionErase
		e.current = nil
		return nil
	}
	original, err := t.base.Get(key)
	if err != nil {
		return err
	}
	if original == nil {
		return nil
	}
	t.items[string(key)] = &trackedEntry{action: actionErase, original: original}
	return nil
}

// Commit flushes every tracked mutation to the base store as one atomic batch.
func (t *StateTable) Commit() error {
	var ops []keyValueDb.BatchOperation
	for key, e := range t.items {
		switch e.action {
		case actionInsert, actionModify:
			ops = append(ops, keyValueDb.BatchOperation{
				Type:  keyValueDb.BatchPut,
				Key:   []byte(key),
				Value: e.current,
			})
		case actionErase:
			ops = append(ops, keyValueDb.BatchOperation{
				Type: keyValueDb.BatchDelete,
				Key:  []byte(key),
			})
		}
	}
	if len(ops) == 0 {
		return nil
	}
	return t.base.ApplyBatch(ops)
}
