package state

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/permadex/godexd/internal/storage/keyValueDb"
)

const storeCacheSize = 4096

// Store is the base View over a keyValueDb backend, with an lru read cache in
// front of it. All durable writes land here through ApplyBatch.
type Store struct {
	db    keyValueDb.DB
	cache *lru.Cache[string, []byte]
}

// NewStore wraps a database.
func NewStore(db keyValueDb.DB) (*Store, error) {
	cache, err := lru.New[string, []byte](storeCacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

func (s *Store) Get(key []byte) ([]byte, error) {
	if v, ok := s.cache.Get(string(key)); ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	}
	v, err := s.db.Read(context.Background(), key)
	if errors.Is(err, keyValueDb.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.cache.Add(string(key), v)
	return v, nil
}

func (s *Store) Has(key []byte) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return v != nil, nil
}

func (s *Store) Put(key, value []byte) error {
	if err := s.db.Write(context.Background(), key, value); err != nil {
		return err
	}
	s.cache.Add(string(key), value)
	return nil
}

func (s *Store) Delete(key []byte) error {
	if err := s.db.Delete(context.Background(), key); err != nil {
		return err
	}
	s.cache.Remove(string(key))
	return nil
}

// ApplyBatch writes a set of operations atomically and keeps the cache
// coherent with what was written.
func (s *Store) ApplyBatch(ops []keyValueDb.BatchOperation) error {
	if err := s.db.Batch(context.Background(), ops); err != nil {
		return err
	}
	for _, op := range ops {
		switch op.Type {
		case keyValueDb.BatchPut:
			s.cache.Add(string(op.Key), op.Value)
		case keyValueDb.BatchDelete:
			s.cache.Remove(string(op.Key))
		}
	}
	return nil
}
