// Package pebble implements the keyValueDb backend on cockroachdb/pebble.
//
// Values above a small threshold are stored lz4-compressed behind a one-byte
// envelope flag; short values are stored raw since the block header would cost
// more than it saves.
package pebble

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/pierrec/lz4"

	"github.com/permadex/godexd/internal/storage/keyValueDb"
)

const (
	flagRaw = 0x00
	flagLZ4 = 0x01

	// minCompressionSize mirrors the node-store heuristic: don't compress
	// very small values.
	minCompressionSize = 128
)

func init() {
	keyValueDb.RegisterBackend(keyValueDb.BackendPebble, func(path string) (keyValueDb.DB, error) {
		return Open(path)
	})
}

// DB wraps a pebble database behind the keyValueDb interface.
type DB struct {
	db *pebble.DB
}

// Open opens (or creates) a pebble database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	opts := &pebble.Options{
		BytesPerSync: 512 << 10,
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble db at %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

func (p *DB) Read(ctx context.Context, key []byte) ([]byte, error) {
	if p.db == nil {
		return nil, keyValueDb.ErrDBClosed
	}
	val, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, keyValueDb.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return decode(val)
}

func (p *DB) Write(ctx context.Context, key []byte, value []byte) error {
	if p.db == nil {
		return keyValueDb.ErrDBClosed
	}
	return p.db.Set(key, encode(value), pebble.Sync)
}

func (p *DB) Delete(ctx context.Context, key []byte) error {
	if p.db == nil {
		return keyValueDb.ErrDBClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

func (p *DB) Batch(ctx context.Context, ops []keyValueDb.BatchOperation) error {
	if p.db == nil {
		return keyValueDb.ErrDBClosed
	}
	b := p.db.NewBatch()
	defer b.Close()
	for _, op := range ops {
		switch op.Type {
		case keyValueDb.BatchPut:
			if err := b.Set(op.Key, encode(op.Value), nil); err != nil {
				return err
			}
		case keyValueDb.BatchDelete:
			if err := b.Delete(op.Key, nil); err != nil {
				return err
			}
		}
	}
	return p.db.Apply(b, pebble.Sync)
}

func (p *DB) Iterator(ctx context.Context, start, end []byte) (keyValueDb.Iterator, error) {
	if p.db == nil {
		return nil, keyValueDb.ErrDBClosed
	}
	it, err := p.db.NewIter(&pebble.IterOptions{LowerBound: start, UpperBound: end})
	if err != nil {
		return nil, err
	}
	return &iterator{it: it, first: true}, nil
}

func (p *DB) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

type iterator struct {
	it    *pebble.Iterator
	first bool
	err   error
	value []byte
}

func (i *iterator) Next() bool {
	var ok bool
	if i.first {
		i.first = false
		ok = i.it.First()
	} else {
		ok = i.it.Next()
	}
	if !ok {
		return false
	}
	i.value, i.err = decode(i.it.Value())
	return i.err == nil
}

func (i *iterator) Key() []byte { return i.it.Key() }

func (i *iterator) Value() []byte { return i.value }

func (i *iterator) Error() error {
	if i.err != nil {
		return i.err
	}
	return i.it.Error()
}

func (i *iterator) Close() error { return i.it.Close() }

// encode wraps a value in the compression envelope.
func encode(value []byte) []byte {
	if len(value) < minCompressionSize {
		out := make([]byte, 1+len(value))
		out[0] = flagRaw
		copy(out[1:], value)
		return out
	}
	buf := make([]byte, lz4.CompressBlockBound(len(value)))
	n, err := lz4.CompressBlock(value, buf, nil)
	if err != nil || n == 0 || n >= len(value) {
		// Incompressible; store raw.
		out := make([]byte, 1+len(value))
		out[0] = flagRaw
		copy(out[1:], value)
		return out
	}
	out := make([]byte, 1+4+n)
	out[0] = flagLZ4
	binary.BigEndian.PutUint32(out[1:5], uint32(len(value)))
	copy(out[5:], buf[:n])
	return out
}

// decode unwraps the compression envelope.
func decode(stored []byte) ([]byte, error) {
	if len(stored) == 0 {
		return nil, fmt.Errorf("empty stored value")
	}
	switch stored[0] {
	case flagRaw:
		out := make([]byte, len(stored)-1)
		copy(out, stored[1:])
		return out, nil
	case flagLZ4:
		if len(stored) < 5 {
			return nil, fmt.Errorf("truncated lz4 envelope")
		}
		size := binary.BigEndian.Uint32(stored[1:5])
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(stored[5:], out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		return out[:n], nil
	default:
		return nil, fmt.Errorf("unknown value envelope flag 0x%02x", stored[0])
	}
}
