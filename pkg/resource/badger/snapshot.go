package badger

import (
	"encoding/binary"
	"fmt"
	"math"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/kasuganosora/vectordb/pkg/resource/domain"
	"github.com/kasuganosora/vectordb/pkg/resource/memory"
)

// Store persists vector index entries for a (table, column) pair across
// process restarts. It is an optional attachment to the in-memory indexes
// in pkg/resource/memory — nothing in that package depends on it.
type Store struct {
	db *badgerdb.DB
}

// Open opens (or creates) the Badger database described by cfg.
func Open(cfg *DataSourceConfig) (*Store, error) {
	db, err := badgerdb.Open(cfg.options())
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func vectorKey(tableName, columnName string, vertexID int) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:%020d", prefixVector, tableName, columnName, vertexID))
}

func vectorPrefix(tableName, columnName string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s:", prefixVector, tableName, columnName))
}

// Save writes every entry for tableName.columnName in a single transaction,
// keyed by its position in entries so Load replays them in the same order
// BuildIndex originally saw them in.
func (s *Store) Save(tableName, columnName string, entries []memory.VectorEntry) error {
	return s.db.Update(func(txn *badgerdb.Txn) error {
		for i, entry := range entries {
			if err := txn.Set(vectorKey(tableName, columnName, i), encodeEntry(entry)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads back every entry previously Saved for tableName.columnName, in
// the original insertion order.
func (s *Store) Load(tableName, columnName string) ([]memory.VectorEntry, error) {
	var entries []memory.VectorEntry
	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = vectorPrefix(tableName, columnName)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				entry, err := decodeEntry(val)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load vector snapshot %s.%s: %w", tableName, columnName, err)
	}
	return entries, nil
}

// encodeEntry lays out a VectorEntry as:
// page_id(int64) | slot(int32) | dim(uint32) | dim*float32
func encodeEntry(entry memory.VectorEntry) []byte {
	buf := make([]byte, 8+4+4+4*len(entry.Vector))
	binary.BigEndian.PutUint64(buf[0:8], uint64(entry.RID.PageID))
	binary.BigEndian.PutUint32(buf[8:12], uint32(entry.RID.Slot))
	binary.BigEndian.PutUint32(buf[12:16], uint32(len(entry.Vector)))
	for i, f := range entry.Vector {
		binary.BigEndian.PutUint32(buf[16+4*i:20+4*i], math.Float32bits(f))
	}
	return buf
}

func decodeEntry(buf []byte) (memory.VectorEntry, error) {
	if len(buf) < 16 {
		return memory.VectorEntry{}, fmt.Errorf("snapshot record too short: %d bytes", len(buf))
	}
	rid := domain.RID{
		PageID: int64(binary.BigEndian.Uint64(buf[0:8])),
		Slot:   int32(binary.BigEndian.Uint32(buf[8:12])),
	}
	dim := int(binary.BigEndian.Uint32(buf[12:16]))
	if len(buf) != 16+4*dim {
		return memory.VectorEntry{}, fmt.Errorf("snapshot record length mismatch for dim %d", dim)
	}
	vec := make([]float32, dim)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.BigEndian.Uint32(buf[16+4*i : 20+4*i]))
	}
	return memory.VectorEntry{Vector: vec, RID: rid}, nil
}
