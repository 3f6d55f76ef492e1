// Package badger persists a vector index's (vector, RID) entries to a
// Badger KV store, so an HNSWIndex or IVFFlatIndex can be rebuilt after a
// restart by passing the loaded entries to BuildIndex, without rescanning
// the table. The graph and centroids themselves are not stored.
package badger

import "github.com/dgraph-io/badger/v4"

// Key prefix for snapshot entries: vec:{table}:{column}:{position}, where
// position is the entry's zero-padded index in the slice passed to Save.
const prefixVector = "vec:"

// DataSourceConfig configures the Badger store backing a snapshot.
type DataSourceConfig struct {
	// DataDir is the directory Badger stores its files under.
	DataDir string `json:"data_dir"`
	// InMemory runs Badger with no disk persistence, useful for tests.
	InMemory bool `json:"in_memory"`
	// SyncWrites fsyncs every write; off trades durability for throughput.
	SyncWrites bool `json:"sync_writes"`
}

// DefaultDataSourceConfig returns sensible defaults for dataDir.
func DefaultDataSourceConfig(dataDir string) *DataSourceConfig {
	return &DataSourceConfig{DataDir: dataDir, SyncWrites: false}
}

func (c *DataSourceConfig) options() badger.Options {
	if c.InMemory {
		return badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	return badger.DefaultOptions(c.DataDir).WithSyncWrites(c.SyncWrites).WithLogger(nil)
}
