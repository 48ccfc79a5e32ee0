// Package persistence provides the on-disk backing store for an hnsw.Graph
// snapshot: a single keyed put/get under a fixed store name, backed by a
// pure-Go SQLite database. It never re-indexes; SaveIndex/LoadIndex move
// hnsw.Graph.ToJSON/FromJSON bytes in and out of storage as-is.
package persistence
