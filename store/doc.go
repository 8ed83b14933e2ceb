// Package store persists ledger snapshots and minted credential documents
// in SQLite. The daemon writes a snapshot after every mutating operation and
// reloads the latest one on restart.
package store
