// Package model defines stable boundary types for the verification ledger.
//
// These structs are the only types intended for direct JSON serialization by
// consumers (RPC, HTTP, snapshot persistence). They carry no behavior beyond
// deep copying; all lifecycle rules live in the ledger package.
package model
