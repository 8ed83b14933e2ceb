// Package ledger implements the impact-claim verification engine.
//
// The engine is a single serialized state machine: every mutating operation
// (register, submit, attest, finalize) runs as an atomic transaction under
// one mutex, validates all preconditions before touching state, and either
// commits fully or fails with a structured model.Error and no side effect.
// Time is an external monotonic clock supplied by the host; the engine never
// reads wall-clock time itself.
//
// Claims transition Pending -> {Verified, Rejected} exactly once. Attestation
// from validators (weight 1) and registered external data sources (weight 2)
// feeds one running weighted estimate; once the weighted count reaches the
// claim's threshold the claim finalizes inline, credits the project and
// platform totals, and mints a credential.
package ledger
