// Package keys provides signing helpers for credential issuers.
//
// Issuers sign canonical credential documents with either ed25519 or
// dilithium3 (post-quantum). Signatures cover a hash of the signed scope,
// never the raw message.
package keys
