// Package evidence provides content-addressed storage for claim evidence.
//
// Claims and source attestations reference evidence by CID (see cidutil);
// the archive holds the bytes those references resolve to. Verification of
// evidence *content* is out of scope; the archive only guarantees that a
// reference resolves to exactly the bytes it was derived from.
package evidence

import (
	"errors"

	"github.com/ipfs/go-cid"
)

var (
	ErrNotFound    = errors.New("evidence: not found")
	ErrInvalidCID  = errors.New("evidence: invalid cid")
	ErrCIDMismatch = errors.New("evidence: cid mismatch")
	ErrImmutable   = errors.New("evidence: immutable object mismatch")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Archive is the minimal content-addressable evidence store.
//
// Contract:
// - Put MUST be idempotent and derive the CID from the bytes written.
// - Stored objects MUST be immutable.
// - Get MUST return ErrNotFound when the CID is absent and MUST verify the
//   returned bytes against the requested CID.
type Archive interface {
	Put(data []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}
