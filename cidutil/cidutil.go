// Package cidutil derives and validates the content identifiers used for
// claim evidence and credential documents: CIDv1 with the "raw" multicodec
// and a sha2-256 multihash.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// EvidenceCID returns the CIDv1 (raw + sha2-256) string for evidence bytes.
func EvidenceCID(data []byte) string {
	id, err := Sum(data)
	if err != nil {
		// multihash.Sum only errors for invalid parameters; with SHA2_256
		// and default length this is unreachable.
		return ""
	}
	return id.String()
}

// Sum returns the CIDv1 (raw + sha2-256) derived from data.
func Sum(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// ParseRef decodes an evidence reference string into a defined CID.
func ParseRef(ref string) (cid.Cid, bool) {
	id, err := cid.Decode(ref)
	if err != nil || !id.Defined() {
		return cid.Undef, false
	}
	return id, true
}
