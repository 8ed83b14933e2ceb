package evidence

import (
	"fmt"

	"github.com/ipfs/go-cid"

	"verdant.eco/ledger/cidutil"
)

// Named associates an archive with a stable backend name, for per-backend
// reporting during replication.
type Named struct {
	Name    string
	Archive Archive
}

// Replicating writes evidence to all configured backends and reads with
// ordered fallback. Writes require every backend to return the canonical
// CID; a divergent backend surfaces as ErrCIDMismatch.
type Replicating struct {
	Backends []Named
}

var _ Archive = (*Replicating)(nil)

// PutAll writes the same bytes to all backends and returns the canonical CID
// plus the per-backend CID mapping.
func (r Replicating) PutAll(data []byte) (cid.Cid, map[string]cid.Cid, error) {
	want, err := cidutil.Sum(data)
	if err != nil {
		return cid.Undef, nil, err
	}
	if !want.Defined() {
		return cid.Undef, nil, ErrInvalidCID
	}
	if len(r.Backends) == 0 {
		return cid.Undef, nil, fmt.Errorf("evidence: Replicating has no backends")
	}

	out := make(map[string]cid.Cid, len(r.Backends))
	for _, b := range r.Backends {
		if b.Archive == nil {
			return cid.Undef, nil, fmt.Errorf("evidence: nil archive for backend %q", b.Name)
		}
		got, err := b.Archive.Put(data)
		if err != nil {
			return cid.Undef, nil, err
		}
		out[b.Name] = got
		if got != want {
			return cid.Undef, out, ErrCIDMismatch
		}
	}
	return want, out, nil
}

func (r Replicating) Put(data []byte) (cid.Cid, error) {
	id, _, err := r.PutAll(data)
	return id, err
}

func (r Replicating) Get(id cid.Cid) ([]byte, error) {
	for _, b := range r.Backends {
		if b.Archive == nil {
			continue
		}
		out, err := b.Archive.Get(id)
		if err == nil {
			return out, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}

func (r Replicating) Has(id cid.Cid) bool {
	for _, b := range r.Backends {
		if b.Archive != nil && b.Archive.Has(id) {
			return true
		}
	}
	return false
}
