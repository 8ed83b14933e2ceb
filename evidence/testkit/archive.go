// Package testkit runs the archive conformance suite against any
// evidence.Archive implementation.
package testkit

import (
	"bytes"
	"testing"

	"github.com/ipfs/go-cid"

	"verdant.eco/ledger/cidutil"
	"verdant.eco/ledger/evidence"
)

// NewArchive constructs a fresh, empty archive isolated from other tests.
type NewArchive func(t *testing.T) evidence.Archive

func RunArchiveConformance(t *testing.T, newArchive NewArchive) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		a := newArchive(t)
		want := []byte("drone imagery, plot 7")

		id, err := a.Put(want)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		wantID, err := cidutil.Sum(want)
		if err != nil {
			t.Fatalf("cidutil.Sum failed: %v", err)
		}
		if id != wantID {
			t.Fatalf("Put CID mismatch: got %s want %s", id, wantID)
		}

		got, err := a.Get(id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch")
		}
	})

	t.Run("PutIdempotent", func(t *testing.T) {
		a := newArchive(t)
		b := []byte("same bytes")

		id1, err := a.Put(b)
		if err != nil {
			t.Fatalf("Put(1) failed: %v", err)
		}
		id2, err := a.Put(b)
		if err != nil {
			t.Fatalf("Put(2) failed: %v", err)
		}
		if id1 != id2 {
			t.Fatalf("Put not idempotent: %s vs %s", id1, id2)
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		a := newArchive(t)
		b := []byte("missing")
		id, err := cidutil.Sum(b)
		if err != nil {
			t.Fatalf("cidutil.Sum failed: %v", err)
		}

		if a.Has(id) {
			t.Fatalf("Has returned true for missing CID")
		}
		if _, err := a.Get(id); !evidence.IsNotFound(err) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}

		if _, err := a.Put(b); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !a.Has(id) {
			t.Fatalf("Has returned false after Put")
		}
	})

	t.Run("RejectUndefCID", func(t *testing.T) {
		a := newArchive(t)
		var undef cid.Cid
		if a.Has(undef) {
			t.Fatalf("Has should be false for undefined CID")
		}
		if _, err := a.Get(undef); err == nil {
			t.Fatalf("Get should fail for undefined CID")
		}
	})
}
