package localfs

import (
	"os"
	"path/filepath"
	"testing"

	"verdant.eco/ledger/cidutil"
	"verdant.eco/ledger/evidence"
	"verdant.eco/ledger/evidence/testkit"
)

func TestLocalFS_Conformance(t *testing.T) {
	testkit.RunArchiveConformance(t, func(t *testing.T) evidence.Archive {
		a, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return a
	})
}

func TestLocalFS_RequiresRoot(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty root")
	}
}

func TestLocalFS_CorruptedObjectSurfacesMismatch(t *testing.T) {
	dir := t.TempDir()
	a, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	id, err := a.Put([]byte("original evidence"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Corrupt the stored object behind the archive's back.
	s := id.String()
	path := filepath.Join(dir, s[:2], s)
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if err := os.WriteFile(path, []byte("tampered"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := a.Get(id); err != evidence.ErrCIDMismatch {
		t.Fatalf("expected ErrCIDMismatch, got %v", err)
	}
}

func TestLocalFS_ShardedLayout(t *testing.T) {
	dir := t.TempDir()
	a, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	id, err := a.Put([]byte("sharded"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	want, err := cidutil.Sum([]byte("sharded"))
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if id != want {
		t.Fatalf("unexpected CID")
	}
	s := id.String()
	if _, err := os.Stat(filepath.Join(dir, s[:2], s)); err != nil {
		t.Fatalf("expected sharded path: %v", err)
	}
}
