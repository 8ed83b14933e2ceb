package localfs

import (
	"flag"
	"path/filepath"
	"testing"

	"verdant.eco/ledger/evidence/registry"
)

func TestReplicatedBackend_OpenWritesBothDirectories(t *testing.T) {
	primary := t.TempDir()
	mirror := t.TempDir()

	fs := flag.NewFlagSet("replicated-test", flag.ContinueOnError)
	registry.RegisterFlags(fs, registry.UsageDaemon)
	err := fs.Parse([]string{
		"-replicated-primary-dir=" + primary,
		"-replicated-mirror-dir=" + mirror,
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	arch, closeFn, err := registry.Open("replicated", registry.UsageDaemon)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if closeFn != nil {
		defer func() { _ = closeFn() }()
	}

	id, err := arch.Put([]byte("replicated evidence"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	for _, dir := range []string{primary, mirror} {
		a, err := New(dir)
		if err != nil {
			t.Fatalf("New(%s): %v", dir, err)
		}
		if !a.Has(id) {
			t.Fatalf("object missing from %s", dir)
		}
	}

	got, err := arch.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "replicated evidence" {
		t.Fatalf("bytes mismatch")
	}
}

func TestReplicatedBackend_RejectsIncompleteConfig(t *testing.T) {
	flagPrimaryDir = filepath.Join(t.TempDir(), "primary")
	flagMirrorDir = ""
	if _, _, err := registry.Open("replicated", registry.UsageDaemon); err == nil {
		t.Fatalf("expected error for missing mirror dir")
	}

	flagMirrorDir = flagPrimaryDir
	if _, _, err := registry.Open("replicated", registry.UsageDaemon); err == nil {
		t.Fatalf("expected error for identical directories")
	}
}

func TestReplicatedBackend_NotOfferedToCLI(t *testing.T) {
	if _, _, err := registry.Open("replicated", registry.UsageCLI); err == nil {
		t.Fatalf("expected usage rejection")
	}
}
