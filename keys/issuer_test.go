package keys

import (
	"bytes"
	"crypto/ed25519"
	"io"
	"testing"
)

func TestIssuerKeyEd25519_RoundTrip(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	s := IssuerKeyEd25519(pub)
	alg, raw, err := ParseIssuerKey(s)
	if err != nil {
		t.Fatalf("ParseIssuerKey: %v", err)
	}
	if alg != "ed25519" {
		t.Fatalf("alg = %q, want ed25519", alg)
	}
	if !bytes.Equal(raw, pub) {
		t.Fatalf("public key bytes mismatch")
	}
}

func TestIssuerKeyDilithium3_RoundTrip(t *testing.T) {
	pk, _, err := GenerateDilithium3Keypair(io.Reader(&deterministicReader{}))
	if err != nil {
		t.Fatalf("GenerateDilithium3Keypair: %v", err)
	}
	s, err := IssuerKeyDilithium3(pk)
	if err != nil {
		t.Fatalf("IssuerKeyDilithium3: %v", err)
	}
	alg, raw, err := ParseIssuerKey(s)
	if err != nil {
		t.Fatalf("ParseIssuerKey: %v", err)
	}
	if alg != "dilithium3" {
		t.Fatalf("alg = %q, want dilithium3", alg)
	}
	want, err := pk.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if !bytes.Equal(raw, want) {
		t.Fatalf("public key bytes mismatch")
	}
}

func TestParseIssuerKey_Rejects(t *testing.T) {
	cases := []string{
		"",
		"ed25519",
		"ed25519:!!!",
		"ed25519:c2hvcnQ=",
		"rsa:AAAA",
	}
	for _, c := range cases {
		if _, _, err := ParseIssuerKey(c); err == nil {
			t.Fatalf("ParseIssuerKey(%q): expected error", c)
		}
	}
}
