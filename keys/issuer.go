package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

// Issuer keys travel in credential documents as "<alg>:<base64>".

// IssuerKeyEd25519 formats an ed25519 public key as an issuer key string.
func IssuerKeyEd25519(pub ed25519.PublicKey) string {
	return "ed25519:" + base64.StdEncoding.EncodeToString(pub)
}

// IssuerKeyDilithium3 formats a dilithium3 public key as an issuer key string.
func IssuerKeyDilithium3(pub *mode3.PublicKey) (string, error) {
	if pub == nil {
		return "", fmt.Errorf("missing public key")
	}
	raw, err := pub.MarshalBinary()
	if err != nil {
		return "", err
	}
	return "dilithium3:" + base64.StdEncoding.EncodeToString(raw), nil
}

// ParseIssuerKey splits an issuer key string and validates the key material
// for the declared algorithm. The returned bytes are the raw public key.
func ParseIssuerKey(s string) (alg string, raw []byte, err error) {
	alg, enc, ok := strings.Cut(s, ":")
	if !ok {
		return "", nil, fmt.Errorf("invalid issuer key encoding")
	}
	raw, err = decodeBase64(enc)
	if err != nil {
		return "", nil, fmt.Errorf("invalid issuer key base64: %w", err)
	}
	switch alg {
	case "ed25519":
		if len(raw) != ed25519.PublicKeySize {
			return "", nil, fmt.Errorf("invalid ed25519 public key length")
		}
	case "dilithium3":
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(raw); err != nil {
			return "", nil, fmt.Errorf("invalid dilithium3 public key: %w", err)
		}
	default:
		return "", nil, fmt.Errorf("unsupported issuer key algorithm: %q", alg)
	}
	return alg, raw, nil
}

func decodeBase64(s string) ([]byte, error) {
	// Prefer standard padded encoding, but accept raw encoding too.
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
