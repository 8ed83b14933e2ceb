package creddoc

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"verdant.eco/ledger/keys"
)

func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

// SignEd25519 renders doc, signs the signed scope with sha256, and returns
// the parsed, signed document. Any existing CRYPTO pairs are replaced.
func SignEd25519(doc Document, privateKey ed25519.PrivateKey) (*Doc, error) {
	pub, ok := privateKey.Public().(ed25519.PublicKey)
	if !ok {
		return nil, newError(KindCrypto, "CRED-CRYPTO-501", "invalid ed25519 private key")
	}
	doc.Crypto = map[string]string{
		"Signature-Alg": "ed25519",
		"Hash-Alg":      "sha256",
		"Issuer-Key":    keys.IssuerKeyEd25519(pub),
	}
	scope, err := renderSignedScope(doc)
	if err != nil {
		return nil, err
	}
	doc.Crypto["Signature"] = keys.SignEd25519SHA256(scope, privateKey)
	return renderAndParse(doc)
}

// SignDilithium3 renders doc, signs the signed scope with hashAlg, and
// returns the parsed, signed document. Any existing CRYPTO pairs are
// replaced. hashAlg must be one of: sha256, sha512, sha3-256.
func SignDilithium3(doc Document, hashAlg string, publicKey *mode3.PublicKey, privateKey *mode3.PrivateKey) (*Doc, error) {
	issuer, err := keys.IssuerKeyDilithium3(publicKey)
	if err != nil {
		return nil, wrapError(KindCrypto, "CRED-CRYPTO-502", "invalid dilithium3 public key", err)
	}
	doc.Crypto = map[string]string{
		"Signature-Alg": "dilithium3",
		"Hash-Alg":      hashAlg,
		"Issuer-Key":    issuer,
	}
	scope, err := renderSignedScope(doc)
	if err != nil {
		return nil, err
	}
	sig, err := keys.SignDilithium3(scope, hashAlg, privateKey)
	if err != nil {
		return nil, wrapError(KindCrypto, "CRED-CRYPTO-503", "dilithium3 signing failed", err)
	}
	doc.Crypto["Signature"] = sig
	return renderAndParse(doc)
}

// renderSignedScope renders doc without a Signature pair and extracts the
// signed scope. The scope never covers the CRYPTO section, so adding the
// signature afterwards does not change the signed bytes.
func renderSignedScope(doc Document) ([]byte, error) {
	raw, err := Render(doc)
	if err != nil {
		return nil, err
	}
	return signedScope(raw)
}

func renderAndParse(doc Document) (*Doc, error) {
	raw, err := Render(doc)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Verify checks the document signature. The receiver's raw bytes are
// re-parsed first so canonicalization cannot be bypassed by mutating the
// in-memory sections.
func (d *Doc) Verify() error {
	if d == nil {
		return newError(KindCrypto, "CRED-CRYPTO-001", "nil document")
	}
	parsed, err := Parse(d.Raw)
	if err != nil {
		return err
	}
	d = parsed

	sigAlg := d.SignatureAlg()
	if sigAlg == "" {
		return newError(KindCrypto, "CRED-CRYPTO-101", "missing Signature-Alg")
	}
	hashAlg := d.HashAlg()
	if hashAlg == "" {
		return newError(KindCrypto, "CRED-CRYPTO-102", "missing Hash-Alg")
	}
	issuer := d.IssuerKey()
	if issuer == "" {
		return newError(KindCrypto, "CRED-CRYPTO-103", "missing Issuer-Key")
	}
	if d.Signature() == "" {
		return newError(KindCrypto, "CRED-CRYPTO-104", "missing Signature")
	}

	issuerAlg, pub, err := keys.ParseIssuerKey(issuer)
	if err != nil {
		return wrapError(KindCrypto, "CRED-CRYPTO-111", "invalid Issuer-Key", err)
	}
	if issuerAlg != sigAlg {
		return newError(KindCrypto, "CRED-CRYPTO-121", "Issuer-Key alg does not match Signature-Alg")
	}

	sig, err := decodeBase64(d.Signature())
	if err != nil {
		return wrapError(KindCrypto, "CRED-CRYPTO-131", "invalid signature base64", err)
	}
	digest, err := keys.Digest(hashAlg, d.Signed)
	if err != nil {
		return wrapError(KindCrypto, "CRED-CRYPTO-201", "unsupported Hash-Alg", err)
	}

	switch sigAlg {
	case "ed25519":
		if len(sig) != ed25519.SignatureSize {
			return newError(KindCrypto, "CRED-CRYPTO-132", "invalid ed25519 signature length")
		}
		if !ed25519.Verify(ed25519.PublicKey(pub), digest, sig) {
			return newError(KindCrypto, "CRED-CRYPTO-401", "signature invalid")
		}
		return nil
	case "dilithium3":
		if len(sig) != mode3.SignatureSize {
			return newError(KindCrypto, "CRED-CRYPTO-133", "invalid dilithium3 signature length")
		}
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(pub); err != nil {
			return wrapError(KindCrypto, "CRED-CRYPTO-115", "invalid dilithium3 public key", err)
		}
		if !mode3.Verify(&pk, digest, sig) {
			return newError(KindCrypto, "CRED-CRYPTO-401", "signature invalid")
		}
		return nil
	default:
		return newError(KindCrypto, "CRED-CRYPTO-301", "unsupported Signature-Alg")
	}
}
