// Package creddoc implements the canonical text format for verification
// credentials. A credential document is the portable, signable artifact
// minted when an impact claim reaches verified status.
//
// The serialization is strict: parsing rejects any input that is not
// byte-identical to its own canonical re-rendering, so a document's CID is
// stable across implementations.
package creddoc

import (
	"bufio"
	"bytes"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"verdant.eco/ledger/cidutil"
)

// SectionOrder defines the canonical order of credential document sections.
var SectionOrder = []string{"META", "CREDENTIAL", "CRYPTO"}

const (
	Preamble  = "-----BEGIN VERDANT CREDENTIAL-----"
	Postamble = "-----END VERDANT CREDENTIAL-----"

	// FormatV1 is the value of the META Format key for this version.
	FormatV1 = "verdant-credential/v1"
)

// Doc is a parsed credential document.
type Doc struct {
	Sections map[string]Section
	Raw      []byte // canonical bytes
	Signed   []byte // bytes covered by the signature (BEGIN through end of CREDENTIAL)
}

type Section struct {
	Name  string
	Pairs map[string]string
}

// Parse parses a credential document and enforces the canonical
// serialization rules. Non-canonical inputs are rejected.
func Parse(data []byte) (*Doc, error) {
	if !utf8.Valid(data) {
		return nil, newError(KindParse, "CRED-STR-001", "document must be valid UTF-8")
	}
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		return nil, newError(KindParse, "CRED-STR-002", "BOM not allowed")
	}
	if bytes.Contains(data, []byte("\r")) {
		return nil, newError(KindCanonical, "CRED-CANON-001", "CR line endings not allowed")
	}
	if len(data) > 0 && data[len(data)-1] == '\n' {
		return nil, newError(KindCanonical, "CRED-CANON-002", "trailing newline not allowed")
	}
	if !bytes.HasPrefix(data, []byte(Preamble+"\n")) {
		return nil, newError(KindParse, "CRED-STR-010", "missing or malformed preamble")
	}
	if !bytes.HasSuffix(data, []byte(Postamble)) {
		return nil, newError(KindParse, "CRED-STR-010", "missing postamble")
	}
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(line) > 0 && (line[len(line)-1] == ' ' || line[len(line)-1] == '\t') {
			return nil, newError(KindCanonical, "CRED-CANON-003", "trailing whitespace forbidden")
		}
	}

	sections, err := parseSections(data)
	if err != nil {
		return nil, err
	}

	// Enforce full canonical byte identity by re-rendering and comparing.
	canonical, err := Render(Document{
		Meta:       sections["META"].Pairs,
		Credential: sections["CREDENTIAL"].Pairs,
		Crypto:     sections["CRYPTO"].Pairs,
	})
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(data, canonical) {
		return nil, newError(KindCanonical, "CRED-CANON-100", "non-canonical credential document")
	}

	signed, err := signedScope(canonical)
	if err != nil {
		return nil, err
	}
	return &Doc{Sections: sections, Raw: canonical, Signed: signed}, nil
}

// signedScope returns the bytes covered by the signature: the BEGIN line
// through the blank line separating CREDENTIAL from CRYPTO, inclusive.
func signedScope(canonical []byte) ([]byte, error) {
	marker := []byte("\nCRYPTO\n")
	idx := bytes.Index(canonical, marker)
	if idx < 0 {
		return nil, newError(KindInternal, "CRED-STR-999", "cannot determine signature scope")
	}
	return canonical[:idx+1], nil
}

func parseSections(data []byte) (map[string]Section, error) {
	sections := make(map[string]Section)
	reader := bufio.NewReader(bytes.NewReader(data))
	readLine := func() (string, error) {
		l, err := reader.ReadString('\n')
		if err == io.EOF {
			return strings.TrimRight(l, "\n"), io.EOF
		}
		if err != nil {
			return "", wrapError(KindParse, "CRED-STR-999", "read failure", err)
		}
		return strings.TrimRight(l, "\n"), nil
	}

	first, err := readLine()
	if err != nil && err != io.EOF {
		return nil, err
	}
	if first != Preamble {
		return nil, newError(KindParse, "CRED-STR-010", "preamble must be exact")
	}

	sectionIndex := -1
	var currSection string
	var currPairs map[string]string
	var currKeyOrder []string
	seenSection := map[string]bool{}
	afterSeparator := false

	flushSection := func() error {
		if currSection == "" {
			return nil
		}
		sorted := append([]string(nil), currKeyOrder...)
		sort.Strings(sorted)
		for i := range sorted {
			if sorted[i] != currKeyOrder[i] {
				return newError(KindCanonical, "CRED-CANON-020", "keys not sorted lexicographically")
			}
		}
		sections[currSection] = Section{Name: currSection, Pairs: currPairs}
		currSection = ""
		currPairs = nil
		currKeyOrder = nil
		return nil
	}

	for {
		line, rerr := readLine()
		if rerr != nil && rerr != io.EOF {
			return nil, rerr
		}

		if line == Postamble {
			if afterSeparator {
				return nil, newError(KindCanonical, "CRED-CANON-010", "unexpected blank line before postamble")
			}
			if err := flushSection(); err != nil {
				return nil, err
			}
			break
		}

		if isSectionHeader(line) {
			if currSection != "" {
				return nil, newError(KindCanonical, "CRED-CANON-010", "missing blank line between sections")
			}
			if seenSection[line] {
				return nil, newError(KindParse, "CRED-STR-020", "duplicate section")
			}
			sectionIndex++
			if sectionIndex >= len(SectionOrder) || SectionOrder[sectionIndex] != line {
				return nil, newError(KindParse, "CRED-STR-020", "sections missing or out of order")
			}
			if sectionIndex == 0 {
				if afterSeparator {
					return nil, newError(KindCanonical, "CRED-CANON-010", "blank line before first section not allowed")
				}
			} else if !afterSeparator {
				return nil, newError(KindCanonical, "CRED-CANON-010", "missing blank line between sections")
			}
			afterSeparator = false
			seenSection[line] = true
			currSection = line
			currPairs = make(map[string]string)
			continue
		}

		if sectionIndex < 0 {
			return nil, newError(KindParse, "CRED-STR-020", "unexpected content before first section")
		}

		if line == "" {
			if currSection == "" {
				return nil, newError(KindCanonical, "CRED-CANON-010", "blank line outside section not allowed")
			}
			if currSection == "CRYPTO" {
				return nil, newError(KindCanonical, "CRED-CANON-010", "blank line after CRYPTO section not allowed")
			}
			if afterSeparator {
				return nil, newError(KindCanonical, "CRED-CANON-010", "multiple blank lines between sections not allowed")
			}
			if err := flushSection(); err != nil {
				return nil, err
			}
			afterSeparator = true
			continue
		}

		if currSection == "" {
			return nil, newError(KindParse, "CRED-STR-020", "content outside section")
		}
		if afterSeparator {
			return nil, newError(KindCanonical, "CRED-CANON-010", "expected section header after blank line")
		}
		key, val, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, newError(KindParse, "CRED-STR-030", "invalid key-value formatting")
		}
		if key == "" {
			return nil, newError(KindParse, "CRED-STR-030", "empty key")
		}
		if !isASCII(key) {
			return nil, newError(KindParse, "CRED-STR-030", "non-ASCII key")
		}
		if val == "" {
			return nil, newError(KindParse, "CRED-STR-030", "empty value")
		}
		if strings.HasPrefix(val, " ") {
			return nil, newError(KindParse, "CRED-STR-030", "value must not start with a space")
		}
		if _, exists := currPairs[key]; exists {
			return nil, newError(KindParse, "CRED-STR-030", "duplicate key in section")
		}
		currPairs[key] = val
		currKeyOrder = append(currKeyOrder, key)

		if rerr == io.EOF {
			return nil, newError(KindParse, "CRED-STR-010", "missing postamble")
		}
	}

	for _, s := range SectionOrder {
		if !seenSection[s] {
			return nil, newError(KindParse, "CRED-STR-020", "sections missing or out of order")
		}
	}
	return sections, nil
}

// CID returns the deterministic content identifier for the canonical bytes,
// an IPFS-compatible CIDv1 (raw + sha2-256).
func (d *Doc) CID() string {
	return cidutil.EvidenceCID(d.Raw)
}

func (d *Doc) pair(section, key string) string {
	if sec, ok := d.Sections[section]; ok {
		return sec.Pairs[key]
	}
	return ""
}

func (d *Doc) Format() string       { return d.pair("META", "Format") }
func (d *Doc) CredentialID() string { return d.pair("CREDENTIAL", "Credential-ID") }
func (d *Doc) Owner() string        { return d.pair("CREDENTIAL", "Owner") }
func (d *Doc) SignatureAlg() string { return d.pair("CRYPTO", "Signature-Alg") }
func (d *Doc) HashAlg() string      { return d.pair("CRYPTO", "Hash-Alg") }
func (d *Doc) IssuerKey() string    { return d.pair("CRYPTO", "Issuer-Key") }
func (d *Doc) Signature() string    { return d.pair("CRYPTO", "Signature") }

func isSectionHeader(line string) bool {
	for _, s := range SectionOrder {
		if line == s {
			return true
		}
	}
	return false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
