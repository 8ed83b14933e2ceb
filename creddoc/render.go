package creddoc

import (
	"sort"
	"strings"
)

// Document is the in-memory form used to produce a canonical credential
// document. Rendered bytes are always canonical: fixed section order, keys
// sorted lexicographically, single blank line between sections, no trailing
// newline.
type Document struct {
	Meta       map[string]string
	Credential map[string]string
	Crypto     map[string]string
}

// Render produces canonical credential document bytes.
func Render(doc Document) ([]byte, error) {
	sections := []struct {
		name  string
		pairs map[string]string
	}{
		{name: "META", pairs: doc.Meta},
		{name: "CREDENTIAL", pairs: doc.Credential},
		{name: "CRYPTO", pairs: doc.Crypto},
	}

	var sb strings.Builder
	sb.WriteString(Preamble)
	sb.WriteString("\n")

	for i, sec := range sections {
		sb.WriteString(sec.name)
		sb.WriteString("\n")

		keys := make([]string, 0, len(sec.pairs))
		for k := range sec.pairs {
			if k == "" {
				return nil, newError(KindRender, "CRED-STR-030", "empty key")
			}
			if !isASCII(k) {
				return nil, newError(KindRender, "CRED-STR-030", "non-ASCII key")
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := sec.pairs[k]
			if v == "" {
				return nil, newError(KindRender, "CRED-STR-030", "empty value")
			}
			if strings.HasPrefix(v, " ") {
				return nil, newError(KindRender, "CRED-STR-030", "value must not start with a space")
			}
			if strings.Contains(v, "\n") || strings.Contains(v, "\r") {
				return nil, newError(KindRender, "CRED-STR-030", "value must not contain newlines")
			}
			if strings.HasSuffix(v, " ") || strings.HasSuffix(v, "\t") {
				return nil, newError(KindRender, "CRED-STR-030", "trailing whitespace forbidden")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			sb.WriteString(v)
			sb.WriteString("\n")
		}

		if i != len(sections)-1 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString(Postamble)
	return []byte(sb.String()), nil
}
