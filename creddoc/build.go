package creddoc

import (
	"strconv"

	"verdant.eco/ledger/model"
)

// FromCredential maps a minted credential to an unsigned Document.
// The CRYPTO section is filled in by the signing helpers.
func FromCredential(cred model.Credential) Document {
	return Document{
		Meta: map[string]string{
			"Format": FormatV1,
		},
		Credential: map[string]string{
			"Credential-ID":     strconv.FormatUint(cred.ID, 10),
			"Owner":             string(cred.Owner),
			"Project-ID":        strconv.FormatUint(cred.ProjectID, 10),
			"Claim-ID":          strconv.FormatUint(cred.ClaimID, 10),
			"Impact-Type":       cred.ImpactType,
			"Amount":            strconv.FormatUint(cred.Amount, 10),
			"Normalized-Impact": strconv.FormatUint(cred.NormalizedImpact, 10),
			"Issued-At":         strconv.FormatUint(uint64(cred.IssuedAt), 10),
		},
	}
}
