package ledgerrpc

import (
	"fmt"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"verdant.eco/ledger/model"
)

// Messages are structpb.Struct values so this package does not require a
// protoc/codegen toolchain. uint64 fields travel as decimal strings because
// JSON numbers lose precision past 2^53.

func newStruct(fields map[string]*structpb.Value) *structpb.Struct {
	return &structpb.Struct{Fields: fields}
}

func strVal(s string) *structpb.Value      { return structpb.NewStringValue(s) }
func boolVal(b bool) *structpb.Value       { return structpb.NewBoolValue(b) }
func u64Val(v uint64) *structpb.Value      { return structpb.NewStringValue(formatU64(v)) }
func timeVal(t model.Time) *structpb.Value { return u64Val(uint64(t)) }

func formatU64(v uint64) string { return strconv.FormatUint(v, 10) }

func parseU64(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }

func getStr(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	if v, ok := s.GetFields()[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func getBool(s *structpb.Struct, key string) bool {
	if s == nil {
		return false
	}
	if v, ok := s.GetFields()[key]; ok {
		return v.GetBoolValue()
	}
	return false
}

func getU64(s *structpb.Struct, key string) (uint64, error) {
	if s == nil {
		return 0, fmt.Errorf("missing field %q", key)
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	// Accept a JSON number too for hand-written clients.
	if _, isNum := v.GetKind().(*structpb.Value_NumberValue); isNum {
		n := v.GetNumberValue()
		if n < 0 || n != float64(uint64(n)) {
			return 0, fmt.Errorf("field %q is not a non-negative integer", key)
		}
		return uint64(n), nil
	}
	n, err := strconv.ParseUint(v.GetStringValue(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("field %q: %w", key, err)
	}
	return n, nil
}

func getU64Default(s *structpb.Struct, key string, def uint64) (uint64, error) {
	if s == nil || s.GetFields()[key] == nil {
		return def, nil
	}
	return getU64(s, key)
}

func claimStruct(c model.Claim) *structpb.Struct {
	return newStruct(map[string]*structpb.Value{
		"id":                    u64Val(c.ID),
		"projectId":             u64Val(c.ProjectID),
		"impactType":            strVal(c.ImpactType),
		"claimedAmount":         u64Val(c.ClaimedAmount),
		"evidenceRef":           strVal(c.EvidenceRef),
		"submitter":             strVal(string(c.Submitter)),
		"submittedAt":           timeVal(c.SubmittedAt),
		"status":                strVal(string(c.Status)),
		"verificationDeadline":  timeVal(c.VerificationDeadline),
		"requiredVerifications": u64Val(c.RequiredVerifications),
		"receivedVerifications": u64Val(c.ReceivedVerifications),
		"verifiedAmount":        u64Val(c.VerifiedAmount),
	})
}

func claimFromStruct(s *structpb.Struct) (model.Claim, error) {
	var c model.Claim
	var err error
	if c.ID, err = getU64(s, "id"); err != nil {
		return c, err
	}
	if c.ProjectID, err = getU64(s, "projectId"); err != nil {
		return c, err
	}
	c.ImpactType = getStr(s, "impactType")
	if c.ClaimedAmount, err = getU64(s, "claimedAmount"); err != nil {
		return c, err
	}
	c.EvidenceRef = getStr(s, "evidenceRef")
	c.Submitter = model.Identity(getStr(s, "submitter"))
	var t uint64
	if t, err = getU64(s, "submittedAt"); err != nil {
		return c, err
	}
	c.SubmittedAt = model.Time(t)
	c.Status = model.ClaimStatus(getStr(s, "status"))
	if t, err = getU64(s, "verificationDeadline"); err != nil {
		return c, err
	}
	c.VerificationDeadline = model.Time(t)
	if c.RequiredVerifications, err = getU64(s, "requiredVerifications"); err != nil {
		return c, err
	}
	if c.ReceivedVerifications, err = getU64(s, "receivedVerifications"); err != nil {
		return c, err
	}
	if c.VerifiedAmount, err = getU64(s, "verifiedAmount"); err != nil {
		return c, err
	}
	return c, nil
}

func projectStruct(p model.Project) *structpb.Struct {
	return newStruct(map[string]*structpb.Value{
		"id":                   u64Val(p.ID),
		"owner":                strVal(string(p.Owner)),
		"name":                 strVal(p.Name),
		"runningVerifiedTotal": u64Val(p.RunningVerifiedTotal),
	})
}

func projectFromStruct(s *structpb.Struct) (model.Project, error) {
	var p model.Project
	var err error
	if p.ID, err = getU64(s, "id"); err != nil {
		return p, err
	}
	p.Owner = model.Identity(getStr(s, "owner"))
	p.Name = getStr(s, "name")
	if p.RunningVerifiedTotal, err = getU64(s, "runningVerifiedTotal"); err != nil {
		return p, err
	}
	return p, nil
}

func credentialStruct(c model.Credential) *structpb.Struct {
	return newStruct(map[string]*structpb.Value{
		"id":               u64Val(c.ID),
		"owner":            strVal(string(c.Owner)),
		"projectId":        u64Val(c.ProjectID),
		"claimId":          u64Val(c.ClaimID),
		"impactType":       strVal(c.ImpactType),
		"amount":           u64Val(c.Amount),
		"normalizedImpact": u64Val(c.NormalizedImpact),
		"issuedAt":         timeVal(c.IssuedAt),
	})
}

func credentialFromStruct(s *structpb.Struct) (model.Credential, error) {
	var c model.Credential
	var err error
	if c.ID, err = getU64(s, "id"); err != nil {
		return c, err
	}
	c.Owner = model.Identity(getStr(s, "owner"))
	if c.ProjectID, err = getU64(s, "projectId"); err != nil {
		return c, err
	}
	if c.ClaimID, err = getU64(s, "claimId"); err != nil {
		return c, err
	}
	c.ImpactType = getStr(s, "impactType")
	if c.Amount, err = getU64(s, "amount"); err != nil {
		return c, err
	}
	if c.NormalizedImpact, err = getU64(s, "normalizedImpact"); err != nil {
		return c, err
	}
	var t uint64
	if t, err = getU64(s, "issuedAt"); err != nil {
		return c, err
	}
	c.IssuedAt = model.Time(t)
	return c, nil
}

func attestationStruct(a model.Attestation) *structpb.Struct {
	return newStruct(map[string]*structpb.Value{
		"claimId":    u64Val(a.ClaimID),
		"validator":  strVal(string(a.Validator)),
		"verifiedAt": timeVal(a.VerifiedAt),
		"approved":   boolVal(a.Approved),
		"amount":     u64Val(a.Amount),
		"comments":   strVal(a.Comments),
	})
}

func attestationFromStruct(s *structpb.Struct) (model.Attestation, error) {
	var a model.Attestation
	var err error
	if a.ClaimID, err = getU64(s, "claimId"); err != nil {
		return a, err
	}
	a.Validator = model.Identity(getStr(s, "validator"))
	var t uint64
	if t, err = getU64(s, "verifiedAt"); err != nil {
		return a, err
	}
	a.VerifiedAt = model.Time(t)
	a.Approved = getBool(s, "approved")
	if a.Amount, err = getU64(s, "amount"); err != nil {
		return a, err
	}
	a.Comments = getStr(s, "comments")
	return a, nil
}

func sourceAttestationStruct(a model.SourceAttestation) *structpb.Struct {
	return newStruct(map[string]*structpb.Value{
		"claimId":     u64Val(a.ClaimID),
		"sourceId":    strVal(a.SourceID),
		"verifiedAt":  timeVal(a.VerifiedAt),
		"approved":    boolVal(a.Approved),
		"amount":      u64Val(a.Amount),
		"evidenceRef": strVal(a.EvidenceRef),
	})
}

func sourceAttestationFromStruct(s *structpb.Struct) (model.SourceAttestation, error) {
	var a model.SourceAttestation
	var err error
	if a.ClaimID, err = getU64(s, "claimId"); err != nil {
		return a, err
	}
	a.SourceID = getStr(s, "sourceId")
	var t uint64
	if t, err = getU64(s, "verifiedAt"); err != nil {
		return a, err
	}
	a.VerifiedAt = model.Time(t)
	a.Approved = getBool(s, "approved")
	if a.Amount, err = getU64(s, "amount"); err != nil {
		return a, err
	}
	a.EvidenceRef = getStr(s, "evidenceRef")
	return a, nil
}

func claimListStruct(claims []model.Claim) *structpb.Struct {
	vals := make([]*structpb.Value, 0, len(claims))
	for _, c := range claims {
		vals = append(vals, structpb.NewStructValue(claimStruct(c)))
	}
	return newStruct(map[string]*structpb.Value{
		"claims": structpb.NewListValue(&structpb.ListValue{Values: vals}),
	})
}

func claimsFromListStruct(s *structpb.Struct) ([]model.Claim, error) {
	if s == nil {
		return nil, nil
	}
	lv := s.GetFields()["claims"].GetListValue()
	if lv == nil {
		return nil, nil
	}
	claims := make([]model.Claim, 0, len(lv.GetValues()))
	for _, v := range lv.GetValues() {
		c, err := claimFromStruct(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, nil
}

func credentialListStruct(creds []model.Credential) *structpb.Struct {
	vals := make([]*structpb.Value, 0, len(creds))
	for _, c := range creds {
		vals = append(vals, structpb.NewStructValue(credentialStruct(c)))
	}
	return newStruct(map[string]*structpb.Value{
		"credentials": structpb.NewListValue(&structpb.ListValue{Values: vals}),
	})
}

func credentialsFromListStruct(s *structpb.Struct) ([]model.Credential, error) {
	if s == nil {
		return nil, nil
	}
	lv := s.GetFields()["credentials"].GetListValue()
	if lv == nil {
		return nil, nil
	}
	creds := make([]model.Credential, 0, len(lv.GetValues()))
	for _, v := range lv.GetValues() {
		c, err := credentialFromStruct(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return creds, nil
}
