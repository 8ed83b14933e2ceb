package ledger

import (
	"sort"

	"verdant.eco/ledger/model"
)

// Read accessors return copies; callers can never mutate ledger state
// through a query result.

func (l *Ledger) GetClaim(id uint64) (model.Claim, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.claims[id]
	if !ok {
		return model.Claim{}, false
	}
	return *c, true
}

func (l *Ledger) GetProject(id uint64) (model.Project, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	p, ok := l.projects[id]
	if !ok {
		return model.Project{}, false
	}
	return *p, true
}

func (l *Ledger) GetImpactType(name string) (model.ImpactType, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.impactTypes[name]
	if !ok {
		return model.ImpactType{}, false
	}
	return *t, true
}

func (l *Ledger) GetAttestation(claimID uint64, validator model.Identity) (model.Attestation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.attestations[attestationKey{claimID, validator}]
	if !ok {
		return model.Attestation{}, false
	}
	return *a, true
}

func (l *Ledger) GetSourceAttestation(claimID uint64, sourceID string) (model.SourceAttestation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.sourceAttestations[sourceAttKey{claimID, sourceID}]
	if !ok {
		return model.SourceAttestation{}, false
	}
	return *a, true
}

func (l *Ledger) GetCredential(id uint64) (model.Credential, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.credentials[id]
	if !ok {
		return model.Credential{}, false
	}
	return *c, true
}

// ClaimsByProject returns the project's claims ordered by id.
func (l *Ledger) ClaimsByProject(projectID uint64) []model.Claim {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Claim
	for _, c := range l.claims {
		if c.ProjectID == projectID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AttestationsByClaim returns the claim's validator attestations ordered by
// validator identity.
func (l *Ledger) AttestationsByClaim(claimID uint64) []model.Attestation {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Attestation
	for _, a := range l.attestations {
		if a.ClaimID == claimID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Validator < out[j].Validator })
	return out
}

// SourceAttestationsByClaim returns the claim's external attestations ordered
// by source id.
func (l *Ledger) SourceAttestationsByClaim(claimID uint64) []model.SourceAttestation {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.SourceAttestation
	for _, a := range l.sourceAttestations {
		if a.ClaimID == claimID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceID < out[j].SourceID })
	return out
}

// CredentialsByOwner returns the credentials issued to an owner ordered by id.
func (l *Ledger) CredentialsByOwner(owner model.Identity) []model.Credential {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []model.Credential
	for _, c := range l.credentials {
		if c.Owner == owner {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
