package ledger

import (
	"sort"
	"sync"

	"verdant.eco/ledger/model"
)

type validatorKey struct {
	projectID uint64
	validator model.Identity
}

type attestationKey struct {
	claimID   uint64
	validator model.Identity
}

type sourceAttKey struct {
	claimID  uint64
	sourceID string
}

// Ledger holds the entire verification state behind one mutex. All exported
// methods are safe for concurrent use; mutating methods are atomic and
// totally ordered by lock acquisition.
type Ledger struct {
	mu    sync.Mutex
	clock Clock
	admin model.Identity

	impactTypes map[string]*model.ImpactType
	projects    map[uint64]*model.Project
	validators  map[validatorKey]*model.ValidatorAuthorization
	sources     map[string]*model.DataSourceAuthorization

	claims             map[uint64]*model.Claim
	attestations       map[attestationKey]*model.Attestation
	sourceAttestations map[sourceAttKey]*model.SourceAttestation
	credentials        map[uint64]*model.Credential

	nextProjectID    uint64
	nextClaimID      uint64
	nextCredentialID uint64
	platformTotal    uint64
}

// New constructs an empty ledger. admin is the identity allowed to register
// impact types and data sources; clock supplies the external time.
func New(admin model.Identity, clock Clock) *Ledger {
	return &Ledger{
		clock:              clock,
		admin:              admin,
		impactTypes:        make(map[string]*model.ImpactType),
		projects:           make(map[uint64]*model.Project),
		validators:         make(map[validatorKey]*model.ValidatorAuthorization),
		sources:            make(map[string]*model.DataSourceAuthorization),
		claims:             make(map[uint64]*model.Claim),
		attestations:       make(map[attestationKey]*model.Attestation),
		sourceAttestations: make(map[sourceAttKey]*model.SourceAttestation),
		credentials:        make(map[uint64]*model.Credential),
		nextProjectID:      1,
		nextClaimID:        1,
		nextCredentialID:   1,
	}
}

// now reads the external clock. Callers must not hold assumptions about wall
// time; this is whatever monotone counter the host supplies.
func (l *Ledger) now() model.Time {
	return l.clock.Now()
}

// Admin returns the admin identity the ledger was constructed with.
func (l *Ledger) Admin() model.Identity {
	return l.admin
}

// PlatformTotal returns the running normalized impact across all projects.
// It never decreases and is incremented only on successful finalization.
func (l *Ledger) PlatformTotal() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.platformTotal
}

// Snapshot returns a deep, key-ordered copy of the full ledger state.
func (l *Ledger) Snapshot() model.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := model.Snapshot{
		Admin:            l.admin,
		NextProjectID:    l.nextProjectID,
		NextClaimID:      l.nextClaimID,
		NextCredentialID: l.nextCredentialID,
		PlatformTotal:    l.platformTotal,
	}

	for _, t := range l.impactTypes {
		s.ImpactTypes = append(s.ImpactTypes, *t)
	}
	sort.Slice(s.ImpactTypes, func(i, j int) bool { return s.ImpactTypes[i].Name < s.ImpactTypes[j].Name })

	for _, p := range l.projects {
		s.Projects = append(s.Projects, *p)
	}
	sort.Slice(s.Projects, func(i, j int) bool { return s.Projects[i].ID < s.Projects[j].ID })

	for _, v := range l.validators {
		s.Validators = append(s.Validators, *v)
	}
	sort.Slice(s.Validators, func(i, j int) bool {
		a, b := s.Validators[i], s.Validators[j]
		if a.ProjectID != b.ProjectID {
			return a.ProjectID < b.ProjectID
		}
		return a.Validator < b.Validator
	})

	for _, src := range l.sources {
		s.Sources = append(s.Sources, *src)
	}
	sort.Slice(s.Sources, func(i, j int) bool { return s.Sources[i].SourceID < s.Sources[j].SourceID })

	for _, c := range l.claims {
		s.Claims = append(s.Claims, *c)
	}
	sort.Slice(s.Claims, func(i, j int) bool { return s.Claims[i].ID < s.Claims[j].ID })

	for _, a := range l.attestations {
		s.Attestations = append(s.Attestations, *a)
	}
	sort.Slice(s.Attestations, func(i, j int) bool {
		a, b := s.Attestations[i], s.Attestations[j]
		if a.ClaimID != b.ClaimID {
			return a.ClaimID < b.ClaimID
		}
		return a.Validator < b.Validator
	})

	for _, a := range l.sourceAttestations {
		s.SourceAttestations = append(s.SourceAttestations, *a)
	}
	sort.Slice(s.SourceAttestations, func(i, j int) bool {
		a, b := s.SourceAttestations[i], s.SourceAttestations[j]
		if a.ClaimID != b.ClaimID {
			return a.ClaimID < b.ClaimID
		}
		return a.SourceID < b.SourceID
	})

	for _, c := range l.credentials {
		s.Credentials = append(s.Credentials, *c)
	}
	sort.Slice(s.Credentials, func(i, j int) bool { return s.Credentials[i].ID < s.Credentials[j].ID })

	return s
}

// Restore replaces the ledger state with the snapshot. Used at startup; the
// snapshot is trusted (it came from this ledger's Snapshot).
func (l *Ledger) Restore(s model.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.admin = s.Admin
	l.nextProjectID = s.NextProjectID
	l.nextClaimID = s.NextClaimID
	l.nextCredentialID = s.NextCredentialID
	l.platformTotal = s.PlatformTotal

	l.impactTypes = make(map[string]*model.ImpactType, len(s.ImpactTypes))
	for i := range s.ImpactTypes {
		t := s.ImpactTypes[i]
		l.impactTypes[t.Name] = &t
	}
	l.projects = make(map[uint64]*model.Project, len(s.Projects))
	for i := range s.Projects {
		p := s.Projects[i]
		l.projects[p.ID] = &p
	}
	l.validators = make(map[validatorKey]*model.ValidatorAuthorization, len(s.Validators))
	for i := range s.Validators {
		v := s.Validators[i]
		l.validators[validatorKey{v.ProjectID, v.Validator}] = &v
	}
	l.sources = make(map[string]*model.DataSourceAuthorization, len(s.Sources))
	for i := range s.Sources {
		src := s.Sources[i]
		l.sources[src.SourceID] = &src
	}
	l.claims = make(map[uint64]*model.Claim, len(s.Claims))
	for i := range s.Claims {
		c := s.Claims[i]
		l.claims[c.ID] = &c
	}
	l.attestations = make(map[attestationKey]*model.Attestation, len(s.Attestations))
	for i := range s.Attestations {
		a := s.Attestations[i]
		l.attestations[attestationKey{a.ClaimID, a.Validator}] = &a
	}
	l.sourceAttestations = make(map[sourceAttKey]*model.SourceAttestation, len(s.SourceAttestations))
	for i := range s.SourceAttestations {
		a := s.SourceAttestations[i]
		l.sourceAttestations[sourceAttKey{a.ClaimID, a.SourceID}] = &a
	}
	l.credentials = make(map[uint64]*model.Credential, len(s.Credentials))
	for i := range s.Credentials {
		c := s.Credentials[i]
		l.credentials[c.ID] = &c
	}
}
