package model

// Identity names an account known to the host (project owner, validator,
// data-source interface, admin). The ledger treats identities as opaque,
// case-sensitive strings; authentication happens at the transport boundary.
type Identity string

// Time is the external monotonic clock value supplied by the execution
// environment (a block height or unix seconds). All deadline comparisons are
// against this clock; the ledger never reads wall-clock time itself.
type Time uint64

// ImpactType converts a claimed quantity into a normalized impact unit.
// Identity is the name; Active is toggled by the admin and gates Normalize,
// never claims already verified.
type ImpactType struct {
	Name             string `json:"name"`
	ConversionFactor uint64 `json:"conversionFactor"`
	Unit             string `json:"unit"`
	Active           bool   `json:"active"`
}

// Project is the thin registry view the verification engine depends on:
// existence, ownership, and the running verified total it mutates on
// successful finalization.
type Project struct {
	ID                   uint64   `json:"id"`
	Owner                Identity `json:"owner"`
	Name                 string   `json:"name"`
	RunningVerifiedTotal uint64   `json:"runningVerifiedTotal"`
}

// ValidatorAuthorization records that a validator may attest to claims of a
// project. Revocation deletes the record; attestations already recorded stay.
type ValidatorAuthorization struct {
	ProjectID    uint64   `json:"projectId"`
	Validator    Identity `json:"validator"`
	AuthorizedAt Time     `json:"authorizedAt"`
	AuthorizedBy Identity `json:"authorizedBy"`
}

// DataSourceAuthorization registers an external data source globally and
// binds it to the interface identity allowed to submit on its behalf.
type DataSourceAuthorization struct {
	SourceID     string   `json:"sourceId"`
	Interface    Identity `json:"interface"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	AuthorizedAt Time     `json:"authorizedAt"`
}

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "Pending"
	ClaimVerified ClaimStatus = "Verified"
	ClaimRejected ClaimStatus = "Rejected"
)

// Terminal reports whether the status permits no further transition.
func (s ClaimStatus) Terminal() bool {
	return s == ClaimVerified || s == ClaimRejected
}

// Claim is a project owner's assertion of a quantity of environmental impact,
// pending multi-party verification.
//
// While Pending, VerifiedAmount is the running weighted estimate (zero until
// the first approving attestation) and ReceivedVerifications only grows. The
// transition out of Pending happens exactly once.
type Claim struct {
	ID                    uint64      `json:"id"`
	ProjectID             uint64      `json:"projectId"`
	ImpactType            string      `json:"impactType"`
	ClaimedAmount         uint64      `json:"claimedAmount"`
	EvidenceRef           string      `json:"evidenceRef,omitempty"`
	Submitter             Identity    `json:"submitter"`
	SubmittedAt           Time        `json:"submittedAt"`
	Status                ClaimStatus `json:"status"`
	VerificationDeadline  Time        `json:"verificationDeadline"`
	RequiredVerifications uint64      `json:"requiredVerifications"`
	ReceivedVerifications uint64      `json:"receivedVerifications"`
	VerifiedAmount        uint64      `json:"verifiedAmount"`
}

// Attestation is one validator's judgment on a claim. At most one is stored
// per (claim, validator) pair.
type Attestation struct {
	ClaimID    uint64   `json:"claimId"`
	Validator  Identity `json:"validator"`
	VerifiedAt Time     `json:"verifiedAt"`
	Approved   bool     `json:"approved"`
	Amount     uint64   `json:"amount"`
	Comments   string   `json:"comments,omitempty"`
}

// SourceAttestation is one registered data source's reading for a claim,
// keyed by (claim, source). A resubmission by the same source overwrites the
// stored record.
type SourceAttestation struct {
	ClaimID     uint64 `json:"claimId"`
	SourceID    string `json:"sourceId"`
	VerifiedAt  Time   `json:"verifiedAt"`
	Approved    bool   `json:"approved"`
	Amount      uint64 `json:"amount"`
	EvidenceRef string `json:"evidenceRef,omitempty"`
}

// Credential is the immutable record issued to a project owner evidencing one
// successfully verified claim. IDs come from a single global monotonic
// counter shared across all projects.
type Credential struct {
	ID               uint64   `json:"id"`
	Owner            Identity `json:"owner"`
	ProjectID        uint64   `json:"projectId"`
	ClaimID          uint64   `json:"claimId"`
	ImpactType       string   `json:"impactType"`
	Amount           uint64   `json:"amount"`
	NormalizedImpact uint64   `json:"normalizedImpact"`
	IssuedAt         Time     `json:"issuedAt"`
}

// Snapshot is a full, self-contained copy of ledger state, used for
// persistence and restart. Slices are ordered by primary key so snapshots of
// equal state serialize identically.
type Snapshot struct {
	Admin Identity `json:"admin"`

	ImpactTypes []ImpactType              `json:"impactTypes"`
	Projects    []Project                 `json:"projects"`
	Validators  []ValidatorAuthorization  `json:"validators"`
	Sources     []DataSourceAuthorization `json:"sources"`

	Claims             []Claim             `json:"claims"`
	Attestations       []Attestation       `json:"attestations"`
	SourceAttestations []SourceAttestation `json:"sourceAttestations"`
	Credentials        []Credential        `json:"credentials"`

	NextProjectID    uint64 `json:"nextProjectId"`
	NextClaimID      uint64 `json:"nextClaimId"`
	NextCredentialID uint64 `json:"nextCredentialId"`
	PlatformTotal    uint64 `json:"platformTotal"`
}
