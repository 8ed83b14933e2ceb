package ledger

import (
	"fmt"

	"verdant.eco/ledger/model"
)

// SubmitClaim opens a new impact claim against a project. Preconditions are
// checked in order and the first failure wins: project exists, submitter is
// the project owner, the impact type exists and is active, amount > 0,
// requiredVerifications > 0, deadline is in the future. On success the claim
// is Pending with a zero counter and estimate, and the new id is returned.
func (l *Ledger) SubmitClaim(submitter model.Identity, projectID uint64, impactType string, amount uint64, evidenceRef string, deadline model.Time, requiredVerifications uint64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.projects[projectID]
	if !ok {
		return 0, model.NewError(model.KindNotFound, model.CodeNotFound, fmt.Sprintf("project %d not found", projectID))
	}
	if submitter != p.Owner {
		return 0, model.NewError(model.KindAuthorization, model.CodeNotAuthorized, "only the project owner may submit claims")
	}
	t, ok := l.impactTypes[impactType]
	if !ok || !t.Active {
		return 0, model.NewError(model.KindInvalidInput, model.CodeInvalidImpactType, fmt.Sprintf("impact type %q is not active", impactType))
	}
	if amount == 0 {
		return 0, model.NewError(model.KindInvalidInput, model.CodeInvalidAmount, "claimed amount must be positive")
	}
	if requiredVerifications == 0 {
		return 0, model.NewError(model.KindInvalidInput, model.CodeInvalidThreshold, "required verifications must be positive")
	}
	now := l.now()
	if deadline <= now {
		return 0, model.NewError(model.KindInvalidInput, model.CodeInvalidDeadline, "verification deadline must be in the future")
	}

	id := l.nextClaimID
	l.nextClaimID++
	l.claims[id] = &model.Claim{
		ID:                    id,
		ProjectID:             projectID,
		ImpactType:            impactType,
		ClaimedAmount:         amount,
		EvidenceRef:           evidenceRef,
		Submitter:             submitter,
		SubmittedAt:           now,
		Status:                model.ClaimPending,
		VerificationDeadline:  deadline,
		RequiredVerifications: requiredVerifications,
	}
	return id, nil
}
