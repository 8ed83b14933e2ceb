package ledger

import (
	"fmt"

	"verdant.eco/ledger/model"
)

// verifyLocked commits the success outcome: terminal Verified status,
// normalized impact added to the project and platform totals, and exactly
// one credential minted to the project owner. All four effects are atomic
// with the status transition; none can fail once preconditions held.
func (l *Ledger) verifyLocked(c *model.Claim) {
	c.Status = model.ClaimVerified

	normalized := l.normalizeLocked(c.ImpactType, c.VerifiedAmount)
	p := l.projects[c.ProjectID]
	p.RunningVerifiedTotal = addSat(p.RunningVerifiedTotal, normalized)
	l.platformTotal = addSat(l.platformTotal, normalized)

	id := l.nextCredentialID
	l.nextCredentialID++
	l.credentials[id] = &model.Credential{
		ID:               id,
		Owner:            p.Owner,
		ProjectID:        c.ProjectID,
		ClaimID:          c.ID,
		ImpactType:       c.ImpactType,
		Amount:           c.VerifiedAmount,
		NormalizedImpact: normalized,
		IssuedAt:         l.now(),
	}
}

// FinalizeExpired settles a pending claim whose deadline has passed.
// Callable by anyone. If the weighted count reached the threshold the claim
// verifies with full success effects; otherwise it is rejected with no
// total or credential effects. Returns the terminal status.
func (l *Ledger) FinalizeExpired(claimID uint64) (model.ClaimStatus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.claims[claimID]
	if !ok {
		return "", model.NewError(model.KindNotFound, model.CodeNotFound, fmt.Sprintf("claim %d not found", claimID))
	}
	if c.Status != model.ClaimPending {
		return "", model.NewError(model.KindStateConflict, model.CodeAlreadyProcessed, fmt.Sprintf("claim %d already processed", claimID))
	}
	if l.now() < c.VerificationDeadline {
		return "", model.NewError(model.KindStateConflict, model.CodeNotYetExpired, fmt.Sprintf("claim %d verification deadline has not passed", claimID))
	}

	if c.ReceivedVerifications >= c.RequiredVerifications {
		l.verifyLocked(c)
	} else {
		c.Status = model.ClaimRejected
	}
	return c.Status, nil
}
