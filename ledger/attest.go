package ledger

import (
	"fmt"

	"verdant.eco/ledger/model"
)

// attestor tags the two attestation paths feeding the one aggregation rule.
// Validators count once toward the threshold and average 1:1 against the
// accumulated estimate; external data sources count twice and average 2:1 in
// favor of the accumulated estimate.
type attestor struct {
	countWeight   uint64
	priorWeight   uint64
	mergedDivisor uint64
}

var (
	validatorAttestor = attestor{countWeight: 1, priorWeight: 1, mergedDivisor: 2}
	sourceAttestor    = attestor{countWeight: 2, priorWeight: 2, mergedDivisor: 3}
)

// applyEstimate folds one approving reading into the running estimate.
//
// The rule is an order-dependent, lossy running average with integer
// truncation, reproduced exactly for behavioral compatibility with the
// reference ledger: the first approving reading seeds the estimate; later
// readings average against the accumulated value, not against the full
// attestation history.
func (w attestor) applyEstimate(current, reading uint64) uint64 {
	if current == 0 {
		return reading
	}
	return (w.priorWeight*current + reading) / w.mergedDivisor
}

// AttestValidator records one validator's judgment on a pending claim.
//
// Preconditions, first failure wins: the claim exists and is Pending, the
// caller holds validator rights on the claim's project, the deadline has not
// passed, and the validator has not voted on this claim before. The counter
// advances for every attestation; only approving ones move the estimate. If
// the threshold is reached the claim finalizes inside the same transaction.
func (l *Ledger) AttestValidator(validator model.Identity, claimID uint64, approved bool, amount uint64, comments string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.claims[claimID]
	if !ok {
		return model.NewError(model.KindNotFound, model.CodeNotFound, fmt.Sprintf("claim %d not found", claimID))
	}
	if c.Status != model.ClaimPending {
		return model.NewError(model.KindStateConflict, model.CodeAlreadyProcessed, fmt.Sprintf("claim %d already processed", claimID))
	}
	if _, ok := l.validators[validatorKey{c.ProjectID, validator}]; !ok {
		return model.NewError(model.KindAuthorization, model.CodeNotValidator, "caller is not an authorized validator for this project")
	}
	now := l.now()
	if now >= c.VerificationDeadline {
		return model.NewError(model.KindStateConflict, model.CodeExpired, fmt.Sprintf("claim %d verification deadline has passed", claimID))
	}
	key := attestationKey{claimID, validator}
	if _, voted := l.attestations[key]; voted {
		return model.NewError(model.KindStateConflict, model.CodeAlreadyVoted, "validator already attested to this claim")
	}

	l.attestations[key] = &model.Attestation{
		ClaimID:    claimID,
		Validator:  validator,
		VerifiedAt: now,
		Approved:   approved,
		Amount:     amount,
		Comments:   comments,
	}
	l.recordAttestation(c, validatorAttestor, approved, amount)
	return nil
}

// AttestSource records an external data source's reading on a pending claim.
// The caller must be the interface identity registered for the source.
//
// Unlike the validator path there is no one-vote guard: a resubmission by
// the same source overwrites the stored record under the (claim, source) key
// and still advances the counter again. This matches the reference ledger;
// hosts that care should gate resubmission upstream.
func (l *Ledger) AttestSource(caller model.Identity, sourceID string, claimID uint64, approved bool, amount uint64, evidenceRef string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	src, ok := l.sources[sourceID]
	if !ok {
		return model.NewError(model.KindAuthorization, model.CodeNotAuthorized, fmt.Sprintf("data source %q is not registered", sourceID))
	}
	if caller != src.Interface {
		return model.NewError(model.KindAuthorization, model.CodeNotAuthorized, "caller is not the registered interface for this data source")
	}
	c, ok := l.claims[claimID]
	if !ok {
		return model.NewError(model.KindNotFound, model.CodeNotFound, fmt.Sprintf("claim %d not found", claimID))
	}
	if c.Status != model.ClaimPending {
		return model.NewError(model.KindStateConflict, model.CodeAlreadyProcessed, fmt.Sprintf("claim %d already processed", claimID))
	}
	now := l.now()
	if now >= c.VerificationDeadline {
		return model.NewError(model.KindStateConflict, model.CodeExpired, fmt.Sprintf("claim %d verification deadline has passed", claimID))
	}

	l.sourceAttestations[sourceAttKey{claimID, sourceID}] = &model.SourceAttestation{
		ClaimID:     claimID,
		SourceID:    sourceID,
		VerifiedAt:  now,
		Approved:    approved,
		Amount:      amount,
		EvidenceRef: evidenceRef,
	}
	l.recordAttestation(c, sourceAttestor, approved, amount)
	return nil
}

// recordAttestation advances the counter, folds an approving reading into
// the estimate, and finalizes inline once the threshold is met. Called with
// the lock held, after all preconditions passed.
func (l *Ledger) recordAttestation(c *model.Claim, w attestor, approved bool, amount uint64) {
	c.ReceivedVerifications += w.countWeight
	if approved {
		c.VerifiedAmount = w.applyEstimate(c.VerifiedAmount, amount)
	}
	if c.ReceivedVerifications >= c.RequiredVerifications {
		l.verifyLocked(c)
	}
}
