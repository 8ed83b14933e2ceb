package ledger

import (
	"testing"

	"verdant.eco/ledger/model"
)

// Two approving validators over threshold 2: the second reading averages
// against the first, the claim verifies inline, and totals and credential
// reflect the normalized final estimate.
func TestAttestValidator_TwoApprovalsVerifyClaim(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	mustAuthorize(t, l, projectID, bob)
	claimID := mustSubmit(t, l, projectID, 100, 2, 200)

	if err := l.AttestValidator(alice, claimID, true, 100, "field audit"); err != nil {
		t.Fatalf("first attestation: %v", err)
	}
	c, _ := l.GetClaim(claimID)
	if c.VerifiedAmount != 100 || c.ReceivedVerifications != 1 {
		t.Fatalf("after first approval: amount=%d received=%d", c.VerifiedAmount, c.ReceivedVerifications)
	}
	if c.Status != model.ClaimPending {
		t.Fatalf("claim must stay Pending below threshold, got %s", c.Status)
	}

	if err := l.AttestValidator(bob, claimID, true, 200, ""); err != nil {
		t.Fatalf("second attestation: %v", err)
	}
	c, _ = l.GetClaim(claimID)
	if c.VerifiedAmount != 150 {
		t.Fatalf("expected (100+200)/2 = 150, got %d", c.VerifiedAmount)
	}
	if c.Status != model.ClaimVerified {
		t.Fatalf("expected Verified at threshold, got %s", c.Status)
	}

	// 150 * factor 10.
	p, _ := l.GetProject(projectID)
	if p.RunningVerifiedTotal != 1500 {
		t.Fatalf("project total: expected 1500, got %d", p.RunningVerifiedTotal)
	}
	if got := l.PlatformTotal(); got != 1500 {
		t.Fatalf("platform total: expected 1500, got %d", got)
	}
	cred, ok := l.GetCredential(1)
	if !ok {
		t.Fatalf("expected credential 1 to be minted")
	}
	if cred.Owner != alice || cred.ClaimID != claimID || cred.Amount != 150 || cred.NormalizedImpact != 1500 {
		t.Fatalf("unexpected credential: %+v", cred)
	}
}

// An external source counts double: one approving source reading at
// threshold 2 seeds the estimate and finalizes immediately.
func TestAttestSource_DoubleWeightFinalizesImmediately(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	if err := l.RegisterDataSource(admin, "sat-1", carol, "satellite", ""); err != nil {
		t.Fatalf("RegisterDataSource: %v", err)
	}
	claimID := mustSubmit(t, l, projectID, 100, 2, 200)

	if err := l.AttestSource(carol, "sat-1", claimID, true, 90, ""); err != nil {
		t.Fatalf("AttestSource: %v", err)
	}
	c, _ := l.GetClaim(claimID)
	if c.ReceivedVerifications != 2 {
		t.Fatalf("source attestation must count twice, got %d", c.ReceivedVerifications)
	}
	if c.VerifiedAmount != 90 {
		t.Fatalf("expected seeded estimate 90, got %d", c.VerifiedAmount)
	}
	if c.Status != model.ClaimVerified {
		t.Fatalf("expected immediate finalization, got %s", c.Status)
	}
	if got := l.PlatformTotal(); got != 900 {
		t.Fatalf("platform total: expected 90*10, got %d", got)
	}
}

// Mixed paths: validator seeds, then a source reading averages 2:1 in favor
// of the accumulated estimate with integer truncation.
func TestAttest_SourceWeightedAverageTruncates(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	if err := l.RegisterDataSource(admin, "sat-1", carol, "satellite", ""); err != nil {
		t.Fatalf("RegisterDataSource: %v", err)
	}
	claimID := mustSubmit(t, l, projectID, 100, 5, 200)

	if err := l.AttestValidator(alice, claimID, true, 100, ""); err != nil {
		t.Fatalf("AttestValidator: %v", err)
	}
	if err := l.AttestSource(carol, "sat-1", claimID, true, 50, ""); err != nil {
		t.Fatalf("AttestSource: %v", err)
	}
	c, _ := l.GetClaim(claimID)
	// (2*100 + 50) / 3 = 83 (truncated from 83.33).
	if c.VerifiedAmount != 83 {
		t.Fatalf("expected truncated weighted average 83, got %d", c.VerifiedAmount)
	}
	if c.ReceivedVerifications != 3 {
		t.Fatalf("expected counter 3 (1+2), got %d", c.ReceivedVerifications)
	}
}

func TestAttestValidator_RejectionCountsButKeepsEstimate(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	mustAuthorize(t, l, projectID, bob)
	claimID := mustSubmit(t, l, projectID, 100, 5, 200)

	if err := l.AttestValidator(alice, claimID, true, 120, ""); err != nil {
		t.Fatalf("approving attestation: %v", err)
	}
	if err := l.AttestValidator(bob, claimID, false, 0, "inconsistent imagery"); err != nil {
		t.Fatalf("rejecting attestation: %v", err)
	}
	c, _ := l.GetClaim(claimID)
	if c.ReceivedVerifications != 2 {
		t.Fatalf("rejection must advance the counter, got %d", c.ReceivedVerifications)
	}
	if c.VerifiedAmount != 120 {
		t.Fatalf("rejection must not move the estimate, got %d", c.VerifiedAmount)
	}
}

func TestAttestValidator_DoubleVoteRejected(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	claimID := mustSubmit(t, l, projectID, 100, 5, 200)

	if err := l.AttestValidator(alice, claimID, true, 100, ""); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	err := l.AttestValidator(alice, claimID, true, 500, "")
	wantCode(t, err, model.CodeAlreadyVoted)
	if !model.IsKind(err, model.KindStateConflict) {
		t.Fatalf("expected KindStateConflict, got %v", err)
	}

	// The stored attestation and the claim are unchanged.
	a, ok := l.GetAttestation(claimID, alice)
	if !ok || a.Amount != 100 {
		t.Fatalf("first attestation must not be overwritten: %+v", a)
	}
	c, _ := l.GetClaim(claimID)
	if c.ReceivedVerifications != 1 || c.VerifiedAmount != 100 {
		t.Fatalf("failed vote must leave no state change: %+v", c)
	}
}

func TestAttestValidator_UnauthorizedIdentity(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	claimID := mustSubmit(t, l, projectID, 100, 5, 200)

	err := l.AttestValidator(bob, claimID, true, 100, "")
	wantCode(t, err, model.CodeNotValidator)
	if !model.IsKind(err, model.KindAuthorization) {
		t.Fatalf("expected KindAuthorization, got %v", err)
	}
}

// Scenario D: the deadline gates attestation even while the claim is short
// of its threshold.
func TestAttestValidator_AfterDeadlineExpired(t *testing.T) {
	l, clock, projectID := newTestLedger(t)
	mustAuthorize(t, l, projectID, bob)
	claimID := mustSubmit(t, l, projectID, 100, 5, 200)

	clock.Set(200)
	err := l.AttestValidator(bob, claimID, true, 100, "")
	wantCode(t, err, model.CodeExpired)
	c, _ := l.GetClaim(claimID)
	if c.ReceivedVerifications != 0 {
		t.Fatalf("expired attestation must leave no state change")
	}
}

func TestAttestValidator_RevocationBlocksFutureVotesOnly(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	mustAuthorize(t, l, projectID, bob)
	first := mustSubmit(t, l, projectID, 100, 5, 200)
	second := mustSubmit(t, l, projectID, 100, 5, 200)

	if err := l.AttestValidator(bob, first, true, 100, ""); err != nil {
		t.Fatalf("attestation before revocation: %v", err)
	}
	if err := l.RevokeValidator(alice, projectID, bob); err != nil {
		t.Fatalf("RevokeValidator: %v", err)
	}

	err := l.AttestValidator(bob, second, true, 100, "")
	wantCode(t, err, model.CodeNotValidator)

	// The recorded attestation survives revocation.
	if _, ok := l.GetAttestation(first, bob); !ok {
		t.Fatalf("revocation must not erase recorded attestations")
	}
	c, _ := l.GetClaim(first)
	if c.ReceivedVerifications != 1 {
		t.Fatalf("prior attestation must still count, got %d", c.ReceivedVerifications)
	}
}

func TestAttestSource_WrongInterfaceIdentity(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	if err := l.RegisterDataSource(admin, "sat-1", carol, "satellite", ""); err != nil {
		t.Fatalf("RegisterDataSource: %v", err)
	}
	claimID := mustSubmit(t, l, projectID, 100, 5, 200)

	err := l.AttestSource(bob, "sat-1", claimID, true, 90, "")
	wantCode(t, err, model.CodeNotAuthorized)
}

func TestAttestSource_UnregisteredSource(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	claimID := mustSubmit(t, l, projectID, 100, 5, 200)

	err := l.AttestSource(carol, "sat-9", claimID, true, 90, "")
	wantCode(t, err, model.CodeNotAuthorized)
}

// Known reference behavior: a source can resubmit before the deadline; the
// record is overwritten but the counter advances again each time.
func TestAttestSource_ResubmissionDoubleCounts(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	if err := l.RegisterDataSource(admin, "sat-1", carol, "satellite", ""); err != nil {
		t.Fatalf("RegisterDataSource: %v", err)
	}
	claimID := mustSubmit(t, l, projectID, 100, 10, 200)

	if err := l.AttestSource(carol, "sat-1", claimID, true, 90, ""); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if err := l.AttestSource(carol, "sat-1", claimID, true, 60, ""); err != nil {
		t.Fatalf("resubmission: %v", err)
	}

	c, _ := l.GetClaim(claimID)
	if c.ReceivedVerifications != 4 {
		t.Fatalf("resubmission must double-count: expected 4, got %d", c.ReceivedVerifications)
	}
	// (2*90 + 60) / 3 = 80.
	if c.VerifiedAmount != 80 {
		t.Fatalf("expected estimate 80 after resubmission, got %d", c.VerifiedAmount)
	}
	a, ok := l.GetSourceAttestation(claimID, "sat-1")
	if !ok || a.Amount != 60 {
		t.Fatalf("resubmission must overwrite the stored record: %+v", a)
	}
}

func TestAttest_TerminalClaimRejectsAllPaths(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	mustAuthorize(t, l, projectID, bob)
	if err := l.RegisterDataSource(admin, "sat-1", carol, "satellite", ""); err != nil {
		t.Fatalf("RegisterDataSource: %v", err)
	}
	claimID := mustSubmit(t, l, projectID, 100, 1, 200)
	if err := l.AttestValidator(alice, claimID, true, 100, ""); err != nil {
		t.Fatalf("finalizing attestation: %v", err)
	}

	err := l.AttestValidator(bob, claimID, true, 100, "")
	wantCode(t, err, model.CodeAlreadyProcessed)
	err = l.AttestSource(carol, "sat-1", claimID, true, 100, "")
	wantCode(t, err, model.CodeAlreadyProcessed)

	c, _ := l.GetClaim(claimID)
	if c.ReceivedVerifications != 1 || c.Status != model.ClaimVerified {
		t.Fatalf("terminal claim must be immutable: %+v", c)
	}
}
