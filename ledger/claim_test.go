package ledger

import (
	"testing"

	"verdant.eco/ledger/model"
)

func TestSubmitClaim_AllocatesMonotonicIDs(t *testing.T) {
	l, _, projectID := newTestLedger(t)

	first := mustSubmit(t, l, projectID, 100, 2, 200)
	second := mustSubmit(t, l, projectID, 50, 1, 200)
	if second != first+1 {
		t.Fatalf("expected consecutive claim ids, got %d then %d", first, second)
	}

	c, ok := l.GetClaim(first)
	if !ok {
		t.Fatalf("claim %d missing", first)
	}
	if c.Status != model.ClaimPending {
		t.Fatalf("expected Pending, got %s", c.Status)
	}
	if c.ReceivedVerifications != 0 || c.VerifiedAmount != 0 {
		t.Fatalf("new claim must start with zero counter and estimate: %+v", c)
	}
	if c.SubmittedAt >= c.VerificationDeadline {
		t.Fatalf("submittedAt %d must precede deadline %d", c.SubmittedAt, c.VerificationDeadline)
	}
}

func TestSubmitClaim_UnknownProject(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, err := l.SubmitClaim(alice, 42, "reforestation", 100, "", 200, 2)
	wantCode(t, err, model.CodeNotFound)
	if !model.IsKind(err, model.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestSubmitClaim_NonOwner(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	_, err := l.SubmitClaim(bob, projectID, "reforestation", 100, "", 200, 2)
	wantCode(t, err, model.CodeNotAuthorized)
	if !model.IsKind(err, model.KindAuthorization) {
		t.Fatalf("expected KindAuthorization, got %v", err)
	}
}

func TestSubmitClaim_UnknownImpactType(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	_, err := l.SubmitClaim(alice, projectID, "kelp-farming", 100, "", 200, 2)
	wantCode(t, err, model.CodeInvalidImpactType)
}

func TestSubmitClaim_InactiveImpactType(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	if err := l.DeactivateImpactType(admin, "reforestation"); err != nil {
		t.Fatalf("DeactivateImpactType: %v", err)
	}
	_, err := l.SubmitClaim(alice, projectID, "reforestation", 100, "", 200, 2)
	wantCode(t, err, model.CodeInvalidImpactType)
}

func TestSubmitClaim_ZeroAmount(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	_, err := l.SubmitClaim(alice, projectID, "reforestation", 0, "", 200, 2)
	wantCode(t, err, model.CodeInvalidAmount)
}

func TestSubmitClaim_ZeroThreshold(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	_, err := l.SubmitClaim(alice, projectID, "reforestation", 100, "", 200, 0)
	wantCode(t, err, model.CodeInvalidThreshold)
}

func TestSubmitClaim_DeadlineNotInFuture(t *testing.T) {
	l, _, projectID := newTestLedger(t)
	// Clock sits at 100; a deadline equal to now is invalid too.
	_, err := l.SubmitClaim(alice, projectID, "reforestation", 100, "", 100, 2)
	wantCode(t, err, model.CodeInvalidDeadline)
	_, err = l.SubmitClaim(alice, projectID, "reforestation", 100, "", 99, 2)
	wantCode(t, err, model.CodeInvalidDeadline)
}

func TestSubmitClaim_PreconditionOrderFirstFailureWins(t *testing.T) {
	l, _, _ := newTestLedger(t)
	// Everything is wrong here; the project check must fire first.
	_, err := l.SubmitClaim(bob, 42, "kelp-farming", 0, "", 1, 0)
	wantCode(t, err, model.CodeNotFound)
}
