package ledgerrpc

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"verdant.eco/ledger/evidence"
	"verdant.eco/ledger/ledger"
	"verdant.eco/ledger/model"
)

func dialTestServer(t *testing.T, srv *Server) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	gs := grpc.NewServer()
	RegisterLedgerServer(gs, srv)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(gs.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { _ = cc.Close() })

	return &Client{cc: cc, client: NewLedgerClient(cc), Timeout: 2 * time.Second}
}

func as(c *Client, identity model.Identity) *Client {
	cp := *c
	cp.Identity = identity
	return &cp
}

func TestLedgerRPC_VerificationRoundTrip(t *testing.T) {
	clk := ledger.NewTickClock(100)
	l := ledger.New("admin", clk)
	arch := evidence.NewMemory()
	base := dialTestServer(t, &Server{Ledger: l, Evidence: arch})

	admin := as(base, "admin")
	alice := as(base, "alice")
	bob := as(base, "bob")

	if err := admin.RegisterImpactType("reforestation", 10, "kg-co2"); err != nil {
		t.Fatalf("RegisterImpactType: %v", err)
	}
	projectID, err := alice.RegisterProject("forest-7")
	if err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}
	if err := alice.AuthorizeValidator(projectID, "bob"); err != nil {
		t.Fatalf("AuthorizeValidator: %v", err)
	}

	ref, err := alice.ArchiveEvidence([]byte("drone imagery"))
	if err != nil {
		t.Fatalf("ArchiveEvidence: %v", err)
	}

	claimID, err := alice.SubmitClaim(SubmitClaimParams{
		ProjectID:             projectID,
		ImpactType:            "reforestation",
		Amount:                100,
		EvidenceRef:           ref,
		Deadline:              200,
		RequiredVerifications: 2,
	})
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	c, err := alice.AttestValidator(claimID, true, 100, "")
	if err != nil {
		t.Fatalf("AttestValidator(alice): %v", err)
	}
	if c.ReceivedVerifications != 1 || c.VerifiedAmount != 100 {
		t.Fatalf("after first attestation: %+v", c)
	}
	c, err = bob.AttestValidator(claimID, true, 200, "")
	if err != nil {
		t.Fatalf("AttestValidator(bob): %v", err)
	}
	if c.Status != model.ClaimVerified || c.VerifiedAmount != 150 {
		t.Fatalf("after threshold: %+v", c)
	}

	p, err := base.GetProject(projectID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if p.RunningVerifiedTotal != 1500 {
		t.Fatalf("RunningVerifiedTotal = %d, want 1500", p.RunningVerifiedTotal)
	}
	total, err := base.PlatformTotal()
	if err != nil {
		t.Fatalf("PlatformTotal: %v", err)
	}
	if total != 1500 {
		t.Fatalf("PlatformTotal = %d, want 1500", total)
	}

	creds, err := base.ListOwnerCredentials("alice")
	if err != nil {
		t.Fatalf("ListOwnerCredentials: %v", err)
	}
	if len(creds) != 1 || creds[0].NormalizedImpact != 1500 {
		t.Fatalf("credentials = %+v", creds)
	}

	got, err := base.GetEvidence(ref)
	if err != nil {
		t.Fatalf("GetEvidence: %v", err)
	}
	if string(got) != "drone imagery" {
		t.Fatalf("evidence bytes mismatch")
	}
}

func TestLedgerRPC_AttestationLookup(t *testing.T) {
	clk := ledger.NewTickClock(100)
	l := ledger.New("admin", clk)
	base := dialTestServer(t, &Server{Ledger: l})

	admin := as(base, "admin")
	alice := as(base, "alice")
	sensor := as(base, "sensor-iface")

	if err := admin.RegisterImpactType("reforestation", 10, "kg-co2"); err != nil {
		t.Fatalf("RegisterImpactType: %v", err)
	}
	if err := admin.RegisterDataSource("sat-1", "sensor-iface", "Satellite", ""); err != nil {
		t.Fatalf("RegisterDataSource: %v", err)
	}
	projectID, err := alice.RegisterProject("forest")
	if err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}
	claimID, err := alice.SubmitClaim(SubmitClaimParams{
		ProjectID:             projectID,
		ImpactType:            "reforestation",
		Amount:                100,
		Deadline:              200,
		RequiredVerifications: 5,
	})
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	if _, err := alice.AttestValidator(claimID, true, 90, "field survey"); err != nil {
		t.Fatalf("AttestValidator: %v", err)
	}
	if _, err := sensor.AttestSource("sat-1", claimID, true, 110, ""); err != nil {
		t.Fatalf("AttestSource: %v", err)
	}

	a, err := base.GetAttestation(claimID, "alice")
	if err != nil {
		t.Fatalf("GetAttestation: %v", err)
	}
	if a.ClaimID != claimID || a.Validator != "alice" || !a.Approved || a.Amount != 90 || a.Comments != "field survey" {
		t.Fatalf("attestation = %+v", a)
	}

	sa, err := base.GetSourceAttestation(claimID, "sat-1")
	if err != nil {
		t.Fatalf("GetSourceAttestation: %v", err)
	}
	if sa.ClaimID != claimID || sa.SourceID != "sat-1" || !sa.Approved || sa.Amount != 110 {
		t.Fatalf("source attestation = %+v", sa)
	}

	if _, err := base.GetAttestation(claimID, "bob"); err == nil || !model.IsKind(err, model.KindNotFound) {
		t.Fatalf("GetAttestation(bob): %v", err)
	}
	if _, err := base.GetSourceAttestation(claimID, "sat-9"); err == nil || !model.IsKind(err, model.KindNotFound) {
		t.Fatalf("GetSourceAttestation(sat-9): %v", err)
	}
}

func TestLedgerRPC_StructuredErrorsSurviveTheWire(t *testing.T) {
	l := ledger.New("admin", ledger.NewTickClock(100))
	base := dialTestServer(t, &Server{Ledger: l})

	err := as(base, "mallory").RegisterImpactType("x", 1, "u")
	if err == nil {
		t.Fatalf("expected authorization error")
	}
	if !model.IsKind(err, model.KindAuthorization) {
		t.Fatalf("Kind mismatch: %v", err)
	}
	if model.CodeOf(err) != model.CodeNotAuthorized {
		t.Fatalf("Code = %q, want %q", model.CodeOf(err), model.CodeNotAuthorized)
	}

	_, err = base.GetClaim(42)
	if err == nil || !model.IsKind(err, model.KindNotFound) {
		t.Fatalf("GetClaim(42): %v", err)
	}
}

func TestLedgerRPC_MissingIdentityRejected(t *testing.T) {
	l := ledger.New("admin", ledger.NewTickClock(100))
	base := dialTestServer(t, &Server{Ledger: l})

	if err := base.RegisterImpactType("x", 1, "u"); err == nil {
		t.Fatalf("expected unauthenticated error")
	}
}

func TestLedgerRPC_RequireArchivedEvidence(t *testing.T) {
	l := ledger.New("admin", ledger.NewTickClock(100))
	arch := evidence.NewMemory()
	base := dialTestServer(t, &Server{Ledger: l, Evidence: arch, RequireArchivedEvidence: true})

	admin := as(base, "admin")
	alice := as(base, "alice")
	if err := admin.RegisterImpactType("reforestation", 10, "kg-co2"); err != nil {
		t.Fatalf("RegisterImpactType: %v", err)
	}
	projectID, err := alice.RegisterProject("forest")
	if err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}

	params := SubmitClaimParams{
		ProjectID:             projectID,
		ImpactType:            "reforestation",
		Amount:                100,
		Deadline:              200,
		RequiredVerifications: 1,
	}

	params.EvidenceRef = "not-a-cid"
	if _, err := alice.SubmitClaim(params); err == nil {
		t.Fatalf("expected rejection for malformed evidenceRef")
	}

	ref, err := alice.ArchiveEvidence([]byte("survey data"))
	if err != nil {
		t.Fatalf("ArchiveEvidence: %v", err)
	}
	params.EvidenceRef = ref
	if _, err := alice.SubmitClaim(params); err != nil {
		t.Fatalf("SubmitClaim with archived evidence: %v", err)
	}

	// Claims without an evidence reference stay allowed.
	params.EvidenceRef = ""
	if _, err := alice.SubmitClaim(params); err != nil {
		t.Fatalf("SubmitClaim without evidence: %v", err)
	}
}

func TestLedgerRPC_PersistHookRunsAfterMutations(t *testing.T) {
	l := ledger.New("admin", ledger.NewTickClock(100))
	var persisted int
	base := dialTestServer(t, &Server{
		Ledger:  l,
		Persist: func(context.Context) error { persisted++; return nil },
	})

	if err := as(base, "admin").RegisterImpactType("x", 1, "u"); err != nil {
		t.Fatalf("RegisterImpactType: %v", err)
	}
	if _, err := as(base, "alice").RegisterProject("p"); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}
	if persisted != 2 {
		t.Fatalf("persist ran %d times, want 2", persisted)
	}

	// Failed mutations must not trigger persistence.
	if err := as(base, "mallory").DeactivateImpactType("x"); err == nil {
		t.Fatalf("expected authorization error")
	}
	if persisted != 2 {
		t.Fatalf("persist ran %d times after failed mutation, want 2", persisted)
	}
}
