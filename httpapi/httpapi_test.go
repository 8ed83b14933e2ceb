package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"verdant.eco/ledger/ledger"
	"verdant.eco/ledger/model"
	"verdant.eco/ledger/store"
)

func newTestAPI(t *testing.T) (*ledger.Ledger, *httptest.Server) {
	t.Helper()
	l := ledger.New("admin", ledger.NewTickClock(100))
	if err := l.RegisterImpactType("admin", "reforestation", 10, "kg-co2"); err != nil {
		t.Fatalf("RegisterImpactType: %v", err)
	}
	if _, err := l.RegisterProject("alice", "forest-7"); err != nil {
		t.Fatalf("RegisterProject: %v", err)
	}
	ts := httptest.NewServer((&Server{Ledger: l}).Routes())
	t.Cleanup(ts.Close)
	return l, ts
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func TestHTTPAPI_Healthz(t *testing.T) {
	_, ts := newTestAPI(t)
	var body map[string]string
	getJSON(t, ts.URL+"/healthz", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Fatalf("status = %q", body["status"])
	}
}

func TestHTTPAPI_ProjectAndClaims(t *testing.T) {
	l, ts := newTestAPI(t)

	claimID, err := l.SubmitClaim("alice", 1, "reforestation", 100, "", 200, 2)
	if err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}

	var p model.Project
	getJSON(t, ts.URL+"/v1/projects/1", http.StatusOK, &p)
	if p.Owner != "alice" || p.Name != "forest-7" {
		t.Fatalf("project = %+v", p)
	}

	var c model.Claim
	getJSON(t, ts.URL+"/v1/claims/1", http.StatusOK, &c)
	if c.ID != claimID || c.Status != model.ClaimPending {
		t.Fatalf("claim = %+v", c)
	}

	var claims struct {
		Claims []model.Claim `json:"claims"`
	}
	getJSON(t, ts.URL+"/v1/projects/1/claims", http.StatusOK, &claims)
	if len(claims.Claims) != 1 {
		t.Fatalf("claims = %+v", claims)
	}

	var atts struct {
		Attestations []model.Attestation `json:"attestations"`
	}
	getJSON(t, ts.URL+"/v1/claims/1/attestations", http.StatusOK, &atts)
	if len(atts.Attestations) != 0 {
		t.Fatalf("attestations = %+v", atts)
	}
}

func TestHTTPAPI_AttestationLookup(t *testing.T) {
	l, ts := newTestAPI(t)

	if err := l.RegisterDataSource("admin", "sat-1", "sensor-iface", "Satellite", ""); err != nil {
		t.Fatalf("RegisterDataSource: %v", err)
	}
	if _, err := l.SubmitClaim("alice", 1, "reforestation", 100, "", 200, 5); err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	if err := l.AttestValidator("alice", 1, true, 90, "field survey"); err != nil {
		t.Fatalf("AttestValidator: %v", err)
	}
	if err := l.AttestSource("sensor-iface", "sat-1", 1, true, 110, ""); err != nil {
		t.Fatalf("AttestSource: %v", err)
	}

	var a model.Attestation
	getJSON(t, ts.URL+"/v1/claims/1/attestations/alice", http.StatusOK, &a)
	if a.Validator != "alice" || a.Amount != 90 || a.Comments != "field survey" {
		t.Fatalf("attestation = %+v", a)
	}

	var sa model.SourceAttestation
	getJSON(t, ts.URL+"/v1/claims/1/source-attestations/sat-1", http.StatusOK, &sa)
	if sa.SourceID != "sat-1" || sa.Amount != 110 {
		t.Fatalf("source attestation = %+v", sa)
	}

	var list struct {
		SourceAttestations []model.SourceAttestation `json:"sourceAttestations"`
	}
	getJSON(t, ts.URL+"/v1/claims/1/source-attestations", http.StatusOK, &list)
	if len(list.SourceAttestations) != 1 {
		t.Fatalf("source attestations = %+v", list)
	}

	getJSON(t, ts.URL+"/v1/claims/1/attestations/bob", http.StatusNotFound, nil)
	getJSON(t, ts.URL+"/v1/claims/1/source-attestations/sat-9", http.StatusNotFound, nil)
}

func TestHTTPAPI_VerifiedCredentialFlow(t *testing.T) {
	l, ts := newTestAPI(t)

	if _, err := l.SubmitClaim("alice", 1, "reforestation", 100, "", 200, 1); err != nil {
		t.Fatalf("SubmitClaim: %v", err)
	}
	if err := l.AttestValidator("alice", 1, true, 100, ""); err != nil {
		t.Fatalf("AttestValidator: %v", err)
	}

	var cred model.Credential
	getJSON(t, ts.URL+"/v1/credentials/1", http.StatusOK, &cred)
	if cred.NormalizedImpact != 1000 {
		t.Fatalf("credential = %+v", cred)
	}

	var creds struct {
		Credentials []model.Credential `json:"credentials"`
	}
	getJSON(t, ts.URL+"/v1/owners/alice/credentials", http.StatusOK, &creds)
	if len(creds.Credentials) != 1 {
		t.Fatalf("credentials = %+v", creds)
	}

	var total map[string]uint64
	getJSON(t, ts.URL+"/v1/platform/total", http.StatusOK, &total)
	if total["platformTotal"] != 1000 {
		t.Fatalf("platform total = %v", total)
	}
}

func TestHTTPAPI_Errors(t *testing.T) {
	_, ts := newTestAPI(t)

	var errResp struct {
		Error struct {
			Code    model.Code `json:"code"`
			Message string     `json:"message"`
		} `json:"error"`
	}
	getJSON(t, ts.URL+"/v1/claims/42", http.StatusNotFound, &errResp)
	if errResp.Error.Code != model.CodeNotFound {
		t.Fatalf("code = %q, want %q", errResp.Error.Code, model.CodeNotFound)
	}

	getJSON(t, ts.URL+"/v1/claims/not-a-number", http.StatusBadRequest, &errResp)
	if errResp.Error.Code != model.CodeInvalidID {
		t.Fatalf("code = %q, want %q", errResp.Error.Code, model.CodeInvalidID)
	}

	getJSON(t, ts.URL+"/v1/types/unknown", http.StatusNotFound, nil)
}

func TestHTTPAPI_CredentialDocument(t *testing.T) {
	l := ledger.New("admin", ledger.NewTickClock(100))
	st, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()

	body := []byte("-----BEGIN VERDANT CREDENTIAL-----\n...")
	if err := st.PutCredentialDoc(context.Background(), 1, "bafy-doc", body); err != nil {
		t.Fatalf("PutCredentialDoc: %v", err)
	}

	ts := httptest.NewServer((&Server{Ledger: l, Store: st}).Routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/credentials/1/document")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Document-CID"); got != "bafy-doc" {
		t.Fatalf("X-Document-CID = %q", got)
	}

	resp2, err := http.Get(ts.URL + "/v1/credentials/2/document")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp2.StatusCode)
	}
}
