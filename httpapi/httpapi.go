// Package httpapi serves the read-only query surface over HTTP. Mutations go
// through the gRPC service; this router exists for dashboards and curl.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"verdant.eco/ledger/ledger"
	"verdant.eco/ledger/model"
	"verdant.eco/ledger/store"
)

// Server exposes ledger queries and stored credential documents.
type Server struct {
	Ledger *ledger.Ledger

	// Store, when set, serves credential documents under
	// /v1/credentials/{id}/document.
	Store *store.SQLite
}

// Routes returns the chi router for the query API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/platform/total", s.handlePlatformTotal)
		r.Get("/types/{name}", s.handleImpactType)
		r.Get("/projects/{id}", s.handleProject)
		r.Get("/projects/{id}/claims", s.handleProjectClaims)
		r.Get("/claims/{id}", s.handleClaim)
		r.Get("/claims/{id}/attestations", s.handleClaimAttestations)
		r.Get("/claims/{id}/attestations/{validator}", s.handleClaimAttestation)
		r.Get("/claims/{id}/source-attestations", s.handleClaimSourceAttestations)
		r.Get("/claims/{id}/source-attestations/{source}", s.handleClaimSourceAttestation)
		r.Get("/credentials/{id}", s.handleCredential)
		r.Get("/credentials/{id}/document", s.handleCredentialDoc)
		r.Get("/owners/{owner}/credentials", s.handleOwnerCredentials)
	})
	return r
}

func (s *Server) handlePlatformTotal(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]uint64{"platformTotal": s.Ledger.PlatformTotal()})
}

func (s *Server) handleImpactType(w http.ResponseWriter, r *http.Request) {
	it, ok := s.Ledger.GetImpactType(chi.URLParam(r, "name"))
	if !ok {
		writeNotFound(w, "impact type not found")
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, found := s.Ledger.GetProject(id)
	if !found {
		writeNotFound(w, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProjectClaims(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, found := s.Ledger.GetProject(id); !found {
		writeNotFound(w, "project not found")
		return
	}
	claims := s.Ledger.ClaimsByProject(id)
	if claims == nil {
		claims = []model.Claim{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"claims": claims})
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, found := s.Ledger.GetClaim(id)
	if !found {
		writeNotFound(w, "claim not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleClaimAttestations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, found := s.Ledger.GetClaim(id); !found {
		writeNotFound(w, "claim not found")
		return
	}
	atts := s.Ledger.AttestationsByClaim(id)
	if atts == nil {
		atts = []model.Attestation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"attestations": atts})
}

func (s *Server) handleClaimAttestation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a, found := s.Ledger.GetAttestation(id, model.Identity(chi.URLParam(r, "validator")))
	if !found {
		writeNotFound(w, "attestation not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleClaimSourceAttestations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, found := s.Ledger.GetClaim(id); !found {
		writeNotFound(w, "claim not found")
		return
	}
	atts := s.Ledger.SourceAttestationsByClaim(id)
	if atts == nil {
		atts = []model.SourceAttestation{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sourceAttestations": atts})
}

func (s *Server) handleClaimSourceAttestation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a, found := s.Ledger.GetSourceAttestation(id, chi.URLParam(r, "source"))
	if !found {
		writeNotFound(w, "source attestation not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCredential(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, found := s.Ledger.GetCredential(id)
	if !found {
		writeNotFound(w, "credential not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCredentialDoc(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if s.Store == nil {
		writeNotFound(w, "credential document not found")
		return
	}
	cid, body, err := s.Store.GetCredentialDoc(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "credential document not found")
			return
		}
		writeError(w, http.StatusInternalServerError, model.CodeInternal, "document lookup failed")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Document-CID", cid)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleOwnerCredentials(w http.ResponseWriter, r *http.Request) {
	creds := s.Ledger.CredentialsByOwner(model.Identity(chi.URLParam(r, "owner")))
	if creds == nil {
		creds = []model.Credential{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"credentials": creds})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.CodeInvalidID, "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    model.Code `json:"code"`
	Message string     `json:"message"`
}

func writeNotFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, model.CodeNotFound, msg)
}

func writeError(w http.ResponseWriter, status int, code model.Code, msg string) {
	writeJSON(w, status, map[string]errorBody{"error": {Code: code, Message: msg}})
}

// Serve runs the query API until ctx is cancelled.
func Serve(ctx context.Context, addr string, s *Server) error {
	srv := &http.Server{Addr: addr, Handler: s.Routes()}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		_ = srv.Close()
		return ctx.Err()
	case err := <-errc:
		return err
	}
}
