// Package ledgerrpc exposes the impact ledger over gRPC without generated
// code: requests and responses are protobuf well-known types, and the
// caller's identity travels in request metadata.
package ledgerrpc

import (
	"context"

	"github.com/ipfs/go-cid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"verdant.eco/ledger/cidutil"
	"verdant.eco/ledger/evidence"
	"verdant.eco/ledger/ledger"
	"verdant.eco/ledger/model"
)

// IdentityMetadataKey carries the caller identity in gRPC metadata. The
// daemon trusts the transport to have authenticated it.
const IdentityMetadataKey = "x-verdant-identity"

// Server exposes a ledger.Ledger over the Ledger gRPC service.
type Server struct {
	UnimplementedLedgerServer

	Ledger *ledger.Ledger

	// Evidence, when set, serves ArchiveEvidence/GetEvidence and lets
	// SubmitClaim verify that a referenced CID was actually archived.
	Evidence evidence.Archive

	// RequireArchivedEvidence rejects claims whose evidenceRef does not
	// resolve to an archived object.
	RequireArchivedEvidence bool

	// Persist, when set, runs after every successful mutation. The daemon
	// uses it to write a snapshot; a persist failure fails the RPC.
	Persist func(context.Context) error
}

func (s *Server) caller(ctx context.Context) (model.Identity, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing caller identity")
	}
	vals := md.Get(IdentityMetadataKey)
	if len(vals) == 0 || vals[0] == "" {
		return "", status.Error(codes.Unauthenticated, "missing caller identity")
	}
	return model.Identity(vals[0]), nil
}

func (s *Server) persist(ctx context.Context) error {
	if s.Persist == nil {
		return nil
	}
	if err := s.Persist(ctx); err != nil {
		return status.Error(codes.Internal, "persist failed: "+err.Error())
	}
	return nil
}

func (s *Server) RegisterImpactType(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	factor, err := getU64(in, "conversionFactor")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Ledger.RegisterImpactType(actor, getStr(in, "name"), factor, getStr(in, "unit")); err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) DeactivateImpactType(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Ledger.DeactivateImpactType(actor, in.GetValue()); err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) RegisterProject(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	owner, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.Ledger.RegisterProject(owner, getStr(in, "name"))
	if err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return wrapperspb.String(formatU64(id)), nil
}

func (s *Server) AuthorizeValidator(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	projectID, err := getU64(in, "projectId")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Ledger.AuthorizeValidator(actor, projectID, model.Identity(getStr(in, "validator"))); err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) RevokeValidator(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	projectID, err := getU64(in, "projectId")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := s.Ledger.RevokeValidator(actor, projectID, model.Identity(getStr(in, "validator"))); err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) RegisterDataSource(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	actor, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	err = s.Ledger.RegisterDataSource(actor,
		getStr(in, "sourceId"),
		model.Identity(getStr(in, "interface")),
		getStr(in, "name"),
		getStr(in, "description"))
	if err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) SubmitClaim(ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
	submitter, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	projectID, err := getU64(in, "projectId")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	amount, err := getU64(in, "amount")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	deadline, err := getU64(in, "deadline")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	required, err := getU64(in, "requiredVerifications")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	evidenceRef := getStr(in, "evidenceRef")
	if evidenceRef != "" {
		if err := s.checkEvidenceRef(evidenceRef); err != nil {
			return nil, err
		}
	}

	id, err := s.Ledger.SubmitClaim(submitter, projectID, getStr(in, "impactType"),
		amount, evidenceRef, model.Time(deadline), required)
	if err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return wrapperspb.String(formatU64(id)), nil
}

func (s *Server) checkEvidenceRef(ref string) error {
	id, ok := cidutil.ParseRef(ref)
	if !ok {
		return status.Error(codes.InvalidArgument, "evidenceRef is not a valid CID")
	}
	if !s.RequireArchivedEvidence {
		return nil
	}
	if s.Evidence == nil || !s.Evidence.Has(id) {
		return status.Error(codes.FailedPrecondition, "evidence not archived")
	}
	return nil
}

func (s *Server) AttestValidator(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	validator, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	claimID, err := getU64(in, "claimId")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	amount, err := getU64Default(in, "amount", 0)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	err = s.Ledger.AttestValidator(validator, claimID, getBool(in, "approve"), amount, getStr(in, "comments"))
	if err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	c, _ := s.Ledger.GetClaim(claimID)
	return claimStruct(c), nil
}

func (s *Server) AttestSource(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	caller, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	claimID, err := getU64(in, "claimId")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	amount, err := getU64Default(in, "amount", 0)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	evidenceRef := getStr(in, "evidenceRef")
	if evidenceRef != "" {
		if err := s.checkEvidenceRef(evidenceRef); err != nil {
			return nil, err
		}
	}
	err = s.Ledger.AttestSource(caller, getStr(in, "sourceId"), claimID, getBool(in, "approve"), amount, evidenceRef)
	if err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	c, _ := s.Ledger.GetClaim(claimID)
	return claimStruct(c), nil
}

func (s *Server) FinalizeExpired(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if _, err := s.caller(ctx); err != nil {
		return nil, err
	}
	claimID, err := parseU64(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid claim id")
	}
	st, err := s.Ledger.FinalizeExpired(claimID)
	if err != nil {
		return nil, statusFromError(err)
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return wrapperspb.String(string(st)), nil
}

func (s *Server) GetClaim(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	_ = ctx
	id, err := parseU64(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid claim id")
	}
	c, ok := s.Ledger.GetClaim(id)
	if !ok {
		return nil, notFound("claim not found")
	}
	return claimStruct(c), nil
}

func (s *Server) GetProject(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	_ = ctx
	id, err := parseU64(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid project id")
	}
	p, ok := s.Ledger.GetProject(id)
	if !ok {
		return nil, notFound("project not found")
	}
	return projectStruct(p), nil
}

func (s *Server) GetCredential(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	_ = ctx
	id, err := parseU64(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid credential id")
	}
	c, ok := s.Ledger.GetCredential(id)
	if !ok {
		return nil, notFound("credential not found")
	}
	return credentialStruct(c), nil
}

func (s *Server) GetAttestation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	claimID, err := getU64(in, "claimId")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	a, ok := s.Ledger.GetAttestation(claimID, model.Identity(getStr(in, "validator")))
	if !ok {
		return nil, notFound("attestation not found")
	}
	return attestationStruct(a), nil
}

func (s *Server) GetSourceAttestation(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	_ = ctx
	claimID, err := getU64(in, "claimId")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	a, ok := s.Ledger.GetSourceAttestation(claimID, getStr(in, "sourceId"))
	if !ok {
		return nil, notFound("source attestation not found")
	}
	return sourceAttestationStruct(a), nil
}

func (s *Server) ListProjectClaims(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	_ = ctx
	id, err := parseU64(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid project id")
	}
	return claimListStruct(s.Ledger.ClaimsByProject(id)), nil
}

func (s *Server) ListOwnerCredentials(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	_ = ctx
	return credentialListStruct(s.Ledger.CredentialsByOwner(model.Identity(in.GetValue()))), nil
}

func (s *Server) PlatformTotal(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
	_, _ = ctx, in
	return wrapperspb.String(formatU64(s.Ledger.PlatformTotal())), nil
}

func (s *Server) ArchiveEvidence(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	_ = ctx
	if s.Evidence == nil {
		return nil, status.Error(codes.FailedPrecondition, "no evidence archive configured")
	}
	b := in.GetValue()
	expected, err := cidutil.Sum(b)
	if err != nil {
		return nil, status.Error(codes.Internal, "cid computation failed")
	}
	id, err := s.Evidence.Put(b)
	if err != nil {
		return nil, mapEvidenceErr(err)
	}
	if id != expected {
		return nil, status.Error(codes.DataLoss, evidence.ErrCIDMismatch.Error())
	}
	return wrapperspb.String(id.String()), nil
}

func (s *Server) GetEvidence(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	_ = ctx
	if s.Evidence == nil {
		return nil, status.Error(codes.FailedPrecondition, "no evidence archive configured")
	}
	id, err := cid.Decode(in.GetValue())
	if err != nil || !id.Defined() {
		return nil, status.Error(codes.InvalidArgument, evidence.ErrInvalidCID.Error())
	}
	b, err := s.Evidence.Get(id)
	if err != nil {
		return nil, mapEvidenceErr(err)
	}
	return wrapperspb.Bytes(b), nil
}

func mapEvidenceErr(err error) error {
	switch {
	case err == nil:
		return nil
	case evidence.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case err == evidence.ErrInvalidCID:
		return status.Error(codes.InvalidArgument, err.Error())
	case err == evidence.ErrCIDMismatch:
		return status.Error(codes.DataLoss, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func notFound(msg string) error {
	return status.Error(codes.NotFound, string(model.CodeNotFound)+": "+msg)
}
