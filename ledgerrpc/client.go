package ledgerrpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"verdant.eco/ledger/model"
)

// Client is a typed wrapper over the Ledger gRPC service. Every call is
// made as Identity.
type Client struct {
	cc     *grpc.ClientConn
	client LedgerClient

	// Identity is sent in request metadata as the caller.
	Identity model.Identity

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Identity is the caller identity for all RPCs on this client.
	Identity model.Identity

	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewLedgerClient(cc), Identity: opts.Identity}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	ctx := context.Background()
	var cancel context.CancelFunc
	if c.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	return metadata.AppendToOutgoingContext(ctx, IdentityMetadataKey, string(c.Identity)), cancel
}

func (c *Client) RegisterImpactType(name string, conversionFactor uint64, unit string) error {
	ctx, cancel := c.ctx()
	defer cancel()
	_, err := c.client.RegisterImpactType(ctx, newStruct(map[string]*structpb.Value{
		"name":             strVal(name),
		"conversionFactor": u64Val(conversionFactor),
		"unit":             strVal(unit),
	}))
	return errorFromRPC(err)
}

func (c *Client) DeactivateImpactType(name string) error {
	ctx, cancel := c.ctx()
	defer cancel()
	_, err := c.client.DeactivateImpactType(ctx, wrapperspb.String(name))
	return errorFromRPC(err)
}

func (c *Client) RegisterProject(name string) (uint64, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.RegisterProject(ctx, newStruct(map[string]*structpb.Value{
		"name": strVal(name),
	}))
	if err != nil {
		return 0, errorFromRPC(err)
	}
	return parseU64(reply.GetValue())
}

func (c *Client) AuthorizeValidator(projectID uint64, validator model.Identity) error {
	ctx, cancel := c.ctx()
	defer cancel()
	_, err := c.client.AuthorizeValidator(ctx, newStruct(map[string]*structpb.Value{
		"projectId": u64Val(projectID),
		"validator": strVal(string(validator)),
	}))
	return errorFromRPC(err)
}

func (c *Client) RevokeValidator(projectID uint64, validator model.Identity) error {
	ctx, cancel := c.ctx()
	defer cancel()
	_, err := c.client.RevokeValidator(ctx, newStruct(map[string]*structpb.Value{
		"projectId": u64Val(projectID),
		"validator": strVal(string(validator)),
	}))
	return errorFromRPC(err)
}

func (c *Client) RegisterDataSource(sourceID string, iface model.Identity, name, description string) error {
	ctx, cancel := c.ctx()
	defer cancel()
	_, err := c.client.RegisterDataSource(ctx, newStruct(map[string]*structpb.Value{
		"sourceId":    strVal(sourceID),
		"interface":   strVal(string(iface)),
		"name":        strVal(name),
		"description": strVal(description),
	}))
	return errorFromRPC(err)
}

// SubmitClaimParams are the submitter-supplied fields of a new claim.
type SubmitClaimParams struct {
	ProjectID             uint64
	ImpactType            string
	Amount                uint64
	EvidenceRef           string
	Deadline              model.Time
	RequiredVerifications uint64
}

func (c *Client) SubmitClaim(p SubmitClaimParams) (uint64, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.SubmitClaim(ctx, newStruct(map[string]*structpb.Value{
		"projectId":             u64Val(p.ProjectID),
		"impactType":            strVal(p.ImpactType),
		"amount":                u64Val(p.Amount),
		"evidenceRef":           strVal(p.EvidenceRef),
		"deadline":              timeVal(p.Deadline),
		"requiredVerifications": u64Val(p.RequiredVerifications),
	}))
	if err != nil {
		return 0, errorFromRPC(err)
	}
	return parseU64(reply.GetValue())
}

func (c *Client) AttestValidator(claimID uint64, approve bool, amount uint64, comments string) (model.Claim, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.AttestValidator(ctx, newStruct(map[string]*structpb.Value{
		"claimId":  u64Val(claimID),
		"approve":  boolVal(approve),
		"amount":   u64Val(amount),
		"comments": strVal(comments),
	}))
	if err != nil {
		return model.Claim{}, errorFromRPC(err)
	}
	return claimFromStruct(reply)
}

func (c *Client) AttestSource(sourceID string, claimID uint64, approve bool, amount uint64, evidenceRef string) (model.Claim, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.AttestSource(ctx, newStruct(map[string]*structpb.Value{
		"sourceId":    strVal(sourceID),
		"claimId":     u64Val(claimID),
		"approve":     boolVal(approve),
		"amount":      u64Val(amount),
		"evidenceRef": strVal(evidenceRef),
	}))
	if err != nil {
		return model.Claim{}, errorFromRPC(err)
	}
	return claimFromStruct(reply)
}

func (c *Client) FinalizeExpired(claimID uint64) (model.ClaimStatus, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.FinalizeExpired(ctx, wrapperspb.String(formatU64(claimID)))
	if err != nil {
		return "", errorFromRPC(err)
	}
	return model.ClaimStatus(reply.GetValue()), nil
}

func (c *Client) GetClaim(id uint64) (model.Claim, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.GetClaim(ctx, wrapperspb.String(formatU64(id)))
	if err != nil {
		return model.Claim{}, errorFromRPC(err)
	}
	return claimFromStruct(reply)
}

func (c *Client) GetProject(id uint64) (model.Project, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.GetProject(ctx, wrapperspb.String(formatU64(id)))
	if err != nil {
		return model.Project{}, errorFromRPC(err)
	}
	return projectFromStruct(reply)
}

func (c *Client) GetCredential(id uint64) (model.Credential, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.GetCredential(ctx, wrapperspb.String(formatU64(id)))
	if err != nil {
		return model.Credential{}, errorFromRPC(err)
	}
	return credentialFromStruct(reply)
}

func (c *Client) GetAttestation(claimID uint64, validator model.Identity) (model.Attestation, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.GetAttestation(ctx, newStruct(map[string]*structpb.Value{
		"claimId":   u64Val(claimID),
		"validator": strVal(string(validator)),
	}))
	if err != nil {
		return model.Attestation{}, errorFromRPC(err)
	}
	return attestationFromStruct(reply)
}

func (c *Client) GetSourceAttestation(claimID uint64, sourceID string) (model.SourceAttestation, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.GetSourceAttestation(ctx, newStruct(map[string]*structpb.Value{
		"claimId":  u64Val(claimID),
		"sourceId": strVal(sourceID),
	}))
	if err != nil {
		return model.SourceAttestation{}, errorFromRPC(err)
	}
	return sourceAttestationFromStruct(reply)
}

func (c *Client) ListProjectClaims(projectID uint64) ([]model.Claim, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.ListProjectClaims(ctx, wrapperspb.String(formatU64(projectID)))
	if err != nil {
		return nil, errorFromRPC(err)
	}
	return claimsFromListStruct(reply)
}

func (c *Client) ListOwnerCredentials(owner model.Identity) ([]model.Credential, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.ListOwnerCredentials(ctx, wrapperspb.String(string(owner)))
	if err != nil {
		return nil, errorFromRPC(err)
	}
	return credentialsFromListStruct(reply)
}

func (c *Client) PlatformTotal() (uint64, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.PlatformTotal(ctx, &emptypb.Empty{})
	if err != nil {
		return 0, errorFromRPC(err)
	}
	return parseU64(reply.GetValue())
}

func (c *Client) ArchiveEvidence(data []byte) (string, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.ArchiveEvidence(ctx, wrapperspb.Bytes(data))
	if err != nil {
		return "", errorFromRPC(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) GetEvidence(ref string) ([]byte, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.GetEvidence(ctx, wrapperspb.String(ref))
	if err != nil {
		return nil, errorFromRPC(err)
	}
	return reply.GetValue(), nil
}
