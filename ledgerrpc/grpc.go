package ledgerrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// LedgerServer is the server API for the Ledger gRPC service.
//
// We intentionally use protobuf well-known types (Struct, wrappers, Empty)
// so this package does not require a protoc/codegen toolchain.
//
// Proto definition: ledger.proto.
type LedgerServer interface {
	RegisterImpactType(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	DeactivateImpactType(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	RegisterProject(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	AuthorizeValidator(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	RevokeValidator(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	RegisterDataSource(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	SubmitClaim(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	AttestValidator(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AttestSource(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FinalizeExpired(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	GetClaim(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetProject(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetCredential(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetAttestation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSourceAttestation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListProjectClaims(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListOwnerCredentials(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	PlatformTotal(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	ArchiveEvidence(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	GetEvidence(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedLedgerServer can be embedded to have forward compatible implementations.
type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) RegisterImpactType(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterImpactType not implemented")
}
func (UnimplementedLedgerServer) DeactivateImpactType(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeactivateImpactType not implemented")
}
func (UnimplementedLedgerServer) RegisterProject(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterProject not implemented")
}
func (UnimplementedLedgerServer) AuthorizeValidator(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method AuthorizeValidator not implemented")
}
func (UnimplementedLedgerServer) RevokeValidator(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RevokeValidator not implemented")
}
func (UnimplementedLedgerServer) RegisterDataSource(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterDataSource not implemented")
}
func (UnimplementedLedgerServer) SubmitClaim(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitClaim not implemented")
}
func (UnimplementedLedgerServer) AttestValidator(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method AttestValidator not implemented")
}
func (UnimplementedLedgerServer) AttestSource(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method AttestSource not implemented")
}
func (UnimplementedLedgerServer) FinalizeExpired(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method FinalizeExpired not implemented")
}
func (UnimplementedLedgerServer) GetClaim(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetClaim not implemented")
}
func (UnimplementedLedgerServer) GetProject(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProject not implemented")
}
func (UnimplementedLedgerServer) GetCredential(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCredential not implemented")
}
func (UnimplementedLedgerServer) GetAttestation(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAttestation not implemented")
}
func (UnimplementedLedgerServer) GetSourceAttestation(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSourceAttestation not implemented")
}
func (UnimplementedLedgerServer) ListProjectClaims(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProjectClaims not implemented")
}
func (UnimplementedLedgerServer) ListOwnerCredentials(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOwnerCredentials not implemented")
}
func (UnimplementedLedgerServer) PlatformTotal(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method PlatformTotal not implemented")
}
func (UnimplementedLedgerServer) ArchiveEvidence(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ArchiveEvidence not implemented")
}
func (UnimplementedLedgerServer) GetEvidence(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEvidence not implemented")
}

// RegisterLedgerServer registers the Ledger service on a gRPC server.
func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

// LedgerClient is the client API for the Ledger gRPC service.
type LedgerClient interface {
	RegisterImpactType(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DeactivateImpactType(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	RegisterProject(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	AuthorizeValidator(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	RevokeValidator(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	RegisterDataSource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	SubmitClaim(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	AttestValidator(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	AttestSource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	FinalizeExpired(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	GetClaim(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetProject(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetCredential(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetAttestation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetSourceAttestation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListProjectClaims(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListOwnerCredentials(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	PlatformTotal(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	ArchiveEvidence(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	GetEvidence(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type ledgerClient struct{ cc grpc.ClientConnInterface }

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient { return &ledgerClient{cc: cc} }

const servicePrefix = "/verdant.ledger.v1.Ledger/"

func invokeStruct(ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := cc.Invoke(ctx, servicePrefix+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func invokeEmpty(ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := cc.Invoke(ctx, servicePrefix+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func invokeString(ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := cc.Invoke(ctx, servicePrefix+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func invokeBytes(ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := cc.Invoke(ctx, servicePrefix+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) RegisterImpactType(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invokeEmpty(ctx, c.cc, "RegisterImpactType", in, opts)
}
func (c *ledgerClient) DeactivateImpactType(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invokeEmpty(ctx, c.cc, "DeactivateImpactType", in, opts)
}
func (c *ledgerClient) RegisterProject(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invokeString(ctx, c.cc, "RegisterProject", in, opts)
}
func (c *ledgerClient) AuthorizeValidator(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invokeEmpty(ctx, c.cc, "AuthorizeValidator", in, opts)
}
func (c *ledgerClient) RevokeValidator(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invokeEmpty(ctx, c.cc, "RevokeValidator", in, opts)
}
func (c *ledgerClient) RegisterDataSource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invokeEmpty(ctx, c.cc, "RegisterDataSource", in, opts)
}
func (c *ledgerClient) SubmitClaim(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invokeString(ctx, c.cc, "SubmitClaim", in, opts)
}
func (c *ledgerClient) AttestValidator(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, "AttestValidator", in, opts)
}
func (c *ledgerClient) AttestSource(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, "AttestSource", in, opts)
}
func (c *ledgerClient) FinalizeExpired(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invokeString(ctx, c.cc, "FinalizeExpired", in, opts)
}
func (c *ledgerClient) GetClaim(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, "GetClaim", in, opts)
}
func (c *ledgerClient) GetProject(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, "GetProject", in, opts)
}
func (c *ledgerClient) GetCredential(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, "GetCredential", in, opts)
}
func (c *ledgerClient) GetAttestation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, "GetAttestation", in, opts)
}
func (c *ledgerClient) GetSourceAttestation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, "GetSourceAttestation", in, opts)
}
func (c *ledgerClient) ListProjectClaims(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, "ListProjectClaims", in, opts)
}
func (c *ledgerClient) ListOwnerCredentials(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invokeStruct(ctx, c.cc, "ListOwnerCredentials", in, opts)
}
func (c *ledgerClient) PlatformTotal(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invokeString(ctx, c.cc, "PlatformTotal", in, opts)
}
func (c *ledgerClient) ArchiveEvidence(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return invokeString(ctx, c.cc, "ArchiveEvidence", in, opts)
}
func (c *ledgerClient) GetEvidence(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	return invokeBytes(ctx, c.cc, "GetEvidence", in, opts)
}

func unaryHandler[In any, Out any](method string, call func(LedgerServer, context.Context, *In) (*Out, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(In)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: servicePrefix + method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(LedgerServer), ctx, req.(*In))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Ledger_ServiceDesc is the grpc.ServiceDesc for the Ledger service.
var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "verdant.ledger.v1.Ledger",
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterImpactType", Handler: unaryHandler("RegisterImpactType", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
			return s.RegisterImpactType(ctx, in)
		})},
		{MethodName: "DeactivateImpactType", Handler: unaryHandler("DeactivateImpactType", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
			return s.DeactivateImpactType(ctx, in)
		})},
		{MethodName: "RegisterProject", Handler: unaryHandler("RegisterProject", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
			return s.RegisterProject(ctx, in)
		})},
		{MethodName: "AuthorizeValidator", Handler: unaryHandler("AuthorizeValidator", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
			return s.AuthorizeValidator(ctx, in)
		})},
		{MethodName: "RevokeValidator", Handler: unaryHandler("RevokeValidator", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
			return s.RevokeValidator(ctx, in)
		})},
		{MethodName: "RegisterDataSource", Handler: unaryHandler("RegisterDataSource", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
			return s.RegisterDataSource(ctx, in)
		})},
		{MethodName: "SubmitClaim", Handler: unaryHandler("SubmitClaim", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*wrapperspb.StringValue, error) {
			return s.SubmitClaim(ctx, in)
		})},
		{MethodName: "AttestValidator", Handler: unaryHandler("AttestValidator", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return s.AttestValidator(ctx, in)
		})},
		{MethodName: "AttestSource", Handler: unaryHandler("AttestSource", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return s.AttestSource(ctx, in)
		})},
		{MethodName: "FinalizeExpired", Handler: unaryHandler("FinalizeExpired", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
			return s.FinalizeExpired(ctx, in)
		})},
		{MethodName: "GetClaim", Handler: unaryHandler("GetClaim", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
			return s.GetClaim(ctx, in)
		})},
		{MethodName: "GetProject", Handler: unaryHandler("GetProject", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
			return s.GetProject(ctx, in)
		})},
		{MethodName: "GetCredential", Handler: unaryHandler("GetCredential", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
			return s.GetCredential(ctx, in)
		})},
		{MethodName: "GetAttestation", Handler: unaryHandler("GetAttestation", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return s.GetAttestation(ctx, in)
		})},
		{MethodName: "GetSourceAttestation", Handler: unaryHandler("GetSourceAttestation", func(s LedgerServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
			return s.GetSourceAttestation(ctx, in)
		})},
		{MethodName: "ListProjectClaims", Handler: unaryHandler("ListProjectClaims", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
			return s.ListProjectClaims(ctx, in)
		})},
		{MethodName: "ListOwnerCredentials", Handler: unaryHandler("ListOwnerCredentials", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
			return s.ListOwnerCredentials(ctx, in)
		})},
		{MethodName: "PlatformTotal", Handler: unaryHandler("PlatformTotal", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
			return s.PlatformTotal(ctx, in)
		})},
		{MethodName: "ArchiveEvidence", Handler: unaryHandler("ArchiveEvidence", func(s LedgerServer, ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
			return s.ArchiveEvidence(ctx, in)
		})},
		{MethodName: "GetEvidence", Handler: unaryHandler("GetEvidence", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
			return s.GetEvidence(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger.proto",
}
