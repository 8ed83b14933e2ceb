package ledgerrpc

import (
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"verdant.eco/ledger/model"
)

// The wire contract for errors: the gRPC status code carries the error
// Kind, and the status message is "<CODE>: <human message>" so clients can
// rebuild the structured error without a custom detail proto.

func statusFromError(err error) error {
	if err == nil {
		return nil
	}
	var le *model.Error
	if !errors.As(err, &le) {
		return status.Error(codes.Internal, err.Error())
	}
	return status.Error(grpcCode(le.Kind), string(le.Code)+": "+le.Message)
}

func grpcCode(kind model.Kind) codes.Code {
	switch kind {
	case model.KindAuthorization:
		return codes.PermissionDenied
	case model.KindNotFound:
		return codes.NotFound
	case model.KindInvalidInput:
		return codes.InvalidArgument
	case model.KindStateConflict:
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

func kindFromGRPC(c codes.Code) model.Kind {
	switch c {
	case codes.PermissionDenied:
		return model.KindAuthorization
	case codes.NotFound:
		return model.KindNotFound
	case codes.InvalidArgument:
		return model.KindInvalidInput
	case codes.FailedPrecondition:
		return model.KindStateConflict
	default:
		return model.KindInternal
	}
}

// errorFromRPC rebuilds a *model.Error from a gRPC status when the message
// follows the wire contract; other errors pass through unchanged.
func errorFromRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	code, msg, found := strings.Cut(st.Message(), ": ")
	if !found || code == "" || strings.ContainsAny(code, " \t") {
		return err
	}
	return &model.Error{
		Kind:    kindFromGRPC(st.Code()),
		Code:    model.Code(code),
		Message: msg,
	}
}
