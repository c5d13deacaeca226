package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mvaleed/quill/internal/auth"
	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/envelope"
)

var errInvalidBody = errors.New("invalid request body")

// decodeRequest reads a Struct into v using the JSON field names of the HTTP
// API, so aliases such as "content" and "username" apply here too.
func decodeRequest(req *structpb.Struct, v any) error {
	if req == nil {
		req = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(req)
	if err != nil {
		return errInvalidBody
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errInvalidBody
	}
	return nil
}

// stringField returns a string field of req, or "" when absent or not a string.
func stringField(req *structpb.Struct, name string) string {
	if req == nil {
		return ""
	}
	if v, ok := req.GetFields()[name]; ok {
		if s, ok := v.GetKind().(*structpb.Value_StringValue); ok {
			return s.StringValue
		}
	}
	return ""
}

// encodeEnvelope converts an envelope body into a Struct.
func encodeEnvelope(body envelope.Envelope) (*structpb.Struct, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("convert envelope: %w", err)
	}
	return out, nil
}

// statusCode maps an envelope status onto the closest gRPC code.
func statusCode(httpStatus int) codes.Code {
	switch httpStatus {
	case http.StatusUnprocessableEntity:
		return codes.InvalidArgument
	case http.StatusBadRequest:
		return codes.FailedPrecondition
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	}
	return codes.Internal
}

// errorReporter turns service errors into statuses and logs faults.
type errorReporter interface {
	statusFor(ctx context.Context, method string, err error) error
}

func (s *Server) statusFor(ctx context.Context, method string, err error) error {
	if errors.Is(err, errInvalidBody) {
		return status.Error(codes.InvalidArgument, envelope.MsgInvalidBody)
	}

	resp := envelope.FromError(err)
	code := statusCode(resp.Status)
	if resp.Fault() {
		s.logger.ErrorContext(ctx, "grpc request failed",
			slog.String("method", method),
			slog.String("error", err.Error()),
		)
		return status.Error(code, resp.Body.Message)
	}

	st := status.New(code, resp.Body.Message)
	detail, encErr := encodeEnvelope(resp.Body)
	if encErr != nil {
		return st.Err()
	}
	if withDetail, detErr := st.WithDetails(detail); detErr == nil {
		st = withDetail
	}
	return st.Err()
}

func principal(ctx context.Context) domain.Principal {
	p, _ := auth.PrincipalFrom(ctx)
	return p
}
