package wire

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
)

// Server applies decoded requests to a Dispatcher. It is itself an
// Exchanger, so a Client can talk to it without any transport.
type Server struct {
	d      foreign.Dispatcher
	logger *zap.Logger
}

// NewServer returns a server that executes requests against d.
func NewServer(d foreign.Dispatcher) *Server {
	return &Server{d: d, logger: Logger()}
}

// Loopback returns a Client connected directly to a Server for d.
func Loopback(d foreign.Dispatcher, opts ...ClientOption) *Client {
	return NewClient(NewServer(d), opts...)
}

// Exchange decodes one request, executes it and encodes the response.
// Dispatcher faults are reported in the response, not as an error. An
// error is returned only when the request cannot be decoded.
func (s *Server) Exchange(ctx context.Context, b []byte) ([]byte, error) {
	var req Request
	if err := Unmarshal(b, &req); err != nil {
		return nil, err
	}
	resp, err := s.Handle(ctx, &req)
	if err != nil {
		s.logger.Debug("request faulted",
			zap.Stringer("op", req.Op),
			zap.String("class", req.Class),
			zap.String("member", req.Member),
			zap.Error(err))
		resp = &Response{Fault: NewFault(err)}
	}
	return Marshal(resp)
}

// Handle executes one decoded request.
func (s *Server) Handle(ctx context.Context, req *Request) (*Response, error) {
	args := decodeArgs(req.Args)
	obj := foreign.Ref(req.Obj)

	switch req.Op {
	case OpNewObject:
		ref, err := s.d.NewObject(ctx, req.Class, req.Sig, args)
		return refResponse(ref, err)
	case OpCallMethod:
		v, err := s.d.CallMethod(ctx, obj, req.Member, req.Sig, args)
		return valueResponse(v, err)
	case OpCallStatic:
		v, err := s.d.CallStaticMethod(ctx, req.Class, req.Member, req.Sig, args)
		return valueResponse(v, err)
	case OpGetField:
		v, err := s.d.GetField(ctx, obj, req.Member, req.Sig)
		return valueResponse(v, err)
	case OpGetStaticField:
		v, err := s.d.GetStaticField(ctx, req.Class, req.Member, req.Sig)
		return valueResponse(v, err)
	case OpNewArray:
		ref, err := s.d.NewArray(ctx, foreign.Kind(req.Elem), req.Length)
		return refResponse(ref, err)
	case OpArrayLength:
		n, err := s.d.ArrayLength(ctx, obj)
		if err != nil {
			return nil, err
		}
		return &Response{Length: n}, nil
	case OpSetByteRegion:
		return &Response{}, s.d.SetByteArrayRegion(ctx, obj, req.Start, foreign.SignedBytes(req.Bytes))
	case OpGetByteRegion:
		if req.Length < 0 || req.Length > MaxMessageSize {
			return nil, errors.InvalidInput(errors.PhaseArray, "region length out of range")
		}
		buf := make([]int8, req.Length)
		if err := s.d.GetByteArrayRegion(ctx, obj, req.Start, buf); err != nil {
			return nil, err
		}
		return &Response{Bytes: foreign.UnsignedBytes(buf)}, nil
	case OpSetFloatRegion:
		return &Response{}, s.d.SetFloatArrayRegion(ctx, obj, req.Start, req.Floats)
	case OpNewString:
		ref, err := s.d.NewString(ctx, req.Str)
		return refResponse(ref, err)
	case OpGetString:
		str, err := s.d.GetString(ctx, obj)
		if err != nil {
			return nil, err
		}
		return &Response{Str: str}, nil
	}
	return nil, errors.InvalidInput(errors.PhaseDecode, "unknown operation "+req.Op.String())
}

func refResponse(ref foreign.Ref, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	return &Response{Ref: uint32(ref)}, nil
}

func valueResponse(v foreign.Value, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	wv := FromValue(v)
	return &Response{Value: &wv}, nil
}
