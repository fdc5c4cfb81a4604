package wire

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/docbridge/errors"
	"github.com/wippyai/docbridge/foreign"
)

// Exchanger delivers one encoded request and returns the encoded response.
type Exchanger interface {
	Exchange(ctx context.Context, req []byte) ([]byte, error)
}

// ExchangerFunc adapts a function to Exchanger.
type ExchangerFunc func(ctx context.Context, req []byte) ([]byte, error)

func (f ExchangerFunc) Exchange(ctx context.Context, req []byte) ([]byte, error) {
	return f(ctx, req)
}

// Client implements foreign.Dispatcher over an Exchanger.
type Client struct {
	x      Exchanger
	logger *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithClientLogger sets the client's logger.
func WithClientLogger(l *zap.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient returns a dispatcher that sends every call through x.
func NewClient(x Exchanger, opts ...ClientOption) *Client {
	c := &Client{x: x, logger: Logger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) roundTrip(ctx context.Context, req *Request) (*Response, error) {
	b, err := Marshal(req)
	if err != nil {
		return nil, err
	}
	out, err := c.x.Exchange(ctx, b)
	if err != nil {
		c.logger.Debug("exchange failed", zap.Stringer("op", req.Op), zap.Error(err))
		var e *errors.Error
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, errors.Transport(req.Op.String(), err)
	}
	var resp Response
	if err := Unmarshal(out, &resp); err != nil {
		return nil, err
	}
	if resp.Fault != nil {
		return nil, resp.Fault.Err()
	}
	return &resp, nil
}

func (c *Client) value(ctx context.Context, req *Request) (foreign.Value, error) {
	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return foreign.Value{}, err
	}
	if resp.Value == nil {
		return foreign.Value{}, errors.InvalidData(errors.PhaseDecode, "response carries no value")
	}
	return resp.Value.Decode(), nil
}

func (c *Client) ref(ctx context.Context, req *Request) (foreign.Ref, error) {
	resp, err := c.roundTrip(ctx, req)
	if err != nil {
		return 0, err
	}
	return foreign.Ref(resp.Ref), nil
}

func (c *Client) NewObject(ctx context.Context, class, sig string, args []foreign.Value) (foreign.Ref, error) {
	return c.ref(ctx, &Request{Op: OpNewObject, Class: class, Sig: sig, Args: encodeArgs(args)})
}

func (c *Client) CallMethod(ctx context.Context, obj foreign.Ref, name, sig string, args []foreign.Value) (foreign.Value, error) {
	return c.value(ctx, &Request{Op: OpCallMethod, Obj: uint32(obj), Member: name, Sig: sig, Args: encodeArgs(args)})
}

func (c *Client) CallStaticMethod(ctx context.Context, class, name, sig string, args []foreign.Value) (foreign.Value, error) {
	return c.value(ctx, &Request{Op: OpCallStatic, Class: class, Member: name, Sig: sig, Args: encodeArgs(args)})
}

func (c *Client) GetField(ctx context.Context, obj foreign.Ref, name, sig string) (foreign.Value, error) {
	return c.value(ctx, &Request{Op: OpGetField, Obj: uint32(obj), Member: name, Sig: sig})
}

func (c *Client) GetStaticField(ctx context.Context, class, name, sig string) (foreign.Value, error) {
	return c.value(ctx, &Request{Op: OpGetStaticField, Class: class, Member: name, Sig: sig})
}

func (c *Client) NewArray(ctx context.Context, elem foreign.Kind, length int32) (foreign.Ref, error) {
	return c.ref(ctx, &Request{Op: OpNewArray, Elem: byte(elem), Length: length})
}

func (c *Client) ArrayLength(ctx context.Context, arr foreign.Ref) (int32, error) {
	resp, err := c.roundTrip(ctx, &Request{Op: OpArrayLength, Obj: uint32(arr)})
	if err != nil {
		return 0, err
	}
	return resp.Length, nil
}

func (c *Client) SetByteArrayRegion(ctx context.Context, arr foreign.Ref, start int32, buf []int8) error {
	_, err := c.roundTrip(ctx, &Request{Op: OpSetByteRegion, Obj: uint32(arr), Start: start, Bytes: foreign.UnsignedBytes(buf)})
	return err
}

func (c *Client) GetByteArrayRegion(ctx context.Context, arr foreign.Ref, start int32, buf []int8) error {
	resp, err := c.roundTrip(ctx, &Request{Op: OpGetByteRegion, Obj: uint32(arr), Start: start, Length: int32(len(buf))})
	if err != nil {
		return err
	}
	if len(resp.Bytes) != len(buf) {
		return errors.InvalidData(errors.PhaseDecode, "byte region length does not match request")
	}
	for i, b := range resp.Bytes {
		buf[i] = int8(b)
	}
	return nil
}

func (c *Client) SetFloatArrayRegion(ctx context.Context, arr foreign.Ref, start int32, buf []float32) error {
	_, err := c.roundTrip(ctx, &Request{Op: OpSetFloatRegion, Obj: uint32(arr), Start: start, Floats: buf})
	return err
}

func (c *Client) NewString(ctx context.Context, s string) (foreign.Ref, error) {
	return c.ref(ctx, &Request{Op: OpNewString, Str: s})
}

func (c *Client) GetString(ctx context.Context, str foreign.Ref) (string, error) {
	resp, err := c.roundTrip(ctx, &Request{Op: OpGetString, Obj: uint32(str)})
	if err != nil {
		return "", err
	}
	return resp.Str, nil
}

var _ foreign.Dispatcher = (*Client)(nil)
