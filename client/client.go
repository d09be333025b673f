// Package client exposes the HRD partner API operations on top of a
// session.Session.
package client

import (
	"context"
	"strconv"
	"sync"

	"github.com/jakub-gawryl/hrdapi/apierr"
	"github.com/jakub-gawryl/hrdapi/envelope"
	"github.com/jakub-gawryl/hrdapi/session"
	"github.com/pkg/errors"
)

// ErrUnsupported is returned by the GetInstance methods
var ErrUnsupported = errors.New("client: unsupported method, use Login instead")

// Client is an HRD API client
type Client struct {
	session *session.Session

	mu    sync.Mutex
	token string
}

// New returns a new Client sending requests through s
func New(s *session.Session) *Client { return &Client{session: s} }

// Session returns the client's session
func (c *Client) Session() *session.Session { return c.session }

// Login logs in to the API. It must be called once before any other
// operation, as it also sets the session's shared key.
func (c *Client) Login(ctx context.Context, cred session.Credential) (string, error) {
	token, err := c.session.Login(ctx, cred)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return token, nil
}

// Token returns the token issued by the last successful Login
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// GetInstance is not supported; use Login.
func (c *Client) GetInstance() (string, error) { return "", ErrUnsupported }

// GetInstanceByPass is not supported; use Login.
func (c *Client) GetInstanceByPass() (string, error) { return "", ErrUnsupported }

// GetInstanceByToken is not supported; use Login.
func (c *Client) GetInstanceByToken() (string, error) { return "", ErrUnsupported }

// call encodes a single operation, sends it and decodes the reply
func (c *Client) call(ctx context.Context, module, method string, params envelope.Value) (envelope.Value, error) {
	req, err := envelope.Encode(envelope.Map(envelope.F(module, envelope.Map(envelope.F(method, params)))))
	if err != nil {
		return envelope.Value{}, err
	}
	raw, err := c.session.Send(ctx, req)
	if err != nil {
		return envelope.Value{}, err
	}
	return envelope.Decode(raw)
}

// narrowError reports a reply which lacks the fields op returns,
// carrying the reply's message, if any.
func narrowError(op string, reply envelope.Value, what string) error {
	if msg, ok := textField(reply, "message"); ok {
		what += " (" + msg + ")"
	}
	return apierr.Envelope(apierr.WithOp(op), apierr.WithMessage(what))
}

func textField(v envelope.Value, names ...string) (string, bool) {
	f, ok := v.Path(names...)
	if !ok {
		return "", false
	}
	return f.Text()
}

func floatField(v envelope.Value, name string) (float64, bool, error) {
	s, ok := textField(v, name)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, true, err
}
