package session

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/jakub-gawryl/hrdapi/apierr"
	"github.com/jakub-gawryl/hrdapi/convert"
	"github.com/jakub-gawryl/hrdapi/envelope"
	"github.com/jakub-gawryl/hrdapi/transport"
	"github.com/pkg/errors"
)

// DefaultAddress is the HRD API endpoint
const DefaultAddress = "api.hrd.pl:9999"

// ErrNoSharedKey is returned by Send when neither Login nor SetSharedKey
// has been called.
var ErrNoSharedKey = errors.New("session: no shared key set")

// Config contains Session configuration
type Config struct {
	// Address is the host:port to dial. Defaults to DefaultAddress.
	Address string
	// TLSConfig is used by the default dialer. nil verifies the server
	// certificate against the host of Address.
	TLSConfig *tls.Config
	// Dialer opens connections. Defaults to a TLS dialer using TLSConfig.
	Dialer transport.Dialer
	// ConnectTimeout bounds dialing and the TLS handshake. Zero disables it.
	ConnectTimeout time.Duration
	// ReplyTimeout bounds writing the request and reading the reply.
	// Zero disables it.
	ReplyTimeout time.Duration
	// MaxFrameSize is the largest reply length accepted. Zero selects
	// framing.DefaultMaxFrameSize.
	MaxFrameSize uint32
	// WaitForSlot queues a Send made while another exchange is in
	// flight instead of rejecting it.
	WaitForSlot bool
	// UntaggedReplies reads replies made of the length prefix and
	// payload only.
	UntaggedReplies bool
}

// Credential holds partner login details. Hash is the hex encoded
// shared secret.
type Credential struct {
	Login string
	Pass  string
	Hash  string
}

// Counters contains session counters
type Counters struct {
	// Connects is the number of connections established
	Connects int
	// Exchanges is the number of exchanges attempted
	Exchanges int
	// Failures is the number of exchanges which returned an error
	Failures int
}

// Session is an HRD API session
type Session struct {
	config Config
	slot   chan struct{}

	mu       sync.Mutex
	status   Status
	conn     net.Conn
	key      []byte
	pending  uuid.UUID
	inFlight bool
	counters Counters
}

// New returns a new Session
func New(config Config) *Session {
	if config.Address == "" {
		config.Address = DefaultAddress
	}
	if config.Dialer == nil {
		config.Dialer = transport.NewTLSDialer(config.TLSConfig, config.ConnectTimeout)
	}
	return &Session{config: config, slot: make(chan struct{}, 1)}
}

// SetSharedKey sets the key used to tag requests from its hex encoding.
func (s *Session) SetSharedKey(hash string) error {
	key, err := convert.HexDecode(hash)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.key = key
	s.mu.Unlock()
	return nil
}

// Login sets the shared key from cred and performs the login exchange,
// returning the session token issued by the API.
func (s *Session) Login(ctx context.Context, cred Credential) (string, error) {
	if err := s.SetSharedKey(cred.Hash); err != nil {
		return "", errors.Wrap(err, "session: login")
	}
	req, err := envelope.Encode(envelope.Map(envelope.F("login", envelope.Map(
		envelope.F("login", envelope.Text(cred.Login)),
		envelope.F("pass", envelope.Text(cred.Pass)),
		envelope.F("type", envelope.Text("partnerApi")),
	))))
	if err != nil {
		return "", err
	}
	raw, err := s.Send(ctx, req)
	if err != nil {
		return "", err
	}
	reply, err := envelope.Decode(raw)
	if err != nil {
		return "", err
	}
	if token, ok := textField(reply, "token"); ok {
		glog.V(1).Infof("session: logged in as %q", cred.Login)
		return token, nil
	}
	msg := "login failed"
	if m, ok := textField(reply, "message"); ok {
		msg += " (" + m + ")"
	}
	return "", apierr.Authentication(apierr.WithOp("login"), apierr.WithMessage(msg))
}

func textField(v envelope.Value, name string) (string, bool) {
	f, ok := v.Field(name)
	if !ok {
		return "", false
	}
	return f.Text()
}

// Send performs one exchange: it connects, writes payload as a tagged
// message, reads one reply and returns the reply payload. The
// connection is closed before Send returns.
func (s *Session) Send(ctx context.Context, payload []byte) ([]byte, error) {
	s.mu.Lock()
	key := s.key
	s.mu.Unlock()
	if len(key) == 0 {
		return nil, ErrNoSharedKey
	}

	id, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release()

	reply, err := s.exchange(ctx, id, key, payload)
	s.mu.Lock()
	s.counters.Exchanges++
	if err != nil {
		s.counters.Failures++
	}
	s.mu.Unlock()
	if err != nil {
		glog.V(1).Infof("session: exchange %s failed: %v", id, err)
		return nil, err
	}
	return reply, nil
}

// Status returns the session status
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Pending returns the id of the exchange in flight, if any
func (s *Session) Pending() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.inFlight
}

// Stats returns a snapshot of the session counters
func (s *Session) Stats() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

// Close closes the open connection, if any. An exchange in flight
// fails with a transport error.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Session) acquire(ctx context.Context) (uuid.UUID, error) {
	select {
	case s.slot <- struct{}{}:
	default:
		if !s.config.WaitForSlot {
			busy, _ := s.Pending()
			return uuid.Nil, apierr.Busy(apierr.WithOp("send"),
				apierr.WithMessage("exchange "+busy.String()+" in flight"))
		}
		select {
		case s.slot <- struct{}{}:
		case <-ctx.Done():
			return uuid.Nil, errors.Wrap(ctx.Err(), "session: wait for slot")
		}
	}
	id := uuid.New()
	s.mu.Lock()
	s.pending, s.inFlight = id, true
	s.mu.Unlock()
	return id, nil
}

func (s *Session) release() {
	s.mu.Lock()
	s.pending, s.inFlight = uuid.Nil, false
	s.mu.Unlock()
	<-s.slot
}

func (s *Session) exchange(ctx context.Context, id uuid.UUID, key, payload []byte) ([]byte, error) {
	conn, err := s.connect(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.disconnect(conn)
	// cancellation closes the socket so a late reply cannot be read by
	// a later exchange
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if d := s.config.ReplyTimeout; d > 0 {
		if err := conn.SetDeadline(time.Now().Add(d)); err != nil {
			return nil, classify(ctx, "send", err)
		}
	}
	n, err := transport.NewWriter(conn, key).WriteMessage(payload)
	if err != nil {
		return nil, classify(ctx, "send", err)
	}
	glog.V(2).Infof("session: exchange %s wrote %d bytes", id, n)

	r := transport.NewReader(conn,
		transport.WithMaxFrameSize(s.config.MaxFrameSize),
		transport.WithUntaggedFrames(s.config.UntaggedReplies))
	reply, err := r.ReadMessage()
	if err != nil {
		return nil, classify(ctx, "receive", err)
	}
	glog.V(2).Infof("session: exchange %s read %d byte reply", id, len(reply))
	return reply, nil
}

func (s *Session) connect(ctx context.Context, id uuid.UUID) (net.Conn, error) {
	s.mu.Lock()
	s.setStatus(StatusConnecting)
	s.mu.Unlock()

	dctx := ctx
	if d := s.config.ConnectTimeout; d > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	glog.V(1).Infof("session: exchange %s connecting to %s", id, s.config.Address)
	conn, err := s.config.Dialer.DialContext(dctx, "tcp", s.config.Address)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.setStatus(StatusFaulted)
		s.setStatus(StatusIdle)
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), "session: connect")
		}
		return nil, apierr.Connect(apierr.WithOp("connect"),
			apierr.WithMessage(s.config.Address), apierr.WithErr(err))
	}
	s.setStatus(StatusConnected)
	s.conn = conn
	s.counters.Connects++
	return conn, nil
}

func (s *Session) disconnect(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != conn {
		// already closed by Close
		return
	}
	if err := s.closeLocked(); err != nil {
		glog.V(1).Infof("session: close: %v", err)
	}
}

// closeLocked closes the open connection. s.mu must be held.
func (s *Session) closeLocked() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	s.setStatus(StatusIdle)
	if errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
		err = nil
	}
	return err
}

// setStatus moves the session to status to. s.mu must be held.
func (s *Session) setStatus(to Status) {
	if !canTransition(s.status, to) {
		panic("session: illegal status transition " + s.status.String() + " -> " + to.String())
	}
	glog.V(2).Infof("session: %v -> %v", s.status, to)
	s.status = to
}

// classify maps an I/O error of an exchange to the error returned by Send.
func classify(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Wrap(ctxErr, "session: "+op)
	}
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return err
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return apierr.Timeout(apierr.WithOp(op), apierr.WithErr(err))
	}
	return apierr.Transport(apierr.WithOp(op), apierr.WithErr(err))
}
