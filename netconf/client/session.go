package client

import (
	"context"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/damianoneill/ncclient/netconf/common/codec"
	"github.com/damianoneill/ncclient/netconf/ops"
	"github.com/damianoneill/ncclient/netconf/rfc6242"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// The Message layer defines a set of base protocol operations
// invoked as RPC methods with XML-encoded parameters.

var (
	// ErrAlreadyConnected is returned by Connect on a session that has been connected before.
	ErrAlreadyConnected = errors.New("session already connected")
	// ErrNotConnected is returned when an operation needs a transport the session does not have.
	ErrNotConnected = errors.New("session not connected")
	// ErrNoCommonBase is returned by Hello when client and server share no base protocol version.
	ErrNoCommonBase = errors.New("no common base capability")
	// ErrSessionNotInitiated is returned when capabilities are validated before the hello exchange.
	ErrSessionNotInitiated = errors.New("session not initiated")
	// ErrReplyTimeout is returned when the server does not reply in time. The session is closed.
	ErrReplyTimeout = errors.New("timed out waiting for reply")
)

// State is the lifecycle stage of a session.
type State int

const (
	Unconnected State = iota
	Connected
	Active
	Closed
)

func (s State) String() string {
	switch s {
	case Unconnected:
		return "Unconnected"
	case Connected:
		return "Connected"
	case Active:
		return "Active"
	case Closed:
		return "Closed"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// RawReply is the raw outcome of an rpc exchange.
type RawReply struct {
	MessageID  string
	RequestXML string
	ReplyXML   string
}

// Reply is the typed outcome of an rpc exchange, carrying the raw xml exchanged.
type Reply[R ops.Response] struct {
	Result     R
	RequestXML string
	ReplyXML   string
}

//go:generate mockgen -destination=mocks/mock_session.go -package=mocks github.com/damianoneill/ncclient/netconf/client Session

// Session represents a Netconf Session
type Session interface {
	// Connect opens the transport to the server.
	Connect(ctx context.Context) error

	// Hello exchanges hello messages with the server and negotiates the base protocol version.
	// The reply carries both hello messages.
	Hello(ctx context.Context) (*Reply[*ops.HelloResponse], error)

	// NewMessageID delivers the next message id of the session.
	NewMessageID() string

	// Execute validates the request against the server capabilities, sends it and waits for the reply.
	// The reply is returned unparsed; Dispatch delivers it typed.
	Execute(ctx context.Context, req ops.Request) (*RawReply, error)

	// Lock issues a lock request on the target configuration.
	Lock(ctx context.Context, target common.Datastore) (*Reply[*ops.OkResponse], error)

	// Unlock issues an unlock request on the target configuration.
	Unlock(ctx context.Context, target common.Datastore) (*Reply[*ops.OkResponse], error)

	// Get issues a get request, with an optional filter.
	Get(ctx context.Context, filter *common.Filter) (*Reply[*ops.DataResponse], error)

	// GetConfig issues a get-config request on the source configuration, with an optional filter.
	GetConfig(ctx context.Context, source common.Datastore, filter *common.Filter) (*Reply[*ops.DataResponse], error)

	// EditConfig issues an edit-config request.
	EditConfig(ctx context.Context, req *ops.EditConfigRequest) (*Reply[*ops.OkResponse], error)

	// CopyConfig issues a copy-config request.
	CopyConfig(ctx context.Context, source, target common.ConfigWaypoint) (*Reply[*ops.OkResponse], error)

	// DeleteConfig issues a delete-config request.
	DeleteConfig(ctx context.Context, target common.ConfigWaypoint) (*Reply[*ops.OkResponse], error)

	// KillSession issues a kill session request for the specified session id.
	KillSession(ctx context.Context, id uint32) (*Reply[*ops.OkResponse], error)

	// Commit issues a commit request.
	Commit(ctx context.Context) (*Reply[*ops.OkResponse], error)

	// ConfirmedCommit issues a confirmed commit request.
	ConfirmedCommit(ctx context.Context, params ops.ConfirmedCommitParams) (*Reply[*ops.OkResponse], error)

	// DiscardChanges issues a discard changes request.
	DiscardChanges(ctx context.Context) (*Reply[*ops.OkResponse], error)

	// CancelCommit issues a cancel-commit request.
	CancelCommit(ctx context.Context, persistID string) (*Reply[*ops.OkResponse], error)

	// Validate issues a validate request.
	Validate(ctx context.Context, source ops.ValidateSource) (*Reply[*ops.OkResponse], error)

	// CloseSession issues a close session request, disconnecting on success.
	CloseSession(ctx context.Context) (*Reply[*ops.OkResponse], error)

	// Close closes the session and releases any associated resources.
	// An active session is closed gracefully first. Failures are reported to the Error trace hook.
	Close()

	// SetValidateCapabilities enables or disables the validation of requests against the
	// server capabilities.
	SetValidateCapabilities(validate bool)

	// ID delivers the server-allocated id of the session, zero before the hello exchange.
	ID() uint32

	// ServerCapabilities delivers the server-supplied capabilities.
	ServerCapabilities() common.Capabilities

	// ClientCapabilities delivers the capabilities advertised by the client.
	ClientCapabilities() common.Capabilities

	// BaseCapability delivers the negotiated base protocol version.
	BaseCapability() common.Capability

	// State delivers the lifecycle stage of the session.
	State() State
}

type sesImpl struct {
	cfg     *Config
	target  string
	factory TransportFactory
	trace   *ClientTrace

	// Serialises connect, hello and rpc exchanges.
	reqLock sync.Mutex

	t   Transport
	dec *codec.Decoder
	enc *codec.Encoder

	lastMessageID uint32

	// Guards the fields below.
	lock       sync.RWMutex
	state      State
	sessionID  uint32
	clientCaps common.Capabilities
	serverCaps common.Capabilities
	base       common.Capability
	validate   bool
}

// NewSession creates a new Netconf session that will connect to target over ssh, advertising
// the given client capabilities. The session is returned Unconnected.
func NewSession(ctx context.Context, target string, sshcfg *ssh.ClientConfig, caps common.Capabilities, cfg *Config) Session {
	cfg = resolveConfig(cfg)
	dialer := NewDialer(target, sshcfg)
	factory := func(ctx context.Context) (Transport, error) {
		return NewSSHTransport(ctx, dialer, target, cfg)
	}
	return NewSessionWithDialer(ctx, target, factory, caps, cfg)
}

// NewSessionWithDialer creates a new Netconf session whose transport is opened by factory.
func NewSessionWithDialer(ctx context.Context, target string, factory TransportFactory, caps common.Capabilities,
	cfg *Config,
) Session {
	if len(caps) == 0 {
		caps = common.Capabilities{common.Base}
	}
	return &sesImpl{
		cfg:        resolveConfig(cfg),
		target:     target,
		factory:    factory,
		trace:      ContextClientTrace(ctx),
		state:      Unconnected,
		clientCaps: append(common.Capabilities(nil), caps...),
		base:       common.Base,
		validate:   true,
	}
}

func (si *sesImpl) Connect(ctx context.Context) (err error) {
	si.reqLock.Lock()
	defer si.reqLock.Unlock()

	if si.ID() != 0 || si.State() != Unconnected {
		return errors.Wrapf(ErrAlreadyConnected, "session is %s", si.State())
	}

	si.trace.ConnectStart(si.target)
	defer func(begin time.Time) {
		si.trace.ConnectDone(si.target, err, time.Since(begin))
	}(time.Now())

	// The dial, ssh handshake and subsystem request share the setup timeout.
	ctx, cancel := context.WithTimeout(ctx, si.cfg.setupTimeout())
	defer cancel()

	t, err := si.factory(ctx)
	if err != nil {
		si.trace.Error("Failed to connect", si.target, err)
		return err
	}

	si.t = t
	si.dec = codec.NewDecoder(t,
		rfc6242.WithScannerBufferSize(si.cfg.ReadBufferSize),
		rfc6242.WithMaximumMessageSize(si.cfg.MaxMessageSize))
	si.enc = codec.NewEncoder(t)
	si.setState(Connected)
	return nil
}

func (si *sesImpl) Hello(ctx context.Context) (*Reply[*ops.HelloResponse], error) {
	si.reqLock.Lock()
	defer si.reqLock.Unlock()

	if state := si.State(); state != Connected {
		return nil, errors.Wrapf(ErrNotConnected, "hello requires a connected session, session is %s", state)
	}

	req := &ops.HelloRequest{Capabilities: si.ClientCapabilities()}
	msg, err := req.Marshal()
	if err != nil {
		return nil, err
	}

	raw, err := si.exchange(ctx, msg, si.cfg.setupTimeout())
	if err != nil {
		si.trace.Error("Failed to receive hello", si.target, err)
		return nil, errors.Wrap(err, "hello exchange failed")
	}

	hello, err := ops.ParseHello(raw)
	if err != nil {
		si.trace.Error("Failed to parse hello", si.target, err)
		si.disconnect()
		return nil, err
	}

	base, err := negotiateBase(si.ClientCapabilities(), hello.Capabilities)
	if err != nil {
		si.trace.Error("Failed to negotiate base", si.target, err)
		si.disconnect()
		return nil, err
	}

	if base.Kind == common.KindBase11 {
		// Update the codec to use chunked framing from now.
		codec.EnableChunkedFraming(si.dec, si.enc)
	}

	si.lock.Lock()
	si.sessionID = hello.SessionID
	si.serverCaps = hello.Capabilities
	si.base = base
	si.state = Active
	si.lock.Unlock()

	si.trace.HelloDone(si.target, hello)
	return &Reply[*ops.HelloResponse]{Result: hello, RequestXML: msg, ReplyXML: raw}, nil
}

// negotiateBase picks the highest base protocol version advertised by both peers.
func negotiateBase(client, server common.Capabilities) (common.Capability, error) {
	for _, c := range []common.Capability{common.Base11, common.Base} {
		if client.ContainsKind(c.Kind) && server.ContainsKind(c.Kind) {
			return c, nil
		}
	}
	return common.Capability{}, errors.Wrapf(ErrNoCommonBase, "client %v, server %v",
		client.Strings(), server.Strings())
}

func (si *sesImpl) NewMessageID() string {
	for {
		last := atomic.LoadUint32(&si.lastMessageID)
		next := last
		if last < math.MaxUint32 {
			next = last + 1
		}
		if atomic.CompareAndSwapUint32(&si.lastMessageID, last, next) {
			return strconv.FormatUint(uint64(next), 10)
		}
	}
}

func (si *sesImpl) Execute(ctx context.Context, req ops.Request) (reply *RawReply, err error) {
	si.reqLock.Lock()
	defer si.reqLock.Unlock()

	var messageID string
	si.trace.ExecuteStart(req)
	defer func(begin time.Time) {
		si.trace.ExecuteDone(req, messageID, err, time.Since(begin))
	}(time.Now())

	si.lock.RLock()
	validate, caps, state := si.validate, si.serverCaps, si.state
	si.lock.RUnlock()

	if validate {
		if caps == nil {
			return nil, errors.Wrapf(ErrSessionNotInitiated, "cannot validate <%s> before hello", req.Name())
		}
		if err = req.ValidateRequest(caps); err != nil {
			return nil, err
		}
	}

	if state != Active {
		return nil, errors.Wrapf(ErrNotConnected, "cannot send <%s>, session is %s", req.Name(), state)
	}

	messageID = si.NewMessageID()
	msg, err := req.MarshalRPC(messageID)
	if err != nil {
		return nil, err
	}

	raw, err := si.exchange(ctx, msg, si.cfg.replyTimeout())
	if err != nil {
		si.trace.Error("Failed to execute "+req.Name(), si.target, err)
		return nil, err
	}
	return &RawReply{MessageID: messageID, RequestXML: msg, ReplyXML: raw}, nil
}

// exchange writes msg and waits for the next message from the server. Any failure leaves the framing
// state of the transport unknown, so the session is closed.
func (si *sesImpl) exchange(ctx context.Context, msg string, timeout time.Duration) (string, error) {
	type result struct {
		msg string
		err error
	}
	done := make(chan result, 1)
	go func() {
		if err := si.enc.Encode(msg); err != nil {
			done <- result{err: errors.Wrap(err, "failed to send message")}
			return
		}
		raw, err := si.dec.Decode()
		if err != nil {
			err = errors.Wrap(err, "failed to receive message")
		}
		done <- result{msg: raw, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var r result
	select {
	case r = <-done:
	case <-timer.C:
		r.err = errors.Wrapf(ErrReplyTimeout, "no message from %s within %s", si.target, timeout)
	case <-ctx.Done():
		r.err = errors.Wrap(ctx.Err(), "abandoned waiting for message")
	}
	if r.err != nil {
		si.disconnect()
	}
	return r.msg, r.err
}

// disconnect closes the transport, if any, and marks the session closed.
func (si *sesImpl) disconnect() {
	si.setState(Closed)
	if si.t == nil {
		return
	}
	if err := si.t.Close(); err != nil {
		si.trace.Error("Transport close failed", si.target, err)
	}
	si.t = nil
}

// Dispatch executes the operation on the session and parses the reply.
// An rpc-error in the reply is delivered in the result, not as an error.
func Dispatch[R ops.Response](ctx context.Context, s Session, op ops.Operation[R]) (*Reply[R], error) {
	raw, err := s.Execute(ctx, op)
	if err != nil {
		return nil, err
	}
	result, err := op.ParseReply(raw.ReplyXML)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse reply to <%s>", op.Name())
	}
	return &Reply[R]{Result: result, RequestXML: raw.RequestXML, ReplyXML: raw.ReplyXML}, nil
}

func (si *sesImpl) Lock(ctx context.Context, target common.Datastore) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.LockRequest{Target: target})
}

func (si *sesImpl) Unlock(ctx context.Context, target common.Datastore) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.UnlockRequest{Target: target})
}

func (si *sesImpl) Get(ctx context.Context, filter *common.Filter) (*Reply[*ops.DataResponse], error) {
	return Dispatch[*ops.DataResponse](ctx, si, &ops.GetRequest{Filter: filter})
}

func (si *sesImpl) GetConfig(ctx context.Context, source common.Datastore, filter *common.Filter) (*Reply[*ops.DataResponse], error) {
	return Dispatch[*ops.DataResponse](ctx, si, &ops.GetConfigRequest{Source: source, Filter: filter})
}

func (si *sesImpl) EditConfig(ctx context.Context, req *ops.EditConfigRequest) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, req)
}

func (si *sesImpl) CopyConfig(ctx context.Context, source, target common.ConfigWaypoint) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.CopyConfigRequest{Target: target, Source: source})
}

func (si *sesImpl) DeleteConfig(ctx context.Context, target common.ConfigWaypoint) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.DeleteConfigRequest{Target: target})
}

func (si *sesImpl) KillSession(ctx context.Context, id uint32) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.KillSessionRequest{SessionID: id})
}

func (si *sesImpl) Commit(ctx context.Context) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.CommitRequest{})
}

func (si *sesImpl) ConfirmedCommit(ctx context.Context, params ops.ConfirmedCommitParams) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.CommitRequest{Confirmed: &params})
}

func (si *sesImpl) DiscardChanges(ctx context.Context) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.DiscardChangesRequest{})
}

func (si *sesImpl) CancelCommit(ctx context.Context, persistID string) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.CancelCommitRequest{PersistID: persistID})
}

func (si *sesImpl) Validate(ctx context.Context, source ops.ValidateSource) (*Reply[*ops.OkResponse], error) {
	return Dispatch[*ops.OkResponse](ctx, si, &ops.ValidateRequest{Source: source})
}

func (si *sesImpl) CloseSession(ctx context.Context) (*Reply[*ops.OkResponse], error) {
	reply, err := Dispatch[*ops.OkResponse](ctx, si, &ops.CloseSessionRequest{})
	if err != nil {
		return nil, err
	}
	if reply.Result.Ok {
		si.reqLock.Lock()
		si.disconnect()
		si.reqLock.Unlock()
	}
	return reply, nil
}

func (si *sesImpl) Close() {
	if si.State() == Active {
		ctx, cancel := context.WithTimeout(context.Background(), si.cfg.setupTimeout())
		if _, err := si.CloseSession(ctx); err != nil {
			si.trace.Error("Session close failed", si.target, err)
		}
		cancel()
	}

	si.reqLock.Lock()
	defer si.reqLock.Unlock()
	si.disconnect()
}

func (si *sesImpl) SetValidateCapabilities(validate bool) {
	si.lock.Lock()
	defer si.lock.Unlock()
	si.validate = validate
}

func (si *sesImpl) ID() uint32 {
	si.lock.RLock()
	defer si.lock.RUnlock()
	return si.sessionID
}

func (si *sesImpl) ServerCapabilities() common.Capabilities {
	si.lock.RLock()
	defer si.lock.RUnlock()
	return si.serverCaps
}

func (si *sesImpl) ClientCapabilities() common.Capabilities {
	si.lock.RLock()
	defer si.lock.RUnlock()
	return si.clientCaps
}

func (si *sesImpl) BaseCapability() common.Capability {
	si.lock.RLock()
	defer si.lock.RUnlock()
	return si.base
}

func (si *sesImpl) State() State {
	si.lock.RLock()
	defer si.lock.RUnlock()
	return si.state
}

func (si *sesImpl) setState(s State) {
	si.lock.Lock()
	defer si.lock.Unlock()
	si.state = s
}
