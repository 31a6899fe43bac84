package testserver

import (
	"context"
	"encoding/xml"
	"strconv"
	"sync"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/damianoneill/ncclient/netconf/common/codec"
	assert "github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// Defines credentials used for test sessions.
const (
	TestUserName = "testUser"
	TestPassword = "testPassword"
)

// NCServer represents a test Netconf Server.
// It encapsulates an SSH server, and the session handlers created for each client connection.
type NCServer struct {
	*SSHServer

	tctx assert.TestingT

	mu              sync.Mutex
	sessionHandlers map[uint32]*SessionHandler
	lastSid         uint32
	reqHandlers     []RequestHandler
	caps            []string
}

// SessionHandler represents the server side of an active netconf SSH session.
type SessionHandler struct {
	server *NCServer

	// ch is the underlying transport channel.
	ch ssh.Channel

	// The codecs used to handle client i/o
	enc *codec.Encoder
	dec *codec.Decoder

	// Serialises access to encoder.
	encLock sync.Mutex

	// The capabilities advertised to the client.
	capabilities []string
	// The session id reported to the client.
	sid uint32

	// The HelloMessage sent by the connecting client.
	ClientHello *common.HelloMessage

	reqLock  sync.Mutex
	requests []*RPCRequestMessage
}

// RPCRequestMessage and RPCRequest represent an RPC request from a client, where the element type of the
// request body is unknown.
type RPCRequestMessage struct {
	XMLName   xml.Name
	MessageID string     `xml:"message-id,attr"`
	Request   RPCRequest `xml:",any"`
	Raw       string     `xml:"-"`
}

// RPCRequest describes an RPC request.
type RPCRequest struct {
	XMLName xml.Name
	Body    string `xml:",innerxml"`
}

// RPCReplyMessage and ReplyData represent an rpc-reply message that will be sent to a client session, where the
// element type of the reply body (i.e. the content of the data element) is unknown.
type RPCReplyMessage struct {
	XMLName   xml.Name          `xml:"urn:ietf:params:xml:ns:netconf:base:1.0 rpc-reply"`
	MessageID string            `xml:"message-id,attr"`
	Errors    []common.RPCError `xml:"rpc-error,omitempty"`
	Data      *ReplyData        `xml:"data,omitempty"`
	Ok        *struct{}         `xml:"ok,omitempty"`
}

// ReplyData holds the unparsed content of the data element of a reply.
type ReplyData struct {
	Data string `xml:",innerxml"`
}

// NewTestNetconfServer creates a new TestNCServer that will accept Netconf localhost connections on an ephemeral port
// (available via Port(), with credentials defined by TestUserName and TestPassword.
// tctx will be used for handling failures; if the supplied value is nil, a default test context will be used.
// The behaviour of the Netconf session handler can be controlled by WithRequestHandler and WithCapabilities.
func NewTestNetconfServer(tctx assert.TestingT) *NCServer {
	return NewTestNetconfServerWithTrace(tctx, nil)
}

// NewTestNetconfServerWithTrace creates a test server as NewTestNetconfServer does, reporting server events
// to the supplied trace hooks.
func NewTestNetconfServerWithTrace(tctx assert.TestingT, trace *Trace) *NCServer {
	if tctx == nil {
		// Default test context to built-in implementation.
		tctx = &testContext{}
	}

	ctx := context.Background()
	if trace != nil {
		ctx = WithTrace(ctx, trace)
	}

	ncs := &NCServer{
		tctx:            tctx,
		sessionHandlers: make(map[uint32]*SessionHandler),
		caps:            common.DefaultCapabilities.URNs(),
	}

	sshcfg, err := PasswordConfig(TestUserName, TestPassword)
	assert.NoError(tctx, err, "Failed to generate server configuration")

	ncs.SSHServer, err = NewSSHServer(ctx, "localhost", 0, sshcfg, ncs.handlerFactory())
	assert.NoError(tctx, err, "Failed to create test server")
	return ncs
}

// WithRequestHandler adds a request handler to the queue shared by the server's sessions.
// Handlers are consumed in order, one per request; an empty queue leaves requests to DefaultRequestHandler.
func (ncs *NCServer) WithRequestHandler(rh RequestHandler) *NCServer {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	ncs.reqHandlers = append(ncs.reqHandlers, rh)
	return ncs
}

// WithCapabilities defines the capabilities that the server will advertise when a netconf client connects.
func (ncs *NCServer) WithCapabilities(caps []string) *NCServer {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	ncs.caps = caps
	return ncs
}

// SessionHandler delivers the netconf session handler associated with the specified session id.
func (ncs *NCServer) SessionHandler(id uint32) *SessionHandler {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	return ncs.sessionHandlers[id]
}

// LastHandler delivers the most recently instantiated session handler.
func (ncs *NCServer) LastHandler() *SessionHandler {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	return ncs.sessionHandlers[ncs.lastSid]
}

// Close closes any active transport to the test server and prevents subsequent connections.
func (ncs *NCServer) Close() {
	ncs.mu.Lock()
	for _, v := range ncs.sessionHandlers {
		v.Close()
	}
	ncs.mu.Unlock()
	ncs.SSHServer.Close()
}

func (ncs *NCServer) handlerFactory() HandlerFactory {
	return func(svrconn *ssh.ServerConn) Handler {
		ncs.mu.Lock()
		defer ncs.mu.Unlock()

		ncs.lastSid++
		sh := &SessionHandler{
			server:       ncs,
			sid:          ncs.lastSid,
			capabilities: ncs.caps,
		}
		ncs.sessionHandlers[sh.sid] = sh
		return sh
	}
}

// Handle establishes a Netconf server session on a newly-connected SSH channel.
func (h *SessionHandler) Handle(ch ssh.Channel) {
	h.reqLock.Lock()
	h.ch = ch
	h.reqLock.Unlock()
	h.dec = codec.NewDecoder(ch)
	h.enc = codec.NewEncoder(ch)

	h.server.trace.StartSession(h)

	// Send server hello to client.
	err := h.encodeValue(&common.HelloMessage{
		Xmlns:        common.NetconfNS,
		Capabilities: h.capabilities,
		SessionID:    strconv.FormatUint(uint64(h.sid), 10),
	})
	if err == nil {
		err = h.receiveHello()
	}
	if err == nil {
		h.handleIncomingMessages()
	}
	h.server.trace.EndSession(h, err)
}

// ID delivers the session id reported to the client.
func (h *SessionHandler) ID() uint32 {
	return h.sid
}

// Close initiates session tear-down by closing the underlying transport channel.
func (h *SessionHandler) Close() {
	h.reqLock.Lock()
	ch := h.ch
	h.reqLock.Unlock()
	if ch != nil {
		_ = ch.Close()
	}
}

// ReqCount delivers the number of rpc requests received by the session.
func (h *SessionHandler) ReqCount() int {
	h.reqLock.Lock()
	defer h.reqLock.Unlock()
	return len(h.requests)
}

// LastReq delivers the most recent rpc request received by the session, or nil.
func (h *SessionHandler) LastReq() *RPCRequestMessage {
	h.reqLock.Lock()
	defer h.reqLock.Unlock()
	if len(h.requests) == 0 {
		return nil
	}
	return h.requests[len(h.requests)-1]
}

func (h *SessionHandler) receiveHello() error {
	hello := &common.HelloMessage{}
	_, err := h.dec.DecodeValue(hello)
	h.server.trace.Decoded(h, err)
	if err != nil {
		return err
	}
	h.ClientHello = hello
	h.server.trace.ClientHello(h)

	if common.PeerSupportsChunkedFraming(hello.Capabilities) && common.PeerSupportsChunkedFraming(h.capabilities) {
		// Update the codec to use chunked framing from now.
		codec.EnableChunkedFraming(h.dec, h.enc)
	}
	return nil
}

func (h *SessionHandler) handleIncomingMessages() {
	for {
		raw, err := h.dec.Decode()
		h.server.trace.Decoded(h, err)
		if err != nil {
			return
		}

		req := &RPCRequestMessage{}
		if err := xml.Unmarshal([]byte(raw), req); err != nil {
			h.server.trace.Decoded(h, err)
			continue
		}
		req.Raw = raw

		h.nextReqHandler(req)(h, req)
	}
}

func (h *SessionHandler) nextReqHandler(req *RPCRequestMessage) RequestHandler {
	h.reqLock.Lock()
	h.requests = append(h.requests, req)
	h.reqLock.Unlock()

	return h.server.nextReqHandler()
}

func (ncs *NCServer) nextReqHandler() RequestHandler {
	ncs.mu.Lock()
	defer ncs.mu.Unlock()
	if len(ncs.reqHandlers) == 0 {
		return DefaultRequestHandler
	}
	rh := ncs.reqHandlers[0]
	ncs.reqHandlers = ncs.reqHandlers[1:]
	return rh
}

func (h *SessionHandler) reply(msg *RPCReplyMessage) {
	_ = h.encodeValue(msg)
}

func (h *SessionHandler) encodeValue(m interface{}) error {
	h.encLock.Lock()
	defer h.encLock.Unlock()
	err := h.enc.EncodeValue(m)
	h.server.trace.Encoded(h, err)
	return err
}

type testContext struct{}

func (t *testContext) Errorf(format string, args ...interface{}) {
	panic(append([]interface{}{format}, args...))
}

func (t *testContext) FailNow() {
	panic("test failed")
}
