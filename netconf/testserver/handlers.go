package testserver

import (
	"github.com/damianoneill/ncclient/netconf/common"
)

// RequestHandler is a function type that will be invoked by the session handler to handle an RPC
// request.
type RequestHandler func(h *SessionHandler, req *RPCRequestMessage)

// DefaultRequestHandler handles a request when no queued handler remains: retrievals are echoed,
// close-session ends the session and everything else is acknowledged with <ok/>.
var DefaultRequestHandler = func(h *SessionHandler, req *RPCRequestMessage) {
	switch req.Request.XMLName.Local {
	case "get", "get-config":
		EchoRequestHandler(h, req)
	case "close-session":
		CloseSessionRequestHandler(h, req)
	default:
		OkRequestHandler(h, req)
	}
}

// EchoRequestHandler responds to a request with a reply containing a data element holding
// the body of the request.
var EchoRequestHandler = func(h *SessionHandler, req *RPCRequestMessage) {
	h.reply(&RPCReplyMessage{MessageID: req.MessageID, Data: &ReplyData{Data: req.Request.Body}})
}

// OkRequestHandler responds to a request with an <ok/> reply.
var OkRequestHandler = func(h *SessionHandler, req *RPCRequestMessage) {
	h.reply(&RPCReplyMessage{MessageID: req.MessageID, Ok: &struct{}{}})
}

// DataRequestHandler delivers a handler that responds with a data element holding the supplied content.
func DataRequestHandler(content string) RequestHandler {
	return func(h *SessionHandler, req *RPCRequestMessage) {
		h.reply(&RPCReplyMessage{MessageID: req.MessageID, Data: &ReplyData{Data: content}})
	}
}

// ErrorRequestHandler delivers a handler that responds with the supplied rpc-errors.
func ErrorRequestHandler(errs ...common.RPCError) RequestHandler {
	return func(h *SessionHandler, req *RPCRequestMessage) {
		h.reply(&RPCReplyMessage{MessageID: req.MessageID, Errors: errs})
	}
}

// FailingRequestHandler replies to a request with an error.
var FailingRequestHandler = ErrorRequestHandler(common.RPCError{
	Type:     common.ApplicationError,
	Tag:      "operation-failed",
	Severity: common.SeverityError,
	Message:  "oops",
})

// CloseSessionRequestHandler acknowledges the request and then closes the transport channel.
var CloseSessionRequestHandler = func(h *SessionHandler, req *RPCRequestMessage) {
	OkRequestHandler(h, req)
	h.Close()
}

// CloseRequestHandler closes the transport channel on request receipt.
var CloseRequestHandler = func(h *SessionHandler, req *RPCRequestMessage) {
	h.Close()
}

// IgnoreRequestHandler does nothing on receipt of a request.
var IgnoreRequestHandler = func(h *SessionHandler, req *RPCRequestMessage) {}
