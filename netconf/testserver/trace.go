package testserver

import (
	"context"
	"net"

	"github.com/imdario/mergo"
	"github.com/sirupsen/logrus"
)

// unique type to prevent assignment.
type serverEventContextKey struct{}

// ContextTrace returns the Trace associated with the
// provided context, with any undefined hooks set to do nothing.
// If none, it returns NoOpLoggingHooks.
func ContextTrace(ctx context.Context) *Trace {
	trace, _ := ctx.Value(serverEventContextKey{}).(*Trace)
	if trace == nil {
		return NoOpLoggingHooks
	}
	resolved := *trace
	_ = mergo.Merge(&resolved, NoOpLoggingHooks)
	return &resolved
}

// WithTrace returns a new context based on the provided parent
// ctx. Servers created with the returned context will use
// the provided trace hooks
func WithTrace(ctx context.Context, trace *Trace) context.Context {
	return context.WithValue(ctx, serverEventContextKey{}, trace)
}

// Trace defines a structure for handling trace events
type Trace struct {
	// Listened is called when a Listen() call completes, with err indicating
	// whether it was successful.
	Listened func(address string, err error)

	// StartAccepting is called when starting to accept connections.
	StartAccepting func()

	// Accepted is called when an Accept() call completes, with err indicating
	// whether it was successful.
	Accepted func(conn net.Conn, err error)

	// NewServerConn is called when a NewServerConn() call completes, with err indicating
	// whether it was successful.
	NewServerConn func(conn net.Conn, err error)

	// SSHChannelAccept is called when a ssh channel Accept() call completes, with err indicating
	// whether it was successful.
	SSHChannelAccept func(conn net.Conn, err error)

	// SubsystemRequestReply is called when a channel request Reply call completes.
	SubsystemRequestReply func(reqType string, err error)

	StartSession func(s *SessionHandler)
	EndSession   func(s *SessionHandler, err error)
	ClientHello  func(s *SessionHandler)
	Encoded      func(s *SessionHandler, err error)
	Decoded      func(s *SessionHandler, err error)
}

// DefaultLoggingHooks provides a default logging hook to report errors.
var DefaultLoggingHooks = &Trace{
	Listened: func(address string, err error) {
		if err != nil {
			logrus.WithField("address", address).WithError(err).Error("Listen")
		}
	},
	NewServerConn: func(conn net.Conn, err error) {
		if err != nil {
			logrus.WithField("remote", conn.RemoteAddr()).WithError(err).Error("NewServerConn")
		}
	},
	EndSession: func(s *SessionHandler, err error) {
		if err != nil {
			logrus.WithField("session-id", s.sid).WithError(err).Error("EndSession")
		}
	},
	Encoded: func(s *SessionHandler, err error) {
		if err != nil {
			logrus.WithField("session-id", s.sid).WithError(err).Error("Encoded")
		}
	},
}

// DiagnosticLoggingHooks provides a set of default diagnostic hooks
var DiagnosticLoggingHooks = &Trace{
	Listened: func(address string, err error) {
		logrus.WithField("address", address).WithError(err).Debug("Listen")
	},
	StartAccepting: func() {
		logrus.Debug("Start Accepting")
	},
	Accepted: func(conn net.Conn, err error) {
		logrus.WithError(err).Debug("Accept")
	},
	NewServerConn: DefaultLoggingHooks.NewServerConn,
	SubsystemRequestReply: func(reqType string, err error) {
		logrus.WithField("type", reqType).WithError(err).Debug("SubsystemRequestReply")
	},
	StartSession: func(s *SessionHandler) {
		logrus.WithField("session-id", s.sid).Debug("StartSession")
	},
	EndSession: func(s *SessionHandler, err error) {
		logrus.WithField("session-id", s.sid).WithError(err).Debug("EndSession")
	},
	ClientHello: func(s *SessionHandler) {
		logrus.WithFields(logrus.Fields{"session-id": s.sid, "hello": s.ClientHello}).Debug("ClientHello")
	},
	Encoded: DefaultLoggingHooks.Encoded,
}

// NoOpLoggingHooks provides set of hooks that do nothing.
var NoOpLoggingHooks = &Trace{
	Listened:              func(address string, err error) {},
	StartAccepting:        func() {},
	Accepted:              func(conn net.Conn, err error) {},
	NewServerConn:         func(conn net.Conn, err error) {},
	SSHChannelAccept:      func(conn net.Conn, err error) {},
	SubsystemRequestReply: func(reqType string, err error) {},
	StartSession:          func(s *SessionHandler) {},
	EndSession:            func(s *SessionHandler, err error) {},
	ClientHello:           func(s *SessionHandler) {},
	Encoded:               func(s *SessionHandler, err error) {},
	Decoded:               func(s *SessionHandler, err error) {},
}
