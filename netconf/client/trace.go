package client

import (
	"context"
	"time"

	"github.com/damianoneill/ncclient/netconf/ops"
	"github.com/imdario/mergo"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

// unique type to prevent assignment.
type clientEventContextKey struct{}

// ContextClientTrace returns the Trace associated with the
// provided context, with any undefined hooks set to do nothing.
// If none, it returns NoOpLoggingHooks.
func ContextClientTrace(ctx context.Context) *ClientTrace {
	trace, _ := ctx.Value(clientEventContextKey{}).(*ClientTrace)
	if trace == nil {
		return NoOpLoggingHooks
	}
	resolved := *trace
	_ = mergo.Merge(&resolved, NoOpLoggingHooks)
	return &resolved
}

// WithClientTrace returns a new context based on the provided parent
// ctx. Netconf client requests made with the returned context will use
// the provided trace hooks
func WithClientTrace(ctx context.Context, trace *ClientTrace) context.Context {
	return context.WithValue(ctx, clientEventContextKey{}, trace)
}

// ClientTrace defines a structure for handling trace events
//
//nolint:revive
type ClientTrace struct {
	// ConnectStart is called when starting to create a netconf connection to a remote server.
	ConnectStart func(target string)

	// ConnectDone is called when the transport connection attempt completes, with err indicating
	// whether it was successful.
	ConnectDone func(target string, err error, d time.Duration)

	// DialStart is called when starting to dial a remote server.
	DialStart func(clientConfig *ssh.ClientConfig, target string)

	// DialDone is called when dial completes.
	DialDone func(clientConfig *ssh.ClientConfig, target string, err error, d time.Duration)

	// HelloDone is called when the hello message has been received from the server.
	HelloDone func(target string, hello *ops.HelloResponse)

	// ConnectionClosed is called after a transport connection has been closed, with
	// err indicating any error condition.
	ConnectionClosed func(target string, err error)

	// ReadStart is called before a read from the underlying transport.
	ReadStart func(buf []byte)

	// ReadDone is called after a read from the underlying transport.
	ReadDone func(buf []byte, c int, err error, d time.Duration)

	// WriteStart is called before a write to the underlying transport.
	WriteStart func(buf []byte)

	// WriteDone is called after a write to the underlying transport.
	WriteDone func(buf []byte, c int, err error, d time.Duration)

	// Error is called after an error condition has been detected.
	Error func(context, target string, err error)

	// ExecuteStart is called before the execution of an rpc request.
	ExecuteStart func(req ops.Request)

	// ExecuteDone is called after the execution of an rpc request.
	ExecuteDone func(req ops.Request, messageID string, err error, d time.Duration)
}

// DefaultLoggingHooks provides a default logging hook to report errors.
var DefaultLoggingHooks = &ClientTrace{
	Error: func(context, target string, err error) {
		logrus.WithFields(logrus.Fields{"context": context, "target": target}).WithError(err).Error("NETCONF-Error")
	},
}

// MetricLoggingHooks provides a set of hooks that will log network metrics.
var MetricLoggingHooks = &ClientTrace{
	ConnectDone: func(target string, err error, d time.Duration) {
		logrus.WithFields(logrus.Fields{"target": target, "took": d}).WithError(err).Info("NETCONF-ConnectDone")
	},
	DialDone: func(clientConfig *ssh.ClientConfig, target string, err error, d time.Duration) {
		logrus.WithFields(logrus.Fields{"target": target, "user": clientConfig.User, "took": d}).
			WithError(err).Info("NETCONF-DialDone")
	},
	ReadDone: func(p []byte, c int, err error, d time.Duration) {
		logrus.WithFields(logrus.Fields{"len": c, "took": d}).WithError(err).Info("NETCONF-ReadDone")
	},
	WriteDone: func(p []byte, c int, err error, d time.Duration) {
		logrus.WithFields(logrus.Fields{"len": c, "took": d}).WithError(err).Info("NETCONF-WriteDone")
	},

	Error: DefaultLoggingHooks.Error,

	ExecuteDone: func(req ops.Request, messageID string, err error, d time.Duration) {
		logrus.WithFields(logrus.Fields{"operation": req.Name(), "message-id": messageID, "took": d}).
			WithError(err).Info("NETCONF-ExecuteDone")
	},
}

// DiagnosticLoggingHooks provides a set of default diagnostic hooks
var DiagnosticLoggingHooks = &ClientTrace{
	ConnectStart: func(target string) {
		logrus.WithField("target", target).Debug("NETCONF-ConnectStart")
	},
	ConnectDone: MetricLoggingHooks.ConnectDone,
	DialStart: func(clientConfig *ssh.ClientConfig, target string) {
		logrus.WithFields(logrus.Fields{"target": target, "user": clientConfig.User}).Debug("NETCONF-DialStart")
	},
	DialDone: MetricLoggingHooks.DialDone,
	HelloDone: func(target string, hello *ops.HelloResponse) {
		logrus.WithFields(logrus.Fields{
			"target":       target,
			"session-id":   hello.SessionID,
			"capabilities": hello.Capabilities.Strings(),
		}).Debug("NETCONF-HelloDone")
	},
	ConnectionClosed: func(target string, err error) {
		logrus.WithField("target", target).WithError(err).Debug("NETCONF-ConnectionClosed")
	},
	ReadStart: func(p []byte) {
		logrus.WithField("capacity", len(p)).Debug("NETCONF-ReadStart")
	},
	ReadDone: MetricLoggingHooks.ReadDone,
	WriteStart: func(p []byte) {
		logrus.WithField("len", len(p)).Debug("NETCONF-WriteStart")
	},
	WriteDone: MetricLoggingHooks.WriteDone,

	Error: DefaultLoggingHooks.Error,

	ExecuteStart: func(req ops.Request) {
		logrus.WithField("operation", req.Name()).Debug("NETCONF-ExecuteStart")
	},
	ExecuteDone: MetricLoggingHooks.ExecuteDone,
}

// NoOpLoggingHooks provides set of hooks that do nothing.
var NoOpLoggingHooks = &ClientTrace{
	ConnectStart:     func(target string) {},
	ConnectDone:      func(target string, err error, d time.Duration) {},
	DialStart:        func(clientConfig *ssh.ClientConfig, target string) {},
	DialDone:         func(clientConfig *ssh.ClientConfig, target string, err error, d time.Duration) {},
	HelloDone:        func(target string, hello *ops.HelloResponse) {},
	ConnectionClosed: func(target string, err error) {},
	ReadStart:        func(p []byte) {},
	ReadDone:         func(p []byte, c int, err error, d time.Duration) {},

	WriteStart: func(p []byte) {},
	WriteDone:  func(p []byte, c int, err error, d time.Duration) {},

	Error:        func(context, target string, err error) {},
	ExecuteStart: func(req ops.Request) {},
	ExecuteDone:  func(req ops.Request, messageID string, err error, d time.Duration) {},
}
