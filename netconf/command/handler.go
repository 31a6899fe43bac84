package command

import (
	"context"
	"net"
	"strconv"

	"github.com/damianoneill/ncclient/netconf/client"
	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/damianoneill/ncclient/netconf/ops"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
)

var (
	// ErrNoSession is returned for commands issued before a successful hello.
	ErrNoSession = errors.New("no netconf session, issue hello first")
	// ErrUnknownCommand is returned for commands the handler cannot route.
	ErrUnknownCommand = errors.New("unknown command")
)

// SessionFactory creates the unconnected session used by a Hello command.
type SessionFactory func(ctx context.Context, target string, sshcfg *ssh.ClientConfig, caps common.Capabilities,
	cfg *client.Config) client.Session

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSessionFactory replaces the factory used to create sessions.
func WithSessionFactory(f SessionFactory) HandlerOption {
	return func(h *Handler) {
		h.factory = f
	}
}

// WithValidation enables or disables the validation of requests against server capabilities.
func WithValidation(validate bool) HandlerOption {
	return func(h *Handler) {
		h.validate = validate
	}
}

// WithHostKeyCallback sets the host key check used when connecting. Host keys are not checked by default.
func WithHostKeyCallback(cb ssh.HostKeyCallback) HandlerOption {
	return func(h *Handler) {
		h.hostKeyCallback = cb
	}
}

// Handler routes commands to a netconf session, which is opened by the Hello command.
type Handler struct {
	caps            common.Capabilities
	cfg             *client.Config
	validate        bool
	factory         SessionFactory
	hostKeyCallback ssh.HostKeyCallback

	session client.Session
}

// NewHandler delivers a handler whose sessions advertise caps and use cfg.
func NewHandler(caps common.Capabilities, cfg *client.Config, options ...HandlerOption) *Handler {
	h := &Handler{
		caps:            caps,
		cfg:             cfg,
		validate:        true,
		factory:         client.NewSession,
		hostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint: gosec
	}
	for _, option := range options {
		option(h)
	}
	return h
}

// Session delivers the current session, or nil.
func (h *Handler) Session() client.Session {
	return h.session
}

// Close closes the current session, if any.
func (h *Handler) Close() {
	if h.session != nil {
		h.session.Close()
		h.session = nil
	}
}

// Handle executes the command. An rpc-error reply is a Result that has not Succeeded, not an error.
func (h *Handler) Handle(ctx context.Context, cmd Command) (*Result, error) {
	if c, ok := cmd.(Hello); ok {
		return h.hello(ctx, c)
	}

	if h.session == nil {
		return nil, errors.Wrapf(ErrNoSession, "cannot %s", cmd.Name())
	}

	res, err := h.dispatch(ctx, cmd)
	if h.session != nil && h.session.State() == client.Closed {
		logrus.WithField("command", cmd.Name()).Debug("session closed, forgetting it")
		h.session = nil
	}
	return res, err
}

func (h *Handler) hello(ctx context.Context, c Hello) (*Result, error) {
	if h.session != nil && h.session.State() == client.Active {
		return nil, errors.Wrapf(client.ErrAlreadyConnected, "session %d is active", h.session.ID())
	}

	sshcfg := &ssh.ClientConfig{
		User:            c.User,
		Auth:            []ssh.AuthMethod{ssh.Password(c.Password)},
		HostKeyCallback: h.hostKeyCallback,
	}
	target := net.JoinHostPort(c.Address, strconv.Itoa(c.Port))

	s := h.factory(ctx, target, sshcfg, h.caps, h.cfg)
	s.SetValidateCapabilities(h.validate)
	if err := s.Connect(ctx); err != nil {
		s.Close()
		return nil, errors.Wrapf(err, "failed to connect to %s", target)
	}
	reply, err := s.Hello(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	h.session = s

	return &Result{
		Command:    c.Name(),
		Succeeded:  true,
		Typed:      reply.Result,
		RequestXML: reply.RequestXML,
		ReplyXML:   reply.ReplyXML,
	}, nil
}

func (h *Handler) dispatch(ctx context.Context, cmd Command) (*Result, error) {
	s := h.session
	switch c := cmd.(type) {
	case Lock:
		reply, err := s.Lock(ctx, c.Target)
		return result(c, reply, err)
	case Unlock:
		reply, err := s.Unlock(ctx, c.Target)
		return result(c, reply, err)
	case Get:
		reply, err := s.Get(ctx, c.Filter)
		return result(c, reply, err)
	case GetConfig:
		reply, err := s.GetConfig(ctx, c.Source, c.Filter)
		return result(c, reply, err)
	case EditConfig:
		reply, err := s.EditConfig(ctx, c.Request)
		return result(c, reply, err)
	case CopyConfig:
		reply, err := s.CopyConfig(ctx, c.From, c.To)
		return result(c, reply, err)
	case DeleteConfig:
		reply, err := s.DeleteConfig(ctx, c.Target)
		return result(c, reply, err)
	case KillSession:
		reply, err := s.KillSession(ctx, c.SessionID)
		return result(c, reply, err)
	case Commit:
		reply, err := s.Commit(ctx)
		return result(c, reply, err)
	case ConfirmedCommit:
		reply, err := s.ConfirmedCommit(ctx, c.Params)
		return result(c, reply, err)
	case DiscardChanges:
		reply, err := s.DiscardChanges(ctx)
		return result(c, reply, err)
	case CancelCommit:
		reply, err := s.CancelCommit(ctx, c.PersistID)
		return result(c, reply, err)
	case Validate:
		reply, err := s.Validate(ctx, c.Source)
		return result(c, reply, err)
	case CloseSession:
		reply, err := s.CloseSession(ctx)
		if err == nil && reply.Result.Ok {
			h.session = nil
		}
		return result(c, reply, err)
	}
	return nil, errors.Wrapf(ErrUnknownCommand, "%T", cmd)
}

// result erases the response type of a typed reply.
func result[R ops.Response](cmd Command, reply *client.Reply[R], err error) (*Result, error) {
	if err != nil {
		return nil, errors.Wrapf(err, "%s failed", cmd.Name())
	}
	return &Result{
		Command:    cmd.Name(),
		Succeeded:  reply.Result.Succeeded(),
		Typed:      reply.Result,
		RequestXML: reply.RequestXML,
		ReplyXML:   reply.ReplyXML,
	}, nil
}
