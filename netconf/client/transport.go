package client

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// The Secure Transport layer provides a communication path between
// the client and server.  NETCONF can be layered over any
// transport protocol that provides a set of basic requirements.

// Transport interface defines what characteristics make up a NETCONF transport
// layer object.
type Transport interface {
	io.ReadWriteCloser
}

// TransportFactory opens the transport of a session.
type TransportFactory func(ctx context.Context) (Transport, error)

// Dialer delivers the ssh connection over which a transport is established.
type Dialer struct {
	Target string
	Config *ssh.ClientConfig
}

// NewDialer returns a dialer that connects to target over tcp with the ssh client configuration.
func NewDialer(target string, cfg *ssh.ClientConfig) *Dialer {
	return &Dialer{Target: target, Config: cfg}
}

// Dial connects to the target, honouring cancellation of ctx until the ssh handshake completes.
func (d *Dialer) Dial(ctx context.Context) (*ssh.Client, error) {
	var nd net.Dialer
	conn, err := nd.DialContext(ctx, "tcp", d.Target)
	if err != nil {
		return nil, err
	}

	// A peer that accepts but never completes the handshake is cut off when ctx ends.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	c, chans, reqs, err := ssh.NewClientConn(conn, d.Target, d.Config)
	if !stop() {
		if err == nil {
			_ = c.Close()
		}
		return nil, errors.Wrap(ctx.Err(), "ssh handshake abandoned")
	}
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return ssh.NewClient(c, chans, reqs), nil
}

type tImpl struct {
	reader      io.Reader
	writeCloser io.WriteCloser
	sshSession  *ssh.Session
	sshClient   *ssh.Client
	trace       *ClientTrace
	target      string
	eofTimeout  time.Duration
}

// NewSSHTransport creates a new SSH transport, connecting to the target with the supplied dialer
// and requesting the configured subsystem.
func NewSSHTransport(ctx context.Context, dialer *Dialer, target string, cfg *Config) (rt Transport, err error) {
	cfg = resolveConfig(cfg)
	impl := &tImpl{target: target, trace: ContextClientTrace(ctx), eofTimeout: cfg.setupTimeout()}

	defer func() {
		if err != nil {
			if impl.sshSession != nil {
				_ = impl.sshSession.Close()
			}
			if impl.sshClient != nil {
				_ = impl.sshClient.Close()
			}
		}
	}()

	impl.trace.DialStart(dialer.Config, target)
	begin := time.Now()
	impl.sshClient, err = dialer.Dial(ctx)
	impl.trace.DialDone(dialer.Config, target, err, time.Since(begin))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", target)
	}

	// Opening the channel and requesting the subsystem are bounded by ctx as well.
	sc := impl.sshClient
	stop := context.AfterFunc(ctx, func() { _ = sc.Close() })
	defer func() {
		if !stop() {
			rt, err = nil, errors.Wrap(ctx.Err(), "netconf subsystem setup abandoned")
		}
	}()

	if impl.sshSession, err = impl.sshClient.NewSession(); err != nil {
		return nil, errors.Wrap(err, "failed to open ssh session")
	}

	if impl.reader, err = impl.sshSession.StdoutPipe(); err != nil {
		return nil, err
	}

	if impl.writeCloser, err = impl.sshSession.StdinPipe(); err != nil {
		return nil, err
	}

	if err = impl.sshSession.RequestSubsystem(cfg.Subsystem); err != nil {
		return nil, errors.Wrapf(err, "failed to request %s subsystem", cfg.Subsystem)
	}

	impl.reader = &traceReader{r: impl.reader, trace: impl.trace}
	impl.writeCloser = &traceWriter{w: impl.writeCloser, trace: impl.trace}
	return impl, nil
}

func (t *tImpl) Read(p []byte) (n int, err error) {
	return t.reader.Read(p)
}

func (t *tImpl) Write(p []byte) (n int, err error) {
	return t.writeCloser.Write(p)
}

// Close closes all session resources in the following order:
//
//  1. stdin pipe, signalling EOF to the server
//  2. wait, bounded by the setup timeout, for the server to end its output
//  3. SSH session
//  4. SSH client
//
// All errors are reported.
func (t *tImpl) Close() error {
	var result *multierror.Error

	if err := t.writeCloser.Close(); err != nil && err != io.EOF {
		result = multierror.Append(result, errors.Wrap(err, "failed to close stdin"))
	}

	t.awaitPeerEOF()

	if err := t.sshSession.Close(); err != nil && err != io.EOF {
		result = multierror.Append(result, errors.Wrap(err, "failed to close ssh session"))
	}

	if err := t.sshClient.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		result = multierror.Append(result, errors.Wrap(err, "failed to close ssh client"))
	}

	err := result.ErrorOrNil()
	t.trace.ConnectionClosed(t.target, err)
	return err
}

func (t *tImpl) awaitPeerEOF() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = io.Copy(io.Discard, t.reader)
	}()

	timer := time.NewTimer(t.eofTimeout)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		t.trace.Error("Disconnect", t.target, errors.Errorf("no EOF from server within %s", t.eofTimeout))
	}
}

type traceReader struct {
	r     io.Reader
	trace *ClientTrace
}

func (tr *traceReader) Read(p []byte) (c int, err error) {
	tr.trace.ReadStart(p)
	defer func(begin time.Time) {
		tr.trace.ReadDone(p, c, err, time.Since(begin))
	}(time.Now())

	return tr.r.Read(p)
}

type traceWriter struct {
	w     io.WriteCloser
	trace *ClientTrace
}

func (tw *traceWriter) Write(p []byte) (c int, err error) {
	tw.trace.WriteStart(p)
	defer func(begin time.Time) {
		tw.trace.WriteDone(p, c, err, time.Since(begin))
	}(time.Now())

	return tw.w.Write(p)
}

func (tw *traceWriter) Close() error {
	return tw.w.Close()
}
