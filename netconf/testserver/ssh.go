package testserver

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// SSHServer represents a test SSH Server
type SSHServer struct {
	listener net.Listener
	trace    *Trace
}

// Handler is the interface that is implemented to handle an SSH channel.
type Handler interface {
	// Handle is a function that handles i/o to/from an SSH channel
	Handle(ch ssh.Channel)
}

// HandlerFactory is a function that will deliver an Handler.
type HandlerFactory func(conn *ssh.ServerConn) Handler

// NewSSHServer delivers a new test SSH Server, with a custom channel handler.
func NewSSHServer(ctx context.Context, address string, port int, cfg *ssh.ServerConfig, factory HandlerFactory) (server *SSHServer, err error) {
	server = &SSHServer{trace: ContextTrace(ctx)}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	server.listener, err = net.Listen("tcp", listenAddress)
	server.trace.Listened(listenAddress, err)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %s", listenAddress)
	}

	go server.acceptConnections(cfg, factory)

	return server, nil
}

// Port delivers the tcp port number on which the server is listening.
func (s *SSHServer) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Address delivers the host:port the server is listening on.
func (s *SSHServer) Address() string {
	return s.listener.Addr().String()
}

// Close closes any resources used by the server.
func (s *SSHServer) Close() {
	_ = s.listener.Close()
}

func (s *SSHServer) acceptConnections(config *ssh.ServerConfig, factory HandlerFactory) {
	s.trace.StartAccepting()
	for {
		nConn, err := s.listener.Accept()
		s.trace.Accepted(nConn, err)
		if err != nil {
			return
		}
		go s.serveConnection(nConn, config, factory)
	}
}

func (s *SSHServer) serveConnection(nConn net.Conn, config *ssh.ServerConfig, factory HandlerFactory) {
	svrconn, chch, reqch, err := ssh.NewServerConn(nConn, config)
	s.trace.NewServerConn(nConn, err)
	if err != nil {
		_ = nConn.Close()
		return
	}

	go ssh.DiscardRequests(reqch)

	// Service the incoming Channel channel.
	for newChannel := range chch {
		dataChan, requests, err := newChannel.Accept()
		s.trace.SSHChannelAccept(nConn, err)
		if err != nil {
			continue
		}

		// Handle the "subsystem" request.
		go func(in <-chan *ssh.Request) {
			for req := range in {
				err := req.Reply(req.Type == "subsystem", nil)
				s.trace.SubsystemRequestReply(req.Type, err)
			}
		}(requests)

		go func() {
			defer dataChan.Close()
			factory(svrconn).Handle(dataChan)
		}()
	}
}

// PasswordConfig delivers a server configuration accepting only the given credentials, with a
// freshly generated host key.
func PasswordConfig(uname, password string) (*ssh.ServerConfig, error) {
	config := &ssh.ServerConfig{
		PasswordCallback: func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == uname && string(pass) == password {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %q", c.User())
		},
	}

	hostKey, err := generateHostKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate host key")
	}
	config.AddHostKey(hostKey)
	return config, nil
}

func generateHostKey() (ssh.Signer, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	return ssh.ParsePrivateKey(encodePrivateKeyToPEM(key))
}

func encodePrivateKeyToPEM(privateKey *rsa.PrivateKey) []byte {
	// Get ASN.1 DER format
	privDER := x509.MarshalPKCS1PrivateKey(privateKey)

	// Private key in PEM format
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: privDER,
	})
}
