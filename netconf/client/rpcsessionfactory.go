package client

import (
	"context"

	"github.com/damianoneill/ncclient/netconf/common"
	"golang.org/x/crypto/ssh"
)

// Defines a factory method for instantiating netconf rpc sessions.

// NewRPCSession connects to the target using the ssh configuration, and establishes
// an active netconf session with default capabilities and configuration.
func NewRPCSession(ctx context.Context, sshcfg *ssh.ClientConfig, target string) (s Session, err error) {
	return NewRPCSessionWithConfig(ctx, sshcfg, target, common.DefaultCapabilities, DefaultConfig)
}

// NewRPCSessionWithConfig connects to the target using the ssh configuration, and establishes
// an active netconf session advertising caps, with the client configuration.
func NewRPCSessionWithConfig(ctx context.Context, sshcfg *ssh.ClientConfig, target string, caps common.Capabilities,
	cfg *Config,
) (Session, error) {
	return startSession(ctx, NewSession(ctx, target, sshcfg, caps, cfg))
}

// startSession connects the session and exchanges hello messages, closing the session on failure.
func startSession(ctx context.Context, s Session) (Session, error) {
	if err := s.Connect(ctx); err != nil {
		s.Close()
		return nil, err
	}
	if _, err := s.Hello(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
