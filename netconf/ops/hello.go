package ops

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
)

// HelloRequest is the client side of the capability exchange.
type HelloRequest struct {
	Capabilities common.Capabilities
}

// Name delivers the message element name.
func (r *HelloRequest) Name() string {
	return "hello"
}

// Marshal renders the hello message; it is not wrapped in an <rpc> and carries no message-id.
// An empty capability set advertises :base:1.0.
func (r *HelloRequest) Marshal() (string, error) {
	caps := r.Capabilities
	if len(caps) == 0 {
		caps = common.Capabilities{common.Base}
	}
	b, err := xml.Marshal(&common.HelloMessage{Xmlns: common.NetconfNS, Capabilities: caps.URNs()})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal hello")
	}
	return string(b), nil
}

// HelloResponse holds the outcome of the server hello.
type HelloResponse struct {
	SessionID    uint32
	Capabilities common.Capabilities
}

// Succeeded always holds for a parsed hello.
func (r *HelloResponse) Succeeded() bool {
	return true
}

// ParseHello decodes the hello message sent by a server.
func ParseHello(raw string) (*HelloResponse, error) {
	var msg common.HelloMessage
	if err := xml.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, errors.Wrapf(ErrMalformedReply, "hello: %v", err)
	}

	sid := strings.TrimSpace(msg.SessionID)
	if sid == "" {
		return nil, errors.Wrap(ErrMalformedReply, "server hello has no session-id")
	}
	id, err := strconv.ParseUint(sid, 10, 32)
	if err != nil || id == 0 {
		return nil, errors.Wrapf(ErrMalformedReply, "server hello has invalid session-id %q", sid)
	}
	return &HelloResponse{SessionID: uint32(id), Capabilities: common.ParseCapabilities(msg.Capabilities)}, nil
}
