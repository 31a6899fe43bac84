package ops

import (
	"encoding/xml"

	"github.com/damianoneill/ncclient/netconf/common"
)

type killSessionReq struct {
	XMLName xml.Name `xml:"kill-session"`
	ID      uint32   `xml:"session-id"`
}

// KillSessionRequest forces the termination of another session.
type KillSessionRequest struct {
	SessionID uint32
}

func (r *KillSessionRequest) Name() string { return "kill-session" }

func (r *KillSessionRequest) ValidateRequest(_ common.Capabilities) error {
	return nil
}

func (r *KillSessionRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *KillSessionRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *KillSessionRequest) wire(_ *payloads) (interface{}, error) {
	return &killSessionReq{ID: r.SessionID}, nil
}

// CloseSessionRequest requests the graceful termination of the session.
type CloseSessionRequest struct{}

func (r *CloseSessionRequest) Name() string { return "close-session" }

func (r *CloseSessionRequest) ValidateRequest(_ common.Capabilities) error {
	return nil
}

func (r *CloseSessionRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *CloseSessionRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *CloseSessionRequest) wire(p *payloads) (interface{}, error) {
	return rawOperation(p.hold("<close-session/>")), nil
}
