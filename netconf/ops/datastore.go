package ops

import (
	"encoding/xml"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
)

type lockReq struct {
	XMLName xml.Name  `xml:"lock"`
	Target  rawHolder `xml:"target"`
}

type unlockReq struct {
	XMLName xml.Name  `xml:"unlock"`
	Target  rawHolder `xml:"target"`
}

type copyConfigReq struct {
	XMLName xml.Name  `xml:"copy-config"`
	Target  rawHolder `xml:"target"`
	Source  rawHolder `xml:"source"`
}

type deleteConfigReq struct {
	XMLName xml.Name  `xml:"delete-config"`
	Target  rawHolder `xml:"target"`
}

// LockRequest locks the target datastore for the session.
type LockRequest struct {
	Target common.Datastore
}

func (r *LockRequest) Name() string { return "lock" }

func (r *LockRequest) ValidateRequest(caps common.Capabilities) error {
	return requireReadable(r.Name(), caps, r.Target)
}

func (r *LockRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *LockRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *LockRequest) wire(p *payloads) (interface{}, error) {
	target, err := p.waypoint(common.DsName(r.Target))
	if err != nil {
		return nil, err
	}
	return &lockReq{Target: rawHolder{target}}, nil
}

// UnlockRequest releases a lock held by the session.
type UnlockRequest struct {
	Target common.Datastore
}

func (r *UnlockRequest) Name() string { return "unlock" }

func (r *UnlockRequest) ValidateRequest(caps common.Capabilities) error {
	return requireReadable(r.Name(), caps, r.Target)
}

func (r *UnlockRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *UnlockRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *UnlockRequest) wire(p *payloads) (interface{}, error) {
	target, err := p.waypoint(common.DsName(r.Target))
	if err != nil {
		return nil, err
	}
	return &unlockReq{Target: rawHolder{target}}, nil
}

// CopyConfigRequest replaces the target configuration with the source.
// Either side may be a datastore or a url.
type CopyConfigRequest struct {
	Target common.ConfigWaypoint
	Source common.ConfigWaypoint
}

func (r *CopyConfigRequest) Name() string { return "copy-config" }

func (r *CopyConfigRequest) ValidateRequest(caps common.Capabilities) error {
	if err := requireTarget(r.Name(), caps, r.Target); err != nil {
		return err
	}
	return requireSource(r.Name(), caps, r.Source)
}

func (r *CopyConfigRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *CopyConfigRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *CopyConfigRequest) wire(p *payloads) (interface{}, error) {
	target, err := p.waypoint(r.Target)
	if err != nil {
		return nil, err
	}
	source, err := p.waypoint(r.Source)
	if err != nil {
		return nil, err
	}
	return &copyConfigReq{Target: rawHolder{target}, Source: rawHolder{source}}, nil
}

// DeleteConfigRequest deletes a configuration datastore other than running.
type DeleteConfigRequest struct {
	Target common.ConfigWaypoint
}

func (r *DeleteConfigRequest) Name() string { return "delete-config" }

func (r *DeleteConfigRequest) ValidateRequest(caps common.Capabilities) error {
	if !r.Target.IsURL() && r.Target.Datastore == common.RunningCfg {
		return errors.Wrap(ErrInvalidRequest, "the running datastore cannot be deleted")
	}
	return requireTarget(r.Name(), caps, r.Target)
}

func (r *DeleteConfigRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *DeleteConfigRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *DeleteConfigRequest) wire(p *payloads) (interface{}, error) {
	target, err := p.waypoint(r.Target)
	if err != nil {
		return nil, err
	}
	return &deleteConfigReq{Target: rawHolder{target}}, nil
}
