package ops

import (
	"encoding/xml"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
)

type filterReq struct {
	XMLName xml.Name   `xml:"filter"`
	Type    string     `xml:"type,attr"`
	Select  string     `xml:"select,attr,omitempty"`
	Nslist  []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
}

type getReq struct {
	XMLName xml.Name `xml:"get"`
	Filter  *filterReq
}

type getConfigReq struct {
	XMLName xml.Name  `xml:"get-config"`
	Source  rawHolder `xml:"source"`
	Filter  *filterReq
}

func (p *payloads) filter(f *common.Filter) (*filterReq, error) {
	if f == nil {
		return nil, nil
	}
	req := &filterReq{Type: string(f.Type)}
	for _, ns := range f.Namespaces {
		if !validElementName(ns.ID) {
			return nil, errors.Wrapf(ErrInvalidRequest, "%q is not a valid namespace prefix", ns.ID)
		}
		req.Nslist = append(req.Nslist, xml.Attr{Name: xml.Name{Local: "xmlns:" + ns.ID}, Value: ns.Path})
	}
	switch f.Type {
	case common.SubtreeFilterType:
		req.Content = p.hold(f.Value)
	case common.XPathFilterType:
		req.Select = f.Value
	default:
		return nil, errors.Wrapf(ErrInvalidRequest, "unknown filter type %q", f.Type)
	}
	return req, nil
}

// GetRequest retrieves running configuration and state data.
type GetRequest struct {
	Filter *common.Filter
}

func (r *GetRequest) Name() string { return "get" }

// ValidateRequest always succeeds; get is part of the base protocol.
func (r *GetRequest) ValidateRequest(_ common.Capabilities) error {
	return nil
}

func (r *GetRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *GetRequest) ParseReply(raw string) (*DataResponse, error) {
	return parseDataReply(raw)
}

func (r *GetRequest) wire(p *payloads) (interface{}, error) {
	if r.Filter == nil {
		return rawOperation(p.hold("<get/>")), nil
	}
	filter, err := p.filter(r.Filter)
	if err != nil {
		return nil, err
	}
	return &getReq{Filter: filter}, nil
}

// GetConfigRequest retrieves configuration data from the source datastore.
type GetConfigRequest struct {
	Source common.Datastore
	Filter *common.Filter
}

func (r *GetConfigRequest) Name() string { return "get-config" }

func (r *GetConfigRequest) ValidateRequest(caps common.Capabilities) error {
	return requireReadable(r.Name(), caps, r.Source)
}

func (r *GetConfigRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *GetConfigRequest) ParseReply(raw string) (*DataResponse, error) {
	return parseDataReply(raw)
}

func (r *GetConfigRequest) wire(p *payloads) (interface{}, error) {
	source, err := p.waypoint(common.DsName(r.Source))
	if err != nil {
		return nil, err
	}
	filter, err := p.filter(r.Filter)
	if err != nil {
		return nil, err
	}
	return &getConfigReq{Source: rawHolder{source}, Filter: filter}, nil
}
