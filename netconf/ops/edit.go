package ops

import (
	"encoding/xml"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
)

type editConfigReq struct {
	XMLName          xml.Name   `xml:"edit-config"`
	Target           rawHolder  `xml:"target"`
	DefaultOperation string     `xml:"default-operation,omitempty"`
	TestOption       string     `xml:"test-option,omitempty"`
	ErrorOption      string     `xml:"error-option,omitempty"`
	Config           *rawHolder `xml:"config"`
	ConfigURL        *rawHolder `xml:"url"`
}

// EditConfigRequest loads all or part of a configuration into the target datastore.
// Exactly one of Config and URL is set.
type EditConfigRequest struct {
	Target           common.Datastore
	DefaultOperation DefaultOperationType
	TestOption       TestOptionType
	ErrorOption      ErrorOptionType
	// Config holds raw XML, sent unescaped as the content of the <config> element.
	Config string
	URL    string
}

// ConfigOption defines the configuration to be applied by an edit config operation
type ConfigOption func(*EditConfigRequest)

// Cfg supplies the configuration inline, as raw XML.
func Cfg(cfg string) ConfigOption {
	return func(req *EditConfigRequest) {
		req.Config = cfg
	}
}

// CfgURL supplies the configuration as a url the server fetches it from.
func CfgURL(url string) ConfigOption {
	return func(req *EditConfigRequest) {
		req.URL = url
	}
}

// EditOption configures an edit config operation.
type EditOption func(*EditConfigRequest)

func DefaultOperation(oper DefaultOperationType) EditOption {
	return func(req *EditConfigRequest) {
		req.DefaultOperation = oper
	}
}

func TestOption(opt TestOptionType) EditOption {
	return func(req *EditConfigRequest) {
		req.TestOption = opt
	}
}

func ErrorOption(opt ErrorOptionType) EditOption {
	return func(req *EditConfigRequest) {
		req.ErrorOption = opt
	}
}

// NewEditConfigRequest builds an edit-config of the target datastore.
func NewEditConfigRequest(target common.Datastore, config ConfigOption, options ...EditOption) *EditConfigRequest {
	req := &EditConfigRequest{Target: target}
	for _, opt := range options {
		opt(req)
	}
	if config != nil {
		config(req)
	}
	return req
}

func (r *EditConfigRequest) Name() string { return "edit-config" }

func (r *EditConfigRequest) ValidateRequest(caps common.Capabilities) error {
	if err := r.check(); err != nil {
		return err
	}
	if err := requireWritable(r.Name(), caps, r.Target); err != nil {
		return err
	}
	if r.ErrorOption == RollbackOnErrorErrOpt {
		if err := requireCapability(r.Name(), caps, common.RollbackOnError); err != nil {
			return err
		}
	}
	if r.TestOption != "" {
		if err := requireCapability(r.Name(), caps, common.Validate11); err != nil {
			return err
		}
	}
	if r.URL != "" {
		return requireURL(r.Name(), caps, r.URL)
	}
	return nil
}

func (r *EditConfigRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *EditConfigRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

// check verifies the parts of the request that do not depend on the server.
func (r *EditConfigRequest) check() error {
	switch {
	case r.Config == "" && r.URL == "":
		return errors.Wrap(ErrInvalidRequest, "<edit-config> has neither config nor url")
	case r.Config != "" && r.URL != "":
		return errors.Wrap(ErrInvalidRequest, "<edit-config> has both config and url")
	case !r.DefaultOperation.valid():
		return errors.Wrapf(ErrInvalidRequest, "unknown default-operation %q", r.DefaultOperation)
	case !r.TestOption.valid():
		return errors.Wrapf(ErrInvalidRequest, "unknown test-option %q", r.TestOption)
	case !r.ErrorOption.valid():
		return errors.Wrapf(ErrInvalidRequest, "unknown error-option %q", r.ErrorOption)
	}
	return nil
}

func (r *EditConfigRequest) wire(p *payloads) (interface{}, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	target, err := p.waypoint(common.DsName(r.Target))
	if err != nil {
		return nil, err
	}
	req := &editConfigReq{
		Target:           rawHolder{target},
		DefaultOperation: string(r.DefaultOperation),
		TestOption:       string(r.TestOption),
		ErrorOption:      string(r.ErrorOption),
	}
	if r.Config != "" {
		req.Config = &rawHolder{p.hold(r.Config)}
	} else {
		req.ConfigURL = &rawHolder{p.hold(r.URL)}
	}
	return req, nil
}
