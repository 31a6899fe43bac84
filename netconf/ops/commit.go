package ops

import (
	"encoding/xml"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
)

type commitReq struct {
	XMLName        xml.Name `xml:"commit"`
	Confirmed      string   `xml:",chardata"`
	ConfirmTimeout uint32   `xml:"confirm-timeout,omitempty"`
	Persist        string   `xml:"persist,omitempty"`
	PersistID      string   `xml:"persist-id,omitempty"`
}

type cancelCommitReq struct {
	XMLName   xml.Name `xml:"cancel-commit"`
	PersistID string   `xml:"persist-id"`
}

type validateReq struct {
	XMLName xml.Name  `xml:"validate"`
	Source  rawHolder `xml:"source"`
}

// ConfirmedCommitParams turns a commit into a confirmed commit.
type ConfirmedCommitParams struct {
	// ConfirmTimeout is in seconds; zero leaves the server default (600) in place.
	ConfirmTimeout uint32
	// Persist makes the confirmed commit survive the session, identified by the given token.
	Persist string
	// PersistID confirms a persistent confirmed commit started earlier.
	PersistID string
}

// CommitRequest commits the candidate configuration to running.
// A nil Confirmed issues a plain commit.
type CommitRequest struct {
	Confirmed *ConfirmedCommitParams
}

func (r *CommitRequest) Name() string { return "commit" }

func (r *CommitRequest) ValidateRequest(caps common.Capabilities) error {
	if r.Confirmed != nil {
		return requireCapability(r.Name(), caps, common.ConfirmedCommit)
	}
	return requireCapability(r.Name(), caps, common.Candidate)
}

func (r *CommitRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *CommitRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *CommitRequest) wire(p *payloads) (interface{}, error) {
	if r.Confirmed == nil {
		return rawOperation(p.hold("<commit/>")), nil
	}
	confirmed, err := p.element("confirmed")
	if err != nil {
		return nil, err
	}
	return &commitReq{
		Confirmed:      confirmed,
		ConfirmTimeout: r.Confirmed.ConfirmTimeout,
		Persist:        r.Confirmed.Persist,
		PersistID:      r.Confirmed.PersistID,
	}, nil
}

// DiscardChangesRequest reverts the candidate configuration to the running configuration.
type DiscardChangesRequest struct{}

func (r *DiscardChangesRequest) Name() string { return "discard-changes" }

func (r *DiscardChangesRequest) ValidateRequest(caps common.Capabilities) error {
	return requireCapability(r.Name(), caps, common.Candidate)
}

func (r *DiscardChangesRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *DiscardChangesRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *DiscardChangesRequest) wire(p *payloads) (interface{}, error) {
	return rawOperation(p.hold("<discard-changes/>")), nil
}

// CancelCommitRequest cancels an ongoing confirmed commit.
// PersistID is required when the confirmed commit was persistent.
type CancelCommitRequest struct {
	PersistID string
}

func (r *CancelCommitRequest) Name() string { return "cancel-commit" }

func (r *CancelCommitRequest) ValidateRequest(caps common.Capabilities) error {
	return requireCapability(r.Name(), caps, common.ConfirmedCommit)
}

func (r *CancelCommitRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *CancelCommitRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *CancelCommitRequest) wire(p *payloads) (interface{}, error) {
	if r.PersistID == "" {
		return rawOperation(p.hold("<cancel-commit/>")), nil
	}
	return &cancelCommitReq{PersistID: r.PersistID}, nil
}

// ValidateSource is the configuration checked by a validate operation: a datastore,
// an inline configuration or a url. Exactly one field is set.
type ValidateSource struct {
	Datastore common.Datastore
	Config    string
	URL       string
}

// ValidateDatastore validates the content of a datastore.
func ValidateDatastore(ds common.Datastore) ValidateSource {
	return ValidateSource{Datastore: ds}
}

// ValidateConfig validates raw inline configuration.
func ValidateConfig(cfg string) ValidateSource {
	return ValidateSource{Config: cfg}
}

// ValidateURL validates the configuration held at url.
func ValidateURL(url string) ValidateSource {
	return ValidateSource{URL: url}
}

func (s ValidateSource) String() string {
	switch {
	case s.URL != "":
		return s.URL
	case s.Config != "":
		return "<config>"
	}
	return string(s.Datastore)
}

func (s ValidateSource) count() int {
	n := 0
	for _, v := range []string{string(s.Datastore), s.Config, s.URL} {
		if v != "" {
			n++
		}
	}
	return n
}

// ValidateRequest asks the server to validate a configuration without applying it.
type ValidateRequest struct {
	Source ValidateSource
}

func (r *ValidateRequest) Name() string { return "validate" }

func (r *ValidateRequest) ValidateRequest(caps common.Capabilities) error {
	if r.Source.count() != 1 {
		return errors.Wrap(ErrInvalidRequest, "<validate> requires exactly one source")
	}
	switch {
	case r.Source.URL != "":
		return requireURL(r.Name(), caps, r.Source.URL)
	case r.Source.Config != "":
		return nil
	}
	return requireReadable(r.Name(), caps, r.Source.Datastore)
}

func (r *ValidateRequest) MarshalRPC(messageID string) (string, error) {
	return render(messageID, r)
}

func (r *ValidateRequest) ParseReply(raw string) (*OkResponse, error) {
	return parseOkReply(raw)
}

func (r *ValidateRequest) wire(p *payloads) (interface{}, error) {
	if r.Source.count() != 1 {
		return nil, errors.Wrap(ErrInvalidRequest, "<validate> requires exactly one source")
	}
	var source string
	switch {
	case r.Source.URL != "":
		source = p.hold("<url>" + r.Source.URL + "</url>")
	case r.Source.Config != "":
		source = p.hold("<config>" + r.Source.Config + "</config>")
	default:
		var err error
		if source, err = p.element(string(r.Source.Datastore)); err != nil {
			return nil, err
		}
	}
	return &validateReq{Source: rawHolder{source}}, nil
}
