package ops

import (
	"encoding/xml"
	"strings"
	"unicode"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Request is implemented by every typed netconf rpc request.
type Request interface {
	// Name delivers the name of the operation element, e.g. "lock".
	Name() string

	// MarshalRPC renders the request as a complete <rpc> message carrying the message id.
	MarshalRPC(messageID string) (string, error)

	// ValidateRequest checks the request preconditions against the capabilities advertised by the server.
	ValidateRequest(caps common.Capabilities) error
}

// Response is implemented by every typed netconf rpc response.
type Response interface {
	// Succeeded reports whether the reply carried no rpc-error.
	Succeeded() bool
}

// Operation binds a request to the type of its response.
type Operation[R Response] interface {
	Request

	// ParseReply parses the raw rpc-reply to the request.
	ParseReply(raw string) (R, error)
}

// rpcMessage is the wire shape of the <rpc> envelope. Exactly one of Operation or Body is set.
type rpcMessage struct {
	XMLName   xml.Name    `xml:"rpc"`
	MessageID string      `xml:"message-id,attr"`
	Xmlns     string      `xml:"xmlns,attr"`
	Operation interface{} `xml:",omitempty"`
	Body      string      `xml:",chardata"`
}

// rawOperation is an operation element rendered entirely from a held payload.
type rawOperation string

// rawHolder is an element whose content is a held payload.
type rawHolder struct {
	Content string `xml:",chardata"`
}

// wireShaper is implemented by requests that render through an xml-tagged wire shape.
type wireShaper interface {
	wire(p *payloads) (interface{}, error)
}

func render(messageID string, r wireShaper) (string, error) {
	p := &payloads{}
	op, err := r.wire(p)
	if err != nil {
		return "", err
	}

	msg := &rpcMessage{MessageID: messageID, Xmlns: common.NetconfNS}
	if raw, ok := op.(rawOperation); ok {
		msg.Body = string(raw)
	} else {
		msg.Operation = op
	}

	b, err := xml.Marshal(msg)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal rpc")
	}
	return p.splice(string(b))
}

const placeholderPrefix = "ncclient-payload-"

// payloads holds raw xml fragments that must reach the wire unescaped. The wire shape carries a
// unique placeholder token for each fragment, and the tokens are substituted after marshalling.
type payloads struct {
	tokens []string
	values []string
}

func (p *payloads) hold(raw string) string {
	token := placeholderPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	p.tokens = append(p.tokens, token)
	p.values = append(p.values, raw)
	return token
}

// element holds a self-closing element, e.g. <running/>.
func (p *payloads) element(name string) (string, error) {
	if !validElementName(name) {
		return "", errors.Wrapf(ErrInvalidRequest, "%q is not a valid element name", name)
	}
	return p.hold("<" + name + "/>"), nil
}

// waypoint holds the content of a source or target element.
func (p *payloads) waypoint(w common.ConfigWaypoint) (string, error) {
	if w.IsURL() {
		return p.hold("<url>" + w.URL + "</url>"), nil
	}
	if w.Datastore == "" {
		return "", errors.Wrap(ErrInvalidRequest, "no datastore or url specified")
	}
	return p.element(string(w.Datastore))
}

func (p *payloads) splice(skeleton string) (string, error) {
	if len(p.tokens) == 0 {
		return skeleton, nil
	}
	pairs := make([]string, 0, 2*len(p.tokens))
	for i, token := range p.tokens {
		if strings.Count(skeleton, token) != 1 {
			return "", errors.Errorf("payload placeholder %s is not unique in rpc", token)
		}
		for _, v := range p.values {
			if strings.Contains(v, token) {
				return "", errors.Errorf("payload placeholder %s collides with payload", token)
			}
		}
		pairs = append(pairs, token, p.values[i])
	}
	return strings.NewReplacer(pairs...).Replace(skeleton), nil
}

func validElementName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || r == ':' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
