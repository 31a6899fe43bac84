package common

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Define netconf URNs.
const (
	NetconfNS = "urn:ietf:params:xml:ns:netconf:base:1.0"

	CapBase10          = "urn:ietf:params:netconf:base:1.0"
	CapBase11          = "urn:ietf:params:netconf:base:1.1"
	CapWritableRunning = "urn:ietf:params:netconf:capability:writable-running:1.0"
	CapCandidate       = "urn:ietf:params:netconf:capability:candidate:1.0"
	CapConfirmedCommit = "urn:ietf:params:netconf:capability:confirmed-commit:1.1"
	CapRollbackOnError = "urn:ietf:params:netconf:capability:rollback-on-error:1.0"
	CapValidate10      = "urn:ietf:params:netconf:capability:validate:1.0"
	CapValidate11      = "urn:ietf:params:netconf:capability:validate:1.1"
	CapStartup         = "urn:ietf:params:netconf:capability:startup:1.0"
	CapURL             = "urn:ietf:params:netconf:capability:url:1.0"
	CapXpath           = "urn:ietf:params:netconf:capability:xpath:1.0"
)

// ErrMalformedCapability is returned when a :url capability carries an unusable scheme list.
var ErrMalformedCapability = errors.New("malformed capability")

// CapabilityKind identifies the variant of a Capability.
type CapabilityKind int

const (
	KindOther CapabilityKind = iota
	KindBase
	KindBase11
	KindWritableRunning
	KindCandidate
	KindConfirmedCommit
	KindRollbackOnError
	KindValidate
	KindValidate11
	KindStartup
	KindURL
	KindXPath
)

// Capability is a NETCONF capability advertised by a peer.
// Schemes is only set for KindURL, Raw only for KindOther.
type Capability struct {
	Kind    CapabilityKind
	Schemes []string
	Raw     string
}

// Well known capabilities.
var (
	Base            = Capability{Kind: KindBase}
	Base11          = Capability{Kind: KindBase11}
	WritableRunning = Capability{Kind: KindWritableRunning}
	Candidate       = Capability{Kind: KindCandidate}
	ConfirmedCommit = Capability{Kind: KindConfirmedCommit}
	RollbackOnError = Capability{Kind: KindRollbackOnError}
	Validate        = Capability{Kind: KindValidate}
	Validate11      = Capability{Kind: KindValidate11}
	Startup         = Capability{Kind: KindStartup}
	XPath           = Capability{Kind: KindXPath}
)

type capabilityInfo struct {
	urn   string
	short string
}

var capabilityInfos = map[CapabilityKind]capabilityInfo{
	KindBase:            {CapBase10, ":base:1.0"},
	KindBase11:          {CapBase11, ":base:1.1"},
	KindWritableRunning: {CapWritableRunning, ":writable-running:1.0"},
	KindCandidate:       {CapCandidate, ":candidate:1.0"},
	KindConfirmedCommit: {CapConfirmedCommit, ":confirmed-commit:1.1"},
	KindRollbackOnError: {CapRollbackOnError, ":rollback-on-error:1.0"},
	KindValidate:        {CapValidate10, ":validate:1.0"},
	KindValidate11:      {CapValidate11, ":validate:1.1"},
	KindStartup:         {CapStartup, ":startup:1.0"},
	KindURL:             {CapURL, ":url:1.0"},
	KindXPath:           {CapXpath, ":xpath:1.0"},
}

var kindsByURN = func() map[string]CapabilityKind {
	m := make(map[string]CapabilityKind, len(capabilityInfos))
	for k, info := range capabilityInfos {
		if k != KindURL {
			m[info.urn] = k
		}
	}
	return m
}()

// URLCapability returns a :url capability supporting the given schemes.
func URLCapability(schemes ...string) Capability {
	return Capability{Kind: KindURL, Schemes: schemes}
}

// OtherCapability returns a capability for a URN that has no dedicated variant.
func OtherCapability(urn string) Capability {
	return Capability{Kind: KindOther, Raw: urn}
}

// ParseCapability maps a URN onto a Capability.
// Unknown URNs yield an Other capability; only a malformed :url capability fails.
func ParseCapability(urn string) (Capability, error) {
	urn = strings.TrimSpace(urn)
	if kind, ok := kindsByURN[urn]; ok {
		return Capability{Kind: kind}, nil
	}
	if urn == CapURL || strings.HasPrefix(urn, CapURL+"?") {
		return parseURLCapability(urn)
	}
	return OtherCapability(urn), nil
}

func parseURLCapability(urn string) (Capability, error) {
	idx := strings.Index(urn, "?")
	if idx < 0 {
		return Capability{}, errors.Wrapf(ErrMalformedCapability, "%s has no scheme parameter", urn)
	}
	query, err := url.ParseQuery(urn[idx+1:])
	if err != nil {
		return Capability{}, errors.Wrapf(ErrMalformedCapability, "%s: %v", urn, err)
	}
	value := strings.TrimSpace(query.Get("scheme"))
	value = strings.TrimSuffix(strings.TrimPrefix(value, "{"), "}")
	if value == "" {
		return Capability{}, errors.Wrapf(ErrMalformedCapability, "%s has an empty scheme list", urn)
	}

	var schemes []string
	for _, s := range strings.Split(value, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			return Capability{}, errors.Wrapf(ErrMalformedCapability, "%s has an empty scheme", urn)
		}
		schemes = append(schemes, s)
	}
	return URLCapability(schemes...), nil
}

// URN renders the capability as advertised in a hello message.
func (c Capability) URN() string {
	switch c.Kind {
	case KindOther:
		return c.Raw
	case KindURL:
		return CapURL + "?scheme=" + strings.Join(c.Schemes, ",")
	default:
		return capabilityInfos[c.Kind].urn
	}
}

// String returns the RFC 6241 short name of the capability, e.g. ":candidate:1.0".
func (c Capability) String() string {
	if info, ok := capabilityInfos[c.Kind]; ok {
		return info.short
	}
	return c.Raw
}

// Equal reports whether both capabilities are the same variant with the same payload.
func (c Capability) Equal(o Capability) bool {
	if c.Kind != o.Kind || c.Raw != o.Raw || len(c.Schemes) != len(o.Schemes) {
		return false
	}
	for i := range c.Schemes {
		if c.Schemes[i] != o.Schemes[i] {
			return false
		}
	}
	return true
}

// SupportsScheme reports whether a :url capability lists the scheme.
func (c Capability) SupportsScheme(scheme string) bool {
	if c.Kind != KindURL {
		return false
	}
	for _, s := range c.Schemes {
		if strings.EqualFold(s, scheme) {
			return true
		}
	}
	return false
}

// Capabilities is a capability set as exchanged in hello messages.
type Capabilities []Capability

// ParseCapabilities maps every URN onto a Capability. A malformed :url
// capability is retained as an Other capability.
func ParseCapabilities(urns []string) Capabilities {
	caps := make(Capabilities, 0, len(urns))
	for _, urn := range urns {
		c, err := ParseCapability(urn)
		if err != nil {
			c = OtherCapability(strings.TrimSpace(urn))
		}
		caps = append(caps, c)
	}
	return caps
}

// Contains reports whether the set holds a capability equal to c.
func (cs Capabilities) Contains(c Capability) bool {
	for _, x := range cs {
		if x.Equal(c) {
			return true
		}
	}
	return false
}

// ContainsKind reports whether the set holds any capability of the given kind.
func (cs Capabilities) ContainsKind(kind CapabilityKind) bool {
	for _, x := range cs {
		if x.Kind == kind {
			return true
		}
	}
	return false
}

// URLSchemes returns the schemes of every :url capability in the set.
func (cs Capabilities) URLSchemes() []string {
	var schemes []string
	for _, x := range cs {
		if x.Kind == KindURL {
			schemes = append(schemes, x.Schemes...)
		}
	}
	return schemes
}

// URNs renders every capability of the set.
func (cs Capabilities) URNs() []string {
	urns := make([]string, 0, len(cs))
	for _, x := range cs {
		urns = append(urns, x.URN())
	}
	return urns
}

// Strings returns the short names of every capability of the set.
func (cs Capabilities) Strings() []string {
	names := make([]string, 0, len(cs))
	for _, x := range cs {
		names = append(names, x.String())
	}
	return names
}

// DefaultCapabilities sets the default capabilities of the client library
var DefaultCapabilities = Capabilities{Base, Base11}

// PeerSupportsChunkedFraming returns true if capability list indicates support for chunked framing.
func PeerSupportsChunkedFraming(caps []string) bool {
	for _, capability := range caps {
		if strings.TrimSpace(capability) == CapBase11 {
			return true
		}
	}
	return false
}
