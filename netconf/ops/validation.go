package ops

import (
	"net/url"
	"strings"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
)

var (
	// ErrMissingCapability is returned when the server does not advertise a capability the request depends on.
	ErrMissingCapability = errors.New("missing capability")
	// ErrInvalidRequest is returned when a request can never be valid, whatever the server supports.
	ErrInvalidRequest = errors.New("invalid request")
)

func requireCapability(op string, caps common.Capabilities, c common.Capability) error {
	if caps.ContainsKind(c.Kind) {
		return nil
	}
	return errors.Wrapf(ErrMissingCapability, "<%s> requires %s", op, c)
}

// requireReadable checks a datastore that is read, locked or validated.
func requireReadable(op string, caps common.Capabilities, ds common.Datastore) error {
	if ds == common.CandidateCfg {
		return requireCapability(op, caps, common.Candidate)
	}
	return nil
}

// requireWritable checks a datastore that is the target of a configuration change.
func requireWritable(op string, caps common.Capabilities, ds common.Datastore) error {
	switch ds {
	case common.RunningCfg:
		return requireCapability(op, caps, common.WritableRunning)
	case common.CandidateCfg:
		return requireCapability(op, caps, common.Candidate)
	}
	return nil
}

// requireURL checks that the server accepts the scheme of the url.
func requireURL(op string, caps common.Capabilities, rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" {
		return errors.Wrapf(ErrInvalidRequest, "<%s> cannot determine the scheme of url %q", op, rawURL)
	}
	if !caps.ContainsKind(common.KindURL) {
		return errors.Wrapf(ErrMissingCapability, "<%s> with url %q requires :url:1.0", op, rawURL)
	}
	for _, c := range caps {
		if c.SupportsScheme(u.Scheme) {
			return nil
		}
	}
	return errors.Wrapf(ErrMissingCapability, "<%s> url scheme %q is not one of the supported schemes %v",
		op, u.Scheme, caps.URLSchemes())
}

func requireSource(op string, caps common.Capabilities, w common.ConfigWaypoint) error {
	if w.IsURL() {
		return requireURL(op, caps, w.URL)
	}
	return requireReadable(op, caps, w.Datastore)
}

func requireTarget(op string, caps common.Capabilities, w common.ConfigWaypoint) error {
	if w.IsURL() {
		return requireURL(op, caps, w.URL)
	}
	return requireWritable(op, caps, w.Datastore)
}
