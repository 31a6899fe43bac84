package common

import "strings"

// Datastore names a configuration datastore on the device.
// Any name other than the well known ones is an "other" datastore.
type Datastore string

// Configuration Datastores
const (
	RunningCfg     Datastore = "running"
	CandidateCfg   Datastore = "candidate"
	StartupCfg     Datastore = "startup"
	IntendedCfg    Datastore = "intended"
	OperationalCfg Datastore = "operational"
)

// ParseDatastore maps a datastore name onto a Datastore, normalising the well known names.
func ParseDatastore(name string) Datastore {
	name = strings.TrimSpace(name)
	switch ds := Datastore(strings.ToLower(name)); ds {
	case RunningCfg, CandidateCfg, StartupCfg, IntendedCfg, OperationalCfg:
		return ds
	}
	return Datastore(name)
}

// IsOther reports whether the datastore is not one of the well known datastores.
func (ds Datastore) IsOther() bool {
	switch ds {
	case RunningCfg, CandidateCfg, StartupCfg, IntendedCfg, OperationalCfg:
		return false
	}
	return true
}

func (ds Datastore) String() string {
	return string(ds)
}

// ConfigWaypoint identifies the source or target of a configuration operation,
// either a named datastore or a URL (requires the :url capability).
type ConfigWaypoint struct {
	Datastore Datastore
	URL       string
}

// DsName returns a waypoint that refers to a named datastore.
func DsName(ds Datastore) ConfigWaypoint {
	return ConfigWaypoint{Datastore: ds}
}

// DsURL returns a waypoint that refers to a URL.
func DsURL(url string) ConfigWaypoint {
	return ConfigWaypoint{URL: url}
}

// IsURL reports whether the waypoint refers to a URL.
func (w ConfigWaypoint) IsURL() bool {
	return w.URL != ""
}

func (w ConfigWaypoint) String() string {
	if w.IsURL() {
		return w.URL
	}
	return string(w.Datastore)
}
