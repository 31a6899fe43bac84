package command

import (
	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/damianoneill/ncclient/netconf/ops"
)

// Command is an instruction for the Handler, one per netconf operation.
type Command interface {
	// Name delivers the operation the command maps onto.
	Name() string
}

// Hello connects to a server and exchanges hello messages.
type Hello struct {
	Address  string
	Port     int
	User     string
	Password string
}

type Lock struct {
	Target common.Datastore
}

type Unlock struct {
	Target common.Datastore
}

// Get retrieves state and configuration, optionally filtered.
type Get struct {
	Filter *common.Filter
}

// GetConfig retrieves configuration from Source, optionally filtered.
type GetConfig struct {
	Source common.Datastore
	Filter *common.Filter
}

type EditConfig struct {
	Request *ops.EditConfigRequest
}

type CopyConfig struct {
	From common.ConfigWaypoint
	To   common.ConfigWaypoint
}

type DeleteConfig struct {
	Target common.ConfigWaypoint
}

type KillSession struct {
	SessionID uint32
}

type Commit struct{}

type ConfirmedCommit struct {
	Params ops.ConfirmedCommitParams
}

type DiscardChanges struct{}

// CancelCommit cancels an ongoing confirmed commit; PersistID is empty unless the commit was persistent.
type CancelCommit struct {
	PersistID string
}

type Validate struct {
	Source ops.ValidateSource
}

// CloseSession ends the session gracefully.
type CloseSession struct{}

func (Hello) Name() string           { return "hello" }
func (Lock) Name() string            { return "lock" }
func (Unlock) Name() string          { return "unlock" }
func (Get) Name() string             { return "get" }
func (GetConfig) Name() string       { return "get-config" }
func (EditConfig) Name() string      { return "edit-config" }
func (CopyConfig) Name() string      { return "copy-config" }
func (DeleteConfig) Name() string    { return "delete-config" }
func (KillSession) Name() string     { return "kill-session" }
func (Commit) Name() string          { return "commit" }
func (ConfirmedCommit) Name() string { return "commit" }
func (DiscardChanges) Name() string  { return "discard-changes" }
func (CancelCommit) Name() string    { return "cancel-commit" }
func (Validate) Name() string        { return "validate" }
func (CloseSession) Name() string    { return "close-session" }

// Result is the outcome of a command: the typed response and the xml exchanged.
type Result struct {
	Command    string
	Succeeded  bool
	Typed      ops.Response
	RequestXML string
	ReplyXML   string
}

// Err delivers the error severity rpc-errors of the reply, or nil when the command
// succeeded or only drew warnings.
func (r *Result) Err() error {
	if withErr, ok := r.Typed.(interface{ Err() error }); ok {
		return withErr.Err()
	}
	return nil
}
