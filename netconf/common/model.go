package common

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Defines structs representing netconf messages.

// HelloMessage defines the message sent/received during session negotiation.
type HelloMessage struct {
	XMLName      xml.Name `xml:"hello"`
	Xmlns        string   `xml:"xmlns,attr,omitempty"`
	Capabilities []string `xml:"capabilities>capability"`
	SessionID    string   `xml:"session-id,omitempty"`
}

// ErrorType is the conceptual layer on which an rpc-error occurred.
type ErrorType string

// Error types
const (
	TransportError   ErrorType = "transport"
	RPCLayerError    ErrorType = "rpc"
	ProtocolError    ErrorType = "protocol"
	ApplicationError ErrorType = "application"
)

// Valid reports whether the error type is one defined by RFC 6241.
func (et ErrorType) Valid() bool {
	switch et {
	case TransportError, RPCLayerError, ProtocolError, ApplicationError:
		return true
	}
	return false
}

// ErrorSeverity is the severity of an rpc-error.
type ErrorSeverity string

// Error severities
const (
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// Valid reports whether the severity is one defined by RFC 6241.
func (es ErrorSeverity) Valid() bool {
	return es == SeverityError || es == SeverityWarning
}

// RPCError defines an error reply to a RPC request
type RPCError struct {
	Type     ErrorType     `xml:"error-type"`
	Tag      string        `xml:"error-tag"`
	Severity ErrorSeverity `xml:"error-severity"`
	AppTag   string        `xml:"error-app-tag,omitempty"`
	Path     string        `xml:"error-path,omitempty"`
	Message  string        `xml:"error-message,omitempty"`
	Info     *ErrorInfo    `xml:"error-info,omitempty"`
}

// ErrorInfo holds the unparsed content of an <error-info> element.
type ErrorInfo struct {
	Content string `xml:",innerxml"`
}

// Normalise trims the surrounding whitespace left by indented replies.
func (re *RPCError) Normalise() {
	re.Type = ErrorType(strings.TrimSpace(string(re.Type)))
	re.Tag = strings.TrimSpace(re.Tag)
	re.Severity = ErrorSeverity(strings.TrimSpace(string(re.Severity)))
	re.AppTag = strings.TrimSpace(re.AppTag)
	re.Path = strings.TrimSpace(re.Path)
	re.Message = strings.TrimSpace(re.Message)
}

// Error generates a string representation of the RPC error
func (re *RPCError) Error() string {
	if re.Message == "" {
		return fmt.Sprintf("netconf rpc [%s] %s", re.Severity, re.Tag)
	}
	return fmt.Sprintf("netconf rpc [%s] %s '%s'", re.Severity, re.Tag, re.Message)
}

// RPCReply is the outcome of an rpc: Ok, or one or more rpc-errors.
type RPCReply struct {
	MessageID string
	Xmlns     string
	Ok        bool
	Errors    []RPCError
}

// Succeeded reports whether the reply carries no rpc-error.
func (r *RPCReply) Succeeded() bool {
	return len(r.Errors) == 0
}

// Err delivers the error severity rpc-errors of the reply as a single error, or nil
// when there are none.
func (r *RPCReply) Err() error {
	var result *multierror.Error
	for i := range r.Errors {
		if r.Errors[i].Severity == SeverityError {
			result = multierror.Append(result, &r.Errors[i])
		}
	}
	return result.ErrorOrNil()
}
