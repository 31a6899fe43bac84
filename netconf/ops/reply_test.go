package ops

import (
	"testing"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
	assert "github.com/stretchr/testify/require"
)

const lockDenied = `<rpc-reply message-id="2" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
  <rpc-error>
    <error-type>protocol</error-type>
    <error-tag>lock-denied</error-tag>
    <error-severity>error</error-severity>
    <error-message xml:lang="en">Lock failed, lock is already held</error-message>
    <error-info><session-id>454</session-id></error-info>
  </rpc-error>
</rpc-reply>`

func TestParseOkReply(t *testing.T) {
	reply, err := (&LockRequest{}).ParseReply(`<rpc-reply message-id="1" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"><ok/></rpc-reply>`)
	assert.NoError(t, err)
	assert.True(t, reply.Succeeded())
	assert.True(t, reply.Ok)
	assert.Equal(t, "1", reply.MessageID)
	assert.Equal(t, common.NetconfNS, reply.Xmlns)
	assert.NoError(t, reply.Err())
}

func TestParseErrorReply(t *testing.T) {
	reply, err := (&LockRequest{}).ParseReply(lockDenied)
	assert.NoError(t, err, "rpc-error is not a parse failure")
	assert.False(t, reply.Succeeded())
	assert.Len(t, reply.Errors, 1)

	re := reply.Errors[0]
	assert.Equal(t, common.ProtocolError, re.Type)
	assert.Equal(t, "lock-denied", re.Tag)
	assert.Equal(t, common.SeverityError, re.Severity)
	assert.Equal(t, "Lock failed, lock is already held", re.Message)
	assert.Equal(t, "<session-id>454</session-id>", re.Info.Content)
	assert.Contains(t, reply.Err().Error(), "lock-denied")
}

func TestParseReplyFailures(t *testing.T) {
	for name, raw := range map[string]string{
		"not xml":       `<rpc-reply`,
		"not a reply":   `<hello/>`,
		"empty reply":   `<rpc-reply message-id="1"></rpc-reply>`,
		"unknown type":  `<rpc-reply><rpc-error><error-type>bogus</error-type><error-tag>x</error-tag><error-severity>error</error-severity></rpc-error></rpc-reply>`,
		"unknown sever": `<rpc-reply><rpc-error><error-type>rpc</error-type><error-tag>x</error-tag><error-severity>fatal</error-severity></rpc-error></rpc-reply>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := (&UnlockRequest{}).ParseReply(raw)
			assert.True(t, errors.Is(err, ErrMalformedReply), "Expecting malformed reply, got %v", err)
		})
	}
}

func TestParseDataReply(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"data",
			`<rpc-reply message-id="1" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"><data><top xmlns="urn:t"><a>1</a></top></data></rpc-reply>`,
			`<data><top xmlns="urn:t"><a>1</a></top></data>`,
		},
		{
			"empty data",
			`<rpc-reply message-id="1"><data/></rpc-reply>`,
			`<data/>`,
		},
		{
			"nested data element",
			"<rpc-reply message-id=\"1\">\n  <data>\n    <data>x</data>\n  </data>\n</rpc-reply>",
			"<data>\n    <data>x</data>\n  </data>",
		},
		{
			"prefixed",
			`<nc:rpc-reply xmlns:nc="urn:ietf:params:xml:ns:netconf:base:1.0" message-id="1"><nc:data><a/></nc:data></nc:rpc-reply>`,
			`<nc:data><a/></nc:data>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := (&GetRequest{}).ParseReply(tt.raw)
			assert.NoError(t, err)
			data, err := reply.Data()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, data)
		})
	}
}

func TestParseDataReplyAlternatives(t *testing.T) {
	reply, err := (&GetConfigRequest{}).ParseReply(`<rpc-reply message-id="1"><ok/></rpc-reply>`)
	assert.NoError(t, err)
	data, err := reply.Data()
	assert.NoError(t, err)
	assert.Empty(t, data)

	reply, err = (&GetConfigRequest{}).ParseReply(lockDenied)
	assert.NoError(t, err)
	_, err = reply.Data()
	assert.True(t, errors.Is(err, ErrNoData))

	_, err = (&GetConfigRequest{}).ParseReply(`<rpc-reply message-id="1"/>`)
	assert.True(t, errors.Is(err, ErrMalformedReply))
}
