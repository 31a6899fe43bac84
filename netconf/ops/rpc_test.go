package ops

import (
	"testing"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
	assert "github.com/stretchr/testify/require"
)

const rpcPrefix = `<rpc message-id="1" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">`

func TestMarshalRPC(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"lock", &LockRequest{Target: common.CandidateCfg}, `<lock><target><candidate/></target></lock>`},
		{"unlock", &UnlockRequest{Target: common.RunningCfg}, `<unlock><target><running/></target></unlock>`},
		{"get", &GetRequest{}, `<get/>`},
		{
			"get subtree",
			&GetRequest{Filter: common.SubtreeFilter(`<t:top/>`, common.Namespace{ID: "t", Path: "urn:t"})},
			`<get><filter type="subtree" xmlns:t="urn:t"><t:top/></filter></get>`,
		},
		{
			"get xpath",
			&GetRequest{Filter: common.XPathFilter(`/t:top`, common.Namespace{ID: "t", Path: "urn:t"})},
			`<get><filter type="xpath" select="/t:top" xmlns:t="urn:t"></filter></get>`,
		},
		{"get-config", &GetConfigRequest{Source: common.RunningCfg}, `<get-config><source><running/></source></get-config>`},
		{
			"get-config subtree",
			&GetConfigRequest{Source: common.StartupCfg, Filter: common.SubtreeFilter(`<top/>`)},
			`<get-config><source><startup/></source><filter type="subtree"><top/></filter></get-config>`,
		},
		{
			"edit-config",
			NewEditConfigRequest(common.CandidateCfg, Cfg(`<top/>`),
				DefaultOperation(MergeOp), TestOption(TestThenSetOpt), ErrorOption(RollbackOnErrorErrOpt)),
			`<edit-config><target><candidate/></target><default-operation>merge</default-operation>` +
				`<test-option>test-then-set</test-option><error-option>rollback-on-error</error-option>` +
				`<config><top/></config></edit-config>`,
		},
		{
			"edit-config url",
			NewEditConfigRequest(common.RunningCfg, CfgURL("file:///tmp/c.xml")),
			`<edit-config><target><running/></target><url>file:///tmp/c.xml</url></edit-config>`,
		},
		{
			"copy-config",
			&CopyConfigRequest{Target: common.DsName(common.RunningCfg), Source: common.DsURL("https://h/c.xml")},
			`<copy-config><target><running/></target><source><url>https://h/c.xml</url></source></copy-config>`,
		},
		{
			"delete-config",
			&DeleteConfigRequest{Target: common.DsName(common.StartupCfg)},
			`<delete-config><target><startup/></target></delete-config>`,
		},
		{"kill-session", &KillSessionRequest{SessionID: 4}, `<kill-session><session-id>4</session-id></kill-session>`},
		{"commit", &CommitRequest{}, `<commit/>`},
		{
			"confirmed commit",
			&CommitRequest{Confirmed: &ConfirmedCommitParams{ConfirmTimeout: 120, Persist: "p1"}},
			`<commit><confirmed/><confirm-timeout>120</confirm-timeout><persist>p1</persist></commit>`,
		},
		{
			"confirming commit",
			&CommitRequest{Confirmed: &ConfirmedCommitParams{PersistID: "p1"}},
			`<commit><confirmed/><persist-id>p1</persist-id></commit>`,
		},
		{"discard-changes", &DiscardChangesRequest{}, `<discard-changes/>`},
		{"cancel-commit", &CancelCommitRequest{}, `<cancel-commit/>`},
		{"cancel-commit persist", &CancelCommitRequest{PersistID: "p1"}, `<cancel-commit><persist-id>p1</persist-id></cancel-commit>`},
		{
			"validate datastore",
			&ValidateRequest{Source: ValidateDatastore(common.CandidateCfg)},
			`<validate><source><candidate/></source></validate>`,
		},
		{
			"validate config",
			&ValidateRequest{Source: ValidateConfig(`<top/>`)},
			`<validate><source><config><top/></config></source></validate>`,
		},
		{
			"validate url",
			&ValidateRequest{Source: ValidateURL("ftp://h/c.xml")},
			`<validate><source><url>ftp://h/c.xml</url></source></validate>`,
		},
		{"close-session", &CloseSessionRequest{}, `<close-session/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.MarshalRPC("1")
			assert.NoError(t, err, "Not expecting marshal to fail")
			assert.Equal(t, rpcPrefix+tt.want+`</rpc>`, got)
		})
	}
}

func TestRawPayloadIsNotEscaped(t *testing.T) {
	payload := `<top xmlns="urn:t"><name>a&amp;b</name><v>"q" 'x' &lt;</v></top>`

	got, err := NewEditConfigRequest(common.CandidateCfg, Cfg(payload)).MarshalRPC("7")
	assert.NoError(t, err)
	assert.Contains(t, got, `<config>`+payload+`</config>`, "Payload should be sent verbatim")

	got, err = (&GetRequest{Filter: common.SubtreeFilter(payload)}).MarshalRPC("8")
	assert.NoError(t, err)
	assert.Contains(t, got, `<filter type="subtree">`+payload+`</filter>`, "Filter should be sent verbatim")
}

func TestStructuredValuesAreEscaped(t *testing.T) {
	got, err := (&CancelCommitRequest{PersistID: `a<b&c`}).MarshalRPC("1")
	assert.NoError(t, err)
	assert.Contains(t, got, `<persist-id>a&lt;b&amp;c</persist-id>`)
}

func TestMessageIDIsCarried(t *testing.T) {
	got, err := (&CloseSessionRequest{}).MarshalRPC("4294967295")
	assert.NoError(t, err)
	assert.Equal(t, `<rpc message-id="4294967295" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"><close-session/></rpc>`, got)
}

func TestMarshalFailures(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"bad datastore name", &LockRequest{Target: "two words"}},
		{"empty datastore", &GetConfigRequest{}},
		{"bad filter type", &GetRequest{Filter: &common.Filter{Type: "regex", Value: ".*"}}},
		{"bad namespace prefix", &GetRequest{Filter: common.XPathFilter("/a", common.Namespace{ID: "1x", Path: "urn:x"})}},
		{"edit without config", NewEditConfigRequest(common.RunningCfg, nil)},
		{"edit with both", NewEditConfigRequest(common.RunningCfg, Cfg("<a/>"), func(r *EditConfigRequest) { r.URL = "file:///a" })},
		{"edit bad option", NewEditConfigRequest(common.RunningCfg, Cfg("<a/>"), DefaultOperation("upsert"))},
		{"validate without source", &ValidateRequest{}},
		{"validate with two sources", &ValidateRequest{Source: ValidateSource{Datastore: common.RunningCfg, URL: "file:///a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.MarshalRPC("1")
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRequest), "Expecting invalid request, got %v", err)
		})
	}
}

func TestPayloadPlaceholderCollision(t *testing.T) {
	p := &payloads{}
	token := p.hold("<a/>")
	_, err := p.splice("<x>" + token + token + "</x>")
	assert.Error(t, err, "Expecting duplicated placeholder to fail")

	p = &payloads{}
	first := p.hold("<a/>")
	second := p.hold("<b>" + first + "</b>")
	_, err = p.splice(first + second)
	assert.Error(t, err, "Expecting placeholder inside payload to fail")

	p = &payloads{}
	p.hold("<a/>")
	_, err = p.splice("<x/>")
	assert.Error(t, err, "Expecting missing placeholder to fail")
}

func TestHelloMarshal(t *testing.T) {
	got, err := (&HelloRequest{}).Marshal()
	assert.NoError(t, err)
	assert.Equal(t, `<hello xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"><capabilities>`+
		`<capability>urn:ietf:params:netconf:base:1.0</capability></capabilities></hello>`, got)

	got, err = (&HelloRequest{Capabilities: common.DefaultCapabilities}).Marshal()
	assert.NoError(t, err)
	assert.Contains(t, got, `<capability>urn:ietf:params:netconf:base:1.1</capability>`)
	assert.NotContains(t, got, "message-id")
}

func TestParseHello(t *testing.T) {
	raw := `<?xml version="1.0" encoding="UTF-8"?>
<hello xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
  <capabilities>
    <capability>urn:ietf:params:netconf:base:1.1</capability>
    <capability>urn:ietf:params:netconf:capability:candidate:1.0</capability>
    <capability>urn:ietf:params:netconf:capability:url:1.0?scheme=file,https</capability>
    <capability>http://example.com/ns/acme?module=acme</capability>
  </capabilities>
  <session-id> 42 </session-id>
</hello>`

	hello, err := ParseHello(raw)
	assert.NoError(t, err)
	assert.Equal(t, uint32(42), hello.SessionID)
	assert.True(t, hello.Succeeded())
	assert.Equal(t, common.Capabilities{
		common.Base11,
		common.Candidate,
		common.URLCapability("file", "https"),
		common.OtherCapability("http://example.com/ns/acme?module=acme"),
	}, hello.Capabilities)
}

func TestParseHelloFailures(t *testing.T) {
	for name, raw := range map[string]string{
		"not xml":         `<hello`,
		"not a hello":     `<rpc-reply><ok/></rpc-reply>`,
		"no session id":   `<hello><capabilities><capability>urn:ietf:params:netconf:base:1.0</capability></capabilities></hello>`,
		"bad session id":  `<hello><session-id>abc</session-id></hello>`,
		"zero session id": `<hello><session-id>0</session-id></hello>`,
		"too large":       `<hello><session-id>4294967296</session-id></hello>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseHello(raw)
			assert.True(t, errors.Is(err, ErrMalformedReply), "Expecting malformed reply, got %v", err)
		})
	}
}
