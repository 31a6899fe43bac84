package command

import (
	"context"
	"testing"

	"github.com/damianoneill/ncclient/netconf/client"
	"github.com/damianoneill/ncclient/netconf/client/mocks"
	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/damianoneill/ncclient/netconf/ops"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	assert "github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

var okReply = &client.Reply[*ops.OkResponse]{
	Result:     &ops.OkResponse{RPCReply: common.RPCReply{MessageID: "1", Ok: true}},
	RequestXML: "<rpc/>",
	ReplyXML:   "<rpc-reply><ok/></rpc-reply>",
}

var lockDenied = &client.Reply[*ops.OkResponse]{
	Result: &ops.OkResponse{RPCReply: common.RPCReply{MessageID: "1", Errors: []common.RPCError{
		{Type: common.ProtocolError, Tag: "lock-denied", Severity: common.SeverityError},
	}}},
}

var helloReply = &client.Reply[*ops.HelloResponse]{
	Result: &ops.HelloResponse{SessionID: 42, Capabilities: common.Capabilities{common.Base}},
	RequestXML: `<hello xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"><capabilities>` +
		`<capability>urn:ietf:params:netconf:base:1.0</capability></capabilities></hello>`,
	ReplyXML: `<hello xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"><capabilities>` +
		`<capability>urn:ietf:params:netconf:base:1.0</capability></capabilities><session-id>42</session-id></hello>`,
}

// connectedHandler delivers a handler whose hello has been answered by the mock session.
func connectedHandler(t *testing.T, ms *mocks.MockSession, options ...HandlerOption) *Handler {
	var gotTarget string
	var gotCfg *ssh.ClientConfig
	factory := func(ctx context.Context, target string, sshcfg *ssh.ClientConfig, caps common.Capabilities,
		cfg *client.Config,
	) client.Session {
		gotTarget, gotCfg = target, sshcfg
		return ms
	}

	ms.EXPECT().SetValidateCapabilities(true)
	ms.EXPECT().Connect(gomock.Any()).Return(nil)
	ms.EXPECT().Hello(gomock.Any()).Return(helloReply, nil)

	h := NewHandler(common.Capabilities{common.Base}, nil, append(options, WithSessionFactory(factory))...)
	res, err := h.Handle(context.Background(), Hello{Address: "10.0.0.1", Port: 830, User: "admin", Password: "secret"})
	assert.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.Equal(t, "hello", res.Command)
	assert.Equal(t, uint32(42), res.Typed.(*ops.HelloResponse).SessionID)
	assert.Equal(t, helloReply.RequestXML, res.RequestXML)
	assert.Equal(t, helloReply.ReplyXML, res.ReplyXML)

	assert.Equal(t, "10.0.0.1:830", gotTarget)
	assert.Equal(t, "admin", gotCfg.User)
	assert.Same(t, ms, h.Session())
	return h
}

func TestCommandsBeforeHello(t *testing.T) {
	h := NewHandler(nil, nil)
	for _, cmd := range []Command{Lock{}, Get{}, Commit{}, CloseSession{}} {
		_, err := h.Handle(context.Background(), cmd)
		assert.True(t, errors.Is(err, ErrNoSession), "%s should need a session", cmd.Name())
	}
}

func TestHelloFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)

	factory := func(context.Context, string, *ssh.ClientConfig, common.Capabilities, *client.Config) client.Session {
		return ms
	}
	ms.EXPECT().SetValidateCapabilities(false)
	ms.EXPECT().Connect(gomock.Any()).Return(nil)
	ms.EXPECT().Hello(gomock.Any()).Return(nil, client.ErrNoCommonBase)
	ms.EXPECT().Close()

	h := NewHandler(nil, nil, WithSessionFactory(factory), WithValidation(false))
	_, err := h.Handle(context.Background(), Hello{Address: "localhost", Port: 830})
	assert.True(t, errors.Is(err, client.ErrNoCommonBase))
	assert.Nil(t, h.Session())
}

func TestConnectFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)

	factory := func(context.Context, string, *ssh.ClientConfig, common.Capabilities, *client.Config) client.Session {
		return ms
	}
	ms.EXPECT().SetValidateCapabilities(true)
	ms.EXPECT().Connect(gomock.Any()).Return(errors.New("connection refused"))
	ms.EXPECT().Close()

	h := NewHandler(nil, nil, WithSessionFactory(factory))
	_, err := h.Handle(context.Background(), Hello{Address: "localhost", Port: 830})
	assert.EqualError(t, err, "failed to connect to localhost:830: connection refused")
}

func TestHelloWhileActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)
	h := connectedHandler(t, ms)

	ms.EXPECT().State().Return(client.Active)
	ms.EXPECT().ID().Return(uint32(42))
	_, err := h.Handle(context.Background(), Hello{Address: "localhost", Port: 830})
	assert.True(t, errors.Is(err, client.ErrAlreadyConnected))
}

func TestCommandRouting(t *testing.T) {
	filter := common.SubtreeFilter("<top/>")
	edit := ops.NewEditConfigRequest(common.CandidateCfg, ops.Cfg("<top/>"))
	from := common.ConfigWaypoint{Datastore: common.RunningCfg}
	to := common.ConfigWaypoint{URL: "file://backup.xml"}
	params := ops.ConfirmedCommitParams{ConfirmTimeout: 60}
	dataReply := &client.Reply[*ops.DataResponse]{Result: &ops.DataResponse{}}

	tests := []struct {
		cmd    Command
		expect func(ms *mocks.MockSession)
	}{
		{Lock{Target: common.CandidateCfg}, func(ms *mocks.MockSession) {
			ms.EXPECT().Lock(gomock.Any(), common.CandidateCfg).Return(okReply, nil)
		}},
		{Unlock{Target: common.RunningCfg}, func(ms *mocks.MockSession) {
			ms.EXPECT().Unlock(gomock.Any(), common.RunningCfg).Return(okReply, nil)
		}},
		{Get{Filter: filter}, func(ms *mocks.MockSession) {
			ms.EXPECT().Get(gomock.Any(), filter).Return(dataReply, nil)
		}},
		{GetConfig{Source: common.StartupCfg, Filter: filter}, func(ms *mocks.MockSession) {
			ms.EXPECT().GetConfig(gomock.Any(), common.StartupCfg, filter).Return(dataReply, nil)
		}},
		{EditConfig{Request: edit}, func(ms *mocks.MockSession) {
			ms.EXPECT().EditConfig(gomock.Any(), edit).Return(okReply, nil)
		}},
		{CopyConfig{From: from, To: to}, func(ms *mocks.MockSession) {
			ms.EXPECT().CopyConfig(gomock.Any(), from, to).Return(okReply, nil)
		}},
		{DeleteConfig{Target: to}, func(ms *mocks.MockSession) {
			ms.EXPECT().DeleteConfig(gomock.Any(), to).Return(okReply, nil)
		}},
		{KillSession{SessionID: 7}, func(ms *mocks.MockSession) {
			ms.EXPECT().KillSession(gomock.Any(), uint32(7)).Return(okReply, nil)
		}},
		{Commit{}, func(ms *mocks.MockSession) {
			ms.EXPECT().Commit(gomock.Any()).Return(okReply, nil)
		}},
		{ConfirmedCommit{Params: params}, func(ms *mocks.MockSession) {
			ms.EXPECT().ConfirmedCommit(gomock.Any(), params).Return(okReply, nil)
		}},
		{DiscardChanges{}, func(ms *mocks.MockSession) {
			ms.EXPECT().DiscardChanges(gomock.Any()).Return(okReply, nil)
		}},
		{CancelCommit{PersistID: "p"}, func(ms *mocks.MockSession) {
			ms.EXPECT().CancelCommit(gomock.Any(), "p").Return(okReply, nil)
		}},
		{Validate{Source: ops.ValidateDatastore(common.CandidateCfg)}, func(ms *mocks.MockSession) {
			ms.EXPECT().Validate(gomock.Any(), ops.ValidateDatastore(common.CandidateCfg)).Return(okReply, nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.Name(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := mocks.NewMockSession(ctrl)
			h := connectedHandler(t, ms)

			tt.expect(ms)
			ms.EXPECT().State().Return(client.Active)

			res, err := h.Handle(context.Background(), tt.cmd)
			assert.NoError(t, err)
			assert.True(t, res.Succeeded)
			assert.Equal(t, tt.cmd.Name(), res.Command)
			assert.Same(t, ms, h.Session())
		})
	}
}

func TestRPCErrorIsAResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)
	h := connectedHandler(t, ms)

	ms.EXPECT().Lock(gomock.Any(), common.CandidateCfg).Return(lockDenied, nil)
	ms.EXPECT().State().Return(client.Active)

	res, err := h.Handle(context.Background(), Lock{Target: common.CandidateCfg})
	assert.NoError(t, err)
	assert.False(t, res.Succeeded)
	assert.Equal(t, "lock-denied", res.Typed.(*ops.OkResponse).Errors[0].Tag)
	assert.EqualError(t, res.Err(), "1 error occurred:\n\t* netconf rpc [error] lock-denied\n\n")
}

func TestResultErr(t *testing.T) {
	warned := &Result{Typed: &ops.OkResponse{RPCReply: common.RPCReply{Errors: []common.RPCError{
		{Type: common.ApplicationError, Tag: "partial-operation", Severity: common.SeverityWarning},
	}}}}
	assert.NoError(t, warned.Err())

	hello := &Result{Typed: &ops.HelloResponse{SessionID: 1}}
	assert.NoError(t, hello.Err())
}

func TestCloseSessionForgetsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)
	h := connectedHandler(t, ms)

	ms.EXPECT().CloseSession(gomock.Any()).Return(okReply, nil)

	res, err := h.Handle(context.Background(), CloseSession{})
	assert.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.Nil(t, h.Session())

	_, err = h.Handle(context.Background(), Commit{})
	assert.True(t, errors.Is(err, ErrNoSession))
}

func TestClosedSessionIsForgotten(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)
	h := connectedHandler(t, ms)

	ms.EXPECT().Get(gomock.Any(), nil).Return(nil, client.ErrReplyTimeout)
	ms.EXPECT().State().Return(client.Closed)

	_, err := h.Handle(context.Background(), Get{})
	assert.True(t, errors.Is(err, client.ErrReplyTimeout))
	assert.EqualError(t, err, "get failed: timed out waiting for reply")
	assert.Nil(t, h.Session())
}

type unknownCommand struct{}

func (unknownCommand) Name() string { return "unknown" }

func TestUnknownCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)
	h := connectedHandler(t, ms)

	ms.EXPECT().State().Return(client.Active)
	_, err := h.Handle(context.Background(), unknownCommand{})
	assert.True(t, errors.Is(err, ErrUnknownCommand))
}

func TestHandlerClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	ms := mocks.NewMockSession(ctrl)
	h := connectedHandler(t, ms)

	ms.EXPECT().Close()
	h.Close()
	assert.Nil(t, h.Session())
	h.Close()
}
