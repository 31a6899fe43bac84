package ops

import (
	"testing"

	"github.com/damianoneill/ncclient/netconf/common"
	"github.com/pkg/errors"
	assert "github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	base := common.Capabilities{common.Base}
	all := common.Capabilities{
		common.Base, common.Base11, common.WritableRunning, common.Candidate, common.ConfirmedCommit,
		common.RollbackOnError, common.Validate11, common.Startup, common.URLCapability("file", "https"),
	}

	tests := []struct {
		name string
		req  Request
		caps common.Capabilities
		want error
	}{
		{"lock running", &LockRequest{Target: common.RunningCfg}, base, nil},
		{"lock candidate", &LockRequest{Target: common.CandidateCfg}, base, ErrMissingCapability},
		{"lock candidate supported", &LockRequest{Target: common.CandidateCfg}, all, nil},
		{"unlock candidate", &UnlockRequest{Target: common.CandidateCfg}, base, ErrMissingCapability},
		{"get", &GetRequest{}, nil, nil},
		{"get-config candidate", &GetConfigRequest{Source: common.CandidateCfg}, base, ErrMissingCapability},
		{"get-config running", &GetConfigRequest{Source: common.RunningCfg}, base, nil},
		{"edit running", NewEditConfigRequest(common.RunningCfg, Cfg("<a/>")), base, ErrMissingCapability},
		{"edit running writable", NewEditConfigRequest(common.RunningCfg, Cfg("<a/>")), all, nil},
		{"edit candidate", NewEditConfigRequest(common.CandidateCfg, Cfg("<a/>")), base, ErrMissingCapability},
		{
			"edit rollback",
			NewEditConfigRequest(common.CandidateCfg, Cfg("<a/>"), ErrorOption(RollbackOnErrorErrOpt)),
			common.Capabilities{common.Candidate}, ErrMissingCapability,
		},
		{
			"edit stop on error",
			NewEditConfigRequest(common.CandidateCfg, Cfg("<a/>"), ErrorOption(StopOnErrorErrOpt)),
			common.Capabilities{common.Candidate}, nil,
		},
		{
			"edit test option",
			NewEditConfigRequest(common.CandidateCfg, Cfg("<a/>"), TestOption(TestOnlyOpt)),
			common.Capabilities{common.Candidate, common.Validate}, ErrMissingCapability,
		},
		{
			"edit url scheme",
			NewEditConfigRequest(common.CandidateCfg, CfgURL("ftp://h/c.xml")),
			all, ErrMissingCapability,
		},
		{"edit without config", NewEditConfigRequest(common.CandidateCfg, nil), all, ErrInvalidRequest},
		{
			"copy to running",
			&CopyConfigRequest{Target: common.DsName(common.RunningCfg), Source: common.DsName(common.StartupCfg)},
			base, ErrMissingCapability,
		},
		{
			"copy from candidate",
			&CopyConfigRequest{Target: common.DsName(common.StartupCfg), Source: common.DsName(common.CandidateCfg)},
			base, ErrMissingCapability,
		},
		{
			"copy to url without capability",
			&CopyConfigRequest{Target: common.DsURL("file:///tmp/b.xml"), Source: common.DsName(common.StartupCfg)},
			base, ErrMissingCapability,
		},
		{
			"copy to url",
			&CopyConfigRequest{Target: common.DsURL("FILE:///tmp/b.xml"), Source: common.DsName(common.RunningCfg)},
			all, nil,
		},
		{
			"copy from url without scheme",
			&CopyConfigRequest{Target: common.DsName(common.StartupCfg), Source: common.DsURL("/tmp/b.xml")},
			all, ErrInvalidRequest,
		},
		{"delete running", &DeleteConfigRequest{Target: common.DsName(common.RunningCfg)}, all, ErrInvalidRequest},
		{"delete startup", &DeleteConfigRequest{Target: common.DsName(common.StartupCfg)}, base, nil},
		{"delete candidate", &DeleteConfigRequest{Target: common.DsName(common.CandidateCfg)}, base, ErrMissingCapability},
		{"delete url", &DeleteConfigRequest{Target: common.DsURL("https://h/c.xml")}, all, nil},
		{"kill-session", &KillSessionRequest{SessionID: 3}, nil, nil},
		{"commit", &CommitRequest{}, base, ErrMissingCapability},
		{"commit candidate", &CommitRequest{}, common.Capabilities{common.Candidate}, nil},
		{
			"confirmed commit",
			&CommitRequest{Confirmed: &ConfirmedCommitParams{}},
			common.Capabilities{common.Candidate}, ErrMissingCapability,
		},
		{"confirmed commit supported", &CommitRequest{Confirmed: &ConfirmedCommitParams{}}, all, nil},
		{"discard-changes", &DiscardChangesRequest{}, base, ErrMissingCapability},
		{"cancel-commit", &CancelCommitRequest{}, common.Capabilities{common.Candidate}, ErrMissingCapability},
		{"cancel-commit supported", &CancelCommitRequest{PersistID: "p"}, all, nil},
		{"validate candidate", &ValidateRequest{Source: ValidateDatastore(common.CandidateCfg)}, base, ErrMissingCapability},
		{"validate config", &ValidateRequest{Source: ValidateConfig("<a/>")}, base, nil},
		{"validate url", &ValidateRequest{Source: ValidateURL("https://h/c.xml")}, base, ErrMissingCapability},
		{"validate no source", &ValidateRequest{}, all, ErrInvalidRequest},
		{"close-session", &CloseSessionRequest{}, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.ValidateRequest(tt.caps)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "Expecting %v, got %v", tt.want, err)
		})
	}
}

func TestValidateURLMessages(t *testing.T) {
	req := &CopyConfigRequest{Target: common.DsURL("ftp://h/b.xml"), Source: common.DsName(common.RunningCfg)}

	err := req.ValidateRequest(common.Capabilities{common.Base})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), ":url:1.0")

	err = req.ValidateRequest(common.Capabilities{common.URLCapability("file", "https")})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "[file https]")
}
