package ops

// DefaultOperationType is the default-operation parameter of edit-config.
type DefaultOperationType string

// TestOptionType is the test-option parameter of edit-config.
type TestOptionType string

// ErrorOptionType is the error-option parameter of edit-config.
type ErrorOptionType string

const (
	// Edit Config Error Options
	StopOnErrorErrOpt     ErrorOptionType = "stop-on-error"
	ContinueOnErrorErrOpt ErrorOptionType = "continue-on-error"
	RollbackOnErrorErrOpt ErrorOptionType = "rollback-on-error"

	// Edit Config Operation Types
	MergeOp   DefaultOperationType = "merge"
	ReplaceOp DefaultOperationType = "replace"
	NoneOp    DefaultOperationType = "none"

	// Edit Config Test Options
	TestThenSetOpt TestOptionType = "test-then-set"
	SetOpt         TestOptionType = "set"
	TestOnlyOpt    TestOptionType = "test-only"
)

func (o DefaultOperationType) valid() bool {
	switch o {
	case "", MergeOp, ReplaceOp, NoneOp:
		return true
	}
	return false
}

func (o TestOptionType) valid() bool {
	switch o {
	case "", TestThenSetOpt, SetOpt, TestOnlyOpt:
		return true
	}
	return false
}

func (o ErrorOptionType) valid() bool {
	switch o {
	case "", StopOnErrorErrOpt, ContinueOnErrorErrOpt, RollbackOnErrorErrOpt:
		return true
	}
	return false
}
