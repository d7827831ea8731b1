// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/testbed/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "precondition_error",
			code:    errors.ErrPrecondition,
			message: "no workspace for this test",
			wantStr: "[PRECONDITION] no workspace for this test",
		},
		{
			name:    "module_not_found_error",
			code:    errors.ErrModuleNotFound,
			message: "module pkg.mod not on search path",
			wantStr: "[MODULE_NOT_FOUND] module pkg.mod not on search path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	base := stderrors.New("permission denied")

	err := errors.Wrap(base, errors.ErrFileWrite, "writing module file")
	require.NotNil(t, err)
	assert.Equal(t, "[FILE_WRITE] writing module file: permission denied", err.Error())
	assert.True(t, stderrors.Is(err, base))

	assert.Nil(t, errors.Wrap(nil, errors.ErrFileWrite, "ignored"))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrPrecondition, "workspace disabled for %s", "TestX")

	assert.True(t, errors.IsErrorCode(err, errors.ErrPrecondition))
	assert.False(t, errors.IsErrorCode(err, errors.ErrFileWrite))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrPrecondition))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrModuleParse, errors.GetErrorCode(errors.New(errors.ErrModuleParse, "bad toml")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrWorkspaceCreate, "mkdir failed").
		WithDetail("path", "/tmp/tb-x")

	details := errors.GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "/tmp/tb-x", details["path"])
}

func TestErrorIsMatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrPrecondition, "one")
	b := errors.New(errors.ErrPrecondition, "another")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, errors.New(errors.ErrNotFound, "other")))
}
