package domainerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_HasCode(t *testing.T) {
	err := New(CodeInvalidInput, "igra number cannot be empty")
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeInvalidInput))
	assert.False(t, HasCode(err, CodeNotFound))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("truncated read")
	err := Wrap(cause, CodeMalformedDBF, "record 4")

	require.True(t, HasCode(err, CodeMalformedDBF))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "truncated read")
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(New(CodeNotFound, "no such record"))
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, code)

	_, ok = CodeOf(errors.New("plain error"))
	assert.False(t, ok)

	_, ok = CodeOf(nil)
	assert.False(t, ok)
}

func TestHasCode_NonDomainError(t *testing.T) {
	assert.False(t, HasCode(errors.New("boom"), CodeInternal))
}
