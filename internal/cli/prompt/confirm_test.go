package prompt

import (
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretYes(t *testing.T) {
	for _, in := range []string{"y", "Y", "yes", "YES"} {
		ok, err := interpret(in, nil, false)
		require.NoError(t, err, "input %q", in)
		assert.True(t, ok, "input %q", in)
	}
}

func TestInterpretNo(t *testing.T) {
	ok, err := interpret("n", promptui.ErrAbort, true)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInterpretEmptyUsesDefault(t *testing.T) {
	ok, err := interpret("", promptui.ErrAbort, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = interpret("", promptui.ErrAbort, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInterpretInterrupt(t *testing.T) {
	_, err := interpret("", promptui.ErrInterrupt, true)
	assert.ErrorIs(t, err, ErrAborted)
}
