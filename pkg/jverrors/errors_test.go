package jverrors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunicationFailureMessage(t *testing.T) {
	f := CommunicationFailure(-402)
	assert.Equal(t, KindCommunication, f.Kind)
	assert.Equal(t, NativeCode(-402), f.Code)
	assert.Contains(t, f.Error(), "code=-402")
	assert.Contains(t, f.Error(), "unexpected size")
}

func TestCommunicationFailureUnclassifiedCode(t *testing.T) {
	f := CommunicationFailure(-7777)
	assert.Contains(t, f.Message, "unclassified")
}

func TestTimeoutFailure(t *testing.T) {
	f := TimeoutFailure()
	require.True(t, f.IsTimeout())
	assert.Equal(t, NativeTimeout, f.Code)
}

func TestRecoverableBySkip(t *testing.T) {
	assert.True(t, RecoverableBySkip(-402))
	assert.True(t, RecoverableBySkip(-403))
	assert.True(t, RecoverableBySkip(-411))
	assert.False(t, RecoverableBySkip(-111))
	assert.False(t, RecoverableBySkip(-1)) // control signal, never classified
}

func TestLibraryErrorWrapsNativeFailure(t *testing.T) {
	native := ActivationFailure("could not attach to JVDTLab.JVLink")
	le := Native(native)
	assert.ErrorIs(t, le, native)
	assert.Contains(t, le.Error(), "activation_failure")
}

func TestLibraryErrorValidation(t *testing.T) {
	le := Validation("sid must be <= 64 bytes")
	assert.Equal(t, KindValidation, le.Kind)
	assert.Contains(t, le.Error(), "sid must be")
}

func TestIsInvalidState(t *testing.T) {
	le := Native(InvalidStateFailure("operation already in flight"))
	assert.True(t, IsInvalidState(le))
	assert.False(t, IsInvalidState(Validation("x")))
	assert.False(t, IsInvalidState(Native(ActivationFailure("x"))))
}

func TestIsTimeout(t *testing.T) {
	le := Native(TimeoutFailure())
	assert.True(t, IsTimeout(le))
	assert.False(t, IsTimeout(Native(CommunicationFailure(-111))))
	assert.False(t, IsTimeout(Cancelled()))
}

func TestEventQueueOverflowError(t *testing.T) {
	le := EventQueueOverflow(7)
	assert.Equal(t, 7, le.Dropped)
	assert.Contains(t, le.Error(), "7 event")
}
