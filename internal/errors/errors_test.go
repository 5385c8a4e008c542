package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	assert.Equal(t, "[INPUT_ERROR] bad", Input("bad").Error())

	err := Internal("save failed", stderrors.New("conn reset"))
	assert.Equal(t, "[INTERNAL_ERROR] save failed: conn reset", err.Error())
}

func TestIsType_ThroughWrapping(t *testing.T) {
	base := New(TypeInvalidCostFormat, "cost must be a number")
	wrapped := fmt.Errorf("save settings: %w", base)

	assert.True(t, IsType(wrapped, TypeInvalidCostFormat))
	assert.False(t, IsType(wrapped, TypeInput))
	assert.False(t, IsType(nil, TypeInput))
	assert.False(t, IsType(stderrors.New("plain"), TypeInput))
	assert.Equal(t, TypeInvalidCostFormat, TypeOf(wrapped))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(TypeInternal, "load", cause)
	assert.ErrorIs(t, err, cause)
}

func TestWithContext(t *testing.T) {
	err := NotFound("method", "7").WithContext("instance_id", 7)
	assert.Equal(t, 7, err.Context["instance_id"])
	assert.Equal(t, "method not found: 7", err.Message)
}
