package apperr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImmutable(t *testing.T) {
	e := New(400, "INVALID_REQUEST", "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("Expected immutable error with message not equal to 'changed', got '%s'", e.Message)
	}
	if changedE.Message != "changed" {
		t.Errorf("Expected immutable error with message equal to 'changed', got '%s'", changedE.Message)
	}
}

func TestNewInvalidViolationsDoesNotTouchSentinel(t *testing.T) {
	e := NewInvalidViolations([]string{"year"})

	assert.Nil(t, ErrInvalidReq.Extras)
	if assert.NotNil(t, e.Extras) {
		assert.Equal(t, []string{"year"}, (*e.Extras)["violations"])
	}
	assert.Equal(t, CodeInvalidRequest, e.ErrorCode)
}

func TestError(t *testing.T) {
	assert.Equal(t, "MODEL_UNAVAILABLE: prediction model is not loaded", ErrModelUnavailable.Error())
}
