package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	assert.Equal(t, "test error message", f.Error())
}

func TestForbiddenError(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
	assert.Equal(t, "You don't have the required permissions", failure.ForbiddenError.Error())
}

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
		code int
	}{
		{name: "invalid range", err: failure.InvalidRange("bad"), kind: failure.ErrInvalidRange, code: http.StatusBadRequest},
		{name: "room conflict", err: failure.RoomConflict("taken"), kind: failure.ErrRoomConflict, code: http.StatusConflict},
		{name: "invalid transition", err: failure.InvalidTransition("no"), kind: failure.ErrInvalidTransition, code: http.StatusConflict},
		{name: "invalid amount", err: failure.InvalidAmount("zero"), kind: failure.ErrInvalidAmount, code: http.StatusBadRequest},
		{name: "overpayment", err: failure.Overpayment("too much"), kind: failure.ErrOverpayment, code: http.StatusUnprocessableEntity},
		{name: "not found", err: failure.NotFound("missing"), kind: failure.ErrNotFound, code: http.StatusNotFound},
		{name: "conflict", err: failure.Conflict("dup"), kind: failure.ErrConflict, code: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.kind)
			assert.Equal(t, tt.code, failure.GetCode(tt.err))

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.kind)
			assert.Equal(t, tt.code, failure.GetCode(wrapped))
		})
	}
}

func TestPersistence(t *testing.T) {
	cause := errors.New("connection reset")

	err := failure.Persistence(cause)
	assert.ErrorIs(t, err, failure.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))

	conflict := failure.RoomConflict("taken")
	assert.Same(t, conflict, failure.Persistence(conflict))

	assert.NoError(t, failure.Persistence(nil))
}

func TestBadRequest(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))

	err := failure.BadRequest(errors.New("validation failed"))
	assert.Equal(t, "validation failed", err.Error())
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestGetCode_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("boom")))
}

func TestKindName(t *testing.T) {
	assert.Equal(t, "OVERPAYMENT", failure.KindName(failure.Overpayment("exceeds balance")))
	assert.Equal(t, "ROOM_CONFLICT", failure.KindName(fmt.Errorf("booking: %w", failure.RoomConflict("taken"))))
	assert.Equal(t, "PERSISTENCE", failure.KindName(failure.Persistence(errors.New("connection reset"))))
	assert.Empty(t, failure.KindName(failure.BadRequestFromString("bad date")))
	assert.Empty(t, failure.KindName(errors.New("boom")))
}
