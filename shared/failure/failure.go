package failure

import (
	"errors"
	"net/http"
)

// Error kinds. A *Failure unwraps to its kind, so callers can match with errors.Is.
var (
	ErrInvalidRange      = errors.New("invalid date range")
	ErrRoomConflict      = errors.New("room conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrOverpayment       = errors.New("overpayment")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrPersistence       = errors.New("persistence failure")
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`

	kind  error
	cause error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the kind and the underlying cause.
func (e *Failure) Unwrap() []error {
	errs := make([]error, 0, 2)

	if e.kind != nil {
		errs = append(errs, e.kind)
	}

	if e.cause != nil {
		errs = append(errs, e.cause)
	}

	return errs
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: msg,
		kind:    ErrNotFound,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: msg,
		kind:    ErrConflict,
	}
}

// InvalidRange reports a check-out that is not after the check-in.
func InvalidRange(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		kind:    ErrInvalidRange,
	}
}

// RoomConflict reports an overlap with an active booking or an unbookable room.
func RoomConflict(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: msg,
		kind:    ErrRoomConflict,
	}
}

// InvalidTransition reports an operation the current status does not allow.
func InvalidTransition(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: msg,
		kind:    ErrInvalidTransition,
	}
}

// InvalidAmount rejects a non-positive payment, a negative cost, or a sub-cent amount.
func InvalidAmount(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		kind:    ErrInvalidAmount,
	}
}

// Overpayment rejects a payment larger than the invoice's balance due.
func Overpayment(msg string) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Message: msg,
		kind:    ErrOverpayment,
	}
}

// Persistence wraps a storage error. Errors that already are a *Failure pass through unchanged.
func Persistence(err error) error {
	if err == nil {
		return nil
	}

	var fail *Failure
	if errors.As(err, &fail) {
		return err
	}

	return &Failure{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		kind:    ErrPersistence,
		cause:   err,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

var kindNames = map[error]string{
	ErrInvalidRange:      "INVALID_RANGE",
	ErrRoomConflict:      "ROOM_CONFLICT",
	ErrInvalidTransition: "INVALID_TRANSITION",
	ErrInvalidAmount:     "INVALID_AMOUNT",
	ErrOverpayment:       "OVERPAYMENT",
	ErrNotFound:          "NOT_FOUND",
	ErrConflict:          "CONFLICT",
	ErrPersistence:       "PERSISTENCE",
}

// KindName returns the machine-readable name of the ledger error kind err
// carries, or an empty string for errors without one.
func KindName(err error) string {
	var fail *Failure
	if !errors.As(err, &fail) || fail.kind == nil {
		return ""
	}

	return kindNames[fail.kind]
}
