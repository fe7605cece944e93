package apierr

import (
	"errors"
	"fmt"
	"net/http"

	domainagg "github.com/yungbote/membership-registry/internal/domain/aggregates"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

var statusByCode = map[domainagg.ErrorCode]int{
	domainagg.CodeValidation:           http.StatusBadRequest,
	domainagg.CodeInvalidDateWindow:    http.StatusBadRequest,
	domainagg.CodeMissingValidator:     http.StatusBadRequest,
	domainagg.CodeChainBroken:          http.StatusBadRequest,
	domainagg.CodeNotFound:             http.StatusNotFound,
	domainagg.CodeConflict:             http.StatusConflict,
	domainagg.CodeDuplicate:            http.StatusConflict,
	domainagg.CodePreconditionFailed:   http.StatusPreconditionFailed,
	domainagg.CodeInvalidReferenceType: http.StatusUnprocessableEntity,
	domainagg.CodeInvariantViolation:   http.StatusUnprocessableEntity,
	domainagg.CodeRetryable:            http.StatusServiceUnavailable,
	domainagg.CodeInternal:             http.StatusInternalServerError,
}

// FromError translates err into an API error. An *Error is returned as is; aggregate
// errors map by code; anything else is a 500 carrying fallbackCode.
func FromError(err error, fallbackCode string) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	code := domainagg.CodeOf(err)
	if status, ok := statusByCode[code]; ok {
		if code == domainagg.CodeInternal && fallbackCode != "" {
			return New(status, fallbackCode, err)
		}
		return New(status, string(code), err)
	}
	if fallbackCode == "" {
		fallbackCode = string(domainagg.CodeInternal)
	}
	return New(http.StatusInternalServerError, fallbackCode, err)
}
