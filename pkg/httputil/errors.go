package httputil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

// Error is an error with an explicit HTTP status.
type Error struct {
	Status int
	Code   kerrors.Code
	Err    error
}

// Errorf creates an Error with the given status and code.
func Errorf(status int, code kerrors.Code, format string, args ...any) error {
	return &Error{Status: status, Code: code, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Status
	}
	switch kerrors.GetCode(err) {
	case kerrors.ErrCodeInvalidInput, kerrors.ErrCodeInvalidConfig, kerrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case kerrors.ErrCodeNotFound, kerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case kerrors.ErrCodeEmptyMemberList, kerrors.ErrCodeRootNotFound,
		kerrors.ErrCodePlacementFailed, kerrors.ErrCodeInfiniteLoop:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    kerrors.Code `json:"code"`
	Message string       `json:"message"`
}

func errorBody(err error, status int) ErrorBody {
	code := kerrors.GetCode(err)
	var herr *Error
	if errors.As(err, &herr) && herr.Code != "" {
		code = herr.Code
	}
	if code == "" {
		code = kerrors.ErrCodeInternal
	}
	msg := kerrors.UserMessage(err)
	if status >= 500 {
		msg = http.StatusText(status)
	}
	return ErrorBody{Error: ErrorDetail{Code: code, Message: msg}}
}

// HandlerFunc is an http.HandlerFunc that returns an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapts fn. Client errors are logged at warn level, server errors
// at error level.
func Handler(logger *log.Logger, fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		status := StatusFor(err)
		if status >= 500 {
			logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
		} else {
			logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)
		}
		JSON(w, status, errorBody(err, status))
	})
}
