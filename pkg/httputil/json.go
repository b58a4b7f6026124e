package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	kerrors "github.com/matzehuels/kinship/pkg/errors"
)

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

// DecodeJSON reads one JSON value from the request body into v. Unknown
// fields, trailing data and oversized bodies are INVALID_INPUT errors.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return Errorf(http.StatusRequestEntityTooLarge, kerrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return kerrors.New(kerrors.ErrCodeInvalidInput, "request body is empty")
		}
		return kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "decode request body: %v", err)
	}
	if dec.More() {
		return kerrors.New(kerrors.ErrCodeInvalidInput, "request body contains more than one JSON value")
	}
	return nil
}
