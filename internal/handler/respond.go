package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"

	"github.com/careerai/careerai-go/internal/model"
)

const maxJSONBodyBytes = 1 << 20 // 1MB

func writeJSON(w http.ResponseWriter, status int, body model.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.Fail(msg))
}

// writeInternalError reports the error to sentry and responds with a 500.
// The stack trace is attached to the body only outside production.
func writeInternalError(w http.ResponseWriter, err error, devMode bool) {
	sentry.CaptureException(err)

	body := model.Fail("internal server error")
	if devMode {
		body.Stack = string(debug.Stack())
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// decodeBody decodes a bounded JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
