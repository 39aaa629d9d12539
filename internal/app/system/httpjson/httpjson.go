// Package httpjson writes and reads the JSON bodies of the API.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// MaxBodyBytes caps request bodies read by Decode.
const MaxBodyBytes = 64 << 10

// Error codes returned in ErrorBody.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeUnsupportedMedia = "unsupported_media_type"
	CodeUnavailable      = "unavailable"
	CodeTooManyRequests  = "too_many_requests"
	CodeInternal         = "internal"
)

// ErrUnsupportedMediaType is returned by Decode when the request is not
// declared as JSON. Browsers can only send such bodies cross-site after a
// CORS preflight.
var ErrUnsupportedMediaType = errors.New("Content-Type must be application/json")

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Write encodes v with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with 200.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}

// Error writes an ErrorBody.
func Error(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, ErrorBody{Error: code, Message: message})
}

// BadRequest writes a 400 with err's message.
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, CodeBadRequest, err.Error())
}

// DecodeError writes 415 for ErrUnsupportedMediaType and 400 otherwise.
func DecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrUnsupportedMediaType) {
		Error(w, http.StatusUnsupportedMediaType, CodeUnsupportedMedia, err.Error())
		return
	}
	BadRequest(w, err)
}

// IsJSON reports whether r declares an application/json (or +json) body.
func IsJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// Decode reads a JSON object from r's body into dst. Requests not declared
// as JSON, bodies larger than MaxBodyBytes and trailing data are rejected.
func Decode(r *http.Request, dst any) error {
	if !IsJSON(r) {
		return ErrUnsupportedMediaType
	}
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
