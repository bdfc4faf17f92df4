// Licensed to Elasticsearch B.V. under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Elasticsearch B.V. licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package elastictransport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrClosed is returned by Perform and Close once the client has been closed.
var ErrClosed = errors.New("elastictransport: client is closed")

// ErrorKind tags an ApiError with the class of the HTTP status it carries.
type ErrorKind int

const (
	// KindApiError is the catch-all for non-2xx statuses without a named kind.
	KindApiError ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindPayloadTooLarge
	KindTooManyRequests
	KindInternalServerError
)

var kindNames = map[ErrorKind]string{
	KindApiError:            "ApiError",
	KindBadRequest:          "BadRequest",
	KindUnauthorized:        "Unauthorized",
	KindForbidden:           "Forbidden",
	KindNotFound:            "NotFound",
	KindConflict:            "Conflict",
	KindPayloadTooLarge:     "PayloadTooLarge",
	KindTooManyRequests:     "TooManyRequests",
	KindInternalServerError: "InternalServerError",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Sentinel errors matching ApiError values by kind with errors.Is.
var (
	ErrApiError            = &kindError{KindApiError}
	ErrBadRequest          = &kindError{KindBadRequest}
	ErrUnauthorized        = &kindError{KindUnauthorized}
	ErrForbidden           = &kindError{KindForbidden}
	ErrNotFound            = &kindError{KindNotFound}
	ErrConflict            = &kindError{KindConflict}
	ErrPayloadTooLarge     = &kindError{KindPayloadTooLarge}
	ErrTooManyRequests     = &kindError{KindTooManyRequests}
	ErrInternalServerError = &kindError{KindInternalServerError}
)

type kindError struct{ kind ErrorKind }

func (e *kindError) Error() string { return "elastictransport: " + e.kind.String() }

// KindForStatus maps an HTTP status code to its error kind.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusBadRequest:
		return KindBadRequest
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status == http.StatusRequestEntityTooLarge:
		return KindPayloadTooLarge
	case status == http.StatusTooManyRequests:
		return KindTooManyRequests
	case status >= 500:
		return KindInternalServerError
	default:
		return KindApiError
	}
}

// ApiError is returned for any non-2xx response that was not ignored.
type ApiError struct {
	Kind     ErrorKind
	Status   int
	Header   http.Header
	Body     any
	Raw      []byte
	Meta     *ResponseMeta
	OpaqueID string
}

func (e *ApiError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString("(")
	b.WriteString(strconv.Itoa(e.Status))
	if t, reason := e.errorType(); t != "" {
		b.WriteString(", '")
		b.WriteString(t)
		b.WriteString("'")
		if reason != "" {
			b.WriteString(", '")
			b.WriteString(reason)
			b.WriteString("'")
		}
	}
	b.WriteString(")")
	if e.OpaqueID != "" {
		b.WriteString(" opaque_id=")
		b.WriteString(e.OpaqueID)
	}
	return b.String()
}

// errorType extracts error.type and error.reason from a decoded Elasticsearch error body.
func (e *ApiError) errorType() (string, string) {
	m, ok := e.Body.(map[string]any)
	if !ok {
		if s, ok := e.Body.(string); ok && s != "" {
			return s, ""
		}
		return "", ""
	}
	switch v := m["error"].(type) {
	case map[string]any:
		t, _ := v["type"].(string)
		r, _ := v["reason"].(string)
		return t, r
	case string:
		return v, ""
	}
	return "", ""
}

// Is reports whether target is the sentinel for the error kind.
func (e *ApiError) Is(target error) bool {
	if k, ok := target.(*kindError); ok {
		return k.kind == e.Kind
	}
	return false
}

// RetryAfter returns the delay advertised by the Retry-After header, if any.
func (e *ApiError) RetryAfter() (time.Duration, bool) {
	v := e.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		return time.Until(t), true
	}
	return 0, false
}

// UnsupportedProductError is returned when a 2xx response does not identify
// itself as Elasticsearch.
type UnsupportedProductError struct {
	Meta     *ResponseMeta
	OpaqueID string
}

func (e *UnsupportedProductError) Error() string {
	msg := "the client noticed that the server is not Elasticsearch and we do not support this unknown product"
	if e.OpaqueID != "" {
		msg += " (opaque_id=" + e.OpaqueID + ")"
	}
	return msg
}

// ConnectionError is returned when no HTTP response could be obtained from
// any node within the retry budget. Errors holds one entry per attempt.
type ConnectionError struct {
	Errors   []error
	OpaqueID string
}

func (e *ConnectionError) Error() string {
	return attemptsMessage("connection error", e.Errors, e.OpaqueID)
}

func (e *ConnectionError) Unwrap() []error { return e.Errors }

// ConnectionTimeout is returned when the last attempt timed out or the
// caller's context was cancelled. Errors holds one entry per attempt.
type ConnectionTimeout struct {
	Errors   []error
	OpaqueID string
}

func (e *ConnectionTimeout) Error() string {
	return attemptsMessage("connection timed out", e.Errors, e.OpaqueID)
}

func (e *ConnectionTimeout) Unwrap() []error { return e.Errors }

// Timeout implements net.Error-style timeout detection.
func (e *ConnectionTimeout) Timeout() bool { return true }

func attemptsMessage(prefix string, errs []error, opaqueID string) string {
	var b strings.Builder
	b.WriteString(prefix)
	if opaqueID != "" {
		b.WriteString(" (opaque_id=")
		b.WriteString(opaqueID)
		b.WriteString(")")
	}
	if n := len(errs); n > 0 {
		fmt.Fprintf(&b, ": %s", errs[n-1])
		if n > 1 {
			fmt.Fprintf(&b, " (after %d attempts)", n)
		}
	}
	return b.String()
}

// SerializationError is returned when a body cannot be encoded or decoded.
type SerializationError struct {
	ContentType string
	Length      int
	Err         error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error (content-type=%s, length=%d): %s", e.ContentType, e.Length, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// ConfigurationError reports invalid client configuration or invalid call
// parameters. It is always returned before any I/O takes place.
type ConfigurationError struct {
	Msg string
	Err error
}

// NewConfigurationError formats a ConfigurationError.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
