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
	"net/http"
	"net/url"
	"strings"
	"time"
)

// QueryParam is a single query string entry.
type QueryParam struct {
	Key   string
	Value string
}

// Query is an ordered list of query string parameters. Keys are encoded in
// insertion order.
type Query []QueryParam

// Add appends a parameter.
func (q *Query) Add(key, value string) { *q = append(*q, QueryParam{Key: key, Value: value}) }

// Get returns the first value for key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Encode returns the application/x-www-form-urlencoded form of q.
func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Request describes one API call handed to Client.Perform.
type Request struct {
	Method string
	// Path is the already quoted target path, e.g. "/my-index/_search".
	Path   string
	Query  Query
	Body   []byte
	Header http.Header

	// Per-call overrides; zero values fall back to the client configuration.
	RequestTimeout time.Duration
	MaxRetries     *int
	RetryOnTimeout *bool
	OpaqueID       string
	IgnoreStatus   []int

	// Endpoint and PathParts identify the call for logging and tracing.
	Endpoint  string
	PathParts map[string]string
	// Instrumented marks the body as a search query eligible for capture by
	// the instrumentation.
	Instrumented bool
}

// Target returns the path with the encoded query string.
func (r *Request) Target() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

func (r *Request) ignores(status int) bool {
	for _, s := range r.IgnoreStatus {
		if s == status {
			return true
		}
	}
	return false
}

// ResponseMeta carries the non-body parts of a response.
type ResponseMeta struct {
	Status      int
	Header      http.Header
	HTTPVersion string
	Duration    time.Duration
	Node        NodeConfig
	Warnings    []Warning
}

// MimeType returns the response media type without parameters.
func (m *ResponseMeta) MimeType() string {
	return normalizeMimeType(m.Header.Get("Content-Type"))
}

// Envelope is implemented by every successful response shape.
type Envelope interface {
	ResponseMeta() *ResponseMeta
}

// ObjectResponse holds a decoded JSON (or NDJSON) body.
type ObjectResponse struct {
	Meta *ResponseMeta
	// Body is a map[string]any, []any, scalar, or nil.
	Body any
	// Raw is the undecoded payload.
	Raw []byte

	serializer Serializer
}

// ResponseMeta implements Envelope.
func (r *ObjectResponse) ResponseMeta() *ResponseMeta { return r.Meta }

// Decode unmarshals the raw body into v.
func (r *ObjectResponse) Decode(v any) error {
	s := r.serializer
	if s == nil {
		s = defaultJSONSerializer
	}
	if d, ok := s.(interface{ DecodeInto([]byte, any) error }); ok {
		return d.DecodeInto(r.Raw, v)
	}
	return &SerializationError{ContentType: s.MimeType(), Length: len(r.Raw), Err: errNoDecodeInto}
}

// TextResponse holds a text/* body.
type TextResponse struct {
	Meta *ResponseMeta
	Body string
}

// ResponseMeta implements Envelope.
func (r *TextResponse) ResponseMeta() *ResponseMeta { return r.Meta }

func (r *TextResponse) String() string { return r.Body }

// HeadResponse is returned for HEAD requests; Body is true for 2xx.
type HeadResponse struct {
	Meta *ResponseMeta
	Body bool
}

// ResponseMeta implements Envelope.
func (r *HeadResponse) ResponseMeta() *ResponseMeta { return r.Meta }

// BytesResponse holds an opaque body such as a vector tile.
type BytesResponse struct {
	Meta *ResponseMeta
	Body []byte
}

// ResponseMeta implements Envelope.
func (r *BytesResponse) ResponseMeta() *ResponseMeta { return r.Meta }
