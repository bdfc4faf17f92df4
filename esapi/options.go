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

package esapi

import (
	"net/http"
	"time"
)

// CallOption overrides the client policy for the calls made through an
// API view, see API.WithOptions.
type CallOption func(*callOptions)

type callOptions struct {
	requestTimeout time.Duration
	maxRetries     *int
	retryOnTimeout *bool
	opaqueID       string
	ignoreStatus   []int
	header         http.Header

	errorTrace *bool
	filterPath []string
	human      *bool
	pretty     *bool
}

func (o callOptions) clone() callOptions {
	c := o
	c.ignoreStatus = append([]int(nil), o.ignoreStatus...)
	c.filterPath = append([]string(nil), o.filterPath...)
	c.header = o.header.Clone()
	return c
}

// WithRequestTimeout bounds each attempt of the call.
func WithRequestTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.requestTimeout = d }
}

// WithMaxRetries overrides the retry budget of the client.
func WithMaxRetries(n int) CallOption {
	return func(o *callOptions) { o.maxRetries = &n }
}

// WithRetryOnTimeout overrides whether timed out attempts are retried.
func WithRetryOnTimeout(v bool) CallOption {
	return func(o *callOptions) { o.retryOnTimeout = &v }
}

// WithOpaqueID sets the X-Opaque-Id header.
func WithOpaqueID(id string) CallOption {
	return func(o *callOptions) { o.opaqueID = id }
}

// WithIgnoreStatus turns the given HTTP statuses into successful responses.
func WithIgnoreStatus(statuses ...int) CallOption {
	return func(o *callOptions) { o.ignoreStatus = append(o.ignoreStatus, statuses...) }
}

// WithHeader adds headers to the call. They take precedence over the
// client headers.
func WithHeader(h http.Header) CallOption {
	return func(o *callOptions) {
		if o.header == nil {
			o.header = make(http.Header, len(h))
		}
		for k, vv := range h {
			o.header[http.CanonicalHeaderKey(k)] = append([]string(nil), vv...)
		}
	}
}

// WithErrorTrace includes the stack trace of server errors.
func WithErrorTrace() CallOption {
	return func(o *callOptions) { t := true; o.errorTrace = &t }
}

// WithFilterPath filters the response body.
func WithFilterPath(paths ...string) CallOption {
	return func(o *callOptions) { o.filterPath = append(o.filterPath, paths...) }
}

// WithHuman returns values in human readable form.
func WithHuman() CallOption {
	return func(o *callOptions) { t := true; o.human = &t }
}

// WithPretty pretty-prints JSON responses.
func WithPretty() CallOption {
	return func(o *callOptions) { t := true; o.pretty = &t }
}
