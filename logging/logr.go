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

package logging

import (
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

var (
	_ elastictransport.Logger          = (*Logr)(nil)
	_ elastictransport.DebuggingLogger = (*Logr)(nil)
)

// debugVerbosity is the logr verbosity of debugging messages.
const debugVerbosity = 1

// Logr logs with a logr.Logger. Failed requests are logged as errors and
// everything else as info; debugging messages are logged at V(1).
type Logr struct {
	Logger             logr.Logger
	EnableRequestBody  bool
	EnableResponseBody bool
}

// NewLogr returns an adapter for l.
func NewLogr(l logr.Logger) *Logr { return &Logr{Logger: l} }

// LogRoundTrip implements elastictransport.Logger.
func (l *Logr) LogRoundTrip(req *http.Request, res *http.Response, err error, _ time.Time, dur time.Duration) error {
	rt := newRoundTrip(req, res, err, dur, l.EnableRequestBody, l.EnableResponseBody)

	kv := []any{
		"method", rt.Method,
		"url", rt.URL,
		"status_code", rt.Status,
		"duration", rt.Duration,
	}
	if rt.RequestBody != "" {
		kv = append(kv, "request_body", rt.RequestBody)
	}
	if rt.ResponseBody != "" {
		kv = append(kv, "response_body", rt.ResponseBody)
	}

	if rt.Err != nil {
		l.Logger.Error(rt.Err, roundTripMessage, kv...)
		return nil
	}
	l.Logger.Info(roundTripMessage, kv...)
	return nil
}

// RequestBodyEnabled implements elastictransport.Logger.
func (l *Logr) RequestBodyEnabled() bool { return l.EnableRequestBody }

// ResponseBodyEnabled implements elastictransport.Logger.
func (l *Logr) ResponseBodyEnabled() bool { return l.EnableResponseBody }

// Log implements elastictransport.DebuggingLogger.
func (l *Logr) Log(a ...any) error {
	l.Logger.V(debugVerbosity).Info(debugMessage(a...))
	return nil
}

// Logf implements elastictransport.DebuggingLogger.
func (l *Logr) Logf(format string, a ...any) error {
	l.Logger.V(debugVerbosity).Info(debugMessagef(format, a...))
	return nil
}

// Warning logs w at info level.
func (l *Logr) Warning(w elastictransport.Warning) {
	l.Logger.Info(warningMessage, "category", w.Category, "endpoint", w.Endpoint, "text", w.Text)
}
