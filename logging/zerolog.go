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

	"github.com/rs/zerolog"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

var (
	_ elastictransport.Logger          = (*Zerolog)(nil)
	_ elastictransport.DebuggingLogger = (*Zerolog)(nil)
)

// Zerolog logs with a zerolog.Logger, using the same levels as Zap.
type Zerolog struct {
	Logger             zerolog.Logger
	EnableRequestBody  bool
	EnableResponseBody bool
}

// NewZerolog returns an adapter for l.
func NewZerolog(l zerolog.Logger) *Zerolog { return &Zerolog{Logger: l} }

// LogRoundTrip implements elastictransport.Logger.
func (l *Zerolog) LogRoundTrip(req *http.Request, res *http.Response, err error, start time.Time, dur time.Duration) error {
	rt := newRoundTrip(req, res, err, dur, l.EnableRequestBody, l.EnableResponseBody)

	var e *zerolog.Event
	switch rt.level() {
	case levelError:
		e = l.Logger.Error().Err(rt.Err)
	case levelWarn:
		e = l.Logger.Warn()
	default:
		e = l.Logger.Info()
	}

	e = e.Str("method", rt.Method).
		Str("url", rt.URL).
		Int("status_code", rt.Status).
		Time("start", start).
		Dur("duration", rt.Duration)
	if rt.RequestBody != "" {
		e = e.Str("request_body", rt.RequestBody)
	}
	if rt.ResponseBody != "" {
		e = e.Str("response_body", rt.ResponseBody)
	}
	e.Msg(roundTripMessage)
	return nil
}

// RequestBodyEnabled implements elastictransport.Logger.
func (l *Zerolog) RequestBodyEnabled() bool { return l.EnableRequestBody }

// ResponseBodyEnabled implements elastictransport.Logger.
func (l *Zerolog) ResponseBodyEnabled() bool { return l.EnableResponseBody }

// Log implements elastictransport.DebuggingLogger.
func (l *Zerolog) Log(a ...any) error {
	l.Logger.Debug().Msg(debugMessage(a...))
	return nil
}

// Logf implements elastictransport.DebuggingLogger.
func (l *Zerolog) Logf(format string, a ...any) error {
	l.Logger.Debug().Msg(debugMessagef(format, a...))
	return nil
}

// Warning logs w at warn level.
func (l *Zerolog) Warning(w elastictransport.Warning) {
	l.Logger.Warn().
		Str("category", w.Category).
		Str("endpoint", w.Endpoint).
		Str("text", w.Text).
		Msg(warningMessage)
}
