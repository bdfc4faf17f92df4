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

	"go.uber.org/zap"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

var (
	_ elastictransport.Logger          = (*Zap)(nil)
	_ elastictransport.DebuggingLogger = (*Zap)(nil)
)

// Zap logs with a *zap.Logger. Round trips are logged at info level,
// responses with an error status at warn level and failed requests at
// error level; debugging messages are logged at debug level.
type Zap struct {
	Logger             *zap.Logger
	EnableRequestBody  bool
	EnableResponseBody bool
}

// NewZap returns an adapter for l.
func NewZap(l *zap.Logger) *Zap { return &Zap{Logger: l} }

// LogRoundTrip implements elastictransport.Logger.
func (l *Zap) LogRoundTrip(req *http.Request, res *http.Response, err error, _ time.Time, dur time.Duration) error {
	rt := newRoundTrip(req, res, err, dur, l.EnableRequestBody, l.EnableResponseBody)

	fields := []zap.Field{
		zap.String("method", rt.Method),
		zap.String("url", rt.URL),
		zap.Int("status_code", rt.Status),
		zap.Duration("duration", rt.Duration),
	}
	if rt.RequestBody != "" {
		fields = append(fields, zap.String("request_body", rt.RequestBody))
	}
	if rt.ResponseBody != "" {
		fields = append(fields, zap.String("response_body", rt.ResponseBody))
	}

	switch rt.level() {
	case levelError:
		l.Logger.Error(roundTripMessage, append(fields, zap.Error(rt.Err))...)
	case levelWarn:
		l.Logger.Warn(roundTripMessage, fields...)
	default:
		l.Logger.Info(roundTripMessage, fields...)
	}
	return nil
}

// RequestBodyEnabled implements elastictransport.Logger.
func (l *Zap) RequestBodyEnabled() bool { return l.EnableRequestBody }

// ResponseBodyEnabled implements elastictransport.Logger.
func (l *Zap) ResponseBodyEnabled() bool { return l.EnableResponseBody }

// Log implements elastictransport.DebuggingLogger.
func (l *Zap) Log(a ...any) error {
	l.Logger.Debug(debugMessage(a...))
	return nil
}

// Logf implements elastictransport.DebuggingLogger.
func (l *Zap) Logf(format string, a ...any) error {
	l.Logger.Debug(debugMessagef(format, a...))
	return nil
}

// Warning logs w at warn level.
func (l *Zap) Warning(w elastictransport.Warning) {
	l.Logger.Warn(warningMessage,
		zap.String("category", w.Category),
		zap.String("endpoint", w.Endpoint),
		zap.String("text", w.Text),
	)
}
