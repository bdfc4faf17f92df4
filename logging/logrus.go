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

	"github.com/sirupsen/logrus"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

var (
	_ elastictransport.Logger          = (*Logrus)(nil)
	_ elastictransport.DebuggingLogger = (*Logrus)(nil)
)

// Logrus logs with a logrus logger or entry.
type Logrus struct {
	Logger             logrus.FieldLogger
	EnableRequestBody  bool
	EnableResponseBody bool
}

// NewLogrus returns an adapter for l.
func NewLogrus(l logrus.FieldLogger) *Logrus { return &Logrus{Logger: l} }

// LogRoundTrip implements elastictransport.Logger.
func (l *Logrus) LogRoundTrip(req *http.Request, res *http.Response, err error, _ time.Time, dur time.Duration) error {
	rt := newRoundTrip(req, res, err, dur, l.EnableRequestBody, l.EnableResponseBody)

	fields := logrus.Fields{
		"method":      rt.Method,
		"url":         rt.URL,
		"status_code": rt.Status,
		"duration":    rt.Duration,
	}
	if rt.RequestBody != "" {
		fields["request_body"] = rt.RequestBody
	}
	if rt.ResponseBody != "" {
		fields["response_body"] = rt.ResponseBody
	}

	entry := l.Logger.WithFields(fields)
	switch rt.level() {
	case levelError:
		entry.WithError(rt.Err).Error(roundTripMessage)
	case levelWarn:
		entry.Warn(roundTripMessage)
	default:
		entry.Info(roundTripMessage)
	}
	return nil
}

// RequestBodyEnabled implements elastictransport.Logger.
func (l *Logrus) RequestBodyEnabled() bool { return l.EnableRequestBody }

// ResponseBodyEnabled implements elastictransport.Logger.
func (l *Logrus) ResponseBodyEnabled() bool { return l.EnableResponseBody }

// Log implements elastictransport.DebuggingLogger.
func (l *Logrus) Log(a ...any) error {
	l.Logger.Debug(debugMessage(a...))
	return nil
}

// Logf implements elastictransport.DebuggingLogger.
func (l *Logrus) Logf(format string, a ...any) error {
	l.Logger.Debug(debugMessagef(format, a...))
	return nil
}

// Warning logs w at warn level.
func (l *Logrus) Warning(w elastictransport.Warning) {
	l.Logger.WithFields(logrus.Fields{
		"category": w.Category,
		"endpoint": w.Endpoint,
	}).Warn(w.Text)
}
