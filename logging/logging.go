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

// Package logging adapts structured logging libraries to the logger
// interfaces of elastictransport.
//
// Every adapter implements elastictransport.Logger, which logs the HTTP
// round trips, and elastictransport.DebuggingLogger, which logs node
// management events. The Warning method of each adapter can be subscribed
// to a warning broker:
//
//	l := logging.NewZap(zapLogger)
//	es, _ := elasticsearch.NewClient(
//	    elastictransport.WithAddresses(addr),
//	    elastictransport.WithLogger(l),
//	    elastictransport.WithDebuggingLogger(l),
//	)
//	es.Warnings().Subscribe(l.Warning)
package logging

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	roundTripMessage = "elasticsearch request"
	warningMessage   = "elasticsearch warning"
)

// roundTrip is the flattened form of a logged HTTP exchange.
type roundTrip struct {
	Method       string
	URL          string
	Status       int
	Duration     time.Duration
	RequestBody  string
	ResponseBody string
	Err          error
}

func newRoundTrip(req *http.Request, res *http.Response, err error, dur time.Duration, withRequest, withResponse bool) roundTrip {
	rt := roundTrip{Duration: dur, Err: err}
	if req != nil {
		rt.Method = req.Method
		if req.URL != nil {
			rt.URL = req.URL.Redacted()
		}
		if withRequest {
			rt.RequestBody = readBody(req.Body)
		}
	}
	if res != nil {
		rt.Status = res.StatusCode
		if withResponse {
			rt.ResponseBody = readBody(res.Body)
		}
		if res.Body != nil {
			res.Body.Close()
		}
	}
	return rt
}

func (rt roundTrip) level() severity {
	switch {
	case rt.Err != nil:
		return levelError
	case rt.Status >= http.StatusBadRequest:
		return levelWarn
	default:
		return levelInfo
	}
}

type severity int

const (
	levelInfo severity = iota
	levelWarn
	levelError
)

func readBody(body io.Reader) string {
	if body == nil || body == http.NoBody {
		return ""
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		return ""
	}
	return buf.String()
}

// debugMessage renders the arguments of a DebuggingLogger call. The
// transport terminates its messages with a newline, which is dropped.
func debugMessage(a ...any) string {
	return strings.TrimRight(fmt.Sprint(a...), "\n")
}

func debugMessagef(format string, a ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, a...), "\n")
}
