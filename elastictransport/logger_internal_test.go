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

//go:build !integration
// +build !integration

package elastictransport

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
)

func logRequest(method, target, body string) *http.Request {
	u, _ := url.Parse("http://foo:9200" + target)
	req := &http.Request{Method: method, URL: u, Header: http.Header{}}
	if body != "" {
		req.Body = io.NopCloser(strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func logResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestTextLogger(t *testing.T) {
	var out bytes.Buffer
	l := &TextLogger{Output: &out, EnableRequestBody: true, EnableResponseBody: true}
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	err := l.LogRoundTrip(logRequest("POST", "/_search?size=0", `{"query":{}}`), logResponse(200, "{\"took\":1}\n"), nil, start, 15*time.Millisecond)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}

	want := "2024-05-01T10:00:00Z POST http://foo:9200/_search?size=0 [status:200 request:15ms]\n" +
		"> {\"query\":{}}\n" +
		"< {\"took\":1}\n"
	if out.String() != want {
		t.Errorf("Unexpected output:\nwant=%q\ngot= %q", want, out.String())
	}

	out.Reset()
	_ = l.LogRoundTrip(logRequest("GET", "/", ""), nil, errors.New("connection refused"), start, time.Millisecond)
	if !strings.Contains(out.String(), "[status:-1") || !strings.Contains(out.String(), "! ERROR: connection refused") {
		t.Errorf("Unexpected output: %s", out.String())
	}
}

func TestColorLogger(t *testing.T) {
	var out bytes.Buffer
	l := &ColorLogger{Output: &out}
	_ = l.LogRoundTrip(logRequest("GET", "/_cat/indices?format=json", ""), logResponse(404, ""), nil, time.Now(), time.Millisecond)

	for _, want := range []string{"GET", "http://foo:9200/_cat/indices", "?format=json", "\x1b[33m"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in output: %q", want, out.String())
		}
	}
}

func TestCurlLogger(t *testing.T) {
	var out bytes.Buffer
	l := &CurlLogger{Output: &out, EnableResponseBody: true}
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	req := logRequest("POST", "/books/_search?q=title%3Adune", `{"size":1}`)
	req.Header.Set("X-Opaque-Id", "abc")
	_ = l.LogRoundTrip(req, logResponse(200, "{\n  \"took\": 1\n}"), nil, start, 3*time.Millisecond)

	got := out.String()
	for _, want := range []string{
		"curl -X POST -H 'Content-Type: application/json' -H 'X-Opaque-Id: abc' 'http://localhost:9200/books/_search?pretty=&q=title%3Adune' -d \\\n'{\"size\":1}'",
		"# => 2024-05-01T10:00:00Z [OK] 3ms",
		"# {",
		"#   \"took\": 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected %q in output:\n%s", want, got)
		}
	}

	out.Reset()
	_ = l.LogRoundTrip(logRequest("HEAD", "/books", ""), nil, errors.New("boom"), start, 0)
	if !strings.HasPrefix(out.String(), "curl --head 'http://localhost:9200/books?pretty'") {
		t.Errorf("Unexpected output: %s", out.String())
	}
	if !strings.Contains(out.String(), "[ERROR]") || !strings.Contains(out.String(), "# ERROR: boom") {
		t.Errorf("Unexpected output: %s", out.String())
	}
}

func TestJSONLogger(t *testing.T) {
	var out bytes.Buffer
	l := &JSONLogger{Output: &out, EnableRequestBody: true, EnableResponseBody: true}
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	err := l.LogRoundTrip(logRequest("PUT", "/books/_doc/1?refresh=true", `{"title":"Dune"}`), logResponse(201, `{"result":"created"}`), nil, start, time.Millisecond)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err)
	}
	if !strings.HasSuffix(out.String(), "\n") {
		t.Error("Expected a trailing newline")
	}

	var doc struct {
		Timestamp string `json:"@timestamp"`
		Event     struct {
			Duration int64 `json:"duration"`
		} `json:"event"`
		URL struct {
			Scheme string `json:"scheme"`
			Domain string `json:"domain"`
			Port   int    `json:"port"`
			Path   string `json:"path"`
			Query  string `json:"query"`
		} `json:"url"`
		HTTP struct {
			Request struct {
				Method string `json:"method"`
				Body   string `json:"body"`
			} `json:"request"`
			Response struct {
				StatusCode int    `json:"status_code"`
				Body       string `json:"body"`
			} `json:"response"`
		} `json:"http"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := jsoniter.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("Invalid JSON %q: %s", out.String(), err)
	}

	if doc.Timestamp != "2024-05-01T10:00:00Z" || doc.Event.Duration != int64(time.Millisecond) {
		t.Errorf("Unexpected timing: %+v", doc)
	}
	if doc.URL.Domain != "foo" || doc.URL.Port != 9200 || doc.URL.Path != "/books/_doc/1" || doc.URL.Query != "refresh=true" {
		t.Errorf("Unexpected url: %+v", doc.URL)
	}
	if doc.HTTP.Request.Method != "PUT" || doc.HTTP.Request.Body != `{"title":"Dune"}` {
		t.Errorf("Unexpected request: %+v", doc.HTTP.Request)
	}
	if doc.HTTP.Response.StatusCode != 201 || doc.HTTP.Response.Body != `{"result":"created"}` {
		t.Errorf("Unexpected response: %+v", doc.HTTP.Response)
	}
	if doc.Error != nil {
		t.Errorf("Unexpected error: %+v", doc.Error)
	}

	out.Reset()
	_ = l.LogRoundTrip(logRequest("GET", "/", ""), nil, errors.New("connection refused"), start, 0)
	if !strings.Contains(out.String(), `"error":{"message":"connection refused"}`) {
		t.Errorf("Unexpected output: %s", out.String())
	}
}

func TestDebuggingLogger(t *testing.T) {
	var out bytes.Buffer
	l := &debuggingLogger{Output: &out}
	_ = l.Log("a", "b")
	_ = l.Logf(" %d\n", 1)
	if out.String() != "ab 1\n" {
		t.Errorf("Unexpected output: %q", out.String())
	}
}
