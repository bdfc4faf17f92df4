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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Logger defines an interface for logging request and response.
type Logger interface {
	// LogRoundTrip should not modify the request or response, except for consuming and closing the body.
	// Implementations have to check for nil values in request and response.
	LogRoundTrip(*http.Request, *http.Response, error, time.Time, time.Duration) error
	// RequestBodyEnabled makes the client pass a copy of request body to the logger.
	RequestBodyEnabled() bool
	// ResponseBodyEnabled makes the client pass a copy of response body to the logger.
	ResponseBodyEnabled() bool
}

// DebuggingLogger defines the interface for a debugging logger.
type DebuggingLogger interface {
	Log(a ...any) error
	Logf(format string, a ...any) error
}

// TextLogger prints the log message in plain text.
type TextLogger struct {
	Output             io.Writer
	EnableRequestBody  bool
	EnableResponseBody bool
}

// ColorLogger prints the log message in a terminal-optimized plain text.
type ColorLogger struct {
	Output             io.Writer
	EnableRequestBody  bool
	EnableResponseBody bool
}

// CurlLogger prints the log message as a runnable curl command.
type CurlLogger struct {
	Output             io.Writer
	EnableRequestBody  bool
	EnableResponseBody bool
}

// JSONLogger prints the log message as JSON, one object per line.
type JSONLogger struct {
	Output             io.Writer
	EnableRequestBody  bool
	EnableResponseBody bool
}

type debuggingLogger struct {
	Output io.Writer
}

// LogRoundTrip prints the information about request and response.
func (l *TextLogger) LogRoundTrip(req *http.Request, res *http.Response, err error, start time.Time, dur time.Duration) error {
	fmt.Fprintf(l.Output, "%s %s %s [status:%d request:%s]\n",
		start.Format(time.RFC3339),
		req.Method,
		req.URL.String(),
		resStatusCode(res),
		dur.Truncate(time.Millisecond),
	)
	if l.RequestBodyEnabled() && req != nil && req.Body != nil && req.Body != http.NoBody {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(req.Body)
		logBodyAsText(l.Output, &buf, ">")
	}
	if l.ResponseBodyEnabled() && res != nil && res.Body != nil && res.Body != http.NoBody {
		defer res.Body.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(res.Body)
		logBodyAsText(l.Output, &buf, "<")
	}
	if err != nil {
		fmt.Fprintf(l.Output, "! ERROR: %v\n", err)
	}
	return nil
}

// RequestBodyEnabled returns true when the request body should be logged.
func (l *TextLogger) RequestBodyEnabled() bool { return l.EnableRequestBody }

// ResponseBodyEnabled returns true when the response body should be logged.
func (l *TextLogger) ResponseBodyEnabled() bool { return l.EnableResponseBody }

// LogRoundTrip prints the information about request and response.
func (l *ColorLogger) LogRoundTrip(req *http.Request, res *http.Response, err error, start time.Time, dur time.Duration) error {
	query, _ := url.QueryUnescape(req.URL.RawQuery)
	if query != "" {
		query = "?" + query
	}

	var (
		status string
		color  string
	)

	code := resStatusCode(res)
	if res != nil {
		status = res.Status
	}
	switch {
	case code > 0 && code < 300:
		color = "\x1b[32m"
	case code > 299 && code < 500:
		color = "\x1b[33m"
	case code > 499:
		color = "\x1b[31m"
	default:
		status = "ERROR"
		color = "\x1b[31;4m"
	}

	fmt.Fprintf(l.Output, "%6s \x1b[1;4m%s://%s%s\x1b[0m%s %s%s\x1b[0m \x1b[2m%s\x1b[0m\n",
		req.Method,
		req.URL.Scheme,
		req.URL.Host,
		req.URL.Path,
		query,
		color,
		status,
		dur.Truncate(time.Millisecond),
	)

	if l.RequestBodyEnabled() && req != nil && req.Body != nil && req.Body != http.NoBody {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(req.Body)
		fmt.Fprint(l.Output, "\x1b[2m")
		logBodyAsText(l.Output, &buf, "       »")
		fmt.Fprint(l.Output, "\x1b[0m")
	}

	if l.ResponseBodyEnabled() && res != nil && res.Body != nil && res.Body != http.NoBody {
		defer res.Body.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(res.Body)
		fmt.Fprint(l.Output, "\x1b[2m")
		logBodyAsText(l.Output, &buf, "       «")
		fmt.Fprint(l.Output, "\x1b[0m")
	}

	if err != nil {
		fmt.Fprintf(l.Output, "\x1b[31;1m» ERROR \x1b[31m%v\x1b[0m\n", err)
	}

	fmt.Fprintf(l.Output, "\x1b[2m%s\x1b[0m\n", strings.Repeat("─", 80))
	return nil
}

// RequestBodyEnabled returns true when the request body should be logged.
func (l *ColorLogger) RequestBodyEnabled() bool { return l.EnableRequestBody }

// ResponseBodyEnabled returns true when the response body should be logged.
func (l *ColorLogger) ResponseBodyEnabled() bool { return l.EnableResponseBody }

// LogRoundTrip prints the request as a curl command and the response as a comment.
func (l *CurlLogger) LogRoundTrip(req *http.Request, res *http.Response, err error, start time.Time, dur time.Duration) error {
	var b bytes.Buffer

	var query string
	if req.URL.RawQuery != "" {
		qvalues := url.Values{}
		for _, kv := range strings.Split(req.URL.RawQuery, "&") {
			k, v, _ := strings.Cut(kv, "=")
			k, _ = url.QueryUnescape(k)
			v, _ = url.QueryUnescape(v)
			qvalues.Add(k, v)
		}
		if _, ok := qvalues["pretty"]; !ok {
			qvalues.Set("pretty", "")
		}
		query = qvalues.Encode()
	} else {
		query = "pretty"
	}

	b.WriteString(`curl`)
	if req.Method == http.MethodHead {
		b.WriteString(" --head")
	} else {
		fmt.Fprintf(&b, " -X %s", req.Method)
	}

	for _, k := range []string{"Content-Type", "Accept", "X-Opaque-Id"} {
		if v := req.Header.Get(k); v != "" {
			fmt.Fprintf(&b, " -H '%s: %s'", k, v)
		}
	}

	fmt.Fprintf(&b, " 'http://localhost:9200%s?%s'", req.URL.EscapedPath(), strings.TrimSuffix(query, "="))

	if req != nil && req.Body != nil && req.Body != http.NoBody {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(req.Body)

		b.Grow(buf.Len())
		b.WriteString(" -d \\\n'")
		b.Write(bytes.TrimRight(buf.Bytes(), "\n"))
		b.WriteString("'")
	}

	b.WriteRune('\n')

	var status string
	if res != nil {
		status = res.Status
	} else {
		status = "ERROR"
	}

	fmt.Fprintf(&b, "# => %s [%s] %s\n", start.UTC().Format(time.RFC3339), status, dur.Truncate(time.Millisecond))
	if l.ResponseBodyEnabled() && res != nil && res.Body != nil && res.Body != http.NoBody {
		defer res.Body.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(res.Body)

		b.Grow(buf.Len())
		scanner := bufio.NewScanner(&buf)
		for scanner.Scan() {
			b.WriteString("# " + scanner.Text() + "\n")
		}
	}
	if err != nil {
		fmt.Fprintf(&b, "# ERROR: %v\n", err)
	}

	b.WriteRune('\n')

	_, _ = b.WriteTo(l.Output)
	return nil
}

// RequestBodyEnabled returns true when the request body should be logged.
func (l *CurlLogger) RequestBodyEnabled() bool { return l.EnableRequestBody }

// ResponseBodyEnabled returns true when the response body should be logged.
func (l *CurlLogger) ResponseBodyEnabled() bool { return l.EnableResponseBody }

// LogRoundTrip writes one ECS-style JSON object for the round trip.
func (l *JSONLogger) LogRoundTrip(req *http.Request, res *http.Response, err error, start time.Time, dur time.Duration) error {
	port := req.URL.Port()

	s := jsonAPI.BorrowStream(l.Output)
	defer jsonAPI.ReturnStream(s)

	s.WriteObjectStart()
	s.WriteObjectField("@timestamp")
	s.WriteString(start.UTC().Format(time.RFC3339))
	s.WriteMore()
	s.WriteObjectField("event")
	s.WriteObjectStart()
	s.WriteObjectField("duration")
	s.WriteInt64(dur.Nanoseconds())
	s.WriteObjectEnd()
	s.WriteMore()
	s.WriteObjectField("url")
	s.WriteObjectStart()
	s.WriteObjectField("scheme")
	s.WriteString(req.URL.Scheme)
	s.WriteMore()
	s.WriteObjectField("domain")
	s.WriteString(req.URL.Hostname())
	if port != "" {
		if p, perr := strconv.Atoi(port); perr == nil {
			s.WriteMore()
			s.WriteObjectField("port")
			s.WriteInt(p)
		}
	}
	s.WriteMore()
	s.WriteObjectField("path")
	s.WriteString(req.URL.Path)
	s.WriteMore()
	s.WriteObjectField("query")
	s.WriteString(req.URL.RawQuery)
	s.WriteObjectEnd()

	s.WriteMore()
	s.WriteObjectField("http")
	s.WriteObjectStart()
	s.WriteObjectField("request")
	s.WriteObjectStart()
	s.WriteObjectField("method")
	s.WriteString(req.Method)
	if l.RequestBodyEnabled() && req.Body != nil && req.Body != http.NoBody {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(req.Body)
		s.WriteMore()
		s.WriteObjectField("body")
		s.WriteString(buf.String())
	}
	s.WriteObjectEnd()

	if res != nil {
		s.WriteMore()
		s.WriteObjectField("response")
		s.WriteObjectStart()
		s.WriteObjectField("status_code")
		s.WriteInt(res.StatusCode)
		if l.ResponseBodyEnabled() && res.Body != nil && res.Body != http.NoBody {
			defer res.Body.Close()
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(res.Body)
			s.WriteMore()
			s.WriteObjectField("body")
			s.WriteString(buf.String())
		}
		s.WriteObjectEnd()
	}
	s.WriteObjectEnd()

	if err != nil {
		s.WriteMore()
		s.WriteObjectField("error")
		s.WriteObjectStart()
		s.WriteObjectField("message")
		s.WriteString(err.Error())
		s.WriteObjectEnd()
	}
	s.WriteObjectEnd()
	s.WriteRaw("\n")
	return s.Flush()
}

// RequestBodyEnabled returns true when the request body should be logged.
func (l *JSONLogger) RequestBodyEnabled() bool { return l.EnableRequestBody }

// ResponseBodyEnabled returns true when the response body should be logged.
func (l *JSONLogger) ResponseBodyEnabled() bool { return l.EnableResponseBody }

// Log prints the arguments to output in default format.
func (l *debuggingLogger) Log(a ...any) error {
	_, err := fmt.Fprint(l.Output, a...)
	return err
}

// Logf prints formats the arguments and prints them to output.
func (l *debuggingLogger) Logf(format string, a ...any) error {
	_, err := fmt.Fprintf(l.Output, format, a...)
	return err
}

func logBodyAsText(dst io.Writer, body io.Reader, prefix string) {
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		s := scanner.Text()
		if s != "" {
			fmt.Fprintf(dst, "%s %s\n", prefix, s)
		}
	}
}

func resStatusCode(res *http.Response) int {
	if res == nil {
		return -1
	}
	return res.StatusCode
}
