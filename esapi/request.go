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
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

const (
	headerAccept      = "Accept"
	headerContentType = "Content-Type"

	mimeJSON   = "application/json"
	mimeNDJSON = "application/x-ndjson"
	mimeText   = "text/plain"
	mimeTile   = "application/vnd.mapbox-vector-tile"

	bodyArg = "body"
)

// Arg is one named argument of an API call. A nil Value, or a nil pointer,
// slice or map, means the argument is unset.
type Arg struct {
	Name  string
	Value any
}

// Args is an ordered list of arguments. Query parameters are encoded in
// this order.
type Args []Arg

// Duration is an Elasticsearch time value such as "30s" or "1m".
type Duration string

// Time values with a special meaning.
const (
	NoTimeout   Duration = "-1"
	ZeroTimeout Duration = "0"
)

// DurationOf formats d with the largest unit which represents it exactly.
func DurationOf(d time.Duration) Duration {
	switch {
	case d < 0:
		return NoTimeout
	case d == 0:
		return ZeroTimeout
	case d%time.Hour == 0:
		return Duration(strconv.FormatInt(int64(d/time.Hour), 10) + "h")
	case d%time.Minute == 0:
		return Duration(strconv.FormatInt(int64(d/time.Minute), 10) + "m")
	case d%time.Second == 0:
		return Duration(strconv.FormatInt(int64(d/time.Second), 10) + "s")
	case d%time.Millisecond == 0:
		return Duration(strconv.FormatInt(int64(d/time.Millisecond), 10) + "ms")
	case d%time.Microsecond == 0:
		return Duration(strconv.FormatInt(int64(d/time.Microsecond), 10) + "micros")
	default:
		return Duration(strconv.FormatInt(int64(d), 10) + "nanos")
	}
}

// Build turns args into a transport request for e. Every validation error is
// a *elastictransport.ConfigurationError and is returned before any I/O.
func Build(e *Endpoint, args Args, serializers *elastictransport.SerializerRegistry) (*elastictransport.Request, error) {
	if serializers == nil {
		serializers = elastictransport.DefaultSerializerRegistry()
	}

	set, order, err := collectArgs(e, args)
	if err != nil {
		return nil, err
	}

	if err := checkRequired(e, set); err != nil {
		return nil, err
	}
	if err := checkExclusive(e, set); err != nil {
		return nil, err
	}

	path, parts, err := selectPath(e, set)
	if err != nil {
		return nil, err
	}

	req := &elastictransport.Request{
		Method:       e.Method,
		Header:       make(http.Header),
		Endpoint:     e.ID,
		PathParts:    parts,
		Instrumented: e.Instrumented,
	}
	if path.Method != "" {
		req.Method = path.Method
	}

	quoted := make(map[string]string, len(parts))
	for name, value := range parts {
		quoted[name] = quotePathPart(value)
	}
	req.Path = path.expand(quoted)

	for _, name := range order {
		p := e.Params[name]
		switch p.Kind {
		case ParamQuery:
			req.Query.Add(name, stringify(set[name]))
		case ParamHeader:
			req.Header.Set(name, stringify(set[name]))
		}
	}

	body, err := assembleBody(e, set, order)
	if err != nil {
		return nil, err
	}

	if e.Accept != "" {
		req.Header.Set(headerAccept, e.Accept)
	}

	if body != nil {
		contentType := e.ContentType
		if contentType == "" {
			contentType = mimeJSON
		}
		payload, err := serializers.Encode(body, contentType)
		if err != nil {
			var (
				cfgErr *elastictransport.ConfigurationError
				serErr *elastictransport.SerializationError
			)
			if errors.As(err, &cfgErr) || errors.As(err, &serErr) {
				return nil, err
			}
			return nil, &elastictransport.SerializationError{ContentType: contentType, Err: err}
		}
		req.Body = payload
		req.Header.Set(headerContentType, contentType)
		if e.MethodWithBody != "" && path.Method == "" {
			req.Method = e.MethodWithBody
		}
	}

	return req, nil
}

// collectArgs applies aliases, drops unset values and rejects unknown or
// repeated parameters. It returns the values by wire name and the wire
// names in argument order.
func collectArgs(e *Endpoint, args Args) (map[string]any, []string, error) {
	set := make(map[string]any, len(args))
	order := make([]string, 0, len(args))
	for _, a := range args {
		name := a.Name
		if wire, ok := e.Aliases[name]; ok {
			name = wire
		}
		if isUnset(a.Value) {
			continue
		}
		if name != bodyArg {
			if _, ok := e.Params[name]; !ok {
				return nil, nil, elastictransport.NewConfigurationError("%s: unexpected parameter %q", e.ID, a.Name)
			}
		}
		if _, dup := set[name]; dup {
			return nil, nil, elastictransport.NewConfigurationError("%s: parameter %q set more than once", e.ID, name)
		}
		set[name] = a.Value
		order = append(order, name)
	}
	return set, order, nil
}

func checkRequired(e *Endpoint, set map[string]any) error {
	names := make([]string, 0, len(e.Params))
	for name := range e.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := e.Params[name]
		if !p.Required {
			continue
		}
		switch p.Kind {
		case ParamPath:
			if skipInPath(set[name]) {
				return elastictransport.NewConfigurationError("empty value passed for parameter %q", name)
			}
		case ParamBodyField, ParamBodyName:
			if _, ok := set[bodyArg]; ok {
				continue
			}
			if _, ok := set[name]; !ok {
				return elastictransport.NewConfigurationError("empty value passed for parameter %q", name)
			}
		default:
			if _, ok := set[name]; !ok {
				return elastictransport.NewConfigurationError("empty value passed for parameter %q", name)
			}
		}
	}
	return nil
}

func checkExclusive(e *Endpoint, set map[string]any) error {
	for _, group := range e.Exclusive {
		var present []string
		for _, name := range group {
			if _, ok := set[name]; ok {
				present = append(present, strconv.Quote(name))
			}
		}
		if len(present) > 1 {
			return elastictransport.NewConfigurationError("%s: parameters %s are mutually exclusive", e.ID, strings.Join(present, " and "))
		}
	}
	return nil
}

// selectPath returns the first template whose parts are all provided,
// along with the stringified part values.
func selectPath(e *Endpoint, set map[string]any) (Path, map[string]string, error) {
	var missing string
	for _, p := range e.Paths {
		parts := p.Parts()
		values := make(map[string]string, len(parts))
		ok := true
		for _, name := range parts {
			v := set[name]
			if skipInPath(v) {
				if missing == "" {
					missing = name
				}
				ok = false
				break
			}
			values[name] = stringify(v)
		}
		if ok {
			return p, values, nil
		}
	}
	return Path{}, nil, elastictransport.NewConfigurationError("%s: couldn't find a path for the given parameters, missing %q", e.ID, missing)
}

func assembleBody(e *Endpoint, set map[string]any, order []string) (any, error) {
	explicit, hasExplicit := set[bodyArg]

	switch e.Body {
	case BodyNone:
		if hasExplicit {
			return nil, elastictransport.NewConfigurationError("%s: endpoint does not accept a body", e.ID)
		}
		return nil, nil

	case BodyParam:
		value, hasValue := set[e.BodyName]
		if hasValue && hasExplicit {
			return nil, elastictransport.NewConfigurationError("%s: cannot set both %q and %q", e.ID, e.BodyName, bodyArg)
		}
		if hasExplicit {
			return explicit, nil
		}
		if hasValue {
			return value, nil
		}
		return nil, nil

	default:
		var fields []string
		for _, name := range order {
			if e.Params[name].Kind == ParamBodyField {
				fields = append(fields, name)
			}
		}
		if hasExplicit {
			if len(fields) > 0 {
				quoted := make([]string, len(fields))
				for i, f := range fields {
					quoted[i] = strconv.Quote(f)
				}
				return nil, elastictransport.NewConfigurationError("%s: cannot set both %q and body fields %s", e.ID, bodyArg, strings.Join(quoted, ", "))
			}
			if isEmptyMapping(explicit) {
				return nil, nil
			}
			return explicit, nil
		}
		if len(fields) == 0 {
			return nil, nil
		}
		body := make(map[string]any, len(fields))
		for _, name := range fields {
			body[name] = set[name]
		}
		return body, nil
	}
}

// isUnset reports whether v is nil or a nil pointer, slice, map or interface.
func isUnset(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// isEmptyMapping reports whether v is a map or slice without elements.
func isEmptyMapping(v any) bool {
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.Len() == 0
	}
	return false
}

// skipInPath reports whether v cannot be used as a path part: unset, an
// empty string or an empty sequence.
func skipInPath(v any) bool {
	if isUnset(v) {
		return true
	}
	rv := reflect.Indirect(reflect.ValueOf(v))
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

// stringify renders a path or query value: booleans as "true"/"false",
// numbers in decimal form and sequences joined by ",".
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case Duration:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case time.Duration:
		return string(DurationOf(t))
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case []string:
		return strings.Join(t, ",")
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Slice, reflect.Array:
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = stringify(rv.Index(i).Interface())
		}
		return strings.Join(items, ",")
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(rv.Interface())
}

// quotePathPart percent-encodes everything but unreserved characters and
// ",", so that comma separated lists stay a single readable segment.
func quotePathPart(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || c == ',' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// optional maps the zero string to unset.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}
