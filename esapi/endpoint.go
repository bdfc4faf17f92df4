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
	"regexp"
	"strings"
)

// ParamKind tells the request builder where a parameter goes.
type ParamKind int

// Parameter kinds.
const (
	ParamQuery ParamKind = iota
	ParamPath
	ParamBodyField
	ParamBodyName
	ParamHeader
)

func (k ParamKind) String() string {
	switch k {
	case ParamPath:
		return "path"
	case ParamBodyField:
		return "body field"
	case ParamBodyName:
		return "body"
	case ParamHeader:
		return "header"
	default:
		return "query"
	}
}

// Param describes one parameter accepted by an endpoint, keyed by its wire
// name in Endpoint.Params.
type Param struct {
	Kind     ParamKind
	Required bool
}

// BodyStrategy selects how the request body is assembled.
type BodyStrategy int

// Body strategies.
const (
	// BodyNone endpoints do not accept a body.
	BodyNone BodyStrategy = iota
	// BodyFields endpoints build the body from named fields, or accept an
	// explicit body instead.
	BodyFields
	// BodyParam endpoints take the whole body from one parameter
	// (Endpoint.BodyName), or from an explicit body instead.
	BodyParam
)

// Stability of an endpoint.
type Stability int

// Stability levels.
const (
	Stable Stability = iota
	Beta
	Experimental
)

func (s Stability) String() string {
	switch s {
	case Beta:
		return "beta"
	case Experimental:
		return "experimental"
	default:
		return "stable"
	}
}

// Path is a path template such as "/{index}/_doc/{id}". Method, when set,
// overrides the endpoint method for this template.
type Path struct {
	Method   string
	Template string
}

var pathPartRE = regexp.MustCompile(`\{([a-z_]+)\}`)

// Parts returns the path parts referenced by the template, in order.
func (p Path) Parts() []string {
	matches := pathPartRE.FindAllStringSubmatch(p.Template, -1)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m[1])
	}
	return parts
}

func (p Path) expand(values map[string]string) string {
	return pathPartRE.ReplaceAllStringFunc(p.Template, func(m string) string {
		return values[strings.Trim(m, "{}")]
	})
}

// Endpoint is the declarative description of an API, consumed by Build.
type Endpoint struct {
	// ID identifies the endpoint in logs, traces and warnings,
	// e.g. "indices.put_settings".
	ID string

	Method string
	// MethodWithBody is used instead of Method when the request has a body.
	MethodWithBody string
	// Paths are tried in order; the first one whose parts are all provided
	// is used.
	Paths []Path

	Params map[string]Param
	// Aliases maps caller-facing names to wire names, e.g. "from_" to "from".
	Aliases map[string]string

	Body     BodyStrategy
	BodyName string

	Accept      string
	ContentType string

	Stability  Stability
	Deprecated string
	// Exclusive lists groups of parameters which cannot be set together.
	Exclusive [][]string
	// Instrumented marks search-like endpoints whose body may be recorded
	// by the instrumentation.
	Instrumented bool
}
