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
	"context"
	"net/http"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

// The CAT APIs answer with aligned text by default and with JSON when
// Format is "json".
const catAccept = mimeText + "," + mimeJSON

var (
	catIndicesEndpoint = Endpoint{
		ID:     "cat.indices",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/_cat/indices/{index}"}, {Template: "/_cat/indices"}},
		Params: map[string]Param{
			"index":                     {Kind: ParamPath},
			"bytes":                     {},
			"expand_wildcards":          {},
			"format":                    {},
			"h":                         {},
			"health":                    {},
			"help":                      {},
			"include_unloaded_segments": {},
			"pri":                       {},
			"s":                         {},
			"time":                      {},
			"v":                         {},
		},
		Accept: catAccept,
	}

	catCountEndpoint = Endpoint{
		ID:     "cat.count",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/_cat/count/{index}"}, {Template: "/_cat/count"}},
		Params: map[string]Param{
			"index":  {Kind: ParamPath},
			"format": {},
			"h":      {},
			"help":   {},
			"s":      {},
			"v":      {},
		},
		Accept: catAccept,
	}

	catAliasesEndpoint = Endpoint{
		ID:     "cat.aliases",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/_cat/aliases/{name}"}, {Template: "/_cat/aliases"}},
		Params: map[string]Param{
			"name":             {Kind: ParamPath},
			"expand_wildcards": {},
			"format":           {},
			"h":                {},
			"help":             {},
			"s":                {},
			"v":                {},
		},
		Accept: catAccept,
	}

	catHelpEndpoint = Endpoint{
		ID:     "cat.help",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/_cat"}},
		Accept: mimeText,
	}
)

// CatRequest holds the parameters shared by the CAT APIs.
type CatRequest struct {
	// Format is "text" (default) or "json".
	Format string
	H      []string
	Help   *bool
	S      []string
	V      *bool
}

func (r CatRequest) args() Args {
	return Args{
		{"format", optional(r.Format)},
		{"h", r.H},
		{"help", r.Help},
		{"s", r.S},
		{"v", r.V},
	}
}

// CatIndicesRequest configures the Cat.Indices API request.
type CatIndicesRequest struct {
	CatRequest

	Index []string

	Bytes                   string
	ExpandWildcards         []string
	Health                  string
	IncludeUnloadedSegments *bool
	Pri                     *bool
	Time                    string
}

func (r CatIndicesRequest) args() Args {
	return append(Args{
		{"index", r.Index},
		{"bytes", optional(r.Bytes)},
		{"expand_wildcards", r.ExpandWildcards},
		{"health", optional(r.Health)},
		{"include_unloaded_segments", r.IncludeUnloadedSegments},
		{"pri", r.Pri},
		{"time", optional(r.Time)},
	}, r.CatRequest.args()...)
}

// Indices returns high-level information about indices. The envelope is a
// *TextResponse, or an *ObjectResponse with Format "json".
func (c *Cat) Indices(ctx context.Context, r CatIndicesRequest) (elastictransport.Envelope, error) {
	return perform[elastictransport.Envelope](ctx, c.api, &catIndicesEndpoint, r.args())
}

// CatCountRequest configures the Cat.Count API request.
type CatCountRequest struct {
	CatRequest

	Index []string
}

func (r CatCountRequest) args() Args {
	return append(Args{{"index", r.Index}}, r.CatRequest.args()...)
}

// Count returns the document count of indices.
func (c *Cat) Count(ctx context.Context, r CatCountRequest) (elastictransport.Envelope, error) {
	return perform[elastictransport.Envelope](ctx, c.api, &catCountEndpoint, r.args())
}

// CatAliasesRequest configures the Cat.Aliases API request.
type CatAliasesRequest struct {
	CatRequest

	Name []string

	ExpandWildcards []string
}

func (r CatAliasesRequest) args() Args {
	return append(Args{
		{"name", r.Name},
		{"expand_wildcards", r.ExpandWildcards},
	}, r.CatRequest.args()...)
}

// Aliases returns the index aliases.
func (c *Cat) Aliases(ctx context.Context, r CatAliasesRequest) (elastictransport.Envelope, error) {
	return perform[elastictransport.Envelope](ctx, c.api, &catAliasesEndpoint, r.args())
}

// Help lists the CAT APIs.
func (c *Cat) Help(ctx context.Context) (*elastictransport.TextResponse, error) {
	return perform[*elastictransport.TextResponse](ctx, c.api, &catHelpEndpoint, nil)
}
