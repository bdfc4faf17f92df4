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

var (
	indicesCreateEndpoint = Endpoint{
		ID:     "indices.create",
		Method: http.MethodPut,
		Paths:  []Path{{Template: "/{index}"}},
		Params: map[string]Param{
			"index":                  {Kind: ParamPath, Required: true},
			"master_timeout":         {},
			"timeout":                {},
			"wait_for_active_shards": {},
			"aliases":                {Kind: ParamBodyField},
			"mappings":               {Kind: ParamBodyField},
			"settings":               {Kind: ParamBodyField},
		},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}

	indicesDeleteEndpoint = Endpoint{
		ID:     "indices.delete",
		Method: http.MethodDelete,
		Paths:  []Path{{Template: "/{index}"}},
		Params: map[string]Param{
			"index":              {Kind: ParamPath, Required: true},
			"allow_no_indices":   {},
			"expand_wildcards":   {},
			"ignore_unavailable": {},
			"master_timeout":     {},
			"timeout":            {},
		},
		Accept: mimeJSON,
	}

	indicesExistsEndpoint = Endpoint{
		ID:     "indices.exists",
		Method: http.MethodHead,
		Paths:  []Path{{Template: "/{index}"}},
		Params: map[string]Param{
			"index":              {Kind: ParamPath, Required: true},
			"allow_no_indices":   {},
			"expand_wildcards":   {},
			"flat_settings":      {},
			"ignore_unavailable": {},
			"include_defaults":   {},
			"local":              {},
		},
		Accept: mimeJSON,
	}

	indicesGetEndpoint = Endpoint{
		ID:     "indices.get",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/{index}"}},
		Params: map[string]Param{
			"index":              {Kind: ParamPath, Required: true},
			"allow_no_indices":   {},
			"expand_wildcards":   {},
			"features":           {},
			"flat_settings":      {},
			"ignore_unavailable": {},
			"include_defaults":   {},
			"local":              {},
			"master_timeout":     {},
		},
		Accept: mimeJSON,
	}

	indicesGetSettingsEndpoint = Endpoint{
		ID:     "indices.get_settings",
		Method: http.MethodGet,
		Paths: []Path{
			{Template: "/{index}/_settings/{name}"},
			{Template: "/{index}/_settings"},
			{Template: "/_settings/{name}"},
			{Template: "/_settings"},
		},
		Params: map[string]Param{
			"index":              {Kind: ParamPath},
			"name":               {Kind: ParamPath},
			"allow_no_indices":   {},
			"expand_wildcards":   {},
			"flat_settings":      {},
			"ignore_unavailable": {},
			"include_defaults":   {},
			"local":              {},
			"master_timeout":     {},
		},
		Accept: mimeJSON,
	}

	indicesPutSettingsEndpoint = Endpoint{
		ID:     "indices.put_settings",
		Method: http.MethodPut,
		Paths:  []Path{{Template: "/{index}/_settings"}, {Template: "/_settings"}},
		Params: map[string]Param{
			"index":              {Kind: ParamPath},
			"settings":           {Kind: ParamBodyName, Required: true},
			"allow_no_indices":   {},
			"expand_wildcards":   {},
			"flat_settings":      {},
			"ignore_unavailable": {},
			"master_timeout":     {},
			"preserve_existing":  {},
			"timeout":            {},
		},
		Body:        BodyParam,
		BodyName:    "settings",
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}

	indicesGetMappingEndpoint = Endpoint{
		ID:     "indices.get_mapping",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/{index}/_mapping"}, {Template: "/_mapping"}},
		Params: map[string]Param{
			"index":              {Kind: ParamPath},
			"allow_no_indices":   {},
			"expand_wildcards":   {},
			"ignore_unavailable": {},
			"local":              {},
			"master_timeout":     {},
		},
		Accept: mimeJSON,
	}

	indicesPutMappingEndpoint = Endpoint{
		ID:     "indices.put_mapping",
		Method: http.MethodPut,
		Paths:  []Path{{Template: "/{index}/_mapping"}},
		Params: map[string]Param{
			"index":                {Kind: ParamPath, Required: true},
			"allow_no_indices":     {},
			"expand_wildcards":     {},
			"ignore_unavailable":   {},
			"master_timeout":       {},
			"timeout":              {},
			"write_index_only":     {},
			"date_detection":       {Kind: ParamBodyField},
			"dynamic":              {Kind: ParamBodyField},
			"dynamic_date_formats": {Kind: ParamBodyField},
			"dynamic_templates":    {Kind: ParamBodyField},
			"_field_names":         {Kind: ParamBodyField},
			"_meta":                {Kind: ParamBodyField},
			"numeric_detection":    {Kind: ParamBodyField},
			"properties":           {Kind: ParamBodyField},
			"_routing":             {Kind: ParamBodyField},
			"runtime":              {Kind: ParamBodyField},
			"_source":              {Kind: ParamBodyField},
		},
		Aliases: map[string]string{
			"field_names":     "_field_names",
			"meta":            "_meta",
			"routing_mapping": "_routing",
			"source":          "_source",
		},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}

	indicesRefreshEndpoint = Endpoint{
		ID:     "indices.refresh",
		Method: http.MethodPost,
		Paths:  []Path{{Template: "/{index}/_refresh"}, {Template: "/_refresh"}},
		Params: map[string]Param{
			"index":              {Kind: ParamPath},
			"allow_no_indices":   {},
			"expand_wildcards":   {},
			"ignore_unavailable": {},
		},
		Accept: mimeJSON,
	}

	indicesPutAliasEndpoint = Endpoint{
		ID:     "indices.put_alias",
		Method: http.MethodPut,
		Paths:  []Path{{Template: "/{index}/_alias/{name}"}},
		Params: map[string]Param{
			"index":          {Kind: ParamPath, Required: true},
			"name":           {Kind: ParamPath, Required: true},
			"master_timeout": {},
			"timeout":        {},
			"filter":         {Kind: ParamBodyField},
			"index_routing":  {Kind: ParamBodyField},
			"is_write_index": {Kind: ParamBodyField},
			"routing":        {Kind: ParamBodyField},
			"search_routing": {Kind: ParamBodyField},
		},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}
)

// IndicesCreateRequest configures the Indices.Create API request.
type IndicesCreateRequest struct {
	Index string

	MasterTimeout       Duration
	Timeout             Duration
	WaitForActiveShards string

	Aliases  map[string]any
	Mappings any
	Settings any

	Body any
}

func (r IndicesCreateRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"master_timeout", optional(string(r.MasterTimeout))},
		{"timeout", optional(string(r.Timeout))},
		{"wait_for_active_shards", optional(r.WaitForActiveShards)},
		{"aliases", r.Aliases},
		{"mappings", r.Mappings},
		{"settings", r.Settings},
		{"body", r.Body},
	}
}

// Create creates an index.
func (c *Indices) Create(ctx context.Context, r IndicesCreateRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &indicesCreateEndpoint, r.args())
}

// IndicesDeleteRequest configures the Indices.Delete API request.
type IndicesDeleteRequest struct {
	Index []string

	AllowNoIndices    *bool
	ExpandWildcards   []string
	IgnoreUnavailable *bool
	MasterTimeout     Duration
	Timeout           Duration
}

func (r IndicesDeleteRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"allow_no_indices", r.AllowNoIndices},
		{"expand_wildcards", r.ExpandWildcards},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"master_timeout", optional(string(r.MasterTimeout))},
		{"timeout", optional(string(r.Timeout))},
	}
}

// Delete deletes one or more indices.
func (c *Indices) Delete(ctx context.Context, r IndicesDeleteRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &indicesDeleteEndpoint, r.args())
}

// IndicesExistsRequest configures the Indices.Exists API request.
type IndicesExistsRequest struct {
	Index []string

	AllowNoIndices    *bool
	ExpandWildcards   []string
	FlatSettings      *bool
	IgnoreUnavailable *bool
	IncludeDefaults   *bool
	Local             *bool
}

func (r IndicesExistsRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"allow_no_indices", r.AllowNoIndices},
		{"expand_wildcards", r.ExpandWildcards},
		{"flat_settings", r.FlatSettings},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"include_defaults", r.IncludeDefaults},
		{"local", r.Local},
	}
}

// Exists reports whether all the given indices exist.
func (c *Indices) Exists(ctx context.Context, r IndicesExistsRequest) (*elastictransport.HeadResponse, error) {
	return perform[*elastictransport.HeadResponse](ctx, c.api, &indicesExistsEndpoint, r.args())
}

// IndicesGetRequest configures the Indices.Get API request.
type IndicesGetRequest struct {
	Index []string

	AllowNoIndices    *bool
	ExpandWildcards   []string
	Features          []string
	FlatSettings      *bool
	IgnoreUnavailable *bool
	IncludeDefaults   *bool
	Local             *bool
	MasterTimeout     Duration
}

func (r IndicesGetRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"allow_no_indices", r.AllowNoIndices},
		{"expand_wildcards", r.ExpandWildcards},
		{"features", r.Features},
		{"flat_settings", r.FlatSettings},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"include_defaults", r.IncludeDefaults},
		{"local", r.Local},
		{"master_timeout", optional(string(r.MasterTimeout))},
	}
}

// Get returns information about one or more indices.
func (c *Indices) Get(ctx context.Context, r IndicesGetRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &indicesGetEndpoint, r.args())
}

// IndicesGetSettingsRequest configures the Indices.GetSettings API request.
type IndicesGetSettingsRequest struct {
	Index []string
	Name  []string

	AllowNoIndices    *bool
	ExpandWildcards   []string
	FlatSettings      *bool
	IgnoreUnavailable *bool
	IncludeDefaults   *bool
	Local             *bool
	MasterTimeout     Duration
}

func (r IndicesGetSettingsRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"name", r.Name},
		{"allow_no_indices", r.AllowNoIndices},
		{"expand_wildcards", r.ExpandWildcards},
		{"flat_settings", r.FlatSettings},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"include_defaults", r.IncludeDefaults},
		{"local", r.Local},
		{"master_timeout", optional(string(r.MasterTimeout))},
	}
}

// GetSettings returns the settings of one or more indices.
func (c *Indices) GetSettings(ctx context.Context, r IndicesGetSettingsRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &indicesGetSettingsEndpoint, r.args())
}

// IndicesPutSettingsRequest configures the Indices.PutSettings API request.
// Settings is the whole request body; Body may be used instead.
type IndicesPutSettingsRequest struct {
	Index []string

	Settings any

	AllowNoIndices    *bool
	ExpandWildcards   []string
	FlatSettings      *bool
	IgnoreUnavailable *bool
	MasterTimeout     Duration
	PreserveExisting  *bool
	Timeout           Duration

	Body any
}

func (r IndicesPutSettingsRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"settings", r.Settings},
		{"allow_no_indices", r.AllowNoIndices},
		{"expand_wildcards", r.ExpandWildcards},
		{"flat_settings", r.FlatSettings},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"master_timeout", optional(string(r.MasterTimeout))},
		{"preserve_existing", r.PreserveExisting},
		{"timeout", optional(string(r.Timeout))},
		{"body", r.Body},
	}
}

// PutSettings updates the dynamic settings of one or more indices.
func (c *Indices) PutSettings(ctx context.Context, r IndicesPutSettingsRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &indicesPutSettingsEndpoint, r.args())
}

// IndicesGetMappingRequest configures the Indices.GetMapping API request.
type IndicesGetMappingRequest struct {
	Index []string

	AllowNoIndices    *bool
	ExpandWildcards   []string
	IgnoreUnavailable *bool
	Local             *bool
	MasterTimeout     Duration
}

func (r IndicesGetMappingRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"allow_no_indices", r.AllowNoIndices},
		{"expand_wildcards", r.ExpandWildcards},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"local", r.Local},
		{"master_timeout", optional(string(r.MasterTimeout))},
	}
}

// GetMapping returns the mappings of one or more indices.
func (c *Indices) GetMapping(ctx context.Context, r IndicesGetMappingRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &indicesGetMappingEndpoint, r.args())
}

// IndicesPutMappingRequest configures the Indices.PutMapping API request.
type IndicesPutMappingRequest struct {
	Index []string

	AllowNoIndices    *bool
	ExpandWildcards   []string
	IgnoreUnavailable *bool
	MasterTimeout     Duration
	Timeout           Duration
	WriteIndexOnly    *bool

	DateDetection      *bool
	Dynamic            any
	DynamicDateFormats []string
	DynamicTemplates   []any
	FieldNames         any
	Meta               map[string]any
	NumericDetection   *bool
	Properties         map[string]any
	Routing            any
	Runtime            map[string]any
	Source             any

	Body any
}

func (r IndicesPutMappingRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"allow_no_indices", r.AllowNoIndices},
		{"expand_wildcards", r.ExpandWildcards},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"master_timeout", optional(string(r.MasterTimeout))},
		{"timeout", optional(string(r.Timeout))},
		{"write_index_only", r.WriteIndexOnly},
		{"date_detection", r.DateDetection},
		{"dynamic", r.Dynamic},
		{"dynamic_date_formats", r.DynamicDateFormats},
		{"dynamic_templates", r.DynamicTemplates},
		{"field_names", r.FieldNames},
		{"meta", r.Meta},
		{"numeric_detection", r.NumericDetection},
		{"properties", r.Properties},
		{"routing_mapping", r.Routing},
		{"runtime", r.Runtime},
		{"source", r.Source},
		{"body", r.Body},
	}
}

// PutMapping adds new fields to the mappings of one or more indices.
func (c *Indices) PutMapping(ctx context.Context, r IndicesPutMappingRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &indicesPutMappingEndpoint, r.args())
}

// IndicesRefreshRequest configures the Indices.Refresh API request.
type IndicesRefreshRequest struct {
	Index []string

	AllowNoIndices    *bool
	ExpandWildcards   []string
	IgnoreUnavailable *bool
}

func (r IndicesRefreshRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"allow_no_indices", r.AllowNoIndices},
		{"expand_wildcards", r.ExpandWildcards},
		{"ignore_unavailable", r.IgnoreUnavailable},
	}
}

// Refresh makes recent operations on one or more indices visible to search.
func (c *Indices) Refresh(ctx context.Context, r IndicesRefreshRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &indicesRefreshEndpoint, r.args())
}

// IndicesPutAliasRequest configures the Indices.PutAlias API request.
type IndicesPutAliasRequest struct {
	Index []string
	Name  string

	MasterTimeout Duration
	Timeout       Duration

	Filter        any
	IndexRouting  string
	IsWriteIndex  *bool
	Routing       string
	SearchRouting string

	Body any
}

func (r IndicesPutAliasRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"name", r.Name},
		{"master_timeout", optional(string(r.MasterTimeout))},
		{"timeout", optional(string(r.Timeout))},
		{"filter", r.Filter},
		{"index_routing", optional(r.IndexRouting)},
		{"is_write_index", r.IsWriteIndex},
		{"routing", optional(r.Routing)},
		{"search_routing", optional(r.SearchRouting)},
		{"body", r.Body},
	}
}

// PutAlias adds an alias to one or more indices.
func (c *Indices) PutAlias(ctx context.Context, r IndicesPutAliasRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &indicesPutAliasEndpoint, r.args())
}
