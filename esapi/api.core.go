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
	infoEndpoint = Endpoint{
		ID:     "info",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/"}},
		Accept: mimeJSON,
	}

	pingEndpoint = Endpoint{
		ID:     "ping",
		Method: http.MethodHead,
		Paths:  []Path{{Template: "/"}},
		Accept: mimeJSON,
	}

	searchEndpoint = Endpoint{
		ID:             "search",
		Method:         http.MethodGet,
		MethodWithBody: http.MethodPost,
		Paths:          []Path{{Template: "/{index}/_search"}, {Template: "/_search"}},
		Params: map[string]Param{
			"index":                         {Kind: ParamPath},
			"allow_no_indices":              {},
			"allow_partial_search_results":  {},
			"analyzer":                      {},
			"analyze_wildcard":              {},
			"ccs_minimize_roundtrips":       {},
			"default_operator":              {},
			"df":                            {},
			"expand_wildcards":              {},
			"ignore_unavailable":            {},
			"lenient":                       {},
			"preference":                    {},
			"q":                             {},
			"request_cache":                 {},
			"rest_total_hits_as_int":        {},
			"routing":                       {},
			"scroll":                        {},
			"search_type":                   {},
			"typed_keys":                    {},
			"aggregations":                  {Kind: ParamBodyField},
			"collapse":                      {Kind: ParamBodyField},
			"explain":                       {Kind: ParamBodyField},
			"fields":                        {Kind: ParamBodyField},
			"from":                          {Kind: ParamBodyField},
			"highlight":                     {Kind: ParamBodyField},
			"knn":                           {Kind: ParamBodyField},
			"min_score":                     {Kind: ParamBodyField},
			"pit":                           {Kind: ParamBodyField},
			"post_filter":                   {Kind: ParamBodyField},
			"query":                         {Kind: ParamBodyField},
			"runtime_mappings":              {Kind: ParamBodyField},
			"search_after":                  {Kind: ParamBodyField},
			"size":                          {Kind: ParamBodyField},
			"sort":                          {Kind: ParamBodyField},
			"_source":                       {Kind: ParamBodyField},
			"stored_fields":                 {Kind: ParamBodyField},
			"timeout":                       {Kind: ParamBodyField},
			"track_total_hits":              {Kind: ParamBodyField},
			"max_concurrent_shard_requests": {},
		},
		Aliases:      map[string]string{"from_": "from", "source": "_source", "aggs": "aggregations"},
		Body:         BodyFields,
		Accept:       mimeJSON,
		ContentType:  mimeJSON,
		Instrumented: true,
	}

	countEndpoint = Endpoint{
		ID:             "count",
		Method:         http.MethodGet,
		MethodWithBody: http.MethodPost,
		Paths:          []Path{{Template: "/{index}/_count"}, {Template: "/_count"}},
		Params: map[string]Param{
			"index":              {Kind: ParamPath},
			"allow_no_indices":   {},
			"analyzer":           {},
			"analyze_wildcard":   {},
			"default_operator":   {},
			"df":                 {},
			"expand_wildcards":   {},
			"ignore_unavailable": {},
			"lenient":            {},
			"min_score":          {},
			"preference":         {},
			"q":                  {},
			"routing":            {},
			"terminate_after":    {},
			"query":              {Kind: ParamBodyField},
		},
		Body:         BodyFields,
		Accept:       mimeJSON,
		ContentType:  mimeJSON,
		Instrumented: true,
	}

	indexEndpoint = Endpoint{
		ID:    "index",
		Paths: []Path{{Method: http.MethodPut, Template: "/{index}/_doc/{id}"}, {Method: http.MethodPost, Template: "/{index}/_doc"}},
		Params: map[string]Param{
			"index":                  {Kind: ParamPath, Required: true},
			"id":                     {Kind: ParamPath},
			"document":               {Kind: ParamBodyName, Required: true},
			"if_primary_term":        {},
			"if_seq_no":              {},
			"op_type":                {},
			"pipeline":               {},
			"refresh":                {},
			"require_alias":          {},
			"routing":                {},
			"timeout":                {},
			"version":                {},
			"version_type":           {},
			"wait_for_active_shards": {},
		},
		Body:        BodyParam,
		BodyName:    "document",
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}

	createEndpoint = Endpoint{
		ID:     "create",
		Method: http.MethodPut,
		Paths:  []Path{{Template: "/{index}/_create/{id}"}},
		Params: map[string]Param{
			"index":                  {Kind: ParamPath, Required: true},
			"id":                     {Kind: ParamPath, Required: true},
			"document":               {Kind: ParamBodyName, Required: true},
			"pipeline":               {},
			"refresh":                {},
			"routing":                {},
			"timeout":                {},
			"version":                {},
			"version_type":           {},
			"wait_for_active_shards": {},
		},
		Body:        BodyParam,
		BodyName:    "document",
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}

	getEndpoint = Endpoint{
		ID:     "get",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/{index}/_doc/{id}"}},
		Params: map[string]Param{
			"index":            {Kind: ParamPath, Required: true},
			"id":               {Kind: ParamPath, Required: true},
			"preference":       {},
			"realtime":         {},
			"refresh":          {},
			"routing":          {},
			"_source":          {},
			"_source_excludes": {},
			"_source_includes": {},
			"stored_fields":    {},
			"version":          {},
			"version_type":     {},
		},
		Aliases: map[string]string{"source": "_source", "source_excludes": "_source_excludes", "source_includes": "_source_includes"},
		Accept:  mimeJSON,
	}

	existsEndpoint = Endpoint{
		ID:     "exists",
		Method: http.MethodHead,
		Paths:  []Path{{Template: "/{index}/_doc/{id}"}},
		Params: map[string]Param{
			"index":            {Kind: ParamPath, Required: true},
			"id":               {Kind: ParamPath, Required: true},
			"preference":       {},
			"realtime":         {},
			"refresh":          {},
			"routing":          {},
			"_source":          {},
			"_source_excludes": {},
			"_source_includes": {},
			"stored_fields":    {},
			"version":          {},
			"version_type":     {},
		},
		Aliases: map[string]string{"source": "_source", "source_excludes": "_source_excludes", "source_includes": "_source_includes"},
		Accept:  mimeJSON,
	}

	deleteEndpoint = Endpoint{
		ID:     "delete",
		Method: http.MethodDelete,
		Paths:  []Path{{Template: "/{index}/_doc/{id}"}},
		Params: map[string]Param{
			"index":                  {Kind: ParamPath, Required: true},
			"id":                     {Kind: ParamPath, Required: true},
			"if_primary_term":        {},
			"if_seq_no":              {},
			"refresh":                {},
			"routing":                {},
			"timeout":                {},
			"version":                {},
			"version_type":           {},
			"wait_for_active_shards": {},
		},
		Accept: mimeJSON,
	}

	updateEndpoint = Endpoint{
		ID:     "update",
		Method: http.MethodPost,
		Paths:  []Path{{Template: "/{index}/_update/{id}"}},
		Params: map[string]Param{
			"index":                  {Kind: ParamPath, Required: true},
			"id":                     {Kind: ParamPath, Required: true},
			"if_primary_term":        {},
			"if_seq_no":              {},
			"lang":                   {},
			"refresh":                {},
			"require_alias":          {},
			"retry_on_conflict":      {},
			"routing":                {},
			"timeout":                {},
			"wait_for_active_shards": {},
			"detect_noop":            {Kind: ParamBodyField},
			"doc":                    {Kind: ParamBodyField},
			"doc_as_upsert":          {Kind: ParamBodyField},
			"script":                 {Kind: ParamBodyField},
			"scripted_upsert":        {Kind: ParamBodyField},
			"_source":                {Kind: ParamBodyField},
			"upsert":                 {Kind: ParamBodyField},
		},
		Aliases:     map[string]string{"source": "_source"},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}

	bulkEndpoint = Endpoint{
		ID:     "bulk",
		Method: http.MethodPut,
		Paths:  []Path{{Template: "/{index}/_bulk"}, {Template: "/_bulk"}},
		Params: map[string]Param{
			"index":                  {Kind: ParamPath},
			"operations":             {Kind: ParamBodyName, Required: true},
			"pipeline":               {},
			"refresh":                {},
			"require_alias":          {},
			"routing":                {},
			"_source":                {},
			"_source_excludes":       {},
			"_source_includes":       {},
			"timeout":                {},
			"wait_for_active_shards": {},
		},
		Aliases:     map[string]string{"source": "_source", "source_excludes": "_source_excludes", "source_includes": "_source_includes"},
		Body:        BodyParam,
		BodyName:    "operations",
		Accept:      mimeJSON,
		ContentType: mimeNDJSON,
	}

	msearchEndpoint = Endpoint{
		ID:     "msearch",
		Method: http.MethodPost,
		Paths:  []Path{{Template: "/{index}/_msearch"}, {Template: "/_msearch"}},
		Params: map[string]Param{
			"index":                         {Kind: ParamPath},
			"searches":                      {Kind: ParamBodyName, Required: true},
			"allow_no_indices":              {},
			"ccs_minimize_roundtrips":       {},
			"expand_wildcards":              {},
			"ignore_unavailable":            {},
			"max_concurrent_searches":       {},
			"max_concurrent_shard_requests": {},
			"rest_total_hits_as_int":        {},
			"routing":                       {},
			"search_type":                   {},
			"typed_keys":                    {},
		},
		Body:         BodyParam,
		BodyName:     "searches",
		Accept:       mimeJSON,
		ContentType:  mimeNDJSON,
		Instrumented: true,
	}

	searchMvtEndpoint = Endpoint{
		ID:     "search_mvt",
		Method: http.MethodPost,
		Paths:  []Path{{Template: "/{index}/_mvt/{field}/{zoom}/{x}/{y}"}},
		Params: map[string]Param{
			"index":            {Kind: ParamPath, Required: true},
			"field":            {Kind: ParamPath, Required: true},
			"zoom":             {Kind: ParamPath, Required: true},
			"x":                {Kind: ParamPath, Required: true},
			"y":                {Kind: ParamPath, Required: true},
			"aggs":             {Kind: ParamBodyField},
			"buffer":           {Kind: ParamBodyField},
			"exact_bounds":     {Kind: ParamBodyField},
			"extent":           {Kind: ParamBodyField},
			"fields":           {Kind: ParamBodyField},
			"grid_agg":         {Kind: ParamBodyField},
			"grid_precision":   {Kind: ParamBodyField},
			"grid_type":        {Kind: ParamBodyField},
			"query":            {Kind: ParamBodyField},
			"runtime_mappings": {Kind: ParamBodyField},
			"size":             {Kind: ParamBodyField},
			"sort":             {Kind: ParamBodyField},
			"track_total_hits": {Kind: ParamBodyField},
			"with_labels":      {Kind: ParamBodyField},
		},
		Body:         BodyFields,
		Accept:       mimeTile,
		ContentType:  mimeJSON,
		Stability:    Experimental,
		Instrumented: true,
	}

	deleteByQueryEndpoint = Endpoint{
		ID:     "delete_by_query",
		Method: http.MethodPost,
		Paths:  []Path{{Template: "/{index}/_delete_by_query"}},
		Params: map[string]Param{
			"index":                  {Kind: ParamPath, Required: true},
			"allow_no_indices":       {},
			"conflicts":              {},
			"expand_wildcards":       {},
			"ignore_unavailable":     {},
			"q":                      {},
			"refresh":                {},
			"requests_per_second":    {},
			"routing":                {},
			"scroll_size":            {},
			"slices":                 {},
			"timeout":                {},
			"wait_for_active_shards": {},
			"wait_for_completion":    {},
			"max_docs":               {Kind: ParamBodyField},
			"query":                  {Kind: ParamBodyField},
			"slice":                  {Kind: ParamBodyField},
		},
		Body:         BodyFields,
		Accept:       mimeJSON,
		ContentType:  mimeJSON,
		Instrumented: true,
	}
)

// Info returns basic information about the cluster.
func (a *API) Info(ctx context.Context) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &infoEndpoint, nil)
}

// Ping reports whether the cluster is reachable; Body is false on 404.
func (a *API) Ping(ctx context.Context) (*elastictransport.HeadResponse, error) {
	return perform[*elastictransport.HeadResponse](ctx, a, &pingEndpoint, nil)
}

// SearchRequest configures the Search API request.
type SearchRequest struct {
	Index []string

	AllowNoIndices             *bool
	AllowPartialSearchResults  *bool
	Analyzer                   string
	AnalyzeWildcard            *bool
	CcsMinimizeRoundtrips      *bool
	DefaultOperator            string
	Df                         string
	ExpandWildcards            []string
	IgnoreUnavailable          *bool
	Lenient                    *bool
	MaxConcurrentShardRequests *int
	Preference                 string
	Q                          string
	RequestCache               *bool
	RestTotalHitsAsInt         *bool
	Routing                    []string
	Scroll                     Duration
	SearchType                 string
	TypedKeys                  *bool

	Aggregations    map[string]any
	Collapse        any
	Explain         *bool
	Fields          []any
	From            *int
	Highlight       any
	Knn             any
	MinScore        *float64
	Pit             any
	PostFilter      any
	Query           any
	RuntimeMappings map[string]any
	SearchAfter     []any
	Size            *int
	Sort            any
	Source          any
	StoredFields    []string
	Timeout         Duration
	TrackTotalHits  any

	// Body replaces the body fields above.
	Body any
}

func (r SearchRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"allow_no_indices", r.AllowNoIndices},
		{"allow_partial_search_results", r.AllowPartialSearchResults},
		{"analyzer", optional(r.Analyzer)},
		{"analyze_wildcard", r.AnalyzeWildcard},
		{"ccs_minimize_roundtrips", r.CcsMinimizeRoundtrips},
		{"default_operator", optional(r.DefaultOperator)},
		{"df", optional(r.Df)},
		{"expand_wildcards", r.ExpandWildcards},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"lenient", r.Lenient},
		{"max_concurrent_shard_requests", r.MaxConcurrentShardRequests},
		{"preference", optional(r.Preference)},
		{"q", optional(r.Q)},
		{"request_cache", r.RequestCache},
		{"rest_total_hits_as_int", r.RestTotalHitsAsInt},
		{"routing", r.Routing},
		{"scroll", optional(string(r.Scroll))},
		{"search_type", optional(r.SearchType)},
		{"typed_keys", r.TypedKeys},
		{"aggs", r.Aggregations},
		{"collapse", r.Collapse},
		{"explain", r.Explain},
		{"fields", r.Fields},
		{"from_", r.From},
		{"highlight", r.Highlight},
		{"knn", r.Knn},
		{"min_score", r.MinScore},
		{"pit", r.Pit},
		{"post_filter", r.PostFilter},
		{"query", r.Query},
		{"runtime_mappings", r.RuntimeMappings},
		{"search_after", r.SearchAfter},
		{"size", r.Size},
		{"sort", r.Sort},
		{"source", r.Source},
		{"stored_fields", r.StoredFields},
		{"timeout", optional(string(r.Timeout))},
		{"track_total_hits", r.TrackTotalHits},
		{"body", r.Body},
	}
}

// Search returns search hits matching the query.
func (a *API) Search(ctx context.Context, r SearchRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &searchEndpoint, r.args())
}

// CountRequest configures the Count API request.
type CountRequest struct {
	Index []string

	AllowNoIndices    *bool
	Analyzer          string
	AnalyzeWildcard   *bool
	DefaultOperator   string
	Df                string
	ExpandWildcards   []string
	IgnoreUnavailable *bool
	Lenient           *bool
	MinScore          *float64
	Preference        string
	Q                 string
	Routing           []string
	TerminateAfter    *int

	Query any

	Body any
}

func (r CountRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"allow_no_indices", r.AllowNoIndices},
		{"analyzer", optional(r.Analyzer)},
		{"analyze_wildcard", r.AnalyzeWildcard},
		{"default_operator", optional(r.DefaultOperator)},
		{"df", optional(r.Df)},
		{"expand_wildcards", r.ExpandWildcards},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"lenient", r.Lenient},
		{"min_score", r.MinScore},
		{"preference", optional(r.Preference)},
		{"q", optional(r.Q)},
		{"routing", r.Routing},
		{"terminate_after", r.TerminateAfter},
		{"query", r.Query},
		{"body", r.Body},
	}
}

// Count returns the number of documents matching a query.
func (a *API) Count(ctx context.Context, r CountRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &countEndpoint, r.args())
}

// IndexRequest configures the Index API request. Without ID the document
// gets an automatically generated one.
type IndexRequest struct {
	Index string
	ID    string

	Document any

	IfPrimaryTerm       *int64
	IfSeqNo             *int64
	OpType              string
	Pipeline            string
	Refresh             string
	RequireAlias        *bool
	Routing             string
	Timeout             Duration
	Version             *int64
	VersionType         string
	WaitForActiveShards string

	Body any
}

func (r IndexRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"id", r.ID},
		{"document", r.Document},
		{"if_primary_term", r.IfPrimaryTerm},
		{"if_seq_no", r.IfSeqNo},
		{"op_type", optional(r.OpType)},
		{"pipeline", optional(r.Pipeline)},
		{"refresh", optional(r.Refresh)},
		{"require_alias", r.RequireAlias},
		{"routing", optional(r.Routing)},
		{"timeout", optional(string(r.Timeout))},
		{"version", r.Version},
		{"version_type", optional(r.VersionType)},
		{"wait_for_active_shards", optional(r.WaitForActiveShards)},
		{"body", r.Body},
	}
}

// Index creates or updates a document in an index.
func (a *API) Index(ctx context.Context, r IndexRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &indexEndpoint, r.args())
}

// CreateRequest configures the Create API request.
type CreateRequest struct {
	Index string
	ID    string

	Document any

	Pipeline            string
	Refresh             string
	Routing             string
	Timeout             Duration
	Version             *int64
	VersionType         string
	WaitForActiveShards string

	Body any
}

func (r CreateRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"id", r.ID},
		{"document", r.Document},
		{"pipeline", optional(r.Pipeline)},
		{"refresh", optional(r.Refresh)},
		{"routing", optional(r.Routing)},
		{"timeout", optional(string(r.Timeout))},
		{"version", r.Version},
		{"version_type", optional(r.VersionType)},
		{"wait_for_active_shards", optional(r.WaitForActiveShards)},
		{"body", r.Body},
	}
}

// Create indexes a document only if it does not exist yet.
func (a *API) Create(ctx context.Context, r CreateRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &createEndpoint, r.args())
}

// GetRequest configures the Get and Exists API requests.
type GetRequest struct {
	Index string
	ID    string

	Preference     string
	Realtime       *bool
	Refresh        *bool
	Routing        string
	Source         any
	SourceExcludes []string
	SourceIncludes []string
	StoredFields   []string
	Version        *int64
	VersionType    string
}

func (r GetRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"id", r.ID},
		{"preference", optional(r.Preference)},
		{"realtime", r.Realtime},
		{"refresh", r.Refresh},
		{"routing", optional(r.Routing)},
		{"source", r.Source},
		{"source_excludes", r.SourceExcludes},
		{"source_includes", r.SourceIncludes},
		{"stored_fields", r.StoredFields},
		{"version", r.Version},
		{"version_type", optional(r.VersionType)},
	}
}

// Get returns a document.
func (a *API) Get(ctx context.Context, r GetRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &getEndpoint, r.args())
}

// Exists reports whether a document exists.
func (a *API) Exists(ctx context.Context, r GetRequest) (*elastictransport.HeadResponse, error) {
	return perform[*elastictransport.HeadResponse](ctx, a, &existsEndpoint, r.args())
}

// DeleteRequest configures the Delete API request.
type DeleteRequest struct {
	Index string
	ID    string

	IfPrimaryTerm       *int64
	IfSeqNo             *int64
	Refresh             string
	Routing             string
	Timeout             Duration
	Version             *int64
	VersionType         string
	WaitForActiveShards string
}

func (r DeleteRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"id", r.ID},
		{"if_primary_term", r.IfPrimaryTerm},
		{"if_seq_no", r.IfSeqNo},
		{"refresh", optional(r.Refresh)},
		{"routing", optional(r.Routing)},
		{"timeout", optional(string(r.Timeout))},
		{"version", r.Version},
		{"version_type", optional(r.VersionType)},
		{"wait_for_active_shards", optional(r.WaitForActiveShards)},
	}
}

// Delete removes a document from an index.
func (a *API) Delete(ctx context.Context, r DeleteRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &deleteEndpoint, r.args())
}

// UpdateRequest configures the Update API request.
type UpdateRequest struct {
	Index string
	ID    string

	IfPrimaryTerm       *int64
	IfSeqNo             *int64
	Lang                string
	Refresh             string
	RequireAlias        *bool
	RetryOnConflict     *int
	Routing             string
	Timeout             Duration
	WaitForActiveShards string

	DetectNoop     *bool
	Doc            any
	DocAsUpsert    *bool
	Script         any
	ScriptedUpsert *bool
	Source         any
	Upsert         any

	Body any
}

func (r UpdateRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"id", r.ID},
		{"if_primary_term", r.IfPrimaryTerm},
		{"if_seq_no", r.IfSeqNo},
		{"lang", optional(r.Lang)},
		{"refresh", optional(r.Refresh)},
		{"require_alias", r.RequireAlias},
		{"retry_on_conflict", r.RetryOnConflict},
		{"routing", optional(r.Routing)},
		{"timeout", optional(string(r.Timeout))},
		{"wait_for_active_shards", optional(r.WaitForActiveShards)},
		{"detect_noop", r.DetectNoop},
		{"doc", r.Doc},
		{"doc_as_upsert", r.DocAsUpsert},
		{"script", r.Script},
		{"scripted_upsert", r.ScriptedUpsert},
		{"source", r.Source},
		{"upsert", r.Upsert},
		{"body", r.Body},
	}
}

// Update partially updates a document with a script or a partial document.
func (a *API) Update(ctx context.Context, r UpdateRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &updateEndpoint, r.args())
}

// BulkRequest configures the Bulk API request. Operations is a sequence of
// action and document lines, encoded as NDJSON.
type BulkRequest struct {
	Index string

	Operations []any

	Pipeline            string
	Refresh             string
	RequireAlias        *bool
	Routing             string
	Source              any
	SourceExcludes      []string
	SourceIncludes      []string
	Timeout             Duration
	WaitForActiveShards string

	// Body replaces Operations, e.g. with pre-encoded NDJSON bytes.
	Body any
}

func (r BulkRequest) args() Args {
	return Args{
		{"index", optional(r.Index)},
		{"operations", r.Operations},
		{"pipeline", optional(r.Pipeline)},
		{"refresh", optional(r.Refresh)},
		{"require_alias", r.RequireAlias},
		{"routing", optional(r.Routing)},
		{"source", r.Source},
		{"source_excludes", r.SourceExcludes},
		{"source_includes", r.SourceIncludes},
		{"timeout", optional(string(r.Timeout))},
		{"wait_for_active_shards", optional(r.WaitForActiveShards)},
		{"body", r.Body},
	}
}

// Bulk performs several index, create, update and delete operations in one
// request.
func (a *API) Bulk(ctx context.Context, r BulkRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &bulkEndpoint, r.args())
}

// MsearchRequest configures the Msearch API request. Searches alternates
// header and body lines, encoded as NDJSON.
type MsearchRequest struct {
	Index []string

	Searches []any

	AllowNoIndices             *bool
	CcsMinimizeRoundtrips      *bool
	ExpandWildcards            []string
	IgnoreUnavailable          *bool
	MaxConcurrentSearches      *int
	MaxConcurrentShardRequests *int
	RestTotalHitsAsInt         *bool
	Routing                    string
	SearchType                 string
	TypedKeys                  *bool

	Body any
}

func (r MsearchRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"searches", r.Searches},
		{"allow_no_indices", r.AllowNoIndices},
		{"ccs_minimize_roundtrips", r.CcsMinimizeRoundtrips},
		{"expand_wildcards", r.ExpandWildcards},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"max_concurrent_searches", r.MaxConcurrentSearches},
		{"max_concurrent_shard_requests", r.MaxConcurrentShardRequests},
		{"rest_total_hits_as_int", r.RestTotalHitsAsInt},
		{"routing", optional(r.Routing)},
		{"search_type", optional(r.SearchType)},
		{"typed_keys", r.TypedKeys},
		{"body", r.Body},
	}
}

// Msearch runs several searches in one request.
func (a *API) Msearch(ctx context.Context, r MsearchRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &msearchEndpoint, r.args())
}

// SearchMvtRequest configures the SearchMvt API request.
type SearchMvtRequest struct {
	Index []string
	Field string
	Zoom  int
	X     int
	Y     int

	Aggs            map[string]any
	Buffer          *int
	ExactBounds     *bool
	Extent          *int
	Fields          []string
	GridAgg         string
	GridPrecision   *int
	GridType        string
	Query           any
	RuntimeMappings map[string]any
	Size            *int
	Sort            any
	TrackTotalHits  any
	WithLabels      *bool

	Body any
}

func (r SearchMvtRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"field", r.Field},
		{"zoom", r.Zoom},
		{"x", r.X},
		{"y", r.Y},
		{"aggs", r.Aggs},
		{"buffer", r.Buffer},
		{"exact_bounds", r.ExactBounds},
		{"extent", r.Extent},
		{"fields", r.Fields},
		{"grid_agg", optional(r.GridAgg)},
		{"grid_precision", r.GridPrecision},
		{"grid_type", optional(r.GridType)},
		{"query", r.Query},
		{"runtime_mappings", r.RuntimeMappings},
		{"size", r.Size},
		{"sort", r.Sort},
		{"track_total_hits", r.TrackTotalHits},
		{"with_labels", r.WithLabels},
		{"body", r.Body},
	}
}

// SearchMvt searches a vector tile for geospatial values and returns the
// tile as binary Mapbox vector tile data.
func (a *API) SearchMvt(ctx context.Context, r SearchMvtRequest) (*elastictransport.BytesResponse, error) {
	return perform[*elastictransport.BytesResponse](ctx, a, &searchMvtEndpoint, r.args())
}

// DeleteByQueryRequest configures the DeleteByQuery API request.
type DeleteByQueryRequest struct {
	Index []string

	AllowNoIndices      *bool
	Conflicts           string
	ExpandWildcards     []string
	IgnoreUnavailable   *bool
	Q                   string
	Refresh             *bool
	RequestsPerSecond   *float64
	Routing             string
	ScrollSize          *int
	Slices              any
	Timeout             Duration
	WaitForActiveShards string
	WaitForCompletion   *bool

	MaxDocs *int
	Query   any
	Slice   any

	Body any
}

func (r DeleteByQueryRequest) args() Args {
	return Args{
		{"index", r.Index},
		{"allow_no_indices", r.AllowNoIndices},
		{"conflicts", optional(r.Conflicts)},
		{"expand_wildcards", r.ExpandWildcards},
		{"ignore_unavailable", r.IgnoreUnavailable},
		{"q", optional(r.Q)},
		{"refresh", r.Refresh},
		{"requests_per_second", r.RequestsPerSecond},
		{"routing", optional(r.Routing)},
		{"scroll_size", r.ScrollSize},
		{"slices", r.Slices},
		{"timeout", optional(string(r.Timeout))},
		{"wait_for_active_shards", optional(r.WaitForActiveShards)},
		{"wait_for_completion", r.WaitForCompletion},
		{"max_docs", r.MaxDocs},
		{"query", r.Query},
		{"slice", r.Slice},
		{"body", r.Body},
	}
}

// DeleteByQuery deletes the documents matching a query.
func (a *API) DeleteByQuery(ctx context.Context, r DeleteByQueryRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, a, &deleteByQueryEndpoint, r.args())
}
