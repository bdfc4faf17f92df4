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
	clusterInfoEndpoint = Endpoint{
		ID:     "cluster.info",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/_info/{target}"}},
		Params: map[string]Param{
			"target": {Kind: ParamPath, Required: true},
		},
		Accept: mimeJSON,
	}

	clusterGetComponentTemplateEndpoint = Endpoint{
		ID:     "cluster.get_component_template",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/_component_template/{name}"}, {Template: "/_component_template"}},
		Params: map[string]Param{
			"name":             {Kind: ParamPath},
			"flat_settings":    {},
			"include_defaults": {},
			"local":            {},
			"master_timeout":   {},
		},
		Accept: mimeJSON,
	}

	clusterPutComponentTemplateEndpoint = Endpoint{
		ID:     "cluster.put_component_template",
		Method: http.MethodPut,
		Paths:  []Path{{Template: "/_component_template/{name}"}},
		Params: map[string]Param{
			"name":           {Kind: ParamPath, Required: true},
			"create":         {},
			"master_timeout": {},
			"deprecated":     {Kind: ParamBodyField},
			"_meta":          {Kind: ParamBodyField},
			"template":       {Kind: ParamBodyField, Required: true},
			"version":        {Kind: ParamBodyField},
		},
		Aliases:     map[string]string{"meta": "_meta"},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}
)

// Info returns cluster information for the given targets, e.g. "_all" or
// "http,ingest".
func (c *Cluster) Info(ctx context.Context, target ...string) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &clusterInfoEndpoint, Args{{"target", target}})
}

// ClusterGetComponentTemplateRequest configures the
// Cluster.GetComponentTemplate API request.
type ClusterGetComponentTemplateRequest struct {
	Name string

	FlatSettings    *bool
	IncludeDefaults *bool
	Local           *bool
	MasterTimeout   Duration
}

func (r ClusterGetComponentTemplateRequest) args() Args {
	return Args{
		{"name", optional(r.Name)},
		{"flat_settings", r.FlatSettings},
		{"include_defaults", r.IncludeDefaults},
		{"local", r.Local},
		{"master_timeout", optional(string(r.MasterTimeout))},
	}
}

// GetComponentTemplate returns component templates.
func (c *Cluster) GetComponentTemplate(ctx context.Context, r ClusterGetComponentTemplateRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &clusterGetComponentTemplateEndpoint, r.args())
}

// ClusterPutComponentTemplateRequest configures the
// Cluster.PutComponentTemplate API request.
type ClusterPutComponentTemplateRequest struct {
	Name string

	Create        *bool
	MasterTimeout Duration

	Deprecated *bool
	Meta       map[string]any
	Template   any
	Version    *int64

	Body any
}

func (r ClusterPutComponentTemplateRequest) args() Args {
	return Args{
		{"name", r.Name},
		{"create", r.Create},
		{"master_timeout", optional(string(r.MasterTimeout))},
		{"deprecated", r.Deprecated},
		{"meta", r.Meta},
		{"template", r.Template},
		{"version", r.Version},
		{"body", r.Body},
	}
}

// PutComponentTemplate creates or updates a component template.
func (c *Cluster) PutComponentTemplate(ctx context.Context, r ClusterPutComponentTemplateRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &clusterPutComponentTemplateEndpoint, r.args())
}
