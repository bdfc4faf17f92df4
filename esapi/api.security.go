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
	securityAuthenticateEndpoint = Endpoint{
		ID:     "security.authenticate",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/_security/_authenticate"}},
		Accept: mimeJSON,
	}

	securityCreateAPIKeyEndpoint = Endpoint{
		ID:     "security.create_api_key",
		Method: http.MethodPut,
		Paths:  []Path{{Template: "/_security/api_key"}},
		Params: map[string]Param{
			"refresh":          {},
			"expiration":       {Kind: ParamBodyField},
			"metadata":         {Kind: ParamBodyField},
			"name":             {Kind: ParamBodyField},
			"role_descriptors": {Kind: ParamBodyField},
		},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}

	securityGetAPIKeyEndpoint = Endpoint{
		ID:     "security.get_api_key",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/_security/api_key"}},
		Params: map[string]Param{
			"active_only":      {},
			"id":               {},
			"name":             {},
			"owner":            {},
			"realm_name":       {},
			"username":         {},
			"with_limited_by":  {},
			"with_profile_uid": {},
		},
		Exclusive: [][]string{{"id", "name"}},
		Accept:    mimeJSON,
	}

	securityInvalidateAPIKeyEndpoint = Endpoint{
		ID:     "security.invalidate_api_key",
		Method: http.MethodDelete,
		Paths:  []Path{{Template: "/_security/api_key"}},
		Params: map[string]Param{
			"id":         {Kind: ParamBodyField},
			"ids":        {Kind: ParamBodyField},
			"name":       {Kind: ParamBodyField},
			"owner":      {Kind: ParamBodyField},
			"realm_name": {Kind: ParamBodyField},
			"username":   {Kind: ParamBodyField},
		},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}
)

// Authenticate returns the user and authentication details of the caller.
func (c *Security) Authenticate(ctx context.Context) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &securityAuthenticateEndpoint, nil)
}

// SecurityCreateAPIKeyRequest configures the Security.CreateAPIKey API
// request.
type SecurityCreateAPIKeyRequest struct {
	Refresh string

	Expiration      Duration
	Metadata        map[string]any
	Name            string
	RoleDescriptors map[string]any

	Body any
}

func (r SecurityCreateAPIKeyRequest) args() Args {
	return Args{
		{"refresh", optional(r.Refresh)},
		{"expiration", optional(string(r.Expiration))},
		{"metadata", r.Metadata},
		{"name", optional(r.Name)},
		{"role_descriptors", r.RoleDescriptors},
		{"body", r.Body},
	}
}

// CreateAPIKey creates an API key.
func (c *Security) CreateAPIKey(ctx context.Context, r SecurityCreateAPIKeyRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &securityCreateAPIKeyEndpoint, r.args())
}

// SecurityGetAPIKeyRequest configures the Security.GetAPIKey API request.
// ID and Name are mutually exclusive.
type SecurityGetAPIKeyRequest struct {
	ActiveOnly     *bool
	ID             string
	Name           string
	Owner          *bool
	RealmName      string
	Username       string
	WithLimitedBy  *bool
	WithProfileUID *bool
}

func (r SecurityGetAPIKeyRequest) args() Args {
	return Args{
		{"active_only", r.ActiveOnly},
		{"id", optional(r.ID)},
		{"name", optional(r.Name)},
		{"owner", r.Owner},
		{"realm_name", optional(r.RealmName)},
		{"username", optional(r.Username)},
		{"with_limited_by", r.WithLimitedBy},
		{"with_profile_uid", r.WithProfileUID},
	}
}

// GetAPIKey returns information about API keys.
func (c *Security) GetAPIKey(ctx context.Context, r SecurityGetAPIKeyRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &securityGetAPIKeyEndpoint, r.args())
}

// SecurityInvalidateAPIKeyRequest configures the Security.InvalidateAPIKey
// API request.
type SecurityInvalidateAPIKeyRequest struct {
	ID        string
	IDs       []string
	Name      string
	Owner     *bool
	RealmName string
	Username  string

	Body any
}

func (r SecurityInvalidateAPIKeyRequest) args() Args {
	return Args{
		{"id", optional(r.ID)},
		{"ids", r.IDs},
		{"name", optional(r.Name)},
		{"owner", r.Owner},
		{"realm_name", optional(r.RealmName)},
		{"username", optional(r.Username)},
		{"body", r.Body},
	}
}

// InvalidateAPIKey invalidates one or more API keys.
func (c *Security) InvalidateAPIKey(ctx context.Context, r SecurityInvalidateAPIKeyRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &securityInvalidateAPIKeyEndpoint, r.args())
}
