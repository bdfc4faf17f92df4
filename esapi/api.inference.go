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

var inferencePaths = []Path{
	{Template: "/_inference/{task_type}/{inference_id}"},
	{Template: "/_inference/{inference_id}"},
}

var (
	inferencePutEndpoint = Endpoint{
		ID:     "inference.put",
		Method: http.MethodPut,
		Paths:  inferencePaths,
		Params: map[string]Param{
			"inference_id":     {Kind: ParamPath, Required: true},
			"task_type":        {Kind: ParamPath},
			"inference_config": {Kind: ParamBodyName, Required: true},
		},
		Body:        BodyParam,
		BodyName:    "inference_config",
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}

	inferenceGetEndpoint = Endpoint{
		ID:     "inference.get",
		Method: http.MethodGet,
		Paths:  append(append([]Path(nil), inferencePaths...), Path{Template: "/_inference"}),
		Params: map[string]Param{
			"inference_id": {Kind: ParamPath},
			"task_type":    {Kind: ParamPath},
		},
		Accept: mimeJSON,
	}

	inferenceDeleteEndpoint = Endpoint{
		ID:     "inference.delete",
		Method: http.MethodDelete,
		Paths:  inferencePaths,
		Params: map[string]Param{
			"inference_id": {Kind: ParamPath, Required: true},
			"task_type":    {Kind: ParamPath},
			"dry_run":      {},
			"force":        {},
		},
		Accept: mimeJSON,
	}

	inferenceInferenceEndpoint = Endpoint{
		ID:     "inference.inference",
		Method: http.MethodPost,
		Paths:  inferencePaths,
		Params: map[string]Param{
			"inference_id":  {Kind: ParamPath, Required: true},
			"task_type":     {Kind: ParamPath},
			"timeout":       {},
			"input":         {Kind: ParamBodyField, Required: true},
			"query":         {Kind: ParamBodyField},
			"task_settings": {Kind: ParamBodyField},
		},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
		Stability:   Experimental,
	}
)

// InferencePutRequest configures the Inference.Put API request.
type InferencePutRequest struct {
	TaskType    string
	InferenceID string

	// InferenceConfig is the whole request body; Body may be used instead.
	InferenceConfig any

	Body any
}

func (r InferencePutRequest) args() Args {
	return Args{
		{"task_type", optional(r.TaskType)},
		{"inference_id", r.InferenceID},
		{"inference_config", r.InferenceConfig},
		{"body", r.Body},
	}
}

// Put creates an inference endpoint.
func (c *Inference) Put(ctx context.Context, r InferencePutRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &inferencePutEndpoint, r.args())
}

// InferenceGetRequest configures the Inference.Get API request.
type InferenceGetRequest struct {
	TaskType    string
	InferenceID string
}

func (r InferenceGetRequest) args() Args {
	return Args{
		{"task_type", optional(r.TaskType)},
		{"inference_id", optional(r.InferenceID)},
	}
}

// Get returns inference endpoints.
func (c *Inference) Get(ctx context.Context, r InferenceGetRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &inferenceGetEndpoint, r.args())
}

// InferenceDeleteRequest configures the Inference.Delete API request.
type InferenceDeleteRequest struct {
	TaskType    string
	InferenceID string

	DryRun *bool
	Force  *bool
}

func (r InferenceDeleteRequest) args() Args {
	return Args{
		{"task_type", optional(r.TaskType)},
		{"inference_id", r.InferenceID},
		{"dry_run", r.DryRun},
		{"force", r.Force},
	}
}

// Delete deletes an inference endpoint.
func (c *Inference) Delete(ctx context.Context, r InferenceDeleteRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &inferenceDeleteEndpoint, r.args())
}

// InferenceRequest configures the Inference.Inference API request.
type InferenceRequest struct {
	TaskType    string
	InferenceID string

	Timeout Duration

	Input        any
	Query        string
	TaskSettings any

	Body any
}

func (r InferenceRequest) args() Args {
	return Args{
		{"task_type", optional(r.TaskType)},
		{"inference_id", r.InferenceID},
		{"timeout", optional(string(r.Timeout))},
		{"input", r.Input},
		{"query", optional(r.Query)},
		{"task_settings", r.TaskSettings},
		{"body", r.Body},
	}
}

// Inference performs inference with an inference endpoint.
func (c *Inference) Inference(ctx context.Context, r InferenceRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &inferenceInferenceEndpoint, r.args())
}
