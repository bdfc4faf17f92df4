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
	mlGetJobsEndpoint = Endpoint{
		ID:     "ml.get_jobs",
		Method: http.MethodGet,
		Paths:  []Path{{Template: "/_ml/anomaly_detectors/{job_id}"}, {Template: "/_ml/anomaly_detectors"}},
		Params: map[string]Param{
			"job_id":            {Kind: ParamPath},
			"allow_no_match":    {},
			"exclude_generated": {},
		},
		Accept: mimeJSON,
	}

	mlPutJobEndpoint = Endpoint{
		ID:     "ml.put_job",
		Method: http.MethodPut,
		Paths:  []Path{{Template: "/_ml/anomaly_detectors/{job_id}"}},
		Params: map[string]Param{
			"job_id":                                    {Kind: ParamPath, Required: true},
			"allow_lazy_open":                           {Kind: ParamBodyField},
			"analysis_config":                           {Kind: ParamBodyField, Required: true},
			"analysis_limits":                           {Kind: ParamBodyField},
			"background_persist_interval":               {Kind: ParamBodyField},
			"custom_settings":                           {Kind: ParamBodyField},
			"daily_model_snapshot_retention_after_days": {Kind: ParamBodyField},
			"data_description":                          {Kind: ParamBodyField, Required: true},
			"datafeed_config":                           {Kind: ParamBodyField},
			"description":                               {Kind: ParamBodyField},
			"groups":                                    {Kind: ParamBodyField},
			"model_plot_config":                         {Kind: ParamBodyField},
			"model_snapshot_retention_days":             {Kind: ParamBodyField},
			"renormalization_window_days":               {Kind: ParamBodyField},
			"results_index_name":                        {Kind: ParamBodyField},
			"results_retention_days":                    {Kind: ParamBodyField},
		},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
	}

	mlDeleteJobEndpoint = Endpoint{
		ID:     "ml.delete_job",
		Method: http.MethodDelete,
		Paths:  []Path{{Template: "/_ml/anomaly_detectors/{job_id}"}},
		Params: map[string]Param{
			"job_id":                  {Kind: ParamPath, Required: true},
			"delete_user_annotations": {},
			"force":                   {},
			"wait_for_completion":     {},
		},
		Accept: mimeJSON,
	}

	mlInferTrainedModelEndpoint = Endpoint{
		ID:     "ml.infer_trained_model",
		Method: http.MethodPost,
		Paths:  []Path{{Template: "/_ml/trained_models/{model_id}/_infer"}},
		Params: map[string]Param{
			"model_id":         {Kind: ParamPath, Required: true},
			"timeout":          {},
			"docs":             {Kind: ParamBodyField, Required: true},
			"inference_config": {Kind: ParamBodyField},
		},
		Body:        BodyFields,
		Accept:      mimeJSON,
		ContentType: mimeJSON,
		Stability:   Beta,
	}
)

// MLGetJobsRequest configures the ML.GetJobs API request.
type MLGetJobsRequest struct {
	JobID []string

	AllowNoMatch     *bool
	ExcludeGenerated *bool
}

func (r MLGetJobsRequest) args() Args {
	return Args{
		{"job_id", r.JobID},
		{"allow_no_match", r.AllowNoMatch},
		{"exclude_generated", r.ExcludeGenerated},
	}
}

// GetJobs returns anomaly detection job configurations.
func (c *ML) GetJobs(ctx context.Context, r MLGetJobsRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &mlGetJobsEndpoint, r.args())
}

// MLPutJobRequest configures the ML.PutJob API request.
type MLPutJobRequest struct {
	JobID string

	AllowLazyOpen                        *bool
	AnalysisConfig                       any
	AnalysisLimits                       any
	BackgroundPersistInterval            Duration
	CustomSettings                       any
	DailyModelSnapshotRetentionAfterDays *int64
	DataDescription                      any
	DatafeedConfig                       any
	Description                          string
	Groups                               []string
	ModelPlotConfig                      any
	ModelSnapshotRetentionDays           *int64
	RenormalizationWindowDays            *int64
	ResultsIndexName                     string
	ResultsRetentionDays                 *int64

	Body any
}

func (r MLPutJobRequest) args() Args {
	return Args{
		{"job_id", r.JobID},
		{"allow_lazy_open", r.AllowLazyOpen},
		{"analysis_config", r.AnalysisConfig},
		{"analysis_limits", r.AnalysisLimits},
		{"background_persist_interval", optional(string(r.BackgroundPersistInterval))},
		{"custom_settings", r.CustomSettings},
		{"daily_model_snapshot_retention_after_days", r.DailyModelSnapshotRetentionAfterDays},
		{"data_description", r.DataDescription},
		{"datafeed_config", r.DatafeedConfig},
		{"description", optional(r.Description)},
		{"groups", r.Groups},
		{"model_plot_config", r.ModelPlotConfig},
		{"model_snapshot_retention_days", r.ModelSnapshotRetentionDays},
		{"renormalization_window_days", r.RenormalizationWindowDays},
		{"results_index_name", optional(r.ResultsIndexName)},
		{"results_retention_days", r.ResultsRetentionDays},
		{"body", r.Body},
	}
}

// PutJob creates an anomaly detection job.
func (c *ML) PutJob(ctx context.Context, r MLPutJobRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &mlPutJobEndpoint, r.args())
}

// MLDeleteJobRequest configures the ML.DeleteJob API request.
type MLDeleteJobRequest struct {
	JobID string

	DeleteUserAnnotations *bool
	Force                 *bool
	WaitForCompletion     *bool
}

func (r MLDeleteJobRequest) args() Args {
	return Args{
		{"job_id", r.JobID},
		{"delete_user_annotations", r.DeleteUserAnnotations},
		{"force", r.Force},
		{"wait_for_completion", r.WaitForCompletion},
	}
}

// DeleteJob deletes an anomaly detection job.
func (c *ML) DeleteJob(ctx context.Context, r MLDeleteJobRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &mlDeleteJobEndpoint, r.args())
}

// MLInferTrainedModelRequest configures the ML.InferTrainedModel API
// request.
type MLInferTrainedModelRequest struct {
	ModelID string

	Timeout Duration

	Docs            []map[string]any
	InferenceConfig any

	Body any
}

func (r MLInferTrainedModelRequest) args() Args {
	return Args{
		{"model_id", r.ModelID},
		{"timeout", optional(string(r.Timeout))},
		{"docs", r.Docs},
		{"inference_config", r.InferenceConfig},
		{"body", r.Body},
	}
}

// InferTrainedModel evaluates a trained model on the given documents.
func (c *ML) InferTrainedModel(ctx context.Context, r MLInferTrainedModelRequest) (*elastictransport.ObjectResponse, error) {
	return perform[*elastictransport.ObjectResponse](ctx, c.api, &mlInferTrainedModelEndpoint, r.args())
}
