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
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const schemaUrl = "https://opentelemetry.io/schemas/1.21.0"
const tracerName = "elasticsearch-api"

// Constants for Semantic Convention
// see https://opentelemetry.io/docs/specs/semconv/database/elasticsearch/ for details.
const attrDbSystem = "db.system"
const attrDbStatement = "db.statement"
const attrDbOperation = "db.operation"
const attrDbElasticsearchClusterName = "db.elasticsearch.cluster.name"
const attrDbElasticsearchNodeName = "db.elasticsearch.node.name"
const attrHttpRequestMethod = "http.request.method"
const attrUrlFull = "url.full"
const attrServerAddress = "server.address"
const attrServerPort = "server.port"
const attrHttpResponseStatusCode = "http.response.status_code"
const attrPathParts = "db.elasticsearch.path_parts."

// Instrumentation defines the interface the client uses for OpenTelemetry
// or custom tracing. Calls follow the order Start, RecordPathPart,
// RecordRequestBody, BeforeRequest, AfterRequest, AfterResponse or
// RecordError, Close.
type Instrumentation interface {
	// Start creates the span before building the request, returned context will be propagated to the request by the client.
	Start(ctx context.Context, name string) context.Context

	// Close will be called once the client has returned.
	Close(ctx context.Context)

	// RecordError propagates an error.
	RecordError(ctx context.Context, err error)

	// RecordPathPart provides the path variables, called once per variable in the url.
	RecordPathPart(ctx context.Context, pathPart, value string)

	// RecordRequestBody records the body of search requests when enabled.
	RecordRequestBody(ctx context.Context, endpoint string, body []byte)

	// BeforeRequest provides the request before it is sent to a node.
	BeforeRequest(ctx context.Context, req *Request)

	// AfterRequest provides the node and method of one attempt once it is sent.
	AfterRequest(ctx context.Context, node NodeConfig, method string)

	// AfterResponse provides the response metadata.
	AfterResponse(ctx context.Context, meta *ResponseMeta)
}

// ElasticsearchOpenTelemetry implements Instrumentation with the global
// OpenTelemetry tracer provider.
type ElasticsearchOpenTelemetry struct {
	tracer      trace.Tracer
	recordQuery bool
}

// NewOtelInstrumentation returns a new instrument for Open Telemetry traces
// If no provider is passed, the instrumentation will fall back to the global otel provider.
// captureSearchBody sets the query capture behavior for search endpoints.
// version should be set to the version provided by the caller.
func NewOtelInstrumentation(captureSearchBody bool, version string) *ElasticsearchOpenTelemetry {
	return NewOtelInstrumentationWithProvider(otel.GetTracerProvider(), captureSearchBody, version)
}

// NewOtelInstrumentationWithProvider is like NewOtelInstrumentation with an explicit provider.
func NewOtelInstrumentationWithProvider(provider trace.TracerProvider, captureSearchBody bool, version string) *ElasticsearchOpenTelemetry {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &ElasticsearchOpenTelemetry{
		tracer: provider.Tracer(
			tracerName,
			trace.WithInstrumentationVersion(version),
			trace.WithSchemaURL(schemaUrl),
		),
		recordQuery: captureSearchBody,
	}
}

// Start begins a new span in the given context with the provided name.
// Span will always have a kind set to trace.SpanKindClient.
// The context span aware is returned for use within the client.
func (i ElasticsearchOpenTelemetry) Start(ctx context.Context, name string) context.Context {
	newCtx, _ := i.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	return newCtx
}

// Close call for the end of the span, preferably defered by the client once started.
func (i ElasticsearchOpenTelemetry) Close(ctx context.Context) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.End()
	}
}

// RecordError sets any provided error as an OTel error in the active span.
func (i ElasticsearchOpenTelemetry) RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetStatus(codes.Error, "an error happened while executing a request")
		span.RecordError(err)
	}
}

// RecordPathPart sets the path part and its value in the active span.
func (i ElasticsearchOpenTelemetry) RecordPathPart(ctx context.Context, pathPart, value string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attribute.String(attrPathParts+pathPart, value))
	}
}

// RecordRequestBody sets db.statement for search endpoints when body capture is enabled.
func (i ElasticsearchOpenTelemetry) RecordRequestBody(ctx context.Context, endpoint string, body []byte) {
	if !i.recordQuery || len(body) == 0 || !isSearchEndpoint(endpoint) {
		return
	}
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attribute.String(attrDbStatement, string(body)))
	}
}

// BeforeRequest noop for interface.
func (i ElasticsearchOpenTelemetry) BeforeRequest(ctx context.Context, req *Request) {}

// AfterRequest enriches the span with the operation and the node address.
func (i ElasticsearchOpenTelemetry) AfterRequest(ctx context.Context, node NodeConfig, method string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String(attrDbSystem, "elasticsearch"),
		attribute.String(attrHttpRequestMethod, method),
		attribute.String(attrUrlFull, node.Key()),
		attribute.String(attrServerAddress, node.Host),
		attribute.Int64(attrServerPort, int64(node.Port)),
	)
	if name := spanEndpoint(ctx); name != "" {
		span.SetAttributes(attribute.String(attrDbOperation, name))
	}
}

// AfterResponse records the cluster and node names reported by Elastic Cloud.
func (i ElasticsearchOpenTelemetry) AfterResponse(ctx context.Context, meta *ResponseMeta) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || meta == nil {
		return
	}
	if id := meta.Header.Get("X-Found-Handling-Cluster"); id != "" {
		span.SetAttributes(attribute.String(attrDbElasticsearchClusterName, id))
	}
	if name := meta.Header.Get("X-Found-Handling-Instance"); name != "" {
		span.SetAttributes(attribute.String(attrDbElasticsearchNodeName, name))
	}
	span.SetAttributes(attribute.Int(attrHttpResponseStatusCode, meta.Status))
}

type endpointKey struct{}

func withSpanEndpoint(ctx context.Context, endpoint string) context.Context {
	return context.WithValue(ctx, endpointKey{}, endpoint)
}

func spanEndpoint(ctx context.Context) string {
	s, _ := ctx.Value(endpointKey{}).(string)
	return s
}

func isSearchEndpoint(endpoint string) bool {
	switch endpoint {
	case "search", "async_search.submit", "msearch", "eql.search", "terms_enum",
		"search_template", "msearch_template", "render_search_template", "search_mvt":
		return true
	}
	return false
}
