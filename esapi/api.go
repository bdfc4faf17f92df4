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
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

// Transport is the interface the API needs from the transport layer. It is
// implemented by *elastictransport.Client.
type Transport interface {
	Perform(context.Context, *elastictransport.Request) (elastictransport.Envelope, error)
	Serializers() *elastictransport.SerializerRegistry
	Warnings() *elastictransport.WarningBroker
}

// API exposes the Elasticsearch Serverless endpoints. Endpoints are grouped
// by namespace, e.g. API.Indices or API.Security.
type API struct {
	transport Transport
	options   callOptions
	stability *stabilityWarner

	Cat       *Cat
	Cluster   *Cluster
	Indices   *Indices
	Inference *Inference
	License   *License
	ML        *ML
	Security  *Security
}

// Cat groups the compact and aligned text (CAT) APIs.
type Cat struct{ api *API }

// Cluster groups the cluster APIs.
type Cluster struct{ api *API }

// Indices groups the index management APIs.
type Indices struct{ api *API }

// Inference groups the inference APIs.
type Inference struct{ api *API }

// License groups the licensing APIs.
type License struct{ api *API }

// ML groups the machine learning APIs.
type ML struct{ api *API }

// Security groups the security APIs.
type Security struct{ api *API }

// New creates an API performing requests with t.
func New(t Transport) *API {
	return newAPI(t, callOptions{}, &stabilityWarner{})
}

func newAPI(t Transport, opts callOptions, stability *stabilityWarner) *API {
	a := &API{transport: t, options: opts, stability: stability}
	a.Cat = &Cat{api: a}
	a.Cluster = &Cluster{api: a}
	a.Indices = &Indices{api: a}
	a.Inference = &Inference{api: a}
	a.License = &License{api: a}
	a.ML = &ML{api: a}
	a.Security = &Security{api: a}
	return a
}

// WithOptions returns a view of the API applying opts to every call. The
// view shares the transport with a; a is not modified.
func (a *API) WithOptions(opts ...CallOption) *API {
	o := a.options.clone()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return newAPI(a.transport, o, a.stability)
}

// Transport returns the transport of the API.
func (a *API) Transport() Transport { return a.transport }

// request builds the transport request for e and applies the call options.
func (a *API) request(e *Endpoint, args Args) (*elastictransport.Request, error) {
	req, err := Build(e, args, a.transport.Serializers())
	if err != nil {
		return nil, err
	}
	a.applyOptions(req)
	return req, nil
}

func (a *API) applyOptions(req *elastictransport.Request) {
	o := a.options
	req.RequestTimeout = o.requestTimeout
	req.MaxRetries = o.maxRetries
	req.RetryOnTimeout = o.retryOnTimeout
	req.OpaqueID = o.opaqueID
	req.IgnoreStatus = o.ignoreStatus

	if o.errorTrace != nil {
		req.Query.Add("error_trace", strconv.FormatBool(*o.errorTrace))
	}
	if len(o.filterPath) > 0 {
		req.Query.Add("filter_path", strings.Join(o.filterPath, ","))
	}
	if o.human != nil {
		req.Query.Add("human", strconv.FormatBool(*o.human))
	}
	if o.pretty != nil {
		req.Query.Add("pretty", strconv.FormatBool(*o.pretty))
	}

	if len(o.header) > 0 {
		if req.Header == nil {
			req.Header = make(http.Header, len(o.header))
		}
		for k, vv := range o.header {
			req.Header[k] = append([]string(nil), vv...)
		}
	}
}

func (a *API) do(ctx context.Context, e *Endpoint, args Args) (elastictransport.Envelope, error) {
	req, err := a.request(e, args)
	if err != nil {
		return nil, err
	}
	a.stability.warn(a.transport.Warnings(), e)
	return a.transport.Perform(ctx, req)
}

// perform runs the call and asserts the envelope type expected by the
// endpoint.
func perform[T elastictransport.Envelope](ctx context.Context, a *API, e *Endpoint, args Args) (T, error) {
	var zero T
	env, err := a.do(ctx, e, args)
	if err != nil {
		return zero, err
	}
	res, ok := env.(T)
	if !ok {
		meta := env.ResponseMeta()
		return zero, &elastictransport.SerializationError{
			ContentType: meta.MimeType(),
			Err:         fmt.Errorf("%s: unexpected response of type %T", e.ID, env),
		}
	}
	return res, nil
}

// PerformRequestOptions configures PerformRequest.
type PerformRequestOptions struct {
	// Query parameters, encoded in order.
	Query []Arg
	// Header is merged over the client headers. Its Content-Type selects
	// the serializer of Body.
	Header http.Header
	// Body is serialized with the serializer matching the Content-Type
	// header, JSON by default. Strings and byte slices are sent as-is.
	Body any
}

const performRequestID = "perform_request"

// PerformRequest sends an arbitrary request. path must already be quoted.
func (a *API) PerformRequest(ctx context.Context, method, path string, opts PerformRequestOptions) (elastictransport.Envelope, error) {
	if method == "" {
		return nil, elastictransport.NewConfigurationError("empty value passed for parameter %q", "method")
	}
	if !strings.HasPrefix(path, "/") {
		return nil, elastictransport.NewConfigurationError("path %q must start with '/'", path)
	}

	req := &elastictransport.Request{
		Method:   strings.ToUpper(method),
		Path:     path,
		Header:   make(http.Header, len(opts.Header)),
		Endpoint: performRequestID,
	}
	for k, vv := range opts.Header {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vv...)
	}
	for _, q := range opts.Query {
		if isUnset(q.Value) {
			continue
		}
		req.Query.Add(q.Name, stringify(q.Value))
	}

	if !isUnset(opts.Body) {
		contentType := req.Header.Get(headerContentType)
		if contentType == "" {
			contentType = mimeJSON
		}
		payload, err := a.transport.Serializers().Encode(opts.Body, contentType)
		if err != nil {
			return nil, err
		}
		req.Body = payload
		req.Header.Set(headerContentType, contentType)
	}
	if req.Header.Get(headerAccept) == "" {
		req.Header.Set(headerAccept, mimeJSON)
	}

	a.applyOptions(req)
	return a.transport.Perform(ctx, req)
}
