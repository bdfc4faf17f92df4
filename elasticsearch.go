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

/*
Package elasticsearch provides a client for Elasticsearch Serverless.

Create a client with the address of the project and an API key:

	es, err := elasticsearch.NewClient(
	    elastictransport.WithAddresses("https://my-project.es.us-east-1.aws.elastic.cloud"),
	    elastictransport.WithAPIKey("base64-api-key"),
	)
	if err != nil {
	    log.Fatalf("Error creating the client: %s", err)
	}
	defer es.Close(context.Background())

	res, err := es.Info(context.Background())

The endpoints are methods of the client, grouped by namespace:

	es.Search(ctx, esapi.SearchRequest{Index: []string{"books"}, Query: query})
	es.Indices.PutSettings(ctx, esapi.IndicesPutSettingsRequest{...})
	es.Security.CreateAPIKey(ctx, esapi.SecurityCreateAPIKeyRequest{...})

Use [Client.Options] to obtain a client applying per-call options, such as an
opaque id or a request timeout, to every call:

	es.Options(esapi.WithOpaqueID("job-42"), esapi.WithIgnoreStatus(404)).Indices.Delete(ctx, req)

Non-2xx responses are returned as *elastictransport.ApiError. Use errors.Is
with elastictransport.ErrNotFound and the other sentinel errors to branch on
the kind of error.
*/
package elasticsearch

import (
	"context"
	"runtime"
	"strings"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
	"github.com/elastic/elasticsearch-serverless-go/esapi"
	"github.com/elastic/elasticsearch-serverless-go/internal/version"
)

// Version returns the package version as a string.
const Version = version.Client

// clientMetaKey identifies the client in the x-elastic-client-meta header.
const clientMetaKey = "es"

var userAgent = "elasticsearch-serverless-go/" + Version +
	" (" + runtime.GOOS + " " + runtime.GOARCH + "; Go " + strings.TrimPrefix(runtime.Version(), "go") + ")"

// Client is an Elasticsearch Serverless client. It is safe for concurrent
// use by multiple goroutines.
type Client struct {
	*esapi.API
	transport *elastictransport.Client
}

// NewClient creates a new client. The options are those of the transport,
// see elastictransport.NewClient; at least one address is required.
func NewClient(opts ...elastictransport.Option) (*Client, error) {
	defaults := []elastictransport.Option{
		elastictransport.WithUserAgent(userAgent),
		elastictransport.WithClientMeta(clientMetaKey, Version),
	}
	tp, err := elastictransport.NewClient(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Client{API: esapi.New(tp), transport: tp}, nil
}

// Options returns a client applying opts to every call. The returned client
// shares the connections and node states of c.
func (c *Client) Options(opts ...esapi.CallOption) *Client {
	return &Client{API: c.API.WithOptions(opts...), transport: c.transport}
}

// Metrics returns the transport metrics. The client must be created with
// elastictransport.WithMetrics.
func (c *Client) Metrics() (elastictransport.Metrics, error) {
	return c.transport.Metrics()
}

// NodeStatuses returns a snapshot of the liveness of the nodes.
func (c *Client) NodeStatuses() []elastictransport.NodeStatus {
	return c.transport.NodeStatuses()
}

// Warnings returns the broker receiving server, stability and deprecation
// warnings.
func (c *Client) Warnings() *elastictransport.WarningBroker {
	return c.transport.Warnings()
}

// Close closes the connections of the client. Calls made after Close
// return elastictransport.ErrClosed.
func (c *Client) Close(ctx context.Context) error {
	return c.transport.Close(ctx)
}
