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
Package elastictransport provides the transport layer for the Elasticsearch
Serverless client.

# Creating a Client

Use [NewClient] with functional [Option] values to create a transport client:

	tp, err := elastictransport.NewClient(
	    elastictransport.WithAddresses("https://my-project.es.example.com"),
	    elastictransport.WithAPIKey("base64-api-key"),
	    elastictransport.WithMaxRetries(5),
	)

Options are applied in order; when the same setting is specified more than once
the last value wins.

The older [New] + [Config] API is still available but new code should prefer
[NewClient].

# Performing Requests

[Client.Perform] sends a [Request] and returns an [Envelope] whose concrete
type depends on the response media type: [ObjectResponse] for JSON and
NDJSON, [TextResponse] for text/*, [BytesResponse] for binary payloads and
[HeadResponse] for HEAD requests. Responses with a non-2xx status are
returned as [*ApiError] unless the status is listed in Request.IgnoreStatus;
use errors.Is with [ErrNotFound], [ErrConflict] and friends to branch on the
kind.

Every 2xx response must carry the X-Elastic-Product: Elasticsearch header,
otherwise [*UnsupportedProductError] is returned.

# Nodes

A [Node] performs a single HTTP exchange. The default [HTTPNode] is backed by
net/http; use [WithTransport] to customize the round tripper or
[WithNodeFactory] to replace the node entirely.

# Retries

Requests which fail without an HTTP response are retried on the next node up
to [WithMaxRetries] times (3 by default). Timeouts are only retried with
[WithRetryOnTimeout]. Responses are retried only on the statuses passed to
[WithRetryOnStatus]. Use [WithDisableRetry] to disable the retry behaviour
altogether. When all attempts fail, [*ConnectionError] or
[*ConnectionTimeout] is returned, holding every attempt error.

By default, the retry will be performed without any delay; to configure a
backoff interval, use [WithRetryBackoff].

# Node Management

Nodes which fail are marked dead and left out of rotation for an exponential
timeout, starting at one second and capped at thirty (see
[WithDeadNodeBackoff]). Dead nodes come back lazily when their timeout has
elapsed; when every node is dead, the one closest to resurrection is used.

To customize the node selection behaviour, provide a [Selector] implementation
via [WithSelector]. To replace the pool entirely, provide a custom [NodePool]
implementation via [WithNodePoolFunc]. Custom pools are synchronized by
default; implement [ConcurrentSafeNodePool] to opt out.

# Serialization

A [SerializerRegistry] maps media types to [Serializer] implementations.
JSON is encoded without HTML escaping and with sorted map keys.

# Warnings

Warning headers sent by the server are parsed into [Warning] values, attached
to ResponseMeta.Warnings and published on a [WarningBroker].

# Logging

The package defines the [Logger] interface for logging information about request
and response. It comes with several bundled loggers for logging in text and
JSON.

Use [WithDebugLogger] to enable the debugging logger for node management.

# Metrics

Use [WithMetrics] to enable metric collection and export.
*/
package elastictransport
