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
	"compress/gzip"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Option configures a Client. Use the With* functions to obtain Option values.
type Option struct {
	apply func(*Config) error
}

// WithURLs sets the Elasticsearch node URLs the transport will connect to.
// Multiple URLs enable round-robin load balancing and failover. URLs must
// not carry credentials; use WithBasicAuth instead.
func WithURLs(urls ...*url.URL) Option {
	return Option{apply: func(c *Config) error {
		c.URLs = urls
		return nil
	}}
}

// WithBasicAuth configures HTTP Basic Authentication with the given username
// and password.
func WithBasicAuth(username, password string) Option {
	return Option{apply: func(c *Config) error {
		c.Username = username
		c.Password = password
		return nil
	}}
}

// WithAPIKey configures API Key authentication. The key should be the
// base64-encoded value returned by the Elasticsearch create API key endpoint.
func WithAPIKey(apiKey string) Option {
	return Option{apply: func(c *Config) error {
		c.APIKey = apiKey
		return nil
	}}
}

// WithServiceToken configures service token authentication using the given
// bearer token. WithBearerAuth is an alias.
func WithServiceToken(token string) Option {
	return Option{apply: func(c *Config) error {
		c.ServiceToken = token
		return nil
	}}
}

// WithHeader sets global HTTP headers that are added to every request.
// Per-request headers set on the Request take precedence. The
// x-elastic-client-meta header is reserved and dropped.
func WithHeader(header http.Header) Option {
	return Option{apply: func(c *Config) error {
		c.Header = header
		return nil
	}}
}

// WithCACert sets the PEM-encoded CA certificate used to verify the server's
// TLS certificate. This requires the underlying transport to be an
// *http.Transport.
func WithCACert(cert []byte) Option {
	return Option{apply: func(c *Config) error {
		c.CACert = cert
		return nil
	}}
}

// WithCertificateFingerprint configures SHA-256 certificate fingerprint
// verification. When set, the transport verifies that at least one certificate
// in the chain matches the hex-encoded fingerprint, independent of CA trust.
func WithCertificateFingerprint(fingerprint string) Option {
	return Option{apply: func(c *Config) error {
		c.CertificateFingerprint = fingerprint
		return nil
	}}
}

// WithUserAgent sets the User-Agent header value sent with every request.
func WithUserAgent(ua string) Option {
	return Option{apply: func(c *Config) error {
		c.UserAgent = ua
		return nil
	}}
}

// WithTransport sets the http.RoundTripper used for HTTP requests. If not set,
// a clone of http.DefaultTransport is used.
func WithTransport(rt http.RoundTripper) Option {
	return Option{apply: func(c *Config) error {
		c.Transport = rt
		return nil
	}}
}

// WithLogger sets the Logger used to log request and response information.
func WithLogger(l Logger) Option {
	return Option{apply: func(c *Config) error {
		c.Logger = l
		return nil
	}}
}

// WithSelector sets the Selector used to pick nodes from the pool.
func WithSelector(s Selector) Option {
	return Option{apply: func(c *Config) error {
		c.Selector = s
		return nil
	}}
}

// WithNodePoolFunc sets a factory function for creating a custom node
// pool. Pools are synchronised by default; implement ConcurrentSafeNodePool
// to opt out when your pool is already safe for concurrent use.
func WithNodePoolFunc(f func([]Node, Selector) NodePool) Option {
	return Option{apply: func(c *Config) error {
		c.NodePoolFunc = f
		return nil
	}}
}

// WithDisableRetry disables automatic request retries. When set,
// RetryOnStatus, RetryOnTimeout, MaxRetries, and RetryBackoff are ignored.
func WithDisableRetry() Option {
	return Option{apply: func(c *Config) error {
		c.DisableRetry = true
		return nil
	}}
}

// WithRetry configures retry behaviour with the given maximum number of
// retries and optional HTTP status codes that trigger a retry. If no status
// codes are provided, responses are never retried.
//
// maxRetries must be non-negative.
func WithRetry(maxRetries int, onStatus ...int) Option {
	return Option{apply: func(c *Config) error {
		if maxRetries < 0 {
			return NewConfigurationError("WithRetry: maxRetries must be >= 0, got %d", maxRetries)
		}
		c.MaxRetries = maxRetries
		c.maxRetriesSet = true
		if len(onStatus) > 0 {
			c.RetryOnStatus = onStatus
		}
		return nil
	}}
}

// WithRetryOnStatus sets the HTTP status codes that trigger a retry.
// By default no status is retried.
func WithRetryOnStatus(statuses ...int) Option {
	return Option{apply: func(c *Config) error {
		c.RetryOnStatus = statuses
		return nil
	}}
}

// WithMaxRetries sets the maximum number of retries for a failed request.
// The default is 3. n must be non-negative.
func WithMaxRetries(n int) Option {
	return Option{apply: func(c *Config) error {
		if n < 0 {
			return NewConfigurationError("WithMaxRetries: value must be >= 0, got %d", n)
		}
		c.MaxRetries = n
		c.maxRetriesSet = true
		return nil
	}}
}

// WithRetryBackoff sets a backoff function called between retries. The function
// receives the retry attempt number (starting at 1) and returns the duration to
// wait before the next attempt.
func WithRetryBackoff(fn func(attempt int) time.Duration) Option {
	return Option{apply: func(c *Config) error {
		c.RetryBackoff = fn
		return nil
	}}
}

// WithCompression enables gzip compression for request bodies using a pooled
// gzip writer. An optional compression level may be provided (see the
// compress/gzip constants, e.g. gzip.BestSpeed). When omitted, gzip.DefaultCompression
// is used.
func WithCompression(level ...int) Option {
	return Option{apply: func(c *Config) error {
		c.CompressRequestBody = true
		c.PoolCompressor = true
		if len(level) > 0 {
			l := level[0]
			if l < gzip.HuffmanOnly || l > gzip.BestCompression {
				return NewConfigurationError("WithCompression: invalid gzip level %d (valid range: %d to %d)",
					l, gzip.HuffmanOnly, gzip.BestCompression)
			}
			c.CompressRequestBodyLevel = l
		}
		return nil
	}}
}

// WithMetrics enables internal transport metrics collection.
func WithMetrics() Option {
	return Option{apply: func(c *Config) error {
		c.EnableMetrics = true
		return nil
	}}
}

// WithDebugLogger enables a debug logger that writes connection-management
// information to os.Stdout.
func WithDebugLogger() Option {
	return Option{apply: func(c *Config) error {
		c.EnableDebugLogger = true
		return nil
	}}
}

// WithInstrumentation sets the Instrumentation used for tracing and metrics
// propagation (e.g. OpenTelemetry).
func WithInstrumentation(i Instrumentation) Option {
	return Option{apply: func(c *Config) error {
		c.Instrumentation = i
		return nil
	}}
}

// WithInterceptors sets the request/response interceptors applied on every
// round trip. Interceptors are composed in order and cannot be changed after
// transport creation.
func WithInterceptors(interceptors ...InterceptorFunc) Option {
	return Option{apply: func(c *Config) error {
		c.Interceptors = interceptors
		return nil
	}}
}

// WithBearerAuth configures bearer token authentication.
func WithBearerAuth(token string) Option {
	return WithServiceToken(token)
}

// WithCredentialProvider sets a provider queried for the Authorization
// header on every call. It takes precedence over static credentials.
func WithCredentialProvider(p CredentialProvider) Option {
	return Option{apply: func(c *Config) error {
		c.CredentialProvider = p
		return nil
	}}
}

// WithNodes adds nodes described by NodeConfig values.
func WithNodes(nodes ...NodeConfig) Option {
	return Option{apply: func(c *Config) error {
		c.Nodes = append(c.Nodes, nodes...)
		return nil
	}}
}

// WithAddresses parses the given addresses and sets them as node URLs.
func WithAddresses(addrs ...string) Option {
	return Option{apply: func(c *Config) error {
		urls := make([]*url.URL, 0, len(addrs))
		for _, addr := range addrs {
			u, err := url.Parse(strings.TrimRight(addr, "/"))
			if err != nil {
				return NewConfigurationError("cannot parse address %q: %s", addr, err)
			}
			if u.Scheme == "" || u.Host == "" {
				return NewConfigurationError("address %q must include scheme and host", addr)
			}
			urls = append(urls, u)
		}
		c.URLs = urls
		return nil
	}}
}

// WithNodeFactory replaces the HTTPNode constructor. WithTransport,
// WithInterceptors, WithLogger and WithCompression only apply to the
// default factory.
func WithNodeFactory(f NodeFactory) Option {
	return Option{apply: func(c *Config) error {
		c.NodeFactory = f
		return nil
	}}
}

// WithConnectTimeout sets the dial timeout of every node.
func WithConnectTimeout(d time.Duration) Option {
	return Option{apply: func(c *Config) error {
		c.ConnectTimeout = d
		return nil
	}}
}

// WithRequestTimeout sets the default per-attempt timeout.
func WithRequestTimeout(d time.Duration) Option {
	return Option{apply: func(c *Config) error {
		if d < 0 {
			return NewConfigurationError("WithRequestTimeout: value must be >= 0, got %s", d)
		}
		c.RequestTimeout = d
		return nil
	}}
}

// WithRetryOnTimeout allows timed out attempts to be retried on another
// node.
func WithRetryOnTimeout(enabled bool) Option {
	return Option{apply: func(c *Config) error {
		c.RetryOnTimeout = enabled
		return nil
	}}
}

// WithOpaqueID sets the default X-Opaque-Id header value.
func WithOpaqueID(id string) Option {
	return Option{apply: func(c *Config) error {
		c.OpaqueID = id
		return nil
	}}
}

// WithSerializer replaces the default JSON serializer.
func WithSerializer(s Serializer) Option {
	return Option{apply: func(c *Config) error {
		c.Serializer = s
		return nil
	}}
}

// WithSerializers registers serializers keyed by media type. Supplying an
// application/json entry together with WithSerializer is an error.
func WithSerializers(serializers map[string]Serializer) Option {
	return Option{apply: func(c *Config) error {
		if c.Serializers == nil {
			c.Serializers = make(map[string]Serializer, len(serializers))
		}
		for mime, s := range serializers {
			c.Serializers[mime] = s
		}
		return nil
	}}
}

// WithClientMeta sets the leading entry of the x-elastic-client-meta header.
func WithClientMeta(key, version string) Option {
	return Option{apply: func(c *Config) error {
		c.ClientMetaKey = key
		c.ClientMetaVersion = version
		return nil
	}}
}

// WithDisableMetaHeader stops the client from sending x-elastic-client-meta.
func WithDisableMetaHeader() Option {
	return Option{apply: func(c *Config) error {
		c.DisableMetaHeader = true
		return nil
	}}
}

// WithDeadNodeBackoff sets the initial and maximum time a failed node is
// kept out of rotation. The timeout doubles with every consecutive failure.
func WithDeadNodeBackoff(initial, maxBackoff time.Duration) Option {
	return Option{apply: func(c *Config) error {
		if initial <= 0 || maxBackoff < initial {
			return NewConfigurationError("WithDeadNodeBackoff: invalid range %s..%s", initial, maxBackoff)
		}
		c.DeadNodeBackoff = initial
		c.MaxDeadNodeBackoff = maxBackoff
		return nil
	}}
}

// WithClock sets the clock used for node liveness.
func WithClock(clock Clock) Option {
	return Option{apply: func(c *Config) error {
		c.Clock = clock
		return nil
	}}
}

// WithWarningBroker sets the broker receiving server warnings. By default
// DefaultWarningBroker is used.
func WithWarningBroker(b *WarningBroker) Option {
	return Option{apply: func(c *Config) error {
		c.Warnings = b
		return nil
	}}
}

// WithDebuggingLogger sets the logger used for node management messages.
func WithDebuggingLogger(l DebuggingLogger) Option {
	return Option{apply: func(c *Config) error {
		c.DebugLogger = l
		return nil
	}}
}
