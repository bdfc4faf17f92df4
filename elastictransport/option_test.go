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

//go:build !integration
// +build !integration

package elastictransport

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func applyOptions(t *testing.T, opts ...Option) Config {
	t.Helper()
	var cfg Config
	for _, opt := range opts {
		if opt.apply == nil {
			continue
		}
		if err := opt.apply(&cfg); err != nil {
			t.Fatalf("Unexpected error: %s", err)
		}
	}
	return cfg
}

func TestOptions(t *testing.T) {
	u1, _ := url.Parse("http://localhost:9200")
	u2, _ := url.Parse("http://localhost:9201")
	provider := CredentialProviderFunc(func(context.Context) (string, error) { return "", nil })
	broker := &WarningBroker{}
	clock := newFakeClock()

	var tests = []struct {
		name  string
		opts  []Option
		check func(Config) bool
	}{
		{"WithURLs", []Option{WithURLs(u1, u2)}, func(c Config) bool { return len(c.URLs) == 2 && c.URLs[1] == u2 }},
		{"WithAddresses", []Option{WithAddresses("http://localhost:9200/", "https://example.com")}, func(c Config) bool {
			return len(c.URLs) == 2 && c.URLs[0].String() == "http://localhost:9200" && c.URLs[1].Scheme == "https"
		}},
		{"WithNodes accumulates", []Option{WithNodes(NodeConfig{Host: "a"}), WithNodes(NodeConfig{Host: "b"})}, func(c Config) bool {
			return len(c.Nodes) == 2 && c.Nodes[1].Host == "b"
		}},
		{"WithBasicAuth", []Option{WithBasicAuth("foo", "bar")}, func(c Config) bool { return c.Username == "foo" && c.Password == "bar" }},
		{"WithAPIKey", []Option{WithAPIKey("Zm9vYmFy")}, func(c Config) bool { return c.APIKey == "Zm9vYmFy" }},
		{"WithServiceToken", []Option{WithServiceToken("AAEAAWVs")}, func(c Config) bool { return c.ServiceToken == "AAEAAWVs" }},
		{"WithBearerAuth", []Option{WithBearerAuth("AAEAAWVs")}, func(c Config) bool { return c.ServiceToken == "AAEAAWVs" }},
		{"WithCredentialProvider", []Option{WithCredentialProvider(provider)}, func(c Config) bool { return c.CredentialProvider != nil }},
		{"WithHeader", []Option{WithHeader(http.Header{"X-Custom": {"v"}})}, func(c Config) bool { return c.Header.Get("X-Custom") == "v" }},
		{"WithOpaqueID", []Option{WithOpaqueID("app-1")}, func(c Config) bool { return c.OpaqueID == "app-1" }},
		{"WithUserAgent", []Option{WithUserAgent("my-agent/1.0")}, func(c Config) bool { return c.UserAgent == "my-agent/1.0" }},
		{"WithCACert", []Option{WithCACert([]byte("pem"))}, func(c Config) bool { return string(c.CACert) == "pem" }},
		{"WithCertificateFingerprint", []Option{WithCertificateFingerprint("7A:3A")}, func(c Config) bool { return c.CertificateFingerprint == "7A:3A" }},
		{"WithConnectTimeout", []Option{WithConnectTimeout(time.Second)}, func(c Config) bool { return c.ConnectTimeout == time.Second }},
		{"WithRequestTimeout", []Option{WithRequestTimeout(time.Minute)}, func(c Config) bool { return c.RequestTimeout == time.Minute }},
		{"WithDisableRetry", []Option{WithDisableRetry()}, func(c Config) bool { return c.DisableRetry }},
		{"WithRetry", []Option{WithRetry(5, 502, 503)}, func(c Config) bool {
			return c.MaxRetries == 5 && c.maxRetriesSet && cmp.Equal(c.RetryOnStatus, []int{502, 503})
		}},
		{"WithRetry keeps statuses", []Option{WithRetryOnStatus(429), WithRetry(1)}, func(c Config) bool {
			return c.MaxRetries == 1 && cmp.Equal(c.RetryOnStatus, []int{429})
		}},
		{"WithMaxRetries", []Option{WithMaxRetries(0)}, func(c Config) bool { return c.MaxRetries == 0 && c.maxRetriesSet }},
		{"WithRetryOnTimeout", []Option{WithRetryOnTimeout(true)}, func(c Config) bool { return c.RetryOnTimeout }},
		{"WithRetryBackoff", []Option{WithRetryBackoff(func(int) time.Duration { return time.Second })}, func(c Config) bool {
			return c.RetryBackoff != nil && c.RetryBackoff(1) == time.Second
		}},
		{"WithCompression", []Option{WithCompression()}, func(c Config) bool {
			return c.CompressRequestBody && c.PoolCompressor && c.CompressRequestBodyLevel == 0
		}},
		{"WithCompression level", []Option{WithCompression(gzip.BestSpeed)}, func(c Config) bool { return c.CompressRequestBodyLevel == gzip.BestSpeed }},
		{"WithMetrics", []Option{WithMetrics()}, func(c Config) bool { return c.EnableMetrics }},
		{"WithDebugLogger", []Option{WithDebugLogger()}, func(c Config) bool { return c.EnableDebugLogger }},
		{"WithDebuggingLogger", []Option{WithDebuggingLogger(&recordingDebugLogger{})}, func(c Config) bool { return c.DebugLogger != nil }},
		{"WithClientMeta", []Option{WithClientMeta("es", "8.13.0")}, func(c Config) bool { return c.ClientMetaKey == "es" && c.ClientMetaVersion == "8.13.0" }},
		{"WithDisableMetaHeader", []Option{WithDisableMetaHeader()}, func(c Config) bool { return c.DisableMetaHeader }},
		{"WithDeadNodeBackoff", []Option{WithDeadNodeBackoff(time.Second, time.Minute)}, func(c Config) bool {
			return c.DeadNodeBackoff == time.Second && c.MaxDeadNodeBackoff == time.Minute
		}},
		{"WithClock", []Option{WithClock(clock)}, func(c Config) bool { return c.Clock == Clock(clock) }},
		{"WithWarningBroker", []Option{WithWarningBroker(broker)}, func(c Config) bool { return c.Warnings == broker }},
		{"WithSerializer", []Option{WithSerializer(&JSONSerializer{})}, func(c Config) bool { return c.Serializer != nil }},
		{"WithSerializers merges", []Option{
			WithSerializers(map[string]Serializer{MimeNDJSON: &NDJSONSerializer{}}),
			WithSerializers(map[string]Serializer{"application/cbor": BytesSerializer{Mime: "application/cbor"}}),
		}, func(c Config) bool { return len(c.Serializers) == 2 }},
		{"WithSelector", []Option{WithSelector(&roundRobinSelector{curr: -1})}, func(c Config) bool { return c.Selector != nil }},
		{"WithNodePoolFunc", []Option{WithNodePoolFunc(func(n []Node, _ Selector) NodePool { return &plainPool{nodes: n} })}, func(c Config) bool {
			return c.NodePoolFunc != nil
		}},
		{"WithNodeFactory", []Option{WithNodeFactory(func(nc NodeConfig) (Node, error) { return &mockNode{config: nc}, nil })}, func(c Config) bool {
			return c.NodeFactory != nil
		}},
		{"WithTransport", []Option{WithTransport(&mockTransp{})}, func(c Config) bool { return c.Transport != nil }},
		{"WithLogger", []Option{WithLogger(&TextLogger{})}, func(c Config) bool { return c.Logger != nil }},
		{"WithInterceptors", []Option{WithInterceptors(func(next RoundTripFunc) RoundTripFunc { return next })}, func(c Config) bool {
			return len(c.Interceptors) == 1
		}},
		{"Last value wins", []Option{WithUserAgent("a"), WithUserAgent("b")}, func(c Config) bool { return c.UserAgent == "b" }},
		{"Zero option is skipped", []Option{{}, WithAPIKey("k")}, func(c Config) bool { return c.APIKey == "k" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cfg := applyOptions(t, tt.opts...); !tt.check(cfg) {
				t.Errorf("Unexpected config: %+v", cfg)
			}
		})
	}
}

func TestOptionErrors(t *testing.T) {
	var tests = []struct {
		name string
		opt  Option
	}{
		{"WithAddresses without host", WithAddresses("http://")},
		{"WithAddresses unparsable", WithAddresses("://foo")},
		{"WithRetry", WithRetry(-1)},
		{"WithMaxRetries", WithMaxRetries(-2)},
		{"WithCompression too low", WithCompression(gzip.HuffmanOnly - 1)},
		{"WithCompression too high", WithCompression(gzip.BestCompression + 1)},
		{"WithRequestTimeout", WithRequestTimeout(-time.Second)},
		{"WithDeadNodeBackoff zero", WithDeadNodeBackoff(0, time.Second)},
		{"WithDeadNodeBackoff inverted", WithDeadNodeBackoff(time.Minute, time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			err := tt.opt.apply(&cfg)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Expected ConfigurationError, got: %v", err)
			}
		})
	}

	t.Run("NewClient stops at the first error", func(t *testing.T) {
		var applied bool
		_, err := NewClient(WithMaxRetries(-1), Option{apply: func(*Config) error {
			applied = true
			return nil
		}})
		if err == nil {
			t.Fatal("Expected error")
		}
		if applied {
			t.Error("Expected the remaining options to be skipped")
		}
	})
}

func TestOptionParityWithConfig(t *testing.T) {
	u, _ := url.Parse("http://localhost:9200")

	cfgClient, err := New(Config{
		URLs:          []*url.URL{u},
		APIKey:        "Zm9vYmFy",
		UserAgent:     "parity/1.0",
		MaxRetries:    5,
		RetryOnStatus: []int{502},
		EnableMetrics: true,
	})
	if err != nil {
		t.Fatalf("New(Config) error: %s", err)
	}
	optClient, err := NewClient(
		WithURLs(u),
		WithAPIKey("Zm9vYmFy"),
		WithUserAgent("parity/1.0"),
		WithRetry(5, 502),
		WithMetrics(),
	)
	if err != nil {
		t.Fatalf("NewClient error: %s", err)
	}

	if cfgClient.auth != optClient.auth {
		t.Errorf("auth: Config=%q, Option=%q", cfgClient.auth, optClient.auth)
	}
	if cfgClient.userAgent != optClient.userAgent {
		t.Errorf("userAgent: Config=%q, Option=%q", cfgClient.userAgent, optClient.userAgent)
	}
	if cfgClient.maxRetries != optClient.maxRetries {
		t.Errorf("maxRetries: Config=%d, Option=%d", cfgClient.maxRetries, optClient.maxRetries)
	}
	if !cmp.Equal(cfgClient.retryOnStatus, optClient.retryOnStatus) {
		t.Errorf("retryOnStatus: Config=%v, Option=%v", cfgClient.retryOnStatus, optClient.retryOnStatus)
	}
	if (cfgClient.metrics == nil) != (optClient.metrics == nil) {
		t.Errorf("metrics: Config=%v, Option=%v", cfgClient.metrics != nil, optClient.metrics != nil)
	}
	if cfgClient.metaHeader != optClient.metaHeader {
		t.Errorf("metaHeader: Config=%q, Option=%q", cfgClient.metaHeader, optClient.metaHeader)
	}
}
