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
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"strings"
	"time"
)

var defaultPorts = map[string]int{"http": 80, "https": 443}

// NodeConfig describes one addressable Elasticsearch endpoint. Two configs
// with the same Key are interchangeable.
type NodeConfig struct {
	Scheme     string
	Host       string
	Port       int
	PathPrefix string

	// Header holds default headers sent with every request to the node.
	Header http.Header

	CACert                 []byte
	CertificateFingerprint string

	ConnectTimeout time.Duration
	RequestTimeout time.Duration

	// HTTPCompress enables gzip compression of request bodies.
	HTTPCompress bool

	// Extras is an opaque bag for custom node implementations and tests.
	Extras map[string]any
}

// NodeConfigFromURL converts a URL into a NodeConfig. Missing ports default
// to the scheme's port. Credentials embedded in the URL are rejected; use
// the client's authentication options instead.
func NodeConfigFromURL(u *url.URL) (NodeConfig, error) {
	if u == nil {
		return NodeConfig{}, NewConfigurationError("node URL cannot be nil")
	}
	if u.User != nil {
		return NodeConfig{}, NewConfigurationError("URL %q must not contain credentials, use the authentication options instead", u.Redacted())
	}
	cfg := NodeConfig{
		Scheme:     strings.ToLower(u.Scheme),
		Host:       u.Hostname(),
		PathPrefix: u.Path,
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return NodeConfig{}, &ConfigurationError{Msg: fmt.Sprintf("invalid port in URL %q", u.String()), Err: err}
		}
		cfg.Port = port
	}
	if err := cfg.normalize(); err != nil {
		return NodeConfig{}, err
	}
	return cfg, nil
}

func (c *NodeConfig) normalize() error {
	c.Scheme = strings.ToLower(c.Scheme)
	if _, ok := defaultPorts[c.Scheme]; !ok {
		return NewConfigurationError("invalid URL scheme %q, must be 'http' or 'https'", c.Scheme)
	}
	if c.Host == "" {
		return NewConfigurationError("node host cannot be empty")
	}
	if c.Port == 0 {
		c.Port = defaultPorts[c.Scheme]
	}
	if c.Port < 0 || c.Port > 65535 {
		return NewConfigurationError("invalid port %d", c.Port)
	}
	c.PathPrefix = strings.TrimRight(c.PathPrefix, "/")
	if c.PathPrefix != "" && !strings.HasPrefix(c.PathPrefix, "/") {
		c.PathPrefix = "/" + c.PathPrefix
	}
	return nil
}

// URL returns the base URL of the node.
func (c NodeConfig) URL() *url.URL {
	return &url.URL{
		Scheme: c.Scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   c.PathPrefix,
	}
}

// Key returns the structural identity of the node.
func (c NodeConfig) Key() string { return c.URL().String() }

func (c NodeConfig) String() string { return "<" + c.Key() + ">" }

// NodeRequest is a single attempt handed to a Node.
type NodeRequest struct {
	Method string
	// Target is the quoted path including the query string.
	Target  string
	Header  http.Header
	Body    []byte
	Timeout time.Duration
}

// Node performs requests against a single endpoint.
type Node interface {
	Config() NodeConfig
	Perform(ctx context.Context, req *NodeRequest) (*ResponseMeta, []byte, error)
	Close() error
}

// MetaHeaderIdentifier is implemented by nodes that report their HTTP
// implementation in the client-meta header, e.g. ("hc", "1.21.5").
type MetaHeaderIdentifier interface {
	MetaHeaderIdentifier() (key string, version string)
}

// NodeFactory creates a Node from its configuration.
type NodeFactory func(NodeConfig) (Node, error)

// HTTPNodeOptions configures the HTTP implementation shared by all nodes of a client.
type HTTPNodeOptions struct {
	// Transport is cloned per node when it is an *http.Transport.
	Transport    http.RoundTripper
	Interceptors []InterceptorFunc
	Logger       Logger

	CompressionLevel int
	PoolCompressor   bool
}

// HTTPNode is the default Node, backed by net/http.
type HTTPNode struct {
	config     NodeConfig
	base       string
	transport  http.RoundTripper
	roundTrip  RoundTripFunc
	logger     Logger
	compressor gzipCompressor
}

// NewHTTPNode creates an HTTPNode for cfg.
func NewHTTPNode(cfg NodeConfig, opts HTTPNodeOptions) (*HTTPNode, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if t, ok := transport.(*http.Transport); ok {
		t = t.Clone()
		if cfg.ConnectTimeout > 0 {
			t.DialContext = (&net.Dialer{Timeout: cfg.ConnectTimeout, KeepAlive: 30 * time.Second}).DialContext
		}
		if err := ConfigureTLS(t, cfg.CACert, cfg.CertificateFingerprint); err != nil {
			return nil, &ConfigurationError{Msg: "unable to configure TLS for node " + cfg.String(), Err: err}
		}
		transport = t
	} else if cfg.CACert != nil || cfg.CertificateFingerprint != "" {
		return nil, NewConfigurationError("unable to configure TLS for transport of type %T", transport)
	}

	n := &HTTPNode{
		config:    cfg,
		base:      cfg.URL().String(),
		transport: transport,
		logger:    opts.Logger,
	}
	n.roundTrip = mergeInterceptors(opts.Interceptors)(transport.RoundTrip)

	if cfg.HTTPCompress {
		level := opts.CompressionLevel
		if level == 0 {
			level = defaultCompressionLevel
		}
		if opts.PoolCompressor {
			n.compressor = newPooledGzipCompressor(level)
		} else {
			n.compressor = newSimpleGzipCompressor(level)
		}
	}
	return n, nil
}

// Config implements Node.
func (n *HTTPNode) Config() NodeConfig { return n.config }

// MetaHeaderIdentifier implements MetaHeaderIdentifier.
func (n *HTTPNode) MetaHeaderIdentifier() (string, string) {
	return "hc", strings.TrimPrefix(runtime.Version(), "go")
}

// Perform implements Node.
func (n *HTTPNode) Perform(ctx context.Context, r *NodeRequest) (*ResponseMeta, []byte, error) {
	timeout := r.Timeout
	if timeout == 0 {
		timeout = n.config.RequestTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	payload := r.Body
	var compressed bool
	if n.compressor != nil && len(payload) > 0 {
		buf, err := n.compressor.compress(payload)
		if err != nil {
			return nil, nil, err
		}
		// The transport may still read the body after Perform returns.
		payload = append([]byte(nil), buf.Bytes()...)
		n.compressor.collectBuffer(buf)
		compressed = true
	}

	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, n.base+r.Target, body)
	if err != nil {
		return nil, nil, err
	}
	req.Header = make(http.Header, len(n.config.Header)+len(r.Header)+1)
	for k, vv := range n.config.Header {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vv...)
	}
	for k, vv := range r.Header {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vv...)
	}
	if compressed {
		req.Header.Set("Content-Encoding", "gzip")
	}
	if len(payload) > 0 {
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(payload)), nil
		}
	}

	start := time.Now().UTC()
	res, err := n.roundTrip(req)
	if err != nil {
		dur := time.Since(start)
		n.log(req, r.Body, nil, nil, err, start, dur)
		return nil, nil, err
	}

	data, err := io.ReadAll(res.Body)
	_ = res.Body.Close()
	dur := time.Since(start)
	if err != nil {
		n.log(req, r.Body, res, nil, err, start, dur)
		return nil, nil, err
	}
	n.log(req, r.Body, res, data, nil, start, dur)

	header := res.Header
	if header == nil {
		header = http.Header{}
	}
	meta := &ResponseMeta{
		Status:      res.StatusCode,
		Header:      header,
		HTTPVersion: strings.TrimPrefix(res.Proto, "HTTP/"),
		Duration:    dur,
		Node:        n.config,
	}
	return meta, data, nil
}

func (n *HTTPNode) log(req *http.Request, reqBody []byte, res *http.Response, resBody []byte, err error, start time.Time, dur time.Duration) {
	if n.logger == nil {
		return
	}
	if n.logger.RequestBodyEnabled() && len(reqBody) > 0 {
		req.Body = io.NopCloser(bytes.NewReader(reqBody))
	}
	if res != nil {
		dupRes := *res
		if n.logger.ResponseBodyEnabled() {
			dupRes.Body = io.NopCloser(bytes.NewReader(resBody))
		} else {
			dupRes.Body = http.NoBody
		}
		res = &dupRes
	}
	_ = n.logger.LogRoundTrip(req, res, err, start, dur)
}

// Close implements Node.
func (n *HTTPNode) Close() error {
	if t, ok := n.transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}

func (n *HTTPNode) String() string { return "HTTPNode" + n.config.String() }
