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
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultEndpoint   = "perform_request"
)

// Interface defines the interface for HTTP client.
type Interface interface {
	Perform(context.Context, *Request) (Envelope, error)
}

// CredentialProvider returns the Authorization header value for a request.
// It is called once per API call, before the first attempt.
type CredentialProvider interface {
	Authorization(ctx context.Context) (string, error)
}

// CredentialProviderFunc adapts a function to CredentialProvider.
type CredentialProviderFunc func(ctx context.Context) (string, error)

// Authorization implements CredentialProvider.
func (f CredentialProviderFunc) Authorization(ctx context.Context) (string, error) { return f(ctx) }

// Config represents the configuration of HTTP client.
//
// Deprecated: Use NewClient with functional options instead.
type Config struct {
	UserAgent string

	URLs  []*url.URL
	Nodes []NodeConfig

	Username           string
	Password           string
	APIKey             string
	ServiceToken       string
	CredentialProvider CredentialProvider

	Header   http.Header
	OpaqueID string

	CACert                 []byte
	CertificateFingerprint string
	ConnectTimeout         time.Duration
	RequestTimeout         time.Duration

	RetryOnStatus  []int
	DisableRetry   bool
	MaxRetries     int
	RetryOnTimeout bool
	RetryBackoff   func(attempt int) time.Duration

	CompressRequestBody      bool
	CompressRequestBodyLevel int
	// If PoolCompressor is true, a sync.Pool based gzip writer is used. Should be enabled with CompressRequestBody.
	PoolCompressor bool

	// ClientMetaKey and ClientMetaVersion lead the x-elastic-client-meta
	// header, e.g. "es" and "8.13.0".
	ClientMetaKey     string
	ClientMetaVersion string
	DisableMetaHeader bool

	EnableMetrics     bool
	EnableDebugLogger bool
	DebugLogger       DebuggingLogger

	Instrumentation Instrumentation
	Interceptors    []InterceptorFunc

	Transport    http.RoundTripper
	NodeFactory  NodeFactory
	Logger       Logger
	Selector     Selector
	NodePoolFunc func([]Node, Selector) NodePool

	Serializer  Serializer
	Serializers map[string]Serializer

	DeadNodeBackoff    time.Duration
	MaxDeadNodeBackoff time.Duration
	Clock              Clock

	Warnings *WarningBroker

	maxRetriesSet bool
}

// Client represents the HTTP client.
type Client struct {
	pool        NodePool
	nodes       []Node
	serializers *SerializerRegistry
	warnings    *WarningBroker
	metrics     *metrics
	instrument  Instrumentation

	userAgent  string
	header     http.Header
	metaHeader string
	auth       string
	credential CredentialProvider
	opaqueID   string

	requestTimeout time.Duration
	maxRetries     int
	retryOnTimeout bool
	retryOnStatus  []int
	retryBackoff   func(attempt int) time.Duration
	disableRetry   bool

	debugLogger DebuggingLogger

	// verified holds the keys of the nodes which passed the product check.
	verified sync.Map

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a new transport Client configured by the given options.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Config
	for _, opt := range opts {
		if opt.apply == nil {
			continue
		}
		if err := opt.apply(&cfg); err != nil {
			return nil, err
		}
	}
	return New(cfg)
}

// New creates new transport client.
//
// Deprecated: Use NewClient with functional options instead.
func New(cfg Config) (*Client, error) {
	configs, err := nodeConfigs(cfg)
	if err != nil {
		return nil, err
	}

	serializers, err := NewSerializerRegistry(cfg.Serializer, cfg.Serializers)
	if err != nil {
		return nil, err
	}

	debugLogger := cfg.DebugLogger
	if debugLogger == nil && cfg.EnableDebugLogger {
		debugLogger = &debuggingLogger{Output: os.Stdout}
	}

	factory := cfg.NodeFactory
	if factory == nil {
		httpOpts := HTTPNodeOptions{
			Transport:        cfg.Transport,
			Interceptors:     cfg.Interceptors,
			Logger:           cfg.Logger,
			CompressionLevel: cfg.CompressRequestBodyLevel,
			PoolCompressor:   cfg.PoolCompressor,
		}
		factory = func(nc NodeConfig) (Node, error) { return NewHTTPNode(nc, httpOpts) }
	}

	nodes := make([]Node, 0, len(configs))
	for _, nc := range configs {
		n, err := factory(nc)
		if err != nil {
			_ = closeNodes(context.Background(), nodes)
			return nil, err
		}
		nodes = append(nodes, n)
	}

	var pool NodePool
	if cfg.NodePoolFunc != nil {
		pool = newSynchronizedPool(cfg.NodePoolFunc(nodes, cfg.Selector))
		if pool == nil {
			_ = closeNodes(context.Background(), nodes)
			return nil, NewConfigurationError("node pool function returned nil")
		}
	} else {
		pool, err = newStatusNodePool(nodes, poolOptions{
			selector:    cfg.Selector,
			clock:       cfg.Clock,
			backoffBase: cfg.DeadNodeBackoff,
			backoffMax:  cfg.MaxDeadNodeBackoff,
			debug:       debugLogger,
		})
		if err != nil {
			_ = closeNodes(context.Background(), nodes)
			return nil, err
		}
	}

	client := Client{
		pool:        pool,
		nodes:       nodes,
		serializers: serializers,
		warnings:    cfg.Warnings,
		instrument:  cfg.Instrumentation,

		userAgent:  cfg.UserAgent,
		header:     stripReserved(cfg.Header),
		credential: cfg.CredentialProvider,
		opaqueID:   cfg.OpaqueID,

		requestTimeout: cfg.RequestTimeout,
		maxRetries:     cfg.MaxRetries,
		retryOnTimeout: cfg.RetryOnTimeout,
		retryOnStatus:  cfg.RetryOnStatus,
		retryBackoff:   cfg.RetryBackoff,
		disableRetry:   cfg.DisableRetry,

		debugLogger: debugLogger,
	}

	if client.warnings == nil {
		client.warnings = DefaultWarningBroker
	}
	if client.userAgent == "" {
		client.userAgent = defaultUserAgent()
	}
	if client.maxRetries == 0 && !cfg.maxRetriesSet {
		client.maxRetries = defaultMaxRetries
	}
	if cfg.EnableMetrics {
		client.metrics = newMetrics()
	}

	switch {
	case cfg.APIKey != "":
		client.auth = "ApiKey " + cfg.APIKey
	case cfg.ServiceToken != "":
		client.auth = "Bearer " + cfg.ServiceToken
	case cfg.Username != "" || cfg.Password != "":
		client.auth = "Basic " + base64.StdEncoding.EncodeToString([]byte(cfg.Username+":"+cfg.Password))
	}

	if !cfg.DisableMetaHeader {
		var nodeKey, nodeVersion string
		for _, n := range nodes {
			if id, ok := n.(MetaHeaderIdentifier); ok {
				nodeKey, nodeVersion = id.MetaHeaderIdentifier()
				break
			}
		}
		client.metaHeader = buildMetaHeader(cfg.ClientMetaKey, cfg.ClientMetaVersion, nodeKey, nodeVersion)
	}

	return &client, nil
}

func nodeConfigs(cfg Config) ([]NodeConfig, error) {
	configs := make([]NodeConfig, 0, len(cfg.Nodes)+len(cfg.URLs))
	configs = append(configs, cfg.Nodes...)
	for _, u := range cfg.URLs {
		if u == nil {
			continue
		}
		nc, err := NodeConfigFromURL(u)
		if err != nil {
			return nil, err
		}
		configs = append(configs, nc)
	}
	if len(configs) == 0 {
		return nil, NewConfigurationError("at least one node or URL is required")
	}

	for i := range configs {
		nc := &configs[i]
		if nc.CACert == nil {
			nc.CACert = cfg.CACert
		}
		if nc.CertificateFingerprint == "" {
			nc.CertificateFingerprint = cfg.CertificateFingerprint
		}
		if nc.ConnectTimeout == 0 {
			nc.ConnectTimeout = cfg.ConnectTimeout
		}
		if cfg.CompressRequestBody {
			nc.HTTPCompress = true
		}
		if err := nc.normalize(); err != nil {
			return nil, err
		}
	}
	return configs, nil
}

// Perform executes the request and returns the envelope matching the
// response content type. Non-2xx responses which are not ignored are
// returned as *ApiError.
func (c *Client) Perform(ctx context.Context, req *Request) (Envelope, error) {
	meta, body, err := c.PerformRaw(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.envelope(req, meta, body)
}

// PerformRaw executes the request and returns the response metadata and
// the undecoded body.
func (c *Client) PerformRaw(ctx context.Context, req *Request) (*ResponseMeta, []byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return nil, nil, NewConfigurationError("request cannot be nil")
	}

	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return nil, nil, ErrClosed
	}

	if c.instrument != nil {
		endpoint := req.Endpoint
		if endpoint == "" {
			endpoint = defaultEndpoint
		}
		ctx = c.instrument.Start(ctx, endpoint)
		ctx = withSpanEndpoint(ctx, endpoint)
		defer c.instrument.Close(ctx)
		for part, value := range req.PathParts {
			c.instrument.RecordPathPart(ctx, part, value)
		}
		if req.Instrumented && len(req.Body) > 0 {
			c.instrument.RecordRequestBody(ctx, endpoint, req.Body)
		}
		c.instrument.BeforeRequest(ctx, req)
	}

	meta, body, err := c.perform(ctx, req)
	if err != nil && c.instrument != nil {
		c.instrument.RecordError(ctx, err)
	}
	return meta, body, err
}

func (c *Client) perform(ctx context.Context, req *Request) (*ResponseMeta, []byte, error) {
	opaqueID := req.OpaqueID
	if opaqueID == "" {
		opaqueID = c.opaqueID
	}

	header, err := c.requestHeader(ctx, req, opaqueID)
	if err != nil {
		return nil, nil, err
	}

	timeout := req.RequestTimeout
	if timeout == 0 {
		timeout = c.requestTimeout
	}
	maxRetries := c.maxRetries
	if req.MaxRetries != nil {
		maxRetries = *req.MaxRetries
	}
	if c.disableRetry || maxRetries < 0 {
		maxRetries = 0
	}
	retryOnTimeout := c.retryOnTimeout
	if req.RetryOnTimeout != nil {
		retryOnTimeout = *req.RetryOnTimeout
	}

	nodeReq := &NodeRequest{
		Method:  req.Method,
		Target:  req.Target(),
		Header:  header,
		Body:    req.Body,
		Timeout: timeout,
	}

	var (
		errs     []error
		lastNode Node
		lastMeta *ResponseMeta
		lastBody []byte
		timedOut bool
	)

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if c.metrics != nil {
				c.metrics.incRetries()
			}
			if c.retryBackoff != nil {
				if err := sleepContext(ctx, c.retryBackoff(attempt)); err != nil {
					errs = append(errs, err)
					return nil, nil, &ConnectionTimeout{Errors: errs, OpaqueID: opaqueID}
				}
			}
		}

		node, err := c.pool.Next()
		if err != nil {
			errs = append(errs, fmt.Errorf("cannot get node: %w", err))
			return nil, nil, &ConnectionError{Errors: errs, OpaqueID: opaqueID}
		}
		if c.instrument != nil {
			c.instrument.AfterRequest(ctx, node.Config(), req.Method)
		}
		if c.metrics != nil {
			c.metrics.incRequests()
		}

		meta, body, err := node.Perform(ctx, nodeReq)
		if err != nil {
			if c.metrics != nil {
				c.metrics.incFailures()
			}
			errs = append(errs, fmt.Errorf("%s: %w", node.Config(), err))

			// The caller gave up; the node is not to blame.
			if ctx.Err() != nil {
				return nil, nil, &ConnectionTimeout{Errors: errs, OpaqueID: opaqueID}
			}

			timedOut = isTimeout(err)
			_ = c.pool.OnFailure(node)
			if timedOut && !retryOnTimeout {
				break
			}
			continue
		}

		if c.metrics != nil {
			c.metrics.incResponse(meta.Status)
		}
		_ = c.pool.OnSuccess(node)
		lastNode, lastMeta, lastBody = node, meta, body

		if attempt < maxRetries && c.retryStatus(meta.Status) {
			if c.debugLogger != nil {
				_ = c.debugLogger.Logf("Retrying request to %s on status %d\n", node.Config(), meta.Status)
			}
			continue
		}
		break
	}

	if lastMeta == nil {
		if timedOut {
			return nil, nil, &ConnectionTimeout{Errors: errs, OpaqueID: opaqueID}
		}
		return nil, nil, &ConnectionError{Errors: errs, OpaqueID: opaqueID}
	}

	return c.processResponse(ctx, req, lastNode, lastMeta, lastBody, opaqueID)
}

func (c *Client) processResponse(ctx context.Context, req *Request, node Node, meta *ResponseMeta, body []byte, opaqueID string) (*ResponseMeta, []byte, error) {
	success := meta.Status >= 200 && meta.Status < 300

	if success {
		if err := c.checkProduct(node, meta, opaqueID); err != nil {
			return nil, nil, err
		}
	}

	if values := meta.Header.Values(headerWarning); len(values) > 0 {
		meta.Warnings = ParseWarningHeaders(values)
		for i := range meta.Warnings {
			meta.Warnings[i].Endpoint = req.Endpoint
			c.warnings.Publish(meta.Warnings[i])
		}
	}

	if c.instrument != nil {
		c.instrument.AfterResponse(ctx, meta)
	}

	if success || req.ignores(meta.Status) {
		return meta, body, nil
	}
	if req.Method == http.MethodHead && meta.Status == http.StatusNotFound {
		return meta, body, nil
	}

	apiErr := &ApiError{
		Kind:     KindForStatus(meta.Status),
		Status:   meta.Status,
		Header:   meta.Header,
		Raw:      body,
		Meta:     meta,
		OpaqueID: opaqueID,
	}
	if len(body) > 0 {
		if decoded, err := c.serializers.Decode(body, meta.MimeType()); err == nil {
			apiErr.Body = decoded
		} else {
			apiErr.Body = string(body)
		}
	}
	return nil, nil, apiErr
}

// checkProduct verifies the product header on the first 2xx response of
// each node.
func (c *Client) checkProduct(node Node, meta *ResponseMeta, opaqueID string) error {
	key := node.Config().Key()
	if _, ok := c.verified.Load(key); ok {
		return nil
	}
	if meta.Header.Get(headerProduct) != expectedProductValue {
		return &UnsupportedProductError{Meta: meta, OpaqueID: opaqueID}
	}
	c.verified.Store(key, struct{}{})
	return nil
}

func (c *Client) envelope(req *Request, meta *ResponseMeta, body []byte) (Envelope, error) {
	if req.Method == http.MethodHead {
		return &HeadResponse{Meta: meta, Body: meta.Status >= 200 && meta.Status < 300}, nil
	}

	mime := meta.MimeType()
	if mime == "" {
		mime = normalizeMimeType(strings.Split(req.Header.Get("Accept"), ",")[0])
	}
	mime = canonicalMimeType(mime)

	switch {
	case strings.HasPrefix(mime, "text/"):
		return &TextResponse{Meta: meta, Body: string(body)}, nil
	case mime == MimeMapboxTile:
		return &BytesResponse{Meta: meta, Body: body}, nil
	}

	s, err := c.serializers.Get(mime)
	if err != nil {
		if mime == "" {
			s = c.serializers.JSON()
		} else {
			return &BytesResponse{Meta: meta, Body: body}, nil
		}
	}
	decoded, err := s.Decode(body)
	if err != nil {
		return nil, &SerializationError{ContentType: mime, Length: len(body), Err: err}
	}
	return &ObjectResponse{Meta: meta, Body: decoded, Raw: body, serializer: s}, nil
}

func (c *Client) requestHeader(ctx context.Context, req *Request, opaqueID string) (http.Header, error) {
	h := make(http.Header, len(c.header)+len(req.Header)+4)
	h.Set(headerUserAgent, c.userAgent)
	for k, vv := range c.header {
		h[k] = append([]string(nil), vv...)
	}
	for k, vv := range stripReserved(req.Header) {
		h[k] = vv
	}

	if c.metaHeader != "" {
		h.Set(headerClientMeta, c.metaHeader)
	}

	if h.Get(headerAuthorization) == "" {
		auth := c.auth
		if c.credential != nil {
			v, err := c.credential.Authorization(ctx)
			if err != nil {
				return nil, fmt.Errorf("cannot obtain credentials: %w", err)
			}
			auth = v
		}
		if auth != "" {
			h.Set(headerAuthorization, auth)
		}
	}

	if opaqueID != "" {
		h.Set(headerOpaqueID, opaqueID)
	}

	if len(req.Body) == 0 {
		h.Del(headerContentType)
	} else if h.Get(headerContentType) == "" {
		h.Set(headerContentType, MimeJSON)
	}
	return h, nil
}

func (c *Client) retryStatus(status int) bool {
	for _, s := range c.retryOnStatus {
		if s == status {
			return true
		}
	}
	return false
}

// Nodes returns the configured nodes.
func (c *Client) Nodes() []NodeConfig {
	out := make([]NodeConfig, 0, len(c.nodes))
	for _, n := range c.nodes {
		out = append(out, n.Config())
	}
	return out
}

// NodeStatuses returns a snapshot of node liveness. Custom pools which do
// not implement StatusReporter are reported as alive.
func (c *Client) NodeStatuses() []NodeStatus {
	if r, ok := c.pool.(StatusReporter); ok {
		return r.Statuses()
	}
	out := make([]NodeStatus, 0, len(c.nodes))
	for _, n := range c.pool.Nodes() {
		out = append(out, NodeStatus{Node: n.Config()})
	}
	return out
}

// Serializers returns the serializer registry of the client.
func (c *Client) Serializers() *SerializerRegistry { return c.serializers }

// Warnings returns the broker receiving server warnings.
func (c *Client) Warnings() *WarningBroker { return c.warnings }

// Close releases the nodes of the client. Calls made after Close return
// ErrClosed. Close is idempotent.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	if p, ok := c.pool.(CloseableNodePool); ok {
		return p.Close(ctx)
	}
	return closeNodes(ctx, c.nodes)
}

func stripReserved(h http.Header) http.Header {
	if h == nil {
		return nil
	}
	out := make(http.Header, len(h))
	for k, vv := range h {
		if isReservedHeader(k) {
			continue
		}
		key := http.CanonicalHeaderKey(k)
		out[key] = append(out[key], vv...)
	}
	return out
}

func isReservedHeader(name string) bool {
	for _, k := range reservedHeaders {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
