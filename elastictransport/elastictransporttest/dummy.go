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

// Package elastictransporttest provides an in-memory Node for testing code
// built on top of elastictransport.
package elastictransporttest

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/elastic/elasticsearch-serverless-go/elastictransport"
)

// ErrTimeout is a net.Error reporting a timeout.
var ErrTimeout error = timeoutError{}

// ErrConnectionRefused mimics a dial failure.
var ErrConnectionRefused = errors.New("dial tcp: connection refused")

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

// Response is a canned answer of a DummyNode. When Err is set no HTTP
// response is produced.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
	Err    error
	// Delay postpones the answer; the request context is honoured.
	Delay time.Duration
}

// JSON returns a response with an Elasticsearch product header and a JSON
// body.
func JSON(status int, body string) Response {
	return Response{
		Status: status,
		Header: http.Header{
			"Content-Type":      {"application/json"},
			"X-Elastic-Product": {"Elasticsearch"},
		},
		Body: []byte(body),
	}
}

// Text returns a response with an Elasticsearch product header and a
// plain text body.
func Text(status int, body string) Response {
	return Response{
		Status: status,
		Header: http.Header{
			"Content-Type":      {"text/plain; charset=UTF-8"},
			"X-Elastic-Product": {"Elasticsearch"},
		},
		Body: []byte(body),
	}
}

// Call records a request received by a DummyNode.
type Call struct {
	Method  string
	Target  string
	Header  http.Header
	Body    []byte
	Timeout time.Duration
}

// DummyNode is an elastictransport.Node answering from a list of canned
// responses. Responses are consumed in order and the last one is repeated.
type DummyNode struct {
	config elastictransport.NodeConfig

	mu        sync.Mutex
	responses []Response
	calls     []Call
	closed    bool
}

// NewDummyNode creates a node for cfg. Without responses the node answers
// 200 with an empty JSON object.
func NewDummyNode(cfg elastictransport.NodeConfig, responses ...Response) *DummyNode {
	if len(responses) == 0 {
		responses = []Response{JSON(http.StatusOK, "{}")}
	}
	return &DummyNode{config: cfg, responses: responses}
}

// NodeFactory returns a factory creating DummyNodes answering with
// responses. Every created node is appended to created when not nil.
func NodeFactory(created *[]*DummyNode, responses ...Response) elastictransport.NodeFactory {
	var mu sync.Mutex
	return func(cfg elastictransport.NodeConfig) (elastictransport.Node, error) {
		n := NewDummyNode(cfg, responses...)
		if created != nil {
			mu.Lock()
			*created = append(*created, n)
			mu.Unlock()
		}
		return n, nil
	}
}

// Config implements elastictransport.Node.
func (n *DummyNode) Config() elastictransport.NodeConfig { return n.config }

// Perform implements elastictransport.Node.
func (n *DummyNode) Perform(ctx context.Context, r *elastictransport.NodeRequest) (*elastictransport.ResponseMeta, []byte, error) {
	n.mu.Lock()
	n.calls = append(n.calls, Call{
		Method:  r.Method,
		Target:  r.Target,
		Header:  r.Header.Clone(),
		Body:    append([]byte(nil), r.Body...),
		Timeout: r.Timeout,
	})
	res := n.responses[0]
	if len(n.responses) > 1 {
		n.responses = n.responses[1:]
	}
	n.mu.Unlock()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	if res.Delay > 0 {
		t := time.NewTimer(res.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if res.Err != nil {
		return nil, nil, res.Err
	}

	header := res.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	meta := &elastictransport.ResponseMeta{
		Status:      res.Status,
		Header:      header,
		HTTPVersion: "1.1",
		Duration:    res.Delay,
		Node:        n.config,
	}
	return meta, append([]byte(nil), res.Body...), nil
}

// Close implements elastictransport.Node.
func (n *DummyNode) Close() error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	return nil
}

// Calls returns the requests received so far.
func (n *DummyNode) Calls() []Call {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Call(nil), n.calls...)
}

// Closed reports whether Close was called.
func (n *DummyNode) Closed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}
