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
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Measurable defines the interface for transports supporting metrics.
type Measurable interface {
	Metrics() (Metrics, error)
}

// Metrics represents the transport metrics.
type Metrics struct {
	Requests  int         `json:"requests"`
	Failures  int         `json:"failures"`
	Retries   int         `json:"retries"`
	Responses map[int]int `json:"responses"`

	Nodes []NodeMetric `json:"nodes"`
}

// NodeMetric represents metric information for a node.
type NodeMetric struct {
	URL       string     `json:"url"`
	Failures  int        `json:"failures,omitempty"`
	IsDead    bool       `json:"dead,omitempty"`
	DeadSince *time.Time `json:"dead_since,omitempty"`
	DeadUntil *time.Time `json:"dead_until,omitempty"`
}

type metrics struct {
	sync.RWMutex

	requests  int
	failures  int
	retries   int
	responses map[int]int
}

func newMetrics() *metrics {
	return &metrics{responses: make(map[int]int)}
}

func (m *metrics) incRequests() {
	m.Lock()
	m.requests++
	m.Unlock()
}

func (m *metrics) incFailures() {
	m.Lock()
	m.failures++
	m.Unlock()
}

func (m *metrics) incRetries() {
	m.Lock()
	m.retries++
	m.Unlock()
}

func (m *metrics) incResponse(status int) {
	m.Lock()
	m.responses[status]++
	m.Unlock()
}

// Metrics returns the transport metrics.
func (c *Client) Metrics() (Metrics, error) {
	if c.metrics == nil {
		return Metrics{}, errors.New("transport metrics not enabled")
	}

	c.metrics.RLock()
	m := Metrics{
		Requests:  c.metrics.requests,
		Failures:  c.metrics.failures,
		Retries:   c.metrics.retries,
		Responses: make(map[int]int, len(c.metrics.responses)),
	}
	for code, num := range c.metrics.responses {
		m.Responses[code] = num
	}
	c.metrics.RUnlock()

	for _, s := range c.NodeStatuses() {
		nm := NodeMetric{
			URL:      s.Node.Key(),
			IsDead:   s.IsDead,
			Failures: s.Failures,
		}
		if !s.DeadSince.IsZero() {
			since, until := s.DeadSince, s.DeadUntil
			nm.DeadSince = &since
			nm.DeadUntil = &until
		}
		m.Nodes = append(m.Nodes, nm)
	}
	return m, nil
}

// String returns the metrics as a string.
func (m Metrics) String() string {
	var (
		i int
		b strings.Builder
	)
	b.WriteString("{")

	b.WriteString("Requests:")
	fmt.Fprintf(&b, "%d", m.Requests)

	b.WriteString(" Failures:")
	fmt.Fprintf(&b, "%d", m.Failures)

	b.WriteString(" Retries:")
	fmt.Fprintf(&b, "%d", m.Retries)

	if len(m.Responses) > 0 {
		codes := make([]int, 0, len(m.Responses))
		for code := range m.Responses {
			codes = append(codes, code)
		}
		sort.Ints(codes)

		b.WriteString(" Responses: ")
		b.WriteString("[")
		for _, code := range codes {
			fmt.Fprintf(&b, "%d:%d", code, m.Responses[code])
			if i+1 < len(m.Responses) {
				b.WriteString(", ")
			}
			i++
		}
		b.WriteString("]")
	}

	b.WriteString(" Nodes: [")
	for i, n := range m.Nodes {
		b.WriteString(n.String())
		if i+1 < len(m.Nodes) {
			b.WriteString(", ")
		}
	}
	b.WriteString("]")

	b.WriteString("}")
	return b.String()
}

// String returns the node information as a string.
func (nm NodeMetric) String() string {
	var b strings.Builder
	b.WriteString("{")
	b.WriteString(nm.URL)
	if nm.IsDead {
		fmt.Fprintf(&b, " dead=%v", nm.IsDead)
	}
	if nm.Failures > 0 {
		fmt.Fprintf(&b, " failures=%d", nm.Failures)
	}
	if nm.DeadSince != nil {
		fmt.Fprintf(&b, " dead_since=%s", nm.DeadSince.Local().Format(time.Stamp))
	}
	b.WriteString("}")
	return b.String()
}
