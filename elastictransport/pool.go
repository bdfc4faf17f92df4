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
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	defaultDeadBackoffBase = 1 * time.Second
	defaultDeadBackoffMax  = 30 * time.Second
)

var (
	errNoNodeAvailable = errors.New("no node available")
	errPoolClosed      = errors.New("node pool is closed")
)

// Clock abstracts time for liveness bookkeeping.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Selector picks a node among the live ones.
type Selector interface {
	Select([]Node) (Node, error)
}

// NodePool tracks the nodes of a client and their liveness.
type NodePool interface {
	Next() (Node, error)
	OnSuccess(Node) error
	OnFailure(Node) error
	Nodes() []Node
}

// ConcurrentSafeNodePool marks a NodePool implementation as safe for
// concurrent use. Pools without it are wrapped in a mutex.
type ConcurrentSafeNodePool interface {
	NodePool
	ConcurrentSafe()
}

// StatusReporter is implemented by pools able to report node liveness.
type StatusReporter interface {
	Statuses() []NodeStatus
}

// CloseableNodePool is implemented by pools holding resources.
type CloseableNodePool interface {
	NodePool
	Close(context.Context) error
}

// NodeStatus is a snapshot of a node's liveness.
type NodeStatus struct {
	Node      NodeConfig
	IsDead    bool
	DeadSince time.Time
	DeadUntil time.Time
	Failures  int
}

func (s NodeStatus) String() string {
	return fmt.Sprintf("%s dead=%v failures=%d", s.Node, s.IsDead, s.Failures)
}

type nodeState struct {
	node      Node
	key       string
	isDead    bool
	deadSince time.Time
	deadUntil time.Time
	failures  int
}

func (s *nodeState) status() NodeStatus {
	return NodeStatus{
		Node:      s.node.Config(),
		IsDead:    s.isDead,
		DeadSince: s.deadSince,
		DeadUntil: s.deadUntil,
		Failures:  s.failures,
	}
}

type statusNodePool struct {
	sync.Mutex

	all  []*nodeState
	live []*nodeState
	// dead is ordered by deadUntil, soonest first.
	dead []*nodeState
	byKey map[string]*nodeState

	selector    Selector
	clock       Clock
	backoffBase time.Duration
	backoffMax  time.Duration
	debug       DebuggingLogger
	closed      bool
}

type poolOptions struct {
	selector    Selector
	clock       Clock
	backoffBase time.Duration
	backoffMax  time.Duration
	debug       DebuggingLogger
}

// NewNodePool creates the default pool: round-robin among live nodes,
// exponential backoff for dead ones.
func NewNodePool(nodes []Node, selector Selector) (NodePool, error) {
	return newStatusNodePool(nodes, poolOptions{selector: selector})
}

func newStatusNodePool(nodes []Node, opts poolOptions) (*statusNodePool, error) {
	if len(nodes) == 0 {
		return nil, NewConfigurationError("node pool requires at least one node")
	}
	p := &statusNodePool{
		byKey:       make(map[string]*nodeState, len(nodes)),
		selector:    opts.selector,
		clock:       opts.clock,
		backoffBase: opts.backoffBase,
		backoffMax:  opts.backoffMax,
		debug:       opts.debug,
	}
	if p.selector == nil {
		p.selector = &roundRobinSelector{curr: -1}
	}
	if p.clock == nil {
		p.clock = systemClock{}
	}
	if p.backoffBase <= 0 {
		p.backoffBase = defaultDeadBackoffBase
	}
	if p.backoffMax <= 0 {
		p.backoffMax = defaultDeadBackoffMax
	}
	for _, n := range nodes {
		key := n.Config().Key()
		if _, ok := p.byKey[key]; ok {
			continue
		}
		s := &nodeState{node: n, key: key}
		p.byKey[key] = s
		p.all = append(p.all, s)
		p.live = append(p.live, s)
	}
	return p, nil
}

// ConcurrentSafe implements ConcurrentSafeNodePool.
func (p *statusNodePool) ConcurrentSafe() {}

// Next returns a live node, resurrecting dead nodes whose backoff elapsed.
// When every node is dead, the one closest to resurrection is forced alive.
func (p *statusNodePool) Next() (Node, error) {
	p.Lock()
	defer p.Unlock()

	if p.closed {
		return nil, errPoolClosed
	}

	now := p.clock.Now()
	for len(p.dead) > 0 && !p.dead[0].deadUntil.After(now) {
		p.resurrect(p.dead[0], false)
	}

	if len(p.live) > 0 {
		nodes := make([]Node, len(p.live))
		for i, s := range p.live {
			nodes[i] = s.node
		}
		return p.selector.Select(nodes)
	}

	if len(p.dead) == 0 {
		return nil, errNoNodeAvailable
	}
	s := p.dead[0]
	p.resurrect(s, true)
	return s.node, nil
}

// resurrect moves s to the live list; the failure count is kept so that
// a failing probe backs off further. Callers must hold the lock.
func (p *statusNodePool) resurrect(s *nodeState, forced bool) {
	if p.debug != nil {
		_ = p.debug.Logf("Resurrecting %s; failures=%d forced=%v\n", s.node.Config(), s.failures, forced)
	}
	s.isDead = false
	p.removeDead(s)
	p.live = append(p.live, s)
}

// OnSuccess marks the node alive and resets its failure count.
func (p *statusNodePool) OnSuccess(n Node) error {
	p.Lock()
	defer p.Unlock()

	s, ok := p.byKey[n.Config().Key()]
	if !ok {
		return fmt.Errorf("unknown node %s", n.Config())
	}
	if s.isDead {
		if p.debug != nil {
			_ = p.debug.Logf("Marking %s as live\n", n.Config())
		}
		p.removeDead(s)
		p.live = append(p.live, s)
	}
	s.isDead = false
	s.failures = 0
	s.deadSince = time.Time{}
	s.deadUntil = time.Time{}
	return nil
}

// OnFailure marks the node dead and schedules its resurrection at
// now + base*2^(failures-1), capped at the configured maximum.
func (p *statusNodePool) OnFailure(n Node) error {
	p.Lock()
	defer p.Unlock()

	s, ok := p.byKey[n.Config().Key()]
	if !ok {
		return fmt.Errorf("unknown node %s", n.Config())
	}
	if s.isDead {
		if p.debug != nil {
			_ = p.debug.Logf("Already dead %s\n", n.Config())
		}
		return nil
	}

	now := p.clock.Now()
	s.isDead = true
	s.failures++
	s.deadSince = now
	s.deadUntil = now.Add(p.backoff(s.failures))

	if p.debug != nil {
		_ = p.debug.Logf("Marking %s as dead until %s; failures=%d\n", n.Config(), s.deadUntil.Format(time.RFC3339), s.failures)
	}

	for i, l := range p.live {
		if l == s {
			p.live = append(p.live[:i], p.live[i+1:]...)
			break
		}
	}
	p.dead = append(p.dead, s)
	sort.SliceStable(p.dead, func(i, j int) bool {
		return p.dead[i].deadUntil.Before(p.dead[j].deadUntil)
	})
	return nil
}

func (p *statusNodePool) backoff(failures int) time.Duration {
	if failures < 1 {
		failures = 1
	}
	if failures > 32 {
		return p.backoffMax
	}
	d := p.backoffBase * time.Duration(1<<uint(failures-1))
	if d <= 0 || d > p.backoffMax {
		return p.backoffMax
	}
	return d
}

func (p *statusNodePool) removeDead(s *nodeState) {
	for i, d := range p.dead {
		if d == s {
			p.dead = append(p.dead[:i], p.dead[i+1:]...)
			return
		}
	}
}

// Nodes returns every node in construction order.
func (p *statusNodePool) Nodes() []Node {
	p.Lock()
	defer p.Unlock()
	out := make([]Node, len(p.all))
	for i, s := range p.all {
		out[i] = s.node
	}
	return out
}

// Statuses implements StatusReporter.
func (p *statusNodePool) Statuses() []NodeStatus {
	p.Lock()
	defer p.Unlock()
	out := make([]NodeStatus, len(p.all))
	for i, s := range p.all {
		out[i] = s.status()
	}
	return out
}

// Close closes every node. Closing twice is a no-op.
func (p *statusNodePool) Close(ctx context.Context) error {
	p.Lock()
	if p.closed {
		p.Unlock()
		return nil
	}
	p.closed = true
	nodes := make([]Node, len(p.all))
	for i, s := range p.all {
		nodes[i] = s.node
	}
	p.Unlock()

	return closeNodes(ctx, nodes)
}

func closeNodes(ctx context.Context, nodes []Node) error {
	if ctx == nil {
		ctx = context.Background()
	}
	done := make(chan error, 1)
	go func() {
		var errs []error
		for _, n := range nodes {
			if err := n.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", n.Config(), err))
			}
		}
		done <- errors.Join(errs...)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// synchronizedPool serializes access to a pool which is not marked
// ConcurrentSafe.
type synchronizedPool struct {
	mu   sync.Mutex
	pool NodePool
}

func newSynchronizedPool(pool NodePool) NodePool {
	if pool == nil {
		return nil
	}
	if _, ok := pool.(ConcurrentSafeNodePool); ok {
		return pool
	}
	return &synchronizedPool{pool: pool}
}

func (sp *synchronizedPool) Next() (Node, error) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.pool.Next()
}

func (sp *synchronizedPool) OnSuccess(n Node) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.pool.OnSuccess(n)
}

func (sp *synchronizedPool) OnFailure(n Node) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.pool.OnFailure(n)
}

func (sp *synchronizedPool) Nodes() []Node {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.pool.Nodes()
}

func (sp *synchronizedPool) Statuses() []NodeStatus {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if r, ok := sp.pool.(StatusReporter); ok {
		return r.Statuses()
	}
	var out []NodeStatus
	for _, n := range sp.pool.Nodes() {
		out = append(out, NodeStatus{Node: n.Config()})
	}
	return out
}

func (sp *synchronizedPool) Close(ctx context.Context) error {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if c, ok := sp.pool.(CloseableNodePool); ok {
		return c.Close(ctx)
	}
	return closeNodes(ctx, sp.pool.Nodes())
}

type roundRobinSelector struct {
	sync.Mutex
	curr int
}

// Select returns the node following the last selected one.
func (s *roundRobinSelector) Select(nodes []Node) (Node, error) {
	if len(nodes) == 0 {
		return nil, errNoNodeAvailable
	}
	s.Lock()
	defer s.Unlock()
	s.curr = (s.curr + 1) % len(nodes)
	return nodes[s.curr], nil
}
