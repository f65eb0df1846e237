package chain

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Node is a pooled connection.
type Node interface {
	Client
	Endpoint() string
	Health(ctx context.Context) error
	Close()
}

// Pool holds one Node per configured endpoint, addressed by index. A single
// lock is held for the whole of every call, so at most one request talks to
// the chain at a time. Waiting for the lock honours the caller's context.
type Pool struct {
	sem       chan struct{}
	nodes     []Node
	endpoints []string
}

// NewPool creates a pool over already-connected nodes
func NewPool(nodes ...Node) *Pool {
	endpoints := make([]string, len(nodes))
	for i, n := range nodes {
		endpoints[i] = n.Endpoint()
	}
	return &Pool{sem: make(chan struct{}, 1), nodes: nodes, endpoints: endpoints}
}

func (p *Pool) acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) release() {
	<-p.sem
}

// DialPool connects to every endpoint in parallel. If any dial fails the
// connections already made are closed.
func DialPool(ctx context.Context, endpoints []string) (*Pool, error) {
	nodes := make([]Node, len(endpoints))

	g, gctx := errgroup.WithContext(ctx)
	for i, endpoint := range endpoints {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			conn, err := Dial(endpoint)
			if err != nil {
				return err
			}
			nodes[i] = conn
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, n := range nodes {
			if n != nil {
				n.Close()
			}
		}
		return nil, err
	}
	return NewPool(nodes...), nil
}

// Len returns the number of slots
func (p *Pool) Len() int {
	p.sem <- struct{}{}
	defer p.release()
	return len(p.nodes)
}

// With runs fn against the node at index while holding the pool lock. It
// returns ctx's error if the lock is not free before ctx is done.
func (p *Pool) With(ctx context.Context, index int, fn func(Client) error) error {
	if err := p.acquire(ctx); err != nil {
		return fmt.Errorf("wait for chain client: %w", err)
	}
	defer p.release()

	if index < 0 || index >= len(p.nodes) {
		return fmt.Errorf("%w: %d (pool size %d)", ErrClientIndex, index, len(p.nodes))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(p.nodes[index])
}

// Check runs a health check on every node in index order. If another call
// holds the pool until ctx is done, every node is reported busy with its
// health unknown.
func (p *Pool) Check(ctx context.Context) []NodeStatus {
	if err := p.acquire(ctx); err != nil {
		statuses := make([]NodeStatus, len(p.endpoints))
		for i, endpoint := range p.endpoints {
			statuses[i] = NodeStatus{Index: i, Endpoint: endpoint, Busy: true, Error: "busy"}
		}
		return statuses
	}
	defer p.release()

	statuses := make([]NodeStatus, len(p.nodes))
	for i, n := range p.nodes {
		statuses[i] = NodeStatus{Index: i, Endpoint: n.Endpoint(), Healthy: true}
		if err := n.Health(ctx); err != nil {
			statuses[i].Healthy = false
			statuses[i].Error = err.Error()
		}
	}
	return statuses
}

// Close closes every node
func (p *Pool) Close() {
	p.sem <- struct{}{}
	defer p.release()

	for _, n := range p.nodes {
		n.Close()
	}
	p.nodes = nil
}
