package sandbox

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hkuds/sandgate/internal/security"
)

// Pool manages a pool of pre-warmed, gate-validated sandbox containers.
//
// Every sandbox in the pool shares one configuration, so the security gate
// runs once at pool construction; a blocked configuration fails there rather
// than on first acquire.
type Pool struct {
	config    SandboxConfig
	available chan *Sandbox
	maxSize   int
	created   atomic.Int32
	mu        sync.Mutex
	closed    atomic.Bool
}

// NewPool creates a sandbox pool with the given configuration and maximum
// size. The configuration is validated by the security gate before the pool
// is created.
func NewPool(cfg SandboxConfig, maxSize int) (*Pool, error) {
	if maxSize <= 0 {
		maxSize = 1
	}

	cfg.ApplyDefaults()
	if err := security.ValidateConfig(cfg.SecurityConfig()); err != nil {
		return nil, err
	}

	return &Pool{
		config:    cfg,
		available: make(chan *Sandbox, maxSize),
		maxSize:   maxSize,
	}, nil
}

// Warmup pre-warms the pool with the specified number of sandboxes.
// This is useful to avoid cold-start latency on the first few requests.
func (p *Pool) Warmup(ctx context.Context, count int) error {
	if count <= 0 {
		return nil
	}
	if count > p.maxSize {
		count = p.maxSize
	}

	var wg sync.WaitGroup
	errCh := make(chan error, count)

	for i := 0; i < count; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sb, err := p.createSandbox(ctx)
			if err != nil {
				errCh <- err
				return
			}
			select {
			case p.available <- sb:
				// Added to pool
			default:
				// Pool is full, close this sandbox
				_ = sb.Close()
				p.created.Add(-1)
			}
		}()
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}

	return nil
}

// Acquire gets a sandbox from the pool.
// If no sandbox is available, it creates a new one (up to maxSize).
// The caller must call Release() when done with the sandbox.
func (p *Pool) Acquire(ctx context.Context) (*Sandbox, error) {
	if p.closed.Load() {
		return nil, fmt.Errorf("pool is closed")
	}

	select {
	case sb := <-p.available:
		if sb.IsRunning() {
			return sb, nil
		}
		// Sandbox stopped unexpectedly, clean up and create a new one
		_ = sb.Close()
		p.created.Add(-1)
	default:
		// No sandbox available
	}

	p.mu.Lock()
	currentCount := int(p.created.Load())
	if currentCount >= p.maxSize {
		p.mu.Unlock()
		// Wait for one to become available
		select {
		case sb := <-p.available:
			if sb.IsRunning() {
				return sb, nil
			}
			_ = sb.Close()
			p.created.Add(-1)
			return p.createSandbox(ctx)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	p.mu.Unlock()

	return p.createSandbox(ctx)
}

// createSandbox creates a new sandbox and starts it.
func (p *Pool) createSandbox(ctx context.Context) (*Sandbox, error) {
	sb, err := New(p.config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sandbox: %w", err)
	}

	if err := sb.Start(ctx); err != nil {
		_ = sb.Close()
		return nil, fmt.Errorf("failed to start sandbox: %w", err)
	}

	p.created.Add(1)
	return sb, nil
}

// Release returns a sandbox to the pool for reuse.
// If the sandbox is not running or the pool is full, it will be closed.
func (p *Pool) Release(s *Sandbox) {
	if s == nil {
		return
	}

	if p.closed.Load() || !s.IsRunning() {
		_ = s.Close()
		p.created.Add(-1)
		return
	}

	select {
	case p.available <- s:
		// Returned to pool
	default:
		// Pool is full, close the sandbox
		_ = s.Close()
		p.created.Add(-1)
	}
}

// ReleaseWithReset returns a sandbox to the pool after resetting it to a
// fresh container, ensuring a clean state for the next user.
func (p *Pool) ReleaseWithReset(ctx context.Context, s *Sandbox) {
	if s == nil {
		return
	}

	if p.closed.Load() {
		_ = s.Close()
		p.created.Add(-1)
		return
	}

	if err := s.Reset(ctx); err != nil {
		_ = s.Close()
		p.created.Add(-1)
		return
	}

	p.Release(s)
}

// Size returns the number of sandboxes currently available in the pool.
func (p *Pool) Size() int {
	return len(p.available)
}

// Close shuts the pool down and closes every pooled sandbox.
func (p *Pool) Close() error {
	if p.closed.Swap(true) {
		return nil
	}

	for {
		select {
		case sb := <-p.available:
			_ = sb.Close()
			p.created.Add(-1)
		default:
			return nil
		}
	}
}
