package md2card

import (
	"errors"
	"runtime"
	"sync"
)

const (
	// MinPoolSize keeps at least one renderer available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent browsers; each Chrome instance costs
	// roughly 200MB of memory.
	MaxPoolSize = 8

	// cpuDivisor reserves CPU headroom for Chrome child processes.
	cpuDivisor = 2
)

// ServicePool hands out Service instances for parallel card rendering.
// Every service owns a browser, so pool size bounds both concurrency and
// memory. Services come into existence lazily on first acquire.
type ServicePool struct {
	size int
	opts []Option

	idle chan *Service

	mu      sync.Mutex
	all     []*Service
	created int
	closed  bool
}

// NewServicePool creates a pool that will build up to n services, applying
// opts to each one it creates.
func NewServicePool(n int, opts ...Option) *ServicePool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &ServicePool{
		size: n,
		opts: opts,
		all:  make([]*Service, 0, n),
		idle: make(chan *Service, n),
	}
}

// Acquire returns an idle service, creating a new one while the pool is
// below capacity. At capacity it blocks until a release.
func (p *ServicePool) Acquire() (*Service, error) {
	select {
	case svc := <-p.idle:
		return svc, nil
	default:
	}

	if p.reserveSlot() {
		svc, err := NewService(p.opts...)
		p.mu.Lock()
		if err != nil {
			p.created--
			p.mu.Unlock()
			return nil, err
		}
		p.all = append(p.all, svc)
		p.mu.Unlock()
		return svc, nil
	}

	return <-p.idle, nil
}

// reserveSlot claims a creation slot when capacity remains.
func (p *ServicePool) reserveSlot() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.created >= p.size {
		return false
	}
	p.created++
	return true
}

// Release puts a service back into rotation. Releases after Close are
// dropped so they never hit the closed channel.
func (p *ServicePool) Release(svc *Service) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return
	}
	p.idle <- svc
}

// Close shuts down every browser the pool created, joining any errors.
func (p *ServicePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.idle)
	services := p.all
	p.mu.Unlock()

	var errs []error
	for _, svc := range services {
		if err := svc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ServicePool) Size() int {
	return p.size
}

// ResolvePoolSize picks a pool size: an explicit worker count wins,
// otherwise half of GOMAXPROCS clamped to [MinPoolSize, MaxPoolSize].
// GOMAXPROCS reflects container CPU quotas via automaxprocs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
