package helpers

import (
	"fmt"
	"sync"
)

type PoolStats struct {
	Creates int
	Resets  int
	Hits    int
}

func (s PoolStats) String() string {
	return fmt.Sprint("creates: ", s.Creates, ", resets: ", s.Resets, ", hits: ", s.Hits)
}

const _poolSize = 256

// Pool hands out reusable buffers. Released buffers beyond the ring capacity
// are dropped for the garbage collector.
type Pool[T any] struct {
	create func() T
	reset  func(*T)

	available  [_poolSize]*T
	startIndex int
	count      int

	stats PoolStats
	lock  sync.Mutex
}

func NewPool[T any](create func() T, reset func(*T)) *Pool[T] {
	return &Pool[T]{create: create, reset: reset}
}

func (p *Pool[T]) Get() *T {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.count > 0 {
		result := p.available[p.startIndex]
		p.available[p.startIndex] = nil
		p.startIndex = (p.startIndex + 1) % _poolSize
		p.count--
		p.stats.Hits++
		return result
	}

	p.stats.Creates++
	result := p.create()
	return &result
}

func (p *Pool[T]) Release(t *T) {
	p.reset(t)

	p.lock.Lock()
	defer p.lock.Unlock()

	p.stats.Resets++
	if p.count == _poolSize {
		return
	}
	p.available[(p.startIndex+p.count)%_poolSize] = t
	p.count++
}

func (p *Pool[T]) Stats() PoolStats {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.stats
}
