package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolReuse(t *testing.T) {
	pool := NewPool(
		func() []int { return make([]int, 0, 8) },
		func(t *[]int) { *t = (*t)[:0] },
	)

	a := pool.Get()
	*a = append(*a, 1, 2, 3)
	pool.Release(a)

	b := pool.Get()
	assert.Equal(t, 0, len(*b))
	assert.Equal(t, 8, cap(*b))

	c := pool.Get()
	pool.Release(b)
	pool.Release(c)

	assert.Equal(t, PoolStats{Creates: 2, Resets: 3, Hits: 1}, pool.Stats())
	assert.Equal(t, "creates: 2, resets: 3, hits: 1", pool.Stats().String())
}

func TestPoolOverflow(t *testing.T) {
	pool := NewPool(func() int { return 0 }, func(*int) {})

	items := []*int{}
	for i := 0; i < _poolSize+10; i++ {
		items = append(items, pool.Get())
	}
	for _, item := range items {
		pool.Release(item)
	}
	for i := 0; i < _poolSize; i++ {
		pool.Get()
	}
	pool.Get()

	stats := pool.Stats()
	assert.Equal(t, _poolSize, stats.Hits)
	assert.Equal(t, _poolSize+11, stats.Creates)
}
