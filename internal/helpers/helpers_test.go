package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	a := make([]int, 0, 5)
	b := append(a[:0], 1, 2, 3, 4)
	c := append(a[:0], 4, 5, 6)

	assert.Equal(t, []int{}, a)
	assert.Equal(t, []int{4, 5, 6, 4}, b)
	assert.Equal(t, []int{4, 5, 6}, c)
}

func TestSliceHelpers(t *testing.T) {
	xs := []int{3, 1, 4, 1, 5}

	assert.Equal(t, []string{"3", "1", "4", "1", "5"}, MapSlice(xs, func(x int) string {
		return string(rune('0' + x))
	}))
	assert.Equal(t, []int{4, 5}, FilterSlice(xs, func(x int) bool { return x > 3 }))
	assert.Equal(t, 14, ReduceSlice(xs, 0, func(acc int, x int) int { return acc + x }))
}

func TestOptional(t *testing.T) {
	assert.Equal(t, 7, Empty[int]().ValueOr(7))
	assert.Equal(t, 2, Some(2).ValueOr(7))
}

func TestReverseBits(t *testing.T) {
	assert.Equal(t, uint8(0b10000000), ReverseBits(0b00000001))
	assert.Equal(t, uint8(0b00001101), ReverseBits(0b10110000))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", Indent("a\nb\n", "  "))
}
