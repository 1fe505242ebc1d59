package reactive_test

import (
	"math"
	"testing"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/stretchr/testify/assert"
)

func TestDefaultEquals(t *testing.T) {
	type point struct{ X, Y int }
	type tagged struct {
		Name string
		Tags []string
	}
	n := 1
	p := &n

	assert.True(t, reactive.DefaultEquals(1, 1))
	assert.False(t, reactive.DefaultEquals(1, 2))
	assert.True(t, reactive.DefaultEquals("a", "a"))
	assert.True(t, reactive.DefaultEquals(point{1, 2}, point{1, 2}))

	t.Run("references are never equal", func(t *testing.T) {
		assert.False(t, reactive.DefaultEquals(p, p))
		assert.False(t, reactive.DefaultEquals([]int{1}, []int{1}))
		assert.False(t, reactive.DefaultEquals(map[string]int{}, map[string]int{}))
		assert.False(t, reactive.DefaultEquals(tagged{Name: "a"}, tagged{Name: "a"}))
	})

	t.Run("nil references are equal", func(t *testing.T) {
		var a, b []int
		assert.True(t, reactive.DefaultEquals(a, b))
		var x, y *int
		assert.True(t, reactive.DefaultEquals(x, y))
		var i, j any
		assert.True(t, reactive.DefaultEquals(i, j))
	})

	t.Run("interfaces compare dynamic values", func(t *testing.T) {
		assert.True(t, reactive.DefaultEquals[any](1, 1))
		assert.False(t, reactive.DefaultEquals[any](1, "1"))
		assert.False(t, reactive.DefaultEquals[any](int32(1), int64(1)))
		assert.False(t, reactive.DefaultEquals[any]([]int{}, []int{}))
		assert.False(t, reactive.DefaultEquals[any](nil, 1))
	})

	t.Run("floats use same value semantics", func(t *testing.T) {
		assert.True(t, reactive.DefaultEquals(math.NaN(), math.NaN()))
		assert.False(t, reactive.DefaultEquals(0.0, math.Copysign(0, -1)))
		assert.True(t, reactive.DefaultEquals(1.5, 1.5))
	})

	assert.True(t, reactive.StrictEquals(p, p))
}
