package reactive_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoIsLazyAndMemoized(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, 2)

	callCount := 0
	sq := reactive.Memo(rs, func() (int, error) {
		callCount++
		return s.Value() * s.Value(), nil
	})
	assert.Equal(t, 0, callCount)

	assert.Equal(t, 4, value(t, sq))
	assert.Equal(t, 4, value(t, sq))
	assert.Equal(t, 1, callCount)

	require.NoError(t, s.Set(3))
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 9, value(t, sq))
	assert.Equal(t, 2, callCount)
}

func TestMemoChangeSuppression(t *testing.T) {
	rs := newSystem(t)

	// A -> B (parity, custom equal) -> C
	a := reactive.Signal(rs, 1)
	bCallCount := 0
	b := reactive.Memo(rs, func() (int, error) {
		bCallCount++
		return a.Value() % 2, nil
	}, reactive.WithEqual(func(x, y int) bool { return x == y }))

	cCallCount := 0
	c := reactive.Memo(rs, func() (int, error) {
		cCallCount++
		v, err := b.Value()
		return v * 100, err
	})
	assert.Equal(t, 100, value(t, c))

	require.NoError(t, a.Set(3))
	assert.Equal(t, 100, value(t, c))
	assert.Equal(t, 2, bCallCount)
	assert.Equal(t, 1, cCallCount)

	require.NoError(t, a.Set(4))
	assert.Equal(t, 0, value(t, c))
	assert.Equal(t, 3, bCallCount)
	assert.Equal(t, 2, cCallCount)
}

func TestMemoCachesErrors(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, -1)
	boom := errors.New("negative")

	callCount := 0
	m := reactive.Memo(rs, func() (int, error) {
		callCount++
		if s.Value() < 0 {
			return 0, boom
		}
		return s.Value(), nil
	})

	_, err := m.Value()
	assert.ErrorIs(t, err, boom)
	_, err = m.Value()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, callCount)

	require.NoError(t, s.Set(5))
	assert.Equal(t, 5, value(t, m))
	assert.Equal(t, 2, callCount)
}

func TestMemoRecoversPanics(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, 0)

	callCount := 0
	m := reactive.Memo(rs, func() (int, error) {
		callCount++
		return 10 / s.Value(), nil
	}, reactive.WithID[int]("divide"))

	_, err := m.Value()
	var panicErr *reactive.PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "divide", panicErr.ID)

	_, err = m.Value()
	require.Error(t, err)
	assert.Equal(t, 1, callCount)

	require.NoError(t, s.Set(2))
	assert.Equal(t, 5, value(t, m))
}

func TestMemoCycle(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		rs := newSystem(t)

		callCount := 0
		var m *reactive.MemoizedSignal[int]
		m = reactive.Memo(rs, func() (int, error) {
			callCount++
			v, err := m.Value()
			return v + 1, err
		}, reactive.WithID[int]("self"))

		for i := 0; i < 3; i++ {
			_, err := m.Value()
			require.ErrorIs(t, err, reactive.ErrCycleDetected)

			var cycleErr *reactive.CycleDetectedError
			require.ErrorAs(t, err, &cycleErr)
			assert.Equal(t, "self", cycleErr.ID)
		}
		assert.Equal(t, 1, callCount)
	})

	t.Run("transitive", func(t *testing.T) {
		rs := newSystem(t)

		//  A -> B
		//  ^    |
		//  +----+
		var a, b *reactive.MemoizedSignal[int]
		a = reactive.Memo(rs, func() (int, error) {
			return b.Value()
		})
		b = reactive.Memo(rs, func() (int, error) {
			return a.Value()
		})

		_, err := a.Value()
		assert.ErrorIs(t, err, reactive.ErrCycleDetected)
		_, err = b.Value()
		assert.ErrorIs(t, err, reactive.ErrCycleDetected)
	})

	t.Run("swallowed", func(t *testing.T) {
		rs := newSystem(t)

		var m *reactive.MemoizedSignal[int]
		m = reactive.Memo(rs, func() (int, error) {
			m.Value()
			return 42, nil
		})

		_, err := m.Value()
		assert.ErrorIs(t, err, reactive.ErrCycleDetected)
	})

	t.Run("until dependencies change", func(t *testing.T) {
		rs := newSystem(t)
		useSelf := reactive.Signal(rs, true)

		var m *reactive.MemoizedSignal[int]
		m = reactive.Memo(rs, func() (int, error) {
			if useSelf.Value() {
				return m.Value()
			}
			return 7, nil
		})

		_, err := m.Value()
		assert.ErrorIs(t, err, reactive.ErrCycleDetected)
		_, err = m.Value()
		assert.ErrorIs(t, err, reactive.ErrCycleDetected)

		require.NoError(t, useSelf.Set(false))
		assert.Equal(t, 7, value(t, m))
	})
}

func TestMemoUntracked(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, 1)
	inner := reactive.Memo(rs, func() (int, error) {
		return s.Value() + 1, nil
	})

	callCount := 0
	outer := reactive.Memo(rs, func() (int, error) {
		callCount++
		return inner.Untracked()
	})
	assert.Equal(t, 2, value(t, outer))

	require.NoError(t, s.Set(5))
	assert.Equal(t, 2, value(t, outer))
	assert.Equal(t, 6, value(t, inner))
	assert.Equal(t, 1, callCount)
}

func TestMemoOnChange(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, 1)

	var seen []string
	m := reactive.Memo(rs, func() (string, error) {
		if s.Value() > 10 {
			return "big", nil
		}
		return "small", nil
	}, reactive.WithOnChange(func(v string) {
		seen = append(seen, v)
	}))

	value(t, m)
	require.NoError(t, s.Set(2))
	value(t, m)
	require.NoError(t, s.Set(20))
	value(t, m)
	assert.Equal(t, []string{"small", "big"}, seen)
}

func TestMemoDispose(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, 1)

	callCount := 0
	m := reactive.Memo(rs, func() (int, error) {
		callCount++
		return s.Value(), nil
	})
	assert.Equal(t, 1, value(t, m))

	m.Dispose()
	require.NoError(t, s.Set(2))
	assert.Equal(t, 1, value(t, m))
	assert.Equal(t, 1, callCount)
}
