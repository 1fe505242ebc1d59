package reactive_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/delaneyj/signalgraph/reactive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalSetAndValue(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, 1)
	assert.Equal(t, 1, s.Value())

	require.NoError(t, s.Set(2))
	assert.Equal(t, 2, s.Value())

	require.NoError(t, s.Update(func(v int) int { return v * 10 }))
	assert.Equal(t, 20, s.Value())
}

func TestSignalEqualSetIsNoop(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, "a")

	callCount := 0
	m := reactive.Memo(rs, func() (string, error) {
		callCount++
		return s.Value() + "!", nil
	})
	assert.Equal(t, "a!", value(t, m))

	require.NoError(t, s.Set("a"))
	assert.Equal(t, "a!", value(t, m))
	assert.Equal(t, 1, callCount)
}

func TestSignalOnChange(t *testing.T) {
	rs := newSystem(t)

	var seen []int
	s := reactive.Signal(rs, 0, reactive.WithOnChange(func(v int) {
		seen = append(seen, v)
	}))

	require.NoError(t, s.Set(1))
	require.NoError(t, s.Set(1))
	require.NoError(t, s.Update(func(v int) int { return v + 1 }))
	require.NoError(t, s.Mutate(func(v *int) {}))
	assert.Equal(t, []int{1, 2, 2}, seen)
}

func TestSignalCustomEqual(t *testing.T) {
	rs := newSystem(t)

	// only the tens digit matters
	s := reactive.Signal(rs, 10, reactive.WithEqual(func(a, b int) bool {
		return a/10 == b/10
	}))
	require.NoError(t, s.Set(15))
	assert.Equal(t, 10, s.Value())

	require.NoError(t, s.Set(21))
	assert.Equal(t, 21, s.Value())
}

func TestSignalMutateAlwaysNotifies(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, []string{"a"})

	length := reactive.Memo(rs, func() (int, error) {
		return len(s.Value()), nil
	})
	assert.Equal(t, 1, value(t, length))

	require.NoError(t, s.Mutate(func(v *[]string) {
		*v = append(*v, "b")
	}))
	assert.Equal(t, 2, value(t, length))
	assert.Equal(t, []string{"a", "b"}, s.Value())
}

func TestSignalReferenceValuesAlwaysPropagate(t *testing.T) {
	rs := newSystem(t)
	items := []int{1, 2}
	s := reactive.Signal(rs, items)

	callCount := 0
	m := reactive.Memo(rs, func() (int, error) {
		callCount++
		return len(s.Value()), nil
	})
	value(t, m)

	require.NoError(t, s.Set(items))
	value(t, m)
	assert.Equal(t, 2, callCount)
}

func TestSignalReadonly(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, 1, reactive.WithID[int]("count"))
	ro := s.Readonly()

	assert.Same(t, ro, s.Readonly())
	assert.Equal(t, "count", ro.ID())
	assert.Equal(t, reactive.KindReadonly, ro.Kind())

	doubled := reactive.Memo(rs, func() (int, error) {
		return ro.Value() * 2, nil
	})
	assert.Equal(t, 2, value(t, doubled))

	require.NoError(t, s.Set(4))
	assert.Equal(t, 4, ro.Value())
	assert.Equal(t, 8, value(t, doubled))
}

func TestSignalUntracked(t *testing.T) {
	rs := newSystem(t)
	a := reactive.Signal(rs, 1)
	b := reactive.Signal(rs, 10)

	callCount := 0
	sum := reactive.Memo(rs, func() (int, error) {
		callCount++
		return a.Value() + b.Untracked(), nil
	})
	assert.Equal(t, 11, value(t, sum))

	require.NoError(t, b.Set(20))
	assert.Equal(t, 11, value(t, sum))
	assert.Equal(t, 1, callCount)

	require.NoError(t, a.Set(2))
	assert.Equal(t, 22, value(t, sum))
	assert.Equal(t, 2, callCount)
}

func TestUntrackedBlock(t *testing.T) {
	rs := newSystem(t)
	src := reactive.Signal(rs, 0)

	c := reactive.Memo(rs, func() (int, error) {
		return reactive.Untracked(rs, src.Value), nil
	})
	assert.Equal(t, 0, value(t, c))

	require.NoError(t, src.Set(1))
	assert.Equal(t, 0, value(t, c))
}

func TestSignalWriteInsideMemoIsRejected(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, 0, reactive.WithID[int]("target"))

	m := reactive.Memo(rs, func() (int, error) {
		return 0, s.Set(1)
	})

	_, err := m.Value()
	require.Error(t, err)
	assert.True(t, errors.Is(err, reactive.ErrWriteNotAllowed))

	var writeErr *reactive.WriteNotAllowedError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "target", writeErr.ID)
	assert.Equal(t, 0, s.Value())
}

func TestSignalLogsChanges(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rs := reactive.CreateReactiveSystem(reactive.WithLogger(logger))

	s := reactive.Signal(rs, 1, reactive.WithID[int]("answer"), reactive.WithLog[int]())
	require.NoError(t, s.Set(42))

	assert.Contains(t, buf.String(), "signal changed")
	assert.Contains(t, buf.String(), "id=answer")
	assert.Contains(t, buf.String(), "value=42")
}

func TestKinds(t *testing.T) {
	rs := newSystem(t)
	s := reactive.Signal(rs, 1)
	m := reactive.Memo(rs, func() (int, error) { return s.Value(), nil })
	p := reactive.Plain(func() int { return 3 })

	assert.True(t, reactive.IsSignal[int](s))
	assert.True(t, reactive.IsSignal[int](s.Readonly()))
	assert.True(t, reactive.IsSignal[int](m))
	assert.False(t, reactive.IsSignal(p))
	assert.False(t, reactive.IsSignal[int](nil))

	readers := []reactive.Reader[int]{s, s.Readonly(), m, p, reactive.Static(4)}
	var got []int
	for _, r := range readers {
		v, err := r.Read()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int{1, 1, 1, 3, 4}, got)
	assert.Equal(t, "memo", m.Kind().String())
}
