package qvec

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInts(t *testing.T, capacity int, xs ...int) *Vector[int] {
	t.Helper()
	v, err := New[int](capacity)
	require.NoError(t, err)
	require.NoError(t, v.Append(xs...))
	return v
}

func TestVector(t *testing.T) {
	t.Run("DoubleGrowthScenario", func(t *testing.T) {
		v, err := New[int32](2, WithPolicy(GrowDouble))
		require.NoError(t, err)

		require.NoError(t, v.AddLast(0xA))
		require.NoError(t, v.AddLast(0xB))
		assert.Equal(t, 2, v.Cap())
		require.NoError(t, v.AddLast(0xC))

		assert.Equal(t, 4, v.Cap())
		assert.Equal(t, 3, v.Len())

		x, err := v.GetAt(0)
		require.NoError(t, err)
		assert.Equal(t, int32(0xA), x)

		x, err = v.GetAt(2)
		require.NoError(t, err)
		assert.Equal(t, int32(0xC), x)
	})

	t.Run("ExactPopFirstScenario", func(t *testing.T) {
		v, err := New[int32](4, WithPolicy(GrowExact))
		require.NoError(t, err)

		for _, x := range []int32{7, 8, 9} {
			require.NoError(t, v.AddLast(x))
		}

		x, err := v.PopFirst()
		require.NoError(t, err)
		assert.Equal(t, int32(7), x)
		assert.Equal(t, 2, v.Len())
		assert.Equal(t, []int32{8, 9}, v.ToArray())
	})

	t.Run("AddFirstAndAt", func(t *testing.T) {
		v := newInts(t, 0)

		require.NoError(t, v.AddLast(2))
		require.NoError(t, v.AddFirst(0))
		require.NoError(t, v.AddAt(1, 1))
		require.NoError(t, v.AddAt(3, 3))

		assert.Equal(t, []int{0, 1, 2, 3}, v.ToArray())

		for i := 0; i < v.Len(); i++ {
			x, err := v.GetAt(i)
			require.NoError(t, err)
			assert.Equal(t, i, x)
		}
	})

	t.Run("AddAtOutOfRange", func(t *testing.T) {
		v := newInts(t, 4, 1, 2)

		for _, i := range []int{-1, 3, 100} {
			err := v.AddAt(i, 9)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)

			var oor *ErrIndexOutOfRange
			require.True(t, errors.As(err, &oor))
			assert.Equal(t, i, oor.Index)
			assert.Equal(t, 2, oor.Len)
		}
		assert.Equal(t, []int{1, 2}, v.ToArray())
	})

	t.Run("GetFirstLast", func(t *testing.T) {
		v := newInts(t, 0, 4, 5, 6)

		x, err := v.GetFirst()
		require.NoError(t, err)
		assert.Equal(t, 4, x)

		x, err = v.GetLast()
		require.NoError(t, err)
		assert.Equal(t, 6, x)
	})

	t.Run("NegativeIndexRejected", func(t *testing.T) {
		v := newInts(t, 0, 1, 2, 3)

		_, err := v.GetAt(-1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.ErrorIs(t, v.SetAt(-1, 0), ErrInvalidArgument)
		assert.ErrorIs(t, v.RemoveAt(-1), ErrInvalidArgument)
		_, err = v.PopAt(-2)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, []int{1, 2, 3}, v.ToArray())
	})

	t.Run("EmptyVector", func(t *testing.T) {
		v := newInts(t, 0)

		_, err := v.GetFirst()
		assert.ErrorIs(t, err, ErrEmpty)
		_, err = v.GetLast()
		assert.ErrorIs(t, err, ErrEmpty)
		_, err = v.GetAt(0)
		assert.ErrorIs(t, err, ErrEmpty)
		_, err = v.PopFirst()
		assert.ErrorIs(t, err, ErrEmpty)
		_, err = v.PopLast()
		assert.ErrorIs(t, err, ErrEmpty)
		assert.ErrorIs(t, v.RemoveFirst(), ErrEmpty)
		assert.ErrorIs(t, v.RemoveLast(), ErrEmpty)
		assert.ErrorIs(t, v.SetFirst(1), ErrEmpty)
		_, err = v.Ref(0)
		assert.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("SetInPlace", func(t *testing.T) {
		v := newInts(t, 3, 1, 2, 3)

		require.NoError(t, v.SetFirst(10))
		require.NoError(t, v.SetLast(30))
		require.NoError(t, v.SetAt(1, 20))
		assert.Equal(t, []int{10, 20, 30}, v.ToArray())

		assert.ErrorIs(t, v.SetAt(3, 40), ErrInvalidArgument)
		assert.Equal(t, 3, v.Cap())
		assert.Equal(t, 3, v.Len())
	})

	t.Run("SetData", func(t *testing.T) {
		v, err := New[*int](2)
		require.NoError(t, err)

		a, b, c := 1, 2, 3
		require.NoError(t, v.SetData([]*int{&a, &b, &c}))
		assert.Equal(t, 3, v.Len())
		assert.GreaterOrEqual(t, v.Cap(), 3)

		require.NoError(t, v.SetData([]*int{&c}))
		assert.Equal(t, 1, v.Len())
		x, err := v.GetFirst()
		require.NoError(t, err)
		assert.Same(t, &c, x)

		// vacated slots must not keep references alive
		assert.Nil(t, v.data[1])
		assert.Nil(t, v.data[2])

		require.NoError(t, v.SetData(nil))
		assert.Equal(t, 0, v.Len())
	})

	t.Run("PopAndRemove", func(t *testing.T) {
		v := newInts(t, 0, 0, 1, 2, 3, 4, 5)

		x, err := v.PopLast()
		require.NoError(t, err)
		assert.Equal(t, 5, x)

		x, err = v.PopAt(2)
		require.NoError(t, err)
		assert.Equal(t, 2, x)

		require.NoError(t, v.RemoveFirst())
		require.NoError(t, v.RemoveLast())
		assert.Equal(t, []int{1, 3}, v.ToArray())

		require.NoError(t, v.RemoveAt(1))
		assert.Equal(t, []int{1}, v.ToArray())

		assert.ErrorIs(t, v.RemoveAt(1), ErrInvalidArgument)
		_, err = v.PopAt(5)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("RemovedSlotsAreZeroed", func(t *testing.T) {
		v, err := New[*int](4)
		require.NoError(t, err)

		a, b := 1, 2
		require.NoError(t, v.Append(&a, &b))
		_, err = v.PopFirst()
		require.NoError(t, err)

		assert.Same(t, &b, v.data[0])
		assert.Nil(t, v.data[1])
	})

	t.Run("RemoveSet", func(t *testing.T) {
		v := newInts(t, 0, 0, 1, 2, 3, 4, 5)

		removed := v.RemoveSet(roaring.BitmapOf(0, 2, 5, 100))
		assert.Equal(t, 3, removed)
		assert.Equal(t, []int{1, 3, 4}, v.ToArray())
		assert.Equal(t, 0, v.data[3])

		assert.Equal(t, 0, v.RemoveSet(nil))
		assert.Equal(t, 0, v.RemoveSet(roaring.New()))
		assert.Equal(t, 0, v.RemoveSet(roaring.BitmapOf(3, 4)))
		assert.Equal(t, 3, v.Len())

		assert.Equal(t, 3, v.RemoveSet(roaring.BitmapOf(0, 1, 2)))
		assert.Equal(t, 0, v.Len())
	})

	t.Run("Resize", func(t *testing.T) {
		v := newInts(t, 2, 1, 2, 3)

		err := v.Resize(2)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, []int{1, 2, 3}, v.ToArray())

		require.NoError(t, v.Resize(10))
		assert.Equal(t, 10, v.Cap())
		assert.Equal(t, []int{1, 2, 3}, v.ToArray())

		require.NoError(t, v.Resize(3))
		assert.Equal(t, 3, v.Cap())
		assert.Equal(t, []int{1, 2, 3}, v.ToArray())
	})

	t.Run("ReverseIsInvolution", func(t *testing.T) {
		v := newInts(t, 0, 1, 2, 3, 4, 5)

		v.Reverse()
		assert.Equal(t, []int{5, 4, 3, 2, 1}, v.ToArray())
		v.Reverse()
		assert.Equal(t, []int{1, 2, 3, 4, 5}, v.ToArray())

		empty := newInts(t, 0)
		empty.Reverse()
		assert.Equal(t, 0, empty.Len())
	})

	t.Run("Slice", func(t *testing.T) {
		v := newInts(t, 0, 0, 1, 2, 3, 4, 5)

		s, err := v.Slice(1, 4)
		require.NoError(t, err)
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []int{1, 2, 3}, s.ToArray())
		assert.Equal(t, v.Policy(), s.Policy())

		require.NoError(t, s.SetAt(0, 100))
		require.NoError(t, s.AddLast(200))
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, v.ToArray())

		empty, err := v.Slice(2, 2)
		require.NoError(t, err)
		assert.Equal(t, 0, empty.Len())

		for _, r := range [][2]int{{4, 2}, {0, 7}, {-1, 2}} {
			_, err := v.Slice(r[0], r[1])
			assert.ErrorIs(t, err, ErrInvalidArgument, "range %v", r)
		}
	})

	t.Run("BorrowedViews", func(t *testing.T) {
		v := newInts(t, 8, 1, 2, 3)

		p, err := v.Ref(1)
		require.NoError(t, err)
		*p = 20

		d := v.Data()
		assert.Len(t, d, 3)
		assert.Equal(t, 3, cap(d))
		d[2] = 30

		assert.Equal(t, []int{1, 20, 30}, v.ToArray())

		arr := v.ToArray()
		arr[0] = 100
		x, _ := v.GetFirst()
		assert.Equal(t, 1, x)
	})

	t.Run("ClearKeepsCapacity", func(t *testing.T) {
		v := newInts(t, 4, 1, 2, 3)

		v.Clear()
		assert.Equal(t, 0, v.Len())
		assert.Equal(t, 4, v.Cap())
		assert.Equal(t, []int{0, 0, 0, 0}, v.data)

		require.NoError(t, v.AddLast(9))
		assert.Equal(t, []int{9}, v.ToArray())
	})

	t.Run("FreeAndReuse", func(t *testing.T) {
		v := newInts(t, 4, 1, 2)

		v.Free()
		assert.Equal(t, 0, v.Len())
		assert.Equal(t, 0, v.Cap())
		assert.Equal(t, int64(0), v.Reserved())

		require.NoError(t, v.AddLast(5))
		assert.Equal(t, []int{5}, v.ToArray())
	})

	t.Run("NegativeCapacity", func(t *testing.T) {
		_, err := New[int](-1)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("LockIsNoop", func(t *testing.T) {
		v := newInts(t, 0, 1)

		inner := v.Lock()
		assert.Same(t, v, inner)
		require.NoError(t, inner.AddLast(2))
		v.Unlock()

		assert.Equal(t, 2, v.Len())
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "[]", newInts(t, 0).String())
		assert.Equal(t, "[1 2 3]", newInts(t, 0, 1, 2, 3).String())

		s, err := New[string](0)
		require.NoError(t, err)
		require.NoError(t, s.Append("a", "b"))
		assert.Equal(t, "[a b]", s.String())
	})
}

func TestGrowthPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		initCap int
		adds    int
		want    []int // capacity after each add
	}{
		{"double from zero", GrowDouble, 0, 5, []int{1, 2, 4, 4, 8}},
		{"double", GrowDouble, 3, 7, []int{3, 3, 3, 6, 6, 6, 12}},
		{"linear", GrowLinear, 3, 7, []int{3, 3, 3, 6, 6, 6, 9}},
		{"linear from zero", GrowLinear, 0, 3, []int{1, 2, 3}},
		{"exact", GrowExact, 2, 4, []int{2, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New[int](tt.initCap, WithPolicy(tt.policy))
			require.NoError(t, err)

			got := make([]int, 0, tt.adds)
			for i := 0; i < tt.adds; i++ {
				require.NoError(t, v.AddLast(i))
				got = append(got, v.Cap())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrowthPolicy_Bulk(t *testing.T) {
	tests := []struct {
		policy Policy
		want   int
	}{
		{GrowDouble, 10},
		{GrowLinear, 12},
		{GrowExact, 10},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			v, err := New[int](4, WithPolicy(tt.policy))
			require.NoError(t, err)

			require.NoError(t, v.Append(0, 1, 2, 3, 4, 5, 6, 7, 8, 9))
			assert.Equal(t, tt.want, v.Cap())
			assert.Equal(t, 10, v.Len())
		})
	}
}

func TestFlags(t *testing.T) {
	assert.Equal(t, GrowDouble, Flags(0).Policy())
	assert.Equal(t, GrowDouble, ThreadSafe.Policy())
	assert.Equal(t, GrowLinear, (ThreadSafe | ResizeLinear).Policy())
	assert.Equal(t, GrowExact, ResizeExact.Policy())
	assert.Equal(t, GrowLinear, (ResizeLinear | ResizeExact).Policy())
	assert.Equal(t, GrowDouble, (ResizeDouble | ResizeExact).Policy())

	v, err := New[int](2, WithFlags(ResizeExact))
	require.NoError(t, err)
	assert.Equal(t, GrowExact, v.Policy())

	assert.Equal(t, "Policy(9)", Policy(9).String())
}

func TestVector_FIFOOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	v := newInts(t, 1)
	var want []int
	next, added, removed := 0, 0, 0

	for step := 0; step < 5000; step++ {
		if rng.IntN(3) != 0 || len(want) == 0 {
			require.NoError(t, v.AddLast(next))
			want = append(want, next)
			next++
			added++
			continue
		}
		x, err := v.PopFirst()
		require.NoError(t, err)
		assert.Equal(t, want[0], x)
		want = want[1:]
		removed++
	}

	assert.Equal(t, added-removed, v.Len())
	assert.Equal(t, want, v.ToArray())
}

func TestVector_AddAtGetAtRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	v, err := New[[4]byte](0, WithPolicy(GrowLinear))
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		idx := rng.IntN(v.Len() + 1)
		payload := [4]byte{byte(i), byte(i >> 8), 0xAB, 0xCD}

		require.NoError(t, v.AddAt(idx, payload))
		got, err := v.GetAt(idx)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	}
	assert.Equal(t, 500, v.Len())
}

func BenchmarkVector_AddLast(b *testing.B) {
	for _, p := range []Policy{GrowDouble, GrowLinear} {
		b.Run(p.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				v, _ := New[int](16, WithPolicy(p))
				for j := 0; j < 1024; j++ {
					_ = v.AddLast(j)
				}
			}
		})
	}
}

func BenchmarkVector_AddFirst(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v, _ := New[int](1024)
		for j := 0; j < 1024; j++ {
			_ = v.AddFirst(j)
		}
	}
}
