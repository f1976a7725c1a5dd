package utils

import (
	"sync/atomic"
	"testing"
)

func TestMultiThreadCoversRange(t *testing.T) {
	cases := []struct {
		start, end, ops, threads int
	}{
		{0, 0, 1, 4},
		{0, 1, 1, 4},
		{3, 10, 2, 4},
		{0, 100, 7, 3},
		{0, 100, 1, 0},
		{5, 6, 0, 1},
	}

	for _, c := range cases {
		hits := make([]int32, c.end)
		MultiThread(c.start, c.end, func(i int) {
			atomic.AddInt32(&hits[i], 1)
		}, c.ops, c.threads)

		for i := range hits {
			want := int32(0)
			if i >= c.start {
				want = 1
			}

			if hits[i] != want {
				t.Errorf("MultiThread(%d, %d, _, %d, %d): index %d called %d times, want %d",
					c.start, c.end, c.ops, c.threads, i, hits[i], want)
			}
		}
	}
}

func TestMultiThreadSumIsOrderIndependent(t *testing.T) {
	const n = 1000
	terms := make([]float64, n)
	MultiThread(0, n, func(i int) {
		terms[i] = float64(i) * 0.5
	}, 3, 8)

	var sum float64
	for _, v := range terms {
		sum += v
	}

	if want := 0.5 * n * (n - 1) / 2; sum != want {
		t.Errorf("sum = %v, want %v", sum, want)
	}
}
