package utils

import (
	"math/rand"
	"testing"
)

// TestPickDistinct 测试随机抽取不重复下标
func TestPickDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		n := 1 + trial%12
		k := 1 + trial%4
		picks := PickDistinct(rng, n, k)

		wantLen := k
		if k > n {
			wantLen = n
		}
		if len(picks) != wantLen {
			t.Fatalf("PickDistinct(n=%d, k=%d) 返回 %d 个下标", n, k, len(picks))
		}

		seen := make(map[int]bool)
		for _, idx := range picks {
			if idx < 0 || idx >= n {
				t.Fatalf("下标 %d 越界 [0, %d)", idx, n)
			}
			if seen[idx] {
				t.Fatalf("下标 %d 重复: %v", idx, picks)
			}
			seen[idx] = true
		}
	}
}

// TestPickDistinctDeterministic 固定随机源得到固定结果
func TestPickDistinctDeterministic(t *testing.T) {
	got := PickDistinct(fixedRand{0.5}, 5, 3)
	want := []int{2, 3, 1}
	if len(got) != len(want) {
		t.Fatalf("PickDistinct = %v, 期望 %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PickDistinct = %v, 期望 %v", got, want)
		}
	}
}

// TestPickDistinctEmpty 空集合
func TestPickDistinctEmpty(t *testing.T) {
	if got := PickDistinct(fixedRand{0.5}, 0, 3); got != nil {
		t.Errorf("PickDistinct(0, 3) = %v, 期望 nil", got)
	}
	if got := PickDistinct(fixedRand{0.5}, 4, 0); got != nil {
		t.Errorf("PickDistinct(4, 0) = %v, 期望 nil", got)
	}
}

// TestJitterRange 测试抖动范围
func TestJitterRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		j := Jitter(rng, 0.05)
		if j < -0.05 || j >= 0.05 {
			t.Fatalf("Jitter = %v 超出 [-0.05, 0.05)", j)
		}
	}
	for i := 0; i < 1000; i++ {
		v := RandomRange(rng, 0.6, 0.3)
		if v < 0.6 || v >= 0.9 {
			t.Fatalf("RandomRange = %v 超出 [0.6, 0.9)", v)
		}
	}
}
