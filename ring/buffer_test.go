package ring_test

import (
	"testing"

	"github.com/jsonwc/cst/ring"
)

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -1, -100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%d) did not panic", c)
				}
			}()
			ring.New[int](c)
		}()
	}
}

func TestCountTracksMinOfAddsAndCapacity(t *testing.T) {
	b := ring.New[int](3)
	for i := 1; i <= 5; i++ {
		b.Add(i)
		want := i
		if want > 3 {
			want = 3
		}
		if b.Count() != want {
			t.Fatalf("after %d adds, count = %d, want %d", i, b.Count(), want)
		}
	}
}

func TestNewestIsIndexZero(t *testing.T) {
	b := ring.New[string](3)
	b.Add("a")
	b.Add("b")
	b.Add("c")
	if got := b.At(0); got != "c" {
		t.Errorf("At(0) = %q, want %q", got, "c")
	}
	if got := b.At(1); got != "b" {
		t.Errorf("At(1) = %q, want %q", got, "b")
	}
	if got := b.At(2); got != "a" {
		t.Errorf("At(2) = %q, want %q", got, "a")
	}
}

func TestOldestEvictedAtCapacity(t *testing.T) {
	b := ring.New[int](2)
	b.Add(1)
	b.Add(2)
	b.Add(3) // evicts 1
	if b.Count() != 2 {
		t.Fatalf("count = %d, want 2", b.Count())
	}
	if b.At(0) != 3 || b.At(1) != 2 {
		t.Fatalf("contents = [%d,%d], want [3,2]", b.At(0), b.At(1))
	}
}

func TestLoweringCapacityTrimsOldestAndPreservesOrder(t *testing.T) {
	b := ring.New[int](5)
	for i := 1; i <= 5; i++ {
		b.Add(i)
	}
	// Newest-first contents: [5,4,3,2,1]. Lowering to 3 must drop the two
	// oldest (1, 2), keeping [5,4,3].
	b.SetMaxCapacity(3)
	if b.Count() != 3 {
		t.Fatalf("count after shrink = %d, want 3", b.Count())
	}
	want := []int{5, 4, 3}
	for i, w := range want {
		if got := b.At(i); got != w {
			t.Fatalf("At(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestRaisingCapacityDoesNotDropItems(t *testing.T) {
	b := ring.New[int](2)
	b.Add(1)
	b.Add(2)
	b.SetMaxCapacity(5)
	if b.Count() != 2 {
		t.Fatalf("count = %d, want 2", b.Count())
	}
	b.Add(3)
	b.Add(4)
	b.Add(5)
	if b.Count() != 5 {
		t.Fatalf("count = %d, want 5", b.Count())
	}
}

func TestSetMaxCapacityRejectsNonPositive(t *testing.T) {
	b := ring.New[int](3)
	defer func() {
		if recover() == nil {
			t.Error("SetMaxCapacity(0) did not panic")
		}
	}()
	b.SetMaxCapacity(0)
}

func TestAtOutOfRangePanics(t *testing.T) {
	b := ring.New[int](3)
	b.Add(1)
	defer func() {
		if recover() == nil {
			t.Error("At(5) did not panic")
		}
	}()
	b.At(5)
}

func TestAllReturnsNewestFirstCopy(t *testing.T) {
	b := ring.New[int](3)
	b.Add(1)
	b.Add(2)
	b.Add(3)
	all := b.All()
	if len(all) != 3 || all[0] != 3 || all[1] != 2 || all[2] != 1 {
		t.Fatalf("All() = %v, want [3 2 1]", all)
	}
	all[0] = 999
	if b.At(0) == 999 {
		t.Error("All() result aliases internal storage")
	}
}
