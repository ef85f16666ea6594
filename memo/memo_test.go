package memo

import (
	"errors"
	"testing"

	"github.com/unkn0wn-root/lrudisk"
)

func newIntCache(t *testing.T) lrudisk.Cache[string, int] {
	t.Helper()
	cc, err := lrudisk.New(lrudisk.Options[string, int]{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return cc
}

func TestFunc1CachesPerArgument(t *testing.T) {
	cc := newIntCache(t)
	calls := 0
	double := Func1(cc, "double", func(n int) (int, error) {
		calls++
		return n * 2, nil
	})

	for _, n := range []int{3, 3, 5, 3, 5} {
		got, err := double(n)
		if err != nil {
			t.Fatalf("double(%d): %v", n, err)
		}
		if got != n*2 {
			t.Fatalf("double(%d) = %d", n, got)
		}
	}
	if calls != 2 {
		t.Fatalf("underlying calls = %d, want 2 (one per distinct arg)", calls)
	}
}

func TestFunc2DistinguishesArgOrder(t *testing.T) {
	cc := newIntCache(t)
	calls := 0
	sub := Func2(cc, "sub", func(a, b int) (int, error) {
		calls++
		return a - b, nil
	})

	if got, _ := sub(7, 2); got != 5 {
		t.Fatalf("sub(7,2) = %d", got)
	}
	if got, _ := sub(2, 7); got != -5 {
		t.Fatalf("sub(2,7) = %d", got)
	}
	if calls != 2 {
		t.Fatalf("swapped args must produce distinct keys; calls = %d", calls)
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	cc := newIntCache(t)
	boom := errors.New("upstream down")
	calls := 0
	flaky := Func1(cc, "flaky", func(n int) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return n, nil
	})

	if _, err := flaky(1); !errors.Is(err, boom) {
		t.Fatalf("expected propagated error, got %v", err)
	}
	if got, err := flaky(1); err != nil || got != 1 {
		t.Fatalf("retry after failure: got=%d err=%v", got, err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestKeyDeterministicAndNamespaced(t *testing.T) {
	a1, err := Key("fetch", "example.com", 443)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	a2, err := Key("fetch", "example.com", 443)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if a1 != a2 {
		t.Fatalf("same inputs, different keys: %q vs %q", a1, a2)
	}

	b, err := Key("resolve", "example.com", 443)
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if a1 == b {
		t.Fatalf("different function names must not collide")
	}
}
