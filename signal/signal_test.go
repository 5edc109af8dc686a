package signal

import "testing"

func TestEffectTracksReads(t *testing.T) {
	rt := NewRuntime()
	a := New(rt, 1)
	b := New(rt, 10)
	runs := 0
	sum := 0
	dispose := rt.Effect(func() {
		runs++
		sum = a.Get() + b.Get()
	})
	if runs != 1 || sum != 11 {
		t.Fatalf("runs=%d sum=%d", runs, sum)
	}
	a.Set(2)
	b.Set(20)
	if runs != 3 || sum != 22 {
		t.Errorf("runs=%d sum=%d", runs, sum)
	}
	a.Set(2)
	if runs != 3 {
		t.Error("setting an equal value must not notify")
	}
	dispose()
	a.Set(5)
	if runs != 3 || a.Subscribers() != 0 {
		t.Error("disposed effect re-ran")
	}
}

func TestEffectDynamicDependencies(t *testing.T) {
	rt := NewRuntime()
	useA := New(rt, true)
	a := New(rt, "a")
	b := New(rt, "b")
	var got string
	rt.Effect(func() {
		if useA.Get() {
			got = a.Get()
		} else {
			got = b.Get()
		}
	})
	useA.Set(false)
	if got != "b" {
		t.Fatalf("got %q", got)
	}
	if a.Subscribers() != 0 {
		t.Error("stale dependency kept")
	}
	b.Set("B")
	if got != "B" {
		t.Errorf("got %q", got)
	}
}

func TestBatch(t *testing.T) {
	rt := NewRuntime()
	a := New(rt, 0)
	b := New(rt, 0)
	runs := 0
	rt.Effect(func() {
		runs++
		_ = a.Get() + b.Get()
	})
	rt.Batch(func() {
		a.Set(1)
		b.Set(1)
		a.Set(2)
	})
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestUntracked(t *testing.T) {
	rt := NewRuntime()
	a := New(rt, 0)
	runs := 0
	rt.Effect(func() {
		runs++
		rt.Untracked(func() { _ = a.Get() })
	})
	a.Set(1)
	if runs != 1 {
		t.Errorf("untracked read subscribed the effect")
	}
	if a.Peek() != 1 {
		t.Error("Peek")
	}
}

func TestSelfWriteSettles(t *testing.T) {
	rt := NewRuntime()
	n := New(rt, 0)
	rt.Effect(func() {
		if v := n.Get(); v < 3 {
			n.Set(v + 1)
		}
	})
	if n.Peek() != 3 {
		t.Errorf("n = %d, want 3", n.Peek())
	}
}

func TestMemo(t *testing.T) {
	rt := NewRuntime()
	a := New(rt, 2)
	sq := NewMemo(rt, func() int { return a.Get() * a.Get() })
	var seen []int
	rt.Effect(func() { seen = append(seen, sq.Get()) })
	a.Set(3)
	a.Set(-3)
	if len(seen) != 2 || seen[0] != 4 || seen[1] != 9 {
		t.Errorf("seen = %v; equal memo values must not propagate", seen)
	}
	sq.Dispose()
	a.Set(4)
	if sq.Get() != 9 {
		t.Error("disposed memo recomputed")
	}
	a.Update(func(v int) int { return v + 1 })
	if a.Peek() != 5 {
		t.Error("Update")
	}
}
