package mainloop

import "testing"

type queueScheduler struct {
	queue []func()
}

func (q *queueScheduler) Post(fn func()) { q.queue = append(q.queue, fn) }

func TestCoalescerMergesBurstIntoSingleRun(t *testing.T) {
	q := &queueScheduler{}
	c := NewCoalescer(q)

	value := 0
	for i := 1; i <= 5; i++ {
		v := i
		c.Post("session-snapshot", func() { value = v })
	}

	if len(q.queue) != 1 {
		t.Fatalf("expected 1 scheduled callback, got %d", len(q.queue))
	}
	if !c.Pending("session-snapshot") {
		t.Fatalf("expected key to be pending before the run")
	}
	q.queue[0]()

	if value != 5 {
		t.Fatalf("expected latest callback to run, got %d", value)
	}
	if c.Pending("session-snapshot") {
		t.Fatalf("expected key to be cleared after the run")
	}
}

func TestCoalescerDropsWorkAfterDestroy(t *testing.T) {
	q := &queueScheduler{}
	c := NewCoalescer(q)

	ran := false
	c.Post("session-snapshot", func() { ran = true })
	c.Destroy()

	if len(q.queue) != 1 {
		t.Fatalf("expected one queued callback before destroy, got %d", len(q.queue))
	}
	q.queue[0]()

	if ran {
		t.Fatalf("expected queued work to be dropped after destroy")
	}

	c.Post("session-snapshot", func() { ran = true })
	if len(q.queue) != 1 {
		t.Fatalf("expected no new callback after destroy, got %d", len(q.queue))
	}
}

func TestNewCoalescerPanicsOnNilScheduler(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected NewCoalescer to panic when scheduler is nil")
		}
	}()

	_ = NewCoalescer(nil)
}
