package store

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryLimiter_AdmitsUpToMax(t *testing.T) {
	l := NewMemoryLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Admit(ctx, "client-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should have been admitted", i+1)
		}
	}

	if ok, _ := l.Admit(ctx, "client-a"); ok {
		t.Error("request beyond the maximum should have been rejected")
	}
}

func TestMemoryLimiter_WindowSlides(t *testing.T) {
	l := NewMemoryLimiter(2, time.Minute)
	now := time.Unix(1700000000, 0)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	l.Admit(ctx, "client-a")
	now = now.Add(30 * time.Second)
	l.Admit(ctx, "client-a")

	// 59s: both admissions still inside the window.
	now = now.Add(29 * time.Second)
	if ok, _ := l.Admit(ctx, "client-a"); ok {
		t.Fatal("expected a rejection while the window is full")
	}

	// 61s: the oldest admission has left the window.
	now = now.Add(2 * time.Second)
	if ok, _ := l.Admit(ctx, "client-a"); !ok {
		t.Error("expected an admission once the oldest entry expired")
	}
}

func TestMemoryLimiter_RejectionsDoNotExtendWindow(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	now := time.Unix(1700000000, 0)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	l.Admit(ctx, "client-a")

	now = now.Add(30 * time.Second)
	if ok, _ := l.Admit(ctx, "client-a"); ok {
		t.Fatal("expected a rejection inside the window")
	}

	// 61s: only the original admission counts, and it has expired.
	now = now.Add(31 * time.Second)
	if ok, _ := l.Admit(ctx, "client-a"); !ok {
		t.Error("a rejected request must not count against the window")
	}
}

func TestMemoryLimiter_KeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	l.Admit(ctx, "client-a")
	if ok, _ := l.Admit(ctx, "client-b"); !ok {
		t.Error("client-b shares no budget with client-a")
	}
}

func TestMemoryLimiter_ConcurrentAdmissionsNeverExceedMax(t *testing.T) {
	const max = 20
	l := NewMemoryLimiter(max, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Admit(ctx, "client-a"); ok {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if admitted != max {
		t.Errorf("admitted %d requests concurrently, want exactly %d", admitted, max)
	}
}
