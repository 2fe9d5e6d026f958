package clock

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

var epoch = time.Date(2025, 5, 11, 6, 30, 0, 0, time.UTC)

func TestFakeAdvanceRunsDueCallbacksInOrder(t *testing.T) {
	t.Parallel()

	fake := NewFake(epoch)
	var got []string
	fake.AfterFunc(3*time.Second, func() { got = append(got, "c") })
	fake.AfterFunc(time.Second, func() { got = append(got, "a") })
	fake.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	fake.AfterFunc(10*time.Second, func() { got = append(got, "late") })

	fake.Advance(5 * time.Second)

	if want := "abc"; strings.Join(got, "") != want {
		t.Fatalf("order = %q, want %q", strings.Join(got, ""), want)
	}
	if fake.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", fake.Pending())
	}
	if !fake.Now().Equal(epoch.Add(5 * time.Second)) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), epoch.Add(5*time.Second))
	}
}

func TestFakeCallbackSeesDueTime(t *testing.T) {
	t.Parallel()

	fake := NewFake(epoch)
	var seen time.Time
	fake.AfterFunc(2*time.Second, func() { seen = fake.Now() })

	fake.Advance(time.Minute)

	if want := epoch.Add(2 * time.Second); !seen.Equal(want) {
		t.Fatalf("callback Now() = %v, want %v", seen, want)
	}
}

func TestFakeRunsChainedCallbacksInsideWindow(t *testing.T) {
	t.Parallel()

	fake := NewFake(epoch)
	fires := 0
	var rearm func()
	rearm = func() {
		fires++
		fake.AfterFunc(time.Second, rearm)
	}
	fake.AfterFunc(time.Second, rearm)

	fake.Advance(5 * time.Second)

	if fires != 5 {
		t.Fatalf("fires = %d, want 5", fires)
	}
	if fake.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", fake.Pending())
	}
}

func TestFakeTimerStop(t *testing.T) {
	t.Parallel()

	fake := NewFake(epoch)
	fired := false
	timer := fake.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Fatal("Stop() = false, want true")
	}
	if timer.Stop() {
		t.Fatal("second Stop() = true, want false")
	}
	fake.Advance(time.Minute)
	if fired {
		t.Fatal("stopped callback fired")
	}

	ran := fake.AfterFunc(0, func() {})
	fake.Advance(0)
	if ran.Stop() {
		t.Fatal("Stop() after fire = true, want false")
	}
}

func TestFakeSetBackwardsOnlyMovesNow(t *testing.T) {
	t.Parallel()

	fake := NewFake(epoch)
	fired := false
	fake.AfterFunc(time.Second, func() { fired = true })

	fake.Set(epoch.Add(-time.Hour))

	if fired {
		t.Fatal("callback fired on backwards Set")
	}
	if !fake.Now().Equal(epoch.Add(-time.Hour)) {
		t.Fatalf("Now() = %v, want %v", fake.Now(), epoch.Add(-time.Hour))
	}
}

func TestSleepWaitsOnScheduler(t *testing.T) {
	t.Parallel()

	fake := NewFake(epoch)
	done := make(chan error, 1)
	go func() { done <- Sleep(context.Background(), fake, time.Second) }()

	waitPending(t, fake, 1)
	fake.Advance(time.Second)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Sleep() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Sleep() did not return after Advance")
	}
}

func TestSleepHonoursCancellation(t *testing.T) {
	t.Parallel()

	fake := NewFake(epoch)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Sleep(ctx, fake, time.Hour) }()

	waitPending(t, fake, 1)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Sleep() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Sleep() did not return after cancel")
	}
	if fake.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", fake.Pending())
	}
}

func TestSleepNonPositiveReturnsImmediately(t *testing.T) {
	t.Parallel()

	if err := Sleep(context.Background(), NewFake(epoch), 0); err != nil {
		t.Fatalf("Sleep(0) error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, NewFake(epoch), time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("Sleep(canceled) error = %v, want context.Canceled", err)
	}
}

func TestSystemAfterFunc(t *testing.T) {
	t.Parallel()

	fired := make(chan struct{})
	System{}.AfterFunc(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("System.AfterFunc did not fire")
	}
	if (System{}).Now().IsZero() {
		t.Fatal("System.Now() is zero")
	}
}

func waitPending(t *testing.T, fake *Fake, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for fake.Pending() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Pending() = %d, want %d", fake.Pending(), want)
		}
		time.Sleep(time.Millisecond)
	}
}
