package queue

import (
	"errors"
	"testing"
	"time"
)

func TestNewDeadline(t *testing.T) {
	tests := []struct {
		name     string
		opts     []CallOption
		fallback time.Duration
		wantMode deadlineMode
		wantErr  error
	}{
		{"default_blocks_forever", nil, 0, deadlineNever, nil},
		{"non_blocking", []CallOption{NonBlocking()}, 0, deadlineImmediate, nil},
		{"blocking_false", []CallOption{Blocking(false)}, 0, deadlineImmediate, nil},
		{"zero_timeout_is_non_blocking", []CallOption{Timeout(0)}, 0, deadlineImmediate, nil},
		{"positive_timeout", []CallOption{Timeout(time.Second)}, 0, deadlineAt, nil},
		{"non_blocking_ignores_timeout", []CallOption{NonBlocking(), Timeout(time.Second)}, 0, deadlineImmediate, nil},
		{"fallback_applies", nil, time.Second, deadlineAt, nil},
		{"explicit_timeout_wins", []CallOption{Timeout(0)}, time.Second, deadlineImmediate, nil},
		{"negative_timeout", []CallOption{Timeout(-time.Nanosecond)}, 0, 0, ErrInvalidTimeout},
		{"negative_timeout_non_blocking", []CallOption{NonBlocking(), Timeout(-time.Second)}, 0, 0, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := newDeadline(newCallOptions(tt.opts), tt.fallback)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil {
				return
			}
			if d.mode != tt.wantMode {
				t.Fatalf("Expected mode %d, got %d", tt.wantMode, d.mode)
			}
		})
	}
}

func TestDeadline_Expired(t *testing.T) {
	if !(deadline{mode: deadlineImmediate}).expired() {
		t.Fatal("immediate deadline should be expired")
	}
	if (deadline{mode: deadlineNever}).expired() {
		t.Fatal("unbounded deadline should never expire")
	}

	d := deadline{mode: deadlineAt, at: time.Now().Add(20 * time.Millisecond)}
	if d.expired() {
		t.Fatal("deadline expired too early")
	}
	left, bounded := d.remaining()
	if !bounded || left <= 0 || left > 20*time.Millisecond {
		t.Fatalf("unexpected remaining %v (bounded %v)", left, bounded)
	}

	time.Sleep(25 * time.Millisecond)
	if !d.expired() {
		t.Fatal("deadline should have expired")
	}
}

func TestDeadline_TimerNeverIsNil(t *testing.T) {
	ch, stop := deadline{mode: deadlineNever}.timer()
	defer stop()
	if ch != nil {
		t.Fatal("unbounded deadline should not create a timer")
	}
}
