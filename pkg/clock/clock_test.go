package clock

import (
	"errors"
	"testing"
	"time"
)

const interval = 16 * time.Millisecond

func TestRepeatFiresAtInterval(t *testing.T) {
	c := NewTickClock()
	count := 0
	task, err := c.Repeat(interval, func() bool {
		count++
		return true
	})
	if err != nil {
		t.Fatalf("Repeat() error: %v", err)
	}

	// 未满一个间隔不触发
	c.Advance(10 * time.Millisecond)
	if count != 0 {
		t.Errorf("Expected 0 runs after 10ms, got %d", count)
	}

	c.Advance(6 * time.Millisecond)
	if count != 1 {
		t.Errorf("Expected 1 run after 16ms, got %d", count)
	}

	c.Advance(interval)
	if count != 2 || task.Runs() != 2 {
		t.Errorf("Expected 2 runs after 32ms, got count=%d runs=%d", count, task.Runs())
	}
}

// TestAdvanceCatchesUp 一帧跨越多个间隔时补调
func TestAdvanceCatchesUp(t *testing.T) {
	c := NewTickClock()
	count := 0
	c.Repeat(interval, func() bool {
		count++
		return true
	})

	c.Advance(50 * time.Millisecond)
	if count != 3 {
		t.Errorf("Expected 3 runs for 50ms, got %d", count)
	}

	// 余下 2ms，再推进 14ms 恰好补足一个间隔
	c.Advance(14 * time.Millisecond)
	if count != 4 {
		t.Errorf("Expected 4 runs, got %d", count)
	}
}

func TestCallbackFalseCancelsTask(t *testing.T) {
	c := NewTickClock()
	count := 0
	task, _ := c.Repeat(interval, func() bool {
		count++
		return count < 2
	})

	// 一次推进足够多的时间，返回 false 后不再补调
	c.Advance(10 * interval)

	if count != 2 {
		t.Errorf("Expected exactly 2 runs, got %d", count)
	}
	if !task.Cancelled() {
		t.Error("Task should be cancelled after callback returned false")
	}
	if c.Active() != 0 {
		t.Errorf("Expected 0 active tasks, got %d", c.Active())
	}

	c.Advance(10 * interval)
	if count != 2 {
		t.Errorf("Cancelled task must not run again, got %d runs", count)
	}
}

func TestTaskCancel(t *testing.T) {
	c := NewTickClock()
	count := 0
	task, _ := c.Repeat(interval, func() bool {
		count++
		return true
	})

	task.Cancel()
	task.Cancel()
	c.Advance(interval)

	if count != 0 {
		t.Errorf("Cancelled task ran %d times", count)
	}
}

func TestTasksRunInRegistrationOrder(t *testing.T) {
	c := NewTickClock()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		c.Repeat(interval, func() bool {
			order = append(order, i)
			return true
		})
	}

	c.Advance(interval)

	for i, v := range order {
		if v != i {
			t.Errorf("Expected order [0 1 2], got %v", order)
			break
		}
	}
}

// TestRepeatDuringAdvance 回调中注册的新任务从下一次 Advance 开始计时
func TestRepeatDuringAdvance(t *testing.T) {
	c := NewTickClock()
	childRuns := 0
	spawned := false
	c.Repeat(interval, func() bool {
		if !spawned {
			spawned = true
			c.Repeat(interval, func() bool {
				childRuns++
				return true
			})
		}
		return true
	})

	c.Advance(interval)
	if childRuns != 0 {
		t.Errorf("Child task should not run in the frame it was registered, got %d", childRuns)
	}
	if c.Active() != 2 {
		t.Errorf("Expected 2 active tasks, got %d", c.Active())
	}

	c.Advance(interval)
	if childRuns != 1 {
		t.Errorf("Expected child to run once, got %d", childRuns)
	}
}

func TestRepeatInvalidInterval(t *testing.T) {
	c := NewTickClock()
	if _, err := c.Repeat(0, func() bool { return true }); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Expected ErrInvalidInterval, got %v", err)
	}
}

func TestStop(t *testing.T) {
	c := NewTickClock()
	count := 0
	task, _ := c.Repeat(interval, func() bool {
		count++
		return true
	})

	c.Stop()

	if !c.Stopped() {
		t.Error("Stopped() should be true")
	}
	if !task.Cancelled() {
		t.Error("Stop should cancel existing tasks")
	}

	c.Advance(10 * interval)
	if count != 0 {
		t.Errorf("Stopped clock ran callbacks %d times", count)
	}

	if _, err := c.Repeat(interval, func() bool { return true }); !errors.Is(err, ErrClockStopped) {
		t.Errorf("Expected ErrClockStopped, got %v", err)
	}
}

func TestStopFromCallback(t *testing.T) {
	c := NewTickClock()
	secondRuns := 0
	c.Repeat(interval, func() bool {
		c.Stop()
		return true
	})
	c.Repeat(interval, func() bool {
		secondRuns++
		return true
	})

	c.Advance(interval)

	if secondRuns != 0 {
		t.Errorf("Tasks after Stop must not run, got %d", secondRuns)
	}
	if c.Active() != 0 {
		t.Errorf("Expected 0 active tasks, got %d", c.Active())
	}
}

func TestNow(t *testing.T) {
	c := NewTickClock()
	c.Advance(10 * time.Millisecond)
	c.Advance(-5 * time.Millisecond)
	c.Advance(6 * time.Millisecond)

	if c.Now() != 16*time.Millisecond {
		t.Errorf("Now: got %v, want 16ms", c.Now())
	}
}
