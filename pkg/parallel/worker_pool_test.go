package parallel

import (
	"context"
	"testing"
	"time"
)

func TestWorkerPool_Execute(t *testing.T) {
	pool := NewWorkerPool[int, int](DefaultPoolConfig())

	// inputs stand in for per-file initial cut sizes; the session doubles them.
	inputs := []int{1, 2, 3, 4, 5}
	results := pool.ExecuteFunc(context.Background(), inputs, func(ctx context.Context, input int) (int, error) {
		return input * 2, nil
	})

	if len(results) != len(inputs) {
		t.Errorf("Expected %d results, got %d", len(inputs), len(results))
	}

	for i, r := range results {
		if r.Error != nil {
			t.Errorf("Unexpected error for input %d: %v", inputs[i], r.Error)
		}
		if r.Result != inputs[i]*2 {
			t.Errorf("Expected %d, got %d", inputs[i]*2, r.Result)
		}
	}
}

func TestWorkerPool_Timeout(t *testing.T) {
	config := DefaultPoolConfig().WithTimeout(50 * time.Millisecond)
	pool := NewWorkerPool[int, int](config)

	inputs := make([]int, 10)
	for i := range inputs {
		inputs[i] = i
	}

	results := pool.ExecuteFunc(context.Background(), inputs, func(ctx context.Context, input int) (int, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(100 * time.Millisecond):
			return input, nil
		}
	})

	// Some sessions should have been cancelled before finishing.
	cancelledCount := 0
	for _, r := range results {
		if r.Error != nil {
			cancelledCount++
		}
	}

	if cancelledCount == 0 {
		t.Log("Warning: No sessions were cancelled by timeout")
	}
}

func TestWorkerPool_Metrics(t *testing.T) {
	config := DefaultPoolConfig().WithMetrics()
	pool := NewWorkerPool[int, int](config)

	inputs := []int{1, 2, 3, 4, 5}
	pool.ExecuteFunc(context.Background(), inputs, func(ctx context.Context, input int) (int, error) {
		return input * 2, nil
	})

	metrics := pool.Metrics()
	if metrics.TotalTasks != 5 {
		t.Errorf("Expected 5 total sessions, got %d", metrics.TotalTasks)
	}
	if metrics.CompletedTasks != 5 {
		t.Errorf("Expected 5 completed sessions, got %d", metrics.CompletedTasks)
	}
	if metrics.FailedTasks != 0 {
		t.Errorf("Expected 0 failed sessions, got %d", metrics.FailedTasks)
	}
}

func TestWorkerPool_PartialFailure(t *testing.T) {
	pool := NewWorkerPool[int, int](DefaultPoolConfig().WithMetrics())

	// Odd-numbered "files" fail to parse; even ones partition fine.
	inputs := []int{1, 2, 3, 4, 5}
	results := pool.ExecuteFunc(context.Background(), inputs, func(ctx context.Context, input int) (int, error) {
		if input%2 != 0 {
			return 0, errOddInput
		}
		return input, nil
	})

	failed := 0
	for i, r := range results {
		if r.Error != nil {
			failed++
			continue
		}
		if r.Result != inputs[i] {
			t.Errorf("Expected %d, got %d", inputs[i], r.Result)
		}
	}
	if failed != 3 {
		t.Errorf("Expected 3 failures, got %d", failed)
	}

	metrics := pool.Metrics()
	if metrics.FailedTasks != 3 {
		t.Errorf("Expected metrics to record 3 failures, got %d", metrics.FailedTasks)
	}
}

func TestProgressTracker(t *testing.T) {
	var lastCompleted, lastTotal int64

	tracker := NewProgressTracker(100, func(completed, total int64) {
		lastCompleted = completed
		lastTotal = total
	}, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	tracker.Start(ctx)

	for i := 0; i < 50; i++ {
		tracker.Increment()
	}

	time.Sleep(20 * time.Millisecond)

	if lastCompleted != 50 {
		t.Errorf("Expected lastCompleted=50, got %d", lastCompleted)
	}
	if lastTotal != 100 {
		t.Errorf("Expected lastTotal=100, got %d", lastTotal)
	}

	tracker.Stop()
	cancel()
}

func BenchmarkWorkerPool(b *testing.B) {
	pool := NewWorkerPool[int, int](DefaultPoolConfig())
	inputs := make([]int, 1000)
	for i := range inputs {
		inputs[i] = i
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ExecuteFunc(context.Background(), inputs, func(ctx context.Context, input int) (int, error) {
			return input * 2, nil
		})
	}
}

var errOddInput = &inputError{"odd input"}

type inputError struct{ msg string }

func (e *inputError) Error() string { return e.msg }
