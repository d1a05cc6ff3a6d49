package queue

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewMemoryQueue(t *testing.T) {
	q := NewMemoryQueue()
	if q == nil {
		t.Fatal("NewMemoryQueue should return non-nil")
	}
	defer func() { _ = q.Close() }()

	if q.channels == nil {
		t.Error("channels map should be initialized")
	}
	if q.subscriptions == nil {
		t.Error("subscriptions map should be initialized")
	}
}

func TestMemoryQueue_PublishAndSubscribe(t *testing.T) {
	q := NewMemoryQueue()
	defer func() { _ = q.Close() }()

	var received []byte
	var wg sync.WaitGroup
	wg.Add(1)

	err := q.Subscribe("test", func(data []byte) error {
		received = data
		wg.Done()
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	ctx := context.Background()
	err = q.Publish(ctx, "test", []byte("hello"))
	if err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	waitWithTimeout(t, &wg, 2*time.Second)

	if string(received) != "hello" {
		t.Errorf("Expected 'hello', got '%s'", received)
	}
}

func TestMemoryQueue_Publish_DataCopy(t *testing.T) {
	q := NewMemoryQueue()
	defer func() { _ = q.Close() }()

	ctx := context.Background()
	originalData := []byte("original")
	err := q.Publish(ctx, "test", originalData)
	if err != nil {
		t.Fatalf("Failed to publish: %v", err)
	}

	// Modify original data
	originalData[0] = 'X'

	// Subscribe and verify data wasn't affected
	var received []byte
	var wg sync.WaitGroup
	wg.Add(1)

	err = q.Subscribe("test", func(data []byte) error {
		received = data
		wg.Done()
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	waitWithTimeout(t, &wg, 2*time.Second)

	if string(received) != "original" {
		t.Errorf("Data should be 'original', got '%s'", received)
	}
}

func TestMemoryQueue_Subscribe_MultipleMessages(t *testing.T) {
	q := NewMemoryQueue()
	defer func() { _ = q.Close() }()

	messageCount := 100
	var receivedCount int32

	err := q.Subscribe("test", func(data []byte) error {
		atomic.AddInt32(&receivedCount, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < messageCount; i++ {
		_ = q.Publish(ctx, "test", []byte(fmt.Sprintf("msg-%d", i)))
	}

	waitFor(t, func() bool {
		return int(atomic.LoadInt32(&receivedCount)) >= messageCount
	}, 5*time.Second)

	if int(receivedCount) != messageCount {
		t.Errorf("Expected %d messages, got %d", messageCount, receivedCount)
	}
}

func TestMemoryQueue_Subscribe_HandlerError(t *testing.T) {
	q := NewMemoryQueue()
	defer func() { _ = q.Close() }()

	var callCount int32

	err := q.Subscribe("test", func(data []byte) error {
		atomic.AddInt32(&callCount, 1)
		return fmt.Errorf("handler error")
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_ = q.Publish(ctx, "test", []byte("msg"))
	}

	// Handler should still be called for each message despite errors
	waitFor(t, func() bool {
		return atomic.LoadInt32(&callCount) >= 5
	}, 2*time.Second)
}

func TestMemoryQueue_Subscribe_DoubleSubscribe(t *testing.T) {
	q := NewMemoryQueue()
	defer func() { _ = q.Close() }()

	err := q.Subscribe("test", func(data []byte) error {
		return nil
	})
	if err != nil {
		t.Fatalf("First subscribe failed: %v", err)
	}

	err = q.Subscribe("test", func(data []byte) error {
		return nil
	})
	if err == nil {
		t.Fatal("Expected error for double subscribe")
	}
}

func TestMemoryQueue_Subscribe_MultipleSubjects(t *testing.T) {
	q := NewMemoryQueue()
	defer func() { _ = q.Close() }()

	subjects := []string{"sub.1", "sub.2", "sub.3"}
	receivedMap := make(map[string]int32)
	var mu sync.Mutex

	for _, subject := range subjects {
		s := subject // capture
		err := q.Subscribe(s, func(data []byte) error {
			mu.Lock()
			receivedMap[s]++
			mu.Unlock()
			return nil
		})
		if err != nil {
			t.Fatalf("Failed to subscribe to %s: %v", s, err)
		}
	}

	ctx := context.Background()
	for _, subject := range subjects {
		for i := 0; i < 10; i++ {
			_ = q.Publish(ctx, subject, []byte("msg"))
		}
	}

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, subject := range subjects {
			if receivedMap[subject] < 10 {
				return false
			}
		}
		return true
	}, 2*time.Second)
}

func TestMemoryQueue_Unsubscribe_Success(t *testing.T) {
	q := NewMemoryQueue()
	defer func() { _ = q.Close() }()

	err := q.Subscribe("test", func(data []byte) error {
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	err = q.Unsubscribe("test")
	if err != nil {
		t.Fatalf("Failed to unsubscribe: %v", err)
	}
}

func TestMemoryQueue_Unsubscribe_NotSubscribed(t *testing.T) {
	q := NewMemoryQueue()
	defer func() { _ = q.Close() }()

	err := q.Unsubscribe("not.subscribed")
	if err == nil {
		t.Fatal("Expected error for unsubscribing non-existent subject")
	}
}

func TestMemoryQueue_Close(t *testing.T) {
	q := NewMemoryQueue()

	_ = q.Subscribe("test.1", func(data []byte) error { return nil })
	_ = q.Subscribe("test.2", func(data []byte) error { return nil })

	err := q.Close()
	if err != nil {
		t.Fatalf("Failed to close: %v", err)
	}

	if len(q.subscriptions) != 0 {
		t.Error("Subscriptions should be empty after close")
	}
}

func TestMemoryQueue_ConcurrentPublish(t *testing.T) {
	q := NewMemoryQueue()
	defer func() { _ = q.Close() }()

	ctx := context.Background()
	numGoroutines := 10
	messagesPerGoroutine := 50

	var wg sync.WaitGroup
	var errCount int32

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < messagesPerGoroutine; j++ {
				if err := q.Publish(ctx, "concurrent", []byte(fmt.Sprintf("%d-%d", id, j))); err != nil {
					atomic.AddInt32(&errCount, 1)
				}
			}
		}(i)
	}

	wg.Wait()

	if errCount > 0 {
		t.Errorf("Had %d errors during concurrent publish", errCount)
	}
}

// Helper functions
func waitWithTimeout(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		// Success
	case <-time.After(timeout):
		t.Fatal("Timeout waiting for WaitGroup")
	}
}

func waitFor(t *testing.T, condition func() bool, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timeout waiting for condition")
}
