package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs chan kafka.Message

	mu      sync.Mutex
	commits []int64
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-f.msgs:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.commits = append(f.commits, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error { return nil }

func (f *fakeReader) committed() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.commits...)
}

func TestFailedMessageIsRetriedBeforeLaterOffsets(t *testing.T) {
	r := &fakeReader{msgs: make(chan kafka.Message, 4)}
	r.msgs <- kafka.Message{Topic: "order.created", Partition: 0, Offset: 5}
	r.msgs <- kafka.Message{Topic: "order.created", Partition: 0, Offset: 6}
	c := &Consumer{r: r, workers: 2, backoff: time.Millisecond, log: zap.NewNop()}

	var (
		mu       sync.Mutex
		attempts = map[int64]int{}
	)
	h := func(_ context.Context, m kafka.Message) error {
		mu.Lock()
		defer mu.Unlock()
		attempts[m.Offset]++
		if m.Offset == 5 && attempts[5] == 1 {
			return errors.New("redis down")
		}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx, h) }()

	deadline := time.Now().Add(2 * time.Second)
	for len(r.committed()) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("commits = %v", r.committed())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Start = %v", err)
	}

	got := r.committed()
	if len(got) != 2 || got[0] != 5 || got[1] != 6 {
		t.Fatalf("commits = %v, want [5 6]", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if attempts[5] != 2 || attempts[6] != 1 {
		t.Fatalf("attempts = %v", attempts)
	}
}

func TestHandleStopsRetryingOnShutdown(t *testing.T) {
	r := &fakeReader{msgs: make(chan kafka.Message)}
	c := &Consumer{r: r, workers: 1, backoff: time.Millisecond, log: zap.NewNop()}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ok := c.handle(ctx, func(context.Context, kafka.Message) error { return errors.New("always") }, kafka.Message{Offset: 1})
	if ok {
		t.Fatal("handle reported success")
	}
	if got := r.committed(); len(got) != 0 {
		t.Fatalf("commits = %v", got)
	}
}
