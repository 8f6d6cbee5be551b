package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/NordCoder/Runboard/internal/domain/run"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafka.Message
	committed []int64
	drained   chan struct{}
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	return &fakeReader{msgs: msgs, drained: make(chan struct{})}
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.msgs) > 0 {
		m := f.msgs[0]
		f.msgs = f.msgs[1:]
		f.mu.Unlock()
		return m, nil
	}
	f.mu.Unlock()
	select {
	case <-f.drained:
	default:
		close(f.drained)
	}
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error { return nil }

func newTestConsumer(t *testing.T, r reader) *Consumer {
	c := newConsumer(r, &ConsumerConfig{Topic: "run-results", GroupID: "g", Logger: zaptest.NewLogger(t)})
	c.retryBase, c.retryMax = time.Millisecond, 5*time.Millisecond
	return c
}

func TestConsumer_CommitPolicy(t *testing.T) {
	r := newFakeReader(
		kafka.Message{Offset: 1, Value: []byte("ok")},
		kafka.Message{Offset: 2, Value: []byte("poison")},
		kafka.Message{Offset: 3, Value: []byte("transient")},
		kafka.Message{Offset: 4, Value: []byte("ok")},
	)
	c := newTestConsumer(t, r)

	var mu sync.Mutex
	attempts := map[int]int{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Consume(ctx, func(_ context.Context, _, value []byte) error {
			switch string(value) {
			case "poison":
				return ErrPoison
			case "transient":
				mu.Lock()
				defer mu.Unlock()
				attempts[3]++
				if attempts[3] < 3 {
					return errors.New("db down")
				}
			}
			return nil
		})
	}()

	select {
	case <-r.drained:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not drain messages")
	}
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Equal(t, []int64{1, 2, 3, 4}, r.committed)
	assert.Equal(t, 3, attempts[3])
}

func TestConsumer_FailingMessageBlocksCommit(t *testing.T) {
	r := newFakeReader(
		kafka.Message{Offset: 1, Value: []byte("ok")},
		kafka.Message{Offset: 2, Value: []byte("transient")},
		kafka.Message{Offset: 3, Value: []byte("ok")},
	)
	c := newTestConsumer(t, r)

	failing := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Consume(ctx, func(_ context.Context, _, value []byte) error {
			if string(value) == "transient" {
				select {
				case failing <- struct{}{}:
				default:
				}
				return errors.New("db down")
			}
			return nil
		})
	}()

	select {
	case <-failing:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never saw the failing message")
	}
	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Equal(t, []int64{1}, r.committed)
	assert.Len(t, r.msgs, 1, "offset 3 must not be fetched while offset 2 is pending")
}

func TestJSONHandler(t *testing.T) {
	var got *run.Result
	h := JSONHandler(func(_ context.Context, key []byte, m *run.Result) error {
		assert.Equal(t, "run-1", string(key))
		got = m
		return nil
	})

	require.NoError(t, h(context.Background(), []byte("run-1"), []byte(`{"run":{"id":"run-1","status":"PASS"}}`)))
	require.NotNil(t, got)
	assert.Equal(t, run.StatusPass, got.Run.Status)

	err := h(context.Background(), nil, []byte(`{"run":`))
	require.ErrorIs(t, err, ErrPoison)
}

type fakeWriter struct{ msgs []kafka.Message }

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}
func (f *fakeWriter) Close() error { return nil }

func TestRunEvents_KeyedByRunID(t *testing.T) {
	w := &fakeWriter{}
	ev := NewRunEventsKafka(newProducer(w, "run-results").WithLogger(zaptest.NewLogger(t)))

	require.NoError(t, ev.PublishRunResult(context.Background(), run.Result{
		Run: run.Run{ID: "run-7", Status: run.StatusFail, Device: "Pixel 8"},
	}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "run-7", string(w.msgs[0].Key))
	assert.Contains(t, string(w.msgs[0].Value), `"status":"FAIL"`)
}

func TestHeaderCarrier(t *testing.T) {
	var hdrs []kafka.Header
	c := headerCarrier{&hdrs}
	c.Set("traceparent", "00-abc")
	c.Set("traceparent", "00-def")
	c.Set("baggage", "k=v")

	require.Len(t, hdrs, 2)
	assert.Equal(t, "00-def", c.Get("traceparent"))
	assert.Empty(t, c.Get("missing"))
	assert.ElementsMatch(t, []string{"traceparent", "baggage"}, c.Keys())
}
