package listeners

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Rakhulsr/go-seller-ms/app/services"
	"github.com/Rakhulsr/go-seller-ms/app/utils/apperror"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplier struct {
	mu     sync.Mutex
	events []services.DiscountEvent
	err    error
	// errs are returned one per call before falling back to err.
	errs []error
}

func (f *fakeApplier) ApplyEvent(ctx context.Context, ev services.DiscountEvent) (*services.DiscountSyncReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &services.DiscountSyncReport{DiscountID: ev.DiscountID, Missing: []string{}}, nil
}

func (f *fakeApplier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeReader struct {
	msgs      chan kafka.Message
	mu        sync.Mutex
	committed []int64
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case msg := <-r.msgs:
		return msg, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) commits() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.committed...)
}

func (r *fakeReader) Close() error { return nil }

const applyPayload = `{
	"discountId": "3f6c2b8e-1d2a-4c4b-9a55-0e1f2a3b4c5d",
	"action": "apply",
	"adminDiscount": 15,
	"type": "MRP",
	"products": ["a0b1c2d3-0000-4000-8000-000000000001"]
}`

func TestProcessMessageDecodesEvent(t *testing.T) {
	log, _ := test.NewNullLogger()
	applier := &fakeApplier{}
	l := NewDiscountListener(&fakeReader{}, applier, log)

	retry := l.processMessage(context.Background(), kafka.Message{Value: []byte(applyPayload)})
	require.False(t, retry)
	require.Len(t, applier.events, 1)

	ev := applier.events[0]
	assert.Equal(t, "3f6c2b8e-1d2a-4c4b-9a55-0e1f2a3b4c5d", ev.DiscountID)
	assert.Equal(t, services.DiscountActionApply, ev.Action)
	assert.Equal(t, "15", ev.AdminDiscount.String())
	assert.Equal(t, []string{"a0b1c2d3-0000-4000-8000-000000000001"}, ev.Products)
}

func TestProcessMessageSkipsBadPayloads(t *testing.T) {
	log, hook := test.NewNullLogger()
	applier := &fakeApplier{}
	l := NewDiscountListener(&fakeReader{}, applier, log)

	assert.False(t, l.processMessage(context.Background(), kafka.Message{Value: []byte("{not json")}))
	assert.Empty(t, applier.events)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	applier.err = apperror.Validation("invalid discount type")
	assert.False(t, l.processMessage(context.Background(), kafka.Message{Value: []byte(applyPayload)}))
	assert.Equal(t, "failed to apply discount event", hook.LastEntry().Message)
}

func TestProcessMessageRetriesInternalFailures(t *testing.T) {
	log, _ := test.NewNullLogger()
	applier := &fakeApplier{err: errors.New("store down")}
	l := NewDiscountListener(&fakeReader{}, applier, log)

	assert.True(t, l.processMessage(context.Background(), kafka.Message{Value: []byte(applyPayload)}))

	applier.err = apperror.Internal("failed to save discount", errors.New("timeout"))
	assert.True(t, l.processMessage(context.Background(), kafka.Message{Value: []byte(applyPayload)}))
}

func TestStartCommitsOnlyAfterApplying(t *testing.T) {
	log, _ := test.NewNullLogger()
	applier := &fakeApplier{errs: []error{errors.New("store down")}}
	reader := &fakeReader{msgs: make(chan kafka.Message, 2)}
	reader.msgs <- kafka.Message{Offset: 7, Value: []byte(applyPayload)}
	reader.msgs <- kafka.Message{Offset: 8, Value: []byte("{not json")}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewDiscountListener(reader, applier, log)
	l.retryDelay = time.Millisecond
	go l.Start(ctx)

	assert.Eventually(t, func() bool { return len(reader.commits()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{7, 8}, reader.commits())
	assert.Equal(t, 2, applier.count())
}

func TestStartConsumesUntilCancelled(t *testing.T) {
	log, _ := test.NewNullLogger()
	applier := &fakeApplier{}
	reader := &fakeReader{msgs: make(chan kafka.Message, 2)}
	reader.msgs <- kafka.Message{Value: []byte(applyPayload)}
	reader.msgs <- kafka.Message{Value: []byte(applyPayload)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewDiscountListener(reader, applier, log).Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return applier.count() == 2 }, time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
}
