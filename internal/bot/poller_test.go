package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	offsets []int
	onEmpty func()
}

type fetchResult struct {
	updates []tgbotapi.Update
	err     error
}

func (f *scriptedFetcher) GetUpdates(cfg tgbotapi.UpdateConfig) ([]tgbotapi.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.offsets = append(f.offsets, cfg.Offset)
	if len(f.results) == 0 {
		if f.onEmpty != nil {
			f.onEmpty()
		}
		return nil, nil
	}
	next := f.results[0]
	f.results = f.results[1:]
	return next.updates, next.err
}

type memoryOffsets struct {
	offset  int
	loadErr error
	saved   []int
}

func (m *memoryOffsets) Load(context.Context) (int, error) {
	return m.offset, m.loadErr
}

func (m *memoryOffsets) Save(_ context.Context, offset int) error {
	m.offset = offset
	m.saved = append(m.saved, offset)
	return nil
}

type recordingHandler struct {
	ids []int
}

func (h *recordingHandler) Handle(_ context.Context, u tgbotapi.Update) {
	h.ids = append(h.ids, u.UpdateID)
}

func newTestPoller(f UpdatesFetcher, h Handler, o OffsetStore) *Poller {
	p := NewPoller(f, h, o, 0)
	p.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return p
}

func TestPoller_HandlesUpdatesInOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &scriptedFetcher{
		results: []fetchResult{
			{updates: []tgbotapi.Update{{UpdateID: 10}, {UpdateID: 11}}},
			{updates: []tgbotapi.Update{{UpdateID: 12}}},
		},
		onEmpty: cancel,
	}
	handler := &recordingHandler{}
	offsets := &memoryOffsets{offset: 10}

	err := newTestPoller(fetcher, handler, offsets).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, []int{10, 11, 12}, handler.ids)
	assert.Equal(t, []int{11, 12, 13}, offsets.saved)
	assert.Equal(t, []int{10, 12, 13}, fetcher.offsets)
}

func TestPoller_RetriesTransientErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &scriptedFetcher{
		results: []fetchResult{
			{err: errors.New("dial tcp: i/o timeout")},
			{err: &tgbotapi.Error{Code: 502, Message: "Bad Gateway"}},
			{updates: []tgbotapi.Update{{UpdateID: 1}}},
		},
		onEmpty: cancel,
	}
	handler := &recordingHandler{}

	err := newTestPoller(fetcher, handler, &memoryOffsets{}).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, handler.ids)
}

func TestPoller_StopsOnFatalError(t *testing.T) {
	for _, code := range []int{401, 404} {
		fetcher := &scriptedFetcher{
			results: []fetchResult{{err: &tgbotapi.Error{Code: code, Message: "Unauthorized"}}},
		}

		err := newTestPoller(fetcher, &recordingHandler{}, &memoryOffsets{}).Run(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "poll telegram updates")
		assert.Len(t, fetcher.offsets, 1)
	}
}

func TestPoller_StartsFromZeroWhenOffsetUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &scriptedFetcher{onEmpty: cancel}

	err := newTestPoller(fetcher, &recordingHandler{}, &memoryOffsets{offset: 99, loadErr: errors.New("redis down")}).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, []int{0}, fetcher.offsets)
}

func TestPoller_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	fetcher := &scriptedFetcher{}
	p := NewPoller(fetcher, &recordingHandler{}, &memoryOffsets{}, 0)

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after cancellation")
	}
}

func TestIsFatal(t *testing.T) {
	assert.True(t, isFatal(&tgbotapi.Error{Code: 401}))
	assert.True(t, isFatal(tgbotapi.Error{Code: 404}))
	assert.False(t, isFatal(&tgbotapi.Error{Code: 429}))
	assert.False(t, isFatal(errors.New("EOF")))
}
