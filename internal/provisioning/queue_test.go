package provisioning

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu       sync.Mutex
	attempts int
	failures int
	upserted []string
}

// Upsert fails the first `failures` calls, then succeeds.
func (f *fakeProvider) Upsert(ctx context.Context, id, displayName, imageURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.attempts <= f.failures {
		return errors.New("provider unavailable")
	}
	f.upserted = append(f.upserted, id)
	return nil
}

func (f *fakeProvider) snapshot() (int, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts, append([]string(nil), f.upserted...)
}

func newTestQueue(provider Provider) *Queue {
	q := &Queue{
		provider:      provider,
		tasks:         make(chan Task, 8),
		maxAttempts:   3,
		baseBackoff:   time.Millisecond,
		deadLetterCap: 2,
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

func TestQueueDeliversTask(t *testing.T) {
	provider := &fakeProvider{}
	q := newTestQueue(provider)

	q.EnqueueUpsert("user-1", "Alice", "http://img")
	q.Close()

	attempts, upserted := provider.snapshot()
	assert.Equal(t, 1, attempts)
	assert.Equal(t, []string{"user-1"}, upserted)
	assert.Empty(t, q.DeadLetters())
}

func TestQueueRetriesUntilSuccess(t *testing.T) {
	provider := &fakeProvider{failures: 2}
	q := newTestQueue(provider)

	q.EnqueueUpsert("user-1", "Alice", "http://img")
	q.Close()

	attempts, upserted := provider.snapshot()
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []string{"user-1"}, upserted)
	assert.Empty(t, q.DeadLetters())
}

func TestQueueDeadLettersAfterExhaustedRetries(t *testing.T) {
	provider := &fakeProvider{failures: 100}
	q := newTestQueue(provider)

	q.EnqueueUpsert("user-1", "Alice", "http://img")
	q.Close()

	attempts, upserted := provider.snapshot()
	assert.Equal(t, 3, attempts)
	assert.Empty(t, upserted)

	dead := q.DeadLetters()
	require.Len(t, dead, 1)
	assert.Equal(t, "user-1", dead[0].ID)
}

func TestQueueDeadLetterLogIsBounded(t *testing.T) {
	provider := &fakeProvider{failures: 100}
	q := newTestQueue(provider)

	q.EnqueueUpsert("user-1", "Alice", "http://img")
	q.EnqueueUpsert("user-2", "Bob", "http://img")
	q.EnqueueUpsert("user-3", "Cara", "http://img")
	q.Close()

	// Cap is 2: the oldest entry was evicted.
	dead := q.DeadLetters()
	require.Len(t, dead, 2)
	assert.Equal(t, "user-2", dead[0].ID)
	assert.Equal(t, "user-3", dead[1].ID)
}

func TestQueueCloseDrainsAndRejectsLateTasks(t *testing.T) {
	provider := &fakeProvider{}
	q := newTestQueue(provider)

	for i := 0; i < 5; i++ {
		q.EnqueueUpsert("user-1", "Alice", "http://img")
	}
	q.Close()

	attempts, _ := provider.snapshot()
	assert.Equal(t, 5, attempts)

	// Enqueue after Close is a logged no-op.
	q.EnqueueUpsert("user-2", "Bob", "http://img")
	attempts, _ = provider.snapshot()
	assert.Equal(t, 5, attempts)
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	// No worker is draining this queue, so the buffer fills up.
	q := &Queue{
		provider:      &fakeProvider{},
		tasks:         make(chan Task, 1),
		maxAttempts:   1,
		baseBackoff:   time.Millisecond,
		deadLetterCap: 2,
	}

	q.EnqueueUpsert("user-1", "Alice", "http://img")
	q.EnqueueUpsert("user-2", "Bob", "http://img")

	assert.Len(t, q.tasks, 1)
	task := <-q.tasks
	assert.Equal(t, "user-1", task.ID)
}

func TestHTTPProviderUpsert(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload upsertPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, "api-key")
	err := provider.Upsert(context.Background(), "user-1", "Alice", "http://img")
	require.NoError(t, err)

	assert.Equal(t, "/v1/users/user-1", gotPath)
	assert.Equal(t, "api-key", gotAuth)
	assert.Equal(t, upsertPayload{ID: "user-1", Name: "Alice", Image: "http://img"}, gotPayload)
}

func TestHTTPProviderUpsertErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL, "api-key")
	err := provider.Upsert(context.Background(), "user-1", "Alice", "http://img")
	assert.Error(t, err)
}
