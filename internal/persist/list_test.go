package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/faideww/fishing-journal/internal/kv"
)

type item struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

func itemID(i item) string { return i.ID }

// recordingKV wraps a kv.Store and counts writes; it can be told to fail.
type recordingKV struct {
	kv.Store
	mu      sync.Mutex
	sets    int
	failGet error
	failSet error
	block   chan struct{}
}

func (r *recordingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if r.block != nil {
		<-r.block
	}
	if r.failGet != nil {
		return "", false, r.failGet
	}
	return r.Store.Get(ctx, key)
}

func (r *recordingKV) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	r.sets++
	err := r.failSet
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.Store.Set(ctx, key, value)
}

func (r *recordingKV) setCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sets
}

func newReady(t *testing.T, store kv.Store) *List[item] {
	t.Helper()
	l := New(store, "@items", itemID)
	l.Initialize(context.Background())
	select {
	case <-l.Ready():
	case <-time.After(time.Second):
		t.Fatal("list never became ready")
	}
	return l
}

func closeList(t *testing.T, l *List[item]) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, l.Close(ctx))
}

func TestToggleAddsThenRemoves(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newReady(t, kv.NewMemory())
	defer closeList(t, l)

	a := item{ID: "a"}
	b := item{ID: "b"}

	assert.True(t, l.Toggle(a))
	assert.True(t, l.Toggle(b))
	assert.Equal(t, []item{b, a}, l.Items())

	assert.False(t, l.Toggle(a))
	assert.Equal(t, []item{b}, l.Items())
}

func TestToggleMatchesByIdentityOnly(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newReady(t, kv.NewMemory())
	defer closeList(t, l)

	l.Toggle(item{ID: "a", Note: "first"})
	l.Toggle(item{ID: "a", Note: "different"})
	assert.Empty(t, l.Items())
}

func TestPrependAndRemove(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newReady(t, kv.NewMemory())
	defer closeList(t, l)

	l.Prepend(item{ID: "1"})
	l.Prepend(item{ID: "2"})
	assert.Equal(t, []item{{ID: "2"}, {ID: "1"}}, l.Items())

	l.Remove("missing")
	assert.Equal(t, []item{{ID: "2"}, {ID: "1"}}, l.Items())

	l.Remove("2")
	assert.Equal(t, []item{{ID: "1"}}, l.Items())
	assert.True(t, l.Contains("1"))
	assert.False(t, l.Contains("2"))
}

func TestRoundTripThroughStorage(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := kv.NewMemory()
	l := newReady(t, store)
	l.Prepend(item{ID: "1", Note: "pike"})
	l.Prepend(item{ID: "2", Note: "perch"})
	want := l.Items()
	closeList(t, l)

	raw, ok, err := store.Get(context.Background(), "@items")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"2","note":"perch"},{"id":"1","note":"pike"}]`, raw)

	reloaded := newReady(t, store)
	defer closeList(t, reloaded)
	assert.Equal(t, want, reloaded.Items())
}

func TestEmptyListPersistsAsArray(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := kv.NewMemory()
	l := newReady(t, store)
	l.Toggle(item{ID: "x"})
	l.Toggle(item{ID: "x"})
	closeList(t, l)

	raw, _, _ := store.Get(context.Background(), "@items")
	assert.Equal(t, "[]", raw)
}

func TestMalformedStoredValueStartsEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := kv.NewMemory()
	require.NoError(t, store.Set(context.Background(), "@items", "{not json"))

	l := newReady(t, store)
	defer closeList(t, l)
	assert.Empty(t, l.Items())
}

func TestReadFailureStartsEmpty(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := &recordingKV{Store: kv.NewMemory(), failGet: errors.New("disk gone")}
	l := newReady(t, store)
	defer closeList(t, l)

	assert.Empty(t, l.Items())
	l.Prepend(item{ID: "1"})
	assert.Len(t, l.Items(), 1)
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := &recordingKV{Store: kv.NewMemory(), failSet: errors.New("read-only")}
	l := newReady(t, store)

	l.Prepend(item{ID: "1"})
	l.Prepend(item{ID: "2"})
	closeList(t, l)

	assert.Equal(t, []item{{ID: "2"}, {ID: "1"}}, l.Items())
	assert.GreaterOrEqual(t, store.setCount(), 1)

	_, ok, _ := store.Store.Get(context.Background(), "@items")
	assert.False(t, ok)
}

func TestMutationBeforeReadyIsNotPersisted(t *testing.T) {
	defer goleak.VerifyNone(t)

	mem := kv.NewMemory()
	require.NoError(t, mem.Set(context.Background(), "@items", `[{"id":"stored"}]`))
	store := &recordingKV{Store: mem, block: make(chan struct{})}

	l := New(store, "@items", itemID)
	l.Initialize(context.Background())

	l.Prepend(item{ID: "early"})
	assert.Equal(t, []item{{ID: "early"}}, l.Items())
	select {
	case <-l.Ready():
		t.Fatal("list ready before storage answered")
	default:
	}

	close(store.block)
	<-l.Ready()

	assert.Equal(t, []item{{ID: "stored"}}, l.Items())
	closeList(t, l)
	assert.Equal(t, 0, store.setCount())
}

func TestMutationBeforeReadySurvivesAbsentKey(t *testing.T) {
	defer goleak.VerifyNone(t)

	mem := kv.NewMemory()
	store := &recordingKV{Store: mem, block: make(chan struct{})}

	l := New(store, "@items", itemID)
	l.Initialize(context.Background())
	l.Prepend(item{ID: "early"})

	close(store.block)
	<-l.Ready()
	assert.Equal(t, []item{{ID: "early"}}, l.Items())
	closeList(t, l)

	// nothing was stored before, so the early item is written back
	raw, ok, err := mem.Get(context.Background(), "@items")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"early","note":""}]`, raw)
}

func TestMutationBeforeReadySurvivesReadFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	mem := kv.NewMemory()
	require.NoError(t, mem.Set(context.Background(), "@items", `[{"id":"unreadable"}]`))
	store := &recordingKV{Store: mem, block: make(chan struct{}), failGet: errors.New("io error")}

	l := New(store, "@items", itemID)
	l.Initialize(context.Background())
	l.Prepend(item{ID: "early"})

	close(store.block)
	<-l.Ready()
	assert.Equal(t, []item{{ID: "early"}}, l.Items())
	closeList(t, l)

	// the stored list may still be good, so it is not overwritten
	assert.Equal(t, 0, store.setCount())
}

func TestMutationBeforeReadySurvivesMalformedValue(t *testing.T) {
	defer goleak.VerifyNone(t)

	mem := kv.NewMemory()
	require.NoError(t, mem.Set(context.Background(), "@items", "{not json"))
	store := &recordingKV{Store: mem, block: make(chan struct{})}

	l := New(store, "@items", itemID)
	l.Initialize(context.Background())
	l.Toggle(item{ID: "early"})

	close(store.block)
	<-l.Ready()
	defer closeList(t, l)
	assert.Equal(t, []item{{ID: "early"}}, l.Items())
}

func TestSubscriberEndsOnCurrentListUnderConcurrentMutations(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newReady(t, kv.NewMemory())
	defer closeList(t, l)

	var mu sync.Mutex
	var last []item
	l.Subscribe(func(items []item) {
		mu.Lock()
		last = items
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Prepend(item{ID: string(rune('a'+i)) + "-" + string(rune('0'+j%10))})
			}
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, l.Items(), last)
}

func TestLastWriteWins(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := kv.NewMemory()
	l := newReady(t, store)
	for i := 0; i < 50; i++ {
		l.Toggle(item{ID: "a"})
		l.Toggle(item{ID: "b"})
	}
	l.Toggle(item{ID: "a"})
	closeList(t, l)

	raw, _, _ := store.Get(context.Background(), "@items")
	assert.JSONEq(t, `[{"id":"a","note":""}]`, raw)
}

func TestSubscribeNotifiesSynchronously(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newReady(t, kv.NewMemory())
	defer closeList(t, l)

	var got [][]item
	cancel := l.Subscribe(func(items []item) { got = append(got, items) })

	l.Prepend(item{ID: "1"})
	require.Len(t, got, 1)
	assert.Equal(t, []item{{ID: "1"}}, got[0])

	cancel()
	l.Prepend(item{ID: "2"})
	assert.Len(t, got, 1)
}

func TestItemsReturnsCopy(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := newReady(t, kv.NewMemory())
	defer closeList(t, l)

	l.Prepend(item{ID: "1"})
	items := l.Items()
	items[0].ID = "changed"
	assert.True(t, l.Contains("1"))
}

func TestCloseWithoutInitialize(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := New(kv.NewMemory(), "@items", itemID)
	l.Prepend(item{ID: "1"})
	require.NoError(t, l.Close(context.Background()))
	require.NoError(t, l.Close(context.Background()))
}
