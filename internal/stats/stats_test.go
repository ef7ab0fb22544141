package stats

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathplay/internal/store"
	"github.com/abhisek/mathplay/internal/topic"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestTracker(t *testing.T) (*Tracker, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	clock := time.UnixMilli(1_700_000_000_000)
	tr := New(kv, "", WithLogger(quiet), WithClock(func() time.Time { return clock }))
	return tr, kv
}

func TestFreshTopicCounts(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.BumpAsked(ctx, topic.Average))
	require.NoError(t, tr.BumpCorrect(ctx, topic.Average))

	got, err := tr.Stats(ctx, topic.Average)
	require.NoError(t, err)
	assert.Equal(t, Counts{Asked: 1, Correct: 1}, got)
}

func TestStatsUnseenTopicDoesNotWrite(t *testing.T) {
	tr, kv := newTestTracker(t)
	ctx := context.Background()

	got, err := tr.Stats(ctx, topic.Numberline)
	require.NoError(t, err)
	assert.Equal(t, Counts{}, got)
	assert.Zero(t, kv.Writes())
	assert.Empty(t, kv.Keys())
}

func TestStoredShape(t *testing.T) {
	tr, kv := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.BumpAsked(ctx, topic.ReduceFractions))

	raw, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"topics":{"reduce-fractions":{"startedAt":1700000000000,"stats":{"asked":1,"correct":0}}}}`,
		string(raw))
}

func TestBumpSetsStartedOnce(t *testing.T) {
	kv := store.NewMemory()
	now := time.UnixMilli(1000)
	tr := New(kv, "k", WithLogger(quiet), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, tr.MarkStarted(ctx, topic.Average))
	now = time.UnixMilli(5000)
	require.NoError(t, tr.BumpAsked(ctx, topic.Average))
	require.NoError(t, tr.MarkStarted(ctx, topic.Average))

	doc, err := tr.Load(ctx)
	require.NoError(t, err)
	rec, ok := doc.Lookup(topic.Average)
	require.True(t, ok)
	assert.Equal(t, int64(1000), rec.StartedAt)
	assert.True(t, rec.Started())
	assert.Equal(t, time.UnixMilli(1000), rec.StartedTime())
	assert.Equal(t, 1, rec.Stats.Asked)
}

func TestLoadMigratesFlatShape(t *testing.T) {
	tr, kv := newTestTracker(t)
	ctx := context.Background()

	flat := `{"average":{"startedAt":42,"stats":{"asked":3,"correct":2}},"reduce-fractions":{"stats":{"asked":1,"correct":0}}}`
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte(flat)))

	doc, err := tr.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.Topics, 2)
	assert.Equal(t, &Record{StartedAt: 42, Stats: Counts{Asked: 3, Correct: 2}}, doc.Topics[topic.Average])
	assert.Equal(t, 1, doc.Topics[topic.ReduceFractions].Stats.Asked)

	// The next write stores the wrapped shape.
	require.NoError(t, tr.BumpCorrect(ctx, topic.Average))
	raw, _ := kv.Get(ctx, DefaultKey)
	var root map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &root))
	assert.Contains(t, root, "topics")
	assert.Len(t, root, 1)
}

func TestLoadCorruptYieldsEmpty(t *testing.T) {
	inputs := []string{`not json`, `[1,2,3]`, `null`, `""`, `{}`}

	for _, in := range inputs {
		tr, kv := newTestTracker(t)
		ctx := context.Background()
		require.NoError(t, kv.Put(ctx, DefaultKey, []byte(in)))

		doc, err := tr.Load(ctx)
		require.NoError(t, err, "input %q", in)
		assert.Empty(t, doc.Topics, "input %q", in)
		assert.NotNil(t, doc.Topics, "input %q", in)
	}
}

func TestLoadDropsInvalidRecords(t *testing.T) {
	tr, kv := newTestTracker(t)
	ctx := context.Background()

	raw := `{"topics":{
		"average":{"stats":{"asked":2,"correct":1}},
		"reduce-fractions":{"stats":{"asked":-1,"correct":0}},
		"common-denominator":"oops",
		"fractions-on-numberline":{"startedAt":"yesterday"}
	}}`
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte(raw)))

	doc, err := tr.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Topics, 1)
	assert.Equal(t, Counts{Asked: 2, Correct: 1}, doc.Topics[topic.Average].Stats)
}

func TestRecordWithoutStats(t *testing.T) {
	tr, kv := newTestTracker(t)
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, DefaultKey, []byte(`{"topics":{"average":{"startedAt":7}}}`)))

	require.NoError(t, tr.BumpAsked(ctx, topic.Average))
	got, err := tr.Stats(ctx, topic.Average)
	require.NoError(t, err)
	assert.Equal(t, Counts{Asked: 1}, got)
}

func TestReset(t *testing.T) {
	tr, kv := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.BumpAsked(ctx, topic.Average))
	require.NoError(t, tr.BumpAsked(ctx, topic.Numberline))

	require.NoError(t, tr.Reset(ctx, topic.Average))
	doc, err := tr.Load(ctx)
	require.NoError(t, err)
	_, ok := doc.Lookup(topic.Average)
	assert.False(t, ok)
	_, ok = doc.Lookup(topic.Numberline)
	assert.True(t, ok)

	require.NoError(t, tr.ResetAll(ctx))
	_, err = kv.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEnsureTopic(t *testing.T) {
	var doc Document
	rec := doc.EnsureTopic(topic.Average)
	require.NotNil(t, rec)
	rec.Stats.Asked = 5
	assert.Same(t, rec, doc.EnsureTopic(topic.Average))
	assert.Equal(t, 5, doc.Topics[topic.Average].Stats.Asked)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, Counts{}.Accuracy())
	assert.Equal(t, 0.75, Counts{Asked: 4, Correct: 3}.Accuracy())
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Put(context.Context, string, []byte) error   { return f.err }
func (f failingKV) Delete(context.Context, string) error        { return f.err }

func TestStorageErrorsAreReturned(t *testing.T) {
	boom := errors.New("disk full")
	tr := New(failingKV{err: boom}, "k", WithLogger(quiet))
	ctx := context.Background()

	_, err := tr.Load(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, tr.BumpAsked(ctx, topic.Average), boom)
	assert.ErrorIs(t, tr.ResetAll(ctx), boom)

	_, err = tr.Stats(ctx, topic.Average)
	assert.ErrorIs(t, err, boom)
}
