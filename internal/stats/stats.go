// Package stats keeps per-topic asked/correct counters in a single JSON
// document stored under one key.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/mathplay/internal/store"
	"github.com/abhisek/mathplay/internal/topic"
)

// DefaultKey is the storage key of the progress document.
const DefaultKey = "mathplay-progress-v1"

// Counts is the asked/correct pair for one topic.
type Counts struct {
	Asked   int `json:"asked"`
	Correct int `json:"correct"`
}

// Accuracy is Correct/Asked, or 0 before the first question.
func (c Counts) Accuracy() float64 {
	if c.Asked == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Asked)
}

// Record is the stored state of one topic.
type Record struct {
	// StartedAt is unix milliseconds of the first open or question, 0 if never.
	StartedAt int64  `json:"startedAt,omitempty"`
	Stats     Counts `json:"stats"`
}

// Started reports whether the topic was ever opened.
func (r *Record) Started() bool { return r.StartedAt != 0 }

// StartedTime returns StartedAt as a time, zero if never started.
func (r *Record) StartedTime() time.Time {
	if r.StartedAt == 0 {
		return time.Time{}
	}
	return time.UnixMilli(r.StartedAt)
}

// Document is the whole persisted progress.
type Document struct {
	Topics map[topic.ID]*Record `json:"topics"`
}

// EnsureTopic returns the record for id, creating a zeroed one if absent.
func (d *Document) EnsureTopic(id topic.ID) *Record {
	if d.Topics == nil {
		d.Topics = make(map[topic.ID]*Record)
	}
	rec, ok := d.Topics[id]
	if !ok || rec == nil {
		rec = &Record{}
		d.Topics[id] = rec
	}
	return rec
}

// Lookup returns the record for id without creating it.
func (d Document) Lookup(id topic.ID) (Record, bool) {
	rec, ok := d.Topics[id]
	if !ok || rec == nil {
		return Record{}, false
	}
	return *rec, true
}

// Tracker reads and writes the progress document. Every mutation is a
// load-modify-save; the last writer wins.
type Tracker struct {
	kv     store.KV
	key    string
	now    func() time.Time
	logger *slog.Logger

	mu sync.Mutex
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger for corrupt-data warnings.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// WithClock sets the time source for StartedAt.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New returns a Tracker storing its document in kv under key.
// An empty key means DefaultKey.
func New(kv store.KV, key string, opts ...Option) *Tracker {
	if key == "" {
		key = DefaultKey
	}
	t := &Tracker{
		kv:     kv,
		key:    key,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Key returns the storage key.
func (t *Tracker) Key() string { return t.key }

// Load returns the stored document. Missing or corrupt data yields an empty
// document; only storage failures are returned as errors.
func (t *Tracker) Load(ctx context.Context) (Document, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(ctx)
}

// Save replaces the stored document.
func (t *Tracker) Save(ctx context.Context, doc Document) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save(ctx, doc)
}

func (t *Tracker) load(ctx context.Context) (Document, error) {
	raw, err := t.kv.Get(ctx, t.key)
	if errors.Is(err, store.ErrNotFound) {
		return Document{Topics: map[topic.ID]*Record{}}, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("load progress: %w", err)
	}
	return t.decode(raw), nil
}

func (t *Tracker) save(ctx context.Context, doc Document) error {
	if doc.Topics == nil {
		doc.Topics = map[topic.ID]*Record{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := t.kv.Put(ctx, t.key, raw); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// decode parses raw, migrating the older shape that kept topic records at
// the root. Records that fail validation are dropped.
func (t *Tracker) decode(raw []byte) Document {
	doc := Document{Topics: map[topic.ID]*Record{}}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		t.logger.Warn("discarding corrupt progress", "key", t.key, "error", err)
		return doc
	}

	if len(root) == 0 {
		return doc
	}

	entries := root
	var topics map[string]json.RawMessage
	if nested, ok := root["topics"]; ok && json.Unmarshal(nested, &topics) == nil && topics != nil {
		entries = topics
	} else {
		t.logger.Info("migrating flat progress document", "key", t.key, "topics", len(root))
	}

	for id, rawRec := range entries {
		rec, err := decodeRecord(rawRec)
		if err != nil {
			t.logger.Warn("dropping invalid topic record", "topic", id, "error", err)
			continue
		}
		doc.Topics[topic.ID(id)] = rec
	}
	return doc
}

// update runs fn on the loaded document and saves the result.
func (t *Tracker) update(ctx context.Context, fn func(*Document)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc, err := t.load(ctx)
	if err != nil {
		return err
	}
	fn(&doc)
	return t.save(ctx, doc)
}

func (t *Tracker) markStarted(rec *Record) {
	if rec.StartedAt == 0 {
		rec.StartedAt = t.now().UnixMilli()
	}
}

// BumpAsked adds one asked question to id.
func (t *Tracker) BumpAsked(ctx context.Context, id topic.ID) error {
	return t.update(ctx, func(d *Document) {
		rec := d.EnsureTopic(id)
		rec.Stats.Asked++
		t.markStarted(rec)
	})
}

// BumpCorrect adds one correct answer to id.
func (t *Tracker) BumpCorrect(ctx context.Context, id topic.ID) error {
	return t.update(ctx, func(d *Document) {
		rec := d.EnsureTopic(id)
		rec.Stats.Correct++
		t.markStarted(rec)
	})
}

// MarkStarted records that id was opened, keeping an earlier start time.
func (t *Tracker) MarkStarted(ctx context.Context, id topic.ID) error {
	return t.update(ctx, func(d *Document) {
		t.markStarted(d.EnsureTopic(id))
	})
}

// Stats returns the counters for id. It never writes.
func (t *Tracker) Stats(ctx context.Context, id topic.ID) (Counts, error) {
	doc, err := t.Load(ctx)
	if err != nil {
		return Counts{}, err
	}
	rec, _ := doc.Lookup(id)
	return rec.Stats, nil
}

// Reset clears the record of one topic.
func (t *Tracker) Reset(ctx context.Context, id topic.ID) error {
	return t.update(ctx, func(d *Document) {
		delete(d.Topics, id)
	})
}

// ResetAll deletes the whole document.
func (t *Tracker) ResetAll(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.kv.Delete(ctx, t.key); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}
