package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
		{"foreign_keys", "1"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrateCreatesKVTable(t *testing.T) {
	s := openTestStore(t)

	rows, err := s.DB().Query("PRAGMA table_info(" + kvTable + ")")
	if err != nil {
		t.Fatalf("table_info: %v", err)
	}
	defer rows.Close()

	pk := map[string]bool{}
	for rows.Next() {
		var (
			cid, notNull, primary int
			name, typ            string
			dflt                 any
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &primary); err != nil {
			t.Fatalf("scan: %v", err)
		}
		pk[name] = primary > 0
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	want := map[string]bool{"key": true, "value": false, "updated_at": false}
	if len(pk) != len(want) {
		t.Fatalf("columns = %v, want %v", pk, want)
	}
	for name, primary := range want {
		got, ok := pk[name]
		if !ok {
			t.Errorf("column %q missing", name)
			continue
		}
		if got != primary {
			t.Errorf("column %q primary = %v, want %v", name, got, primary)
		}
	}
}

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"/tmp/p.db", "/tmp/p.db?_pragma=foreign_keys(1)"},
		{"file:p.db?mode=rwc", "file:p.db?mode=rwc&_pragma=foreign_keys(1)"},
	}
	for _, tt := range tests {
		if got := withForeignKeys(tt.dsn); got != tt.want {
			t.Errorf("withForeignKeys(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestKVRoundTrip(t *testing.T) {
	backends := map[string]KV{
		"sqlite": openTestStore(t),
		"memory": NewMemory(),
	}

	for name, kv := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := kv.Get(ctx, "progress"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get on empty store: got %v, want ErrNotFound", err)
			}

			if err := kv.Put(ctx, "progress", []byte(`{"topics":{}}`)); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, err := kv.Get(ctx, "progress")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != `{"topics":{}}` {
				t.Errorf("Get = %q", got)
			}

			// Overwrite.
			if err := kv.Put(ctx, "progress", []byte(`{"topics":{"average":{}}}`)); err != nil {
				t.Fatalf("Put overwrite: %v", err)
			}
			got, _ = kv.Get(ctx, "progress")
			if string(got) != `{"topics":{"average":{}}}` {
				t.Errorf("Get after overwrite = %q", got)
			}

			if err := kv.Delete(ctx, "progress"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := kv.Get(ctx, "progress"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete: got %v, want ErrNotFound", err)
			}

			if err := kv.Delete(ctx, "missing"); err != nil {
				t.Errorf("Delete missing key: %v", err)
			}
		})
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get = %q, want %q", got, "v")
	}
}

func TestUpdatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	fixed := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return fixed }

	if _, err := s.UpdatedAt(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdatedAt missing: got %v, want ErrNotFound", err)
	}
	if err := s.Put(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.UpdatedAt(ctx, "k")
	if err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if !got.Equal(fixed) {
		t.Errorf("UpdatedAt = %v, want %v", got, fixed)
	}
}

func TestMemoryIsolation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	buf := []byte("abc")
	m.Put(ctx, "k", buf)
	buf[0] = 'x'

	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller buffer: %q", got)
	}
	got[1] = 'y'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("returned value aliased stored value: %q", again)
	}

	if m.Writes() != 1 {
		t.Errorf("Writes = %d, want 1", m.Writes())
	}
	if keys := m.Keys(); len(keys) != 1 || keys[0] != "k" {
		t.Errorf("Keys = %v", keys)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("MATHPLAY_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("MATHPLAY_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "mathplay", "mathplay.db")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestDefaultLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	got, err := DefaultLogPath()
	if err != nil {
		t.Fatalf("DefaultLogPath: %v", err)
	}
	if want := filepath.Join(dir, "mathplay", "mathplay.log"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
