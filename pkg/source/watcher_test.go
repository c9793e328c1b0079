package source

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNewWatcher(t *testing.T) {
	if _, err := NewWatcher(WatcherConfig{}, nil); err == nil {
		t.Error("NewWatcher() without a path should fail")
	}

	w, err := NewWatcher(WatcherConfig{Path: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v, want nil", err)
	}
	if w.config.DebounceInterval != 100*time.Millisecond {
		t.Errorf("DebounceInterval = %v, want 100ms", w.config.DebounceInterval)
	}
	_ = w.Stop()
}

func TestWatcher_SingleFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "providers.json")
	if err := os.WriteFile(target, []byte(jsonDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(WatcherConfig{Path: target, DebounceInterval: 50 * time.Millisecond}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Stop() }()

	changed := make(chan string, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Watch(ctx, func(path string) error {
			changed <- path
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	// A sibling file must not trigger the callback.
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte(jsonDoc+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changed:
		if filepath.Base(path) != "providers.json" {
			t.Errorf("callback path = %q, want providers.json", path)
		}
	case <-time.After(time.Second):
		t.Error("callback not called after file modification")
	}
}

func TestWatcher_DoubleStart(t *testing.T) {
	w, err := NewWatcher(WatcherConfig{Path: t.TempDir()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = w.Watch(ctx, func(string) error { return nil }) }()
	time.Sleep(50 * time.Millisecond)

	if err := w.Watch(ctx, func(string) error { return nil }); err == nil {
		t.Error("second Watch() should fail while running")
	}
}

func TestWatcher_ShouldProcess(t *testing.T) {
	w := &Watcher{config: WatcherConfig{SkipHidden: true}}

	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/d/providers.json", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/d/providers.YAML", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/d/providers.jsonc", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/d/providers.json", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/d/notes.txt", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/d/.hidden.json", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := w.shouldProcess(tt.event); got != tt.want {
			t.Errorf("shouldProcess(%s %s) = %v, want %v", tt.event.Op, tt.event.Name, got, tt.want)
		}
	}
}

func TestDebouncer_Trigger(t *testing.T) {
	debouncer := NewDebouncer(100 * time.Millisecond)
	defer debouncer.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		debouncer.Trigger(func() { calls.Add(1) })
		time.Sleep(20 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)

	if n := calls.Load(); n != 1 {
		t.Errorf("callback called %d times, want 1", n)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	debouncer := NewDebouncer(100 * time.Millisecond)

	var calls atomic.Int32
	debouncer.Trigger(func() { calls.Add(1) })
	debouncer.Stop()
	debouncer.Stop()
	debouncer.Trigger(func() { calls.Add(1) })

	time.Sleep(150 * time.Millisecond)

	if n := calls.Load(); n != 0 {
		t.Errorf("callback called %d times after Stop(), want 0", n)
	}
}
