package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func startWatcher(t *testing.T, ctx context.Context, debounce time.Duration, paths ...string) *Watcher {
	t.Helper()
	watcher, err := NewWatcher(ctx, paths...)
	if err != nil {
		t.Fatalf("Failed to create watcher: %v", err)
	}
	t.Cleanup(func() { watcher.Stop() })

	if err := watcher.Start(debounce); err != nil {
		t.Fatalf("Failed to start watcher: %v", err)
	}

	// Give watcher time to start
	time.Sleep(100 * time.Millisecond)
	return watcher
}

func waitForEvent(t *testing.T, w *Watcher, what string) {
	t.Helper()
	select {
	case <-w.Events():
	case <-time.After(2 * time.Second):
		t.Fatalf("Timeout waiting for %s", what)
	case err := <-w.Errors():
		t.Fatalf("Watcher error: %v", err)
	}
}

// TestWatcher_SingleFileChange tests that watcher detects a single file change
func TestWatcher_SingleFileChange(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, testFile, `{"debug": false}`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	watcher := startWatcher(t, ctx, 50*time.Millisecond, testFile)

	writeFile(t, testFile, `{"debug": true}`)

	waitForEvent(t, watcher, "file change event")
}

// TestWatcher_FileCreated tests that creating a missing watched file is reported
func TestWatcher_FileCreated(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.json")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	watcher := startWatcher(t, ctx, 50*time.Millisecond, testFile)

	writeFile(t, testFile, `{"ids": "sequential"}`)

	waitForEvent(t, watcher, "file creation event")
}

// TestWatcher_DebounceMultipleWrites tests that multiple rapid writes are debounced
func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, testFile, `{}`)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	debounceInterval := 200 * time.Millisecond
	watcher := startWatcher(t, ctx, debounceInterval, testFile)

	for i := 0; i < 5; i++ {
		writeFile(t, testFile, fmt.Sprintf(`{"logFile": "debug-%d.log"}`, i))
		time.Sleep(20 * time.Millisecond)
	}

	eventCount := 0
	timeout := time.After(debounceInterval + 500*time.Millisecond)
	for {
		select {
		case <-watcher.Events():
			eventCount++
		case <-timeout:
			if eventCount != 1 {
				t.Errorf("Expected 1 debounced event, got %d", eventCount)
			}
			return
		case err := <-watcher.Errors():
			t.Fatalf("Watcher error: %v", err)
		}
	}
}

// TestWatcher_IgnoresSiblings tests that other files in the watched directory are ignored
func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "config.json")
	writeFile(t, testFile, `{}`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	watcher := startWatcher(t, ctx, 50*time.Millisecond, testFile)

	writeFile(t, filepath.Join(dir, "data.csv"), "id,desc,status,updated\n")

	select {
	case <-watcher.Events():
		t.Fatal("Unexpected event for unwatched file")
	case <-time.After(300 * time.Millisecond):
	}
}

// TestWatcher_ContextCancellation tests that watcher stops when context is cancelled
func TestWatcher_ContextCancellation(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, testFile, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	watcher := startWatcher(t, ctx, 50*time.Millisecond, testFile)

	cancel()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-watcher.Events():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("Watcher did not stop after context cancellation")
		}
	}
}

// TestWatcher_StartTwice tests that a watcher cannot be started twice
func TestWatcher_StartTwice(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "config.json")

	watcher := startWatcher(t, context.Background(), 50*time.Millisecond, testFile)

	if err := watcher.Start(50 * time.Millisecond); err == nil {
		t.Error("Expected error starting watcher twice")
	}
}
