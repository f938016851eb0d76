package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "blog"), 0o755); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuilt := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, dir, func() error {
			rebuilt <- struct{}{}
			return nil
		})
	}()

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "blog", "new.md"), []byte("---\ntitle: New\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-rebuilt:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild not triggered")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := watch(context.Background(), filepath.Join(t.TempDir(), "absent"), func() error { return nil })
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
