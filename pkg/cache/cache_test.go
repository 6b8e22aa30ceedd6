package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetReturnsMissForUnknownKey(t *testing.T) {
	c := New(t.TempDir(), time.Minute)

	if _, ok := c.Get("missing.json"); ok {
		t.Fatal("Get() ok = true for unknown key, want false")
	}
}

func TestPutThenGetRoundTrip(t *testing.T) {
	c := New(t.TempDir(), time.Minute)

	payload := []byte(`{"total": 3}`)
	c.Put("EBAY_US_seller_offset0.json", payload)

	got, ok := c.Get("EBAY_US_seller_offset0.json")
	if !ok {
		t.Fatal("Get() ok = false after Put, want true")
	}
	if string(got) != string(payload) {
		t.Fatalf("Get() = %q, want %q", got, payload)
	}
}

func TestPutOverwritesPreviousEntry(t *testing.T) {
	c := New(t.TempDir(), time.Minute)

	c.Put("key.json", []byte("first"))
	c.Put("key.json", []byte("second"))

	got, ok := c.Get("key.json")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if string(got) != "second" {
		t.Fatalf("Get() = %q, want %q", got, "second")
	}
}

func TestGetTreatsOldEntriesAsStale(t *testing.T) {
	c := New(t.TempDir(), 15*time.Minute)
	c.Put("key.json", []byte("payload"))

	c.now = func() time.Time { return time.Now().Add(16 * time.Minute) }

	if _, ok := c.Get("key.json"); ok {
		t.Fatal("Get() ok = true for stale entry, want false")
	}
}

func TestStaleEntryIsNotDeleted(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, time.Minute)
	c.Put("key.json", []byte("payload"))

	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	c.Get("key.json")

	if _, err := os.Stat(filepath.Join(dir, "key.json")); err != nil {
		t.Fatalf("stale entry removed from disk: %v", err)
	}
}

func TestWriteErrorDegradesToMiss(t *testing.T) {
	// Point the cache at a file so both writes and reads fail.
	dir := t.TempDir()
	notADir := filepath.Join(dir, "file")
	if err := os.WriteFile(notADir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(filepath.Join(notADir, "nested"), time.Minute)
	c.Put("key.json", []byte("payload"))

	if _, ok := c.Get("key.json"); ok {
		t.Fatal("Get() ok = true after failed write, want false")
	}
}
