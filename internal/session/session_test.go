package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileChannelRoundTrip(t *testing.T) {
	workspace := t.TempDir()
	c, err := NewFileChannel(workspace)
	if err != nil {
		t.Fatalf("new channel: %v", err)
	}

	if _, ok := c.Get(KeyAuthenticated); ok {
		t.Fatal("fresh channel must be empty")
	}
	if err := c.Set(KeyAuthenticated, "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Set(KeyIdentity, `{"id":"1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A second channel over the same workspace sees the same keys.
	c2, err := NewFileChannel(workspace)
	if err != nil {
		t.Fatalf("reopen channel: %v", err)
	}
	if v, ok := c2.Get(KeyAuthenticated); !ok || v != "true" {
		t.Fatalf("expected persisted flag, got %q %v", v, ok)
	}
	if v, ok := c2.Get(KeyIdentity); !ok || v != `{"id":"1"}` {
		t.Fatalf("expected persisted identity, got %q %v", v, ok)
	}
}

func TestFileChannelDelete(t *testing.T) {
	c, err := NewFileChannel(t.TempDir())
	if err != nil {
		t.Fatalf("new channel: %v", err)
	}
	if err := c.Set(KeyAuthenticated, "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Delete(KeyAuthenticated); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := c.Get(KeyAuthenticated); ok {
		t.Fatal("deleted key must be gone")
	}
	// Deleting an absent key is not an error.
	if err := c.Delete("nope"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestFileChannelCorruptFileReadsEmpty(t *testing.T) {
	workspace := t.TempDir()
	c, err := NewFileChannel(workspace)
	if err != nil {
		t.Fatalf("new channel: %v", err)
	}
	path := filepath.Join(workspace, ".amparo", "session.json")
	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatalf("write garbage: %v", err)
	}

	if _, ok := c.Get(KeyAuthenticated); ok {
		t.Fatal("corrupt file must behave as empty")
	}
	// Writes recover the file.
	if err := c.Set(KeyAuthenticated, "true"); err != nil {
		t.Fatalf("set after corruption: %v", err)
	}
	if v, ok := c.Get(KeyAuthenticated); !ok || v != "true" {
		t.Fatalf("expected recovered value, got %q %v", v, ok)
	}
}

func TestMemChannel(t *testing.T) {
	m := MemChannel{}
	if err := m.Set("k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := m.Get("k"); !ok || v != "v" {
		t.Fatalf("get: %q %v", v, ok)
	}
	if err := m.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := m.Get("k"); ok {
		t.Fatal("deleted key must be gone")
	}
}
