// Package session is the durable key-value side channel that carries the
// login state across process restarts. Two string keys are stored: the
// authenticated flag and the serialized identity.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Keys written by the session container.
const (
	KeyAuthenticated = "isAuthenticated"
	KeyIdentity      = "currentUser"
)

// Channel is a small durable string store. Reads and writes are
// synchronous; it is not safe for concurrent multi-process access.
type Channel interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

const fileName = "session.json"

// FileChannel keeps the keys in a JSON file under the workspace
// directory.
type FileChannel struct {
	path string
}

// NewFileChannel creates the workspace directory if missing and returns a
// channel backed by <workspace>/.amparo/session.json.
func NewFileChannel(workspace string) (*FileChannel, error) {
	if workspace == "" {
		workspace = "."
	}
	dir := filepath.Join(workspace, ".amparo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileChannel{path: filepath.Join(dir, fileName)}, nil
}

func (c *FileChannel) Get(key string) (string, bool) {
	kv, err := c.read()
	if err != nil {
		return "", false
	}
	v, ok := kv[key]
	return v, ok
}

func (c *FileChannel) Set(key, value string) error {
	kv, err := c.read()
	if err != nil {
		return err
	}
	kv[key] = value
	return c.write(kv)
}

func (c *FileChannel) Delete(key string) error {
	kv, err := c.read()
	if err != nil {
		return err
	}
	delete(kv, key)
	return c.write(kv)
}

func (c *FileChannel) read() (map[string]string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	kv := map[string]string{}
	if err := json.Unmarshal(data, &kv); err != nil {
		// A corrupt file behaves like an empty channel.
		return map[string]string{}, nil
	}
	return kv, nil
}

func (c *FileChannel) write(kv map[string]string) error {
	data, err := json.Marshal(kv)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o600)
}

// MemChannel is an in-memory channel for tests.
type MemChannel map[string]string

func (m MemChannel) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MemChannel) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m MemChannel) Delete(key string) error {
	delete(m, key)
	return nil
}
