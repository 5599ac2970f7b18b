package schedule

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Window is a task's computed earliest-start/earliest-finish pair.
type Window struct {
	EarliestStart  time.Time
	EarliestFinish time.Time
}

// Cache memoizes per-task computed Windows keyed by a content hash of
// everything that can change them, process-local and rebuilt lazily
// (§4.G.5). It is never persisted to disk.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	key    string
	window Window
}

// NewCache returns an empty Cache.
func NewCache() *Cache { return &Cache{entries: map[string]cacheEntry{}} }

// Get returns the cached window for taskCode if its stored key still
// matches key, signaling the inputs haven't changed since it was computed.
func (c *Cache) Get(taskCode, key string) (Window, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[taskCode]
	if !ok || e.key != key {
		return Window{}, false
	}
	return e.window, true
}

// Put stores the computed window for taskCode under key.
func (c *Cache) Put(taskCode, key string, w Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[taskCode] = cacheEntry{key: key, window: w}
}

// Invalidate drops taskCode's entry and every transitive successor's,
// found by walking successorsOf (§4.G.5: "drop its entry and all
// transitive successor entries").
func (c *Cache) Invalidate(taskCode string, successorsOf func(string) []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	queue := []string{taskCode}
	seen := map[string]bool{}
	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		if seen[code] {
			continue
		}
		seen[code] = true
		delete(c.entries, code)
		queue = append(queue, successorsOf(code)...)
	}
}

// Key builds the content hash a task's window is memoized under: declared
// dates, estimated hours, sorted predecessor codes with their cached
// finish times, and an assignment fingerprint (§4.G.5).
func Key(declaredStart, declaredDue time.Time, estimatedHours float64, predecessorFinishes map[string]time.Time, assignmentFingerprint string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|%g", declaredStart.Unix(), declaredDue.Unix(), estimatedHours)

	codes := make([]string, 0, len(predecessorFinishes))
	for code := range predecessorFinishes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(h, "|%s=%d", code, predecessorFinishes[code].Unix())
	}
	fmt.Fprintf(h, "|%s", assignmentFingerprint)

	return hex.EncodeToString(h.Sum(nil))
}
