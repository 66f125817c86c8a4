package profiling

import (
	"bytes"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// GoroutineTracker records which goroutines executed keyed code paths. Tests
// use it to verify scheduling properties, e.g. that every book mutation ran on
// exactly one goroutine.
type GoroutineTracker struct {
	mu    sync.Mutex
	byKey map[string]map[uint64]struct{}
}

// NewGoroutineTracker creates an empty tracker.
func NewGoroutineTracker() *GoroutineTracker {
	return &GoroutineTracker{
		byKey: make(map[string]map[uint64]struct{}),
	}
}

// Track registers the calling goroutine under the given key and returns its
// id.
func (gt *GoroutineTracker) Track(key string) uint64 {
	id := CurrentGoroutineID()

	gt.mu.Lock()
	defer gt.mu.Unlock()

	set, ok := gt.byKey[key]
	if !ok {
		set = make(map[uint64]struct{})
		gt.byKey[key] = set
	}
	set[id] = struct{}{}
	return id
}

// Goroutines returns the sorted ids of goroutines seen for a key.
func (gt *GoroutineTracker) Goroutines(key string) []uint64 {
	gt.mu.Lock()
	defer gt.mu.Unlock()

	ids := make([]uint64, 0, len(gt.byKey[key]))
	for id := range gt.byKey[key] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Description renders all tracked keys and their goroutines, for test output.
func (gt *GoroutineTracker) Description() string {
	gt.mu.Lock()
	keys := make([]string, 0, len(gt.byKey))
	for key := range gt.byKey {
		keys = append(keys, key)
	}
	gt.mu.Unlock()
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&sb, "%s: goroutines %v\n", key, gt.Goroutines(key))
	}
	return sb.String()
}

// CurrentGoroutineID parses the calling goroutine's id out of its stack
// header. The runtime exposes no API for this, so it is strictly a diagnostic
// aid, never a correctness dependency.
func CurrentGoroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	// header looks like "goroutine 123 [running]:"
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
