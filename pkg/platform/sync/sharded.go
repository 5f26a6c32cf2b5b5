package sync

import (
	"sync"
)

const shardCount = 32

// ShardedMutex serializes work per key without a single global lock.
// Keys hash onto a fixed set of shards; LockAll takes every shard for
// operations that must exclude all keyed work at once.
type ShardedMutex struct {
	shards [shardCount]sync.Mutex
}

// NewShardedMutex creates a new ShardedMutex.
func NewShardedMutex() *ShardedMutex {
	return &ShardedMutex{}
}

// Lock acquires the lock for the given key's shard. Empty keys use shard 0.
func (m *ShardedMutex) Lock(key string) {
	m.shards[m.shardFor(key)].Lock()
}

// Unlock releases the lock for the given key's shard.
func (m *ShardedMutex) Unlock(key string) {
	m.shards[m.shardFor(key)].Unlock()
}

// LockAll acquires every shard in index order.
func (m *ShardedMutex) LockAll() {
	for i := range m.shards {
		m.shards[i].Lock()
	}
}

// UnlockAll releases every shard in reverse order.
func (m *ShardedMutex) UnlockAll() {
	for i := len(m.shards) - 1; i >= 0; i-- {
		m.shards[i].Unlock()
	}
}

func (m *ShardedMutex) shardFor(key string) int {
	if key == "" {
		return 0
	}
	return int(hashString(key) % uint32(len(m.shards)))
}

// hashString is a djb2-style hash used only for shard selection.
func hashString(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return h
}
