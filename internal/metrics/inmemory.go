package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated         uint64
	UsersFetched         uint64
	UserLists            uint64
	QueryDurationCount   uint64
	QueryDurationTotalNs int64
	UserCacheHits        uint64
	UserCacheMisses      uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersCreated         uint64
	usersFetched         uint64
	userLists            uint64
	queryDurationCount   uint64
	queryDurationTotalNs int64
	userCacheHits        uint64
	userCacheMisses      uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:         atomic.LoadUint64(&m.usersCreated),
		UsersFetched:         atomic.LoadUint64(&m.usersFetched),
		UserLists:            atomic.LoadUint64(&m.userLists),
		QueryDurationCount:   atomic.LoadUint64(&m.queryDurationCount),
		QueryDurationTotalNs: atomic.LoadInt64(&m.queryDurationTotalNs),
		UserCacheHits:        atomic.LoadUint64(&m.userCacheHits),
		UserCacheMisses:      atomic.LoadUint64(&m.userCacheMisses),
	}
}

// IncUserCreated increments the created-user counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserFetched increments the fetched-user counter.
func (m *InMemoryRecorder) IncUserFetched() {
	atomic.AddUint64(&m.usersFetched, 1)
}

// IncUsersListed increments the list-request counter.
func (m *InMemoryRecorder) IncUsersListed() {
	atomic.AddUint64(&m.userLists, 1)
}

// ObserveQueryDuration records time spent in a repository call.
func (m *InMemoryRecorder) ObserveQueryDuration(duration time.Duration) {
	atomic.AddUint64(&m.queryDurationCount, 1)
	atomic.AddInt64(&m.queryDurationTotalNs, duration.Nanoseconds())
}

// IncUserCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	atomic.AddUint64(&m.userCacheHits, 1)
}

// IncUserCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	atomic.AddUint64(&m.userCacheMisses, 1)
}
