package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncUserFetched is a no-op.
func (n *NoopRecorder) IncUserFetched() {}

// IncUsersListed is a no-op.
func (n *NoopRecorder) IncUsersListed() {}

// ObserveQueryDuration is a no-op.
func (n *NoopRecorder) ObserveQueryDuration(duration time.Duration) {}

// IncUserCacheHit is a no-op.
func (n *NoopRecorder) IncUserCacheHit() {}

// IncUserCacheMiss is a no-op.
func (n *NoopRecorder) IncUserCacheMiss() {}
