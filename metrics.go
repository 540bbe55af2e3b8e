package qvec

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordGrow is called after every attempt to grow the backing array
	// because an insert ran out of room. err is nil if the new buffer is in
	// place. Initial allocation, Resize and Slice are not reported.
	RecordGrow(from, to int, err error)

	// RecordInsert is called after each insert; n is the number of elements.
	RecordInsert(n int, err error)

	// RecordRemove is called after each pop or remove; n is the number of elements.
	RecordRemove(n int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGrow(int, int, error) {}
func (NoopMetricsCollector) RecordInsert(int, error)    {}
func (NoopMetricsCollector) RecordRemove(int, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// It is safe for concurrent use.
type BasicMetricsCollector struct {
	GrowCount    atomic.Int64
	GrowErrors   atomic.Int64
	MaxCapacity  atomic.Int64
	InsertCount  atomic.Int64
	InsertItems  atomic.Int64
	InsertErrors atomic.Int64
	RemoveCount  atomic.Int64
	RemoveItems  atomic.Int64
	RemoveErrors atomic.Int64
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(_, to int, err error) {
	b.GrowCount.Add(1)
	if err != nil {
		b.GrowErrors.Add(1)
		return
	}
	for {
		cur := b.MaxCapacity.Load()
		if int64(to) <= cur || b.MaxCapacity.CompareAndSwap(cur, int64(to)) {
			return
		}
	}
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(n int, err error) {
	b.InsertCount.Add(1)
	if err != nil {
		b.InsertErrors.Add(1)
		return
	}
	b.InsertItems.Add(int64(n))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(n int, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
		return
	}
	b.RemoveItems.Add(int64(n))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GrowCount:    b.GrowCount.Load(),
		GrowErrors:   b.GrowErrors.Load(),
		MaxCapacity:  b.MaxCapacity.Load(),
		InsertCount:  b.InsertCount.Load(),
		InsertItems:  b.InsertItems.Load(),
		InsertErrors: b.InsertErrors.Load(),
		RemoveCount:  b.RemoveCount.Load(),
		RemoveItems:  b.RemoveItems.Load(),
		RemoveErrors: b.RemoveErrors.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GrowCount    int64
	GrowErrors   int64
	MaxCapacity  int64
	InsertCount  int64
	InsertItems  int64
	InsertErrors int64
	RemoveCount  int64
	RemoveItems  int64
	RemoveErrors int64
}
