package qvec

type options struct {
	policy           Policy
	threadSafe       bool
	allocator        Allocator
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures vector construction.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		policy:           GrowDouble,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithFlags applies an option bitmask. The resize bits, if any, select the
// growth policy and ThreadSafe makes Create return a SyncVector. Bits that are
// not set leave earlier options untouched.
//
// Example:
//
//	v, _ := qvec.Create[int](16, qvec.WithFlags(qvec.ThreadSafe|qvec.ResizeLinear))
func WithFlags(f Flags) Option {
	return func(o *options) {
		if f&resizeMask != 0 {
			o.policy = f.Policy()
		}
		if f&ThreadSafe != 0 {
			o.threadSafe = true
		}
	}
}

// WithPolicy sets the growth policy. The default is GrowDouble.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithThreadSafe makes Create return a SyncVector.
// It has no effect on New and NewSync.
func WithThreadSafe() Option {
	return func(o *options) {
		o.threadSafe = true
	}
}

// WithAllocator charges every backing buffer against a.
// Pass nil to disable accounting (the default).
//
// Example with a memory budget:
//
//	budget := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
//	v, _ := qvec.New[float64](0, qvec.WithAllocator(budget))
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example:
//
//	metrics := &qvec.BasicMetricsCollector{}
//	v, _ := qvec.New[int](0, qvec.WithMetricsCollector(metrics))
//	// ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
