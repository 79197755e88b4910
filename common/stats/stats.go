// Package stats provides a small set of instrument interfaces backed by
// go-metrics. The scheduler only depends on these interfaces so the metrics
// library never leaks into its API.
//
// Provided:
// - A StatsReceiver that can be passed down a call tree and scoped at each level.
// - Counters, gauges and a Latency instrument for timing call sites.
// - Finagle style JSON rendering, optionally pretty printed.
// - An optional latched mode that snapshots the registry at a fixed interval.
//
// Original license: github.com/rcrowley/go-metrics/blob/master/LICENSE
package stats

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
)

// For testing.
var Time StatsTime = DefaultStatsTime()

// Overridable instrument creation.
var NewCounter func() Counter = newMetricCounter
var NewGauge func() Gauge = newMetricGauge
var NewLatency func() Latency = newLatency

// To check if pretty printing is supported.
type MarshalerPretty interface {
	MarshalJSONPretty() ([]byte, error)
}

// StatsRegistry is the subset of the go-metrics registry we rely on.
type StatsRegistry interface {
	// Gets an existing metric or registers the given one.
	GetOrRegister(string, interface{}) interface{}

	Unregister(string)

	Each(func(string, interface{}))
}

// StatsReceiver hands out named instruments. Hierarchical names are joined
// with '/'; a '/' inside a single name element is replaced by "_SLASH_".
//
//	stat.Scope("sched", "balancer").Counter("plans")  // is equivalent to
//	stat.Counter("sched", "balancer", "plans")
type StatsReceiver interface {
	Scope(scope ...string) StatsReceiver

	// Returns a copy whose Latency instruments render in the given precision.
	// Durations <= 1ns render as nanoseconds.
	Precision(time.Duration) StatsReceiver

	Counter(name ...string) Counter

	Gauge(name ...string) Gauge

	Latency(name ...string) Latency

	Remove(name ...string)

	// Construct a JSON document from the registry, or from the last
	// latched snapshot when latching is enabled.
	Render(pretty bool) []byte

	// Flush takes a latched snapshot immediately, as a tick would.
	// Does nothing when latching is disabled.
	Flush()

	// CapturedAt is when the latched snapshot was taken, zero before the
	// first capture and for unlatched receivers.
	CapturedAt() time.Time

	// Registry is the backing registry, used by VerifyStats.
	Registry() StatsRegistry
}

// DefaultStatsReceiver is an unlatched receiver over a fresh finagle style registry.
// Latencies render in milliseconds and are reset on every call to Render().
func DefaultStatsReceiver() StatsReceiver {
	stat, _ := NewCustomStatsReceiver(nil, 0)
	return stat
}

// NewLatchedStatsReceiver starts a goroutine that snapshots the registry every
// 'latched' interval. Render returns the latest snapshot. Call cancelFn to stop it.
func NewLatchedStatsReceiver(latched time.Duration) (stat StatsReceiver, cancelFn func()) {
	return NewCustomStatsReceiver(nil, latched)
}

// Like NewLatchedStatsReceiver() but with an explicit registry constructor.
// A latched interval <= 0 disables latching.
func NewCustomStatsReceiver(makeRegistry func() StatsRegistry, latched time.Duration) (stat StatsReceiver, cancelFn func()) {
	if makeRegistry == nil {
		makeRegistry = NewFinagleStatsRegistry
	}
	s := &defaultStatsReceiver{
		registry:  makeRegistry(),
		precision: time.Millisecond,
		latch:     &latch{},
	}
	if latched <= 0 {
		return s, func() {}
	}

	s.latch = &latch{
		enabled:      true,
		src:          s.registry,
		makeRegistry: makeRegistry,
		snapshot:     makeRegistry(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	go s.latch.run(ctx, Time.NewTicker(latched))
	return s, cancel
}

// latch holds the snapshot rendered by a latched receiver.
type latch struct {
	mu           sync.Mutex
	enabled      bool
	src          StatsRegistry
	makeRegistry func() StatsRegistry
	snapshot     StatsRegistry
	taken        time.Time
}

func (l *latch) run(ctx context.Context, ticker StatsTicker) {
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C():
			l.capture(t)
		}
	}
}

// capture replaces the snapshot with the current values of src and clears its latencies.
func (l *latch) capture(at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshot = capture(l.src, l.makeRegistry())
	resetLatencies(l.src)
	l.taken = at
}

func (l *latch) get() StatsRegistry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}

func (l *latch) capturedAt() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.taken
}

// Copies the current value of every instrument in src into dst.
func capture(src StatsRegistry, dst StatsRegistry) StatsRegistry {
	src.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case Counter:
			dst.GetOrRegister(name, m.Capture())
		case Gauge:
			dst.GetOrRegister(name, m.Capture())
		case Latency:
			dst.GetOrRegister(name, m.Capture())
		default:
			log.Infof("unrecognized capture instrument %s: %T", name, i)
		}
	})
	return dst
}

func resetLatencies(reg StatsRegistry) {
	reg.Each(func(name string, i interface{}) {
		if l, ok := i.(*metricLatency); ok {
			l.Clear()
		}
	})
}

type defaultStatsReceiver struct {
	registry  StatsRegistry
	latch     *latch
	precision time.Duration
	scope     []string
}

func (s *defaultStatsReceiver) Scope(scope ...string) StatsReceiver {
	return &defaultStatsReceiver{s.registry, s.latch, s.precision, s.scoped(scope...)}
}

func (s *defaultStatsReceiver) Precision(precision time.Duration) StatsReceiver {
	if precision < 1 {
		precision = 1
	}
	return &defaultStatsReceiver{s.registry, s.latch, precision, s.scope}
}

func (s *defaultStatsReceiver) Counter(name ...string) Counter {
	return s.registry.GetOrRegister(s.scopedName(name...), NewCounter).(Counter)
}

func (s *defaultStatsReceiver) Gauge(name ...string) Gauge {
	return s.registry.GetOrRegister(s.scopedName(name...), NewGauge).(Gauge)
}

func (s *defaultStatsReceiver) Latency(name ...string) Latency {
	// no lazy instantiation: the precision belongs to this receiver
	return s.registry.GetOrRegister(s.scopedName(name...), NewLatency().Precision(s.precision)).(Latency)
}

func (s *defaultStatsReceiver) Remove(name ...string) {
	s.registry.Unregister(s.scopedName(name...))
}

func (s *defaultStatsReceiver) Registry() StatsRegistry {
	return s.registry
}

func (s *defaultStatsReceiver) Flush() {
	if s.latch.enabled {
		s.latch.capture(Time.Now())
	}
}

func (s *defaultStatsReceiver) CapturedAt() time.Time {
	return s.latch.capturedAt()
}

func (s *defaultStatsReceiver) Render(pretty bool) []byte {
	reg := s.registry
	if s.latch.enabled {
		reg = s.latch.get()
	}

	var err error
	var bytes []byte
	if mp, ok := reg.(MarshalerPretty); ok && pretty {
		bytes, err = mp.MarshalJSONPretty()
	} else {
		bytes, err = json.Marshal(reg)
	}
	if err != nil {
		panic("StatsRegistry bug, cannot be marshaled")
	}

	if !s.latch.enabled {
		resetLatencies(s.registry)
	}
	return bytes
}

// Append to existing scope and scrub slashes
func (s *defaultStatsReceiver) scoped(scope ...string) []string {
	out := make([]string, 0, len(s.scope)+len(scope))
	out = append(out, s.scope...)
	for _, elem := range scope {
		out = append(out, strings.Replace(elem, "/", "_SLASH_", -1))
	}
	return out
}

func (s *defaultStatsReceiver) scopedName(scope ...string) string {
	return strings.Join(s.scoped(scope...), "/")
}

// NilStatsReceiver ignores all stats operations.
func NilStatsReceiver(scope ...string) StatsReceiver {
	return &nilStatsReceiver{}
}

type nilStatsReceiver struct{}

func (s *nilStatsReceiver) Scope(scope ...string) StatsReceiver             { return s }
func (s *nilStatsReceiver) Precision(precision time.Duration) StatsReceiver { return s }
func (s *nilStatsReceiver) Counter(name ...string) Counter {
	return &metricCounter{metrics.NilCounter{}}
}
func (s *nilStatsReceiver) Gauge(name ...string) Gauge {
	return &metricGauge{metrics.NilGauge{}}
}
func (s *nilStatsReceiver) Latency(name ...string) Latency { return &nilLatency{} }
func (s *nilStatsReceiver) Remove(name ...string)          {}
func (s *nilStatsReceiver) Render(pretty bool) []byte      { return []byte{} }
func (s *nilStatsReceiver) Registry() StatsRegistry        { return nil }
func (s *nilStatsReceiver) Flush()                         {}
func (s *nilStatsReceiver) CapturedAt() time.Time          { return time.Time{} }

// Counter
type Counter interface {
	Capture() Counter
	Count() int64
	Inc(int64)
	Update(int64)
}
type metricCounter struct{ metrics.Counter }

func (m *metricCounter) Capture() Counter { return &metricCounter{m.Snapshot()} }
func (m *metricCounter) Update(i int64)   { m.Inc(i - m.Count()) }
func newMetricCounter() Counter           { return &metricCounter{metrics.NewCounter()} }

// Gauge
type Gauge interface {
	Capture() Gauge
	Update(int64)
	Value() int64
}
type metricGauge struct{ metrics.Gauge }

func (m *metricGauge) Capture() Gauge { return &metricGauge{m.Snapshot()} }
func newMetricGauge() Gauge           { return &metricGauge{metrics.NewGauge()} }

// HistogramView is the read side of a Latency.
type HistogramView interface {
	Mean() float64
	Count() int64
	Max() int64
	Min() int64
	Sum() int64
	Percentiles(ps []float64) []float64
}

// Latency records durations between Time() and Stop().
type Latency interface {
	Capture() Latency
	Time() Latency // returns self.
	Stop()
	GetPrecision() time.Duration
	Precision(time.Duration) Latency // returns self.
}
type metricLatency struct {
	metrics.Histogram
	start     time.Time
	precision time.Duration
}

func (l *metricLatency) Time() Latency { l.start = Time.Now(); return l }
func (l *metricLatency) Stop()         { l.Update(Time.Since(l.start).Nanoseconds()) }
func (l *metricLatency) Capture() Latency {
	return &metricLatency{l.Histogram.Snapshot(), l.start, l.precision}
}
func (l *metricLatency) GetPrecision() time.Duration { return l.precision }
func (l *metricLatency) Precision(p time.Duration) Latency {
	if p < 1 {
		p = 1
	}
	l.precision = p
	return l
}
func newLatency() Latency {
	return &metricLatency{Histogram: metrics.NewHistogram(metrics.NewUniformSample(1000)), precision: time.Nanosecond}
}

type nilLatency struct{}

func (l *nilLatency) Time() Latency                   { return l }
func (l *nilLatency) Stop()                           {}
func (l *nilLatency) Capture() Latency                { return l }
func (l *nilLatency) GetPrecision() time.Duration     { return 0 }
func (l *nilLatency) Precision(time.Duration) Latency { return l }

// finagleStatsRegistry renders instruments as a flat name -> number map.
type finagleStatsRegistry struct {
	metrics.Registry
}

func NewFinagleStatsRegistry() StatsRegistry {
	return &finagleStatsRegistry{metrics.NewRegistry()}
}

type jsonMap map[string]interface{}

func (r *finagleStatsRegistry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.MarshalAll())
}

func (r *finagleStatsRegistry) MarshalJSONPretty() ([]byte, error) {
	return json.MarshalIndent(r.MarshalAll(), "", "  ")
}

func (r *finagleStatsRegistry) MarshalAll() jsonMap {
	data := jsonMap{}
	r.Each(func(name string, i interface{}) {
		switch stat := i.(type) {
		case Counter:
			data[name] = stat.Count()
		case Gauge:
			data[name] = stat.Value()
		case Latency:
			l := stat.Capture()
			marshalHistogram(data, name, l.(HistogramView), l.GetPrecision())
		default:
			log.Infof("unrecognized marshal instrument %s: %T", name, i)
		}
	})
	return data
}

func marshalHistogram(data jsonMap, name string, hist HistogramView, precision time.Duration) {
	f64p := float64(precision)
	i64p := int64(precision)
	data[name+".avg"] = hist.Mean() / f64p
	data[name+".count"] = hist.Count()
	data[name+".max"] = hist.Max() / i64p
	data[name+".min"] = hist.Min() / i64p
	data[name+".sum"] = hist.Sum() / i64p

	pctls := hist.Percentiles(defaultPercentiles)
	for i, pctl := range pctls {
		data[name+"."+defaultPercentileLabels[i]] = pctl / f64p
	}
}

var defaultPercentiles = []float64{0.5, 0.9, 0.99}
var defaultPercentileLabels = []string{"p50", "p90", "p99"}
