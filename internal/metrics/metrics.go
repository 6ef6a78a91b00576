// Package metrics tracks per-frame latency and throughput for the
// demo loop.
package metrics

import (
	"log/slog"
	"sync"
	"time"
)

// PerformanceMetrics accumulates frame latency and FPS over a moving
// window plus totals for the whole run.
type PerformanceMetrics struct {
	windowSize time.Duration

	mu            sync.Mutex
	windowStart   time.Time
	windowFrames  int
	windowLatency time.Duration
	lastLatency   time.Duration
	lastFPS       float64

	firstUpdate  time.Time
	totalFrames  int
	totalLatency time.Duration
}

// New creates PerformanceMetrics with a one second reporting window.
func New() *PerformanceMetrics {
	return &PerformanceMetrics{
		windowSize: time.Second,
	}
}

// Update records one completed frame that started at startTime.
func (m *PerformanceMetrics) Update(startTime time.Time) {
	now := time.Now()
	latency := now.Sub(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.totalFrames == 0 {
		m.firstUpdate = now
		m.windowStart = now
	}

	m.totalFrames++
	m.totalLatency += latency
	m.windowFrames++
	m.windowLatency += latency

	if elapsed := now.Sub(m.windowStart); elapsed >= m.windowSize {
		m.lastLatency = m.windowLatency / time.Duration(m.windowFrames)
		m.lastFPS = float64(m.windowFrames) / elapsed.Seconds()
		m.windowStart = now
		m.windowFrames = 0
		m.windowLatency = 0
	}
}

// Latency returns the average latency over the last full window.
func (m *PerformanceMetrics) Latency() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastLatency
}

// FPS returns the throughput over the last full window.
func (m *PerformanceMetrics) FPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastFPS
}

// Frames returns the total number of recorded frames.
func (m *PerformanceMetrics) Frames() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.totalFrames
}

// LogTotal reports totals for the whole run.
func (m *PerformanceMetrics) LogTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.totalFrames == 0 {
		slog.Info("No frames processed")
		return
	}

	elapsed := time.Since(m.firstUpdate)
	fps := float64(m.totalFrames) / elapsed.Seconds()
	latency := m.totalLatency / time.Duration(m.totalFrames)

	slog.Info("Performance summary", "frames", m.totalFrames, "mean_latency", latency, "fps", fps)
}
