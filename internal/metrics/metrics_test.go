package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceMetrics_CountsFrames(t *testing.T) {
	m := New()

	m.Update(time.Now().Add(-5 * time.Millisecond))
	m.Update(time.Now().Add(-5 * time.Millisecond))

	assert.Equal(t, 2, m.Frames())
}

func TestPerformanceMetrics_WindowRollsOver(t *testing.T) {
	m := New()
	m.windowSize = 10 * time.Millisecond

	m.Update(time.Now().Add(-20 * time.Millisecond))
	time.Sleep(15 * time.Millisecond)
	m.Update(time.Now().Add(-20 * time.Millisecond))

	assert.Greater(t, m.FPS(), 0.0)
	assert.Greater(t, m.Latency(), time.Duration(0))
}

func TestPerformanceMetrics_EmptyTotals(t *testing.T) {
	m := New()

	assert.Equal(t, 0, m.Frames())
	assert.Equal(t, time.Duration(0), m.Latency())
	assert.Equal(t, 0.0, m.FPS())

	// Must not panic with zero frames.
	m.LogTotal()
}
