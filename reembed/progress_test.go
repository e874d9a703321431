package reembed

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	assert.True(t, tracker.started, "should be started")

	tracker.Update(50)
	tracker.Update(100)
	tracker.Finish()

	elapsed := tracker.Elapsed()
	assert.Greater(t, elapsed, time.Duration(0), "elapsed time should be positive")

	output := buf.String()
	assert.Contains(t, output, "100/100", "should show completion")
	assert.Contains(t, output, "100.0%", "should show 100%")
}

func TestProgressTracker_ReportInterval(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1000, 100)

	tracker.Start()
	tracker.Update(50)
	assert.Empty(t, buf.String(), "below the interval nothing is reported")

	tracker.Update(150)
	assert.Contains(t, buf.String(), "150/1000")
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Start()
	tracker.Update(25)

	assert.Contains(t, buf.String(), "10/10")
}

func TestProgressTracker_ZeroElapsedRate(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1, 1)

	tracker.Start()
	// Force elapsed <= 0 so the first report lands inside the timer's resolution
	tracker.startTime = time.Now().Add(time.Hour)
	tracker.Update(1)

	output := buf.String()
	assert.Contains(t, output, "- 0.0 notes/s")
	assert.NotContains(t, output, "Inf")
	assert.NotContains(t, output, "NaN")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Update(5)
	tracker.Finish()

	assert.Empty(t, buf.String(), "updates before Start are ignored")
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}
