package profiler

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(zerolog.New(&buf), time.Second)

	start := time.Unix(1000, 0)
	clock := start
	p.now = func() time.Time { return clock }
	p.lastTime = start

	for range 59 {
		clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Zero(t, buf.Len())

	clock = start.Add(time.Second)
	require.True(t, p.Tick())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "profiler", line["message"])
	assert.InDelta(t, 60, line["fps"], 1e-9)
	assert.Contains(t, line, "heapMB")
	assert.Contains(t, line, "gc")

	// counter resets after a report
	clock = clock.Add(10 * time.Millisecond)
	assert.False(t, p.Tick())
	assert.Equal(t, 1, p.frameCount)
}

func TestNewProfilerDefaultsInterval(t *testing.T) {
	p := NewProfiler(zerolog.Nop(), 0)
	assert.Equal(t, time.Second, p.updateInterval)
}
