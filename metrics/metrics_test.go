package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
)

func TestNopWhenDisabled(t *testing.T) {
	Enabled = false
	c := NewCounter("test/disabled")
	c.Inc(5)
	_, isNil := c.(*metrics.NilCounter)
	assert.True(t, isNil)
	assert.Equal(t, int64(0), c.Count())
}

func TestEnabledCounter(t *testing.T) {
	Enable()
	defer func() { Enabled = false }()

	c := NewCounter("test/enabled")
	c.Inc(3)
	assert.Equal(t, int64(3), c.Count())
	assert.Equal(t, c, NewCounter("test/enabled"))

	var buf bytes.Buffer
	WriteOnce(&buf)
	assert.Contains(t, buf.String(), "test/enabled")

	seen := false
	Each(func(name string, m interface{}) {
		if name == "test/enabled" {
			seen = true
		}
	})
	assert.True(t, seen)
}

func TestProcessMetersMarkGrowth(t *testing.T) {
	Enable()
	defer func() { Enabled = false }()

	m := newProcessMeters()
	prev := &processSample{diskOK: true}
	cur := &processSample{diskOK: true}
	prev.mem.Mallocs, cur.mem.Mallocs = 10, 25
	prev.disk.ReadBytes, cur.disk.ReadBytes = 100, 160
	before := m.allocs.Count()
	m.mark(prev, cur)
	assert.Equal(t, before+15, m.allocs.Count())

	// a sample without disk stats marks no disk growth
	reads := m.diskReadBytes.Count()
	cur.diskOK = false
	m.mark(prev, cur)
	assert.Equal(t, reads, m.diskReadBytes.Count())
}

func TestCollectProcessMetricsStops(t *testing.T) {
	Enable()
	defer func() { Enabled = false }()

	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		CollectProcessMetrics(time.Millisecond, quit)
		close(done)
	}()
	time.Sleep(5 * time.Millisecond)
	close(quit)
	<-done
}
